package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/Suraj317github/ats-resume-optimizer/internal/domain"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("index.html").
		Funcs(template.FuncMap{"pct": pct}).
		ParseFS(templateFS, "templates/index.html"),
)

// pageData feeds the single page: the form is always rendered, the report
// section only when Result is set.
type pageData struct {
	Result         *domain.ScoreResult
	Error          string
	FileName       string
	JobDescription string
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f", v*100)
}
