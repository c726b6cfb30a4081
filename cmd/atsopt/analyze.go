package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Suraj317github/ats-resume-optimizer/internal/domain"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Long: `Extracts text from the resume (PDF, DOCX, or TXT), compares it with the
job description, and prints the keyword, semantic, and final scores along
with the keywords the resume is missing.`,
	RunE: runAnalyze,
}

var (
	analyzeResume string
	analyzeJD     string
	analyzeJDFile string
	analyzeJSON   bool
)

func init() {
	analyzeCommand.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to the resume file (PDF, DOCX, or TXT)")
	analyzeCommand.Flags().StringVar(&analyzeJD, "jd", "", "Job description text (mutually exclusive with --jd-file)")
	analyzeCommand.Flags().StringVar(&analyzeJDFile, "jd-file", "", "Path to a job description text file")
	analyzeCommand.Flags().BoolVar(&analyzeJSON, "json", false, "Print the result as JSON")
	_ = analyzeCommand.MarkFlagRequired("resume")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if analyzeJD == "" && analyzeJDFile == "" {
		return errors.New("either --jd or --jd-file is required")
	}
	if analyzeJD != "" && analyzeJDFile != "" {
		return errors.New("--jd and --jd-file are mutually exclusive")
	}

	_, cfg, logger, err := loadApp()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	jobDescription := analyzeJD
	if analyzeJDFile != "" {
		data, err := os.ReadFile(analyzeJDFile)
		if err != nil {
			return fmt.Errorf("read job description: %w", err)
		}
		jobDescription = string(data)
	}

	data, err := os.ReadFile(analyzeResume)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}

	name := filepath.Base(analyzeResume)
	format, err := domain.DetectFormat(name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	embedder, closeEmbedder, err := buildEmbedder(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeEmbedder() }()

	svc, err := buildAnalyzeService(cfg, embedder, logger)
	if err != nil {
		return err
	}

	doc := domain.Document{Name: name, Format: format, Data: data}
	result, err := svc.Analyze(context.Background(), doc, jobDescription)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	if analyzeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printResult(cmd, result)
	return nil
}

func printResult(cmd *cobra.Command, result domain.ScoreResult) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Final score:    %.1f%%\n", result.FinalScore*100)
	fmt.Fprintf(out, "Keyword match:  %.1f%%\n", result.KeywordScore*100)
	fmt.Fprintf(out, "Semantic match: %.1f%%\n", result.SemanticScore*100)

	if len(result.Missing) == 0 {
		fmt.Fprintln(out, "\nNo missing keywords.")
		return
	}

	fmt.Fprintf(out, "\nMissing keywords (%d):\n", len(result.Missing))
	fmt.Fprintf(out, "  %s\n", strings.Join(result.Missing, ", "))
}
