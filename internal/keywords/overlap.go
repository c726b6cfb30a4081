package keywords

import "sort"

// Match is the outcome of comparing a resume keyword set against a
// job-description keyword set.
type Match struct {
	// Score is |R ∩ J| / |J| over distinct keywords, in [0,1].
	Score float64
	// Matched holds R ∩ J, sorted lexicographically.
	Matched []string
	// Missing holds J − R, ordered by descending frequency in the job
	// description, ties lexicographic.
	Missing []string
}

// Overlap scores how many job-description keywords the resume covers.
// An empty job-description set yields a defined score of 0.
func Overlap(resume, jd Set) Match {
	m := Match{}
	if len(jd) == 0 {
		return m
	}

	inter := 0
	for kw := range jd {
		if _, ok := resume[kw]; ok {
			inter++
			m.Matched = append(m.Matched, kw)
		} else {
			m.Missing = append(m.Missing, kw)
		}
	}

	m.Score = float64(inter) / float64(len(jd))

	sort.Strings(m.Matched)
	sort.Slice(m.Missing, func(i, j int) bool {
		if jd[m.Missing[i]] != jd[m.Missing[j]] {
			return jd[m.Missing[i]] > jd[m.Missing[j]]
		}
		return m.Missing[i] < m.Missing[j]
	})

	return m
}
