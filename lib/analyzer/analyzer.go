package analyzer

import (
	"strings"

	"github.com/nikomatsakis/mozilla-assertion-analyzer/lib/scanner"
)

// Report aggregates assertion records across a whole run. Files counts
// only files that produced at least one record; the driver knows how
// many were scanned.
type Report struct {
	Files          int          `json:"files"`
	Assertions     int          `json:"assertions"`
	Prelude        int          `json:"prelude"`
	AtBodyStart    int          `json:"at_body_start"`
	WithMessage    int          `json:"with_message"`
	MeanStatements float64      `json:"mean_statements"`
	PerFile        []FileReport `json:"per_file"`
}

type FileReport struct {
	File       string `json:"file"`
	Assertions int    `json:"assertions"`
	Prelude    int    `json:"prelude"`
}

func (r Report) PreludeRatio() float64 {
	if r.Assertions == 0 {
		return 0
	}
	return float64(r.Prelude) / float64(r.Assertions)
}

// Summarize folds assertion records into a Report. Per-file entries keep
// first-appearance order so repeated runs print identically.
//
// AtBodyStart counts assertions before any statement was seen, a
// stricter bucket than Prelude (a declaration-only prelude still counts
// statements). WithMessage counts assertions whose last argument is a
// string literal, the NS_ASSERTION(expr, "message") convention.
func Summarize(assertions []scanner.Assertion) Report {
	var r Report
	index := map[string]int{}
	total := 0
	for _, a := range assertions {
		i, ok := index[a.File]
		if !ok {
			i = len(r.PerFile)
			index[a.File] = i
			r.PerFile = append(r.PerFile, FileReport{File: a.File})
		}
		r.PerFile[i].Assertions++
		r.Assertions++
		total += a.Statements
		if a.Prelude {
			r.Prelude++
			r.PerFile[i].Prelude++
		}
		if a.Statements == 0 {
			r.AtBodyStart++
		}
		if n := len(a.Args); n > 0 && strings.HasPrefix(a.Args[n-1], `"`) {
			r.WithMessage++
		}
	}
	r.Files = len(r.PerFile)
	if r.Assertions > 0 {
		r.MeanStatements = float64(total) / float64(r.Assertions)
	}
	return r
}
