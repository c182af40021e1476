package analyzer

import (
	"reflect"
	"testing"

	"github.com/nikomatsakis/mozilla-assertion-analyzer/lib/scanner"
)

func TestSummarizeEmpty(t *testing.T) {
	r := Summarize(nil)
	if r.Assertions != 0 || r.Files != 0 || r.PreludeRatio() != 0 {
		t.Errorf("empty report not zero: %+v", r)
	}
}

func TestSummarize(t *testing.T) {
	records := []scanner.Assertion{
		{Args: []string{"p", `"null"`}, File: "a.cpp", Offset: 10, Prelude: true, Statements: 0},
		{Args: []string{"x > 0"}, File: "a.cpp", Offset: 50, Prelude: false, Statements: 4},
		{Args: []string{"q"}, File: "b.cpp", Offset: 7, Prelude: true, Statements: 2},
		{Args: []string{"r", `"msg"`}, File: "a.cpp", Offset: 90, Prelude: false, Statements: 6},
	}
	r := Summarize(records)

	if r.Files != 2 || r.Assertions != 4 {
		t.Errorf("files/assertions = %d/%d, want 2/4", r.Files, r.Assertions)
	}
	if r.Prelude != 2 || r.AtBodyStart != 1 || r.WithMessage != 2 {
		t.Errorf("prelude/start/message = %d/%d/%d, want 2/1/2",
			r.Prelude, r.AtBodyStart, r.WithMessage)
	}
	if r.MeanStatements != 3.0 {
		t.Errorf("mean statements = %v, want 3.0", r.MeanStatements)
	}
	if r.PreludeRatio() != 0.5 {
		t.Errorf("prelude ratio = %v, want 0.5", r.PreludeRatio())
	}

	want := []FileReport{
		{File: "a.cpp", Assertions: 3, Prelude: 1},
		{File: "b.cpp", Assertions: 1, Prelude: 1},
	}
	if !reflect.DeepEqual(r.PerFile, want) {
		t.Errorf("per-file = %+v, want %+v", r.PerFile, want)
	}
}
