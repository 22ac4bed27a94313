package scenario

import (
	"fmt"
	"io"

	"petstore-verify/internal/assertion"
)

// Totals counts case outcomes.
type Totals struct {
	Passed  int
	Failed  int
	Errored int
}

// OK reports whether every case passed.
func (t Totals) OK() bool {
	return t.Failed == 0 && t.Errored == 0
}

// Summarize counts the outcomes of results.
func Summarize(results []CaseResult) Totals {
	var t Totals
	for _, r := range results {
		switch {
		case r.Err != nil:
			t.Errored++
		case r.Passed():
			t.Passed++
		default:
			t.Failed++
		}
	}
	return t
}

// WriteReport writes every case tree, or its error, followed by the totals.
func WriteReport(w io.Writer, results []CaseResult) error {
	for _, r := range results {
		if r.Err != nil {
			if _, err := fmt.Fprintf(w, "ERROR %s (request %s): %v\n\n", r.Name, r.RequestID, r.Err); err != nil {
				return err
			}
			continue
		}
		if err := assertion.Report(w, r.Evaluation); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	t := Summarize(results)
	_, err := fmt.Fprintf(w, "%d cases: %d passed, %d failed, %d errored\n", len(results), t.Passed, t.Failed, t.Errored)
	return err
}
