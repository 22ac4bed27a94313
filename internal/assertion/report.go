package assertion

import (
	"fmt"
	"io"
	"strings"
)

// Report writes e as an indented tree followed by the full path of every failing leaf.
func Report(w io.Writer, e Evaluation) error {
	var b strings.Builder
	writeTree(&b, e, 0)

	failures := e.Failures()
	s := e.Summary()
	fmt.Fprintf(&b, "\n%d checks, %d passed, %d failed\n", s.Total, s.Passed, s.Failed)
	if len(failures) > 0 {
		b.WriteString("Failures:\n")
		for _, f := range failures {
			fmt.Fprintf(&b, "  %s: %s\n", f.PathString(), f.Result.Message)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTree(b *strings.Builder, e Evaluation, depth int) {
	status := "PASS"
	if !e.Result.Pass {
		status = "FAIL"
	}
	indent := strings.Repeat("  ", depth)
	if e.Leaf && e.Result.Message != "" {
		fmt.Fprintf(b, "%s%s %s: %s\n", indent, status, e.Label, e.Result.Message)
	} else {
		fmt.Fprintf(b, "%s%s %s\n", indent, status, e.Label)
	}
	for _, c := range e.Children {
		writeTree(b, c, depth+1)
	}
}
