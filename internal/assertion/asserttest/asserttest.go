// Package asserttest runs assertion trees as Go subtests.
package asserttest

import (
	"testing"

	"petstore-verify/internal/assertion"
)

// Run executes n as a subtest named after its label. Containers become nested
// subtests and every failing leaf reports its diagnostic through t.Error, so
// `go test -run` can target any node by path.
// It returns false if any leaf failed.
func Run(t *testing.T, n *assertion.Node) bool {
	t.Helper()
	return t.Run(n.Label(), func(t *testing.T) {
		runNode(t, n)
	})
}

func runNode(t *testing.T, n *assertion.Node) {
	t.Helper()
	if n.IsLeaf() {
		if r := n.Evaluate(); !r.Pass {
			t.Error(r.Message)
		}
		return
	}
	for _, c := range n.Children() {
		t.Run(c.Label(), func(t *testing.T) {
			runNode(t, c)
		})
	}
}
