package assertion

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Node {
	return Container("root",
		Container("1",
			Passing("gender", `"MALE"`),
			Failing("price", "expected 199.99, got 299.99"),
		),
		Container("2",
			Passing("gender", `"FEMALE"`),
		),
	)
}

func TestEvaluate_ContainerFailsWhenAnyLeafFails(t *testing.T) {
	tree := sampleTree()

	r := tree.Evaluate()
	assert.False(t, r.Pass)
	assert.Equal(t, "1 of 3 checks failed", r.Message)

	children := tree.Children()
	require.Len(t, children, 2)
	assert.False(t, children[0].Evaluate().Pass)
	assert.True(t, children[1].Evaluate().Pass, "subtrees are reportable on their own")
}

func TestFailures_FullPaths(t *testing.T) {
	var paths []string
	for _, o := range sampleTree().Failures() {
		paths = append(paths, o.PathString())
	}
	assert.Equal(t, []string{"root/1/price"}, paths)
}

func TestEvaluate_Idempotent(t *testing.T) {
	calls := 0
	tree := Container("root", Leaf("counted", func() Result {
		calls++
		return Pass("ok")
	}), Failing("bad", "nope"))

	first := tree.EvaluateTree()
	second := tree.EvaluateTree()

	assert.Empty(t, cmp.Diff(first, second))
	assert.Equal(t, 2, calls)
}

func TestLeaf_PanicBecomesFailure(t *testing.T) {
	tree := Container("root", Leaf("boom", func() Result {
		var m map[string]int
		m["x"] = 1
		return Pass("unreachable")
	}))

	failures := tree.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "root/boom", failures[0].PathString())
	assert.Contains(t, failures[0].Result.Message, "check panicked")
}

func TestLeaf_NilCheckFails(t *testing.T) {
	r := Leaf("empty", nil).Evaluate()
	assert.False(t, r.Pass)
	assert.Equal(t, "no check defined", r.Message)
}

func TestContainer_DropsNilChildren(t *testing.T) {
	c := Container("root", nil, Passing("a", ""), nil)
	assert.Len(t, c.Children(), 1)
	assert.False(t, c.IsLeaf())
}

func TestContainer_EmptyPasses(t *testing.T) {
	ev := Container("root").EvaluateTree()
	assert.True(t, ev.Result.Pass)
	assert.Equal(t, Summary{}, ev.Summary())
}

func TestWalk(t *testing.T) {
	var visited []string
	sampleTree().Walk(func(path []string, n *Node) bool {
		visited = append(visited, Outcome{Path: path}.PathString())
		return n.Label() != "2"
	})
	assert.Equal(t, []string{"root", "root/1", "root/1/gender", "root/1/price", "root/2"}, visited)
}

func TestSummary(t *testing.T) {
	s := sampleTree().EvaluateTree().Summary()
	assert.Equal(t, Summary{Total: 3, Passed: 2, Failed: 1}, s)
	assert.False(t, s.OK())
}

func TestOutcome_String(t *testing.T) {
	o := Outcome{Path: []string{"root", "1", "price"}, Result: Fail("expected %s, got %s", "199.99", "299.99")}
	assert.Equal(t, "FAIL root/1/price: expected 199.99, got 299.99", o.String())
	assert.Equal(t, "PASS root", Outcome{Path: []string{"root"}, Result: Pass("")}.String())
}
