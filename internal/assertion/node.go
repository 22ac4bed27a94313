// Package assertion models verification output as a tree of named checks.
//
// A Node is either a leaf, holding a single check, or a container grouping
// other nodes. Containers pass when every descendant passes; every node can be
// reported on its own. Trees are built completely before anything is evaluated
// and never change afterwards, so evaluating a tree (or any subtree) any number
// of times yields the same results.
package assertion

import (
	"fmt"
	"strings"
)

// Result is the outcome of evaluating a node.
type Result struct {
	Pass    bool
	Message string
}

// Pass returns a passing result.
func Pass(message string) Result {
	return Result{Pass: true, Message: message}
}

// Fail returns a failing result with a formatted diagnostic.
func Fail(format string, args ...any) Result {
	return Result{Pass: false, Message: fmt.Sprintf(format, args...)}
}

// Check evaluates a single leaf. It must be free of side effects.
type Check func() Result

// Node is an immutable assertion tree node.
type Node struct {
	label    string
	children []*Node
	check    Check
}

// Leaf returns a node that evaluates check.
func Leaf(label string, check Check) *Node {
	if check == nil {
		check = func() Result { return Fail("no check defined") }
	}
	return &Node{label: label, check: check}
}

// Failing returns a leaf that always fails with message.
func Failing(label, message string) *Node {
	return Leaf(label, func() Result { return Result{Message: message} })
}

// Passing returns a leaf that always passes.
func Passing(label, message string) *Node {
	return Leaf(label, func() Result { return Pass(message) })
}

// Container returns a node grouping children in the given order.
// Nil children are dropped.
func Container(label string, children ...*Node) *Node {
	kept := make([]*Node, 0, len(children))
	for _, c := range children {
		if c != nil {
			kept = append(kept, c)
		}
	}
	return &Node{label: label, children: kept}
}

// Label returns the node label.
func (n *Node) Label() string {
	return n.label
}

// IsLeaf reports whether n holds a single check.
func (n *Node) IsLeaf() bool {
	return n.check != nil
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Evaluate runs the checks below n and returns the combined result.
func (n *Node) Evaluate() Result {
	return n.EvaluateTree().Result
}

// EvaluateTree evaluates every node below n once and returns the results as a tree.
func (n *Node) EvaluateTree() Evaluation {
	if n.IsLeaf() {
		return Evaluation{Label: n.label, Leaf: true, Result: runCheck(n.check)}
	}

	ev := Evaluation{Label: n.label, Children: make([]Evaluation, 0, len(n.children))}
	for _, c := range n.children {
		ev.Children = append(ev.Children, c.EvaluateTree())
	}
	s := ev.Summary()
	if s.Failed == 0 {
		ev.Result = Pass(fmt.Sprintf("%d of %d checks passed", s.Passed, s.Total))
	} else {
		ev.Result = Fail("%d of %d checks failed", s.Failed, s.Total)
	}
	return ev
}

// Walk visits n and its descendants depth first. path includes the visited node's label.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(path []string, node *Node) bool) {
	n.walk(nil, fn)
}

func (n *Node) walk(parent []string, fn func([]string, *Node) bool) {
	path := append(append([]string(nil), parent...), n.label)
	if !fn(path, n) {
		return
	}
	for _, c := range n.children {
		c.walk(path, fn)
	}
}

// Outcomes evaluates n and returns every leaf outcome in tree order.
func (n *Node) Outcomes() []Outcome {
	return n.EvaluateTree().Outcomes()
}

// Failures evaluates n and returns the failing leaf outcomes.
func (n *Node) Failures() []Outcome {
	return n.EvaluateTree().Failures()
}

func runCheck(check Check) (r Result) {
	defer func() {
		if rec := recover(); rec != nil {
			r = Fail("check panicked: %v", rec)
		}
	}()
	return check()
}

// Evaluation is the evaluated form of a Node.
type Evaluation struct {
	Label    string
	Leaf     bool
	Result   Result
	Children []Evaluation
}

// Outcome is the result of one leaf together with its full path from the root.
type Outcome struct {
	Path   []string
	Result Result
}

// PathString joins the outcome path with "/".
func (o Outcome) PathString() string {
	return strings.Join(o.Path, "/")
}

// String renders the outcome as "path: message".
func (o Outcome) String() string {
	status := "PASS"
	if !o.Result.Pass {
		status = "FAIL"
	}
	if o.Result.Message == "" {
		return fmt.Sprintf("%s %s", status, o.PathString())
	}
	return fmt.Sprintf("%s %s: %s", status, o.PathString(), o.Result.Message)
}

// Summary counts leaf results.
type Summary struct {
	Total  int
	Passed int
	Failed int
}

// OK reports whether no leaf failed.
func (s Summary) OK() bool {
	return s.Failed == 0
}

// Summary counts the leaves of e.
func (e Evaluation) Summary() Summary {
	var s Summary
	for _, o := range e.Outcomes() {
		s.Total++
		if o.Result.Pass {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// Outcomes returns every leaf outcome of e in tree order.
func (e Evaluation) Outcomes() []Outcome {
	var out []Outcome
	e.collect(nil, &out)
	return out
}

// Failures returns the failing leaf outcomes of e.
func (e Evaluation) Failures() []Outcome {
	var failed []Outcome
	for _, o := range e.Outcomes() {
		if !o.Result.Pass {
			failed = append(failed, o)
		}
	}
	return failed
}

func (e Evaluation) collect(parent []string, out *[]Outcome) {
	path := append(append([]string(nil), parent...), e.Label)
	if e.Leaf {
		*out = append(*out, Outcome{Path: path, Result: e.Result})
		return
	}
	for _, c := range e.Children {
		c.collect(path, out)
	}
}
