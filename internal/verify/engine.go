// Package verify builds assertion trees comparing expected pets with actual ones.
package verify

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"petstore-verify/internal/assertion"
	"petstore-verify/internal/catalog"
	"petstore-verify/internal/domain/entity"
)

// Engine compares pets attribute by attribute using a catalog.
// An Engine holds no mutable state and may be shared between goroutines.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine returns an engine comparing the attributes registered in c.
func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Compare pairs expected and actual pets by position and returns a tree rooted at label.
//
// Callers sort both lists into the same order (ascending ID) before calling Compare.
// A length mismatch turns the root into a single failing leaf and no pair is compared.
// Every pair becomes a container labeled with the expected pet's ID holding one leaf
// per base attribute and one per extended attribute of the expected pet type.
// Pets of different types collapse their pair into one failing leaf.
//
// The tree is fully built before returning; only evaluation reports pass or fail.
func (e *Engine) Compare(label string, expected, actual []entity.Pet) *assertion.Node {
	if len(expected) != len(actual) {
		return countMismatch(label, len(expected), len(actual))
	}

	pairs := make([]*assertion.Node, 0, len(expected))
	for i := range expected {
		pairs = append(pairs, e.ComparePet(expected[i], actual[i]))
	}
	return assertion.Container(label, pairs...)
}

// CompareByID pairs pets by ID instead of by position.
// Children are ordered by ascending expected ID. An ID present on only one side
// produces a failing leaf for that ID; the other pairs are still compared.
func (e *Engine) CompareByID(label string, expected, actual []entity.Pet) *assertion.Node {
	if len(expected) != len(actual) {
		return countMismatch(label, len(expected), len(actual))
	}

	actualByID := make(map[int64]entity.Pet, len(actual))
	for _, p := range actual {
		if _, dup := actualByID[p.ID]; dup {
			return assertion.Failing(label, fmt.Sprintf("duplicate id %d in actual list", p.ID))
		}
		actualByID[p.ID] = p
	}

	sorted := entity.SortByID(expected)
	matched := make(map[int64]struct{}, len(sorted))
	children := make([]*assertion.Node, 0, len(sorted))
	for i, exp := range sorted {
		if i > 0 && sorted[i-1].ID == exp.ID {
			return assertion.Failing(label, fmt.Sprintf("duplicate id %d in expected list", exp.ID))
		}
		act, ok := actualByID[exp.ID]
		if !ok {
			children = append(children, assertion.Failing(idLabel(exp.ID), "missing actual entity"))
			continue
		}
		matched[exp.ID] = struct{}{}
		children = append(children, e.ComparePet(exp, act))
	}

	var extra []int64
	for id := range actualByID {
		if _, ok := matched[id]; !ok {
			extra = append(extra, id)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, id := range extra {
		children = append(children, assertion.Failing(idLabel(id), "unexpected actual entity"))
	}

	return assertion.Container(label, children...)
}

// ComparePet returns the per-entity node for one (expected, actual) pair.
func (e *Engine) ComparePet(expected, actual entity.Pet) *assertion.Node {
	label := idLabel(expected.ID)
	if expected.Type != actual.Type {
		return assertion.Failing(label, fmt.Sprintf("discriminator mismatch: expected %s, got %s", expected.Type, actual.Type))
	}

	specs, err := e.catalog.Attributes(expected.Type)
	if err != nil {
		return assertion.Failing(label, err.Error())
	}

	exp, act := expected.Clone(), actual.Clone()
	leaves := make([]*assertion.Node, 0, len(specs))
	for _, spec := range specs {
		leaves = append(leaves, attributeLeaf(spec, exp, act))
	}
	return assertion.Container(label, leaves...)
}

func attributeLeaf(spec catalog.AttributeSpec, expected, actual entity.Pet) *assertion.Node {
	return assertion.Leaf(spec.Name, func() assertion.Result {
		want, got := spec.Accessor(expected), spec.Accessor(actual)
		if spec.Comparator(want, got) {
			return assertion.Pass(formatValue(got))
		}
		return assertion.Fail("expected %s, got %s", formatValue(want), formatValue(got))
	})
}

func countMismatch(label string, expected, actual int) *assertion.Node {
	return assertion.Failing(label, fmt.Sprintf("count mismatch: expected %d, got %d", expected, actual))
}

func idLabel(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "<missing>"
	case decimal.Decimal:
		return x.String()
	case string:
		return strconv.Quote(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
