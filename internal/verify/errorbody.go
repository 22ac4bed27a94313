package verify

import (
	"strconv"

	"petstore-verify/internal/assertion"
	"petstore-verify/internal/domain/entity"
)

// ErrorExpectation lists the facets an error response is checked against.
// An empty ErrorType skips the error type check.
type ErrorExpectation struct {
	ErrorType  string
	Message    string
	Path       string
	StatusCode int
}

// CompareError checks message, path and status of an error response as independent leaves.
func CompareError(label string, actual entity.ErrorBody, expectedMessage, expectedPath string, expectedStatus int) *assertion.Node {
	return CompareErrorBody(label, actual, ErrorExpectation{
		Message:    expectedMessage,
		Path:       expectedPath,
		StatusCode: expectedStatus,
	})
}

// CompareErrorBody is CompareError with an optional error type leaf.
func CompareErrorBody(label string, actual entity.ErrorBody, want ErrorExpectation) *assertion.Node {
	var leaves []*assertion.Node
	if want.ErrorType != "" {
		leaves = append(leaves, stringLeaf("error", want.ErrorType, actual.ErrorType))
	}
	leaves = append(leaves,
		stringLeaf("message", want.Message, actual.Message),
		stringLeaf("path", want.Path, actual.Path),
		assertion.Leaf("status", func() assertion.Result {
			if actual.StatusCode == want.StatusCode {
				return assertion.Pass(strconv.Itoa(actual.StatusCode))
			}
			return assertion.Fail("expected %d, got %d", want.StatusCode, actual.StatusCode)
		}),
	)
	return assertion.Container(label, leaves...)
}

func stringLeaf(label, want, got string) *assertion.Node {
	return assertion.Leaf(label, func() assertion.Result {
		if want == got {
			return assertion.Pass(strconv.Quote(got))
		}
		return assertion.Fail("expected %s, got %s", strconv.Quote(want), strconv.Quote(got))
	})
}
