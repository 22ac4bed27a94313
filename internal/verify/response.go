package verify

import (
	"fmt"
	"mime"
	"strconv"

	"petstore-verify/internal/assertion"
	"petstore-verify/internal/domain/entity"
)

// ExpectStatus returns a leaf checking an HTTP status code.
func ExpectStatus(label string, want, got int) *assertion.Node {
	return assertion.Leaf(label, func() assertion.Result {
		if want == got {
			return assertion.Pass(strconv.Itoa(got))
		}
		return assertion.Fail("expected %d, got %d", want, got)
	})
}

// ExpectContentType returns a leaf checking the media type of a Content-Type header.
// Parameters such as charset are ignored.
func ExpectContentType(label, want, header string) *assertion.Node {
	return assertion.Leaf(label, func() assertion.Result {
		got, _, err := mime.ParseMediaType(header)
		if err != nil {
			return assertion.Fail("expected %s, got unparseable %q", want, header)
		}
		if got != want {
			return assertion.Fail("expected %s, got %s", want, got)
		}
		return assertion.Pass(got)
	})
}

// ExpectEqual returns a leaf checking two strings for exact equality.
func ExpectEqual(label, want, got string) *assertion.Node {
	return stringLeaf(label, want, got)
}

// ExpectNoError returns a leaf that fails when body is set, describing the unexpected error response.
func ExpectNoError(label string, body *entity.ErrorBody) *assertion.Node {
	if body == nil {
		return assertion.Passing(label, "no error body")
	}
	return assertion.Failing(label, fmt.Sprintf("unexpected error response: %s", body))
}
