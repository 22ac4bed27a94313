package entity

import "fmt"

// ErrorBody is the decoded shape of a non-2xx inventory response.
// It is never compared against a Pet; dedicated assertions check its facets.
type ErrorBody struct {
	ErrorType  string `json:"error"`
	Message    string `json:"message"`
	Path       string `json:"path"`
	StatusCode int    `json:"status"`
	Timestamp  string `json:"timestamp,omitempty"`
}

// String renders the error body for diagnostics.
func (b ErrorBody) String() string {
	if b.ErrorType == "" {
		return fmt.Sprintf("%d %s: %s", b.StatusCode, b.Path, b.Message)
	}
	return fmt.Sprintf("%d %s %s: %s", b.StatusCode, b.ErrorType, b.Path, b.Message)
}
