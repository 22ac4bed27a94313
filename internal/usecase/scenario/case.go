package scenario

import (
	"context"
	"fmt"

	"petstore-verify/internal/assertion"
	"petstore-verify/internal/domain/entity"
	"petstore-verify/internal/infra/fixture"
	"petstore-verify/internal/infra/probe"
	"petstore-verify/internal/verify"
)

// Expected response properties shared by every case.
const (
	contentTypeJSON = "application/json"
	searchPath      = "/inventory/search"
)

// Env holds the read-only collaborators a case needs.
type Env struct {
	Store  *fixture.Store
	Client *probe.Client
	Engine *verify.Engine
	Schema entity.Schema
}

// RunFunc probes the API through s and returns the case's assertion tree.
// A returned error aborts the case; assertion failures are leaves, never errors.
type RunFunc func(ctx context.Context, env Env, s *probe.Session) (*assertion.Node, error)

// Case is a named verification case.
// Mutating cases change server state and only start after every read-only case finished.
type Case struct {
	Name     string
	Mutating bool
	Run      RunFunc
}

// expectPet builds the tree of a case expecting a 200 response carrying expected.
func expectPet(env Env, label string, resp probe.Response, expected entity.Pet) (*assertion.Node, error) {
	var body *assertion.Node
	switch {
	case resp.Error != nil:
		body = verify.ExpectNoError("body", resp.Error)
	case resp.Pet != nil:
		body = env.Engine.Compare("body", []entity.Pet{expected}, []entity.Pet{*resp.Pet})
	default:
		return nil, fmt.Errorf("%s: %w", label, ErrUnexpectedBody)
	}

	return assertion.Container(label,
		verify.ExpectStatus("status", 200, resp.StatusCode),
		verify.ExpectContentType("contentType", contentTypeJSON, resp.ContentType),
		body,
	), nil
}

// expectError builds the tree of a case expecting an error response.
func expectError(label string, resp probe.Response, want verify.ErrorExpectation) *assertion.Node {
	var body *assertion.Node
	if resp.Error == nil {
		got := "empty body"
		if resp.Pet != nil {
			got = fmt.Sprintf("%s %d", resp.Pet.Type, resp.Pet.ID)
		}
		body = assertion.Failing("body", "expected error response, got "+got)
	} else {
		body = verify.CompareErrorBody("body", *resp.Error, want)
	}

	return assertion.Container(label,
		verify.ExpectStatus("status", want.StatusCode, resp.StatusCode),
		verify.ExpectContentType("contentType", contentTypeJSON, resp.ContentType),
		body,
	)
}
