package probe_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petstore-verify/internal/catalog"
	"petstore-verify/internal/domain/entity"
	"petstore-verify/internal/infra/inventorytest"
	"petstore-verify/internal/infra/probe"
	"petstore-verify/internal/observability/requestid"
	"petstore-verify/tests/fixtures"
)

func newClient(t *testing.T, baseURL string, mutate ...func(*probe.Config)) *probe.Client {
	t.Helper()
	cfg := probe.Config{BaseURL: baseURL, Timeout: 2 * time.Second}
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := probe.NewClient(cfg, fixtures.Schema)
	require.NoError(t, err)
	return c
}

func newServer(t *testing.T) *inventorytest.Server {
	t.Helper()
	srv := inventorytest.NewServer(fixtures.Schema, fixtures.Inventory())
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		schema  entity.Schema
	}{
		{name: "relative url", baseURL: "localhost:8080", schema: fixtures.Schema},
		{name: "unparsable url", baseURL: "http://[::1", schema: fixtures.Schema},
		{name: "nil schema", baseURL: "http://localhost:8080/", schema: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := probe.NewClient(probe.Config{BaseURL: tt.baseURL}, tt.schema)
			assert.Error(t, err)
		})
	}
}

func TestFetchEntity_Found(t *testing.T) {
	srv := newServer(t)
	s := newClient(t, srv.URL+"/").NewSession(context.Background())

	resp, err := s.FetchEntity(context.Background(), probe.Params{PetType: entity.PetTypeDog, PetID: "1"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.ContentType)
	assert.True(t, resp.Success())
	assert.Nil(t, resp.Error)
	require.NotNil(t, resp.Pet)
	assert.Equal(t, int64(1), resp.Pet.ID)
	assert.Equal(t, "199.99", resp.Pet.Price.String())
	breed, _ := resp.Pet.Attribute(catalog.AttrBreed)
	assert.Equal(t, catalog.BreedGreyHound, breed)
}

func TestFetchEntity_NotFoundPlainMessage(t *testing.T) {
	srv := newServer(t)
	s := newClient(t, srv.URL+"/").NewSession(context.Background())

	resp, err := s.FetchEntity(context.Background(), probe.Params{PetType: entity.PetTypeDog, PetID: "99999"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, resp.Pet)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "0 results found for search criteria for pet id[99999] petType[DOG] Please try again!!", resp.Error.Message)
	assert.Equal(t, "/inventory/search", resp.Error.Path)
	assert.Equal(t, http.StatusBadRequest, resp.Error.StatusCode)
	assert.Empty(t, resp.Error.ErrorType)
}

func TestFetchEntity_InvalidIDStructuredError(t *testing.T) {
	srv := newServer(t)
	s := newClient(t, srv.URL+"/").NewSession(context.Background())

	resp, err := s.FetchEntity(context.Background(), probe.Params{PetType: entity.PetTypeDog, PetID: "invalid"})
	require.NoError(t, err)

	require.NotNil(t, resp.Error)
	assert.Equal(t, "Bad Request", resp.Error.ErrorType)
	assert.Equal(t, `Failed to convert value of type 'java.lang.String' to required type 'int'; For input string: "invalid"`, resp.Error.Message)
	assert.Equal(t, "/inventory/search", resp.Error.Path)
	assert.Equal(t, http.StatusBadRequest, resp.Error.StatusCode)
}

func TestUpdateEntity_Upserts(t *testing.T) {
	srv := newServer(t)
	s := newClient(t, srv.URL+"/").NewSession(context.Background())

	dog := fixtures.Dog(0, catalog.BreedGreyHound, "299.99", fixtures.WithGender(entity.GenderMale))
	resp, err := s.UpdateEntity(context.Background(), probe.Params{PetType: entity.PetTypeDog, PetID: "99999"}, dog)
	require.NoError(t, err)

	require.NotNil(t, resp.Pet)
	assert.Equal(t, int64(99999), resp.Pet.ID)
	assert.Equal(t, entity.GenderMale, resp.Pet.Gender)

	stored, ok := srv.Pet(99999)
	require.True(t, ok)
	assert.True(t, stored.Price.Equal(dog.Price))
}

func TestSession_SendsDefaultHeaders(t *testing.T) {
	srv := newServer(t)
	ctx := requestid.WithRequestID(context.Background(), "case-42")
	s := newClient(t, srv.URL+"/").NewSession(ctx)
	assert.Equal(t, "case-42", s.RequestID())

	_, err := s.FetchEntity(ctx, probe.Params{PetType: entity.PetTypeCat, PetID: "3"})
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "application/json", reqs[0].Header.Get("Content-Type"))
	assert.Equal(t, "application/json", reqs[0].Header.Get("Accept"))
	assert.Equal(t, "case-42", reqs[0].RequestID)
	assert.Equal(t, "/inventory/search", reqs[0].Path)
	assert.Equal(t, "petId=3&petType=CAT", reqs[0].Query)
}

func TestSession_HeadersAreIsolated(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv.URL+"/")

	first := c.NewSession(context.Background())
	first.SetHeader("Accept", "text/plain")
	second := c.NewSession(context.Background())
	assert.NotEqual(t, first.RequestID(), second.RequestID())

	_, err := second.FetchEntity(context.Background(), probe.Params{PetType: entity.PetTypeDog, PetID: "1"})
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "application/json", reqs[0].Header.Get("Accept"))
}

func TestFetchEntity_BaseURLWithPrefix(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := newClient(t, srv.URL+"/api/").NewSession(context.Background())
	resp, err := s.FetchEntity(context.Background(), probe.Params{PetType: entity.PetTypeDog, PetID: "1"})
	require.NoError(t, err)

	assert.Equal(t, "/api/inventory/search", gotPath)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "/api/inventory/search", resp.Error.Path)
	assert.Equal(t, http.StatusNotFound, resp.Error.StatusCode)
	assert.Empty(t, resp.Error.Message)
}

func TestFetchEntity_MalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"petId":1,"petType":"DOG","animalType":"DOMESTIC","skinType":"FUR","gender":"FEMALE","price":"abc","breed":"POODLE"}`))
	}))
	defer srv.Close()

	s := newClient(t, srv.URL+"/").NewSession(context.Background())
	resp, err := s.FetchEntity(context.Background(), probe.Params{PetType: entity.PetTypeDog, PetID: "1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrMalformedEntity)

	var me *entity.MalformedEntityError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, entity.AttrPrice, me.Field)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, resp.Pet)
}

func TestFetchEntity_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/"
	srv.Close()

	s := newClient(t, url).NewSession(context.Background())
	_, err := s.FetchEntity(context.Background(), probe.Params{PetType: entity.PetTypeDog, PetID: "1"})
	require.Error(t, err)

	var te *probe.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "GET /inventory/search", te.Op)
	assert.Contains(t, te.URL, "petId=1")
}

func TestFetchEntity_ContextCanceled(t *testing.T) {
	srv := newServer(t)
	s := newClient(t, srv.URL+"/").NewSession(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FetchEntity(ctx, probe.Params{PetType: entity.PetTypeDog, PetID: "1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFetchEntity_CircuitOpensAfterTransportFailures(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/"
	srv.Close()

	s := newClient(t, url, func(cfg *probe.Config) { cfg.CircuitBreaker = true }).NewSession(context.Background())
	params := probe.Params{PetType: entity.PetTypeDog, PetID: "1"}

	for i := 0; i < 4; i++ {
		_, err := s.FetchEntity(context.Background(), params)
		require.Error(t, err)
	}

	_, err := s.FetchEntity(context.Background(), params)
	require.Error(t, err)
	assert.ErrorContains(t, err, "circuit breaker is open")
}

func TestFetchEntity_ErrorStatusDoesNotTripBreaker(t *testing.T) {
	srv := newServer(t)
	s := newClient(t, srv.URL+"/", func(cfg *probe.Config) { cfg.CircuitBreaker = true }).NewSession(context.Background())

	for i := 0; i < 6; i++ {
		resp, err := s.FetchEntity(context.Background(), probe.Params{PetType: entity.PetTypeDog, PetID: "99999"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
}
