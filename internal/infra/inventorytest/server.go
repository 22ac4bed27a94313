// Package inventorytest provides an in-process inventory service implementing the
// search and update contract, for probe and scenario tests.
package inventorytest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"petstore-verify/internal/domain/entity"
	"petstore-verify/internal/observability/requestid"
	"petstore-verify/internal/observability/tracing"
)

// Endpoint paths served by the fake.
const (
	SearchPath = "/inventory/search"
	UpdatePath = "/inventory/update"
)

// RecordedRequest captures what the fake received.
type RecordedRequest struct {
	Method    string
	Path      string
	Query     string
	Header    http.Header
	Body      []byte
	RequestID string
}

// Server is a fake inventory service backed by an in-memory map.
type Server struct {
	*httptest.Server

	schema entity.Schema

	mu       sync.Mutex
	pets     map[int64]entity.Pet
	requests []RecordedRequest
}

// NewServer starts a fake seeded with pets. Close it when done.
func NewServer(schema entity.Schema, pets []entity.Pet) *Server {
	s := &Server{
		schema: schema,
		pets:   make(map[int64]entity.Pet, len(pets)),
	}
	for _, p := range pets {
		s.pets[p.ID] = p.Clone()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+SearchPath, s.handleSearch)
	mux.HandleFunc("PUT "+UpdatePath, s.handleUpdate)

	s.Server = httptest.NewServer(s.record(requestid.Echo(tracing.Middleware(mux))))
	return s
}

// Pet returns the stored pet with id.
func (s *Server) Pet(id int64) (entity.Pet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pets[id]
	return p.Clone(), ok
}

// Put stores p, replacing any pet with the same ID.
func (s *Server) Put(p entity.Pet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pets[p.ID] = p.Clone()
}

// Requests returns the requests received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.RawQuery,
			Header:    r.Header.Clone(),
			Body:      body,
			RequestID: r.Header.Get(requestid.RequestIDHeader),
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	petType := r.URL.Query().Get("petType")
	rawID := r.URL.Query().Get("petId")
	id, err := strconv.Atoi(rawID)
	if err != nil {
		writeConversionError(w, r, rawID)
		return
	}

	s.mu.Lock()
	p, ok := s.pets[int64(id)]
	s.mu.Unlock()
	if !ok || string(p.Type) != petType {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = fmt.Fprintf(w, "0 results found for search criteria for pet id[%d] petType[%s] Please try again!!", id, petType)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	petType := r.URL.Query().Get("petType")
	rawID := r.URL.Query().Get("petId")
	id, err := strconv.Atoi(rawID)
	if err != nil {
		writeConversionError(w, r, rawID)
		return
	}

	body, _ := io.ReadAll(r.Body)
	p, err := entity.DecodeJSON(body, s.schema)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if string(p.Type) != petType {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("petType[%s] does not match body petType[%s]", petType, p.Type))
		return
	}

	// Upsert: the query id wins over the body id.
	p = p.WithID(int64(id))
	s.Put(p)
	writeJSON(w, http.StatusOK, p)
}

func writeConversionError(w http.ResponseWriter, r *http.Request, raw string) {
	msg := fmt.Sprintf("Failed to convert value of type 'java.lang.String' to required type 'int'; For input string: %q", raw)
	writeError(w, r, http.StatusBadRequest, msg)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, entity.ErrorBody{
		ErrorType:  http.StatusText(status),
		Message:    message,
		Path:       r.URL.Path,
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// writeJSON writes v with the given status. Every response of the fake is application/json,
// including the plain-text not-found message.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing left but to log.
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", status),
			slog.Any("error", err))
	}
}
