// Package probe issues search and update requests against the inventory API.
//
// A Client holds the shared transport: HTTP client, rate limiter and optional
// circuit breaker. Each verification case opens its own Session, which carries
// fresh default headers and a request id, so cases never share mutable state.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"petstore-verify/internal/domain/entity"
	"petstore-verify/internal/observability/logging"
	"petstore-verify/internal/observability/metrics"
	"petstore-verify/internal/observability/requestid"
	"petstore-verify/internal/observability/tracing"
	"petstore-verify/internal/resilience/circuitbreaker"
)

// Inventory endpoints, relative to the base URL.
const (
	SearchPath = "inventory/search"
	UpdatePath = "inventory/update"
)

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 1 << 20

// Config contains configuration for a probe Client.
type Config struct {
	// BaseURL is the root of the inventory API, e.g. http://localhost:8080/
	BaseURL string

	// Timeout bounds a single request. Zero means no client timeout.
	Timeout time.Duration

	// RequestsPerSecond throttles requests; zero means unlimited
	RequestsPerSecond float64

	// CircuitBreaker enables the inventory-api circuit breaker
	CircuitBreaker bool

	// Transport overrides the underlying round tripper (tests)
	Transport http.RoundTripper
}

// Client is safe for concurrent use by multiple sessions.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *RateLimiter
	breaker    *circuitbreaker.CircuitBreaker
	schema     entity.Schema
}

// NewClient creates a Client. schema decodes pets from successful responses.
func NewClient(cfg Config, schema entity.Schema) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", cfg.BaseURL)
	}
	if schema == nil {
		return nil, errors.New("schema is required")
	}

	c := &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: tracing.NewTransport(cfg.Transport),
		},
		limiter: NewRateLimiter(cfg.RequestsPerSecond, 1),
		schema:  schema,
	}
	if cfg.CircuitBreaker {
		c.breaker = circuitbreaker.New(circuitbreaker.InventoryAPIConfig())
	}
	return c, nil
}

// Params are the query parameters of search and update requests.
// PetID is a string so malformed ids can be sent on purpose.
type Params struct {
	PetType entity.PetType
	PetID   string
}

// ParamsFor returns the params addressing p.
func ParamsFor(p entity.Pet) Params {
	return Params{PetType: p.Type, PetID: strconv.FormatInt(p.ID, 10)}
}

func (p Params) query() url.Values {
	q := url.Values{}
	if p.PetType != "" {
		q.Set("petType", string(p.PetType))
	}
	if p.PetID != "" {
		q.Set("petId", p.PetID)
	}
	return q
}

// Response is a received HTTP response, decoded by status class.
// Exactly one of Pet and Error is set unless a 2xx body failed to decode.
type Response struct {
	StatusCode  int
	ContentType string
	Header      http.Header
	Body        []byte
	Pet         *entity.Pet
	Error       *entity.ErrorBody
}

// Success reports whether the status is 2xx.
func (r Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (c *Client) resolve(path string, params Params) *url.URL {
	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	u.RawQuery = params.query().Encode()
	return u
}

type rawResponse struct {
	status int
	header http.Header
	body   []byte
}

// do sends one request. Only failures without a response count against the breaker.
func (c *Client) do(ctx context.Context, req *http.Request) (rawResponse, error) {
	send := func() (rawResponse, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return rawResponse{}, err
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return rawResponse{}, fmt.Errorf("read response body: %w", err)
		}
		return rawResponse{status: resp.StatusCode, header: resp.Header, body: body}, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return rawResponse{}, err
	}
	if c.breaker == nil {
		return send()
	}
	return circuitbreaker.Run(c.breaker, send)
}

func (c *Client) decode(raw rawResponse, path string) (Response, error) {
	resp := Response{
		StatusCode:  raw.status,
		ContentType: raw.header.Get("Content-Type"),
		Header:      raw.header,
		Body:        raw.body,
	}
	if !resp.Success() {
		eb := DecodeErrorBody(raw.body, raw.status, path)
		resp.Error = &eb
		return resp, nil
	}

	p, err := entity.DecodeJSON(raw.body, c.schema)
	if err != nil {
		return resp, err
	}
	resp.Pet = &p
	return resp, nil
}

// Session is a per-case view of a Client with its own headers and request id.
// A Session is not meant to be shared between goroutines.
type Session struct {
	client    *Client
	header    http.Header
	requestID string
}

// NewSession opens a session with the default JSON headers. The request id is
// taken from ctx, or generated when ctx carries none.
func (c *Client) NewSession(ctx context.Context) *Session {
	requestID := requestid.FromContext(ctx)
	if requestID == "" {
		requestID = requestid.New()
	}
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set(requestid.RequestIDHeader, requestID)
	return &Session{client: c, header: h, requestID: requestID}
}

// RequestID returns the id sent with every request of the session.
func (s *Session) RequestID() string {
	return s.requestID
}

// SetHeader overrides a default header for the rest of the session.
func (s *Session) SetHeader(key, value string) {
	s.header.Set(key, value)
}

// FetchEntity searches for the pet addressed by params.
func (s *Session) FetchEntity(ctx context.Context, params Params) (Response, error) {
	return s.send(ctx, http.MethodGet, SearchPath, params, nil)
}

// UpdateEntity upserts p under the id and type addressed by params.
func (s *Session) UpdateEntity(ctx context.Context, params Params, p entity.Pet) (Response, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return Response{}, fmt.Errorf("marshal pet: %w", err)
	}
	return s.send(ctx, http.MethodPut, UpdatePath, params, body)
}

func (s *Session) send(ctx context.Context, method, path string, params Params, body []byte) (Response, error) {
	c := s.client
	u := c.resolve(path, params)
	op := method + " " + u.Path
	logger := logging.FromContext(ctx).With(
		slog.String("request_id", s.requestID),
		slog.String("method", method),
		slog.String("url", u.String()),
	)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return Response{}, &TransportError{Op: op, URL: u.String(), Err: err}
	}
	req.Header = s.header.Clone()

	start := time.Now()
	raw, err := c.do(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordTransportError(path, reason(err))
		logger.Warn("probe request failed",
			slog.Duration("duration", elapsed),
			slog.Any("error", err))
		return Response{}, &TransportError{Op: op, URL: u.String(), Err: err}
	}

	metrics.RecordProbeRequest(method, path, raw.status, elapsed)
	logger.Debug("probe request completed",
		slog.Int("status", raw.status),
		slog.Duration("duration", elapsed),
		slog.Int("body_bytes", len(raw.body)))

	return c.decode(raw, u.Path)
}
