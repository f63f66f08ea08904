package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the backend address used when none is configured.
	DefaultBaseURL = "http://localhost:8000/api"
	// Timeout bounds every request.
	Timeout = 10 * time.Second

	maxBodySize = 10 << 20 // 10 MB
)

// TokenSource yields the current session token, or "" when there is none.
type TokenSource interface {
	Token() string
}

// Request describes a single backend call. Path is relative to the base URL.
// Header entries override the client's defaults, including Authorization.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
}

// Response is the backend's reply, passed through unvalidated.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Envelope is the backend's standard wrapper around response data.
type Envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// Envelope decodes the response body as an Envelope.
func (r *Response) Envelope() (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(r.Body, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &env, nil
}

// Option configures a Client.
type Option func(*Client)

// WithTransport sets the round tripper under the HTTP client.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.httpClient.Transport = rt }
}

// WithLimiter throttles outgoing requests.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// Client is the travel portal API client. Every backend call goes through Do.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	mu        sync.Mutex
	nextSubID int
	onExpired map[int]func()
}

// New creates a new API client. tokens may be nil for anonymous use.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: Timeout,
		},
		logger:    slog.Default(),
		onExpired: make(map[int]func()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend address requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// OnSessionExpired registers fn to run whenever the backend rejects the
// session token. Handlers run synchronously before the failing call returns.
// The returned func removes the handler.
func (c *Client) OnSessionExpired(fn func()) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.onExpired[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.onExpired, id)
		c.mu.Unlock()
	}
}

func (c *Client) fireExpired() {
	c.mu.Lock()
	handlers := make([]func(), 0, len(c.onExpired))
	for _, fn := range c.onExpired {
		handlers = append(handlers, fn)
	}
	c.mu.Unlock()
	for _, fn := range handlers {
		fn()
	}
}

func validMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// Do performs req. A non-nil error is always a *Error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	if !validMethod(req.Method) {
		return nil, &Error{Kind: KindUnknown, Message: fmt.Sprintf("unsupported method %q", req.Method)}
	}

	var reqBody io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &Error{Kind: KindUnknown, Message: fmt.Sprintf("marshal body: %v", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, reqBody)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Message: fmt.Sprintf("create request: %v", err)}
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if httpReq.Header.Get("Authorization") == "" && c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			httpReq.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	log := c.logger.With(
		slog.String("method", req.Method),
		slog.String("path", req.Path),
		slog.String("request_id", requestID),
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			e := Normalize(Failure{Transport: err})
			log.Warn("request throttled", slog.String("error", e.Message))
			return nil, e
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		e := Normalize(Failure{Transport: err})
		log.Warn("request failed", slog.String("error", e.Message), slog.Duration("duration", time.Since(start)))
		return nil, e
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		e := Normalize(Failure{Transport: err})
		log.Warn("read response failed", slog.Int("status", resp.StatusCode), slog.String("error", e.Message))
		return nil, e
	}
	log.Debug("request done", slog.Int("status", resp.StatusCode), slog.Duration("duration", time.Since(start)))

	if resp.StatusCode >= 400 {
		e := Normalize(Failure{
			HasResponse: true,
			StatusCode:  resp.StatusCode,
			Body:        parseErrorBody(body),
		})
		if e.Kind == KindAuthExpired {
			log.Info("session rejected by backend")
			c.fireExpired()
		}
		return nil, e
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

func (c *Client) post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
	return err
}

// payload returns the record carried by the response: the envelope's data
// when present, otherwise the whole body.
func payload(resp *Response) json.RawMessage {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &probe); err == nil {
		if data, ok := probe["data"]; ok {
			return data
		}
	}
	return resp.Body
}

// decodeList reads a list payload, degrading to an empty slice when the
// backend sends something else.
func decodeList[T any](resp *Response) []T {
	items := []T{}
	if err := json.Unmarshal(payload(resp), &items); err != nil || items == nil {
		return []T{}
	}
	return items
}

// decodeDetail reads a single record payload, degrading to nil when the
// backend sends something that is not an object.
func decodeDetail[T any](resp *Response) *T {
	raw := bytes.TrimSpace(payload(resp))
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s%d/", prefix, id)
}
