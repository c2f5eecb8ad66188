// Package client talks to the book tracker REST API. Every method performs
// exactly one request and never retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"booktracker/internal/schema"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	requestIDHeader  = "X-Request-Id"
	defaultUserAgent = "booktracker-client/1.0"
)

// ErrEmptyID is returned when a user or book id argument is empty.
var ErrEmptyID = errors.New("empty id")

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient Doer
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	validate   bool
	log        logrus.FieldLogger
}

type Option func(*Client)

// WithHTTPClient replaces the transport, e.g. with a test double.
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRateLimit paces outgoing requests. A non-positive rps leaves requests unpaced.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithResponseValidation controls whether response bodies are checked against
// the entity schema before being returned. It is enabled by default.
func WithResponseValidation(enabled bool) Option {
	return func(c *Client) {
		c.validate = enabled
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func New(baseURL string, opts ...Option) *Client {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  defaultUserAgent,
		validate:   true,
		log:        discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Code       string
	Message    string
	Body       []byte
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: unexpected status code %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: unexpected status code %d", e.Method, e.Path, e.StatusCode)
}

func newStatusError(method, path string, statusCode int, body []byte) *StatusError {
	e := &StatusError{Method: method, Path: path, StatusCode: statusCode, Body: body}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(body, &envelope) != nil || len(envelope.Error) == 0 {
		return e
	}
	// Either {"error":{"code":..,"message":..}} or {"error":"message"}.
	var detail struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(envelope.Error, &detail) == nil {
		e.Code = detail.Code
		e.Message = detail.Message
		return e
	}
	var message string
	if json.Unmarshal(envelope.Error, &message) == nil {
		e.Message = message
	}
	return e
}

func (c *Client) do(ctx context.Context, method, path string, body any, target any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	c.log.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
		"request_id":  requestID,
	}).Debug("booktracker request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(method, path, resp.StatusCode, data)
	}

	if c.validate {
		return schema.Decode(data, target)
	}
	return json.Unmarshal(data, target)
}

func call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T
	if err := c.do(ctx, method, path, body, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
