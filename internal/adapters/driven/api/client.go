// Package api provides the BdLens backend gateway client.
//
// The client maps typed operations onto the backend REST contract:
// JSON bodies, cookie credentials from the configured jar, and a single
// error type (*Error) tagged by kind. It holds no mutable per-request
// state and is safe for concurrent use.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
	"github.com/bdlens/bdlens-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Gateway = (*Client)(nil)

const (
	// DefaultBaseURL is the local development backend.
	DefaultBaseURL = "http://localhost:8000"

	// HeaderRequestID carries a per-request id for backend log correlation.
	HeaderRequestID = "X-Request-ID"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the backend root (default: http://localhost:8000).
	// A trailing slash is trimmed.
	BaseURL string

	// HTTPClient is used for all requests. A copy is taken so Jar and
	// Timeout do not leak into the caller's client.
	HTTPClient *http.Client

	// Jar carries the session cookie. Without one the client is anonymous.
	Jar http.CookieJar

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests. Zero means unthrottled.
	RequestsPerSecond float64

	// UserAgent is sent when non-empty.
	UserAgent string
}

// Client is the BdLens gateway client.
type Client struct {
	http      *http.Client
	baseURL   string
	limiter   *rate.Limiter
	userAgent string
}

// RequestOptions customises a single Do call.
type RequestOptions struct {
	// Method defaults to GET.
	Method string

	// Body is sent as-is. JSON callers pre-serialise.
	Body io.Reader

	// Header entries replace the defaults of the same name.
	Header http.Header
}

// New creates a gateway client.
func New(opts Options) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}

	hc := &http.Client{}
	if opts.HTTPClient != nil {
		copied := *opts.HTTPClient
		hc = &copied
	}
	if opts.Jar != nil {
		hc.Jar = opts.Jar
	}
	if opts.Timeout > 0 {
		hc.Timeout = opts.Timeout
	}

	c := &Client{
		http:      hc,
		baseURL:   base,
		userAgent: opts.UserAgent,
	}
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return c
}

// BaseURL returns the resolved backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs one request against endpoint (a path relative to the base URL)
// and decodes a 2xx JSON body into out. A nil out or an empty body skips
// decoding. Decoded values that implement Validate are checked, including
// each element of a decoded slice. Every failure is returned as *Error.
func (c *Client) Do(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &Error{Kind: KindTransport, Message: err.Error(), Err: err}
		}
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, opts.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Message: fmt.Sprintf("build request: %v", err), Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for name, values := range opts.Header {
		req.Header.Del(name)
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Request(logger.RequestLog{Method: method, Path: endpoint, RequestID: requestID, Duration: time.Since(start), Err: err})
		return &Error{Kind: KindTransport, Message: err.Error(), RequestID: requestID, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	logger.Request(logger.RequestLog{Method: method, Path: endpoint, RequestID: requestID, Status: resp.StatusCode, Duration: time.Since(start)})
	if err != nil {
		return &Error{
			Kind:       KindTransport,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("read response: %v", err),
			RequestID:  requestID,
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := statusError(resp.StatusCode, body)
		apiErr.RequestID = requestID
		return apiErr
	}

	if err := decode(body, out); err != nil {
		err.StatusCode = resp.StatusCode
		err.RequestID = requestID
		return err
	}
	return nil
}

// getJSON is Do for a bodiless GET.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	return c.Do(ctx, endpoint, RequestOptions{Method: http.MethodGet}, out)
}

// sendJSON marshals in and sends it with method.
func (c *Client) sendJSON(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindDecode, Message: "encode request: " + err.Error(), Err: err}
		}
		body = bytes.NewReader(data)
	}
	return c.Do(ctx, endpoint, RequestOptions{Method: method, Body: body}, out)
}
