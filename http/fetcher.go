// Package http provides an HTTP-based implementation of formpull.Fetcher
// for the source system's JSON API.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fwojciec/formpull"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// RequestIDHeader carries a unique ID per request so calls can be matched
// against the source system's access logs.
const RequestIDHeader = "X-Request-ID"

// Ensure Fetcher implements formpull.Fetcher at compile time.
var _ formpull.Fetcher = (*Fetcher)(nil)

// Fetcher calls the source system's API over HTTP and decodes the
// {"responseData": "<html>"} envelope it returns.
type Fetcher struct {
	baseURL   string
	client    *http.Client
	timeout   time.Duration
	limiter   *rate.Limiter
	token     string
	flagParam string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
// Ignored when WithClient is used.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithClient uses the given HTTP client instead of building one.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithRateLimit caps outgoing requests at rps per second with no bursting.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		if rps <= 0 {
			f.limiter = nil
			return
		}
		f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(f *Fetcher) {
		f.token = token
	}
}

// WithFlagParam forwards the fetch flag as a query parameter with the given
// name. When unset the flag is not sent.
func WithFlagParam(name string) Option {
	return func(f *Fetcher) {
		f.flagParam = name
	}
}

// NewFetcher creates a new Fetcher for the API rooted at baseURL.
func NewFetcher(baseURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL: baseURL,
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// FetchData performs req against the API.
//
// 204 No Content, 404 Not Found and a JSON null body all mean the source
// system had nothing to return and yield a nil response without error.
func (f *Fetcher) FetchData(ctx context.Context, req formpull.Request, flag bool) (*formpull.Response, error) {
	httpReq, err := f.newRequest(ctx, req, flag)
	if err != nil {
		return nil, err
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent, http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, httpReq.URL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return decodeResponse(body)
}

func (f *Fetcher) newRequest(ctx context.Context, req formpull.Request, flag bool) (*http.Request, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return nil, formpull.Errorf(formpull.EINVALID, "invalid base URL: %v", err)
	}
	u = u.JoinPath(string(req.Endpoint))

	q := u.Query()
	for k, v := range req.Parameters {
		q.Set(k, v)
	}
	if f.flagParam != "" {
		q.Set(f.flagParam, strconv.FormatBool(flag))
	}
	u.RawQuery = q.Encode()

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	if f.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+f.token)
	}

	return httpReq, nil
}

// decodeResponse validates the envelope. responseData must be present and
// must be a string.
func decodeResponse(body []byte) (*formpull.Response, error) {
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, nil
	}

	var envelope struct {
		ResponseData *string `json:"responseData"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, formpull.Errorf(formpull.EINVALID, "invalid response body: %v", err)
	}
	if envelope.ResponseData == nil {
		return nil, formpull.Errorf(formpull.EINVALID, "response has no responseData")
	}

	return &formpull.Response{ResponseData: *envelope.ResponseData}, nil
}
