package formpull

import "context"

// Endpoint names a resource exposed by the source system's API.
type Endpoint string

// EndpointData serves a single record page, keyed by the "id" parameter.
const EndpointData Endpoint = "data"

// MethodGet is the read method understood by every Fetcher.
const MethodGet = "GET"

// Request describes one call against the source system's API.
type Request struct {
	Endpoint   Endpoint
	Method     string
	Parameters map[string]string
}

// Response is the envelope returned by the source system.
// ResponseData holds a complete HTML document.
type Response struct {
	ResponseData string `json:"responseData"`
}

// Fetcher retrieves records from the source system's API.
type Fetcher interface {
	// FetchData performs the request and returns the decoded envelope.
	// A nil response with a nil error means the endpoint had nothing to return.
	// The flag is passed through to the source system unchanged.
	FetchData(ctx context.Context, req Request, flag bool) (*Response, error)
}

// Logger receives error reports.
// *slog.Logger satisfies this interface.
type Logger interface {
	Error(msg string, args ...any)
}
