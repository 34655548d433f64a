package formpull

import "context"

// Outcome identifies which shape a Result carries.
type Outcome string

// Outcome constants for Result.
const (
	// OutcomeFound means the page loaded and its fields were extracted.
	OutcomeFound Outcome = "found"

	// OutcomeNotFound means the page loaded but showed the error banner.
	OutcomeNotFound Outcome = "not_found"

	// OutcomeFetchMissing means the source system returned nothing at all.
	// It is deliberately kept apart from OutcomeNotFound.
	OutcomeFetchMissing Outcome = "fetch_missing"
)

// Placeholder values used for records behind an error page.
const (
	UnknownFirstName = "Unknown"

	// DefaultSelectedIdentifier is used when no dropdown option qualifies.
	DefaultSelectedIdentifier = "1"
)

// Record is the flat set of form values pulled from one page.
// A nil string pointer means the field was not present on the page.
type Record struct {
	ID                  string   `json:"id"`
	SelectedIdentifiers []string `json:"selectedIdentifiers,omitempty"`
	FirstName           *string  `json:"firstName,omitempty"`
	LastName            *string  `json:"lastName,omitempty"`
	EmailAddress        *string  `json:"emailAddress,omitempty"`
	Role                *string  `json:"role,omitempty"`
	IsActive            bool     `json:"isActive"`
	Phone               *string  `json:"phone,omitempty"`
}

// NewNotFoundRecord returns the placeholder record for an identifier whose
// page could not be shown.
func NewNotFoundRecord(id string) *Record {
	first, last := UnknownFirstName, ""
	return &Record{
		ID:        id,
		FirstName: &first,
		LastName:  &last,
		IsActive:  false,
	}
}

// Result is the outcome of extracting one identifier.
// Record is nil when Outcome is OutcomeFetchMissing.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Record  *Record `json:"record,omitempty"`
}

// Found wraps an extracted record.
func Found(rec *Record) *Result {
	return &Result{Outcome: OutcomeFound, Record: rec}
}

// NotFound returns the error-page result for id.
func NotFound(id string) *Result {
	return &Result{Outcome: OutcomeNotFound, Record: NewNotFoundRecord(id)}
}

// FetchMissing returns the result for a fetch that produced no data.
func FetchMissing() *Result {
	return &Result{Outcome: OutcomeFetchMissing}
}

// IsFound reports whether the result carries an extracted record.
func (r *Result) IsFound() bool { return r.Outcome == OutcomeFound }

// IsNotFound reports whether the page showed the error banner.
func (r *Result) IsNotFound() bool { return r.Outcome == OutcomeNotFound }

// IsFetchMissing reports whether the source system returned nothing.
func (r *Result) IsFetchMissing() bool { return r.Outcome == OutcomeFetchMissing }

// RecordExtractor reads one record from the source system.
type RecordExtractor interface {
	// Extract returns the result for id. Errors are reserved for failures
	// the caller must handle; a missing or hidden record is a Result.
	Extract(ctx context.Context, id string) (*Result, error)
}
