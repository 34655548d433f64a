// Package extract pulls a single client record out of the source system by
// fetching its form page and reading the known form fields.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/formpull"
)

// ErrorPagePhrase marks the page the source system renders when a record
// cannot be shown.
const ErrorPagePhrase = "Oops! Something went wrong"

// Selectors for the fields read from a record page.
const (
	SelectedOptionSelector = `#dropdown option[selected="selected"]`
	FirstNameSelector      = "#firstField"
	LastNameSelector       = "#lastField"
	EmailSelector          = "#emailField"
	RoleSelector           = ".roleField"
	IsActiveSelector       = "#isActiveField"
	PhoneSelector          = "#phoneField"
)

// unselectedOption is the placeholder value of the dropdown's empty choice.
const unselectedOption = "0"

var _ formpull.RecordExtractor = (*Extractor)(nil)

// Extractor fetches and reads record pages.
// It holds no state between calls; every call re-fetches.
type Extractor struct {
	Fetcher formpull.Fetcher
	Parser  formpull.Parser

	// Logger receives the report for fetches that return nothing.
	// Defaults to slog.Default().
	Logger formpull.Logger
}

// Extract fetches the page for id and reads its fields.
//
// It returns a FetchMissing result when the fetcher has nothing for id, and a
// NotFound result when the page shows the error banner. Fetch and parse
// errors are returned unchanged.
func (e *Extractor) Extract(ctx context.Context, id string) (*formpull.Result, error) {
	resp, err := e.Fetcher.FetchData(ctx, formpull.Request{
		Endpoint:   formpull.EndpointData,
		Method:     formpull.MethodGet,
		Parameters: map[string]string{"id": id},
	}, false)
	if err != nil {
		return nil, err
	}

	if resp == nil {
		e.logger().Error(fmt.Sprintf("failed to retrieve details for identifier %s", id), "id", id)
		return formpull.FetchMissing(), nil
	}

	doc, err := e.Parser.Parse(resp.ResponseData)
	if err != nil {
		return nil, err
	}

	body, err := doc.BodyHTML()
	if err != nil {
		return nil, err
	}
	if strings.Contains(body, ErrorPagePhrase) {
		return formpull.NotFound(id), nil
	}

	return formpull.Found(readRecord(doc, id)), nil
}

func (e *Extractor) logger() formpull.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func readRecord(doc formpull.Document, id string) *formpull.Record {
	isActive := formpull.Get(doc.Query(IsActiveSelector), "value")

	return &formpull.Record{
		ID:                  id,
		SelectedIdentifiers: selectedIdentifiers(doc),
		FirstName:           formpull.Get(doc.Query(FirstNameSelector), "value"),
		LastName:            formpull.Get(doc.Query(LastNameSelector), "value"),
		EmailAddress:        formpull.Get(doc.Query(EmailSelector), "value"),
		Role:                formpull.Get(doc.Query(RoleSelector), "textContent"),
		IsActive:            isActive != nil && *isActive == "True",
		Phone:               formpull.Get(doc.Query(PhoneSelector), "value"),
	}
}

// selectedIdentifiers returns the values of the selected dropdown options in
// document order, skipping the empty choice. Never empty.
func selectedIdentifiers(doc formpull.Document) []string {
	var ids []string
	for _, el := range doc.QueryAll(SelectedOptionSelector) {
		v := formpull.Get(el, "value")
		if v != nil && *v == unselectedOption {
			continue
		}
		ids = append(ids, derefOr(v, ""))
	}
	if len(ids) == 0 {
		return []string{formpull.DefaultSelectedIdentifier}
	}
	return ids
}

func derefOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
