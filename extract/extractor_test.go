package extract_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/fwojciec/formpull"
	"github.com/fwojciec/formpull/extract"
	"github.com/fwojciec/formpull/goquery"
	"github.com/fwojciec/formpull/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordPage is a complete record page as served by the source system.
const recordPage = `<!DOCTYPE html>
<html>
<head><title>Edit Staff</title></head>
<body>
<form id="staffForm">
	<select id="dropdown" multiple>
		<option value="0">-- none --</option>
		<option value="3" selected="selected">Downtown</option>
		<option value="5">Uptown</option>
		<option value="7" selected="selected">Airport</option>
	</select>
	<input id="firstField" name="first" value="Ada">
	<input id="lastField" name="last" value="Lovelace">
	<input id="emailField" name="email" value="ada@example.com">
	<span class="roleField">Stylist</span>
	<input id="isActiveField" type="hidden" value="True">
	<input id="phoneField" name="phone" value="555-0100">
</form>
</body>
</html>`

func staticFetcher(html string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchDataFn: func(_ context.Context, _ formpull.Request, _ bool) (*formpull.Response, error) {
			return &formpull.Response{ResponseData: html}, nil
		},
	}
}

func newExtractor(html string) *extract.Extractor {
	return &extract.Extractor{
		Fetcher: staticFetcher(html),
		Parser:  goquery.NewParser(),
		Logger: &mock.Logger{ErrorFn: func(string, ...any) {
			panic("unexpected error log")
		}},
	}
}

func page(body string) string {
	return "<html><body>" + body + "</body></html>"
}

func ptr(s string) *string { return &s }

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts all fields from a record page", func(t *testing.T) {
		t.Parallel()

		result, err := newExtractor(recordPage).Extract(context.Background(), "staff-1")

		require.NoError(t, err)
		assert.True(t, result.IsFound())
		assert.Equal(t, &formpull.Record{
			ID:                  "staff-1",
			SelectedIdentifiers: []string{"3", "7"},
			FirstName:           ptr("Ada"),
			LastName:            ptr("Lovelace"),
			EmailAddress:        ptr("ada@example.com"),
			Role:                ptr("Stylist"),
			IsActive:            true,
			Phone:               ptr("555-0100"),
		}, result.Record)
	})

	t.Run("requests the data endpoint with id and false flag", func(t *testing.T) {
		t.Parallel()

		var gotReq formpull.Request
		var gotFlag = true
		fetcher := &mock.Fetcher{
			FetchDataFn: func(_ context.Context, req formpull.Request, flag bool) (*formpull.Response, error) {
				gotReq, gotFlag = req, flag
				return &formpull.Response{ResponseData: recordPage}, nil
			},
		}

		e := &extract.Extractor{Fetcher: fetcher, Parser: goquery.NewParser()}
		_, err := e.Extract(context.Background(), "staff-1")

		require.NoError(t, err)
		assert.Equal(t, formpull.EndpointData, gotReq.Endpoint)
		assert.Equal(t, formpull.MethodGet, gotReq.Method)
		assert.Equal(t, map[string]string{"id": "staff-1"}, gotReq.Parameters)
		assert.False(t, gotFlag)
	})

	t.Run("returns not found placeholder for error page", func(t *testing.T) {
		t.Parallel()

		html := page(`<div class="alert"><h1>Oops! Something went wrong</h1></div>
			<input id="firstField" value="Ada">`)

		result, err := newExtractor(html).Extract(context.Background(), "staff-9")

		require.NoError(t, err)
		assert.True(t, result.IsNotFound())
		assert.Equal(t, formpull.NewNotFoundRecord("staff-9"), result.Record)

		data, err := json.Marshal(result.Record)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"staff-9","firstName":"Unknown","lastName":"","isActive":false}`, string(data))
	})

	t.Run("detects error phrase inside attributes", func(t *testing.T) {
		t.Parallel()

		html := page(`<div data-msg="Oops! Something went wrong"></div>`)

		result, err := newExtractor(html).Extract(context.Background(), "staff-9")

		require.NoError(t, err)
		assert.True(t, result.IsNotFound())
	})

	t.Run("ignores error phrase outside body", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Oops! Something went wrong</title></head><body></body></html>`

		result, err := newExtractor(html).Extract(context.Background(), "staff-9")

		require.NoError(t, err)
		assert.True(t, result.IsFound())
	})

	t.Run("logs once and returns fetch missing when fetcher returns nothing", func(t *testing.T) {
		t.Parallel()

		var calls []string
		e := &extract.Extractor{
			Fetcher: &mock.Fetcher{
				FetchDataFn: func(context.Context, formpull.Request, bool) (*formpull.Response, error) {
					return nil, nil
				},
			},
			Parser: &mock.Parser{ParseFn: func(string) (formpull.Document, error) {
				t.Fatal("parser must not be called")
				return nil, nil
			}},
			Logger: &mock.Logger{ErrorFn: func(msg string, args ...any) {
				calls = append(calls, msg+fmt.Sprint(args...))
			}},
		}

		result, err := e.Extract(context.Background(), "staff-404")

		require.NoError(t, err)
		assert.True(t, result.IsFetchMissing())
		assert.Nil(t, result.Record)
		require.Len(t, calls, 1)
		assert.Contains(t, calls[0], "staff-404")
	})

	t.Run("logs through a slog logger", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		e := &extract.Extractor{
			Fetcher: &mock.Fetcher{
				FetchDataFn: func(context.Context, formpull.Request, bool) (*formpull.Response, error) {
					return nil, nil
				},
			},
			Parser: goquery.NewParser(),
			Logger: slog.New(slog.NewTextHandler(&buf, nil)),
		}

		_, err := e.Extract(context.Background(), "staff-404")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "id=staff-404")
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		t.Parallel()

		fetchErr := errors.New("connection refused")
		e := &extract.Extractor{
			Fetcher: &mock.Fetcher{
				FetchDataFn: func(context.Context, formpull.Request, bool) (*formpull.Response, error) {
					return nil, fetchErr
				},
			},
			Parser: goquery.NewParser(),
		}

		result, err := e.Extract(context.Background(), "staff-1")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, fetchErr)
	})

	t.Run("propagates parse errors", func(t *testing.T) {
		t.Parallel()

		parseErr := formpull.Errorf(formpull.EINVALID, "failed to parse HTML: bad input")
		e := &extract.Extractor{
			Fetcher: staticFetcher("<html>"),
			Parser: &mock.Parser{ParseFn: func(string) (formpull.Document, error) {
				return nil, parseErr
			}},
		}

		result, err := e.Extract(context.Background(), "staff-1")

		assert.Nil(t, result)
		assert.Equal(t, formpull.EINVALID, formpull.ErrorCode(err))
	})

	t.Run("propagates body serialization errors", func(t *testing.T) {
		t.Parallel()

		bodyErr := errors.New("render failed")
		e := &extract.Extractor{
			Fetcher: staticFetcher("<html>"),
			Parser: &mock.Parser{ParseFn: func(string) (formpull.Document, error) {
				return &mock.Document{BodyHTMLFn: func() (string, error) { return "", bodyErr }}, nil
			}},
		}

		_, err := e.Extract(context.Background(), "staff-1")

		assert.ErrorIs(t, err, bodyErr)
	})
}

func TestExtractor_SelectedIdentifiers(t *testing.T) {
	t.Parallel()

	t.Run("drops zero values and keeps order", func(t *testing.T) {
		t.Parallel()

		html := page(`<select id="dropdown" multiple>
			<option value="0" selected="selected">a</option>
			<option value="3" selected="selected">b</option>
			<option value="0" selected="selected">c</option>
			<option value="7" selected="selected">d</option>
		</select>`)

		result, err := newExtractor(html).Extract(context.Background(), "x")

		require.NoError(t, err)
		assert.Equal(t, []string{"3", "7"}, result.Record.SelectedIdentifiers)
	})

	t.Run("defaults to one when only zero is selected", func(t *testing.T) {
		t.Parallel()

		html := page(`<select id="dropdown"><option value="0" selected="selected">none</option></select>`)

		result, err := newExtractor(html).Extract(context.Background(), "x")

		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, result.Record.SelectedIdentifiers)
	})

	t.Run("defaults to one when dropdown is missing", func(t *testing.T) {
		t.Parallel()

		result, err := newExtractor(page("")).Extract(context.Background(), "x")

		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, result.Record.SelectedIdentifiers)
	})

	t.Run("ignores options outside dropdown and unselected options", func(t *testing.T) {
		t.Parallel()

		html := page(`<select id="other"><option value="9" selected="selected">x</option></select>
			<select id="dropdown"><option value="4">y</option><option value="5" selected="selected">z</option></select>`)

		result, err := newExtractor(html).Extract(context.Background(), "x")

		require.NoError(t, err)
		assert.Equal(t, []string{"5"}, result.Record.SelectedIdentifiers)
	})

	t.Run("uses option text when value attribute is missing", func(t *testing.T) {
		t.Parallel()

		html := page(`<select id="dropdown"><option selected="selected"> 12 </option></select>`)

		result, err := newExtractor(html).Extract(context.Background(), "x")

		require.NoError(t, err)
		assert.Equal(t, []string{"12"}, result.Record.SelectedIdentifiers)
	})
}

func TestExtractor_IsActive(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		field string
		want  bool
	}{
		{name: "exact True", field: `<input id="isActiveField" value="True">`, want: true},
		{name: "lowercase true", field: `<input id="isActiveField" value="true">`},
		{name: "numeric one", field: `<input id="isActiveField" value="1">`},
		{name: "empty value", field: `<input id="isActiveField" value="">`},
		{name: "no value attribute", field: `<input id="isActiveField">`},
		{name: "missing element", field: ``},
		{name: "select with last selected True", field: `<select id="isActiveField"><option value="False" selected>No</option><option value="True" selected>Yes</option></select>`, want: true},
		{name: "select skipping disabled placeholder", field: `<select id="isActiveField"><option value="False" disabled>No</option><option value="True">Yes</option></select>`, want: true},
		{name: "checkbox without value", field: `<input id="isActiveField" type="checkbox">`},
		{name: "select with True chosen", field: `<select id="isActiveField"><option value="False">No</option><option value="True" selected>Yes</option></select>`, want: true},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result, err := newExtractor(page(tc.field)).Extract(context.Background(), "x")

			require.NoError(t, err)
			assert.Equal(t, tc.want, result.Record.IsActive)
		})
	}
}

func TestExtractor_OptionalFields(t *testing.T) {
	t.Parallel()

	t.Run("missing elements are absent", func(t *testing.T) {
		t.Parallel()

		result, err := newExtractor(page(`<p>nothing here</p>`)).Extract(context.Background(), "x")

		require.NoError(t, err)
		rec := result.Record
		assert.Equal(t, "x", rec.ID)
		assert.Nil(t, rec.FirstName)
		assert.Nil(t, rec.LastName)
		assert.Nil(t, rec.EmailAddress)
		assert.Nil(t, rec.Role)
		assert.Nil(t, rec.Phone)
		assert.False(t, rec.IsActive)
	})

	t.Run("checkbox without value attribute reads as on", func(t *testing.T) {
		t.Parallel()

		result, err := newExtractor(page(`<input id="phoneField" type="checkbox">`)).Extract(context.Background(), "x")

		require.NoError(t, err)
		assert.Equal(t, ptr("on"), result.Record.Phone)
	})

	t.Run("email value is trimmed", func(t *testing.T) {
		t.Parallel()

		result, err := newExtractor(page(`<input id="emailField" type="email" value="  ada@example.com  ">`)).Extract(context.Background(), "x")

		require.NoError(t, err)
		assert.Equal(t, ptr("ada@example.com"), result.Record.EmailAddress)
	})

	t.Run("input without value attribute reads as empty string", func(t *testing.T) {
		t.Parallel()

		result, err := newExtractor(page(`<input id="phoneField">`)).Extract(context.Background(), "x")

		require.NoError(t, err)
		require.NotNil(t, result.Record.Phone)
		assert.Equal(t, "", *result.Record.Phone)
	})

	t.Run("role reads text content not value", func(t *testing.T) {
		t.Parallel()

		html := page(`<div class="roleField" value="ignored">Front <b>Desk</b></div><div class="roleField">Second</div>`)

		result, err := newExtractor(html).Extract(context.Background(), "x")

		require.NoError(t, err)
		assert.Equal(t, ptr("Front Desk"), result.Record.Role)
	})

	t.Run("non-form element without value is absent", func(t *testing.T) {
		t.Parallel()

		result, err := newExtractor(page(`<span id="emailField">ada@example.com</span>`)).Extract(context.Background(), "x")

		require.NoError(t, err)
		assert.Nil(t, result.Record.EmailAddress)
	})

	t.Run("id is returned verbatim", func(t *testing.T) {
		t.Parallel()

		for _, id := range []string{"42", " padded ", "ünïcode/ID?x=1"} {
			result, err := newExtractor(page("")).Extract(context.Background(), id)

			require.NoError(t, err)
			assert.Equal(t, id, result.Record.ID)
		}
	})
}
