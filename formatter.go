package formpull

import (
	"strconv"
	"strings"
)

// FormatResult renders a result as "key: value" lines for terminal display.
// Absent fields are shown as "(absent)".
func FormatResult(r *Result) string {
	switch {
	case r == nil || r.IsFetchMissing():
		return "status: fetch returned no data"
	case r.Record == nil:
		return "status: " + string(r.Outcome)
	}

	rec := r.Record
	lines := []string{"id: " + rec.ID}
	if r.IsNotFound() {
		lines = append(lines, "status: not found")
	} else {
		lines = append(lines, "selectedIdentifiers: "+strings.Join(rec.SelectedIdentifiers, ", "))
	}
	lines = append(lines,
		"firstName: "+formatField(rec.FirstName),
		"lastName: "+formatField(rec.LastName),
	)
	if r.IsFound() {
		lines = append(lines,
			"emailAddress: "+formatField(rec.EmailAddress),
			"role: "+formatField(rec.Role),
		)
	}
	lines = append(lines, "isActive: "+strconv.FormatBool(rec.IsActive))
	if r.IsFound() {
		lines = append(lines, "phone: "+formatField(rec.Phone))
	}

	return strings.Join(lines, "\n")
}

func formatField(v *string) string {
	if v == nil {
		return "(absent)"
	}
	return strconv.Quote(*v)
}
