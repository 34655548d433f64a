package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/formpull"
	"golang.org/x/net/html/atom"
)

var _ formpull.Element = (*Element)(nil)

// Element wraps a single-node goquery selection.
type Element struct {
	sel *goquery.Selection
}

// Property returns a DOM-style property of the element.
//
// "value" mirrors the browser's value property for form controls: inputs
// apply their type's value mode and sanitization, options fall back to their
// text, selects report their selected option and textareas report their
// content. Elements without a value property only report one when they
// carry a value attribute. "textContent" returns all descendant text.
// Any other name is read as an attribute.
func (e *Element) Property(name string) (string, bool) {
	switch name {
	case "value":
		return e.value()
	case "textContent":
		return e.sel.Text(), true
	default:
		return e.sel.Attr(name)
	}
}

func (e *Element) value() (string, bool) {
	switch e.sel.Get(0).DataAtom {
	case atom.Input:
		return inputValue(e.sel), true
	case atom.Button, atom.Data, atom.Param:
		return e.sel.AttrOr("value", ""), true
	case atom.Option:
		return optionValue(e.sel), true
	case atom.Textarea:
		return e.sel.Text(), true
	case atom.Select:
		return selectValue(e.sel), true
	default:
		return e.sel.Attr("value")
	}
}

const asciiWhitespace = " \t\n\f\r"

var validNumber = regexp.MustCompile(`^-?(\d+|\d*\.\d+)([eE][+-]?\d+)?$`)

var validColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// inputValue applies the input's value mode and the sanitization rules of
// its type to the value attribute.
func inputValue(sel *goquery.Selection) string {
	raw, ok := sel.Attr("value")
	switch strings.ToLower(strings.Trim(sel.AttrOr("type", ""), asciiWhitespace)) {
	case "checkbox", "radio":
		if !ok {
			return "on"
		}
		return raw
	case "hidden", "submit", "image", "reset", "button":
		return raw
	case "file":
		return ""
	case "email":
		raw = stripNewlines(raw)
		if _, multiple := sel.Attr("multiple"); multiple {
			parts := strings.Split(raw, ",")
			for i, p := range parts {
				parts[i] = strings.Trim(p, asciiWhitespace)
			}
			return strings.Join(parts, ",")
		}
		return strings.Trim(raw, asciiWhitespace)
	case "url":
		return strings.Trim(stripNewlines(raw), asciiWhitespace)
	case "number":
		if !validNumber.MatchString(raw) {
			return ""
		}
		return raw
	case "color":
		if !validColor.MatchString(raw) {
			return "#000000"
		}
		return strings.ToLower(raw)
	case "date", "month", "week", "time", "datetime-local", "range":
		return raw
	default:
		// text, search, tel, password and unknown types
		return stripNewlines(raw)
	}
}

func stripNewlines(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// optionValue returns the value attribute, or the option's text with ASCII
// whitespace stripped and collapsed.
func optionValue(sel *goquery.Selection) string {
	if v, ok := sel.Attr("value"); ok {
		return v
	}
	fields := strings.FieldsFunc(sel.Text(), func(r rune) bool {
		return strings.ContainsRune(asciiWhitespace, r)
	})
	return strings.Join(fields, " ")
}

// selectOptions returns the select's list of options: option children and
// option children of optgroup children, in tree order.
func selectOptions(sel *goquery.Selection) []*goquery.Selection {
	var options []*goquery.Selection
	sel.Children().Each(func(_ int, child *goquery.Selection) {
		switch child.Get(0).DataAtom {
		case atom.Option:
			options = append(options, child)
		case atom.Optgroup:
			child.ChildrenFiltered("option").Each(func(_ int, o *goquery.Selection) {
				options = append(options, o)
			})
		}
	})
	return options
}

func hasAttr(sel *goquery.Selection, name string) bool {
	_, ok := sel.Attr(name)
	return ok
}

// optionDisabled reports whether the option or its optgroup is disabled.
func optionDisabled(o *goquery.Selection) bool {
	if hasAttr(o, "disabled") {
		return true
	}
	parent := o.Parent()
	return parent.Length() > 0 && parent.Get(0).DataAtom == atom.Optgroup && hasAttr(parent, "disabled")
}

// displaySize returns the number of rows the select shows.
func displaySize(sel *goquery.Selection, multiple bool) int {
	if n, err := strconv.Atoi(strings.Trim(sel.AttrOr("size", ""), asciiWhitespace)); err == nil && n > 0 {
		return n
	}
	if multiple {
		return 4
	}
	return 1
}

// selectValue reports the value of the first option whose selectedness is
// true after the select's reset: a single-choice select keeps only its last
// selected option, and a drop-down with nothing selected picks its first
// enabled option. Otherwise it reports "".
func selectValue(sel *goquery.Selection) string {
	options := selectOptions(sel)
	multiple := hasAttr(sel, "multiple")

	var selected []*goquery.Selection
	for _, o := range options {
		if hasAttr(o, "selected") {
			selected = append(selected, o)
		}
	}

	switch {
	case len(selected) > 0 && multiple:
		return optionValue(selected[0])
	case len(selected) > 0:
		return optionValue(selected[len(selected)-1])
	case multiple || displaySize(sel, multiple) > 1:
		return ""
	}

	for _, o := range options {
		if !optionDisabled(o) {
			return optionValue(o)
		}
	}
	return ""
}
