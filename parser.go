package formpull

// Parser turns an HTML string into a queryable document.
type Parser interface {
	Parse(html string) (Document, error)
}

// Document is a parsed HTML page.
type Document interface {
	// BodyHTML returns the serialized markup inside <body>.
	BodyHTML() (string, error)

	// Query returns the first element matching the CSS selector,
	// or nil if nothing matches.
	Query(selector string) Element

	// QueryAll returns every element matching the CSS selector in document order.
	QueryAll(selector string) []Element
}

// Element is a single node in a parsed document.
type Element interface {
	// Property returns the named DOM property and whether the element has it.
	// "value" and "textContent" follow browser semantics; any other name
	// is looked up as an attribute.
	Property(name string) (string, bool)
}

// Get returns the named property of el, or nil if el is nil or lacks it.
func Get(el Element, name string) *string {
	if el == nil {
		return nil
	}
	v, ok := el.Property(name)
	if !ok {
		return nil
	}
	return &v
}
