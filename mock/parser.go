package mock

import "github.com/fwojciec/formpull"

var _ formpull.Parser = (*Parser)(nil)

// Parser is a mock implementation of formpull.Parser.
type Parser struct {
	ParseFn func(html string) (formpull.Document, error)
}

func (p *Parser) Parse(html string) (formpull.Document, error) {
	return p.ParseFn(html)
}

var _ formpull.Document = (*Document)(nil)

// Document is a mock implementation of formpull.Document.
type Document struct {
	BodyHTMLFn func() (string, error)
	QueryFn    func(selector string) formpull.Element
	QueryAllFn func(selector string) []formpull.Element
}

func (d *Document) BodyHTML() (string, error) {
	return d.BodyHTMLFn()
}

func (d *Document) Query(selector string) formpull.Element {
	return d.QueryFn(selector)
}

func (d *Document) QueryAll(selector string) []formpull.Element {
	return d.QueryAllFn(selector)
}

var _ formpull.Element = (*Element)(nil)

// Element is a mock implementation of formpull.Element.
type Element struct {
	PropertyFn func(name string) (string, bool)
}

func (e *Element) Property(name string) (string, bool) {
	return e.PropertyFn(name)
}
