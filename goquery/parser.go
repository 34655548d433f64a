// Package goquery implements formpull.Parser on top of goquery and
// golang.org/x/net/html.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/formpull"
	"golang.org/x/net/html"
)

var _ formpull.Parser = (*Parser)(nil)

// Parser parses HTML documents into goquery-backed formpull.Documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse builds a full document tree from s. Fragments are wrapped in
// <html><body> the same way a browser would.
func (p *Parser) Parse(s string) (formpull.Document, error) {
	root, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return nil, formpull.Errorf(formpull.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: goquery.NewDocumentFromNode(root)}, nil
}

var _ formpull.Document = (*Document)(nil)

// Document is a parsed HTML page.
type Document struct {
	doc *goquery.Document
}

// BodyHTML returns the inner markup of <body>.
func (d *Document) BodyHTML() (string, error) {
	return d.doc.Find("body").First().Html()
}

// Query returns the first element matching selector, or nil.
// Invalid selectors match nothing.
func (d *Document) Query(selector string) formpull.Element {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return &Element{sel: sel}
}

// QueryAll returns all elements matching selector in document order.
func (d *Document) QueryAll(selector string) []formpull.Element {
	var elems []formpull.Element
	d.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		elems = append(elems, &Element{sel: sel})
	})
	return elems
}
