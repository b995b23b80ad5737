// Package dom is a small query and mutation layer over golang.org/x/net/html
// trees. It is the only place that knows how categories map to elements.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Element is the mutable view of one tagged element.
type Element interface {
	Attr(key string) string
	SetAttr(key, val string)
	Style(prop string) string
	SetStyle(prop, val string)
	SetDisplay(val string)
}

// Query resolves a category to the elements tagged for it. Implementations
// must not cache: the tree may change between calls.
type Query interface {
	ContentElementsFor(category string) []Element
	ShowButtonElementsFor(category string) []Element
	HideButtonElementsFor(category string) []Element
}

// None is a Query over an empty page.
var None Query = noneQuery{}

type noneQuery struct{}

func (noneQuery) ContentElementsFor(string) []Element    { return nil }
func (noneQuery) ShowButtonElementsFor(string) []Element { return nil }
func (noneQuery) HideButtonElementsFor(string) []Element { return nil }

// Attributes names the markup attributes that tag elements with a category.
type Attributes struct {
	Content    string `yaml:"content" koanf:"content"`
	ShowButton string `yaml:"show_button" koanf:"show_button"`
	HideButton string `yaml:"hide_button" koanf:"hide_button"`
}

// DefaultAttributes returns the data-framework-* attribute set.
func DefaultAttributes() Attributes {
	return Attributes{
		Content:    "data-framework-content",
		ShowButton: "data-framework-button-show",
		HideButton: "data-framework-button-hide",
	}
}

// WithDefaults fills empty attribute names from DefaultAttributes.
func (a Attributes) WithDefaults() Attributes {
	d := DefaultAttributes()
	if a.Content == "" {
		a.Content = d.Content
	}
	if a.ShowButton == "" {
		a.ShowButton = d.ShowButton
	}
	if a.HideButton == "" {
		a.HideButton = d.HideButton
	}
	return a
}

// Document is a parsed HTML page.
type Document struct {
	root  *html.Node
	attrs Attributes
}

// NewDocument wraps an existing tree.
func NewDocument(root *html.Node, attrs Attributes) *Document {
	return &Document{root: root, attrs: attrs.WithDefaults()}
}

// Parse reads a full HTML page.
func Parse(r io.Reader, attrs Attributes) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return NewDocument(root, attrs), nil
}

// ParseString is Parse over a string.
func ParseString(s string, attrs Attributes) (*Document, error) {
	return Parse(strings.NewReader(s), attrs)
}

// Root returns the underlying tree.
func (d *Document) Root() *html.Node { return d.root }

// Attributes returns the category attribute names in use.
func (d *Document) Attributes() Attributes { return d.attrs }

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning "" on error.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// FindAll returns every element in document order for which match is true.
func (d *Document) FindAll(match func(*Node) bool) []*Node {
	return findAll(d.root, match)
}

// ByID returns the first element with the given id, or nil.
func (d *Document) ByID(id string) *Node {
	found := d.FindAll(func(n *Node) bool { return n.Attr("id") == id })
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// WithAttr returns every element carrying attribute name.
func (d *Document) WithAttr(name string) []*Node {
	return d.FindAll(func(n *Node) bool { return n.HasAttr(name) })
}

// WithAttrValue returns every element whose attribute name equals val.
func (d *Document) WithAttrValue(name, val string) []*Node {
	return d.FindAll(func(n *Node) bool {
		v, ok := n.lookup(name)
		return ok && v == val
	})
}

func (d *Document) ContentElementsFor(category string) []Element {
	return elements(d.WithAttrValue(d.attrs.Content, category))
}

func (d *Document) ShowButtonElementsFor(category string) []Element {
	return elements(d.WithAttrValue(d.attrs.ShowButton, category))
}

func (d *Document) HideButtonElementsFor(category string) []Element {
	return elements(d.WithAttrValue(d.attrs.HideButton, category))
}

// Categories returns the distinct category names referenced by content or
// button attributes, in document order.
func (d *Document) Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, n := range d.FindAll(func(*Node) bool { return true }) {
		for _, name := range []string{d.attrs.Content, d.attrs.ShowButton, d.attrs.HideButton} {
			if v, ok := n.lookup(name); ok && v != "" && !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

func elements(nodes []*Node) []Element {
	out := make([]Element, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}

func findAll(root *html.Node, match func(*Node) bool) []*Node {
	var out []*Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if node := (&Node{n: n}); match(node) {
				out = append(out, node)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// Body returns the body element, or nil for a fragment without one.
func (d *Document) Body() *Node {
	found := d.FindAll(func(n *Node) bool { return n.Tag() == "body" })
	if len(found) == 0 {
		return nil
	}
	return found[0]
}
