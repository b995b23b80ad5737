package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Node is an element in a Document.
type Node struct {
	n *html.Node
}

// Raw returns the underlying html node.
func (e *Node) Raw() *html.Node { return e.n }

// Tag returns the lower-case element name.
func (e *Node) Tag() string { return e.n.Data }

// ID returns the id attribute.
func (e *Node) ID() string { return e.Attr("id") }

func (e *Node) lookup(key string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute is present.
func (e *Node) HasAttr(key string) bool {
	_, ok := e.lookup(key)
	return ok
}

// Attr returns the attribute value, or "" when missing.
func (e *Node) Attr(key string) string {
	v, _ := e.lookup(key)
	return v
}

// SetAttr sets or replaces an attribute.
func (e *Node) SetAttr(key, val string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == key {
			e.n.Attr[i].Val = val
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: key, Val: val})
}

// Style returns the inline value of a CSS property.
func (e *Node) Style(prop string) string {
	for _, d := range parseStyle(e.Attr("style")) {
		if strings.EqualFold(d.prop, prop) {
			return d.val
		}
	}
	return ""
}

// SetStyle sets one inline CSS property, keeping the others.
func (e *Node) SetStyle(prop, val string) {
	decls := parseStyle(e.Attr("style"))
	replaced := false
	for i := range decls {
		if strings.EqualFold(decls[i].prop, prop) {
			decls[i].val = val
			replaced = true
		}
	}
	if !replaced {
		decls = append(decls, declaration{prop: prop, val: val})
	}
	e.SetAttr("style", formatStyle(decls))
}

// SetDisplay sets the inline display property.
func (e *Node) SetDisplay(val string) { e.SetStyle("display", val) }

// Text returns the concatenated text content.
func (e *Node) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.n)
	return strings.TrimSpace(b.String())
}

// FindAll searches the descendants of e.
func (e *Node) FindAll(match func(*Node) bool) []*Node {
	var out []*Node
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findAll(c, match)...)
	}
	return out
}

type declaration struct {
	prop, val string
}

func parseStyle(s string) []declaration {
	var out []declaration
	for _, part := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		out = append(out, declaration{prop: prop, val: strings.TrimSpace(val)})
	}
	return out
}

func formatStyle(decls []declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.prop + ": " + d.val
	}
	return strings.Join(parts, "; ")
}

// AppendHTML parses fragment in the context of e and appends the result as
// children of e.
func (e *Node) AppendHTML(fragment string) error {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), e.n)
	if err != nil {
		return fmt.Errorf("parsing fragment: %w", err)
	}
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
	return nil
}

// PrependHTML parses fragment in the context of e and inserts the result
// before e's first child.
func (e *Node) PrependHTML(fragment string) error {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), e.n)
	if err != nil {
		return fmt.Errorf("parsing fragment: %w", err)
	}
	first := e.n.FirstChild
	for _, n := range nodes {
		if first == nil {
			e.n.AppendChild(n)
		} else {
			e.n.InsertBefore(n, first)
		}
	}
	return nil
}
