// Package codeviewer switches between the file tabs of embedded code viewers.
//
// A viewer is marked up as a root element carrying data-codeviewer and
// data-file-selected, containing one [data-file] element per file. Its tab
// buttons carry the same data-codeviewer value and data-file-button.
package codeviewer

import (
	"github.com/ziadkadry99/docsite/internal/dom"
)

const (
	attrViewer   = "data-codeviewer"
	attrSelected = "data-file-selected"
	attrFile     = "data-file"
	attrButton   = "data-file-button"
)

const (
	weightSelected = "600"
	weightNormal   = "400"
)

// Viewers returns the ids of every viewer on the page, in document order.
func Viewers(doc *dom.Document) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, n := range doc.WithAttr(attrSelected) {
		id := n.Attr(attrViewer)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// Selected returns the file currently selected in viewer id.
func Selected(doc *dom.Document, id string) (string, bool) {
	roots := roots(doc, id)
	if len(roots) == 0 {
		return "", false
	}
	return roots[0].Attr(attrSelected), true
}

// Select makes filename the selected file of viewer id and applies it. It
// returns false if the page has no such viewer.
func Select(doc *dom.Document, id, filename string) bool {
	roots := roots(doc, id)
	if len(roots) == 0 {
		return false
	}
	roots[0].SetAttr(attrSelected, filename)
	Apply(doc, id)
	return true
}

// Apply shows the selected file of viewer id, hides its other files and
// emphasizes the matching tab button.
func Apply(doc *dom.Document, id string) {
	for _, root := range roots(doc, id) {
		selected := root.Attr(attrSelected)
		for _, file := range root.FindAll(func(n *dom.Node) bool { return n.HasAttr(attrFile) }) {
			if file.Attr(attrFile) == selected {
				file.SetDisplay("block")
			} else {
				file.SetDisplay("none")
			}
		}

		for _, btn := range doc.FindAll(func(n *dom.Node) bool {
			return n.HasAttr(attrButton) && n.Attr(attrViewer) == id
		}) {
			if btn.Attr(attrButton) == selected {
				btn.SetStyle("font-weight", weightSelected)
			} else {
				btn.SetStyle("font-weight", weightNormal)
			}
		}
	}
}

// ApplyAll applies every viewer on the page.
func ApplyAll(doc *dom.Document) {
	for _, id := range Viewers(doc) {
		Apply(doc, id)
	}
}

func roots(doc *dom.Document, id string) []*dom.Node {
	return doc.FindAll(func(n *dom.Node) bool {
		return n.HasAttr(attrSelected) && n.Attr(attrViewer) == id
	})
}
