package site

import (
	"encoding/json"
	"os"

	"github.com/ziadkadry99/docsite/internal/dom"
	"github.com/ziadkadry99/docsite/internal/headings"
)

const maxSearchContent = 2000

// SearchEntry represents a single searchable page in the documentation.
type SearchEntry struct {
	Path       string   `json:"path"`
	Source     string   `json:"source"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Headings   []string `json:"headings,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Content    string   `json:"content"`
}

// newSearchEntry indexes a rendered page. Title, summary and content come
// from the #main-content region so sidebar and category bar text is left out.
func newSearchEntry(doc *dom.Document, htmlPath, relPath string) SearchEntry {
	entry := SearchEntry{Path: htmlPath, Source: relPath, Title: relPath}

	main := doc.ByID(headings.ContainerID)
	if main == nil {
		return entry
	}

	for _, h := range headings.Collect(doc) {
		if h.Level == 1 && entry.Title == relPath {
			entry.Title = h.Text
			continue
		}
		entry.Headings = append(entry.Headings, h.Text)
	}

	if ps := main.FindAll(func(n *dom.Node) bool { return n.Tag() == "p" && n.Text() != "" }); len(ps) > 0 {
		entry.Summary = ps[0].Text()
	}

	// Only categories that tag content on this page are listed.
	attr := doc.Attributes().Content
	seen := make(map[string]bool)
	for _, n := range main.FindAll(func(n *dom.Node) bool { return n.HasAttr(attr) }) {
		if c := n.Attr(attr); c != "" && !seen[c] {
			seen[c] = true
			entry.Categories = append(entry.Categories, c)
		}
	}

	content := []rune(main.Text())
	if len(content) > maxSearchContent {
		content = content[:maxSearchContent]
	}
	entry.Content = string(content)

	return entry
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
