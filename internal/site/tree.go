package site

import (
	"fmt"
	"html"
	"path"
	"sort"
	"strings"
)

// NavNode is a node in the sidebar navigation tree.
type NavNode struct {
	Name     string
	Title    string // display name; H1 of the page or a formatted directory name
	Path     string // slash-separated relative path of the page or directory
	IsDir    bool
	Children []*NavNode
}

// BuildNav constructs the navigation tree from relative markdown paths.
// titles maps a path to its display title and may be nil.
func BuildNav(paths []string, titles map[string]string) *NavNode {
	root := &NavNode{Name: "docs", IsDir: true}

	for _, p := range paths {
		parts := strings.Split(p, "/")
		current := root
		for i, part := range parts {
			isLast := i == len(parts)-1
			child := current.child(part)
			if child == nil {
				child = &NavNode{Name: part, IsDir: !isLast}
				if isLast {
					child.Path = p
					child.Title = titles[p]
				} else {
					child.Path = strings.Join(parts[:i+1], "/")
					child.Title = formatDirName(part)
				}
				current.Children = append(current.Children, child)
			}
			current = child
		}
	}

	root.sort()
	return root
}

func (n *NavNode) child(name string) *NavNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// sort orders children recursively: directories first, then files, by name.
func (n *NavNode) sort() {
	sort.Slice(n.Children, func(i, j int) bool {
		if n.Children[i].IsDir != n.Children[j].IsDir {
			return n.Children[i].IsDir
		}
		return n.Children[i].Name < n.Children[j].Name
	})
	for _, c := range n.Children {
		if c.IsDir {
			c.sort()
		}
	}
}

// Pages returns the page paths in navigation order.
func (n *NavNode) Pages() []string {
	var out []string
	for _, c := range n.Children {
		if c.IsDir {
			out = append(out, c.Pages()...)
		} else {
			out = append(out, c.Path)
		}
	}
	return out
}

// ToHTML renders the tree as nested lists. activePath marks the current page
// and expands its ancestors; basePath is the relative prefix back to the
// site root (e.g. "../" for a page one level deep).
func (n *NavNode) ToHTML(activePath, basePath string) string {
	var b strings.Builder
	homeActive := ""
	if activePath == "index.md" {
		homeActive = ` class="active"`
	}
	fmt.Fprintf(&b, `<ul><li class="file home-link"><a href="%sindex.html"%s>Home</a></li></ul>`+"\n", basePath, homeActive)

	n.renderChildren(&b, activePath, basePath, ancestors(activePath))
	return b.String()
}

// ancestors returns the directory paths above activePath.
// For "guide/react/hooks.md" it returns {"guide", "guide/react"}.
func ancestors(activePath string) map[string]bool {
	out := make(map[string]bool)
	for dir := path.Dir(activePath); dir != "." && dir != "/"; dir = path.Dir(dir) {
		out[dir] = true
	}
	return out
}

func (n *NavNode) renderChildren(b *strings.Builder, activePath, basePath string, open map[string]bool) {
	if len(n.Children) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, c := range n.Children {
		if c.IsDir {
			class := "dir"
			if open[c.Path] {
				class += " expanded"
			}
			fmt.Fprintf(b, `<li class="%s"><span class="dir-toggle">%s</span>`+"\n", class, html.EscapeString(c.Title))
			c.renderChildren(b, activePath, basePath, open)
			b.WriteString("</li>\n")
			continue
		}
		if c.Path == "index.md" {
			continue
		}
		label := c.Title
		if label == "" {
			label = strings.TrimSuffix(c.Name, ".md")
		}
		active := ""
		if c.Path == activePath {
			active = ` class="active"`
		}
		fmt.Fprintf(b, `<li class="file"><a href="%s%s"%s>%s</a></li>`+"\n",
			basePath, mdPathToHTML(c.Path), active, html.EscapeString(label))
	}
	b.WriteString("</ul>\n")
}

// mdPathToHTML converts a markdown path to its HTML equivalent.
func mdPathToHTML(p string) string {
	if strings.HasSuffix(p, ".md") {
		return strings.TrimSuffix(p, ".md") + ".html"
	}
	return p
}

// formatDirName title-cases a directory slug: "getting-started" -> "Getting Started".
func formatDirName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
