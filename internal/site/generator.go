package site

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"html/template"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docsite/internal/codeviewer"
	"github.com/ziadkadry99/docsite/internal/dom"
	"github.com/ziadkadry99/docsite/internal/headings"
	"github.com/ziadkadry99/docsite/internal/kvstore"
	"github.com/ziadkadry99/docsite/internal/progress"
	"github.com/ziadkadry99/docsite/internal/visibility"
)

// Options configures a Generator.
type Options struct {
	DocsDir     string
	OutputDir   string
	ProjectName string
	Logo        string
	Include     []string
	Exclude     []string

	Categories    []string
	StorageKey    string
	DefaultHidden []string
	Attributes    dom.Attributes

	// Prefs is the preference store the static output is rendered with.
	// When nil, a memory store seeded with DefaultHidden is used.
	Prefs *kvstore.Adapter

	Logger   *zap.Logger
	Reporter progress.Reporter
}

// Generator converts a markdown docs tree into a static HTML site.
type Generator struct {
	opts Options
	md   goldmark.Markdown
	tmpl *template.Template
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title       string
	ProjectName string
	Logo        string
	BasePath    string
	TreeHTML    template.HTML
	CategoryBar template.HTML
	Content     template.HTML
}

// NewGenerator returns a Generator for opts.
func NewGenerator(opts Options) (*Generator, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Reporter == nil {
		opts.Reporter = progress.Nop{}
	}
	if len(opts.Categories) == 0 {
		opts.Categories = visibility.DefaultCategories
	}
	if opts.StorageKey == "" {
		opts.StorageKey = visibility.DefaultKey
	}
	opts.Attributes = opts.Attributes.WithDefaults()

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)

	return &Generator{opts: opts, md: md, tmpl: tmpl}, nil
}

// Generate builds the full static site. Returns the number of pages written.
func (g *Generator) Generate(ctx context.Context) (int, error) {
	mdPaths, err := g.collect()
	if err != nil {
		return 0, fmt.Errorf("walking docs dir: %w", err)
	}
	if len(mdPaths) == 0 {
		return 0, fmt.Errorf("no markdown files found in %s", g.opts.DocsDir)
	}

	titles := make(map[string]string, len(mdPaths))
	for _, relPath := range mdPaths {
		content, err := os.ReadFile(filepath.Join(g.opts.DocsDir, filepath.FromSlash(relPath)))
		if err == nil {
			titles[relPath] = extractTitle(string(content), relPath)
		}
	}
	nav := BuildNav(mdPaths, titles)

	prefs, err := g.buildPrefs(ctx)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(g.opts.OutputDir, 0o755); err != nil {
		return 0, err
	}
	if err := g.writeAssets(); err != nil {
		return 0, err
	}

	g.opts.Reporter.Start(len(mdPaths))
	defer g.opts.Reporter.Finish()

	entries := make([]SearchEntry, 0, len(mdPaths))
	for i, relPath := range mdPaths {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		entry, err := g.renderPage(ctx, nav, prefs, relPath)
		if err != nil {
			return i, fmt.Errorf("rendering %s: %w", relPath, err)
		}
		entries = append(entries, entry)
		g.opts.Reporter.Update(i+1, relPath)
	}

	if err := WriteSearchIndex(entries, filepath.Join(g.opts.OutputDir, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}

	g.opts.Logger.Info("site generated",
		zap.Int("pages", len(mdPaths)),
		zap.String("output", g.opts.OutputDir),
	)
	return len(mdPaths), nil
}

// collect returns the slash-separated relative paths of the pages to build.
func (g *Generator) collect() ([]string, error) {
	filter := pageFilter{include: g.opts.Include, exclude: g.opts.Exclude}
	var out []string
	err := filepath.WalkDir(g.opts.DocsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		rel, err := filepath.Rel(g.opts.DocsDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if filter.allows(rel) {
			out = append(out, rel)
		}
		return nil
	})
	return out, err
}

// buildPrefs returns the configured preference store, or a memory store
// holding DefaultHidden.
func (g *Generator) buildPrefs(ctx context.Context) (*kvstore.Adapter, error) {
	if g.opts.Prefs != nil {
		return g.opts.Prefs, nil
	}
	a := kvstore.NewAdapter(kvstore.NewMemoryBackend(), kvstore.DefaultScope, g.opts.Logger)
	if len(g.opts.DefaultHidden) > 0 {
		if err := a.SetJSON(ctx, g.opts.StorageKey, g.opts.DefaultHidden); err != nil {
			return nil, fmt.Errorf("seeding default hidden categories: %w", err)
		}
	}
	return a, nil
}

func (g *Generator) writeAssets() error {
	if err := os.WriteFile(filepath.Join(g.opts.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(g.opts.OutputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return err
	}
	if g.opts.Logo == "" {
		return nil
	}
	data, err := os.ReadFile(g.opts.Logo)
	if err != nil {
		return fmt.Errorf("reading logo: %w", err)
	}
	return os.WriteFile(filepath.Join(g.opts.OutputDir, filepath.Base(g.opts.Logo)), data, 0o644)
}

// renderPage converts a single markdown file to an HTML page and returns its
// search entry.
func (g *Generator) renderPage(ctx context.Context, nav *NavNode, prefs *kvstore.Adapter, relPath string) (SearchEntry, error) {
	content, err := os.ReadFile(filepath.Join(g.opts.DocsDir, filepath.FromSlash(relPath)))
	if err != nil {
		return SearchEntry{}, err
	}

	var body bytes.Buffer
	if err := g.md.Convert(content, &body); err != nil {
		return SearchEntry{}, fmt.Errorf("converting markdown: %w", err)
	}

	htmlRelPath := mdPathToHTML(relPath)
	basePath := strings.Repeat("../", strings.Count(htmlRelPath, "/"))

	logo := ""
	if g.opts.Logo != "" {
		logo = filepath.Base(g.opts.Logo)
	}

	var page bytes.Buffer
	err = g.tmpl.Execute(&page, pageData{
		Title:       extractTitle(string(content), relPath),
		ProjectName: g.opts.ProjectName,
		Logo:        logo,
		BasePath:    basePath,
		TreeHTML:    template.HTML(nav.ToHTML(relPath, basePath)),
		CategoryBar: template.HTML(categoryBarHTML(g.opts.Categories, g.opts.Attributes)),
		Content:     template.HTML(body.String()),
	})
	if err != nil {
		return SearchEntry{}, fmt.Errorf("executing template: %w", err)
	}

	doc, err := dom.Parse(&page, g.opts.Attributes)
	if err != nil {
		return SearchEntry{}, fmt.Errorf("parsing rendered page: %w", err)
	}
	if err := g.decorate(ctx, doc, prefs, relPath); err != nil {
		return SearchEntry{}, err
	}

	outPath := filepath.Join(g.opts.OutputDir, filepath.FromSlash(htmlRelPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return SearchEntry{}, err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return SearchEntry{}, err
	}
	defer f.Close()
	if err := doc.Render(f); err != nil {
		return SearchEntry{}, err
	}

	return newSearchEntry(doc, htmlRelPath, relPath), nil
}

// decorate post-processes a parsed page: links, hide buttons, the heading
// list, category visibility and code viewers.
func (g *Generator) decorate(ctx context.Context, doc *dom.Document, prefs *kvstore.Adapter, relPath string) error {
	rewriteMDLinks(doc)

	for _, c := range doc.Categories() {
		if !slices.Contains(g.opts.Categories, c) {
			g.opts.Logger.Warn("page uses an undeclared category",
				zap.String("page", relPath),
				zap.String("category", c),
			)
		}
	}

	attrs := doc.Attributes()
	for _, category := range g.opts.Categories {
		for _, region := range doc.WithAttrValue(attrs.Content, category) {
			if hasHideButton(region, attrs.HideButton, category) {
				continue
			}
			if err := region.PrependHTML(hideButtonHTML(attrs, category)); err != nil {
				return fmt.Errorf("adding hide button for %s: %w", category, err)
			}
		}
	}

	if toc := doc.ByID("page-toc"); toc != nil {
		if hs := headings.Collect(doc); len(hs) > 0 {
			if err := toc.AppendHTML(tocHTML(hs)); err != nil {
				return fmt.Errorf("adding heading list: %w", err)
			}
		}
	}

	visibility.New(ctx, prefs, visibility.Options{
		Key:        g.opts.StorageKey,
		Categories: g.opts.Categories,
		Logger:     g.opts.Logger,
	}, doc)
	codeviewer.ApplyAll(doc)
	return nil
}

func hasHideButton(region *dom.Node, attr, category string) bool {
	return len(region.FindAll(func(n *dom.Node) bool { return n.Attr(attr) == category })) > 0
}

// rewriteMDLinks points relative .md links at the generated .html pages.
func rewriteMDLinks(doc *dom.Document) {
	for _, a := range doc.FindAll(func(n *dom.Node) bool { return n.Tag() == "a" && n.HasAttr("href") }) {
		href := a.Attr("href")
		if strings.Contains(href, "://") {
			continue
		}
		target, frag, _ := strings.Cut(href, "#")
		if !strings.HasSuffix(target, ".md") {
			continue
		}
		href = mdPathToHTML(target)
		if frag != "" {
			href += "#" + frag
		}
		a.SetAttr("href", href)
	}
}

func categoryBarHTML(categories []string, attrs dom.Attributes) string {
	var b strings.Builder
	for _, c := range categories {
		esc := html.EscapeString(c)
		fmt.Fprintf(&b, `<a class="category-show" %s="%s" href="%s" style="display: none">Show %s</a>`+"\n",
			attrs.ShowButton, esc, actionHref("show", c), esc)
	}
	return b.String()
}

func hideButtonHTML(attrs dom.Attributes, category string) string {
	esc := html.EscapeString(category)
	return fmt.Sprintf(`<a class="category-hide" %s="%s" href="%s">Hide %s</a>`, attrs.HideButton, esc, actionHref("hide", category), esc)
}

// actionHref is the attribute-escaped query link that toggles category.
func actionHref(action, category string) string {
	return html.EscapeString("?" + action + "=" + url.QueryEscape(category))
}

func tocHTML(hs []headings.Heading) string {
	var b strings.Builder
	b.WriteString("<h4>On this page</h4>\n<ul>\n")
	for _, h := range hs {
		fmt.Fprintf(&b, `<li class="toc-h%d"><a href="%s">%s</a></li>`+"\n",
			h.Level, html.EscapeString(h.Fragment()), html.EscapeString(h.Text))
	}
	b.WriteString("</ul>\n")
	return b.String()
}

// extractTitle pulls the first # heading from markdown content, or falls back to the filename.
func extractTitle(content, relPath string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return strings.TrimSuffix(filepath.Base(relPath), ".md")
}
