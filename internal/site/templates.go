package site

// pageTemplate is the Go html/template for each documentation page. The
// #main-content article is what heading collection and search indexing read.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.ProjectName}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body>
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      {{if .Logo}}<a href="{{.BasePath}}index.html"><img src="{{.BasePath}}{{.Logo}}" alt="{{.ProjectName}}" class="sidebar-logo"></a>{{end}}
      <h2 class="project-title">{{.ProjectName}}</h2>
      <input type="text" id="search-input" placeholder="Search docs..." autocomplete="off" data-index="{{.BasePath}}search-index.json">
      <ul class="search-results" id="search-results"></ul>
    </div>
    <div class="sidebar-tree" id="sidebar-tree">
      {{.TreeHTML}}
    </div>
  </nav>
  <main class="content">
    <div class="category-bar" id="category-bar">
      {{.CategoryBar}}
    </div>
    <article class="page-content" id="main-content">
      {{.Content}}
    </article>
  </main>
  <aside class="page-toc" id="page-toc"></aside>
  <script src="{{.BasePath}}script.js"></script>
</body>
</html>`

// cssContent is the stylesheet for the documentation site.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-sidebar: #f6f8fa;
  --text: #1f2328;
  --text-muted: #656d76;
  --border: #d0d7de;
  --accent: #0969da;
  --sidebar-width: 280px;
  --toc-width: 220px;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.6;
}

a { color: var(--accent); text-decoration: none; }
a:hover { text-decoration: underline; }

.sidebar {
  position: fixed;
  top: 0;
  left: 0;
  bottom: 0;
  width: var(--sidebar-width);
  overflow-y: auto;
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
  padding: 16px;
}

.sidebar-logo { max-width: 100%; max-height: 48px; }
.project-title { font-size: 1.1rem; margin: 8px 0 12px; }

#search-input {
  width: 100%;
  padding: 6px 8px;
  border: 1px solid var(--border);
  border-radius: 6px;
}

.search-results { list-style: none; padding: 0; margin: 4px 0 0; }
.search-results li { padding: 4px 0; font-size: 0.9rem; }

.sidebar-tree ul { list-style: none; padding-left: 12px; margin: 0; }
.sidebar-tree > ul { padding-left: 0; }
.sidebar-tree li { margin: 2px 0; }
.sidebar-tree li.dir > ul { display: none; }
.sidebar-tree li.dir.expanded > ul { display: block; }
.sidebar-tree .dir-toggle { cursor: pointer; font-weight: 600; }
.sidebar-tree a.active { font-weight: 600; }

.content {
  margin-left: var(--sidebar-width);
  margin-right: var(--toc-width);
  padding: 24px 48px;
  max-width: 960px;
}

.category-bar { display: flex; gap: 8px; flex-wrap: wrap; margin-bottom: 16px; }
.category-bar a,
.category-hide {
  font-size: 0.8rem;
  padding: 2px 10px;
  border: 1px solid var(--border);
  border-radius: 12px;
  color: var(--text-muted);
}

.category-hide { float: right; margin-left: 8px; }

[data-framework-content] {
  border-left: 3px solid var(--border);
  padding-left: 12px;
  margin: 12px 0;
}

.page-content pre {
  padding: 12px;
  overflow-x: auto;
  border-radius: 6px;
  background: var(--bg-sidebar);
}

.page-content table { border-collapse: collapse; }
.page-content th, .page-content td { border: 1px solid var(--border); padding: 6px 12px; }

[data-file-button] {
  background: none;
  border: none;
  border-bottom: 2px solid transparent;
  padding: 4px 12px;
  cursor: pointer;
}

.page-toc {
  position: fixed;
  top: 24px;
  right: 0;
  width: var(--toc-width);
  padding: 0 16px;
  font-size: 0.85rem;
}

.page-toc h4 { margin: 0 0 8px; color: var(--text-muted); }
.page-toc ul { list-style: none; padding: 0; margin: 0; }
.page-toc .toc-h2 { padding-left: 12px; }
.page-toc a.current { font-weight: 600; }

@media (max-width: 1100px) {
  .page-toc { display: none; }
  .content { margin-right: 0; }
}

@media (max-width: 768px) {
  .sidebar { position: static; width: auto; }
  .content { margin-left: 0; padding: 16px; }
}
`

// jsContent is the client script. Category and code viewer links work
// without it; it adds sidebar toggles, search and heading tracking.
const jsContent = `(function() {
  document.querySelectorAll('.dir-toggle').forEach(function(el) {
    el.addEventListener('click', function() {
      el.parentElement.classList.toggle('expanded');
    });
  });

  var input = document.getElementById('search-input');
  var results = document.getElementById('search-results');
  var index = null;
  if (input && results) {
    input.addEventListener('input', function() {
      var q = input.value.trim().toLowerCase();
      if (!q) { results.innerHTML = ''; return; }
      var load = index ? Promise.resolve(index) : fetch(input.dataset.index).then(function(r) { return r.json(); });
      load.then(function(entries) {
        index = entries;
        var base = input.dataset.index.replace('search-index.json', '');
        results.innerHTML = '';
        entries.filter(function(e) {
          return (e.title + ' ' + e.content).toLowerCase().indexOf(q) !== -1;
        }).slice(0, 10).forEach(function(e) {
          var li = document.createElement('li');
          var a = document.createElement('a');
          a.href = base + e.path;
          a.textContent = e.title;
          li.appendChild(a);
          results.appendChild(li);
        });
      });
    });
  }

  var main = document.getElementById('main-content');
  if (main && 'IntersectionObserver' in window) {
    var links = {};
    document.querySelectorAll('.page-toc a').forEach(function(a) {
      links[a.getAttribute('href')] = a;
    });
    var observer = new IntersectionObserver(function(entries) {
      entries.forEach(function(entry) {
        if (!entry.isIntersecting) { return; }
        var hash = '#' + entry.target.id;
        history.pushState(null, '', hash);
        Object.keys(links).forEach(function(k) {
          links[k].classList.toggle('current', k === hash);
        });
      });
    });
    main.querySelectorAll('h1[id], h2[id]').forEach(function(h) { observer.observe(h); });
  }
})();
`
