package render

import (
	"html/template"
	"io"

	"github.com/robworks/opsdocs/internal/content"
)

// PageLink points at a neighboring page in navigation order.
type PageLink struct {
	Title string
	Route string
}

// DocumentData feeds the page shell template.
type DocumentData struct {
	SiteName    string
	Title       string
	Description string
	Route       string
	// AssetPath prefixes stylesheet and script URLs (usually "/assets").
	AssetPath string
	Content   template.HTML
	// TOC holds the level 2-3 headings shown in the sidebar.
	TOC  []Heading
	Nav  *content.Node
	Prev *PageLink
	Next *PageLink
}

// TOCFromHeadings filters a page's headings down to the levels shown in
// the sidebar.
func TOCFromHeadings(headings []Heading) []Heading {
	var toc []Heading
	for _, h := range headings {
		if h.Level == 2 || h.Level == 3 {
			toc = append(toc, h)
		}
	}
	return toc
}

// WriteDocument renders the full HTML document for a page.
func WriteDocument(w io.Writer, d *DocumentData) error {
	return pageTemplate.Execute(w, d)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} &middot; {{.SiteName}}</title>
{{- with .Description}}
<meta name="description" content="{{.}}">
{{- end}}
<link rel="stylesheet" href="{{.AssetPath}}/site.css">
<link rel="stylesheet" href="{{.AssetPath}}/chroma.css">
<link rel="stylesheet" href="{{.AssetPath}}/interactive.css">
</head>
<body data-route="{{.Route}}">
<header class="site-header"><a class="site-name" href="/">{{.SiteName}}</a></header>
<div class="layout">
<nav class="site-nav">
{{template "nav" .Nav}}
</nav>
<main class="page">
<article class="page-body">
{{.Content}}</article>
<footer class="page-footer">
{{- if .Prev}}
<a class="page-prev" href="{{.Prev.Route}}">&larr; {{.Prev.Title}}</a>
{{- end}}
{{- if .Next}}
<a class="page-next" href="{{.Next.Route}}">{{.Next.Title}} &rarr;</a>
{{- end}}
</footer>
</main>
{{- if .TOC}}
<aside class="page-toc">
<ul>
{{- range .TOC}}
<li class="toc-level-{{.Level}}"><a href="#{{.ID}}">{{.Text}}</a></li>
{{- end}}
</ul>
</aside>
{{- end}}
</div>
<script src="{{.AssetPath}}/interactive.js" defer></script>
</body>
</html>
{{define "nav"}}<ul>
{{- range .Children}}
<li>{{if .Route}}<a href="{{.Route}}">{{.Title}}</a>{{else}}<span class="nav-section">{{.Title}}</span>{{end}}
{{- if .Children}}{{template "nav" .}}{{end}}</li>
{{- end}}
</ul>{{end}}`))
