// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report writes an HTML index of comparison charts.
package report

import (
	"fmt"
	"io"

	"github.com/distfri/friperf/benchseries"
	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
)

// A Page is a complete report.
type Page struct {
	Title    string
	Sections []Section
	Warnings []string
}

// A Section is one chart: its image, if one was rendered, and the
// values plotted in it.
type Section struct {
	ID     safehtml.Identifier
	Anchor safehtml.URL // link to ID
	Title  string
	Image  safehtml.URL // empty if no image
	Header []string
	Rows   [][]string
}

// NewSection returns the section for c. image is the path of the
// rendered chart relative to the page, or "" if none.
func NewSection(c *benchseries.Comparison, image string) Section {
	s := Section{
		ID:     safehtml.IdentifierFromConstantPrefix("chart", c.Chart.Name()),
		Anchor: safehtml.URLSanitized("#chart-" + c.Chart.Name()),
		Title:  fmt.Sprintf("%s (instance size 2^%d)", c.Chart.Title, c.Config.InstanceSize.Hi-1),
	}
	if image != "" {
		s.Image = safehtml.URLSanitized(image)
	}
	s.Header, s.Rows = c.Table()
	return s
}

const pageHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { padding: 0.2em 0.6em; text-align: right; }
th:first-child, td:first-child { text-align: left; }
img { max-width: 48em; }
.warn { color: #a00; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{with .Warnings}}<ul class="warn">
{{range .}}<li>{{.}}</li>
{{end}}</ul>{{end}}
<ul>
{{range .Sections}}<li><a href="{{.Anchor}}">{{.Title}}</a></li>
{{end}}</ul>
{{range .Sections}}
<h2 id="{{.ID}}">{{.Title}}</h2>
{{if .Image.String}}<img src="{{.Image}}" alt="{{.Title}}">{{end}}
<table>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{end}}
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

// Write writes p to w as an HTML document.
func Write(w io.Writer, p Page) error {
	return pageTmpl.Execute(w, p)
}
