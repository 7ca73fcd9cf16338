// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site.
// Page templates are embedded at compile time and paired with the base
// layout. Rich-content fragments produced by internal/richtext are passed
// in pre-rendered and injected with the "safe" template function.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

//go:embed templates/site/*.html
var siteFS embed.FS

// PageData holds all data passed to site templates.
type PageData struct {
	Title       string         // Page title for <title> tag
	Description string         // Meta description
	Section     string         // Active nav section (e.g., "blog", "hospitals")
	Data        map[string]any // Page-specific data
	Error       string         // Inline error message, if any
	Success     string         // Inline success message, if any
}

// Renderer handles template parsing and execution for public pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// New creates a Renderer by parsing all site templates from the embedded
// filesystem. Each page template is paired with the base layout.
func New() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			// safe injects pre-rendered HTML fragments (rich content,
			// already escaped or sanitized upstream).
			"safe": func(s string) template.HTML {
				return template.HTML(s)
			},
			"year": func() int {
				return time.Now().Year()
			},
			// activeClass highlights the current nav section.
			"activeClass": func(current, target string) string {
				if current == target {
					return "text-teal-700 font-semibold"
				}
				return "text-gray-600 hover:text-teal-700"
			},
			"fmtDate": func(t time.Time) string {
				if t.IsZero() {
					return ""
				}
				return t.Format("January 2, 2006")
			},
		},
	}

	entries, err := siteFS.ReadDir("templates/site")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}

		tmplName := name[:len(name)-len(".html")]
		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			siteFS, "templates/site/base.html", "templates/site/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full public page into the response writer.
func (rn *Renderer) Page(w http.ResponseWriter, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = &PageData{}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// PageBytes renders a page into a byte slice so the caller can store it in
// the page cache before writing it out.
func (rn *Renderer) PageBytes(name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	if data == nil {
		data = &PageData{}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
