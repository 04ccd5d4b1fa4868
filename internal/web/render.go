package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"rolodex/internal/domain"
	"rolodex/internal/routes"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	layoutTemplate = "layout.html"
	errorPage      = "error"
)

// pages rendered inside the root layout
var layoutPages = []string{"index", "contact", "edit"}

var templateFuncs = template.FuncMap{
	"noName":     func() string { return routes.NoNamePlaceholder },
	"noContacts": func() string { return routes.NoContactsPlaceholder },
	"favorite":   func() string { return routes.FavoriteGlyph },
	"displayName": func(c domain.Contact) string {
		name, _ := c.DisplayName()
		return name
	},
}

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded directory always exists
	}
	return sub
}

// renderer holds one parsed template set per page
type renderer struct {
	pages map[string]*template.Template
	entry map[string]string
}

func newRenderer() (*renderer, error) {
	base, err := template.New(layoutTemplate).Funcs(templateFuncs).
		ParseFS(templateFS, "templates/"+layoutTemplate)
	if err != nil {
		return nil, err
	}

	r := &renderer{
		pages: make(map[string]*template.Template, len(layoutPages)+1),
		entry: make(map[string]string, len(layoutPages)+1),
	}
	for _, page := range layoutPages {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+page+".html"); err != nil {
			return nil, fmt.Errorf("%s: %w", page, err)
		}
		r.pages[page] = t
		r.entry[page] = layoutTemplate
	}

	// the error boundary stands alone: the root loader may be what failed
	errT, err := template.New(errorPage + ".html").Funcs(templateFuncs).
		ParseFS(templateFS, "templates/"+errorPage+".html")
	if err != nil {
		return nil, err
	}
	r.pages[errorPage] = errT
	r.entry[errorPage] = errorPage + ".html"
	return r, nil
}

// render executes page into a buffer so template failures never leave a half-written response
func (r *renderer) render(page string, data pageData) ([]byte, error) {
	t, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, r.entry[page], data); err != nil {
		return nil, fmt.Errorf("render %s: %w", page, err)
	}
	return buf.Bytes(), nil
}
