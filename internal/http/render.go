package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"index", "show", "new", "edit"}

var templateFuncs = template.FuncMap{
	"datetimeLocal": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.UTC().Format("2006-01-02T15:04:05")
	},
	"formatTime": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.UTC().Format("Jan 2, 2006 15:04 UTC")
	},
	"nowRFC3339": func() string {
		return time.Now().UTC().Format(time.RFC3339)
	},
}

// TemplateRenderer holds one template set per page, each layered on the
// shared layout and form partial.
type TemplateRenderer struct {
	pages map[string]*template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	r := &TemplateRenderer{pages: make(map[string]*template.Template, len(pages))}

	for _, page := range pages {
		t, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/form.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.pages[page] = t
	}

	return r, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}
