package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vitrine/storefront/internal/api/middleware"
	"github.com/vitrine/storefront/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "templates/layout.html"

// TemplateRenderer renders the server-side pages. Every page template is
// parsed together with the shared layout and executed through "layout".
type TemplateRenderer struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"timestamp": func(ts domain.Timestamp) string {
		if ts.IsZero() {
			return "-"
		}
		return ts.Time.UTC().Format("2006-01-02 15:04")
	},
	"datetime": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04")
	},
}

func NewRenderer() (*TemplateRenderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	layout, err := template.New("layout").Funcs(templateFuncs).ParseFS(templateFS, layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		if f == layoutTemplate {
			continue
		}
		t, err := template.Must(layout.Clone()).ParseFS(templateFS, f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}
	return &TemplateRenderer{pages: pages}, nil
}

// Render satisfies echo.Renderer.
func (r *TemplateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// pageData is passed to every page template.
type pageData struct {
	Title   string
	Account *domain.Account
	Flashes []domain.Flash
	CSRF    string
	Data    any
}

func newPageData(c echo.Context, title string, flashes []domain.Flash, data any) pageData {
	csrf, _ := c.Get(middleware.CSRFContext).(string)
	return pageData{
		Title:   title,
		Account: middleware.CurrentAccount(c),
		Flashes: flashes,
		CSRF:    csrf,
		Data:    data,
	}
}
