package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"math"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lawbot360/web/internal/form"
)

// Renderer implements echo.Renderer over the embedded templates. Every page
// gets its own template set so that each can define "content" and "title".
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// NewRenderer parses templates/layouts/*.html once and clones them for each
// templates/pages/*.html. Page names are file names without extension.
func NewRenderer() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcs()).ParseFS(assets, "templates/layouts/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	files, err := fs.Glob(assets, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		t, err := clone.ParseFS(assets, f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		r.pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("render: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "page", data)
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": func(src string) template.HTML {
			html, err := Markdown(src)
			if err != nil {
				return template.HTML(template.HTMLEscapeString(src))
			}
			return html
		},
		"value": func(f *form.Form, name string) string {
			if f == nil {
				return ""
			}
			return f.Value(name)
		},
		"fieldError": func(f *form.Form, name string) string {
			if f == nil {
				return ""
			}
			return f.VisibleError(name)
		},
		"field": func(f *form.Form, formName, name, label, typ string) FieldView {
			v := FieldView{Form: formName, Name: name, Label: label, Type: typ}
			if f != nil {
				v.Value = f.Value(name)
				v.Error = f.VisibleError(name)
				v.Required = f.Required(name)
			}
			if typ == "password" {
				v.Value = ""
			}
			return v
		},
		"heading": func(title, subtitle string) map[string]string {
			return map[string]string{"Title": title, "Subtitle": subtitle}
		},
		"join": strings.Join,
		"fixed1": func(v float64) string {
			return fmt.Sprintf("%.1f", v)
		},
		"clampPercent": func(v float64) float64 {
			return math.Max(0, math.Min(v, 100))
		},
		"share": func(n, max int) float64 {
			if max <= 0 {
				return 0
			}
			return float64(n) / float64(max) * 100
		},
		"initial": func(name string) string {
			for _, r := range name {
				return strings.ToUpper(string(r))
			}
			return "U"
		},
		"toJSON": func(v any) (string, error) {
			raw, err := json.Marshal(v)
			return string(raw), err
		},
		"selected": func(a, b string) bool {
			return a == b
		},
	}
}
