package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
)

// Templates manages HTML template rendering.
type Templates struct {
	templates map[string]*template.Template
	partials  *template.Template
	funcs     template.FuncMap
}

// NewTemplates creates a new template manager by loading templates from the given filesystem.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{
		templates: make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders a page template with the given data.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}

	// Execute the "base" template which includes the page content
	return tmpl.ExecuteTemplate(w, "base", data)
}

// RenderPartial renders a fragment defined in partials/ (without base layout).
func (t *Templates) RenderPartial(w io.Writer, partial string, data any) error {
	if t.partials == nil || t.partials.Lookup(partial) == nil {
		return fmt.Errorf("partial %q not found", partial)
	}
	return t.partials.ExecuteTemplate(w, partial, data)
}

// load parses all templates from the filesystem.
func (t *Templates) load(templatesFS fs.FS) error {
	layouts, err := fs.Glob(templatesFS, "layouts/*.html")
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}

	// Partials reference each other (analysis and search both use tracks),
	// so they are parsed as one set.
	partials, err := fs.Glob(templatesFS, "partials/*.html")
	if err != nil {
		return fmt.Errorf("finding partials: %w", err)
	}

	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}

	commonFiles := append(layouts, partials...)

	for _, page := range pages {
		name := strings.TrimSuffix(filepath.Base(page), ".html")

		files := append([]string{page}, commonFiles...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		t.templates[name] = tmpl
	}

	if len(partials) > 0 {
		tmpl, err := template.New("partials").Funcs(t.funcs).ParseFS(templatesFS, partials...)
		if err != nil {
			return fmt.Errorf("parsing partials: %w", err)
		}
		t.partials = tmpl
	}

	return nil
}

// defaultFuncs returns the default template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// percent formats a 0..100 score with one decimal, e.g. "73.2%".
		"percent": formatPercent,

		// confidence formats a 0..1 confidence as a whole percentage.
		"confidence": func(c float64) string {
			return fmt.Sprintf("%.0f%%", c*100)
		},

		// join joins artist names for display.
		"join": func(items []string) string {
			return strings.Join(items, ", ")
		},

		// deref returns the value of an optional string.
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},

		// title upper-cases the first letter of an emotion label.
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},

		// moodColor returns an HSL color for an emotion badge. Energy maps to
		// hue (cool indigo to warm orange), valence to saturation and lightness.
		// The value is built from numbers only, so it is marked as safe CSS.
		"moodColor": func(energy, valence float64) template.CSS {
			hue := 264 - (energy * 229)
			if hue < 0 {
				hue += 360
			}
			saturation := 60 + (valence * 40)
			lightness := 40 + (valence * 20)
			return template.CSS(fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", hue, saturation, lightness)) //nolint:gosec // numeric only
		},
	}
}

func formatPercent(score float64) string {
	return fmt.Sprintf("%.1f%%", score)
}
