// Package templates renders the server-side pages. Every page is
// parsed against the shared layout at startup so template errors
// surface on boot rather than on first hit.
package templates

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/sbenmansour/cessiondesk/internal/app/i18n"
	"github.com/sbenmansour/cessiondesk/internal/app/models"
	"github.com/sbenmansour/cessiondesk/internal/app/notify"
	"github.com/sbenmansour/cessiondesk/internal/app/utils"
)

//go:embed layout.html pages/*.html
var files embed.FS

// PageData is what every template executes against.
type PageData struct {
	Layout       models.Layout
	Notification *notify.Notification
	Data         any
}

// Renderer holds the parsed page set bound to one translator.
type Renderer struct {
	mu    sync.RWMutex
	pages map[string]*template.Template
	i18n  *i18n.Translator
}

// New parses all pages. The translator feeds the template's t and tn
// helpers.
func New(translator *i18n.Translator) (*Renderer, error) {
	r := &Renderer{
		pages: make(map[string]*template.Template),
		i18n:  translator,
	}

	funcs := template.FuncMap{
		"t": func(key string) string {
			return translator.T(key, nil)
		},
		"tn": func(key string, count int) string {
			return translator.T(key, map[string]any{"count": count})
		},
		"tp": func(key, param string, value any) string {
			return translator.T(key, map[string]any{param: value})
		},
		"currency": utils.FormatCurrency,
		"date":     utils.FormatDate,
	}

	entries, err := fs.Glob(files, "pages/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "globbing pages")
	}
	for _, page := range entries {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "layout.html", page)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", page)
		}
		name := strings.TrimSuffix(path.Base(page), ".html")
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render executes a page into w. Unknown page names are a programming
// error and come back as one.
func (r *Renderer) Render(w io.Writer, page string, data PageData) error {
	r.mu.RLock()
	tmpl, ok := r.pages[page]
	r.mu.RUnlock()
	if !ok {
		return errors.Errorf("unknown page %q", page)
	}
	return tmpl.Execute(w, data)
}

// Pages lists the available page names, for route sanity tests.
func (r *Renderer) Pages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.pages))
	for name := range r.pages {
		names = append(names, name)
	}
	return names
}
