// Package layout renders banner content from named text templates.
// Templates are looked up in the user templates directory first, then
// in the embedded defaults.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultTemplate is the template used when a preset names none.
const DefaultTemplate = "default"

// Data carries the fields available to content templates.
type Data struct {
	Preset   string    // Name of the preset being presented
	Sequence int       // Presentation counter, starting at 1
	FiredAt  time.Time // When the presentation was triggered
}

// funcs are the helper functions available inside templates.
var funcs = template.FuncMap{
	"ordinal": humanize.Ordinal,
	"clock": func(t time.Time) string {
		return t.Format("15:04:05")
	},
}

// Loader resolves and caches content templates by name.
type Loader struct {
	templatesDir string

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewLoader creates a template loader. templatesDir may be empty, in
// which case only embedded templates are available.
func NewLoader(templatesDir string) *Loader {
	return &Loader{
		templatesDir: templatesDir,
		cache:        make(map[string]*template.Template),
	}
}

// Load returns the named template. A user template shadows an embedded
// one of the same name.
func (l *Loader) Load(name string) (*template.Template, error) {
	if name == "" {
		name = DefaultTemplate
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if tmpl, ok := l.cache[name]; ok {
		return tmpl, nil
	}

	text, err := l.read(name)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
	}

	l.cache[name] = tmpl
	return tmpl, nil
}

// Render executes the named template against data.
func (l *Loader) Render(name string, data Data) (string, error) {
	tmpl, err := l.Load(name)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", tmpl.Name(), err)
	}
	return strings.TrimSpace(sb.String()), nil
}

// read fetches the raw template text, user directory first.
func (l *Loader) read(name string) (string, error) {
	if l.templatesDir != "" {
		path := filepath.Join(l.templatesDir, name+".tmpl")
		if data, err := os.ReadFile(path); err == nil {
			return string(data), nil
		}
	}

	if text, ok := embeddedTemplate(name); ok {
		return text, nil
	}

	return "", fmt.Errorf("content template not found: %s", name)
}

// Invalidate drops the cache so edited user templates are re-read.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]*template.Template)
}
