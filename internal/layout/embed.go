package layout

import (
	"embed"
	"sort"
	"strings"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// embeddedTemplate returns the raw text of an embedded template.
func embeddedTemplate(name string) (string, bool) {
	data, err := embeddedTemplates.ReadFile("templates/" + name + ".tmpl")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListEmbeddedTemplates returns the names of all embedded templates.
func ListEmbeddedTemplates() []string {
	entries, err := embeddedTemplates.ReadDir("templates")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".tmpl") {
			names = append(names, strings.TrimSuffix(entry.Name(), ".tmpl"))
		}
	}
	sort.Strings(names)
	return names
}
