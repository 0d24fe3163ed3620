package layout

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_RenderEmbeddedDefault(t *testing.T) {
	l := NewLoader("")

	out, err := l.Render(DefaultTemplate, Data{Preset: "standard", Sequence: 1})
	require.NoError(t, err)
	assert.Equal(t, "standard notification #1", out)
}

func TestLoader_EmptyNameUsesDefault(t *testing.T) {
	l := NewLoader("")

	out, err := l.Render("", Data{Preset: "alert", Sequence: 3})
	require.NoError(t, err)
	assert.Equal(t, "alert notification #3", out)
}

func TestLoader_OrdinalHelper(t *testing.T) {
	l := NewLoader("")

	out, err := l.Render("compact", Data{Preset: "standard", Sequence: 2})
	require.NoError(t, err)
	assert.Equal(t, "2nd standard", out)
}

func TestLoader_ClockHelper(t *testing.T) {
	l := NewLoader("")

	fired := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	out, err := l.Render("timestamped", Data{Preset: "standard", Sequence: 1, FiredAt: fired})
	require.NoError(t, err)
	assert.Equal(t, "standard notification #1 at 09:30:00", out)
}

func TestLoader_UserTemplateShadowsEmbedded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("custom {{.Preset}}"), 0600))

	l := NewLoader(dir)
	out, err := l.Render(DefaultTemplate, Data{Preset: "standard"})
	require.NoError(t, err)
	assert.Equal(t, "custom standard", out)
}

func TestLoader_UnknownTemplate(t *testing.T) {
	l := NewLoader("")

	_, err := l.Render("nonexistent", Data{})
	assert.ErrorContains(t, err, "content template not found")
}

func TestLoader_InvalidateDropsCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0600))

	l := NewLoader(dir)
	out, err := l.Render(DefaultTemplate, Data{})
	require.NoError(t, err)
	assert.Equal(t, "one", out)

	require.NoError(t, os.WriteFile(path, []byte("two"), 0600))

	// Cached until invalidated.
	out, err = l.Render(DefaultTemplate, Data{})
	require.NoError(t, err)
	assert.Equal(t, "one", out)

	l.Invalidate()
	out, err = l.Render(DefaultTemplate, Data{})
	require.NoError(t, err)
	assert.Equal(t, "two", out)
}

func TestListEmbeddedTemplates(t *testing.T) {
	names := ListEmbeddedTemplates()
	assert.Contains(t, names, "default")
	assert.Contains(t, names, "compact")
	assert.Contains(t, names, "timestamped")
}
