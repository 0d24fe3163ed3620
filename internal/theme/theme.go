// Package theme resolves color scheme preferences and the surface palette
// used for banner background fallbacks.
package theme

import "github.com/charmbracelet/lipgloss"

// Scheme represents the color scheme preference.
type Scheme string

const (
	SchemeSystem Scheme = "system"
	SchemeLight  Scheme = "light"
	SchemeDark   Scheme = "dark"
)

// ValidSchemes returns all valid scheme values.
func ValidSchemes() []Scheme {
	return []Scheme{SchemeSystem, SchemeLight, SchemeDark}
}

// Valid reports whether s is a known scheme value.
func (s Scheme) Valid() bool {
	switch s {
	case SchemeSystem, SchemeLight, SchemeDark:
		return true
	}
	return false
}

// Detector reports the terminal's effective scheme. It exists so callers
// can inject a fixed answer instead of probing the terminal.
type Detector func() Scheme

// DetectTerminal probes the terminal background to pick light or dark.
func DetectTerminal() Scheme {
	if lipgloss.HasDarkBackground() {
		return SchemeDark
	}
	return SchemeLight
}

// Resolve collapses SchemeSystem to a concrete light/dark answer using
// the given detector (DetectTerminal when nil). Light and dark pass
// through unchanged; unknown values resolve like system.
func Resolve(s Scheme, detect Detector) Scheme {
	switch s {
	case SchemeLight, SchemeDark:
		return s
	}
	if detect == nil {
		detect = DetectTerminal
	}
	return detect()
}

// Palette supplies the scheme-dependent surface colors a banner falls
// back to when no explicit background is configured. Colors are ANSI-256
// or hex strings as understood by lipgloss.
type Palette struct {
	// LightSurface is a light neutral surface.
	LightSurface string
	// DarkSurface is the platform-appropriate secondary surface.
	DarkSurface string
}

// DefaultPalette returns the stock surface colors.
func DefaultPalette() Palette {
	return Palette{
		LightSurface: "254",
		DarkSurface:  "237",
	}
}

// Surface returns the fallback surface color for a resolved scheme.
// SchemeSystem should be resolved before calling; it falls back to the
// dark surface.
func (p Palette) Surface(s Scheme) string {
	if s == SchemeLight {
		return p.LightSurface
	}
	return p.DarkSurface
}
