package banner

import "time"

// Edge is the screen edge a banner is anchored to. The banner slides in
// from this edge and a swipe toward it dismisses.
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
)

// ValidEdges returns all valid edge values.
func ValidEdges() []Edge {
	return []Edge{EdgeTop, EdgeBottom}
}

// CornerRadiusAuto derives the corner radius from the measured content
// height (half the height, producing a pill shape).
const CornerRadiusAuto = -1

// Config describes one banner's appearance and behavior. It is a plain
// value: construct it, hand it to a Controller or Queue, and never mutate
// it afterwards.
type Config struct {
	// Edge the banner slides from and dismisses toward.
	Edge Edge

	// Duration the banner stays visible before auto-dismissing.
	// Zero or negative means never auto-dismiss.
	Duration time.Duration

	// MinWidth is the minimum banner width in cells. 0 = no minimum.
	MinWidth int

	// CornerRadius is the explicit corner radius. Negative values
	// (CornerRadiusAuto) derive a pill radius from content height.
	CornerRadius float64

	// Background is the explicit background color. Empty = derived
	// from the active color scheme.
	Background string

	// Shadow styling, passed through to the rendering layer unmodified.
	ShadowColor  string
	ShadowRadius int
	ShadowOffset int
}

// Standard returns the default banner configuration: anchored to the top
// edge, visible for three seconds, pill-shaped, scheme-derived background.
func Standard() Config {
	return Config{
		Edge:         EdgeTop,
		Duration:     3 * time.Second,
		MinWidth:     0,
		CornerRadius: CornerRadiusAuto,
		ShadowColor:  "0",
		ShadowRadius: 1,
		ShadowOffset: 1,
	}
}

// Size is a measured content size in cells.
type Size struct {
	Width  float64
	Height float64
}
