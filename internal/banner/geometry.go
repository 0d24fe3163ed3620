package banner

import "github.com/jmylchreest/toastui/internal/theme"

// offscreenOffset is far enough outside any viewport that a hidden
// banner is guaranteed to be fully off-screen regardless of its size.
const offscreenOffset = 1000.0

// VerticalOffset returns the banner's vertical rest offset: 0 while
// active, otherwise a fixed off-screen offset past the anchored edge
// (negative above the top, positive below the bottom).
func VerticalOffset(active bool, edge Edge) float64 {
	if active {
		return 0
	}
	if edge == EdgeTop {
		return -offscreenOffset
	}
	return offscreenOffset
}

// CornerRadius returns the configured radius when one is set (>= 0),
// otherwise half the content height, which rounds the banner into a
// pill that adapts to its content.
func CornerRadius(configured, contentHeight float64) float64 {
	if configured >= 0 {
		return configured
	}
	return contentHeight / 2
}

// Background returns the configured background color when set, otherwise
// the palette surface for the given scheme. SchemeSystem callers should
// resolve the scheme first (theme.Resolve).
func Background(configured string, scheme theme.Scheme, palette theme.Palette) string {
	if configured != "" {
		return configured
	}
	return palette.Surface(scheme)
}
