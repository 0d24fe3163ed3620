// Package banner implements the presentation core for transient overlay
// notifications: configuration, gesture-to-dismiss resolution, layout
// geometry, and the debounced auto-dismiss controller.
package banner
