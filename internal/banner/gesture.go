package banner

import "math"

// DefaultMinDragDistance is the displacement a drag must exceed before it
// is considered a completed gesture. Shorter motions are never evaluated.
const DefaultMinDragDistance = 20.0

// DragGesture is the end vector of one completed drag: total horizontal
// and vertical displacement from press to release. Positive DY is
// downward, positive DX is rightward.
type DragGesture struct {
	DX float64
	DY float64
}

// Distance returns the total displacement of the gesture.
func (g DragGesture) Distance() float64 {
	return math.Hypot(g.DX, g.DY)
}

// Resolver decides whether a completed drag gesture dismisses a banner.
// It holds no state beyond its threshold; resolution is a pure function
// of the gesture and the configured edge.
type Resolver struct {
	// MinDistance is the minimum gesture displacement. Non-positive
	// values fall back to DefaultMinDragDistance.
	MinDistance float64
}

// ShouldDismiss reports whether the gesture dismisses a banner anchored
// to the given edge.
//
// Gestures below the distance threshold are ignored outright. A gesture
// is vertical iff |DY| > |DX|; horizontal-dominant gestures are ignored
// regardless of magnitude. A vertical gesture dismisses only when it
// moves toward the anchored edge: upward for EdgeTop, downward for
// EdgeBottom.
func (r Resolver) ShouldDismiss(g DragGesture, edge Edge) bool {
	min := r.MinDistance
	if min <= 0 {
		min = DefaultMinDragDistance
	}
	if g.Distance() <= min {
		return false
	}
	if math.Abs(g.DY) <= math.Abs(g.DX) {
		return false
	}
	upward := g.DY < 0
	if upward {
		return edge == EdgeTop
	}
	return edge == EdgeBottom
}

// ShouldDismiss resolves the gesture with the default distance threshold.
func ShouldDismiss(g DragGesture, edge Edge) bool {
	return Resolver{}.ShouldDismiss(g, edge)
}
