// Package engine implements the shared map viewport engine: a 2D
// scale/translate transform over a fixed-size content image, with
// constrained panning, focal-point zooming, camera animation and
// screen<->content coordinate mapping. It has no UI dependencies; the
// view layer feeds it input events and reads the transform back out.
package engine

import "fmt"

// Transform maps content-space coordinates to screen space:
// screenX = contentX*Scale + X, screenY = contentY*Scale + Y.
type Transform struct {
	Scale float64
	X     float64
	Y     float64
}

// Point is a position in content space (full-resolution asset pixels).
type Point struct {
	X float64
	Y float64
}

// Size holds width/height in pixels.
type Size struct {
	W float64
	H float64
}

// Config parameterizes one map surface. The same engine serves the
// overview map, the waypoint detail map, the editor preview and the
// photo viewer; only the numbers and enabled input sources differ.
type Config struct {
	// MarginFactor shrinks the computed cover scale slightly (e.g. 0.98)
	// so content rests marginally smaller than the viewport and the
	// centering branch of the constraint solver engages predictably.
	MarginFactor float64

	// ZoomFactor is the default zoom applied on top of the minimum
	// scale when a surface is (re-)initialized.
	ZoomFactor float64

	// MaxScale is the zoom ceiling. Absolute (1.0 = native resolution)
	// unless MaxScaleRelative is set, in which case the ceiling is
	// MaxScale times the computed cover scale.
	MaxScale         float64
	MaxScaleRelative bool

	// Enabled input sources.
	Pan   bool
	Pinch bool
	Wheel bool
}

// Surface presets. The viewer's overview map allows every input source;
// the photo viewer zooms relative to its cover scale.

func OverviewConfig() Config {
	return Config{MarginFactor: 0.98, ZoomFactor: 1.25, MaxScale: 1.0, Pan: true, Pinch: true, Wheel: true}
}

func DetailConfig() Config {
	return Config{MarginFactor: 0.98, ZoomFactor: 1.6, MaxScale: 1.0, Pan: true, Pinch: true, Wheel: true}
}

func EditorConfig() Config {
	return Config{MarginFactor: 0.98, ZoomFactor: 1.25, MaxScale: 1.0, Pan: true, Wheel: true}
}

func PhotoConfig() Config {
	return Config{MarginFactor: 1.0, ZoomFactor: 1.0, MaxScale: 3.0, MaxScaleRelative: true, Pan: true, Pinch: true, Wheel: true}
}

// MinScale returns the largest scale at which the full content still
// fits inside the viewport, reduced by the margin factor so the content
// rests marginally smaller and the centering branch of the constraint
// solver engages. Errors on degenerate dimensions rather than producing
// NaN/Inf.
func MinScale(viewport, content Size, marginFactor float64) (float64, error) {
	if content.W <= 0 || content.H <= 0 {
		return 0, fmt.Errorf("engine: content size %gx%g not positive", content.W, content.H)
	}
	if viewport.W <= 0 || viewport.H <= 0 {
		return 0, fmt.Errorf("engine: viewport size %gx%g not positive", viewport.W, viewport.H)
	}
	sx := viewport.W / content.W
	sy := viewport.H / content.H
	s := sx
	if sy < s {
		s = sy
	}
	return s * marginFactor, nil
}

// CoverScale returns the smallest scale at which the content covers the
// viewport on both axes. The photo surface expresses its zoom ceiling
// as a multiple of this.
func CoverScale(viewport, content Size) float64 {
	if content.W <= 0 || content.H <= 0 {
		return 0
	}
	sx := viewport.W / content.W
	sy := viewport.H / content.H
	if sy > sx {
		return sy
	}
	return sx
}

// DefaultScale applies the surface zoom factor on top of the minimum
// scale, clamped to the ceiling.
func DefaultScale(minScale, zoomFactor, maxScale float64) float64 {
	s := minScale * zoomFactor
	if s > maxScale {
		s = maxScale
	}
	if s < minScale {
		s = minScale
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
