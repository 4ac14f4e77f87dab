package engine

import (
	"math"
	"time"
)

// Session is the snapshot taken at gesture start. It lives for the
// duration of one pan or pinch and is discarded at the end event;
// nothing about a gesture is persisted.
type Session struct {
	StartScale float64
	StartX     float64
	StartY     float64

	// Pinch bookkeeping: screen-space focal point (pointer centroid)
	// and pointer separation at gesture start.
	FocalX    float64
	FocalY    float64
	StartDist float64
}

const wheelStep = 1.1 // scale ratio per discrete wheel notch

// Begin snapshots the current transform at gesture start. A running
// camera animation is cancelled first, adopting whatever transform is
// currently on screen, so the gesture takes immediate effect.
func (e *Engine) Begin(now time.Time) Session {
	e.cancelAnimation(now)
	return Session{StartScale: e.tf.Scale, StartX: e.tf.X, StartY: e.tf.Y}
}

// BeginPinch snapshots for a two-pointer scale gesture.
func (e *Engine) BeginPinch(now time.Time, focalX, focalY, dist float64) Session {
	s := e.Begin(now)
	s.FocalX = focalX
	s.FocalY = focalY
	s.StartDist = dist
	return s
}

// PanTo applies a single-pointer drag: translation is the gesture-start
// snapshot plus the accumulated pointer delta, then constrained.
func (e *Engine) PanTo(s Session, dx, dy float64) {
	if !e.cfg.Pan || !e.ready {
		return
	}
	e.tf.X = s.StartX + dx
	e.tf.Y = s.StartY + dy
	e.tf = Constrain(e.tf, e.viewport, e.content)
}

// PinchTo applies a scale gesture. factor is the ratio of the current
// pointer separation to the separation at gesture start. The content
// point under the focal point stays visually fixed: naive
// scale-about-origin makes the content jump, so the translation is
// re-anchored around the focal point before constraining.
func (e *Engine) PinchTo(s Session, factor float64) {
	if !e.cfg.Pinch || !e.ready {
		return
	}
	e.zoomAnchored(clamp(s.StartScale*factor, e.minScale, e.maxScale), s.FocalX, s.FocalY)
}

// Wheel applies discrete zoom steps with the cursor as the focal
// point. Positive steps zoom in.
func (e *Engine) Wheel(now time.Time, steps, cursorX, cursorY float64) {
	if !e.cfg.Wheel || !e.ready || steps == 0 {
		return
	}
	e.cancelAnimation(now)
	factor := math.Pow(wheelStep, steps)
	e.zoomAnchored(clamp(e.tf.Scale*factor, e.minScale, e.maxScale), cursorX, cursorY)
}

func (e *Engine) zoomAnchored(newScale, focalX, focalY float64) {
	if e.tf.Scale == 0 {
		return
	}
	ratio := newScale / e.tf.Scale
	e.tf.X = focalX - (focalX-e.tf.X)*ratio
	e.tf.Y = focalY - (focalY-e.tf.Y)*ratio
	e.tf.Scale = newScale
	e.tf = Constrain(e.tf, e.viewport, e.content)
}
