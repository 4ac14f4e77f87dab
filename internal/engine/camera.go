package engine

import "time"

const (
	// AnimDuration is how long an animate-to-target transition runs.
	AnimDuration = 400 * time.Millisecond

	// visibleMargin shrinks the viewport on each edge for the
	// skip-if-visible test, so points hugging the border still
	// trigger a re-center.
	visibleMargin = 40.0
)

type animation struct {
	from  Transform
	to    Transform
	start time.Time
}

// CenterOn animates the surface so the given content point ends up in
// the viewport center at the current scale. If the point's current
// projection already falls inside the viewport minus the margin, no
// animation starts and false is returned; re-centering an already
// comfortably visible point is jarring.
func (e *Engine) CenterOn(p Point, now time.Time) bool {
	if !e.ready {
		return false
	}
	// Judge visibility against what is on screen right now, which
	// mid-animation is the interpolated frame, not the committed
	// transform.
	cur := e.Frame(now)
	if e.visibleAt(cur, p, visibleMargin) {
		return false
	}
	target := Transform{
		Scale: cur.Scale,
		X:     e.viewport.W/2 - (p.X+e.anchor.X)*cur.Scale,
		Y:     e.viewport.H/2 - (p.Y+e.anchor.Y)*cur.Scale,
	}
	target = Constrain(target, e.viewport, e.content)
	if target == cur {
		return false
	}
	// Overwriting a running animation is the cancellation protocol:
	// the new transition starts from whatever is on screen now.
	e.anim = &animation{from: cur, to: target, start: now}
	return true
}

// Animating reports whether a camera transition is in progress; the
// host should keep invalidating frames while it is.
func (e *Engine) Animating() bool { return e.anim != nil }

// Frame returns the transform to render at the given time. While a
// camera animation runs this interpolates with ease-in-out timing;
// when it completes, the target becomes the committed transform and
// the animation state is cleared, so subsequent gesture-driven writes
// are instantaneous again.
func (e *Engine) Frame(now time.Time) Transform {
	a := e.anim
	if a == nil {
		return e.tf
	}
	t := float64(now.Sub(a.start)) / float64(AnimDuration)
	if t >= 1 {
		e.tf = a.to
		e.anim = nil
		return e.tf
	}
	if t < 0 {
		t = 0
	}
	k := easeInOut(t)
	return Transform{
		Scale: a.from.Scale + (a.to.Scale-a.from.Scale)*k,
		X:     a.from.X + (a.to.X-a.from.X)*k,
		Y:     a.from.Y + (a.to.Y-a.from.Y)*k,
	}
}

// cancelAnimation adopts the mid-flight transform as committed state.
func (e *Engine) cancelAnimation(now time.Time) {
	if e.anim == nil {
		return
	}
	e.tf = e.Frame(now)
	e.anim = nil
}

// easeInOut is a smoothstep curve: slow start, slow settle.
func easeInOut(t float64) float64 {
	return t * t * (3 - 2*t)
}
