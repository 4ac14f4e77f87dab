package engine

import (
	"testing"
	"time"
)

// newTestEngine builds a ready engine: 400x400 viewport over 2000x2000
// content at scale 0.5, panned to (-300, -300) so there is slack in
// every direction and the constraint solver stays out of the way.
func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e := New(cfg)
	e.SetContent(Size{2000, 2000}, Point{})
	e.SetViewport(Size{400, 400})
	if err := e.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	e.tf = Constrain(Transform{Scale: 0.5, X: -300, Y: -300}, e.viewport, e.content)
	return e
}

var t0 = time.Unix(1700000000, 0)

func TestPanFromSnapshot(t *testing.T) {
	e := newTestEngine(t, OverviewConfig())
	s := e.Begin(t0)

	// Deltas accumulate against the gesture-start snapshot, not the
	// previous move event.
	e.PanTo(s, 10, -20)
	e.PanTo(s, 25, -40)
	tf := e.Transform()
	if tf.X != -275 || tf.Y != -340 {
		t.Errorf("after pan: (%g, %g), want (-275, -340)", tf.X, tf.Y)
	}
}

func TestPanConstrained(t *testing.T) {
	e := newTestEngine(t, OverviewConfig())
	s := e.Begin(t0)
	e.PanTo(s, 5000, 5000)
	tf := e.Transform()
	if tf.X != 0 || tf.Y != 0 {
		t.Errorf("pan past origin: (%g, %g), want (0, 0)", tf.X, tf.Y)
	}
	e.PanTo(s, -5000, -5000)
	tf = e.Transform()
	if tf.X != -600 || tf.Y != -600 {
		t.Errorf("pan past far edge: (%g, %g), want (-600, -600)", tf.X, tf.Y)
	}
}

func TestPinchKeepsFocalPointFixed(t *testing.T) {
	e := newTestEngine(t, OverviewConfig())

	focalX, focalY := 250.0, 150.0
	before := e.ContentAt(focalX, focalY)

	s := e.BeginPinch(t0, focalX, focalY, 100)
	e.PinchTo(s, 1.4)

	after := e.ContentAt(focalX, focalY)
	if !almostEqual(before.X, after.X, 1e-6) || !almostEqual(before.Y, after.Y, 1e-6) {
		t.Errorf("content under focal point moved: (%.4f, %.4f) -> (%.4f, %.4f)",
			before.X, before.Y, after.X, after.Y)
	}
}

// Zooming in and back to the original scale about the same focal point
// must restore the translation (round-trip law).
func TestPinchRoundTrip(t *testing.T) {
	e := newTestEngine(t, OverviewConfig())
	orig := e.Transform()

	s := e.BeginPinch(t0, 200, 200, 100)
	e.PinchTo(s, 1.5)
	e.PinchTo(s, 1.0)

	tf := e.Transform()
	if !almostEqual(tf.Scale, orig.Scale, 1e-9) {
		t.Fatalf("scale %g, want %g", tf.Scale, orig.Scale)
	}
	if !almostEqual(tf.X, orig.X, 1e-6) || !almostEqual(tf.Y, orig.Y, 1e-6) {
		t.Errorf("translation (%g, %g), want (%g, %g)", tf.X, tf.Y, orig.X, orig.Y)
	}
}

func TestWheelRoundTrip(t *testing.T) {
	e := newTestEngine(t, OverviewConfig())
	orig := e.Transform()

	e.Wheel(t0, 3, 120, 320)
	e.Wheel(t0, -3, 120, 320)

	tf := e.Transform()
	if !almostEqual(tf.Scale, orig.Scale, 1e-9) {
		t.Fatalf("scale %g, want %g", tf.Scale, orig.Scale)
	}
	if !almostEqual(tf.X, orig.X, 1e-6) || !almostEqual(tf.Y, orig.Y, 1e-6) {
		t.Errorf("translation (%g, %g), want (%g, %g)", tf.X, tf.Y, orig.X, orig.Y)
	}
}

func TestScaleClampedToBounds(t *testing.T) {
	e := newTestEngine(t, OverviewConfig())
	min, max := e.Bounds()

	s := e.BeginPinch(t0, 200, 200, 100)
	e.PinchTo(s, 100)
	if got := e.Transform().Scale; got != max {
		t.Errorf("pinch in: scale %g, want clamped to max %g", got, max)
	}
	e.PinchTo(s, 0.0001)
	if got := e.Transform().Scale; got != min {
		t.Errorf("pinch out: scale %g, want clamped to min %g", got, min)
	}
}

func TestDisabledInputSourcesIgnored(t *testing.T) {
	cfg := OverviewConfig()
	cfg.Pinch = false
	cfg.Wheel = false
	e := newTestEngine(t, cfg)
	orig := e.Transform()

	s := e.BeginPinch(t0, 200, 200, 100)
	e.PinchTo(s, 2.0)
	e.Wheel(t0, 2, 200, 200)

	if e.Transform() != orig {
		t.Errorf("disabled scale inputs changed transform: %+v -> %+v", orig, e.Transform())
	}
}

func TestPhotoSurfaceCoverRelativeCeiling(t *testing.T) {
	e := New(PhotoConfig())
	e.SetContent(Size{1600, 1200}, Point{})
	e.SetViewport(Size{400, 600})
	if err := e.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}

	_, max := e.Bounds()
	want := 3.0 * (600.0 / 1200.0) // cover scale is height-limited here
	if !almostEqual(max, want, 1e-9) {
		t.Errorf("photo max scale = %g, want %g", max, want)
	}
}
