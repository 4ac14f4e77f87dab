package engine

// ScreenAt projects a content-space point (in marker coordinates,
// relative to the route anchor) to screen space under the committed
// transform.
func (e *Engine) ScreenAt(p Point) (x, y float64) {
	x = (p.X+e.anchor.X)*e.tf.Scale + e.tf.X
	y = (p.Y+e.anchor.Y)*e.tf.Scale + e.tf.Y
	return
}

// ContentAt inverts the transform for a screen-space pointer position,
// returning marker coordinates. No rounding happens here; snapping to
// integer pixels is a persistence-time policy in the editor.
func (e *Engine) ContentAt(screenX, screenY float64) Point {
	if e.tf.Scale == 0 {
		return Point{}
	}
	return Point{
		X: (screenX-e.tf.X)/e.tf.Scale - e.anchor.X,
		Y: (screenY-e.tf.Y)/e.tf.Scale - e.anchor.Y,
	}
}

// PointVisible reports whether the content point currently projects
// inside the viewport shrunk by margin on every edge.
func (e *Engine) PointVisible(p Point, margin float64) bool {
	return e.visibleAt(e.tf, p, margin)
}

// visibleAt is PointVisible under an explicit transform, so visibility
// can be judged against an in-flight animation frame.
func (e *Engine) visibleAt(tf Transform, p Point, margin float64) bool {
	x := (p.X+e.anchor.X)*tf.Scale + tf.X
	y := (p.Y+e.anchor.Y)*tf.Scale + tf.Y
	return x >= margin && x <= e.viewport.W-margin &&
		y >= margin && y <= e.viewport.H-margin
}
