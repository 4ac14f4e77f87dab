package engine

// ClampAxis constrains a translation component for one axis. When the
// scaled content fits inside the viewport on that axis the position is
// forced to the centered value; there is no panning slack. Otherwise
// the position is clamped so the content edges never retreat inside the
// viewport edges.
func ClampAxis(pos, scaledSize, viewportSize float64) float64 {
	if scaledSize <= viewportSize {
		return (viewportSize - scaledSize) / 2
	}
	if pos < viewportSize-scaledSize {
		pos = viewportSize - scaledSize
	}
	if pos > 0 {
		pos = 0
	}
	return pos
}

// Constrain returns tf with its translation corrected for the given
// viewport and content sizes. The bound depends on the current scale,
// so this must run again after every scale or viewport change.
func Constrain(tf Transform, viewport, content Size) Transform {
	tf.X = ClampAxis(tf.X, content.W*tf.Scale, viewport.W)
	tf.Y = ClampAxis(tf.Y, content.H*tf.Scale, viewport.H)
	return tf
}
