// Package draw provides rendering helpers for the map surfaces.
package draw

import (
	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"

	"github.com/cedarcreek/trailmap/internal/engine"
)

// DrawBase paints the base image under the surface transform:
// screen = content*scale + (x, y).
func DrawBase(gtx layout.Context, img paint.ImageOp, tf engine.Transform) {
	drawTransformed(gtx, img, tf.Scale, tf.X, tf.Y)
}

// DrawRoute paints the route overlay, which is anchored at a fixed
// offset inside the base image's content space.
func DrawRoute(gtx layout.Context, img paint.ImageOp, tf engine.Transform, anchorX, anchorY float64) {
	drawTransformed(gtx, img, tf.Scale,
		tf.X+anchorX*tf.Scale,
		tf.Y+anchorY*tf.Scale)
}

func drawTransformed(gtx layout.Context, img paint.ImageOp, scale, x, y float64) {
	aff := f32.Affine2D{}.
		Scale(f32.Point{}, f32.Pt(float32(scale), float32(scale))).
		Offset(f32.Pt(float32(x), float32(y)))
	defer op.Affine(aff).Push(gtx.Ops).Pop()
	img.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}
