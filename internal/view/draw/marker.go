package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"
)

// MarkerRadius is the on-screen marker radius in pixels; the counter
// scale keeps it constant across zoom levels.
const MarkerRadius = 14

var (
	colourMarkerFallback = color.NRGBA{R: 45, G: 106, B: 79, A: 255}
	colourMarkerRing     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colourHighlightRing  = color.NRGBA{R: 255, G: 200, B: 80, A: 255}
)

// ParseColour decodes a #rrggbb string, falling back to the trail
// green when the document carries something unparseable.
func ParseColour(s string) color.NRGBA {
	if len(s) != 7 || s[0] != '#' {
		return colourMarkerFallback
	}
	var v [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexVal(s[1+i*2])
		lo, ok2 := hexVal(s[2+i*2])
		if !ok1 || !ok2 {
			return colourMarkerFallback
		}
		v[i] = hi<<4 | lo
	}
	return color.NRGBA{R: v[0], G: v[1], B: v[2], A: 255}
}

func hexVal(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// DrawMarker renders one waypoint marker at a screen position: a
// filled disc in the waypoint colour, a ring (amber when the waypoint
// is current) and the symbol text.
func DrawMarker(gtx layout.Context, th *material.Theme, x, y, radius float32, symbol string, fill, text color.NRGBA, highlighted bool) {
	ring := colourMarkerRing
	ringWidth := float32(2)
	if highlighted {
		ring = colourHighlightRing
		ringWidth = 3
	}
	fillCircle(gtx, x, y, radius+ringWidth, ring)
	fillCircle(gtx, x, y, radius, fill)

	if symbol == "" {
		return
	}
	// Center the symbol inside the disc.
	box := int(radius * 2)
	offset := op.Offset(image.Pt(int(x)-box/2, int(y)-box/2)).Push(gtx.Ops)
	cgtx := gtx
	cgtx.Constraints = layout.Exact(image.Pt(box, box))
	layout.Center.Layout(cgtx, func(gtx layout.Context) layout.Dimensions {
		label := material.Label(th, 13, symbol)
		label.Color = text
		return label.Layout(gtx)
	})
	offset.Pop()
}

func fillCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	segments := 24
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// HitTestMarker checks a screen point against a marker's fixed screen
// footprint, padded slightly for touch.
func HitTestMarker(screenX, screenY, markerX, markerY float32) bool {
	dx := screenX - markerX
	dy := screenY - markerY
	r := float32(MarkerRadius + 6)
	return dx*dx+dy*dy <= r*r
}
