package widgets

import (
	"image"
	"image/color"
	"strconv"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/cedarcreek/trailmap/internal/view/state"
)

// WaypointBar is the tappable strip of waypoint chips at the bottom of
// the viewer. Chip 0 is the overview; the rest map to waypoint indices.
type WaypointBar struct {
	state *state.State
	list  layout.List
	chips []widget.Clickable

	// OnSelect fires with the chosen waypoint index (0 for overview).
	OnSelect func(index int)
}

// NewWaypointBar creates a new waypoint strip.
func NewWaypointBar(st *state.State) *WaypointBar {
	return &WaypointBar{
		state: st,
		list:  layout.List{Axis: layout.Horizontal},
	}
}

// Layout renders the strip.
func (w *WaypointBar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := 52
	count := len(w.state.Trail().Waypoints) + 1
	if len(w.chips) != count {
		w.chips = make([]widget.Clickable, count)
	}

	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 255}, clip.Rect(rect).Op())

	w.handleClicks(gtx)

	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return w.list.Layout(gtx, count, func(gtx layout.Context, i int) layout.Dimensions {
			return layout.Inset{Right: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return w.chip(gtx, th, i)
			})
		})
	})
}

func (w *WaypointBar) chip(gtx layout.Context, th *material.Theme, i int) layout.Dimensions {
	label := "Map"
	if i > 0 {
		label = strconv.Itoa(w.state.Trail().Waypoints[i-1].Index)
	}
	active := w.chipTarget(i) == w.state.Current

	bg := color.NRGBA{R: 55, G: 58, B: 65, A: 255}
	if active {
		bg = color.NRGBA{R: 80, G: 130, B: 180, A: 255}
	}
	btn := &w.chips[i]
	if btn.Hovered() {
		bg.R = minU8(bg.R+15, 255)
		bg.G = minU8(bg.G+15, 255)
		bg.B = minU8(bg.B+15, 255)
	}

	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{X: 40, Y: 32}
				rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
				paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					l := material.Label(th, 13, label)
					l.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
					return l.Layout(gtx)
				})
			},
		)
	})
}

func (w *WaypointBar) chipTarget(i int) int {
	if i == 0 {
		return 0
	}
	return w.state.Trail().Waypoints[i-1].Index
}

func (w *WaypointBar) handleClicks(gtx layout.Context) {
	for i := range w.chips {
		for w.chips[i].Clicked(gtx) {
			if w.OnSelect != nil {
				w.OnSelect(w.chipTarget(i))
			}
		}
	}
}
