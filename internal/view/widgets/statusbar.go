package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/cedarcreek/trailmap/internal/view/state"
)

// StatusBar shows the trail name, the current waypoint title and
// transient messages (save results, conflicts).
type StatusBar struct {
	state *state.State
}

// NewStatusBar creates a new status bar.
func NewStatusBar(st *state.State) *StatusBar {
	return &StatusBar{
		state: st,
	}
}

// Layout renders the status bar.
func (s *StatusBar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := 28

	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 30, G: 32, B: 36, A: 255}, clip.Rect(rect).Op())

	left := s.state.Trail().Name
	if wp := s.state.CurrentWaypoint(); wp != nil {
		left = wp.Title
	}
	right := s.state.Status

	return layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10), Top: unit.Dp(5)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				l := material.Label(th, 12, left)
				l.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
				return l.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				l := material.Label(th, 12, right)
				l.Color = color.NRGBA{R: 150, G: 180, B: 200, A: 255}
				return l.Layout(gtx)
			}),
		)
	})
}
