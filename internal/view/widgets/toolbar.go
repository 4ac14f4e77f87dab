// Package widgets holds the chrome around the map surfaces: the
// editor toolbar, the waypoint strip and the status bar.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/cedarcreek/trailmap/internal/view/state"
)

// Toolbar provides the editor controls.
type Toolbar struct {
	state *state.State

	// Mode buttons
	panModeBtn   widget.Clickable
	placeModeBtn widget.Clickable

	// Undo/redo
	undoBtn widget.Clickable
	redoBtn widget.Clickable

	saveBtn  widget.Clickable
	resetBtn widget.Clickable

	// OnMode fires when the edit mode changes, so the host can arm or
	// disarm placement on the map surface.
	OnMode func(state.EditMode)

	// OnSave fires on the save button.
	OnSave func()

	// OnReset fires on the view-reset button.
	OnReset func()
}

// NewToolbar creates a new toolbar.
func NewToolbar(st *state.State) *Toolbar {
	return &Toolbar{
		state: st,
	}
}

// Layout renders the toolbar.
func (t *Toolbar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := 48

	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 40, G: 43, B: 48, A: 255}, clip.Rect(rect).Op())

	t.handleClicks(gtx)

	return layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle, Spacing: layout.SpaceStart}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutModeControls(gtx, th)
			}),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutSeparator(gtx)
			}),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutHistoryControls(gtx, th)
			}),

			// Spacer
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{}
			}),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutFileControls(gtx, th)
			}),
		)
	})
}

func (t *Toolbar) layoutModeControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceStart}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.modeButton(gtx, th, &t.panModeBtn, "Pan", t.state.Edit.Mode == state.ModePan)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(2)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.modeButton(gtx, th, &t.placeModeBtn, "Place", t.state.Edit.Mode == state.ModePlace)
		}),
	)
}

func (t *Toolbar) layoutHistoryControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceStart}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.iconButton(gtx, th, &t.undoBtn, "<-")
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(2)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.iconButton(gtx, th, &t.redoBtn, "->")
		}),
	)
}

func (t *Toolbar) layoutFileControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceStart}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.iconButton(gtx, th, &t.resetBtn, "[]")
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			label := "Save"
			if t.state.Edit.Dirty {
				label = "Save*"
			}
			return t.textButton(gtx, th, &t.saveBtn, label)
		}),
	)
}

func (t *Toolbar) layoutSeparator(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		rect := image.Rect(0, 0, 1, 24)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(rect).Op())
		return layout.Dimensions{Size: image.Point{X: 1, Y: 24}}
	})
}

func (t *Toolbar) iconButton(gtx layout.Context, th *material.Theme, btn *widget.Clickable, icon string) layout.Dimensions {
	return t.buttonBase(gtx, th, btn, icon, false)
}

func (t *Toolbar) textButton(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string) layout.Dimensions {
	return t.buttonBase(gtx, th, btn, text, false)
}

func (t *Toolbar) modeButton(gtx layout.Context, th *material.Theme, btn *widget.Clickable, icon string, active bool) layout.Dimensions {
	return t.buttonBase(gtx, th, btn, icon, active)
}

func (t *Toolbar) buttonBase(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string, active bool) layout.Dimensions {
	bg := color.NRGBA{R: 55, G: 58, B: 65, A: 255}
	if active {
		bg = color.NRGBA{R: 80, G: 130, B: 180, A: 255}
	}
	if btn.Hovered() {
		bg.R = minU8(bg.R+15, 255)
		bg.G = minU8(bg.G+15, 255)
		bg.B = minU8(bg.B+15, 255)
	}

	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{X: 44, Y: 28}
				rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
				paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					label := material.Label(th, 12, text)
					label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
					return label.Layout(gtx)
				})
			},
		)
	})
}

func (t *Toolbar) handleClicks(gtx layout.Context) {
	for t.panModeBtn.Clicked(gtx) {
		t.setMode(state.ModePan)
	}
	for t.placeModeBtn.Clicked(gtx) {
		t.setMode(state.ModePlace)
	}

	for t.undoBtn.Clicked(gtx) {
		t.state.Edit.Undo(t.state.Trail())
	}
	for t.redoBtn.Clicked(gtx) {
		t.state.Edit.Redo(t.state.Trail())
	}

	for t.resetBtn.Clicked(gtx) {
		if t.OnReset != nil {
			t.OnReset()
		}
	}
	for t.saveBtn.Clicked(gtx) {
		if t.OnSave != nil {
			t.OnSave()
		}
	}
}

func (t *Toolbar) setMode(mode state.EditMode) {
	t.state.Edit.Mode = mode
	if t.OnMode != nil {
		t.OnMode(mode)
	}
}

func minU8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}
