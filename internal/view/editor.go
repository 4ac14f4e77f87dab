package view

import (
	"errors"
	"image/color"
	"math"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/cedarcreek/trailmap/internal/assets"
	"github.com/cedarcreek/trailmap/internal/debug"
	"github.com/cedarcreek/trailmap/internal/engine"
	"github.com/cedarcreek/trailmap/internal/store"
	"github.com/cedarcreek/trailmap/internal/trail"
	"github.com/cedarcreek/trailmap/internal/view/state"
	"github.com/cedarcreek/trailmap/internal/view/widgets"
)

// Editor is the trail marker editor application. It edits the document
// in memory through the undo stack and writes it back at the revision
// it was loaded at, so a concurrent edit surfaces as a conflict
// instead of a silent overwrite.
type Editor struct {
	state *state.State
	db    store.Store
	theme *material.Theme

	mv      *MapView
	toolbar *widgets.Toolbar
	bar     *widgets.WaypointBar
	status  *widgets.StatusBar

	// Selected marker instance, selSlot is -1 when nothing is selected.
	selWaypoint int
	selSlot     int

	now time.Time
}

// NewEditor creates an editor over a loaded trail document.
func NewEditor(doc *trail.Document, db store.Store, imgs *assets.MapImages) *Editor {
	th := material.NewTheme()
	st := state.NewState(doc)

	e := &Editor{
		state:   st,
		db:      db,
		theme:   th,
		selSlot: -1,
	}
	e.mv = NewMapView(engine.EditorConfig(), imgs, doc.Trail, func() int { return st.Current })
	e.mv.OnMarkerHit = e.selectMarker
	e.mv.OnPlace = e.placeAt

	e.toolbar = widgets.NewToolbar(st)
	e.toolbar.OnMode = e.modeChanged
	e.toolbar.OnSave = e.save
	e.toolbar.OnReset = e.mv.Reset

	e.bar = widgets.NewWaypointBar(st)
	e.bar.OnSelect = func(index int) {
		st.Current = index
		e.clearSelection()
		if wp := st.Trail().Waypoint(index); wp != nil {
			e.mv.FocusWaypoint(wp, e.now)
		}
	}
	e.status = widgets.NewStatusBar(st)
	return e
}

// Run starts the editor event loop.
func (e *Editor) Run(w *app.Window) error {
	var ops op.Ops

	tag := new(int)

	for {
		switch ev := w.Event().(type) {
		case app.DestroyEvent:
			return ev.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			e.now = gtx.Now

			for {
				kev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl})
				if !ok {
					break
				}
				if ke, ok := kev.(key.Event); ok && ke.State == key.Press {
					e.handleKeyEvent(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			e.layout(gtx)
			ev.Frame(gtx.Ops)

			if e.mv.Animating() {
				w.Invalidate()
			}
		}
	}
}

func (e *Editor) handleKeyEvent(ev key.Event) {
	switch ev.Name {
	case key.NameDeleteForward, key.NameDeleteBackward:
		e.removeSelected()
	case key.NameEscape:
		e.clearSelection()
		e.setMode(state.ModePan)
	case "Z":
		if ev.Modifiers.Contain(key.ModCtrl) {
			e.state.Edit.Undo(e.state.Trail())
			e.clearSelection()
		}
	case "Y":
		if ev.Modifiers.Contain(key.ModCtrl) {
			e.state.Edit.Redo(e.state.Trail())
			e.clearSelection()
		}
	case "S":
		if ev.Modifiers.Contain(key.ModCtrl) {
			e.save()
		}
	case "P":
		e.setMode(state.ModePlace)
	}
}

func (e *Editor) setMode(mode state.EditMode) {
	e.state.Edit.Mode = mode
	e.modeChanged(mode)
}

func (e *Editor) modeChanged(mode state.EditMode) {
	e.mv.Engine().SetPlacing(mode == state.ModePlace)
	if mode == state.ModePlace {
		if e.selSlot >= 0 {
			e.state.Status = "tap to move the selected marker"
		} else {
			e.state.Status = "tap to place a marker"
		}
	} else {
		e.state.Status = ""
	}
}

func (e *Editor) selectMarker(waypoint, slot int) {
	e.selWaypoint = waypoint
	e.selSlot = slot
	e.state.Current = waypoint
	e.state.Status = "marker selected"
}

func (e *Editor) clearSelection() {
	e.selSlot = -1
	e.state.Status = ""
}

// placeAt lands a placement tap: it moves the selected marker if there
// is one, otherwise appends a marker to the focused waypoint. Content
// coordinates are rounded to whole pixels only here, at the document
// boundary.
func (e *Editor) placeAt(p engine.Point) {
	pos := trail.Position{
		X: int(math.Round(p.X)),
		Y: int(math.Round(p.Y)),
	}
	tr := e.state.Trail()

	if e.selSlot >= 0 {
		wp := tr.Waypoint(e.selWaypoint)
		if wp != nil && e.selSlot < len(wp.Markers) {
			e.state.Edit.Execute(&state.MoveMarkerAction{
				Waypoint: e.selWaypoint,
				Slot:     e.selSlot,
				Old:      wp.Markers[e.selSlot],
				New:      pos,
			}, tr)
			e.state.Status = "marker moved"
		}
		e.clearSelectionKeepStatus()
	} else if e.state.Current > 0 {
		e.state.Edit.Execute(&state.PlaceMarkerAction{
			Waypoint: e.state.Current,
			Pos:      pos,
		}, tr)
		e.state.Status = "marker placed"
	} else {
		e.state.Status = "select a waypoint first"
	}

	// Placement is one-shot; back to pan.
	e.state.Edit.Mode = state.ModePan
}

func (e *Editor) clearSelectionKeepStatus() {
	e.selSlot = -1
}

func (e *Editor) removeSelected() {
	if e.selSlot < 0 {
		return
	}
	tr := e.state.Trail()
	wp := tr.Waypoint(e.selWaypoint)
	if wp == nil || e.selSlot >= len(wp.Markers) {
		e.clearSelection()
		return
	}
	e.state.Edit.Execute(&state.RemoveMarkerAction{
		Waypoint: e.selWaypoint,
		Slot:     e.selSlot,
		Old:      wp.Markers[e.selSlot],
	}, tr)
	e.selSlot = -1
	e.state.Status = "marker removed"
}

func (e *Editor) save() {
	if err := e.state.Trail().Validate(); err != nil {
		debug.Log("save rejected: %v", err)
		e.state.Status = err.Error()
		return
	}
	err := e.state.Doc.Save(e.db)
	switch {
	case errors.Is(err, store.ErrConflict):
		e.state.Status = "stale revision: trail changed on disk, reload and retry"
	case err != nil:
		debug.Log("save: %v", err)
		e.state.Status = "save failed"
	default:
		e.state.Edit.Dirty = false
		e.state.Status = "saved"
	}
}

func (e *Editor) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return e.toolbar.Layout(gtx, e.theme)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return e.mv.Layout(gtx, e.theme)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return e.bar.Layout(gtx, e.theme)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return e.status.Layout(gtx, e.theme)
		}),
	)
}
