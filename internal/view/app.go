package view

import (
	"image"
	"image/color"
	"path/filepath"
	"time"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/cedarcreek/trailmap/internal/assets"
	"github.com/cedarcreek/trailmap/internal/debug"
	"github.com/cedarcreek/trailmap/internal/engine"
	"github.com/cedarcreek/trailmap/internal/trail"
	"github.com/cedarcreek/trailmap/internal/view/state"
	"github.com/cedarcreek/trailmap/internal/view/widgets"
)

// swipeThreshold is the horizontal travel that flips a detail page.
const swipeThreshold = 60

// App is the walking-trail viewer application.
type App struct {
	state *state.State
	theme *material.Theme
	dir   string

	overview *MapView
	detail   *MapView
	bar      *widgets.WaypointBar
	status   *widgets.StatusBar

	photos    *assets.Cache
	photo     *MapView
	closeBtn  widget.Clickable
	photoBtns []widget.Clickable

	infoList widget.List

	swipeTag    int
	swipeStart  f32.Point
	swipeActive bool

	now time.Time
}

// NewApp creates a viewer over a loaded trail document and its decoded
// map assets. dir is the trail folder, used to resolve photo paths.
func NewApp(doc *trail.Document, dir string, imgs *assets.MapImages, overviewCfg, detailCfg engine.Config) *App {
	th := material.NewTheme()
	st := state.NewState(doc)

	a := &App{
		state:  st,
		theme:  th,
		dir:    dir,
		photos: assets.NewCache(),
	}
	a.overview = NewMapView(overviewCfg, imgs, doc.Trail, func() int { return st.Current })
	a.detail = NewMapView(detailCfg, imgs, doc.Trail, func() int { return st.Current })
	a.overview.OnMarkerTap = a.focusWaypoint
	a.detail.OnMarkerTap = a.focusWaypoint
	a.bar = widgets.NewWaypointBar(st)
	a.bar.OnSelect = a.focusWaypoint
	a.status = widgets.NewStatusBar(st)
	a.infoList = widget.List{List: layout.List{Axis: layout.Vertical}}
	return a
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops

	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			a.now = gtx.Now

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.animating() {
				w.Invalidate()
			}
		}
	}
}

func (a *App) animating() bool {
	if a.photo != nil {
		return a.photo.Animating()
	}
	if a.state.Current == 0 {
		return a.overview.Animating()
	}
	return a.detail.Animating() || a.overview.Animating()
}

func (a *App) handleKeyEvent(e key.Event) {
	switch e.Name {
	case key.NameLeftArrow:
		a.stepWaypoint(-1)
	case key.NameRightArrow:
		a.stepWaypoint(1)
	case key.NameEscape:
		if a.photo != nil {
			a.closePhoto()
		} else if a.state.Current != 0 {
			a.focusWaypoint(0)
		}
	case "R":
		a.currentSurface().Reset()
	}
}

func (a *App) currentSurface() *MapView {
	if a.photo != nil {
		return a.photo
	}
	if a.state.Current == 0 {
		return a.overview
	}
	return a.detail
}

// focusWaypoint navigates to a waypoint (0 for the overview) and
// animates the detail camera to its first marker.
func (a *App) focusWaypoint(index int) {
	a.state.Current = index
	a.state.PhotoPath = ""
	a.photo = nil
	if index == 0 {
		return
	}
	if wp := a.state.Trail().Waypoint(index); wp != nil {
		a.detail.FocusWaypoint(wp, a.now)
	}
}

func (a *App) stepWaypoint(delta int) {
	a.state.Step(delta)
	a.focusWaypoint(a.state.Current)
}

func (a *App) openPhoto(path string) {
	full := filepath.Join(a.dir, path)
	img, err := a.photos.Get(full)
	if err != nil {
		debug.Log("photo %s: %v", full, err)
		a.state.Status = "could not open photo"
		return
	}
	a.photo = NewPhotoView(img)
	a.state.PhotoPath = path
}

func (a *App) closePhoto() {
	a.photo = nil
	a.state.PhotoPath = ""
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	if a.photo != nil {
		return a.layoutPhoto(gtx)
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			if a.state.Current == 0 {
				return a.overview.Layout(gtx, a.theme)
			}
			return a.layoutDetail(gtx)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.bar.Layout(gtx, a.theme)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.status.Layout(gtx, a.theme)
		}),
	)
}

func (a *App) layoutDetail(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		// Map on top, info below. The map surface consumes its own
		// pointer input; page swipes live on the info panel only.
		layout.Flexed(0.55, func(gtx layout.Context) layout.Dimensions {
			return a.detail.Layout(gtx, a.theme)
		}),
		layout.Flexed(0.45, func(gtx layout.Context) layout.Dimensions {
			return a.layoutInfo(gtx)
		}),
	)
}

func (a *App) layoutInfo(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, size.X, size.Y)).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, color.NRGBA{R: 45, G: 48, B: 54, A: 255})

	a.handleSwipe(gtx)

	wp := a.state.CurrentWaypoint()
	if wp == nil {
		return layout.Dimensions{Size: size}
	}
	if len(a.photoBtns) != len(wp.Photos) {
		a.photoBtns = make([]widget.Clickable, len(wp.Photos))
	}
	a.handlePhotoClicks(gtx, wp)

	layout.Inset{Left: unit.Dp(14), Right: unit.Dp(14), Top: unit.Dp(10)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return material.List(a.theme, &a.infoList).Layout(gtx, 1, func(gtx layout.Context, _ int) layout.Dimensions {
			return a.layoutInfoContent(gtx, wp)
		})
	})
	return layout.Dimensions{Size: size}
}

func (a *App) layoutInfoContent(gtx layout.Context, wp *trail.Waypoint) layout.Dimensions {
	var children []layout.FlexChild

	title := material.H6(a.theme, wp.Title)
	title.Color = color.NRGBA{R: 235, G: 235, B: 235, A: 255}
	children = append(children, layout.Rigid(title.Layout))

	if wp.Description != "" {
		body := material.Body2(a.theme, wp.Description)
		body.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
		children = append(children,
			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
			layout.Rigid(body.Layout))
	}

	for _, id := range wp.FeatureIDs {
		f := a.state.Trail().Feature(id)
		if f == nil {
			continue
		}
		line := material.Body2(a.theme, "• "+f.Title)
		line.Color = color.NRGBA{R: 170, G: 200, B: 180, A: 255}
		children = append(children,
			layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
			layout.Rigid(line.Layout))
	}

	for i, p := range wp.Photos {
		btn := material.Button(a.theme, &a.photoBtns[i], filepath.Base(p))
		btn.Background = color.NRGBA{R: 55, G: 58, B: 65, A: 255}
		children = append(children,
			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
			layout.Rigid(btn.Layout))
	}

	if wp.Link != "" {
		link := material.Caption(a.theme, wp.Link)
		link.Color = color.NRGBA{R: 140, G: 170, B: 220, A: 255}
		children = append(children,
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Rigid(link.Layout))
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (a *App) handlePhotoClicks(gtx layout.Context, wp *trail.Waypoint) {
	for i := range a.photoBtns {
		for a.photoBtns[i].Clicked(gtx) {
			a.openPhoto(wp.Photos[i])
		}
	}
}

func (a *App) handleSwipe(gtx layout.Context) {
	size := gtx.Constraints.Max
	area := clip.Rect(image.Rect(0, 0, size.X, size.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, &a.swipeTag)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: &a.swipeTag,
			Kinds:  pointer.Press | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			a.swipeStart = pe.Position
			a.swipeActive = true
		case pointer.Release:
			if !a.swipeActive {
				break
			}
			a.swipeActive = false
			dx := pe.Position.X - a.swipeStart.X
			if dx <= -swipeThreshold {
				a.stepWaypoint(1)
			} else if dx >= swipeThreshold {
				a.stepWaypoint(-1)
			}
		case pointer.Cancel:
			a.swipeActive = false
		}
	}
}

func (a *App) layoutPhoto(gtx layout.Context) layout.Dimensions {
	for a.closeBtn.Clicked(gtx) {
		a.closePhoto()
	}

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return a.photo.Layout(gtx, a.theme)
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(10), Left: unit.Dp(10)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				btn := material.Button(a.theme, &a.closeBtn, "Close")
				btn.Background = color.NRGBA{R: 55, G: 58, B: 65, A: 220}
				return btn.Layout(gtx)
			})
		}),
	)
}
