// Package view implements the Gio surfaces of the trail viewer and
// editor.
package view

import (
	"image"
	"image/color"
	"math"
	"time"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/cedarcreek/trailmap/internal/assets"
	"github.com/cedarcreek/trailmap/internal/engine"
	"github.com/cedarcreek/trailmap/internal/trail"
	"github.com/cedarcreek/trailmap/internal/view/draw"
)

// tapSlop is how far a pointer may wander and still count as a tap.
const tapSlop = 8

type gestureMode int

const (
	gestureNone gestureMode = iota
	gesturePan
	gesturePinch
)

// MapView is one map surface: base image, optional route overlay and
// marker layer, driven by its own engine instance. The surface
// consumes all pointer input over its area, so a hosting swipe
// navigator never sees map pans as page swipes.
type MapView struct {
	eng      *engine.Engine
	base     paint.ImageOp
	route    paint.ImageOp
	hasRoute bool
	anchorX  float64
	anchorY  float64

	// trail is nil for surfaces without markers (the photo viewer).
	trail   *trail.Trail
	current func() int

	// OnMarkerTap fires when a marker is tapped; this wins over pan.
	OnMarkerTap func(waypoint int)

	// OnMarkerHit, when set, takes precedence over OnMarkerTap and
	// also reports which marker instance of the waypoint was hit.
	OnMarkerHit func(waypoint, slot int)

	// OnPlace fires in placement mode with the tapped content-space
	// coordinate, unrounded.
	OnPlace func(p engine.Point)

	pendingCenter *engine.Point

	pointers map[pointer.ID]f32.Point
	order    []pointer.ID
	mode     gestureMode
	session  engine.Session
	panStart f32.Point
	pressPos f32.Point
	moved    float32
}

// NewMapView builds a surface over decoded map assets. t may be nil
// for markerless surfaces.
func NewMapView(cfg engine.Config, imgs *assets.MapImages, t *trail.Trail, current func() int) *MapView {
	eng := engine.New(cfg)
	eng.SetContent(
		engine.Size{W: float64(imgs.BaseW), H: float64(imgs.BaseH)},
		engine.Point{X: float64(imgs.Anchor.X), Y: float64(imgs.Anchor.Y)},
	)
	m := &MapView{
		eng:      eng,
		base:     paint.NewImageOp(imgs.Base),
		anchorX:  float64(imgs.Anchor.X),
		anchorY:  float64(imgs.Anchor.Y),
		trail:    t,
		current:  current,
		pointers: make(map[pointer.ID]f32.Point),
	}
	if imgs.Route != nil {
		m.route = paint.NewImageOp(imgs.Route)
		m.hasRoute = true
	}
	return m
}

// NewPhotoView builds a markerless zoom surface for one photo.
func NewPhotoView(img image.Image) *MapView {
	b := img.Bounds()
	return NewMapView(engine.PhotoConfig(), &assets.MapImages{
		Base:  img,
		BaseW: b.Dx(),
		BaseH: b.Dy(),
	}, nil, nil)
}

// Engine exposes the surface's engine to its host (placement mode,
// bounds inspection).
func (m *MapView) Engine() *engine.Engine { return m.eng }

// Animating reports whether a camera transition needs more frames.
func (m *MapView) Animating() bool { return m.eng.Animating() }

// FocusWaypoint animates the camera to a waypoint's first marker. If
// the surface has not laid out yet, the focus is applied at first
// layout instead.
func (m *MapView) FocusWaypoint(wp *trail.Waypoint, now time.Time) {
	if wp == nil || len(wp.Markers) == 0 {
		return
	}
	p := engine.Point{X: float64(wp.Markers[0].X), Y: float64(wp.Markers[0].Y)}
	if !m.eng.Ready() {
		m.pendingCenter = &p
		return
	}
	m.eng.CenterOn(p, now)
}

// Reset re-initializes the transform to the surface default.
func (m *MapView) Reset() {
	if m.eng.Ready() {
		_ = m.eng.Init(nil)
	}
}

// Layout renders the surface and processes its input.
func (m *MapView) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	size := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, size.X, size.Y)).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, color.NRGBA{R: 238, G: 236, B: 230, A: 255})

	m.eng.SetViewport(engine.Size{W: float64(size.X), H: float64(size.Y)})
	if !m.eng.Ready() {
		// Zero-size frame during layout: stay in the loading state
		// rather than divide by an unknown viewport.
		if err := m.eng.Init(m.pendingCenter); err != nil {
			return layout.Dimensions{Size: size}
		}
		m.pendingCenter = nil
	}

	m.handleEvents(gtx)

	tf := m.eng.Frame(gtx.Now)
	draw.DrawBase(gtx, m.base, tf)
	if m.hasRoute {
		draw.DrawRoute(gtx, m.route, tf, m.anchorX, m.anchorY)
	}
	m.drawMarkers(gtx, th, tf)

	return layout.Dimensions{Size: size}
}

func (m *MapView) drawMarkers(gtx layout.Context, th *material.Theme, tf engine.Transform) {
	if m.trail == nil {
		return
	}
	cur := 0
	if m.current != nil {
		cur = m.current()
	}
	// Fixed screen radius: the 1/scale counter-transform cancels the
	// ambient zoom exactly, recomputed here on every frame.
	radius := float32(draw.MarkerRadius * tf.Scale * m.eng.CounterScale())
	for i := range m.trail.Waypoints {
		wp := &m.trail.Waypoints[i]
		fill := draw.ParseColour(wp.Colour)
		text := draw.ParseColour(wp.TextColour)
		for _, pos := range wp.Markers {
			x, y := m.project(pos, tf)
			draw.DrawMarker(gtx, th, x, y, radius, wp.Symbol, fill, text, wp.Index == cur)
		}
	}
}

func (m *MapView) project(pos trail.Position, tf engine.Transform) (float32, float32) {
	x := (float64(pos.X)+m.anchorX)*tf.Scale + tf.X
	y := (float64(pos.Y)+m.anchorY)*tf.Scale + tf.Y
	return float32(x), float32(y)
}

func (m *MapView) handleEvents(gtx layout.Context) {
	size := gtx.Constraints.Max
	area := clip.Rect(image.Rect(0, 0, size.X, size.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, m)
	if m.eng.Placing() {
		pointer.CursorCrosshair.Add(gtx.Ops)
	}
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  m,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollX: pointer.ScrollRange{Min: -10, Max: 10},
			ScrollY: pointer.ScrollRange{Min: -10, Max: 10},
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			m.handlePointerEvent(gtx, pe)
		}
	}
}

func (m *MapView) handlePointerEvent(gtx layout.Context, ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		m.trackPointer(ev.PointerID, ev.Position)
		switch len(m.order) {
		case 1:
			m.mode = gesturePan
			m.session = m.eng.Begin(gtx.Now)
			m.panStart = ev.Position
			m.pressPos = ev.Position
			m.moved = 0
		case 2:
			m.startPinch(gtx.Now)
		}

	case pointer.Drag:
		m.trackPointer(ev.PointerID, ev.Position)
		if d := dist(ev.Position, m.pressPos); d > m.moved {
			m.moved = d
		}
		switch m.mode {
		case gesturePinch:
			if len(m.order) >= 2 && m.session.StartDist > 0 {
				a := m.pointers[m.order[0]]
				b := m.pointers[m.order[1]]
				m.eng.PinchTo(m.session, float64(dist(a, b))/m.session.StartDist)
			}
		case gesturePan:
			if !m.eng.Placing() {
				m.eng.PanTo(m.session,
					float64(ev.Position.X-m.panStart.X),
					float64(ev.Position.Y-m.panStart.Y))
			}
		}

	case pointer.Release:
		wasTap := m.mode == gesturePan && m.moved <= tapSlop
		m.forgetPointer(ev.PointerID)
		switch len(m.order) {
		case 0:
			m.mode = gestureNone
			if wasTap {
				m.handleTap(ev.Position)
			}
		case 1:
			// Pinch collapsed to a single pointer: continue as a pan
			// from the survivor's position.
			m.mode = gesturePan
			m.session = m.eng.Begin(gtx.Now)
			m.panStart = m.pointers[m.order[0]]
			m.moved = tapSlop + 1 // a collapsed pinch is never a tap
		}

	case pointer.Cancel:
		m.pointers = make(map[pointer.ID]f32.Point)
		m.order = nil
		m.mode = gestureNone

	case pointer.Scroll:
		if ev.Scroll.Y != 0 {
			steps := 1.0
			if ev.Scroll.Y > 0 {
				steps = -1.0
			}
			m.eng.Wheel(gtx.Now, steps, float64(ev.Position.X), float64(ev.Position.Y))
		}
	}
}

func (m *MapView) startPinch(now time.Time) {
	a := m.pointers[m.order[0]]
	b := m.pointers[m.order[1]]
	cx := float64(a.X+b.X) / 2
	cy := float64(a.Y+b.Y) / 2
	m.mode = gesturePinch
	m.session = m.eng.BeginPinch(now, cx, cy, float64(dist(a, b)))
}

func (m *MapView) handleTap(pos f32.Point) {
	if m.eng.Placing() {
		// Placement intercepts exactly one tap.
		m.eng.SetPlacing(false)
		if m.OnPlace != nil {
			m.OnPlace(m.eng.ContentAt(float64(pos.X), float64(pos.Y)))
		}
		return
	}
	if m.trail == nil || (m.OnMarkerTap == nil && m.OnMarkerHit == nil) {
		return
	}
	tf := m.eng.Transform()
	for i := range m.trail.Waypoints {
		wp := &m.trail.Waypoints[i]
		for slot, mp := range wp.Markers {
			x, y := m.project(mp, tf)
			if draw.HitTestMarker(pos.X, pos.Y, x, y) {
				if m.OnMarkerHit != nil {
					m.OnMarkerHit(wp.Index, slot)
				} else {
					m.OnMarkerTap(wp.Index)
				}
				return
			}
		}
	}
}

func (m *MapView) trackPointer(id pointer.ID, pos f32.Point) {
	if _, ok := m.pointers[id]; !ok {
		m.order = append(m.order, id)
	}
	m.pointers[id] = pos
}

func (m *MapView) forgetPointer(id pointer.ID) {
	if _, ok := m.pointers[id]; !ok {
		return
	}
	delete(m.pointers, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func dist(a, b f32.Point) float32 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}
