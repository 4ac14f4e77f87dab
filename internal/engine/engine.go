package engine

// Engine owns the transform state for a single map surface. Surfaces
// never share an Engine; the viewer's overview map, the waypoint map
// and the editor preview each construct their own instance.
//
// The engine is not ready until both content and viewport dimensions
// are known (the base image must be decoded first), mirroring the rule
// that no scale math runs on unknown or zero sizes.
type Engine struct {
	cfg      Config
	content  Size
	anchor   Point
	viewport Size

	tf       Transform
	minScale float64
	maxScale float64
	ready    bool

	placing bool
	anim    *animation
}

// New creates an engine for one surface. Content and viewport sizes are
// supplied later, once known.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// SetContent records the full-resolution content dimensions and the
// anchor offset between the base-image origin and the marker coordinate
// origin (the route overlay anchor).
func (e *Engine) SetContent(content Size, anchor Point) {
	e.content = content
	e.anchor = anchor
}

// SetViewport records the current viewport size. Call on every frame:
// the hosting layout can change between gestures, and the pan bounds
// depend on it. Scale bounds and translation are re-validated.
func (e *Engine) SetViewport(viewport Size) {
	if viewport == e.viewport {
		return
	}
	e.viewport = viewport
	if !e.ready {
		return
	}
	if err := e.recomputeBounds(); err != nil {
		// Viewport collapsed (e.g. zero-size frame during layout);
		// keep the last valid transform until it recovers.
		return
	}
	e.tf.Scale = clamp(e.tf.Scale, e.minScale, e.maxScale)
	e.tf = Constrain(e.tf, e.viewport, e.content)
}

// Init computes scale bounds and the initial transform. When centerOn
// is non-nil the surface starts centered on that content point at the
// default zoom; otherwise the content is centered as a whole.
func (e *Engine) Init(centerOn *Point) error {
	if err := e.recomputeBounds(); err != nil {
		return err
	}
	e.anim = nil
	e.tf.Scale = DefaultScale(e.minScale, e.cfg.ZoomFactor, e.maxScale)
	if centerOn != nil {
		e.tf.X = e.viewport.W/2 - (centerOn.X+e.anchor.X)*e.tf.Scale
		e.tf.Y = e.viewport.H/2 - (centerOn.Y+e.anchor.Y)*e.tf.Scale
	} else {
		e.tf.X = (e.viewport.W - e.content.W*e.tf.Scale) / 2
		e.tf.Y = (e.viewport.H - e.content.H*e.tf.Scale) / 2
	}
	e.tf = Constrain(e.tf, e.viewport, e.content)
	e.ready = true
	return nil
}

func (e *Engine) recomputeBounds() error {
	min, err := MinScale(e.viewport, e.content, e.cfg.MarginFactor)
	if err != nil {
		return err
	}
	e.minScale = min
	if e.cfg.MaxScaleRelative {
		e.maxScale = e.cfg.MaxScale * CoverScale(e.viewport, e.content)
	} else {
		e.maxScale = e.cfg.MaxScale
	}
	if e.maxScale < e.minScale {
		// Small content in a large viewport: the fit scale wins so the
		// surface stays usable, there is just no zoom range.
		e.maxScale = e.minScale
	}
	return nil
}

// Ready reports whether Init has succeeded for the current sizes.
func (e *Engine) Ready() bool { return e.ready }

// Transform returns the committed transform, ignoring any running
// animation. Rendering should use Frame instead.
func (e *Engine) Transform() Transform { return e.tf }

// Bounds returns the current scale limits.
func (e *Engine) Bounds() (minScale, maxScale float64) { return e.minScale, e.maxScale }

// Config returns the surface configuration.
func (e *Engine) Config() Config { return e.cfg }

// CounterScale is the factor the marker layer applies on top of the
// content transform so marker footprints stay constant in screen
// pixels across zoom levels.
func (e *Engine) CounterScale() float64 {
	if e.tf.Scale == 0 {
		return 1
	}
	return 1 / e.tf.Scale
}

// SetPlacing toggles the editor's coordinate-picking mode. While
// active, the view intercepts the next tap and reports a content-space
// coordinate instead of starting a pan.
func (e *Engine) SetPlacing(on bool) { e.placing = on }

// Placing reports whether placement mode is active.
func (e *Engine) Placing() bool { return e.placing }
