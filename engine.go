package sapling

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// Engine drives one Scene through the two-phase Update/Render frame. It owns
// the offscreen targets used for scaled rendering; they live for a single
// Render call.
//
// Engine is not safe for concurrent use. Update and Render are expected to
// alternate on one goroutine.
type Engine struct {
	Scene       *Scene
	Device      Device
	Clock       Clock
	Environment Environment // optional background content
	Overlay     Overlay     // optional debug window
	Config      Config
	Logger      logrus.FieldLogger

	// Projection is recomputed from the main camera every Update.
	Projection mgl64.Mat4
	// FrameCount increments once per successful Render.
	FrameCount uint64
	Time       FrameTime

	surfaces []Surface
	tweens   []*TweenGroup

	colorTarget Target
	depthTarget Target

	lastFrame    time.Duration
	hasLastFrame bool

	screenshotQueue []string
	stats           debugStats
	quit            bool
}

// NewEngine creates an engine with an empty scene, a wall clock and the
// package logger. cfg.Debug sets the package debug mode. Add a surface with
// AddSurface before the first frame.
func NewEngine(cfg Config, dev Device) *Engine {
	SetDebugMode(cfg.Debug)
	return &Engine{
		Scene:      NewScene(),
		Device:     dev,
		Clock:      NewWallClock(),
		Config:     cfg,
		Logger:     log,
		Projection: mgl64.Ident4(),
		Time:       FrameTime{Scale: 1},
	}
}

// AddSurface registers a surface. The first one registered is the one the
// engine renders to.
func (e *Engine) AddSurface(s Surface) {
	e.surfaces = append(e.surfaces, s)
}

// Surface returns the active surface, or nil.
func (e *Engine) Surface() Surface {
	if len(e.surfaces) == 0 {
		return nil
	}
	return e.surfaces[0]
}

// AddTween schedules g to advance every Update until it is done.
func (e *Engine) AddTween(g *TweenGroup) {
	e.tweens = append(e.tweens, g)
}

// NewCamera creates a camera node using the configured FOV and clip planes.
func (e *Engine) NewCamera(name string) *Node {
	cam := NewCamera(name)
	if e.Config.Camera.FOV > 0 {
		cam.FOV = e.Config.Camera.FOV
	}
	if e.Config.Camera.Near > 0 && e.Config.Camera.Far > e.Config.Camera.Near {
		cam.NearPlane = e.Config.Camera.Near
		cam.FarPlane = e.Config.Camera.Far
	}
	return cam
}

// Quit asks Run to stop after the current frame.
func (e *Engine) Quit() { e.quit = true }

// preconditions returns the active surface and main camera, or the error
// that stops this frame.
func (e *Engine) preconditions() (Surface, *Node, error) {
	s := e.Surface()
	if s == nil {
		return nil, nil, ErrMissingWindow
	}
	cam := e.Scene.MainCamera()
	if cam == nil {
		return nil, nil, ErrMissingCamera
	}
	return s, cam, nil
}

// Update advances the clock, polls input, updates every root node and the
// tweens, then refreshes the camera and projection. On error nothing else
// runs this tick.
//
// Roots instantiated by an OnUpdate hook are updated in the same tick.
func (e *Engine) Update() error {
	surface, cam, err := e.preconditions()
	if err != nil {
		return err
	}
	start := e.Clock.Elapsed()

	e.Time.advance(e.Clock)
	if e.Overlay != nil {
		e.Overlay.Update(e)
	}
	surface.Activate()
	surface.PollEvents()

	// Hooks see last frame's world matrices refreshed against any edits made
	// since the previous Update.
	e.Scene.updateWorldTransforms()
	dt := e.Time.Delta
	e.Scene.eachRoot(func(n *Node) { n.Update(dt) })
	e.advanceTweens()
	e.Scene.updateWorldTransforms()

	// A hook may have swapped cameras.
	if c := e.Scene.MainCamera(); c != nil {
		cam = c
	}
	cam.refreshView()
	e.Projection = cam.Projection(surface.Config().Aspect())

	if e.Environment != nil {
		e.Environment.Update(e.Time.Delta)
	}

	e.stats.updateTime = e.Clock.Elapsed() - start
	return nil
}

func (e *Engine) advanceTweens() {
	if len(e.tweens) == 0 {
		return
	}
	dt := float32(e.Time.Delta)
	live := e.tweens[:0]
	for _, g := range e.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(e.tweens[len(live):])
	e.tweens = live
}

// Render draws the scene. When the render resolution differs from the
// surface's logical size, the scene is drawn into offscreen targets at the
// render resolution and then resampled onto the surface. With vsync off and
// a positive TargetFPS, Render blocks until a full frame interval has passed
// since the previous Render.
func (e *Engine) Render() error {
	surface, cam, err := e.preconditions()
	if err != nil {
		return err
	}
	start := e.Clock.Elapsed()
	cfg := surface.Config()

	surface.Activate()
	e.Device.SetVSync(cfg.VSync)
	e.releaseTargets()

	rw, rh := cfg.RenderSize()
	scaled := cfg.Scaled()
	e.Device.Viewport(rw, rh)
	if scaled {
		e.colorTarget = e.Device.NewColorTarget(rw, rh)
		e.depthTarget = e.Device.NewDepthStencilTarget(rw, rh)
		e.Device.BindTarget(e.colorTarget, e.depthTarget)
	}

	ctx := newDrawContext(e.Device, cam, e.Projection, rw, rh, e.Time)
	ctx.Lights = collectLights(e.Scene)
	if e.Environment == nil {
		e.Device.Clear(cfg.Background)
	} else {
		e.Environment.Render(ctx)
	}
	e.Scene.eachRoot(func(n *Node) { n.Render(ctx) })
	e.Device.Flush()

	if scaled {
		e.Device.BindTarget(nil, nil)
		e.Device.Viewport(cfg.Width, cfg.Height)
		e.Device.Clear(ColorBlack)
		e.Device.Blit(e.colorTarget, rw, rh, cfg.Width, cfg.Height)
	}
	rendered := e.Clock.Elapsed()

	e.flushScreenshots(e.Device.Canvas())
	surface.Present()
	if e.Overlay != nil {
		e.Overlay.Render(e)
	}
	e.FrameCount++

	e.stats.renderTime = rendered - start
	e.stats.presentTime = e.Clock.Elapsed() - rendered
	e.stats.nodeCount = ctx.nodes
	e.stats.triangles = ctx.triangles
	e.stats.scaled = scaled
	e.debugLog(e.stats)

	if !cfg.VSync && cfg.TargetFPS > 0 {
		if e.hasLastFrame {
			paceFrame(e.Clock, e.lastFrame, cfg.TargetFPS)
		}
		e.lastFrame = e.Clock.Elapsed()
		e.hasLastFrame = true
	}
	return nil
}

// releaseTargets frees the previous frame's offscreen targets.
func (e *Engine) releaseTargets() {
	if e.colorTarget != nil {
		e.colorTarget.Release()
		e.colorTarget = nil
	}
	if e.depthTarget != nil {
		e.depthTarget.Release()
		e.depthTarget = nil
	}
}

// Close releases any offscreen targets still held.
func (e *Engine) Close() {
	e.releaseTargets()
}
