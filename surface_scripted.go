package sapling

import "github.com/hajimehoshi/ebiten/v2"

// ScriptedSurface is a headless Surface whose input comes from injected
// events and an optional ScriptRunner instead of a real window. It is used
// for automated runs and tests.
type ScriptedSurface struct {
	cfg WindowConfig

	pressed     map[ebiten.Key]bool
	justPressed map[ebiten.Key]bool

	x, y         float64
	prevX, prevY float64
	scroll       float64
	locked       bool

	injectQueue []syntheticInput
	runner      *ScriptRunner

	// OnScreenshot receives "screenshot" script steps, typically
	// Engine.Screenshot.
	OnScreenshot func(label string)

	// Counters for assertions.
	Activations int
	Polls       int
	Presents    int
}

// NewScriptedSurface creates a headless surface with the given
// configuration (normalized).
func NewScriptedSurface(cfg WindowConfig) *ScriptedSurface {
	return &ScriptedSurface{
		cfg:         cfg.Normalize(),
		pressed:     make(map[ebiten.Key]bool),
		justPressed: make(map[ebiten.Key]bool),
	}
}

// SetRunner attaches a script. Its steps advance one frame per PollEvents.
func (s *ScriptedSurface) SetRunner(r *ScriptRunner) {
	s.runner = r
}

func (s *ScriptedSurface) Activate() { s.Activations++ }

// PollEvents advances the script, then applies one frame of injected input.
func (s *ScriptedSurface) PollEvents() {
	s.Polls++
	clear(s.justPressed)
	s.scroll = 0
	s.prevX, s.prevY = s.x, s.y
	if s.runner != nil {
		s.runner.step(s)
	}
	s.processInjectedInput()
}

func (s *ScriptedSurface) KeyPressed(k ebiten.Key) bool     { return s.pressed[k] }
func (s *ScriptedSurface) KeyJustPressed(k ebiten.Key) bool { return s.justPressed[k] }
func (s *ScriptedSurface) CursorPosition() (float64, float64) {
	return s.x, s.y
}

func (s *ScriptedSurface) CursorDelta() (float64, float64) {
	return s.x - s.prevX, s.y - s.prevY
}

func (s *ScriptedSurface) Scroll() float64             { return s.scroll }
func (s *ScriptedSurface) CursorLocked() bool          { return s.locked }
func (s *ScriptedSurface) SetCursorLocked(locked bool) { s.locked = locked }
func (s *ScriptedSurface) Present()                    { s.Presents++ }
func (s *ScriptedSurface) Config() WindowConfig        { return s.cfg }
func (s *ScriptedSurface) SetConfig(cfg WindowConfig)  { s.cfg = cfg.Normalize() }
