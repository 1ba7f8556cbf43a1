package sapling

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenSurface is the Surface backed by the Ebitengine window. Ebitengine
// owns the real swap chain; Present only records that the frame is complete
// so Run can hand control back to the game loop.
type EbitenSurface struct {
	cfg WindowConfig

	pressed     map[ebiten.Key]bool
	justPressed map[ebiten.Key]bool
	keyBuf      []ebiten.Key

	cursorX, cursorY float64
	prevX, prevY     float64
	hasCursor        bool
	scroll           float64

	presented uint64
}

// NewEbitenSurface creates the window surface and applies cfg to the
// Ebitengine window.
func NewEbitenSurface(cfg WindowConfig) *EbitenSurface {
	s := &EbitenSurface{
		pressed:     make(map[ebiten.Key]bool),
		justPressed: make(map[ebiten.Key]bool),
	}
	s.SetConfig(cfg)
	return s
}

// Activate is a no-op: Ebitengine has a single implicit context.
func (s *EbitenSurface) Activate() {}

func (s *EbitenSurface) PollEvents() {
	clear(s.pressed)
	clear(s.justPressed)
	s.keyBuf = inpututil.AppendPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.pressed[k] = true
	}
	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.justPressed[k] = true
	}

	x, y := ebiten.CursorPosition()
	s.prevX, s.prevY = s.cursorX, s.cursorY
	s.cursorX, s.cursorY = float64(x), float64(y)
	if !s.hasCursor {
		s.prevX, s.prevY = s.cursorX, s.cursorY
		s.hasCursor = true
	}
	_, s.scroll = ebiten.Wheel()
}

func (s *EbitenSurface) KeyPressed(k ebiten.Key) bool     { return s.pressed[k] }
func (s *EbitenSurface) KeyJustPressed(k ebiten.Key) bool { return s.justPressed[k] }
func (s *EbitenSurface) CursorPosition() (float64, float64) {
	return s.cursorX, s.cursorY
}

func (s *EbitenSurface) CursorDelta() (float64, float64) {
	return s.cursorX - s.prevX, s.cursorY - s.prevY
}

func (s *EbitenSurface) Scroll() float64 { return s.scroll }

func (s *EbitenSurface) CursorLocked() bool {
	return ebiten.CursorMode() == ebiten.CursorModeCaptured
}

func (s *EbitenSurface) SetCursorLocked(locked bool) {
	if locked {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	// Capturing warps the cursor; don't report the jump as motion.
	s.hasCursor = false
}

func (s *EbitenSurface) Present() { s.presented++ }

// Presented returns how many frames have been presented.
func (s *EbitenSurface) Presented() uint64 { return s.presented }

func (s *EbitenSurface) Config() WindowConfig { return s.cfg }

// SetConfig normalizes cfg and applies title, size and window mode.
func (s *EbitenSurface) SetConfig(cfg WindowConfig) {
	cfg = cfg.Normalize()
	prev := s.cfg
	s.cfg = cfg

	if cfg.Title != prev.Title {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width != prev.Width || cfg.Height != prev.Height {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	ebiten.SetFullscreen(cfg.Fullscreen)
	ebiten.SetVsyncEnabled(cfg.VSync)
}

// resize updates the logical size after the window is resized by the user,
// keeping the render resolution unless it tracked the old logical size.
func (s *EbitenSurface) resize(w, h int) {
	if w == s.cfg.Width && h == s.cfg.Height {
		return
	}
	tracking := !s.cfg.Scaled()
	s.cfg.Width, s.cfg.Height = w, h
	if tracking {
		s.cfg.ResX, s.cfg.ResY = w, h
	}
	s.cfg = s.cfg.Normalize()
}
