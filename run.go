package sapling

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// game adapts an Engine to ebiten.Game. Ebitengine calls Update and Draw in
// strict alternation, which matches the Engine's Update/Render contract.
type game struct {
	engine  *Engine
	device  *EbitenDevice
	surface *EbitenSurface
	err     error
}

func (g *game) Update() error {
	if g.err != nil {
		return g.err
	}
	if g.engine.quit {
		return ebiten.Termination
	}
	if err := g.engine.Update(); err != nil {
		return &FrameError{Phase: PhaseUpdate, Frame: g.engine.FrameCount, Err: err}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.err != nil {
		return
	}
	g.device.SetScreen(screen)
	if err := g.engine.Render(); err != nil {
		// Draw cannot fail; surface the error from the next Update.
		g.err = &FrameError{Phase: PhaseRender, Frame: g.engine.FrameCount, Err: err}
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.surface != nil {
		g.surface.resize(outsideWidth, outsideHeight)
		cfg := g.surface.Config()
		return cfg.Width, cfg.Height
	}
	return outsideWidth, outsideHeight
}

// Run opens the window described by e.Config.Window and drives e until the
// window closes, Engine.Quit is called, or a frame fails. A failing frame is
// logged and returned as a *FrameError; closing normally returns nil.
//
// If e has no Device or Surface yet, Ebitengine-backed ones are created.
// A Device or Surface of another kind is rejected.
func Run(e *Engine) error {
	if e.Device == nil {
		e.Device = NewEbitenDevice()
	}
	dev, ok := e.Device.(*EbitenDevice)
	if !ok {
		return errors.New("sapling: Run requires an *EbitenDevice")
	}
	if e.Surface() == nil {
		e.AddSurface(NewEbitenSurface(e.Config.Window))
	}
	surf, ok := e.Surface().(*EbitenSurface)
	if !ok {
		return errors.New("sapling: Run requires an *EbitenSurface")
	}
	defer e.Close()

	ebiten.SetTPS(ebiten.SyncWithFPS)
	g := &game{engine: e, device: dev, surface: surf}
	err := ebiten.RunGame(g)
	if err == nil || errors.Is(err, ebiten.Termination) {
		return nil
	}
	e.Logger.WithError(err).WithField("frame", e.FrameCount).Error("frame loop stopped")
	return err
}
