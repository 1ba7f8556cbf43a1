package sapling

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Overlay is an optional debug window driven by the Engine. Update runs at
// the start of Engine.Update and Render after the frame is presented.
type Overlay interface {
	Update(e *Engine)
	Render(e *Engine)
}

// statsRefresh is how often StatsOverlay re-samples, in seconds.
const statsRefresh = 0.5

// StatsOverlay displays FPS, TPS, the frame counter and the render
// resolution in the top-left corner.
type StatsOverlay struct {
	img   *ebiten.Image
	acc   float64
	text  string
	dirty bool
}

// NewStatsOverlay creates a stats overlay. The first sample is taken on the
// first Update.
func NewStatsOverlay() *StatsOverlay {
	return &StatsOverlay{acc: statsRefresh}
}

// Text returns the most recently sampled stats line.
func (o *StatsOverlay) Text() string { return o.text }

func (o *StatsOverlay) Update(e *Engine) {
	o.acc += e.Time.Delta
	if o.acc < statsRefresh {
		return
	}
	o.acc = 0
	res := "-"
	if s := e.Surface(); s != nil {
		w, h := s.Config().RenderSize()
		res = fmt.Sprintf("%dx%d", w, h)
	}
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nFrame: %d\nRes: %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), e.FrameCount, res)
	o.dirty = true
}

func (o *StatsOverlay) Render(e *Engine) {
	canvas := e.Device.Canvas()
	if canvas == nil || o.text == "" {
		return
	}
	if o.img == nil {
		// 120x64 fits four short lines of the debug font.
		o.img = ebiten.NewImage(120, 64)
		o.dirty = true
	}
	if o.dirty {
		o.img.Clear()
		// Semi-transparent background for readability
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, o.text)
		o.dirty = false
	}
	canvas.DrawImage(o.img, nil)
}
