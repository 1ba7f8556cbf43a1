package sapling

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Clock ---

// fakeClock is a simulated clock. Sleep advances it.
type fakeClock struct {
	now    time.Duration
	sleeps int
	slept  time.Duration
}

func (c *fakeClock) Elapsed() time.Duration { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.now += d
	c.sleeps++
	c.slept += d
}

func (c *fakeClock) advance(d time.Duration) { c.now += d }

// --- Device ---

type fakeTarget struct {
	kind     string
	w, h     int
	released bool
}

func (t *fakeTarget) Size() (int, int) { return t.w, t.h }
func (t *fakeTarget) Release()         { t.released = true }

type blitCall struct {
	src                    *fakeTarget
	srcW, srcH, dstW, dstH int
	viewW, viewH           int
	bound                  *fakeTarget
}

// recordingDevice logs every call in order and never touches the GPU.
// Canvas returns nil so nothing draws directly.
type recordingDevice struct {
	log []string

	viewW, viewH int
	color, depth *fakeTarget
	vsync        bool

	targets   []*fakeTarget
	submitted []Triangle
	flushed   int
	clears    []Color
	blits     []blitCall
}

func (d *recordingDevice) record(format string, args ...any) {
	d.log = append(d.log, fmt.Sprintf(format, args...))
}

func (d *recordingDevice) SetVSync(enabled bool) {
	d.vsync = enabled
	d.record("vsync %v", enabled)
}

func (d *recordingDevice) Viewport(w, h int) {
	d.viewW, d.viewH = w, h
	d.record("viewport %dx%d", w, h)
}

func (d *recordingDevice) NewColorTarget(w, h int) Target {
	t := &fakeTarget{kind: "color", w: w, h: h}
	d.targets = append(d.targets, t)
	d.record("color %dx%d", w, h)
	return t
}

func (d *recordingDevice) NewDepthStencilTarget(w, h int) Target {
	t := &fakeTarget{kind: "depth", w: w, h: h}
	d.targets = append(d.targets, t)
	d.record("depth %dx%d", w, h)
	return t
}

func (d *recordingDevice) BindTarget(color, depth Target) {
	d.color, d.depth = nil, nil
	if color != nil {
		d.color = color.(*fakeTarget)
	}
	if depth != nil {
		d.depth = depth.(*fakeTarget)
	}
	if color == nil && depth == nil {
		d.record("bind default")
		return
	}
	d.record("bind offscreen")
}

func (d *recordingDevice) Clear(c Color) {
	d.clears = append(d.clears, c)
	d.record("clear")
}

func (d *recordingDevice) Submit(tri Triangle) {
	d.submitted = append(d.submitted, tri)
}

func (d *recordingDevice) Flush() {
	d.flushed++
	d.record("flush")
}

func (d *recordingDevice) Blit(src Target, srcW, srcH, dstW, dstH int) {
	d.blits = append(d.blits, blitCall{
		src: src.(*fakeTarget), srcW: srcW, srcH: srcH, dstW: dstW, dstH: dstH,
		viewW: d.viewW, viewH: d.viewH, bound: d.color,
	})
	d.record("blit %dx%d->%dx%d", srcW, srcH, dstW, dstH)
}

func (d *recordingDevice) Canvas() *ebiten.Image { return nil }

// --- Helpers ---

// newTestEngine builds an engine on a recording device, a fake clock and a
// scripted surface, with a camera at the origin already instantiated.
func newTestEngine(wc WindowConfig) (*Engine, *recordingDevice, *fakeClock, *ScriptedSurface, *Node) {
	cfg := DefaultConfig()
	cfg.Window = wc
	dev := &recordingDevice{}
	clk := &fakeClock{}
	e := NewEngine(cfg, dev)
	e.Clock = clk
	surf := NewScriptedSurface(wc)
	e.AddSurface(surf)
	cam := NewCamera("cam")
	e.Scene.Instantiate(cam)
	return e, dev, clk, surf, cam
}

func indexOfCall(log []string, call string) int {
	for i, c := range log {
		if c == call {
			return i
		}
	}
	return -1
}
