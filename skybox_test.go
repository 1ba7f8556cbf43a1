package sapling

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSolidSkyboxClears(t *testing.T) {
	dev := &recordingDevice{}
	ctx := newDrawContext(dev, nil, mgl64.Ident4(), 64, 64, FrameTime{})
	(&SolidSkybox{R: 0, G: 128, B: 255}).Render(ctx)
	if len(dev.clears) != 1 || dev.clears[0] != RGB255(0, 128, 255) {
		t.Errorf("clears = %v", dev.clears)
	}
}

func TestGradientSkyboxClearsToGround(t *testing.T) {
	dev := &recordingDevice{}
	ground := Color{0.2, 0.3, 0.1, 1}
	ctx := newDrawContext(dev, nil, mgl64.Ident4(), 64, 64, FrameTime{})
	(&GradientSkybox{Zenith: ColorWhite, Horizon: ColorWhite, Ground: ground}).Render(ctx)
	if len(dev.clears) != 1 || dev.clears[0] != ground {
		t.Errorf("clears = %v, want ground", dev.clears)
	}
}

func TestHorizonRowFollowsPitch(t *testing.T) {
	cam := NewCamera("cam")
	cam.FOV = 90
	settle(cam)
	ctx := newDrawContext(&recordingDevice{}, cam, mgl64.Ident4(), 100, 200, FrameTime{})
	assertNear(t, "level", horizonRow(ctx), 100)

	// Looking up 30 degrees pushes the horizon down the screen.
	cam.Transform.SetRotation(mgl64.Vec3{-30, 0, 0})
	settle(cam)
	assertNear(t, "pitched up", horizonRow(ctx), 100+100*math.Tan(math.Pi/6))

	// Looking straight down puts it above the frame.
	cam.Transform.SetRotation(mgl64.Vec3{89, 0, 0})
	settle(cam)
	assertNear(t, "looking down", horizonRow(ctx), 0)
}

func TestHorizonRowWithoutCamera(t *testing.T) {
	ctx := newDrawContext(&recordingDevice{}, nil, mgl64.Ident4(), 100, 200, FrameTime{})
	assertNear(t, "no camera", horizonRow(ctx), 100)
}

func TestStatsOverlaySamples(t *testing.T) {
	e, _, clk, surf, _ := newTestEngine(windowConfig(1280, 720, 640, 360))
	o := NewStatsOverlay()
	e.Overlay = o

	if err := e.Update(); err != nil {
		t.Fatal(err)
	}
	if o.Text() == "" {
		t.Fatal("first Update should sample")
	}
	first := o.Text()
	if !containsAll(first, "FPS:", "TPS:", "Frame: 0", "Res: 640x360") {
		t.Errorf("text = %q", first)
	}

	if err := e.Render(); err != nil {
		t.Fatal(err)
	}
	clk.advance(50 * time.Millisecond)
	if err := e.Update(); err != nil {
		t.Fatal(err)
	}
	if o.Text() != first {
		t.Error("overlay should not resample before the refresh interval")
	}

	surf.SetConfig(surf.Config().ScaleResolution(2))
	clk.advance(500 * time.Millisecond)
	if err := e.Update(); err != nil {
		t.Fatal(err)
	}
	if !containsAll(o.Text(), "Frame: 1", "Res: 1280x720") {
		t.Errorf("text after refresh = %q", o.Text())
	}
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
