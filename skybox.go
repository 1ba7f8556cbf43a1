package sapling

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Environment is background content drawn before the scene. When an Engine
// has one, Render lets it fill the frame instead of clearing to the
// configured background color.
type Environment interface {
	Update(dt float64)
	Render(ctx *DrawContext)
}

// SolidSkybox fills the frame with one color given as 0-255 channels.
type SolidSkybox struct {
	R, G, B uint8
}

func (s *SolidSkybox) Update(float64) {}

func (s *SolidSkybox) Render(ctx *DrawContext) {
	ctx.device.Clear(RGB255(s.R, s.G, s.B))
}

// GradientSkybox shades from Zenith at the top of the sky to Horizon at the
// world horizon, and fills below the horizon with Ground. The horizon line
// follows the camera pitch.
type GradientSkybox struct {
	Zenith  Color
	Horizon Color
	Ground  Color
}

func (s *GradientSkybox) Update(float64) {}

func (s *GradientSkybox) Render(ctx *DrawContext) {
	ctx.device.Clear(s.Ground)
	canvas := ctx.Canvas()
	if canvas == nil || ctx.Width <= 0 || ctx.Height <= 0 {
		return
	}
	w := float32(ctx.Width)
	hy := float32(horizonRow(ctx))
	if hy <= 0 {
		return
	}
	verts := []ebiten.Vertex{
		skyVertex(0, 0, s.Zenith), skyVertex(w, 0, s.Zenith),
		skyVertex(w, hy, s.Horizon), skyVertex(0, hy, s.Horizon),
	}
	canvas.DrawTriangles(verts, []uint16{0, 1, 2, 0, 2, 3}, WhitePixel, &ebiten.DrawTrianglesOptions{})
}

// horizonRow returns the screen row where the world horizon falls for the
// context camera, clamped to the frame.
func horizonRow(ctx *DrawContext) float64 {
	half := float64(ctx.Height) / 2
	cam := ctx.Camera
	if cam == nil || cam.FOV <= 0 {
		return half
	}
	pitch := math.Asin(mgl64.Clamp(cam.WorldFront().Y(), -1, 1))
	y := half + half*math.Tan(pitch)/math.Tan(mgl64.DegToRad(cam.FOV)/2)
	return mgl64.Clamp(y, 0, float64(ctx.Height))
}

func skyVertex(x, y float32, c Color) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: x, DstY: y, SrcX: 0.5, SrcY: 0.5,
		ColorR: float32(clamp01(c.R)), ColorG: float32(clamp01(c.G)),
		ColorB: float32(clamp01(c.B)), ColorA: float32(clamp01(c.A)),
	}
}
