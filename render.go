package sapling

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// ambientLight is the shading floor applied to lit meshes.
const ambientLight = 0.2

// DrawContext carries per-pass render state down the node tree.
type DrawContext struct {
	// View and Projection of the main camera for this pass.
	View       mgl64.Mat4
	Projection mgl64.Mat4
	// Width and Height are the render resolution in pixels.
	Width, Height int
	Camera        *Node
	Time          FrameTime
	// Lights are the scene's visible light nodes, gathered once per pass.
	// With none, meshes are drawn unlit.
	Lights []*Node

	device    Device
	viewProj  mgl64.Mat4
	tintCol   Color
	nodes     int
	triangles int
}

func newDrawContext(dev Device, cam *Node, proj mgl64.Mat4, w, h int, t FrameTime) *DrawContext {
	ctx := &DrawContext{
		Projection: proj,
		Width:      w,
		Height:     h,
		Camera:     cam,
		Time:       t,
		device:     dev,
		tintCol:    ColorWhite,
	}
	ctx.View = mgl64.Ident4()
	if cam != nil {
		ctx.View = cam.ViewMatrix()
	}
	ctx.viewProj = proj.Mul4(ctx.View)
	return ctx
}

// ViewProjection returns Projection × View.
func (ctx *DrawContext) ViewProjection() mgl64.Mat4 { return ctx.viewProj }

// Canvas returns the image currently being drawn into, or nil.
func (ctx *DrawContext) Canvas() *ebiten.Image { return ctx.device.Canvas() }

// Submit queues a depth-sorted triangle.
func (ctx *DrawContext) Submit(tri Triangle) {
	ctx.triangles++
	ctx.device.Submit(tri)
}

// NodesRendered returns how many nodes have drawn so far this pass.
func (ctx *DrawContext) NodesRendered() int { return ctx.nodes }

// tint multiplies c by the active material tint.
func (ctx *DrawContext) tint(c Color) Color {
	return c.Mul(ctx.tintCol)
}

// pushTint stacks a material tint and returns the previous one for popTint.
func (ctx *DrawContext) pushTint(c Color) Color {
	prev := ctx.tintCol
	ctx.tintCol = prev.Mul(c)
	return prev
}

func (ctx *DrawContext) popTint(prev Color) {
	ctx.tintCol = prev
}

// shade returns the diffuse light factor for a face with world-space normal
// n centered at p.
func (ctx *DrawContext) shade(n, p mgl64.Vec3) float64 {
	if len(ctx.Lights) == 0 {
		return 1
	}
	if n.Len() < axisEpsilon {
		return ambientLight
	}
	n = n.Normalize()
	f := ambientLight
	for _, l := range ctx.Lights {
		d := l.WorldPosition().Sub(p)
		if d.Len() < axisEpsilon {
			continue
		}
		f += math.Max(0, n.Dot(d.Normalize())) * l.Intensity
	}
	return math.Min(f, 1)
}

// collectLights gathers visible lights in traversal order.
func collectLights(s *Scene) []*Node {
	var lights []*Node
	walk(s.roots, func(n *Node) bool {
		if n.Type == NodeTypeLight && n.Visible {
			lights = append(lights, n)
		}
		return true
	})
	return lights
}
