package sapling

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Mesh is an indexed triangle list in model space. Front faces wind
// counter-clockwise when viewed from outside.
type Mesh struct {
	Vertices []mgl64.Vec3
	Indices  []uint16
	// Colors optionally gives one color per vertex; missing entries are white.
	Colors []Color
	// DoubleSided disables back-face culling.
	DoubleSided bool

	boundsMin, boundsMax mgl64.Vec3
	boundsDirty          bool
}

// NewMesh creates a mesh from vertices and triangle indices.
func NewMesh(vertices []mgl64.Vec3, indices []uint16) *Mesh {
	return &Mesh{Vertices: vertices, Indices: indices, boundsDirty: true}
}

// InvalidateBounds marks the cached bounding box for recomputation.
// Call this after modifying Vertices.
func (m *Mesh) InvalidateBounds() {
	m.boundsDirty = true
}

// Bounds returns the model-space axis-aligned bounding box.
func (m *Mesh) Bounds() (lo, hi mgl64.Vec3) {
	if m.boundsDirty {
		m.recomputeBounds()
	}
	return m.boundsMin, m.boundsMax
}

func (m *Mesh) recomputeBounds() {
	m.boundsDirty = false
	if len(m.Vertices) == 0 {
		m.boundsMin, m.boundsMax = mgl64.Vec3{}, mgl64.Vec3{}
		return
	}
	lo, hi := m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], v[i])
			hi[i] = math.Max(hi[i], v[i])
		}
	}
	m.boundsMin, m.boundsMax = lo, hi
}

func (m *Mesh) vertexColor(i uint16) Color {
	if int(i) < len(m.Colors) {
		return m.Colors[i]
	}
	return ColorWhite
}

// outsideFrustum reports whether every corner of the bounding box lies
// beyond the same clip plane of mvp.
func (m *Mesh) outsideFrustum(mvp mgl64.Mat4) bool {
	lo, hi := m.Bounds()
	var outside [6]int
	for c := 0; c < 8; c++ {
		p := mgl64.Vec3{lo[0], lo[1], lo[2]}
		if c&1 != 0 {
			p[0] = hi[0]
		}
		if c&2 != 0 {
			p[1] = hi[1]
		}
		if c&4 != 0 {
			p[2] = hi[2]
		}
		v := mvp.Mul4x1(p.Vec4(1))
		w := v.W()
		for axis := 0; axis < 3; axis++ {
			if v[axis] < -w {
				outside[axis*2]++
			}
			if v[axis] > w {
				outside[axis*2+1]++
			}
		}
	}
	for _, n := range outside {
		if n == 8 {
			return true
		}
	}
	return false
}

// draw projects the mesh through the context camera and submits every
// visible triangle. Triangles that cross the camera plane are dropped.
func (m *Mesh) draw(ctx *DrawContext, model mgl64.Mat4, tint Color) {
	if len(m.Indices) < 3 || ctx.Width <= 0 || ctx.Height <= 0 {
		return
	}
	mvp := ctx.viewProj.Mul4(model)
	if m.outsideFrustum(mvp) {
		return
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		idx := [3]uint16{m.Indices[i], m.Indices[i+1], m.Indices[i+2]}
		if int(idx[0]) >= len(m.Vertices) || int(idx[1]) >= len(m.Vertices) || int(idx[2]) >= len(m.Vertices) {
			continue
		}
		var ndc [3]mgl64.Vec3
		behind := false
		for k, vi := range idx {
			clip := mvp.Mul4x1(m.Vertices[vi].Vec4(1))
			if clip.W() <= 0 {
				behind = true
				break
			}
			ndc[k] = clip.Vec3().Mul(1 / clip.W())
		}
		if behind {
			continue
		}
		area := (ndc[1].X()-ndc[0].X())*(ndc[2].Y()-ndc[0].Y()) -
			(ndc[2].X()-ndc[0].X())*(ndc[1].Y()-ndc[0].Y())
		if area == 0 || (!m.DoubleSided && area < 0) {
			continue
		}

		a := model.Mul4x1(m.Vertices[idx[0]].Vec4(1)).Vec3()
		b := model.Mul4x1(m.Vertices[idx[1]].Vec4(1)).Vec3()
		c := model.Mul4x1(m.Vertices[idx[2]].Vec4(1)).Vec3()
		normal := b.Sub(a).Cross(c.Sub(a))
		if area < 0 {
			normal = normal.Mul(-1)
		}
		light := ctx.shade(normal, a.Add(b).Add(c).Mul(1.0/3))

		var tri Triangle
		for k, vi := range idx {
			col := m.vertexColor(vi).Mul(tint)
			sx, sy := ndcToScreen(ndc[k].X(), ndc[k].Y(), ctx.Width, ctx.Height)
			tri.Vertices[k] = ebiten.Vertex{
				DstX:   float32(sx),
				DstY:   float32(sy),
				SrcX:   0.5,
				SrcY:   0.5,
				ColorR: float32(clamp01(col.R * light)),
				ColorG: float32(clamp01(col.G * light)),
				ColorB: float32(clamp01(col.B * light)),
				ColorA: float32(clamp01(col.A)),
			}
		}
		tri.Depth = (ndc[0].Z() + ndc[1].Z() + ndc[2].Z()) / 3
		ctx.Submit(tri)
	}
}

// --- Primitives ---

// NewCube returns an axis-aligned cube with edge length size centered on the
// origin, each face a distinct shade of c.
func NewCube(size float64, c Color) *Mesh {
	h := size / 2
	v := []mgl64.Vec3{
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
	}
	faces := [6][4]uint16{
		{4, 5, 6, 7}, // +z
		{1, 0, 3, 2}, // -z
		{5, 1, 2, 6}, // +x
		{0, 4, 7, 3}, // -x
		{7, 6, 2, 3}, // +y
		{0, 1, 5, 4}, // -y
	}
	m := &Mesh{boundsDirty: true}
	for fi, f := range faces {
		shade := 1 - 0.08*float64(fi)
		base := uint16(len(m.Vertices))
		for _, vi := range f {
			m.Vertices = append(m.Vertices, v[vi])
			m.Colors = append(m.Colors, Color{c.R * shade, c.G * shade, c.B * shade, c.A})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// NewPlane returns a w×d quad in the XZ plane facing +Y.
func NewPlane(w, d float64, c Color) *Mesh {
	hw, hd := w/2, d/2
	m := NewMesh([]mgl64.Vec3{
		{-hw, 0, hd}, {hw, 0, hd}, {hw, 0, -hd}, {-hw, 0, -hd},
	}, []uint16{0, 1, 2, 0, 2, 3})
	m.Colors = []Color{c, c, c, c}
	return m
}

// NewPyramid returns a square pyramid with base b and height h, its base
// centered on the origin.
func NewPyramid(b, h float64, c Color) *Mesh {
	hb := b / 2
	m := NewMesh([]mgl64.Vec3{
		{-hb, 0, hb}, {hb, 0, hb}, {hb, 0, -hb}, {-hb, 0, -hb}, {0, h, 0},
	}, []uint16{
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
		3, 0, 4,
		0, 3, 2, 0, 2, 1,
	})
	m.Colors = []Color{c, c, c, c, c}
	return m
}
