package sapling

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera behavior lives on Node: a node of NodeTypeCamera uses FOV,
// NearPlane and FarPlane, and caches its view matrix each Update.

// refreshView recomputes the cached view matrix from the world matrix. The
// camera looks along its world-space Front with its world-space Up.
func (n *Node) refreshView() {
	eye := n.WorldPosition()
	front := n.worldDirection(n.Transform.front)
	up := n.worldDirection(n.Transform.up)
	if front.Len() < axisEpsilon || up.Len() < axisEpsilon {
		return
	}
	n.view = mgl64.LookAtV(eye, eye.Add(front.Normalize()), up.Normalize())
}

// worldDirection maps a local direction into world space, ignoring
// translation. The result is not normalized.
func (n *Node) worldDirection(d mgl64.Vec3) mgl64.Vec3 {
	return n.worldMatrix.Mul4x1(d.Vec4(0)).Vec3()
}

// WorldFront returns the node's unit front vector in world space.
func (n *Node) WorldFront() mgl64.Vec3 {
	f := n.worldDirection(n.Transform.front)
	if f.Len() < axisEpsilon {
		return baseFront
	}
	return f.Normalize()
}

// ViewMatrix returns the camera's world-to-view matrix as of the last Update.
// Identity for nodes that are not cameras.
func (n *Node) ViewMatrix() mgl64.Mat4 {
	return n.view
}

// Projection returns a perspective matrix for the given aspect ratio using
// the node's FOV (degrees) and clip planes.
func (n *Node) Projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(n.FOV), aspect, n.NearPlane, n.FarPlane)
}

// WorldToScreen projects a world-space point into pixel coordinates of a
// w×h target, with the origin at the top-left and Y increasing downward.
// ok is false when the point is behind the camera.
func (n *Node) WorldToScreen(p mgl64.Vec3, w, h int) (sx, sy float64, ok bool) {
	vp := n.Projection(float64(w) / float64(h)).Mul4(n.view)
	clip := vp.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	sx, sy = ndcToScreen(clip.X()/clip.W(), clip.Y()/clip.W(), w, h)
	return sx, sy, true
}

// ndcToScreen maps normalized device coordinates into pixel space.
func ndcToScreen(x, y float64, w, h int) (float64, float64) {
	return (x + 1) * 0.5 * float64(w), (1 - y) * 0.5 * float64(h)
}
