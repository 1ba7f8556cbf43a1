package sapling

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Local basis vectors before any rotation is applied.
var (
	baseFront = mgl64.Vec3{0, 0, 1}
	baseUp    = mgl64.Vec3{0, 1, 0}
	baseRight = mgl64.Vec3{-1, 0, 0}
)

var identityMatrix = mgl64.Ident4()

// axisEpsilon is the cross-product length below which two directions are
// treated as colinear.
const axisEpsilon = 1e-9

// Transform holds the position, rotation and scale of a single node.
//
// Rotation is stored twice: as a unit quaternion and as Euler angles in
// degrees. Every rotating method keeps the two in sync and recomputes the
// front/up/right basis before returning. Position and Scale may be assigned
// directly; call MarkDirty afterwards so the node's world matrix is rebuilt.
type Transform struct {
	Position mgl64.Vec3
	Scale    mgl64.Vec3

	rotation    mgl64.Vec3 // Euler degrees, each component in [-180, 180)
	orientation mgl64.Quat

	front, up, right mgl64.Vec3

	dirty bool
}

// NewTransform returns an identity transform: origin, no rotation, unit scale.
func NewTransform() Transform {
	t := Transform{
		Scale:       mgl64.Vec3{1, 1, 1},
		orientation: mgl64.QuatIdent(),
	}
	t.updateBasis()
	t.dirty = true
	return t
}

// Rotation returns the Euler angles in degrees (X, Y, Z), each normalized
// into [-180, 180).
func (t *Transform) Rotation() mgl64.Vec3 { return t.rotation }

// Orientation returns the unit quaternion.
func (t *Transform) Orientation() mgl64.Quat { return t.orientation }

// Front returns the rotated +Z axis.
func (t *Transform) Front() mgl64.Vec3 { return t.front }

// Up returns the rotated +Y axis.
func (t *Transform) Up() mgl64.Vec3 { return t.up }

// Right returns the rotated -X axis.
func (t *Transform) Right() mgl64.Vec3 { return t.right }

// SetRotationQuat normalizes q and uses it as the orientation. The Euler
// angles are re-derived from it.
//
// q must be non-zero. A zero quaternion normalizes to identity.
func (t *Transform) SetRotationQuat(q mgl64.Quat) {
	t.orientation = q.Normalize()
	t.rotation = eulerFromQuat(t.orientation)
	t.updateBasis()
}

// SetRotation sets the rotation from Euler angles in degrees. Each angle is
// normalized into [-180, 180) before the orientation is derived.
func (t *Transform) SetRotation(euler mgl64.Vec3) {
	t.rotation = normalizeAngles(euler)
	t.orientation = quatFromEuler(t.rotation)
	t.updateBasis()
}

// RotateQuat applies q in world space: orientation' = normalize(q) * orientation.
func (t *Transform) RotateQuat(q mgl64.Quat) {
	t.orientation = q.Normalize().Mul(t.orientation).Normalize()
	t.rotation = eulerFromQuat(t.orientation)
	t.updateBasis()
}

// Rotate adds euler (degrees) to the current Euler angles and rebuilds the
// orientation from the sum. This is additive Euler rotation, not quaternion
// composition: for large rotations it will not agree with RotateQuat.
func (t *Transform) Rotate(euler mgl64.Vec3) {
	t.rotation = normalizeAngles(t.rotation.Add(euler))
	t.orientation = quatFromEuler(t.rotation).Normalize()
	t.updateBasis()
}

// LookAt turns the transform so Front points at target. No-op when target
// already lies along Front or coincides with Position.
func (t *Transform) LookAt(target mgl64.Vec3) {
	t.turnToward(target, 1)
}

// SLerp turns the transform a fraction step of the way toward facing target.
// It is meant to be called once per frame with step derived from the frame
// delta; each call measures the remaining angle afresh.
func (t *Transform) SLerp(target mgl64.Vec3, step float64) {
	t.turnToward(target, step)
}

func (t *Transform) turnToward(target mgl64.Vec3, step float64) {
	rel := target.Sub(t.Position)
	cos := t.front.Dot(rel) / (t.front.Len() * rel.Len())
	angle := math.Acos(cos) * step
	if angle == 0 || math.IsNaN(angle) {
		return
	}
	axis := t.front.Cross(rel)
	if axis.Len() < axisEpsilon {
		if cos > 0 {
			return
		}
		// Target directly behind: any perpendicular axis works.
		axis = t.up
	}
	t.RotateQuat(mgl64.QuatRotate(angle, axis.Normalize()))
}

// Move translates by offset expressed in the local basis:
// x along Right, y along Up, z along Front.
func (t *Transform) Move(offset mgl64.Vec3) {
	d := t.right.Mul(offset.X()).
		Add(t.up.Mul(offset.Y())).
		Add(t.front.Mul(offset.Z()))
	t.Position = t.Position.Add(d)
	t.dirty = true
}

// Translate moves by offset in world axes.
func (t *Transform) Translate(offset mgl64.Vec3) {
	t.Position = t.Position.Add(offset)
	t.dirty = true
}

// SetPosition sets the position and marks the transform dirty.
func (t *Transform) SetPosition(p mgl64.Vec3) {
	t.Position = p
	t.dirty = true
}

// SetScale sets the scale and marks the transform dirty.
func (t *Transform) SetScale(s mgl64.Vec3) {
	t.Scale = s
	t.dirty = true
}

// MarkDirty forces the owning node's world matrix to be rebuilt. Useful after
// assigning Position or Scale directly.
func (t *Transform) MarkDirty() {
	t.dirty = true
}

// Matrix returns the local model matrix T * R * S.
func (t *Transform) Matrix() mgl64.Mat4 {
	p, s := t.Position, t.Scale
	return mgl64.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(t.orientation.Mat4()).
		Mul4(mgl64.Scale3D(s.X(), s.Y(), s.Z()))
}

func (t *Transform) updateBasis() {
	t.front = t.orientation.Rotate(baseFront)
	t.up = t.orientation.Rotate(baseUp)
	t.right = t.orientation.Rotate(baseRight)
	t.dirty = true
}

// --- Euler helpers ---

// normalizeAngle maps degrees into [-180, 180).
func normalizeAngle(deg float64) float64 {
	a := math.Mod(deg+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}

func normalizeAngles(e mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{normalizeAngle(e[0]), normalizeAngle(e[1]), normalizeAngle(e[2])}
}

// quatFromEuler builds Rz * Ry * Rx from degrees.
func quatFromEuler(e mgl64.Vec3) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(e[0]), mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(mgl64.DegToRad(e[1]), mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(mgl64.DegToRad(e[2]), mgl64.Vec3{0, 0, 1})
	return qz.Mul(qy).Mul(qx)
}

// eulerFromQuat decomposes a unit quaternion built as Rz * Ry * Rx into
// normalized degrees. Y is recovered with asin and locks at +-90.
func eulerFromQuat(q mgl64.Quat) mgl64.Vec3 {
	w, x, y, z := q.W, q.V[0], q.V[1], q.V[2]

	var ex float64
	sy, cy := 2*(y*z+w*x), w*w-x*x-y*y+z*z
	if math.Abs(sy) < axisEpsilon && math.Abs(cy) < axisEpsilon {
		ex = 2 * math.Atan2(x, w)
	} else {
		ex = math.Atan2(sy, cy)
	}
	ey := math.Asin(mgl64.Clamp(-2*(x*z-w*y), -1, 1))
	ez := math.Atan2(2*(x*y+w*z), w*w+x*x-y*y-z*z)

	return normalizeAngles(mgl64.Vec3{
		mgl64.RadToDeg(ex),
		mgl64.RadToDeg(ey),
		mgl64.RadToDeg(ez),
	})
}
