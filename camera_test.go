package sapling

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// settle refreshes a root camera's world and view matrices the way
// Engine.Update does.
func settle(cam *Node) {
	updateWorldTransform(cam, identityMatrix, false)
	cam.refreshView()
}

func TestCameraProjectionMatchesPerspective(t *testing.T) {
	cam := NewCamera("cam")
	cam.FOV = 60
	cam.NearPlane = 0.5
	cam.FarPlane = 50
	want := mgl64.Perspective(mgl64.DegToRad(60), 16.0/9, 0.5, 50)
	if got := cam.Projection(16.0 / 9); got != want {
		t.Errorf("Projection = %v, want %v", got, want)
	}
}

func TestCameraIdentityViewBeforeUpdate(t *testing.T) {
	cam := NewCamera("cam")
	if cam.ViewMatrix() != mgl64.Ident4() {
		t.Error("view should be identity before the first update")
	}
}

func TestCameraLooksAlongFront(t *testing.T) {
	cam := NewCamera("cam")
	settle(cam)

	sx, sy, ok := cam.WorldToScreen(mgl64.Vec3{0, 0, 5}, 800, 600)
	if !ok {
		t.Fatal("point in front should be visible")
	}
	if !approxEqual(sx, 400, 1e-9) || !approxEqual(sy, 300, 1e-9) {
		t.Errorf("WorldToScreen = (%v, %v), want (400, 300)", sx, sy)
	}
}

func TestCameraScreenAxes(t *testing.T) {
	cam := NewCamera("cam")
	settle(cam)

	// Right is -X in world space; up is +Y and screen Y grows downward.
	sx, _, _ := cam.WorldToScreen(mgl64.Vec3{-1, 0, 5}, 800, 600)
	if sx <= 400 {
		t.Errorf("point on camera right projected to x=%v, want > 400", sx)
	}
	_, sy, _ := cam.WorldToScreen(mgl64.Vec3{0, 1, 5}, 800, 600)
	if sy >= 300 {
		t.Errorf("point above projected to y=%v, want < 300", sy)
	}
}

func TestCameraPointBehind(t *testing.T) {
	cam := NewCamera("cam")
	settle(cam)
	if _, _, ok := cam.WorldToScreen(mgl64.Vec3{0, 0, -5}, 800, 600); ok {
		t.Error("point behind the camera should not be visible")
	}
}

func TestCameraRotationFollowsTransform(t *testing.T) {
	cam := NewCamera("cam")
	cam.Transform.SetPosition(mgl64.Vec3{0, 0, 0})
	cam.Transform.SetRotation(mgl64.Vec3{0, 90, 0}) // front = +X
	settle(cam)

	sx, sy, ok := cam.WorldToScreen(mgl64.Vec3{7, 0, 0}, 640, 360)
	if !ok || !approxEqual(sx, 320, 1e-9) || !approxEqual(sy, 180, 1e-9) {
		t.Errorf("WorldToScreen = (%v, %v, %v), want (320, 180, true)", sx, sy, ok)
	}
}

func TestCameraUnderRotatedParent(t *testing.T) {
	rig := NewObject("rig")
	rig.Transform.SetPosition(mgl64.Vec3{0, 3, 0})
	rig.Transform.SetRotation(mgl64.Vec3{0, -90, 0}) // front = -X
	cam := NewCamera("cam")
	rig.AddChild(cam)
	updateWorldTransform(rig, identityMatrix, false)
	cam.refreshView()

	assertVec3(t, "world front", cam.WorldFront(), mgl64.Vec3{-1, 0, 0}, 1e-12)
	assertVec3(t, "world position", cam.WorldPosition(), mgl64.Vec3{0, 3, 0}, 1e-12)

	sx, sy, ok := cam.WorldToScreen(mgl64.Vec3{-4, 3, 0}, 100, 100)
	if !ok || !approxEqual(sx, 50, 1e-9) || !approxEqual(sy, 50, 1e-9) {
		t.Errorf("WorldToScreen = (%v, %v, %v), want (50, 50, true)", sx, sy, ok)
	}
}

func TestCameraUpdateRefreshesView(t *testing.T) {
	cam := NewCamera("cam")
	cam.Transform.SetPosition(mgl64.Vec3{0, 0, -10})
	updateWorldTransform(cam, identityMatrix, false)
	cam.Update(0)

	want := mgl64.LookAtV(mgl64.Vec3{0, 0, -10}, mgl64.Vec3{0, 0, -9}, mgl64.Vec3{0, 1, 0})
	got := cam.ViewMatrix()
	for i := range got {
		if !approxEqual(got[i], want[i], 1e-12) {
			t.Fatalf("view = %v, want %v", got, want)
		}
	}
}

func TestEngineNewCameraAppliesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Camera = CameraConfig{FOV: 70, Near: 1, Far: 500}
	e := NewEngine(cfg, &recordingDevice{})
	cam := e.NewCamera("cam")
	if cam.FOV != 70 || cam.NearPlane != 1 || cam.FarPlane != 500 {
		t.Errorf("camera = (%v, %v, %v), want (70, 1, 500)", cam.FOV, cam.NearPlane, cam.FarPlane)
	}

	cfg.Camera = CameraConfig{FOV: 0, Near: 5, Far: 1} // unusable planes
	e = NewEngine(cfg, &recordingDevice{})
	cam = e.NewCamera("cam")
	if cam.FOV != DefaultFOV || cam.NearPlane != DefaultNearPlane || cam.FarPlane != DefaultFarPlane {
		t.Errorf("camera = (%v, %v, %v), want defaults", cam.FOV, cam.NearPlane, cam.FarPlane)
	}
}
