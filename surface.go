package sapling

import "github.com/hajimehoshi/ebiten/v2"

// Surface is a presentable window plus the input state that arrives with it.
// Input queries reflect the snapshot taken by the most recent PollEvents.
type Surface interface {
	// Activate makes the surface current for the calls that follow.
	Activate()
	// PollEvents snapshots pending input.
	PollEvents()

	KeyPressed(k ebiten.Key) bool
	KeyJustPressed(k ebiten.Key) bool
	CursorPosition() (x, y float64)
	// CursorDelta is the cursor movement since the previous PollEvents.
	CursorDelta() (dx, dy float64)
	// Scroll is the vertical wheel movement since the previous PollEvents.
	Scroll() float64
	CursorLocked() bool
	SetCursorLocked(locked bool)

	// Present swaps the surface's buffers.
	Present()

	Config() WindowConfig
	SetConfig(cfg WindowConfig)
}
