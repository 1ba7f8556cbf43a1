package sapling

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestScriptedSurfaceNormalizesConfig(t *testing.T) {
	s := NewScriptedSurface(WindowConfig{Width: 640, Height: 480})
	if s.Config().ResX != 640 || s.Config().ResY != 480 {
		t.Errorf("res = %dx%d, want 640x480", s.Config().ResX, s.Config().ResY)
	}
	s.SetConfig(WindowConfig{Width: 640, Height: 480, ResX: 1})
	if s.Config().ResX != MinRenderWidth {
		t.Errorf("ResX = %d, want %d", s.Config().ResX, MinRenderWidth)
	}
}

func TestInjectKeyTap(t *testing.T) {
	s := NewScriptedSurface(windowConfig(320, 180, 0, 0))
	s.InjectKeyTap(ebiten.KeyE)
	if s.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", s.Pending())
	}

	s.PollEvents()
	if !s.KeyPressed(ebiten.KeyE) || !s.KeyJustPressed(ebiten.KeyE) {
		t.Error("E should be down on the first frame")
	}
	s.PollEvents()
	if s.KeyPressed(ebiten.KeyE) || s.KeyJustPressed(ebiten.KeyE) {
		t.Error("E should be up on the second frame")
	}
}

func TestInjectPressHeldIsNotJustPressedAgain(t *testing.T) {
	s := NewScriptedSurface(windowConfig(320, 180, 0, 0))
	s.InjectKeyPress(ebiten.KeyShiftLeft)
	s.InjectKeyPress(ebiten.KeyShiftLeft)
	s.PollEvents()
	s.PollEvents()
	if s.KeyJustPressed(ebiten.KeyShiftLeft) {
		t.Error("re-pressing a held key should not count as just pressed")
	}
	if !s.KeyPressed(ebiten.KeyShiftLeft) {
		t.Error("key should still be held")
	}
}

func TestInjectDrag(t *testing.T) {
	s := NewScriptedSurface(windowConfig(320, 180, 0, 0))
	s.InjectDrag(10, 20, 40, 80, 4)
	if s.Pending() != 4 {
		t.Fatalf("pending = %d, want 4", s.Pending())
	}

	want := [][2]float64{{10, 20}, {20, 40}, {30, 60}, {40, 80}}
	for i, w := range want {
		s.PollEvents()
		x, y := s.CursorPosition()
		if !approxEqual(x, w[0], epsilon) || !approxEqual(y, w[1], epsilon) {
			t.Errorf("frame %d cursor = (%v, %v), want %v", i, x, y, w)
		}
		if i > 0 {
			dx, dy := s.CursorDelta()
			if !approxEqual(dx, 10, epsilon) || !approxEqual(dy, 20, epsilon) {
				t.Errorf("frame %d delta = (%v, %v), want (10, 20)", i, dx, dy)
			}
		}
	}
}

func TestInjectDrag_MinFrames(t *testing.T) {
	s := NewScriptedSurface(windowConfig(320, 180, 0, 0))
	s.InjectDrag(0, 0, 1, 1, 0)
	if s.Pending() != 2 {
		t.Errorf("pending = %d, want 2", s.Pending())
	}
}

func TestInjectQueueOrder(t *testing.T) {
	s := NewScriptedSurface(windowConfig(320, 180, 0, 0))
	s.InjectMove(5, 5)
	s.InjectScroll(2)
	s.InjectMove(9, 9)

	s.PollEvents()
	if x, _ := s.CursorPosition(); x != 5 {
		t.Errorf("frame 1 x = %v, want 5", x)
	}
	s.PollEvents()
	if s.Scroll() != 2 {
		t.Errorf("frame 2 scroll = %v, want 2", s.Scroll())
	}
	if dx, dy := s.CursorDelta(); dx != 0 || dy != 0 {
		t.Errorf("frame 2 delta = (%v, %v), want 0", dx, dy)
	}
	s.PollEvents()
	if x, _ := s.CursorPosition(); x != 9 || s.Scroll() != 0 {
		t.Errorf("frame 3 x = %v scroll = %v", x, s.Scroll())
	}
}

func TestPollEventsEmptyQueue(t *testing.T) {
	s := NewScriptedSurface(windowConfig(320, 180, 0, 0))
	s.PollEvents()
	if s.Polls != 1 || s.Pending() != 0 {
		t.Errorf("polls=%d pending=%d", s.Polls, s.Pending())
	}
}
