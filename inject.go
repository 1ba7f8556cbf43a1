package sapling

import "github.com/hajimehoshi/ebiten/v2"

// syntheticInput is one frame's worth of injected input.
type syntheticInput struct {
	press   []ebiten.Key
	release []ebiten.Key
	move    bool
	x, y    float64
	scroll  float64
}

// InjectKeyPress queues a key press, consumed on the next PollEvents. The
// key stays down until released.
func (s *ScriptedSurface) InjectKeyPress(keys ...ebiten.Key) {
	s.injectQueue = append(s.injectQueue, syntheticInput{press: keys})
}

// InjectKeyRelease queues a key release.
func (s *ScriptedSurface) InjectKeyRelease(keys ...ebiten.Key) {
	s.injectQueue = append(s.injectQueue, syntheticInput{release: keys})
}

// InjectKeyTap is a convenience that queues a press followed by a release.
// Consumes two frames.
func (s *ScriptedSurface) InjectKeyTap(keys ...ebiten.Key) {
	s.InjectKeyPress(keys...)
	s.InjectKeyRelease(keys...)
}

// InjectMove queues a cursor move to (x, y).
func (s *ScriptedSurface) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticInput{move: true, x: x, y: y})
}

// InjectDrag queues a cursor path from (fromX, fromY) to (toX, toY) spread
// linearly over frames frames. Minimum frames is 2.
func (s *ScriptedSurface) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// InjectScroll queues one frame of vertical wheel movement.
func (s *ScriptedSurface) InjectScroll(delta float64) {
	s.injectQueue = append(s.injectQueue, syntheticInput{scroll: delta})
}

// Pending returns the number of injected frames not yet consumed.
func (s *ScriptedSurface) Pending() int { return len(s.injectQueue) }

// processInjectedInput pops one frame of injected input and applies it.
func (s *ScriptedSurface) processInjectedInput() {
	if len(s.injectQueue) == 0 {
		return
	}
	in := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	for _, k := range in.press {
		if !s.pressed[k] {
			s.justPressed[k] = true
		}
		s.pressed[k] = true
	}
	for _, k := range in.release {
		delete(s.pressed, k)
	}
	if in.move {
		s.x, s.y = in.x, in.y
	}
	s.scroll = in.scroll
}
