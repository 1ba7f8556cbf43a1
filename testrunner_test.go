package sapling

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`
steps:
  - action: screenshot
    label: initial
  - action: tap
    keys: [W, Space]
  - action: wait
    frames: 3
  - action: drag
    from_x: 0
    from_y: 0
    to_x: 30
    to_y: 60
    frames: 4
`)
	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	keys := runner.steps[1].Keys
	if len(keys) != 2 || keys[0] != ebiten.KeyW || keys[1] != ebiten.KeySpace {
		t.Errorf("step 1 keys = %v", keys)
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if d := runner.steps[3]; d.ToX != 30 || d.ToY != 60 || d.Frames != 4 {
		t.Errorf("step 3 = %+v", d)
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	if _, err := LoadScript([]byte("steps: [")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadScript_Empty(t *testing.T) {
	if _, err := LoadScript([]byte("steps: []")); err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadScript_UnknownAction(t *testing.T) {
	if _, err := LoadScript([]byte("steps:\n  - action: click\n")); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestLoadScript_UnknownKey(t *testing.T) {
	if _, err := LoadScript([]byte("steps:\n  - action: press\n    keys: [NotAKey]\n")); err == nil {
		t.Error("expected error for unknown key name")
	}
}

func TestRunnerStep_Tap(t *testing.T) {
	s := NewScriptedSurface(windowConfig(320, 180, 0, 0))
	runner, err := LoadScript([]byte("steps:\n  - action: tap\n    keys: [A]\n"))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(s.injectQueue))
	}
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	s.processInjectedInput()
	s.processInjectedInput()

	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewScriptedSurface(windowConfig(320, 180, 0, 0))
	var shots []string
	s.OnScreenshot = func(label string) { shots = append(shots, label) }
	runner, err := LoadScript([]byte(`
steps:
  - action: wait
    frames: 3
  - action: screenshot
    label: after
`))
	if err != nil {
		t.Fatal(err)
	}

	// The wait step consumes three frames including the one it runs on.
	for i := 0; i < 3; i++ {
		runner.step(s)
		if len(shots) != 0 {
			t.Fatalf("screenshot fired on frame %d", i)
		}
	}
	runner.step(s)
	if len(shots) != 1 || shots[0] != "after" {
		t.Errorf("shots = %v, want [after]", shots)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerStep_Drag(t *testing.T) {
	s := NewScriptedSurface(windowConfig(320, 180, 0, 0))
	runner, err := LoadScript([]byte(`
steps:
  - action: drag
    from_x: 0
    from_y: 0
    to_x: 30
    to_y: 60
    frames: 4
`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(s)
	if len(s.injectQueue) != 4 {
		t.Fatalf("expected 4 moves, got %d", len(s.injectQueue))
	}
}

func TestRunnerLockAndUnlock(t *testing.T) {
	s := NewScriptedSurface(windowConfig(320, 180, 0, 0))
	runner, err := LoadScript([]byte("steps:\n  - action: lock\n  - action: unlock\n"))
	if err != nil {
		t.Fatal(err)
	}
	s.SetRunner(runner)
	s.PollEvents()
	if !s.CursorLocked() {
		t.Error("cursor should be locked after first frame")
	}
	s.PollEvents()
	if s.CursorLocked() {
		t.Error("cursor should be unlocked after second frame")
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerDrivesSurfaceThroughPollEvents(t *testing.T) {
	s := NewScriptedSurface(windowConfig(320, 180, 0, 0))
	runner, err := LoadScript([]byte(`
steps:
  - action: press
    keys: [W]
  - action: scroll
    delta: -1
  - action: release
    keys: [W]
`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetRunner(runner)

	s.PollEvents() // press queued and applied
	if !s.KeyPressed(ebiten.KeyW) || !s.KeyJustPressed(ebiten.KeyW) {
		t.Fatal("W should be pressed and just pressed")
	}
	s.PollEvents() // scroll
	if s.Scroll() != -1 || s.KeyJustPressed(ebiten.KeyW) || !s.KeyPressed(ebiten.KeyW) {
		t.Errorf("frame 2: scroll=%v held=%v", s.Scroll(), s.KeyPressed(ebiten.KeyW))
	}
	s.PollEvents() // release
	if s.KeyPressed(ebiten.KeyW) || s.Scroll() != 0 {
		t.Error("W should be released and scroll reset")
	}
	if runner.Done() {
		t.Error("runner should finish only after the release is applied")
	}
	s.PollEvents()
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerDone(t *testing.T) {
	s := NewScriptedSurface(windowConfig(320, 180, 0, 0))
	runner, err := LoadScript([]byte("steps:\n  - action: screenshot\n    label: only\n"))
	if err != nil {
		t.Fatal(err)
	}
	if runner.Done() {
		t.Error("should not be done before any step")
	}
	runner.step(s)
	if !runner.Done() {
		t.Error("should be done after single screenshot step")
	}
	runner.step(s) // no-op
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := NewScriptedSurface(windowConfig(320, 180, 0, 0))
	var shots int
	s.OnScreenshot = func(string) { shots++ }
	runner, err := LoadScript([]byte("steps:\n  - action: screenshot\n    label: x\n"))
	if err != nil {
		t.Fatal(err)
	}
	s.InjectMove(1, 1)

	runner.step(s)
	if shots != 0 {
		t.Error("runner should wait for pending injections")
	}
	s.processInjectedInput()
	runner.step(s)
	if shots != 1 {
		t.Error("runner should run once the queue drains")
	}
}
