package sapling

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string       `yaml:"action"`
	Label  string       `yaml:"label,omitempty"`
	Keys   []ebiten.Key `yaml:"keys,omitempty"`
	X      float64      `yaml:"x,omitempty"`
	Y      float64      `yaml:"y,omitempty"`
	FromX  float64      `yaml:"from_x,omitempty"`
	FromY  float64      `yaml:"from_y,omitempty"`
	ToX    float64      `yaml:"to_x,omitempty"`
	ToY    float64      `yaml:"to_y,omitempty"`
	Delta  float64      `yaml:"delta,omitempty"`
	Frames int          `yaml:"frames,omitempty"`
}

// script is the top-level YAML structure for an input script.
type script struct {
	Steps []scriptStep `yaml:"steps"`
}

var scriptActions = map[string]bool{
	"screenshot": true, "press": true, "release": true, "tap": true,
	"move": true, "drag": true, "scroll": true, "wait": true,
	"lock": true, "unlock": true,
}

// ScriptRunner sequences injected input and screenshots across frames for
// automated runs. Attach it to a ScriptedSurface with SetRunner.
//
// A script looks like:
//
//	steps:
//	  - action: tap
//	    keys: [W]
//	  - action: wait
//	    frames: 30
//	  - action: screenshot
//	    label: moved
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML input script. Key names are Ebitengine key names
// such as "A", "Space" or "ArrowUp".
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(err, "parse input script")
	}
	if len(sc.Steps) == 0 {
		return nil, errors.New("parse input script: no steps")
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, errors.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from PollEvents.
func (r *ScriptRunner) step(s *ScriptedSurface) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		if s.OnScreenshot != nil {
			s.OnScreenshot(st.Label)
		}
	case "press":
		s.InjectKeyPress(st.Keys...)
	case "release":
		s.InjectKeyRelease(st.Keys...)
	case "tap":
		s.InjectKeyTap(st.Keys...)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "scroll":
		s.InjectScroll(st.Delta)
	case "lock":
		s.SetCursorLocked(true)
	case "unlock":
		s.SetCursorLocked(false)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
