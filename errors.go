package sapling

import "github.com/pkg/errors"

// Frame errors. Update and Render return these (possibly wrapped) when a
// precondition fails; no further work is done that tick.
var (
	ErrMissingWindow = errors.New("sapling: no window surface registered")
	ErrMissingCamera = errors.New("sapling: no camera node in scene")
)

// Query errors. These indicate a call-site bug, not a runtime condition, and
// are never returned for a query that simply matched nothing.
var (
	ErrMissingQueryArgument = errors.New("sapling: query mode requires a comparison value")
	ErrInvalidQueryMode     = errors.New("sapling: invalid query mode")
)

// ErrInvalidConfig is returned when a configuration file cannot be used.
var ErrInvalidConfig = errors.New("sapling: invalid config")

// FramePhase names the half of a frame that failed.
type FramePhase string

const (
	PhaseUpdate FramePhase = "update"
	PhaseRender FramePhase = "render"
)

// FrameError is returned by Run when Engine.Update or Engine.Render fails.
type FrameError struct {
	Phase FramePhase
	Frame uint64
	Err   error
}

func (e *FrameError) Error() string {
	return "sapling: " + string(e.Phase) + ": " + e.Err.Error()
}

// Unwrap lets errors.Is see the underlying sentinel.
func (e *FrameError) Unwrap() error { return e.Err }

// Cause implements the pkg/errors causer interface.
func (e *FrameError) Cause() error { return e.Err }
