package renderer

import (
	"errors"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/lighting"
)

var (
	// ErrNoContext is returned by Render when no render context is bound.
	ErrNoContext = errors.New("renderer: no render context")
	// ErrJointNotVisited reports a skin whose joint bone was not traversed before it.
	ErrJointNotVisited = errors.New("renderer: skin joint visited after its weight")
	// ErrTooManyBones reports a skin with more joints than the device supports.
	ErrTooManyBones = errors.New("renderer: skin exceeds bone limit")
	// ErrNoScreenProjection reports a screen canvas laid out under a projection
	// that is neither perspective nor orthographic.
	ErrNoScreenProjection = errors.New("renderer: screen canvas without perspective or orthographic projection")
)

// FrameReport summarizes one rendered frame. Diagnostics are recoverable
// problems; the frame was still completed.
type FrameReport struct {
	Frame  uint64
	Nodes  int
	Draws  int
	Lights []lighting.Descriptor
	// ArrayLighting is set when the frame used one draw per mesh with all lights bound.
	ArrayLighting bool
	Diagnostics   []error
}

// Err joins all diagnostics, or returns nil for a clean frame.
func (r *FrameReport) Err() error {
	return errors.Join(r.Diagnostics...)
}

func (r *FrameReport) add(err error) {
	r.Diagnostics = append(r.Diagnostics, err)
}
