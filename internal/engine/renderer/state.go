package renderer

import (
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

// State is the render state of one branch of the scene tree.
type State struct {
	Model       math.Mat4
	CanvasXForm math.Mat4
	UIRect      math.MinMaxRect
	Material    *scene.Material
	// Canvas is the innermost UI canvas, nil outside of UI subtrees.
	Canvas *scene.CanvasTransform
}

// World returns the matrix handed to the render context as Model.
func (s *State) World() math.Mat4 {
	return s.CanvasXForm.Mul(s.Model)
}

// stateStack holds one State snapshot per traversal depth. The backing array
// is reused across frames.
type stateStack struct {
	states []State
}

func (s *stateStack) reset(initial State) {
	s.states = append(s.states[:0], initial)
}

// push duplicates the top state so the entered node starts from its parent's state.
func (s *stateStack) push() {
	s.states = append(s.states, s.states[len(s.states)-1])
}

func (s *stateStack) pop() {
	s.states = s.states[:len(s.states)-1]
}

// top returns the current state. The pointer is invalidated by push.
func (s *stateStack) top() *State {
	return &s.states[len(s.states)-1]
}

func (s *stateStack) depth() int {
	return len(s.states) - 1
}
