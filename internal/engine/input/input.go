// Package input turns SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a viewer event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventDrag
	EventZoom
	EventClick
)

// clickSlop is how far in pixels the pointer may travel between press and
// release and still count as a click.
const clickSlop = 4

// Event is one processed input event.
type Event struct {
	Type EventType
	Key  sdl.Scancode
	// Width and Height are set for EventWindowResize.
	Width  int
	Height int
	// DX and DY are the pointer movement in pixels for EventDrag.
	DX, DY float32
	// Wheel is the scroll amount for EventZoom, positive away from the user.
	Wheel float32
	// X and Y are the window coordinates of an EventClick.
	X, Y float32
}

// Input polls SDL once per frame and keeps the events of the last poll.
type Input struct {
	events   []Event
	dragging bool
	travel   float32
}

// New creates an input handler.
func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// Update drains the SDL event queue. It returns true when the user asked to quit.
func (in *Input) Update() bool {
	in.events = in.events[:0]
	quit := false

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			in.push(Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				in.push(Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				in.push(Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
				if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					quit = true
				}
			}

		case *sdl.MouseButtonEvent:
			if e.Button != sdl.BUTTON_LEFT {
				break
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				in.dragging = true
				in.travel = 0
				break
			}
			if in.dragging && in.travel <= clickSlop {
				in.push(Event{Type: EventClick, X: float32(e.X), Y: float32(e.Y)})
			}
			in.dragging = false

		case *sdl.MouseMotionEvent:
			if in.dragging {
				dx, dy := float32(e.XRel), float32(e.YRel)
				in.travel += abs(dx) + abs(dy)
				in.push(Event{Type: EventDrag, DX: dx, DY: dy})
			}

		case *sdl.MouseWheelEvent:
			in.push(Event{Type: EventZoom, Wheel: float32(e.Y)})
		}
	}
	return quit
}

func (in *Input) push(e Event) {
	in.events = append(in.events, e)
}

// Events returns the events of the last Update.
func (in *Input) Events() []Event {
	return in.events
}

// KeyPressed reports whether the key went down during the last Update.
func (in *Input) KeyPressed(key sdl.Scancode) bool {
	for _, e := range in.events {
		if e.Type == EventKeyDown && e.Key == key {
			return true
		}
	}
	return false
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
