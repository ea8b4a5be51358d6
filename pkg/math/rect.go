package math

// MinMaxRect is an axis-aligned rectangle in a 2D layout space.
type MinMaxRect struct {
	Min Vec2
	Max Vec2
}

// Size returns the width and height.
func (r MinMaxRect) Size() Vec2 {
	return r.Max.Sub(r.Min)
}

// Center returns the midpoint.
func (r MinMaxRect) Center() Vec2 {
	return r.Min.Add(r.Size().Scale(0.5))
}

// RectFromCenter builds a rectangle of the given size around center.
func RectFromCenter(center, size Vec2) MinMaxRect {
	half := size.Scale(0.5)
	return MinMaxRect{Min: center.Sub(half), Max: center.Add(half)}
}
