// Package animation evaluates keyframed channels and writes the results into
// scene component properties once per frame.
package animation

import (
	"reflect"
	"sort"

	"github.com/tanema/gween/ease"

	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

// Value is the set of property types a channel can animate.
type Value interface {
	float32 | math.Vec3 | math.Vec4 | math.Quat
}

// Keyframe is a value at a point in time, in seconds.
type Keyframe[T Value] struct {
	Time  float32
	Value T
}

// LerpFunc interpolates between a and b with t in [0, 1].
type LerpFunc[T Value] func(a, b T, t float32) T

// Channel is a sparse, time-ordered sequence of keyframes for one property.
type Channel[T Value] struct {
	Keys   []Keyframe[T]
	Interp LerpFunc[T]
	// Ease reshapes the fraction between two keys. Nil means linear.
	Ease ease.TweenFunc
}

// NewChannel returns a channel with keys sorted by time.
func NewChannel[T Value](interp LerpFunc[T], keys ...Keyframe[T]) *Channel[T] {
	c := &Channel[T]{Interp: interp}
	c.AddKeys(keys...)
	return c
}

// AddKeys inserts keys, keeping the channel sorted by time.
func (c *Channel[T]) AddKeys(keys ...Keyframe[T]) {
	c.Keys = append(c.Keys, keys...)
	sort.SliceStable(c.Keys, func(i, j int) bool { return c.Keys[i].Time < c.Keys[j].Time })
}

// Duration returns the time of the last key.
func (c *Channel[T]) Duration() float32 {
	if len(c.Keys) == 0 {
		return 0
	}
	return c.Keys[len(c.Keys)-1].Time
}

// Value returns the interpolated value at time t. Before the first key it is
// the first value, after the last key it is the last value.
func (c *Channel[T]) Value(t float32) T {
	var zero T
	if len(c.Keys) == 0 {
		return zero
	}
	if len(c.Keys) == 1 || t <= c.Keys[0].Time {
		return c.Keys[0].Value
	}

	// Find surrounding keys.
	var prev, next int
	for i := range c.Keys {
		if c.Keys[i].Time > t {
			next = i
			break
		}
		prev = i
		next = i
	}

	if prev == next {
		return c.Keys[prev].Value
	}

	k0 := c.Keys[prev]
	k1 := c.Keys[next]
	frac := float32(0)
	if k1.Time != k0.Time {
		frac = (t - k0.Time) / (k1.Time - k0.Time)
	}
	if c.Ease != nil {
		frac = c.Ease(frac, 0, 1, 1)
	}

	if c.Interp == nil {
		return Step(k0.Value, k1.Value, frac)
	}
	return c.Interp(k0.Value, k1.Value, frac)
}

func (c *Channel[T]) sample(t float32) any {
	return c.Value(t)
}

func (c *Channel[T]) valueType() reflect.Type {
	return reflect.TypeFor[T]()
}

// Sampler is the type-erased view of a Channel the Mixer works with.
type Sampler interface {
	Duration() float32
	sample(t float32) any
	valueType() reflect.Type
}

// Step holds a until the next key is reached.
func Step[T Value](a, b T, t float32) T {
	if t >= 1 {
		return b
	}
	return a
}

// LerpFloat interpolates scalars linearly.
func LerpFloat(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpVec3 interpolates vectors linearly.
func LerpVec3(a, b math.Vec3, t float32) math.Vec3 {
	return a.Lerp(b, t)
}

// LerpVec4 interpolates vectors linearly.
func LerpVec4(a, b math.Vec4, t float32) math.Vec4 {
	return a.Lerp(b, t)
}

// LerpQuat interpolates quaternions componentwise and renormalizes.
func LerpQuat(a, b math.Quat, t float32) math.Quat {
	return a.Lerp(b, t)
}

// SlerpQuat interpolates quaternions along the shorter arc.
func SlerpQuat(a, b math.Quat, t float32) math.Quat {
	return a.Slerp(b, t)
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in_quad":      ease.InQuad,
	"out_quad":     ease.OutQuad,
	"in_out_quad":  ease.InOutQuad,
	"in_cubic":     ease.InCubic,
	"out_cubic":    ease.OutCubic,
	"in_out_cubic": ease.InOutCubic,
	"in_sine":      ease.InSine,
	"out_sine":     ease.OutSine,
	"in_out_sine":  ease.InOutSine,
	"in_expo":      ease.InExpo,
	"out_expo":     ease.OutExpo,
	"in_out_expo":  ease.InOutExpo,
	"in_back":      ease.InBack,
	"out_back":     ease.OutBack,
	"out_bounce":   ease.OutBounce,
	"out_elastic":  ease.OutElastic,
}

// EaseByName looks up an easing curve by its snake_case name, e.g. "in_out_quad".
func EaseByName(name string) (ease.TweenFunc, bool) {
	f, ok := easings[name]
	return f, ok
}
