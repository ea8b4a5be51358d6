package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

func TestChannelValue(t *testing.T) {
	ch := NewChannel(LerpFloat,
		Keyframe[float32]{Time: 2, Value: 20},
		Keyframe[float32]{Time: 0, Value: 0},
		Keyframe[float32]{Time: 1, Value: 10},
	)

	tests := []struct {
		t    float32
		want float32
	}{
		{-1, 0},
		{0, 0},
		{0.5, 5},
		{1, 10},
		{1.25, 12.5},
		{2, 20},
		{5, 20},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ch.Value(tt.t), 1e-5, "t=%v", tt.t)
	}
	assert.Equal(t, float32(2), ch.Duration())
}

func TestChannelEmptyAndSingle(t *testing.T) {
	var empty Channel[math.Vec3]
	assert.Equal(t, math.Vec3{}, empty.Value(1))
	assert.Equal(t, float32(0), empty.Duration())

	single := NewChannel(LerpVec3, Keyframe[math.Vec3]{Time: 3, Value: math.Vec3{X: 1}})
	assert.Equal(t, math.Vec3{X: 1}, single.Value(0))
	assert.Equal(t, math.Vec3{X: 1}, single.Value(10))
}

func TestChannelStep(t *testing.T) {
	ch := NewChannel(Step[math.Vec4],
		Keyframe[math.Vec4]{Time: 0, Value: math.Vec4{X: 1}},
		Keyframe[math.Vec4]{Time: 1, Value: math.Vec4{Y: 1}},
	)
	assert.Equal(t, math.Vec4{X: 1}, ch.Value(0.99))
	assert.Equal(t, math.Vec4{Y: 1}, ch.Value(1))

	// Without an interpolator the channel steps.
	ch.Interp = nil
	assert.Equal(t, math.Vec4{X: 1}, ch.Value(0.5))
}

func TestChannelEase(t *testing.T) {
	ch := NewChannel(LerpFloat,
		Keyframe[float32]{Time: 0, Value: 0},
		Keyframe[float32]{Time: 1, Value: 1},
	)
	ch.Ease = ease.InQuad

	assert.InDelta(t, 0.25, ch.Value(0.5), 1e-5)
	assert.InDelta(t, 1, ch.Value(1), 1e-5)
}

func TestSlerpChannel(t *testing.T) {
	a := math.QuatIdentity()
	b := math.QuatFromAxisAngle(math.Vec3{Y: 1}, 1.5707964)
	ch := NewChannel(SlerpQuat, Keyframe[math.Quat]{Time: 0, Value: a}, Keyframe[math.Quat]{Time: 1, Value: b})

	half := ch.Value(0.5)
	want := math.QuatFromAxisAngle(math.Vec3{Y: 1}, 0.7853982)
	assert.InDelta(t, want.Y, half.Y, 1e-4)
	assert.InDelta(t, want.W, half.W, 1e-4)
}

func TestEaseByName(t *testing.T) {
	f, ok := EaseByName("in_out_quad")
	require.True(t, ok)
	assert.InDelta(t, 0.5, f(0.5, 0, 1, 1), 1e-5)

	_, ok = EaseByName("wobble")
	assert.False(t, ok)
}

func TestMixerWritesProperties(t *testing.T) {
	tr := scene.NewTransform()
	light := scene.NewLight(scene.PointLight)
	mat := &scene.Material{Diffuse: &scene.MatChannel{}}

	m := NewMixer(Options{Speed: 1})
	require.True(t, m.AddChannel(tr, "Translation", NewChannel(LerpVec3,
		Keyframe[math.Vec3]{Time: 0},
		Keyframe[math.Vec3]{Time: 2, Value: math.Vec3{X: 4}},
	)))
	require.True(t, m.AddChannel(light, "Strength", NewChannel(LerpFloat,
		Keyframe[float32]{Time: 0, Value: 0},
		Keyframe[float32]{Time: 1, Value: 1},
	)))
	require.True(t, m.AddChannel(mat, "Diffuse.Color", NewChannel(LerpVec4,
		Keyframe[math.Vec4]{Time: 0},
		Keyframe[math.Vec4]{Time: 1, Value: math.Vec4{X: 1, W: 1}},
	)))
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, float32(2), m.Duration())

	m.Animate(500 * time.Millisecond)

	assert.InDelta(t, 1, tr.Translation.X, 1e-5)
	assert.InDelta(t, 0.5, light.Strength, 1e-5)
	assert.InDelta(t, 0.5, mat.Diffuse.Color.X, 1e-5)

	// Not looping: the clock clamps at the end.
	m.Animate(time.Second)
	m.Animate(time.Second)
	assert.Equal(t, float32(2), m.Time())
	assert.InDelta(t, 4, tr.Translation.X, 1e-5)
}

func TestMixerSkipsUnsupported(t *testing.T) {
	tr := scene.NewTransform()
	m := NewMixer(DefaultOptions())
	vec := NewChannel(LerpVec3, Keyframe[math.Vec3]{Time: 1})

	assert.False(t, m.AddChannel(tr, "Rotation", vec), "type mismatch")
	assert.False(t, m.AddChannel(tr, "Missing", vec), "unknown field")
	assert.False(t, m.AddChannel(tr, "Matrix", vec), "pointer field of another type")
	assert.False(t, m.AddChannel(*tr, "Translation", vec), "not a pointer")
	assert.False(t, m.AddChannel(nil, "Translation", vec))
	assert.False(t, m.AddChannel(&scene.Material{}, "Diffuse.Color", NewChannel(LerpVec4)), "nil intermediate pointer")
	assert.Equal(t, 0, m.Len())
}

func TestMixerLoopsAndCapsDelta(t *testing.T) {
	tr := scene.NewTransform()
	m := NewMixer(Options{Loop: true, Speed: 2, MaxDelta: 250 * time.Millisecond})
	require.True(t, m.AddChannel(tr, "Scale", NewChannel(LerpVec3,
		Keyframe[math.Vec3]{Time: 0, Value: math.Vec3{X: 1, Y: 1, Z: 1}},
		Keyframe[math.Vec3]{Time: 1, Value: math.Vec3{X: 3, Y: 3, Z: 3}},
	)))

	// Capped to 250ms, doubled by speed.
	m.Animate(time.Second)
	assert.InDelta(t, 0.5, m.Time(), 1e-5)
	assert.InDelta(t, 2, tr.Scale.X, 1e-5)

	m.Animate(200 * time.Millisecond)
	m.Animate(200 * time.Millisecond)
	assert.InDelta(t, 0.3, m.Time(), 1e-4)
}

func TestMixerSeek(t *testing.T) {
	l := scene.NewLight(scene.SpotLight)
	m := NewMixer(DefaultOptions())
	require.True(t, m.AddChannel(l, "OuterConeAngle", NewChannel(LerpFloat,
		Keyframe[float32]{Time: 0, Value: 0},
		Keyframe[float32]{Time: 4, Value: 2},
	)))

	m.Seek(1)
	assert.InDelta(t, 0.5, l.OuterConeAngle, 1e-5)
}
