package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

func TestProjectionPerspective(t *testing.T) {
	cam := &scene.Camera{Fov: math32.Pi / 3, Near: 0.5, Far: 200}
	got := Projection(cam, 1600, 900)

	want := math.Perspective(math32.Pi/3, 16.0/9.0, 0.5, 200)
	assert.True(t, got.ApproxEqual(want, 1e-6))

	assert.InDelta(t, 0.5, NearPlane(got), 1e-4)
	assert.InDelta(t, math32.Pi/3, FieldOfView(got), 1e-5)
}

func TestProjectionDefaults(t *testing.T) {
	got := Projection(&scene.Camera{}, 0, 0)
	want := math.Perspective(DefaultFov, 1, DefaultNear, DefaultFar)
	assert.True(t, got.ApproxEqual(want, 1e-6))
}

func TestProjectionOrthographic(t *testing.T) {
	cam := &scene.Camera{Projection: scene.Orthographic, OrthoHeight: 4, Near: 1, Far: 10}
	got := Projection(cam, 200, 100)

	assert.True(t, got.ApproxEqual(math.Ortho(-4, 4, -2, 2, 1, 10), 1e-6))
}

func TestNearPlaneExtent(t *testing.T) {
	tests := []struct {
		name       string
		proj       math.Mat4
		ok         bool
		near, w, h float32
	}{
		// tan(45deg) = 1, so the near plane is 2 high at distance 1.
		{"perspective", math.Perspective(math32.Pi/2, 2, 1, 100), true, 1, 4, 2},
		{"orthographic", math.Ortho(-2, 2, -1, 1, 0.1, 100), true, 0.1, 4, 2},
		{"identity", math.Identity(), false, 0, 0, 0},
		{"zero", math.Mat4{}, false, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			near, w, h, ok := NearPlaneExtent(tt.proj)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.near, near, 1e-4)
			assert.InDelta(t, tt.w, w, 1e-4)
			assert.InDelta(t, tt.h, h, 1e-4)
		})
	}
}

func TestOrbitCamera(t *testing.T) {
	c := NewOrbitCamera(10)
	c.Pitch = 0

	assert.True(t, c.Position().Distance(math.Vec3{Z: 10}) < 1e-5)
	assert.True(t, c.ViewMatrix().ApproxEqual(math.Translate(0, 0, -10), 1e-5))

	c.HandleDrag(0, 1e6)
	assert.Equal(t, c.MaxPitch, c.Pitch)

	c.HandleZoom(100)
	assert.Equal(t, c.MinDistance, c.Distance)
}
