// Package camera builds projection and view matrices for the renderer and the viewer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

// Defaults for cameras with unset clip planes or field of view.
const (
	DefaultFov  = math32.Pi / 4
	DefaultNear = 0.1
	DefaultFar  = 1000
)

// Projection returns the projection matrix of cam for a viewport of width x height pixels.
func Projection(cam *scene.Camera, width, height int) math.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}

	near, far := cam.Near, cam.Far
	if near <= 0 {
		near = DefaultNear
	}
	if far <= near {
		far = DefaultFar
	}

	if cam.Projection == scene.Orthographic {
		h := cam.OrthoHeight
		if h <= 0 {
			h = 1
		}
		w := h * aspect
		return math.Ortho(-w/2, w/2, -h/2, h/2, near, far)
	}

	fov := cam.Fov
	if fov <= 0 {
		fov = DefaultFov
	}
	return math.Perspective(fov, aspect, near, far)
}

// IsPerspective reports whether p has the bottom row of a perspective projection.
func IsPerspective(p math.Mat4) bool {
	return p.At(3, 2) == -1 && p.At(3, 3) == 0 && p.At(0, 0) != 0 && p.At(1, 1) != 0
}

// IsOrthographic reports whether p is an orthographic projection. The
// identity is not: its depth axis is not flipped.
func IsOrthographic(p math.Mat4) bool {
	return p.At(3, 2) == 0 && p.At(3, 3) == 1 && p.At(2, 2) < 0 && p.At(0, 0) != 0 && p.At(1, 1) != 0
}

// NearPlane returns the near clip distance encoded in a perspective projection.
func NearPlane(p math.Mat4) float32 {
	return math32.Abs(p.At(2, 3) / (p.At(2, 2) - 1))
}

// FieldOfView returns the vertical field of view, in radians, of a perspective projection.
func FieldOfView(p math.Mat4) float32 {
	if p.At(1, 1) == 0 {
		return 0
	}
	return 2 * math32.Atan(1/p.At(1, 1))
}

// NearPlaneExtent returns the near clip distance and the size of the view
// volume at the near plane for a perspective or orthographic projection.
// ok is false for any other matrix.
func NearPlaneExtent(p math.Mat4) (near, width, height float32, ok bool) {
	switch {
	case IsPerspective(p):
		near = NearPlane(p)
		return near, 2 * near / p.At(0, 0), 2 * near / p.At(1, 1), true
	case IsOrthographic(p):
		near = (p.At(2, 3) + 1) / p.At(2, 2)
		return near, 2 / p.At(0, 0), 2 / p.At(1, 1), true
	default:
		return 0, 0, 0, false
	}
}
