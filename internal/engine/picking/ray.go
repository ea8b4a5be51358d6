// Package picking casts rays from screen positions into a scene.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

// Ray is a half line with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenRay converts a pixel position (origin top-left) into a world-space
// ray from the near to the far plane. invViewProj is (Projection x View)^-1.
func ScreenRay(x, y float32, width, height int, invViewProj math.Mat4) Ray {
	ndcX := 2*x/float32(width) - 1
	ndcY := 1 - 2*y/float32(height)

	near := unproject(invViewProj, math.Vec4{X: ndcX, Y: ndcY, Z: -1, W: 1})
	far := unproject(invViewProj, math.Vec4{X: ndcX, Y: ndcY, Z: 1, W: 1})
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

func unproject(m math.Mat4, clip math.Vec4) math.Vec3 {
	p := m.MulVec4(clip)
	if p.W != 0 {
		return p.XYZ().Scale(1 / p.W)
	}
	return p.XYZ()
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// Bounds returns the box around points. An empty slice gives a zero box.
func Bounds(points []math.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	b := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b = b.extend(p)
	}
	return b
}

func (b AABB) extend(p math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: math32.Min(b.Min.X, p.X), Y: math32.Min(b.Min.Y, p.Y), Z: math32.Min(b.Min.Z, p.Z)},
		Max: math.Vec3{X: math32.Max(b.Max.X, p.X), Y: math32.Max(b.Max.Y, p.Y), Z: math32.Max(b.Max.Z, p.Z)},
	}
}

// Transform returns the box around the eight transformed corners of b.
func (b AABB) Transform(m math.Mat4) AABB {
	var out AABB
	for i := 0; i < 8; i++ {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		p := m.TransformVec3(c)
		if i == 0 {
			out = AABB{Min: p, Max: p}
			continue
		}
		out = out.extend(p)
	}
	return out
}

// IntersectAABB returns the distance along r to the first point inside box.
// A ray starting inside the box hits at its exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin, tmax := float32(-math32.MaxFloat32), float32(math32.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
