package sceneio

import (
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

// Quad returns a size x size quad in the XY plane facing +Z, centered on the origin.
func Quad(size float32) *scene.Mesh {
	h := size / 2
	return &scene.Mesh{
		Name: "quad",
		Vertices: []math.Vec3{
			{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h},
		},
		Normals: []math.Vec3{
			{Z: 1}, {Z: 1}, {Z: 1}, {Z: 1},
		},
		UVs: []math.Vec2{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
		Triangles: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// cubeFaces lists each face as its normal plus two in-plane axes whose cross
// product equals the normal, so triangles wind counter-clockwise from outside.
var cubeFaces = [6][3]math.Vec3{
	{{Z: 1}, {X: 1}, {Y: 1}},
	{{Z: -1}, {X: -1}, {Y: 1}},
	{{X: 1}, {Z: -1}, {Y: 1}},
	{{X: -1}, {Z: 1}, {Y: 1}},
	{{Y: 1}, {X: 1}, {Z: -1}},
	{{Y: -1}, {X: 1}, {Z: 1}},
}

// Cube returns an axis aligned cube with edge length size and per-face normals.
func Cube(size float32) *scene.Mesh {
	h := size / 2
	m := &scene.Mesh{Name: "cube"}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	for _, f := range cubeFaces {
		n, u, v := f[0], f[1], f[2]
		base := uint32(len(m.Vertices))
		for _, c := range corners {
			p := n.Add(u.Scale(c[0])).Add(v.Scale(c[1])).Scale(h)
			m.Vertices = append(m.Vertices, p)
			m.Normals = append(m.Normals, n)
			m.UVs = append(m.UVs, math.Vec2{X: (c[0] + 1) / 2, Y: (c[1] + 1) / 2})
		}
		m.Triangles = append(m.Triangles, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}
