package picking

import (
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

// Hit is the nearest mesh node a ray passes through.
type Hit struct {
	Node     *scene.Node
	Mesh     *scene.Mesh
	Distance float32
}

// Pick returns the nearest active mesh whose world bounds r intersects.
// UI canvases are skipped because their placement depends on the viewport.
func Pick(sc *scene.Scene, r Ray) (Hit, bool) {
	var best Hit
	found := false
	if sc == nil {
		return best, false
	}

	var visit func(n *scene.Node, parent math.Mat4)
	visit = func(n *scene.Node, parent math.Mat4) {
		if n == nil || n.Has(scene.KindCanvas) {
			return
		}
		world := parent
		if t := n.Transform(); t != nil {
			world = world.Mul(t.Local())
		}

		for _, c := range n.Components {
			m, ok := c.(*scene.Mesh)
			if !ok || m.Inactive || len(m.Vertices) == 0 {
				continue
			}
			if d, hit := r.IntersectAABB(Bounds(m.Vertices).Transform(world)); hit && (!found || d < best.Distance) {
				best = Hit{Node: n, Mesh: m, Distance: d}
				found = true
			}
		}

		for _, child := range n.Children {
			visit(child, world)
		}
	}

	for _, root := range sc.Children {
		visit(root, math.Identity())
	}
	return best, found
}
