package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/render"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/logger"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

// maxInfluences is the number of joints a single vertex can follow.
const maxInfluences = 4

// influenceSource identifies the weight data a mesh's bone attributes were
// packed from.
type influenceSource struct {
	weight   *scene.Weight
	revision uint32
}

// skin returns the bone matrices of w and attaches per-vertex joint data to m.
// It returns nil when the mesh has to be drawn unskinned. A joint that was not
// visited before w contributes the identity; the rest of the skin still applies.
func (r *SceneRenderer) skin(n *scene.Node, m *scene.Mesh, w *scene.Weight) []math.Mat4 {
	if len(w.Joints) == 0 || r.ctx.Capability(render.CapSkinning) == 0 {
		return nil
	}
	if limit := r.ctx.Capability(render.CapMaxBones); len(w.Joints) > limit {
		r.report.add(fmt.Errorf("node %q: %w: %d joints, limit %d", n.Name, ErrTooManyBones, len(w.Joints), limit))
		return nil
	}

	bones := make([]math.Mat4, len(w.Joints))
	for i, joint := range w.Joints {
		world, ok := r.bones[joint]
		if !ok {
			name := "<nil>"
			if joint != nil {
				name = joint.Name
			}
			logger.Debug("skin joint not visited yet, using identity",
				zap.String("node", n.Name),
				zap.String("joint", name),
			)
			r.report.add(fmt.Errorf("node %q: %w: joint %d %q", n.Name, ErrJointNotVisited, i, name))
			bones[i] = math.Identity()
			continue
		}
		bind := math.Identity()
		if i < len(w.BindingMatrices) {
			bind = w.BindingMatrices[i]
		}
		bones[i] = world.Mul(bind)
	}

	src := influenceSource{weight: w, revision: w.Revision}
	if r.influences[m] != src || len(m.BoneIndices) != len(m.Vertices) {
		m.SetBoneData(VertexInfluences(w, len(m.Vertices)))
		r.influences[m] = src
	}
	return bones
}

// VertexInfluences packs the weight map of w into per-vertex joint indices and
// weights for vertexCount vertices. A vertex without entries is bound fully to
// joint 0; entries beyond four are dropped. Weights are not normalized.
func VertexInfluences(w *scene.Weight, vertexCount int) (indices, weights []math.Vec4) {
	indices = make([]math.Vec4, vertexCount)
	weights = make([]math.Vec4, vertexCount)

	for v := 0; v < vertexCount; v++ {
		var entries scene.VertexWeights
		if v < len(w.WeightMap) {
			entries = w.WeightMap[v]
		}
		if len(entries) == 0 {
			weights[v] = math.Vec4{X: 1}
			continue
		}

		var idx, wt [maxInfluences]float32
		for i, e := range entries {
			if i == maxInfluences {
				break
			}
			idx[i] = float32(e.JointIndex)
			wt[i] = e.Weight
		}
		indices[v] = math.Vec4{X: idx[0], Y: idx[1], Z: idx[2], W: idx[3]}
		weights[v] = math.Vec4{X: wt[0], Y: wt[1], Z: wt[2], W: wt[3]}
	}
	return indices, weights
}
