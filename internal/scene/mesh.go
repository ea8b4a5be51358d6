package scene

import "github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"

// Mesh is renderable triangle geometry.
type Mesh struct {
	Name      string
	Vertices  []math.Vec3
	Normals   []math.Vec3
	UVs       []math.Vec2
	Triangles []uint32
	// Inactive meshes are skipped entirely during rendering.
	Inactive bool

	// BoneIndices and BoneWeights are filled from a Weight on the same node.
	BoneIndices []math.Vec4
	BoneWeights []math.Vec4
	// Revision changes whenever vertex data is replaced so devices can re-upload.
	Revision uint32
}

// Skinned reports whether per-vertex bone data is attached.
func (m *Mesh) Skinned() bool {
	return len(m.BoneIndices) > 0 && len(m.BoneIndices) == len(m.BoneWeights)
}

// SetBoneData attaches per-vertex joint indices and weights.
func (m *Mesh) SetBoneData(indices, weights []math.Vec4) {
	m.BoneIndices = indices
	m.BoneWeights = weights
	m.Revision++
}
