package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

func testTree() *Scene {
	leaf := NewNode("leaf", &Mesh{Name: "quad"})
	mid := NewNode("mid", NewTransform()).AddChild(leaf)
	other := NewNode("other")
	return New("test", NewNode("root").AddChild(mid, other))
}

func TestWalkOrder(t *testing.T) {
	sc := testTree()

	var names []string
	var depths []int
	sc.Walk(func(n *Node, depth int) bool {
		names = append(names, n.Name)
		depths = append(depths, depth)
		return true
	})

	assert.Equal(t, []string{"root", "mid", "leaf", "other"}, names)
	assert.Equal(t, []int{0, 1, 2, 1}, depths)
	assert.Equal(t, 4, sc.Count())
}

func TestWalkSkipChildren(t *testing.T) {
	sc := testTree()

	var names []string
	sc.Walk(func(n *Node, _ int) bool {
		names = append(names, n.Name)
		return n.Name != "mid"
	})

	assert.Equal(t, []string{"root", "mid", "other"}, names)
}

func TestWalkNilChild(t *testing.T) {
	sc := New("nil", NewNode("root").AddChild(nil))
	assert.Equal(t, 1, sc.Count())
}

func TestFindByName(t *testing.T) {
	sc := testTree()

	leaf := sc.FindByName("leaf")
	require.NotNil(t, leaf)
	assert.True(t, leaf.Has(KindMesh))
	assert.Nil(t, sc.FindByName("missing"))
}

func TestTransformLocal(t *testing.T) {
	tr := NewTransform()
	assert.Equal(t, math.Identity(), tr.Local())

	tr.Translation = math.Vec3{X: 1, Y: 2, Z: 3}
	assert.Equal(t, math.Translate(1, 2, 3), tr.Local())

	explicit := math.Scale(2, 2, 2)
	tr.Matrix = &explicit
	assert.Equal(t, explicit, tr.Local())
}

func TestComponentKinds(t *testing.T) {
	components := []Component{
		NewTransform(), &Camera{}, &Material{}, &Mesh{}, &Bone{},
		&Weight{}, NewLight(PointLight), &CanvasTransform{}, &RectTransform{}, &XForm{},
	}
	for i, c := range components {
		assert.Equal(t, Kind(i), c.Kind())
		assert.NotEqual(t, "unknown", c.Kind().String())
	}
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestNodeAccessors(t *testing.T) {
	w := &Weight{}
	n := NewNode("n", &Mesh{}, w)

	assert.Same(t, w, n.Weight())
	assert.Nil(t, n.Transform())
}

func TestMeshSkinned(t *testing.T) {
	m := &Mesh{}
	assert.False(t, m.Skinned())

	m.SetBoneData([]math.Vec4{{}}, []math.Vec4{{X: 1}})
	assert.True(t, m.Skinned())
	assert.Equal(t, uint32(1), m.Revision)
}

func TestDefaultMaterialIsShared(t *testing.T) {
	assert.Same(t, DefaultMaterial(), DefaultMaterial())
	assert.NotNil(t, DefaultMaterial().Diffuse)
}

func TestSetWeightMapBumpsRevision(t *testing.T) {
	w := &Weight{}
	w.SetWeightMap([]VertexWeights{{{JointIndex: 1, Weight: 1}}})
	w.SetWeightMap(nil)

	assert.Equal(t, uint32(2), w.Revision)
	assert.Nil(t, w.WeightMap)
}
