package picking

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

func unitCube() *scene.Mesh {
	return &scene.Mesh{Name: "cube", Vertices: []math.Vec3{
		{X: -0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: 0.5, Z: 0.5},
	}}
}

func at(x, y, z float32) *scene.Transform {
	t := scene.NewTransform()
	t.Translation = math.Vec3{X: x, Y: y, Z: z}
	return t
}

func TestScreenRayThroughCenter(t *testing.T) {
	view := math.LookAt(math.Vec3{Z: 5}, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(math32.Pi/2, 1, 1, 100)
	inv := proj.Mul(view).Inverse()

	r := ScreenRay(50, 50, 100, 100, inv)
	assert.InDelta(t, 4, r.Origin.Z, 1e-3, "starts on the near plane")
	assert.InDelta(t, -1, r.Direction.Z, 1e-4)
	assert.InDelta(t, 0, r.Direction.X, 1e-4)

	// The top-left corner points up and left at 45 degrees.
	r = ScreenRay(0, 0, 100, 100, inv)
	assert.Less(t, r.Direction.X, float32(0))
	assert.Greater(t, r.Direction.Y, float32(0))
	assert.InDelta(t, r.Direction.Y, -r.Direction.X, 1e-4)
}

func TestIntersectAABB(t *testing.T) {
	box := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	d, hit := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}.IntersectAABB(box)
	require.True(t, hit)
	assert.InDelta(t, 4, d, 1e-6)

	d, hit = Ray{Direction: math.Vec3{X: 1}}.IntersectAABB(box)
	require.True(t, hit, "inside")
	assert.InDelta(t, 1, d, 1e-6)

	_, hit = Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}.IntersectAABB(box)
	assert.False(t, hit, "pointing away")

	_, hit = Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{Z: -1}}.IntersectAABB(box)
	assert.False(t, hit, "parallel outside")
}

func TestTransformAABB(t *testing.T) {
	b := Bounds(unitCube().Vertices).Transform(math.Translate(1, 2, 3).Mul(math.RotateZ(math32.Pi / 4)))
	half := math32.Sqrt(2) / 2
	assert.InDelta(t, 1-half, b.Min.X, 1e-5)
	assert.InDelta(t, 2+half, b.Max.Y, 1e-5)
	assert.InDelta(t, 2.5, b.Min.Z, 1e-5)
}

func TestPickNearest(t *testing.T) {
	near, far := unitCube(), unitCube()
	hidden := unitCube()
	hidden.Inactive = true

	sc := scene.New("s",
		scene.NewNode("far", at(0, 0, -5), far),
		scene.NewNode("group", at(0, 0, -2)).AddChild(
			scene.NewNode("near", at(0, 0, 0), near),
		),
		scene.NewNode("hidden", at(0, 0, 2), hidden),
		scene.NewNode("hud", &scene.CanvasTransform{}).AddChild(
			scene.NewNode("button", at(0, 0, 3), unitCube()),
		),
	)

	hit, ok := Pick(sc, Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}})
	require.True(t, ok)
	assert.Equal(t, "near", hit.Node.Name)
	assert.Same(t, near, hit.Mesh)
	assert.InDelta(t, 6.5, hit.Distance, 1e-5)

	_, ok = Pick(sc, Ray{Origin: math.Vec3{X: 10, Z: 5}, Direction: math.Vec3{Z: -1}})
	assert.False(t, ok)

	_, ok = Pick(nil, Ray{})
	assert.False(t, ok)
}
