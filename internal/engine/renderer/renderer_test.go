package renderer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/lighting"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/render"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/render/rendertest"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/shader"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

type fixture struct {
	dev      *rendertest.Device
	builder  *rendertest.Builder
	programs *shader.Cache
	r        *SceneRenderer
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	dev := rendertest.NewDevice()
	ctx, err := render.NewContext(dev)
	require.NoError(t, err)
	ctx.SetViewport(800, 600)

	b := &rendertest.Builder{}
	programs := shader.NewCache(b)
	return &fixture{dev: dev, builder: b, programs: programs, r: New(ctx, programs, opts)}
}

func (f *fixture) render(t *testing.T, sc *scene.Scene) FrameReport {
	t.Helper()
	report, err := f.r.Render(sc)
	require.NoError(t, err)
	return report
}

func translated(x, y, z float32) *scene.Transform {
	t := scene.NewTransform()
	t.Translation = math.Vec3{X: x, Y: y, Z: z}
	return t
}

func quad(name string) *scene.Mesh {
	return &scene.Mesh{
		Name:      name,
		Vertices:  []math.Vec3{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
		Triangles: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func paramMat(t *testing.T, d rendertest.Draw, name string) math.Mat4 {
	t.Helper()
	v, ok := d.Param(name)
	require.True(t, ok, "param %s not set", name)
	m, ok := v.(math.Mat4)
	require.True(t, ok, "param %s is %T", name, v)
	return m
}

func TestRenderWithoutContext(t *testing.T) {
	r := New(nil, nil, Options{})
	_, err := r.Render(scene.New("s"))
	assert.ErrorIs(t, err, ErrNoContext)
}

func TestTwoNodeScenario(t *testing.T) {
	f := newFixture(t, Options{})
	mesh := quad("child")
	sc := scene.New("two",
		scene.NewNode("root", translated(1, 0, 0)).AddChild(
			scene.NewNode("child", translated(0, 2, 0), mesh),
		),
	)

	report := f.render(t, sc)

	require.NoError(t, report.Err())
	require.Len(t, report.Lights, 1)
	assert.Equal(t, scene.LegacyLight, report.Lights[0].Type)
	require.Len(t, f.dev.Draws, 1)
	assert.Equal(t, 1, report.Draws)
	assert.Equal(t, 2, report.Nodes)

	d := f.dev.Draws[0]
	assert.Same(t, mesh, d.Mesh)
	assert.Equal(t, math.Translate(1, 2, 0), paramMat(t, d, shader.ParamModel))
	assert.Equal(t, shader.KeyFor(scene.DefaultMaterial(), false, 1), d.Program.Key)
	assert.Equal(t, scene.DefaultMaterial().Diffuse.Color, d.Params[shader.ParamDiffuseColor])
	assert.Equal(t, render.BlendOpaque, d.Blend)
}

func TestOneDrawPerActiveLight(t *testing.T) {
	f := newFixture(t, Options{})
	off := scene.NewLight(scene.PointLight)
	off.Active = false
	sc := scene.New("lit",
		scene.NewNode("sun", scene.NewLight(scene.DirectionalLight)),
		scene.NewNode("off", off),
		scene.NewNode("lamp", translated(0, 3, 0), scene.NewLight(scene.PointLight)),
		scene.NewNode("mesh", quad("m")),
	)

	report := f.render(t, sc)

	assert.Len(t, report.Lights, 3)
	require.Len(t, f.dev.Draws, 2)
	assert.Equal(t, render.BlendOpaque, f.dev.Draws[0].Blend)
	assert.Equal(t, render.BlendAdditive, f.dev.Draws[1].Blend)

	typeName := lighting.ParamName(0, lighting.FieldLightType)
	assert.Equal(t, int32(scene.DirectionalLight), f.dev.Draws[0].Params[typeName])
	assert.Equal(t, int32(scene.PointLight), f.dev.Draws[1].Params[typeName])
	assert.Equal(t, math.Vec3{Y: 3}, f.dev.Draws[1].Params[lighting.ParamName(0, lighting.FieldPositionWorldSpace)])
	assert.Equal(t, 1, f.programs.Len())
}

func TestLightParamsStableWithinFrame(t *testing.T) {
	f := newFixture(t, Options{})
	f.r.Context().SetView(math.Translate(0, 0, -5))
	sc := scene.New("stable",
		scene.NewNode("a", translated(1, 0, 0), scene.NewLight(scene.PointLight)),
		scene.NewNode("b", translated(-1, 0, 0), scene.NewLight(scene.SpotLight)),
		scene.NewNode("first", translated(3, 0, 0), quad("first")),
		scene.NewNode("second", translated(0, 7, 0), quad("second")),
	)

	f.render(t, sc)

	require.Len(t, f.dev.Draws, 4)
	for light := 0; light < 2; light++ {
		first, second := f.dev.Draws[light], f.dev.Draws[2+light]
		for _, field := range lighting.Fields {
			name := lighting.ParamName(0, field)
			assert.Equal(t, first.Params[name], second.Params[name], name)
		}
	}
	// View-space position of light a.
	assert.Equal(t, math.Vec3{X: 1, Z: -5}, f.dev.Draws[0].Params[lighting.ParamName(0, lighting.FieldPosition)])
}

func TestPushPopSymmetry(t *testing.T) {
	f := newFixture(t, Options{})
	red := &scene.Material{Diffuse: &scene.MatChannel{Color: math.Vec4{X: 1, W: 1}}}
	rot := scene.NewTransform()
	rot.Rotation = math.QuatFromAxisAngle(math.Vec3{Z: 1}, 0.3)

	sc := scene.New("tree",
		scene.NewNode("root", translated(1, 0, 0)).AddChild(
			scene.NewNode("a", translated(0, 5, 0), red, quad("a")).AddChild(
				scene.NewNode("a1", rot, quad("a1")),
				scene.NewNode("canvas", &scene.CanvasTransform{Size: math.MinMaxRect{Max: math.Vec2{X: 10, Y: 10}}}).AddChild(
					scene.NewNode("rect", &scene.RectTransform{Anchors: math.MinMaxRect{Max: math.Vec2{X: 0.5, Y: 0.5}}}, &scene.XForm{}, quad("ui")),
				),
			),
			scene.NewNode("b", quad("b")),
		),
	)

	var visited int
	f.r.trace = func(n *scene.Node, before, after State) {
		visited++
		assert.Equal(t, before, after, "state changed across subtree %q", n.Name)
	}

	report := f.render(t, sc)

	assert.Equal(t, 6, visited)
	assert.Equal(t, 6, report.Nodes)
	assert.Equal(t, 0, f.r.stack.depth())

	// b is drawn after a's subtree with root's state restored.
	last := f.dev.Draws[len(f.dev.Draws)-1]
	assert.Equal(t, "b", last.Mesh.Name)
	assert.Equal(t, math.Translate(1, 0, 0), paramMat(t, last, shader.ParamModel))
	assert.Equal(t, scene.DefaultMaterial().Diffuse.Color, last.Params[shader.ParamDiffuseColor])

	// a1 inherits a's material.
	assert.Equal(t, red.Diffuse.Color, f.dev.Draws[1].Params[shader.ParamDiffuseColor])
}

func TestInactiveMeshSkipped(t *testing.T) {
	f := newFixture(t, Options{})
	mesh := quad("hidden")
	mesh.Inactive = true

	report := f.render(t, scene.New("s", scene.NewNode("n", mesh)))

	assert.Empty(t, f.dev.Draws)
	assert.Equal(t, 0, f.dev.Programs)
	assert.Equal(t, 0, report.Draws)
}

func TestNilChildrenAreLeaves(t *testing.T) {
	f := newFixture(t, Options{})
	root := scene.NewNode("root", quad("r"))
	root.Children = []*scene.Node{nil}

	report := f.render(t, scene.New("s", root, nil))

	assert.Equal(t, 1, report.Nodes)
	assert.Len(t, f.dev.Draws, 1)
}

func TestProgramsAreMemoized(t *testing.T) {
	f := newFixture(t, Options{})
	sc := scene.New("s",
		scene.NewNode("a", quad("a")),
		scene.NewNode("b", quad("b")),
	)

	f.render(t, sc)
	f.render(t, sc)

	assert.Len(t, f.builder.Built, 1)
	assert.Len(t, f.dev.Draws, 4)
}

func TestCameraSetsProjection(t *testing.T) {
	f := newFixture(t, Options{})
	cam := &scene.Camera{Fov: 1, Near: 0.5, Far: 50}
	sc := scene.New("s", scene.NewNode("cam", cam).AddChild(scene.NewNode("m", quad("m"))))

	f.render(t, sc)

	require.Len(t, f.dev.Draws, 1)
	want := math.Perspective(1, 800.0/600.0, 0.5, 50)
	assert.True(t, paramMat(t, f.dev.Draws[0], shader.ParamProjection).ApproxEqual(want, 1e-6))
}

func TestArrayLighting(t *testing.T) {
	f := newFixture(t, Options{Lighting: ArrayLights})
	sc := scene.New("s",
		scene.NewNode("l0", scene.NewLight(scene.PointLight)),
		scene.NewNode("l1", scene.NewLight(scene.SpotLight)),
		scene.NewNode("l2", scene.NewLight(scene.DirectionalLight)),
		scene.NewNode("m", quad("m")),
	)

	report := f.render(t, sc)

	assert.True(t, report.ArrayLighting)
	require.Len(t, f.dev.Draws, 1)
	d := f.dev.Draws[0]
	assert.Equal(t, 3, d.Program.Key.Lights)
	for i, want := range []scene.LightType{scene.PointLight, scene.SpotLight, scene.DirectionalLight} {
		assert.Equal(t, int32(want), d.Params[lighting.ParamName(i, lighting.FieldLightType)])
	}
}

func TestArrayLightingFallsBack(t *testing.T) {
	f := newFixture(t, Options{Lighting: ArrayLights})
	f.dev.Caps[render.CapMaxLights] = 1
	sc := scene.New("s",
		scene.NewNode("l0", scene.NewLight(scene.PointLight)),
		scene.NewNode("l1", scene.NewLight(scene.PointLight)),
		scene.NewNode("m", quad("m")),
	)

	report := f.render(t, sc)

	assert.False(t, report.ArrayLighting)
	assert.Len(t, f.dev.Draws, 2)
	assert.Equal(t, 1, f.dev.Draws[0].Program.Key.Lights)
}

func TestLightCountChangeRebuildsNames(t *testing.T) {
	f := newFixture(t, Options{Lighting: ArrayLights})
	mesh := scene.NewNode("m", quad("m"))
	one := scene.New("one", scene.NewNode("l0", scene.NewLight(scene.PointLight)), mesh)
	two := scene.New("two",
		scene.NewNode("l0", scene.NewLight(scene.PointLight)),
		scene.NewNode("l1", scene.NewLight(scene.PointLight)),
		mesh,
	)

	f.render(t, one)
	f.render(t, one)
	assert.Equal(t, 1, f.r.names.Rebuilds())

	f.render(t, two)
	assert.Equal(t, 2, f.r.names.Rebuilds())
	assert.Equal(t, 2, f.r.names.Count())
}

func TestSkinnedMesh(t *testing.T) {
	f := newFixture(t, Options{})
	joint := scene.NewNode("joint", translated(0, 1, 0), &scene.Bone{Name: "joint"})
	mesh := quad("skin")
	bind := math.Translate(0, -1, 0)
	weight := &scene.Weight{
		Joints:          []*scene.Node{joint},
		BindingMatrices: []math.Mat4{bind},
		WeightMap:       []scene.VertexWeights{{{JointIndex: 0, Weight: 0.75}}},
	}

	sc := scene.New("s",
		scene.NewNode("root", translated(2, 0, 0)).AddChild(
			joint,
			scene.NewNode("body", weight, mesh),
		),
	)

	report := f.render(t, sc)

	require.NoError(t, report.Err())
	require.Len(t, f.dev.Draws, 1)
	d := f.dev.Draws[0]
	assert.True(t, d.Program.Key.Skinned)
	assert.Equal(t, math.Translate(2, 0, 0), paramMat(t, d, shader.BoneParam(0)))

	require.True(t, mesh.Skinned())
	assert.Equal(t, math.Vec4{X: 0.75}, mesh.BoneWeights[0])
	// Vertices without weights bind fully to joint 0.
	assert.Equal(t, math.Vec4{}, mesh.BoneIndices[1])
	assert.Equal(t, math.Vec4{X: 1}, mesh.BoneWeights[1])
}

func TestSkinBeforeBoneIsReported(t *testing.T) {
	f := newFixture(t, Options{})
	joint := scene.NewNode("late", &scene.Bone{Name: "late"})
	mesh := quad("skin")
	sc := scene.New("s",
		scene.NewNode("body", &scene.Weight{Joints: []*scene.Node{joint}}, mesh),
		joint,
	)

	report := f.render(t, sc)

	require.Len(t, report.Diagnostics, 1)
	assert.ErrorIs(t, report.Err(), ErrJointNotVisited)
	require.Len(t, f.dev.Draws, 1, "frame still completes")
	assert.True(t, f.dev.Draws[0].Program.Key.Skinned)
	assert.Equal(t, math.Identity(), paramMat(t, f.dev.Draws[0], shader.BoneParam(0)))

	// Bones from the previous frame do not satisfy the lookup.
	report = f.render(t, sc)
	assert.ErrorIs(t, report.Err(), ErrJointNotVisited)
}

func TestDrawErrorsAreCollected(t *testing.T) {
	f := newFixture(t, Options{})
	f.dev.RenderErr = errors.New("device lost")

	report, err := f.r.Render(scene.New("s", scene.NewNode("a", quad("a"))))

	require.NoError(t, err)
	assert.Equal(t, 0, report.Draws)
	assert.ErrorContains(t, report.Err(), "device lost")
}

func TestMissingBuilderIsReported(t *testing.T) {
	dev := rendertest.NewDevice()
	ctx, err := render.NewContext(dev)
	require.NoError(t, err)

	report, err := New(ctx, nil, Options{}).Render(scene.New("s", scene.NewNode("a", quad("a"))))

	require.NoError(t, err)
	assert.ErrorIs(t, report.Err(), shader.ErrNoBuilder)
	assert.Empty(t, dev.Draws)
}

func TestParseLightingMode(t *testing.T) {
	tests := []struct {
		in      string
		want    LightingMode
		wantErr bool
	}{
		{"", PerLight, false},
		{"per_light", PerLight, false},
		{"array", ArrayLights, false},
		{"deferred", PerLight, true},
	}
	for _, tt := range tests {
		got, err := ParseLightingMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestUnvisitedJointKeepsOtherJoints(t *testing.T) {
	f := newFixture(t, Options{})
	early := scene.NewNode("early", translated(0, 1, 0), &scene.Bone{Name: "early"})
	late := scene.NewNode("late", translated(5, 0, 0), &scene.Bone{Name: "late"})
	weight := &scene.Weight{Joints: []*scene.Node{early, late}}

	sc := scene.New("s",
		early,
		scene.NewNode("body", weight, quad("skin")),
		late,
	)

	report := f.render(t, sc)

	require.Len(t, report.Diagnostics, 1)
	assert.ErrorIs(t, report.Err(), ErrJointNotVisited)
	assert.Contains(t, report.Err().Error(), `joint 1 "late"`)

	require.Len(t, f.dev.Draws, 1)
	d := f.dev.Draws[0]
	assert.True(t, d.Program.Key.Skinned)
	assert.Equal(t, math.Translate(0, 1, 0), paramMat(t, d, shader.BoneParam(0)))
	assert.Equal(t, math.Identity(), paramMat(t, d, shader.BoneParam(1)))
}

func TestWeightMapChangeRepacksInfluences(t *testing.T) {
	f := newFixture(t, Options{})
	a := scene.NewNode("a", &scene.Bone{Name: "a"})
	b := scene.NewNode("b", &scene.Bone{Name: "b"})
	mesh := quad("skin")
	weight := &scene.Weight{Joints: []*scene.Node{a, b}}
	sc := scene.New("s", a, b, scene.NewNode("body", weight, mesh))

	f.render(t, sc)
	assert.Equal(t, math.Vec4{}, mesh.BoneIndices[0])
	uploaded := mesh.Revision

	f.render(t, sc)
	assert.Equal(t, uploaded, mesh.Revision, "unchanged weights are not re-packed")

	weight.SetWeightMap([]scene.VertexWeights{{{JointIndex: 1, Weight: 1}}})
	f.render(t, sc)
	assert.Equal(t, math.Vec4{X: 1}, mesh.BoneIndices[0])
	assert.Equal(t, math.Vec4{X: 1}, mesh.BoneWeights[0])
	assert.NotEqual(t, uploaded, mesh.Revision)
}

func TestWeightWithoutJointsDrawsUnskinned(t *testing.T) {
	f := newFixture(t, Options{})
	mesh := quad("skin")
	sc := scene.New("s", scene.NewNode("body", &scene.Weight{}, mesh))

	report := f.render(t, sc)

	require.NoError(t, report.Err())
	require.Len(t, f.dev.Draws, 1)
	assert.False(t, f.dev.Draws[0].Program.Key.Skinned)
	assert.False(t, mesh.Skinned())
}
