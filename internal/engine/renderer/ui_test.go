package renderer

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/shader"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

func rect(minX, minY, maxX, maxY float32) math.MinMaxRect {
	return math.MinMaxRect{Min: math.Vec2{X: minX, Y: minY}, Max: math.Vec2{X: maxX, Y: maxY}}
}

func TestWorldCanvasLayout(t *testing.T) {
	f := newFixture(t, Options{})
	canvas := &scene.CanvasTransform{RenderMode: scene.CanvasWorld, Size: rect(0, 0, 100, 50)}
	left := &scene.RectTransform{Anchors: rect(0, 0, 0.5, 1)}
	inset := &scene.RectTransform{Anchors: rect(0, 0, 1, 1), Offsets: rect(5, 5, -5, -5)}

	sc := scene.New("ui",
		scene.NewNode("canvas", canvas).AddChild(
			scene.NewNode("left", left, &scene.XForm{}, quad("left")),
			scene.NewNode("inset", inset, &scene.XForm{}, quad("inset")),
		),
	)

	f.render(t, sc)

	require.Len(t, f.dev.Draws, 2)

	// Left half: 50x50 centered at (25, 25), i.e. 25 left of the canvas center.
	want := math.Translate(50, 25, 0).Mul(math.Translate(-25, 0, 0)).Mul(math.Scale(50, 50, 1))
	assert.True(t, paramMat(t, f.dev.Draws[0], shader.ParamModel).ApproxEqual(want, 1e-5))

	// Inset by 5 on every side keeps the center.
	want = math.Translate(50, 25, 0).Mul(math.Scale(90, 40, 1))
	assert.True(t, paramMat(t, f.dev.Draws[1], shader.ParamModel).ApproxEqual(want, 1e-5))
}

func TestScreenCanvasLayout(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := f.r.Context()
	ctx.SetViewport(200, 100)
	ctx.SetProjection(math.Perspective(math32.Pi/2, 2, 1, 100))

	canvas := &scene.CanvasTransform{RenderMode: scene.CanvasScreen, Size: rect(0, 0, 400, 200)}
	// 100 design units are one unit on the near plane.
	child := &scene.RectTransform{Anchors: rect(0, 0, 1, 1), Offsets: rect(100, 100, 0, 0)}

	sc := scene.New("hud",
		scene.NewNode("moved", translated(9, 9, 9)).AddChild(
			scene.NewNode("canvas", canvas).AddChild(
				scene.NewNode("button", child, &scene.XForm{}, quad("button")),
			),
		),
	)

	f.render(t, sc)

	// Near plane at distance 1 with a 90 degree fov is 4x2 at aspect 2.
	assert.InDelta(t, 4, canvas.ScreenSpaceSize.Size().X, 1e-4)
	assert.InDelta(t, 2, canvas.ScreenSpaceSize.Size().Y, 1e-4)
	assert.InDelta(t, 100, canvas.Scale.X, 1e-2)
	assert.InDelta(t, 100, canvas.Scale.Y, 1e-2)

	// Parent transforms are ignored; the button rect is (-1,0)-(2,1).
	require.Len(t, f.dev.Draws, 1)
	want := math.Translate(0, 0, -1.01).Mul(math.Translate(0.5, 0.5, 0)).Mul(math.Scale(3, 1, 1))
	got := paramMat(t, f.dev.Draws[0], shader.ParamModel)
	assert.True(t, got.ApproxEqual(want, 1e-3), "got %v", got)
}

func TestScreenCanvasOrthographicCamera(t *testing.T) {
	f := newFixture(t, Options{})
	f.r.Context().SetViewport(200, 100)

	cam := &scene.Camera{Projection: scene.Orthographic, OrthoHeight: 2, Near: 0.1, Far: 100}
	canvas := &scene.CanvasTransform{RenderMode: scene.CanvasScreen, Size: rect(0, 0, 400, 200)}
	child := &scene.RectTransform{Anchors: rect(0, 0, 1, 1), Offsets: rect(100, 100, 0, 0)}

	sc := scene.New("hud",
		scene.NewNode("camera", cam),
		scene.NewNode("canvas", canvas).AddChild(
			scene.NewNode("button", child, &scene.XForm{}, quad("button")),
		),
	)

	report := f.render(t, sc)
	require.NoError(t, report.Err())

	// OrthoHeight 2 at aspect 2 gives a 4x2 view volume.
	assert.InDelta(t, 4, canvas.ScreenSpaceSize.Size().X, 1e-4)
	assert.InDelta(t, 2, canvas.ScreenSpaceSize.Size().Y, 1e-4)
	assert.InDelta(t, 100, canvas.Scale.X, 1e-2)

	// The canvas sits just past the near plane at 0.1, not at a perspective-decoded depth.
	require.Len(t, f.dev.Draws, 1)
	want := math.Translate(0, 0, -0.1*screenCanvasOffset).Mul(math.Translate(0.5, 0.5, 0)).Mul(math.Scale(3, 1, 1))
	got := paramMat(t, f.dev.Draws[0], shader.ParamModel)
	assert.True(t, got.ApproxEqual(want, 1e-3), "got %v", got)
}

func TestScreenCanvasWithoutProjection(t *testing.T) {
	f := newFixture(t, Options{})
	canvas := &scene.CanvasTransform{RenderMode: scene.CanvasScreen, Size: rect(0, 0, 400, 300)}
	full := &scene.RectTransform{Anchors: rect(0, 0, 1, 1)}

	sc := scene.New("hud",
		scene.NewNode("canvas", canvas).AddChild(
			scene.NewNode("panel", full, &scene.XForm{}, quad("panel")),
		),
	)

	report := f.render(t, sc)

	require.Len(t, report.Diagnostics, 1)
	assert.ErrorIs(t, report.Err(), ErrNoScreenProjection)

	// Falls back to the 800x600 viewport.
	assert.InDelta(t, 800, canvas.ScreenSpaceSize.Size().X, 1e-4)
	assert.InDelta(t, 600, canvas.ScreenSpaceSize.Size().Y, 1e-4)
	assert.InDelta(t, 0.5, canvas.Scale.X, 1e-6)
	assert.InDelta(t, 0.5, canvas.Scale.Y, 1e-6)

	require.Len(t, f.dev.Draws, 1, "frame still completes")
	got := paramMat(t, f.dev.Draws[0], shader.ParamModel)
	for i, v := range got {
		assert.False(t, math32.IsNaN(v), "element %d is NaN", i)
	}
	assert.True(t, got.ApproxEqual(math.Scale(800, 600, 1), 1e-3), "got %v", got)
}
