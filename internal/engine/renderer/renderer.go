// Package renderer walks a scene once per frame, keeps the render state stack
// in step with the hierarchy and submits draws through a render.Context.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/camera"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/lighting"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/render"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/shader"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/logger"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

// LightingMode selects how lights reach the shading programs.
type LightingMode int

const (
	// PerLight issues one draw per active light with additive blending.
	PerLight LightingMode = iota
	// ArrayLights issues one draw with every light bound to the program.
	ArrayLights
)

// ParseLightingMode maps a configuration value to a mode.
func ParseLightingMode(s string) (LightingMode, error) {
	switch s {
	case "", "per_light":
		return PerLight, nil
	case "array":
		return ArrayLights, nil
	default:
		return PerLight, fmt.Errorf("unknown lighting mode %q", s)
	}
}

func (m LightingMode) String() string {
	if m == ArrayLights {
		return "array"
	}
	return "per_light"
}

// Options configures a SceneRenderer.
type Options struct {
	Lighting LightingMode
	// MaxArrayLights caps the array size independently of the device. Zero means no cap.
	MaxArrayLights int
}

// SceneRenderer renders scenes through a render context. It is used by one
// rendering thread; frame-local state is reused across frames.
type SceneRenderer struct {
	ctx      *render.Context
	programs *shader.Cache
	opts     Options

	stack stateStack
	bones map[*scene.Node]math.Mat4
	names lighting.ParamNames

	// influences remembers which weight data each skinned mesh carries.
	influences map[*scene.Mesh]influenceSource

	lights   []lighting.Resolved
	useArray bool
	report   *FrameReport
	frame    uint64

	// trace, when set, observes the parent's state before and after each subtree.
	trace func(n *scene.Node, before, after State)
}

// New creates a renderer. A nil program cache yields a cache without a
// builder, so every draw is reported as failed.
func New(ctx *render.Context, programs *shader.Cache, opts Options) *SceneRenderer {
	if programs == nil {
		programs = shader.NewCache(nil)
	}
	return &SceneRenderer{
		ctx:        ctx,
		programs:   programs,
		opts:       opts,
		bones:      make(map[*scene.Node]math.Mat4),
		influences: make(map[*scene.Mesh]influenceSource),
	}
}

// Context returns the render context.
func (r *SceneRenderer) Context() *render.Context {
	return r.ctx
}

// Frame returns the number of the last rendered frame.
func (r *SceneRenderer) Frame() uint64 {
	return r.frame
}

// Render draws one frame of sc. The light list is accumulated before any
// geometry is visited and stays fixed for the frame. Recoverable problems are
// collected in the report; only a missing context is an error.
func (r *SceneRenderer) Render(sc *scene.Scene) (FrameReport, error) {
	if r.ctx == nil {
		return FrameReport{}, ErrNoContext
	}

	r.frame++
	report := FrameReport{Frame: r.frame}
	r.report = &report
	defer func() { r.report = nil }()

	descriptors := lighting.Accumulate(sc)
	report.Lights = descriptors
	r.prepareLights(descriptors)
	report.ArrayLighting = r.useArray

	clear(r.bones)
	r.stack.reset(r.initialState())
	r.syncModel()

	if sc != nil {
		for _, root := range sc.Children {
			r.visit(root)
		}
	}

	if d := r.stack.depth(); d != 0 {
		panic(fmt.Sprintf("renderer: state stack unbalanced at depth %d", d))
	}
	return report, nil
}

func (r *SceneRenderer) initialState() State {
	w, h := r.ctx.Viewport()
	return State{
		Model:       math.Identity(),
		CanvasXForm: math.Identity(),
		UIRect:      math.MinMaxRect{Max: math.Vec2{X: float32(w), Y: float32(h)}},
		Material:    scene.DefaultMaterial(),
	}
}

// visit renders n and its subtree between a push and the matching pop.
func (r *SceneRenderer) visit(n *scene.Node) {
	if n == nil {
		return
	}
	r.report.Nodes++

	if r.trace != nil {
		before := *r.stack.top()
		defer func() { r.trace(n, before, *r.stack.top()) }()
	}

	r.stack.push()
	defer r.leave()

	var (
		meshes []*scene.Mesh
		weight *scene.Weight
		bone   bool
	)
	for _, c := range n.Components {
		switch c := c.(type) {
		case *scene.Transform:
			r.onTransform(c)
		case *scene.Camera:
			r.onCamera(c)
		case *scene.CanvasTransform:
			r.onCanvas(n, c)
		case *scene.RectTransform:
			r.onRect(c)
		case *scene.XForm:
			r.onXForm()
		case *scene.Material:
			if c != nil {
				r.stack.top().Material = c
			}
		case *scene.Bone:
			bone = true
		case *scene.Weight:
			weight = c
		case *scene.Light:
			// Collected by lighting.Accumulate before the walk.
		case *scene.Mesh:
			meshes = append(meshes, c)
		default:
			logger.Debug("unhandled component", zap.Stringer("kind", c.Kind()), zap.String("node", n.Name))
		}
	}

	if bone {
		r.bones[n] = r.stack.top().World()
	}
	for _, m := range meshes {
		r.onMesh(n, m, weight)
	}

	for _, child := range n.Children {
		r.visit(child)
	}
}

func (r *SceneRenderer) leave() {
	r.stack.pop()
	r.syncModel()
}

// syncModel hands the top state's world matrix to the context when it differs.
func (r *SceneRenderer) syncModel() {
	world := r.stack.top().World()
	if world != r.ctx.Model() {
		r.ctx.SetModel(world)
	}
}

func (r *SceneRenderer) onTransform(t *scene.Transform) {
	s := r.stack.top()
	s.Model = s.Model.Mul(t.Local())
	r.syncModel()
}

func (r *SceneRenderer) onCamera(c *scene.Camera) {
	w, h := r.ctx.Viewport()
	r.ctx.SetProjection(camera.Projection(c, w, h))
}

func (r *SceneRenderer) onMesh(n *scene.Node, m *scene.Mesh, w *scene.Weight) {
	if m.Inactive {
		return
	}

	var bones []math.Mat4
	if w != nil {
		bones = r.skin(n, m, w)
	}
	skinned := bones != nil

	mat := r.stack.top().Material
	slots := 1
	if r.useArray {
		slots = len(r.lights)
	}

	prog, err := r.programs.Get(shader.KeyFor(mat, skinned, slots))
	if err != nil {
		r.report.add(fmt.Errorf("node %q: %w", n.Name, err))
		return
	}
	if err := r.ctx.SetProgram(prog); err != nil {
		r.report.add(fmt.Errorf("node %q: binding program: %w", n.Name, err))
		return
	}
	r.setMaterialParams(mat)
	if skinned {
		r.ctx.SetBones(bones)
	}

	if r.useArray {
		r.drawArray(n, m)
	} else {
		r.drawPerLight(n, m)
	}
}

func (r *SceneRenderer) draw(n *scene.Node, m *scene.Mesh) {
	if err := r.ctx.Render(m); err != nil {
		r.report.add(fmt.Errorf("node %q: drawing mesh %q: %w", n.Name, m.Name, err))
		return
	}
	r.report.Draws++
}

func (r *SceneRenderer) setMaterialParams(m *scene.Material) {
	if d := m.Diffuse; d != nil {
		r.ctx.SetParam(shader.ParamDiffuseColor, d.Color)
		if d.Texture != "" {
			r.ctx.SetParam(shader.ParamDiffuseTexture, d.Texture)
			r.ctx.SetParam(shader.ParamDiffuseMix, d.Mix)
		}
	}
	if s := m.Specular; s != nil {
		r.ctx.SetParam(shader.ParamSpecularColor, s.Color)
		r.ctx.SetParam(shader.ParamSpecularShininess, s.Shininess)
		r.ctx.SetParam(shader.ParamSpecularIntensity, s.Intensity)
	}
	if e := m.Emissive; e != nil {
		r.ctx.SetParam(shader.ParamEmissiveColor, e.Color)
		if e.Texture != "" {
			r.ctx.SetParam(shader.ParamEmissiveTexture, e.Texture)
			r.ctx.SetParam(shader.ParamEmissiveMix, e.Mix)
		}
	}
	if b := m.Bump; b != nil && b.Texture != "" {
		r.ctx.SetParam(shader.ParamBumpTexture, b.Texture)
		r.ctx.SetParam(shader.ParamBumpIntensity, b.Intensity)
	}
}
