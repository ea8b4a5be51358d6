package render

import (
	"errors"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/shader"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

// ErrNoDevice is returned when a Context has no graphics device to submit to.
var ErrNoDevice = errors.New("render: no graphics device")

// Context is the render context used by one rendering thread. It holds the
// settable Model, View, Projection and bone matrices and lazily derives
// ModelView, ModelViewProjection and the inverse, transpose and
// inverse-transpose variants of View, ModelView, Projection and
// ModelViewProjection. A derived matrix is recomputed only when read after
// one of its inputs changed.
//
// Matrices are column-major and vectors are columns, so
// ModelViewProjection = Projection × View × Model.
//
// Whenever a matrix changes or the bound program changes, every matrix the
// program declares a parameter for is pushed to the device. Parameters the
// program does not declare are skipped.
type Context struct {
	dev     Device
	program *shader.Program

	viewportWidth  int
	viewportHeight int

	m [numMatrices]math.Mat4
	// dirty marks derived matrices whose cached value is stale.
	dirty matrixSet

	bones      []math.Mat4
	boneParams []string

	recomputes int
}

// NewContext creates a context submitting to dev.
func NewContext(dev Device) (*Context, error) {
	if dev == nil {
		return nil, ErrNoDevice
	}
	c := &Context{dev: dev}
	c.m[Model] = math.Identity()
	c.m[View] = math.Identity()
	c.m[Projection] = math.Identity()
	c.dirty = allDerived
	return c, nil
}

// Device returns the underlying graphics device.
func (c *Context) Device() Device {
	return c.dev
}

// SetViewport records the viewport size in pixels.
func (c *Context) SetViewport(width, height int) {
	c.viewportWidth = width
	c.viewportHeight = height
}

// Viewport returns the viewport size in pixels.
func (c *Context) Viewport() (width, height int) {
	return c.viewportWidth, c.viewportHeight
}

// Aspect returns width/height of the viewport, or 1 for an empty viewport.
func (c *Context) Aspect() float32 {
	if c.viewportWidth <= 0 || c.viewportHeight <= 0 {
		return 1
	}
	return float32(c.viewportWidth) / float32(c.viewportHeight)
}

// SetModel sets the model matrix.
func (c *Context) SetModel(m math.Mat4) {
	c.m[Model] = m
	c.invalidate(dependsOnModel)
	c.push(dependsOnModel | Model.bit())
}

// SetView sets the view matrix.
func (c *Context) SetView(m math.Mat4) {
	c.m[View] = m
	c.invalidate(dependsOnView)
	c.push(dependsOnView | View.bit())
}

// SetProjection sets the projection matrix.
func (c *Context) SetProjection(m math.Mat4) {
	c.m[Projection] = m
	c.invalidate(dependsOnProjection)
	c.push(dependsOnProjection | Projection.bit())
}

// SetModelView sets ModelView directly and back-derives Model = InvView × mv so
// later reads stay consistent with the View.
func (c *Context) SetModelView(mv math.Mat4) {
	c.m[Model] = c.get(InvView).Mul(mv)
	c.invalidate(dependsOnModel)
	c.m[ModelView] = mv
	c.dirty &^= ModelView.bit()
	c.push(dependsOnModel | Model.bit())
}

// SetBones sets the skeletal bone matrices. Bones are independent of the
// derived matrices and only pushed.
func (c *Context) SetBones(bones []math.Mat4) {
	c.bones = bones
	c.pushBones()
}

// Bones returns the current bone matrices.
func (c *Context) Bones() []math.Mat4 {
	return c.bones
}

// Get returns a settable or derived matrix, recomputing it if stale.
func (c *Context) Get(m Matrix) math.Mat4 {
	if m < 0 || m >= numMatrices {
		return math.Identity()
	}
	return c.get(m)
}

func (c *Context) Model() math.Mat4                       { return c.get(Model) }
func (c *Context) View() math.Mat4                        { return c.get(View) }
func (c *Context) Projection() math.Mat4                  { return c.get(Projection) }
func (c *Context) ModelView() math.Mat4                   { return c.get(ModelView) }
func (c *Context) ModelViewProjection() math.Mat4         { return c.get(ModelViewProjection) }
func (c *Context) InvView() math.Mat4                     { return c.get(InvView) }
func (c *Context) InvModelView() math.Mat4                { return c.get(InvModelView) }
func (c *Context) InvProjection() math.Mat4               { return c.get(InvProjection) }
func (c *Context) InvModelViewProjection() math.Mat4      { return c.get(InvModelViewProjection) }
func (c *Context) TransView() math.Mat4                   { return c.get(TransView) }
func (c *Context) TransModelView() math.Mat4              { return c.get(TransModelView) }
func (c *Context) TransProjection() math.Mat4             { return c.get(TransProjection) }
func (c *Context) TransModelViewProjection() math.Mat4    { return c.get(TransModelViewProjection) }
func (c *Context) InvTransView() math.Mat4                { return c.get(InvTransView) }
func (c *Context) InvTransModelView() math.Mat4           { return c.get(InvTransModelView) }
func (c *Context) InvTransProjection() math.Mat4          { return c.get(InvTransProjection) }
func (c *Context) InvTransModelViewProjection() math.Mat4 { return c.get(InvTransModelViewProjection) }

// Valid reports whether the cached value of m is current.
func (c *Context) Valid(m Matrix) bool {
	return c.dirty&m.bit() == 0
}

// Recomputes returns how many derived matrices have been recomputed so far.
func (c *Context) Recomputes() int {
	return c.recomputes
}

func (c *Context) get(m Matrix) math.Mat4 {
	if m < firstDerived || c.dirty&m.bit() == 0 {
		return c.m[m]
	}

	var v math.Mat4
	switch m {
	case ModelView:
		v = c.m[View].Mul(c.m[Model])
	case ModelViewProjection:
		v = c.m[Projection].Mul(c.get(ModelView))
	case InvView:
		v = c.m[View].Inverse()
	case InvModelView:
		v = c.get(ModelView).Inverse()
	case InvProjection:
		v = c.m[Projection].Inverse()
	case InvModelViewProjection:
		v = c.get(ModelViewProjection).Inverse()
	case TransView:
		v = c.m[View].Transpose()
	case TransModelView:
		v = c.get(ModelView).Transpose()
	case TransProjection:
		v = c.m[Projection].Transpose()
	case TransModelViewProjection:
		v = c.get(ModelViewProjection).Transpose()
	case InvTransView:
		v = c.get(InvView).Transpose()
	case InvTransModelView:
		v = c.get(InvModelView).Transpose()
	case InvTransProjection:
		v = c.get(InvProjection).Transpose()
	case InvTransModelViewProjection:
		v = c.get(InvModelViewProjection).Transpose()
	}

	c.m[m] = v
	c.dirty &^= m.bit()
	c.recomputes++
	return v
}

func (c *Context) invalidate(s matrixSet) {
	c.dirty |= s
}

// push sends the matrices in s that the bound program declares.
func (c *Context) push(s matrixSet) {
	if c.program == nil {
		return
	}
	for m := Model; m < numMatrices; m++ {
		if s&m.bit() == 0 {
			continue
		}
		name := paramNames[m]
		if !c.program.Has(name) {
			continue
		}
		c.dev.SetParam(name, c.get(m))
	}
}

func (c *Context) pushBones() {
	if c.program == nil {
		return
	}
	for len(c.boneParams) < len(c.bones) {
		c.boneParams = append(c.boneParams, shader.BoneParam(len(c.boneParams)))
	}
	for i, b := range c.bones {
		if !c.program.Has(c.boneParams[i]) {
			continue
		}
		c.dev.SetParam(c.boneParams[i], b)
	}
}

// SetProgram binds p and pushes every matrix it declares. Rebinding the
// current program is a no-op.
func (c *Context) SetProgram(p *shader.Program) error {
	if p == c.program {
		return nil
	}
	if err := c.dev.SetProgram(p); err != nil {
		return err
	}
	c.program = p
	c.push(allMatrices)
	c.pushBones()
	return nil
}

// Program returns the bound program.
func (c *Context) Program() *shader.Program {
	return c.program
}

// SetParam pushes a named value if the bound program declares it and reports
// whether it was sent.
func (c *Context) SetParam(name string, value any) bool {
	if !c.program.Has(name) {
		return false
	}
	c.dev.SetParam(name, value)
	return true
}

// SetBlend sets the blend mode of subsequent draws.
func (c *Context) SetBlend(mode BlendMode) {
	c.dev.SetBlend(mode)
}

// Capability queries a device capability.
func (c *Context) Capability(cap Capability) int {
	return c.dev.Capability(cap)
}

// Render submits a mesh with the current state.
func (c *Context) Render(m *scene.Mesh) error {
	return c.dev.Render(m)
}
