// Package rendertest provides a recording render.Device for tests.
package rendertest

import (
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/render"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/shader"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
)

// Draw is one recorded Render call with the state it observed.
type Draw struct {
	Mesh    *scene.Mesh
	Program *shader.Program
	Blend   render.BlendMode
	// Params is a snapshot of every parameter value set so far.
	Params map[string]any
}

// Param returns a parameter value seen by the draw.
func (d Draw) Param(name string) (any, bool) {
	v, ok := d.Params[name]
	return v, ok
}

// ParamSet is one recorded SetParam call.
type ParamSet struct {
	Name  string
	Value any
}

// Device records everything the core sends across the graphics boundary.
type Device struct {
	Caps map[render.Capability]int
	// RenderErr, when set, is returned from every Render call.
	RenderErr error

	Program   *shader.Program
	Blend     render.BlendMode
	Params    map[string]any
	Sets      []ParamSet
	Draws     []Draw
	Programs  int
	BlendSets []render.BlendMode
}

// NewDevice returns a device reporting generous capabilities.
func NewDevice() *Device {
	return &Device{
		Caps: map[render.Capability]int{
			render.CapMaxLights: 8,
			render.CapMaxBones:  shader.MaxBones,
			render.CapSkinning:  1,
		},
		Params: make(map[string]any),
	}
}

func (d *Device) SetProgram(p *shader.Program) error {
	d.Program = p
	d.Programs++
	return nil
}

func (d *Device) SetParam(name string, value any) {
	d.Params[name] = value
	d.Sets = append(d.Sets, ParamSet{Name: name, Value: value})
}

func (d *Device) SetBlend(mode render.BlendMode) {
	d.Blend = mode
	d.BlendSets = append(d.BlendSets, mode)
}

func (d *Device) Render(m *scene.Mesh) error {
	if d.RenderErr != nil {
		return d.RenderErr
	}
	snapshot := make(map[string]any, len(d.Params))
	for k, v := range d.Params {
		snapshot[k] = v
	}
	d.Draws = append(d.Draws, Draw{Mesh: m, Program: d.Program, Blend: d.Blend, Params: snapshot})
	return nil
}

func (d *Device) Capability(c render.Capability) int {
	return d.Caps[c]
}

// SetsOf returns the values pushed for name, in order.
func (d *Device) SetsOf(name string) []any {
	var out []any
	for _, s := range d.Sets {
		if s.Name == name {
			out = append(out, s.Value)
		}
	}
	return out
}

// Reset clears recorded calls but keeps capabilities.
func (d *Device) Reset() {
	d.Program = nil
	d.Blend = render.BlendOpaque
	d.Params = make(map[string]any)
	d.Sets = nil
	d.Draws = nil
	d.Programs = 0
	d.BlendSets = nil
}

// Builder builds programs that declare the standard parameter set of their key.
type Builder struct {
	Built []shader.Key
	// Extra parameters declared by every program.
	Extra []string
}

func (b *Builder) Build(key shader.Key) (*shader.Program, error) {
	b.Built = append(b.Built, key)
	params := append(shader.StandardParams(key), b.Extra...)
	return shader.NewProgram(key, uint32(len(b.Built)), params), nil
}

// Program returns a program declaring exactly params.
func Program(params ...string) *shader.Program {
	return shader.NewProgram(shader.Key{}, 1, params)
}
