package renderer

import (
	"go.uber.org/zap"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/lighting"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/render"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/logger"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
)

// prepareLights resolves the frame's lights against the current View and
// sizes the parameter name cache for the slots one program addresses.
func (r *SceneRenderer) prepareLights(descriptors []lighting.Descriptor) {
	view := r.ctx.View()
	r.lights = r.lights[:0]
	for _, d := range descriptors {
		r.lights = append(r.lights, d.Resolve(view))
	}

	r.useArray = false
	if r.opts.Lighting == ArrayLights {
		limit := r.ctx.Capability(render.CapMaxLights)
		if r.opts.MaxArrayLights > 0 && r.opts.MaxArrayLights < limit {
			limit = r.opts.MaxArrayLights
		}
		if len(r.lights) <= limit {
			r.useArray = true
		} else {
			logger.Debug("too many lights for one program, drawing per light",
				zap.Int("lights", len(r.lights)),
				zap.Int("limit", limit),
			)
		}
	}

	slots := 1
	if r.useArray {
		slots = len(r.lights)
	}
	r.names.Ensure(slots)
}

// drawPerLight issues one draw per active light. Each light is bound to slot 0
// of a single-light program; the first draw replaces the target and later
// draws add to it.
func (r *SceneRenderer) drawPerLight(n *scene.Node, m *scene.Mesh) {
	blend := render.BlendOpaque
	for i := range r.lights {
		l := &r.lights[i]
		if !l.Active {
			continue
		}
		r.pushLight(0, l)
		r.ctx.SetBlend(blend)
		r.draw(n, m)
		blend = render.BlendAdditive
	}
}

// drawArray binds every light to its own slot and issues a single draw.
func (r *SceneRenderer) drawArray(n *scene.Node, m *scene.Mesh) {
	for i := range r.lights {
		r.pushLight(i, &r.lights[i])
	}
	r.ctx.SetBlend(render.BlendOpaque)
	r.draw(n, m)
}

func (r *SceneRenderer) pushLight(slot int, l *lighting.Resolved) {
	for _, f := range lighting.Fields {
		r.ctx.SetParam(r.names.Name(slot, f), l.Value(f))
	}
}
