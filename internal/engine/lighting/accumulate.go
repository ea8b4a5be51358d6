package lighting

import (
	"go.uber.org/zap"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/logger"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

// Accumulate walks the whole scene, independent of the render walk, and returns
// one descriptor per Light component in traversal order. A scene without lights
// yields exactly one Legacy descriptor.
//
// Light placement composes Transform components only. UI layout (canvas, rect
// and xform) depends on the viewport and the camera of the render walk, so a
// light below a canvas is placed as if the UI nodes were plain groups.
func Accumulate(sc *scene.Scene) []Descriptor {
	var lights []Descriptor
	if sc != nil {
		for _, root := range sc.Children {
			lights = accumulate(root, math.Identity(), lights)
		}
	}

	if len(lights) == 0 {
		return []Descriptor{Legacy()}
	}
	return lights
}

func accumulate(n *scene.Node, parent math.Mat4, lights []Descriptor) []Descriptor {
	if n == nil {
		return lights
	}

	model := parent
	for _, c := range n.Components {
		if t, ok := c.(*scene.Transform); ok {
			model = model.Mul(t.Local())
		}
	}

	for _, c := range n.Components {
		if l, ok := c.(*scene.Light); ok {
			lights = append(lights, describe(n.Name, l, model))
		}
	}

	for _, child := range n.Children {
		lights = accumulate(child, model, lights)
	}
	return lights
}

func describe(name string, l *scene.Light, model math.Mat4) Descriptor {
	return Descriptor{
		Name:             name,
		Type:             l.Type,
		Color:            l.Color,
		Strength:         clampStrength(name, l.Strength),
		MaxDistance:      l.MaxDistance,
		InnerConeAngle:   l.InnerConeAngle,
		OuterConeAngle:   l.OuterConeAngle,
		Active:           l.Active,
		IsCastingShadows: l.IsCastingShadows,
		Bias:             l.Bias,
		Model:            model,
		PositionWorld:    model.Translation(),
		DirectionWorld:   model.TransformDirection(forward).Normalize(),
	}
}

// clampStrength limits strength to [0, 1] and reports out-of-range values.
func clampStrength(name string, s float32) float32 {
	clamped := s
	if clamped > 1 {
		clamped = 1
	} else if clamped < 0 {
		clamped = 0
	}
	if clamped != s {
		logger.Warn("light strength out of range, clamped",
			zap.String("light", name),
			zap.Float32("strength", s),
			zap.Float32("applied", clamped),
		)
	}
	return clamped
}
