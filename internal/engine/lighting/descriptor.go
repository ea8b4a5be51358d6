// Package lighting collects the lights of a scene once per frame and resolves
// their shader-facing parameters.
package lighting

import (
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

// forward is the local axis a light shines along.
var forward = math.Vec3{Z: 1}

// Descriptor is a light resolved for one frame.
type Descriptor struct {
	Name             string
	Type             scene.LightType
	Color            math.Vec4
	Strength         float32
	MaxDistance      float32
	InnerConeAngle   float32
	OuterConeAngle   float32
	Active           bool
	IsCastingShadows bool
	Bias             float32

	// Model is the accumulated world transform at the light's node.
	Model          math.Mat4
	PositionWorld  math.Vec3
	DirectionWorld math.Vec3
}

// Resolved carries a descriptor plus its view-space placement for the current View.
type Resolved struct {
	Descriptor
	Position  math.Vec3
	Direction math.Vec3
}

// Resolve converts the light into the view space of view. Legacy lights are
// attached to the camera: they sit at the view-space origin facing +Z and their
// world-space placement follows the inverse view.
func (d Descriptor) Resolve(view math.Mat4) Resolved {
	r := Resolved{Descriptor: d}
	if d.Type == scene.LegacyLight {
		invView := view.Inverse()
		r.Position = math.Vec3{}
		r.Direction = forward
		r.PositionWorld = invView.Translation()
		r.DirectionWorld = invView.TransformDirection(forward).Normalize()
		return r
	}
	r.Position = view.TransformVec3(d.PositionWorld)
	r.Direction = view.TransformDirection(d.DirectionWorld).Normalize()
	return r
}

// Legacy returns the synthetic camera-attached light used when a scene has none.
func Legacy() Descriptor {
	return Descriptor{
		Name:           "legacy",
		Type:           scene.LegacyLight,
		Color:          math.Vec4{X: 1, Y: 1, Z: 1, W: 1},
		Strength:       1,
		Active:         true,
		Model:          math.Identity(),
		DirectionWorld: forward,
	}
}
