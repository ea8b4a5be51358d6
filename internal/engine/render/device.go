// Package render defines the graphics submission boundary and the render context
// that keeps model, view and projection matrices and their derivatives coherent.
package render

import (
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/shader"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
)

// BlendMode selects how a draw combines with the framebuffer.
type BlendMode int

const (
	// BlendOpaque overwrites the target.
	BlendOpaque BlendMode = iota
	// BlendAdditive adds the draw to the target, used for lights after the first.
	BlendAdditive
)

// Capability is a hardware limit or feature queried from a Device.
type Capability int

const (
	// CapMaxLights is the number of lights a single program may address.
	CapMaxLights Capability = iota
	// CapMaxBones is the size of the bone matrix array.
	CapMaxBones
	// CapSkinning is non-zero when vertex skinning is supported.
	CapSkinning
)

// Device is the native graphics collaborator. The core never issues API calls
// directly; every state change and draw goes through this interface.
//
// SetParam values are float32, int32, math.Vec3, math.Vec4, math.Mat4, or a
// string naming a texture.
type Device interface {
	SetProgram(p *shader.Program) error
	SetParam(name string, value any)
	SetBlend(mode BlendMode)
	Render(m *scene.Mesh) error
	Capability(c Capability) int
}
