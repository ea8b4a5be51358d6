package scene

import "github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"

// MatChannel is a color channel with an optional texture.
type MatChannel struct {
	Color   math.Vec4
	Texture string
	// Mix blends the texture over Color, 0..1.
	Mix float32
}

// SpecularChannel adds highlight parameters to a MatChannel.
type SpecularChannel struct {
	MatChannel
	Shininess float32
	Intensity float32
}

// BumpChannel is a normal map.
type BumpChannel struct {
	Texture   string
	Intensity float32
}

// Material describes the surface of the meshes in its subtree.
// Nil channels are absent from the generated shading program.
type Material struct {
	Name     string
	Diffuse  *MatChannel
	Specular *SpecularChannel
	Emissive *MatChannel
	Bump     *BumpChannel
}

var defaultMaterial = &Material{
	Name: "default",
	Diffuse: &MatChannel{
		Color: math.Vec4{X: 0.5, Y: 0.5, Z: 0.5, W: 1},
	},
	Specular: &SpecularChannel{
		MatChannel: MatChannel{Color: math.Vec4{X: 1, Y: 1, Z: 1, W: 1}},
		Shininess:  22,
		Intensity:  0.2,
	},
}

// DefaultMaterial returns the process-wide material used by meshes that have none.
// Callers must not modify it.
func DefaultMaterial() *Material {
	return defaultMaterial
}
