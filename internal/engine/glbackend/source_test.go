package glbackend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/lighting"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/shader"
)

// declared reports whether src declares a uniform whose name matches the
// parameter, ignoring array and struct suffixes.
func declared(src, param string) bool {
	base := param
	if i := strings.IndexAny(base, "[."); i >= 0 {
		base = base[:i]
	}
	return strings.Contains(src, " "+base+";") || strings.Contains(src, " "+base+"[")
}

func TestSourcesDeclareMaterialParams(t *testing.T) {
	key := shader.Key{Diffuse: true, DiffuseTexture: true, Specular: true, Emissive: true, Bump: true, Lights: 3}
	vs, fs := vertexSource(key, 8), fragmentSource(key)

	for _, p := range []string{
		shader.ParamDiffuseColor, shader.ParamDiffuseTexture, shader.ParamDiffuseMix,
		shader.ParamSpecularColor, shader.ParamSpecularShininess, shader.ParamSpecularIntensity,
		shader.ParamEmissiveColor, shader.ParamBumpTexture, shader.ParamBumpIntensity,
	} {
		assert.True(t, declared(fs, p), "fragment stage misses %s", p)
	}
	assert.False(t, declared(fs, shader.ParamEmissiveTexture))

	for _, p := range []string{shader.ParamModelView, shader.ParamModelViewProjection, shader.ParamInvTransModelView} {
		assert.True(t, declared(vs, p), "vertex stage misses %s", p)
	}

	assert.Contains(t, fs, "uniform Light allLights[3];")
	for _, f := range lighting.Fields {
		assert.Contains(t, fs, " "+f.String()+";")
	}
}

func TestSourcesWithoutLights(t *testing.T) {
	fs := fragmentSource(shader.Key{Emissive: true})
	assert.NotContains(t, fs, "allLights")
	assert.NotContains(t, fs, "shade(")
	assert.Contains(t, fs, "color += emissive.rgb;")
}

func TestSkinnedVertexSource(t *testing.T) {
	vs := vertexSource(shader.Key{Skinned: true, Lights: 1}, 32)

	assert.Contains(t, vs, "uniform mat4 FUSEE_BONES[32];")
	assert.True(t, declared(vs, shader.ParamView))
	assert.True(t, declared(vs, shader.ParamProjection))
	assert.False(t, declared(vs, shader.ParamModelViewProjection))
	assert.Contains(t, vs, "in vec4 fuBoneWeight;")
}

func TestSpecularOnlyWhenKeyed(t *testing.T) {
	assert.NotContains(t, fragmentSource(shader.Key{Lights: 1}), "pow(")
	assert.Contains(t, fragmentSource(shader.Key{Specular: true, Lights: 1}), "pow(")
}

func TestEveryLightFieldHasGLSLType(t *testing.T) {
	for _, f := range lighting.Fields {
		assert.NotEmpty(t, glslTypes[f], f.String())
	}
}
