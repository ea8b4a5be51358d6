package shader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
)

func countingBuilder(calls *int) Builder {
	return BuilderFunc(func(k Key) (*Program, error) {
		*calls++
		return NewProgram(k, uint32(*calls), StandardParams(k)), nil
	})
}

func TestKeyFor(t *testing.T) {
	m := &scene.Material{
		Diffuse:  &scene.MatChannel{Texture: "albedo.png"},
		Emissive: &scene.MatChannel{},
		Bump:     &scene.BumpChannel{},
	}

	k := KeyFor(m, true, 2)

	assert.Equal(t, Key{Diffuse: true, DiffuseTexture: true, Emissive: true, Skinned: true, Lights: 2}, k)
	assert.Equal(t, "D|DT|E|SK|L2", k.String())
	assert.Equal(t, Key{Lights: 1}, KeyFor(nil, false, 1))
}

func TestCacheMemoizes(t *testing.T) {
	calls := 0
	c := NewCache(countingBuilder(&calls))
	key := KeyFor(scene.DefaultMaterial(), false, 1)

	p1, err := c.Get(key)
	require.NoError(t, err)
	p2, err := c.Get(key)
	require.NoError(t, err)

	assert.Same(t, p1, p2)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.Builds())

	_, err = c.Get(KeyFor(scene.DefaultMaterial(), true, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestCacheBuildError(t *testing.T) {
	boom := errors.New("link failed")
	c := NewCache(BuilderFunc(func(Key) (*Program, error) { return nil, boom }))

	_, err := c.Get(Key{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestCacheWithoutBuilder(t *testing.T) {
	_, err := NewCache(nil).Get(Key{})
	assert.ErrorIs(t, err, ErrNoBuilder)
}

func TestProgramHas(t *testing.T) {
	p := NewProgram(Key{}, 7, []string{ParamModelViewProjection, "DiffuseColor"})

	assert.True(t, p.Has(ParamModelViewProjection))
	assert.False(t, p.Has(ParamInvTransModelViewProjection))
	assert.Equal(t, []string{"DiffuseColor", "FUSEE_MVP"}, p.Params())

	var none *Program
	assert.False(t, none.Has(ParamModel))
}

func TestStandardParams(t *testing.T) {
	p := NewProgram(Key{}, 1, StandardParams(Key{Diffuse: true, Specular: true, Skinned: true, Lights: 2}))

	assert.True(t, p.Has("allLights[1].direction"))
	assert.False(t, p.Has("allLights[2].direction"))
	assert.True(t, p.Has("FUSEE_BONES[0]"))
	assert.True(t, p.Has(BoneParam(MaxBones-1)))
	assert.True(t, p.Has(ParamSpecularShininess))
	assert.False(t, p.Has(ParamEmissiveColor))
	assert.True(t, p.Has(ParamInvTransModelView))
}
