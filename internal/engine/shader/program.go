// Package shader memoizes shading programs assembled for material configurations
// and answers which named parameters a program declares.
package shader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
)

// Key describes a material configuration. Equal keys share one program.
type Key struct {
	Diffuse         bool
	DiffuseTexture  bool
	Specular        bool
	Emissive        bool
	EmissiveTexture bool
	Bump            bool
	Skinned         bool
	// Lights is the number of lights the program addresses in one draw.
	Lights int
}

// KeyFor derives the program key of a material.
func KeyFor(m *scene.Material, skinned bool, lights int) Key {
	k := Key{Skinned: skinned, Lights: lights}
	if m == nil {
		return k
	}
	if m.Diffuse != nil {
		k.Diffuse = true
		k.DiffuseTexture = m.Diffuse.Texture != ""
	}
	if m.Specular != nil {
		k.Specular = true
	}
	if m.Emissive != nil {
		k.Emissive = true
		k.EmissiveTexture = m.Emissive.Texture != ""
	}
	if m.Bump != nil && m.Bump.Texture != "" {
		k.Bump = true
	}
	return k
}

// String returns a compact stable identifier, e.g. "D|DT|S|L2".
func (k Key) String() string {
	var parts []string
	flag := func(on bool, s string) {
		if on {
			parts = append(parts, s)
		}
	}
	flag(k.Diffuse, "D")
	flag(k.DiffuseTexture, "DT")
	flag(k.Specular, "S")
	flag(k.Emissive, "E")
	flag(k.EmissiveTexture, "ET")
	flag(k.Bump, "B")
	flag(k.Skinned, "SK")
	parts = append(parts, fmt.Sprintf("L%d", k.Lights))
	return strings.Join(parts, "|")
}

// Program is an opaque built program plus the parameter names it declares.
type Program struct {
	Key    Key
	Handle uint32
	params map[string]struct{}
}

// NewProgram wraps a device handle with its declared parameters.
func NewProgram(key Key, handle uint32, params []string) *Program {
	p := &Program{Key: key, Handle: handle, params: make(map[string]struct{}, len(params))}
	for _, name := range params {
		p.params[name] = struct{}{}
	}
	return p
}

// Has reports whether the program declares the named parameter.
func (p *Program) Has(name string) bool {
	if p == nil {
		return false
	}
	_, ok := p.params[name]
	return ok
}

// Params returns the declared parameter names, sorted.
func (p *Program) Params() []string {
	names := make([]string, 0, len(p.params))
	for name := range p.params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
