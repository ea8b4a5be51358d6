// Package glbackend implements the render device and program builder on an
// OpenGL 4.1 core context.
package glbackend

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/render"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/shader"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/texture"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/logger"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

// ErrNoProgram is returned by Render before any program was bound.
var ErrNoProgram = errors.New("glbackend: no program bound")

// uniformReserve is the number of vertex uniform components kept free for the
// view and projection matrices when sizing the bone palette.
const uniformReserve = 4 * 16

// Config holds device configuration.
type Config struct {
	Width  int
	Height int
	// MaxLights caps the lights one generated program addresses.
	MaxLights int
	// TextureDir resolves relative texture names.
	TextureDir string
	ClearColor math.Vec4
}

// Device issues every state change and draw of the render core to OpenGL.
// It must be created and used on the thread that owns the GL context.
type Device struct {
	cfg      Config
	maxBones int

	program  *shader.Program
	programs []uint32
	blend    render.BlendMode

	uniforms map[uint32]map[string]int32
	meshes   map[*scene.Mesh]*meshBuffers
	textures map[string]uint32
	units    map[string]int32
	white    uint32
}

var (
	_ render.Device  = (*Device)(nil)
	_ shader.Builder = (*Device)(nil)
)

// New creates a device over the current GL context.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing OpenGL")
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	d := &Device{
		cfg:      cfg,
		uniforms: make(map[uint32]map[string]int32),
		meshes:   make(map[*scene.Mesh]*meshBuffers),
		textures: make(map[string]uint32),
		units:    make(map[string]int32),
	}

	var comps int32
	gl.GetIntegerv(gl.MAX_VERTEX_UNIFORM_COMPONENTS, &comps)
	d.maxBones = min(shader.MaxBones, max(0, int(comps-uniformReserve)/16))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	c := cfg.ClearColor
	gl.ClearColor(c.X, c.Y, c.Z, c.W)

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(white.Pix, []byte{255, 255, 255, 255})
	d.white = uploadTexture(white)

	d.Resize(cfg.Width, cfg.Height)

	logger.Debug("device created",
		zap.Int("max_bones", d.maxBones),
		zap.Int("max_lights", cfg.MaxLights),
	)
	return d, nil
}

// Close releases every GL object the device created.
func (d *Device) Close() {
	logger.Info("closing device")
	for _, b := range d.meshes {
		b.delete()
	}
	for _, tex := range d.textures {
		if tex != d.white {
			gl.DeleteTextures(1, &tex)
		}
	}
	gl.DeleteTextures(1, &d.white)
	for _, p := range d.programs {
		gl.DeleteProgram(p)
	}
	d.meshes = nil
	d.textures = nil
	d.programs = nil
}

// Resize updates the GL viewport.
func (d *Device) Resize(width, height int) {
	d.cfg.Width = width
	d.cfg.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("device resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin clears the bound target and resets blending for a new frame.
func (d *Device) Begin() {
	d.SetBlend(render.BlendOpaque)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Build compiles the generated program for key.
func (d *Device) Build(key shader.Key) (*shader.Program, error) {
	handle, err := compileProgram(vertexSource(key, max(1, d.maxBones)), fragmentSource(key))
	if err != nil {
		return nil, errors.Wrapf(err, "program %s", key)
	}
	d.programs = append(d.programs, handle)
	logger.Debug("program compiled", zap.Stringer("key", key), zap.Uint32("handle", handle))
	return shader.NewProgram(key, handle, shader.StandardParams(key)), nil
}

// SetProgram binds p for the following parameters and draws.
func (d *Device) SetProgram(p *shader.Program) error {
	if p == nil {
		return errors.New("glbackend: nil program")
	}
	gl.UseProgram(p.Handle)
	d.program = p
	return nil
}

// SetParam uploads value to the named uniform of the bound program. Names the
// compiler optimized away are ignored.
func (d *Device) SetParam(name string, value any) {
	if d.program == nil {
		return
	}
	loc := d.location(name)
	if loc < 0 {
		return
	}

	switch v := value.(type) {
	case float32:
		gl.Uniform1f(loc, v)
	case int32:
		gl.Uniform1i(loc, v)
	case math.Vec3:
		gl.Uniform3f(loc, v.X, v.Y, v.Z)
	case math.Vec4:
		gl.Uniform4f(loc, v.X, v.Y, v.Z, v.W)
	case math.Mat4:
		gl.UniformMatrix4fv(loc, 1, false, &v[0])
	case string:
		d.bindTexture(name, loc, v)
	default:
		logger.Debug("unsupported parameter value",
			zap.String("name", name),
			zap.String("type", fmt.Sprintf("%T", value)),
		)
	}
}

func (d *Device) location(name string) int32 {
	h := d.program.Handle
	locs := d.uniforms[h]
	if locs == nil {
		locs = make(map[string]int32)
		d.uniforms[h] = locs
	}
	loc, ok := locs[name]
	if !ok {
		loc = gl.GetUniformLocation(h, gl.Str(name+"\x00"))
		locs[name] = loc
	}
	return loc
}

// SetBlend switches between replacing and adding to the target. Additive
// passes test against the depth of the first pass without writing it.
func (d *Device) SetBlend(mode render.BlendMode) {
	if mode == d.blend {
		return
	}
	d.blend = mode
	switch mode {
	case render.BlendAdditive:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.ONE, gl.ONE)
		gl.DepthFunc(gl.LEQUAL)
		gl.DepthMask(false)
	default:
		gl.Disable(gl.BLEND)
		gl.DepthFunc(gl.LESS)
		gl.DepthMask(true)
	}
}

// Render draws m with the bound program, uploading its buffers on first use
// and whenever its revision changes.
func (d *Device) Render(m *scene.Mesh) error {
	if d.program == nil {
		return ErrNoProgram
	}
	if len(m.Vertices) == 0 {
		return nil
	}

	buf := d.meshes[m]
	if buf == nil || buf.revision != m.Revision {
		if buf != nil {
			buf.delete()
		}
		buf = uploadMesh(m)
		d.meshes[m] = buf
	}

	gl.BindVertexArray(buf.vao)
	if buf.indexed {
		gl.DrawElementsWithOffset(gl.TRIANGLES, buf.count, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, buf.count)
	}
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return errors.Errorf("drawing %q: gl error 0x%x", m.Name, code)
	}
	return nil
}

// Capability reports device limits.
func (d *Device) Capability(c render.Capability) int {
	switch c {
	case render.CapMaxLights:
		return d.cfg.MaxLights
	case render.CapMaxBones:
		return d.maxBones
	case render.CapSkinning:
		if d.maxBones > 0 {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// bindTexture binds the texture named by path to the sampler uniform at loc.
// Each sampler name keeps its own texture unit.
func (d *Device) bindTexture(name string, loc int32, path string) {
	unit, ok := d.units[name]
	if !ok {
		unit = int32(len(d.units))
		d.units[name] = unit
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, d.texture(path))
	gl.Uniform1i(loc, unit)
}

// texture returns the uploaded texture for path. Textures that fail to load
// are replaced by a white texel once and not retried.
func (d *Device) texture(path string) uint32 {
	if tex, ok := d.textures[path]; ok {
		return tex
	}

	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(d.cfg.TextureDir, path)
	}

	tex := d.white
	img, err := texture.Load(full)
	if err != nil {
		logger.Warn("texture unavailable, using white", zap.String("path", full), zap.Error(err))
	} else {
		tex = uploadTexture(texture.FlipVertical(img))
	}
	d.textures[path] = tex
	return tex
}

func uploadTexture(img *image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	b := img.Bounds()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}
