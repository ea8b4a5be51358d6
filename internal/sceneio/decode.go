package sceneio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/animation"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/logger"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

// ErrUnknownNode is returned when a joint or animation references a node name
// that does not exist in the scene.
var ErrUnknownNode = errors.New("sceneio: unknown node")

// Result is a decoded scene plus the mixer driving its animations.
type Result struct {
	Scene *scene.Scene
	Mixer *animation.Mixer
	// Skipped counts animations dropped because their value type or target is unsupported.
	Skipped int
}

// LoadFile decodes the scene description at path.
func LoadFile(path string, opts animation.Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	res, err := Decode(bytes.NewReader(data), opts)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return res, nil
}

// Decode reads one YAML scene description. Unknown fields are rejected.
func Decode(r io.Reader, opts animation.Options) (*Result, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	return Build(&doc, opts)
}

// builder resolves cross-references after the tree exists.
type builder struct {
	byName  map[string]*scene.Node
	weights []pendingWeight
}

type pendingWeight struct {
	owner  string
	weight *scene.Weight
	joints []string
}

// Build converts a parsed document into a scene and mixer.
func Build(doc *Document, opts animation.Options) (*Result, error) {
	b := &builder{byName: make(map[string]*scene.Node)}

	sc := scene.New(doc.Name)
	for i := range doc.Nodes {
		n, err := b.node(&doc.Nodes[i])
		if err != nil {
			return nil, err
		}
		sc.Children = append(sc.Children, n)
	}

	for _, pw := range b.weights {
		for _, name := range pw.joints {
			joint, ok := b.byName[name]
			if !ok {
				return nil, fmt.Errorf("node %q: joint %q: %w", pw.owner, name, ErrUnknownNode)
			}
			pw.weight.Joints = append(pw.weight.Joints, joint)
		}
	}

	res := &Result{Scene: sc, Mixer: animation.NewMixer(opts)}
	for i := range doc.Animations {
		added, err := b.animation(res.Mixer, &doc.Animations[i])
		if err != nil {
			return nil, err
		}
		if !added {
			res.Skipped++
		}
	}
	return res, nil
}

func (b *builder) node(d *NodeDoc) (*scene.Node, error) {
	n := scene.NewNode(d.Name)
	if d.Name != "" {
		if _, dup := b.byName[d.Name]; !dup {
			b.byName[d.Name] = n
		}
	}

	wrap := func(what string, err error) error {
		return fmt.Errorf("node %q: %s: %w", d.Name, what, err)
	}

	if d.Transform != nil {
		t, err := transform(d.Transform)
		if err != nil {
			return nil, wrap("transform", err)
		}
		n.AddComponent(t)
	}
	if d.Camera != nil {
		c, err := cameraComponent(d.Camera)
		if err != nil {
			return nil, wrap("camera", err)
		}
		n.AddComponent(c)
	}
	if d.Canvas != nil {
		c, err := canvas(d.Canvas)
		if err != nil {
			return nil, wrap("canvas", err)
		}
		n.AddComponent(c)
	}
	if d.Rect != nil {
		r, err := rectTransform(d.Rect)
		if err != nil {
			return nil, wrap("rect", err)
		}
		n.AddComponent(r)
	}
	if d.XForm {
		n.AddComponent(&scene.XForm{})
	}
	if d.Bone != nil {
		name := d.Bone.Name
		if name == "" {
			name = d.Name
		}
		n.AddComponent(&scene.Bone{Name: name})
	}
	if d.Material != nil {
		m, err := material(d.Material)
		if err != nil {
			return nil, wrap("material", err)
		}
		n.AddComponent(m)
	}
	if d.Light != nil {
		l, err := light(d.Light)
		if err != nil {
			return nil, wrap("light", err)
		}
		n.AddComponent(l)
	}
	if d.Weight != nil {
		w, err := weight(d.Weight)
		if err != nil {
			return nil, wrap("weight", err)
		}
		b.weights = append(b.weights, pendingWeight{owner: d.Name, weight: w, joints: d.Weight.Joints})
		n.AddComponent(w)
	}
	if d.Mesh != nil {
		m, err := mesh(d.Mesh)
		if err != nil {
			return nil, wrap("mesh", err)
		}
		n.AddComponent(m)
	}

	for i := range d.Children {
		child, err := b.node(&d.Children[i])
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

func transform(d *TransformDoc) (*scene.Transform, error) {
	t := scene.NewTransform()

	if d.Matrix != nil {
		if len(d.Matrix) != 16 {
			return nil, fmt.Errorf("matrix needs 16 values, got %d", len(d.Matrix))
		}
		var m math.Mat4
		copy(m[:], d.Matrix)
		t.Matrix = &m
		return t, nil
	}

	var err error
	if t.Translation, err = vec3(d.Translation, t.Translation); err != nil {
		return nil, fmt.Errorf("translation: %w", err)
	}
	if t.Scale, err = vec3(d.Scale, t.Scale); err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}

	switch {
	case d.Rotation != nil && d.Euler != nil:
		return nil, errors.New("rotation and euler are exclusive")
	case d.Rotation != nil:
		if len(d.Rotation) != 4 {
			return nil, fmt.Errorf("rotation needs 4 values, got %d", len(d.Rotation))
		}
		t.Rotation = math.Quat{X: d.Rotation[0], Y: d.Rotation[1], Z: d.Rotation[2], W: d.Rotation[3]}.Normalize()
	case d.Euler != nil:
		e, err := vec3(d.Euler, math.Vec3{})
		if err != nil {
			return nil, fmt.Errorf("euler: %w", err)
		}
		t.Rotation = math.QuatFromEuler(radians(e.X), radians(e.Y), radians(e.Z))
	}
	return t, nil
}

func cameraComponent(d *CameraDoc) (*scene.Camera, error) {
	c := &scene.Camera{
		Fov:         radians(d.FovDegrees),
		Near:        d.Near,
		Far:         d.Far,
		OrthoHeight: d.OrthoHeight,
	}
	switch d.Projection {
	case "", "perspective":
		c.Projection = scene.Perspective
	case "orthographic":
		c.Projection = scene.Orthographic
	default:
		return nil, fmt.Errorf("unknown projection %q", d.Projection)
	}
	return c, nil
}

func canvas(d *CanvasDoc) (*scene.CanvasTransform, error) {
	c := &scene.CanvasTransform{}
	switch d.Mode {
	case "", "world":
		c.RenderMode = scene.CanvasWorld
	case "screen":
		c.RenderMode = scene.CanvasScreen
	default:
		return nil, fmt.Errorf("unknown canvas mode %q", d.Mode)
	}
	size, err := minMaxRect(d.Size, math.MinMaxRect{})
	if err != nil {
		return nil, fmt.Errorf("size: %w", err)
	}
	c.Size = size
	return c, nil
}

func rectTransform(d *RectDoc) (*scene.RectTransform, error) {
	anchors, err := minMaxRect(d.Anchors, math.MinMaxRect{Max: math.Vec2{X: 1, Y: 1}})
	if err != nil {
		return nil, fmt.Errorf("anchors: %w", err)
	}
	offsets, err := minMaxRect(d.Offsets, math.MinMaxRect{})
	if err != nil {
		return nil, fmt.Errorf("offsets: %w", err)
	}
	return &scene.RectTransform{Anchors: anchors, Offsets: offsets}, nil
}

func channel(d *ChannelDoc, def math.Vec4) (*scene.MatChannel, error) {
	color, err := vec4(d.Color, def)
	if err != nil {
		return nil, fmt.Errorf("color: %w", err)
	}
	return &scene.MatChannel{Color: color, Texture: d.Texture, Mix: d.Mix}, nil
}

func material(d *MaterialDoc) (*scene.Material, error) {
	m := &scene.Material{Name: d.Name}
	white := math.Vec4{X: 1, Y: 1, Z: 1, W: 1}
	var err error

	if d.Diffuse != nil {
		if m.Diffuse, err = channel(d.Diffuse, white); err != nil {
			return nil, fmt.Errorf("diffuse: %w", err)
		}
	}
	if d.Specular != nil {
		c, err := channel(&d.Specular.ChannelDoc, white)
		if err != nil {
			return nil, fmt.Errorf("specular: %w", err)
		}
		m.Specular = &scene.SpecularChannel{MatChannel: *c, Shininess: d.Specular.Shininess, Intensity: d.Specular.Intensity}
	}
	if d.Emissive != nil {
		if m.Emissive, err = channel(d.Emissive, math.Vec4{W: 1}); err != nil {
			return nil, fmt.Errorf("emissive: %w", err)
		}
	}
	if d.Bump != nil {
		m.Bump = &scene.BumpChannel{Texture: d.Bump.Texture, Intensity: d.Bump.Intensity}
	}
	return m, nil
}

func light(d *LightDoc) (*scene.Light, error) {
	var t scene.LightType
	switch d.Type {
	case "", "point":
		t = scene.PointLight
	case "directional":
		t = scene.DirectionalLight
	case "spot":
		t = scene.SpotLight
	default:
		return nil, fmt.Errorf("unknown light type %q", d.Type)
	}

	l := scene.NewLight(t)
	var err error
	if l.Color, err = vec4(d.Color, l.Color); err != nil {
		return nil, fmt.Errorf("color: %w", err)
	}
	if d.Strength != nil {
		l.Strength = *d.Strength
	}
	if d.Active != nil {
		l.Active = *d.Active
	}
	l.MaxDistance = d.MaxDistance
	l.InnerConeAngle = radians(d.InnerConeDegrees)
	l.OuterConeAngle = radians(d.OuterConeDegrees)
	l.IsCastingShadows = d.CastsShadows
	l.Bias = d.Bias
	return l, nil
}

func weight(d *WeightDoc) (*scene.Weight, error) {
	w := &scene.Weight{}
	for i, b := range d.Bindings {
		if len(b) != 16 {
			return nil, fmt.Errorf("binding %d needs 16 values, got %d", i, len(b))
		}
		var m math.Mat4
		copy(m[:], b)
		w.BindingMatrices = append(w.BindingMatrices, m)
	}
	for len(w.BindingMatrices) < len(d.Joints) {
		w.BindingMatrices = append(w.BindingMatrices, math.Identity())
	}

	for _, v := range d.Vertices {
		vw := make(scene.VertexWeights, 0, len(v))
		for _, jw := range v {
			if jw.Joint < 0 || jw.Joint >= len(d.Joints) {
				return nil, fmt.Errorf("joint index %d out of range", jw.Joint)
			}
			vw = append(vw, scene.JointWeight{JointIndex: jw.Joint, Weight: jw.Weight})
		}
		w.WeightMap = append(w.WeightMap, vw)
	}
	return w, nil
}

func mesh(d *MeshDoc) (*scene.Mesh, error) {
	size := d.Size
	if size == 0 {
		size = 1
	}

	var m *scene.Mesh
	switch d.Primitive {
	case "quad":
		m = Quad(size)
	case "cube":
		m = Cube(size)
	case "":
		m = &scene.Mesh{Triangles: d.Triangles}
		for i, v := range d.Vertices {
			p, err := vec3(v, math.Vec3{})
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			m.Vertices = append(m.Vertices, p)
		}
		for i, v := range d.Normals {
			p, err := vec3(v, math.Vec3{})
			if err != nil {
				return nil, fmt.Errorf("normal %d: %w", i, err)
			}
			m.Normals = append(m.Normals, p)
		}
		for i, v := range d.UVs {
			if len(v) != 2 {
				return nil, fmt.Errorf("uv %d needs 2 values, got %d", i, len(v))
			}
			m.UVs = append(m.UVs, math.Vec2{X: v[0], Y: v[1]})
		}
		for _, idx := range m.Triangles {
			if int(idx) >= len(m.Vertices) {
				return nil, fmt.Errorf("triangle index %d out of range", idx)
			}
		}
	default:
		return nil, fmt.Errorf("unknown primitive %q", d.Primitive)
	}

	if d.Name != "" {
		m.Name = d.Name
	}
	m.Inactive = d.Inactive
	return m, nil
}

// animation binds one animation to the mixer. It reports false for value
// types, interpolations or targets it does not support.
func (b *builder) animation(mx *animation.Mixer, d *AnimationDoc) (bool, error) {
	n, ok := b.byName[d.Node]
	if !ok {
		return false, fmt.Errorf("animation of %q: %w", d.Node, ErrUnknownNode)
	}

	target := componentOf(n, d.Component)
	ch := sampler(d)
	if target == nil || ch == nil {
		logger.Debug("animation skipped",
			zap.String("node", d.Node),
			zap.String("component", d.Component),
			zap.String("type", d.Type),
		)
		return false, nil
	}
	return mx.AddChannel(target, d.Property, ch), nil
}

func componentOf(n *scene.Node, name string) scene.Component {
	var kind scene.Kind
	switch name {
	case "transform":
		kind = scene.KindTransform
	case "camera":
		kind = scene.KindCamera
	case "material":
		kind = scene.KindMaterial
	case "light":
		kind = scene.KindLight
	case "mesh":
		kind = scene.KindMesh
	default:
		return nil
	}
	for _, c := range n.Components {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

func sampler(d *AnimationDoc) animation.Sampler {
	easeFn, _ := animation.EaseByName(d.Ease)

	switch d.Type {
	case "float":
		keys, ok := keyframes(d.Keys, 1, func(v []float32) float32 { return v[0] })
		if !ok {
			return nil
		}
		ch := animation.NewChannel(pick(d.Interpolation, animation.LerpFloat), keys...)
		ch.Ease = easeFn
		return ch
	case "vec3":
		keys, ok := keyframes(d.Keys, 3, func(v []float32) math.Vec3 { return math.Vec3{X: v[0], Y: v[1], Z: v[2]} })
		if !ok {
			return nil
		}
		ch := animation.NewChannel(pick(d.Interpolation, animation.LerpVec3), keys...)
		ch.Ease = easeFn
		return ch
	case "vec4":
		keys, ok := keyframes(d.Keys, 4, func(v []float32) math.Vec4 { return math.Vec4{X: v[0], Y: v[1], Z: v[2], W: v[3]} })
		if !ok {
			return nil
		}
		ch := animation.NewChannel(pick(d.Interpolation, animation.LerpVec4), keys...)
		ch.Ease = easeFn
		return ch
	case "quat":
		keys, ok := keyframes(d.Keys, 4, func(v []float32) math.Quat { return math.Quat{X: v[0], Y: v[1], Z: v[2], W: v[3]}.Normalize() })
		if !ok {
			return nil
		}
		interp := animation.SlerpQuat
		if d.Interpolation == "linear" {
			interp = animation.LerpQuat
		}
		ch := animation.NewChannel(pick(d.Interpolation, interp), keys...)
		ch.Ease = easeFn
		return ch
	default:
		return nil
	}
}

// pick returns Step for "step" and the default interpolation otherwise.
func pick[T animation.Value](mode string, def animation.LerpFunc[T]) animation.LerpFunc[T] {
	if mode == "step" {
		return animation.Step[T]
	}
	return def
}

func keyframes[T animation.Value](keys []KeyDoc, width int, conv func([]float32) T) ([]animation.Keyframe[T], bool) {
	out := make([]animation.Keyframe[T], 0, len(keys))
	for _, k := range keys {
		if len(k.Value) != width {
			return nil, false
		}
		out = append(out, animation.Keyframe[T]{Time: k.Time, Value: conv(k.Value)})
	}
	return out, true
}

func radians(deg float32) float32 {
	return deg * math32.Pi / 180
}

func vec3(v []float32, def math.Vec3) (math.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
	default:
		return def, fmt.Errorf("need 3 values, got %d", len(v))
	}
}

func vec4(v []float32, def math.Vec4) (math.Vec4, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return math.Vec4{X: v[0], Y: v[1], Z: v[2], W: 1}, nil
	case 4:
		return math.Vec4{X: v[0], Y: v[1], Z: v[2], W: v[3]}, nil
	default:
		return def, fmt.Errorf("need 3 or 4 values, got %d", len(v))
	}
}

func minMaxRect(v []float32, def math.MinMaxRect) (math.MinMaxRect, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 4:
		return math.MinMaxRect{Min: math.Vec2{X: v[0], Y: v[1]}, Max: math.Vec2{X: v[2], Y: v[3]}}, nil
	default:
		return def, fmt.Errorf("need 4 values (min x, min y, max x, max y), got %d", len(v))
	}
}
