package scene

import "github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"

// Kind identifies the concrete type behind a Component.
type Kind int

// Component kinds. The set is closed: every Component in this package reports one of these.
const (
	KindTransform Kind = iota
	KindCamera
	KindMaterial
	KindMesh
	KindBone
	KindWeight
	KindLight
	KindCanvas
	KindRect
	KindXForm
)

var kindNames = [...]string{
	KindTransform: "transform",
	KindCamera:    "camera",
	KindMaterial:  "material",
	KindMesh:      "mesh",
	KindBone:      "bone",
	KindWeight:    "weight",
	KindLight:     "light",
	KindCanvas:    "canvas",
	KindRect:      "rect",
	KindXForm:     "xform",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Component is typed data attached to a Node.
type Component interface {
	Kind() Kind
	component()
}

// Transform places a node relative to its parent.
// When Matrix is set it replaces the TRS fields.
type Transform struct {
	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3
	Matrix      *math.Mat4
}

// NewTransform returns an identity transform.
func NewTransform() *Transform {
	return &Transform{
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Local returns the local matrix of the transform.
func (t *Transform) Local() math.Mat4 {
	if t.Matrix != nil {
		return *t.Matrix
	}
	return math.FromTRS(t.Translation, t.Rotation, t.Scale)
}

// ProjectionMethod selects how a Camera builds its projection.
type ProjectionMethod int

const (
	Perspective ProjectionMethod = iota
	Orthographic
)

// Camera defines the projection used for its subtree.
type Camera struct {
	Projection ProjectionMethod
	// Fov is the vertical field of view in radians.
	Fov  float32
	Near float32
	Far  float32
	// OrthoHeight is the visible height in world units for orthographic cameras.
	OrthoHeight float32
}

// Bone marks a node whose resolved model matrix drives a skin joint.
type Bone struct {
	Name string
}

// JointWeight binds one vertex to one joint.
type JointWeight struct {
	JointIndex int
	Weight     float32
}

// VertexWeights lists up to four joint bindings of a single vertex.
type VertexWeights []JointWeight

// Weight holds skinning data for the mesh on the same node.
type Weight struct {
	// Joints reference nodes carrying a Bone component.
	Joints []*Node
	// BindingMatrices has one inverse bind pose per joint.
	BindingMatrices []math.Mat4
	// WeightMap has one entry per vertex; missing entries bind fully to joint 0.
	// Bump Revision after editing it in place.
	WeightMap []VertexWeights
	// Revision changes whenever WeightMap is replaced so renderers re-pack
	// the per-vertex influences.
	Revision uint32
}

// SetWeightMap replaces the per-vertex joint bindings.
func (w *Weight) SetWeightMap(m []VertexWeights) {
	w.WeightMap = m
	w.Revision++
}

// LightType is the kind of light source.
type LightType int

const (
	PointLight LightType = iota
	DirectionalLight
	SpotLight
	LegacyLight
)

func (t LightType) String() string {
	switch t {
	case PointLight:
		return "point"
	case DirectionalLight:
		return "directional"
	case SpotLight:
		return "spot"
	case LegacyLight:
		return "legacy"
	default:
		return "unknown"
	}
}

// Light is a light source located at its node.
type Light struct {
	Type     LightType
	Color    math.Vec4
	Strength float32
	// MaxDistance is the attenuation range of point and spot lights.
	MaxDistance float32
	// Cone angles are in radians.
	InnerConeAngle   float32
	OuterConeAngle   float32
	Active           bool
	IsCastingShadows bool
	Bias             float32
}

// NewLight returns an active white light of the given type.
func NewLight(t LightType) *Light {
	return &Light{
		Type:     t,
		Color:    math.Vec4{X: 1, Y: 1, Z: 1, W: 1},
		Strength: 1,
		Active:   true,
	}
}

// CanvasRenderMode selects where a UI canvas lives.
type CanvasRenderMode int

const (
	// CanvasWorld places the canvas in world space like any other geometry.
	CanvasWorld CanvasRenderMode = iota
	// CanvasScreen pins the canvas in front of the camera at the near plane.
	CanvasScreen
)

// CanvasTransform is the root of a UI layout subtree.
type CanvasTransform struct {
	RenderMode CanvasRenderMode
	// Size is the design-space rectangle of the canvas.
	Size math.MinMaxRect
	// ScreenSpaceSize and Scale are written during traversal of screen-space canvases.
	ScreenSpaceSize math.MinMaxRect
	Scale           math.Vec2
}

// RectTransform lays out a rectangle relative to its parent rectangle.
type RectTransform struct {
	// Anchors are fractions of the parent rectangle.
	Anchors math.MinMaxRect
	// Offsets are design-space units added to the anchored corners.
	Offsets math.MinMaxRect
}

// XForm scales the unit-sized geometry of its node to the current UI rectangle.
type XForm struct{}

func (*Transform) Kind() Kind       { return KindTransform }
func (*Camera) Kind() Kind          { return KindCamera }
func (*Material) Kind() Kind        { return KindMaterial }
func (*Mesh) Kind() Kind            { return KindMesh }
func (*Bone) Kind() Kind            { return KindBone }
func (*Weight) Kind() Kind          { return KindWeight }
func (*Light) Kind() Kind           { return KindLight }
func (*CanvasTransform) Kind() Kind { return KindCanvas }
func (*RectTransform) Kind() Kind   { return KindRect }
func (*XForm) Kind() Kind           { return KindXForm }

func (*Transform) component()       {}
func (*Camera) component()          {}
func (*Material) component()        {}
func (*Mesh) component()            {}
func (*Bone) component()            {}
func (*Weight) component()          {}
func (*Light) component()           {}
func (*CanvasTransform) component() {}
func (*RectTransform) component()   {}
func (*XForm) component()           {}
