// Package sceneio decodes YAML scene descriptions into scene trees and
// animation channels.
package sceneio

// Document is the YAML layout of a scene description.
type Document struct {
	Name       string         `yaml:"name"`
	Nodes      []NodeDoc      `yaml:"nodes"`
	Animations []AnimationDoc `yaml:"animations"`
}

// NodeDoc describes one node; every component is optional.
type NodeDoc struct {
	Name      string        `yaml:"name"`
	Transform *TransformDoc `yaml:"transform"`
	Camera    *CameraDoc    `yaml:"camera"`
	Material  *MaterialDoc  `yaml:"material"`
	Mesh      *MeshDoc      `yaml:"mesh"`
	Light     *LightDoc     `yaml:"light"`
	Bone      *BoneDoc      `yaml:"bone"`
	Weight    *WeightDoc    `yaml:"weight"`
	Canvas    *CanvasDoc    `yaml:"canvas"`
	Rect      *RectDoc      `yaml:"rect"`
	XForm     bool          `yaml:"xform"`
	Children  []NodeDoc     `yaml:"children"`
}

// TransformDoc gives either a rotation quaternion (x, y, z, w) or Euler
// angles in degrees (pitch, yaw, roll), or a full column-major matrix.
type TransformDoc struct {
	Translation []float32 `yaml:"translation"`
	Rotation    []float32 `yaml:"rotation"`
	Euler       []float32 `yaml:"euler"`
	Scale       []float32 `yaml:"scale"`
	Matrix      []float32 `yaml:"matrix"`
}

type CameraDoc struct {
	Projection  string  `yaml:"projection"`
	FovDegrees  float32 `yaml:"fov_degrees"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	OrthoHeight float32 `yaml:"ortho_height"`
}

type ChannelDoc struct {
	Color   []float32 `yaml:"color"`
	Texture string    `yaml:"texture"`
	Mix     float32   `yaml:"mix"`
}

type SpecularDoc struct {
	ChannelDoc `yaml:",inline"`
	Shininess  float32 `yaml:"shininess"`
	Intensity  float32 `yaml:"intensity"`
}

type BumpDoc struct {
	Texture   string  `yaml:"texture"`
	Intensity float32 `yaml:"intensity"`
}

type MaterialDoc struct {
	Name     string       `yaml:"name"`
	Diffuse  *ChannelDoc  `yaml:"diffuse"`
	Specular *SpecularDoc `yaml:"specular"`
	Emissive *ChannelDoc  `yaml:"emissive"`
	Bump     *BumpDoc     `yaml:"bump"`
}

// MeshDoc is either a named primitive ("quad", "cube") or explicit geometry.
type MeshDoc struct {
	Name      string      `yaml:"name"`
	Primitive string      `yaml:"primitive"`
	Size      float32     `yaml:"size"`
	Vertices  [][]float32 `yaml:"vertices"`
	Normals   [][]float32 `yaml:"normals"`
	UVs       [][]float32 `yaml:"uvs"`
	Triangles []uint32    `yaml:"triangles"`
	Inactive  bool        `yaml:"inactive"`
}

type LightDoc struct {
	Type             string    `yaml:"type"`
	Color            []float32 `yaml:"color"`
	Strength         *float32  `yaml:"strength"`
	MaxDistance      float32   `yaml:"max_distance"`
	InnerConeDegrees float32   `yaml:"inner_cone_degrees"`
	OuterConeDegrees float32   `yaml:"outer_cone_degrees"`
	Active           *bool     `yaml:"active"`
	CastsShadows     bool      `yaml:"casts_shadows"`
	Bias             float32   `yaml:"bias"`
}

type BoneDoc struct {
	Name string `yaml:"name"`
}

type JointWeightDoc struct {
	Joint  int     `yaml:"joint"`
	Weight float32 `yaml:"weight"`
}

// WeightDoc references joints by node name.
type WeightDoc struct {
	Joints   []string           `yaml:"joints"`
	Bindings [][]float32        `yaml:"bindings"`
	Vertices [][]JointWeightDoc `yaml:"vertices"`
}

type CanvasDoc struct {
	Mode string    `yaml:"mode"`
	Size []float32 `yaml:"size"`
}

type RectDoc struct {
	Anchors []float32 `yaml:"anchors"`
	Offsets []float32 `yaml:"offsets"`
}

type KeyDoc struct {
	Time  float32   `yaml:"time"`
	Value []float32 `yaml:"value"`
}

// AnimationDoc animates one property of one component of a named node.
type AnimationDoc struct {
	Node          string   `yaml:"node"`
	Component     string   `yaml:"component"`
	Property      string   `yaml:"property"`
	Type          string   `yaml:"type"`
	Interpolation string   `yaml:"interpolation"`
	Ease          string   `yaml:"ease"`
	Keys          []KeyDoc `yaml:"keys"`
}
