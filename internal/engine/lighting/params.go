package lighting

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/logger"
)

// Field is one shader-facing member of a light.
type Field int

const (
	FieldPosition Field = iota
	FieldPositionWorldSpace
	FieldIntensities
	FieldMaxDistance
	FieldStrength
	FieldOuterConeAngle
	FieldInnerConeAngle
	FieldDirection
	FieldDirectionWorldSpace
	FieldLightType
	FieldIsActive
	FieldIsCastingShadows
	FieldBias

	numFields
)

var fieldNames = [numFields]string{
	FieldPosition:            "position",
	FieldPositionWorldSpace:  "positionWorldSpace",
	FieldIntensities:         "intensities",
	FieldMaxDistance:         "maxDistance",
	FieldStrength:            "strength",
	FieldOuterConeAngle:      "outerConeAngle",
	FieldInnerConeAngle:      "innerConeAngle",
	FieldDirection:           "direction",
	FieldDirectionWorldSpace: "directionWorldSpace",
	FieldLightType:           "lightType",
	FieldIsActive:            "isActive",
	FieldIsCastingShadows:    "isCastingShadows",
	FieldBias:                "bias",
}

// Fields lists every light field in declaration order.
var Fields = func() []Field {
	fs := make([]Field, numFields)
	for i := range fs {
		fs[i] = Field(i)
	}
	return fs
}()

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParamName formats the parameter name of field f of light i.
func ParamName(i int, f Field) string {
	return fmt.Sprintf("allLights[%d].%s", i, f)
}

// ParamNames caches formatted parameter names for a light count. The cache is
// rebuilt wholesale whenever the count changes so indices from a differently
// sized list are never reused.
type ParamNames struct {
	names    [][numFields]string
	built    bool
	rebuilds int
}

// Ensure sizes the cache for count lights and reports whether it was rebuilt.
func (p *ParamNames) Ensure(count int) bool {
	if p.built && len(p.names) == count {
		return false
	}

	if p.built {
		logger.Debug("light count changed, rebuilding parameter names",
			zap.Int("from", len(p.names)),
			zap.Int("to", count),
		)
	}

	names := make([][numFields]string, count)
	for i := range names {
		for f := Field(0); f < numFields; f++ {
			names[i][f] = ParamName(i, f)
		}
	}
	p.names = names
	p.built = true
	p.rebuilds++
	return true
}

// Count returns the light count the cache was built for.
func (p *ParamNames) Count() int {
	return len(p.names)
}

// Rebuilds returns how many times the cache has been (re)built.
func (p *ParamNames) Rebuilds() int {
	return p.rebuilds
}

// Name returns the cached name of field f of light i. It panics when i is
// outside the count passed to the last Ensure.
func (p *ParamNames) Name(i int, f Field) string {
	return p.names[i][f]
}

// Value returns the shader value of field f: float32, int32, math.Vec3 or math.Vec4.
func (r Resolved) Value(f Field) any {
	switch f {
	case FieldPosition:
		return r.Position
	case FieldPositionWorldSpace:
		return r.PositionWorld
	case FieldIntensities:
		return r.Color
	case FieldMaxDistance:
		return r.MaxDistance
	case FieldStrength:
		return r.Strength
	case FieldOuterConeAngle:
		return r.OuterConeAngle
	case FieldInnerConeAngle:
		return r.InnerConeAngle
	case FieldDirection:
		return r.Direction
	case FieldDirectionWorldSpace:
		return r.DirectionWorld
	case FieldLightType:
		return int32(r.Type)
	case FieldIsActive:
		return boolToInt(r.Active)
	case FieldIsCastingShadows:
		return boolToInt(r.IsCastingShadows)
	case FieldBias:
		return r.Bias
	default:
		return nil
	}
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
