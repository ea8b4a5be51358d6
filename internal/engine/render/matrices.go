package render

import "github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/shader"

// Matrix names one settable or derived matrix of a Context.
type Matrix int

const (
	Model Matrix = iota
	View
	Projection
	ModelView
	ModelViewProjection
	InvView
	InvModelView
	InvProjection
	InvModelViewProjection
	TransView
	TransModelView
	TransProjection
	TransModelViewProjection
	InvTransView
	InvTransModelView
	InvTransProjection
	InvTransModelViewProjection

	numMatrices
)

// firstDerived is the first Matrix computed rather than set.
const firstDerived = ModelView

type matrixSet uint32

func (m Matrix) bit() matrixSet {
	return 1 << uint(m)
}

func setOf(ms ...Matrix) matrixSet {
	var s matrixSet
	for _, m := range ms {
		s |= m.bit()
	}
	return s
}

// Invalidation groups: the derived matrices whose formula includes each input.
var (
	dependsOnModel = setOf(
		ModelView, ModelViewProjection,
		InvModelView, InvModelViewProjection,
		TransModelView, TransModelViewProjection,
		InvTransModelView, InvTransModelViewProjection,
	)
	dependsOnView = dependsOnModel | setOf(InvView, TransView, InvTransView)

	dependsOnProjection = setOf(
		ModelViewProjection,
		InvProjection, InvModelViewProjection,
		TransProjection, TransModelViewProjection,
		InvTransProjection, InvTransModelViewProjection,
	)

	allDerived = dependsOnView | dependsOnProjection
	allMatrices = allDerived | setOf(Model, View, Projection)
)

var paramNames = [numMatrices]string{
	Model:                       shader.ParamModel,
	View:                        shader.ParamView,
	Projection:                  shader.ParamProjection,
	ModelView:                   shader.ParamModelView,
	ModelViewProjection:         shader.ParamModelViewProjection,
	InvView:                     shader.ParamInvView,
	InvModelView:                shader.ParamInvModelView,
	InvProjection:               shader.ParamInvProjection,
	InvModelViewProjection:      shader.ParamInvModelViewProjection,
	TransView:                   shader.ParamTransView,
	TransModelView:              shader.ParamTransModelView,
	TransProjection:             shader.ParamTransProjection,
	TransModelViewProjection:    shader.ParamTransModelViewProjection,
	InvTransView:                shader.ParamInvTransView,
	InvTransModelView:           shader.ParamInvTransModelView,
	InvTransProjection:          shader.ParamInvTransProjection,
	InvTransModelViewProjection: shader.ParamInvTransModelViewProjection,
}

// Param returns the shader parameter name of m.
func (m Matrix) Param() string {
	if m < 0 || m >= numMatrices {
		return ""
	}
	return paramNames[m]
}

func (m Matrix) String() string {
	return m.Param()
}
