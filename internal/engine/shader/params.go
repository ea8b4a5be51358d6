package shader

import (
	"fmt"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/lighting"
)

// Matrix parameter names shared with externally authored programs.
const (
	ParamModel                       = "FUSEE_M"
	ParamView                        = "FUSEE_V"
	ParamProjection                  = "FUSEE_P"
	ParamModelView                   = "FUSEE_MV"
	ParamModelViewProjection         = "FUSEE_MVP"
	ParamInvView                     = "FUSEE_IV"
	ParamInvModelView                = "FUSEE_IMV"
	ParamInvProjection               = "FUSEE_IP"
	ParamInvModelViewProjection      = "FUSEE_IMVP"
	ParamTransView                   = "FUSEE_TV"
	ParamTransModelView              = "FUSEE_TMV"
	ParamTransProjection             = "FUSEE_TP"
	ParamTransModelViewProjection    = "FUSEE_TMVP"
	ParamInvTransView                = "FUSEE_ITV"
	ParamInvTransModelView           = "FUSEE_ITMV"
	ParamInvTransProjection          = "FUSEE_ITP"
	ParamInvTransModelViewProjection = "FUSEE_ITMVP"
)

// Material parameter names.
const (
	ParamDiffuseColor      = "DiffuseColor"
	ParamDiffuseTexture    = "DiffuseTexture"
	ParamDiffuseMix        = "DiffuseMix"
	ParamSpecularColor     = "SpecularColor"
	ParamSpecularShininess = "SpecularShininess"
	ParamSpecularIntensity = "SpecularIntensity"
	ParamEmissiveColor     = "EmissiveColor"
	ParamEmissiveTexture   = "EmissiveTexture"
	ParamEmissiveMix       = "EmissiveMix"
	ParamBumpTexture       = "BumpTexture"
	ParamBumpIntensity     = "BumpIntensity"
)

// MaxBones is the size of the FUSEE_BONES array in generated programs.
const MaxBones = 64

// BoneParam returns the parameter name of bone i.
func BoneParam(i int) string {
	return fmt.Sprintf("FUSEE_BONES[%d]", i)
}

// MatrixParams lists every matrix parameter name.
var MatrixParams = []string{
	ParamModel, ParamView, ParamProjection,
	ParamModelView, ParamModelViewProjection,
	ParamInvView, ParamInvModelView, ParamInvProjection, ParamInvModelViewProjection,
	ParamTransView, ParamTransModelView, ParamTransProjection, ParamTransModelViewProjection,
	ParamInvTransView, ParamInvTransModelView, ParamInvTransProjection, ParamInvTransModelViewProjection,
}

// StandardParams returns the parameters a program generated for key declares:
// the commonly used matrices, the present material channels, bones when
// skinned, and every field of key.Lights lights.
func StandardParams(key Key) []string {
	params := []string{
		ParamModel, ParamView, ParamProjection,
		ParamModelView, ParamModelViewProjection,
		ParamInvTransModelView, ParamInvView,
	}

	if key.Diffuse {
		params = append(params, ParamDiffuseColor)
		if key.DiffuseTexture {
			params = append(params, ParamDiffuseTexture, ParamDiffuseMix)
		}
	}
	if key.Specular {
		params = append(params, ParamSpecularColor, ParamSpecularShininess, ParamSpecularIntensity)
	}
	if key.Emissive {
		params = append(params, ParamEmissiveColor)
		if key.EmissiveTexture {
			params = append(params, ParamEmissiveTexture, ParamEmissiveMix)
		}
	}
	if key.Bump {
		params = append(params, ParamBumpTexture, ParamBumpIntensity)
	}
	if key.Skinned {
		for i := 0; i < MaxBones; i++ {
			params = append(params, BoneParam(i))
		}
	}

	var names lighting.ParamNames
	names.Ensure(key.Lights)
	for i := 0; i < key.Lights; i++ {
		for _, f := range lighting.Fields {
			params = append(params, names.Name(i, f))
		}
	}
	return params
}
