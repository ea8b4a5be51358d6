package glbackend

import (
	"fmt"
	"strings"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/lighting"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/shader"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
)

// Vertex attribute locations shared by every generated program and the mesh upload.
const (
	attribVertex     = 0
	attribNormal     = 1
	attribUV         = 2
	attribBoneIndex  = 3
	attribBoneWeight = 4
)

const glslVersion = "#version 410 core\n"

// glslTypes maps light fields onto the members of the generated Light struct.
var glslTypes = map[lighting.Field]string{
	lighting.FieldPosition:            "vec3",
	lighting.FieldPositionWorldSpace:  "vec3",
	lighting.FieldIntensities:         "vec4",
	lighting.FieldMaxDistance:         "float",
	lighting.FieldStrength:            "float",
	lighting.FieldOuterConeAngle:      "float",
	lighting.FieldInnerConeAngle:      "float",
	lighting.FieldDirection:           "vec3",
	lighting.FieldDirectionWorldSpace: "vec3",
	lighting.FieldLightType:           "int",
	lighting.FieldIsActive:            "int",
	lighting.FieldIsCastingShadows:    "int",
	lighting.FieldBias:                "float",
}

// vertexSource generates the vertex stage for key. Skinned vertices are
// transformed into world space by the bone palette, so they skip the model matrix.
func vertexSource(key shader.Key, bones int) string {
	var b strings.Builder
	b.WriteString(glslVersion)
	fmt.Fprintf(&b, "layout(location = %d) in vec3 fuVertex;\n", attribVertex)
	fmt.Fprintf(&b, "layout(location = %d) in vec3 fuNormal;\n", attribNormal)
	fmt.Fprintf(&b, "layout(location = %d) in vec2 fuUV;\n", attribUV)
	if key.Skinned {
		fmt.Fprintf(&b, "layout(location = %d) in vec4 fuBoneIndex;\n", attribBoneIndex)
		fmt.Fprintf(&b, "layout(location = %d) in vec4 fuBoneWeight;\n", attribBoneWeight)
		fmt.Fprintf(&b, "uniform mat4 FUSEE_BONES[%d];\n", bones)
		b.WriteString("uniform mat4 " + shader.ParamView + ";\n")
		b.WriteString("uniform mat4 " + shader.ParamProjection + ";\n")
	} else {
		b.WriteString("uniform mat4 " + shader.ParamModelView + ";\n")
		b.WriteString("uniform mat4 " + shader.ParamModelViewProjection + ";\n")
		b.WriteString("uniform mat4 " + shader.ParamInvTransModelView + ";\n")
	}
	b.WriteString(`
out vec3 vViewPos;
out vec3 vViewNormal;
out vec2 vUV;

void main() {
	vec4 pos = vec4(fuVertex, 1.0);
	vec4 nrm = vec4(fuNormal, 0.0);
	vUV = fuUV;
`)
	if key.Skinned {
		b.WriteString(`	mat4 skin = fuBoneWeight.x * FUSEE_BONES[int(fuBoneIndex.x)]
		+ fuBoneWeight.y * FUSEE_BONES[int(fuBoneIndex.y)]
		+ fuBoneWeight.z * FUSEE_BONES[int(fuBoneIndex.z)]
		+ fuBoneWeight.w * FUSEE_BONES[int(fuBoneIndex.w)];
	pos = skin * pos;
	nrm = skin * nrm;
	vViewPos = (FUSEE_V * pos).xyz;
	vViewNormal = normalize(mat3(FUSEE_V) * nrm.xyz);
	gl_Position = FUSEE_P * FUSEE_V * pos;
}
`)
	} else {
		b.WriteString(`	vViewPos = (FUSEE_MV * pos).xyz;
	vViewNormal = normalize(mat3(FUSEE_ITMV) * nrm.xyz);
	gl_Position = FUSEE_MVP * pos;
}
`)
	}
	return b.String()
}

// fragmentSource generates the fragment stage: Blinn-Phong over key.Lights
// lights in view space plus the emissive term.
func fragmentSource(key shader.Key) string {
	var b strings.Builder
	b.WriteString(glslVersion)
	b.WriteString("in vec3 vViewPos;\nin vec3 vViewNormal;\nin vec2 vUV;\nout vec4 oColor;\n\n")

	uniform := func(typ, name string) {
		fmt.Fprintf(&b, "uniform %s %s;\n", typ, name)
	}
	if key.Diffuse {
		uniform("vec4", shader.ParamDiffuseColor)
		if key.DiffuseTexture {
			uniform("sampler2D", shader.ParamDiffuseTexture)
			uniform("float", shader.ParamDiffuseMix)
		}
	}
	if key.Specular {
		uniform("vec4", shader.ParamSpecularColor)
		uniform("float", shader.ParamSpecularShininess)
		uniform("float", shader.ParamSpecularIntensity)
	}
	if key.Emissive {
		uniform("vec4", shader.ParamEmissiveColor)
		if key.EmissiveTexture {
			uniform("sampler2D", shader.ParamEmissiveTexture)
			uniform("float", shader.ParamEmissiveMix)
		}
	}
	if key.Bump {
		uniform("sampler2D", shader.ParamBumpTexture)
		uniform("float", shader.ParamBumpIntensity)
	}

	if key.Lights > 0 {
		b.WriteString("\nstruct Light {\n")
		for _, f := range lighting.Fields {
			fmt.Fprintf(&b, "\t%s %s;\n", glslTypes[f], f)
		}
		b.WriteString("};\n")
		fmt.Fprintf(&b, "uniform Light allLights[%d];\n", key.Lights)
		b.WriteString(shadeFunc(key))
	}

	b.WriteString("\nvoid main() {\n\tvec4 albedo = vec4(1.0);\n")
	if key.Diffuse {
		b.WriteString("\talbedo = " + shader.ParamDiffuseColor + ";\n")
		if key.DiffuseTexture {
			fmt.Fprintf(&b, "\talbedo = mix(albedo, texture(%s, vUV), %s);\n", shader.ParamDiffuseTexture, shader.ParamDiffuseMix)
		}
	}
	b.WriteString("\tvec3 N = normalize(vViewNormal);\n")
	if key.Bump {
		fmt.Fprintf(&b, "\tN = normalize(N + %s * (texture(%s, vUV).xyz * 2.0 - 1.0));\n", shader.ParamBumpIntensity, shader.ParamBumpTexture)
	}
	b.WriteString("\tvec3 V = normalize(-vViewPos);\n\tvec3 color = vec3(0.0);\n")
	if key.Lights > 0 {
		fmt.Fprintf(&b, "\tfor (int i = 0; i < %d; i++) {\n", key.Lights)
		b.WriteString("\t\tif (allLights[i].isActive == 1) {\n\t\t\tcolor += shade(allLights[i], N, V, albedo.rgb);\n\t\t}\n\t}\n")
	}
	if key.Emissive {
		b.WriteString("\tvec4 emissive = " + shader.ParamEmissiveColor + ";\n")
		if key.EmissiveTexture {
			fmt.Fprintf(&b, "\temissive = mix(emissive, texture(%s, vUV), %s);\n", shader.ParamEmissiveTexture, shader.ParamEmissiveMix)
		}
		b.WriteString("\tcolor += emissive.rgb;\n")
	}
	b.WriteString("\toColor = vec4(color, albedo.a);\n}\n")
	return b.String()
}

func shadeFunc(key shader.Key) string {
	var b strings.Builder
	fmt.Fprintf(&b, `
vec3 shade(Light l, vec3 N, vec3 V, vec3 albedo) {
	vec3 L;
	float att = 1.0;
	if (l.lightType == %d) {
		L = -normalize(l.direction);
	} else if (l.lightType == %d) {
		L = V;
	} else {
		vec3 toLight = l.position - vViewPos;
		float dist = length(toLight);
		L = toLight / max(dist, 1e-5);
		if (l.maxDistance > 0.0) {
			att = clamp(1.0 - dist / l.maxDistance, 0.0, 1.0);
		}
		if (l.lightType == %d) {
			float cosAngle = dot(-L, normalize(l.direction));
			att *= smoothstep(cos(l.outerConeAngle), cos(l.innerConeAngle), cosAngle);
		}
	}
	float NdotL = max(dot(N, L), 0.0);
	vec3 result = albedo * NdotL;
`, int(scene.DirectionalLight), int(scene.LegacyLight), int(scene.SpotLight))
	if key.Specular {
		fmt.Fprintf(&b, `	if (NdotL > 0.0) {
		vec3 H = normalize(L + V);
		result += %s.rgb * %s * pow(max(dot(N, H), 0.0), %s);
	}
`, shader.ParamSpecularColor, shader.ParamSpecularIntensity, shader.ParamSpecularShininess)
	}
	b.WriteString("\treturn result * l.intensities.rgb * l.strength * att;\n}\n")
	return b.String()
}
