package main

import (
	"github.com/chewxy/math32"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/animation"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/sceneio"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

// demoScene is a spinning lit cube on a floor with a small screen-space badge.
func demoScene(opts animation.Options) (*scene.Scene, *animation.Mixer) {
	spin := scene.NewTransform()
	keys := make([]animation.Keyframe[math.Quat], 5)
	for i := range keys {
		keys[i] = animation.Keyframe[math.Quat]{
			Time:  float32(i),
			Value: math.QuatFromAxisAngle(math.Vec3{Y: 1}, float32(i)*math32.Pi/2),
		}
	}
	mixer := animation.NewMixer(opts)
	mixer.AddChannel(spin, "Rotation", animation.NewChannel(animation.SlerpQuat, keys...))

	floor := scene.NewTransform()
	floor.Translation = math.Vec3{Y: -1}
	floor.Rotation = math.QuatFromAxisAngle(math.Vec3{X: 1}, -math32.Pi/2)
	floor.Scale = math.Vec3{X: 10, Y: 10, Z: 1}

	sun := scene.NewLight(scene.DirectionalLight)
	sun.Strength = 0.8
	sunXForm := scene.NewTransform()
	sunXForm.Rotation = math.QuatFromEuler(-math32.Pi/3, math32.Pi/4, 0)

	lamp := scene.NewLight(scene.PointLight)
	lamp.Color = math.Vec4{X: 1, Y: 0.6, Z: 0.3, W: 1}
	lamp.MaxDistance = 8
	lampXForm := scene.NewTransform()
	lampXForm.Translation = math.Vec3{X: 2, Y: 2, Z: 2}

	badge := &scene.RectTransform{
		Anchors: math.MinMaxRect{Min: math.Vec2{X: 0, Y: 1}, Max: math.Vec2{X: 0, Y: 1}},
		Offsets: math.MinMaxRect{Min: math.Vec2{X: 20, Y: -120}, Max: math.Vec2{X: 120, Y: -20}},
	}

	sc := scene.New("demo",
		scene.NewNode("sun", sunXForm, sun),
		scene.NewNode("lamp", lampXForm, lamp),
		scene.NewNode("cube", spin, &scene.Material{
			Diffuse:  &scene.MatChannel{Color: math.Vec4{X: 0.8, Y: 0.2, Z: 0.2, W: 1}},
			Specular: &scene.SpecularChannel{MatChannel: scene.MatChannel{Color: math.Vec4{X: 1, Y: 1, Z: 1, W: 1}}, Shininess: 32, Intensity: 0.5},
		}, sceneio.Cube(1)),
		scene.NewNode("floor", floor, &scene.Material{
			Diffuse: &scene.MatChannel{Color: math.Vec4{X: 0.5, Y: 0.5, Z: 0.5, W: 1}},
		}, sceneio.Quad(1)),
		scene.NewNode("hud", &scene.CanvasTransform{
			RenderMode: scene.CanvasScreen,
			Size:       math.MinMaxRect{Max: math.Vec2{X: 1280, Y: 720}},
		}).AddChild(
			scene.NewNode("badge", badge, &scene.XForm{}, &scene.Material{
				Emissive: &scene.MatChannel{Color: math.Vec4{X: 0.2, Y: 0.6, Z: 1, W: 1}},
			}, sceneio.Quad(1)),
		),
	)
	return sc, mixer
}
