package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/config"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/animation"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/camera"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/debug"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/glbackend"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/input"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/picking"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/render"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/renderer"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/shader"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/window"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/logger"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/sceneio"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

// viewer owns the window, device and scene and runs the frame loop.
type viewer struct {
	cfg *config.Config

	window   *window.Window
	device   *glbackend.Device
	input    *input.Input
	ctx      *render.Context
	renderer *renderer.SceneRenderer
	orbit    *camera.OrbitCamera
	shots    *debug.Screenshots

	scene *scene.Scene
	mixer *animation.Mixer
	// fallbackProjection is used when the scene has no camera of its own.
	fallbackProjection bool
}

func newViewer(cfg *config.Config) (*viewer, error) {
	mode, err := renderer.ParseLightingMode(cfg.Lighting.Mode)
	if err != nil {
		return nil, err
	}

	v := &viewer{
		cfg:   cfg,
		input: input.New(),
		orbit: camera.NewOrbitCamera(cfg.Camera.Distance),
		shots: debug.NewScreenshots(cfg.Debug.ScreenshotDir, "scene"),
	}

	if err := v.loadScene(); err != nil {
		return nil, err
	}

	v.window, err = window.New(window.Config{
		Title:  "Scene Viewer - " + v.scene.Name,
		Width:  cfg.Viewport.Width,
		Height: cfg.Viewport.Height,
		VSync:  cfg.Viewport.VSync,
		Hidden: cfg.Debug.Capture,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	// The device needs the GL context of the window.
	textureDir := cfg.Scene.TextureDir
	if textureDir == "" && cfg.Scene.Path != "" {
		textureDir = filepath.Dir(cfg.Scene.Path)
	}
	v.device, err = glbackend.New(glbackend.Config{
		Width:      cfg.Viewport.Width,
		Height:     cfg.Viewport.Height,
		MaxLights:  cfg.Lighting.MaxArrayLights,
		TextureDir: textureDir,
		ClearColor: math.Vec4{X: 0.1, Y: 0.1, Z: 0.15, W: 1},
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("creating device: %w", err)
	}

	v.ctx, err = render.NewContext(v.device)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.renderer = renderer.New(v.ctx, shader.NewCache(v.device), renderer.Options{
		Lighting:       mode,
		MaxArrayLights: cfg.Lighting.MaxArrayLights,
	})

	v.resize(v.window.Size())
	return v, nil
}

// loadScene reads the configured scene, or builds a small demo scene when none is set.
func (v *viewer) loadScene() error {
	opts := animation.Options{
		Loop:     v.cfg.Animation.Loop,
		Speed:    v.cfg.Animation.Speed,
		MaxDelta: v.cfg.Animation.MaxDelta,
	}

	if v.cfg.Scene.Path == "" {
		v.scene, v.mixer = demoScene(opts)
		logger.Info("no scene configured, showing demo scene")
	} else {
		res, err := sceneio.LoadFile(v.cfg.Scene.Path, opts)
		if err != nil {
			return fmt.Errorf("loading scene: %w", err)
		}
		v.scene, v.mixer = res.Scene, res.Mixer
		if res.Skipped > 0 {
			logger.Warn("some animations were not bound", zap.Int("skipped", res.Skipped))
		}
	}

	v.fallbackProjection = true
	v.scene.Walk(func(n *scene.Node, _ int) bool {
		if n.Has(scene.KindCamera) {
			v.fallbackProjection = false
		}
		return v.fallbackProjection
	})

	logger.Info("scene loaded",
		zap.String("name", v.scene.Name),
		zap.Int("nodes", v.scene.Count()),
		zap.Int("channels", v.mixer.Len()),
		zap.Float32("duration", v.mixer.Duration()),
	)
	return nil
}

// Run drives the frame loop until the window is closed.
func (v *viewer) Run() error {
	if v.cfg.Debug.Capture {
		return v.capture()
	}

	last := time.Now()
	frames := 0
	fpsTimer := last

	logger.Info("starting frame loop")
	for {
		now := time.Now()
		dt := now.Sub(last)
		last = now

		if v.input.Update() {
			return nil
		}
		for _, e := range v.input.Events() {
			switch e.Type {
			case input.EventWindowResize:
				v.resize(v.window.Size())
			case input.EventDrag:
				v.orbit.HandleDrag(e.DX, e.DY)
			case input.EventZoom:
				v.orbit.HandleZoom(e.Wheel)
			case input.EventClick:
				v.pick(e.X, e.Y)
			}
		}
		if v.input.KeyPressed(sdl.SCANCODE_F12) {
			if err := v.capture(); err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			}
		}

		v.mixer.Animate(dt)
		if err := v.frame(); err != nil {
			return err
		}
		v.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frames), zap.Duration("dt", dt))
			frames = 0
			fpsTimer = time.Now()
		}
	}
}

// frame renders the scene into the bound target.
func (v *viewer) frame() error {
	v.device.Begin()
	v.ctx.SetView(v.orbit.ViewMatrix())
	if v.fallbackProjection {
		v.ctx.SetProjection(math.Perspective(
			v.cfg.Camera.FovDegrees*math32.Pi/180,
			v.ctx.Aspect(),
			v.cfg.Camera.Near, v.cfg.Camera.Far,
		))
	}

	report, err := v.renderer.Render(v.scene)
	if err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	for _, d := range report.Diagnostics {
		logger.Debug("frame diagnostic", zap.Uint64("frame", report.Frame), zap.Error(d))
	}
	return nil
}

// pick logs the mesh node under the window position x, y using the view and
// projection of the last rendered frame.
func (v *viewer) pick(x, y float32) {
	w, h := v.ctx.Viewport()
	scale := v.window.PointerScale()
	invViewProj := v.ctx.InvView().Mul(v.ctx.InvProjection())

	ray := picking.ScreenRay(x*scale, y*scale, w, h, invViewProj)
	hit, ok := picking.Pick(v.scene, ray)
	if !ok {
		logger.Info("picked nothing", zap.Float32("x", x), zap.Float32("y", y))
		return
	}
	logger.Info("picked node",
		zap.String("node", hit.Node.Name),
		zap.String("mesh", hit.Mesh.Name),
		zap.Float32("distance", hit.Distance),
	)
}

// capture renders one frame into an offscreen target and saves it.
func (v *viewer) capture() error {
	w, h := v.ctx.Viewport()
	target, err := glbackend.NewTarget(w, h)
	if err != nil {
		return fmt.Errorf("creating capture target: %w", err)
	}
	defer target.Destroy()

	restore := target.Bind()
	err = v.frame()
	restore()
	if err != nil {
		return err
	}

	_, err = v.shots.Save(target.Capture(), v.renderer.Frame())
	return err
}

func (v *viewer) resize(width, height int) {
	v.device.Resize(width, height)
	v.ctx.SetViewport(width, height)
}

// Close releases everything in reverse creation order.
func (v *viewer) Close() {
	logger.Info("closing viewer")
	if v.device != nil {
		v.device.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
