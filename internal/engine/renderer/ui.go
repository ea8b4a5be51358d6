package renderer

import (
	"fmt"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/engine/camera"
	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
	"github.com/FUSEEProjectTeam/Fusee-sub004/pkg/math"
)

// screenCanvasOffset pushes screen canvases just past the near plane so they are not clipped.
const screenCanvasOffset = 1.01

// onCanvas starts a UI subtree. World canvases lay out in their own design
// rectangle. Screen canvases are pinned in front of the camera: their
// rectangle is the near plane's extent and Scale maps design units onto it.
// Without a perspective or orthographic projection a screen canvas falls back
// to the viewport rectangle at the camera position and the frame reports it.
func (r *SceneRenderer) onCanvas(n *scene.Node, c *scene.CanvasTransform) {
	s := r.stack.top()
	s.Canvas = c

	if c.RenderMode == scene.CanvasWorld {
		s.CanvasXForm = s.CanvasXForm.Mul(math.Translate(c.Size.Center().X, c.Size.Center().Y, 0))
		s.UIRect = c.Size
		r.syncModel()
		return
	}

	near, width, height, ok := camera.NearPlaneExtent(r.ctx.Projection())
	if !ok {
		w, h := r.ctx.Viewport()
		near, width, height = 0, float32(w), float32(h)
		r.report.add(fmt.Errorf("node %q: %w", n.Name, ErrNoScreenProjection))
	}

	invView := r.ctx.InvView()
	pos := invView.Translation()
	c.ScreenSpaceSize = math.RectFromCenter(pos.XY(), math.Vec2{X: width, Y: height})
	size := c.ScreenSpaceSize.Size()
	c.Scale = math.Vec2{X: 1, Y: 1}
	if size.X != 0 && size.Y != 0 {
		c.Scale = math.Vec2{X: c.Size.Size().X / size.X, Y: c.Size.Size().Y / size.Y}
	}

	s.CanvasXForm = s.CanvasXForm.Mul(invView).Mul(math.Translate(0, 0, -near*screenCanvasOffset))
	s.Model = math.Identity()
	s.UIRect = c.ScreenSpaceSize
	r.syncModel()
}

// onRect lays out a rectangle from anchors on the parent rectangle plus
// offsets, and moves the model by the change of rectangle center.
func (r *SceneRenderer) onRect(rt *scene.RectTransform) {
	s := r.stack.top()
	parent := s.UIRect

	minOff, maxOff := rt.Offsets.Min, rt.Offsets.Max
	if s.Canvas != nil && s.Canvas.RenderMode == scene.CanvasScreen {
		minOff = divComp(minOff, s.Canvas.Scale)
		maxOff = divComp(maxOff, s.Canvas.Scale)
	}

	rect := math.MinMaxRect{
		Min: parent.Min.Add(parent.Size().MulComp(rt.Anchors.Min)).Add(minOff),
		Max: parent.Min.Add(parent.Size().MulComp(rt.Anchors.Max)).Add(maxOff),
	}

	delta := rect.Center().Sub(parent.Center())
	s.Model = s.Model.Mul(math.Translate(delta.X, delta.Y, 0))
	s.UIRect = rect
	r.syncModel()
}

// onXForm scales the unit-sized geometry of the node to the current rectangle.
func (r *SceneRenderer) onXForm() {
	s := r.stack.top()
	size := s.UIRect.Size()
	s.Model = s.Model.Mul(math.Scale(size.X, size.Y, 1))
	r.syncModel()
}

func divComp(v, by math.Vec2) math.Vec2 {
	out := v
	if by.X != 0 {
		out.X /= by.X
	}
	if by.Y != 0 {
		out.Y /= by.Y
	}
	return out
}
