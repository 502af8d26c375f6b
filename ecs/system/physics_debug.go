package system

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 0.1
)

// DrawPhysicsDebug outlines every collider on top of the room view.
func DrawPhysicsDebug(w *ecs.World, screen *ebiten.Image, scale float64) {
	if w == nil || screen == nil {
		return
	}
	space := w.PhysicsWorld().Space()
	if space == nil {
		return
	}
	cp.DrawSpace(space, &physicsDebugDrawer{w: w, screen: screen, view: viewFor(w, screen, scale)})
}

// DrawStateDebug prints the player and conversation state.
func DrawStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	var lines []string
	if p, ok := ecs.First(w, component.PlayerControllerComponent.Kind()); ok {
		pc, _ := ecs.Get(w, p, component.PlayerControllerComponent.Kind())
		if c := pc.Controller; c != nil {
			pos := c.Position()
			lines = append(lines,
				fmt.Sprintf("Player: %.2f %.2f %.2f yaw %.0f pitch %.0f", pos.X, pos.Y, pos.Z, c.Yaw(), c.Pitch()),
				fmt.Sprintf("Enabled: %v Sitting: %v", c.Enabled(), c.IsSitting()))
		}
	}
	if ui, ok := ecs.First(w, component.DialogueUIComponent.Kind()); ok {
		d, _ := ecs.Get(w, ui, component.DialogueUIComponent.Kind())
		if d.Session != nil {
			lines = append(lines, fmt.Sprintf("Dialogue: %v", d.Session.State()))
		}
	}
	if mgr := musicManager(w); mgr != nil {
		lines = append(lines, fmt.Sprintf("Music: %s %.2f", mgr.State(), mgr.Volume()))
	}
	if live, ok := LiveCamera(w); ok {
		lines = append(lines, "Camera: "+nameOf(w, live))
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 10, 10)
}

type physicsDebugDrawer struct {
	w      *ecs.World
	screen *ebiten.Image
	view   topDownView
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	half := debugDotSize / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if e, ok := shape.UserData.(ecs.Entity); ok {
		if cl, ok := ecs.Get(d.w, e, component.CollisionLayerComponent.Kind()); ok {
			switch {
			case cl.Category&component.LayerTrigger != 0:
				return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 0.9}
			case cl.Category&component.LayerInteractable != 0:
				return cp.FColor{R: 0.3, G: 0.7, B: 1, A: 0.9}
			}
		}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, color cp.FColor) {
	x1, y1 := d.view.toScreen(a.X, a.Y)
	x2, y2 := d.view.toScreen(b.X, b.Y)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, 1, toNRGBA(color), true)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, color cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], color)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, color cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, color)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
