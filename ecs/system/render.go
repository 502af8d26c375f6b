package system

import (
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
	"github.com/milk9111/finalroom/typewriter"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	defaultPixelsPerMeter = 48.0
	shapeSegments         = 24
	hudPadding            = 8.0
	hudLineHeight         = 15.0
)

// RenderSystem draws the room from above: floor shapes lit by the ambient
// and point lights, the live camera's view cone, then the screen-space
// labels.
type RenderSystem struct {
	Scale float64

	face  ebtext.Face
	white *ebiten.Image
}

func NewRenderSystem() *RenderSystem {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &RenderSystem{
		Scale: defaultPixelsPerMeter,
		face:  ebtext.NewGoXFace(basicfont.Face7x13),
		white: white,
	}
}

// topDownView maps floor coordinates to screen pixels, +Z up.
type topDownView struct {
	cx, cz float64
	scale  float64
	w, h   float64
}

func (v topDownView) toScreen(x, z float64) (float32, float32) {
	return float32(v.w/2 + (x-v.cx)*v.scale), float32(v.h/2 - (z-v.cz)*v.scale)
}

func viewFor(w *ecs.World, screen *ebiten.Image, scale float64) topDownView {
	b := screen.Bounds()
	v := topDownView{scale: scale, w: float64(b.Dx()), h: float64(b.Dy())}
	if v.scale <= 0 {
		v.scale = defaultPixelsPerMeter
	}
	if p, ok := playerEntity(w); ok {
		if pos, ok := worldPosition(w, p); ok {
			v.cx, v.cz = pos.X, pos.Z
		}
	}
	return v
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	view := viewFor(w, screen, r.Scale)

	ambient, intensity := color.Color(colornames.Black), 1.0
	if env, ok := ecs.First(w, component.EnvironmentComponent.Kind()); ok {
		e, _ := ecs.Get(w, env, component.EnvironmentComponent.Kind())
		if e.AmbientColor != nil {
			ambient = e.AmbientColor
		}
		intensity = e.AmbientIntensity
	}
	screen.Fill(shade(ambient, 0.25*common.Clamp01(intensity)))

	entities := ecs.Query(w, component.ShapeComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		return renderLayer(w, entities[i]) < renderLayer(w, entities[j])
	})
	for _, e := range entities {
		if !ActiveInHierarchy(w, e) {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, _ := ecs.Get(w, e, component.ShapeComponent.Kind())
		r.drawShape(w, screen, view, e, s, t, intensity)
	}

	r.drawViewCone(w, screen, view)
	r.drawHUD(w, screen)
}

func renderLayer(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}

func (r *RenderSystem) drawShape(w *ecs.World, screen *ebiten.Image, view topDownView, e ecs.Entity, s *component.Shape, t *component.Transform, ambient float64) {
	pts := shapeOutline(s, t)
	if len(pts) < 3 {
		return
	}
	base := s.Color
	if base == nil {
		base = colornames.Gray
	}
	light := common.Clamp01(ambient + lightAt(w, t.World))
	r.fillPolygon(screen, view, pts, shade(base, 0.2+0.8*light))

	if o, ok := outlineFor(w, e); ok {
		c := o.Color
		if c == nil {
			c = colornames.Gold
		}
		thickness := o.Thickness
		if thickness <= 0 {
			thickness = 2
		}
		strokePolygon(screen, view, pts, float32(thickness), c)
	}

	if ecs.Has(w, e, component.AnimatorComponent.Kind()) || ecs.Has(w, e, component.PlayerControllerComponent.Kind()) {
		fwd := common.Forward(t.WorldYaw, 0)
		if t.Mirrored {
			fwd = fwd.Add(common.Right(t.WorldYaw).Scale(-0.5)).Normalize()
		}
		x0, y0 := view.toScreen(t.World.X, t.World.Z)
		tip := t.World.Add(fwd.Scale(math.Max(s.Radius, s.Depth/2) + 0.2))
		x1, y1 := view.toScreen(tip.X, tip.Z)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, colornames.White, true)
	}

	if s.Label != "" {
		x, y := view.toScreen(t.World.X, t.World.Z)
		r.drawString(screen, s.Label, float64(x)-ebtext.Advance(s.Label, r.face)/2, float64(y)+float64(view.scale)*0.4, colornames.Lightgray)
	}
}

// outlineFor reports the outline of the nearest highlighted ancestor, if the
// entity's renderer carries an outline material.
func outlineFor(w *ecs.World, e ecs.Entity) (*component.Outline, bool) {
	rend, ok := ecs.Get(w, e, component.RendererComponent.Kind())
	if !ok {
		return nil, false
	}
	outlined := false
	for _, m := range rend.Materials {
		if isOutlineMaterial(m) {
			outlined = true
			break
		}
	}
	if !outlined {
		return nil, false
	}
	for cur, depth := e, 0; depth < maxHierarchyDepth; depth++ {
		if o, ok := ecs.Get(w, cur, component.OutlineComponent.Kind()); ok {
			return o, true
		}
		p, ok := ecs.Get(w, cur, component.ParentComponent.Kind())
		if !ok {
			break
		}
		parent, ok := entityRef(w, p.Entity)
		if !ok {
			break
		}
		cur = parent
	}
	return &component.Outline{}, true
}

func lightAt(w *ecs.World, p common.Vec3) float64 {
	total := 0.0
	ecs.ForEach2(w, component.LightComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, l *component.Light, t *component.Transform) {
		if !l.Enabled || l.Range <= 0 || !ActiveInHierarchy(w, e) {
			return
		}
		d := p.Sub(t.World)
		d.Y = 0
		falloff := 1 - d.Len()/l.Range
		if falloff > 0 {
			total += l.Intensity * falloff
		}
	})
	return total
}

func shapeOutline(s *component.Shape, t *component.Transform) []common.Vec3 {
	var local []common.Vec3
	switch s.Kind {
	case component.ColliderCircle:
		radius := math.Max(s.Radius, 0.05)
		for i := range shapeSegments {
			a := 2 * math.Pi * float64(i) / shapeSegments
			local = append(local, common.Vec3{X: math.Cos(a) * radius, Z: math.Sin(a) * radius})
		}
	default:
		hw, hd := math.Max(s.Width, 0.05)/2, math.Max(s.Depth, 0.05)/2
		local = []common.Vec3{{X: -hw, Z: -hd}, {X: hw, Z: -hd}, {X: hw, Z: hd}, {X: -hw, Z: hd}}
	}
	out := make([]common.Vec3, len(local))
	for i, l := range local {
		out[i] = common.FromLocal(t.World, t.WorldYaw, l)
	}
	return out
}

func (r *RenderSystem) fillPolygon(screen *ebiten.Image, view topDownView, pts []common.Vec3, c color.Color) {
	path := vector.Path{}
	x, y := view.toScreen(pts[0].X, pts[0].Z)
	path.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = view.toScreen(p.X, p.Z)
		path.LineTo(x, y)
	}
	path.Close()

	vertexes, indexes := path.AppendVerticesAndIndicesForFilling(nil, nil)
	cr, cg, cb, ca := c.RGBA()
	for i := range vertexes {
		vertexes[i].SrcX, vertexes[i].SrcY = 0, 0
		vertexes[i].ColorR = float32(cr) / 0xffff
		vertexes[i].ColorG = float32(cg) / 0xffff
		vertexes[i].ColorB = float32(cb) / 0xffff
		vertexes[i].ColorA = float32(ca) / 0xffff
	}
	screen.DrawTriangles(vertexes, indexes, r.white, &ebiten.DrawTrianglesOptions{AntiAlias: false})
}

func strokePolygon(screen *ebiten.Image, view topDownView, pts []common.Vec3, width float32, c color.Color) {
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		x0, y0 := view.toScreen(a.X, a.Z)
		x1, y1 := view.toScreen(b.X, b.Z)
		vector.StrokeLine(screen, x0, y0, x1, y1, width, c, true)
	}
}

// drawViewCone shows where the live camera looks.
func (r *RenderSystem) drawViewCone(w *ecs.World, screen *ebiten.Image, view topDownView) {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok || cam.Live == 0 {
		return
	}
	half := cam.FOV / 2
	if half <= 0 {
		half = 30
	}
	x0, y0 := view.toScreen(t.World.X, t.World.Z)
	for _, yaw := range []float64{t.WorldYaw - half, t.WorldYaw + half} {
		tip := t.World.Add(common.Forward(yaw, 0).Scale(2))
		x1, y1 := view.toScreen(tip.X, tip.Z)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, color.RGBA{R: 255, G: 255, B: 160, A: 120}, true)
	}
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image) {
	for _, e := range ecs.Query(w, component.TextComponent.Kind()) {
		if !ActiveInHierarchy(w, e) {
			continue
		}
		t, _ := ecs.Get(w, e, component.TextComponent.Kind())
		if t.BoxW > 0 && t.BoxH > 0 {
			box := t.BoxColor
			if box == nil {
				box = color.RGBA{A: 180}
			}
			vector.FillRect(screen, float32(t.X), float32(t.Y), float32(t.BoxW), float32(t.BoxH), box, false)
			vector.StrokeRect(screen, float32(t.X), float32(t.Y), float32(t.BoxW), float32(t.BoxH), 1, colornames.Dimgray, false)
		}

		x, y := t.X+hudPadding, t.Y+hudPadding
		if t.BoxW <= 0 {
			x, y = t.X, t.Y
		}
		if ic, ok := ecs.Get(w, e, component.IconComponent.Kind()); ok && ic.Name != "" {
			label := "[" + ic.Name + "]"
			r.drawString(screen, label, x, y, colornames.Khaki)
			y += hudLineHeight
		}

		def := t.Color
		if def == nil {
			def = colornames.White
		}
		maxWidth := 0.0
		if t.BoxW > 0 {
			maxWidth = t.BoxW - 2*hudPadding
		}
		spans := typewriter.Truncate(typewriter.Spans(t.Value), t.MaxVisible)
		r.drawSpans(screen, spans, x, y, maxWidth, def)
	}
}

// drawSpans lays colored runs out left to right, breaking on newlines and,
// when maxWidth is set, between words.
func (r *RenderSystem) drawSpans(screen *ebiten.Image, spans []typewriter.Span, x0, y0, maxWidth float64, def color.Color) {
	x, y := x0, y0
	for _, s := range spans {
		c := s.Color
		if c == nil {
			c = def
		}
		for i, line := range strings.Split(s.Text, "\n") {
			if i > 0 {
				x, y = x0, y+hudLineHeight
			}
			for j, word := range strings.SplitAfter(line, " ") {
				adv := ebtext.Advance(word, r.face)
				if maxWidth > 0 && j > 0 && x > x0 && x+adv > x0+maxWidth {
					x, y = x0, y+hudLineHeight
				}
				r.drawString(screen, word, x, y, c)
				x += adv
			}
		}
	}
}

func (r *RenderSystem) drawString(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	if s == "" {
		return
	}
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	ebtext.Draw(screen, s, r.face, op)
}

// shade scales a color's brightness, keeping alpha.
func shade(c color.Color, k float64) color.Color {
	k = common.Clamp01(k)
	cr, cg, cb, ca := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(cr) * k),
		G: uint16(float64(cg) * k),
		B: uint16(float64(cb) * k),
		A: uint16(ca),
	}
}
