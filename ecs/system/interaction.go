package system

import (
	"strings"

	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
	"github.com/milk9111/finalroom/interaction"
	"github.com/milk9111/finalroom/player"
)

const DefaultStandPrompt = "Press {key} to stand"

// InteractionSystem keeps the player's selection current, fires the
// selected interactable on the interact key and handles standing up.
type InteractionSystem struct{}

func NewInteractionSystem() *InteractionSystem {
	return &InteractionSystem{}
}

func (s *InteractionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach4(w, component.SelectorComponent.Kind(), component.PlayerControllerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sel *component.Selector, pc *component.PlayerController, in *component.Input, _ *component.Transform) {
		if sel.Selector == nil || pc.Controller == nil {
			return
		}
		bindSelector(w, e, sel, pc.Controller)
		c := pc.Controller

		switch {
		case !c.Enabled():
			sel.Selector.Clear()
			writePrompt(w, sel.PromptLabel, "")
			return
		case c.IsSitting():
			sel.Selector.Clear()
			if in.InteractPressed {
				c.StandUp()
				pc.Seat = 0
				writePrompt(w, sel.PromptLabel, "")
				return
			}
			writePrompt(w, sel.PromptLabel, standPrompt(sel))
			return
		}

		sel.Selector.Update(common.DT)
		if in.InteractPressed {
			sel.Selector.Interact()
		}
		writePrompt(w, sel.PromptLabel, sel.Selector.Prompt())
	})
}

func standPrompt(sel *component.Selector) string {
	msg := sel.StandPrompt
	if strings.TrimSpace(msg) == "" {
		msg = DefaultStandPrompt
	}
	key := sel.StandKey
	if key == "" {
		key = sel.Selector.Config().InteractKey
	}
	return strings.ReplaceAll(msg, "{key}", key)
}

func writePrompt(w *ecs.World, label, text string) {
	n, ok := textByName(w, label)
	if !ok {
		return
	}
	n.SetText(text)
	n.SetActive(text != "")
}

func bindSelector(w *ecs.World, e ecs.Entity, sel *component.Selector, c *player.Controller) {
	s := sel.Selector
	if s.Physics == nil {
		s.Physics = selectorPhysics{w: w, player: e}
	}
	if s.View == nil {
		s.View = playerEye{c: c}
	}
	if s.Projector == nil {
		s.Projector = eyeProjector{w: w, c: c}
	}
}

// interactTarget is an Interactable entity seen through the selector.
// Values are comparable, so the same entity is always the same target.
type interactTarget struct {
	w      *ecs.World
	e      ecs.Entity
	player ecs.Entity
}

func (t interactTarget) Prompt() string {
	if it, ok := ecs.Get(t.w, t.e, component.InteractableComponent.Kind()); ok {
		return it.Prompt
	}
	return ""
}

func (t interactTarget) SetHighlighted(on bool) {
	SetHighlighted(t.w, t.e, on)
}

func (t interactTarget) Interact() {
	switch {
	case ecs.Has(t.w, t.e, component.TalkComponent.Kind()):
		RequestTalk(t.w, t.e)
	case ecs.Has(t.w, t.e, component.SeatComponent.Kind()):
		Sit(t.w, t.player, t.e)
	}
}

// RequestTalk asks the dialogue system to open npc's conversation.
func RequestTalk(w *ecs.World, npc ecs.Entity) {
	req := ecs.CreateEntity(w)
	_ = ecs.Add(w, req, component.TalkRequestComponent.Kind(), &component.TalkRequest{NPC: uint64(npc)})
}

// Sit places the player in seat.
func Sit(w *ecs.World, playerEnt, seat ecs.Entity) {
	pc, ok := ecs.Get(w, playerEnt, component.PlayerControllerComponent.Kind())
	if !ok || pc.Controller == nil {
		return
	}
	st, ok := ecs.Get(w, seat, component.SeatComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, seat, component.TransformComponent.Kind())
	if !ok {
		return
	}
	pc.Controller.SitDown(player.Pose{
		Position: common.FromLocal(t.World, t.WorldYaw, st.Offset),
		Yaw:      t.WorldYaw + st.Yaw,
	})
	pc.Seat = uint64(seat)
}

func interactable(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.InteractableComponent.Kind()) && ActiveInHierarchy(w, e)
}

// selectorPhysics answers selector queries from the physics world.
type selectorPhysics struct {
	w      *ecs.World
	player ecs.Entity
}

func (p selectorPhysics) RaycastFirst(origin, direction common.Vec3, maxDistance float64, mask uint) (interaction.Hit, bool) {
	hit, ok := p.w.PhysicsWorld().RaycastFirst(origin, direction, maxDistance, mask)
	if !ok {
		return interaction.Hit{}, false
	}
	out := interaction.Hit{Distance: hit.Distance}
	if interactable(p.w, hit.Entity) {
		out.Target = interactTarget{w: p.w, e: hit.Entity, player: p.player}
	}
	return out, true
}

func (p selectorPhysics) OverlapSphere(origin common.Vec3, radius float64, mask uint) []interaction.Collider {
	var out []interaction.Collider
	for _, e := range p.w.PhysicsWorld().OverlapSphere(origin, radius, mask) {
		col := interaction.Collider{}
		if pos, ok := worldPosition(p.w, e); ok {
			col.Center = pos
		}
		if interactable(p.w, e) {
			col.Target = interactTarget{w: p.w, e: e, player: p.player}
			if tag, ok := FindTagged(p.w, e, "Head"); ok {
				if pos, ok := worldPosition(p.w, tag); ok {
					col.Center = pos
				}
			}
		}
		out = append(out, col)
	}
	return out
}

// playerEye is the selection origin: the camera, not the feet.
type playerEye struct {
	c *player.Controller
}

func (v playerEye) Position() common.Vec3 { return v.c.Eye() }
func (v playerEye) Forward() common.Vec3  { return v.c.Forward() }

// eyeProjector projects through the player's eye.
type eyeProjector struct {
	w *ecs.World
	c *player.Controller
}

func (p eyeProjector) WorldToViewport(v common.Vec3) common.Vec3 {
	cam := common.PerspectiveCamera{
		Position: p.c.Eye(),
		Yaw:      p.c.Yaw(),
		Pitch:    p.c.Pitch(),
	}
	if e, ok := ecs.First(p.w, component.CameraComponent.Kind()); ok {
		if mc, ok := ecs.Get(p.w, e, component.CameraComponent.Kind()); ok {
			cam.FOV = mc.FOV
		}
	}
	return cam.WorldToViewport(v)
}
