package system

import (
	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
	"github.com/milk9111/finalroom/player"
)

// PlayerSystem steps the player controller and writes its pose back to the
// player's Transform.
type PlayerSystem struct{}

func NewPlayerSystem() *PlayerSystem {
	return &PlayerSystem{}
}

func (s *PlayerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach3(w, component.PlayerControllerComponent.Kind(), component.TransformComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, pc *component.PlayerController, t *component.Transform, in *component.Input) {
		c := pc.Controller
		if c == nil {
			return
		}
		bindPlayer(w, e, pc)

		c.Update(common.DT, player.Input{MoveX: in.MoveX, MoveZ: in.MoveZ, LookX: in.LookX, LookY: in.LookY})
		t.Yaw = c.Yaw()
		t.Pitch = c.Pitch()
		// The head follows the look pitch; the body only turns.
		if head, ok := FindTagged(w, e, "Head"); ok {
			if ht, ok := ecs.Get(w, head, component.TransformComponent.Kind()); ok {
				ht.Pitch = c.Pitch()
			}
		}
	})
}

func bindPlayer(w *ecs.World, e ecs.Entity, pc *component.PlayerController) {
	c := pc.Controller
	if _, ok := c.Mover.(*playerMover); !ok {
		c.Mover = &playerMover{w: w, e: e, radius: pc.Radius}
	}
	if c.Animator == nil {
		if a, ok := animatorFor(w, e); ok {
			c.Animator = a
		}
	}
	if c.Audio == nil {
		if a, ok := audioFor(w, e); ok {
			c.Audio = a
		}
	}
}

// playerMover slides the player's circle through the blocking colliders
// and keeps it on a flat floor at y = 0.
type playerMover struct {
	w      *ecs.World
	e      ecs.Entity
	radius float64
}

func (m *playerMover) transform() *component.Transform {
	t, ok := ecs.Get(m.w, m.e, component.TransformComponent.Kind())
	if !ok {
		return nil
	}
	return t
}

func (m *playerMover) Move(delta common.Vec3) bool {
	t := m.transform()
	if t == nil {
		return false
	}
	radius := m.radius
	if radius <= 0 {
		radius = 0.3
	}
	next := m.w.PhysicsWorld().MoveCircle(m.e, t.Position, delta, radius, uint(component.LayerWorld))
	next.Y = t.Position.Y + delta.Y
	grounded := false
	if next.Y <= 0 {
		next.Y = 0
		grounded = true
	}
	t.Position = next
	t.World = next
	return grounded
}

func (m *playerMover) Position() common.Vec3 {
	if t := m.transform(); t != nil {
		return t.Position
	}
	return common.Vec3{}
}

func (m *playerMover) SetPosition(p common.Vec3) {
	if t := m.transform(); t != nil {
		t.Position = p
		t.World = p
	}
}
