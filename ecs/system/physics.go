package system

import (
	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
)

// PhysicsSystem mirrors Collider components into the world's physics
// space. Inactive entities keep their collider but drop out of queries.
type PhysicsSystem struct {
	known map[ecs.Entity]bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{known: make(map[ecs.Entity]bool)}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		pw = ecs.NewPhysicsWorld()
		w.SetPhysicsWorld(pw)
	}

	seen := make(map[ecs.Entity]bool, len(ps.known))
	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, col *component.Collider, t *component.Transform) {
		seen[e] = true
		center := common.FromLocal(t.World, t.WorldYaw, col.Offset)
		if !pw.Has(e) {
			pw.AddCollider(e, colliderDef(w, e, col), center, t.WorldYaw)
		} else {
			pw.SetPose(e, center, t.WorldYaw)
		}
		pw.SetEnabled(e, ActiveInHierarchy(w, e))
	})

	for e := range ps.known {
		if !seen[e] {
			pw.Remove(e)
		}
	}
	ps.known = seen
	pw.Step(common.DT)
}

func colliderDef(w *ecs.World, e ecs.Entity, col *component.Collider) ecs.ColliderDef {
	def := ecs.ColliderDef{
		Kind:   ecs.ShapeBox,
		Width:  col.Width,
		Depth:  col.Depth,
		Radius: col.Radius,
	}
	if col.Shape == component.ColliderCircle {
		def.Kind = ecs.ShapeCircle
	}

	var layer uint32
	if cl, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
		layer = cl.Category
	}
	if col.Blocking || layer == 0 {
		layer |= component.LayerWorld
	}
	def.Layer = uint(layer)
	return def
}
