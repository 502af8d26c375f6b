package system

import (
	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
)

// TransformSystem resolves world poses through the Parent chain.
type TransformSystem struct{}

func NewTransformSystem() *TransformSystem {
	return &TransformSystem{}
}

func (s *TransformSystem) Update(w *ecs.World) {
	ResolveTransforms(w)
}

// ResolveTransforms recomputes World and WorldYaw for every Transform.
// Systems that move an entity and need the result in the same tick can
// call it directly.
func ResolveTransforms(w *ecs.World) {
	if w == nil {
		return
	}
	done := map[ecs.Entity]bool{}
	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Transform) {
		resolve(w, e, done, 0)
	})
}

func resolve(w *ecs.World, e ecs.Entity, done map[ecs.Entity]bool, depth int) *component.Transform {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil
	}
	if done[e] {
		return t
	}
	done[e] = true

	t.World, t.WorldYaw, t.WorldPitch = t.Position, t.Yaw, t.Pitch
	if depth >= maxHierarchyDepth {
		return t
	}
	p, ok := ecs.Get(w, e, component.ParentComponent.Kind())
	if !ok {
		return t
	}
	parent, ok := entityRef(w, p.Entity)
	if !ok {
		return t
	}
	pt := resolve(w, parent, done, depth+1)
	if pt == nil {
		return t
	}
	t.World = common.FromLocal(pt.World, pt.WorldYaw, t.Position)
	t.WorldYaw = pt.WorldYaw + t.Yaw
	t.WorldPitch = pt.WorldPitch + t.Pitch
	return t
}
