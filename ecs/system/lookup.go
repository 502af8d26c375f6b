package system

import (
	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
)

// FindByName returns the lowest-id live entity carrying name.
func FindByName(w *ecs.World, name string) (ecs.Entity, bool) {
	if w == nil || name == "" {
		return 0, false
	}
	for _, e := range ecs.Query(w, component.NameComponent.Kind()) {
		if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value == name {
			return e, true
		}
	}
	return 0, false
}

func nameOf(w *ecs.World, e ecs.Entity) string {
	if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok {
		return n.Value
	}
	return e.String()
}

func entityRef(w *ecs.World, id uint64) (ecs.Entity, bool) {
	e := ecs.Entity(id)
	if id == 0 || !ecs.IsAlive(w, e) {
		return 0, false
	}
	return e, true
}

// ActiveInHierarchy reports whether neither e nor any ancestor is Inactive.
func ActiveInHierarchy(w *ecs.World, e ecs.Entity) bool {
	for range maxHierarchyDepth {
		if !ecs.IsAlive(w, e) || ecs.Has(w, e, component.InactiveComponent.Kind()) {
			return false
		}
		p, ok := ecs.Get(w, e, component.ParentComponent.Kind())
		if !ok {
			return true
		}
		parent, ok := entityRef(w, p.Entity)
		if !ok {
			return true
		}
		e = parent
	}
	return true
}

// SetActive toggles the Inactive marker.
func SetActive(w *ecs.World, e ecs.Entity, active bool) {
	if !ecs.IsAlive(w, e) {
		return
	}
	if active {
		ecs.Remove(w, e, component.InactiveComponent.Kind())
		return
	}
	_ = ecs.Add(w, e, component.InactiveComponent.Kind(), &component.Inactive{})
}

// Children lists the direct children of e in id order.
func Children(w *ecs.World, e ecs.Entity) []ecs.Entity {
	var out []ecs.Entity
	for _, c := range ecs.Query(w, component.ParentComponent.Kind()) {
		if p, ok := ecs.Get(w, c, component.ParentComponent.Kind()); ok && p.Entity == uint64(e) {
			out = append(out, c)
		}
	}
	return out
}

// Hierarchy is e followed by all its descendants, depth first.
func Hierarchy(w *ecs.World, e ecs.Entity) []ecs.Entity {
	if !ecs.IsAlive(w, e) {
		return nil
	}
	out := []ecs.Entity{e}
	for i := 0; i < len(out) && i < maxHierarchySize; i++ {
		out = append(out, Children(w, out[i])...)
	}
	return out
}

// FindTagged searches e's hierarchy for a Tag.
func FindTagged(w *ecs.World, e ecs.Entity, tag string) (ecs.Entity, bool) {
	for _, c := range Hierarchy(w, e) {
		if t, ok := ecs.Get(w, c, component.TagComponent.Kind()); ok && t.Value == tag {
			return c, true
		}
	}
	return 0, false
}

func playerEntity(w *ecs.World) (ecs.Entity, bool) {
	return ecs.First(w, component.PlayerTagComponent.Kind())
}

func worldPosition(w *ecs.World, e ecs.Entity) (common.Vec3, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return common.Vec3{}, false
	}
	return t.World, true
}

// DestroyHierarchy removes e and everything under it.
func DestroyHierarchy(w *ecs.World, e ecs.Entity) {
	for _, c := range Hierarchy(w, e) {
		ecs.DestroyEntity(w, c)
	}
}

const (
	maxHierarchyDepth = 32
	maxHierarchySize  = 1024
)
