package ecs

import (
	"sort"

	"github.com/milk9111/finalroom/ecs/component"
)

// ForEach visits every live entity holding kind. The visit order is the
// table's dense order; fn may add or remove components.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	sa := table(w, ka, false)
	if sa == nil {
		return
	}
	for _, id := range sa.ids() {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, ok := sa.get(id)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sb := table(w, kb, false)
	if sb == nil {
		return
	}
	ForEach(w, ka, func(e Entity, a *A) {
		if b, ok := sb.get(e.id()); ok {
			fn(e, a, b)
		}
	})
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sc := table(w, kc, false)
	if sc == nil {
		return
	}
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		if c, ok := sc.get(e.id()); ok {
			fn(e, a, b, c)
		}
	})
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sd := table(w, kd, false)
	if sd == nil {
		return
	}
	ForEach3(w, ka, kb, kc, func(e Entity, a *A, b *B, c *C) {
		if d, ok := sd.get(e.id()); ok {
			fn(e, a, b, c, d)
		}
	})
}

// First returns the lowest-id live entity holding kind.
func First[A any](w *World, ka component.ComponentKind[A]) (Entity, bool) {
	sa := table(w, ka, false)
	if sa == nil {
		return 0, false
	}
	var best Entity
	found := false
	for _, id := range sa.dense {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		if !found || e.id() < best.id() {
			best = e
			found = true
		}
	}
	return best, found
}

// Query collects the live entities holding kind, in id order.
func Query[A any](w *World, ka component.ComponentKind[A]) []Entity {
	var out []Entity
	ForEach(w, ka, func(e Entity, _ *A) { out = append(out, e) })
	sortEntities(out)
	return out
}

func sortEntities(ents []Entity) {
	sort.Slice(ents, func(i, j int) bool { return ents[i].id() < ents[j].id() })
}
