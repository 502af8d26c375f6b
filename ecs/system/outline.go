package system

import (
	"fmt"
	"slices"
	"strings"

	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
)

// SetHighlighted adds one outline material instance to every renderer in
// e's hierarchy, skipping the Outline's excluded names, or restores the
// saved material lists. Repeating a call is a no-op.
func SetHighlighted(w *ecs.World, e ecs.Entity, on bool) {
	outline, ok := ecs.Get(w, e, component.OutlineComponent.Kind())
	if !ok || outline.Highlighted == on {
		return
	}
	outline.Highlighted = on

	for _, node := range Hierarchy(w, e) {
		r, ok := ecs.Get(w, node, component.RendererComponent.Kind())
		if !ok {
			continue
		}
		if slices.Contains(outline.Exclude, nameOf(w, node)) {
			continue
		}
		if on {
			if !r.HasSaved {
				r.Saved = slices.Clone(r.Materials)
				r.HasSaved = true
			}
			r.Materials = append(slices.Clone(r.Saved), outlineInstance(e))
			continue
		}
		if r.HasSaved {
			r.Materials = r.Saved
			r.Saved = nil
			r.HasSaved = false
		}
	}
}

// StripOutline removes every outline material from e's hierarchy and drops
// the outline itself, so a clone never shows or restores a highlight it
// copied from its source.
func StripOutline(w *ecs.World, e ecs.Entity) {
	for _, node := range Hierarchy(w, e) {
		if r, ok := ecs.Get(w, node, component.RendererComponent.Kind()); ok {
			r.Materials = slices.DeleteFunc(r.Materials, isOutlineMaterial)
			r.Saved = nil
			r.HasSaved = false
		}
		ecs.Remove(w, node, component.OutlineComponent.Kind())
	}
}

// Highlighted reports whether any renderer under e carries an outline.
func Highlighted(w *ecs.World, e ecs.Entity) bool {
	for _, node := range Hierarchy(w, e) {
		if r, ok := ecs.Get(w, node, component.RendererComponent.Kind()); ok && slices.ContainsFunc(r.Materials, isOutlineMaterial) {
			return true
		}
	}
	return false
}

func outlineInstance(owner ecs.Entity) string {
	return fmt.Sprintf("%s#%s", component.OutlineShader, owner)
}

func isOutlineMaterial(m string) bool {
	return strings.HasPrefix(m, component.OutlineShader)
}
