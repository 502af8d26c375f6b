package system

import (
	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
)

// TypewriterSystem binds standalone typing panels and advances them.
type TypewriterSystem struct{}

func NewTypewriterSystem() *TypewriterSystem {
	return &TypewriterSystem{}
}

func (s *TypewriterSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.TypingPanelComponent.Kind(), func(e ecs.Entity, tp *component.TypingPanel) {
		if tp.Panel == nil {
			return
		}
		if !tp.Bound {
			tp.Panel.Root = objectNode{w: w, e: e}
			if n, ok := textByName(w, tp.Text); ok {
				tp.Panel.Text = n
			} else {
				tp.Panel.Text = textNode{w: w, e: e}
			}
			if tp.Panel.Message() == "" {
				tp.Panel.Root.SetActive(false)
			}
			tp.Bound = true
		}
		tp.Panel.Update(common.DT)
	})
}
