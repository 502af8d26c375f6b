package system

import (
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
)

// CounterSystem binds the conversation counter to its label and announces
// completion. Counting itself happens as conversations end.
type CounterSystem struct{}

func NewCounterSystem() *CounterSystem {
	return &CounterSystem{}
}

func (s *CounterSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.CounterComponent.Kind(), func(e ecs.Entity, c *component.Counter) {
		if c.Bound || c.Counter == nil {
			return
		}
		if n, ok := textByName(w, c.Label); ok {
			c.Counter.Label = n
		}
		prev := c.Counter.OnCompleted
		c.Counter.OnCompleted = func() {
			if prev != nil {
				prev()
			}
			w.Events().Push(ecs.Event{Type: ecs.EventConversationsDone, Entity: e})
		}
		c.Counter.UpdateLabel()
		c.Bound = true
	})
}
