package ecs

import "github.com/hajimehoshi/ebiten/v2"

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// Renderer draws world state. Systems that also implement it are drawn in
// scheduler order.
type Renderer interface {
	Draw(w *World, screen *ebiten.Image)
}

type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs every system, then drops the events nobody drained.
func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
	w.Events().flush()
}

func (s *Scheduler) Draw(w *World, screen *ebiten.Image) {
	for _, system := range s.systems {
		if r, ok := system.(Renderer); ok {
			r.Draw(w, screen)
		}
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
