package system

import (
	"sort"

	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
)

// DefaultGestureHold is how long a non-default state plays when the
// animator sets no Hold.
const DefaultGestureHold = 1.5

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AnimatorComponent.Kind(), func(e ecs.Entity, anim *component.Animator) {
		if len(anim.Triggers) > 0 {
			fired := make([]string, 0, len(anim.Triggers))
			for name, on := range anim.Triggers {
				if on {
					fired = append(fired, name)
				}
			}
			sort.Strings(fired)
			if len(fired) > 0 {
				anim.State = fired[0]
				anim.StateTime = 0
			}
			clear(anim.Triggers)
		}

		if anim.State == "" {
			anim.State = anim.Default
		}
		anim.StateTime += common.DT

		hold := anim.Hold
		if hold <= 0 {
			hold = DefaultGestureHold
		}
		if anim.State != anim.Default && anim.StateTime >= hold {
			anim.State = anim.Default
			anim.StateTime = 0
		}
	})
}
