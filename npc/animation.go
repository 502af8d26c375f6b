package npc

import (
	"log"
	"math/rand/v2"
)

type Animator interface {
	Play(state string, crossFade float64, layer int)
	SetTrigger(name string)
	ResetTrigger(name string)
}

type AnimationConfig struct {
	Triggers           []string
	UseStates          bool
	States             []string
	CrossFade          float64
	Layer              int
	ResetTriggers      bool
	AvoidRepeatingLast bool
}

func DefaultAnimationConfig() AnimationConfig {
	return AnimationConfig{
		CrossFade:          0.05,
		ResetTriggers:      true,
		AvoidRepeatingLast: true,
	}
}

// AnimationDriver plays a random talking gesture on each call.
type AnimationDriver struct {
	Name     string
	cfg      AnimationConfig
	Animator Animator
	Rand     *rand.Rand

	lastTrigger int
	lastState   int
}

func NewAnimationDriver(name string, cfg AnimationConfig, animator Animator) *AnimationDriver {
	return &AnimationDriver{Name: name, cfg: cfg, Animator: animator, lastTrigger: -1, lastState: -1}
}

func (d *AnimationDriver) Config() AnimationConfig {
	return d.cfg
}

func (d *AnimationDriver) TriggerRandom() {
	if d.Animator == nil {
		return
	}

	if d.cfg.UseStates && len(d.cfg.States) > 0 {
		i := d.index(len(d.cfg.States), d.lastState)
		state := d.cfg.States[i]
		if state == "" {
			log.Printf("npc: %s: animation state at index %d is empty", d.Name, i)
			return
		}
		crossFade := d.cfg.CrossFade
		if crossFade < 0 {
			crossFade = 0
		}
		d.Animator.Play(state, crossFade, d.cfg.Layer)
		d.lastState = i
		return
	}

	if len(d.cfg.Triggers) == 0 {
		log.Printf("npc: %s: no animation triggers configured", d.Name)
		return
	}

	i := d.index(len(d.cfg.Triggers), d.lastTrigger)
	trigger := d.cfg.Triggers[i]
	if trigger == "" {
		log.Printf("npc: %s: animation trigger at index %d is empty", d.Name, i)
		return
	}
	if d.cfg.ResetTriggers {
		for _, t := range d.cfg.Triggers {
			if t != "" {
				d.Animator.ResetTrigger(t)
			}
		}
	}
	d.Animator.SetTrigger(trigger)
	d.lastTrigger = i
}

func (d *AnimationDriver) index(n, last int) int {
	i := d.intN(n)
	if n > 1 && d.cfg.AvoidRepeatingLast && i == last {
		i = (i + 1) % n
	}
	return i
}

func (d *AnimationDriver) intN(n int) int {
	if d.Rand != nil {
		return d.Rand.IntN(n)
	}
	return rand.IntN(n)
}
