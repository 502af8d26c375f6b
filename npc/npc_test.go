package npc

import (
	"math/rand/v2"
	"testing"
)

type fakeAnimator struct {
	plays    []string
	fades    []float64
	triggers []string
	resets   int
}

func (a *fakeAnimator) Play(state string, crossFade float64, _ int) {
	a.plays = append(a.plays, state)
	a.fades = append(a.fades, crossFade)
}
func (a *fakeAnimator) SetTrigger(name string) { a.triggers = append(a.triggers, name) }
func (a *fakeAnimator) ResetTrigger(string)    { a.resets++ }

func TestAnimationDriverTriggersNeverRepeat(t *testing.T) {
	cfg := DefaultAnimationConfig()
	cfg.Triggers = []string{"Wave", "Nod", "Shrug"}
	anim := &fakeAnimator{}
	d := NewAnimationDriver("marta", cfg, anim)
	d.Rand = rand.New(rand.NewPCG(7, 11))

	for range 50 {
		d.TriggerRandom()
	}
	if len(anim.triggers) != 50 {
		t.Fatalf("triggers = %d", len(anim.triggers))
	}
	for i := 1; i < len(anim.triggers); i++ {
		if anim.triggers[i] == anim.triggers[i-1] {
			t.Fatalf("trigger %d repeated %q", i, anim.triggers[i])
		}
	}
	if anim.resets != 150 {
		t.Fatalf("resets = %d, want 150", anim.resets)
	}
}

func TestAnimationDriverStates(t *testing.T) {
	cases := []struct {
		name      string
		crossFade float64
		want      float64
	}{
		{"crossfade", 0.05, 0.05},
		{"immediate", -1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultAnimationConfig()
			cfg.UseStates = true
			cfg.States = []string{"Talk"}
			cfg.Triggers = []string{"Wave"}
			cfg.CrossFade = tc.crossFade
			anim := &fakeAnimator{}
			d := NewAnimationDriver("marta", cfg, anim)
			d.TriggerRandom()
			d.TriggerRandom()
			if len(anim.plays) != 2 || anim.plays[1] != "Talk" || anim.fades[0] != tc.want {
				t.Fatalf("plays=%v fades=%v", anim.plays, anim.fades)
			}
			if len(anim.triggers) != 0 {
				t.Fatalf("triggers used in state mode")
			}
		})
	}
}

func TestAnimationDriverEmptyConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  AnimationConfig
	}{
		{"nothing", AnimationConfig{}},
		{"empty_trigger", AnimationConfig{Triggers: []string{""}}},
		{"empty_state", AnimationConfig{UseStates: true, States: []string{""}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			anim := &fakeAnimator{}
			NewAnimationDriver("x", tc.cfg, anim).TriggerRandom()
			if len(anim.plays)+len(anim.triggers)+anim.resets != 0 {
				t.Fatalf("animator touched: %+v", anim)
			}
		})
	}
}

type fakeHost struct {
	animated   int
	registered []string
	prompt     string
	seconds    float64
}

func (h *fakeHost) Animate()           { h.animated++ }
func (h *fakeHost) Register(id string) { h.registered = append(h.registered, id) }
func (h *fakeHost) Prompt(text string, s float64) {
	h.prompt = text
	h.seconds = s
}

const testScript = `
on_start := func(engine, state) {
	state.lines = 0
	engine.register("  marta ")
}

on_line := func(engine, state, speaker, index, text) {
	if speaker == "npc" {
		engine.animate()
	}
	state.lines = index + 1
	state.last = text
}

on_end := func(engine, state) {
	engine.prompt("Thanks for talking", 3)
	engine.log("done after", state.lines, "lines")
}
`

func TestScriptHooks(t *testing.T) {
	s, err := CompileScript("marta", []byte(testScript))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	host := &fakeHost{}

	s.Start(host)
	s.Line(host, "npc", 0, "Hello there.")
	s.Line(host, "player", 1, "Hi!")
	s.End(host)

	if len(host.registered) != 1 || host.registered[0] != "marta" {
		t.Fatalf("registered = %v", host.registered)
	}
	if host.animated != 1 {
		t.Fatalf("animated = %d, want 1", host.animated)
	}
	if host.prompt != "Thanks for talking" || host.seconds != 3 {
		t.Fatalf("prompt = %q %v", host.prompt, host.seconds)
	}
	state := s.State()
	if state["lines"] != 2 || state["last"] != "Hi!" {
		t.Fatalf("state = %v", state)
	}
}

func TestScriptOptionalHooks(t *testing.T) {
	s, err := CompileScript("quiet", []byte(`
on_line := func(engine, state, speaker, index, text) {
	engine.animate()
}
`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if s.Has(hookStart) || !s.Has(hookLine) || s.Has(hookEnd) {
		t.Fatalf("hooks = %v", s.hooks)
	}
	host := &fakeHost{}
	s.Start(host)
	s.Line(host, "npc", 0, "x")
	s.End(host)
	if host.animated != 1 {
		t.Fatalf("animated = %d", host.animated)
	}
}

func TestScriptRuntimeErrorIsContained(t *testing.T) {
	s, err := CompileScript("broken", []byte(`
on_start := func(engine, state) {
	n := 1
	state.bad = n + "a"
}
on_line := func(engine, state, speaker, index, text) {
	engine.animate()
}
`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	host := &fakeHost{}
	s.Start(host)
	s.Line(host, "npc", 0, "still talking")
	if host.animated != 1 {
		t.Fatalf("script stopped after error")
	}
}

func TestScriptCompileError(t *testing.T) {
	if _, err := CompileScript("bad", []byte(`on_start := func(`)); err == nil {
		t.Fatalf("expected compile error")
	}
}
