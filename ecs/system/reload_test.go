package system

import (
	"errors"
	"testing"

	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
	"github.com/milk9111/finalroom/npc"
)

func addTalker(t *testing.T, w *ecs.World, id, script string) *component.Talk {
	t.Helper()
	e := ecs.CreateEntity(w)
	talk := &component.Talk{ID: id, ScriptPath: script}
	if err := ecs.Add(w, e, component.TalkComponent.Kind(), talk); err != nil {
		t.Fatalf("add talk: %v", err)
	}
	return talk
}

func TestReloadScripts(t *testing.T) {
	w := ecs.NewWorld()
	marta := addTalker(t, w, "marta", "marta.tengo")
	oskar := addTalker(t, w, "oskar", "scripts/marta.tengo")
	lena := addTalker(t, w, "lena", "lena.tengo")

	var compiled []string
	s := NewReloadSystem(nil)
	s.Script = func(name, path string) (*npc.Script, error) {
		compiled = append(compiled, name)
		return npc.CompileScript(name, []byte(`on_start := func(engine, state) {}`))
	}

	RequestReload(w, "/work/prefabs/scripts/marta.tengo")
	RequestReload(w, "prefabs/scripts/marta.tengo")
	s.Update(w)

	if len(compiled) != 2 {
		t.Fatalf("compiled = %v, want one compile per user", compiled)
	}
	if marta.Script == nil || oskar.Script == nil || marta.Script == oskar.Script {
		t.Fatalf("scripts not replaced per NPC")
	}
	if lena.Script != nil {
		t.Fatalf("unrelated script reloaded")
	}
	evts := w.Events().Peek(ecs.EventPrefabReloaded)
	if len(evts) != 1 || evts[0].Data != "scripts/marta.tengo" {
		t.Fatalf("events = %+v", evts)
	}
	if len(ecs.Query(w, component.ReloadRequestComponent.Kind())) != 0 {
		t.Fatalf("requests not consumed")
	}
}

func TestReloadScriptCompileFailureKeepsOld(t *testing.T) {
	w := ecs.NewWorld()
	old, err := npc.CompileScript("marta", []byte(`on_end := func(engine, state) {}`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	talk := addTalker(t, w, "marta", "marta.tengo")
	talk.Script = old

	s := NewReloadSystem(nil)
	s.Script = func(string, string) (*npc.Script, error) { return nil, errors.New("syntax") }
	RequestReload(w, "marta.tengo")
	s.Update(w)

	if talk.Script != old {
		t.Fatalf("failed compile replaced the running script")
	}
	if len(w.Events().Peek(ecs.EventPrefabReloaded)) != 0 {
		t.Fatalf("failed reload announced")
	}
}

func TestReloadPrefabDispatch(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		n      int
		err    error
		called bool
		event  bool
	}{
		{"yaml", "prefabs/npc.yaml", 3, nil, true, true},
		{"yml", "door.yml", 1, nil, true, true},
		{"unused", "prefabs/chair.yaml", 0, nil, true, false},
		{"error", "prefabs/npc.yaml", 0, errors.New("bad"), true, false},
		{"other", "notes.txt", 1, nil, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			called := false
			s := NewReloadSystem(func(_ *ecs.World, path string) (int, error) {
				called = true
				return tc.n, tc.err
			})
			RequestReload(w, tc.path)
			s.Update(w)
			if called != tc.called {
				t.Fatalf("prefab reload called = %v", called)
			}
			if got := len(w.Events().Peek(ecs.EventPrefabReloaded)) == 1; got != tc.event {
				t.Fatalf("event = %v, want %v", got, tc.event)
			}
		})
	}
}
