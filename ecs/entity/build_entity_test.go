package entity

import (
	"testing"

	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
	"github.com/milk9111/finalroom/interaction"
)

func findByName(t *testing.T, w *ecs.World, name string) ecs.Entity {
	t.Helper()
	for _, e := range ecs.Query(w, component.NameComponent.Kind()) {
		if n, _ := ecs.Get(w, e, component.NameComponent.Kind()); n.Value == name {
			return e
		}
	}
	t.Fatalf("no entity named %q", name)
	return 0
}

func TestBuildEntityPlayer(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "player.yaml")
	if err != nil {
		t.Fatalf("build player: %v", err)
	}

	if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) || !ecs.Has(w, e, component.InputComponent.Kind()) {
		t.Fatalf("player is missing its tag or input")
	}
	pc, ok := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	if !ok || pc.Controller == nil || pc.Radius != 0.3 {
		t.Fatalf("player controller = %+v", pc)
	}
	sel, ok := ecs.Get(w, e, component.SelectorComponent.Kind())
	if !ok || sel.Selector == nil {
		t.Fatalf("selector missing")
	}
	cfg := sel.Selector.Config()
	if cfg.Mode != interaction.ModeBestCandidate || cfg.Mask != uint(component.LayerInteractable) || cfg.MaxDistance != 2.2 {
		t.Fatalf("selector config = %+v", cfg)
	}
	if sel.PromptLabel != "PromptLabel" {
		t.Fatalf("prompt label = %q", sel.PromptLabel)
	}
	ref, ok := ecs.Get(w, e, component.PrefabRefComponent.Kind())
	if !ok || ref.Path != "player.yaml" {
		t.Fatalf("prefab ref = %+v", ref)
	}

	eye := findByName(t, w, "PlayerEye")
	parent, ok := ecs.Get(w, eye, component.ParentComponent.Kind())
	if !ok || ecs.Entity(parent.Entity) != e {
		t.Fatalf("eye parent = %+v", parent)
	}
	tag, ok := ecs.Get(w, eye, component.TagComponent.Kind())
	if !ok || tag.Value != "Head" {
		t.Fatalf("eye tag = %+v", tag)
	}
	vc, ok := ecs.Get(w, eye, component.VirtualCameraComponent.Kind())
	if !ok || vc.Priority != 10 {
		t.Fatalf("eye camera = %+v", vc)
	}
}

func TestBuildEntityWithOverrides(t *testing.T) {
	w := ecs.NewWorld()
	overrides := map[string]any{
		"transform": map[string]any{"x": 2.5, "yaw": 90.0},
		"talk":      map[string]any{"id": "marta", "paragraph": "NPC: Hello."},
	}
	e, err := BuildEntityWithOverrides(w, "npc.yaml", overrides)
	if err != nil {
		t.Fatalf("build npc: %v", err)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.Position.X != 2.5 || tr.Yaw != 90 {
		t.Fatalf("transform = %+v", tr)
	}
	talk, _ := ecs.Get(w, e, component.TalkComponent.Kind())
	if talk.ID != "marta" || talk.Paragraph != "NPC: Hello." || !talk.Counts {
		t.Fatalf("talk = %+v", talk)
	}
	if talk.Driver == nil || len(talk.Driver.Config().Triggers) != 3 {
		t.Fatalf("talk driver = %+v", talk.Driver)
	}
	ref, _ := ecs.Get(w, e, component.PrefabRefComponent.Kind())
	if ref.Path != "npc.yaml" || ref.Overrides["talk"] == nil {
		t.Fatalf("prefab ref = %+v", ref)
	}
}

func TestBuildEntityErrors(t *testing.T) {
	cases := []struct {
		name      string
		prefab    string
		overrides map[string]any
	}{
		{"missing_prefab", "nope.yaml", nil},
		{"unknown_component", "wall.yaml", map[string]any{"jetpack": map[string]any{}}},
		{"bad_collider", "wall.yaml", map[string]any{"collider": map[string]any{"shape": "hexagon"}}},
		{"bad_layer", "chair.yaml", map[string]any{"collision_layer": map[string]any{"category": []any{"lava"}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			if _, err := BuildEntityWithOverrides(w, tc.prefab, tc.overrides); err == nil {
				t.Fatalf("expected an error")
			}
			if n := ecs.Count(w); n != 0 {
				t.Fatalf("%d entities left behind", n)
			}
		})
	}
}

func TestMergeComponents(t *testing.T) {
	base := map[string]any{
		"shape":    map[string]any{"kind": "box", "width": 1.0},
		"collider": map[string]any{"shape": "box"},
	}
	out := mergeComponents(base, map[string]any{
		"shape": map[string]any{"width": 12.0},
		"light": map[string]any{"range": 2.0},
	})

	shape := out["shape"].(map[string]any)
	if shape["kind"] != "box" || shape["width"] != 12.0 {
		t.Fatalf("shape = %v", shape)
	}
	if _, ok := out["light"]; !ok {
		t.Fatalf("override did not add a component")
	}
	if base["shape"].(map[string]any)["width"] != 1.0 {
		t.Fatalf("base was modified")
	}
}

func TestSpawnUsesRecordedOverrides(t *testing.T) {
	w := ecs.NewWorld()
	src, err := BuildEntityWithOverrides(w, "mission_target.yaml", map[string]any{
		"mission_target": map[string]any{"order": 1, "action": "AccuseB"},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	ref, _ := ecs.Get(w, src, component.PrefabRefComponent.Kind())

	clone, err := Spawn(w, ref)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if clone == src {
		t.Fatalf("spawn returned the source")
	}
	mt, ok := ecs.Get(w, clone, component.MissionTargetComponent.Kind())
	if !ok || mt.Order != 1 || mt.Action != "AccuseB" {
		t.Fatalf("clone target = %+v", mt)
	}
	if _, err := Spawn(w, &component.PrefabRef{}); err == nil {
		t.Fatalf("expected error for empty ref")
	}
}
