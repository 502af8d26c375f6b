package system_test

import (
	"testing"

	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
	"github.com/milk9111/finalroom/ecs/entity"
	"github.com/milk9111/finalroom/ecs/system"
	"github.com/milk9111/finalroom/gate"
)

type room struct {
	w       *ecs.World
	sched   *ecs.Scheduler
	player  ecs.Entity
	npc     ecs.Entity
	door    ecs.Entity
	mission ecs.Entity
}

func build(t *testing.T, w *ecs.World, prefab string, overrides map[string]any) ecs.Entity {
	t.Helper()
	e, err := entity.BuildEntityWithOverrides(w, prefab, overrides)
	if err != nil {
		t.Fatalf("build %s: %v", prefab, err)
	}
	return e
}

func newRoom(t *testing.T) *room {
	t.Helper()
	w := ecs.NewWorld()
	r := &room{w: w}
	build(t, w, "hud.yaml", nil)
	build(t, w, "dialogue_ui.yaml", nil)
	build(t, w, "counter.yaml", map[string]any{"counter": map[string]any{"required": 1}})
	r.player = build(t, w, "player.yaml", map[string]any{"transform": map[string]any{"z": -4.0}})
	r.npc = build(t, w, "npc.yaml", map[string]any{
		"transform": map[string]any{"x": 3.0, "z": -4.0},
		"talk":      map[string]any{"id": "marta", "paragraph": "NPC: Hi. Player: Hello."},
	})
	r.door = build(t, w, "sliding_door.yaml", map[string]any{"transform": map[string]any{"z": 1.0}})
	r.mission = build(t, w, "mission.yaml", map[string]any{"transform": map[string]any{"x": -3.0, "z": -4.0}})

	r.sched = ecs.NewScheduler(
		system.NewTransformSystem(),
		system.NewPhysicsSystem(),
		system.NewPlayerSystem(),
		system.NewInteractionSystem(),
		system.NewDialogueSystem(),
		system.NewDoorSystem(),
		system.NewCounterSystem(),
		system.NewMissionSystem(entity.Spawn),
		system.NewTypewriterSystem(),
		&system.AudioSystem{},
		system.NewAnimationSystem(),
	)
	r.tick(1)
	return r
}

func (r *room) tick(n int) {
	for range n {
		r.sched.Update(r.w)
	}
}

func (r *room) movePlayer(p common.Vec3) {
	tr, _ := ecs.Get(r.w, r.player, component.TransformComponent.Kind())
	tr.Position = p
	tr.World = p
}

func (r *room) label(t *testing.T, name string) string {
	t.Helper()
	e, ok := system.FindByName(r.w, name)
	if !ok {
		t.Fatalf("no entity named %q", name)
	}
	txt, ok := ecs.Get(r.w, e, component.TextComponent.Kind())
	if !ok {
		t.Fatalf("%s has no text", name)
	}
	return txt.Value
}

func (r *room) doorPosition() common.Vec3 {
	tr, _ := ecs.Get(r.w, r.door, component.TransformComponent.Kind())
	return tr.Position
}

func (r *room) session(t *testing.T) *component.DialogueUI {
	t.Helper()
	e, ok := ecs.First(r.w, component.DialogueUIComponent.Kind())
	if !ok {
		t.Fatalf("no dialogue ui")
	}
	ui, _ := ecs.Get(r.w, e, component.DialogueUIComponent.Kind())
	return ui
}

func (r *room) counter(t *testing.T) *gate.ConversationCounter {
	t.Helper()
	e, ok := ecs.First(r.w, component.CounterComponent.Kind())
	if !ok {
		t.Fatalf("no counter")
	}
	c, _ := ecs.Get(r.w, e, component.CounterComponent.Kind())
	if c.Counter == nil {
		t.Fatalf("counter not bound")
	}
	return c.Counter
}

func TestDoorUnlocksOnceConversationStarts(t *testing.T) {
	r := newRoom(t)

	r.movePlayer(common.Vec3{X: 0.5})
	r.tick(30)
	if got := r.label(t, "DoorMessage"); got != gate.DefaultLockedMessage {
		t.Fatalf("door message = %q", got)
	}
	if p := r.doorPosition(); p.X != 0 || p.Z != 1 {
		t.Fatalf("locked door moved to %+v", p)
	}

	r.movePlayer(common.Vec3{Z: -4})
	r.tick(2)

	system.RequestTalk(r.w, r.npc)
	r.tick(1)
	ui := r.session(t)
	if !ui.Session.IsOpen() {
		t.Fatalf("conversation did not open")
	}
	pc, _ := ecs.Get(r.w, r.player, component.PlayerControllerComponent.Kind())
	if pc.Controller.Enabled() {
		t.Fatalf("controls stay enabled during a conversation")
	}
	if got := r.counter(t).Count(); got != 1 {
		t.Fatalf("count after opening = %d, want 1", got)
	}
	if got := r.label(t, "CounterLabel"); got != gate.DefaultCompletedMessage {
		t.Fatalf("counter label after opening = %q", got)
	}

	in, _ := ecs.Get(r.w, r.player, component.InputComponent.Kind())
	for i := 0; i < 20 && ui.Session.IsOpen(); i++ {
		in.AdvancePressed = true
		r.tick(1)
		in.AdvancePressed = false
		r.tick(1)
	}
	if ui.Session.IsOpen() {
		t.Fatalf("conversation never ended")
	}
	if !pc.Controller.Enabled() {
		t.Fatalf("controls not restored")
	}
	if got := r.counter(t).Count(); got != 1 {
		t.Fatalf("count after ending = %d, want 1", got)
	}

	r.movePlayer(common.Vec3{X: 0.5})
	r.tick(30)
	if p := r.doorPosition(); p.X < 0.5 {
		t.Fatalf("door did not open, at %+v", p)
	}
}

func TestUngatedDoorOpensImmediately(t *testing.T) {
	r := newRoom(t)
	sd, _ := ecs.Get(r.w, r.door, component.SlidingDoorComponent.Kind())
	sd.Ungated = true
	sd.Bound = false
	sd.Door.Gate = nil

	r.movePlayer(common.Vec3{X: 0.5})
	r.tick(30)
	if p := r.doorPosition(); p.X < 0.5 {
		t.Fatalf("ungated door stayed shut at %+v", p)
	}
}

func TestTalkRequestWithoutParagraphKeepsControls(t *testing.T) {
	r := newRoom(t)
	talk, _ := ecs.Get(r.w, r.npc, component.TalkComponent.Kind())
	talk.Paragraph = "   "

	system.RequestTalk(r.w, r.npc)
	r.tick(1)
	if r.session(t).Session.IsOpen() {
		t.Fatalf("empty paragraph opened a conversation")
	}
	pc, _ := ecs.Get(r.w, r.player, component.PlayerControllerComponent.Kind())
	if !pc.Controller.Enabled() {
		t.Fatalf("controls disabled by an empty conversation")
	}
	if got := r.counter(t).Count(); got != 0 {
		t.Fatalf("empty conversation counted, count = %d", got)
	}
}

func TestMissionClosesOpenConversation(t *testing.T) {
	r := newRoom(t)

	system.RequestTalk(r.w, r.npc)
	r.tick(1)
	ui := r.session(t)
	if !ui.Session.IsOpen() {
		t.Fatalf("conversation did not open")
	}

	r.movePlayer(common.Vec3{X: -3, Z: -4})
	r.tick(1)

	m, _ := ecs.Get(r.w, r.mission, component.MissionComponent.Kind())
	if !m.Mission.Active() {
		t.Fatalf("mission did not activate")
	}
	if ui.Session.IsOpen() {
		t.Fatalf("conversation still open after the mission took over")
	}
	if ui.Speaking != 0 {
		t.Fatalf("speaker not cleared")
	}
	pc, _ := ecs.Get(r.w, r.player, component.PlayerControllerComponent.Kind())
	if pc.Controller.Enabled() {
		t.Fatalf("mission left the player controls enabled")
	}
}
