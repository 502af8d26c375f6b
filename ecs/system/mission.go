package system

import (
	"fmt"
	"log"
	"sort"

	"github.com/milk9111/finalroom/cinematic"
	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
	"github.com/milk9111/finalroom/music"
)

// SpawnFunc builds a prefab with its recorded overrides, children
// included, and returns its root.
type SpawnFunc func(w *ecs.World, ref *component.PrefabRef) (ecs.Entity, error)

const defaultMissionRadius = 0.6

// MissionSystem runs the final-room selection and the cinematic actions the
// choices trigger.
type MissionSystem struct {
	Spawn SpawnFunc
}

func NewMissionSystem(spawn SpawnFunc) *MissionSystem {
	return &MissionSystem{Spawn: spawn}
}

func (s *MissionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.ActionComponent.Kind(), func(e ecs.Entity, a *component.Action) {
		if !a.Bound {
			s.bindAction(w, e, a)
		}
		if a.Action != nil {
			a.Action.Update(common.DT)
		}
	})

	var in cinematic.MissionInput
	playerPos, hasPlayer := common.Vec3{}, false
	if p, ok := playerEntity(w); ok {
		playerPos, hasPlayer = worldPosition(w, p)
		if input, ok := ecs.Get(w, p, component.InputComponent.Kind()); ok {
			in = cinematic.MissionInput{Prev: input.PrevPressed, Next: input.NextPressed, Select: input.SelectPressed}
		}
	}

	ecs.ForEach(w, component.MissionComponent.Kind(), func(e ecs.Entity, m *component.Mission) {
		if m.Mission == nil {
			return
		}
		if !m.Bound {
			bindMission(w, e, m)
		}
		if m.Mission.Active() {
			m.Mission.Update(in)
			return
		}
		if !hasPlayer || !ActiveInHierarchy(w, e) || !missionTriggered(w, e, m, playerPos) {
			return
		}
		// Closing ends the talk and hands controls back; the mission then
		// takes them.
		closeConversation(w)
		m.Mission.Activate()
		RequestMusicState(w, music.FinalMission, false)
		w.Events().Push(ecs.Event{Type: ecs.EventMissionActivated, Entity: e})
	})
}

func missionTriggered(w *ecs.World, e ecs.Entity, m *component.Mission, p common.Vec3) bool {
	radius := m.Radius
	if radius <= 0 {
		radius = defaultMissionRadius
	}
	for _, hit := range w.PhysicsWorld().OverlapSphere(p, radius, uint(component.LayerTrigger)) {
		if hit == e {
			return true
		}
	}
	return false
}

func bindMission(w *ecs.World, e ecs.Entity, m *component.Mission) {
	type ordered struct {
		order int
		e     ecs.Entity
		t     *component.MissionTarget
	}
	var found []ordered
	ecs.ForEach(w, component.MissionTargetComponent.Kind(), func(te ecs.Entity, t *component.MissionTarget) {
		found = append(found, ordered{order: t.Order, e: te, t: t})
	})
	sort.SliceStable(found, func(i, j int) bool { return found[i].order < found[j].order })

	targets := make([]cinematic.Target, 0, len(found))
	for _, f := range found {
		target := cinematic.Target{
			Name:   nameOf(w, f.e),
			Object: objectNode{w: w, e: f.e},
		}
		if ecs.Has(w, f.e, component.RendererComponent.Kind()) {
			target.Highlighter = highlightNode{w: w, e: f.e}
		}
		if ae, ok := FindByName(w, f.t.Action); ok {
			if a, ok := ecs.Get(w, ae, component.ActionComponent.Kind()); ok && a.Action != nil {
				target.Action = actionActivator{w: w, e: ae, a: a.Action}
			}
		} else if f.t.Action != "" {
			log.Printf("mission: action %q for target %s not found", f.t.Action, target.Name)
		}
		targets = append(targets, target)
	}

	mm := m.Mission
	mm.Targets = targets
	mm.Trigger = objectNode{w: w, e: e}
	if cam, ok := cameraByName(w, m.Camera); ok {
		mm.Camera = cam
	}
	if controls, ok := playerControls(w); ok {
		mm.Player = controls
	}
	if label, ok := textByName(w, m.Instruction); ok {
		mm.Label = label
		label.SetActive(false)
	}
	m.Bound = true
}

// actionActivator announces a played action.
type actionActivator struct {
	w *ecs.World
	e ecs.Entity
	a *cinematic.SelectableAction
}

func (a actionActivator) Activate() bool {
	if !a.a.Activate() {
		return false
	}
	a.w.Events().Push(ecs.Event{Type: ecs.EventActionPlayed, Entity: a.e})
	return true
}

func (s *MissionSystem) bindAction(w *ecs.World, e ecs.Entity, a *component.Action) {
	cfg := a.Config
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && cfg.Origin == (common.Vec3{}) {
		cfg.Origin = t.World
	}
	local := cinematic.Settings{Config: cfg, Bindings: s.bindings(w, a.Refs)}
	if mgr := musicManager(w); mgr != nil {
		local.Bindings.Music = mgr
	}
	if env, ok := ecs.First(w, component.EnvironmentComponent.Kind()); ok {
		local.Bindings.Lighting = environmentNode{w: w, e: env}
	}

	var shared *cinematic.Settings
	if a.Shared != "" {
		if se, ok := FindByName(w, a.Shared); ok {
			if st, ok := ecs.Get(w, se, component.ActionSettingsComponent.Kind()); ok {
				shared = &cinematic.Settings{Config: st.Config, Bindings: s.bindings(w, st.Refs)}
			}
		}
		if shared == nil {
			log.Printf("action: %s: shared settings %q not found", nameOf(w, e), a.Shared)
		}
	}

	a.Action = cinematic.NewSelectableAction(nameOf(w, e), cinematic.ApplyShared(local, shared))
	a.Bound = true
}

func (s *MissionSystem) bindings(w *ecs.World, refs component.ActionRefs) cinematic.Bindings {
	var b cinematic.Bindings
	if src, ok := FindByName(w, refs.Source); ok {
		b.Spawner = cloneSpawner{w: w, source: src, spawn: s.Spawn}
	}
	if cam, ok := cameraByName(w, refs.Camera); ok {
		b.Camera = cam
	}
	if cam, ok := cameraByName(w, refs.Secondary); ok {
		b.Secondary = cam
	}
	if pe, ok := FindByName(w, refs.Panel); ok {
		if tp, ok := ecs.Get(w, pe, component.TypingPanelComponent.Kind()); ok && tp.Panel != nil {
			b.Panel = tp.Panel
		}
	}
	if me, ok := FindByName(w, refs.Mission); ok {
		if m, ok := ecs.Get(w, me, component.MissionComponent.Kind()); ok && m.Mission != nil {
			b.Mission = m.Mission
		}
	}
	for _, name := range refs.Lights {
		if le, ok := FindByName(w, name); ok && ecs.Has(w, le, component.LightComponent.Kind()) {
			b.Lights = append(b.Lights, lightNode{w: w, e: le})
		}
	}
	b.Deactivate = objectsByName(w, refs.Deactivate)
	b.SelectableDeactivate = objectsByName(w, refs.SelectableDeactivate)
	b.PrimaryActivate = objectsByName(w, refs.PrimaryActivate)
	b.SecondaryActivate = objectsByName(w, refs.SecondaryActivate)
	return b
}

func objectsByName(w *ecs.World, names []string) []cinematic.Object {
	var out []cinematic.Object
	for _, name := range names {
		e, ok := FindByName(w, name)
		if !ok {
			log.Printf("action: object %q not found", name)
			continue
		}
		out = append(out, objectNode{w: w, e: e})
	}
	return out
}

// cloneSpawner duplicates the source character from its prefab.
type cloneSpawner struct {
	w      *ecs.World
	source ecs.Entity
	spawn  SpawnFunc
}

func (c cloneSpawner) SourceYaw() float64 {
	if t, ok := ecs.Get(c.w, c.source, component.TransformComponent.Kind()); ok {
		return t.WorldYaw
	}
	return 0
}

func (c cloneSpawner) Spawn(pose cinematic.Pose) (cinematic.Actor, error) {
	if c.spawn == nil {
		return nil, fmt.Errorf("no spawner configured")
	}
	if !ecs.IsAlive(c.w, c.source) {
		return nil, fmt.Errorf("source %s is gone", c.source)
	}
	ref, ok := ecs.Get(c.w, c.source, component.PrefabRefComponent.Kind())
	if !ok || ref.Path == "" {
		return nil, fmt.Errorf("source %s has no prefab", nameOf(c.w, c.source))
	}
	e, err := c.spawn(c.w, ref)
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", ref.Path, err)
	}

	t, ok := ecs.Get(c.w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{}
		_ = ecs.Add(c.w, e, component.TransformComponent.Kind(), t)
	}
	t.Position = pose.Position
	t.Yaw = pose.Yaw
	t.Mirrored = pose.Mirrored
	ecs.Remove(c.w, e, component.ParentComponent.Kind())
	_ = ecs.Add(c.w, e, component.NameComponent.Kind(), &component.Name{Value: nameOf(c.w, c.source) + " (Clone)"})
	ResolveTransforms(c.w)
	return actorNode{w: c.w, e: e}, nil
}

// actorNode is a spawned clone.
type actorNode struct {
	w *ecs.World
	e ecs.Entity
}

func (a actorNode) Alive() bool {
	return ecs.IsAlive(a.w, a.e)
}

func (a actorNode) ClearHighlight() {
	SetHighlighted(a.w, a.e, false)
}

func (a actorNode) StripOutline() {
	StripOutline(a.w, a.e)
}

func (a actorNode) RebindAnimator() {
	for _, e := range Hierarchy(a.w, a.e) {
		if anim, ok := ecs.Get(a.w, e, component.AnimatorComponent.Kind()); ok {
			anim.Rebinds++
			anim.State = anim.Default
			anim.StateTime = 0
		}
	}
}

func (a actorNode) SetAnimatorController(name string) {
	for _, e := range Hierarchy(a.w, a.e) {
		if anim, ok := ecs.Get(a.w, e, component.AnimatorComponent.Kind()); ok {
			anim.Controller = name
		}
	}
}

func (a actorNode) FindTagged(tag string) (cinematic.Mount, bool) {
	e, ok := FindTagged(a.w, a.e, tag)
	if !ok {
		return nil, false
	}
	return e, true
}
