package entity

import (
	"fmt"
	"maps"
	"sort"

	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
	"github.com/milk9111/finalroom/prefabs"
)

type buildContext struct {
	PrefabPath string
	Name       string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":       addTransform,
	"inactive":        addInactive,
	"player_tag":      addPlayerTag,
	"camera_tag":      addCameraTag,
	"tag":             addTag,
	"input":           addInput,
	"shape":           addShape,
	"collider":        addCollider,
	"collision_layer": addCollisionLayer,
	"render_layer":    addRenderLayer,
	"renderer":        addRenderer,
	"outline":         addOutline,
	"animator":        addAnimator,
	"audio":           addAudio,
	"player":          addPlayer,
	"selector":        addSelector,
	"interactable":    addInteractable,
	"talk":            addTalk,
	"seat":            addSeat,
	"dialogue_ui":     addDialogueUI,
	"text":            addText,
	"icon":            addIcon,
	"typing_panel":    addTypingPanel,
	"door_zone":       addDoorZone,
	"sliding_door":    addSlidingDoor,
	"rotating_door":   addRotatingDoor,
	"counter":         addCounter,
	"mission":         addMission,
	"mission_target":  addMissionTarget,
	"action":          addAction,
	"action_settings": addActionSettings,
	"music":           addMusic,
	"environment":     addEnvironment,
	"light":           addLight,
	"camera":          addCamera,
	"virtual_camera":  addVirtualCamera,
}

// Doors read their closed pose from the transform, so it goes first.
var componentBuildOrder = []string{
	"transform",
	"inactive",
	"player_tag",
	"camera_tag",
	"tag",
	"input",
	"shape",
	"collider",
	"collision_layer",
	"render_layer",
	"renderer",
	"outline",
	"animator",
	"audio",
	"player",
	"selector",
	"interactable",
	"talk",
	"seat",
	"dialogue_ui",
	"text",
	"icon",
	"typing_panel",
	"door_zone",
	"sliding_door",
	"rotating_door",
	"counter",
	"mission",
	"mission_target",
	"action",
	"action_settings",
	"music",
	"environment",
	"light",
	"camera",
	"virtual_camera",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return BuildEntityWithOverrides(w, prefabPath, nil)
}

// BuildEntityWithOverrides builds a prefab and its children. Each override
// is merged key by key over the prefab's component of the same name, or
// adds that component when the prefab has none. Overrides apply to the root
// only.
func BuildEntityWithOverrides(w *ecs.World, prefabPath string, overrides map[string]any) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	components := mergeComponents(spec.Components, overrides)
	root, err := buildComponents(w, prefabPath, spec.Name, components)
	if err != nil {
		return 0, err
	}

	if err := ecs.Add(w, root, component.PrefabRefComponent.Kind(), &component.PrefabRef{
		Path:      prefabs.Key(prefabPath),
		Overrides: maps.Clone(overrides),
	}); err != nil {
		ecs.DestroyEntity(w, root)
		return 0, fmt.Errorf("build entity: %q: %w", prefabPath, err)
	}

	built := []ecs.Entity{root}
	for _, child := range spec.Children {
		ce, err := buildComponents(w, prefabPath, child.Name, child.Components)
		if err != nil {
			destroyAll(w, built)
			return 0, err
		}
		built = append(built, ce)
		if err := attachChild(w, root, ce, child.Tag); err != nil {
			destroyAll(w, built)
			return 0, fmt.Errorf("build entity: %q: child %q: %w", prefabPath, child.Name, err)
		}
	}

	return root, nil
}

// Spawn rebuilds an entity from a recorded prefab reference.
func Spawn(w *ecs.World, ref *component.PrefabRef) (ecs.Entity, error) {
	if ref == nil || ref.Path == "" {
		return 0, fmt.Errorf("spawn: no prefab")
	}
	return BuildEntityWithOverrides(w, ref.Path, ref.Overrides)
}

func buildComponents(w *ecs.World, prefabPath, name string, components map[string]any) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Name: name}

	if name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: name: %w", prefabPath, err)
		}
	}

	remaining := make(map[string]any, len(components))
	for k, v := range components {
		remaining[k] = v
	}

	for _, kind := range componentBuildOrder {
		raw, ok := remaining[kind]
		if !ok {
			continue
		}
		if err := componentRegistry[kind](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, kind, err)
		}
		delete(remaining, kind)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for kind := range remaining {
			names = append(names, kind)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

func attachChild(w *ecs.World, root, child ecs.Entity, tag string) error {
	if !ecs.Has(w, child, component.TransformComponent.Kind()) {
		if err := ecs.Add(w, child, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
			return err
		}
	}
	if err := ecs.Add(w, child, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(root)}); err != nil {
		return err
	}
	if tag == "" {
		return nil
	}
	return ecs.Add(w, child, component.TagComponent.Kind(), &component.Tag{Value: tag})
}

// mergeComponents returns base with overrides applied. Nested maps are
// merged one level deep so a scene can change a single field.
func mergeComponents(base, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for name, ov := range overrides {
		om, ok := asStringMap(ov)
		bm, bok := asStringMap(out[name])
		if !ok || !bok {
			out[name] = ov
			continue
		}
		merged := make(map[string]any, len(bm)+len(om))
		for k, v := range bm {
			merged[k] = v
		}
		for k, v := range om {
			merged[k] = v
		}
		out[name] = merged
	}
	return out
}

func asStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	}
	return nil, false
}

func destroyAll(w *ecs.World, ents []ecs.Entity) {
	for _, e := range ents {
		ecs.DestroyEntity(w, e)
	}
}
