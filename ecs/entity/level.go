package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
	"github.com/milk9111/finalroom/levels"
)

// LoadSceneToWorld builds every scene entity, then resolves parents by name.
// A failed entity aborts the load and leaves what was built so far.
func LoadSceneToWorld(w *ecs.World, scene *levels.Scene) error {
	if w == nil || scene == nil {
		return fmt.Errorf("load scene: nothing to load")
	}

	byName := make(map[string]ecs.Entity, len(scene.Entities))
	built := make([]ecs.Entity, len(scene.Entities))
	for i, se := range scene.Entities {
		e, err := BuildEntityWithOverrides(w, se.Prefab, sceneOverrides(se))
		if err != nil {
			return fmt.Errorf("load scene %q: %w", scene.Name, err)
		}
		if se.Name != "" {
			if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: se.Name}); err != nil {
				return fmt.Errorf("load scene %q: %w", scene.Name, err)
			}
		}
		if se.Inactive {
			if err := ecs.Add(w, e, component.InactiveComponent.Kind(), &component.Inactive{}); err != nil {
				return fmt.Errorf("load scene %q: %w", scene.Name, err)
			}
		}
		built[i] = e
		name := sceneName(w, e)
		if _, dup := byName[name]; dup && name != "" {
			log.Printf("scene: %s: duplicate name %q", scene.Name, name)
		}
		byName[name] = e
	}

	for i, se := range scene.Entities {
		if se.Parent == "" {
			continue
		}
		parent, ok := byName[se.Parent]
		if !ok {
			return fmt.Errorf("load scene %q: %s: parent %q not found", scene.Name, se.Name, se.Parent)
		}
		if err := ecs.Add(w, built[i], component.ParentComponent.Kind(), &component.Parent{Entity: uint64(parent)}); err != nil {
			return fmt.Errorf("load scene %q: %w", scene.Name, err)
		}
	}
	return nil
}

// LoadScene reads an embedded scene file and builds it.
func LoadScene(w *ecs.World, name string) error {
	scene, err := levels.LoadSceneFromFS(name)
	if err != nil {
		return err
	}
	return LoadSceneToWorld(w, scene)
}

func sceneOverrides(se levels.Entity) map[string]any {
	out := make(map[string]any, len(se.Components)+1)
	for k, v := range se.Components {
		out[k] = v
	}

	pose := map[string]any{}
	if t, ok := asStringMap(out["transform"]); ok {
		for k, v := range t {
			pose[k] = v
		}
	}
	set := func(key string, v *float64) {
		if v != nil {
			pose[key] = *v
		}
	}
	set("x", se.X)
	set("y", se.Y)
	set("z", se.Z)
	set("yaw", se.Yaw)
	if len(pose) > 0 {
		out["transform"] = pose
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sceneName(w *ecs.World, e ecs.Entity) string {
	if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok {
		return n.Value
	}
	return ""
}
