package entity

import (
	"fmt"

	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
	"github.com/milk9111/finalroom/prefabs"
)

// ReloadPrefab re-reads a prefab file and copies its editable values onto
// every live entity built from it: conversation text and ids, interaction
// prompts and counter messages. Runtime state such as door positions and
// the conversation count is kept.
func ReloadPrefab(w *ecs.World, path string) (int, error) {
	if w == nil {
		return 0, fmt.Errorf("reload prefab: world is nil")
	}
	key := prefabs.Key(path)

	var targets []ecs.Entity
	ecs.ForEach(w, component.PrefabRefComponent.Kind(), func(e ecs.Entity, ref *component.PrefabRef) {
		if ref.Path == key {
			targets = append(targets, e)
		}
	})
	if len(targets) == 0 {
		return 0, nil
	}

	spec, err := prefabs.LoadEntityBuildSpec(path)
	if err != nil {
		return 0, fmt.Errorf("reload prefab: %w", err)
	}

	for _, e := range targets {
		ref, _ := ecs.Get(w, e, component.PrefabRefComponent.Kind())
		components := mergeComponents(spec.Components, ref.Overrides)
		if err := reloadComponents(w, e, components); err != nil {
			return 0, fmt.Errorf("reload prefab: %q: %w", key, err)
		}
	}
	return len(targets), nil
}

func reloadComponents(w *ecs.World, e ecs.Entity, components map[string]any) error {
	if raw, ok := components["talk"]; ok {
		if talk, ok := ecs.Get(w, e, component.TalkComponent.Kind()); ok {
			spec := talkSpecDefaults()
			if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
				return fmt.Errorf("decode talk spec: %w", err)
			}
			if spec.ID != "" {
				talk.ID = spec.ID
			}
			talk.Paragraph = spec.Paragraph
			talk.Counts = spec.Counts
		}
	}

	if raw, ok := components["interactable"]; ok {
		if it, ok := ecs.Get(w, e, component.InteractableComponent.Kind()); ok {
			spec, err := prefabs.DecodeComponentSpec[prefabs.InteractableComponentSpec](raw)
			if err != nil {
				return fmt.Errorf("decode interactable spec: %w", err)
			}
			it.Prompt = spec.Prompt
		}
	}

	if raw, ok := components["counter"]; ok {
		if c, ok := ecs.Get(w, e, component.CounterComponent.Kind()); ok && c.Counter != nil {
			spec := prefabs.CounterComponentSpec{
				InProgressMessage: c.Counter.InProgressMessage,
				CompletedMessage:  c.Counter.CompletedMessage,
			}
			if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
				return fmt.Errorf("decode counter spec: %w", err)
			}
			c.Counter.InProgressMessage = spec.InProgressMessage
			c.Counter.CompletedMessage = spec.CompletedMessage
			c.Counter.UpdateLabel()
		}
	}
	return nil
}
