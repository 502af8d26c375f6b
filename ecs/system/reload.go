package system

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
	"github.com/milk9111/finalroom/npc"
	"github.com/milk9111/finalroom/prefabs"
)

// ReloadPrefabFunc refreshes the entities built from a prefab and reports
// how many it touched.
type ReloadPrefabFunc func(w *ecs.World, path string) (int, error)

// ReloadSystem applies edited prefabs and NPC scripts to the running scene.
type ReloadSystem struct {
	Prefab ReloadPrefabFunc
	// Script compiles a script file; tests swap it out.
	Script func(name, path string) (*npc.Script, error)
}

func NewReloadSystem(prefab ReloadPrefabFunc) *ReloadSystem {
	return &ReloadSystem{Prefab: prefab, Script: npc.LoadScript}
}

// RequestReload queues a reload of path.
func RequestReload(w *ecs.World, path string) {
	if w == nil || strings.TrimSpace(path) == "" {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{Path: path})
}

func (s *ReloadSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	paths := make([]string, 0)
	seen := map[string]bool{}
	ecs.ForEach(w, component.ReloadRequestComponent.Kind(), func(e ecs.Entity, req *component.ReloadRequest) {
		ecs.DestroyEntity(w, e)
		if req == nil {
			return
		}
		key := prefabs.Key(req.Path)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		paths = append(paths, req.Path)
	})

	for _, path := range paths {
		var n int
		switch strings.ToLower(filepath.Ext(path)) {
		case ".tengo":
			n = s.reloadScripts(w, path)
		case ".yaml", ".yml":
			if s.Prefab == nil {
				continue
			}
			var err error
			n, err = s.Prefab(w, path)
			if err != nil {
				log.Printf("reload: %s: %v", path, err)
				continue
			}
		default:
			continue
		}
		if n == 0 {
			continue
		}
		log.Printf("reload: %s (%d entities)", prefabs.Key(path), n)
		w.Events().Push(ecs.Event{Type: ecs.EventPrefabReloaded, Data: prefabs.Key(path)})
	}
}

// reloadScripts gives every NPC using the script a fresh compile with its
// own state. A script that fails to compile leaves the old one running.
func (s *ReloadSystem) reloadScripts(w *ecs.World, path string) int {
	key := prefabs.Key(path)
	var users []*component.Talk
	ecs.ForEach(w, component.TalkComponent.Kind(), func(_ ecs.Entity, talk *component.Talk) {
		if talk.ScriptPath != "" && prefabs.Key(talk.ScriptPath) == key {
			users = append(users, talk)
		}
	})
	if len(users) == 0 || s.Script == nil {
		return 0
	}

	for _, talk := range users {
		script, err := s.Script(talk.ID, talk.ScriptPath)
		if err != nil {
			log.Printf("reload: %v", err)
			return 0
		}
		talk.Script = script
	}
	return len(users)
}
