package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Scene lists prefab instances by name. Later entities may parent to earlier
// or later ones.
type Scene struct {
	Name     string   `json:"name"`
	Entities []Entity `json:"entities"`
}

type Entity struct {
	Name   string `json:"name,omitempty"`
	Prefab string `json:"prefab"`
	// Position and Yaw are left to the prefab when absent.
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Z      *float64 `json:"z,omitempty"`
	Yaw    *float64 `json:"yaw,omitempty"`
	Parent string   `json:"parent,omitempty"`
	// Inactive entities start hidden.
	Inactive   bool           `json:"inactive,omitempty"`
	Components map[string]any `json:"components,omitempty"`
}

// LoadSceneFromFS reads an embedded scene. The .json extension is optional.
func LoadSceneFromFS(name string) (*Scene, error) {
	name = strings.TrimSpace(filepath.ToSlash(name))
	name = strings.TrimPrefix(name, "levels/")
	if filepath.Ext(name) == "" {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return ParseScene(data)
}

func ParseScene(data []byte) (*Scene, error) {
	var scene Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("unmarshal scene: %w", err)
	}
	for i, ent := range scene.Entities {
		if ent.Prefab == "" {
			return nil, fmt.Errorf("scene %q: entity %d (%s) has no prefab", scene.Name, i, ent.Name)
		}
	}
	return &scene, nil
}
