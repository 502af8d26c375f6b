// Package settings persists player preferences between runs.
package settings

import (
	"fmt"
	"log"

	"github.com/milk9111/finalroom/common"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	AppName = "finalroom"

	settingsObject   = "settings"
	settingsProperty = "player"
)

// Settings are preferences, not progress.
type Settings struct {
	MusicVolume      float64 `yaml:"music_volume"`
	EffectsVolume    float64 `yaml:"effects_volume"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
	InvertY          bool    `yaml:"invert_y"`
	// TextDelay is the dialogue seconds per character.
	TextDelay float64 `yaml:"text_delay"`
}

func Defaults() Settings {
	return Settings{
		MusicVolume:      0.8,
		EffectsVolume:    1,
		MouseSensitivity: 1,
		TextDelay:        0.02,
	}
}

func (s Settings) normalized() Settings {
	s.MusicVolume = common.Clamp01(s.MusicVolume)
	s.EffectsVolume = common.Clamp01(s.EffectsVolume)
	if s.MouseSensitivity <= 0 {
		s.MouseSensitivity = Defaults().MouseSensitivity
	}
	if s.TextDelay < 0 {
		s.TextDelay = 0
	}
	return s
}

// Manager loads and saves Settings. With no storage it keeps them in
// memory only.
type Manager struct {
	store    *gdata.Manager
	settings Settings
}

// Open connects to the per-user data directory. Storage failures are
// logged and leave an in-memory manager.
func Open(appName string) *Manager {
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("settings: open storage: %v (using defaults)", err)
		store = nil
	}
	return NewManager(store)
}

func NewManager(store *gdata.Manager) *Manager {
	m := &Manager{store: store, settings: Defaults()}
	if err := m.Load(); err != nil {
		log.Printf("settings: %v (using defaults)", err)
	}
	return m
}

func (m *Manager) Load() error {
	m.settings = Defaults()
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}
	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	loaded := Defaults()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	m.settings = loaded.normalized()
	return nil
}

func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}

func (m *Manager) Get() Settings {
	return m.settings
}

// Set replaces the settings in memory, clamping out-of-range values. Call
// Save to persist them.
func (m *Manager) Set(s Settings) {
	m.settings = s.normalized()
}

// Persistent reports whether Save writes anywhere.
func (m *Manager) Persistent() bool {
	return m.store != nil
}
