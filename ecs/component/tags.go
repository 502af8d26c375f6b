package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// Name identifies an entity for cross references in scene files.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()

// Tag marks attachment points such as a character's head.
type Tag struct {
	Value string
}

var TagComponent = NewComponent[Tag]()

// PrefabRef remembers the prefab an entity was built from so it can be
// cloned or reloaded.
type PrefabRef struct {
	Path string
	// Overrides are the per-component values the scene applied on top of
	// the prefab.
	Overrides map[string]any
}

var PrefabRefComponent = NewComponent[PrefabRef]()
