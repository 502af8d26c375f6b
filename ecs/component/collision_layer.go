package component

import "github.com/milk9111/finalroom/common"

const (
	LayerWorld uint32 = 1 << iota
	LayerPlayer
	LayerInteractable
	LayerTrigger
)

// CollisionLayer declares which query masks an entity answers to. A zero
// Category is treated as LayerWorld.
type CollisionLayer struct {
	Category uint32 `json:"category,omitempty"`
	// Mask is the set of layers this entity's own movement collides with.
	// Zero means LayerWorld.
	Mask uint32 `json:"mask,omitempty"`
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()

const (
	ColliderBox    = "box"
	ColliderCircle = "circle"
)

// Collider is a floor-plan footprint mirrored into the physics world.
type Collider struct {
	Shape  string
	Width  float64
	Depth  float64
	Radius float64
	// Offset is applied in the entity's local frame.
	Offset common.Vec3
	// Blocking colliders stop the player.
	Blocking bool
}

var ColliderComponent = NewComponent[Collider]()
