package component

import "github.com/milk9111/finalroom/common"

// Transform is an entity pose. Position and Yaw are relative to the Parent
// when there is one; World and WorldYaw are resolved by the transform system.
type Transform struct {
	Position common.Vec3
	Yaw      float64
	Pitch    float64
	// Mirrored flips the entity across its local X axis.
	Mirrored bool

	World      common.Vec3
	WorldYaw   float64
	WorldPitch float64
}

var TransformComponent = NewComponent[Transform]()

// Parent attaches an entity to another (ecs.Entity is uint64).
type Parent struct {
	Entity uint64
}

var ParentComponent = NewComponent[Parent]()

// Inactive hides an entity and everything parented under it.
type Inactive struct{}

var InactiveComponent = NewComponent[Inactive]()
