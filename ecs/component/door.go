package component

import (
	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/gate"
)

// DoorZone is the trigger volume around a door. Offset is taken from the
// door's closed pose; Center and Yaw are captured when the door binds.
type DoorZone struct {
	Radius float64
	Offset common.Vec3
	Center common.Vec3
	Yaw    float64
	Inside bool
}

var DoorZoneComponent = NewComponent[DoorZone]()

// SlidingDoor drives the entity's local position.
type SlidingDoor struct {
	Door *gate.SlidingDoor
	// LockedLabel is the Name of the message label.
	LockedLabel string
	// Ungated doors ignore the conversation counter.
	Ungated bool
	Bound   bool
}

var SlidingDoorComponent = NewComponent[SlidingDoor]()

// RotatingDoor drives the entity's local yaw.
type RotatingDoor struct {
	Door        *gate.RotatingDoor
	LockedLabel string
	Ungated     bool
	Bound       bool
}

var RotatingDoorComponent = NewComponent[RotatingDoor]()

// Counter counts finished conversations.
type Counter struct {
	Counter *gate.ConversationCounter
	Label   string
	Bound   bool
}

var CounterComponent = NewComponent[Counter]()
