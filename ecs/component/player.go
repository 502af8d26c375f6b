package component

import "github.com/milk9111/finalroom/player"

// PlayerController owns the player's movement state machine.
type PlayerController struct {
	Controller *player.Controller
	Radius     float64
	// Seat is the chair the player sits on, if any (ecs.Entity is uint64).
	Seat uint64
}

var PlayerControllerComponent = NewComponent[PlayerController]()
