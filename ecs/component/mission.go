package component

import "github.com/milk9111/finalroom/cinematic"

// Mission is the final-room selection trigger.
type Mission struct {
	Mission *cinematic.Mission
	// Radius is how close the player must come to the trigger.
	Radius      float64
	Camera      string
	Instruction string
	Bound       bool
}

var MissionComponent = NewComponent[Mission]()

// MissionTarget is one choice offered by the mission. Action is the Name of
// the entity holding the Action component.
type MissionTarget struct {
	Order  int
	Action string
}

var MissionTargetComponent = NewComponent[MissionTarget]()

// ActionRefs are the Names of the scene objects an action drives.
type ActionRefs struct {
	Source               string
	Camera               string
	Secondary            string
	Panel                string
	Mission              string
	Lights               []string
	Deactivate           []string
	SelectableDeactivate []string
	PrimaryActivate      []string
	SecondaryActivate    []string
}

// Action is a selectable cinematic. Shared names an ActionSettings entity
// whose values override the local ones.
type Action struct {
	Action *cinematic.SelectableAction
	Config cinematic.Config
	Refs   ActionRefs
	Shared string
	Bound  bool
}

var ActionComponent = NewComponent[Action]()

// ActionSettings is a shared settings block several actions can point at.
type ActionSettings struct {
	Config cinematic.Config
	Refs   ActionRefs
}

var ActionSettingsComponent = NewComponent[ActionSettings]()
