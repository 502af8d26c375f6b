package component

import "github.com/milk9111/finalroom/dialogue"

// DialogueSlotNames are the Names of the entities making up one dialogue
// slot. Empty names leave that part unbound.
type DialogueSlotNames struct {
	Panel string
	Text  string
	Icon  string
}

// DialogueUI is the single conversation box.
type DialogueUI struct {
	Session *dialogue.Session

	NPC         DialogueSlotNames
	Player      DialogueSlotNames
	Legacy      DialogueSlotNames
	Next        string
	Instruction string

	// Speaking is the NPC in the current conversation (ecs.Entity is uint64).
	Speaking uint64
	// NextClicked is set by the on-screen next button.
	NextClicked bool
	Bound       bool
}

var DialogueUIComponent = NewComponent[DialogueUI]()
