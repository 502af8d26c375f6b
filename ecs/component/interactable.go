package component

import (
	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/interaction"
	"github.com/milk9111/finalroom/npc"
)

// Interactable makes an entity selectable by the player.
type Interactable struct {
	Prompt string
}

var InteractableComponent = NewComponent[Interactable]()

// Selector lives on the player and tracks what it is looking at.
type Selector struct {
	Selector *interaction.Selector
	// PromptLabel is the Name of the text entity showing the prompt.
	PromptLabel string
	StandKey    string
	StandPrompt string
}

var SelectorComponent = NewComponent[Selector]()

// Talk is an NPC that starts a conversation when interacted with.
type Talk struct {
	ID        string
	Paragraph string
	// Counts registers the conversation with the counter when it opens.
	Counts bool

	ScriptPath string
	Script     *npc.Script
	Driver     *npc.AnimationDriver
}

var TalkComponent = NewComponent[Talk]()

// TalkRequest asks the dialogue system to open a conversation with NPC.
type TalkRequest struct {
	NPC uint64
}

var TalkRequestComponent = NewComponent[TalkRequest]()

// Seat is a chair. Offset and Yaw place the player in the chair's frame.
type Seat struct {
	Offset common.Vec3
	Yaw    float64
}

var SeatComponent = NewComponent[Seat]()
