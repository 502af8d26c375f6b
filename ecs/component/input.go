package component

// Input stores per-frame input state for an entity. Pressed flags are true
// only on the tick the key went down.
type Input struct {
	MoveX float64
	MoveZ float64
	LookX float64
	LookY float64

	InteractPressed bool
	AdvancePressed  bool
	PrevPressed     bool
	NextPressed     bool
	SelectPressed   bool
	PausePressed    bool
}

var InputComponent = NewComponent[Input]()
