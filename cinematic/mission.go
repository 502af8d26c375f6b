package cinematic

import "log"

const DefaultInstruction = "Use Arrow Keys to choose, Enter to select"

type Highlighter interface {
	SetHighlighted(on bool)
}

type Activator interface {
	Activate() bool
}

type PriorityCamera interface {
	SetPriority(priority int)
	Priority() int
}

type Controls interface {
	SetEnabled(enabled bool)
}

type Instruction interface {
	SetText(text string)
	SetActive(active bool)
}

// Target is one choice offered by the mission. A target without a
// Highlighter can never be selected.
type Target struct {
	Name        string
	Object      Object
	Highlighter Highlighter
	Action      Activator
}

type MissionInput struct {
	Prev   bool
	Next   bool
	Select bool
}

type MissionConfig struct {
	CameraPriority        int
	Instruction           string
	DisableAfterSelection bool
}

func DefaultMissionConfig() MissionConfig {
	return MissionConfig{
		CameraPriority:        20,
		Instruction:           DefaultInstruction,
		DisableAfterSelection: true,
	}
}

// Mission takes over the camera and input once the player walks into the
// final room and lets them pick one target.
type Mission struct {
	cfg     MissionConfig
	Targets []Target

	Trigger Object
	Camera  PriorityCamera
	Player  Controls
	Label   Instruction

	active       bool
	index        int
	highlight    Highlighter
	prevPriority int
	hasPrev      bool
}

func NewMission(cfg MissionConfig, targets []Target) *Mission {
	return &Mission{cfg: cfg, Targets: targets, index: -1}
}

func (m *Mission) Config() MissionConfig {
	return m.cfg
}

func (m *Mission) Active() bool {
	return m.active
}

// Index is the selected target, or -1.
func (m *Mission) Index() int {
	return m.index
}

// PreviousPriority is the mission camera priority before activation.
func (m *Mission) PreviousPriority() (int, bool) {
	return m.prevPriority, m.hasPrev
}

func (m *Mission) Activate() {
	if m.active {
		return
	}
	log.Printf("mission: activated by player")
	m.active = true

	if m.Trigger != nil {
		m.Trigger.SetActive(false)
	}
	if m.Camera != nil {
		m.prevPriority = m.Camera.Priority()
		m.hasPrev = true
		m.Camera.SetPriority(m.cfg.CameraPriority)
	}
	if m.Player != nil {
		m.Player.SetEnabled(false)
	}

	m.index = m.firstValid()
	m.highlightIndex(m.index)
	m.showInstruction(true)
}

func (m *Mission) Update(in MissionInput) {
	if !m.active {
		return
	}
	if in.Prev {
		m.move(-1)
	} else if in.Next {
		m.move(1)
	}
	if in.Select {
		m.selectCurrent()
	}
}

// DisableSelectableTargets hides every target once a choice has played out.
func (m *Mission) DisableSelectableTargets() {
	m.setHighlight(nil)
	for _, t := range m.Targets {
		if t.Object != nil {
			t.Object.SetActive(false)
		}
	}
}

func (m *Mission) valid(i int) bool {
	return i >= 0 && i < len(m.Targets) && m.Targets[i].Highlighter != nil
}

func (m *Mission) firstValid() int {
	for i := range m.Targets {
		if m.valid(i) {
			return i
		}
	}
	return -1
}

func (m *Mission) move(direction int) {
	n := len(m.Targets)
	if n == 0 {
		return
	}
	next := m.index
	for range n {
		next = ((next+direction)%n + n) % n
		if m.valid(next) {
			m.index = next
			m.highlightIndex(next)
			return
		}
	}
}

func (m *Mission) highlightIndex(i int) {
	if !m.valid(i) {
		m.setHighlight(nil)
		return
	}
	m.setHighlight(m.Targets[i].Highlighter)
}

func (m *Mission) setHighlight(h Highlighter) {
	if m.highlight == h {
		return
	}
	if m.highlight != nil {
		m.highlight.SetHighlighted(false)
	}
	m.highlight = h
	if h != nil {
		h.SetHighlighted(true)
	}
}

func (m *Mission) selectCurrent() {
	if m.index < 0 || m.index >= len(m.Targets) {
		return
	}
	t := m.Targets[m.index]
	log.Printf("mission: selected %s", t.Name)
	if t.Action != nil {
		t.Action.Activate()
	} else {
		log.Printf("mission: no action on %s", t.Name)
	}

	if m.cfg.DisableAfterSelection {
		m.active = false
		m.setHighlight(nil)
		m.showInstruction(false)
	}
}

func (m *Mission) showInstruction(visible bool) {
	if m.Label == nil {
		return
	}
	text := ""
	if visible {
		text = m.cfg.Instruction
	}
	m.Label.SetText(text)
	m.Label.SetActive(visible)
}
