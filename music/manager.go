package music

import (
	"log"
	"math"
	"strings"

	"github.com/milk9111/finalroom/common"
)

type State int

const (
	Idle State = iota
	Conversation
	FinalMission
	AfterSelect
)

func (s State) String() string {
	switch s {
	case Conversation:
		return "conversation"
	case FinalMission:
		return "final_mission"
	case AfterSelect:
		return "after_select"
	default:
		return "idle"
	}
}

// ParseState maps a state name such as "final_mission" back to a State.
func ParseState(name string) (State, bool) {
	for _, s := range []State{Idle, Conversation, FinalMission, AfterSelect} {
		if strings.EqualFold(strings.TrimSpace(name), s.String()) {
			return s, true
		}
	}
	return Idle, false
}

// Source is the single music channel the manager drives.
type Source interface {
	Play(clip string, loop bool)
	SetVolume(v float64)
	// Length reports the clip duration in seconds.
	Length(clip string) float64
}

type Config struct {
	Clips               map[State]string
	Volumes             map[State]float64
	AfterSelectClips    []string
	LoopLastAfterSelect bool
	FadeDuration        float64
}

func DefaultConfig() Config {
	return Config{
		Clips:               map[State]string{},
		Volumes:             map[State]float64{Idle: 1, Conversation: 1, FinalMission: 1, AfterSelect: 1},
		LoopLastAfterSelect: true,
		FadeDuration:        0.5,
	}
}

// Manager crossfades background music between the room states and runs the
// after-selection playlist.
type Manager struct {
	cfg    Config
	Source Source

	state  State
	volume float64

	fading    bool
	fadeTimer float64
	fadeFrom  float64

	sequence  bool
	seqIndex  int
	seqLast   int
	seqLeft   float64
	seqActive bool
}

// NewManager starts in Idle at full state volume.
func NewManager(cfg Config, source Source) *Manager {
	m := &Manager{cfg: cfg, Source: source, state: Idle}
	m.startState(Idle, true)
	return m
}

func (m *Manager) Config() Config {
	return m.cfg
}

func (m *Manager) State() State {
	return m.state
}

func (m *Manager) Volume() float64 {
	return m.volume
}

func (m *Manager) Fading() bool {
	return m.fading
}

func (m *Manager) SetIdle() {
	m.PlayState(Idle, false)
}

func (m *Manager) SetConversation(active bool) {
	if active {
		m.PlayState(Conversation, false)
		return
	}
	m.PlayState(Idle, false)
}

func (m *Manager) SetFinalMission() {
	m.PlayState(FinalMission, false)
}

func (m *Manager) SetAfterSelect() {
	m.PlayState(AfterSelect, false)
}

// PlayState switches to state. Requesting the current state does nothing,
// except AfterSelect which starts again if its playlist never ran.
func (m *Manager) PlayState(state State, instant bool) {
	if state == m.state && (state != AfterSelect || m.sequence) {
		return
	}
	m.startState(state, instant)
}

// Resume restarts the current state at full volume, for a Source attached
// after construction.
func (m *Manager) Resume() {
	m.startState(m.state, true)
}

func (m *Manager) startState(state State, instant bool) {
	m.sequence = false
	m.seqActive = false
	m.state = state
	log.Printf("music: state %s", state)

	if state == AfterSelect {
		if len(m.cfg.AfterSelectClips) == 0 {
			return
		}
		m.sequence = true
		m.startSequence()
		m.fadeIn(instant)
		return
	}

	clip := m.cfg.Clips[state]
	if clip == "" {
		return
	}
	if m.Source != nil {
		m.Source.Play(clip, true)
	}
	m.fadeIn(instant)
}

func (m *Manager) fadeIn(instant bool) {
	if instant || m.cfg.FadeDuration <= 0 {
		m.fading = false
		m.setVolume(m.targetVolume())
		return
	}
	m.fadeFrom = 0
	m.fadeTimer = 0
	m.fading = true
	m.setVolume(0)
}

func (m *Manager) targetVolume() float64 {
	v, ok := m.cfg.Volumes[m.state]
	if !ok {
		return 1
	}
	return v
}

func (m *Manager) setVolume(v float64) {
	m.volume = v
	if m.Source != nil {
		m.Source.SetVolume(v)
	}
}

func (m *Manager) Update(dt float64) {
	if m.fading {
		m.fadeTimer += dt
		t := common.Clamp01(m.fadeTimer / math.Max(0.01, m.cfg.FadeDuration))
		m.setVolume(common.Lerp(m.fadeFrom, m.targetVolume(), t))
		if t >= 1 {
			m.fading = false
		}
	}
	m.updateSequence(dt)
}

func (m *Manager) lastValidClip() int {
	for i := len(m.cfg.AfterSelectClips) - 1; i >= 0; i-- {
		if m.cfg.AfterSelectClips[i] != "" {
			return i
		}
	}
	return -1
}

func (m *Manager) startSequence() {
	m.seqLast = m.lastValidClip()
	if m.seqLast < 0 {
		return
	}
	m.seqActive = true
	m.seqIndex = -1
	m.playNext()
}

// playNext starts the next non-empty playlist entry, or the trailing loop
// once the list is exhausted.
func (m *Manager) playNext() {
	for m.seqIndex++; m.seqIndex <= m.seqLast; m.seqIndex++ {
		clip := m.cfg.AfterSelectClips[m.seqIndex]
		if clip == "" {
			continue
		}
		length := 0.0
		if m.Source != nil {
			m.Source.Play(clip, false)
			length = m.Source.Length(clip)
		}
		m.seqLeft = math.Max(0.01, length)
		return
	}

	m.seqActive = false
	if m.cfg.LoopLastAfterSelect && m.Source != nil {
		m.Source.Play(m.cfg.AfterSelectClips[m.seqLast], true)
	}
}

func (m *Manager) updateSequence(dt float64) {
	if !m.seqActive {
		return
	}
	if m.state != AfterSelect {
		m.seqActive = false
		return
	}
	m.seqLeft -= dt
	if m.seqLeft <= 0 {
		m.playNext()
	}
}

// Playing reports whether the after-selection playlist is still stepping
// through its clips.
func (m *Manager) Playing() bool {
	return m.seqActive
}
