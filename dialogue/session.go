package dialogue

import (
	"log"
	"strings"

	"github.com/milk9111/finalroom/typewriter"
)

// TypingState is the reveal state of the current line.
type TypingState int

const (
	TypingIdle TypingState = iota
	Typing
	TypingComplete
)

// Icon shows a portrait sprite next to a line.
type Icon interface {
	SetIcon(name string)
}

// Label is a text element that can be toggled, such as the next-key hint.
type Label interface {
	SetText(text string)
	SetActive(active bool)
}

// Voice is a single looping audio source per conversation.
type Voice interface {
	PlayLooping(clip string)
	Stop()
	IsPlaying() bool
}

// Animator plays a gesture on the NPC while it talks.
type Animator interface {
	TriggerRandom()
}

// MusicState is told when a conversation opens and closes.
type MusicState interface {
	SetConversation(active bool)
}

// Slot is one place a line can be written: a panel, its text and its icon.
type Slot struct {
	Panel typewriter.Activatable
	Text  typewriter.Surface
	Icon  Icon
}

func (s Slot) empty() bool {
	return s.Panel == nil && s.Text == nil
}

type VoiceConfig struct {
	Clips map[Speaker]string
	// MinInterval is the minimum time between two starts for one speaker.
	MinInterval float64
	// KeepVoice lets a loop continue while the same speaker keeps talking.
	KeepVoice bool
}

type AnimationConfig struct {
	Enabled      bool
	MinInterval  float64
	ExplicitOnly bool
}

type Config struct {
	Parser            Parser
	CharacterDelay    float64
	HidePanelOnFinish bool
	NextKey           string
	NextInstruction   string
	Icons             map[Speaker][]string
	DefaultIcons      map[Speaker]string
	Voice             VoiceConfig
	Animation         AnimationConfig
}

func DefaultConfig() Config {
	return Config{
		Parser:            NewParser(),
		CharacterDelay:    0.02,
		HidePanelOnFinish: true,
		NextKey:           "Space",
		NextInstruction:   "Press {key} to continue",
	}
}

// Session drives one conversation at a time through its lines.
type Session struct {
	Name string
	cfg  Config

	NPC    Slot
	Player Slot
	Legacy Slot

	Next        typewriter.Activatable
	Instruction Label

	Voice    Voice
	Animator Animator
	Music    MusicState

	OnStart func()
	OnLine  func(index int, line Line)
	OnEnd   func()

	lines  []Line
	index  int
	open   bool
	tw     typewriter.Typewriter
	active typewriter.Surface

	now          float64
	voiceStarted map[Speaker]float64
	voiceSpeaker Speaker
	animFired    bool
	lastAnim     float64
}

func NewSession(name string, cfg Config) *Session {
	return &Session{
		Name:         name,
		cfg:          cfg,
		voiceStarted: make(map[Speaker]float64),
	}
}

func (s *Session) Config() Config {
	return s.cfg
}

// SetCharacterDelay changes the reveal speed from the next line on.
func (s *Session) SetCharacterDelay(d float64) {
	s.cfg.CharacterDelay = d
}

// Start parses paragraph and shows its first line. An empty paragraph leaves
// the session closed.
func (s *Session) Start(paragraph string) {
	if s == nil {
		return
	}
	s.stopTyping()
	s.lines = s.cfg.Parser.Parse(paragraph)
	if len(s.lines) == 0 {
		s.open = false
		setActive(s.Next, false)
		return
	}

	s.index = 0
	s.open = true
	clear(s.voiceStarted)
	s.voiceSpeaker = SpeakerUnknown
	s.animFired = false

	if s.Music != nil {
		s.Music.SetConversation(true)
	}
	s.updateInstruction(true)
	setActive(s.Next, true)
	if s.Instruction != nil {
		s.Instruction.SetActive(true)
	}
	if s.OnStart != nil {
		s.OnStart()
	}
	s.showLine(s.index)
}

// Advance finishes the current line if it is still typing, otherwise moves to
// the next line or ends the conversation.
func (s *Session) Advance() {
	if s == nil || len(s.lines) == 0 {
		return
	}
	if s.tw.IsRevealing() {
		s.completeTyping()
		return
	}
	s.index++
	if s.index >= len(s.lines) {
		s.end(false)
		return
	}
	s.showLine(s.index)
}

// Close ends the conversation and hides every panel regardless of
// HidePanelOnFinish.
func (s *Session) Close() {
	if s == nil {
		return
	}
	s.end(true)
}

// Update advances the reveal of the current line.
func (s *Session) Update(dt float64) {
	if s == nil {
		return
	}
	s.now += dt
	if !s.tw.IsRevealing() {
		return
	}
	s.tw.Update(dt)
	if s.active != nil {
		s.active.SetMaxVisible(s.tw.Visible())
	}
}

func (s *Session) IsOpen() bool {
	return s != nil && s.open
}

func (s *Session) State() TypingState {
	switch {
	case s == nil || !s.open:
		return TypingIdle
	case s.tw.IsRevealing():
		return Typing
	default:
		return TypingComplete
	}
}

func (s *Session) Index() int {
	return s.index
}

func (s *Session) Lines() []Line {
	return s.lines
}

// Current returns the line on screen.
func (s *Session) Current() (Line, bool) {
	if s == nil || !s.open || s.index < 0 || s.index >= len(s.lines) {
		return Line{}, false
	}
	return s.lines[s.index], true
}

// Visible is the number of revealed glyphs of the current line.
func (s *Session) Visible() int {
	return s.tw.Visible()
}

func (s *Session) showLine(index int) {
	s.stopTyping()
	line := s.lines[index]

	slot, ok := s.selectSlot(line.Speaker)
	if !ok {
		log.Printf("dialogue: %s: no text surface for speaker %s", s.Name, line.Speaker)
		return
	}

	if slot.Icon != nil {
		if icon := s.iconFor(line.Speaker, index); icon != "" {
			slot.Icon.SetIcon(icon)
		}
	}

	s.active = slot.Text
	s.tw.Reveal(line.Text, s.cfg.CharacterDelay)
	s.active.SetText(line.Text)
	s.active.SetMaxVisible(s.tw.Visible())

	s.playVoice(line.Speaker)
	s.triggerAnimation(line)

	if s.OnLine != nil {
		s.OnLine(index, line)
	}
}

func (s *Session) selectSlot(speaker Speaker) (Slot, bool) {
	if s.NPC.empty() && s.Player.empty() {
		setActive(s.Legacy.Panel, true)
		return s.Legacy, s.Legacy.Text != nil
	}

	useNPC := speaker == SpeakerNPC || (speaker == SpeakerUnknown && s.cfg.Parser.DefaultSpeaker == SpeakerNPC)
	preferred, fallback := s.NPC, s.Player
	if !useNPC {
		preferred, fallback = s.Player, s.NPC
	}

	setActive(preferred.Panel, true)
	setActive(fallback.Panel, false)

	slot := preferred
	if slot.Text == nil {
		slot.Text = fallback.Text
	}
	if slot.Icon == nil {
		slot.Icon = fallback.Icon
	}
	return slot, slot.Text != nil
}

func (s *Session) iconFor(speaker Speaker, index int) string {
	if icons := s.cfg.Icons[speaker]; index < len(icons) && icons[index] != "" {
		return icons[index]
	}
	return s.cfg.DefaultIcons[speaker]
}

func (s *Session) playVoice(speaker Speaker) {
	if s.Voice == nil {
		return
	}
	clip := s.cfg.Voice.Clips[speaker]
	if clip == "" {
		s.Voice.Stop()
		s.voiceSpeaker = SpeakerUnknown
		return
	}
	if s.cfg.Voice.KeepVoice && s.voiceSpeaker == speaker && s.Voice.IsPlaying() {
		return
	}
	if last, ok := s.voiceStarted[speaker]; ok && s.now-last < s.cfg.Voice.MinInterval {
		return
	}
	s.Voice.PlayLooping(clip)
	if s.voiceStarted == nil {
		s.voiceStarted = make(map[Speaker]float64)
	}
	s.voiceStarted[speaker] = s.now
	s.voiceSpeaker = speaker
}

func (s *Session) triggerAnimation(line Line) {
	cfg := s.cfg.Animation
	if !cfg.Enabled || s.Animator == nil || line.Speaker != SpeakerNPC {
		return
	}
	if cfg.ExplicitOnly && !line.Explicit {
		return
	}
	if s.animFired && s.now-s.lastAnim < cfg.MinInterval {
		return
	}
	s.Animator.TriggerRandom()
	s.animFired = true
	s.lastAnim = s.now
}

func (s *Session) completeTyping() {
	s.tw.CompleteImmediately()
	if s.active != nil {
		s.active.SetMaxVisible(s.tw.Visible())
	}
}

func (s *Session) stopTyping() {
	s.tw.Clear()
}

func (s *Session) end(force bool) {
	wasOpen := s.open
	s.stopTyping()
	s.lines = nil
	s.index = 0
	s.open = false
	s.active = nil

	if s.Voice != nil {
		s.Voice.Stop()
	}
	s.voiceSpeaker = SpeakerUnknown

	for _, slot := range []Slot{s.NPC, s.Player, s.Legacy} {
		if slot.Text != nil {
			slot.Text.SetText("")
		}
	}
	if force || s.cfg.HidePanelOnFinish {
		setActive(s.Legacy.Panel, false)
		setActive(s.NPC.Panel, false)
		setActive(s.Player.Panel, false)
	}

	setActive(s.Next, false)
	s.updateInstruction(false)
	if s.Instruction != nil {
		s.Instruction.SetActive(false)
	}

	if wasOpen {
		if s.Music != nil {
			s.Music.SetConversation(false)
		}
		if s.OnEnd != nil {
			s.OnEnd()
		}
	}
}

func (s *Session) updateInstruction(show bool) {
	if s.Instruction == nil {
		return
	}
	if !show {
		s.Instruction.SetText("")
		return
	}
	msg := s.cfg.NextInstruction
	if strings.TrimSpace(msg) == "" {
		s.Instruction.SetText(s.cfg.NextKey)
		return
	}
	s.Instruction.SetText(strings.ReplaceAll(msg, "{key}", s.cfg.NextKey))
}

func setActive(a typewriter.Activatable, active bool) {
	if a != nil {
		a.SetActive(active)
	}
}
