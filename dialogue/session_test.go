package dialogue

import "testing"

type fakePanel struct{ active bool }

func (p *fakePanel) SetActive(active bool) { p.active = active }

type fakeText struct {
	text    string
	visible int
}

func (f *fakeText) SetText(text string) { f.text = text }
func (f *fakeText) SetMaxVisible(n int) { f.visible = n }

type fakeIcon struct{ name string }

func (f *fakeIcon) SetIcon(name string) { f.name = name }

type fakeLabel struct {
	text   string
	active bool
}

func (l *fakeLabel) SetText(text string)   { l.text = text }
func (l *fakeLabel) SetActive(active bool) { l.active = active }

type fakeVoice struct {
	starts  []string
	stops   int
	playing bool
}

func (v *fakeVoice) PlayLooping(clip string) { v.starts = append(v.starts, clip); v.playing = true }
func (v *fakeVoice) Stop()                   { v.stops++; v.playing = false }
func (v *fakeVoice) IsPlaying() bool         { return v.playing }

type fakeAnimator struct{ count int }

func (a *fakeAnimator) TriggerRandom() { a.count++ }

type fakeMusic struct{ calls []bool }

func (m *fakeMusic) SetConversation(active bool) { m.calls = append(m.calls, active) }

type rig struct {
	session     *Session
	npcPanel    *fakePanel
	playerPanel *fakePanel
	npcText     *fakeText
	playerText  *fakeText
	icon        *fakeIcon
	next        *fakePanel
	instruction *fakeLabel
	voice       *fakeVoice
	anim        *fakeAnimator
	music       *fakeMusic
}

func newRig(cfg Config) *rig {
	r := &rig{
		npcPanel:    &fakePanel{},
		playerPanel: &fakePanel{},
		npcText:     &fakeText{},
		playerText:  &fakeText{},
		icon:        &fakeIcon{},
		next:        &fakePanel{},
		instruction: &fakeLabel{},
		voice:       &fakeVoice{},
		anim:        &fakeAnimator{},
		music:       &fakeMusic{},
	}
	s := NewSession("test", cfg)
	s.NPC = Slot{Panel: r.npcPanel, Text: r.npcText, Icon: r.icon}
	s.Player = Slot{Panel: r.playerPanel, Text: r.playerText, Icon: r.icon}
	s.Next = r.next
	s.Instruction = r.instruction
	s.Voice = r.voice
	s.Animator = r.anim
	s.Music = r.music
	r.session = s
	return r
}

func TestSessionStartEmpty(t *testing.T) {
	r := newRig(DefaultConfig())
	r.next.active = true
	r.session.Start("   ")
	if r.session.IsOpen() {
		t.Fatalf("expected session to stay closed")
	}
	if r.next.active {
		t.Fatalf("expected next affordance hidden")
	}
	if len(r.music.calls) != 0 {
		t.Fatalf("expected no music change, got %v", r.music.calls)
	}
}

func TestSessionFlow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CharacterDelay = 0.25
	r := newRig(cfg)
	s := r.session

	s.Start("NPC: Hi. Player: Yo.")
	if !s.IsOpen() || s.State() != Typing || s.Index() != 0 {
		t.Fatalf("expected typing line 0, got open=%v state=%v index=%d", s.IsOpen(), s.State(), s.Index())
	}
	if !r.npcPanel.active || r.playerPanel.active {
		t.Fatalf("expected npc panel shown and player panel hidden")
	}
	if r.npcText.text != "Hi." || r.npcText.visible != 0 {
		t.Fatalf("unexpected npc text %q visible=%d", r.npcText.text, r.npcText.visible)
	}
	if r.instruction.text != "Press Space to continue" || !r.instruction.active {
		t.Fatalf("unexpected instruction %+v", r.instruction)
	}

	s.Update(0.25)
	if r.npcText.visible != 1 {
		t.Fatalf("expected one glyph after one delay, got %d", r.npcText.visible)
	}

	// Advance while typing only completes the line.
	s.Advance()
	if s.Index() != 0 || s.State() != TypingComplete || r.npcText.visible != 3 {
		t.Fatalf("expected completed line 0, got index=%d state=%v visible=%d", s.Index(), s.State(), r.npcText.visible)
	}

	s.Advance()
	if s.Index() != 1 || !r.playerPanel.active || r.npcPanel.active {
		t.Fatalf("expected player line shown, index=%d", s.Index())
	}
	if r.playerText.text != "Yo." {
		t.Fatalf("unexpected player text %q", r.playerText.text)
	}

	s.Advance() // complete
	s.Advance() // end
	if s.IsOpen() {
		t.Fatalf("expected session closed")
	}
	if r.npcPanel.active || r.playerPanel.active || r.next.active || r.instruction.active {
		t.Fatalf("expected all ui hidden after end")
	}
	if r.npcText.text != "" || r.playerText.text != "" {
		t.Fatalf("expected text cleared")
	}
	if len(r.music.calls) != 2 || !r.music.calls[0] || r.music.calls[1] {
		t.Fatalf("expected conversation on then off, got %v", r.music.calls)
	}
	if r.voice.playing {
		t.Fatalf("expected voice stopped on end")
	}
}

func TestSessionKeepsPanelsWhenConfigured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CharacterDelay = 0
	cfg.HidePanelOnFinish = false
	r := newRig(cfg)

	r.session.Start("NPC: One.")
	r.session.Advance()
	if !r.npcPanel.active {
		t.Fatalf("expected npc panel to remain visible")
	}

	r.session.Start("NPC: Two.")
	r.session.Close()
	if r.npcPanel.active {
		t.Fatalf("expected Close to force-hide panels")
	}
}

func TestSessionSlotFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CharacterDelay = 0
	r := newRig(cfg)
	r.session.Player.Text = nil

	r.session.Start("Player: Hello.")
	if r.npcText.text != "Hello." {
		t.Fatalf("expected player line to fall back to npc text, got %q", r.npcText.text)
	}
	if !r.playerPanel.active || r.npcPanel.active {
		t.Fatalf("expected preferred panel on and fallback panel off")
	}
}

func TestSessionLegacyPanel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CharacterDelay = 0
	s := NewSession("legacy", cfg)
	panel := &fakePanel{}
	text := &fakeText{}
	s.Legacy = Slot{Panel: panel, Text: text}

	s.Start("Player: Hi.")
	if !panel.active || text.text != "Hi." || text.visible != 3 {
		t.Fatalf("expected legacy panel to show line, got active=%v text=%q visible=%d", panel.active, text.text, text.visible)
	}
}

func TestSessionMissingSurface(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession("broken", cfg)
	s.Start("Hello.")
	if !s.IsOpen() {
		t.Fatalf("expected session to open even without surfaces")
	}
	if s.State() != TypingComplete {
		t.Fatalf("expected no typing to start, got %v", s.State())
	}
}

func TestSessionIcons(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CharacterDelay = 0
	cfg.Icons = map[Speaker][]string{SpeakerNPC: {"npc_happy", ""}}
	cfg.DefaultIcons = map[Speaker]string{SpeakerNPC: "npc_default", SpeakerPlayer: "player_default"}
	r := newRig(cfg)

	r.session.Start("NPC: A. B. Player: C.")
	if r.icon.name != "npc_happy" {
		t.Fatalf("expected indexed icon, got %q", r.icon.name)
	}
	r.session.Advance()
	if r.icon.name != "npc_default" {
		t.Fatalf("expected default icon for blank entry, got %q", r.icon.name)
	}
	r.session.Advance()
	if r.icon.name != "player_default" {
		t.Fatalf("expected player default icon, got %q", r.icon.name)
	}
}

func TestSessionVoiceThrottle(t *testing.T) {
	cases := []struct {
		name       string
		keep       bool
		interval   float64
		wantStarts int
	}{
		{"keep_voice_continues_loop", true, 0, 1},
		{"restart_each_line", false, 0, 3},
		{"throttled_restarts", false, 10, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CharacterDelay = 0
			cfg.Voice = VoiceConfig{
				Clips:       map[Speaker]string{SpeakerNPC: "npc_voice"},
				KeepVoice:   c.keep,
				MinInterval: c.interval,
			}
			r := newRig(cfg)
			r.session.Start("NPC: One. Two. Three.")
			r.session.Update(1)
			r.session.Advance()
			r.session.Update(1)
			r.session.Advance()
			if len(r.voice.starts) != c.wantStarts {
				t.Fatalf("expected %d voice starts, got %d", c.wantStarts, len(r.voice.starts))
			}
		})
	}
}

func TestSessionVoiceStopsForSilentSpeaker(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CharacterDelay = 0
	cfg.Voice = VoiceConfig{Clips: map[Speaker]string{SpeakerNPC: "npc_voice"}, KeepVoice: true}
	r := newRig(cfg)
	r.session.Start("NPC: One. Player: Two.")
	r.session.Advance()
	if r.voice.playing {
		t.Fatalf("expected npc loop stopped when player speaks")
	}
}

func TestSessionAnimation(t *testing.T) {
	cases := []struct {
		name     string
		cfg      AnimationConfig
		advance  float64
		wantAnim int
	}{
		{"every_npc_line", AnimationConfig{Enabled: true}, 0, 3},
		{"explicit_only", AnimationConfig{Enabled: true, ExplicitOnly: true}, 0, 2},
		{"throttled", AnimationConfig{Enabled: true, MinInterval: 5}, 1, 1},
		{"disabled", AnimationConfig{}, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CharacterDelay = 0
			cfg.Animation = c.cfg
			r := newRig(cfg)
			r.session.Start("NPC: One. Two. Player: Hm. NPC: Three.")
			for i := 0; i < 3; i++ {
				r.session.Update(c.advance)
				r.session.Advance()
			}
			if r.anim.count != c.wantAnim {
				t.Fatalf("expected %d animations, got %d", c.wantAnim, r.anim.count)
			}
		})
	}
}

func TestSessionHooks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CharacterDelay = 0
	r := newRig(cfg)
	var started, ended int
	var seen []int
	r.session.OnStart = func() { started++ }
	r.session.OnLine = func(i int, _ Line) { seen = append(seen, i) }
	r.session.OnEnd = func() { ended++ }

	r.session.Start("One. Two.")
	r.session.Advance()
	r.session.Advance()
	r.session.Close()

	if started != 1 || ended != 1 {
		t.Fatalf("expected one start and one end, got %d/%d", started, ended)
	}
	if len(seen) != 2 || seen[0] != 0 || seen[1] != 1 {
		t.Fatalf("unexpected line hooks %v", seen)
	}
}
