package music

import (
	"math"
	"testing"
)

type play struct {
	clip string
	loop bool
}

type fakeSource struct {
	plays   []play
	volume  float64
	lengths map[string]float64
}

func (s *fakeSource) Play(clip string, loop bool) { s.plays = append(s.plays, play{clip, loop}) }
func (s *fakeSource) SetVolume(v float64)         { s.volume = v }
func (s *fakeSource) Length(clip string) float64  { return s.lengths[clip] }

func (s *fakeSource) last() play {
	if len(s.plays) == 0 {
		return play{}
	}
	return s.plays[len(s.plays)-1]
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Clips = map[State]string{
		Idle:         "idle.wav",
		Conversation: "talk.wav",
		FinalMission: "mission.wav",
	}
	cfg.Volumes[Conversation] = 0.8
	cfg.AfterSelectClips = []string{"a.wav", "", "b.wav", ""}
	return cfg
}

func TestManagerStartsIdleInstantly(t *testing.T) {
	src := &fakeSource{}
	m := NewManager(testConfig(), src)
	if m.State() != Idle || src.last() != (play{"idle.wav", true}) || src.volume != 1 || m.Fading() {
		t.Fatalf("state=%v last=%+v volume=%v fading=%v", m.State(), src.last(), src.volume, m.Fading())
	}
}

func TestManagerResumeWithLateSource(t *testing.T) {
	m := NewManager(testConfig(), nil)
	src := &fakeSource{}
	m.Source = src
	m.Resume()
	if src.last() != (play{"idle.wav", true}) || src.volume != 1 {
		t.Fatalf("last=%+v volume=%v", src.last(), src.volume)
	}
}

func TestManagerFade(t *testing.T) {
	src := &fakeSource{}
	m := NewManager(testConfig(), src)

	m.SetConversation(true)
	if src.last() != (play{"talk.wav", true}) || src.volume != 0 || !m.Fading() {
		t.Fatalf("conversation start: last=%+v volume=%v", src.last(), src.volume)
	}
	m.Update(0.25)
	if math.Abs(src.volume-0.4) > 1e-9 {
		t.Fatalf("half fade volume = %v, want 0.4", src.volume)
	}
	m.Update(0.3)
	if src.volume != 0.8 || m.Fading() {
		t.Fatalf("fade end volume = %v fading=%v", src.volume, m.Fading())
	}

	plays := len(src.plays)
	m.SetConversation(true)
	if len(src.plays) != plays {
		t.Fatalf("same state restarted the clip")
	}

	m.SetConversation(false)
	if m.State() != Idle || src.last().clip != "idle.wav" {
		t.Fatalf("conversation end: state=%v last=%+v", m.State(), src.last())
	}
}

func TestManagerMissingClipKeepsPlaying(t *testing.T) {
	cfg := testConfig()
	delete(cfg.Clips, FinalMission)
	src := &fakeSource{}
	m := NewManager(cfg, src)
	plays := len(src.plays)
	m.SetFinalMission()
	if m.State() != FinalMission || len(src.plays) != plays {
		t.Fatalf("state=%v plays=%d", m.State(), len(src.plays))
	}
}

func TestManagerAfterSelectPlaylist(t *testing.T) {
	cases := []struct {
		name     string
		loopLast bool
		want     []play
	}{
		{"loop_last", true, []play{{"a.wav", false}, {"b.wav", false}, {"b.wav", true}}},
		{"no_loop", false, []play{{"a.wav", false}, {"b.wav", false}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.LoopLastAfterSelect = tc.loopLast
			src := &fakeSource{lengths: map[string]float64{"a.wav": 1, "b.wav": 2}}
			m := NewManager(cfg, src)
			src.plays = nil

			m.SetAfterSelect()
			for range 240 {
				m.Update(1.0 / 60)
			}
			if len(src.plays) != len(tc.want) {
				t.Fatalf("plays = %+v, want %+v", src.plays, tc.want)
			}
			for i := range tc.want {
				if src.plays[i] != tc.want[i] {
					t.Fatalf("play %d = %+v, want %+v", i, src.plays[i], tc.want[i])
				}
			}
			if m.Playing() {
				t.Fatalf("playlist still stepping")
			}

			m.SetAfterSelect()
			if len(src.plays) != len(tc.want) {
				t.Fatalf("finished playlist restarted")
			}
		})
	}
}

func TestManagerAfterSelectAbortsOnStateChange(t *testing.T) {
	src := &fakeSource{lengths: map[string]float64{"a.wav": 1, "b.wav": 2}}
	m := NewManager(testConfig(), src)
	m.SetAfterSelect()
	m.Update(0.5)
	m.SetIdle()
	for range 240 {
		m.Update(1.0 / 60)
	}
	for _, p := range src.plays {
		if p.clip == "b.wav" {
			t.Fatalf("playlist continued after state change: %+v", src.plays)
		}
	}
}

func TestManagerAfterSelectEmptyRetries(t *testing.T) {
	cfg := testConfig()
	cfg.AfterSelectClips = nil
	src := &fakeSource{}
	m := NewManager(cfg, src)
	m.SetAfterSelect()
	if m.State() != AfterSelect || m.Playing() {
		t.Fatalf("state=%v playing=%v", m.State(), m.Playing())
	}
	m.cfg.AfterSelectClips = []string{"late.wav"}
	m.SetAfterSelect()
	if src.last() != (play{"late.wav", false}) {
		t.Fatalf("empty playlist did not retry: %+v", src.last())
	}
}

func TestParseState(t *testing.T) {
	cases := []struct {
		in   string
		want State
		ok   bool
	}{
		{"idle", Idle, true},
		{" Final_Mission ", FinalMission, true},
		{"after_select", AfterSelect, true},
		{"boss", Idle, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseState(tc.in)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("ParseState(%q) = %v, %v", tc.in, got, ok)
			}
		})
	}
}
