package dialogue

import (
	"slices"
	"testing"
)

func TestSentences(t *testing.T) {
	p := NewParser()
	cases := []struct {
		name      string
		paragraph string
		want      []string
	}{
		{"empty", "", nil},
		{"whitespace_only", "  \r\n\t ", nil},
		{"no_terminal_punctuation", "  just some words  ", []string{"just some words"}},
		{"two_sentences", "Hello there. How are you?", []string{"Hello there.", "How are you?"}},
		{"ellipsis_collapses", "Well... maybe. Fine!", []string{"Well...", "maybe.", "Fine!"}},
		{"closing_quote_absorbed", `He said "stop." Then left.`, []string{`He said "stop."`, "Then left."}},
		{"closing_bracket_absorbed", "(Quietly.) Go on", []string{"(Quietly.)", "Go on"}},
		{"newlines_become_spaces", "Line one.\nLine\r\ntwo.", []string{"Line one.", "Line  two."}},
		{"remainder_kept", "Done. and then", []string{"Done.", "and then"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := slices.Collect(p.Sentences(c.paragraph))
			if !slices.Equal(got, c.want) {
				t.Fatalf("expected %q, got %q", c.want, got)
			}
		})
	}
}

func TestParse(t *testing.T) {
	p := NewParser()
	cases := []struct {
		name      string
		paragraph string
		want      []Line
	}{
		{
			name:      "explicit_speakers",
			paragraph: "NPC: Hello there. Player: Hi!",
			want: []Line{
				{Speaker: SpeakerNPC, Text: "Hello there.", Explicit: true},
				{Speaker: SpeakerPlayer, Text: "Hi!", Explicit: true},
			},
		},
		{
			name:      "speaker_carries_over",
			paragraph: "Detective - Where were you? At home. NPC: Lies.",
			want: []Line{
				{Speaker: SpeakerPlayer, Text: "Where were you?", Explicit: true},
				{Speaker: SpeakerPlayer, Text: "At home."},
				{Speaker: SpeakerNPC, Text: "Lies.", Explicit: true},
			},
		},
		{
			name:      "default_speaker_first",
			paragraph: "Welcome. player:Thanks.",
			want: []Line{
				{Speaker: SpeakerNPC, Text: "Welcome."},
				{Speaker: SpeakerPlayer, Text: "Thanks.", Explicit: true},
			},
		},
		{
			name:      "prefix_only_discarded",
			paragraph: "Player: Hi. NPC: ",
			want: []Line{
				{Speaker: SpeakerPlayer, Text: "Hi.", Explicit: true},
			},
		},
		{
			name:      "prefix_needs_word_boundary",
			paragraph: "NPCs are odd.",
			want: []Line{
				{Speaker: SpeakerNPC, Text: "NPCs are odd."},
			},
		},
		{
			name:      "misspelled_tag",
			paragraph: "Ditective: Hmm.",
			want: []Line{
				{Speaker: SpeakerPlayer, Text: "Hmm.", Explicit: true},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := p.Parse(c.paragraph)
			if !slices.Equal(got, c.want) {
				t.Fatalf("expected %+v, got %+v", c.want, got)
			}
		})
	}
}

func TestParseDefaultSpeakerPlayer(t *testing.T) {
	p := NewParser()
	p.DefaultSpeaker = SpeakerPlayer
	got := p.Parse("Nobody here")
	if len(got) != 1 || got[0].Speaker != SpeakerPlayer {
		t.Fatalf("expected player line, got %+v", got)
	}
}

func TestLinesStopsEarly(t *testing.T) {
	p := NewParser()
	n := 0
	for range p.Lines("One. Two. Three.") {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("expected iteration to stop at 2, got %d", n)
	}
}
