package typewriter

import (
	"image/color"
	"testing"
)

func TestRevealZeroDelay(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		delay float64
		want  int
	}{
		{"zero", "Hi", 0, 2},
		{"negative", "Hello", -1, 5},
		{"markup_not_counted", "<color=#FF0000FF>Hi</color>", 0, 2},
		{"empty", "", 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var tw Typewriter
			tw.Reveal(c.text, c.delay)
			if tw.IsRevealing() {
				t.Fatalf("expected reveal to finish in a single step")
			}
			if tw.Visible() != c.want || tw.Total() != c.want {
				t.Fatalf("expected visible=total=%d, got visible=%d total=%d", c.want, tw.Visible(), tw.Total())
			}
		})
	}
}

func TestRevealSteps(t *testing.T) {
	var tw Typewriter
	h := tw.Reveal("abc", 0.5)
	if !tw.Active(h) || tw.Visible() != 0 {
		t.Fatalf("expected active reveal starting at 0, got visible=%d", tw.Visible())
	}

	for i := 1; i <= 3; i++ {
		tw.Update(0.5)
		if tw.Visible() != i {
			t.Fatalf("step %d: expected visible=%d, got %d", i, i, tw.Visible())
		}
		if !tw.IsRevealing() {
			t.Fatalf("step %d: reveal ended early", i)
		}
	}

	tw.Update(0.5)
	if tw.IsRevealing() || tw.Active(h) {
		t.Fatalf("expected reveal to end one delay after the last glyph")
	}
}

func TestRevealLargeStepCatchesUp(t *testing.T) {
	var tw Typewriter
	tw.Reveal("abcd", 0.25)
	tw.Update(0.75)
	if tw.Visible() != 3 {
		t.Fatalf("expected 3 glyphs after three delays, got %d", tw.Visible())
	}
}

func TestCompleteImmediately(t *testing.T) {
	cases := []struct {
		name    string
		advance float64
	}{
		{"before_first_step", 0},
		{"mid_reveal", 0.5},
		{"after_finish", 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var tw Typewriter
			tw.Reveal("Hello there.", 0.25)
			tw.Update(c.advance)
			tw.CompleteImmediately()
			if tw.Visible() != tw.Total() || tw.Total() != len("Hello there.") {
				t.Fatalf("expected visible == total == %d, got %d/%d", len("Hello there."), tw.Visible(), tw.Total())
			}
			if tw.IsRevealing() {
				t.Fatalf("expected reveal to stop")
			}
		})
	}
}

func TestRevealReplacesInFlight(t *testing.T) {
	var tw Typewriter
	first := tw.Reveal("first", 0.5)
	tw.Update(0.5)
	second := tw.Reveal("xy", 0.5)
	if tw.Active(first) {
		t.Fatalf("expected first reveal to be cancelled")
	}
	if !tw.Active(second) || tw.Visible() != 0 || tw.Text() != "xy" {
		t.Fatalf("expected fresh reveal of second text, got %q visible=%d", tw.Text(), tw.Visible())
	}
}

func TestSpans(t *testing.T) {
	spans := Spans("<color=#FF9999FF>Red</color>\n\n<color=#FFFFFF>White</color> tail")
	if len(spans) != 4 {
		t.Fatalf("expected 4 spans, got %d: %#v", len(spans), spans)
	}
	if spans[0].Text != "Red" || spans[0].Color != (color.NRGBA{R: 0xff, G: 0x99, B: 0x99, A: 0xff}) {
		t.Fatalf("unexpected first span %#v", spans[0])
	}
	if spans[3].Color != nil || spans[3].Text != " tail" {
		t.Fatalf("expected default colored tail, got %#v", spans[3])
	}

	cut := Truncate(spans, 4)
	if Plain("<color=#FF9999FF>Red</color>\n\n") != "Red\n\n" {
		t.Fatalf("unexpected plain text")
	}
	if len(cut) != 2 || cut[0].Text != "Red" || cut[1].Text != "\n" {
		t.Fatalf("unexpected truncation %#v", cut)
	}
}

func TestColorTag(t *testing.T) {
	got := ColorTag(color.NRGBA{R: 255, G: 153, B: 153, A: 255})
	if got != "#FF9999FF" {
		t.Fatalf("expected #FF9999FF, got %s", got)
	}
}

type fakeRoot struct{ active bool }

func (r *fakeRoot) SetActive(active bool) { r.active = active }

type fakeText struct {
	text    string
	visible int
}

func (f *fakeText) SetText(text string) { f.text = text }
func (f *fakeText) SetMaxVisible(n int) { f.visible = n }

func TestPanel(t *testing.T) {
	root := &fakeRoot{active: true}
	text := &fakeText{}
	p := NewPanel(root, text)
	if root.active {
		t.Fatalf("expected panel hidden on construction")
	}

	p.CharacterDelay = 0.5
	p.Show("ok")
	if !root.active || text.text != "ok" || text.visible != 0 {
		t.Fatalf("unexpected state after Show: active=%v text=%q visible=%d", root.active, text.text, text.visible)
	}
	p.Update(0.5)
	p.Update(0.5)
	if text.visible != 2 {
		t.Fatalf("expected both glyphs visible, got %d", text.visible)
	}

	p.Hide()
	if root.active || text.text != "" || p.IsRevealing() {
		t.Fatalf("expected hidden empty panel")
	}
}

func TestPanelWithoutText(t *testing.T) {
	root := &fakeRoot{}
	p := NewPanel(root, nil)
	p.Show("ignored")
	if root.active {
		t.Fatalf("expected Show to be a no-op without a text surface")
	}
}
