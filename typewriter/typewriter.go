package typewriter

// Handle identifies one Reveal call.
type Handle uint64

// Typewriter reveals a string one glyph at a time. Only one reveal is active
// at once; a new Reveal replaces the current one.
type Typewriter struct {
	text      string
	total     int
	visible   int
	delay     float64
	elapsed   float64
	revealing bool
	handle    Handle
}

// Reveal starts revealing text with delay seconds between glyphs. The visible
// count steps 0..Total with one delay after each step, so the reveal finishes
// one delay after the last glyph appears. A non-positive delay shows
// everything at once.
func (t *Typewriter) Reveal(text string, delay float64) Handle {
	t.handle++
	t.text = text
	t.total = Glyphs(text)
	t.elapsed = 0

	if delay <= 0 {
		t.delay = 0
		t.visible = t.total
		t.revealing = false
		return t.handle
	}

	t.delay = delay
	t.visible = 0
	t.revealing = true
	return t.handle
}

// Update advances the reveal by dt seconds.
func (t *Typewriter) Update(dt float64) {
	if !t.revealing || dt <= 0 {
		return
	}
	t.elapsed += dt
	for t.revealing && t.elapsed >= t.delay {
		t.elapsed -= t.delay
		if t.visible < t.total {
			t.visible++
			continue
		}
		t.revealing = false
	}
}

// CompleteImmediately shows every glyph and cancels the pending step.
func (t *Typewriter) CompleteImmediately() {
	t.visible = t.total
	t.elapsed = 0
	t.revealing = false
}

// Clear cancels any reveal and drops the text.
func (t *Typewriter) Clear() {
	t.handle++
	t.text = ""
	t.total = 0
	t.visible = 0
	t.elapsed = 0
	t.revealing = false
}

func (t *Typewriter) IsRevealing() bool {
	return t.revealing
}

// Active reports whether h is the current reveal and still running.
func (t *Typewriter) Active(h Handle) bool {
	return h == t.handle && t.revealing
}

func (t *Typewriter) Visible() int {
	return t.visible
}

func (t *Typewriter) Total() int {
	return t.total
}

func (t *Typewriter) Text() string {
	return t.text
}
