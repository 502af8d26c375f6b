package cinematic

// Step is one beat of a timeline. Wait is counted down before Run is called.
// A Run that returns false stops the timeline.
type Step struct {
	Name string
	Wait float64
	Run  func() bool
}

// Timeline is a cooperative sequence of delayed steps driven by Update.
type Timeline struct {
	steps   []Step
	next    int
	wait    float64
	running bool
}

// Start replaces whatever was running and runs steps until the first one
// that has to wait.
func (t *Timeline) Start(steps ...Step) {
	t.steps = steps
	t.next = 0
	t.running = len(steps) > 0
	if !t.running {
		return
	}
	t.wait = steps[0].Wait
	t.pump()
}

func (t *Timeline) Update(dt float64) {
	if !t.running {
		return
	}
	t.wait -= dt
	t.pump()
}

func (t *Timeline) Running() bool {
	return t.running
}

// Current names the step that runs next, or "" when idle.
func (t *Timeline) Current() string {
	if !t.running {
		return ""
	}
	return t.steps[t.next].Name
}

func (t *Timeline) Stop() {
	t.running = false
	t.steps = nil
}

func (t *Timeline) pump() {
	for t.running && t.wait <= 0 {
		step := t.steps[t.next]
		t.next++
		if step.Run != nil && !step.Run() {
			t.Stop()
			return
		}
		if t.next >= len(t.steps) {
			t.Stop()
			return
		}
		t.wait = t.steps[t.next].Wait
	}
}
