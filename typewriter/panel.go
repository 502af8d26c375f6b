package typewriter

// Surface is a text element with a reveal cursor.
type Surface interface {
	SetText(text string)
	SetMaxVisible(n int)
}

// Activatable can be shown or hidden.
type Activatable interface {
	SetActive(active bool)
}

// Panel is a standalone message box that types its message out.
type Panel struct {
	Root           Activatable
	Text           Surface
	CharacterDelay float64
	HideWhenEmpty  bool

	tw Typewriter
}

const DefaultPanelDelay = 0.03

func NewPanel(root Activatable, text Surface) *Panel {
	p := &Panel{
		Root:           root,
		Text:           text,
		CharacterDelay: DefaultPanelDelay,
		HideWhenEmpty:  true,
	}
	if root != nil {
		root.SetActive(false)
	}
	return p
}

// Show activates the panel and starts typing msg.
func (p *Panel) Show(msg string) {
	if p == nil || p.Text == nil {
		return
	}
	if p.Root != nil {
		p.Root.SetActive(true)
	}
	p.tw.Reveal(msg, p.CharacterDelay)
	p.Text.SetText(msg)
	p.Text.SetMaxVisible(p.tw.Visible())
}

// Hide cancels typing and blanks the text.
func (p *Panel) Hide() {
	if p == nil {
		return
	}
	p.tw.Clear()
	if p.Text != nil {
		p.Text.SetText("")
		p.Text.SetMaxVisible(0)
	}
	if p.HideWhenEmpty && p.Root != nil {
		p.Root.SetActive(false)
	}
}

func (p *Panel) Update(dt float64) {
	if p == nil || p.Text == nil || !p.tw.IsRevealing() {
		return
	}
	p.tw.Update(dt)
	p.Text.SetMaxVisible(p.tw.Visible())
}

func (p *Panel) IsRevealing() bool {
	return p != nil && p.tw.IsRevealing()
}

func (p *Panel) Message() string {
	if p == nil {
		return ""
	}
	return p.tw.Text()
}
