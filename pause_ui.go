package main

import (
	"fmt"
	"image/color"

	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/settings"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// setting is one adjustable value in the pause menu.
type setting struct {
	label  string
	step   float64
	format func(v float64) string
	get    func(s settings.Settings) float64
	set    func(s *settings.Settings, v float64)
}

func percent(v float64) string { return fmt.Sprintf("%d%%", int(v*100+0.5)) }

var pauseSettings = []setting{
	{
		label: "Music", step: 0.1, format: percent,
		get: func(s settings.Settings) float64 { return s.MusicVolume },
		set: func(s *settings.Settings, v float64) { s.MusicVolume = v },
	},
	{
		label: "Effects", step: 0.1, format: percent,
		get: func(s settings.Settings) float64 { return s.EffectsVolume },
		set: func(s *settings.Settings, v float64) { s.EffectsVolume = v },
	},
	{
		label: "Mouse", step: 0.1,
		format: func(v float64) string { return fmt.Sprintf("x%.1f", v) },
		get:    func(s settings.Settings) float64 { return s.MouseSensitivity },
		set:    func(s *settings.Settings, v float64) { s.MouseSensitivity = v },
	},
	{
		label: "Text delay", step: 0.01,
		format: func(v float64) string { return fmt.Sprintf("%.2fs", v) },
		get:    func(s settings.Settings) float64 { return s.TextDelay },
		set:    func(s *settings.Settings, v float64) { s.TextDelay = v },
	},
}

// NewPauseUI builds the centered pause menu: resume, the dialogue next
// button and the player settings.
func NewPauseUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)
	resumeBtn := button("Resume", func() { g.paused = false })
	nextBtn := button("Next line", func() {
		g.ClickNext()
		g.paused = false
	})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(resumeBtn)
	panel.AddChild(nextBtn)

	for _, st := range pauseSettings {
		value := widget.NewText(
			widget.TextOpts.Text(fmt.Sprintf("%s: %s", st.label, st.format(st.get(g.settings.Get()))), &face, white),
		)
		change := func(delta float64) func() {
			return func() {
				s := g.settings.Get()
				st.set(&s, st.get(s)+delta)
				g.UpdateSettings(s)
				value.Label = fmt.Sprintf("%s: %s", st.label, st.format(st.get(g.settings.Get())))
			}
		}
		row := widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			)),
			widget.ContainerOpts.WidgetOpts(centered),
		)
		row.AddChild(button("-", change(-st.step)))
		row.AddChild(value)
		row.AddChild(button("+", change(st.step)))
		panel.AddChild(row)
	}

	invertLabel := func() string {
		if g.settings.Get().InvertY {
			return "Invert Y: On"
		}
		return "Invert Y: Off"
	}
	var invertBtn *widget.Button
	invertBtn = button(invertLabel(), func() {
		s := g.settings.Get()
		s.InvertY = !s.InvertY
		g.UpdateSettings(s)
		if text := invertBtn.Text(); text != nil {
			text.Label = invertLabel()
		}
	})
	panel.AddChild(invertBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
