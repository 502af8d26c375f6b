package component

import (
	"image/color"

	"github.com/milk9111/finalroom/typewriter"
)

// Text is a screen-space label. MaxVisible < 0 shows every glyph.
type Text struct {
	Value      string
	MaxVisible int
	X          float64
	Y          float64
	Color      color.Color
	// Box draws a backing panel of this size when non-zero.
	BoxW     float64
	BoxH     float64
	BoxColor color.Color
}

var TextComponent = NewComponent[Text]()

// Icon is a portrait shown next to a dialogue line.
type Icon struct {
	Name string
}

var IconComponent = NewComponent[Icon]()

// TypingPanel is a message box that types its text out.
type TypingPanel struct {
	Panel *typewriter.Panel
	// Text is the Name of the label the panel writes to; empty means the
	// panel's own entity.
	Text  string
	Bound bool
}

var TypingPanelComponent = NewComponent[TypingPanel]()
