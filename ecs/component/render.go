package component

import "image/color"

// OutlineShader is the material every outline instance is made from.
const OutlineShader = "outline_backface"

// Shape is what the top-down view draws for an entity.
type Shape struct {
	Kind   string
	Width  float64
	Depth  float64
	Radius float64
	Color  color.Color
	Label  string
}

var ShapeComponent = NewComponent[Shape]()

// Renderer holds an entity's material list. Saved keeps the list from
// before a highlight was applied.
type Renderer struct {
	Materials []string
	Saved     []string
	HasSaved  bool
}

var RendererComponent = NewComponent[Renderer]()

// Outline configures the highlight of an entity hierarchy. Exclude lists the
// Names of child renderers that never get outlined.
type Outline struct {
	Color       color.Color
	Thickness   float64
	Highlighted bool
	Exclude     []string
}

var OutlineComponent = NewComponent[Outline]()
