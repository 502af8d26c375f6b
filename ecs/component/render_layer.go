package component

// RenderLayer orders the top-down draw. Higher layers draw later; ties fall
// back to entity id.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
