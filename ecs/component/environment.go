package component

import "image/color"

// Environment holds the scene-wide ambient lighting.
type Environment struct {
	AmbientColor     color.Color
	AmbientIntensity float64
}

var EnvironmentComponent = NewComponent[Environment]()

type Light struct {
	Enabled   bool
	Color     color.Color
	Range     float64
	Intensity float64
}

var LightComponent = NewComponent[Light]()
