package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// AudioSource plays clips at an entity. Scene code queues requests; the
// audio system owns the ebiten players.
type AudioSource struct {
	Players map[string]*audio.Player
	Volume  float64

	OneShots []string

	Loop       string
	LoopVolume float64
	// LoopPlaying mirrors whether the loop is audible.
	LoopPlaying bool
}

var AudioSourceComponent = NewComponent[AudioSource]()
