package component

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/finalroom/music"
)

// MusicPlayer stores global music playback state on a dedicated ECS entity.
// The manager decides what should play; the music system applies it to
// the ebiten players.
type MusicPlayer struct {
	Manager *music.Manager
	Players map[string]*audio.Player
	Lengths map[string]float64

	CurrentTrack string
	CurrentLoop  bool
	Volume       float64
	// Master scales every track, from player settings.
	Master float64

	PendingTrack  string
	PendingLoop   bool
	PendingActive bool
}

var MusicPlayerComponent = NewComponent[MusicPlayer]()
