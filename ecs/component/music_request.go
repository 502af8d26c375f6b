package component

import "github.com/milk9111/finalroom/music"

// MusicRequest is a one-shot request to switch the music state. Only the
// latest request of a tick is applied.
type MusicRequest struct {
	State   music.State
	Instant bool
}

var MusicRequestComponent = NewComponent[MusicRequest]()
