package dialogue

import "strings"

// Speaker identifies who delivers a line.
type Speaker int

const (
	SpeakerUnknown Speaker = iota
	SpeakerNPC
	SpeakerPlayer
)

func (s Speaker) String() string {
	switch s {
	case SpeakerNPC:
		return "npc"
	case SpeakerPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// ParseSpeakerName maps a config string such as "npc" or "Player" to a Speaker.
func ParseSpeakerName(name string) Speaker {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "npc":
		return SpeakerNPC
	case "player":
		return SpeakerPlayer
	default:
		return SpeakerUnknown
	}
}

// Line is one displayable sentence of a conversation.
type Line struct {
	Speaker Speaker
	Text    string
	// Explicit reports whether the speaker came from a prefix in the
	// sentence rather than being carried over from a previous line.
	Explicit bool
}
