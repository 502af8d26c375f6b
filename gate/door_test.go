package gate

import (
	"math"
	"testing"

	"github.com/milk9111/finalroom/common"
)

type fakeSound struct{ clips []string }

func (s *fakeSound) PlayOneShot(clip string) { s.clips = append(s.clips, clip) }

func settle(d interface{ Update(float64) }, steps int) {
	for i := 0; i < steps; i++ {
		d.Update(1.0 / 60.0)
	}
}

func TestSlidingDoorLockedUntilCompleted(t *testing.T) {
	counter := NewConversationCounter(1)
	label := &fakeLabel{}
	sound := &fakeSound{}

	cfg := DefaultSlidingConfig()
	cfg.Clip = "door"
	door := NewSlidingDoor(cfg, common.Vec3{})
	door.Gate = counter
	door.Locked = label
	door.Sound = sound

	door.NotifyPlayerEnter(nil)
	settle(door, 120)
	if door.Position() != (common.Vec3{}) {
		t.Fatalf("expected locked door to stay shut, got %+v", door.Position())
	}
	if !label.active || label.text != DefaultLockedMessage {
		t.Fatalf("expected locked message, got %+v", label)
	}
	if len(sound.clips) != 0 {
		t.Fatalf("expected no door sound while locked")
	}

	counter.RegisterConversation("done")
	door.NotifyPlayerEnter(nil)
	if label.active {
		t.Fatalf("expected locked message hidden once open")
	}
	settle(door, 120)
	want := common.Vec3{X: 2}
	if common.Distance(door.Position(), want) > 0.01 || door.Moving() {
		t.Fatalf("expected door at %+v, got %+v moving=%v", want, door.Position(), door.Moving())
	}
	if len(sound.clips) != 1 {
		t.Fatalf("expected one door sound, got %d", len(sound.clips))
	}

	door.NotifyPlayerExit()
	settle(door, 120)
	if door.Position() != (common.Vec3{}) {
		t.Fatalf("expected door closed on exit, got %+v", door.Position())
	}
}

func TestSlidingDoorDirection(t *testing.T) {
	cases := []struct {
		name   string
		cfg    func(*SlidingConfig)
		player *common.Vec3
		want   common.Vec3
	}{
		{"away_from_player_on_right", nil, &common.Vec3{X: 1}, common.Vec3{X: -2}},
		{"away_from_player_on_left", nil, &common.Vec3{X: -1}, common.Vec3{X: 2}},
		{"zero_side_counts_positive", nil, &common.Vec3{}, common.Vec3{X: -2}},
		{"toward_player", func(c *SlidingConfig) { c.SlideAwayFromPlayer = false }, &common.Vec3{X: 1}, common.Vec3{X: 2}},
		{"zero_direction_falls_back", func(c *SlidingConfig) { c.Direction = common.Vec3{} }, nil, common.Vec3{X: 2}},
		{"normalized_direction", func(c *SlidingConfig) { c.Direction = common.Vec3{Z: 5} }, nil, common.Vec3{Z: 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultSlidingConfig()
			if c.cfg != nil {
				c.cfg(&cfg)
			}
			door := NewSlidingDoor(cfg, common.Vec3{})
			door.NotifyPlayerEnter(c.player)
			settle(door, 200)
			if common.Distance(door.Position(), c.want) > 1e-9 {
				t.Fatalf("expected %+v, got %+v", c.want, door.Position())
			}
		})
	}
}

func TestSlidingDoorRestartCancelsInFlight(t *testing.T) {
	door := NewSlidingDoor(DefaultSlidingConfig(), common.Vec3{})
	door.NotifyPlayerEnter(nil)
	settle(door, 15)
	mid := door.Position()
	if mid.X <= 0 || mid.X >= 2 {
		t.Fatalf("expected door mid-slide, got %+v", mid)
	}
	door.NotifyPlayerExit()
	settle(door, 120)
	if door.Position() != (common.Vec3{}) {
		t.Fatalf("expected door back at closed pose, got %+v", door.Position())
	}
}

func TestRotatingDoor(t *testing.T) {
	sound := &fakeSound{}
	cfg := DefaultRotatingConfig()
	cfg.Clip = "creak"
	door := NewRotatingDoor(cfg, 0)
	door.Sound = sound

	door.NotifyPlayerEnter()
	settle(door, 60)
	if math.Abs(door.Yaw()-90) > 1e-9 || !door.IsOpen() {
		t.Fatalf("expected door open at 90, got %v", door.Yaw())
	}

	// Re-entering while open keeps the swing and restarts the timer.
	settle(door, 100)
	door.NotifyPlayerEnter()
	settle(door, 150)
	if !door.IsOpen() || math.Abs(door.Yaw()-90) > 1e-9 {
		t.Fatalf("expected door still open after timer restart, got %v open=%v", door.Yaw(), door.IsOpen())
	}

	settle(door, 120)
	if door.IsOpen() || math.Abs(door.Yaw()) > 1e-9 {
		t.Fatalf("expected door closed after delay, got %v", door.Yaw())
	}

	door.NotifyPlayerEnter()
	settle(door, 60)
	if math.Abs(door.Yaw()+90) > 1e-9 {
		t.Fatalf("expected alternate swing to -90, got %v", door.Yaw())
	}
	if len(sound.clips) != 3 {
		t.Fatalf("expected three open sounds, got %d", len(sound.clips))
	}
}

func TestRotatingDoorLocked(t *testing.T) {
	counter := NewConversationCounter(1)
	label := &fakeLabel{}
	door := NewRotatingDoor(DefaultRotatingConfig(), 0)
	door.Gate = counter
	door.Locked = label

	door.NotifyPlayerEnter()
	settle(door, 60)
	if door.Yaw() != 0 || !label.active {
		t.Fatalf("expected locked rotating door")
	}
}
