package gate

import (
	"log"

	"github.com/milk9111/finalroom/common"
)

// Gate reports whether the way is open.
type Gate interface {
	IsCompleted() bool
}

// Sound plays a one-shot clip.
type Sound interface {
	PlayOneShot(clip string)
}

// MessageLabel is a label that can be hidden.
type MessageLabel interface {
	SetText(text string)
	SetActive(active bool)
}

const (
	DefaultLockedMessage = "Finish all conversations before entering."
	slideSnapSq          = 0.0001
)

type SlidingConfig struct {
	Direction           common.Vec3
	Distance            float64
	Speed               float64
	CloseOnExit         bool
	SlideAwayFromPlayer bool
	LockedMessage       string
	Clip                string
}

func DefaultSlidingConfig() SlidingConfig {
	return SlidingConfig{
		Direction:           common.Vec3{X: 1},
		Distance:            2,
		Speed:               2,
		CloseOnExit:         true,
		SlideAwayFromPlayer: true,
		LockedMessage:       DefaultLockedMessage,
	}
}

// SlidingDoor slides along a local axis when the player approaches, unless a
// gate keeps it locked.
type SlidingDoor struct {
	cfg    SlidingConfig
	Gate   Gate
	Locked MessageLabel
	Sound  Sound

	closed   common.Vec3
	position common.Vec3
	target   common.Vec3
	moving   bool
}

func NewSlidingDoor(cfg SlidingConfig, closed common.Vec3) *SlidingDoor {
	return &SlidingDoor{cfg: cfg, closed: closed, position: closed, target: closed}
}

// NotifyPlayerEnter opens the door, or shows the locked message. playerLocal
// is the player position in the door's frame; nil means unknown.
func (d *SlidingDoor) NotifyPlayerEnter(playerLocal *common.Vec3) {
	if d.Gate != nil && !d.Gate.IsCompleted() {
		d.showLocked()
		return
	}
	d.startSlide(d.openPosition(playerLocal))
	d.hideLocked()
	d.playSound()
}

func (d *SlidingDoor) NotifyPlayerExit() {
	d.hideLocked()
	if d.cfg.CloseOnExit {
		d.startSlide(d.closed)
		d.playSound()
	}
}

// Update moves the door toward its target.
func (d *SlidingDoor) Update(dt float64) {
	if !d.moving {
		return
	}
	if d.position.Sub(d.target).LenSq() <= slideSnapSq {
		d.position = d.target
		d.moving = false
		return
	}
	d.position = common.MoveTowards(d.position, d.target, d.cfg.Speed*dt)
}

// Position is the door's local position.
func (d *SlidingDoor) Position() common.Vec3 {
	return d.position
}

func (d *SlidingDoor) Closed() common.Vec3 {
	return d.closed
}

func (d *SlidingDoor) Moving() bool {
	return d.moving
}

func (d *SlidingDoor) IsOpen() bool {
	return d.target != d.closed
}

func (d *SlidingDoor) startSlide(target common.Vec3) {
	d.target = target
	d.moving = true
}

func (d *SlidingDoor) openPosition(playerLocal *common.Vec3) common.Vec3 {
	dir := d.cfg.Direction
	if dir.LenSq() > 0.0001 {
		dir = dir.Normalize()
	} else {
		dir = common.Vec3{X: 1}
	}
	if playerLocal == nil {
		return d.closed.Add(dir.Scale(d.cfg.Distance))
	}

	side := common.Sign(playerLocal.X)
	if d.cfg.SlideAwayFromPlayer {
		side = -side
	}
	return d.closed.Add(dir.Scale(d.cfg.Distance * side))
}

func (d *SlidingDoor) showLocked() {
	if d.Locked == nil {
		log.Printf("door: locked: %s", d.cfg.LockedMessage)
		return
	}
	d.Locked.SetText(d.cfg.LockedMessage)
	d.Locked.SetActive(true)
}

func (d *SlidingDoor) hideLocked() {
	if d.Locked == nil {
		return
	}
	d.Locked.SetText("")
	d.Locked.SetActive(false)
}

func (d *SlidingDoor) playSound() {
	if d.Sound == nil || d.cfg.Clip == "" {
		return
	}
	d.Sound.PlayOneShot(d.cfg.Clip)
}

func (d *SlidingDoor) Config() SlidingConfig {
	return d.cfg
}
