package gate

import (
	"math"

	"github.com/milk9111/finalroom/common"
)

const angleSnap = 0.1

type RotatingConfig struct {
	OpenAngle              float64
	RotationSpeed          float64
	CloseDelay             float64
	AlternateOpenDirection bool
	Clip                   string
	Volume                 float64
	LockedMessage          string
}

func DefaultRotatingConfig() RotatingConfig {
	return RotatingConfig{
		OpenAngle:              90,
		RotationSpeed:          180,
		CloseDelay:             3,
		AlternateOpenDirection: true,
		Volume:                 1,
		LockedMessage:          DefaultLockedMessage,
	}
}

// RotatingDoor swings open about its hinge when the player walks in and
// closes itself after a delay.
type RotatingDoor struct {
	cfg    RotatingConfig
	Gate   Gate
	Locked MessageLabel
	Sound  Sound

	closedYaw float64
	yaw       float64
	targetYaw float64
	rotating  bool

	open         bool
	openPositive bool
	closeLeft    float64
	closing      bool
}

func NewRotatingDoor(cfg RotatingConfig, closedYaw float64) *RotatingDoor {
	return &RotatingDoor{
		cfg:          cfg,
		closedYaw:    closedYaw,
		yaw:          closedYaw,
		targetYaw:    closedYaw,
		openPositive: true,
	}
}

// NotifyPlayerEnter swings the door open and restarts the close timer.
func (d *RotatingDoor) NotifyPlayerEnter() {
	if d.Gate != nil && !d.Gate.IsCompleted() {
		if d.Locked != nil {
			d.Locked.SetText(d.cfg.LockedMessage)
			d.Locked.SetActive(true)
		}
		return
	}
	if d.Locked != nil {
		d.Locked.SetText("")
		d.Locked.SetActive(false)
	}

	d.startRotate(d.nextOpenYaw())
	d.open = true
	if d.Sound != nil && d.cfg.Clip != "" {
		d.Sound.PlayOneShot(d.cfg.Clip)
	}

	d.closeLeft = math.Max(0, d.cfg.CloseDelay)
	d.closing = true
}

func (d *RotatingDoor) Update(dt float64) {
	if d.closing {
		d.closeLeft -= dt
		if d.closeLeft <= 0 {
			d.closing = false
			d.startRotate(d.closedYaw)
			d.open = false
		}
	}

	if !d.rotating {
		return
	}
	if math.Abs(common.DeltaAngle(d.yaw, d.targetYaw)) <= angleSnap {
		d.yaw = d.targetYaw
		d.rotating = false
		return
	}
	d.yaw = common.MoveTowardsAngle(d.yaw, d.targetYaw, d.cfg.RotationSpeed*dt)
}

func (d *RotatingDoor) Yaw() float64 {
	return d.yaw
}

func (d *RotatingDoor) IsOpen() bool {
	return d.open
}

func (d *RotatingDoor) Rotating() bool {
	return d.rotating
}

// startRotate ignores open targets while the door is already open, so a
// second approach never flips the swing direction mid-way.
func (d *RotatingDoor) startRotate(target float64) {
	if d.open && math.Abs(common.DeltaAngle(target, d.closedYaw)) > angleSnap {
		return
	}
	d.targetYaw = target
	d.rotating = true
}

func (d *RotatingDoor) nextOpenYaw() float64 {
	if d.open {
		return d.closedYaw + d.cfg.OpenAngle
	}
	direction := 1.0
	if d.cfg.AlternateOpenDirection && !d.openPositive {
		direction = -1
	}
	d.openPositive = !d.openPositive
	return d.closedYaw + d.cfg.OpenAngle*direction
}

func (d *RotatingDoor) Config() RotatingConfig {
	return d.cfg
}
