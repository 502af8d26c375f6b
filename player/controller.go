package player

import (
	"math/rand/v2"

	"github.com/milk9111/finalroom/common"
)

// Input is one tick of player intent. Move axes are in [-1, 1], look deltas
// are raw mouse motion.
type Input struct {
	MoveX float64
	MoveZ float64
	LookX float64
	LookY float64
}

// Mover applies a displacement with collision and reports whether the body
// ended on the ground.
type Mover interface {
	Move(delta common.Vec3) (grounded bool)
	Position() common.Vec3
	SetPosition(p common.Vec3)
}

type Animator interface {
	HasParameter(name string) bool
	SetFloat(name string, value, damp, dt float64)
	SetBool(name string, value bool)
}

type Audio interface {
	PlayOneShot(clip string)
	PlayLoop(clip string, volume float64)
	StopLoop()
	LoopPlaying() bool
}

type Config struct {
	MoveSpeed float64
	Gravity   float64
	EyeHeight float64

	MouseSensitivity float64
	PitchClamp       float64
	InvertY          bool

	SpeedParam     string
	IsMovingParam  string
	IsSittingParam string
	SpeedDampTime  float64

	FootstepClips      []string
	StepInterval       float64
	StepSpeedThreshold float64
	BreathingClip      string
	BreatheWhileMoving bool
	BreatheWhileIdle   bool
	BreathingVolume    float64
}

func DefaultConfig() Config {
	return Config{
		MoveSpeed:          4,
		Gravity:            -9.81,
		EyeHeight:          1.6,
		MouseSensitivity:   2,
		PitchClamp:         80,
		SpeedParam:         "Speed",
		IsMovingParam:      "IsMoving",
		IsSittingParam:     "IsSitting",
		SpeedDampTime:      0.1,
		StepInterval:       0.5,
		StepSpeedThreshold: 0.1,
		BreatheWhileIdle:   true,
		BreathingVolume:    0.6,
	}
}

// Pose is a seat location and facing.
type Pose struct {
	Position common.Vec3
	Yaw      float64
}

// Controller is the first person walker: mouse look, planar movement with
// gravity, footsteps, breathing and the seated state.
type Controller struct {
	cfg      Config
	Mover    Mover
	Animator Animator
	Audio    Audio
	Rand     *rand.Rand

	yaw       float64
	pitch     float64
	velocityY float64
	grounded  bool
	moving    bool
	stepTimer float64

	disabled bool
	sitting  bool
	seat     Pose
}

func NewController(cfg Config, mover Mover) *Controller {
	return &Controller{cfg: cfg, Mover: mover}
}

func (c *Controller) Config() Config {
	return c.cfg
}

// SetLook replaces the look settings, for the options menu.
func (c *Controller) SetLook(sensitivity float64, invertY bool) {
	if sensitivity > 0 {
		c.cfg.MouseSensitivity = sensitivity
	}
	c.cfg.InvertY = invertY
}

func (c *Controller) Yaw() float64 {
	return c.yaw
}

func (c *Controller) SetYaw(yaw float64) {
	c.yaw = yaw
}

func (c *Controller) Pitch() float64 {
	return c.pitch
}

func (c *Controller) Grounded() bool {
	return c.grounded
}

func (c *Controller) Moving() bool {
	return c.moving
}

func (c *Controller) Enabled() bool {
	return !c.disabled
}

// SetEnabled freezes or releases all player input.
func (c *Controller) SetEnabled(enabled bool) {
	c.disabled = !enabled
	if !enabled {
		c.moving = false
		c.stepTimer = 0
	}
}

func (c *Controller) Position() common.Vec3 {
	if c.Mover == nil {
		return common.Vec3{}
	}
	return c.Mover.Position()
}

// Eye is the camera position.
func (c *Controller) Eye() common.Vec3 {
	return c.Position().Add(common.Vec3{Y: c.cfg.EyeHeight})
}

func (c *Controller) Forward() common.Vec3 {
	return common.Forward(c.yaw, c.pitch)
}

func (c *Controller) IsSitting() bool {
	return c.sitting
}

func (c *Controller) Seat() Pose {
	return c.seat
}

func (c *Controller) SitDown(p Pose) {
	c.sitting = true
	c.seat = p
	c.yaw = p.Yaw
	c.velocityY = 0
	c.moving = false
	c.stepTimer = 0
	if c.Mover != nil {
		c.Mover.SetPosition(p.Position)
	}
	c.setBool(c.cfg.IsSittingParam, true)
	c.setBool(c.cfg.IsMovingParam, false)
}

func (c *Controller) StandUp() {
	if !c.sitting {
		return
	}
	c.sitting = false
	c.setBool(c.cfg.IsSittingParam, false)
}

func (c *Controller) Update(dt float64, in Input) {
	if c.disabled {
		return
	}
	c.look(in)

	if c.sitting {
		if c.Mover != nil {
			c.Mover.SetPosition(c.seat.Position)
		}
		c.animate(false, 0, dt)
		c.audio(false, dt)
		return
	}

	dir := common.Vec3{X: in.MoveX, Z: in.MoveZ}
	hasInput := dir.LenSq() > 0.001
	var planar common.Vec3
	if hasInput {
		right := common.Right(c.yaw)
		fwd := common.Forward(c.yaw, 0)
		planar = right.Scale(dir.X).Add(fwd.Scale(dir.Z)).Normalize().Scale(c.cfg.MoveSpeed)
	}

	if c.grounded && c.velocityY < 0 {
		c.velocityY = -2
	}
	c.velocityY += c.cfg.Gravity * dt

	motion := common.Vec3{X: planar.X, Y: c.velocityY, Z: planar.Z}.Scale(dt)
	if c.Mover != nil {
		c.grounded = c.Mover.Move(motion)
	}

	speed := planar.Len()
	normalized := speed / max(0.001, c.cfg.MoveSpeed)
	c.animate(hasInput, normalized, dt)

	c.moving = hasInput && speed > c.cfg.StepSpeedThreshold && c.grounded
	c.audio(c.moving, dt)
}

func (c *Controller) look(in Input) {
	sign := -1.0
	if c.cfg.InvertY {
		sign = 1
	}
	c.yaw += in.LookX * c.cfg.MouseSensitivity
	c.pitch = common.Clamp(c.pitch+in.LookY*c.cfg.MouseSensitivity*sign, -c.cfg.PitchClamp, c.cfg.PitchClamp)
}

func (c *Controller) animate(hasInput bool, normalized, dt float64) {
	if c.Animator == nil {
		return
	}
	if c.cfg.SpeedParam != "" && c.Animator.HasParameter(c.cfg.SpeedParam) {
		c.Animator.SetFloat(c.cfg.SpeedParam, normalized, c.cfg.SpeedDampTime, dt)
	}
	c.setBool(c.cfg.IsMovingParam, hasInput)
}

func (c *Controller) setBool(name string, v bool) {
	if c.Animator == nil || name == "" || !c.Animator.HasParameter(name) {
		return
	}
	c.Animator.SetBool(name, v)
}

func (c *Controller) audio(moving bool, dt float64) {
	if c.Audio == nil {
		return
	}

	if len(c.cfg.FootstepClips) > 0 {
		if moving {
			c.stepTimer += dt
			if c.stepTimer >= c.cfg.StepInterval {
				c.stepTimer = 0
				c.Audio.PlayOneShot(c.cfg.FootstepClips[c.intN(len(c.cfg.FootstepClips))])
			}
		} else {
			c.stepTimer = 0
		}
	}

	if c.cfg.BreathingClip == "" {
		return
	}
	breathe := (c.cfg.BreatheWhileIdle && !moving) || (c.cfg.BreatheWhileMoving && moving)
	switch {
	case breathe && !c.Audio.LoopPlaying():
		c.Audio.PlayLoop(c.cfg.BreathingClip, c.cfg.BreathingVolume)
	case !breathe && c.Audio.LoopPlaying():
		c.Audio.StopLoop()
	}
}

func (c *Controller) intN(n int) int {
	if c.Rand != nil {
		return c.Rand.IntN(n)
	}
	return rand.IntN(n)
}
