package system

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
)

// InputSystem samples the keyboard, mouse and first gamepad into every
// Input component.
type InputSystem struct {
	InteractKey ebiten.Key
	AdvanceKey  ebiten.Key
	// LookScale converts gamepad stick deflection into mouse-like deltas.
	LookScale float64

	lastX, lastY int
	hasCursor    bool
}

func NewInputSystem(interactKey, advanceKey string) *InputSystem {
	return &InputSystem{
		InteractKey: ParseKey(interactKey, ebiten.KeyE),
		AdvanceKey:  ParseKey(advanceKey, ebiten.KeySpace),
		LookScale:   4,
	}
}

// ParseKey resolves a key name such as "E" or "Space".
func ParseKey(name string, fallback ebiten.Key) ebiten.Key {
	if name == "" {
		return fallback
	}
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		log.Printf("input: unknown key %q, using %s", name, fallback)
		return fallback
	}
	return k
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.2

	moveX, moveZ := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		moveZ += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		moveZ -= 1
	}

	lookX, lookY := i.mouseDelta()

	interact := inpututil.IsKeyJustPressed(i.InteractKey)
	advance := inpututil.IsKeyJustPressed(i.AdvanceKey) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	prev := inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp)
	next := inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown)
	sel := inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	pause := inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			moveX, moveZ = lx, -ly
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			lookX, lookY = rx*i.LookScale, -ry*i.LookScale
		}

		interact = interact || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		advance = advance || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		prev = prev || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		next = next || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftRight)
		sel = sel || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		pause = pause || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.MoveZ = moveZ
		input.LookX = lookX
		input.LookY = lookY
		input.InteractPressed = interact
		input.AdvancePressed = advance
		input.PrevPressed = prev
		input.NextPressed = next
		input.SelectPressed = sel
		input.PausePressed = pause
	})
}

// mouseDelta is the cursor motion since the last tick, in pixels scaled
// down to look degrees.
func (i *InputSystem) mouseDelta() (float64, float64) {
	const pixelsPerDegree = 8.0
	x, y := ebiten.CursorPosition()
	if !i.hasCursor {
		i.lastX, i.lastY, i.hasCursor = x, y, true
		return 0, 0
	}
	dx, dy := x-i.lastX, y-i.lastY
	i.lastX, i.lastY = x, y
	return float64(dx) / pixelsPerDegree, float64(-dy) / pixelsPerDegree
}
