package cinematic

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/typewriter"
)

type Music interface {
	SetAfterSelect()
}

type Lighting interface {
	SetAmbient(c color.Color, intensity float64)
	AmbientIntensity() float64
	SetAmbientIntensity(v float64)
}

type Light interface {
	SetEnabled(enabled bool)
}

type Object interface {
	SetActive(active bool)
}

// Mount is an attachment point returned by Actor.FindTagged. Cameras know
// how to resolve it.
type Mount any

// Actor is a spawned clone of the source character.
type Actor interface {
	Alive() bool
	ClearHighlight()
	StripOutline()
	RebindAnimator()
	SetAnimatorController(name string)
	FindTagged(tag string) (Mount, bool)
}

type Pose struct {
	Position common.Vec3
	Yaw      float64
	Mirrored bool
}

// Spawner duplicates the source character.
type Spawner interface {
	SourceYaw() float64
	Spawn(pose Pose) (Actor, error)
}

type VirtualCamera interface {
	Alive() bool
	AttachTo(m Mount, localPosition, localEuler common.Vec3)
	SetActive(active bool)
	SetPriority(priority int)
}

type TextPanel interface {
	Show(message string)
}

type SelectableDisabler interface {
	DisableSelectableTargets()
}

const DefaultTypingPanelDelay = 0.5

type Config struct {
	Origin common.Vec3

	CloneCount     int
	UseSpawnPoints bool
	SpawnPoints    []common.Vec3
	WorldPositions []common.Vec3
	DuplicateYaw   float64

	DisableAmbient      bool
	AmbientOffColor     color.Color
	AmbientOffIntensity float64

	CameraAttachDelay   float64
	HeadTag             string
	CameraLocalPosition common.Vec3
	CameraLocalEuler    common.Vec3

	SecondaryDelay               float64
	DisablePrimaryWhenSecondary  bool
	PrimaryPriority              int
	SecondaryPriority            int
	PrimaryPriorityWhenSecondary int
	TypingPanelDelay             float64

	AnimatorController string

	TextPrimary    string
	TextSecondary  string
	TextSeparator  string
	PrimaryColor   color.Color
	SecondaryColor color.Color

	PlayOnce bool
}

func DefaultConfig() Config {
	return Config{
		CloneCount:          1,
		DuplicateYaw:        180,
		AmbientOffColor:     color.Black,
		CameraAttachDelay:   2,
		HeadTag:             "Head",
		CameraLocalPosition: common.Vec3{Y: 0.1, Z: 0.1},
		SecondaryDelay:      2,
		PrimaryPriority:     20,
		SecondaryPriority:   30,
		TypingPanelDelay:    DefaultTypingPanelDelay,
		TextSeparator:       "\n\n",
		PrimaryColor:        color.RGBA{R: 255, G: 153, B: 153, A: 255},
		SecondaryColor:      color.White,
		PlayOnce:            true,
	}
}

// Bindings are the scene objects an action drives.
type Bindings struct {
	Music     Music
	Lighting  Lighting
	Spawner   Spawner
	Camera    VirtualCamera
	Secondary VirtualCamera
	Panel     TextPanel
	Mission   SelectableDisabler

	Lights               []Light
	Deactivate           []Object
	SelectableDeactivate []Object
	PrimaryActivate      []Object
	SecondaryActivate    []Object
}

type Settings struct {
	Config   Config
	Bindings Bindings
}

// SelectableAction is the cinematic that plays after a mission target is
// chosen: clones, lighting, then a timed camera handoff ending in the
// selection text.
type SelectableAction struct {
	Name string

	cfg      Config
	b        Bindings
	played   bool
	clones   []Actor
	timeline Timeline
	ambient  float64
}

func NewSelectableAction(name string, s Settings) *SelectableAction {
	return &SelectableAction{Name: name, cfg: s.Config, b: s.Bindings}
}

func (a *SelectableAction) Config() Config {
	return a.cfg
}

func (a *SelectableAction) Played() bool {
	return a.played
}

func (a *SelectableAction) Clones() []Actor {
	return a.clones
}

func (a *SelectableAction) Running() bool {
	return a.timeline.Running()
}

func (a *SelectableAction) Update(dt float64) {
	a.timeline.Update(dt)
}

// Activate plays the action. It reports false when PlayOnce already
// consumed it.
func (a *SelectableAction) Activate() bool {
	if a.cfg.PlayOnce && a.played {
		return false
	}
	a.played = true

	if a.b.Music != nil {
		a.b.Music.SetAfterSelect()
	}

	if a.cfg.DisableAmbient && a.b.Lighting != nil {
		a.b.Lighting.SetAmbient(a.cfg.AmbientOffColor, a.cfg.AmbientOffIntensity)
	}
	for _, l := range a.b.Lights {
		if l != nil {
			l.SetEnabled(false)
		}
	}

	a.duplicate()

	setActive(a.b.Deactivate, false)
	if a.b.Mission != nil {
		a.b.Mission.DisableSelectableTargets()
	} else {
		setActive(a.b.SelectableDeactivate, false)
	}

	var target Actor
	switch {
	case len(a.clones) > 1:
		target = a.clones[1]
	case len(a.clones) == 1:
		target = a.clones[0]
	}
	if a.b.Camera != nil && target != nil {
		a.attach(target)
	}
	return true
}

func (a *SelectableAction) duplicate() {
	a.clones = a.clones[:0]
	if a.b.Spawner == nil {
		log.Printf("action: %s: source character not assigned", a.Name)
		return
	}

	yaw := a.b.Spawner.SourceYaw()
	for i := 0; i < a.cfg.CloneCount; i++ {
		pose := Pose{Position: a.clonePosition(i), Yaw: yaw}
		if i == 0 {
			pose.Yaw = yaw + a.cfg.DuplicateYaw
		} else {
			pose.Mirrored = true
		}

		clone, err := a.b.Spawner.Spawn(pose)
		if err != nil {
			log.Printf("action: %s: spawn clone %d: %v", a.Name, i, err)
			continue
		}
		clone.ClearHighlight()
		clone.StripOutline()
		clone.RebindAnimator()
		a.clones = append(a.clones, clone)
	}
}

func (a *SelectableAction) clonePosition(i int) common.Vec3 {
	if a.cfg.UseSpawnPoints && len(a.cfg.SpawnPoints) > 0 {
		return a.cfg.SpawnPoints[common.ClampInt(i, 0, len(a.cfg.SpawnPoints)-1)]
	}
	if len(a.cfg.WorldPositions) > 0 {
		return a.cfg.WorldPositions[common.ClampInt(i, 0, len(a.cfg.WorldPositions)-1)]
	}
	return a.cfg.Origin
}

func (a *SelectableAction) attach(target Actor) {
	cam := a.b.Camera
	secondary := a.b.Secondary

	steps := []Step{{
		Name: "attach",
		Wait: a.cfg.CameraAttachDelay,
		Run: func() bool {
			if !target.Alive() || !cam.Alive() {
				return false
			}
			head, ok := target.FindTagged(a.cfg.HeadTag)
			if !ok {
				log.Printf("action: %s: no child tagged %q on clone", a.Name, a.cfg.HeadTag)
				return false
			}
			cam.AttachTo(head, a.cfg.CameraLocalPosition, a.cfg.CameraLocalEuler)
			cam.SetActive(true)
			cam.SetPriority(a.cfg.PrimaryPriority)

			if a.cfg.AnimatorController != "" {
				for _, c := range a.clones {
					if c.Alive() {
						c.SetAnimatorController(a.cfg.AnimatorController)
					}
				}
			}
			setActive(a.b.PrimaryActivate, true)
			return secondary != nil
		},
	}}

	if secondary != nil {
		steps = append(steps,
			Step{
				Name: "secondary",
				Wait: a.cfg.SecondaryDelay,
				Run: func() bool {
					if !secondary.Alive() {
						return false
					}
					if a.b.Lighting != nil {
						a.ambient = a.b.Lighting.AmbientIntensity()
						a.b.Lighting.SetAmbientIntensity(0)
					}
					secondary.SetActive(true)
					secondary.SetPriority(a.cfg.SecondaryPriority)
					if a.cfg.DisablePrimaryWhenSecondary && cam.Alive() {
						cam.SetPriority(a.cfg.PrimaryPriorityWhenSecondary)
					}
					setActive(a.b.SecondaryActivate, true)
					if a.b.Lighting != nil {
						a.b.Lighting.SetAmbientIntensity(a.ambient)
					}
					return a.b.Panel != nil
				},
			},
			Step{
				Name: "panel",
				Wait: a.cfg.TypingPanelDelay,
				Run: func() bool {
					a.b.Panel.Show(a.BuildSelectionText())
					return true
				},
			},
		)
	}

	a.timeline.Start(steps...)
}

// BuildSelectionText joins the two selection texts as colored rich text.
// A blank secondary yields the primary unchanged.
func (a *SelectableAction) BuildSelectionText() string {
	if strings.TrimSpace(a.cfg.TextSecondary) == "" {
		return a.cfg.TextPrimary
	}
	return fmt.Sprintf("<color=%s>%s</color>%s<color=%s>%s</color>",
		typewriter.ColorTag(a.cfg.PrimaryColor), a.cfg.TextPrimary,
		a.cfg.TextSeparator,
		typewriter.ColorTag(a.cfg.SecondaryColor), a.cfg.TextSecondary)
}

func setActive(objects []Object, active bool) {
	for _, o := range objects {
		if o != nil {
			o.SetActive(active)
		}
	}
}
