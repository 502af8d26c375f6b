package system

import (
	"image/color"
	"math"

	"github.com/milk9111/finalroom/cinematic"
	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
)

// textNode binds a Text entity to every label-like interface the domain
// packages declare: typewriter surfaces, dialogue labels and icons, gate
// labels and the mission instruction.
type textNode struct {
	w *ecs.World
	e ecs.Entity
}

func (n textNode) SetText(text string) {
	if t, ok := ecs.Get(n.w, n.e, component.TextComponent.Kind()); ok {
		t.Value = text
		t.MaxVisible = -1
	}
}

func (n textNode) SetMaxVisible(v int) {
	if t, ok := ecs.Get(n.w, n.e, component.TextComponent.Kind()); ok {
		t.MaxVisible = v
	}
}

func (n textNode) SetActive(active bool) {
	SetActive(n.w, n.e, active)
}

func (n textNode) SetIcon(name string) {
	if ic, ok := ecs.Get(n.w, n.e, component.IconComponent.Kind()); ok {
		ic.Name = name
		return
	}
	_ = ecs.Add(n.w, n.e, component.IconComponent.Kind(), &component.Icon{Name: name})
}

func textByName(w *ecs.World, name string) (textNode, bool) {
	e, ok := FindByName(w, name)
	if !ok {
		return textNode{}, false
	}
	return textNode{w: w, e: e}, true
}

// objectNode toggles an entity hierarchy on and off.
type objectNode struct {
	w *ecs.World
	e ecs.Entity
}

func (n objectNode) SetActive(active bool) {
	SetActive(n.w, n.e, active)
}

// audioNode queues playback on an AudioSource. It serves the dialogue voice,
// door sounds and the player's footsteps and breathing.
type audioNode struct {
	w *ecs.World
	e ecs.Entity
}

func (n audioNode) source() *component.AudioSource {
	src, ok := ecs.Get(n.w, n.e, component.AudioSourceComponent.Kind())
	if !ok {
		return nil
	}
	return src
}

func (n audioNode) PlayOneShot(clip string) {
	if src := n.source(); src != nil && clip != "" {
		src.OneShots = append(src.OneShots, clip)
	}
}

func (n audioNode) PlayLooping(clip string) {
	n.PlayLoop(clip, 1)
}

func (n audioNode) PlayLoop(clip string, volume float64) {
	if src := n.source(); src != nil {
		src.Loop = clip
		src.LoopVolume = volume
		src.LoopPlaying = clip != ""
	}
}

func (n audioNode) Stop() {
	n.StopLoop()
}

func (n audioNode) StopLoop() {
	if src := n.source(); src != nil {
		src.Loop = ""
		src.LoopPlaying = false
	}
}

func (n audioNode) IsPlaying() bool {
	return n.LoopPlaying()
}

func (n audioNode) LoopPlaying() bool {
	src := n.source()
	return src != nil && src.LoopPlaying
}

func audioFor(w *ecs.World, e ecs.Entity) (audioNode, bool) {
	if !ecs.Has(w, e, component.AudioSourceComponent.Kind()) {
		return audioNode{}, false
	}
	return audioNode{w: w, e: e}, true
}

// animatorNode drives an Animator component for the player controller and
// the NPC animation driver.
type animatorNode struct {
	w *ecs.World
	e ecs.Entity
}

func (n animatorNode) anim() *component.Animator {
	a, ok := ecs.Get(n.w, n.e, component.AnimatorComponent.Kind())
	if !ok {
		return nil
	}
	return a
}

func (n animatorNode) HasParameter(name string) bool {
	a := n.anim()
	if a == nil {
		return false
	}
	for _, p := range a.Parameters {
		if p == name {
			return true
		}
	}
	return false
}

// SetFloat moves the parameter toward value with a first order lag of damp
// seconds.
func (n animatorNode) SetFloat(name string, value, damp, dt float64) {
	a := n.anim()
	if a == nil {
		return
	}
	if a.Floats == nil {
		a.Floats = map[string]float64{}
	}
	if damp <= 0 || dt <= 0 {
		a.Floats[name] = value
		return
	}
	cur := a.Floats[name]
	a.Floats[name] = cur + (value-cur)*math.Min(1, dt/damp)
}

func (n animatorNode) SetBool(name string, value bool) {
	a := n.anim()
	if a == nil {
		return
	}
	if a.Bools == nil {
		a.Bools = map[string]bool{}
	}
	a.Bools[name] = value
}

func (n animatorNode) Play(state string, crossFade float64, _ int) {
	a := n.anim()
	if a == nil {
		return
	}
	a.State = state
	a.CrossFade = crossFade
	a.StateTime = 0
}

func (n animatorNode) SetTrigger(name string) {
	a := n.anim()
	if a == nil {
		return
	}
	if a.Triggers == nil {
		a.Triggers = map[string]bool{}
	}
	a.Triggers[name] = true
}

func (n animatorNode) ResetTrigger(name string) {
	if a := n.anim(); a != nil {
		delete(a.Triggers, name)
	}
}

func animatorFor(w *ecs.World, e ecs.Entity) (animatorNode, bool) {
	if !ecs.Has(w, e, component.AnimatorComponent.Kind()) {
		return animatorNode{}, false
	}
	return animatorNode{w: w, e: e}, true
}

// highlightNode outlines an entity hierarchy.
type highlightNode struct {
	w *ecs.World
	e ecs.Entity
}

func (n highlightNode) SetHighlighted(on bool) {
	SetHighlighted(n.w, n.e, on)
}

// cameraNode is a virtual camera entity.
type cameraNode struct {
	w *ecs.World
	e ecs.Entity
}

func (n cameraNode) Alive() bool {
	return ecs.IsAlive(n.w, n.e)
}

func (n cameraNode) AttachTo(m cinematic.Mount, localPosition, localEuler common.Vec3) {
	mount, ok := m.(ecs.Entity)
	if !ok || !ecs.IsAlive(n.w, mount) {
		return
	}
	_ = ecs.Add(n.w, n.e, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(mount)})
	t, ok := ecs.Get(n.w, n.e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{}
		_ = ecs.Add(n.w, n.e, component.TransformComponent.Kind(), t)
	}
	t.Position = localPosition
	t.Pitch = localEuler.X
	t.Yaw = localEuler.Y
}

func (n cameraNode) SetActive(active bool) {
	SetActive(n.w, n.e, active)
}

func (n cameraNode) SetPriority(priority int) {
	if vc, ok := ecs.Get(n.w, n.e, component.VirtualCameraComponent.Kind()); ok {
		vc.Priority = priority
	}
}

func (n cameraNode) Priority() int {
	if vc, ok := ecs.Get(n.w, n.e, component.VirtualCameraComponent.Kind()); ok {
		return vc.Priority
	}
	return 0
}

func cameraByName(w *ecs.World, name string) (cameraNode, bool) {
	e, ok := FindByName(w, name)
	if !ok || !ecs.Has(w, e, component.VirtualCameraComponent.Kind()) {
		return cameraNode{}, false
	}
	return cameraNode{w: w, e: e}, true
}

// lightNode switches one Light.
type lightNode struct {
	w *ecs.World
	e ecs.Entity
}

func (n lightNode) SetEnabled(enabled bool) {
	if l, ok := ecs.Get(n.w, n.e, component.LightComponent.Kind()); ok {
		l.Enabled = enabled
	}
}

// environmentNode is the scene's ambient lighting.
type environmentNode struct {
	w *ecs.World
	e ecs.Entity
}

func (n environmentNode) env() *component.Environment {
	env, ok := ecs.Get(n.w, n.e, component.EnvironmentComponent.Kind())
	if !ok {
		return nil
	}
	return env
}

func (n environmentNode) SetAmbient(c color.Color, intensity float64) {
	if env := n.env(); env != nil {
		env.AmbientColor = c
		env.AmbientIntensity = intensity
	}
}

func (n environmentNode) AmbientIntensity() float64 {
	if env := n.env(); env != nil {
		return env.AmbientIntensity
	}
	return 0
}

func (n environmentNode) SetAmbientIntensity(v float64) {
	if env := n.env(); env != nil {
		env.AmbientIntensity = v
	}
}

// controlsNode enables and disables the player controller.
type controlsNode struct {
	w *ecs.World
	e ecs.Entity
}

func (n controlsNode) SetEnabled(enabled bool) {
	if pc, ok := ecs.Get(n.w, n.e, component.PlayerControllerComponent.Kind()); ok && pc.Controller != nil {
		pc.Controller.SetEnabled(enabled)
	}
}
