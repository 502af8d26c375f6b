package cinematic

import "strings"

// ApplyShared overlays the room-wide action settings onto one action's own.
// Selection texts, colors, PlayOnce and the origin always stay local, along
// with the music, lighting and spawner bindings. A nil shared value only
// resets the typing delay.
func ApplyShared(local Settings, shared *Settings) Settings {
	out := local
	if shared == nil {
		out.Config.TypingPanelDelay = DefaultTypingPanelDelay
		return out
	}

	sc := shared.Config
	c := &out.Config
	c.CloneCount = sc.CloneCount
	c.UseSpawnPoints = sc.UseSpawnPoints
	c.DuplicateYaw = sc.DuplicateYaw
	c.DisableAmbient = sc.DisableAmbient
	c.AmbientOffColor = sc.AmbientOffColor
	c.AmbientOffIntensity = sc.AmbientOffIntensity
	c.CameraAttachDelay = sc.CameraAttachDelay
	c.CameraLocalPosition = sc.CameraLocalPosition
	c.CameraLocalEuler = sc.CameraLocalEuler
	c.SecondaryDelay = sc.SecondaryDelay
	c.DisablePrimaryWhenSecondary = sc.DisablePrimaryWhenSecondary
	c.PrimaryPriority = sc.PrimaryPriority
	c.SecondaryPriority = sc.SecondaryPriority
	c.PrimaryPriorityWhenSecondary = sc.PrimaryPriorityWhenSecondary
	c.TypingPanelDelay = sc.TypingPanelDelay

	if len(sc.SpawnPoints) > 0 {
		c.SpawnPoints = sc.SpawnPoints
	}
	if len(sc.WorldPositions) > 0 {
		c.WorldPositions = sc.WorldPositions
	}
	if strings.TrimSpace(sc.HeadTag) != "" {
		c.HeadTag = sc.HeadTag
	}
	if sc.AnimatorController != "" {
		c.AnimatorController = sc.AnimatorController
	}

	sb := shared.Bindings
	b := &out.Bindings
	if sb.Camera != nil {
		b.Camera = sb.Camera
	}
	if sb.Secondary != nil {
		b.Secondary = sb.Secondary
	}
	if sb.Panel != nil {
		b.Panel = sb.Panel
	}
	if sb.Mission != nil {
		b.Mission = sb.Mission
	}
	b.Lights = sb.Lights
	b.Deactivate = sb.Deactivate
	b.SelectableDeactivate = sb.SelectableDeactivate
	b.PrimaryActivate = sb.PrimaryActivate
	b.SecondaryActivate = sb.SecondaryActivate
	return out
}
