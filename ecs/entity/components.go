package entity

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/milk9111/finalroom/cinematic"
	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/dialogue"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
	"github.com/milk9111/finalroom/gate"
	"github.com/milk9111/finalroom/interaction"
	"github.com/milk9111/finalroom/music"
	"github.com/milk9111/finalroom/npc"
	"github.com/milk9111/finalroom/player"
	"github.com/milk9111/finalroom/prefabs"
	"github.com/milk9111/finalroom/typewriter"
)

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	pos := common.Vec3{X: spec.X, Y: spec.Y, Z: spec.Z}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: pos,
		Yaw:      spec.Yaw,
		Pitch:    spec.Pitch,
		Mirrored: spec.Mirrored,
		World:    pos,
		WorldYaw: spec.Yaw,
	})
}

func addInactive(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	if on, ok := raw.(bool); ok && !on {
		return nil
	}
	return ecs.Add(w, e, component.InactiveComponent.Kind(), &component.Inactive{})
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addTag(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	var value string
	if s, ok := raw.(string); ok {
		value = s
	} else {
		spec, err := prefabs.DecodeComponentSpec[prefabs.TagComponentSpec](raw)
		if err != nil {
			return fmt.Errorf("decode tag spec: %w", err)
		}
		value = spec.Value
	}
	return ecs.Add(w, e, component.TagComponent.Kind(), &component.Tag{Value: strings.TrimSpace(value)})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addShape(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec := prefabs.ShapeComponentSpec{Kind: component.ColliderBox, Width: 1, Depth: 1}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode shape spec: %w", err)
	}
	return ecs.Add(w, e, component.ShapeComponent.Kind(), &component.Shape{
		Kind:   spec.Kind,
		Width:  spec.Width,
		Depth:  spec.Depth,
		Radius: spec.Radius,
		Color:  spec.Color.Or(color.Gray{Y: 160}),
		Label:  spec.Label,
	})
}

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec := prefabs.ColliderComponentSpec{Shape: component.ColliderBox}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	switch spec.Shape {
	case component.ColliderBox:
		if spec.Width <= 0 || spec.Depth <= 0 {
			return fmt.Errorf("box collider needs width and depth")
		}
	case component.ColliderCircle:
		if spec.Radius <= 0 {
			return fmt.Errorf("circle collider needs a radius")
		}
	default:
		return fmt.Errorf("unknown collider shape %q", spec.Shape)
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Shape:    spec.Shape,
		Width:    spec.Width,
		Depth:    spec.Depth,
		Radius:   spec.Radius,
		Offset:   spec.Offset.Vec3(),
		Blocking: spec.Blocking,
	})
}

var layerNames = map[string]uint32{
	"world":        component.LayerWorld,
	"player":       component.LayerPlayer,
	"interactable": component.LayerInteractable,
	"trigger":      component.LayerTrigger,
}

func parseLayers(names []string) (uint32, error) {
	var out uint32
	for _, name := range names {
		bit, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("unknown layer %q", name)
		}
		out |= bit
	}
	return out, nil
}

func addCollisionLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CollisionLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision_layer spec: %w", err)
	}
	category, err := parseLayers(spec.Category)
	if err != nil {
		return err
	}
	mask, err := parseLayers(spec.Mask)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: category, Mask: mask})
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func addRenderer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RendererComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode renderer spec: %w", err)
	}
	return ecs.Add(w, e, component.RendererComponent.Kind(), &component.Renderer{Materials: append([]string(nil), spec.Materials...)})
}

func addOutline(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec := prefabs.OutlineComponentSpec{Thickness: 2}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode outline spec: %w", err)
	}
	return ecs.Add(w, e, component.OutlineComponent.Kind(), &component.Outline{
		Color:     spec.Color.Or(color.RGBA{R: 255, G: 215, A: 255}),
		Thickness: spec.Thickness,
		Exclude:   spec.Exclude,
	})
}

func addAnimator(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec := prefabs.AnimatorComponentSpec{Default: "Idle", CrossFade: 0.1}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode animator spec: %w", err)
	}
	return ecs.Add(w, e, component.AnimatorComponent.Kind(), &component.Animator{
		Controller: spec.Controller,
		Parameters: spec.Parameters,
		Floats:     map[string]float64{},
		Bools:      map[string]bool{},
		Triggers:   map[string]bool{},
		Default:    spec.Default,
		State:      spec.Default,
		CrossFade:  spec.CrossFade,
		Hold:       spec.Hold,
	})
}

func addAudio(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec := prefabs.AudioComponentSpec{Volume: 1, LoopVolume: 1}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	return ecs.Add(w, e, component.AudioSourceComponent.Kind(), &component.AudioSource{
		Volume:     spec.Volume,
		Loop:       spec.Loop,
		LoopVolume: spec.LoopVolume,
	})
}

func playerSpecDefaults() prefabs.PlayerComponentSpec {
	cfg := player.DefaultConfig()
	return prefabs.PlayerComponentSpec{
		MoveSpeed:          cfg.MoveSpeed,
		Gravity:            cfg.Gravity,
		EyeHeight:          cfg.EyeHeight,
		Radius:             0.3,
		MouseSensitivity:   cfg.MouseSensitivity,
		PitchClamp:         cfg.PitchClamp,
		InvertY:            cfg.InvertY,
		SpeedParam:         cfg.SpeedParam,
		IsMovingParam:      cfg.IsMovingParam,
		IsSittingParam:     cfg.IsSittingParam,
		SpeedDampTime:      cfg.SpeedDampTime,
		StepInterval:       cfg.StepInterval,
		StepSpeedThreshold: cfg.StepSpeedThreshold,
		BreatheWhileMoving: cfg.BreatheWhileMoving,
		BreatheWhileIdle:   cfg.BreatheWhileIdle,
		BreathingVolume:    cfg.BreathingVolume,
	}
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec := playerSpecDefaults()
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	cfg := player.Config{
		MoveSpeed:          spec.MoveSpeed,
		Gravity:            spec.Gravity,
		EyeHeight:          spec.EyeHeight,
		MouseSensitivity:   spec.MouseSensitivity,
		PitchClamp:         spec.PitchClamp,
		InvertY:            spec.InvertY,
		SpeedParam:         spec.SpeedParam,
		IsMovingParam:      spec.IsMovingParam,
		IsSittingParam:     spec.IsSittingParam,
		SpeedDampTime:      spec.SpeedDampTime,
		FootstepClips:      spec.FootstepClips,
		StepInterval:       spec.StepInterval,
		StepSpeedThreshold: spec.StepSpeedThreshold,
		BreathingClip:      spec.BreathingClip,
		BreatheWhileMoving: spec.BreatheWhileMoving,
		BreatheWhileIdle:   spec.BreatheWhileIdle,
		BreathingVolume:    spec.BreathingVolume,
	}
	return ecs.Add(w, e, component.PlayerControllerComponent.Kind(), &component.PlayerController{
		Controller: player.NewController(cfg, nil),
		Radius:     spec.Radius,
	})
}

func addSelector(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	cfg := interaction.DefaultConfig()
	spec := prefabs.SelectorComponentSpec{
		Mode:                "best_candidate",
		InteractKey:         cfg.InteractKey,
		MaxDistance:         cfg.MaxDistance,
		MaxViewportDistance: cfg.MaxViewportDistance,
		MaxAngle:            cfg.MaxAngle,
		StandKey:            "E",
		StandPrompt:         "Press {key} to stand up",
	}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode selector spec: %w", err)
	}

	mode, ok := interaction.ParseMode(spec.Mode)
	if !ok {
		return fmt.Errorf("unknown selector mode %q", spec.Mode)
	}
	cfg.Mode = mode
	cfg.InteractKey = spec.InteractKey
	cfg.MaxDistance = spec.MaxDistance
	cfg.MaxViewportDistance = spec.MaxViewportDistance
	cfg.MaxAngle = spec.MaxAngle
	if len(spec.Mask) > 0 {
		mask, err := parseLayers(spec.Mask)
		if err != nil {
			return err
		}
		cfg.Mask = uint(mask)
	}

	return ecs.Add(w, e, component.SelectorComponent.Kind(), &component.Selector{
		Selector:    interaction.NewSelector(cfg, nil, nil),
		PromptLabel: spec.PromptLabel,
		StandKey:    spec.StandKey,
		StandPrompt: spec.StandPrompt,
	})
}

func addInteractable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.InteractableComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode interactable spec: %w", err)
	}
	return ecs.Add(w, e, component.InteractableComponent.Kind(), &component.Interactable{Prompt: spec.Prompt})
}

func talkSpecDefaults() prefabs.TalkComponentSpec {
	anim := npc.DefaultAnimationConfig()
	return prefabs.TalkComponentSpec{
		Animation: prefabs.NPCAnimationSpec{
			CrossFade:          anim.CrossFade,
			ResetTriggers:      anim.ResetTriggers,
			AvoidRepeatingLast: anim.AvoidRepeatingLast,
		},
	}
}

func addTalk(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec := talkSpecDefaults()
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode talk spec: %w", err)
	}
	id := strings.TrimSpace(spec.ID)
	if id == "" {
		id = ctx.Name
	}

	talk := &component.Talk{
		ID:         id,
		Paragraph:  spec.Paragraph,
		Counts:     spec.Counts,
		ScriptPath: spec.Script,
		Driver:     npc.NewAnimationDriver(id, npcAnimationConfig(spec.Animation), nil),
	}
	if spec.Script != "" {
		script, err := npc.LoadScript(id, spec.Script)
		if err != nil {
			return fmt.Errorf("talk script: %w", err)
		}
		talk.Script = script
	}
	return ecs.Add(w, e, component.TalkComponent.Kind(), talk)
}

func npcAnimationConfig(spec prefabs.NPCAnimationSpec) npc.AnimationConfig {
	return npc.AnimationConfig{
		Triggers:           spec.Triggers,
		UseStates:          spec.UseStates,
		States:             spec.States,
		CrossFade:          spec.CrossFade,
		Layer:              spec.Layer,
		ResetTriggers:      spec.ResetTriggers,
		AvoidRepeatingLast: spec.AvoidRepeatingLast,
	}
}

func addSeat(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SeatComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode seat spec: %w", err)
	}
	return ecs.Add(w, e, component.SeatComponent.Kind(), &component.Seat{Offset: spec.Offset.Vec3(), Yaw: spec.Yaw})
}

func dialogueSpecDefaults() prefabs.DialogueUIComponentSpec {
	cfg := dialogue.DefaultConfig()
	return prefabs.DialogueUIComponentSpec{
		CharacterDelay:    cfg.CharacterDelay,
		HidePanelOnFinish: cfg.HidePanelOnFinish,
		NextKey:           cfg.NextKey,
		NextInstruction:   cfg.NextInstruction,
	}
}

func addDialogueUI(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec := dialogueSpecDefaults()
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode dialogue_ui spec: %w", err)
	}
	cfg, err := dialogueConfig(spec)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.DialogueUIComponent.Kind(), &component.DialogueUI{
		Session:     dialogue.NewSession(ctx.Name, cfg),
		NPC:         slotNames(spec.NPC),
		Player:      slotNames(spec.Player),
		Legacy:      slotNames(spec.Legacy),
		Next:        spec.Next,
		Instruction: spec.Instruction,
	})
}

func slotNames(s prefabs.DialogueSlotSpec) component.DialogueSlotNames {
	return component.DialogueSlotNames{Panel: s.Panel, Text: s.Text, Icon: s.Icon}
}

func speaker(name string) (dialogue.Speaker, error) {
	s := dialogue.ParseSpeakerName(name)
	if s == dialogue.SpeakerUnknown {
		return s, fmt.Errorf("unknown speaker %q", name)
	}
	return s, nil
}

func dialogueConfig(spec prefabs.DialogueUIComponentSpec) (dialogue.Config, error) {
	cfg := dialogue.DefaultConfig()
	cfg.CharacterDelay = spec.CharacterDelay
	cfg.HidePanelOnFinish = spec.HidePanelOnFinish
	cfg.NextKey = spec.NextKey
	cfg.NextInstruction = spec.NextInstruction

	if len(spec.Prefixes) > 0 {
		prefixes := make([]dialogue.Prefix, 0, len(spec.Prefixes))
		for _, p := range spec.Prefixes {
			s, err := speaker(p.Speaker)
			if err != nil {
				return cfg, fmt.Errorf("prefix %q: %w", p.Text, err)
			}
			prefixes = append(prefixes, dialogue.Prefix{Text: p.Text, Speaker: s})
		}
		cfg.Parser.Prefixes = prefixes
	}

	if len(spec.Icons) > 0 {
		cfg.Icons = make(map[dialogue.Speaker][]string, len(spec.Icons))
		for name, icons := range spec.Icons {
			s, err := speaker(name)
			if err != nil {
				return cfg, fmt.Errorf("icons: %w", err)
			}
			cfg.Icons[s] = icons
		}
	}
	if len(spec.DefaultIcons) > 0 {
		cfg.DefaultIcons = make(map[dialogue.Speaker]string, len(spec.DefaultIcons))
		for name, icon := range spec.DefaultIcons {
			s, err := speaker(name)
			if err != nil {
				return cfg, fmt.Errorf("default icons: %w", err)
			}
			cfg.DefaultIcons[s] = icon
		}
	}

	cfg.Voice = dialogue.VoiceConfig{MinInterval: spec.Voice.MinInterval, KeepVoice: spec.Voice.KeepVoice}
	if len(spec.Voice.Clips) > 0 {
		cfg.Voice.Clips = make(map[dialogue.Speaker]string, len(spec.Voice.Clips))
		for name, clip := range spec.Voice.Clips {
			s, err := speaker(name)
			if err != nil {
				return cfg, fmt.Errorf("voice: %w", err)
			}
			cfg.Voice.Clips[s] = clip
		}
	}
	cfg.Animation = dialogue.AnimationConfig{
		Enabled:      spec.Animation.Enabled,
		MinInterval:  spec.Animation.MinInterval,
		ExplicitOnly: spec.Animation.ExplicitOnly,
	}
	return cfg, nil
}

func addText(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec := prefabs.TextComponentSpec{MaxVisible: -1}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode text spec: %w", err)
	}
	return ecs.Add(w, e, component.TextComponent.Kind(), &component.Text{
		Value:      spec.Value,
		MaxVisible: spec.MaxVisible,
		X:          spec.X,
		Y:          spec.Y,
		Color:      spec.Color.Or(color.White),
		BoxW:       spec.BoxW,
		BoxH:       spec.BoxH,
		BoxColor:   spec.BoxColor.Or(color.RGBA{A: 200}),
	})
}

func addIcon(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.IconComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode icon spec: %w", err)
	}
	return ecs.Add(w, e, component.IconComponent.Kind(), &component.Icon{Name: spec.Name})
}

func addTypingPanel(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec := prefabs.TypingPanelComponentSpec{CharacterDelay: typewriter.DefaultPanelDelay, HideWhenEmpty: true}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode typing_panel spec: %w", err)
	}
	panel := typewriter.NewPanel(nil, nil)
	panel.CharacterDelay = spec.CharacterDelay
	panel.HideWhenEmpty = spec.HideWhenEmpty
	return ecs.Add(w, e, component.TypingPanelComponent.Kind(), &component.TypingPanel{Panel: panel, Text: spec.Text})
}

func addDoorZone(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec := prefabs.DoorZoneComponentSpec{Radius: 1.5}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode door_zone spec: %w", err)
	}
	if spec.Radius <= 0 {
		return fmt.Errorf("door zone needs a positive radius")
	}
	return ecs.Add(w, e, component.DoorZoneComponent.Kind(), &component.DoorZone{Radius: spec.Radius, Offset: spec.Offset.Vec3()})
}

func closedPose(w *ecs.World, e ecs.Entity) (common.Vec3, float64) {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return t.Position, t.Yaw
	}
	return common.Vec3{}, 0
}

func addSlidingDoor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	cfg := gate.DefaultSlidingConfig()
	spec := prefabs.SlidingDoorComponentSpec{
		Direction:           prefabs.Vec3Of(cfg.Direction),
		Distance:            cfg.Distance,
		Speed:               cfg.Speed,
		CloseOnExit:         cfg.CloseOnExit,
		SlideAwayFromPlayer: cfg.SlideAwayFromPlayer,
		LockedMessage:       cfg.LockedMessage,
	}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode sliding_door spec: %w", err)
	}
	cfg.Direction = spec.Direction.Vec3()
	cfg.Distance = spec.Distance
	cfg.Speed = spec.Speed
	cfg.CloseOnExit = spec.CloseOnExit
	cfg.SlideAwayFromPlayer = spec.SlideAwayFromPlayer
	cfg.LockedMessage = spec.LockedMessage
	cfg.Clip = spec.Clip

	closed, _ := closedPose(w, e)
	return ecs.Add(w, e, component.SlidingDoorComponent.Kind(), &component.SlidingDoor{
		Door:        gate.NewSlidingDoor(cfg, closed),
		LockedLabel: spec.LockedLabel,
		Ungated:     spec.Ungated,
	})
}

func addRotatingDoor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	cfg := gate.DefaultRotatingConfig()
	spec := prefabs.RotatingDoorComponentSpec{
		OpenAngle:              cfg.OpenAngle,
		RotationSpeed:          cfg.RotationSpeed,
		CloseDelay:             cfg.CloseDelay,
		AlternateOpenDirection: cfg.AlternateOpenDirection,
		Volume:                 cfg.Volume,
		LockedMessage:          cfg.LockedMessage,
	}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode rotating_door spec: %w", err)
	}
	cfg.OpenAngle = spec.OpenAngle
	cfg.RotationSpeed = spec.RotationSpeed
	cfg.CloseDelay = spec.CloseDelay
	cfg.AlternateOpenDirection = spec.AlternateOpenDirection
	cfg.Clip = spec.Clip
	cfg.Volume = spec.Volume
	cfg.LockedMessage = spec.LockedMessage

	_, yaw := closedPose(w, e)
	return ecs.Add(w, e, component.RotatingDoorComponent.Kind(), &component.RotatingDoor{
		Door:        gate.NewRotatingDoor(cfg, yaw),
		LockedLabel: spec.LockedLabel,
		Ungated:     spec.Ungated,
	})
}

func addCounter(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec := prefabs.CounterComponentSpec{
		Required:          gate.DefaultRequired,
		InProgressMessage: gate.DefaultInProgressMessage,
		CompletedMessage:  gate.DefaultCompletedMessage,
	}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode counter spec: %w", err)
	}
	c := gate.NewConversationCounter(spec.Required)
	c.InProgressMessage = spec.InProgressMessage
	c.CompletedMessage = spec.CompletedMessage
	return ecs.Add(w, e, component.CounterComponent.Kind(), &component.Counter{Counter: c, Label: spec.Label})
}

func addMission(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	cfg := cinematic.DefaultMissionConfig()
	spec := prefabs.MissionComponentSpec{
		Instruction:           cfg.Instruction,
		CameraPriority:        cfg.CameraPriority,
		DisableAfterSelection: cfg.DisableAfterSelection,
	}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode mission spec: %w", err)
	}
	cfg.Instruction = spec.Instruction
	cfg.CameraPriority = spec.CameraPriority
	cfg.DisableAfterSelection = spec.DisableAfterSelection
	return ecs.Add(w, e, component.MissionComponent.Kind(), &component.Mission{
		Mission:     cinematic.NewMission(cfg, nil),
		Radius:      spec.Radius,
		Camera:      spec.Camera,
		Instruction: spec.InstructionLabel,
	})
}

func addMissionTarget(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MissionTargetComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mission_target spec: %w", err)
	}
	return ecs.Add(w, e, component.MissionTargetComponent.Kind(), &component.MissionTarget{Order: spec.Order, Action: spec.Action})
}

func actionConfigDefaults() prefabs.ActionConfigSpec {
	cfg := cinematic.DefaultConfig()
	return prefabs.ActionConfigSpec{
		CloneCount:          cfg.CloneCount,
		DuplicateYaw:        cfg.DuplicateYaw,
		CameraAttachDelay:   cfg.CameraAttachDelay,
		HeadTag:             cfg.HeadTag,
		CameraLocalPosition: prefabs.Vec3Of(cfg.CameraLocalPosition),
		SecondaryDelay:      cfg.SecondaryDelay,
		PrimaryPriority:     cfg.PrimaryPriority,
		SecondaryPriority:   cfg.SecondaryPriority,
		TypingPanelDelay:    cfg.TypingPanelDelay,
		TextSeparator:       cfg.TextSeparator,
		PlayOnce:            cfg.PlayOnce,
	}
}

func vecs(in []prefabs.Vec3Spec) []common.Vec3 {
	if len(in) == 0 {
		return nil
	}
	out := make([]common.Vec3, len(in))
	for i, v := range in {
		out[i] = v.Vec3()
	}
	return out
}

func actionConfig(spec prefabs.ActionConfigSpec) cinematic.Config {
	def := cinematic.DefaultConfig()
	return cinematic.Config{
		Origin:                       spec.Origin.Vec3(),
		CloneCount:                   spec.CloneCount,
		UseSpawnPoints:               spec.UseSpawnPoints,
		SpawnPoints:                  vecs(spec.SpawnPoints),
		WorldPositions:               vecs(spec.WorldPositions),
		DuplicateYaw:                 spec.DuplicateYaw,
		DisableAmbient:               spec.DisableAmbient,
		AmbientOffColor:              spec.AmbientOffColor.Or(def.AmbientOffColor),
		AmbientOffIntensity:          spec.AmbientOffIntensity,
		CameraAttachDelay:            spec.CameraAttachDelay,
		HeadTag:                      spec.HeadTag,
		CameraLocalPosition:          spec.CameraLocalPosition.Vec3(),
		CameraLocalEuler:             spec.CameraLocalEuler.Vec3(),
		SecondaryDelay:               spec.SecondaryDelay,
		DisablePrimaryWhenSecondary:  spec.DisablePrimaryWhenSecondary,
		PrimaryPriority:              spec.PrimaryPriority,
		SecondaryPriority:            spec.SecondaryPriority,
		PrimaryPriorityWhenSecondary: spec.PrimaryPriorityWhenSecondary,
		TypingPanelDelay:             spec.TypingPanelDelay,
		AnimatorController:           spec.AnimatorController,
		TextPrimary:                  spec.TextPrimary,
		TextSecondary:                spec.TextSecondary,
		TextSeparator:                spec.TextSeparator,
		PrimaryColor:                 spec.PrimaryColor.Or(def.PrimaryColor),
		SecondaryColor:               spec.SecondaryColor.Or(def.SecondaryColor),
		PlayOnce:                     spec.PlayOnce,
	}
}

func actionRefs(spec prefabs.ActionRefsSpec) component.ActionRefs {
	return component.ActionRefs{
		Source:               spec.Source,
		Camera:               spec.Camera,
		Secondary:            spec.Secondary,
		Panel:                spec.Panel,
		Mission:              spec.Mission,
		Lights:               spec.Lights,
		Deactivate:           spec.Deactivate,
		SelectableDeactivate: spec.SelectableDeactivate,
		PrimaryActivate:      spec.PrimaryActivate,
		SecondaryActivate:    spec.SecondaryActivate,
	}
}

func addAction(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec := prefabs.ActionComponentSpec{ActionConfigSpec: actionConfigDefaults()}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode action spec: %w", err)
	}
	return ecs.Add(w, e, component.ActionComponent.Kind(), &component.Action{
		Config: actionConfig(spec.ActionConfigSpec),
		Refs:   actionRefs(spec.ActionRefsSpec),
		Shared: spec.Shared,
	})
}

func addActionSettings(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec := prefabs.ActionSettingsComponentSpec{ActionConfigSpec: actionConfigDefaults()}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode action_settings spec: %w", err)
	}
	return ecs.Add(w, e, component.ActionSettingsComponent.Kind(), &component.ActionSettings{
		Config: actionConfig(spec.ActionConfigSpec),
		Refs:   actionRefs(spec.ActionRefsSpec),
	})
}

func addMusic(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	def := music.DefaultConfig()
	spec := prefabs.MusicComponentSpec{
		LoopLastAfterSelect: def.LoopLastAfterSelect,
		FadeDuration:        def.FadeDuration,
	}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode music spec: %w", err)
	}

	cfg := def
	cfg.AfterSelectClips = spec.AfterSelectClips
	cfg.LoopLastAfterSelect = spec.LoopLastAfterSelect
	cfg.FadeDuration = spec.FadeDuration
	for name, clip := range spec.Clips {
		state, ok := music.ParseState(name)
		if !ok {
			return fmt.Errorf("unknown music state %q", name)
		}
		cfg.Clips[state] = clip
	}
	for name, v := range spec.Volumes {
		state, ok := music.ParseState(name)
		if !ok {
			return fmt.Errorf("unknown music state %q", name)
		}
		cfg.Volumes[state] = v
	}

	return ecs.Add(w, e, component.MusicPlayerComponent.Kind(), &component.MusicPlayer{
		Manager: music.NewManager(cfg, nil),
		Master:  1,
	})
}

func addEnvironment(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec := prefabs.EnvironmentComponentSpec{AmbientIntensity: 1}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode environment spec: %w", err)
	}
	return ecs.Add(w, e, component.EnvironmentComponent.Kind(), &component.Environment{
		AmbientColor:     spec.AmbientColor.Or(color.Gray{Y: 200}),
		AmbientIntensity: spec.AmbientIntensity,
	})
}

func addLight(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec := prefabs.LightComponentSpec{Enabled: true, Range: 3, Intensity: 1}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode light spec: %w", err)
	}
	return ecs.Add(w, e, component.LightComponent.Kind(), &component.Light{
		Enabled:   spec.Enabled,
		Color:     spec.Color.Or(color.White),
		Range:     spec.Range,
		Intensity: spec.Intensity,
	})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec := prefabs.CameraComponentSpec{FOV: 60}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{FOV: spec.FOV})
}

func addVirtualCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.VirtualCameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode virtual_camera spec: %w", err)
	}
	return ecs.Add(w, e, component.VirtualCameraComponent.Kind(), &component.VirtualCamera{Priority: spec.Priority})
}
