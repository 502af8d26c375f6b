package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is one prefab file: a root entity and its child parts.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
	Children   []ChildSpec    `yaml:"children"`
}

// ChildSpec is an entity parented to the prefab root. Tag marks attachment
// points such as "Head".
type ChildSpec struct {
	Name       string         `yaml:"name"`
	Tag        string         `yaml:"tag"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var out T
	err := DecodeComponentSpecInto(raw, &out)
	return out, err
}

// DecodeComponentSpecInto decodes raw over out, so fields raw leaves out
// keep the values out already has.
func DecodeComponentSpecInto[T any](raw any, out *T) error {
	if raw == nil {
		return nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Z        float64 `yaml:"z"`
	Yaw      float64 `yaml:"yaw"`
	Pitch    float64 `yaml:"pitch"`
	Mirrored bool    `yaml:"mirrored"`
}

type ShapeComponentSpec struct {
	Kind   string    `yaml:"kind"`
	Width  float64   `yaml:"width"`
	Depth  float64   `yaml:"depth"`
	Radius float64   `yaml:"radius"`
	Color  YAMLColor `yaml:"color"`
	Label  string    `yaml:"label"`
}

type ColliderComponentSpec struct {
	Shape    string   `yaml:"shape"`
	Width    float64  `yaml:"width"`
	Depth    float64  `yaml:"depth"`
	Radius   float64  `yaml:"radius"`
	Offset   Vec3Spec `yaml:"offset"`
	Blocking bool     `yaml:"blocking"`
}

// CollisionLayerComponentSpec names layers: world, player, interactable,
// trigger.
type CollisionLayerComponentSpec struct {
	Category []string `yaml:"category"`
	Mask     []string `yaml:"mask"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type RendererComponentSpec struct {
	Materials []string `yaml:"materials"`
}

type OutlineComponentSpec struct {
	Color     YAMLColor `yaml:"color"`
	Thickness float64   `yaml:"thickness"`
	Exclude   []string  `yaml:"exclude"`
}

type AnimatorComponentSpec struct {
	Controller string   `yaml:"controller"`
	Parameters []string `yaml:"parameters"`
	Default    string   `yaml:"default"`
	CrossFade  float64  `yaml:"cross_fade"`
	Hold       float64  `yaml:"hold"`
}

type AudioComponentSpec struct {
	Volume     float64 `yaml:"volume"`
	Loop       string  `yaml:"loop"`
	LoopVolume float64 `yaml:"loop_volume"`
}

type PlayerComponentSpec struct {
	MoveSpeed          float64  `yaml:"move_speed"`
	Gravity            float64  `yaml:"gravity"`
	EyeHeight          float64  `yaml:"eye_height"`
	Radius             float64  `yaml:"radius"`
	MouseSensitivity   float64  `yaml:"mouse_sensitivity"`
	PitchClamp         float64  `yaml:"pitch_clamp"`
	InvertY            bool     `yaml:"invert_y"`
	SpeedParam         string   `yaml:"speed_param"`
	IsMovingParam      string   `yaml:"is_moving_param"`
	IsSittingParam     string   `yaml:"is_sitting_param"`
	SpeedDampTime      float64  `yaml:"speed_damp_time"`
	FootstepClips      []string `yaml:"footstep_clips"`
	StepInterval       float64  `yaml:"step_interval"`
	StepSpeedThreshold float64  `yaml:"step_speed_threshold"`
	BreathingClip      string   `yaml:"breathing_clip"`
	BreatheWhileMoving bool     `yaml:"breathe_while_moving"`
	BreatheWhileIdle   bool     `yaml:"breathe_while_idle"`
	BreathingVolume    float64  `yaml:"breathing_volume"`
}

type SelectorComponentSpec struct {
	// Mode is "best_candidate" or "center_ray".
	Mode                string   `yaml:"mode"`
	InteractKey         string   `yaml:"interact_key"`
	MaxDistance         float64  `yaml:"max_distance"`
	MaxViewportDistance float64  `yaml:"max_viewport_distance"`
	MaxAngle            float64  `yaml:"max_angle"`
	Mask                []string `yaml:"mask"`
	PromptLabel         string   `yaml:"prompt_label"`
	StandKey            string   `yaml:"stand_key"`
	StandPrompt         string   `yaml:"stand_prompt"`
}

type InteractableComponentSpec struct {
	Prompt string `yaml:"prompt"`
}

type NPCAnimationSpec struct {
	Triggers           []string `yaml:"triggers"`
	UseStates          bool     `yaml:"use_states"`
	States             []string `yaml:"states"`
	CrossFade          float64  `yaml:"cross_fade"`
	Layer              int      `yaml:"layer"`
	ResetTriggers      bool     `yaml:"reset_triggers"`
	AvoidRepeatingLast bool     `yaml:"avoid_repeating_last"`
}

type TalkComponentSpec struct {
	ID        string           `yaml:"id"`
	Paragraph string           `yaml:"paragraph"`
	Counts    bool             `yaml:"counts"`
	Script    string           `yaml:"script"`
	Animation NPCAnimationSpec `yaml:"animation"`
}

type SeatComponentSpec struct {
	Offset Vec3Spec `yaml:"offset"`
	Yaw    float64  `yaml:"yaw"`
}

type DialogueSlotSpec struct {
	Panel string `yaml:"panel"`
	Text  string `yaml:"text"`
	Icon  string `yaml:"icon"`
}

type PrefixSpec struct {
	Text    string `yaml:"text"`
	Speaker string `yaml:"speaker"`
}

type VoiceSpec struct {
	// Clips are keyed by speaker: npc, player.
	Clips       map[string]string `yaml:"clips"`
	MinInterval float64           `yaml:"min_interval"`
	KeepVoice   bool              `yaml:"keep_voice"`
}

type DialogueAnimationSpec struct {
	Enabled      bool    `yaml:"enabled"`
	MinInterval  float64 `yaml:"min_interval"`
	ExplicitOnly bool    `yaml:"explicit_only"`
}

type DialogueUIComponentSpec struct {
	NPC         DialogueSlotSpec `yaml:"npc"`
	Player      DialogueSlotSpec `yaml:"player"`
	Legacy      DialogueSlotSpec `yaml:"legacy"`
	Next        string           `yaml:"next"`
	Instruction string           `yaml:"instruction"`

	CharacterDelay    float64               `yaml:"character_delay"`
	HidePanelOnFinish bool                  `yaml:"hide_panel_on_finish"`
	NextKey           string                `yaml:"next_key"`
	NextInstruction   string                `yaml:"next_instruction"`
	Prefixes          []PrefixSpec          `yaml:"prefixes"`
	Icons             map[string][]string   `yaml:"icons"`
	DefaultIcons      map[string]string     `yaml:"default_icons"`
	Voice             VoiceSpec             `yaml:"voice"`
	Animation         DialogueAnimationSpec `yaml:"animation"`
}

type TextComponentSpec struct {
	Value      string    `yaml:"value"`
	MaxVisible int       `yaml:"max_visible"`
	X          float64   `yaml:"x"`
	Y          float64   `yaml:"y"`
	Color      YAMLColor `yaml:"color"`
	BoxW       float64   `yaml:"box_w"`
	BoxH       float64   `yaml:"box_h"`
	BoxColor   YAMLColor `yaml:"box_color"`
}

type IconComponentSpec struct {
	Name string `yaml:"name"`
}

type TypingPanelComponentSpec struct {
	Text           string  `yaml:"text"`
	CharacterDelay float64 `yaml:"character_delay"`
	HideWhenEmpty  bool    `yaml:"hide_when_empty"`
}

type DoorZoneComponentSpec struct {
	Radius float64  `yaml:"radius"`
	Offset Vec3Spec `yaml:"offset"`
}

type SlidingDoorComponentSpec struct {
	Direction           Vec3Spec `yaml:"direction"`
	Distance            float64  `yaml:"distance"`
	Speed               float64  `yaml:"speed"`
	CloseOnExit         bool     `yaml:"close_on_exit"`
	SlideAwayFromPlayer bool     `yaml:"slide_away_from_player"`
	LockedMessage       string   `yaml:"locked_message"`
	LockedLabel         string   `yaml:"locked_label"`
	Ungated             bool     `yaml:"ungated"`
	Clip                string   `yaml:"clip"`
}

type RotatingDoorComponentSpec struct {
	OpenAngle              float64 `yaml:"open_angle"`
	RotationSpeed          float64 `yaml:"rotation_speed"`
	CloseDelay             float64 `yaml:"close_delay"`
	AlternateOpenDirection bool    `yaml:"alternate_open_direction"`
	Clip                   string  `yaml:"clip"`
	Volume                 float64 `yaml:"volume"`
	LockedMessage          string  `yaml:"locked_message"`
	LockedLabel            string  `yaml:"locked_label"`
	Ungated                bool    `yaml:"ungated"`
}

type CounterComponentSpec struct {
	Required          int    `yaml:"required"`
	Label             string `yaml:"label"`
	InProgressMessage string `yaml:"in_progress_message"`
	CompletedMessage  string `yaml:"completed_message"`
}

type MissionComponentSpec struct {
	Radius                float64 `yaml:"radius"`
	Camera                string  `yaml:"camera"`
	InstructionLabel      string  `yaml:"instruction_label"`
	Instruction           string  `yaml:"instruction"`
	CameraPriority        int     `yaml:"camera_priority"`
	DisableAfterSelection bool    `yaml:"disable_after_selection"`
}

type MissionTargetComponentSpec struct {
	Order  int    `yaml:"order"`
	Action string `yaml:"action"`
}

type ActionConfigSpec struct {
	Origin Vec3Spec `yaml:"origin"`

	CloneCount     int        `yaml:"clone_count"`
	UseSpawnPoints bool       `yaml:"use_spawn_points"`
	SpawnPoints    []Vec3Spec `yaml:"spawn_points"`
	WorldPositions []Vec3Spec `yaml:"world_positions"`
	DuplicateYaw   float64    `yaml:"duplicate_yaw"`

	DisableAmbient      bool      `yaml:"disable_ambient"`
	AmbientOffColor     YAMLColor `yaml:"ambient_off_color"`
	AmbientOffIntensity float64   `yaml:"ambient_off_intensity"`

	CameraAttachDelay   float64  `yaml:"camera_attach_delay"`
	HeadTag             string   `yaml:"head_tag"`
	CameraLocalPosition Vec3Spec `yaml:"camera_local_position"`
	CameraLocalEuler    Vec3Spec `yaml:"camera_local_euler"`

	SecondaryDelay               float64 `yaml:"secondary_delay"`
	DisablePrimaryWhenSecondary  bool    `yaml:"disable_primary_when_secondary"`
	PrimaryPriority              int     `yaml:"primary_priority"`
	SecondaryPriority            int     `yaml:"secondary_priority"`
	PrimaryPriorityWhenSecondary int     `yaml:"primary_priority_when_secondary"`
	TypingPanelDelay             float64 `yaml:"typing_panel_delay"`

	AnimatorController string `yaml:"animator_controller"`

	TextPrimary    string    `yaml:"text_primary"`
	TextSecondary  string    `yaml:"text_secondary"`
	TextSeparator  string    `yaml:"text_separator"`
	PrimaryColor   YAMLColor `yaml:"primary_color"`
	SecondaryColor YAMLColor `yaml:"secondary_color"`

	PlayOnce bool `yaml:"play_once"`
}

type ActionRefsSpec struct {
	Source               string   `yaml:"source"`
	Camera               string   `yaml:"camera"`
	Secondary            string   `yaml:"secondary"`
	Panel                string   `yaml:"panel"`
	Mission              string   `yaml:"mission"`
	Lights               []string `yaml:"lights"`
	Deactivate           []string `yaml:"deactivate"`
	SelectableDeactivate []string `yaml:"selectable_deactivate"`
	PrimaryActivate      []string `yaml:"primary_activate"`
	SecondaryActivate    []string `yaml:"secondary_activate"`
}

type ActionComponentSpec struct {
	ActionConfigSpec `yaml:",inline"`
	ActionRefsSpec   `yaml:",inline"`
	Shared           string `yaml:"shared"`
}

type ActionSettingsComponentSpec struct {
	ActionConfigSpec `yaml:",inline"`
	ActionRefsSpec   `yaml:",inline"`
}

type MusicComponentSpec struct {
	// Clips and Volumes are keyed by state: idle, conversation,
	// final_mission, after_select.
	Clips               map[string]string  `yaml:"clips"`
	Volumes             map[string]float64 `yaml:"volumes"`
	AfterSelectClips    []string           `yaml:"after_select_clips"`
	LoopLastAfterSelect bool               `yaml:"loop_last_after_select"`
	FadeDuration        float64            `yaml:"fade_duration"`
}

type EnvironmentComponentSpec struct {
	AmbientColor     YAMLColor `yaml:"ambient_color"`
	AmbientIntensity float64   `yaml:"ambient_intensity"`
}

type LightComponentSpec struct {
	Enabled   bool      `yaml:"enabled"`
	Color     YAMLColor `yaml:"color"`
	Range     float64   `yaml:"range"`
	Intensity float64   `yaml:"intensity"`
}

type CameraComponentSpec struct {
	FOV float64 `yaml:"fov"`
}

type VirtualCameraComponentSpec struct {
	Priority int `yaml:"priority"`
}

type TagComponentSpec struct {
	Value string `yaml:"value"`
}
