package component

// Animator is a parameter-driven animation state holder. Triggers fire
// the state of the same name; the animation system falls back to Default
// once a state has played for Hold seconds.
type Animator struct {
	Controller string
	Parameters []string
	Floats     map[string]float64
	Bools      map[string]bool
	Triggers   map[string]bool

	Default   string
	State     string
	CrossFade float64
	StateTime float64
	Hold      float64
	// Rebinds counts how often the animator was rebound to its rig.
	Rebinds int
}

var AnimatorComponent = NewComponent[Animator]()
