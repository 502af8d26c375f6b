package interaction

import (
	"math"
	"strings"

	"github.com/milk9111/finalroom/common"
)

// Target is anything the player can interact with.
type Target interface {
	Interact()
	Prompt() string
}

// Highlighter is implemented by targets that can show a selection outline.
type Highlighter interface {
	SetHighlighted(on bool)
}

type Hit struct {
	Target   Target
	Distance float64
}

// Collider is one overlap result. Target is nil for colliders that do not
// belong to an interactable.
type Collider struct {
	Target Target
	Center common.Vec3
}

type Physics interface {
	RaycastFirst(origin, direction common.Vec3, maxDistance float64, mask uint) (Hit, bool)
	OverlapSphere(origin common.Vec3, radius float64, mask uint) []Collider
}

// View is the eye the selection is made from.
type View interface {
	Position() common.Vec3
	Forward() common.Vec3
}

type Projector interface {
	WorldToViewport(p common.Vec3) common.Vec3
}

type Mode int

const (
	ModeBestCandidate Mode = iota
	ModeCenterRay
)

// ParseMode resolves "best_candidate" or "center_ray". Empty means best
// candidate.
func ParseMode(name string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "best_candidate", "best", "":
		return ModeBestCandidate, true
	case "center_ray", "ray":
		return ModeCenterRay, true
	}
	return ModeBestCandidate, false
}

type Config struct {
	Mode                Mode
	InteractKey         string
	MaxDistance         float64
	MaxViewportDistance float64
	MaxAngle            float64
	Mask                uint
}

func DefaultConfig() Config {
	return Config{
		Mode:                ModeBestCandidate,
		InteractKey:         "E",
		MaxDistance:         2,
		MaxViewportDistance: 0.75,
		MaxAngle:            60,
		Mask:                ^uint(0),
	}
}

// Candidate is one scored target from a best-candidate pass.
type Candidate struct {
	Target           Target
	ViewportDistance float64
	WorldDistance    float64
	Angle            float64
}

// Selector tracks the single interactable the player is looking at and keeps
// exactly that one highlighted.
type Selector struct {
	cfg       Config
	Physics   Physics
	View      View
	Projector Projector

	current      Target
	overrideText string
	overrideLeft float64
}

func NewSelector(cfg Config, physics Physics, view View) *Selector {
	return &Selector{cfg: cfg, Physics: physics, View: view}
}

func (s *Selector) Config() Config {
	return s.cfg
}

func (s *Selector) SetMode(m Mode) {
	s.cfg.Mode = m
}

// Update recomputes the selection and ticks the prompt override.
func (s *Selector) Update(dt float64) {
	if s.overrideLeft > 0 {
		s.overrideLeft -= dt
		if s.overrideLeft <= 0 {
			s.overrideLeft = 0
			s.overrideText = ""
		}
	}
	s.setCurrent(s.Find())
}

// Find returns the best target without touching highlight state.
func (s *Selector) Find() Target {
	if s.Physics == nil || s.View == nil {
		return nil
	}
	if s.cfg.Mode == ModeCenterRay {
		hit, ok := s.Physics.RaycastFirst(s.View.Position(), s.View.Forward(), s.cfg.MaxDistance, s.cfg.Mask)
		if !ok {
			return nil
		}
		return hit.Target
	}
	best, ok := s.bestCandidate()
	if !ok {
		return nil
	}
	return best.Target
}

func (s *Selector) bestCandidate() (Candidate, bool) {
	origin := s.View.Position()
	forward := s.View.Forward()

	var (
		best  Candidate
		found bool
	)
	for _, col := range s.Physics.OverlapSphere(origin, s.cfg.MaxDistance, s.cfg.Mask) {
		if col.Target == nil {
			continue
		}
		toTarget := col.Center.Sub(origin)
		worldDist := toTarget.Len()
		if worldDist < 0.001 {
			continue
		}
		angle := common.Angle(forward, toTarget)
		if angle > s.cfg.MaxAngle {
			continue
		}

		// Without a projector the angle stands in for viewport distance.
		viewportDist := angle
		if s.Projector != nil {
			vp := s.Projector.WorldToViewport(col.Center)
			if vp.Z <= 0 || vp.X < 0 || vp.X > 1 || vp.Y < 0 || vp.Y > 1 {
				continue
			}
			viewportDist = math.Hypot(vp.X-0.5, vp.Y-0.5)
			if viewportDist > s.cfg.MaxViewportDistance {
				continue
			}
		}

		c := Candidate{Target: col.Target, ViewportDistance: viewportDist, WorldDistance: worldDist, Angle: angle}
		if !found || better(c, best) {
			best = c
			found = true
		}
	}
	return best, found
}

func better(c, best Candidate) bool {
	if common.Approximately(c.ViewportDistance, best.ViewportDistance) {
		return c.WorldDistance < best.WorldDistance
	}
	return c.ViewportDistance < best.ViewportDistance
}

func (s *Selector) setCurrent(t Target) {
	if t == s.current {
		return
	}
	if h, ok := s.current.(Highlighter); ok {
		h.SetHighlighted(false)
	}
	s.current = t
	if h, ok := t.(Highlighter); ok {
		h.SetHighlighted(true)
	}
}

// Clear drops the current selection and its highlight.
func (s *Selector) Clear() {
	s.setCurrent(nil)
}

func (s *Selector) Current() Target {
	return s.current
}

// Interact fires the current target. It reports false when nothing is selected.
func (s *Selector) Interact() bool {
	if s.current == nil {
		return false
	}
	s.current.Interact()
	return true
}

// OverridePrompt shows text instead of the target prompt for seconds.
func (s *Selector) OverridePrompt(text string, seconds float64) {
	if seconds <= 0 {
		s.overrideText = ""
		s.overrideLeft = 0
		return
	}
	s.overrideText = text
	s.overrideLeft = seconds
}

func (s *Selector) Prompt() string {
	if s.overrideLeft > 0 {
		return s.format(s.overrideText)
	}
	if s.current == nil {
		return ""
	}
	return s.format(s.current.Prompt())
}

func (s *Selector) format(prompt string) string {
	return strings.ReplaceAll(prompt, "{key}", s.cfg.InteractKey)
}
