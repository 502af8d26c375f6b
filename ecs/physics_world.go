package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/finalroom/common"
)

// ShapeKind selects a collider outline on the floor plane.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

// ColliderDef describes one entity's footprint. Colliders are infinite
// columns: only X and Z matter.
type ColliderDef struct {
	Kind   ShapeKind
	Width  float64
	Depth  float64
	Radius float64
	Layer  uint
}

// Hit is the first collider along a ray.
type Hit struct {
	Entity   Entity
	Distance float64
	Point    common.Vec3
	Normal   common.Vec3
}

type physicsBody struct {
	body    *cp.Body
	shape   *cp.Shape
	def     ColliderDef
	enabled bool
}

// PhysicsWorld maps the room's floor plan onto a Chipmunk space, world X to
// space X and world Z to space Y. It only answers queries; nothing is
// simulated.
type PhysicsWorld struct {
	space  *cp.Space
	bodies map[Entity]*physicsBody
}

func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	return &PhysicsWorld{
		space:  space,
		bodies: make(map[Entity]*physicsBody),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func toPlane(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

func fromPlane(v cp.Vector, y float64) common.Vec3 {
	return common.Vec3{X: v.X, Y: y, Z: v.Y}
}

// yawToAngle converts a yaw in degrees (clockwise seen from above) to a
// Chipmunk body angle.
func yawToAngle(yaw float64) float64 {
	return -yaw * math.Pi / 180
}

func filterFor(layer uint) cp.ShapeFilter {
	if layer == 0 {
		layer = 1
	}
	return cp.NewShapeFilter(cp.NO_GROUP, layer, cp.ALL_CATEGORIES)
}

func queryFilter(mask uint) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)
}

// AddCollider registers or replaces the collider for e.
func (pw *PhysicsWorld) AddCollider(e Entity, def ColliderDef, center common.Vec3, yaw float64) {
	if pw == nil || !e.Valid() {
		return
	}
	pw.Remove(e)

	body := cp.NewKinematicBody()
	body.SetPosition(toPlane(center))
	body.SetAngle(yawToAngle(yaw))

	var shape *cp.Shape
	switch def.Kind {
	case ShapeCircle:
		shape = cp.NewCircle(body, math.Max(def.Radius, 0.01), cp.Vector{})
	default:
		shape = cp.NewBox(body, math.Max(def.Width, 0.01), math.Max(def.Depth, 0.01), 0)
	}
	shape.SetFilter(filterFor(def.Layer))
	shape.UserData = e

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.space.ReindexShapesForBody(body)
	pw.bodies[e] = &physicsBody{body: body, shape: shape, def: def, enabled: true}
}

func (pw *PhysicsWorld) Has(e Entity) bool {
	if pw == nil {
		return false
	}
	_, ok := pw.bodies[e]
	return ok
}

// SetPose moves a registered collider.
func (pw *PhysicsWorld) SetPose(e Entity, center common.Vec3, yaw float64) {
	if pw == nil {
		return
	}
	pb, ok := pw.bodies[e]
	if !ok {
		return
	}
	pb.body.SetPosition(toPlane(center))
	pb.body.SetAngle(yawToAngle(yaw))
	if pb.enabled {
		pw.space.ReindexShapesForBody(pb.body)
	}
}

// SetEnabled takes a collider out of every query without forgetting it.
func (pw *PhysicsWorld) SetEnabled(e Entity, enabled bool) {
	if pw == nil {
		return
	}
	pb, ok := pw.bodies[e]
	if !ok || pb.enabled == enabled {
		return
	}
	pb.enabled = enabled
	if enabled {
		pw.space.AddShape(pb.shape)
		pw.space.ReindexShapesForBody(pb.body)
		return
	}
	pw.space.RemoveShape(pb.shape)
}

func (pw *PhysicsWorld) Remove(e Entity) {
	if pw == nil {
		return
	}
	pb, ok := pw.bodies[e]
	if !ok {
		return
	}
	if pb.enabled {
		pw.space.RemoveShape(pb.shape)
	}
	pw.space.RemoveBody(pb.body)
	delete(pw.bodies, e)
}

// RaycastFirst casts from origin along dir for maxDist and returns the
// nearest collider whose layer is in mask.
func (pw *PhysicsWorld) RaycastFirst(origin, dir common.Vec3, maxDist float64, mask uint) (Hit, bool) {
	if pw == nil || maxDist <= 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()
	if dir.LenSq() == 0 {
		return Hit{}, false
	}
	start := toPlane(origin)
	end := toPlane(origin.Add(dir.Scale(maxDist)))
	if start.Distance(end) < 1e-6 {
		return Hit{}, false
	}

	info := pw.space.SegmentQueryFirst(start, end, 0, queryFilter(mask))
	if info.Shape == nil {
		return Hit{}, false
	}
	e, ok := info.Shape.UserData.(Entity)
	if !ok {
		return Hit{}, false
	}
	dist := info.Alpha * maxDist
	point := origin.Add(dir.Scale(dist))
	return Hit{
		Entity:   e,
		Distance: dist,
		Point:    point,
		Normal:   fromPlane(info.Normal, 0),
	}, true
}

// OverlapSphere lists the colliders within radius of center in no
// particular order.
func (pw *PhysicsWorld) OverlapSphere(center common.Vec3, radius float64, mask uint) []Entity {
	if pw == nil || radius < 0 {
		return nil
	}
	var out []Entity
	seen := map[Entity]bool{}
	pw.space.PointQuery(toPlane(center), radius, queryFilter(mask), func(shape *cp.Shape, _ cp.Vector, _ float64, _ cp.Vector, _ interface{}) {
		e, ok := shape.UserData.(Entity)
		if !ok || seen[e] {
			return
		}
		seen[e] = true
		out = append(out, e)
	}, nil)
	return out
}

// MoveCircle slides a circle of radius from pos by delta on the floor plane
// and pushes it out of any blocking collider. self is never considered.
func (pw *PhysicsWorld) MoveCircle(self Entity, pos, delta common.Vec3, radius float64, mask uint) common.Vec3 {
	next := pos.Add(common.Vec3{X: delta.X, Z: delta.Z})
	if pw == nil || radius <= 0 {
		return next
	}

	for range 4 {
		p := toPlane(next)
		var push cp.Vector
		pw.space.PointQuery(p, radius, queryFilter(mask), func(shape *cp.Shape, _ cp.Vector, distance float64, gradient cp.Vector, _ interface{}) {
			if e, ok := shape.UserData.(Entity); ok && e == self {
				return
			}
			depth := radius - distance
			if depth <= 0 {
				return
			}
			push = push.Add(gradient.Mult(depth))
		}, nil)
		if push.LengthSq() < 1e-12 {
			break
		}
		p = p.Add(push)
		next.X, next.Z = p.X, p.Y
	}
	return next
}

// Step advances the space. Bodies are kinematic, so this only refreshes
// the spatial index.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.Step(dt)
}
