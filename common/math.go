package common

import "math"

// Vec3 is a world-space vector. Y is up; the walkable floor is the XZ plane.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LenSq() float64 {
	return v.Dot(v)
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize returns the unit vector, or the zero vector when v is (near) zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-5 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

func Distance(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// Angle returns the unsigned angle in degrees between two directions.
func Angle(a, b Vec3) float64 {
	denom := math.Sqrt(a.LenSq() * b.LenSq())
	if denom < 1e-15 {
		return 0
	}
	d := Clamp(a.Dot(b)/denom, -1, 1)
	return math.Acos(d) * 180 / math.Pi
}

// MoveTowards moves current toward target by at most maxDelta.
func MoveTowards(current, target Vec3, maxDelta float64) Vec3 {
	delta := target.Sub(current)
	dist := delta.Len()
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return current.Add(delta.Scale(maxDelta / dist))
}

// DeltaAngle returns the shortest signed difference between two angles in degrees.
func DeltaAngle(current, target float64) float64 {
	d := math.Mod(target-current, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return d
}

// MoveTowardsAngle rotates current toward target by at most maxDelta degrees.
func MoveTowardsAngle(current, target, maxDelta float64) float64 {
	d := DeltaAngle(current, target)
	if math.Abs(d) <= maxDelta {
		return target
	}
	if d > 0 {
		return current + maxDelta
	}
	return current - maxDelta
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Approximately compares two floats with a tolerance scaled to their magnitude.
func Approximately(a, b float64) bool {
	tol := math.Max(1e-6*math.Max(math.Abs(a), math.Abs(b)), 1e-9)
	return math.Abs(b-a) < tol
}

// Forward returns the view direction for a yaw (about +Y, 0 looks down +Z)
// and pitch (positive looks down), both in degrees.
func Forward(yawDeg, pitchDeg float64) Vec3 {
	yaw := yawDeg * math.Pi / 180
	pitch := pitchDeg * math.Pi / 180
	return Vec3{
		X: math.Sin(yaw) * math.Cos(pitch),
		Y: -math.Sin(pitch),
		Z: math.Cos(yaw) * math.Cos(pitch),
	}
}

// Right returns the horizontal right vector for a yaw in degrees.
func Right(yawDeg float64) Vec3 {
	yaw := yawDeg * math.Pi / 180
	return Vec3{X: math.Cos(yaw), Z: -math.Sin(yaw)}
}

// ToLocal expresses p in the frame of an object at origin rotated by yawDeg.
func ToLocal(origin Vec3, yawDeg float64, p Vec3) Vec3 {
	d := p.Sub(origin)
	fwd := Forward(yawDeg, 0)
	right := Right(yawDeg)
	return Vec3{X: d.Dot(right), Y: d.Y, Z: d.Dot(fwd)}
}

// FromLocal is the inverse of ToLocal.
func FromLocal(origin Vec3, yawDeg float64, local Vec3) Vec3 {
	fwd := Forward(yawDeg, 0)
	right := Right(yawDeg)
	return origin.Add(right.Scale(local.X)).Add(fwd.Scale(local.Z)).Add(Vec3{Y: local.Y})
}

func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
