package common

import "math"

// PerspectiveCamera projects world points into normalized viewport space,
// (0,0) bottom-left to (1,1) top-right, with Z holding view-space depth.
type PerspectiveCamera struct {
	Position Vec3
	Yaw      float64
	Pitch    float64
	// FOV is the vertical field of view in degrees.
	FOV    float64
	Aspect float64
}

func (c PerspectiveCamera) Forward() Vec3 {
	return Forward(c.Yaw, c.Pitch)
}

// WorldToViewport returns the viewport position of p. Points behind the
// camera come back with Z <= 0.
func (c PerspectiveCamera) WorldToViewport(p Vec3) Vec3 {
	fwd := c.Forward()
	right := Right(c.Yaw)
	up := fwd.Cross(right)

	d := p.Sub(c.Position)
	z := d.Dot(fwd)
	if z <= 0 {
		return Vec3{X: 0.5, Y: 0.5, Z: z}
	}

	fov := c.FOV
	if fov <= 0 {
		fov = 60
	}
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = float64(BaseWidth) / float64(BaseHeight)
	}
	halfH := math.Tan(fov * math.Pi / 360)
	halfW := halfH * aspect

	x := d.Dot(right) / (z * halfW)
	y := d.Dot(up) / (z * halfH)
	return Vec3{X: 0.5 + x/2, Y: 0.5 + y/2, Z: z}
}
