package common

import (
	"math"
	"testing"
)

func TestMoveTowards(t *testing.T) {
	cases := []struct {
		name     string
		from, to Vec3
		step     float64
		want     Vec3
	}{
		{"partial", Vec3{}, Vec3{X: 2}, 0.5, Vec3{X: 0.5}},
		{"overshoot_snaps", Vec3{}, Vec3{X: 2}, 5, Vec3{X: 2}},
		{"already_there", Vec3{Z: 1}, Vec3{Z: 1}, 1, Vec3{Z: 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := MoveTowards(c.from, c.to, c.step)
			if Distance(got, c.want) > 1e-9 {
				t.Fatalf("expected %+v, got %+v", c.want, got)
			}
		})
	}
}

func TestMoveTowardsAngle(t *testing.T) {
	if got := MoveTowardsAngle(350, 10, 5); math.Abs(got-355) > 1e-9 {
		t.Fatalf("expected shortest path through 360, got %v", got)
	}
	if got := MoveTowardsAngle(0, 90, 180); got != 90 {
		t.Fatalf("expected snap to target, got %v", got)
	}
}

func TestLocalRoundTrip(t *testing.T) {
	origin := Vec3{X: 3, Z: -1}
	p := Vec3{X: 1, Y: 2, Z: 4}
	for _, yaw := range []float64{0, 45, 90, 180, -30} {
		back := FromLocal(origin, yaw, ToLocal(origin, yaw, p))
		if Distance(back, p) > 1e-9 {
			t.Fatalf("yaw=%v expected %+v, got %+v", yaw, p, back)
		}
	}
}

func TestWorldToViewport(t *testing.T) {
	cam := PerspectiveCamera{FOV: 60, Aspect: 16.0 / 9.0}

	center := cam.WorldToViewport(Vec3{Z: 5})
	if math.Abs(center.X-0.5) > 1e-9 || math.Abs(center.Y-0.5) > 1e-9 || center.Z != 5 {
		t.Fatalf("expected centered projection, got %+v", center)
	}

	behind := cam.WorldToViewport(Vec3{Z: -1})
	if behind.Z > 0 {
		t.Fatalf("expected non-positive depth for a point behind, got %+v", behind)
	}

	rightUp := cam.WorldToViewport(Vec3{X: 1, Y: 1, Z: 5})
	if rightUp.X <= 0.5 || rightUp.Y <= 0.5 {
		t.Fatalf("expected point in upper right quadrant, got %+v", rightUp)
	}
}
