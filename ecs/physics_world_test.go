package ecs

import (
	"math"
	"testing"

	"github.com/milk9111/finalroom/common"
)

const (
	testLayerWall uint = 1 << iota
	testLayerTalk
)

func TestRaycastFirst(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	near := CreateEntity(w)
	far := CreateEntity(w)
	pw.AddCollider(near, ColliderDef{Kind: ShapeCircle, Radius: 0.5, Layer: testLayerTalk}, common.Vec3{Z: 3}, 0)
	pw.AddCollider(far, ColliderDef{Kind: ShapeBox, Width: 2, Depth: 1, Layer: testLayerWall}, common.Vec3{Z: 6}, 0)

	cases := []struct {
		name     string
		dir      common.Vec3
		maxDist  float64
		mask     uint
		want     Entity
		wantDist float64
		hit      bool
	}{
		{"nearest", common.Vec3{Z: 1}, 10, ^uint(0), near, 2.5, true},
		{"masked_out", common.Vec3{Z: 1}, 10, testLayerWall, far, 5.5, true},
		{"too_short", common.Vec3{Z: 1}, 2, ^uint(0), 0, 0, false},
		{"wrong_way", common.Vec3{Z: -1}, 10, ^uint(0), 0, 0, false},
		{"pitched_down", common.Vec3{Y: -1, Z: 1}, 10, ^uint(0), near, 2.5 * math.Sqrt2, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := pw.RaycastFirst(common.Vec3{Y: 1.6}, tc.dir, tc.maxDist, tc.mask)
			if ok != tc.hit {
				t.Fatalf("hit = %v, want %v", ok, tc.hit)
			}
			if !ok {
				return
			}
			if hit.Entity != tc.want || math.Abs(hit.Distance-tc.wantDist) > 1e-6 {
				t.Fatalf("hit = %+v, want %v at %v", hit, tc.want, tc.wantDist)
			}
		})
	}
}

func TestOverlapAndDisable(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	e := CreateEntity(w)
	pw.AddCollider(e, ColliderDef{Kind: ShapeCircle, Radius: 0.5}, common.Vec3{X: 1}, 0)

	if got := pw.OverlapSphere(common.Vec3{}, 0.6, ^uint(0)); len(got) != 1 || got[0] != e {
		t.Fatalf("overlap = %v", got)
	}
	if got := pw.OverlapSphere(common.Vec3{}, 0.4, ^uint(0)); len(got) != 0 {
		t.Fatalf("overlap too far = %v", got)
	}

	pw.SetEnabled(e, false)
	if got := pw.OverlapSphere(common.Vec3{}, 2, ^uint(0)); len(got) != 0 {
		t.Fatalf("disabled collider still found: %v", got)
	}
	pw.SetEnabled(e, true)
	pw.SetPose(e, common.Vec3{X: 5}, 0)
	if got := pw.OverlapSphere(common.Vec3{}, 2, ^uint(0)); len(got) != 0 {
		t.Fatalf("moved collider found at old pose: %v", got)
	}
	if got := pw.OverlapSphere(common.Vec3{X: 5}, 0.1, ^uint(0)); len(got) != 1 {
		t.Fatalf("moved collider not found at new pose")
	}

	pw.Remove(e)
	if pw.Has(e) || len(pw.OverlapSphere(common.Vec3{X: 5}, 1, ^uint(0))) != 0 {
		t.Fatalf("removed collider still present")
	}
}

func TestMoveCircleStopsAtWall(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	player := CreateEntity(w)
	wall := CreateEntity(w)
	pw.AddCollider(player, ColliderDef{Kind: ShapeCircle, Radius: 0.3}, common.Vec3{}, 0)
	pw.AddCollider(wall, ColliderDef{Kind: ShapeBox, Width: 4, Depth: 1}, common.Vec3{Z: 2}, 0)

	pos := common.Vec3{}
	for range 100 {
		pos = pw.MoveCircle(player, pos, common.Vec3{Z: 0.05}, 0.3, ^uint(0))
	}
	if pos.Z > 1.2+1e-6 || pos.Z < 1.1 {
		t.Fatalf("z = %v, want about 1.2", pos.Z)
	}

	free := pw.MoveCircle(player, common.Vec3{X: 10}, common.Vec3{X: 1}, 0.3, ^uint(0))
	if free.X != 11 {
		t.Fatalf("free move x = %v", free.X)
	}
}

func TestDestroyEntityRemovesCollider(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	w.SetPhysicsWorld(pw)
	e := CreateEntity(w)
	pw.AddCollider(e, ColliderDef{Kind: ShapeCircle, Radius: 1}, common.Vec3{}, 0)
	DestroyEntity(w, e)
	if pw.Has(e) {
		t.Fatalf("collider outlived its entity")
	}
}
