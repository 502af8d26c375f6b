package system

import (
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
)

// CameraSystem hands the main camera to the live virtual camera with the
// highest priority. Ties go to the older camera.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())

	best, found, bestPriority := ecs.Entity(0), false, 0
	for _, e := range ecs.Query(w, component.VirtualCameraComponent.Kind()) {
		if !ActiveInHierarchy(w, e) {
			continue
		}
		vc, _ := ecs.Get(w, e, component.VirtualCameraComponent.Kind())
		if !found || vc.Priority > bestPriority {
			best, found, bestPriority = e, true, vc.Priority
		}
	}
	if !found {
		cam.Live = 0
		return
	}
	cam.Live = uint64(best)

	src, ok := ecs.Get(w, best, component.TransformComponent.Kind())
	if !ok {
		return
	}
	dst, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
		dst = &component.Transform{}
		_ = ecs.Add(w, camEntity, component.TransformComponent.Kind(), dst)
	}
	dst.Position, dst.Yaw, dst.Pitch = src.World, src.WorldYaw, src.WorldPitch
	dst.World, dst.WorldYaw, dst.WorldPitch = src.World, src.WorldYaw, src.WorldPitch
}

// LiveCamera returns the virtual camera the main camera follows.
func LiveCamera(w *ecs.World) (ecs.Entity, bool) {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return 0, false
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	return entityRef(w, cam.Live)
}
