package component

// Camera is the main camera. Live is the virtual camera it currently
// follows (ecs.Entity is uint64).
type Camera struct {
	FOV  float64
	Live uint64
}

var CameraComponent = NewComponent[Camera]()

// VirtualCamera competes for the main camera by priority.
type VirtualCamera struct {
	Priority int
}

var VirtualCameraComponent = NewComponent[VirtualCamera]()
