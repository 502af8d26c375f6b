package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed simulation rate the world is stepped at.
	TPS = 60
	// DT is the length of one tick in seconds.
	DT = 1.0 / TPS

	// PixelsPerUnit converts world units (metres) into screen pixels for the
	// top-down view.
	PixelsPerUnit = 48.0
)
