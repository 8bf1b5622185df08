package interaction

// Screen-space constants. Anything compared against world coordinates goes
// through geom.ZoomScaled first so the on-screen tolerance is zoom-invariant.
const (
	// DragThreshold is the Euclidean screen-space displacement a pointer
	// must travel before a click becomes a continuous gesture.
	DragThreshold = 4.0

	// HandleHitArea is the side length of the square hit area centered on
	// each resize/rotation handle, in screen pixels.
	HandleHitArea = 10.0

	// RotationHandleDistance is how far above the selection's top-center
	// the rotation handle sits, in screen pixels.
	RotationHandleDistance = 20.0

	// AlignmentSnapThreshold is the maximum screen-space distance at which
	// a dragged edge/center snaps to another element's edge/center.
	AlignmentSnapThreshold = 5.0
)

// World-space constants.
const (
	// MinElementSize is the smallest width/height a resize can produce.
	MinElementSize = 10.0

	// GuidePadding extends alignment guide lines past the union of the
	// dragged and matched bounds, in world units.
	GuidePadding = 10.0
)

// CSS cursor names reported through Host.SetCursor.
const (
	CursorDefault  = "default"
	CursorMove     = "move"
	CursorGrab     = "grab"
	CursorGrabbing = "grabbing"
)
