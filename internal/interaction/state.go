package interaction

import "github.com/inkboard/inkboard/backend-go/internal/geom"

// State is the current interaction gesture. Exactly one variant is active
// at a time; the manager holds it in a single field and replaces the whole
// value on every transition, never mutating across variant boundaries.
type State interface {
	// Name identifies the variant for diagnostics and tests.
	Name() string
}

// Idle means no pointer interaction is in progress.
type Idle struct{}

// Clicking is the phase between pointer-down and either pointer-up (a
// click) or crossing the drag threshold (a continuous gesture).
type Clicking struct {
	Target HitResult
	// PointerStart is the pointer-down position in container-local screen
	// coordinates; the drag threshold is measured against it.
	PointerStart geom.Point
	// StartWorld is the same position in world coordinates.
	StartWorld geom.Point
	ShiftKey   bool
	// WasSelected records whether the target element was already selected
	// at pointer-down, for deferred click-to-narrow / toggle handling.
	WasSelected bool
}

// Dragging moves the selected elements.
type Dragging struct {
	// StartPositions holds each dragged element's position at the moment
	// the gesture started.
	StartPositions    map[string]geom.Point
	PointerStartWorld geom.Point
}

// Selecting is a marquee (rubber-band) selection.
type Selecting struct {
	StartWorld   geom.Point
	CurrentWorld geom.Point
	ShiftKey     bool
	// BaseSelection is the selection at gesture start; it is preserved and
	// unioned with the marquee set while ShiftKey is held.
	BaseSelection []string
}

// Resizing drags one resize handle of a single selected element.
type Resizing struct {
	Handle            Handle
	ElementID         string
	StartBounds       geom.Rect
	PointerStartWorld geom.Point
	// Proportional constrains corner resizes to the start aspect ratio.
	Proportional bool
}

// Rotating spins a single element around the selection's center.
type Rotating struct {
	ElementID  string
	PivotWorld geom.Point
	// StartAngle is the pointer's angle from the pivot at gesture start,
	// in radians.
	StartAngle float64
	// StartRotation is the element's rotation at gesture start, in degrees.
	StartRotation float64
}

func (Idle) Name() string      { return "idle" }
func (Clicking) Name() string  { return "clicking" }
func (Dragging) Name() string  { return "dragging" }
func (Selecting) Name() string { return "selecting" }
func (Resizing) Name() string  { return "resizing" }
func (Rotating) Name() string  { return "rotating" }
