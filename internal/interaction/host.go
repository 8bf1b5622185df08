package interaction

import (
	"github.com/inkboard/inkboard/backend-go/internal/document"
	"github.com/inkboard/inkboard/backend-go/internal/geom"
)

// Host is the dependency surface the interaction engine consumes. The
// engine never owns elements or the selection; it reads snapshots through
// the accessors and issues mutation commands back through the same
// interface. All methods must be cheap and synchronous.
type Host interface {
	// Read accessors.
	Elements() map[string]document.Element
	ElementIDs() []string
	SelectedIDs() []string
	CameraZoom() float64
	ScreenToWorld(sx, sy float64) geom.Point
	// ContainerRect returns the bounding rect of the canvas container in
	// client coordinates. ok is false when it is unavailable, in which
	// case the triggering event is a no-op.
	ContainerRect() (rect geom.Rect, ok bool)
	SnapEnabled() bool
	GridSize() float64

	// Store mutation commands. Each is a single logical edit, suitable
	// as one history step.
	SelectElement(id string)
	DeselectAll()
	SelectMultiple(ids []string)
	ToggleSelection(id string)
	MoveElements(positions map[string]geom.Point)
	ResizeElement(id string, size geom.Size, position geom.Point)
	RotateElement(id string, rotationDegrees float64)

	// Live display mutation. Bypasses the store (and therefore history)
	// for per-frame feedback during a gesture.
	MoveDisplayObject(id string, worldX, worldY float64)
	RotateDisplayObject(id string, radians float64)

	// Chrome.
	SetCursor(cursor string)
}

// Renderer draws selection chrome, the marquee rectangle, and alignment
// guides. It is purely a sink; it never calls back into the engine.
type Renderer interface {
	RenderSelection(selectedIDs []string, elements map[string]document.Element, zoom float64)
	RenderMarquee(x0, y0, x1, y1 float64)
	ClearMarquee()
	RenderGuides(guides []AlignmentGuide, zoom float64)
	Clear()
	Destroy()
}

// PointerEvent is a raw pointer event in client (screen) coordinates.
type PointerEvent struct {
	ClientX  float64 `json:"clientX"`
	ClientY  float64 `json:"clientY"`
	Button   int     `json:"button"` // 0 = primary
	ShiftKey bool    `json:"shiftKey"`
}
