package interaction

import (
	"math"

	"github.com/inkboard/inkboard/backend-go/internal/document"
	"github.com/inkboard/inkboard/backend-go/internal/geom"
)

// Handle names a resize hotspot on the selection's bounding box. The name
// encodes which edges the handle moves: anything containing "left" or
// "right" moves that vertical edge, anything starting with "top" or
// "bottom" moves that horizontal edge.
type Handle string

const (
	HandleTopLeft     Handle = "top-left"
	HandleTop         Handle = "top"
	HandleTopRight    Handle = "top-right"
	HandleRight       Handle = "right"
	HandleBottomRight Handle = "bottom-right"
	HandleBottom      Handle = "bottom"
	HandleBottomLeft  Handle = "bottom-left"
	HandleLeft        Handle = "left"
)

// Cursor returns the CSS resize cursor for this handle.
func (h Handle) Cursor() string {
	switch h {
	case HandleTopLeft, HandleBottomRight:
		return "nwse-resize"
	case HandleTopRight, HandleBottomLeft:
		return "nesw-resize"
	case HandleTop, HandleBottom:
		return "ns-resize"
	case HandleLeft, HandleRight:
		return "ew-resize"
	}
	return CursorDefault
}

// handleOrder fixes the test order for resize handles. Corners come first
// so they win ties against edge midpoints on small selections.
var handleOrder = [8]Handle{
	HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight,
	HandleTop, HandleRight, HandleBottom, HandleLeft,
}

// HitKind discriminates HitResult variants.
type HitKind int

const (
	HitEmpty HitKind = iota
	HitElement
	HitHandle
	HitRotation
)

// HitResult identifies what a pointer position landed on. ElementID is set
// for element, handle, and rotation hits; Handle only for handle hits.
type HitResult struct {
	Kind      HitKind
	ElementID string
	Handle    Handle
}

// HitTest resolves what sits under a world-space point, in priority order:
// rotation handle, then resize handles (only when the selection is
// non-empty — handles sit on top of element geometry and win ties), then
// elements in reverse z-order (topmost first), then empty canvas.
// Missing, locked, and invisible elements are silently skipped.
func HitTest(worldX, worldY float64, elements map[string]document.Element, elementIDs, selectedIDs []string, zoom float64) HitResult {
	if len(selectedIDs) > 0 {
		bounds := SelectionBounds(elements, selectedIDs)
		if !bounds.IsEmpty() {
			half := geom.ZoomScaled(HandleHitArea, zoom) / 2

			rx, ry := rotationHandlePosition(bounds, zoom)
			if math.Abs(worldX-rx) <= half && math.Abs(worldY-ry) <= half {
				return HitResult{Kind: HitRotation, ElementID: selectedIDs[0]}
			}

			for _, h := range handleOrder {
				p := handlePosition(h, bounds)
				if math.Abs(worldX-p.X) <= half && math.Abs(worldY-p.Y) <= half {
					return HitResult{Kind: HitHandle, ElementID: selectedIDs[0], Handle: h}
				}
			}
		}
	}

	for i := len(elementIDs) - 1; i >= 0; i-- {
		el, ok := elements[elementIDs[i]]
		if !ok || !el.Visible || el.Locked {
			continue
		}
		if el.Bounds().Contains(worldX, worldY) {
			return HitResult{Kind: HitElement, ElementID: el.ID}
		}
	}

	return HitResult{Kind: HitEmpty}
}

// ElementsInRect returns the ids of visible, unlocked elements whose bounds
// overlap the rect. The rect is normalized first, so a marquee dragged
// up/left behaves the same as one dragged down/right. Touching edges do
// not count; only true area overlap does.
func ElementsInRect(rect geom.Rect, elements map[string]document.Element, elementIDs []string) []string {
	rect = rect.Normalized()

	var ids []string
	for _, id := range elementIDs {
		el, ok := elements[id]
		if !ok || !el.Visible || el.Locked {
			continue
		}
		if rect.Intersects(el.Bounds()) {
			ids = append(ids, id)
		}
	}
	return ids
}

// SelectionBounds returns the combined bounding box of the given element
// ids. Ids that no longer resolve are skipped.
func SelectionBounds(elements map[string]document.Element, ids []string) geom.Rect {
	var result geom.Rect
	first := true

	for _, id := range ids {
		el, ok := elements[id]
		if !ok {
			continue
		}
		if first {
			result = el.Bounds()
			first = false
		} else {
			result = result.Union(el.Bounds())
		}
	}

	if first {
		return geom.Rect{}
	}
	return result
}

// handlePosition returns a handle's center on the given bounds: corners
// and edge midpoints.
func handlePosition(h Handle, b geom.Rect) geom.Point {
	cx := b.X + b.Width/2
	cy := b.Y + b.Height/2

	switch h {
	case HandleTopLeft:
		return geom.Point{X: b.X, Y: b.Y}
	case HandleTop:
		return geom.Point{X: cx, Y: b.Y}
	case HandleTopRight:
		return geom.Point{X: b.X + b.Width, Y: b.Y}
	case HandleRight:
		return geom.Point{X: b.X + b.Width, Y: cy}
	case HandleBottomRight:
		return geom.Point{X: b.X + b.Width, Y: b.Y + b.Height}
	case HandleBottom:
		return geom.Point{X: cx, Y: b.Y + b.Height}
	case HandleBottomLeft:
		return geom.Point{X: b.X, Y: b.Y + b.Height}
	case HandleLeft:
		return geom.Point{X: b.X, Y: cy}
	}
	return geom.Point{}
}

// rotationHandlePosition returns the rotation handle's center: above the
// selection's top-center, offset by a zoom-invariant screen distance.
func rotationHandlePosition(b geom.Rect, zoom float64) (float64, float64) {
	return b.X + b.Width/2, b.Y - geom.ZoomScaled(RotationHandleDistance, zoom)
}
