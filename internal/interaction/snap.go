package interaction

import (
	"math"

	"github.com/inkboard/inkboard/backend-go/internal/document"
	"github.com/inkboard/inkboard/backend-go/internal/geom"
)

// GuideAxis orients an alignment guide line.
type GuideAxis string

const (
	GuideVertical   GuideAxis = "vertical"
	GuideHorizontal GuideAxis = "horizontal"
)

// AlignmentGuide is a transient line showing that a dragged edge/center
// currently coincides with another element's edge/center. Guides are
// recomputed every drag frame and never persisted. Position is the guide's
// coordinate on its own axis; Start/End span the perpendicular axis.
type AlignmentGuide struct {
	Axis     GuideAxis `json:"axis"`
	Position float64   `json:"position"`
	Start    float64   `json:"start"`
	End      float64   `json:"end"`
}

// SnapResult is the positional correction for a drag frame: the delta to
// add to raw element positions, plus the guides to draw.
type SnapResult struct {
	DeltaX float64          `json:"deltaX"`
	DeltaY float64          `json:"deltaY"`
	Guides []AlignmentGuide `json:"guides"`
}

// SnapSource provides the read access the snap engine needs.
type SnapSource interface {
	Elements() map[string]document.Element
	ElementIDs() []string
	CameraZoom() float64
	SnapEnabled() bool
	GridSize() float64
}

// SnapEngine computes grid and alignment snapping for dragged elements.
// It is a pure function of its inputs and the injected read accessors:
// no I/O, no hidden state, safe to call every pointer-move frame and once
// more at commit with identical inputs for an identical result.
type SnapEngine struct {
	src SnapSource
}

func NewSnapEngine(src SnapSource) *SnapEngine {
	return &SnapEngine{src: src}
}

// snapCandidate tracks the best alignment match found so far on one axis.
type snapCandidate struct {
	found    bool
	diff     float64   // signed correction to apply
	position float64   // the matched target coordinate
	target   geom.Rect // bounds of the matched element (zero rect for canvas center)
}

func (c *snapCandidate) consider(diff, position float64, target geom.Rect, threshold float64) {
	if math.Abs(diff) > threshold {
		return
	}
	if !c.found || math.Abs(diff) < math.Abs(c.diff) {
		*c = snapCandidate{found: true, diff: diff, position: position, target: target}
	}
}

// ComputeSnap resolves the snap correction for the dragged elements at
// their raw (pre-snap) positions. The grid pass snaps the combined box's
// top-left to the nearest grid multiple (only when snapping is enabled);
// alignment detection then runs against the grid-adjusted box and, where
// it matches, its correction is added on top of the grid delta for that
// axis. Alignment overrides grid per axis; axes with no alignment match
// keep the grid delta alone.
func (s *SnapEngine) ComputeSnap(draggedIDs []string, rawPositions map[string]geom.Point) SnapResult {
	if len(draggedIDs) == 0 {
		return SnapResult{}
	}

	elements := s.src.Elements()

	// Combined bounding box of the dragged elements at raw positions.
	dragged := make(map[string]bool, len(draggedIDs))
	var box geom.Rect
	first := true
	for _, id := range draggedIDs {
		dragged[id] = true
		el, ok := elements[id]
		if !ok {
			continue
		}
		pos, ok := rawPositions[id]
		if !ok {
			pos = el.Position
		}
		b := geom.Rect{X: pos.X, Y: pos.Y, Width: el.Size.Width, Height: el.Size.Height}
		if first {
			box = b
			first = false
		} else {
			box = box.Union(b)
		}
	}
	if first {
		return SnapResult{}
	}

	var gridDX, gridDY float64
	if s.src.SnapEnabled() {
		if grid := s.src.GridSize(); grid > 0 {
			gridDX = math.Round(box.X/grid)*grid - box.X
			gridDY = math.Round(box.Y/grid)*grid - box.Y
		}
	}

	adjusted := box
	adjusted.X += gridDX
	adjusted.Y += gridDY

	threshold := geom.ZoomScaled(AlignmentSnapThreshold, s.src.CameraZoom())

	xRefs := [3]float64{adjusted.Left(), adjusted.Center().X, adjusted.Right()}
	yRefs := [3]float64{adjusted.Top(), adjusted.Center().Y, adjusted.Bottom()}

	var bestX, bestY snapCandidate
	matchTarget := func(target geom.Rect) {
		tx := [3]float64{target.Left(), target.Center().X, target.Right()}
		ty := [3]float64{target.Top(), target.Center().Y, target.Bottom()}
		for _, ref := range xRefs {
			for _, t := range tx {
				bestX.consider(t-ref, t, target, threshold)
			}
		}
		for _, ref := range yRefs {
			for _, t := range ty {
				bestY.consider(t-ref, t, target, threshold)
			}
		}
	}

	for _, id := range s.src.ElementIDs() {
		if dragged[id] {
			continue
		}
		el, ok := elements[id]
		if !ok || !el.Visible || el.Locked {
			continue
		}
		matchTarget(el.Bounds())
	}
	// Synthetic canvas-center target at the origin.
	matchTarget(geom.Rect{})

	result := SnapResult{DeltaX: gridDX, DeltaY: gridDY}
	snapped := adjusted
	if bestX.found {
		result.DeltaX = gridDX + bestX.diff
		snapped.X += bestX.diff
	}
	if bestY.found {
		result.DeltaY = gridDY + bestY.diff
		snapped.Y += bestY.diff
	}

	if bestX.found {
		start := math.Min(snapped.Top(), bestX.target.Top()) - GuidePadding
		end := math.Max(snapped.Bottom(), bestX.target.Bottom()) + GuidePadding
		result.Guides = append(result.Guides, AlignmentGuide{
			Axis:     GuideVertical,
			Position: bestX.position,
			Start:    start,
			End:      end,
		})
	}
	if bestY.found {
		start := math.Min(snapped.Left(), bestY.target.Left()) - GuidePadding
		end := math.Max(snapped.Right(), bestY.target.Right()) + GuidePadding
		result.Guides = append(result.Guides, AlignmentGuide{
			Axis:     GuideHorizontal,
			Position: bestY.position,
			Start:    start,
			End:      end,
		})
	}

	return result
}
