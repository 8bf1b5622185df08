// Package interaction interprets raw pointer events into editor gestures:
// click, drag, marquee select, resize, and rotate. It owns nothing but the
// current gesture state; elements, the selection, and the camera belong to
// the injected Host, and all drawing goes through the injected Renderer.
package interaction

import (
	"math"
	"sort"
	"strings"

	"github.com/inkboard/inkboard/backend-go/internal/document"
	"github.com/inkboard/inkboard/backend-go/internal/geom"
)

// Manager is the pointer-interaction state machine. It consumes
// pointer-down/move/up events, resolves targets via hit testing, and
// computes the geometry each gesture produces. Single-threaded by design:
// every handler runs to completion within the calling event-loop turn.
//
// During a continuous gesture the manager mutates only the host's live
// display layer; the persistent store is written exactly once, at
// pointer-up, so one user gesture yields one history entry. Resizing is
// the exception and commits on every move.
type Manager struct {
	host     Host
	renderer Renderer
	snap     *SnapEngine
	state    State
}

func NewManager(host Host, renderer Renderer) *Manager {
	return &Manager{
		host:     host,
		renderer: renderer,
		snap:     NewSnapEngine(host),
		state:    Idle{},
	}
}

// InteractionState returns the current gesture state, for diagnostics and
// tests.
func (m *Manager) InteractionState() State {
	return m.state
}

// SnapEngine exposes the manager's snap engine so hosts can query snapping
// outside a gesture (e.g. for keyboard nudges).
func (m *Manager) SnapEngine() *SnapEngine {
	return m.snap
}

// RefreshSelection forces a selection chrome re-render from current store
// state. Hosts call it after external mutations such as keyboard shortcuts.
func (m *Manager) RefreshSelection() {
	m.renderSelection()
}

// Destroy resets the gesture state and releases the renderer.
func (m *Manager) Destroy() {
	m.state = Idle{}
	m.renderer.Destroy()
}

// OnPointerDown begins a potential gesture. It reports whether the event
// was consumed: non-primary buttons and events without a container rect
// are rejected without touching any state.
func (m *Manager) OnPointerDown(ev PointerEvent) bool {
	if ev.Button != 0 {
		return false
	}
	screen, world, ok := m.eventPoint(ev)
	if !ok {
		return false
	}

	hit := HitTest(world.X, world.Y, m.host.Elements(), m.host.ElementIDs(), m.host.SelectedIDs(), m.host.CameraZoom())

	wasSelected := false
	switch hit.Kind {
	case HitElement:
		wasSelected = containsID(m.host.SelectedIDs(), hit.ElementID)
		if !wasSelected {
			// Immediate selection so a subsequent drag already operates
			// on the right context. Already-selected elements defer to
			// pointer-up for click-vs-drag disambiguation.
			if ev.ShiftKey {
				m.host.ToggleSelection(hit.ElementID)
			} else {
				m.host.SelectElement(hit.ElementID)
			}
			m.renderSelection()
		}
	case HitHandle, HitRotation:
		// Handles never change the selection.
	case HitEmpty:
		// Deferred: deselect-all or marquee, decided by whether a drag
		// follows.
	}

	m.state = Clicking{
		Target:       hit,
		PointerStart: screen,
		StartWorld:   world,
		ShiftKey:     ev.ShiftKey,
		WasSelected:  wasSelected,
	}
	return true
}

// OnPointerMove advances the active gesture, or updates the hover cursor
// when idle. A clicking state transitions into exactly one continuous
// gesture once the pointer travels DragThreshold screen pixels.
func (m *Manager) OnPointerMove(ev PointerEvent) {
	screen, world, ok := m.eventPoint(ev)
	if !ok {
		return
	}

	if st, ok := m.state.(Clicking); ok {
		if screen.Distance(st.PointerStart) < DragThreshold {
			return
		}
		m.beginGesture(st, world)
	}

	switch st := m.state.(type) {
	case Idle:
		m.updateHoverCursor(world)
	case Dragging:
		m.dragMove(st, world)
	case Resizing:
		m.resizeMove(st, world)
	case Rotating:
		m.rotateMove(st, world)
	case Selecting:
		st.CurrentWorld = world
		m.state = st
		m.marqueeMove(st)
	}
}

// OnPointerUp finishes the gesture: deferred click semantics for clicking,
// a single store commit for drag and rotate, marquee teardown for
// selecting. The machine always returns to idle.
func (m *Manager) OnPointerUp(ev PointerEvent) {
	_, world, ok := m.eventPoint(ev)
	if !ok {
		return
	}

	switch st := m.state.(type) {
	case Clicking:
		m.finishClick(st)
	case Dragging:
		m.commitDrag(st, world)
	case Resizing:
		// Every resize move already committed; nothing left to write.
	case Rotating:
		m.commitRotate(st, world)
	case Selecting:
		// The live-updated selection stands; only the rectangle goes away.
		m.renderer.ClearMarquee()
	}

	m.state = Idle{}
	m.host.SetCursor(CursorDefault)
}

// --- Gesture transitions ---

// beginGesture turns a clicking state into the continuous gesture implied
// by its original hit target. A handle hit with anything but a single
// selected element stays in clicking (resize applies to exactly one
// element).
func (m *Manager) beginGesture(st Clicking, world geom.Point) {
	switch st.Target.Kind {
	case HitElement:
		selected := m.host.SelectedIDs()
		elements := m.host.Elements()
		starts := make(map[string]geom.Point, len(selected))
		for _, id := range selected {
			if el, ok := elements[id]; ok {
				starts[id] = el.Position
			}
		}
		m.state = Dragging{StartPositions: starts, PointerStartWorld: st.StartWorld}
		m.host.SetCursor(CursorMove)

	case HitHandle:
		selected := m.host.SelectedIDs()
		if len(selected) != 1 {
			return
		}
		bounds := SelectionBounds(m.host.Elements(), selected)
		m.state = Resizing{
			Handle:            st.Target.Handle,
			ElementID:         selected[0],
			StartBounds:       bounds,
			PointerStartWorld: st.StartWorld,
			Proportional:      st.ShiftKey,
		}
		m.host.SetCursor(st.Target.Handle.Cursor())

	case HitRotation:
		el, ok := m.host.Elements()[st.Target.ElementID]
		if !ok {
			return
		}
		bounds := SelectionBounds(m.host.Elements(), m.host.SelectedIDs())
		pivot := bounds.Center()
		m.state = Rotating{
			ElementID:     st.Target.ElementID,
			PivotWorld:    pivot,
			StartAngle:    math.Atan2(st.StartWorld.Y-pivot.Y, st.StartWorld.X-pivot.X),
			StartRotation: el.Rotation,
		}
		m.host.SetCursor(CursorGrabbing)

	case HitEmpty:
		var base []string
		if st.ShiftKey {
			base = append([]string(nil), m.host.SelectedIDs()...)
		}
		m.state = Selecting{
			StartWorld:    st.StartWorld,
			CurrentWorld:  world,
			ShiftKey:      st.ShiftKey,
			BaseSelection: base,
		}
	}
}

// finishClick applies the selection semantics deferred at pointer-down:
// click-to-narrow on a multi-selection, shift-toggle-off, and
// deselect-all on empty canvas (unless shift is held).
func (m *Manager) finishClick(st Clicking) {
	switch st.Target.Kind {
	case HitElement:
		if st.ShiftKey {
			if st.WasSelected {
				m.host.ToggleSelection(st.Target.ElementID)
				m.renderSelection()
			}
		} else if st.WasSelected && len(m.host.SelectedIDs()) > 1 {
			m.host.SelectElement(st.Target.ElementID)
			m.renderSelection()
		}
	case HitEmpty:
		if !st.ShiftKey {
			m.host.DeselectAll()
			m.renderSelection()
		}
	}
}

// --- Drag ---

func (m *Manager) dragMove(st Dragging, world geom.Point) {
	raw := dragRawPositions(st, world)
	res := m.snap.ComputeSnap(sortedIDs(st.StartPositions), raw)

	elements := m.host.Elements()
	adjusted := make(map[string]document.Element, len(elements))
	for id, el := range elements {
		adjusted[id] = el
	}

	for id, pos := range raw {
		x := pos.X + res.DeltaX
		y := pos.Y + res.DeltaY
		m.host.MoveDisplayObject(id, x, y)
		if el, ok := adjusted[id]; ok {
			el.Position = geom.Point{X: x, Y: y}
			adjusted[id] = el
		}
	}

	// Selection chrome and guides follow the adjusted positions, not the
	// stale store positions.
	zoom := m.host.CameraZoom()
	m.renderer.RenderSelection(m.host.SelectedIDs(), adjusted, zoom)
	m.renderer.RenderGuides(res.Guides, zoom)
}

// commitDrag repeats the exact move-frame computation once more, then
// writes final positions to the store for elements that still exist —
// an element deleted mid-gesture (e.g. via a keyboard shortcut) is
// silently dropped.
func (m *Manager) commitDrag(st Dragging, world geom.Point) {
	raw := dragRawPositions(st, world)
	res := m.snap.ComputeSnap(sortedIDs(st.StartPositions), raw)

	elements := m.host.Elements()
	final := make(map[string]geom.Point, len(raw))
	for id, pos := range raw {
		if _, ok := elements[id]; !ok {
			continue
		}
		final[id] = geom.Point{X: pos.X + res.DeltaX, Y: pos.Y + res.DeltaY}
	}
	if len(final) > 0 {
		m.host.MoveElements(final)
	}

	zoom := m.host.CameraZoom()
	m.renderer.RenderGuides(nil, zoom)
	m.renderer.RenderSelection(m.host.SelectedIDs(), m.host.Elements(), zoom)
}

func dragRawPositions(st Dragging, world geom.Point) map[string]geom.Point {
	dx := world.X - st.PointerStartWorld.X
	dy := world.Y - st.PointerStartWorld.Y
	raw := make(map[string]geom.Point, len(st.StartPositions))
	for id, start := range st.StartPositions {
		raw[id] = geom.Point{X: start.X + dx, Y: start.Y + dy}
	}
	return raw
}

// --- Resize ---

// resizeMove commits on every move: resize has no preview/final split, so
// visual feedback and persisted state stay identical frame to frame.
func (m *Manager) resizeMove(st Resizing, world geom.Point) {
	if _, ok := m.host.Elements()[st.ElementID]; !ok {
		return
	}
	b := resizeBounds(st.Handle, st.StartBounds, st.PointerStartWorld, world, st.Proportional)
	m.host.ResizeElement(st.ElementID,
		geom.Size{Width: b.Width, Height: b.Height},
		geom.Point{X: b.X, Y: b.Y},
	)
	m.renderSelection()
}

// resizeBounds derives new bounds from a handle drag. The anchor edge
// (opposite the dragged handle) never moves; minimum-size clamping adjusts
// position only on the dragged side.
func resizeBounds(handle Handle, start geom.Rect, startPointer, current geom.Point, proportional bool) geom.Rect {
	dx := current.X - startPointer.X
	dy := current.Y - startPointer.Y

	name := string(handle)
	movesLeft := strings.Contains(name, "left")
	movesRight := strings.Contains(name, "right")
	movesTop := strings.HasPrefix(name, "top")
	movesBottom := strings.HasPrefix(name, "bottom")

	r := start
	if movesLeft {
		r.X += dx
		r.Width -= dx
	}
	if movesRight {
		r.Width += dx
	}
	if movesTop {
		r.Y += dy
		r.Height -= dy
	}
	if movesBottom {
		r.Height += dy
	}

	// Corner handles with the proportional modifier keep the start aspect
	// ratio, width-driven.
	corner := (movesLeft || movesRight) && (movesTop || movesBottom)
	if proportional && corner && start.Width > 0 && start.Height > 0 {
		h := r.Width * start.Height / start.Width
		if movesTop {
			r.Y = start.Y + start.Height - h
		}
		r.Height = h
	}

	if r.Width < MinElementSize {
		if movesLeft {
			r.X = start.X + start.Width - MinElementSize
		}
		r.Width = MinElementSize
	}
	if r.Height < MinElementSize {
		if movesTop {
			r.Y = start.Y + start.Height - MinElementSize
		}
		r.Height = MinElementSize
	}

	return r
}

// --- Rotate ---

func (m *Manager) rotateMove(st Rotating, world geom.Point) {
	deg := rotationDegrees(st, world)
	m.host.RotateDisplayObject(st.ElementID, deg*math.Pi/180)
}

// commitRotate re-derives the same formula and writes the final rotation,
// unless the element vanished mid-gesture.
func (m *Manager) commitRotate(st Rotating, world geom.Point) {
	if _, ok := m.host.Elements()[st.ElementID]; !ok {
		return
	}
	m.host.RotateElement(st.ElementID, rotationDegrees(st, world))
	m.renderSelection()
}

func rotationDegrees(st Rotating, world geom.Point) float64 {
	current := math.Atan2(world.Y-st.PivotWorld.Y, world.X-st.PivotWorld.X)
	return st.StartRotation + (current-st.StartAngle)*180/math.Pi
}

// --- Marquee ---

// marqueeMove redraws the rectangle and recomputes the selection from
// scratch against the fixed start point, so the marquee never sticks to
// ids it has moved away from.
func (m *Manager) marqueeMove(st Selecting) {
	m.renderer.RenderMarquee(st.StartWorld.X, st.StartWorld.Y, st.CurrentWorld.X, st.CurrentWorld.Y)

	rect := geom.FromPoints(st.StartWorld, st.CurrentWorld)
	ids := ElementsInRect(rect, m.host.Elements(), m.host.ElementIDs())
	if st.ShiftKey {
		ids = unionIDs(st.BaseSelection, ids)
	}
	m.host.SelectMultiple(ids)
	m.renderer.RenderSelection(ids, m.host.Elements(), m.host.CameraZoom())
}

// --- Helpers ---

// eventPoint converts a pointer event into container-local screen and
// world coordinates. ok is false when the container rect is unavailable,
// making the triggering handler a silent no-op.
func (m *Manager) eventPoint(ev PointerEvent) (screen, world geom.Point, ok bool) {
	rect, ok := m.host.ContainerRect()
	if !ok {
		return geom.Point{}, geom.Point{}, false
	}
	screen = geom.Point{X: ev.ClientX - rect.X, Y: ev.ClientY - rect.Y}
	world = m.host.ScreenToWorld(screen.X, screen.Y)
	return screen, world, true
}

func (m *Manager) updateHoverCursor(world geom.Point) {
	hit := HitTest(world.X, world.Y, m.host.Elements(), m.host.ElementIDs(), m.host.SelectedIDs(), m.host.CameraZoom())
	switch hit.Kind {
	case HitElement:
		m.host.SetCursor(CursorMove)
	case HitHandle:
		m.host.SetCursor(hit.Handle.Cursor())
	case HitRotation:
		m.host.SetCursor(CursorGrab)
	default:
		m.host.SetCursor(CursorDefault)
	}
}

func (m *Manager) renderSelection() {
	m.renderer.RenderSelection(m.host.SelectedIDs(), m.host.Elements(), m.host.CameraZoom())
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func sortedIDs(positions map[string]geom.Point) []string {
	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func unionIDs(base, ids []string) []string {
	seen := make(map[string]bool, len(base)+len(ids))
	out := make([]string, 0, len(base)+len(ids))
	for _, id := range base {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
