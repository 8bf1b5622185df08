// Package editor holds the authoritative mutable state behind the
// interaction engine: the document, the selection, camera and snap
// settings, plus an operation log of committed edits.
package editor

import (
	"sync"

	"github.com/inkboard/inkboard/backend-go/internal/document"
	"github.com/inkboard/inkboard/backend-go/internal/geom"
	"github.com/inkboard/inkboard/backend-go/internal/typeid"
)

// State is the persistent store for one editing session. All store
// mutation commands filter stale element ids and append one Op to the log
// with an incrementing server sequence.
type State struct {
	mu        sync.RWMutex
	doc       *document.Document
	selection []string
	zoom      float64
	snap      bool
	serverSeq int64
	opLog     []Op
}

func NewState(doc *document.Document) *State {
	return &State{
		doc:  doc,
		zoom: 1.0,
		snap: true,
	}
}

// Document returns the current document. Callers must not mutate it.
func (s *State) Document() *document.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Elements returns a snapshot of the element map.
func (s *State) Elements() map[string]document.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]document.Element, len(s.doc.Elements))
	for id, el := range s.doc.Elements {
		out[id] = el
	}
	return out
}

// ElementIDs returns element ids in z-order, bottom-most first.
func (s *State) ElementIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.doc.Order...)
}

func (s *State) SelectedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.selection...)
}

func (s *State) CameraZoom() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.zoom
}

func (s *State) SetCameraZoom(zoom float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if zoom > 0 {
		s.zoom = zoom
	}
}

func (s *State) SnapEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *State) SetSnapEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = enabled
}

func (s *State) GridSize() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc.Canvas.GridSize > 0 {
		return s.doc.Canvas.GridSize
	}
	return 20
}

// ServerSeq returns the sequence number of the last applied op.
func (s *State) ServerSeq() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serverSeq
}

// OpLog returns a copy of the operation log.
func (s *State) OpLog() []Op {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Op(nil), s.opLog...)
}

// --- Selection commands ---

func (s *State) SelectElement(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doc.Elements[id]; !ok {
		return
	}
	s.selection = []string{id}
	s.recordSelectionLocked()
}

func (s *State) DeselectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.selection) == 0 {
		return
	}
	s.selection = nil
	s.recordSelectionLocked()
}

func (s *State) SelectMultiple(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := s.doc.Elements[id]; ok {
			next = append(next, id)
		}
	}
	s.selection = next
	s.recordSelectionLocked()
}

func (s *State) ToggleSelection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doc.Elements[id]; !ok {
		return
	}
	for i, sel := range s.selection {
		if sel == id {
			s.selection = append(s.selection[:i], s.selection[i+1:]...)
			s.recordSelectionLocked()
			return
		}
	}
	s.selection = append(s.selection, id)
	s.recordSelectionLocked()
}

// --- Element commands ---

// MoveElements writes final positions for the given ids, skipping any that
// no longer resolve (deleted mid-gesture).
func (s *State) MoveElements(positions map[string]geom.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := make(map[string]geom.Point, len(positions))
	for id, pos := range positions {
		el, ok := s.doc.Elements[id]
		if !ok {
			continue
		}
		el.Position = pos
		s.doc.Elements[id] = el
		applied[id] = pos
	}
	if len(applied) == 0 {
		return
	}

	s.recordLocked(Op{Type: OpMoveElements, Positions: applied})
}

func (s *State) ResizeElement(id string, size geom.Size, position geom.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.doc.Elements[id]
	if !ok {
		return
	}
	el.Size = size
	el.Position = position
	s.doc.Elements[id] = el

	s.recordLocked(Op{Type: OpResizeElement, ElementID: id, Size: &size, Position: &position})
}

func (s *State) RotateElement(id string, rotationDegrees float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.doc.Elements[id]
	if !ok {
		return
	}
	el.Rotation = rotationDegrees
	s.doc.Elements[id] = el

	s.recordLocked(Op{Type: OpRotateElement, ElementID: id, Rotation: &rotationDegrees})
}

// recordLocked appends an op to the log (caller must hold the lock).
func (s *State) recordLocked(op Op) {
	s.serverSeq++
	op.ID = typeid.NewOpID()
	op.Timestamp = ServerTimestamp()
	op.ServerSeq = s.serverSeq
	s.opLog = append(s.opLog, op)
	// Selection ops don't touch document content; only element edits
	// bump the document version.
	switch op.Type {
	case OpMoveElements, OpResizeElement, OpRotateElement:
		s.doc.Version++
	}
}

func (s *State) recordSelectionLocked() {
	s.recordLocked(Op{Type: OpSetSelection, Selection: append([]string(nil), s.selection...)})
}
