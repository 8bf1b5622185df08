package editor

import (
	"reflect"
	"testing"

	"github.com/inkboard/inkboard/backend-go/internal/document"
	"github.com/inkboard/inkboard/backend-go/internal/geom"
)

func newTestState() *State {
	doc := document.NewEmptyDocument("doc_test", "Test")
	doc.Elements["el_a"] = document.Element{
		ID:       "el_a",
		Type:     document.ElementTypeRect,
		Position: geom.Point{X: 10, Y: 10},
		Size:     geom.Size{Width: 100, Height: 100},
		Visible:  true,
	}
	doc.Elements["el_b"] = document.Element{
		ID:       "el_b",
		Type:     document.ElementTypeEllipse,
		Position: geom.Point{X: 200, Y: 200},
		Size:     geom.Size{Width: 50, Height: 50},
		Visible:  true,
	}
	doc.Order = []string{"el_a", "el_b"}
	return NewState(doc)
}

func TestSelectionCommands(t *testing.T) {
	s := newTestState()

	s.SelectElement("el_a")
	if !reflect.DeepEqual(s.SelectedIDs(), []string{"el_a"}) {
		t.Fatalf("selection = %v, want [el_a]", s.SelectedIDs())
	}

	// Unknown ids are silently ignored and leave the selection alone.
	s.SelectElement("el_gone")
	if !reflect.DeepEqual(s.SelectedIDs(), []string{"el_a"}) {
		t.Fatalf("selection after unknown id = %v, want [el_a]", s.SelectedIDs())
	}

	s.ToggleSelection("el_b")
	if !reflect.DeepEqual(s.SelectedIDs(), []string{"el_a", "el_b"}) {
		t.Fatalf("selection = %v, want [el_a el_b]", s.SelectedIDs())
	}
	s.ToggleSelection("el_a")
	if !reflect.DeepEqual(s.SelectedIDs(), []string{"el_b"}) {
		t.Fatalf("selection = %v, want [el_b]", s.SelectedIDs())
	}

	s.DeselectAll()
	if len(s.SelectedIDs()) != 0 {
		t.Fatalf("selection = %v, want empty", s.SelectedIDs())
	}

	// SelectMultiple filters ids that no longer resolve.
	s.SelectMultiple([]string{"el_b", "el_gone", "el_a"})
	if !reflect.DeepEqual(s.SelectedIDs(), []string{"el_b", "el_a"}) {
		t.Fatalf("selection = %v, want [el_b el_a]", s.SelectedIDs())
	}
}

func TestMoveElementsFiltersStaleIDs(t *testing.T) {
	s := newTestState()

	s.MoveElements(map[string]geom.Point{
		"el_a":    {X: 50, Y: 60},
		"el_gone": {X: 1, Y: 1},
	})

	if got := s.Elements()["el_a"].Position; got != (geom.Point{X: 50, Y: 60}) {
		t.Errorf("el_a position = %v, want (50,60)", got)
	}

	log := s.OpLog()
	if len(log) != 1 {
		t.Fatalf("op log length = %d, want 1", len(log))
	}
	if len(log[0].Positions) != 1 {
		t.Errorf("op positions = %v, want only el_a", log[0].Positions)
	}

	// An all-stale move writes nothing at all.
	s.MoveElements(map[string]geom.Point{"el_gone": {X: 1, Y: 1}})
	if len(s.OpLog()) != 1 {
		t.Errorf("op log grew on all-stale move")
	}
}

func TestOpLogSequencing(t *testing.T) {
	s := newTestState()

	s.SelectElement("el_a")
	s.MoveElements(map[string]geom.Point{"el_a": {X: 20, Y: 20}})
	s.RotateElement("el_a", 45)

	log := s.OpLog()
	if len(log) != 3 {
		t.Fatalf("op log length = %d, want 3", len(log))
	}
	for i, op := range log {
		if op.ServerSeq != int64(i+1) {
			t.Errorf("op %d serverSeq = %d, want %d", i, op.ServerSeq, i+1)
		}
		if op.ID == "" || op.Timestamp == 0 {
			t.Errorf("op %d missing id/timestamp: %+v", i, op)
		}
	}
	if s.ServerSeq() != 3 {
		t.Errorf("serverSeq = %d, want 3", s.ServerSeq())
	}
}

func TestVersionBumpsOnlyForElementEdits(t *testing.T) {
	s := newTestState()
	startVersion := s.Document().Version

	s.SelectElement("el_a")
	s.DeselectAll()
	if s.Document().Version != startVersion {
		t.Fatalf("selection ops bumped version to %d", s.Document().Version)
	}

	s.MoveElements(map[string]geom.Point{"el_a": {X: 1, Y: 1}})
	if s.Document().Version != startVersion+1 {
		t.Errorf("version = %d, want %d", s.Document().Version, startVersion+1)
	}

	s.ResizeElement("el_a", geom.Size{Width: 40, Height: 40}, geom.Point{X: 0, Y: 0})
	s.RotateElement("el_a", 90)
	if s.Document().Version != startVersion+3 {
		t.Errorf("version = %d, want %d", s.Document().Version, startVersion+3)
	}
}

func TestResizeAndRotateWriteThrough(t *testing.T) {
	s := newTestState()

	s.ResizeElement("el_a", geom.Size{Width: 70, Height: 80}, geom.Point{X: 5, Y: 6})
	el := s.Elements()["el_a"]
	if el.Size != (geom.Size{Width: 70, Height: 80}) || el.Position != (geom.Point{X: 5, Y: 6}) {
		t.Errorf("resized element = %+v", el)
	}

	s.RotateElement("el_b", 30)
	if got := s.Elements()["el_b"].Rotation; got != 30 {
		t.Errorf("rotation = %v, want 30", got)
	}

	// Stale ids are no-ops.
	s.ResizeElement("el_gone", geom.Size{Width: 1, Height: 1}, geom.Point{})
	s.RotateElement("el_gone", 10)
	if len(s.OpLog()) != 2 {
		t.Errorf("op log = %d entries, want 2", len(s.OpLog()))
	}
}

func TestGridSizeFallback(t *testing.T) {
	doc := document.NewEmptyDocument("doc_test", "Test")
	doc.Canvas.GridSize = 0
	s := NewState(doc)
	if got := s.GridSize(); got != 20 {
		t.Errorf("GridSize = %v, want fallback 20", got)
	}

	doc2 := document.NewEmptyDocument("doc_test2", "Test")
	doc2.Canvas.GridSize = 32
	if got := NewState(doc2).GridSize(); got != 32 {
		t.Errorf("GridSize = %v, want 32", got)
	}
}

func TestElementsReturnsCopy(t *testing.T) {
	s := newTestState()
	snapshot := s.Elements()
	el := snapshot["el_a"]
	el.Position = geom.Point{X: 999, Y: 999}
	snapshot["el_a"] = el

	if got := s.Elements()["el_a"].Position; got == (geom.Point{X: 999, Y: 999}) {
		t.Error("mutating the snapshot leaked into state")
	}
}
