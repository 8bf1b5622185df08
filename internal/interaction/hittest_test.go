package interaction

import (
	"reflect"
	"testing"

	"github.com/inkboard/inkboard/backend-go/internal/document"
	"github.com/inkboard/inkboard/backend-go/internal/geom"
)

func makeElement(id string, x, y, w, h float64) document.Element {
	return document.Element{
		ID:       id,
		Type:     document.ElementTypeRect,
		Position: geom.Point{X: x, Y: y},
		Size:     geom.Size{Width: w, Height: h},
		Visible:  true,
	}
}

func TestHitTestTopmostFirst(t *testing.T) {
	elements := map[string]document.Element{
		"el_a": makeElement("el_a", 0, 0, 100, 100),
		"el_b": makeElement("el_b", 50, 50, 100, 100),
	}
	order := []string{"el_a", "el_b"}

	// In the overlap region the later id in z-order wins.
	hit := HitTest(75, 75, elements, order, nil, 1)
	if hit.Kind != HitElement || hit.ElementID != "el_b" {
		t.Fatalf("HitTest(75,75) = %+v, want element el_b", hit)
	}

	// Outside el_b, el_a is still reachable.
	hit = HitTest(10, 10, elements, order, nil, 1)
	if hit.Kind != HitElement || hit.ElementID != "el_a" {
		t.Fatalf("HitTest(10,10) = %+v, want element el_a", hit)
	}

	hit = HitTest(500, 500, elements, order, nil, 1)
	if hit.Kind != HitEmpty {
		t.Fatalf("HitTest(500,500) = %+v, want empty", hit)
	}
}

func TestHitTestSkipsLockedAndInvisible(t *testing.T) {
	locked := makeElement("el_b", 50, 50, 100, 100)
	locked.Locked = true
	hidden := makeElement("el_c", 0, 0, 200, 200)
	hidden.Visible = false

	elements := map[string]document.Element{
		"el_a": makeElement("el_a", 0, 0, 100, 100),
		"el_b": locked,
		"el_c": hidden,
	}
	order := []string{"el_a", "el_b", "el_c"}

	hit := HitTest(75, 75, elements, order, nil, 1)
	if hit.Kind != HitElement || hit.ElementID != "el_a" {
		t.Fatalf("HitTest over locked/hidden = %+v, want element el_a", hit)
	}
}

func TestHitTestHandles(t *testing.T) {
	elements := map[string]document.Element{
		"el_a": makeElement("el_a", 0, 0, 100, 100),
	}
	order := []string{"el_a"}
	selected := []string{"el_a"}

	tests := []struct {
		name     string
		x, y     float64
		wantKind HitKind
		wantH    Handle
	}{
		{"top-left corner", 0, 0, HitHandle, HandleTopLeft},
		{"bottom-right corner", 100, 100, HitHandle, HandleBottomRight},
		{"top edge midpoint", 50, 0, HitHandle, HandleTop},
		{"left edge midpoint", 0, 50, HitHandle, HandleLeft},
		{"near corner within hit area", 3, -4, HitHandle, HandleTopLeft},
		{"rotation handle", 50, -20, HitRotation, ""},
		{"rotation handle offset", 53, -17, HitRotation, ""},
		{"element interior", 50, 50, HitElement, ""},
		{"beyond all handles", 50, -40, HitEmpty, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := HitTest(tt.x, tt.y, elements, order, selected, 1)
			if hit.Kind != tt.wantKind {
				t.Fatalf("HitTest(%v,%v) kind = %v, want %v", tt.x, tt.y, hit.Kind, tt.wantKind)
			}
			if tt.wantKind == HitHandle && hit.Handle != tt.wantH {
				t.Errorf("handle = %q, want %q", hit.Handle, tt.wantH)
			}
			if tt.wantKind == HitHandle || tt.wantKind == HitRotation {
				if hit.ElementID != "el_a" {
					t.Errorf("elementID = %q, want el_a", hit.ElementID)
				}
			}
		})
	}
}

func TestHitTestHandlesIgnoredWithoutSelection(t *testing.T) {
	elements := map[string]document.Element{
		"el_a": makeElement("el_a", 0, 0, 100, 100),
	}
	order := []string{"el_a"}

	// The same corner point resolves to the element body when nothing is
	// selected.
	hit := HitTest(0, 0, elements, order, nil, 1)
	if hit.Kind != HitElement {
		t.Fatalf("HitTest without selection = %+v, want element", hit)
	}
}

func TestHitTestHandleAreaScalesWithZoom(t *testing.T) {
	elements := map[string]document.Element{
		"el_a": makeElement("el_a", 0, 0, 100, 100),
	}
	order := []string{"el_a"}
	selected := []string{"el_a"}

	// At zoom 1 the handle hit area reaches 5 world units from the corner.
	hit := HitTest(4, 0, elements, order, selected, 1)
	if hit.Kind != HitHandle {
		t.Fatalf("zoom 1: HitTest(4,0) = %+v, want handle", hit)
	}

	// At zoom 4 it only reaches 1.25 world units, so the same point falls
	// through to the element body.
	hit = HitTest(4, 0, elements, order, selected, 4)
	if hit.Kind != HitElement {
		t.Fatalf("zoom 4: HitTest(4,0) = %+v, want element", hit)
	}
}

func TestHitTestMultiSelectionHandlesOnCombinedBounds(t *testing.T) {
	elements := map[string]document.Element{
		"el_a": makeElement("el_a", 0, 0, 50, 50),
		"el_b": makeElement("el_b", 100, 100, 50, 50),
	}
	order := []string{"el_a", "el_b"}
	selected := []string{"el_a", "el_b"}

	// Combined bounds run (0,0)-(150,150); the bottom-right handle sits at
	// (150,150) where no element body is.
	hit := HitTest(150, 150, elements, order, selected, 1)
	if hit.Kind != HitHandle || hit.Handle != HandleBottomRight {
		t.Fatalf("HitTest(150,150) = %+v, want bottom-right handle", hit)
	}
	if hit.ElementID != "el_a" {
		t.Errorf("elementID = %q, want first selected id", hit.ElementID)
	}
}

func TestElementsInRect(t *testing.T) {
	elements := map[string]document.Element{
		"el_a": makeElement("el_a", 0, 0, 100, 100),
		"el_b": makeElement("el_b", 200, 200, 50, 50),
	}
	order := []string{"el_a", "el_b"}

	tests := []struct {
		name string
		rect geom.Rect
		want []string
	}{
		{"covers first", geom.Rect{X: -10, Y: -10, Width: 50, Height: 50}, []string{"el_a"}},
		{"covers both", geom.Rect{X: 0, Y: 0, Width: 300, Height: 300}, []string{"el_a", "el_b"}},
		{"covers none", geom.Rect{X: 500, Y: 500, Width: 10, Height: 10}, nil},
		{"negative extents normalized", geom.Rect{X: 300, Y: 300, Width: -300, Height: -300}, []string{"el_a", "el_b"}},
		{"touching edge excluded", geom.Rect{X: 100, Y: 0, Width: 50, Height: 50}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ElementsInRect(tt.rect, elements, order)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ElementsInRect(%v) = %v, want %v", tt.rect, got, tt.want)
			}
		})
	}
}

func TestElementsInRectSkipsLockedAndInvisible(t *testing.T) {
	locked := makeElement("el_b", 0, 0, 50, 50)
	locked.Locked = true
	elements := map[string]document.Element{
		"el_a": makeElement("el_a", 0, 0, 50, 50),
		"el_b": locked,
	}

	got := ElementsInRect(geom.Rect{X: -10, Y: -10, Width: 100, Height: 100}, elements, []string{"el_a", "el_b"})
	if !reflect.DeepEqual(got, []string{"el_a"}) {
		t.Errorf("ElementsInRect = %v, want [el_a]", got)
	}
}

func TestSelectionBounds(t *testing.T) {
	elements := map[string]document.Element{
		"el_a": makeElement("el_a", 0, 0, 50, 50),
		"el_b": makeElement("el_b", 100, 100, 50, 50),
	}

	got := SelectionBounds(elements, []string{"el_a", "el_b"})
	want := geom.Rect{X: 0, Y: 0, Width: 150, Height: 150}
	if got != want {
		t.Errorf("SelectionBounds = %v, want %v", got, want)
	}

	// Stale ids are skipped; all-stale yields a zero rect.
	got = SelectionBounds(elements, []string{"el_a", "gone"})
	want = geom.Rect{X: 0, Y: 0, Width: 50, Height: 50}
	if got != want {
		t.Errorf("SelectionBounds with stale id = %v, want %v", got, want)
	}
	if got := SelectionBounds(elements, []string{"gone"}); got != (geom.Rect{}) {
		t.Errorf("SelectionBounds all stale = %v, want zero rect", got)
	}
}

func TestHandleCursor(t *testing.T) {
	tests := []struct {
		h    Handle
		want string
	}{
		{HandleTopLeft, "nwse-resize"},
		{HandleBottomRight, "nwse-resize"},
		{HandleTopRight, "nesw-resize"},
		{HandleBottomLeft, "nesw-resize"},
		{HandleTop, "ns-resize"},
		{HandleBottom, "ns-resize"},
		{HandleLeft, "ew-resize"},
		{HandleRight, "ew-resize"},
	}
	for _, tt := range tests {
		if got := tt.h.Cursor(); got != tt.want {
			t.Errorf("%s cursor = %q, want %q", tt.h, got, tt.want)
		}
	}
}
