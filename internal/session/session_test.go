package session

import (
	"encoding/json"
	"testing"

	"github.com/inkboard/inkboard/backend-go/internal/document"
	"github.com/inkboard/inkboard/backend-go/internal/editor"
	"github.com/inkboard/inkboard/backend-go/internal/geom"
	"github.com/inkboard/inkboard/backend-go/internal/interaction"
)

// newTestSession builds a session without a connection; handleMessage and
// the engine callbacks only touch the send buffer.
func newTestSession() *Session {
	doc := document.NewEmptyDocument("doc_test", "Test")
	doc.Elements["el_a"] = document.Element{
		ID:       "el_a",
		Type:     document.ElementTypeRect,
		Position: geom.Point{X: 100, Y: 100},
		Size:     geom.Size{Width: 50, Height: 50},
		Visible:  true,
	}
	doc.Order = []string{"el_a"}
	return New("sess_test", nil, editor.NewState(doc))
}

func (s *Session) dispatch(t *testing.T, msgType string, payload interface{}) {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	s.handleMessage(&Message{Type: msgType, Payload: raw})
}

func drain(t *testing.T, s *Session) []Message {
	t.Helper()
	var out []Message
	for {
		select {
		case data := <-s.send:
			var msg Message
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("unmarshal outbound: %v", err)
			}
			out = append(out, msg)
		default:
			return out
		}
	}
}

func messageTypes(msgs []Message) []string {
	types := make([]string, len(msgs))
	for i, m := range msgs {
		types[i] = m.Type
	}
	return types
}

func hasType(msgs []Message, msgType string) bool {
	for _, m := range msgs {
		if m.Type == msgType {
			return true
		}
	}
	return false
}

func TestCameraUpdateEnablesPointerEvents(t *testing.T) {
	s := newTestSession()

	// Without a container rect pointer events are rejected.
	s.dispatch(t, TypePointerDown, PointerPayload{Event: pointerAt(110, 110)})
	msgs := drain(t, s)
	if len(msgs) != 1 || msgs[0].Type != TypePointerConsumed {
		t.Fatalf("messages = %v, want single pointer.consumed", messageTypes(msgs))
	}
	var consumed PointerConsumedPayload
	if err := json.Unmarshal(msgs[0].Payload, &consumed); err != nil {
		t.Fatal(err)
	}
	if consumed.Consumed {
		t.Fatal("pointer consumed without container rect")
	}

	s.dispatch(t, TypeCameraUpdate, CameraPayload{
		Zoom:          1,
		ContainerRect: &geom.Rect{X: 0, Y: 0, Width: 800, Height: 600},
	})
	s.dispatch(t, TypePointerDown, PointerPayload{Event: pointerAt(110, 110)})
	msgs = drain(t, s)
	var got PointerConsumedPayload
	for _, m := range msgs {
		if m.Type == TypePointerConsumed {
			if err := json.Unmarshal(m.Payload, &got); err != nil {
				t.Fatal(err)
			}
		}
	}
	if !got.Consumed {
		t.Error("pointer not consumed after camera update")
	}
	// Selecting the element renders its chrome.
	if !hasType(msgs, TypeRenderSelection) {
		t.Errorf("messages = %v, want render.selection", messageTypes(msgs))
	}
}

func TestDragEmitsDisplayMovesAndDocSync(t *testing.T) {
	s := newTestSession()
	s.dispatch(t, TypeCameraUpdate, CameraPayload{
		Zoom:          1,
		ContainerRect: &geom.Rect{X: 0, Y: 0, Width: 800, Height: 600},
	})
	s.dispatch(t, TypeSnapUpdate, SnapPayload{Enabled: false})

	s.dispatch(t, TypePointerDown, PointerPayload{Event: pointerAt(110, 110)})
	s.dispatch(t, TypePointerMove, PointerPayload{Event: pointerAt(160, 120)})
	drain(t, s)

	s.dispatch(t, TypePointerUp, PointerPayload{Event: pointerAt(160, 120)})
	msgs := drain(t, s)
	if !hasType(msgs, TypeDocSync) {
		t.Fatalf("messages = %v, want doc.sync after pointer up", messageTypes(msgs))
	}

	if got := s.state.Elements()["el_a"].Position; got != (geom.Point{X: 150, Y: 110}) {
		t.Errorf("committed position = %v, want (150,110)", got)
	}
}

func TestScreenToWorldAppliesPanAndZoom(t *testing.T) {
	s := newTestSession()
	s.dispatch(t, TypeCameraUpdate, CameraPayload{
		Zoom:          2,
		Pan:           geom.Point{X: 100, Y: 50},
		ContainerRect: &geom.Rect{X: 0, Y: 0, Width: 800, Height: 600},
	})

	got := s.ScreenToWorld(40, 20)
	want := geom.Point{X: 120, Y: 60}
	if got != want {
		t.Errorf("ScreenToWorld(40,20) = %v, want %v", got, want)
	}
}

func TestDocRequestSyncs(t *testing.T) {
	s := newTestSession()
	s.dispatch(t, TypeDocRequest, nil)

	msgs := drain(t, s)
	if len(msgs) != 1 || msgs[0].Type != TypeDocSync {
		t.Fatalf("messages = %v, want single doc.sync", messageTypes(msgs))
	}
	var sync DocSyncPayload
	if err := json.Unmarshal(msgs[0].Payload, &sync); err != nil {
		t.Fatal(err)
	}
	if sync.Document == nil || sync.Document.ID != "doc_test" {
		t.Errorf("doc.sync payload = %+v", sync)
	}
}

func TestUnknownMessageType(t *testing.T) {
	s := newTestSession()
	s.dispatch(t, "bogus.type", nil)

	msgs := drain(t, s)
	if len(msgs) != 1 || msgs[0].Type != TypeError {
		t.Fatalf("messages = %v, want single error", messageTypes(msgs))
	}
}

func pointerAt(x, y float64) interaction.PointerEvent {
	return interaction.PointerEvent{ClientX: x, ClientY: y}
}
