// Package session runs one WebSocket editing session: it feeds pointer
// events from the frontend into the interaction engine and streams the
// engine's display mutations, cursor changes, and render calls back out.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"

	"github.com/inkboard/inkboard/backend-go/internal/document"
	"github.com/inkboard/inkboard/backend-go/internal/editor"
	"github.com/inkboard/inkboard/backend-go/internal/geom"
	"github.com/inkboard/inkboard/backend-go/internal/interaction"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 256 * 1024
)

// Session is one connected editor. It implements interaction.Host (reads
// and store commands delegate to editor.State; display and cursor
// mutations become outbound messages) and interaction.Renderer (render
// calls become outbound messages). All engine calls happen on the read
// pump goroutine, preserving the engine's single-threaded event ordering.
type Session struct {
	ID    string
	conn  *websocket.Conn
	send  chan []byte
	state *editor.State

	manager *interaction.Manager

	// Frontend camera/container state, updated via camera.update.
	zoom          float64
	pan           geom.Point
	containerRect geom.Rect
	hasRect       bool
}

func New(id string, conn *websocket.Conn, state *editor.State) *Session {
	s := &Session{
		ID:    id,
		conn:  conn,
		send:  make(chan []byte, 256),
		state: state,
		zoom:  1.0,
	}
	s.manager = interaction.NewManager(s, s)
	return s
}

// Manager exposes the session's interaction engine, for diagnostics.
func (s *Session) Manager() *interaction.Manager {
	return s.manager
}

// --- Pumps (read/write loop shape follows the usual hub client) ---

func (s *Session) ReadPump(ctx context.Context) {
	defer func() {
		s.manager.Destroy()
		close(s.send)
		s.conn.Close(websocket.StatusNormalClosure, "")
	}()

	s.conn.SetReadLimit(maxMsgSize)

	s.sendMessage(TypeWelcome, WelcomePayload{SessionID: s.ID})
	s.sendDocSync()

	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "session", s.ID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "session", s.ID)
			s.sendMessage(TypeError, ErrorPayload{Reason: "invalid message"})
			continue
		}

		s.handleMessage(&msg)
	}
}

func (s *Session) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-s.send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "session", s.ID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// --- Inbound dispatch ---

func (s *Session) handleMessage(msg *Message) {
	switch msg.Type {
	case TypePointerDown:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.sendMessage(TypeError, ErrorPayload{Reason: "invalid pointer payload"})
			return
		}
		consumed := s.manager.OnPointerDown(p.Event)
		s.sendMessage(TypePointerConsumed, PointerConsumedPayload{Consumed: consumed})

	case TypePointerMove:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		s.manager.OnPointerMove(p.Event)

	case TypePointerUp:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		s.manager.OnPointerUp(p.Event)
		s.sendDocSync()

	case TypeCameraUpdate:
		var p CameraPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.sendMessage(TypeError, ErrorPayload{Reason: "invalid camera payload"})
			return
		}
		if p.Zoom > 0 {
			s.zoom = p.Zoom
			s.state.SetCameraZoom(p.Zoom)
		}
		s.pan = p.Pan
		if p.ContainerRect != nil {
			s.containerRect = *p.ContainerRect
			s.hasRect = true
		} else {
			s.hasRect = false
		}

	case TypeSnapUpdate:
		var p SnapPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		s.state.SetSnapEnabled(p.Enabled)

	case TypeSelectionRefresh:
		s.manager.RefreshSelection()

	case TypeDocRequest:
		s.sendDocSync()

	default:
		slog.Warn("unknown message type", "type", msg.Type, "session", s.ID)
		s.sendMessage(TypeError, ErrorPayload{Reason: "unknown message type: " + msg.Type})
	}
}

// --- interaction.Host ---

func (s *Session) Elements() map[string]document.Element { return s.state.Elements() }
func (s *Session) ElementIDs() []string                  { return s.state.ElementIDs() }
func (s *Session) SelectedIDs() []string                 { return s.state.SelectedIDs() }
func (s *Session) CameraZoom() float64                   { return s.zoom }
func (s *Session) SnapEnabled() bool                     { return s.state.SnapEnabled() }
func (s *Session) GridSize() float64                     { return s.state.GridSize() }

func (s *Session) ScreenToWorld(sx, sy float64) geom.Point {
	return geom.Point{X: s.pan.X + sx/s.zoom, Y: s.pan.Y + sy/s.zoom}
}

func (s *Session) ContainerRect() (geom.Rect, bool) {
	return s.containerRect, s.hasRect
}

func (s *Session) SelectElement(id string)    { s.state.SelectElement(id) }
func (s *Session) DeselectAll()               { s.state.DeselectAll() }
func (s *Session) SelectMultiple(ids []string) { s.state.SelectMultiple(ids) }
func (s *Session) ToggleSelection(id string)  { s.state.ToggleSelection(id) }

func (s *Session) MoveElements(positions map[string]geom.Point) {
	s.state.MoveElements(positions)
}

func (s *Session) ResizeElement(id string, size geom.Size, position geom.Point) {
	s.state.ResizeElement(id, size, position)
}

func (s *Session) RotateElement(id string, rotationDegrees float64) {
	s.state.RotateElement(id, rotationDegrees)
}

func (s *Session) MoveDisplayObject(id string, worldX, worldY float64) {
	s.sendMessage(TypeDisplayMove, DisplayMovePayload{ElementID: id, X: worldX, Y: worldY})
}

func (s *Session) RotateDisplayObject(id string, radians float64) {
	s.sendMessage(TypeDisplayRotate, DisplayRotatePayload{ElementID: id, Radians: radians})
}

func (s *Session) SetCursor(cursor string) {
	s.sendMessage(TypeCursorSet, CursorPayload{Cursor: cursor})
}

// --- interaction.Renderer ---

func (s *Session) RenderSelection(selectedIDs []string, elements map[string]document.Element, zoom float64) {
	s.sendMessage(TypeRenderSelection, SelectionRenderPayload{
		SelectedIDs: selectedIDs,
		Elements:    elements,
		Zoom:        zoom,
	})
}

func (s *Session) RenderMarquee(x0, y0, x1, y1 float64) {
	s.sendMessage(TypeRenderMarquee, MarqueePayload{X0: x0, Y0: y0, X1: x1, Y1: y1})
}

func (s *Session) ClearMarquee() {
	s.sendMessage(TypeMarqueeClear, nil)
}

func (s *Session) RenderGuides(guides []interaction.AlignmentGuide, zoom float64) {
	s.sendMessage(TypeRenderGuides, GuidesPayload{Guides: guides, Zoom: zoom})
}

func (s *Session) Clear() {
	s.sendMessage(TypeRenderClear, nil)
}

func (s *Session) Destroy() {}

// --- Outbound plumbing ---

func (s *Session) sendDocSync() {
	s.sendMessage(TypeDocSync, DocSyncPayload{
		Document:    s.state.Document(),
		SelectedIDs: s.state.SelectedIDs(),
		ServerSeq:   s.state.ServerSeq(),
	})
}

func (s *Session) sendMessage(msgType string, payload interface{}) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			slog.Error("marshal payload", "error", err, "type", msgType)
			return
		}
		raw = data
	}

	data, err := json.Marshal(Message{Type: msgType, SessionID: s.ID, Payload: raw})
	if err != nil {
		slog.Error("marshal message", "error", err, "type", msgType)
		return
	}

	select {
	case s.send <- data:
	default:
		slog.Warn("session send buffer full, dropping message", "session", s.ID, "type", msgType)
	}
}
