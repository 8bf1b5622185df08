package session

import (
	"encoding/json"

	"github.com/inkboard/inkboard/backend-go/internal/document"
	"github.com/inkboard/inkboard/backend-go/internal/geom"
	"github.com/inkboard/inkboard/backend-go/internal/interaction"
)

// Message is the wire envelope for both directions.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Inbound message types (frontend → engine).
const (
	TypePointerDown      = "pointer.down"
	TypePointerMove      = "pointer.move"
	TypePointerUp        = "pointer.up"
	TypeCameraUpdate     = "camera.update"
	TypeSnapUpdate       = "snap.update"
	TypeSelectionRefresh = "selection.refresh"
	TypeDocRequest       = "doc.request"
)

// Outbound message types (engine → frontend).
const (
	TypeWelcome         = "welcome"
	TypeError           = "error"
	TypeDocSync         = "doc.sync"
	TypeDisplayMove     = "display.move"
	TypeDisplayRotate   = "display.rotate"
	TypeCursorSet       = "cursor.set"
	TypeRenderSelection = "render.selection"
	TypeRenderMarquee   = "render.marquee"
	TypeMarqueeClear    = "marquee.clear"
	TypeRenderGuides    = "render.guides"
	TypeRenderClear     = "render.clear"
	TypePointerConsumed = "pointer.consumed"
)

// PointerPayload carries a raw pointer event.
type PointerPayload struct {
	Event interaction.PointerEvent `json:"event"`
}

// PointerConsumedPayload answers a pointer.down with whether the engine
// consumed it.
type PointerConsumedPayload struct {
	Consumed bool `json:"consumed"`
}

// CameraPayload updates the session's view of the frontend camera and
// canvas container. A nil ContainerRect marks the rect unavailable, which
// turns subsequent pointer events into no-ops.
type CameraPayload struct {
	Zoom          float64    `json:"zoom"`
	Pan           geom.Point `json:"pan"`
	ContainerRect *geom.Rect `json:"containerRect"`
}

// SnapPayload toggles grid snapping.
type SnapPayload struct {
	Enabled bool `json:"enabled"`
}

// WelcomePayload greets a new connection.
type WelcomePayload struct {
	SessionID string `json:"sessionId"`
}

// ErrorPayload reports a malformed or unknown message.
type ErrorPayload struct {
	Reason string `json:"reason"`
}

// DocSyncPayload ships the full document plus selection state.
type DocSyncPayload struct {
	Document    *document.Document `json:"document"`
	SelectedIDs []string           `json:"selectedIds"`
	ServerSeq   int64              `json:"serverSeq"`
}

// DisplayMovePayload positions a live display object, bypassing history.
type DisplayMovePayload struct {
	ElementID string  `json:"elementId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// DisplayRotatePayload rotates a live display object, bypassing history.
type DisplayRotatePayload struct {
	ElementID string  `json:"elementId"`
	Radians   float64 `json:"radians"`
}

// CursorPayload sets the CSS cursor.
type CursorPayload struct {
	Cursor string `json:"cursor"`
}

// SelectionRenderPayload redraws selection chrome.
type SelectionRenderPayload struct {
	SelectedIDs []string                    `json:"selectedIds"`
	Elements    map[string]document.Element `json:"elements"`
	Zoom        float64                     `json:"zoom"`
}

// MarqueePayload redraws the rubber-band rectangle between two corners.
type MarqueePayload struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// GuidesPayload redraws alignment guide lines. An empty set clears them.
type GuidesPayload struct {
	Guides []interaction.AlignmentGuide `json:"guides"`
	Zoom   float64                      `json:"zoom"`
}
