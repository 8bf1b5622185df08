package editor

import (
	"time"

	"github.com/inkboard/inkboard/backend-go/internal/geom"
)

// Op type constants. Every store mutation command appends exactly one op,
// so one completed gesture shows up as one entry in the log.
const (
	OpMoveElements  = "elements.move"
	OpResizeElement = "element.resize"
	OpRotateElement = "element.rotate"
	OpSetSelection  = "selection.set"
)

// Op records a single logical edit applied to the editor state.
type Op struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	ServerSeq int64  `json:"serverSeq"`

	// For elements.move
	Positions map[string]geom.Point `json:"positions,omitempty"`

	// For element.resize / element.rotate
	ElementID string      `json:"elementId,omitempty"`
	Size      *geom.Size  `json:"size,omitempty"`
	Position  *geom.Point `json:"position,omitempty"`
	Rotation  *float64    `json:"rotation,omitempty"`

	// For selection.set
	Selection []string `json:"selection,omitempty"`
}

// ServerTimestamp returns the current timestamp used for op records.
func ServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
