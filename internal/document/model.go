package document

import "github.com/inkboard/inkboard/backend-go/internal/geom"

type ElementType string

const (
	ElementTypeRect    ElementType = "Rect"
	ElementTypeEllipse ElementType = "Ellipse"
	ElementTypeText    ElementType = "Text"
	ElementTypeImage   ElementType = "Image"
)

// Element is a single visual item on the canvas. The interaction engine
// reads snapshots of these; it never owns or mutates them directly.
type Element struct {
	ID       string      `json:"id"`
	Type     ElementType `json:"type"`
	Name     string      `json:"name"`
	Position geom.Point  `json:"position"`
	Size     geom.Size   `json:"size"`
	Rotation float64     `json:"rotation"` // degrees
	Visible  bool        `json:"visible"`
	Locked   bool        `json:"locked"`
	Fill     string      `json:"fill,omitempty"`
	Stroke   string      `json:"stroke,omitempty"`
}

// Bounds returns the element's axis-aligned bounding box.
func (e Element) Bounds() geom.Rect {
	return geom.Rect{
		X:      e.Position.X,
		Y:      e.Position.Y,
		Width:  e.Size.Width,
		Height: e.Size.Height,
	}
}

// Canvas holds per-document canvas settings.
type Canvas struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Background string  `json:"background"`
	GridSize   float64 `json:"gridSize"`
}

// Document is a complete editable scene: elements keyed by id plus their
// z-order (first id is bottom-most, last is top-most).
type Document struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Version  int                `json:"version"`
	Canvas   Canvas             `json:"canvas"`
	Elements map[string]Element `json:"elements"`
	Order    []string           `json:"order"`
}

// NewEmptyDocument creates an empty document for a new editing session.
func NewEmptyDocument(docID, name string) *Document {
	return &Document{
		ID:      docID,
		Name:    name,
		Version: 1,
		Canvas: Canvas{
			Width:      1280,
			Height:     720,
			Background: "#1a1a2e",
			GridSize:   20,
		},
		Elements: map[string]Element{},
		Order:    []string{},
	}
}
