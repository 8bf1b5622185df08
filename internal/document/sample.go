package document

import (
	"github.com/inkboard/inkboard/backend-go/internal/geom"
	"github.com/inkboard/inkboard/backend-go/internal/typeid"
)

// NewSampleDocument builds the built-in demo document: a few shapes to
// select, drag, resize, and rotate.
func NewSampleDocument(docID string) *Document {
	rectID := typeid.NewElementID()
	ellipseID := typeid.NewElementID()
	cardID := typeid.NewElementID()
	pinnedID := typeid.NewElementID()

	return &Document{
		ID:      docID,
		Name:    "Untitled",
		Version: 1,
		Canvas: Canvas{
			Width:      1280,
			Height:     720,
			Background: "#1a1a2e",
			GridSize:   20,
		},
		Elements: map[string]Element{
			rectID: {
				ID:       rectID,
				Type:     ElementTypeRect,
				Name:     "Rect 1",
				Position: geom.Point{X: 200, Y: 200},
				Size:     geom.Size{Width: 160, Height: 120},
				Visible:  true,
				Fill:     "#e94560",
				Stroke:   "#000000",
			},
			ellipseID: {
				ID:       ellipseID,
				Type:     ElementTypeEllipse,
				Name:     "Ellipse 1",
				Position: geom.Point{X: 480, Y: 240},
				Size:     geom.Size{Width: 120, Height: 120},
				Visible:  true,
				Fill:     "#0f3460",
				Stroke:   "#ffffff",
			},
			cardID: {
				ID:       cardID,
				Type:     ElementTypeRect,
				Name:     "Card",
				Position: geom.Point{X: 720, Y: 180},
				Size:     geom.Size{Width: 240, Height: 160},
				Rotation: 15,
				Visible:  true,
				Fill:     "#16213e",
			},
			pinnedID: {
				ID:       pinnedID,
				Type:     ElementTypeRect,
				Name:     "Background plate",
				Position: geom.Point{X: 100, Y: 460},
				Size:     geom.Size{Width: 1080, Height: 180},
				Visible:  true,
				Locked:   true,
				Fill:     "#533483",
			},
		},
		Order: []string{pinnedID, cardID, ellipseID, rectID},
	}
}
