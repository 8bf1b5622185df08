//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inkboard/inkboard/backend-go/internal/document"
	"github.com/inkboard/inkboard/backend-go/internal/editor"
	"github.com/inkboard/inkboard/backend-go/internal/geom"
	"github.com/inkboard/inkboard/backend-go/internal/interaction"
)

var bridge *jsBridge

func main() {
	bridge = newJSBridge(editor.NewState(document.NewSampleDocument("doc_playground")))

	inkboardEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	inkboardEngine.Set("loadDocument", js.FuncOf(loadDocument))
	inkboardEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	inkboardEngine.Set("onPointerDown", js.FuncOf(onPointerDown))
	inkboardEngine.Set("onPointerMove", js.FuncOf(onPointerMove))
	inkboardEngine.Set("onPointerUp", js.FuncOf(onPointerUp))
	inkboardEngine.Set("setCamera", js.FuncOf(setCamera))
	inkboardEngine.Set("setContainerRect", js.FuncOf(setContainerRect))
	inkboardEngine.Set("clearContainerRect", js.FuncOf(clearContainerRect))
	inkboardEngine.Set("setSnapEnabled", js.FuncOf(setSnapEnabled))
	inkboardEngine.Set("refreshSelection", js.FuncOf(refreshSelection))
	inkboardEngine.Set("setRenderCallbacks", js.FuncOf(setRenderCallbacks))

	// --- Queries (frontend ← backend) ---
	inkboardEngine.Set("getDocument", js.FuncOf(getDocument))
	inkboardEngine.Set("getSelection", js.FuncOf(getSelection))
	inkboardEngine.Set("getInteractionState", js.FuncOf(getInteractionState))

	js.Global().Set("inkboardEngine", inkboardEngine)
	js.Global().Set("inkboardWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// jsBridge backs the interaction engine inside the browser: store
// commands go to the in-memory editor state, display mutations and
// render calls go out through frontend-registered callbacks.
type jsBridge struct {
	state   *editor.State
	manager *interaction.Manager

	zoom          float64
	pan           geom.Point
	containerRect geom.Rect
	hasRect       bool

	callbacks js.Value
}

func newJSBridge(state *editor.State) *jsBridge {
	b := &jsBridge{
		state:     state,
		zoom:      1.0,
		callbacks: js.Undefined(),
	}
	b.manager = interaction.NewManager(b, b)
	return b
}

func (b *jsBridge) call(name string, args ...interface{}) {
	if b.callbacks.Type() != js.TypeObject {
		return
	}
	fn := b.callbacks.Get(name)
	if fn.Type() != js.TypeFunction {
		return
	}
	fn.Invoke(args...)
}

// --- interaction.Host ---

func (b *jsBridge) Elements() map[string]document.Element { return b.state.Elements() }
func (b *jsBridge) ElementIDs() []string                  { return b.state.ElementIDs() }
func (b *jsBridge) SelectedIDs() []string                 { return b.state.SelectedIDs() }
func (b *jsBridge) CameraZoom() float64                   { return b.zoom }
func (b *jsBridge) SnapEnabled() bool                     { return b.state.SnapEnabled() }
func (b *jsBridge) GridSize() float64                     { return b.state.GridSize() }

func (b *jsBridge) ScreenToWorld(sx, sy float64) geom.Point {
	return geom.Point{X: b.pan.X + sx/b.zoom, Y: b.pan.Y + sy/b.zoom}
}

func (b *jsBridge) ContainerRect() (geom.Rect, bool) {
	return b.containerRect, b.hasRect
}

func (b *jsBridge) SelectElement(id string)     { b.state.SelectElement(id) }
func (b *jsBridge) DeselectAll()                { b.state.DeselectAll() }
func (b *jsBridge) SelectMultiple(ids []string) { b.state.SelectMultiple(ids) }
func (b *jsBridge) ToggleSelection(id string)   { b.state.ToggleSelection(id) }

func (b *jsBridge) MoveElements(positions map[string]geom.Point) {
	b.state.MoveElements(positions)
}

func (b *jsBridge) ResizeElement(id string, size geom.Size, position geom.Point) {
	b.state.ResizeElement(id, size, position)
}

func (b *jsBridge) RotateElement(id string, rotationDegrees float64) {
	b.state.RotateElement(id, rotationDegrees)
}

func (b *jsBridge) MoveDisplayObject(id string, worldX, worldY float64) {
	b.call("moveDisplayObject", id, worldX, worldY)
}

func (b *jsBridge) RotateDisplayObject(id string, radians float64) {
	b.call("rotateDisplayObject", id, radians)
}

func (b *jsBridge) SetCursor(cursor string) {
	b.call("setCursor", cursor)
}

// --- interaction.Renderer ---

func (b *jsBridge) RenderSelection(selectedIDs []string, elements map[string]document.Element, zoom float64) {
	payload, err := json.Marshal(map[string]interface{}{
		"selectedIds": selectedIDs,
		"elements":    elements,
		"zoom":        zoom,
	})
	if err != nil {
		return
	}
	b.call("renderSelection", string(payload))
}

func (b *jsBridge) RenderMarquee(x0, y0, x1, y1 float64) {
	b.call("renderMarquee", x0, y0, x1, y1)
}

func (b *jsBridge) ClearMarquee() {
	b.call("clearMarquee")
}

func (b *jsBridge) RenderGuides(guides []interaction.AlignmentGuide, zoom float64) {
	payload, err := json.Marshal(map[string]interface{}{
		"guides": guides,
		"zoom":   zoom,
	})
	if err != nil {
		return
	}
	b.call("renderGuides", string(payload))
}

func (b *jsBridge) Clear() {
	b.call("clear")
}

func (b *jsBridge) Destroy() {}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}

	var doc document.Document
	if err := json.Unmarshal([]byte(args[0].String()), &doc); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	bridge.state = editor.NewState(&doc)
	bridge.manager.Destroy()
	bridge.manager = interaction.NewManager(bridge, bridge)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	docID := "doc_sample"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		docID = args[0].String()
	}

	bridge.state = editor.NewState(document.NewSampleDocument(docID))
	bridge.manager.Destroy()
	bridge.manager = interaction.NewManager(bridge, bridge)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func pointerEventFromArgs(args []js.Value) (interaction.PointerEvent, bool) {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		return interaction.PointerEvent{}, false
	}
	ev := args[0]
	return interaction.PointerEvent{
		ClientX:  ev.Get("clientX").Float(),
		ClientY:  ev.Get("clientY").Float(),
		Button:   ev.Get("button").Int(),
		ShiftKey: ev.Get("shiftKey").Truthy(),
	}, true
}

func onPointerDown(this js.Value, args []js.Value) interface{} {
	ev, ok := pointerEventFromArgs(args)
	if !ok {
		return js.ValueOf(false)
	}
	return js.ValueOf(bridge.manager.OnPointerDown(ev))
}

func onPointerMove(this js.Value, args []js.Value) interface{} {
	ev, ok := pointerEventFromArgs(args)
	if !ok {
		return nil
	}
	bridge.manager.OnPointerMove(ev)
	return nil
}

func onPointerUp(this js.Value, args []js.Value) interface{} {
	ev, ok := pointerEventFromArgs(args)
	if !ok {
		return nil
	}
	bridge.manager.OnPointerUp(ev)
	return nil
}

func setCamera(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	zoom := args[0].Float()
	if zoom > 0 {
		bridge.zoom = zoom
		bridge.state.SetCameraZoom(zoom)
	}
	bridge.pan = geom.Point{X: args[1].Float(), Y: args[2].Float()}
	return nil
}

func setContainerRect(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return nil
	}
	bridge.containerRect = geom.Rect{
		X:      args[0].Float(),
		Y:      args[1].Float(),
		Width:  args[2].Float(),
		Height: args[3].Float(),
	}
	bridge.hasRect = true
	return nil
}

func clearContainerRect(this js.Value, args []js.Value) interface{} {
	bridge.hasRect = false
	return nil
}

func setSnapEnabled(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	bridge.state.SetSnapEnabled(args[0].Truthy())
	return nil
}

func refreshSelection(this js.Value, args []js.Value) interface{} {
	bridge.manager.RefreshSelection()
	return nil
}

func setRenderCallbacks(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		bridge.callbacks = js.Undefined()
		return nil
	}
	bridge.callbacks = args[0]
	return nil
}

// --- Query Handlers ---

func getDocument(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(bridge.state.Document())
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}

func getSelection(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(bridge.state.SelectedIDs())
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(string(data))
}

func getInteractionState(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(bridge.manager.InteractionState().Name())
}
