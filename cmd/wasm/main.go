//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/drawdeck/drawdeck/backend-go/internal/document"
	"github.com/drawdeck/drawdeck/backend-go/internal/editor"
	"github.com/drawdeck/drawdeck/backend-go/internal/geom"
	"github.com/drawdeck/drawdeck/backend-go/internal/shape"
	"github.com/drawdeck/drawdeck/backend-go/internal/typeid"
)

var ed *editor.Editor

func main() {
	ed = editor.New(nil)

	api := js.Global().Get("Object").New()

	// --- Commands (frontend → editor) ---
	api.Set("loadDocument", js.FuncOf(loadDocument))
	api.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	api.Set("setGridSize", js.FuncOf(setGridSize))
	api.Set("pointerDown", js.FuncOf(pointerDown))
	api.Set("pointerMove", js.FuncOf(pointerMove))
	api.Set("pointerUp", js.FuncOf(pointerUp))
	api.Set("pointerCancel", js.FuncOf(pointerCancel))
	api.Set("tick", js.FuncOf(tick))
	api.Set("setSelection", js.FuncOf(setSelection))
	api.Set("addShape", js.FuncOf(addShape))
	api.Set("removeShape", js.FuncOf(removeShape))
	api.Set("lassoCut", js.FuncOf(lassoCut))

	// --- Queries (frontend ← editor) ---
	api.Set("getShapes", js.FuncOf(getShapes))
	api.Set("getSelection", js.FuncOf(getSelection))
	api.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	api.Set("hitTest", js.FuncOf(hitTest))
	api.Set("isDragging", js.FuncOf(isDragging))

	js.Global().Set("drawdeckEditor", api)
	js.Global().Set("drawdeckWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errResult("missing document JSON")
	}

	doc, err := document.Parse([]byte(args[0].String()))
	if err != nil {
		return errResult(err.Error())
	}

	ed.SetShapes(doc.Shapes)
	return okResult()
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	doc := document.NewSampleDocument(typeid.NewDocumentID())
	ed.SetShapes(doc.Shapes)
	return okResult()
}

func setGridSize(this js.Value, args []js.Value) interface{} {
	size := 0.0
	if len(args) > 0 {
		size = args[0].Float()
	}

	shapes := ed.Shapes()
	selection := ed.Selection()
	ed = editor.New(editor.GridSnapper(size))
	ed.SetShapes(shapes)
	ed.SetSelection(selection)
	return okResult()
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	ed.PointerDown(geom.Pt(args[0].Float(), args[1].Float()), parseModifiers(args, 2))
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	ed.PointerMove(geom.Pt(args[0].Float(), args[1].Float()), parseModifiers(args, 2))
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	ed.PointerUp()
	return nil
}

func pointerCancel(this js.Value, args []js.Value) interface{} {
	ed.Cancel()
	return nil
}

func tick(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.Tick())
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errResult("missing selection JSON")
	}

	var ids []string
	if err := json.Unmarshal([]byte(args[0].String()), &ids); err != nil {
		return errResult(err.Error())
	}

	ed.SetSelection(ids)
	return okResult()
}

func addShape(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errResult("missing shape JSON")
	}

	var s shape.Shape
	if err := json.Unmarshal([]byte(args[0].String()), &s); err != nil {
		return errResult(err.Error())
	}
	if s.ID == "" {
		s.ID = typeid.NewShapeID()
	}

	ed.AddShape(s)
	return js.ValueOf(map[string]interface{}{"ok": true, "id": s.ID})
}

func removeShape(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errResult("missing shape id")
	}
	return js.ValueOf(map[string]interface{}{"removed": ed.RemoveShape(args[0].String())})
}

func lassoCut(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errResult("missing lasso JSON")
	}

	var pts []geom.Point
	if err := json.Unmarshal([]byte(args[0].String()), &pts); err != nil {
		return errResult(err.Error())
	}

	ed.CutWithLasso(pts)
	return okResult()
}

// --- Query handlers ---

func getShapes(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(ed.Shapes())
	if err != nil {
		return errResult(err.Error())
	}
	return js.ValueOf(string(data))
}

func getSelection(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(ed.Selection())
	if err != nil {
		return errResult(err.Error())
	}
	return js.ValueOf(string(data))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	b := ed.SelectionBounds()
	return js.ValueOf(map[string]interface{}{
		"x":      b.X,
		"y":      b.Y,
		"width":  b.Width,
		"height": b.Height,
	})
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(ed.HitTest(geom.Pt(args[0].Float(), args[1].Float())))
}

func isDragging(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.Drag().Active())
}

// --- Helpers ---

func parseModifiers(args []js.Value, idx int) editor.Modifiers {
	var mods editor.Modifiers
	if len(args) <= idx || args[idx].Type() != js.TypeObject {
		return mods
	}
	obj := args[idx]
	mods.Shift = obj.Get("shift").Truthy()
	mods.Alt = obj.Get("alt").Truthy()
	mods.Crop = obj.Get("crop").Truthy()
	return mods
}

func okResult() js.Value {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func errResult(msg string) js.Value {
	return js.ValueOf(map[string]interface{}{"error": msg})
}
