//go:build js && wasm

package browser

import (
	"fmt"
	"syscall/js"

	"github.com/pfrederiksen/event-roster/internal/roster"
)

// DOMPage reads the form fields and appends list items through the document
// of the running page.
type DOMPage struct {
	document js.Value
}

var _ roster.Page = (*DOMPage)(nil)

// NewDOMPage wraps the global document.
func NewDOMPage() *DOMPage {
	return &DOMPage{document: js.Global().Get("document")}
}

func (p *DOMPage) getElementById(id string) js.Value {
	return p.document.Call("getElementById", id)
}

func (p *DOMPage) value(id string) string {
	el := p.getElementById(id)
	if el.IsNull() || el.IsUndefined() {
		return ""
	}
	v := el.Get("value")
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func (p *DOMPage) setValue(id, v string) {
	el := p.getElementById(id)
	if el.IsNull() || el.IsUndefined() {
		return
	}
	el.Set("value", v)
}

// EventValue returns the value of #event.
func (p *DOMPage) EventValue() string {
	return p.value("event")
}

// NameValue returns the value of #name.
func (p *DOMPage) NameValue() string {
	return p.value("name")
}

// ClearInputs empties #event and #name.
func (p *DOMPage) ClearInputs() {
	p.setValue("event", "")
	p.setValue("name", "")
}

// AppendParticipant appends an <li> with name as its text content.
func (p *DOMPage) AppendParticipant(event, name string) (found bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("DOM call failed: %v", r)
		}
	}()

	list := p.getElementById(roster.ContainerID(event))
	if list.IsNull() || list.IsUndefined() {
		return false, nil
	}

	li := p.document.Call("createElement", "li")
	li.Set("textContent", name)
	list.Call("appendChild", li)
	return true, nil
}

// WindowAlerter shows warnings with window.alert.
type WindowAlerter struct{}

// Alert calls window.alert(message).
func (WindowAlerter) Alert(message string) {
	js.Global().Call("alert", message)
}

// Bind exposes the handler as the global function name and, when the page has
// an element with buttonID, runs it on that element's click events. The
// returned function releases the callbacks.
func Bind(h *roster.Handler, name, buttonID string) (release func()) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		res, err := h.AddParticipant()
		if err != nil {
			js.Global().Get("console").Call("error", err.Error())
			return nil
		}
		return string(res.Outcome)
	})
	js.Global().Set(name, fn)

	button := js.Global().Get("document").Call("getElementById", buttonID)
	if !button.IsNull() && !button.IsUndefined() {
		button.Call("addEventListener", "click", fn)
	}

	return func() {
		if !button.IsNull() && !button.IsUndefined() {
			button.Call("removeEventListener", "click", fn)
		}
		js.Global().Delete(name)
		fn.Release()
	}
}
