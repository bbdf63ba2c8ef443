package page

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/event-roster/internal/roster"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// EventFieldID is the id of the event selector.
	EventFieldID = "event"
	// NameFieldID is the id of the participant name input.
	NameFieldID = "name"
)

// Document is a parsed sign-up page. It implements roster.Page.
// A Document is not safe for concurrent use.
type Document struct {
	doc *goquery.Document

	// eventUnset is set when the event select was assigned a value none of
	// its options carry, so it reads empty instead of falling back to the
	// first option.
	eventUnset bool
}

var _ roster.Page = (*Document)(nil)

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString parses an HTML page held in memory.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// byID finds the first element with the given id. The id is compared as a
// plain string so user input never reaches the selector engine.
func (d *Document) byID(id string) *goquery.Selection {
	return d.doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	}).First()
}

// EventValue returns the current value of the event selector.
func (d *Document) EventValue() string {
	return fieldValue(d.byID(EventFieldID), d.eventUnset)
}

// NameValue returns the current value of the name input.
func (d *Document) NameValue() string {
	return fieldValue(d.byID(NameFieldID), false)
}

// SetEventValue fills the event selector. For a <select>, the option with the
// matching value becomes selected; an unknown value leaves nothing selected
// and the selector reads empty until it is set again. The rendered page then
// carries no selected option, so a reload shows the first one.
func (d *Document) SetEventValue(v string) {
	d.eventUnset = !setFieldValue(d.byID(EventFieldID), v)
}

// SetNameValue fills the name input.
func (d *Document) SetNameValue(v string) {
	setFieldValue(d.byID(NameFieldID), v)
}

// ClearInputs empties the event selector and the name input.
func (d *Document) ClearInputs() {
	d.SetEventValue("")
	d.SetNameValue("")
}

// HasForm reports whether the page has both the event and the name field.
func (d *Document) HasForm() bool {
	return d.byID(EventFieldID).Length() > 0 && d.byID(NameFieldID).Length() > 0
}

// HasContainer reports whether the page has a list for event.
func (d *Document) HasContainer(event string) bool {
	return d.byID(roster.ContainerID(event)).Length() > 0
}

// AppendParticipant adds a text-only <li> holding name to the list for event.
func (d *Document) AppendParticipant(event, name string) (bool, error) {
	list := d.byID(roster.ContainerID(event))
	if list.Length() == 0 {
		return false, nil
	}

	li := &html.Node{Type: html.ElementNode, Data: "li", DataAtom: atom.Li}
	li.AppendChild(&html.Node{Type: html.TextNode, Data: name})
	list.AppendNodes(li)

	return true, nil
}

// Events returns the selectable event values in document order. When the
// event field is not a <select>, the events are taken from the list
// containers instead, sorted by name.
func (d *Document) Events() []string {
	sel := d.byID(EventFieldID)
	if goquery.NodeName(sel) == "select" {
		events := make([]string, 0)
		sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
			if v := optionValue(opt); v != "" {
				events = append(events, v)
			}
		})
		return events
	}

	participants := d.Participants()
	events := make([]string, 0, len(participants))
	for event := range participants {
		events = append(events, event)
	}
	sort.Strings(events)
	return events
}

// Participants returns the item texts of every "<event>-list" element, keyed
// by event.
func (d *Document) Participants() map[string][]string {
	out := make(map[string][]string)
	d.doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		event := strings.TrimSuffix(id, roster.ContainerSuffix)
		if event == id || event == "" {
			return
		}
		if _, seen := out[event]; seen {
			return
		}
		items := make([]string, 0)
		s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			items = append(items, li.Text())
		})
		out[event] = items
	})
	return out
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	for _, n := range d.doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("rendering HTML: %w", err)
		}
	}
	return nil
}

// String renders the document to a string.
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// fieldValue reads a form field the way a browser does. A select with no
// selected option shows its first option unless unset says a script emptied it.
func fieldValue(sel *goquery.Selection, unset bool) string {
	if sel.Length() == 0 {
		return ""
	}
	switch goquery.NodeName(sel) {
	case "select":
		opt := sel.Find("option[selected]").First()
		if opt.Length() == 0 {
			if unset {
				return ""
			}
			opt = sel.Find("option").First()
		}
		if opt.Length() == 0 {
			return ""
		}
		return optionValue(opt)
	case "textarea":
		return sel.Text()
	default:
		v, _ := sel.Attr("value")
		return v
	}
}

// setFieldValue assigns v and reports whether the field now holds it. Only a
// select without an option for v reports false.
func setFieldValue(sel *goquery.Selection, v string) bool {
	if sel.Length() == 0 {
		return true
	}
	switch goquery.NodeName(sel) {
	case "select":
		opts := sel.Find("option")
		opts.RemoveAttr("selected")
		match := opts.FilterFunction(func(_ int, opt *goquery.Selection) bool {
			return optionValue(opt) == v
		}).First()
		match.SetAttr("selected", "selected")
		return match.Length() > 0
	case "textarea":
		sel.SetText(v)
	default:
		sel.SetAttr("value", v)
	}
	return true
}

// optionValue follows the browser rule: the value attribute, or the option's
// text with whitespace collapsed when the attribute is absent.
func optionValue(opt *goquery.Selection) string {
	if v, ok := opt.Attr("value"); ok {
		return v
	}
	return strings.Join(strings.Fields(opt.Text()), " ")
}
