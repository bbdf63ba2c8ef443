package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pfrederiksen/event-roster/internal/logger"
	"github.com/pfrederiksen/event-roster/internal/page"
	"github.com/pfrederiksen/event-roster/internal/roster"
)

func newTestModel(t *testing.T, save func(*page.Document) error) (*Model, *page.Document) {
	t.Helper()
	markup, err := page.Template("Company Events", []string{"lunch", "dinner"})
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}
	doc, err := page.ParseString(markup)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	m := New(doc, Options{Save: save, Logger: logger.Nop(), Metrics: logger.NewMetrics()})
	return m, doc
}

func press(m *Model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestModel_EventPickerCycles(t *testing.T) {
	m, _ := newTestModel(t, nil)

	if m.EventValue() != "" {
		t.Fatalf("initial event = %q, want empty", m.EventValue())
	}
	press(m, keyRight)
	if m.EventValue() != "lunch" {
		t.Errorf("after right = %q, want lunch", m.EventValue())
	}
	press(m, keyRight, keyRight)
	if m.EventValue() != "" {
		t.Errorf("after wrapping = %q, want empty", m.EventValue())
	}
	press(m, keyLeft)
	if m.EventValue() != "dinner" {
		t.Errorf("after left = %q, want dinner", m.EventValue())
	}
}

func TestModel_SubmitAddsAndClears(t *testing.T) {
	saves := 0
	m, doc := newTestModel(t, func(*page.Document) error {
		saves++
		return nil
	})

	press(m, keyRight, keyTab)
	typeText(m, "Alice")
	if m.NameValue() != "Alice" {
		t.Fatalf("name = %q, want Alice", m.NameValue())
	}
	press(m, keyEnter)

	if got := doc.Participants()["lunch"]; len(got) != 1 || got[0] != "Alice" {
		t.Errorf("lunch = %q, want [Alice]", got)
	}
	if m.EventValue() != "" || m.NameValue() != "" {
		t.Errorf("form not cleared: (%q, %q)", m.EventValue(), m.NameValue())
	}
	if saves != 1 {
		t.Errorf("saves = %d, want 1", saves)
	}
	if !strings.Contains(m.View(), "Added Alice to lunch.") {
		t.Errorf("view missing status:\n%s", m.View())
	}
}

func TestModel_MissingInputShowsAlert(t *testing.T) {
	saves := 0
	m, doc := newTestModel(t, func(*page.Document) error {
		saves++
		return nil
	})

	press(m, keyTab)
	typeText(m, "Bob")
	press(m, keyEnter)

	if !strings.Contains(m.View(), roster.MissingInputMessage) {
		t.Errorf("view missing alert:\n%s", m.View())
	}
	if m.NameValue() != "Bob" {
		t.Errorf("name = %q, want Bob kept", m.NameValue())
	}
	if n := len(doc.Participants()["lunch"]) + len(doc.Participants()["dinner"]); n != 0 {
		t.Errorf("appended %d participants on missing input", n)
	}
	if saves != 0 {
		t.Errorf("saves = %d, want 0", saves)
	}
}

func TestModel_SaveError(t *testing.T) {
	m, _ := newTestModel(t, func(*page.Document) error {
		return errors.New("read-only file system")
	})

	press(m, keyRight, keyTab)
	typeText(m, "Alice")
	press(m, keyEnter)

	if !strings.Contains(m.View(), "read-only file system") {
		t.Errorf("view missing save error:\n%s", m.View())
	}
}

func TestModel_ReadsInitialValuesFromPage(t *testing.T) {
	markup, err := page.Template("", []string{"lunch", "dinner"})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := page.ParseString(markup)
	if err != nil {
		t.Fatal(err)
	}
	doc.SetEventValue("dinner")
	doc.SetNameValue("Carol")

	m := New(doc, Options{})
	if m.EventValue() != "dinner" || m.NameValue() != "Carol" {
		t.Errorf("initial form = (%q, %q), want (dinner, Carol)", m.EventValue(), m.NameValue())
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
