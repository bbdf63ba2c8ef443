package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pfrederiksen/event-roster/internal/logger"
	"github.com/pfrederiksen/event-roster/internal/page"
	"github.com/pfrederiksen/event-roster/internal/roster"
)

const choosePlaceholder = "Choose an event"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	labelStyle   = lipgloss.NewStyle().Width(8)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#C0392B")).Padding(0, 1)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#27AE60"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0392B"))
)

type field int

const (
	fieldEvent field = iota
	fieldName
)

// Options configures the form.
type Options struct {
	Title   string
	Save    func(*page.Document) error
	Logger  *logger.Logger
	Metrics *logger.Metrics
}

// Model is the bubbletea model of the sign-up form.
type Model struct {
	doc     *page.Document
	handler *roster.Handler
	save    func(*page.Document) error
	log     *logger.Logger
	title   string

	// events[0] is the empty "choose" slot
	events   []string
	eventIdx int
	name     textinput.Model
	focus    field

	alert    string
	status   string
	err      error
	quitting bool
}

// New builds a form over doc. The initial field values are read from doc.
func New(doc *page.Document, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.Prompt = ""
	ti.CharLimit = 120
	ti.Width = 40
	ti.SetValue(doc.NameValue())

	title := opts.Title
	if title == "" {
		title = page.DefaultTitle
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	m := &Model{
		doc:    doc,
		save:   opts.Save,
		log:    log,
		title:  title,
		events: append([]string{""}, doc.Events()...),
		name:   ti,
		focus:  fieldEvent,
	}

	handlerOpts := []roster.Option{roster.WithLogger(log)}
	if opts.Metrics != nil {
		handlerOpts = append(handlerOpts, roster.WithMetrics(opts.Metrics))
	}
	m.handler = roster.NewHandler(doc, roster.AlertFunc(func(message string) {
		m.alert = message
	}), handlerOpts...)

	m.selectEvent(doc.EventValue())
	return m
}

// Run opens the form full screen and blocks until the user quits.
func Run(doc *page.Document, opts Options) error {
	_, err := tea.NewProgram(New(doc, opts), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		return m, m.toggleFocus()
	case "enter":
		m.submit()
		return m, nil
	}

	if m.focus == fieldEvent {
		switch keyMsg.String() {
		case "left", "h":
			m.cycleEvent(-1)
		case "right", "l", " ":
			m.cycleEvent(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// EventValue returns the event currently shown in the picker.
func (m *Model) EventValue() string {
	return m.events[m.eventIdx]
}

// NameValue returns the text in the name input.
func (m *Model) NameValue() string {
	return m.name.Value()
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == fieldEvent {
		m.focus = fieldName
		return m.name.Focus()
	}
	m.focus = fieldEvent
	m.name.Blur()
	return nil
}

func (m *Model) cycleEvent(delta int) {
	n := len(m.events)
	m.eventIdx = ((m.eventIdx+delta)%n + n) % n
}

func (m *Model) selectEvent(event string) {
	m.eventIdx = 0
	for i, e := range m.events {
		if e == event {
			m.eventIdx = i
			return
		}
	}
}

// submit copies the form into the page, runs the handler and copies the
// page's fields back so a cleared page shows as a cleared form.
func (m *Model) submit() {
	m.alert, m.status, m.err = "", "", nil

	m.doc.SetEventValue(m.EventValue())
	m.doc.SetNameValue(m.NameValue())

	res, err := m.handler.AddParticipant()
	if err != nil {
		m.err = err
		return
	}
	if res.Outcome == roster.OutcomeMissingInput {
		return
	}

	m.selectEvent(m.doc.EventValue())
	m.name.SetValue(m.doc.NameValue())
	if m.focus == fieldName {
		m.toggleFocus()
	}

	if res.Outcome == roster.OutcomeNoContainer {
		m.status = fmt.Sprintf("No list for %s; %s was not added.", res.Event, res.Name)
	} else {
		m.status = fmt.Sprintf("Added %s to %s.", res.Name, res.Event)
	}

	if m.save != nil {
		if err := m.save(m.doc); err != nil {
			m.log.Error("Saving page", nil, err)
			m.err = fmt.Errorf("saving page: %w", err)
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	event := m.EventValue()
	if event == "" {
		event = choosePlaceholder
	}
	picker := fmt.Sprintf("‹ %s ›", event)
	if m.focus == fieldEvent {
		picker = focusedStyle.Render(picker)
	}
	b.WriteString(labelStyle.Render("Event") + picker + "\n")
	b.WriteString(labelStyle.Render("Name") + m.name.View() + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render("Error: "+m.err.Error()) + "\n\n")
	case m.alert != "":
		b.WriteString(warnStyle.Render(m.alert) + "\n\n")
	case m.status != "":
		b.WriteString(okStyle.Render(m.status) + "\n\n")
	}

	participants := m.doc.Participants()
	events := make([]string, 0, len(participants))
	for e := range participants {
		events = append(events, e)
	}
	sort.Strings(events)
	for _, e := range events {
		names := participants[e]
		b.WriteString(fmt.Sprintf("%s (%d)\n", e, len(names)))
		for _, name := range names {
			b.WriteString("  • " + name + "\n")
		}
	}

	b.WriteString("\n" + mutedStyle.Render("←/→ choose event • tab switch field • enter add • esc quit"))
	return b.String()
}
