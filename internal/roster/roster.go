package roster

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pfrederiksen/event-roster/internal/logger"
)

// MissingInputMessage is shown to the user when either field is empty.
const MissingInputMessage = "Please choose an event and enter your name."

// ContainerSuffix is appended to an event value to form its list element id.
const ContainerSuffix = "-list"

// ErrMissingInput reports that the event or the name was empty.
var ErrMissingInput = errors.New("missing required input")

// Page is the surface the handler reads inputs from and writes participants to.
type Page interface {
	EventValue() string
	NameValue() string
	ClearInputs()
	// AppendParticipant adds name to the list for event. It reports false,
	// without error, when the page has no list for event.
	AppendParticipant(event, name string) (bool, error)
}

// Alerter shows a blocking warning to the user.
type Alerter interface {
	Alert(message string)
}

// AlertFunc adapts a function to the Alerter interface.
type AlertFunc func(message string)

// Alert calls f(message).
func (f AlertFunc) Alert(message string) {
	f(message)
}

// Outcome describes what a single invocation did.
type Outcome string

const (
	OutcomeAdded        Outcome = "added"
	OutcomeMissingInput Outcome = "missing_input"
	OutcomeNoContainer  Outcome = "no_container"
)

// Result is returned by AddParticipant.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Event   string  `json:"event,omitempty"`
	Name    string  `json:"name,omitempty"`
}

// ContainerID returns the id of the list element holding participants of event.
func ContainerID(event string) string {
	return event + ContainerSuffix
}

// Validate returns ErrMissingInput unless both values are non-empty.
func Validate(event, name string) error {
	if event == "" || name == "" {
		return ErrMissingInput
	}
	return nil
}

// Handler registers participants on a page. Calls are serialized.
type Handler struct {
	mu      sync.Mutex
	page    Page
	alerter Alerter
	log     *logger.Logger
	metrics *logger.Metrics
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(h *Handler) {
		h.log = l
	}
}

// WithMetrics sets the tracker that counts outcomes.
func WithMetrics(m *logger.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// NewHandler creates a handler bound to page and alerter.
func NewHandler(page Page, alerter Alerter, opts ...Option) *Handler {
	h := &Handler{
		page:    page,
		alerter: alerter,
		log:     logger.Default(),
		metrics: logger.DefaultMetrics(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AddParticipant runs one registration against the page.
//
// When either input is empty the alerter is called and the page is left
// untouched. Otherwise the name is appended to the event's list and both inputs
// are cleared, even when the page has no list for the event or the append
// fails. Only surface failures are returned as errors.
func (h *Handler) AddParticipant() (Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	event := h.page.EventValue()
	name := h.page.NameValue()

	if err := Validate(event, name); err != nil {
		h.log.Debug("Rejected registration", logger.Fields{
			"event_set": event != "",
			"name_set":  name != "",
		})
		h.metrics.IncrCounter("roster." + string(OutcomeMissingInput))
		if h.alerter != nil {
			h.alerter.Alert(MissingInputMessage)
		}
		return Result{Outcome: OutcomeMissingInput, Event: event, Name: name}, nil
	}

	res := Result{Outcome: OutcomeAdded, Event: event, Name: name}

	found, appendErr := h.page.AppendParticipant(event, name)
	h.page.ClearInputs()

	if appendErr != nil {
		h.log.Error("Appending participant", logger.Fields{"event": event}, appendErr)
		return res, fmt.Errorf("appending participant to %s: %w", ContainerID(event), appendErr)
	}

	if !found {
		res.Outcome = OutcomeNoContainer
		h.log.Warn("No list for event", logger.Fields{
			"event":     event,
			"container": ContainerID(event),
		})
	} else {
		h.log.Info("Participant added", logger.Fields{
			"event": event,
			"name":  name,
		})
	}
	h.metrics.IncrCounter("roster." + string(res.Outcome))

	return res, nil
}
