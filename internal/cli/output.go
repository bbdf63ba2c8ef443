package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// EventRoster is the participant list of one event.
type EventRoster struct {
	Event        string   `json:"event"`
	Participants []string `json:"participants"`
}

// OutputResult contains data to be output
type OutputResult struct {
	ListedAt         time.Time     `json:"listed_at"`
	Events           []EventRoster `json:"events"`
	ParticipantCount int           `json:"participant_count"`
}

// BuildResult collects the rosters to print. A non-empty only restricts the
// result to that event.
func BuildResult(participants map[string][]string, only string, order SortOrder) *OutputResult {
	result := &OutputResult{
		ListedAt: time.Now().UTC(),
		Events:   make([]EventRoster, 0, len(participants)),
	}
	for event, names := range participants {
		if only != "" && event != only {
			continue
		}
		if names == nil {
			names = []string{}
		}
		result.Events = append(result.Events, EventRoster{Event: event, Participants: names})
		result.ParticipantCount += len(names)
	}
	sortRosters(result.Events, order)
	return result
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeText(w io.Writer, result *OutputResult) error {
	if len(result.Events) == 0 {
		fmt.Fprintln(w, "No event lists found.")
		return nil
	}

	for _, r := range result.Events {
		fmt.Fprintf(w, "%s (%d):\n", r.Event, len(r.Participants))
		if len(r.Participants) == 0 {
			fmt.Fprintln(w, "  (no participants yet)")
		}
		for _, name := range r.Participants {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}

	label := "participants"
	if result.ParticipantCount == 1 {
		label = "participant"
	}
	fmt.Fprintf(w, "\nTotal: %d %s across %d events\n", result.ParticipantCount, label, len(result.Events))
	return nil
}
