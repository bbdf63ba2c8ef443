package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogger_Log(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool // should log
	}{
		{
			name:    "info message",
			level:   LevelInfo,
			message: "participant added",
			fields:  Fields{"event": "lunch"},
			want:    true,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "reading inputs",
			want:    false,
		},
		{
			name:    "error with err",
			level:   LevelError,
			message: "saving page",
			err:     errors.New("disk full"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(LevelInfo, &buf)

			logger.log(tt.level, tt.message, tt.fields, tt.err)

			logged := buf.Len() > 0
			if logged != tt.want {
				t.Errorf("log() logged = %v, want %v", logged, tt.want)
			}
		})
	}
}

func TestLogger_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelDebug, &buf)

	logger.Error("saving page", Fields{"path": "/tmp/page.html"}, errors.New("disk full"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Unmarshal() error = %v, line = %q", err, buf.String())
	}
	if entry.Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR", entry.Level)
	}
	if entry.Error != "disk full" {
		t.Errorf("Error = %q, want %q", entry.Error, "disk full")
	}
	if entry.Fields["path"] != "/tmp/page.html" {
		t.Errorf("Fields[path] = %v", entry.Fields["path"])
	}
	if _, err := time.Parse(time.RFC3339, entry.Timestamp); err != nil {
		t.Errorf("Timestamp %q is not RFC3339: %v", entry.Timestamp, err)
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  Level
		logLevel  Level
		shouldLog bool
	}{
		{"debug logs at debug", LevelDebug, LevelDebug, true},
		{"info logs at debug", LevelDebug, LevelInfo, true},
		{"debug doesn't log at info", LevelInfo, LevelDebug, false},
		{"warn doesn't log at error", LevelError, LevelWarn, false},
		{"error always logs", LevelDebug, LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(tt.minLevel, &buf)

			logger.log(tt.logLevel, "test", nil, nil)

			if logged := buf.Len() > 0; logged != tt.shouldLog {
				t.Errorf("shouldLog = %v, want %v", logged, tt.shouldLog)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" INFO ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"Error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNop(t *testing.T) {
	// must not panic and must not write anywhere
	Nop().Error("ignored", nil, errors.New("x"))
}

func TestMetrics_Counter(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("roster.added")
	m.IncrCounter("roster.added")
	m.IncrCounter("roster.added")

	if got := m.Counter("roster.added"); got != 3 {
		t.Errorf("Counter = %v, want 3", got)
	}
	if got := m.GetSnapshot().Counters["roster.added"]; got != 3 {
		t.Errorf("snapshot counter = %v, want 3", got)
	}
}

func TestMetrics_Timing(t *testing.T) {
	m := NewMetrics()

	m.RecordTiming("page.save", 100*time.Millisecond)
	m.RecordTiming("page.save", 200*time.Millisecond)
	m.RecordTiming("page.save", 150*time.Millisecond)

	stats := m.GetSnapshot().Timings["page.save"]
	if stats.Count != 3 {
		t.Errorf("Timing count = %v, want 3", stats.Count)
	}
	if stats.Min != "100ms" {
		t.Errorf("Min timing = %v, want 100ms", stats.Min)
	}
	if stats.Max != "200ms" {
		t.Errorf("Max timing = %v, want 200ms", stats.Max)
	}
	if stats.Average != "150ms" {
		t.Errorf("Average timing = %v, want 150ms", stats.Average)
	}
}

func TestMetrics_WriteSnapshot(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("roster.no_container")
	m.IncrCounter("roster.added")
	m.IncrCounter("roster.added")
	m.RecordTiming("page.fetch", 100*time.Millisecond)
	m.RecordTiming("page.fetch", 300*time.Millisecond)

	var buf bytes.Buffer
	m.WriteSnapshot(&buf)

	want := "roster.added=2\nroster.no_container=1\n" +
		"page.fetch count=2 avg=200ms min=100ms max=300ms\n"
	if buf.String() != want {
		t.Errorf("WriteSnapshot() = %q, want %q", buf.String(), want)
	}
}

func TestMetrics_WriteSnapshotEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewMetrics().WriteSnapshot(&buf)
	if buf.Len() != 0 {
		t.Errorf("WriteSnapshot() on empty metrics = %q, want nothing", buf.String())
	}
}

func TestSetDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := Default()
	SetDefault(New(LevelDebug, &buf))
	defer SetDefault(prev)

	Default().Debug("test debug", nil)
	Default().Error("test error", Fields{"component": "test"}, errors.New("test"))

	if lines := strings.Count(buf.String(), "\n"); lines != 2 {
		t.Errorf("expected 2 log lines, got %d", lines)
	}
}
