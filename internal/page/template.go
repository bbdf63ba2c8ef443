package page

import (
	"fmt"
	"html/template"
	"strings"
	"unicode"
)

// DefaultTitle is used when no page title is configured.
const DefaultTitle = "Event Sign-up"

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"label": eventLabel,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<form id="signup" onsubmit="return false">
<label for="event">Event</label>
<select id="event" name="event">
<option value="">Choose an event</option>
{{- range .Events}}
<option value="{{.}}">{{label .}}</option>
{{- end}}
</select>
<label for="name">Name</label>
<input type="text" id="name" name="name" value=""/>
<button type="button" id="add-button">Add participant</button>
</form>
{{- range .Events}}
<section>
<h2>{{label .}}</h2>
<ul id="{{.}}-list"></ul>
</section>
{{- end}}
</body>
</html>
`))

// ValidEventName reports whether s can be used as an event value. Event values
// become part of an element id, so they must be non-empty and free of spaces.
func ValidEventName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Template renders the default sign-up page for events.
func Template(title string, events []string) (string, error) {
	if title == "" {
		title = DefaultTitle
	}
	seen := make(map[string]bool, len(events))
	for _, e := range events {
		if !ValidEventName(e) {
			return "", fmt.Errorf("invalid event name: %q", e)
		}
		if seen[e] {
			return "", fmt.Errorf("duplicate event: %q", e)
		}
		seen[e] = true
	}

	var b strings.Builder
	err := pageTemplate.Execute(&b, struct {
		Title  string
		Events []string
	}{title, events})
	if err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}
	return b.String(), nil
}

// eventLabel turns "team-lunch" into "Team lunch".
func eventLabel(event string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(event)
	r := []rune(s)
	if len(r) > 0 {
		r[0] = unicode.ToUpper(r[0])
	}
	return string(r)
}
