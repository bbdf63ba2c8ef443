// Package roster registers participants for events.
//
// The Handler reads the chosen event and the participant name from a Page,
// checks that both are present, appends the name to the list for that event
// and clears the inputs. Pages are small interfaces so the same handler runs
// against a parsed HTML document, a live browser DOM or a terminal form.
package roster
