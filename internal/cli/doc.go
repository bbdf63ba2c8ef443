// Package cli implements the command-line interface for event-roster.
//
// The cli package provides the Cobra-based CLI with commands to create the
// sign-up page (init), register a participant (add), print the lists (list)
// and open the interactive form (form). It coordinates the config, storage,
// page and roster packages; exit codes tell scripts whether a participant was
// added, input was missing, or the event had no list.
package cli
