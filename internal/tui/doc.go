// Package tui is the terminal rendition of the sign-up form.
//
// The form has an event picker and a name input; submitting runs the same
// roster.Handler the CLI uses, against the stored page document.
package tui
