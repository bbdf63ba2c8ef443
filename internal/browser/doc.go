//go:build js && wasm

// Package browser binds roster.Handler to a live page through syscall/js.
package browser
