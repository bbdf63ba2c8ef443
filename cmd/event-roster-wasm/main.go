//go:build js && wasm

// Command event-roster-wasm runs the registration handler inside a browser.
//
// Build with GOOS=js GOARCH=wasm and load it next to the page produced by
// "event-roster init"; the page's "Add participant" button is bound on start.
package main

import (
	"os"

	"github.com/pfrederiksen/event-roster/internal/browser"
	"github.com/pfrederiksen/event-roster/internal/logger"
	"github.com/pfrederiksen/event-roster/internal/roster"
)

func main() {
	log := logger.New(logger.LevelInfo, os.Stdout)
	logger.SetDefault(log)

	h := roster.NewHandler(browser.NewDOMPage(), browser.WindowAlerter{}, roster.WithLogger(log))
	browser.Bind(h, "addParticipant", "add-button")

	log.Info("Registration handler ready", nil)
	select {}
}
