package main

import (
	"os"

	"github.com/pfrederiksen/event-roster/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
