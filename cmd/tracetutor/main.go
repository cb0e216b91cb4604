// tracetutor - interactive PCB design learning
//
// Runs the terminal UI by default, or the web front end with 'tracetutor serve'.
package main

import (
	"fmt"
	"os"

	"TraceTutor/internal/commands"
)

// Version information (set via -ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
