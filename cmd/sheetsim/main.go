// Command sheetsim resolves snap layouts and replays sheet scenarios
// against a simulated frame clock.
package main

import (
	"os"

	"github.com/go-drift/modalsheet/cmd/sheetsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
