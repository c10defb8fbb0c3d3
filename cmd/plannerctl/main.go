// Command plannerctl plans itineraries and administers the place cache of a
// running planner API.
package main

import (
	"fmt"
	"os"

	"trip_planner/internal/cli"
)

// set via ldflags
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
