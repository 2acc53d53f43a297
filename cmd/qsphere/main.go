// Command qsphere renders interactive Q-Sphere visualizations.
package main

import (
	"os"

	"github.com/turtacn/qsphere/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = ""
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	if version != "" {
		cli.Version = version
	}
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

//Personal.AI order the ending
