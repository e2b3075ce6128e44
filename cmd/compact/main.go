// compact CLI - verifies consumer-driven contracts against HTTP providers
package main

import (
	"os"

	"github.com/VaticanUK/com-pact/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate
	os.Exit(cli.Execute())
}
