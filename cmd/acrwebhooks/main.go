// Package main is the entry point for the acrwebhooks CLI.
//
// acrwebhooks provisions an Azure container registry with two webhooks,
// pushes a committed container image through it, lists the webhook
// deliveries, and deletes everything it created.
//
// Commands: run, cleanup, version.
//
// For detailed usage information, run:
//
//	acrwebhooks --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/acrwebhooks/cmd/acrwebhooks/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
