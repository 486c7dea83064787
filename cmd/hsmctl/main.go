// Package main is the entry point for the hsmctl CLI.
//
// hsmctl provisions and reconciles an AWS CloudHSM cluster to a
// declared desired state: a tag-identified cluster exists in a given
// subnet with a target number of HSM instances. It is stateless; all
// state lives in the CloudHSM control plane and every run re-discovers
// it from there.
//
// Commands: apply, version, completion.
//
// For detailed usage information, run:
//
//	hsmctl --help
package main

import (
	"fmt"
	"os"

	"github.com/hsmops/hsmctl/cmd/hsmctl/commands"
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
