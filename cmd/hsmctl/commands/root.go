// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated
// to handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the hsmctl CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hsmctl",
		Short: "Reconcile AWS CloudHSM clusters to a desired state",
	}

	cmd.AddCommand(Apply())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
