package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsmops/hsmctl/cmd/hsmctl/handlers"
)

// Apply returns the command for reconciling a CloudHSM cluster.
//
// The desired state comes either from five positional arguments or
// from a YAML config file, never both.
//
// Environment variables:
//
//	AWS credentials and region resolve through the SDK default chain
//	(AWS_PROFILE, AWS_REGION, instance metadata, ...).
//	HSMCTL_POLL_* and HSMCTL_RETRY_* tune polling and retry policy.
func Apply() *cobra.Command {
	var opts handlers.ApplyOptions

	cmd := &cobra.Command{
		Use:   "apply [tag_key tag_value subnet_id availability_zone hsm_count]",
		Short: "Create or update the CloudHSM cluster",
		Long: `Create or update an AWS CloudHSM cluster.

The cluster is identified by a tag key/value pair. If no cluster
carries the tag, a new one is created in the given subnet, waited to
UNINITIALIZED, and tagged. The HSM instance count is then converged to
the target: missing instances are created one at a time in the given
availability zone and surplus instances are deleted, lowest ID first.

A cluster still in UNINITIALIZED with its single bootstrap HSM must be
initialized manually (certificate signing) before it can scale; apply
reports this and leaves it alone.

Examples:
  # Reconcile using positional arguments
  hsmctl apply environment production subnet-0a1b2c3d eu-west-1a 2

  # Reconcile using a config file
  hsmctl apply -c cluster.yaml`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 5 {
				return fmt.Errorf("accepts either 5 positional arguments or none with --config, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Args = args
			return handlers.Apply(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to YAML config file (alternative to positional arguments)")
	cmd.Flags().StringVar(&opts.HsmType, "hsm-type", "", "HSM instance type for a newly created cluster (default hsm1.medium)")
	cmd.Flags().StringVar(&opts.Region, "region", "", "AWS region (default: resolved from the environment)")

	return cmd
}
