// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic
// and can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/hsmops/hsmctl/internal/config"
	"github.com/hsmops/hsmctl/internal/platform/cloudhsm"
	"github.com/hsmops/hsmctl/internal/reconcile"
	"github.com/hsmops/hsmctl/internal/util/wait"
)

// ApplyOptions carries the apply command's inputs.
type ApplyOptions struct {
	Args       []string // Positional arguments (5 or none)
	ConfigPath string   // YAML config file, alternative to Args
	HsmType    string   // HSM type override for new clusters
	Region     string   // AWS region override
}

// Reconciler interface for testing - matches reconcile.Reconciler.
type Reconciler interface {
	Reconcile(ctx context.Context) (*reconcile.Result, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newClusterClient creates a new CloudHSM control-plane client.
	newClusterClient = func(ctx context.Context, cfg *config.Config, timeouts *config.Timeouts) (cloudhsm.ClusterManager, error) {
		var opts []cloudhsm.ClientOption
		if cfg.Region != "" {
			opts = append(opts, cloudhsm.WithRegion(cfg.Region))
		}
		opts = append(opts, cloudhsm.WithRetryPolicy(timeouts.RetryMaxAttempts, timeouts.RetryInitialDelay))
		return cloudhsm.NewRealClient(ctx, opts...)
	}

	// newReconciler creates a new cluster reconciler.
	newReconciler = func(client cloudhsm.ClusterManager, cfg *config.Config, timeouts *config.Timeouts) Reconciler {
		return reconcile.NewReconciler(client, cfg, reconcile.WithTimeouts(timeouts))
	}

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile
)

// Apply reconciles a CloudHSM cluster to the desired state.
//
// The workflow:
//  1. Loads the desired state from positional arguments or a YAML file
//  2. Builds the CloudHSM client via the SDK default credential chain
//  3. Runs the reconciler: discover by tag, create and tag if absent,
//     converge the HSM instance count
//  4. Prints a summary of what changed
//
// A polling timeout (cluster or HSM never reaching its target state)
// is reported distinctly from API failures: partial progress is kept,
// and re-running apply resumes from whatever state the control plane
// reports.
func Apply(ctx context.Context, opts ApplyOptions) error {
	cfg, err := loadApplyConfig(opts)
	if err != nil {
		return err
	}

	log.Printf("Reconciling CloudHSM cluster tagged %s=%s to %d HSM instances", cfg.TagKey, cfg.TagValue, cfg.HsmCount)

	timeouts := config.LoadTimeouts()
	client, err := newClusterClient(ctx, cfg, timeouts)
	if err != nil {
		return fmt.Errorf("failed to initialize CloudHSM client: %w", err)
	}

	result, err := newReconciler(client, cfg, timeouts).Reconcile(ctx)
	if err != nil {
		if wait.IsTimeout(err) {
			return fmt.Errorf("reconciliation gave up waiting (re-run apply to resume): %w", err)
		}
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	printApplySummary(result)
	return nil
}

// loadApplyConfig resolves the desired state from the command inputs.
// Positional arguments and a config file are mutually exclusive.
func loadApplyConfig(opts ApplyOptions) (*config.Config, error) {
	if len(opts.Args) > 0 && opts.ConfigPath != "" {
		return nil, fmt.Errorf("positional arguments and --config are mutually exclusive")
	}

	var cfg *config.Config
	var err error
	switch {
	case opts.ConfigPath != "":
		cfg, err = loadConfigFile(opts.ConfigPath)
	case len(opts.Args) == 5:
		cfg, err = config.FromArgs(opts.Args)
	default:
		return nil, fmt.Errorf("desired state required: pass 5 positional arguments or --config (see hsmctl apply --help)")
	}
	if err != nil {
		return nil, err
	}

	if opts.HsmType != "" {
		cfg.HsmType = opts.HsmType
	}
	if opts.Region != "" {
		cfg.Region = opts.Region
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// printApplySummary reports what the run changed.
func printApplySummary(result *reconcile.Result) {
	if result.ClusterCreated {
		log.Printf("Created cluster %s", result.ClusterID)
	} else {
		log.Printf("Cluster %s already existed", result.ClusterID)
	}

	switch {
	case result.SkipReason != "":
		log.Printf("Scaling skipped: %s", result.SkipReason)
	case len(result.HsmsCreated) > 0:
		log.Printf("Created %d HSM instances: %v", len(result.HsmsCreated), result.HsmsCreated)
	case len(result.HsmsDeleted) > 0:
		log.Printf("Deleted %d HSM instances: %v", len(result.HsmsDeleted), result.HsmsDeleted)
	default:
		log.Printf("HSM count already at target, no changes")
	}
}
