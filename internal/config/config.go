// Package config holds the desired-state declaration for a CloudHSM
// cluster and the tunable timing policy for reconciliation.
package config

import (
	"fmt"
	"strconv"
)

// DefaultHsmType is the only HSM instance type CloudHSM offered when
// this tool was written; it remains the default.
const DefaultHsmType = "hsm1.medium"

// Config declares the desired state of a CloudHSM cluster.
type Config struct {
	// TagKey and TagValue identify the cluster across invocations.
	// They act as an idempotency marker: a cluster carrying the pair
	// is considered "ours" and is never re-created.
	TagKey   string `mapstructure:"tag_key" yaml:"tag_key"`
	TagValue string `mapstructure:"tag_value" yaml:"tag_value"`

	// SubnetID is the subnet a newly created cluster is placed in.
	// It must lie within AvailabilityZone.
	SubnetID string `mapstructure:"subnet_id" yaml:"subnet_id"`

	// AvailabilityZone is where new HSM instances are placed.
	AvailabilityZone string `mapstructure:"availability_zone" yaml:"availability_zone"`

	// HsmCount is the target number of HSM instances in the cluster.
	HsmCount int `mapstructure:"hsm_count" yaml:"hsm_count"`

	// HsmType is the HSM instance type for a newly created cluster.
	HsmType string `mapstructure:"hsm_type" yaml:"hsm_type"`

	// Region overrides the AWS region resolved from the environment.
	Region string `mapstructure:"region" yaml:"region"`
}

// FromArgs builds a Config from the positional CLI arguments:
//
//	<tag_key> <tag_value> <subnet_id> <availability_zone> <hsm_count>
func FromArgs(args []string) (*Config, error) {
	if len(args) != 5 {
		return nil, fmt.Errorf("expected 5 arguments (tag_key tag_value subnet_id availability_zone hsm_count), got %d", len(args))
	}

	count, err := strconv.Atoi(args[4])
	if err != nil {
		return nil, fmt.Errorf("hsm_count must be an integer, got %q", args[4])
	}

	cfg := &Config{
		TagKey:           args[0],
		TagValue:         args[1],
		SubnetID:         args[2],
		AvailabilityZone: args[3],
		HsmCount:         count,
		HsmType:          DefaultHsmType,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
