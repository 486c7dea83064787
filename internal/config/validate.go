package config

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxHsmsPerCluster is the CloudHSM service quota for HSM instances in
// a single cluster.
// https://docs.aws.amazon.com/cloudhsm/latest/userguide/limits.html
const MaxHsmsPerCluster = 28

// AWS tag constraints.
// https://docs.aws.amazon.com/tag-editor/latest/userguide/tagging.html
const (
	maxTagKeyLength   = 128
	maxTagValueLength = 256
)

// availabilityZonePattern matches AZ names like us-east-1a or
// eu-central-1b.
var availabilityZonePattern = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d[a-z]$`)

// Validate checks the configuration for common errors and returns a
// detailed error if validation fails.
func (c *Config) Validate() error {
	// Required fields
	if c.TagKey == "" {
		return fmt.Errorf("tag_key is required")
	}
	if c.TagValue == "" {
		return fmt.Errorf("tag_value is required")
	}
	if c.SubnetID == "" {
		return fmt.Errorf("subnet_id is required")
	}
	if c.AvailabilityZone == "" {
		return fmt.Errorf("availability_zone is required")
	}

	if err := c.validateTag(); err != nil {
		return fmt.Errorf("tag validation failed: %w", err)
	}
	if err := c.validatePlacement(); err != nil {
		return fmt.Errorf("placement validation failed: %w", err)
	}
	if err := c.validateHsms(); err != nil {
		return fmt.Errorf("hsm validation failed: %w", err)
	}

	return nil
}

// validateTag validates the idempotency tag against AWS tag constraints.
func (c *Config) validateTag() error {
	if len(c.TagKey) > maxTagKeyLength {
		return fmt.Errorf("tag_key %q exceeds %d characters", c.TagKey, maxTagKeyLength)
	}
	if len(c.TagValue) > maxTagValueLength {
		return fmt.Errorf("tag_value exceeds %d characters", maxTagValueLength)
	}
	if strings.HasPrefix(c.TagKey, "aws:") {
		return fmt.Errorf("tag_key %q uses the reserved aws: prefix", c.TagKey)
	}
	return nil
}

// validatePlacement validates the subnet and availability zone.
func (c *Config) validatePlacement() error {
	if !strings.HasPrefix(c.SubnetID, "subnet-") {
		return fmt.Errorf("invalid subnet_id %q: must start with subnet-", c.SubnetID)
	}
	if !availabilityZonePattern.MatchString(c.AvailabilityZone) {
		return fmt.Errorf("invalid availability_zone %q: expected a name like us-east-1a", c.AvailabilityZone)
	}
	return nil
}

// validateHsms validates the HSM target count and type.
func (c *Config) validateHsms() error {
	if c.HsmCount < 1 || c.HsmCount > MaxHsmsPerCluster {
		return fmt.Errorf("hsm_count %d out of range: must be between 1 and %d", c.HsmCount, MaxHsmsPerCluster)
	}
	if c.HsmType == "" {
		return fmt.Errorf("hsm_type is required")
	}
	return nil
}
