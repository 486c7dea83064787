// Package config defines the desired-state declaration for a CloudHSM
// cluster and the reconciliation timing policy.
//
// The [Config] struct is the canonical representation of the desired
// state: the idempotency tag, subnet and availability zone placement,
// and the target HSM instance count. It is produced either from the
// CLI's positional arguments via [FromArgs] or from a YAML file via
// [LoadFile]. [Timeouts] carries the polling intervals, attempt
// ceilings, and API retry policy, all overridable via HSMCTL_*
// environment variables.
package config
