package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable polling and retry values.
// These values can be customized via environment variables.
type Timeouts struct {
	ClusterPollInterval time.Duration // Delay between cluster state polls
	ClusterPollAttempts int           // Attempt ceiling for cluster state polls
	HsmPollInterval     time.Duration // Delay between HSM state polls
	HsmPollAttempts     int           // Attempt ceiling for HSM state polls
	RetryMaxAttempts    int           // Maximum retries per control-plane call
	RetryInitialDelay   time.Duration // Initial backoff delay per control-plane call
}

// LoadTimeouts loads timing configuration from environment variables.
// If an environment variable is not set or invalid, a default value is
// used. Defaults match CloudHSM provisioning latencies: clusters reach
// UNINITIALIZED within minutes, HSM instances take up to fifteen.
//
// Environment Variables:
//   - HSMCTL_POLL_CLUSTER_INTERVAL (default: 10s)
//   - HSMCTL_POLL_CLUSTER_ATTEMPTS (default: 20)
//   - HSMCTL_POLL_HSM_INTERVAL (default: 60s)
//   - HSMCTL_POLL_HSM_ATTEMPTS (default: 15)
//   - HSMCTL_RETRY_MAX_ATTEMPTS (default: 5)
//   - HSMCTL_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ClusterPollInterval: parseDuration("HSMCTL_POLL_CLUSTER_INTERVAL", 10*time.Second),
		ClusterPollAttempts: parseInt("HSMCTL_POLL_CLUSTER_ATTEMPTS", 20),
		HsmPollInterval:     parseDuration("HSMCTL_POLL_HSM_INTERVAL", 60*time.Second),
		HsmPollAttempts:     parseInt("HSMCTL_POLL_HSM_ATTEMPTS", 15),
		RetryMaxAttempts:    parseInt("HSMCTL_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay:   parseDuration("HSMCTL_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
