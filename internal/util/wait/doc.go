// Package wait provides fixed-interval state polling with a bounded
// attempt ceiling.
//
// The [ForState] function polls a check function until the watched
// resource reaches its target state. Exhausting the ceiling yields a
// typed [TimeoutError] so callers can tell "gave up waiting" apart from
// success and from API failures. It is used for CloudHSM cluster and
// HSM instance state transitions, which the control plane completes
// asynchronously.
package wait
