// Package cloudhsm provides a client for the AWS CloudHSM v2 control
// plane.
//
// The [ClusterManager] interface abstracts the subset of the API the
// reconciler needs: cluster listing and creation, tag management, and
// HSM instance creation and deletion. [RealClient] implements it on top
// of the AWS SDK, following pagination cursors on list calls and
// retrying transiently failing calls with exponential backoff.
// [MockClient] provides a test double with per-method function fields.
package cloudhsm
