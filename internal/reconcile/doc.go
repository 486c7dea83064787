// Package reconcile converges an AWS CloudHSM cluster to a declared
// desired state.
//
// The [Reconciler] is the main entry point:
//
//	reconciler := reconcile.NewReconciler(client, cfg)
//	result, err := reconciler.Reconcile(ctx)
//
// A run performs, in order: tag-based cluster discovery, conditional
// cluster creation and tagging, then HSM count convergence — creating
// exactly target-current instances or deleting exactly current-target.
// The reconciler is idempotent: it can be run repeatedly and only
// issues the operations needed to reach the desired state. All state
// lives in the control plane; a run interrupted partway is recovered by
// simply running again.
//
// Two invocations sharing a tag pair can still race and create
// duplicate clusters; CloudHSM offers no conditional-create to hang a
// mutual exclusion on.
package reconcile
