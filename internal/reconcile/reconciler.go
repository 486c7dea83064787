package reconcile

import (
	"context"
	"fmt"

	"github.com/hsmops/hsmctl/internal/config"
	"github.com/hsmops/hsmctl/internal/platform/cloudhsm"
)

// Reconciler converges an AWS CloudHSM cluster to the desired state
// declared in the configuration: a tag-identified cluster exists and
// holds the target number of HSM instances.
//
// Reconciliation is idempotent. Re-running after a partial failure
// re-discovers current state from the control plane and only issues
// the operations still needed.
type Reconciler struct {
	client   cloudhsm.ClusterManager
	cfg      *config.Config
	timeouts *config.Timeouts
	observer Observer
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*Reconciler)

// WithTimeouts overrides the polling and retry timing policy.
func WithTimeouts(t *config.Timeouts) ReconcilerOption {
	return func(r *Reconciler) {
		r.timeouts = t
	}
}

// WithObserver overrides the observer receiving reconciliation events.
func WithObserver(o Observer) ReconcilerOption {
	return func(r *Reconciler) {
		r.observer = o
	}
}

// NewReconciler creates a new cluster reconciler.
func NewReconciler(client cloudhsm.ClusterManager, cfg *config.Config, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		client:   client,
		cfg:      cfg,
		timeouts: config.LoadTimeouts(),
		observer: NewConsoleObserver(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result summarizes what a reconciliation run changed.
type Result struct {
	ClusterID      string   // Cluster that was reconciled
	ClusterCreated bool     // Whether this run created the cluster
	HsmsCreated    []string // IDs of HSM instances created by this run
	HsmsDeleted    []string // IDs of HSM instances deleted by this run
	SkipReason     string   // Why scaling was skipped, if it was
}

// Reconcile converges the cluster to the desired state: discover the
// tag-identified cluster, create and tag it if absent, then converge
// the HSM instance count.
func (r *Reconciler) Reconcile(ctx context.Context) (*Result, error) {
	result := &Result{}

	r.observer.Printf("Checking clusters for tag %s=%s", r.cfg.TagKey, r.cfg.TagValue)
	clusterID, found, err := r.discover(ctx)
	if err != nil {
		return nil, err
	}

	if found {
		r.observer.Event(Event{
			Type:     EventResourceExists,
			Resource: clusterID,
			Message:  "cluster found by tag",
		})
	} else {
		clusterID, err = r.ensureCluster(ctx)
		if err != nil {
			return nil, err
		}
		result.ClusterCreated = true
	}
	result.ClusterID = clusterID

	if err := r.reconcileHsmCount(ctx, clusterID, result); err != nil {
		return nil, err
	}

	return result, nil
}

// discover returns the ID of the first cluster carrying the configured
// tag pair, or found == false when no cluster matches.
func (r *Reconciler) discover(ctx context.Context) (string, bool, error) {
	clusters, err := r.client.ListClusters(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to list clusters: %w", err)
	}

	for _, cluster := range clusters {
		tags, err := r.client.ListTags(ctx, cluster.ID)
		if err != nil {
			return "", false, fmt.Errorf("failed to list tags for cluster %s: %w", cluster.ID, err)
		}

		if tags[r.cfg.TagKey] == r.cfg.TagValue {
			return cluster.ID, true, nil
		}
	}

	return "", false, nil
}

// ensureCluster creates a new cluster, waits for it to reach
// UNINITIALIZED, and attaches the idempotency tag. Only clusters
// created by this run are tagged; discovered ones are left untouched.
func (r *Reconciler) ensureCluster(ctx context.Context) (string, error) {
	r.observer.Event(Event{
		Type:    EventResourceCreating,
		Message: fmt.Sprintf("creating cluster in %s with type %s", r.cfg.SubnetID, r.cfg.HsmType),
	})

	cluster, err := r.client.CreateCluster(ctx, r.cfg.SubnetID, r.cfg.HsmType)
	if err != nil {
		return "", fmt.Errorf("failed to create cluster: %w", err)
	}

	r.observer.Event(Event{
		Type:     EventResourceCreated,
		Resource: cluster.ID,
		Message:  "cluster creation requested",
	})

	if err := r.waitClusterState(ctx, cluster.ID, cloudhsm.ClusterStateUninitialized); err != nil {
		return "", err
	}

	r.observer.Event(Event{
		Type:     EventResourceReady,
		Resource: cluster.ID,
		Message:  "cluster is ready for initialization",
	})

	if err := r.tagCluster(ctx, cluster.ID); err != nil {
		return "", err
	}

	return cluster.ID, nil
}

// tagCluster attaches the idempotency tag so later runs find the
// cluster by discovery instead of creating a duplicate.
func (r *Reconciler) tagCluster(ctx context.Context, clusterID string) error {
	tags := map[string]string{r.cfg.TagKey: r.cfg.TagValue}
	if err := r.client.TagResource(ctx, clusterID, tags); err != nil {
		return fmt.Errorf("failed to tag cluster %s: %w", clusterID, err)
	}

	r.observer.Printf("Tagged cluster %s with %s=%s", clusterID, r.cfg.TagKey, r.cfg.TagValue)
	return nil
}
