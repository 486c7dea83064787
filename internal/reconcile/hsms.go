package reconcile

import (
	"context"
	"fmt"
	"sort"

	"github.com/hsmops/hsmctl/internal/platform/cloudhsm"
	"github.com/hsmops/hsmctl/internal/util/wait"
)

// reconcileHsmCount converges the number of HSM instances in the
// cluster to the configured target. It creates exactly target-current
// instances when below target and deletes exactly current-target when
// above; matching counts issue no mutating calls.
func (r *Reconciler) reconcileHsmCount(ctx context.Context, clusterID string, result *Result) error {
	cluster, err := r.client.GetCluster(ctx, clusterID)
	if err != nil {
		return fmt.Errorf("failed to get cluster %s: %w", clusterID, err)
	}

	current := len(cluster.Hsms)
	target := r.cfg.HsmCount

	switch {
	case current == target:
		r.observer.Printf("Cluster %s already has %d HSM instances, nothing to do", clusterID, current)
		return nil

	case current == 1 && target > 1 && cluster.State == cloudhsm.ClusterStateUninitialized:
		// An uninitialized cluster with its bootstrap HSM must be
		// initialized manually before it can scale horizontally.
		result.SkipReason = fmt.Sprintf(
			"cluster %s is UNINITIALIZED with its bootstrap HSM; initialize it before scaling to %d instances",
			clusterID, target)
		r.observer.Event(Event{
			Type:     EventSkipped,
			Resource: clusterID,
			Message:  result.SkipReason,
		})
		return nil

	case current < target:
		r.observer.Printf("Cluster %s has %d of %d HSM instances, scaling up", clusterID, current, target)
		return r.scaleUp(ctx, clusterID, target-current, result)

	default:
		r.observer.Printf("Cluster %s has %d of %d HSM instances, scaling down", clusterID, current, target)
		return r.scaleDown(ctx, cluster, current-target, result)
	}
}

// scaleUp creates count HSM instances sequentially, waiting for each to
// become ACTIVE before requesting the next. CloudHSM only provisions
// one HSM per cluster at a time.
func (r *Reconciler) scaleUp(ctx context.Context, clusterID string, count int, result *Result) error {
	for i := 0; i < count; i++ {
		hsm, err := r.client.CreateHsm(ctx, clusterID, r.cfg.AvailabilityZone)
		if err != nil {
			return fmt.Errorf("failed to create HSM in cluster %s: %w", clusterID, err)
		}

		r.observer.Event(Event{
			Type:     EventResourceCreating,
			Resource: hsm.ID,
			Message:  fmt.Sprintf("creating HSM instance in %s", r.cfg.AvailabilityZone),
			Fields:   map[string]string{"cluster": clusterID},
		})

		if err := r.waitHsmState(ctx, clusterID, hsm.ID, cloudhsm.HsmStateActive); err != nil {
			return err
		}

		r.observer.Event(Event{
			Type:     EventResourceReady,
			Resource: hsm.ID,
			Fields:   map[string]string{"cluster": clusterID},
		})
		result.HsmsCreated = append(result.HsmsCreated, hsm.ID)
	}
	return nil
}

// scaleDown deletes count HSM instances. Victims are chosen
// deterministically: HSM IDs sorted ascending, first count taken, so
// repeated runs against the same listing pick the same instances
// regardless of provider ordering.
func (r *Reconciler) scaleDown(ctx context.Context, cluster *cloudhsm.Cluster, count int, result *Result) error {
	ids := make([]string, 0, len(cluster.Hsms))
	for _, hsm := range cluster.Hsms {
		ids = append(ids, hsm.ID)
	}
	sort.Strings(ids)

	for _, id := range ids[:count] {
		r.observer.Event(Event{
			Type:     EventResourceDeleting,
			Resource: id,
			Fields:   map[string]string{"cluster": cluster.ID},
		})

		if err := r.client.DeleteHsm(ctx, cluster.ID, id); err != nil {
			return fmt.Errorf("failed to delete HSM %s in cluster %s: %w", id, cluster.ID, err)
		}
		result.HsmsDeleted = append(result.HsmsDeleted, id)
	}
	return nil
}

// waitClusterState polls the cluster until it reaches the target state.
func (r *Reconciler) waitClusterState(ctx context.Context, clusterID string, target cloudhsm.ClusterState) error {
	r.observer.Event(Event{
		Type:     EventResourceWaiting,
		Resource: clusterID,
		Message:  fmt.Sprintf("waiting for cluster state %s", target),
	})

	return wait.ForState(ctx, "cluster "+clusterID, string(target),
		func(ctx context.Context) (bool, error) {
			cluster, err := r.client.GetCluster(ctx, clusterID)
			if err != nil {
				return false, err
			}
			return cluster.State == target, nil
		},
		wait.WithInterval(r.timeouts.ClusterPollInterval),
		wait.WithMaxAttempts(r.timeouts.ClusterPollAttempts),
	)
}

// waitHsmState polls a single HSM instance until it reaches the target
// state. An HSM that vanishes from the cluster listing mid-wait is a
// control-plane fault, not a timeout.
func (r *Reconciler) waitHsmState(ctx context.Context, clusterID, hsmID string, target cloudhsm.HsmState) error {
	r.observer.Event(Event{
		Type:     EventResourceWaiting,
		Resource: hsmID,
		Message:  fmt.Sprintf("waiting for HSM state %s", target),
		Fields:   map[string]string{"cluster": clusterID},
	})

	return wait.ForState(ctx, "hsm "+hsmID, string(target),
		func(ctx context.Context) (bool, error) {
			cluster, err := r.client.GetCluster(ctx, clusterID)
			if err != nil {
				return false, err
			}
			for _, hsm := range cluster.Hsms {
				if hsm.ID == hsmID {
					return hsm.State == target, nil
				}
			}
			return false, fmt.Errorf("hsm %s no longer listed in cluster %s", hsmID, clusterID)
		},
		wait.WithInterval(r.timeouts.HsmPollInterval),
		wait.WithMaxAttempts(r.timeouts.HsmPollAttempts),
	)
}
