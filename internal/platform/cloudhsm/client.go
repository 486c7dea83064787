package cloudhsm

import (
	"context"
)

// ClusterManager defines the interface for managing CloudHSM clusters
// and their HSM instances. It abstracts the underlying control-plane
// API so the reconciler can be tested against a mock.
//
// All calls are remote and may be slow; implementations must respect
// context cancellation.
type ClusterManager interface {
	// ListClusters returns all clusters in the account and region,
	// following pagination cursors until the listing is exhausted.
	ListClusters(ctx context.Context) ([]Cluster, error)

	// GetCluster returns the cluster with the given ID, or an error
	// satisfying IsNotFound if no such cluster exists.
	GetCluster(ctx context.Context, clusterID string) (*Cluster, error)

	// ListTags returns the full tag set attached to a resource,
	// following pagination cursors.
	ListTags(ctx context.Context, resourceID string) (map[string]string, error)

	// TagResource attaches the given tags to a resource. Existing tags
	// with the same keys are overwritten.
	TagResource(ctx context.Context, resourceID string, tags map[string]string) error

	// CreateCluster requests creation of a new cluster in the given
	// subnet with the given HSM type. The returned cluster is typically
	// still in CREATE_IN_PROGRESS.
	CreateCluster(ctx context.Context, subnetID, hsmType string) (*Cluster, error)

	// CreateHsm requests creation of a new HSM instance in the cluster,
	// placed in the given availability zone.
	CreateHsm(ctx context.Context, clusterID, availabilityZone string) (*Hsm, error)

	// DeleteHsm requests deletion of an HSM instance.
	DeleteHsm(ctx context.Context, clusterID, hsmID string) error
}
