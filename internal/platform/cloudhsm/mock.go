package cloudhsm

import (
	"context"
)

// MockClient is a mock implementation of ClusterManager for tests.
// Each method delegates to the corresponding Func field; unset fields
// return zero values.
type MockClient struct {
	ListClustersFunc  func(ctx context.Context) ([]Cluster, error)
	GetClusterFunc    func(ctx context.Context, clusterID string) (*Cluster, error)
	ListTagsFunc      func(ctx context.Context, resourceID string) (map[string]string, error)
	TagResourceFunc   func(ctx context.Context, resourceID string, tags map[string]string) error
	CreateClusterFunc func(ctx context.Context, subnetID, hsmType string) (*Cluster, error)
	CreateHsmFunc     func(ctx context.Context, clusterID, availabilityZone string) (*Hsm, error)
	DeleteHsmFunc     func(ctx context.Context, clusterID, hsmID string) error
}

func (m *MockClient) ListClusters(ctx context.Context) ([]Cluster, error) {
	if m.ListClustersFunc == nil {
		return nil, nil
	}
	return m.ListClustersFunc(ctx)
}

func (m *MockClient) GetCluster(ctx context.Context, clusterID string) (*Cluster, error) {
	if m.GetClusterFunc == nil {
		return nil, nil
	}
	return m.GetClusterFunc(ctx, clusterID)
}

func (m *MockClient) ListTags(ctx context.Context, resourceID string) (map[string]string, error) {
	if m.ListTagsFunc == nil {
		return nil, nil
	}
	return m.ListTagsFunc(ctx, resourceID)
}

func (m *MockClient) TagResource(ctx context.Context, resourceID string, tags map[string]string) error {
	if m.TagResourceFunc == nil {
		return nil
	}
	return m.TagResourceFunc(ctx, resourceID, tags)
}

func (m *MockClient) CreateCluster(ctx context.Context, subnetID, hsmType string) (*Cluster, error) {
	if m.CreateClusterFunc == nil {
		return nil, nil
	}
	return m.CreateClusterFunc(ctx, subnetID, hsmType)
}

func (m *MockClient) CreateHsm(ctx context.Context, clusterID, availabilityZone string) (*Hsm, error) {
	if m.CreateHsmFunc == nil {
		return nil, nil
	}
	return m.CreateHsmFunc(ctx, clusterID, availabilityZone)
}

func (m *MockClient) DeleteHsm(ctx context.Context, clusterID, hsmID string) error {
	if m.DeleteHsmFunc == nil {
		return nil
	}
	return m.DeleteHsmFunc(ctx, clusterID, hsmID)
}
