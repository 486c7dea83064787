package cloudhsm

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudhsmv2"
	"github.com/aws/aws-sdk-go-v2/service/cloudhsmv2/types"
	"github.com/sethvargo/go-retry"
)

// RealClient implements ClusterManager using the AWS CloudHSM v2 API.
type RealClient struct {
	api *cloudhsmv2.Client

	retryMaxAttempts  uint64
	retryInitialDelay time.Duration
}

// ClientOption configures a RealClient.
type ClientOption func(*clientOptions)

type clientOptions struct {
	region            string
	endpoint          string
	accessKey         string
	secretKey         string
	retryMaxAttempts  uint64
	retryInitialDelay time.Duration
}

// WithRegion overrides the region resolved from the environment.
func WithRegion(region string) ClientOption {
	return func(o *clientOptions) {
		o.region = region
	}
}

// WithEndpoint overrides the service endpoint, for VPC interface
// endpoints and tests.
func WithEndpoint(endpoint string) ClientOption {
	return func(o *clientOptions) {
		o.endpoint = endpoint
	}
}

// WithStaticCredentials bypasses the default credential chain.
func WithStaticCredentials(accessKey, secretKey string) ClientOption {
	return func(o *clientOptions) {
		o.accessKey = accessKey
		o.secretKey = secretKey
	}
}

// WithRetryPolicy sets the transient-fault retry policy applied to
// every control-plane call.
func WithRetryPolicy(maxAttempts int, initialDelay time.Duration) ClientOption {
	return func(o *clientOptions) {
		if maxAttempts > 0 {
			o.retryMaxAttempts = uint64(maxAttempts)
		}
		if initialDelay > 0 {
			o.retryInitialDelay = initialDelay
		}
	}
}

// NewRealClient creates a new CloudHSM client. Credentials and region
// resolve through the SDK default chain unless overridden.
func NewRealClient(ctx context.Context, opts ...ClientOption) (*RealClient, error) {
	o := &clientOptions{
		retryMaxAttempts:  5,
		retryInitialDelay: 1 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if o.region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(o.region))
	}
	if o.accessKey != "" {
		loadOpts = append(loadOpts,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(o.accessKey, o.secretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	api := cloudhsmv2.NewFromConfig(cfg, func(co *cloudhsmv2.Options) {
		// Transient-fault handling lives in do(); the SDK's built-in
		// retryer would stack a second policy on top of it.
		co.Retryer = aws.NopRetryer{}
		if o.endpoint != "" {
			co.BaseEndpoint = aws.String(o.endpoint)
		}
	})

	return &RealClient{
		api:               api,
		retryMaxAttempts:  o.retryMaxAttempts,
		retryInitialDelay: o.retryInitialDelay,
	}, nil
}

// do wraps a control-plane call with exponential backoff on transient
// faults. Throttling and internal service failures are retried, every
// other fault fails fast.
func (c *RealClient) do(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(c.retryMaxAttempts, retry.NewExponential(c.retryInitialDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			if IsRetryable(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
}

// ListClusters returns all clusters, following pagination cursors.
func (c *RealClient) ListClusters(ctx context.Context) ([]Cluster, error) {
	var clusters []Cluster
	var nextToken *string

	for {
		var out *cloudhsmv2.DescribeClustersOutput
		err := c.do(ctx, func(ctx context.Context) error {
			var err error
			out, err = c.api.DescribeClusters(ctx, &cloudhsmv2.DescribeClustersInput{
				NextToken: nextToken,
			})
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe clusters: %w", err)
		}

		for _, cl := range out.Clusters {
			clusters = append(clusters, clusterFromAPI(cl))
		}

		if out.NextToken == nil {
			return clusters, nil
		}
		nextToken = out.NextToken
	}
}

// GetCluster returns a single cluster by ID.
func (c *RealClient) GetCluster(ctx context.Context, clusterID string) (*Cluster, error) {
	var out *cloudhsmv2.DescribeClustersOutput
	err := c.do(ctx, func(ctx context.Context) error {
		var err error
		out, err = c.api.DescribeClusters(ctx, &cloudhsmv2.DescribeClustersInput{
			Filters: map[string][]string{"clusterIds": {clusterID}},
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe cluster %s: %w", clusterID, err)
	}

	if len(out.Clusters) == 0 {
		return nil, &types.CloudHsmResourceNotFoundException{
			Message: aws.String(fmt.Sprintf("cluster %s not found", clusterID)),
		}
	}

	cluster := clusterFromAPI(out.Clusters[0])
	return &cluster, nil
}

// ListTags returns the tag set of a resource, following pagination cursors.
func (c *RealClient) ListTags(ctx context.Context, resourceID string) (map[string]string, error) {
	tags := make(map[string]string)
	var nextToken *string

	for {
		var out *cloudhsmv2.ListTagsOutput
		err := c.do(ctx, func(ctx context.Context) error {
			var err error
			out, err = c.api.ListTags(ctx, &cloudhsmv2.ListTagsInput{
				ResourceId: aws.String(resourceID),
				NextToken:  nextToken,
			})
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list tags for %s: %w", resourceID, err)
		}

		for _, tag := range out.TagList {
			tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}

		if out.NextToken == nil {
			return tags, nil
		}
		nextToken = out.NextToken
	}
}

// TagResource attaches tags to a resource.
func (c *RealClient) TagResource(ctx context.Context, resourceID string, tags map[string]string) error {
	tagList := make([]types.Tag, 0, len(tags))
	for k, v := range tags {
		tagList = append(tagList, types.Tag{Key: aws.String(k), Value: aws.String(v)})
	}

	err := c.do(ctx, func(ctx context.Context) error {
		_, err := c.api.TagResource(ctx, &cloudhsmv2.TagResourceInput{
			ResourceId: aws.String(resourceID),
			TagList:    tagList,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to tag resource %s: %w", resourceID, err)
	}
	return nil
}

// CreateCluster requests creation of a new cluster.
func (c *RealClient) CreateCluster(ctx context.Context, subnetID, hsmType string) (*Cluster, error) {
	var out *cloudhsmv2.CreateClusterOutput
	err := c.do(ctx, func(ctx context.Context) error {
		var err error
		out, err = c.api.CreateCluster(ctx, &cloudhsmv2.CreateClusterInput{
			SubnetIds: []string{subnetID},
			HsmType:   aws.String(hsmType),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cluster: %w", err)
	}

	cluster := clusterFromAPI(*out.Cluster)
	return &cluster, nil
}

// CreateHsm requests creation of a new HSM instance in the cluster.
func (c *RealClient) CreateHsm(ctx context.Context, clusterID, availabilityZone string) (*Hsm, error) {
	var out *cloudhsmv2.CreateHsmOutput
	err := c.do(ctx, func(ctx context.Context) error {
		var err error
		out, err = c.api.CreateHsm(ctx, &cloudhsmv2.CreateHsmInput{
			ClusterId:        aws.String(clusterID),
			AvailabilityZone: aws.String(availabilityZone),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create HSM in cluster %s: %w", clusterID, err)
	}

	hsm := hsmFromAPI(*out.Hsm)
	return &hsm, nil
}

// DeleteHsm requests deletion of an HSM instance.
func (c *RealClient) DeleteHsm(ctx context.Context, clusterID, hsmID string) error {
	err := c.do(ctx, func(ctx context.Context) error {
		_, err := c.api.DeleteHsm(ctx, &cloudhsmv2.DeleteHsmInput{
			ClusterId: aws.String(clusterID),
			HsmId:     aws.String(hsmID),
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete HSM %s in cluster %s: %w", hsmID, clusterID, err)
	}
	return nil
}

func clusterFromAPI(c types.Cluster) Cluster {
	cluster := Cluster{
		ID:      aws.ToString(c.ClusterId),
		State:   ClusterState(c.State),
		HsmType: aws.ToString(c.HsmType),
	}
	for _, subnetID := range c.SubnetMapping {
		cluster.SubnetIDs = append(cluster.SubnetIDs, subnetID)
	}
	for _, h := range c.Hsms {
		cluster.Hsms = append(cluster.Hsms, hsmFromAPI(h))
	}
	return cluster
}

func hsmFromAPI(h types.Hsm) Hsm {
	return Hsm{
		ID:               aws.ToString(h.HsmId),
		State:            HsmState(h.State),
		AvailabilityZone: aws.ToString(h.AvailabilityZone),
	}
}
