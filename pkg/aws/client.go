// Package aws fetches the EC2 inventory a cost report is computed from.
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"go.uber.org/zap"
)

// EC2API is the subset of the EC2 client used for the inventory
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
	DescribeSpotPriceHistory(ctx context.Context, params *ec2.DescribeSpotPriceHistoryInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSpotPriceHistoryOutput, error)
}

// Options configures a Client
type Options struct {
	Region  string
	Profile string // shared config profile, empty for the default chain
	Retries int    // extra attempts per request after a failure
	Logger  *zap.Logger
}

// Client is the EC2 inventory client for a single region
type Client struct {
	api     EC2API
	region  string
	retries int
	log     *zap.Logger
}

// NewClient creates a Client from the default AWS config chain
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	return NewClientWithAPI(ec2.NewFromConfig(cfg), opts), nil
}

// NewClientWithAPI creates a Client on top of an existing EC2 API implementation
func NewClientWithAPI(api EC2API, opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		api:     api,
		region:  opts.Region,
		retries: opts.Retries,
		log:     log.With(zap.String("region", opts.Region)),
	}
}

// Region returns the region the client queries
func (c *Client) Region() string {
	return c.region
}
