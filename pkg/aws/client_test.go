package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/younsl/ec2spend/internal/models"
)

type fakeEC2 struct {
	instances   *ec2.DescribeInstancesOutput
	volumes     *ec2.DescribeVolumesOutput
	spot        *ec2.DescribeSpotPriceHistoryOutput
	failures    int // number of calls failing before success
	err         error
	calls       int
	spotRequest *ec2.DescribeSpotPriceHistoryInput
}

func (f *fakeEC2) fail() error {
	f.calls++
	if f.calls <= f.failures {
		return f.err
	}
	return nil
}

func (f *fakeEC2) DescribeInstances(_ context.Context, _ *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return f.instances, nil
}

func (f *fakeEC2) DescribeVolumes(_ context.Context, _ *ec2.DescribeVolumesInput, _ ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return f.volumes, nil
}

func (f *fakeEC2) DescribeSpotPriceHistory(_ context.Context, params *ec2.DescribeSpotPriceHistoryInput, _ ...func(*ec2.Options)) (*ec2.DescribeSpotPriceHistoryOutput, error) {
	f.spotRequest = params
	if err := f.fail(); err != nil {
		return nil, err
	}
	return f.spot, nil
}

func TestListInstancesFlattensReservations(t *testing.T) {
	api := &fakeEC2{instances: &ec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{
			{Instances: []types.Instance{
				{
					InstanceId:            aws.String("i-1"),
					InstanceType:          types.InstanceTypeM1Small,
					State:                 &types.InstanceState{Name: types.InstanceStateNameRunning},
					Placement:             &types.Placement{AvailabilityZone: aws.String("us-east-1a")},
					KeyName:               aws.String("deploy"),
					RootDeviceType:        types.DeviceTypeEbs,
					Monitoring:            &types.Monitoring{State: types.MonitoringStateEnabled},
					Architecture:          types.ArchitectureValuesX8664,
					ImageId:               aws.String("ami-1"),
					SpotInstanceRequestId: aws.String("sir-1"),
					Tags: []types.Tag{
						{Key: aws.String("Name"), Value: aws.String("web-1")},
						{Key: aws.String("env"), Value: aws.String("prod")},
					},
					SecurityGroups: []types.GroupIdentifier{{GroupName: aws.String("web")}},
					BlockDeviceMappings: []types.InstanceBlockDeviceMapping{
						{DeviceName: aws.String("/dev/sda1"), Ebs: &types.EbsInstanceBlockDevice{VolumeId: aws.String("vol-1")}},
						{DeviceName: aws.String("/dev/sdb")},
					},
				},
			}},
			{Instances: []types.Instance{
				{InstanceId: aws.String("i-2"), InstanceType: types.InstanceTypeT1Micro},
			}},
		},
	}}
	c := NewClientWithAPI(api, Options{Region: "us-east-1", Logger: zaptest.NewLogger(t)})

	instances, err := c.ListInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, instances, 2)

	assert.Equal(t, models.Instance{
		InstanceID:       "i-1",
		InstanceType:     "m1.small",
		Tags:             map[string]string{"Name": "web-1", "env": "prod"},
		State:            "running",
		AvailabilityZone: "us-east-1a",
		KeyName:          "deploy",
		RootDeviceType:   "ebs",
		Monitored:        true,
		Architecture:     "x86_64",
		ImageID:          "ami-1",
		SecurityGroups:   []string{"web"},
		SpotRequestID:    "sir-1",
		BlockDevices:     []models.BlockDevice{{DeviceName: "/dev/sda1", VolumeID: "vol-1"}},
	}, instances[0])

	assert.Equal(t, "i-2", instances[1].InstanceID)
	assert.False(t, instances[1].Monitored)
	assert.Empty(t, instances[1].State)
	assert.False(t, instances[1].IsSpot())
}

func TestListVolumes(t *testing.T) {
	api := &fakeEC2{volumes: &ec2.DescribeVolumesOutput{
		Volumes: []types.Volume{
			{
				VolumeId:         aws.String("vol-1"),
				Size:             aws.Int32(100),
				VolumeType:       types.VolumeTypeGp2,
				State:            types.VolumeStateInUse,
				AvailabilityZone: aws.String("us-east-1a"),
			},
		},
	}}
	c := NewClientWithAPI(api, Options{Region: "us-east-1"})

	volumes, err := c.ListVolumes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Volume{{
		VolumeID:         "vol-1",
		Size:             100,
		VolumeType:       "gp2",
		State:            "in-use",
		AvailabilityZone: "us-east-1a",
	}}, volumes)
}

func TestSpotPriceHistory(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	api := &fakeEC2{spot: &ec2.DescribeSpotPriceHistoryOutput{
		SpotPriceHistory: []types.SpotPrice{
			{InstanceType: types.InstanceTypeM1Large, AvailabilityZone: aws.String("us-east-1a"), SpotPrice: aws.String("0.10"), Timestamp: &ts},
			{InstanceType: types.InstanceTypeM1Large, AvailabilityZone: aws.String("us-east-1b"), SpotPrice: aws.String("0.30")},
		},
	}}
	c := NewClientWithAPI(api, Options{Region: "us-east-1"})

	prices, err := c.SpotPriceHistory(context.Background(), "m1.large")
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, 0.10, prices[0].Price)
	assert.Equal(t, ts, prices[0].Timestamp)
	assert.Equal(t, "us-east-1b", prices[1].AvailabilityZone)

	require.NotNil(t, api.spotRequest)
	assert.Equal(t, []types.InstanceType{"m1.large"}, api.spotRequest.InstanceTypes)
	assert.Equal(t, []string{"Linux/UNIX"}, api.spotRequest.ProductDescriptions)
}

func TestSpotPriceHistoryBadPrice(t *testing.T) {
	api := &fakeEC2{spot: &ec2.DescribeSpotPriceHistoryOutput{
		SpotPriceHistory: []types.SpotPrice{{SpotPrice: aws.String("n/a")}},
	}}
	c := NewClientWithAPI(api, Options{Region: "us-east-1"})

	_, err := c.SpotPriceHistory(context.Background(), "m1.large")
	assert.Error(t, err)
}

func TestFetchErrorsPropagateWithoutRetry(t *testing.T) {
	apiErr := errors.New("UnauthorizedOperation")
	api := &fakeEC2{failures: 5, err: apiErr}
	c := NewClientWithAPI(api, Options{Region: "us-east-1"})

	_, err := c.ListInstances(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apiErr))
	assert.Equal(t, 1, api.calls)

	_, err = c.ListVolumes(context.Background())
	assert.True(t, errors.Is(err, apiErr))
	_, err = c.SpotPriceHistory(context.Background(), "m1.small")
	assert.True(t, errors.Is(err, apiErr))
}

func TestRetryRecoversFromTransientFailure(t *testing.T) {
	api := &fakeEC2{
		failures: 1,
		err:      errors.New("RequestLimitExceeded"),
		volumes:  &ec2.DescribeVolumesOutput{},
	}
	c := NewClientWithAPI(api, Options{Region: "us-east-1", Retries: 2, Logger: zaptest.NewLogger(t)})

	volumes, err := c.ListVolumes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, volumes)
	assert.Equal(t, 2, api.calls)
}

func TestRegion(t *testing.T) {
	c := NewClientWithAPI(&fakeEC2{}, Options{Region: "eu-west-1"})
	assert.Equal(t, "eu-west-1", c.Region())
}
