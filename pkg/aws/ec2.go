package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"go.uber.org/zap"

	"github.com/younsl/ec2spend/internal/models"
	"github.com/younsl/ec2spend/pkg/utils"
)

// ListInstances returns every instance of every reservation in the region
func (c *Client) ListInstances(ctx context.Context) ([]models.Instance, error) {
	var result *ec2.DescribeInstancesOutput
	err := c.withRetry(ctx, "DescribeInstances", func() error {
		var err error
		result, err = c.api.DescribeInstances(ctx, &ec2.DescribeInstancesInput{})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error querying EC2 instances: %w", err)
	}

	if result.NextToken != nil {
		c.log.Warn("instance list is truncated, only the first page is reported")
	}

	instances := []models.Instance{}
	for _, reservation := range result.Reservations {
		for _, instance := range reservation.Instances {
			instances = append(instances, toInstance(instance))
		}
	}

	c.log.Debug("listed instances", zap.Int("count", len(instances)))
	return instances, nil
}

func toInstance(instance types.Instance) models.Instance {
	var state string
	if instance.State != nil {
		state = string(instance.State.Name)
	}

	var zone string
	if instance.Placement != nil {
		zone = utils.SafeDeref(instance.Placement.AvailabilityZone)
	}

	groups := make([]string, 0, len(instance.SecurityGroups))
	for _, g := range instance.SecurityGroups {
		groups = append(groups, utils.SafeDeref(g.GroupName))
	}

	var devices []models.BlockDevice
	for _, bdm := range instance.BlockDeviceMappings {
		if bdm.Ebs == nil || bdm.Ebs.VolumeId == nil {
			continue
		}
		devices = append(devices, models.BlockDevice{
			DeviceName: utils.SafeDeref(bdm.DeviceName),
			VolumeID:   *bdm.Ebs.VolumeId,
		})
	}

	return models.Instance{
		InstanceID:       utils.SafeDeref(instance.InstanceId),
		InstanceType:     string(instance.InstanceType),
		Tags:             utils.GetTagsMap(instance.Tags),
		State:            state,
		AvailabilityZone: zone,
		KeyName:          utils.SafeDeref(instance.KeyName),
		RootDeviceType:   string(instance.RootDeviceType),
		Monitored:        instance.Monitoring != nil && instance.Monitoring.State == types.MonitoringStateEnabled,
		Architecture:     string(instance.Architecture),
		ImageID:          utils.SafeDeref(instance.ImageId),
		Platform:         string(instance.Platform),
		SecurityGroups:   groups,
		SpotRequestID:    utils.SafeDeref(instance.SpotInstanceRequestId),
		BlockDevices:     devices,
	}
}
