package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"go.uber.org/zap"

	"github.com/younsl/ec2spend/internal/models"
	"github.com/younsl/ec2spend/pkg/utils"
)

// ListVolumes returns every EBS volume in the region
func (c *Client) ListVolumes(ctx context.Context) ([]models.Volume, error) {
	var result *ec2.DescribeVolumesOutput
	err := c.withRetry(ctx, "DescribeVolumes", func() error {
		var err error
		result, err = c.api.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error querying EBS volumes: %w", err)
	}

	if result.NextToken != nil {
		c.log.Warn("volume list is truncated, only the first page is reported")
	}

	volumes := make([]models.Volume, 0, len(result.Volumes))
	for _, volume := range result.Volumes {
		volumes = append(volumes, models.Volume{
			VolumeID:         utils.SafeDeref(volume.VolumeId),
			Size:             utils.SafeDerefInt32(volume.Size),
			VolumeType:       string(volume.VolumeType),
			State:            string(volume.State),
			AvailabilityZone: utils.SafeDeref(volume.AvailabilityZone),
		})
	}

	c.log.Debug("listed volumes", zap.Int("count", len(volumes)))
	return volumes, nil
}
