package aws

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"go.uber.org/zap"

	"github.com/younsl/ec2spend/internal/models"
	"github.com/younsl/ec2spend/pkg/utils"
)

// spotProductDescription limits the history to Linux instances
const spotProductDescription = "Linux/UNIX"

// SpotPriceHistory returns the recent spot price samples of instanceType
func (c *Client) SpotPriceHistory(ctx context.Context, instanceType string) ([]models.SpotPrice, error) {
	input := &ec2.DescribeSpotPriceHistoryInput{
		InstanceTypes:       []types.InstanceType{types.InstanceType(instanceType)},
		ProductDescriptions: []string{spotProductDescription},
	}

	var result *ec2.DescribeSpotPriceHistoryOutput
	err := c.withRetry(ctx, "DescribeSpotPriceHistory", func() error {
		var err error
		result, err = c.api.DescribeSpotPriceHistory(ctx, input)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error querying spot price history: %w", err)
	}

	prices := make([]models.SpotPrice, 0, len(result.SpotPriceHistory))
	for _, sp := range result.SpotPriceHistory {
		price, err := strconv.ParseFloat(utils.SafeDeref(sp.SpotPrice), 64)
		if err != nil {
			return nil, fmt.Errorf("error parsing spot price %q: %w", utils.SafeDeref(sp.SpotPrice), err)
		}

		sample := models.SpotPrice{
			InstanceType:     string(sp.InstanceType),
			AvailabilityZone: utils.SafeDeref(sp.AvailabilityZone),
			Price:            price,
		}
		if sp.Timestamp != nil {
			sample.Timestamp = *sp.Timestamp
		}
		prices = append(prices, sample)
	}

	c.log.Debug("fetched spot price history",
		zap.String("instance_type", instanceType),
		zap.Int("samples", len(prices)),
	)
	return prices, nil
}
