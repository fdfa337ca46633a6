package pricing

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
)

// The AWS Pricing API is only available in us-east-1 and ap-south-1
const pricingAPIRegion = "us-east-1"

// ProductsAPI is the subset of the AWS Pricing API client used here
type ProductsAPI interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

// APIPricer looks up Linux on-demand prices from the AWS Pricing API.
// Prices are memoized per instance type for the lifetime of the pricer.
type APIPricer struct {
	client ProductsAPI
	region string
	cache  map[string]float64
}

// NewAPIPricer creates an APIPricer for instances in region
func NewAPIPricer(ctx context.Context, region string, optFns ...func(*config.LoadOptions) error) (*APIPricer, error) {
	opts := append([]func(*config.LoadOptions) error{config.WithRegion(pricingAPIRegion)}, optFns...)
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config for pricing API: %w", err)
	}

	return NewAPIPricerWithClient(pricing.NewFromConfig(cfg), region), nil
}

// NewAPIPricerWithClient creates an APIPricer using client
func NewAPIPricerWithClient(client ProductsAPI, region string) *APIPricer {
	return &APIPricer{
		client: client,
		region: region,
		cache:  make(map[string]float64),
	}
}

// OnDemandPrice implements OnDemandPricer
func (p *APIPricer) OnDemandPrice(ctx context.Context, instanceType string) (float64, error) {
	if price, ok := p.cache[instanceType]; ok {
		return price, nil
	}

	// Construct filters for EC2 Linux on-demand instances
	filters := []types.Filter{
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("instanceType"),
			Value: aws.String(instanceType),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("location"),
			Value: aws.String(GetRegionDescriptiveName(p.region)),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("operatingSystem"),
			Value: aws.String("Linux"),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("tenancy"),
			Value: aws.String("Shared"),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("preInstalledSw"),
			Value: aws.String("NA"),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("capacitystatus"),
			Value: aws.String("Used"),
		},
	}

	resp, err := p.client.GetProducts(ctx, &pricing.GetProductsInput{
		ServiceCode: aws.String("AmazonEC2"),
		Filters:     filters,
		MaxResults:  aws.Int32(1),
	})
	if err != nil {
		return 0, fmt.Errorf("error calling AWS Pricing API: %w", err)
	}

	if len(resp.PriceList) == 0 {
		return 0, fmt.Errorf("%w: %s has no price in region %s", ErrUnknownInstanceType, instanceType, p.region)
	}

	price, err := ExtractOnDemandPrice(resp.PriceList[0])
	if err != nil {
		return 0, err
	}

	p.cache[instanceType] = price
	return price, nil
}
