// Package pricing turns instances and volumes into hourly cost figures.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/younsl/ec2spend/internal/models"
)

// PricingSource represents the source of on-demand pricing information
type PricingSource string

const (
	// PricingSourceBuiltin indicates prices from the static LegacyPriceTable
	PricingSourceBuiltin PricingSource = "builtin"

	// PricingSourceCatalog indicates prices from the ec2-instances-info catalog
	PricingSourceCatalog PricingSource = "catalog"

	// PricingSourceAPI indicates prices from the AWS Pricing API
	PricingSourceAPI PricingSource = "api"
)

// Rates are derived from monthly prices over a 30 day month
const (
	HoursPerMonth = 720

	// EBSMonthlyRate is USD per GiB-month of provisioned EBS storage
	EBSMonthlyRate = 0.1

	// CWMonthlyRate is USD per instance-month of detailed monitoring
	CWMonthlyRate = 3.50

	EBSHourlyRate = EBSMonthlyRate / HoursPerMonth
	CWHourlyRate  = CWMonthlyRate / HoursPerMonth
)

var (
	// ErrUnknownInstanceType means the price table has no entry for the type.
	// The table is stale and has to be updated.
	ErrUnknownInstanceType = errors.New("unknown instance type")

	// ErrEmptySpotHistory means no spot price samples were returned for a type
	ErrEmptySpotHistory = errors.New("empty spot price history")
)

// OnDemandPricer returns the hourly on-demand price of an instance type
type OnDemandPricer interface {
	OnDemandPrice(ctx context.Context, instanceType string) (float64, error)
}

// SpotPriceFetcher returns the spot price history of an instance type
type SpotPriceFetcher interface {
	SpotPriceHistory(ctx context.Context, instanceType string) ([]models.SpotPrice, error)
}

// PriceEntry holds the hourly prices of one instance type
type PriceEntry struct {
	OnDemand  float64 `json:"onDemand"`
	Alternate float64 `json:"alternate,omitempty"` // Windows on-demand, informational
}

// PriceTable maps instance types to their hourly prices
type PriceTable map[string]PriceEntry

// OnDemandPrice implements OnDemandPricer
func (t PriceTable) OnDemandPrice(_ context.Context, instanceType string) (float64, error) {
	entry, ok := t[instanceType]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownInstanceType, instanceType)
	}
	return entry.OnDemand, nil
}

// Types returns the instance types of the table in sorted order
func (t PriceTable) Types() []string {
	types := make([]string, 0, len(t))
	for k := range t {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}

// LegacyPriceTable is the builtin us-east-1 price list.
// Never mutate it; copy it if a modified table is needed.
var LegacyPriceTable = PriceTable{
	// Standard
	"m1.small":  {OnDemand: 0.085, Alternate: 0.12},
	"m1.large":  {OnDemand: 0.34, Alternate: 0.48},
	"m1.xlarge": {OnDemand: 0.68, Alternate: 0.96},
	// Micro
	"t1.micro": {OnDemand: 0.02, Alternate: 0.03},
	// High-Memory
	"m2.xlarge":  {OnDemand: 0.50, Alternate: 0.62},
	"m2.2xlarge": {OnDemand: 1.00, Alternate: 1.24},
	"m2.4xlarge": {OnDemand: 2.00, Alternate: 2.48},
	// High-CPU
	"c1.medium": {OnDemand: 0.17, Alternate: 0.29},
	"c1.xlarge": {OnDemand: 0.68, Alternate: 1.16},
	// Cluster-Compute
	"cc1.4xlarge": {OnDemand: 1.30, Alternate: 1.61},
	"cc1.8xlarge": {OnDemand: 2.40, Alternate: 2.97},
	"cg1.4xlarge": {OnDemand: 2.10, Alternate: 2.60},
}
