package pricing

import (
	"context"
	"fmt"

	"github.com/younsl/ec2spend/internal/models"
)

// SpotCache memoizes the mean spot price per instance type for one run
type SpotCache struct {
	fetcher SpotPriceFetcher
	stats   *Stats
	means   map[string]float64
}

// NewSpotCache creates an empty cache backed by fetcher
func NewSpotCache(fetcher SpotPriceFetcher, stats *Stats) *SpotCache {
	return &SpotCache{
		fetcher: fetcher,
		stats:   stats,
		means:   make(map[string]float64),
	}
}

// Mean returns the arithmetic mean of the spot price history of instanceType.
// History is fetched once per type; failed fetches are not cached.
func (c *SpotCache) Mean(ctx context.Context, instanceType string) (float64, error) {
	if mean, ok := c.means[instanceType]; ok {
		c.stats.RecordSpotCacheHit(instanceType)
		return mean, nil
	}

	prices, err := c.fetcher.SpotPriceHistory(ctx, instanceType)
	if err != nil {
		return 0, fmt.Errorf("error getting spot price history for %s: %w", instanceType, err)
	}
	c.stats.RecordSpotFetch(instanceType, len(prices))

	if len(prices) == 0 {
		return 0, fmt.Errorf("%w for %s", ErrEmptySpotHistory, instanceType)
	}

	var sum float64
	for _, p := range prices {
		sum += p.Price
	}
	mean := sum / float64(len(prices))

	c.means[instanceType] = mean
	return mean, nil
}

// Resolver computes the effective hourly price of instances
type Resolver struct {
	onDemand OnDemandPricer
	source   PricingSource
	spot     *SpotCache
	stats    *Stats
}

// NewResolver creates a Resolver. spot may be nil when no spot instances are expected.
func NewResolver(onDemand OnDemandPricer, source PricingSource, spot *SpotCache, stats *Stats) *Resolver {
	return &Resolver{
		onDemand: onDemand,
		source:   source,
		spot:     spot,
		stats:    stats,
	}
}

// Resolve returns the hourly price of instance: the mean spot price for spot
// instances, the on-demand price otherwise, plus the detailed monitoring surcharge
func (r *Resolver) Resolve(ctx context.Context, instance models.Instance) (float64, error) {
	var price float64

	if instance.IsSpot() {
		if r.spot == nil {
			return 0, fmt.Errorf("no spot price source configured for spot instance %s", instance.InstanceID)
		}
		mean, err := r.spot.Mean(ctx, instance.InstanceType)
		if err != nil {
			return 0, err
		}
		price = mean
	} else {
		onDemand, err := r.onDemand.OnDemandPrice(ctx, instance.InstanceType)
		if err != nil {
			return 0, fmt.Errorf("error pricing instance %s: %w", instance.InstanceID, err)
		}
		r.stats.RecordOnDemand(instance.InstanceType, r.source)
		price = onDemand
	}

	if instance.Monitored {
		price += CWHourlyRate
	}

	return price, nil
}

// ResolveAll sets Price on every instance, stopping at the first error
func (r *Resolver) ResolveAll(ctx context.Context, instances []models.CostedInstance) error {
	for i := range instances {
		price, err := r.Resolve(ctx, instances[i].Instance)
		if err != nil {
			return err
		}
		instances[i].Price = price
	}
	return nil
}
