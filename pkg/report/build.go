package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/younsl/ec2spend/internal/models"
	"github.com/younsl/ec2spend/pkg/filter"
	"github.com/younsl/ec2spend/pkg/pricing"
)

// Inventory supplies the raw instance and volume records
type Inventory interface {
	ListInstances(ctx context.Context) ([]models.Instance, error)
	ListVolumes(ctx context.Context) ([]models.Volume, error)
}

// Stage names reported to Pipeline.OnStage
const (
	StageInstances = "instances"
	StageVolumes   = "volumes"
	StagePrices    = "prices"
)

// Pipeline runs one fetch, filter, price and aggregate pass
type Pipeline struct {
	Inventory Inventory
	Resolver  *pricing.Resolver
	Logger    *zap.Logger

	// OnStage is called when a stage starts; the returned func is called with
	// the number of records the stage produced once it finished. Optional.
	OnStage func(stage string) func(count int)
}

func (p *Pipeline) stage(name string) func(int) {
	if p.OnStage == nil {
		return func(int) {}
	}
	return p.OnStage(name)
}

// Build returns the full report or the first error; it never returns a partial report
func (p *Pipeline) Build(ctx context.Context, spec filter.Spec) (*Report, error) {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}

	log.Info("getting instance information")
	done := p.stage(StageInstances)
	raw, err := p.Inventory.ListInstances(ctx)
	if err != nil {
		done(0)
		return nil, err
	}
	selected := filter.Apply(raw, spec, log)
	done(len(selected))
	log.Info("got instance information",
		zap.Int("instances", len(raw)),
		zap.Int("selected", len(selected)),
	)

	costed := make([]models.CostedInstance, len(selected))
	for i, instance := range selected {
		costed[i] = models.CostedInstance{Instance: instance}
	}

	log.Info("getting volume information")
	done = p.stage(StageVolumes)
	volumes, err := p.Inventory.ListVolumes(ctx)
	if err != nil {
		done(0)
		return nil, err
	}
	unclaimed := pricing.AssociateVolumes(costed, volumes)
	done(len(volumes))
	log.Info("got volume information",
		zap.Int("volumes", len(volumes)),
		zap.Int("unclaimed", len(unclaimed)),
	)

	done = p.stage(StagePrices)
	if err := p.Resolver.ResolveAll(ctx, costed); err != nil {
		done(0)
		return nil, fmt.Errorf("error resolving prices: %w", err)
	}
	done(len(costed))

	r := Aggregate(costed)
	r.UnclaimedVolumes = unclaimed
	return r, nil
}
