// Package report aggregates costed instances into per-group cost breakdowns.
package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/younsl/ec2spend/internal/models"
	"github.com/younsl/ec2spend/pkg/pricing"
)

var hoursPerMonth = decimal.NewFromInt(pricing.HoursPerMonth)

// GroupAggregate sums the hourly costs of a group of instances
type GroupAggregate struct {
	Count        int             `json:"count"`
	InstanceCost decimal.Decimal `json:"instance"`
	EBSCost      decimal.Decimal `json:"ebs"`
}

func (g *GroupAggregate) add(instance models.CostedInstance) {
	g.Count++
	g.InstanceCost = g.InstanceCost.Add(decimal.NewFromFloat(instance.Price))
	g.EBSCost = g.EBSCost.Add(decimal.NewFromFloat(instance.EBSPrice))
}

// Total returns the hourly instance plus storage cost
func (g GroupAggregate) Total() decimal.Decimal {
	return g.InstanceCost.Add(g.EBSCost)
}

// Monthly projects the hourly total over a 720 hour month
func (g GroupAggregate) Monthly() decimal.Decimal {
	return g.Total().Mul(hoursPerMonth)
}

// Row is one group of a Grouping
type Row struct {
	Key string
	GroupAggregate
}

// Grouping holds the aggregates of one dimension in first-seen order
type Grouping struct {
	Title  string
	keys   []string
	groups map[string]*GroupAggregate
}

func newGrouping(title string) *Grouping {
	return &Grouping{Title: title, groups: make(map[string]*GroupAggregate)}
}

func (g *Grouping) add(key string, instance models.CostedInstance) {
	agg, ok := g.groups[key]
	if !ok {
		agg = &GroupAggregate{}
		g.groups[key] = agg
		g.keys = append(g.keys, key)
	}
	agg.add(instance)
}

// Rows returns the groups in first-seen order
func (g *Grouping) Rows() []Row {
	rows := make([]Row, 0, len(g.keys))
	for _, k := range g.keys {
		rows = append(rows, Row{Key: k, GroupAggregate: *g.groups[k]})
	}
	return rows
}

// Get returns the aggregate for key
func (g *Grouping) Get(key string) (GroupAggregate, bool) {
	agg, ok := g.groups[key]
	if !ok {
		return GroupAggregate{}, false
	}
	return *agg, true
}

// Len returns the number of groups
func (g *Grouping) Len() int {
	return len(g.keys)
}

// Report is the aggregated cost breakdown of one run
type Report struct {
	ByKeyName *Grouping
	ByAMI     *Grouping
	ByTag     *Grouping // not a partition: an instance counts once per tag
	Total     GroupAggregate

	// Instances are the filtered instances the report was built from
	Instances []models.CostedInstance

	// UnclaimedVolumes are volumes no reported instance is attached to
	UnclaimedVolumes []string
}

// Sections returns the groupings in print order
func (r *Report) Sections() []*Grouping {
	return []*Grouping{r.ByKeyName, r.ByAMI, r.ByTag}
}

// TagKey returns the ByTag group key of a tag
func TagKey(name, value string) string {
	return fmt.Sprintf("%s=>%s", name, value)
}

// Aggregate groups instances by key name, AMI id and tag
func Aggregate(instances []models.CostedInstance) *Report {
	r := &Report{
		ByKeyName: newGrouping("Key Name"),
		ByAMI:     newGrouping("AMI ID"),
		ByTag:     newGrouping("Tag=>Value"),
		Instances: instances,
	}

	for _, instance := range instances {
		r.ByKeyName.add(instance.KeyName, instance)
		r.ByAMI.add(instance.ImageID, instance)
		r.Total.add(instance)

		names := make([]string, 0, len(instance.Tags))
		for name := range instance.Tags {
			if name == "Name" {
				continue
			}
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			r.ByTag.add(TagKey(name, instance.Tags[name]), instance)
		}
	}

	return r
}
