package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younsl/ec2spend/internal/models"
)

func costedInstance(key, ami string, price, ebs float64, tags map[string]string) models.CostedInstance {
	return models.CostedInstance{
		Instance: models.Instance{KeyName: key, ImageID: ami, Tags: tags},
		Price:    price,
		EBSPrice: ebs,
	}
}

func TestAggregate(t *testing.T) {
	instances := []models.CostedInstance{
		costedInstance("deploy", "ami-1", 0.085, 0.01, map[string]string{"Name": "web-1", "env": "prod", "team": "web"}),
		costedInstance("deploy", "ami-2", 0.34, 0, map[string]string{"env": "prod"}),
		costedInstance("ops", "ami-1", 0.17, 0.02, map[string]string{"Name": "batch"}),
	}

	r := Aggregate(instances)

	assert.Equal(t, 3, r.Total.Count)
	assert.Equal(t, "0.595", r.Total.InstanceCost.String())
	assert.Equal(t, "0.03", r.Total.EBSCost.String())

	deploy, ok := r.ByKeyName.Get("deploy")
	require.True(t, ok)
	assert.Equal(t, 2, deploy.Count)
	assert.Equal(t, "0.425", deploy.InstanceCost.String())

	ami1, ok := r.ByAMI.Get("ami-1")
	require.True(t, ok)
	assert.Equal(t, 2, ami1.Count)
	assert.Equal(t, "0.03", ami1.EBSCost.String())

	prod, ok := r.ByTag.Get("env=>prod")
	require.True(t, ok)
	assert.Equal(t, 2, prod.Count)

	_, ok = r.ByTag.Get("Name=>web-1")
	assert.False(t, ok, "Name tags are not grouped")
}

func TestAggregatePartitions(t *testing.T) {
	instances := []models.CostedInstance{
		costedInstance("a", "ami-1", 0.1, 0, map[string]string{"x": "1", "y": "2"}),
		costedInstance("b", "ami-1", 0.1, 0, map[string]string{"x": "1"}),
		costedInstance("a", "ami-2", 0.1, 0, map[string]string{"y": "3", "z": "4"}),
	}

	r := Aggregate(instances)

	sum := func(g *Grouping) int {
		total := 0
		for _, row := range g.Rows() {
			total += row.Count
		}
		return total
	}

	assert.Equal(t, r.Total.Count, sum(r.ByKeyName))
	assert.Equal(t, r.Total.Count, sum(r.ByAMI))
	assert.Equal(t, 5, sum(r.ByTag))
	assert.Greater(t, sum(r.ByTag), r.Total.Count)
}

func TestAggregateRowOrderIsFirstSeen(t *testing.T) {
	instances := []models.CostedInstance{
		costedInstance("zeta", "ami-9", 0.1, 0, map[string]string{"b": "1", "a": "1"}),
		costedInstance("alpha", "ami-1", 0.1, 0, nil),
		costedInstance("zeta", "ami-1", 0.1, 0, nil),
	}

	r := Aggregate(instances)

	var keys []string
	for _, row := range r.ByKeyName.Rows() {
		keys = append(keys, row.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha"}, keys)

	var tags []string
	for _, row := range r.ByTag.Rows() {
		tags = append(tags, row.Key)
	}
	assert.Equal(t, []string{"a=>1", "b=>1"}, tags)
	assert.Equal(t, 2, r.ByAMI.Len())
}

func TestAggregateEmpty(t *testing.T) {
	r := Aggregate(nil)

	assert.Zero(t, r.Total.Count)
	assert.True(t, r.Total.Total().IsZero())
	for _, s := range r.Sections() {
		assert.Zero(t, s.Len())
	}
}

func TestGroupAggregateMonthly(t *testing.T) {
	r := Aggregate([]models.CostedInstance{costedInstance("k", "ami", 0.085, 0, nil)})
	assert.Equal(t, "61.2", r.Total.Monthly().String())
}

func TestTagKey(t *testing.T) {
	assert.Equal(t, "env=>prod", TagKey("env", "prod"))
	assert.Equal(t, "env=>", TagKey("env", ""))
}
