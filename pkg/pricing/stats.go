package pricing

import "sort"

// TypeStats counts price lookups for a single instance type
type TypeStats struct {
	InstanceType    string
	Source          string // "spot", an on-demand PricingSource, or "mixed"
	Fetches         int    // spot history requests
	CacheHits       int    // spot lookups served from the cache
	Samples         int    // spot samples averaged
	OnDemandLookups int
}

// Stats tracks price lookups for one run. A nil *Stats records nothing.
type Stats struct {
	byType map[string]*TypeStats
}

// NewStats returns empty lookup statistics
func NewStats() *Stats {
	return &Stats{byType: make(map[string]*TypeStats)}
}

func (s *Stats) entry(instanceType, source string) *TypeStats {
	e, ok := s.byType[instanceType]
	if !ok {
		e = &TypeStats{InstanceType: instanceType, Source: source}
		s.byType[instanceType] = e
	}
	if e.Source != source {
		e.Source = "mixed"
	}
	return e
}

// RecordSpotFetch records a spot history request returning samples prices
func (s *Stats) RecordSpotFetch(instanceType string, samples int) {
	if s == nil {
		return
	}
	e := s.entry(instanceType, "spot")
	e.Fetches++
	e.Samples += samples
}

// RecordSpotCacheHit records a spot lookup served from the cache
func (s *Stats) RecordSpotCacheHit(instanceType string) {
	if s == nil {
		return
	}
	s.entry(instanceType, "spot").CacheHits++
}

// RecordOnDemand records an on-demand lookup
func (s *Stats) RecordOnDemand(instanceType string, source PricingSource) {
	if s == nil {
		return
	}
	s.entry(instanceType, string(source)).OnDemandLookups++
}

// Get returns a copy of the statistics sorted by instance type
func (s *Stats) Get() []TypeStats {
	if s == nil {
		return nil
	}

	out := make([]TypeStats, 0, len(s.byType))
	for _, e := range s.byType {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].InstanceType < out[j].InstanceType
	})
	return out
}

// SpotFetches returns the total number of spot history requests
func (s *Stats) SpotFetches() int {
	total := 0
	for _, e := range s.Get() {
		total += e.Fetches
	}
	return total
}
