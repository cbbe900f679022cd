// Tracks hit/miss/eviction totals and the hit-rate series for a run.

package sim

import "fmt"

// Stats accumulates access outcomes for final reporting. It is purely
// additive: Record never mutates the cache and the cache never sees the
// collector.
type Stats struct {
	TotalAccesses int // number of outcomes recorded
	Hits          int // accesses that found their block resident
	Misses        int // accesses that had to fill a line
	Evictions     int // misses that displaced a valid line

	hitRateHistory []float64 // running hit rate (percent) after each access
}

// NewStats returns an empty collector.
func NewStats() *Stats {
	return &Stats{}
}

// Record folds one access outcome into the running totals and appends
// the hit-rate sample for this point in the run.
func (s *Stats) Record(o Outcome) {
	s.TotalAccesses++
	if o.Hit {
		s.Hits++
	} else {
		s.Misses++
	}
	if o.Evicted {
		s.Evictions++
	}
	s.hitRateHistory = append(s.hitRateHistory, 100*float64(s.Hits)/float64(s.TotalAccesses))
}

// HitRateSamples returns the hit-rate-over-time series: one sample per
// recorded access, each in [0, 100], in access order. The returned slice
// is a copy.
func (s *Stats) HitRateSamples() []float64 {
	samples := make([]float64, len(s.hitRateHistory))
	copy(samples, s.hitRateHistory)
	return samples
}

// Summary is a read-only snapshot of the collector totals.
type Summary struct {
	TotalAccesses int
	Hits          int
	Misses        int
	Evictions     int
	HitRatePct    float64 // 0 when no accesses were recorded
	MissRatePct   float64 // 0 when no accesses were recorded
}

// Summary snapshots the current totals with derived rates.
func (s *Stats) Summary() Summary {
	sum := Summary{
		TotalAccesses: s.TotalAccesses,
		Hits:          s.Hits,
		Misses:        s.Misses,
		Evictions:     s.Evictions,
	}
	if s.TotalAccesses > 0 {
		sum.HitRatePct = 100 * float64(s.Hits) / float64(s.TotalAccesses)
		sum.MissRatePct = 100 * float64(s.Misses) / float64(s.TotalAccesses)
	}
	return sum
}

// Print displays the summary at the end of a simulation run.
func (sum Summary) Print() {
	fmt.Println("=== Cache Statistics Summary ===")
	fmt.Printf("Total Accesses : %d\n", sum.TotalAccesses)
	fmt.Printf("Hits           : %d\n", sum.Hits)
	fmt.Printf("Misses         : %d\n", sum.Misses)
	fmt.Printf("Evictions      : %d\n", sum.Evictions)
	fmt.Printf("Hit Rate       : %.2f%%\n", sum.HitRatePct)
	fmt.Printf("Miss Rate      : %.2f%%\n", sum.MissRatePct)
}
