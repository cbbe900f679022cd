// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/cache-sim/cache-sim/sim/recording"
)

// Table names in the recording database.
const (
	accessTableName = "accesses"
	runTableName    = "runs"
)

// AccessRecord is the row shape for the per-access recording table.
type AccessRecord struct {
	Step       int // 1-based access number
	Address    uint64
	Hit        bool
	SetIndex   int
	Way        int
	Evicted    bool
	EvictedTag uint64 // zero unless Evicted
}

// RunRecord is the row shape for the per-run summary table.
type RunRecord struct {
	CacheSize     int
	BlockSize     int
	Associativity int
	Policy        string
	TotalAccesses int
	Hits          int
	Misses        int
	Evictions     int
	HitRatePct    float64
	MissRatePct   float64
}

// Simulator replays address sequences through a cache, folding every
// outcome into the statistics collector and, when a recorder is
// attached, the recording database. Processing is strictly sequential:
// one address is fully handled before the next is read.
type Simulator struct {
	Cache *Cache
	Stats *Stats

	recorder recording.DataRecorder
}

// NewSimulator wires a cache to a fresh statistics collector. recorder
// may be nil to disable recording.
func NewSimulator(cache *Cache, recorder recording.DataRecorder) *Simulator {
	s := &Simulator{
		Cache:    cache,
		Stats:    NewStats(),
		recorder: recorder,
	}
	if recorder != nil {
		recorder.CreateTable(accessTableName, AccessRecord{})
		recorder.CreateTable(runTableName, RunRecord{})
	}
	return s
}

// Step processes one address end to end: access the cache, fold the
// outcome into the statistics, record it, narrate it. The outcome is
// returned for callers that want it and discarded otherwise.
func (s *Simulator) Step(addr uint64) Outcome {
	out := s.Cache.Access(addr)
	s.Stats.Record(out)
	if s.recorder != nil {
		s.recorder.InsertData(accessTableName, AccessRecord{
			Step:       s.Stats.TotalAccesses,
			Address:    addr,
			Hit:        out.Hit,
			SetIndex:   out.SetIndex,
			Way:        out.Way,
			Evicted:    out.Evicted,
			EvictedTag: out.EvictedTag,
		})
	}
	s.narrate(addr, out)
	return out
}

// Run replays a full address sequence in order.
func (s *Simulator) Run(addrs []uint64) {
	for _, addr := range addrs {
		s.Step(addr)
	}
}

// RecordRun appends the final summary row to the runs table. No-op
// without a recorder.
func (s *Simulator) RecordRun() {
	if s.recorder == nil {
		return
	}
	config := s.Cache.Config()
	sum := s.Stats.Summary()
	s.recorder.InsertData(runTableName, RunRecord{
		CacheSize:     config.CacheSize,
		BlockSize:     config.BlockSize,
		Associativity: config.Associativity,
		Policy:        config.Policy.String(),
		TotalAccesses: sum.TotalAccesses,
		Hits:          sum.Hits,
		Misses:        sum.Misses,
		Evictions:     sum.Evictions,
		HitRatePct:    sum.HitRatePct,
		MissRatePct:   sum.MissRatePct,
	})
}

// narrate logs one access the way the interactive CLI reports it. Debug
// carries the hit/miss/eviction lines, Trace adds the set state dump.
func (s *Simulator) narrate(addr uint64, out Outcome) {
	if out.Hit {
		logrus.Debugf("Hit for address 0x%08x in set %d, way %d", addr, out.SetIndex, out.Way)
	} else {
		if out.Evicted {
			logrus.Debugf("Evicting way %d in set %d (tag 0x%08x)", out.Way, out.SetIndex, out.EvictedTag)
		}
		logrus.Debugf("Miss for address 0x%08x in set %d, placed in way %d", addr, out.SetIndex, out.Way)
	}
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		for way, line := range s.Cache.SetLines(out.SetIndex) {
			logrus.Tracef("Set %d way %d: valid=%t tag=0x%08x last_used=%d",
				out.SetIndex, way, line.Valid, line.Tag, line.LastUsed)
		}
	}
}
