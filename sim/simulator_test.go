package sim

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cache-sim/cache-sim/sim/internal/testutil"
)

// fakeRecorder is an in-memory recording.DataRecorder for asserting on
// inserted rows without touching SQLite.
type fakeRecorder struct {
	tables  map[string][]any
	flushes int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{tables: make(map[string][]any)}
}

func (f *fakeRecorder) CreateTable(tableName string, sampleEntry any) {
	if _, exists := f.tables[tableName]; exists {
		panic(fmt.Sprintf("table %s already exists", tableName))
	}
	f.tables[tableName] = nil
}

func (f *fakeRecorder) InsertData(tableName string, entry any) {
	if _, exists := f.tables[tableName]; !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}
	f.tables[tableName] = append(f.tables[tableName], entry)
}

func (f *fakeRecorder) ListTables() []string {
	names := make([]string, 0, len(f.tables))
	for name := range f.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f *fakeRecorder) Flush() error {
	f.flushes++
	return nil
}

// TestSimulator_GoldenRuns replays every recorded reference run and
// checks the per-access outcomes, the final summary, and the hit-rate
// series against testdata/goldendataset.json.
func TestSimulator_GoldenRuns(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	require.NotEmpty(t, dataset.Tests)

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			policy, err := ParsePolicy(tc.Policy)
			require.NoError(t, err)

			cache, err := NewCache(Config{
				CacheSize:     tc.CacheSize,
				BlockSize:     tc.BlockSize,
				Associativity: tc.Associativity,
				Policy:        policy,
			})
			require.NoError(t, err)

			s := NewSimulator(cache, nil)
			require.Len(t, tc.Outcomes, len(tc.Trace), "golden case is internally inconsistent")

			// WHEN the trace is replayed access by access
			for i, hexAddr := range tc.Trace {
				addr := testutil.ParseHexAddress(t, hexAddr)
				want := tc.Outcomes[i]

				got := s.Step(addr)

				// THEN each outcome matches the recorded reference
				assert.Equal(t, want.Hit, got.Hit, "access %d (%s): hit", i, hexAddr)
				assert.Equal(t, want.SetIndex, got.SetIndex, "access %d (%s): set", i, hexAddr)
				assert.Equal(t, want.Way, got.Way, "access %d (%s): way", i, hexAddr)
				assert.Equal(t, want.Evicted, got.Evicted, "access %d (%s): evicted", i, hexAddr)
				if want.Evicted {
					assert.Equal(t, testutil.ParseHexAddress(t, want.EvictedTag), got.EvictedTag,
						"access %d (%s): evicted tag", i, hexAddr)
				}
			}

			// AND the final summary matches
			sum := s.Stats.Summary()
			assert.Equal(t, tc.Summary.TotalAccesses, sum.TotalAccesses)
			assert.Equal(t, tc.Summary.Hits, sum.Hits)
			assert.Equal(t, tc.Summary.Misses, sum.Misses)
			assert.Equal(t, tc.Summary.Evictions, sum.Evictions)
			testutil.AssertFloat64Equal(t, "hit rate", tc.Summary.HitRatePct, sum.HitRatePct, 1e-9)
			testutil.AssertFloat64Equal(t, "miss rate", tc.Summary.MissRatePct, sum.MissRatePct, 1e-9)

			// AND the hit-rate series matches sample by sample
			samples := s.Stats.HitRateSamples()
			require.Len(t, samples, len(tc.HitRateSamples))
			for i := range samples {
				testutil.AssertFloat64Equal(t, fmt.Sprintf("sample %d", i), tc.HitRateSamples[i], samples[i], 1e-9)
			}
		})
	}
}

func TestSimulator_RecordsAccessRows(t *testing.T) {
	// GIVEN a simulator wired to an in-memory recorder
	rec := newFakeRecorder()
	cache := mustCache(t, Config{CacheSize: 1024, BlockSize: 16, Associativity: 2, Policy: PolicyFIFO})
	s := NewSimulator(cache, rec)

	// THEN both tables exist up front
	assert.Equal(t, []string{"accesses", "runs"}, rec.ListTables())

	// WHEN a short trace runs
	s.Run([]uint64{0xA3C4, 0xA3D0, 0xA3C4})
	s.RecordRun()

	// THEN one access row lands per address, steps numbered from 1
	rows := rec.tables[accessTableName]
	require.Len(t, rows, 3)
	first := rows[0].(AccessRecord)
	assert.Equal(t, 1, first.Step)
	assert.Equal(t, uint64(0xA3C4), first.Address)
	assert.False(t, first.Hit)
	third := rows[2].(AccessRecord)
	assert.Equal(t, 3, third.Step)
	assert.True(t, third.Hit)

	// AND one run row summarizes the whole replay
	runs := rec.tables[runTableName]
	require.Len(t, runs, 1)
	run := runs[0].(RunRecord)
	assert.Equal(t, "FIFO", run.Policy)
	assert.Equal(t, 1024, run.CacheSize)
	assert.Equal(t, 3, run.TotalAccesses)
	assert.Equal(t, 1, run.Hits)
}

func TestSimulator_NilRecorderIsSafe(t *testing.T) {
	cache := mustCache(t, Config{CacheSize: 64, BlockSize: 16, Associativity: 1, Policy: PolicyLRU})
	s := NewSimulator(cache, nil)

	s.Run([]uint64{0x00, 0x40, 0x00})
	s.RecordRun()

	assert.Equal(t, 3, s.Stats.TotalAccesses)
	assert.Equal(t, 0, s.Stats.Hits)
}
