// Package testutil provides shared test infrastructure for the cache
// simulator. It consolidates the golden dataset types and assertion
// helpers used across package tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one recorded reference run: a cache configuration, an
// address trace, and the exact per-access outcomes it must produce.
type GoldenTestCase struct {
	Name          string `json:"name"`
	CacheSize     int    `json:"cache_size"`
	BlockSize     int    `json:"block_size"`
	Associativity int    `json:"associativity"`
	Policy        string `json:"policy"`

	Trace          []string        `json:"trace"` // hex addresses, in access order
	Outcomes       []GoldenOutcome `json:"outcomes"`
	Summary        GoldenSummary   `json:"summary"`
	HitRateSamples []float64       `json:"hit_rate_samples"`
}

// GoldenOutcome is the expected result of a single access.
type GoldenOutcome struct {
	Hit        bool   `json:"hit"`
	SetIndex   int    `json:"set_index"`
	Way        int    `json:"way"`
	Evicted    bool   `json:"evicted"`
	EvictedTag string `json:"evicted_tag,omitempty"` // hex; empty when nothing was evicted
}

// GoldenSummary is the expected end-of-run totals.
type GoldenSummary struct {
	TotalAccesses int     `json:"total_accesses"`
	Hits          int     `json:"hits"`
	Misses        int     `json:"misses"`
	Evictions     int     `json:"evictions"`
	HitRatePct    float64 `json:"hit_rate_pct"`
	MissRatePct   float64 `json:"miss_rate_pct"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// ParseHexAddress converts a hex string (with or without a 0x prefix)
// from the golden dataset into an address.
func ParseHexAddress(t *testing.T, s string) uint64 {
	t.Helper()

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		t.Fatalf("invalid hex address %q in golden dataset: %v", s, err)
	}
	return v
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
