// Package workload generates synthetic memory-address traces.
//
// A Spec describes an access pattern declaratively and is loadable from
// YAML, so workloads can be versioned alongside experiment results.
// Generation is deterministic for a fixed seed.
package workload

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cache-sim/cache-sim/sim/trace"
)

// Pattern names a synthetic access pattern.
type Pattern string

const (
	// PatternSequential walks the address space one byte at a time.
	PatternSequential Pattern = "sequential"
	// PatternStrided walks the address space with a fixed stride.
	PatternStrided Pattern = "strided"
	// PatternRandom draws uniformly from [start, start+address_range).
	PatternRandom Pattern = "random"
	// PatternZipf draws Zipf-skewed offsets, modeling a hot working set.
	PatternZipf Pattern = "zipf"
)

// validPatterns is the set of recognized pattern names.
var validPatterns = map[Pattern]bool{
	PatternSequential: true,
	PatternStrided:    true,
	PatternRandom:     true,
	PatternZipf:       true,
}

// Spec describes a synthetic address trace, loadable from a YAML file.
type Spec struct {
	Pattern      Pattern `yaml:"pattern"`       // access pattern name
	Count        int     `yaml:"count"`         // number of addresses to generate
	Start        uint64  `yaml:"start"`         // base address
	Stride       uint64  `yaml:"stride"`        // step between accesses (strided only)
	AddressRange uint64  `yaml:"address_range"` // span above start (random, zipf)
	ZipfS        float64 `yaml:"zipf_s"`        // Zipf skew exponent (> 1)
	ZipfV        float64 `yaml:"zipf_v"`        // Zipf value offset (>= 1)
	Seed         int64   `yaml:"seed"`          // RNG seed (random, zipf)
}

// Load reads a YAML workload spec with strict field checking and
// validates it.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks pattern-specific parameter requirements.
func (s *Spec) Validate() error {
	if !validPatterns[s.Pattern] {
		return fmt.Errorf("unknown workload pattern %q", s.Pattern)
	}
	if s.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", s.Count)
	}
	switch s.Pattern {
	case PatternStrided:
		if s.Stride == 0 {
			return fmt.Errorf("strided workloads require a non-zero stride")
		}
	case PatternRandom, PatternZipf:
		if s.AddressRange == 0 {
			return fmt.Errorf("%s workloads require a non-zero address_range", s.Pattern)
		}
		if s.AddressRange > trace.MaxAddress+1 {
			return fmt.Errorf("address_range %d exceeds the 32-bit address space", s.AddressRange)
		}
	}
	if s.Pattern == PatternZipf {
		if s.ZipfS <= 1 {
			return fmt.Errorf("zipf_s must be > 1, got %v", s.ZipfS)
		}
		if s.ZipfV < 1 {
			return fmt.Errorf("zipf_v must be >= 1, got %v", s.ZipfV)
		}
	}
	return nil
}

// Generate produces the address sequence described by s. All addresses
// are masked into the 32-bit space traces use.
func (s *Spec) Generate() ([]uint64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(s.Seed))
	addrs := make([]uint64, s.Count)

	switch s.Pattern {
	case PatternSequential:
		for i := range addrs {
			addrs[i] = (s.Start + uint64(i)) & trace.MaxAddress
		}
	case PatternStrided:
		for i := range addrs {
			addrs[i] = (s.Start + uint64(i)*s.Stride) & trace.MaxAddress
		}
	case PatternRandom:
		for i := range addrs {
			addrs[i] = (s.Start + uint64(rng.Int63n(int64(s.AddressRange)))) & trace.MaxAddress
		}
	case PatternZipf:
		zipf := rand.NewZipf(rng, s.ZipfS, s.ZipfV, s.AddressRange-1)
		for i := range addrs {
			addrs[i] = (s.Start + zipf.Uint64()) & trace.MaxAddress
		}
	}
	return addrs, nil
}
