package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DerivedGeometry(t *testing.T) {
	// GIVEN the classic teaching geometry: 1 KiB, 16 B blocks, 2-way
	config := Config{CacheSize: 1024, BlockSize: 16, Associativity: 2, Policy: PolicyFIFO}
	require.NoError(t, config.Validate())

	// THEN the derived quantities follow from the geometry
	assert.Equal(t, 64, config.NumBlocks())
	assert.Equal(t, 32, config.NumSets())
	assert.Equal(t, 4, config.OffsetBits())
	assert.Equal(t, 5, config.IndexBits())
}

func TestConfig_Validate_AcceptsExtremeAssociativities(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"direct-mapped", Config{CacheSize: 64, BlockSize: 16, Associativity: 1, Policy: PolicyFIFO}},
		{"fully-associative", Config{CacheSize: 64, BlockSize: 16, Associativity: 4, Policy: PolicyLRU}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.config.Validate())
		})
	}
}

func TestConfig_Validate_RejectsBadGeometry(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"zero cache size", Config{CacheSize: 0, BlockSize: 16, Associativity: 2}},
		{"negative block size", Config{CacheSize: 1024, BlockSize: -16, Associativity: 2}},
		{"zero associativity", Config{CacheSize: 1024, BlockSize: 16, Associativity: 0}},
		{"block size not a power of two", Config{CacheSize: 768, BlockSize: 12, Associativity: 2}},
		{"cache size not divisible by block size", Config{CacheSize: 1000, BlockSize: 16, Associativity: 2}},
		{"blocks not divisible by associativity", Config{CacheSize: 1024, BlockSize: 16, Associativity: 3}},
		{"set count not a power of two", Config{CacheSize: 768, BlockSize: 16, Associativity: 2}},
		{"unknown policy", Config{CacheSize: 1024, BlockSize: 16, Associativity: 2, Policy: Policy(7)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			require.Error(t, err)

			var confErr *ConfigError
			assert.True(t, errors.As(err, &confErr), "expected *ConfigError, got %T", err)
		})
	}
}

func TestNewCache_RejectsInvalidConfig(t *testing.T) {
	// GIVEN a geometry whose set count is not a power of two (48 blocks / 2 ways = 24 sets)
	_, err := NewCache(Config{CacheSize: 768, BlockSize: 16, Associativity: 2, Policy: PolicyLRU})

	// THEN construction fails with a ConfigError naming the violation
	require.Error(t, err)
	var confErr *ConfigError
	require.True(t, errors.As(err, &confErr))
	assert.Contains(t, confErr.Reason, "not a power of two")
}

func TestParsePolicy_CaseInsensitive(t *testing.T) {
	tests := []struct {
		in   string
		want Policy
	}{
		{"FIFO", PolicyFIFO},
		{"fifo", PolicyFIFO},
		{"Fifo", PolicyFIFO},
		{"LRU", PolicyLRU},
		{"lru", PolicyLRU},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if err != nil {
			t.Fatalf("ParsePolicy(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParsePolicy_RejectsUnknownName(t *testing.T) {
	_, err := ParsePolicy("MRU")
	require.Error(t, err)

	var confErr *ConfigError
	assert.True(t, errors.As(err, &confErr))
	assert.Contains(t, err.Error(), "MRU")
}

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "FIFO", PolicyFIFO.String())
	assert.Equal(t, "LRU", PolicyLRU.String())
	assert.Equal(t, "Policy(9)", Policy(9).String())
}
