package sim

import (
	"fmt"
	"math/bits"
	"strings"
)

// Policy selects the replacement policy used when a set is full. The
// policy set is closed: victim selection dispatches on this value with a
// switch, keeping the access path free of dynamic calls.
type Policy int

const (
	// PolicyFIFO evicts lines in insertion order using a per-set cursor.
	PolicyFIFO Policy = iota
	// PolicyLRU evicts the line with the oldest last-used sequence number.
	PolicyLRU
)

// String returns the canonical upper-case policy name.
func (p Policy) String() string {
	switch p {
	case PolicyFIFO:
		return "FIFO"
	case PolicyLRU:
		return "LRU"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a policy name to a Policy, case-insensitively.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToUpper(name) {
	case "FIFO":
		return PolicyFIFO, nil
	case "LRU":
		return PolicyLRU, nil
	default:
		return 0, &ConfigError{Reason: fmt.Sprintf("replacement policy must be FIFO or LRU, got %q", name)}
	}
}

// ConfigError reports an invalid cache geometry or policy selection. It
// is returned only at construction time; a successfully built Cache
// accepts every address without error.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid cache configuration: " + e.Reason
}

// Config groups the cache geometry and replacement policy for NewCache.
type Config struct {
	CacheSize     int    // total capacity in bytes (must be > 0)
	BlockSize     int    // bytes per cache line (must be a power of two)
	Associativity int    // lines per set (must divide CacheSize/BlockSize)
	Policy        Policy // replacement policy (FIFO or LRU)
}

// NumBlocks returns the total number of cache lines. Meaningful only on
// a validated config.
func (c Config) NumBlocks() int { return c.CacheSize / c.BlockSize }

// NumSets returns the number of associative sets. Meaningful only on a
// validated config.
func (c Config) NumSets() int { return c.NumBlocks() / c.Associativity }

// OffsetBits returns the number of address bits consumed by the block
// offset.
func (c Config) OffsetBits() int { return bits.TrailingZeros(uint(c.BlockSize)) }

// IndexBits returns the number of address bits consumed by the set index.
func (c Config) IndexBits() int { return bits.TrailingZeros(uint(c.NumSets())) }

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// Validate checks every geometry invariant. All violations surface as
// *ConfigError naming the failing parameter.
func (c Config) Validate() error {
	if c.CacheSize <= 0 {
		return &ConfigError{Reason: fmt.Sprintf("cache size must be positive, got %d", c.CacheSize)}
	}
	if c.BlockSize <= 0 {
		return &ConfigError{Reason: fmt.Sprintf("block size must be positive, got %d", c.BlockSize)}
	}
	if c.Associativity <= 0 {
		return &ConfigError{Reason: fmt.Sprintf("associativity must be positive, got %d", c.Associativity)}
	}
	// The block offset is derived by shifting, so the block size must be a
	// power of two.
	if !isPowerOfTwo(c.BlockSize) {
		return &ConfigError{Reason: fmt.Sprintf("block size must be a power of two, got %d", c.BlockSize)}
	}
	if c.CacheSize%c.BlockSize != 0 {
		return &ConfigError{Reason: fmt.Sprintf("cache size %d is not divisible by block size %d", c.CacheSize, c.BlockSize)}
	}
	numBlocks := c.CacheSize / c.BlockSize
	if numBlocks%c.Associativity != 0 {
		return &ConfigError{Reason: fmt.Sprintf("number of blocks %d is not divisible by associativity %d", numBlocks, c.Associativity)}
	}
	// The set index is derived by masking, so the set count must be a
	// power of two.
	numSets := numBlocks / c.Associativity
	if !isPowerOfTwo(numSets) {
		return &ConfigError{Reason: fmt.Sprintf("number of sets %d is not a power of two", numSets)}
	}
	switch c.Policy {
	case PolicyFIFO, PolicyLRU:
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown replacement policy %v", c.Policy)}
	}
	return nil
}
