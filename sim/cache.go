// sim/cache.go
package sim

// Line is one storage slot within a set. A line starts invalid, becomes
// valid on its first fill, and is only ever overwritten afterwards.
type Line struct {
	Valid    bool   // whether the slot holds a live block
	Tag      uint64 // upper address bits identifying the resident block
	LastUsed uint64 // access sequence number of the last touch (fill or hit); 0 = never
}

// Cache models a set-associative cache: numSets x associativity lines, a
// per-set FIFO insertion cursor, and a single monotonically increasing
// access counter shared by all sets. It classifies addresses as hits or
// misses and reports evictions; there is no stored data, no timing, and
// no hierarchy, only placement state.
type Cache struct {
	config Config

	sets       [][]Line // sets[setIndex][way]
	fifoCursor []int    // next insertion way per set (FIFO only)
	counter    uint64   // global access sequence, shared across sets

	offsetBits uint
	indexBits  uint
	setMask    uint64
}

// NewCache validates the configuration and builds an empty cache. All
// geometry violations surface here as *ConfigError; a constructed cache
// accepts every address without error.
func NewCache(config Config) (*Cache, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	numSets := config.NumSets()
	c := &Cache{
		config:     config,
		sets:       make([][]Line, numSets),
		fifoCursor: make([]int, numSets),
		offsetBits: uint(config.OffsetBits()),
		indexBits:  uint(config.IndexBits()),
		setMask:    uint64(numSets - 1),
	}
	for i := range c.sets {
		c.sets[i] = make([]Line, config.Associativity)
	}
	return c, nil
}

// Reset invalidates every line and rewinds all FIFO cursors in place.
// The access counter keeps running: replacement only compares sequence
// numbers within a set, so absolute values do not matter.
func (c *Cache) Reset() {
	for s := range c.sets {
		for w := range c.sets[s] {
			c.sets[s][w] = Line{}
		}
		c.fifoCursor[s] = 0
	}
}

// Access classifies one address and updates placement state. It is a
// total function: every address maps to exactly one set, and a full set
// always yields a victim. The returned Outcome is the sole record of
// what happened; Access itself never logs.
func (c *Cache) Access(addr uint64) Outcome {
	c.counter++

	setIndex := int((addr >> c.offsetBits) & c.setMask)
	tag := addr >> (c.offsetBits + c.indexBits)
	set := c.sets[setIndex]

	for way := range set {
		if set[way].Valid && set[way].Tag == tag {
			set[way].LastUsed = c.counter
			return Outcome{Hit: true, SetIndex: setIndex, Way: way}
		}
	}

	way := c.findVictim(setIndex)
	out := Outcome{SetIndex: setIndex, Way: way}
	if set[way].Valid {
		out.Evicted = true
		out.EvictedTag = set[way].Tag
	}
	set[way] = Line{Valid: true, Tag: tag, LastUsed: c.counter}
	return out
}

// Config returns the validated configuration the cache was built with.
func (c *Cache) Config() Config { return c.config }

// NumSets returns the number of associative sets.
func (c *Cache) NumSets() int { return len(c.sets) }

// SetLines returns a copy of one set's lines, way order preserved.
func (c *Cache) SetLines(setIndex int) []Line {
	lines := make([]Line, len(c.sets[setIndex]))
	copy(lines, c.sets[setIndex])
	return lines
}
