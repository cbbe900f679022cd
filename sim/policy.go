// sim/policy.go
package sim

// findVictim picks the way to fill on a miss in the given set,
// dispatching on the configured replacement policy.
func (c *Cache) findVictim(setIndex int) int {
	switch c.config.Policy {
	case PolicyLRU:
		return c.lruVictim(setIndex)
	default:
		return c.fifoVictim(setIndex)
	}
}

// fifoVictim returns the per-set cursor position and advances it. The
// cursor moves on every miss, whether the victim was valid or not, so
// fills rotate through the ways in insertion order regardless of hits.
func (c *Cache) fifoVictim(setIndex int) int {
	way := c.fifoCursor[setIndex]
	c.fifoCursor[setIndex] = (way + 1) % c.config.Associativity
	return way
}

// lruVictim returns the way with the smallest LastUsed value, ties going
// to the lowest way index. Invalid lines carry LastUsed 0 and a valid
// line is always >= 1, so empty ways win before any resident line.
func (c *Cache) lruVictim(setIndex int) int {
	set := c.sets[setIndex]
	victim := 0
	for way := 1; way < len(set); way++ {
		if set[way].LastUsed < set[victim].LastUsed {
			victim = way
		}
	}
	return victim
}
