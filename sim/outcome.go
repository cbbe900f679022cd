package sim

// Outcome describes the result of a single cache access. It is the only
// data the statistics collector, the recorder, and the log consume; the
// cache itself keeps no per-access history.
type Outcome struct {
	Hit        bool   // whether the address was already resident
	SetIndex   int    // set the address mapped to
	Way        int    // way hit, or way filled on a miss
	Evicted    bool   // whether a valid line was displaced
	EvictedTag uint64 // tag of the displaced line (meaningful only when Evicted)
}
