package cmd

// Built-in defaults matching the classic teaching configuration:
// a 1 KiB cache of 16-byte blocks, two ways per set, FIFO replacement.
const (
	defaultCacheSize     = 1024
	defaultBlockSize     = 16
	defaultAssociativity = 2
	defaultPolicy        = "FIFO"
)

// demoTrace returns the built-in demonstration access sequence used when
// no trace file or workload spec is given. The addresses mix same-block
// re-references with set conflicts so both hits and evictions show up
// under the default geometry.
func demoTrace() []uint64 {
	return []uint64{
		0x0000A3C4,
		0x0000A3D0,
		0x0000A3C4,
		0x0000A3D0,
		0x0000B3C4,
		0x0000C3C4,
		0x0000A3C4,
		0x0000D3C4,
	}
}
