package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cache-sim/cache-sim/sim"
	"github.com/cache-sim/cache-sim/sim/trace"
)

func TestDemoTrace_AddressesFitTheTraceFormat(t *testing.T) {
	addrs := demoTrace()

	require.Len(t, addrs, 8)
	for i, addr := range addrs {
		assert.LessOrEqual(t, addr, uint64(trace.MaxAddress), "address %d", i)
	}
}

func TestDefaults_FormValidGeometry(t *testing.T) {
	policy, err := sim.ParsePolicy(defaultPolicy)
	require.NoError(t, err)

	config := sim.Config{
		CacheSize:     defaultCacheSize,
		BlockSize:     defaultBlockSize,
		Associativity: defaultAssociativity,
		Policy:        policy,
	}
	assert.NoError(t, config.Validate())
}
