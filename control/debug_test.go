package control

import (
	"testing"

	"github.com/momentics/concur/internal/concurrency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugProbes_PoolAndPlatform(t *testing.T) {
	p, err := concurrency.NewSimplePool(2, nil)
	require.NoError(t, err)
	defer p.Shutdown()

	dp := NewDebugProbes()
	RegisterPlatformProbes(dp)
	RegisterPoolProbes(dp, p)

	assert.Equal(t, []string{"platform.affinity", "platform.cpus", "pool.queue_size", "pool.size", "pool.stats"}, dp.Names())

	state := dp.DumpState()
	assert.Equal(t, 2, state["pool.size"])
	assert.Equal(t, 0, state["pool.queue_size"])
	assert.Equal(t, concurrency.HardwareConcurrency(), state["platform.cpus"])
	assert.Equal(t, concurrency.AffinitySupported(), state["platform.affinity"])
	assert.Contains(t, state["pool.stats"], "submitted")
}
