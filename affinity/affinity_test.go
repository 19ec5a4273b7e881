package affinity_test

import (
	"testing"

	"github.com/momentics/concur/affinity"
	"github.com/momentics/concur/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAffinity_IndexAtHardwareConcurrency(t *testing.T) {
	if !affinity.Supported() {
		assert.ErrorIs(t, affinity.SetAffinity(1, 0), api.ErrNotSupported)
		return
	}
	unpin, err := affinity.PinCurrentThread(uint(affinity.HardwareConcurrency()))
	defer unpin()
	require.Error(t, err)
	assert.True(t, affinity.IsInvalidArgument(err))
}

func TestSetAffinity_NullHandle(t *testing.T) {
	if !affinity.Supported() {
		t.Skip("affinity not supported")
	}
	assert.True(t, affinity.IsInvalidArgument(affinity.SetAffinity(0, 0)))
}

func TestCurrentThread(t *testing.T) {
	if affinity.Supported() {
		assert.Greater(t, int(affinity.CurrentThread()), 0)
	} else {
		assert.Equal(t, api.ThreadID(0), affinity.CurrentThread())
	}
}
