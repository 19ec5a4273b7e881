package control

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSizer struct{ size, queued int }

func (f fixedSizer) Size() int      { return f.size }
func (f fixedSizer) QueueSize() int { return f.queued }

func TestPoolMetrics_Events(t *testing.T) {
	reg := NewMetricsRegistry()
	m, err := NewPoolMetrics(reg, "test")
	require.NoError(t, err)
	require.NoError(t, m.Attach(fixedSizer{size: 4, queued: 9}))

	m.TaskSubmitted()
	m.TaskSubmitted()
	m.TaskFinished(time.Millisecond, false)
	m.TaskFinished(time.Millisecond, true)
	m.QueueCleared(5)
	m.WorkerPinned(0, 0, nil)
	m.WorkerPinned(1, 0, errors.New("denied"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submitted))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.completed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failed))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.cleared))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pinFailures))

	snap, err := reg.GetSnapshot()
	require.NoError(t, err)
	assert.Equal(t, 4.0, snap["test_pool_workers"])
	assert.Equal(t, 9.0, snap["test_pool_queue_depth"])
	assert.Equal(t, uint64(2), snap["test_pool_task_duration_seconds"])
}

func TestPoolMetrics_DuplicateNamespace(t *testing.T) {
	reg := NewMetricsRegistry()
	_, err := NewPoolMetrics(reg, "dup")
	require.NoError(t, err)
	_, err = NewPoolMetrics(reg, "dup")
	assert.Error(t, err)
}
