package adapters_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/momentics/concur/adapters"
	"github.com/momentics/concur/control"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlAdapterBasic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\n"), 0o600))
	cfg, err := control.LoadConfig(path)
	require.NoError(t, err)

	reg := control.NewMetricsRegistry()
	m, err := control.NewPoolMetrics(reg, "ctl")
	require.NoError(t, err)
	m.TaskSubmitted()

	ctrl := adapters.NewControlAdapter(control.NewConfigStore(cfg, path), reg, control.NewDebugProbes())
	ctrl.RegisterDebugProbe("answer", func() any { return 42 })

	stats := ctrl.Stats()
	assert.Equal(t, 42, stats["debug.answer"])
	assert.Equal(t, 1.0, stats["ctl_pool_tasks_submitted_total"])

	called := false
	ctrl.OnReload(func() { called = true })
	require.NoError(t, ctrl.Reload())
	assert.True(t, called, "reload hook not called")
}

func TestControlAdapterWithoutMetrics(t *testing.T) {
	ctrl := adapters.NewControlAdapter(control.NewConfigStore(control.DefaultConfig(), ""), nil, control.NewDebugProbes())
	assert.Empty(t, ctrl.Stats())
	assert.Error(t, ctrl.Reload())
}
