package control

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/momentics/concur/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Empty(t, cfg.CPUs)
	require.NoError(t, cfg.Validate())
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
workers: 3
cpus: [0, 1]
log_level: debug
log_format: json
metrics:
  enabled: true
  namespace: jobs
`))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, []uint{0, 1}, cfg.CPUs)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "jobs", cfg.Metrics.Namespace)
	assert.True(t, cfg.Debug, "unset fields keep defaults")
}

func TestParseConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"yaml":      "workers: [",
		"level":     "log_level: loud",
		"format":    "log_format: xml",
		"namespace": "metrics: {enabled: true, namespace: \"\"}",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(doc))
			assert.ErrorIs(t, err, api.ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigStore_ReloadNotifies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\n"), 0o600))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	store := NewConfigStore(cfg, path)
	calls := 0
	store.OnReload(func() { calls++ })

	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o600))
	require.NoError(t, store.Reload())
	assert.Equal(t, 1, calls)
	assert.Equal(t, "warn", store.GetSnapshot().LogLevel)

	require.NoError(t, os.WriteFile(path, []byte("log_format: xml\n"), 0o600))
	assert.Error(t, store.Reload())
	assert.Equal(t, 1, calls)
	assert.Equal(t, "warn", store.GetSnapshot().LogLevel)
}

func TestConfigStore_SnapshotIsCopy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CPUs = []uint{1}
	store := NewConfigStore(cfg, "")

	snap := store.GetSnapshot()
	snap.CPUs[0] = 7
	assert.Equal(t, []uint{1}, store.GetSnapshot().CPUs)
	assert.ErrorIs(t, store.Reload(), api.ErrNotSupported)
}
