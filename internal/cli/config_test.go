package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mberan/tfm/internal/cli"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tfm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := cli.LoadConfig(writeConfig(t, `
states:
  - Parse
  - Classify
  - Execute
format: json
min_failures: 3
baseline: .tfm/nightly.json
regression_threshold: 0.5
slow_threshold_ms: 250
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Parse", "Classify", "Execute"}, cfg.States)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 3, cfg.MinFailures)
	assert.Equal(t, ".tfm/nightly.json", cfg.Baseline)
	assert.InDelta(t, 0.5, cfg.RegressionThreshold, 1e-9)
	assert.InDelta(t, 250, cfg.SlowThresholdMS, 1e-9)
}

func TestLoadConfig_WeaklyTypedValues(t *testing.T) {
	cfg, err := cli.LoadConfig(writeConfig(t, `
min_failures: "2"
slow_threshold_ms: "100"
`))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.MinFailures)
	assert.InDelta(t, 100, cfg.SlowThresholdMS, 1e-9)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := cli.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	_, err := cli.LoadConfig(writeConfig(t, "format: [unclosed"))
	assert.Error(t, err)
}

func TestConfigApply_FlagsWin(t *testing.T) {
	cfg := &cli.Config{
		Format:      "json",
		MinFailures: 5,
		Baseline:    "from-config.json",
	}

	opts := cli.AnalyzeOptions{Format: "ascii", MinFailures: 1}
	set := map[string]bool{"format": true}
	cfg.Apply(&opts, func(name string) bool { return set[name] })

	// Explicit flags are untouched, unset ones take config values.
	assert.Equal(t, "ascii", opts.Format)
	assert.Equal(t, 5, opts.MinFailures)
	assert.Equal(t, "from-config.json", opts.Baseline)
}

func TestConfigApply_ZeroValuesLeaveDefaults(t *testing.T) {
	cfg := &cli.Config{}
	opts := cli.AnalyzeOptions{Format: "markdown", RegressionThreshold: 0.2}
	cfg.Apply(&opts, func(string) bool { return false })

	assert.Equal(t, "markdown", opts.Format)
	assert.InDelta(t, 0.2, opts.RegressionThreshold, 1e-9)
}
