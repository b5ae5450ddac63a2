package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	grerrors "github.com/tonechas/moodle-workshop-group-grades/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WORKSHOP_PATHS_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "workshop-grades.csv", cfg.Paths.OutputFile)
	assert.Empty(t, cfg.Paths.ReportFile)
	assert.Empty(t, cfg.Paths.RosterFile)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Empty(t, cfg.Workshop.GroupingSet)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WORKSHOP_PATHS_DATA_DIR", t.TempDir())
	t.Setenv("WORKSHOP_LOGGING_LEVEL", "debug")
	t.Setenv("WORKSHOP_LOGGING_FORMAT", "text")
	t.Setenv("WORKSHOP_WORKSHOP_GROUPING_SET", "2")
	t.Setenv("WORKSHOP_PATHS_OUTPUT_FILE", "custom.csv")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "2", cfg.Workshop.GroupingSet)
	assert.Equal(t, "custom.csv", cfg.Paths.OutputFile)
}

func TestLoad_ConfigFileInDataDir(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("WORKSHOP_PATHS_DATA_DIR", dataDir)

	const fileCfg = `
paths:
  output_file: from-file.csv
logging:
  level: warn
workshop:
  grouping_set: "3"
`
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, configFileName), []byte(fileCfg), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file.csv", cfg.Paths.OutputFile)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "3", cfg.Workshop.GroupingSet)
	// File silence keeps the envconfig default.
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("WORKSHOP_PATHS_DATA_DIR", dataDir)
	t.Setenv("WORKSHOP_LOGGING_LEVEL", "error")

	require.NoError(t, os.WriteFile(filepath.Join(dataDir, configFileName),
		[]byte("logging:\n  level: debug\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Setenv("WORKSHOP_PATHS_DATA_DIR", t.TempDir())
	t.Setenv("WORKSHOP_LOGGING_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, grerrors.IsType(err, grerrors.ErrTypeConfig))
	assert.Contains(t, err.Error(), "validation")
}
