package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPartialConfigFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kontovy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bank: seb\ndialect:\n  decimal_separator: \".\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "seb", cfg.Bank)
	assert.Equal(t, ".", cfg.Dialect.DecimalSeparator)
	// Unset values come from defaults.
	assert.Equal(t, ";", cfg.Dialect.Delimiter)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 50, cfg.Detector.MinConfidence)
	assert.Equal(t, "data/transactions.csv", cfg.Paths.Ledger)
}

func TestLoadDefaultYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kontovy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(DefaultYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestImporterDialect(t *testing.T) {
	cfg := Default()
	cfg.Dialect.Delimiter = ","
	cfg.Dialect.DecimalSeparator = "."
	cfg.Dialect.HasHeader = false

	d := cfg.ImporterDialect()
	assert.Equal(t, ',', d.Delimiter)
	assert.Equal(t, '.', d.DecimalSeparator)
	assert.False(t, d.HasHeader)
	assert.Equal(t, "2006-01-02", d.DateLayout)
}

func TestRecurringConfig(t *testing.T) {
	cfg := Default()
	cfg.Detector.MinConfidence = 70

	rc := cfg.RecurringConfig()
	assert.Equal(t, 70, rc.MinConfidence)
	assert.Equal(t, 2, rc.MinOccurrences)
	assert.Equal(t, 6, rc.PrefixMergeLen)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
