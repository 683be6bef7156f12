package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("A. Taxpayer", "2025-26")
	cfg.Taxpayer.TFNLastFour = "1234"

	path := filepath.Join(t.TempDir(), "tally.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Taxpayer.Name, got.Taxpayer.Name)
	assert.Equal(t, cfg.Taxpayer.TFNLastFour, got.Taxpayer.TFNLastFour)
	assert.Equal(t, cfg.Fiscal.TaxYear, got.Fiscal.TaxYear)
	assert.Equal(t, cfg.Paths.Database, got.Paths.Database)
	assert.Equal(t, cfg.Paths.ExportDir, got.Paths.ExportDir)
	assert.InDelta(t, cfg.Thresholds.AutoAccept, got.Thresholds.AutoAccept, 0.001)
	assert.InDelta(t, cfg.Thresholds.ReviewFlag, got.Thresholds.ReviewFlag, 0.001)
}

func TestDefaults(t *testing.T) {
	cfg := Default("A. Taxpayer", "2025-26")

	assert.Equal(t, "A. Taxpayer", cfg.Taxpayer.Name)
	assert.Equal(t, "2025-26", cfg.Fiscal.TaxYear)
	assert.Equal(t, "data/tally.db", cfg.Paths.Database)
	assert.Equal(t, "exports", cfg.Paths.ExportDir)
	assert.InDelta(t, 0.75, cfg.Thresholds.AutoAccept, 0.001)
	assert.InDelta(t, 0.50, cfg.Thresholds.ReviewFlag, 0.001)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("A. Taxpayer", "2025-26")
	path := filepath.Join(t.TempDir(), "tally.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: A. Taxpayer")
	assert.Contains(t, contents, "tax_year: 2025-26")
	assert.Contains(t, contents, "auto_accept: 0.75")
}