package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Big_Mart.csv", cfg.DataPath)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 2025, cfg.ReferenceYear)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "data_path: /data/mart.csv\nlisten_addr: \":9090\"\nreference_year: 2030\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/mart.csv", cfg.DataPath)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 2030, cfg.ReferenceYear)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MARTDASH_DATA_PATH", "/env/mart.csv")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/env/mart.csv", cfg.DataPath)
}

func TestLoadRejectsInvalidReferenceYear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reference_year: -1\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference_year")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Config{DataPath: "mart.csv", ListenAddr: ":7000", ReferenceYear: 2025}
	require.NoError(t, Save(in, path))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
