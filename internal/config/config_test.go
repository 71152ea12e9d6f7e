package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryvavyipotii/ripemd160attack/internal/config"
)

func TestDefaultConfigValidates(t *testing.T) {
	assert.NoError(t, config.DefaultConfig().Validate())
}

func TestValidateRejectsOversizedHashSize(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Attack.HashSize = 21
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsZeroThreads(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Attack.Threads = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsOutOfRangeProbability(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Attack.Probability = 1
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownHellmanFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Hellman.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Attack.HashSize = 5
	cfg.Hellman.ChainCount = 12345

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, config.Save(cfg, path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadRejectsInvalidOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, config.Save(config.RunConfig{}, path))

	_, err := config.Load(path)
	assert.Error(t, err)
}
