package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJE43/stake-pf-verify/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, config.DefaultClientSeed, cfg.Verifier.ClientSeed)
	assert.Equal(t, config.DefaultPublishedCommitment, cfg.Verifier.PublishedCommitment)
	assert.Equal(t, uint64(1), cfg.Verifier.Nonce)
	assert.Equal(t, config.FormatText, cfg.Output.Format)
	assert.Empty(t, cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PF_CLIENT_SEED", "env-client")
	t.Setenv("PF_NONCE", "9")
	t.Setenv("PF_OUTPUT", "json")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-client", cfg.Verifier.ClientSeed)
	assert.Equal(t, uint64(9), cfg.Verifier.Nonce)
	assert.Equal(t, config.FormatJSON, cfg.Output.Format)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
environment: development
verifier:
  clientSeed: file-client
  publishedCommitment: 6ca13d52ca70c883e0f0bb101e425a89e8624de51db2d2392593af6a84118090
  nonce: 3
output:
  format: json
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "file-client", cfg.Verifier.ClientSeed)
	assert.Equal(t, "6ca13d52ca70c883e0f0bb101e425a89e8624de51db2d2392593af6a84118090", cfg.Verifier.PublishedCommitment)
	assert.Equal(t, uint64(3), cfg.Verifier.Nonce)
	assert.Equal(t, config.FormatJSON, cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"unknown format", func(c *config.Config) { c.Output.Format = "xml" }},
		{"short commitment", func(c *config.Config) { c.Verifier.PublishedCommitment = "deadbeef" }},
		{"uppercase commitment", func(c *config.Config) {
			c.Verifier.PublishedCommitment = strings.ToUpper(config.DefaultPublishedCommitment)
		}},
		{"non hex commitment", func(c *config.Config) { c.Verifier.PublishedCommitment = strings.Repeat("z", 64) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load("")
			require.NoError(t, err)
			tt.modify(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, config.ErrInvalid))
		})
	}
}
