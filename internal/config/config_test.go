package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashicode/pdfclean/internal/normalize"
	"github.com/akashicode/pdfclean/internal/reader"
)

func newViper(t *testing.T, yamlBody string) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	if yamlBody != "" {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o644))
		v.SetConfigFile(path)
		require.NoError(t, v.ReadInConfig())
	}
	return v
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(newViper(t, ""))
	require.NoError(t, err)

	assert.Equal(t, reader.DefaultBackend, cfg.Extract.Backend)
	assert.Equal(t, string(normalize.PolicyLatin1), cfg.Extract.Policy)
	assert.Equal(t, "json", cfg.Extract.Format)
	assert.Equal(t, 2, cfg.Extract.Indent)
	assert.Equal(t, "--- Page %d ---", cfg.Text.Marker)
	assert.False(t, cfg.Text.KeepBlank)
	assert.Equal(t, ".pdfclean", cfg.Index.Dir)
	assert.Equal(t, 1000, cfg.Index.ChunkSize)
	assert.Equal(t, 5, cfg.Index.TopK)
	require.NoError(t, ValidateExtract(cfg))
}

func TestLoadFrom_File(t *testing.T) {
	cfg, err := LoadFrom(newViper(t, `
extract:
  backend: pdfcpu
  policy: ascii
  indent: 4
text:
  marker: "## page %d"
  keep_blank: true
index:
  dir: /tmp/idx
  embedder:
    base_url: http://localhost:11434/v1
    api_key: secret
    model: nomic-embed-text
    dimensions: 768
`))
	require.NoError(t, err)

	assert.Equal(t, "pdfcpu", cfg.Extract.Backend)
	assert.Equal(t, "ascii", cfg.Extract.Policy)
	assert.Equal(t, 4, cfg.Extract.Indent)
	assert.Equal(t, "## page %d", cfg.Text.Marker)
	assert.True(t, cfg.Text.KeepBlank)
	assert.Equal(t, "/tmp/idx", cfg.Index.Dir)
	assert.Equal(t, ProviderConfig{
		BaseURL:    "http://localhost:11434/v1",
		APIKey:     "secret",
		Model:      "nomic-embed-text",
		Dimensions: 768,
	}, cfg.Index.Embedder)
	require.NoError(t, ValidateIndex(cfg))
}

func TestValidateExtract(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown backend", func(c *Config) { c.Extract.Backend = "poppler" }, "unknown PDF backend"},
		{"unknown policy", func(c *Config) { c.Extract.Policy = "utf8" }, "unknown normalization policy"},
		{"negative indent", func(c *Config) { c.Extract.Indent = -1 }, "extract.indent"},
		{"two page numbers", func(c *Config) { c.Text.Marker = "%d of %d" }, "text.marker"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(newViper(t, ""))
			require.NoError(t, err)
			tt.mutate(cfg)
			err = ValidateExtract(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_NilConfig(t *testing.T) {
	assert.ErrorIs(t, ValidateExtract(nil), ErrNilConfig)
	assert.ErrorIs(t, ValidateIndex(nil), ErrNilConfig)
}

func TestValidateIndex_RequiresAPIKey(t *testing.T) {
	cfg, err := LoadFrom(newViper(t, ""))
	require.NoError(t, err)

	err = ValidateIndex(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")

	cfg.Index.Embedder.APIKey = "k"
	cfg.Index.ChunkSize = 0
	err = ValidateIndex(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk_size")
}
