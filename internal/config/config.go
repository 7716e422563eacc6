package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/akashicode/pdfclean/internal/normalize"
	"github.com/akashicode/pdfclean/internal/reader"
)

// ErrNilConfig is returned when a nil Config is provided.
var ErrNilConfig = errors.New("config is nil")

// Config holds the full application configuration.
type Config struct {
	Extract ExtractConfig `mapstructure:"extract"`
	Text    TextConfig    `mapstructure:"text"`
	Index   IndexConfig   `mapstructure:"index"`
}

// ExtractConfig holds settings shared by every command that reads PDFs.
type ExtractConfig struct {
	Backend string `mapstructure:"backend"`
	Policy  string `mapstructure:"policy"`
	Format  string `mapstructure:"format"`
	Indent  int    `mapstructure:"indent"`
	Strict  bool   `mapstructure:"strict"`
}

// TextConfig holds settings for plain-text output.
type TextConfig struct {
	Marker    string `mapstructure:"marker"`
	KeepBlank bool   `mapstructure:"keep_blank"`
}

// IndexConfig holds settings for the page index built by `index`.
type IndexConfig struct {
	Dir       string         `mapstructure:"dir"`
	ChunkSize int            `mapstructure:"chunk_size"`
	Overlap   int            `mapstructure:"overlap"`
	TopK      int            `mapstructure:"top_k"`
	Embedder  ProviderConfig `mapstructure:"embedder"`
}

// ProviderConfig holds connection details for an OpenAI-compatible provider.
type ProviderConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	Dimensions int    `mapstructure:"dimensions"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("extract.backend", reader.DefaultBackend)
	v.SetDefault("extract.policy", string(normalize.PolicyLatin1))
	v.SetDefault("extract.format", "json")
	v.SetDefault("extract.indent", 2)
	v.SetDefault("extract.strict", false)

	v.SetDefault("text.marker", "--- Page %d ---")
	v.SetDefault("text.keep_blank", false)

	v.SetDefault("index.dir", ".pdfclean")
	v.SetDefault("index.chunk_size", 1000)
	v.SetDefault("index.overlap", 200)
	v.SetDefault("index.top_k", 5)
	v.SetDefault("index.embedder.base_url", "https://api.openai.com/v1")
	v.SetDefault("index.embedder.model", "text-embedding-3-small")
	// Registered so PDFCLEAN_INDEX_EMBEDDER_* env vars reach Unmarshal.
	v.SetDefault("index.embedder.api_key", "")
	v.SetDefault("index.embedder.dimensions", 0)
}

// Load reads the Viper-populated config into a Config struct.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom unmarshals the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// ValidateExtract checks the settings used by the extraction commands.
func ValidateExtract(cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if _, err := reader.NewBackend(cfg.Extract.Backend); err != nil {
		return err
	}
	if _, err := normalize.ParsePolicy(cfg.Extract.Policy); err != nil {
		return err
	}
	if cfg.Extract.Indent < 0 {
		return fmt.Errorf("extract.indent must be >= 0, got %d", cfg.Extract.Indent)
	}
	if n := strings.Count(cfg.Text.Marker, "%d"); n > 1 {
		return fmt.Errorf("text.marker may contain at most one %%d, got %q", cfg.Text.Marker)
	}
	return nil
}

// ValidateIndex checks the settings used by the index and search commands.
func ValidateIndex(cfg *Config) error {
	if err := ValidateExtract(cfg); err != nil {
		return err
	}
	if cfg.Index.Dir == "" {
		return errors.New("index.dir is required")
	}
	if cfg.Index.ChunkSize <= 0 {
		return fmt.Errorf("index.chunk_size must be > 0, got %d", cfg.Index.ChunkSize)
	}
	if cfg.Index.Embedder.BaseURL == "" {
		return errors.New("index.embedder.base_url is required (or set PDFCLEAN_INDEX_EMBEDDER_BASE_URL)")
	}
	if cfg.Index.Embedder.APIKey == "" {
		return errors.New("index.embedder.api_key is required (or set PDFCLEAN_INDEX_EMBEDDER_API_KEY)")
	}
	return nil
}
