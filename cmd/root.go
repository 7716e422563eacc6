package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/akashicode/pdfclean/internal/config"
	"github.com/akashicode/pdfclean/internal/display"
	"github.com/akashicode/pdfclean/internal/extract"
	"github.com/akashicode/pdfclean/internal/normalize"
	"github.com/akashicode/pdfclean/internal/reader"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pdfclean",
	Short: "Extract clean, Latin-1 safe text from PDF files.",
	Long: `pdfclean reads PDF files through a pluggable parsing backend, folds the
page text into the Latin-1 range (or plain ASCII), and prints it as a JSON or
YAML envelope or as plain text.

Extracted pages can also be indexed into an embedded vector store and a
metadata graph for later search.`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Arguments are already validated here; later failures are not usage errors.
		cmd.SilenceUsage = true
		display.SetVerbose(verbose)
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		display.ErrorMsg(err.Error())
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ~/.pdfclean/config.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "print debug diagnostics to stderr")
	pf.String("backend", reader.DefaultBackend, "PDF backend: "+strings.Join(reader.Backends(), ", "))
	pf.String("policy", string(normalize.PolicyLatin1), "normalization policy: latin1 or ascii")

	_ = viper.BindPFlag("extract.backend", pf.Lookup("backend"))
	_ = viper.BindPFlag("extract.policy", pf.Lookup("policy"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	viper.SetEnvPrefix("PDFCLEAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			display.Warn("could not determine home directory: " + err.Error())
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".pdfclean"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err != nil {
		// The default config file is optional; an explicit one is not.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			display.Warn("could not read config: " + err.Error())
		}
		return
	}
	display.Debug("using config file %s", viper.ConfigFileUsed())
}

// bindFlags binds command-local flags to config keys. Binding happens when the
// command runs because several commands share a key.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for name, key := range keys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			return fmt.Errorf("unknown flag --%s", name)
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// loadConfig binds the given flags, loads the configuration and validates the
// extraction settings.
func loadConfig(cmd *cobra.Command, keys map[string]string) (*config.Config, error) {
	if err := bindFlags(cmd, keys); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := config.ValidateExtract(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newNormalizer builds the normalizer for the configured policy.
func newNormalizer(cfg *config.Config) (*normalize.Normalizer, error) {
	policy, err := normalize.ParsePolicy(cfg.Extract.Policy)
	if err != nil {
		return nil, err
	}
	return normalize.New(policy), nil
}

// newExtractor builds an Extractor for the configured backend and policy.
// opts.Normalizer is filled in from the configuration.
func newExtractor(cfg *config.Config, opts extract.Options) (*extract.Extractor, error) {
	backend, err := reader.NewBackend(cfg.Extract.Backend)
	if err != nil {
		return nil, err
	}
	n, err := newNormalizer(cfg)
	if err != nil {
		return nil, err
	}
	opts.Normalizer = n
	display.Debug("backend %s, policy %s", backend.Name(), n.Policy())
	return extract.New(backend, opts)
}
