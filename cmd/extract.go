package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/akashicode/pdfclean/internal/display"
	"github.com/akashicode/pdfclean/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf>",
	Short: "Print cleaned text, pages and metadata as JSON or YAML",
	Long: `Extracts every page of a PDF, cleans the text and prints a result envelope:

  success, error, text, metadata, pages, totalCharacters

A failed extraction still prints the envelope (success=false) and exits 0,
unless --strict is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.StringP("format", "f", string(extract.FormatJSON), "output format: json or yaml")
	f.Int("indent", 2, "indentation width of the output")
	f.Bool("strict", false, "exit with status 1 when extraction fails")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, map[string]string{
		"format": "extract.format",
		"indent": "extract.indent",
		"strict": "extract.strict",
	})
	if err != nil {
		return err
	}

	format, err := extract.ParseFormat(cfg.Extract.Format)
	if err != nil {
		return err
	}

	ex, err := newExtractor(cfg, extract.Options{Marker: extract.JSONMarker})
	if err != nil {
		return err
	}

	start := time.Now()
	res, extractErr := ex.Extract(cmd.Context(), args[0])
	display.Debug("extracted %s in %s", args[0], display.Elapsed(time.Since(start)))

	if err := extract.Encode(cmd.OutOrStdout(), res, format, cfg.Extract.Indent); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	if extractErr != nil && cfg.Extract.Strict {
		return extractErr
	}
	return nil
}
