package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akashicode/pdfclean/internal/display"
	"github.com/akashicode/pdfclean/internal/extract"
)

var textCmd = &cobra.Command{
	Use:   "text <pdf>",
	Short: "Print the cleaned text of a PDF",
	Long: `Prints the cleaned text of every non-blank page, each headed by a page
marker, separated by blank lines. Exits with status 1 when the PDF cannot be
read or contains no text.`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func init() {
	f := textCmd.Flags()
	f.String("marker", extract.TextMarker, "page header; %d is replaced by the page number")
	f.Bool("keep-blank", false, "also print markers for pages without text")
	rootCmd.AddCommand(textCmd)
}

func runText(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, map[string]string{
		"marker":     "text.marker",
		"keep-blank": "text.keep_blank",
	})
	if err != nil {
		return err
	}

	ex, err := newExtractor(cfg, extract.Options{
		Marker:    cfg.Text.Marker,
		SkipBlank: !cfg.Text.KeepBlank,
		Untrimmed: true,
	})
	if err != nil {
		return err
	}

	display.Debug("reading %s", args[0])
	text, err := ex.Text(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}
