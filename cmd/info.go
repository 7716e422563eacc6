package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/akashicode/pdfclean/internal/display"
	"github.com/akashicode/pdfclean/internal/extract"
)

var infoCmd = &cobra.Command{
	Use:   "info <pdf>",
	Short: "Show metadata and text statistics of a PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	ex, err := newExtractor(cfg, extract.Options{})
	if err != nil {
		return err
	}

	res, err := ex.Extract(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	display.PrintDocumentInfo(cmd.OutOrStdout(), documentInfo(args[0], res, ex.Backend().Name(), cfg.Extract.Policy))
	return nil
}

func documentInfo(path string, res *extract.Result, backend, policy string) display.DocumentInfo {
	blank := 0
	for _, p := range res.Pages {
		if strings.TrimSpace(p.Text) == "" {
			blank++
		}
	}
	m := res.Metadata
	return display.DocumentInfo{
		Path:            path,
		Title:           m.Title,
		Author:          m.Author,
		Subject:         m.Subject,
		Creator:         m.Creator,
		Producer:        m.Producer,
		CreationDate:    m.CreationDate,
		ModDate:         m.ModDate,
		PageCount:       m.PageCount,
		FileSize:        m.FileSize,
		BlankPages:      blank,
		TotalCharacters: res.TotalCharacters,
		Backend:         backend,
		Policy:          policy,
	}
}
