package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [file]",
	Short: "Normalize text from a file or stdin",
	Long: `Applies the same character clean-up used for PDF pages to arbitrary text.
Reads the named file, or stdin when no file is given, and writes the result
to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	n, err := newNormalizer(cfg)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %q: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	_, err = io.WriteString(cmd.OutOrStdout(), n.Normalize(string(raw)))
	return err
}
