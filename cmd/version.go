package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akashicode/pdfclean/internal/reader"
)

// These are set at build time via -ldflags.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of pdfclean",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "pdfclean %s\n", version)
		fmt.Fprintf(w, "  commit:     %s\n", commit)
		fmt.Fprintf(w, "  built:      %s\n", buildDate)
		fmt.Fprintf(w, "  backends:   %s\n", strings.Join(reader.Backends(), ", "))
		fmt.Fprintf(w, "  go version: %s\n", runtime.Version())
		fmt.Fprintf(w, "  os/arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
