package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akashicode/pdfclean/internal/config"
	"github.com/akashicode/pdfclean/internal/display"
	"github.com/akashicode/pdfclean/internal/graph"
	"github.com/akashicode/pdfclean/internal/llm"
	"github.com/akashicode/pdfclean/internal/vector"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search indexed PDF pages",
	Long: `Runs a similarity search over the indexed page chunks and a term match
over the document metadata graph. Build the index first with 'pdfclean index'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringP("dir", "d", ".pdfclean", "index directory")
	f.IntP("top-k", "k", 5, "number of results per source")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, map[string]string{
		"dir":   "index.dir",
		"top-k": "index.top_k",
	})
	if err != nil {
		return err
	}
	if err := config.ValidateIndex(cfg); err != nil {
		return err
	}

	if _, err := os.Stat(cfg.Index.Dir); err != nil {
		return fmt.Errorf("no index at %q, run 'pdfclean index' first: %w", cfg.Index.Dir, err)
	}

	ctx := cmd.Context()
	query := strings.Join(args, " ")

	embedder, err := llm.NewEmbedder(&cfg.Index.Embedder)
	if err != nil {
		return fmt.Errorf("create embedder: %w", err)
	}

	vectorPath, graphPath := indexPaths(cfg.Index.Dir)
	vs, err := vector.NewPersistentStore(vectorPath, embedder.Embed)
	if err != nil {
		return fmt.Errorf("open vector store: %w", err)
	}
	gdb, err := graph.NewDBFromPath(graphPath)
	if err != nil {
		return fmt.Errorf("open graph store: %w", err)
	}
	defer gdb.Close()

	display.Debug("searching %d chunks and %d quads", vs.Count(), gdb.Count())

	chunks, err := vs.Query(ctx, query, cfg.Index.TopK)
	if err != nil && !errors.Is(err, vector.ErrEmptyIndex) {
		return fmt.Errorf("vector search: %w", err)
	}
	facts, err := gdb.Search(ctx, query, cfg.Index.TopK)
	if err != nil {
		return fmt.Errorf("graph search: %w", err)
	}

	if len(chunks) == 0 && len(facts) == 0 {
		display.Warn(fmt.Sprintf("no results for %q", query))
		return nil
	}
	display.Info(fmt.Sprintf("%d page chunk(s), %d metadata fact(s) for %q", len(chunks), len(facts), query))
	printSearchResults(cmd.OutOrStdout(), chunks, facts)
	return nil
}

func printSearchResults(w io.Writer, chunks []vector.SearchResult, facts []graph.SearchResult) {
	if len(chunks) > 0 {
		fmt.Fprintf(w, "%s%sPages%s\n", display.Bold, display.BrightCyan, display.Reset)
		for _, c := range chunks {
			fmt.Fprintf(w, "  %s%s p.%d%s  %s(%.3f)%s\n",
				display.Bold, c.Source, c.Page, display.Reset,
				display.BrightGreen, c.Similarity, display.Reset)
			fmt.Fprintf(w, "    %s\n", snippet(c.Content, 200))
		}
	}
	if len(facts) > 0 {
		if len(chunks) > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s%sMetadata%s\n", display.Bold, display.BrightCyan, display.Reset)
		fmt.Fprint(w, graph.FormatResults(facts))
	}
}

// snippet collapses whitespace and cuts s to at most n runes.
func snippet(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
