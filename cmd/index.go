package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/akashicode/pdfclean/internal/chunker"
	"github.com/akashicode/pdfclean/internal/config"
	"github.com/akashicode/pdfclean/internal/display"
	"github.com/akashicode/pdfclean/internal/extract"
	"github.com/akashicode/pdfclean/internal/graph"
	"github.com/akashicode/pdfclean/internal/llm"
	"github.com/akashicode/pdfclean/internal/reader"
	"github.com/akashicode/pdfclean/internal/vector"
)

var indexCmd = &cobra.Command{
	Use:   "index <pdf|dir>...",
	Short: "Index cleaned PDF pages for search",
	Long: `Extracts and cleans each PDF (directories are scanned for *.pdf), then:
  1. Chunks every page's text
  2. Embeds the chunks via the configured embedder into <dir>/vectors
  3. Records document metadata and pages in the graph at <dir>/graph

PDFs that fail to extract are reported and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndex,
}

func init() {
	f := indexCmd.Flags()
	f.StringP("dir", "d", ".pdfclean", "index directory")
	f.Int("chunk-size", 1000, "maximum chunk size in characters")
	f.Int("overlap", 200, "characters shared by consecutive chunks of a long paragraph")
	rootCmd.AddCommand(indexCmd)
}

// indexPaths returns the vector and graph locations inside an index directory.
func indexPaths(dir string) (vectorPath, graphPath string) {
	return filepath.Join(dir, "vectors"), filepath.Join(dir, "graph")
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, map[string]string{
		"dir":        "index.dir",
		"chunk-size": "index.chunk_size",
		"overlap":    "index.overlap",
	})
	if err != nil {
		return err
	}
	if err := config.ValidateIndex(cfg); err != nil {
		return err
	}

	ctx := cmd.Context()
	start := time.Now()

	paths, err := reader.ExpandPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no PDF files found in the given paths")
	}

	ex, err := newExtractor(cfg, extract.Options{})
	if err != nil {
		return err
	}
	ck, err := chunker.NewChunker(chunker.Options{
		ChunkSize: cfg.Index.ChunkSize,
		Overlap:   cfg.Index.Overlap,
	})
	if err != nil {
		return fmt.Errorf("create chunker: %w", err)
	}
	embedder, err := llm.NewEmbedder(&cfg.Index.Embedder)
	if err != nil {
		return fmt.Errorf("create embedder: %w", err)
	}

	vectorPath, graphPath := indexPaths(cfg.Index.Dir)
	for _, dir := range []string{vectorPath, graphPath} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create index directory %q: %w", dir, err)
		}
	}

	vs, err := vector.NewPersistentStore(vectorPath, embedder.Embed)
	if err != nil {
		return fmt.Errorf("open vector store: %w", err)
	}
	gdb, err := graph.NewDBFromPath(graphPath)
	if err != nil {
		return fmt.Errorf("open graph store: %w", err)
	}
	defer gdb.Close()

	display.Header(fmt.Sprintf("Indexing %d PDF(s)", len(paths)))
	display.KeyValue("Backend", ex.Backend().Name(), display.BrightMagenta)
	display.KeyValue("Policy", cfg.Extract.Policy, display.BrightMagenta)
	display.KeyValue("Index", cfg.Index.Dir, display.Dim)

	summary := display.IndexSummary{VectorDir: vectorPath, GraphDir: graphPath}
	for i, path := range paths {
		display.Step(i+1, len(paths), path)

		res, err := ex.Extract(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			display.StepWarn(err.Error())
			summary.Failed++
			continue
		}
		display.StepDetail(fmt.Sprintf("%d page(s), %d characters", len(res.Pages), res.TotalCharacters))

		var chunks []chunker.Chunk
		for _, p := range res.Pages {
			chunks = append(chunks, ck.SplitPage(p.Text, path, p.PageNumber)...)
		}
		if err := vs.ReplaceSource(ctx, path, chunks); err != nil {
			return fmt.Errorf("index %s: %w", path, err)
		}
		display.StepResult("chunks", len(chunks))

		n, err := gdb.AddDocument(ctx, graphDocument(path, res))
		if err != nil {
			return fmt.Errorf("record %s in graph: %w", path, err)
		}
		display.StepResult("quads", n)

		summary.Documents++
		summary.Chunks += len(chunks)
	}

	summary.Quads = gdb.Count()
	display.PrintIndexSummary(cmd.OutOrStdout(), summary)
	display.Success(fmt.Sprintf("indexed %d of %d PDF(s) in %s",
		summary.Documents, len(paths), display.Elapsed(time.Since(start))))

	if summary.Documents == 0 {
		return errors.New("no PDF could be indexed")
	}
	return nil
}

// graphDocument converts an extraction result into the facts kept in the graph.
func graphDocument(path string, res *extract.Result) graph.Document {
	m := res.Metadata
	doc := graph.Document{
		Source: path,
		Properties: map[string]string{
			reader.KeyTitle:        m.Title,
			reader.KeyAuthor:       m.Author,
			reader.KeySubject:      m.Subject,
			reader.KeyCreator:      m.Creator,
			reader.KeyProducer:     m.Producer,
			reader.KeyCreationDate: m.CreationDate,
			reader.KeyModDate:      m.ModDate,
		},
		Pages: make([]graph.Page, len(res.Pages)),
	}
	for i, p := range res.Pages {
		doc.Pages[i] = graph.Page{Number: p.PageNumber, CharCount: p.CharCount}
	}
	return doc
}
