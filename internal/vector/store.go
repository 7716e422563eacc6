package vector

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"

	chromem "github.com/philippgille/chromem-go"

	"github.com/akashicode/pdfclean/internal/chunker"
)

// ErrNilEmbeddingFunc is returned when no embedding function is provided.
var ErrNilEmbeddingFunc = errors.New("embedding function is nil")

// ErrEmptyIndex is returned when querying a store that holds no chunks.
var ErrEmptyIndex = errors.New("index is empty")

const collectionName = "pages"

// SearchResult is a page chunk matched by a similarity query.
type SearchResult struct {
	ID         string
	Content    string
	Source     string
	Page       int
	Similarity float32
}

// Store wraps a chromem-go collection of page chunks.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewStore creates a Store backed by an in-memory chromem-go database.
func NewStore(embed chromem.EmbeddingFunc) (*Store, error) {
	if embed == nil {
		return nil, ErrNilEmbeddingFunc
	}
	return newStore(chromem.NewDB(), embed)
}

// NewPersistentStore opens or creates an on-disk chromem-go database at path.
func NewPersistentStore(path string, embed chromem.EmbeddingFunc) (*Store, error) {
	if embed == nil {
		return nil, ErrNilEmbeddingFunc
	}
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("open persistent db at %q: %w", path, err)
	}
	return newStore(db, embed)
}

func newStore(db *chromem.DB, embed chromem.EmbeddingFunc) (*Store, error) {
	collection, err := db.GetOrCreateCollection(collectionName, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("get or create collection: %w", err)
	}
	return &Store{db: db, collection: collection}, nil
}

// AddChunks embeds and stores a batch of chunks. Chunks whose ID already
// exists replace the stored version.
func (s *Store) AddChunks(ctx context.Context, chunks []chunker.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(chunks))
	for i, ch := range chunks {
		docs[i] = chromem.Document{
			ID:      ch.ID,
			Content: ch.Content,
			Metadata: map[string]string{
				"source": ch.Source,
				"page":   strconv.Itoa(ch.Page),
				"index":  strconv.Itoa(ch.Index),
			},
		}
	}

	if err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("add documents to collection: %w", err)
	}
	return nil
}

// ReplaceSource drops every chunk stored for source and adds chunks in their
// place, so a re-indexed document keeps no chunks from an older version.
func (s *Store) ReplaceSource(ctx context.Context, source string, chunks []chunker.Chunk) error {
	if source == "" {
		return errors.New("source cannot be empty")
	}
	for _, ch := range chunks {
		if ch.Source != source {
			return fmt.Errorf("chunk %s belongs to %q, not %q", ch.ID, ch.Source, source)
		}
	}
	if err := s.collection.Delete(ctx, map[string]string{"source": source}, nil); err != nil {
		return fmt.Errorf("delete chunks of %q: %w", source, err)
	}
	return s.AddChunks(ctx, chunks)
}

// Query returns up to topK chunks most similar to query.
func (s *Store) Query(ctx context.Context, query string, topK int) ([]SearchResult, error) {
	if query == "" {
		return nil, errors.New("query cannot be empty")
	}
	count := s.collection.Count()
	if count == 0 {
		return nil, ErrEmptyIndex
	}
	if topK <= 0 {
		topK = 5
	}
	// chromem rejects requests for more results than documents.
	if topK > count {
		topK = count
	}

	results, err := s.collection.Query(ctx, query, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}

	out := make([]SearchResult, len(results))
	for i, r := range results {
		page, _ := strconv.Atoi(r.Metadata["page"])
		out[i] = SearchResult{
			ID:         r.ID,
			Content:    r.Content,
			Source:     r.Metadata["source"],
			Page:       page,
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

// Count returns the number of chunks in the store.
func (s *Store) Count() int {
	return s.collection.Count()
}
