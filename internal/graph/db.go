package graph

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cayleygraph/cayley"
	"github.com/cayleygraph/cayley/graph"
	_ "github.com/cayleygraph/cayley/graph/kv/bolt"
	_ "github.com/cayleygraph/cayley/graph/memstore"
	"github.com/cayleygraph/quad"
)

// Predicates linking documents, pages and metadata.
const (
	PredicateHasPage   = "hasPage"
	PredicatePageCount = "pageCount"
	PredicateCharCount = "charCount"
	PredicateNumber    = "pageNumber"
)

// Page is the per-page information recorded in the graph.
type Page struct {
	Number    int
	CharCount int
}

// Document is the information recorded for one indexed PDF.
type Document struct {
	// Source is the PDF path; it becomes the subject node.
	Source string
	// Properties are metadata fields such as title or author. Empty values
	// are not stored.
	Properties map[string]string
	Pages      []Page
}

// SearchResult represents a fact matched by a graph search.
type SearchResult struct {
	Subject   string  `json:"subject"`
	Predicate string  `json:"predicate"`
	Object    string  `json:"object"`
	Score     float64 `json:"score"`
}

// DB wraps a cayley graph database.
type DB struct {
	store *cayley.Handle
}

// NewDB creates a new in-memory graph DB.
func NewDB() (*DB, error) {
	store, err := cayley.NewMemoryGraph()
	if err != nil {
		return nil, fmt.Errorf("create memory graph: %w", err)
	}
	return &DB{store: store}, nil
}

// NewDBFromPath opens a persistent bolt-backed cayley graph, creating it on
// first use.
func NewDBFromPath(path string) (*DB, error) {
	if err := graph.InitQuadStore("bolt", path, nil); err != nil {
		if !strings.Contains(err.Error(), "already") {
			return nil, fmt.Errorf("init bolt quad store at %q: %w", path, err)
		}
	}

	store, err := cayley.NewGraph("bolt", path, nil)
	if err != nil {
		return nil, fmt.Errorf("open bolt graph at %q: %w", path, err)
	}
	return &DB{store: store}, nil
}

// PageNode returns the node name of a page of source.
func PageNode(source string, page int) string {
	return source + "#page=" + strconv.Itoa(page)
}

// Quads converts a document into the quads stored for it.
func Quads(doc Document) []quad.Quad {
	keys := make([]string, 0, len(doc.Properties))
	for k, v := range doc.Properties {
		if strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	quads := make([]quad.Quad, 0, len(keys)+1+3*len(doc.Pages))
	for _, k := range keys {
		quads = append(quads, quad.Make(doc.Source, k, strings.TrimSpace(doc.Properties[k]), nil))
	}
	quads = append(quads, quad.Make(doc.Source, PredicatePageCount, strconv.Itoa(len(doc.Pages)), nil))
	for _, p := range doc.Pages {
		node := PageNode(doc.Source, p.Number)
		quads = append(quads,
			quad.Make(doc.Source, PredicateHasPage, node, nil),
			quad.Make(node, PredicateNumber, strconv.Itoa(p.Number), nil),
			quad.Make(node, PredicateCharCount, strconv.Itoa(p.CharCount), nil),
		)
	}
	return quads
}

// AddDocument replaces everything stored about doc.Source with the facts in
// doc and returns the number of quads written.
func (db *DB) AddDocument(ctx context.Context, doc Document) (int, error) {
	if doc.Source == "" {
		return 0, errors.New("document source cannot be empty")
	}

	stale, err := db.quadsAbout(ctx, doc.Source)
	if err != nil {
		return 0, err
	}
	fresh := Quads(doc)

	tx := graph.NewTransaction()
	for _, q := range stale {
		tx.RemoveQuad(q)
	}
	for _, q := range fresh {
		tx.AddQuad(q)
	}
	if err := db.store.ApplyTransaction(tx); err != nil {
		return 0, fmt.Errorf("apply quads for %q: %w", doc.Source, err)
	}
	return len(fresh), nil
}

// quadsAbout collects the quads whose subject is source or one of its pages.
func (db *DB) quadsAbout(ctx context.Context, source string) ([]quad.Quad, error) {
	pagePrefix := source + "#page="

	it := db.store.QuadsAllIterator()
	defer it.Close()

	var out []quad.Quad
	for it.Next(ctx) {
		q := db.store.Quad(it.Result())
		subj := quadValueStr(q.Subject)
		if subj == source || strings.HasPrefix(subj, pagePrefix) {
			out = append(out, q)
		}
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("scan quads: %w", err)
	}
	return out, nil
}

// Search queries the graph for facts whose terms match the query.
func (db *DB) Search(ctx context.Context, query string, topK int) ([]SearchResult, error) {
	if query == "" {
		return nil, errors.New("query cannot be empty")
	}
	if topK <= 0 {
		topK = 10
	}

	queryTerms := strings.Fields(strings.ToLower(query))
	results := []SearchResult{}
	seen := map[string]bool{}

	it := db.store.QuadsAllIterator()
	defer it.Close()

	for it.Next(ctx) {
		q := db.store.Quad(it.Result())

		subj := quadValueStr(q.Subject)
		pred := quadValueStr(q.Predicate)
		obj := quadValueStr(q.Object)

		key := subj + "|" + pred + "|" + obj
		if seen[key] {
			continue
		}

		if score := scoreMatch(queryTerms, subj, pred, obj); score > 0 {
			seen[key] = true
			results = append(results, SearchResult{
				Subject:   subj,
				Predicate: pred,
				Object:    obj,
				Score:     score,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// FormatResults converts graph search results into a readable list.
func FormatResults(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "- %s %s %s\n", r.Subject, r.Predicate, r.Object)
	}
	return sb.String()
}

// Count returns the number of quads in the graph.
func (db *DB) Count() int64 {
	stats, err := db.store.Stats(context.Background(), false)
	if err != nil {
		return 0
	}
	return stats.Quads.Size
}

// Close shuts down the graph store.
func (db *DB) Close() error {
	return db.store.Close()
}

func quadValueStr(v quad.Value) string {
	if v == nil {
		return ""
	}
	s := quad.StringOf(v)
	s = strings.TrimPrefix(s, "\"")
	s = strings.TrimSuffix(s, "\"")
	return strings.TrimSpace(s)
}

// scoreMatch counts query terms of three or more letters that occur in any of
// the values.
func scoreMatch(terms []string, values ...string) float64 {
	combined := strings.ToLower(strings.Join(values, " "))
	score := 0.0
	for _, term := range terms {
		if len(term) < 3 {
			continue
		}
		if strings.Contains(combined, term) {
			score += 1.0
		}
	}
	return score
}
