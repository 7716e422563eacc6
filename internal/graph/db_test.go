package graph

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	return Document{
		Source: "docs/a.pdf",
		Properties: map[string]string{
			"title":  "Annual Report",
			"author": "Finance Team",
			"mod":    "  ",
		},
		Pages: []Page{
			{Number: 1, CharCount: 120},
			{Number: 2, CharCount: 80},
		},
	}
}

func TestQuads(t *testing.T) {
	quads := Quads(sampleDocument())

	// author, title, pageCount, then three quads per page
	require.Len(t, quads, 3+2*3)
	assert.Equal(t, "author", quadValueStr(quads[0].Predicate))
	assert.Equal(t, "Finance Team", quadValueStr(quads[0].Object))
	assert.Equal(t, "title", quadValueStr(quads[1].Predicate))
	assert.Equal(t, PredicatePageCount, quadValueStr(quads[2].Predicate))
	assert.Equal(t, "2", quadValueStr(quads[2].Object))
	assert.Equal(t, PageNode("docs/a.pdf", 1), quadValueStr(quads[3].Object))
}

func TestPageNode(t *testing.T) {
	assert.Equal(t, "a.pdf#page=3", PageNode("a.pdf", 3))
}

func TestAddDocumentAndSearch(t *testing.T) {
	db, err := NewDB()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	n, err := db.AddDocument(ctx, sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Equal(t, int64(9), db.Count())

	results, err := db.Search(ctx, "annual report", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "title", results[0].Predicate)
	assert.Equal(t, "Annual Report", results[0].Object)
	assert.Equal(t, 2.0, results[0].Score)

	results, err = db.Search(ctx, "annual report", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestAddDocument_ReplacesPreviousFacts(t *testing.T) {
	db, err := NewDB()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	_, err = db.AddDocument(ctx, sampleDocument())
	require.NoError(t, err)

	updated := Document{
		Source:     "docs/a.pdf",
		Properties: map[string]string{"title": "Revised"},
		Pages:      []Page{{Number: 1, CharCount: 10}},
	}
	n, err := db.AddDocument(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	results, err := db.Search(ctx, "finance", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAddDocument_Errors(t *testing.T) {
	db, err := NewDB()
	require.NoError(t, err)
	defer db.Close()

	_, err = db.AddDocument(context.Background(), Document{})
	assert.Error(t, err)

	_, err = db.Search(context.Background(), "", 5)
	assert.Error(t, err)
}

func TestNewDBFromPath_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph")
	ctx := context.Background()

	db, err := NewDBFromPath(path)
	require.NoError(t, err)
	_, err = db.AddDocument(ctx, sampleDocument())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := NewDBFromPath(path)
	require.NoError(t, err)
	defer reopened.Close()

	results, err := reopened.Search(ctx, "finance", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "docs/a.pdf", results[0].Subject)
}

func TestFormatResults(t *testing.T) {
	assert.Equal(t, "", FormatResults(nil))
	out := FormatResults([]SearchResult{{Subject: "a.pdf", Predicate: "title", Object: "T"}})
	assert.Equal(t, "- a.pdf title T\n", out)
}

func TestScoreMatch(t *testing.T) {
	tests := []struct {
		name  string
		terms []string
		want  float64
	}{
		{"none", []string{"zebra"}, 0},
		{"short terms ignored", []string{"an", "of"}, 0},
		{"two hits", []string{"annual", "report"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreMatch(tt.terms, "docs/a.pdf", "title", "Annual Report"))
		})
	}
}
