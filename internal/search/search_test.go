package search

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/myscribe/myscribe-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) (*SearchIndex, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "search-test-*")
	require.NoError(t, err)

	index, err := NewSearchIndex(Options{
		DataPath: tmpDir,
		Logger:   nil,
	})
	require.NoError(t, err)

	cleanup := func() {
		_ = index.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return index, cleanup
}

func testBook(title, author, genre string) *domain.Book {
	return &domain.Book{
		Title:     title,
		Author:    author,
		Genre:     genre,
		Language:  "en",
		CreatedAt: time.Now(),
	}
}

func TestNewSearchIndex(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestIndexBook(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	err := index.IndexBook(context.Background(), testBook("dune", "frank herbert", "science fiction"))
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestIndexBookIsUpsert(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, index.IndexBook(ctx, testBook("dune", "frank herbert", "science fiction")))
	require.NoError(t, index.IndexBook(ctx, testBook("dune", "frank herbert", "science fiction")))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestSearchByTitle(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	ctx := context.Background()

	books := []*domain.Book{
		testBook("dune", "frank herbert", "science fiction"),
		testBook("dune messiah", "frank herbert", "science fiction"),
		testBook("the trial", "franz kafka", "absurdist fiction"),
	}
	require.NoError(t, index.IndexBooks(ctx, books))

	params := DefaultSearchParams()
	params.Query = "dune"
	result, err := index.Search(ctx, params)
	require.NoError(t, err)

	assert.Equal(t, uint64(2), result.Total)
	assert.Equal(t, "dune", result.Hits[0].Title)
}

func TestSearchByAuthor(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, index.IndexBooks(ctx, []*domain.Book{
		testBook("dune", "frank herbert", "science fiction"),
		testBook("the trial", "franz kafka", "absurdist fiction"),
	}))

	params := DefaultSearchParams()
	params.Query = "kafka"
	result, err := index.Search(ctx, params)
	require.NoError(t, err)

	require.Len(t, result.Hits, 1)
	assert.Equal(t, "the trial", result.Hits[0].Title)
}

func TestSearchGenreFilter(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, index.IndexBooks(ctx, []*domain.Book{
		testBook("dune", "frank herbert", "science fiction"),
		testBook("the trial", "franz kafka", "absurdist fiction"),
	}))

	params := DefaultSearchParams()
	params.Genre = "absurdist fiction"
	result, err := index.Search(ctx, params)
	require.NoError(t, err)

	require.Len(t, result.Hits, 1)
	assert.Equal(t, "the trial", result.Hits[0].Title)
}

func TestSearchHighlights(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, index.IndexBook(ctx, testBook("dune", "frank herbert", "science fiction")))

	params := DefaultSearchParams()
	params.Query = "dune"
	result, err := index.Search(ctx, params)
	require.NoError(t, err)

	require.Len(t, result.Hits, 1)
	assert.Contains(t, result.Hits[0].Highlights, "title")
}

func TestDeleteBook(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, index.IndexBook(ctx, testBook("dune", "frank herbert", "science fiction")))
	require.NoError(t, index.DeleteBook("dune"))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}
