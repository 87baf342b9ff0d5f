package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

func TestSearch_PreservesOrderAndScores(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "budget 2024", q.Get("q"))
		assert.Equal(t, "finance", q.Get("tag"))
		assert.False(t, q.Has("limit"))
		assert.False(t, q.Has("source_id"))
		_, _ = w.Write([]byte(`[
			{"document_id":2,"document_title":"Second","snippet":"...","score":0.42,"tags":[]},
			{"document_id":1,"document_title":"First","snippet":"...","score":0.91,"tags":[]}
		]`))
	})

	results, err := c.Search(context.Background(), "budget 2024", domain.SearchFilter{Tag: "finance"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(2), results[0].DocumentID)
	assert.Equal(t, 0.42, results[0].Score)
	assert.Equal(t, int64(1), results[1].DocumentID)
	assert.Equal(t, 0.91, results[1].Score)
}

func TestSearch_AllFilters(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "5", q.Get("limit"))
		assert.Equal(t, "3", q.Get("source_id"))
		_, _ = w.Write([]byte(`[]`))
	})

	results, err := c.Search(context.Background(), "x", domain.SearchFilter{Limit: 5, SourceID: 3})
	require.NoError(t, err)
	assert.Empty(t, results)
}
