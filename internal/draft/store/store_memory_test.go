package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commune/internal/draft/models"
	dErrors "commune/pkg/domain-errors"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	t.Run("get missing draft is not found", func(t *testing.T) {
		_, err := s.Get(ctx, "col-1", "resp-1")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("put then get round-trips", func(t *testing.T) {
		draft := models.Draft{
			ID:           "d-1",
			CollectionID: "col-1",
			ResponderID:  "resp-1",
			Values:       map[string]any{"title": "hello"},
		}
		require.NoError(t, s.Put(ctx, draft))

		got, err := s.Get(ctx, "col-1", "resp-1")
		require.NoError(t, err)
		assert.Equal(t, "d-1", got.ID)
		assert.Equal(t, "hello", got.Values["title"])
	})

	t.Run("get returns a copy not an alias", func(t *testing.T) {
		got, err := s.Get(ctx, "col-1", "resp-1")
		require.NoError(t, err)
		got.Values["title"] = "mutated"

		again, err := s.Get(ctx, "col-1", "resp-1")
		require.NoError(t, err)
		assert.Equal(t, "hello", again.Values["title"])
	})

	t.Run("delete removes the draft", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "col-1", "resp-1"))
		_, err := s.Get(ctx, "col-1", "resp-1")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
