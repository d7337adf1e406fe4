//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commune/internal/draft/models"
	dErrors "commune/pkg/domain-errors"
	"commune/pkg/testutil/containers"
)

func TestRedisStoreIntegration(t *testing.T) {
	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	defer rc.Close(t)

	s := NewRedisStore(rc.Client, WithTTL(time.Minute))

	t.Run("missing draft is not found", func(t *testing.T) {
		_, err := s.Get(ctx, "col-1", "resp-1")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("put get delete round-trip", func(t *testing.T) {
		draft := models.Draft{
			ID:           "d-1",
			CollectionID: "col-1",
			ResponderID:  "resp-1",
			Values:       map[string]any{"title": "hello"},
			Flags:        models.Flags{HasPassedSybilCheck: true},
		}
		require.NoError(t, s.Put(ctx, draft))

		got, err := s.Get(ctx, "col-1", "resp-1")
		require.NoError(t, err)
		assert.Equal(t, "d-1", got.ID)
		assert.True(t, got.Flags.HasPassedSybilCheck)
		assert.Equal(t, "hello", got.Values["title"])

		require.NoError(t, s.Delete(ctx, "col-1", "resp-1"))
		_, err = s.Get(ctx, "col-1", "resp-1")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
