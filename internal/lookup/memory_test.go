package lookup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "commune/pkg/domain-errors"
)

func TestEncodeShortID(t *testing.T) {
	assert.Equal(t, "0001", encodeShortID(1))
	assert.Equal(t, "000a", encodeShortID(10))
	assert.Equal(t, "0010", encodeShortID(36))
	assert.Equal(t, "zzzz", encodeShortID(36*36*36*36-1))
}

// Sequences past the four-character space widen instead of wrapping onto
// earlier ids.
func TestEncodeShortIDWidens(t *testing.T) {
	const span = 36 * 36 * 36 * 36
	assert.Equal(t, "10000", encodeShortID(span))
	assert.Equal(t, "10001", encodeShortID(span+1))
	assert.NotEqual(t, encodeShortID(1), encodeShortID(span+1))
}

func TestInMemoryRegistry(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRegistry()

	t.Run("registration is stable", func(t *testing.T) {
		first, err := r.Register(ctx, "col-1", "title")
		require.NoError(t, err)
		assert.Len(t, first, ShortIDLength)

		again, err := r.Register(ctx, "col-1", "title")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	})

	t.Run("distinct values get distinct ids", func(t *testing.T) {
		a, err := r.Register(ctx, "col-1", "status")
		require.NoError(t, err)
		b, err := r.Register(ctx, "col-1", "status/open")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("scopes are independent", func(t *testing.T) {
		id1, err := r.Register(ctx, "col-1", "owner")
		require.NoError(t, err)
		id2, err := r.Register(ctx, "col-2", "owner")
		require.NoError(t, err)

		v1, err := r.Resolve(ctx, "col-1", id1)
		require.NoError(t, err)
		v2, err := r.Resolve(ctx, "col-2", id2)
		require.NoError(t, err)
		assert.Equal(t, "owner", v1)
		assert.Equal(t, "owner", v2)
	})

	t.Run("resolve round-trips", func(t *testing.T) {
		id, err := r.Register(ctx, "col-1", "deadline")
		require.NoError(t, err)
		value, err := r.Resolve(ctx, "col-1", id)
		require.NoError(t, err)
		assert.Equal(t, "deadline", value)
	})

	t.Run("unknown ids are not found", func(t *testing.T) {
		_, err := r.Resolve(ctx, "col-1", "zzzz")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

		_, err = r.Resolve(ctx, "no-such-scope", "0001")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
