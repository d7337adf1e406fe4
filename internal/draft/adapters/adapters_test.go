package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	circleservice "commune/internal/circle/service"
	circlestore "commune/internal/circle/store"
	collection "commune/internal/collection/models"
	dErrors "commune/pkg/domain-errors"
)

func TestWalletDirectory(t *testing.T) {
	ctx := context.Background()
	d := NewWalletDirectory()

	t.Run("unlinked responder", func(t *testing.T) {
		linked, err := d.HasLinkedWallet(ctx, "resp-1")
		require.NoError(t, err)
		assert.False(t, linked)

		_, err = d.Address(ctx, "resp-1")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("link round-trips", func(t *testing.T) {
		require.NoError(t, d.Link(ctx, "resp-1", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))

		linked, err := d.HasLinkedWallet(ctx, "resp-1")
		require.NoError(t, err)
		assert.True(t, linked)

		address, err := d.Address(ctx, "resp-1")
		require.NoError(t, err)
		assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", address)
	})

	t.Run("rejects a malformed address", func(t *testing.T) {
		err := d.Link(ctx, "resp-2", "not-an-address")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestCircleRoleGate(t *testing.T) {
	ctx := context.Background()
	circles := circleservice.New(circlestore.NewInMemoryStore())
	circle, err := circles.Create(ctx, "Builders", "", "user-1")
	require.NoError(t, err)
	_, err = circles.Join(ctx, circle.ID, "user-2")
	require.NoError(t, err)

	gate := NewCircleRoleGate(circles)

	t.Run("steward passes a steward gate", func(t *testing.T) {
		ok, err := gate.HasGatingRole(ctx, "user-1", circle.ID, []string{"steward"})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("plain member fails a steward gate", func(t *testing.T) {
		ok, err := gate.HasGatingRole(ctx, "user-2", circle.ID, []string{"steward"})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-member fails without error", func(t *testing.T) {
		ok, err := gate.HasGatingRole(ctx, "stranger", circle.ID, []string{"member"})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown circle fails closed", func(t *testing.T) {
		ok, err := gate.HasGatingRole(ctx, "user-1", "ghost", []string{"steward"})
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPassportSybil(t *testing.T) {
	ctx := context.Background()
	scorer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("address") {
		case "0xrich":
			w.Write([]byte(`{"stamps":["github","twitter","ens"]}`))
		default:
			w.Write([]byte(`{"stamps":[]}`))
		}
	}))
	defer scorer.Close()

	cfg := collection.SybilConfig{
		Enabled:   true,
		Scores:    map[string]float64{"github": 5, "twitter": 3, "ens": 4},
		Threshold: 10,
	}
	s := NewPassportSybil(scorer.URL, scorer.Client())

	t.Run("weighted stamps over threshold pass", func(t *testing.T) {
		passed, err := s.PassesSybilCheck(ctx, "0xrich", cfg)
		require.NoError(t, err)
		assert.True(t, passed)
	})

	t.Run("no stamps fail", func(t *testing.T) {
		passed, err := s.PassesSybilCheck(ctx, "0xpoor", cfg)
		require.NoError(t, err)
		assert.False(t, passed)
	})

	t.Run("disabled config passes without a call", func(t *testing.T) {
		passed, err := s.PassesSybilCheck(ctx, "0xanyone", collection.SybilConfig{})
		require.NoError(t, err)
		assert.True(t, passed)
	})
}

func TestHCaptchaVerifier(t *testing.T) {
	ctx := context.Background()
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("response") == "good" && r.PostForm.Get("secret") == "s3cret" {
			w.Write([]byte(`{"success":true}`))
			return
		}
		w.Write([]byte(`{"success":false}`))
	}))
	defer provider.Close()

	v := NewHCaptchaVerifier("s3cret", provider.URL, provider.Client())

	passed, err := v.Verify(ctx, "good")
	require.NoError(t, err)
	assert.True(t, passed)

	passed, err = v.Verify(ctx, "bad")
	require.NoError(t, err)
	assert.False(t, passed)
}

func TestHTTPClaimService(t *testing.T) {
	ctx := context.Background()
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/claims/poap" {
			w.Write([]byte(`{"canClaim":true,"hasClaimed":false}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer provider.Close()

	s := NewHTTPClaimService(provider.URL, provider.Client())

	status, err := s.Status(ctx, "poap", "col-1", "resp-1")
	require.NoError(t, err)
	assert.True(t, status.CanClaim)
	assert.False(t, status.HasClaimed)

	_, err = s.Status(ctx, "kudos", "col-1", "resp-1")
	assert.Error(t, err)
}
