package handler

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commune/internal/circle/models"
	"commune/internal/circle/service"
	"commune/internal/circle/store"
	"commune/internal/platform/middleware"
	"commune/pkg/testutil"
)

// tokenAsUserValidator treats the bearer token itself as the user id,
// which keeps handler tests free of real token minting.
type tokenAsUserValidator struct{}

func (tokenAsUserValidator) ValidateToken(token string) (*middleware.JWTClaims, error) {
	return &middleware.JWTClaims{UserID: token, SessionID: "session-" + token}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := service.New(store.NewInMemoryStore())
	h := New(svc, slog.Default(), tokenAsUserValidator{})
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func authed(t *testing.T, userID string, req *http.Request) *http.Request {
	t.Helper()
	req.Header.Set("Authorization", "Bearer "+userID)
	return req
}

func TestCircleHandler_RequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/circles", map[string]string{"name": "dao"})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
}

func TestCircleHandler_Lifecycle(t *testing.T) {
	router := newTestRouter(t)
	var circleID string

	testutil.Given(t, "a freshly created circle", func(t *testing.T) {
		req := authed(t, "alice", testutil.NewJSONRequest(t, http.MethodPost, "/circles",
			map[string]string{"name": "gov-dao", "description": "governance circle"}))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusCreated)
		circle := testutil.UnmarshalResponse[models.Circle](t, rr)
		require.NotEmpty(t, circle.ID)
		circleID = circle.ID

		member, ok := circle.Membership("alice")
		require.True(t, ok)
		assert.True(t, member.HasRole(string(models.RoleSteward)))
	})

	testutil.When(t, "another user joins", func(t *testing.T) {
		req := authed(t, "bob", testutil.NewRequest(t, http.MethodPost, "/circles/"+circleID+"/join"))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		circle := testutil.UnmarshalResponse[models.Circle](t, rr)
		_, ok := circle.Membership("bob")
		assert.True(t, ok)
	})

	testutil.Then(t, "a steward can grant them contributor", func(t *testing.T) {
		req := authed(t, "alice", testutil.NewJSONRequest(t, http.MethodPost, "/circles/"+circleID+"/roles",
			map[string]string{"userId": "bob", "role": string(models.RoleContributor)}))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		circle := testutil.UnmarshalResponse[models.Circle](t, rr)
		member, ok := circle.Membership("bob")
		require.True(t, ok)
		assert.True(t, member.HasRole(string(models.RoleContributor)))
	})
}

func TestCircleHandler_Errors(t *testing.T) {
	router := newTestRouter(t)

	t.Run("unknown circle is not found", func(t *testing.T) {
		req := authed(t, "alice", testutil.NewRequest(t, http.MethodGet, "/circles/nope"))
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		req := authed(t, "alice", testutil.NewJSONRequest(t, http.MethodPost, "/circles",
			map[string]string{"name": "  "}))
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("joining twice conflicts", func(t *testing.T) {
		req := authed(t, "alice", testutil.NewJSONRequest(t, http.MethodPost, "/circles",
			map[string]string{"name": "dup-join"}))
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)
		circle := testutil.UnmarshalResponse[models.Circle](t, rr)

		join := authed(t, "bob", testutil.NewRequest(t, http.MethodPost, "/circles/"+circle.ID+"/join"))
		testutil.AssertStatus(t, testutil.DoRequest(router, join), http.StatusOK)

		again := authed(t, "bob", testutil.NewRequest(t, http.MethodPost, "/circles/"+circle.ID+"/join"))
		testutil.AssertStatusAndError(t, testutil.DoRequest(router, again), http.StatusConflict, "conflict")
	})

	t.Run("invalid wallet address fails validation", func(t *testing.T) {
		req := authed(t, "alice", testutil.NewJSONRequest(t, http.MethodPost, "/circles",
			map[string]string{"name": "wallets"}))
		rr := testutil.DoRequest(router, req)
		circle := testutil.UnmarshalResponse[models.Circle](t, rr)

		link := authed(t, "alice", testutil.NewJSONRequest(t, http.MethodPost, "/circles/"+circle.ID+"/wallet",
			map[string]string{"address": "0xnot-an-address"}))
		testutil.AssertStatusAndError(t, testutil.DoRequest(router, link), http.StatusBadRequest, "validation")
	})
}
