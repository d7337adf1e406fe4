package handler

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commune/internal/collection/models"
	"commune/internal/collection/service"
	"commune/internal/collection/store"
	"commune/internal/platform/middleware"
	"commune/pkg/testutil"
)

type tokenAsUserValidator struct{}

func (tokenAsUserValidator) ValidateToken(token string) (*middleware.JWTClaims, error) {
	return &middleware.JWTClaims{UserID: token, SessionID: "session-" + token}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := service.New(store.NewInMemoryStore(), nil)
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

func createCollection(t *testing.T, router http.Handler, name string) *models.Collection {
	t.Helper()
	req := authed(t, "alice", testutil.NewJSONRequest(t, http.MethodPost, "/collections",
		map[string]string{"circleId": "circle-1", "name": name}))
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	return testutil.UnmarshalResponse[models.Collection](t, rr)
}

func addProperty(t *testing.T, router http.Handler, colID string, p models.Property) {
	t.Helper()
	req := authed(t, "alice", testutil.NewJSONRequest(t, http.MethodPost,
		"/collections/"+colID+"/properties", map[string]any{"property": p}))
	testutil.AssertStatus(t, testutil.DoRequest(router, req), http.StatusCreated)
}

func TestCollectionHandler_RequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/collections?circleId=c1"))
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
}

func TestCollectionHandler_SchemaAndRecords(t *testing.T) {
	router := newTestRouter(t)
	col := createCollection(t, router, "grants")

	addProperty(t, router, col.ID, models.Property{
		ID: "title", Name: "Title", Type: models.TypeShortText,
		IsPartOfFormView: true, Required: true,
	})
	addProperty(t, router, col.ID, models.Property{
		ID: "status", Name: "Status", Type: models.TypeSingleSelect,
		IsPartOfFormView: true,
		Options: []models.Option{
			{Label: "Open", Value: "open"},
			{Label: "Closed", Value: "closed"},
		},
	})

	var slug string

	t.Run("add record", func(t *testing.T) {
		req := authed(t, "alice", testutil.NewJSONRequest(t, http.MethodPost,
			"/collections/"+col.ID+"/records", map[string]any{
				"title":  "rollup research",
				"status": map[string]string{"label": "Open", "value": "open"},
			}))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[addRecordResponse](t, rr)
		require.NotEmpty(t, resp.Record.Slug)
		slug = resp.Record.Slug
		assert.Equal(t, "rollup research", resp.Record.Values["title"])
	})

	t.Run("unknown field is all-or-nothing", func(t *testing.T) {
		req := authed(t, "alice", testutil.NewJSONRequest(t, http.MethodPost,
			"/collections/"+col.ID+"/records", map[string]any{
				"title": "ok", "ghost": "boo",
			}))
		testutil.AssertStatusAndError(t, testutil.DoRequest(router, req),
			http.StatusBadRequest, "validation")
	})

	t.Run("repair coerces and invents options", func(t *testing.T) {
		req := authed(t, "alice", testutil.NewJSONRequest(t, http.MethodPost,
			"/collections/"+col.ID+"/records?repair=true", map[string]any{
				"title":  "repaired entry",
				"status": "in review",
			}))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[addRecordResponse](t, rr)
		status, ok := resp.Record.Values["status"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "in review", status["value"])
	})

	t.Run("update merges and records activities", func(t *testing.T) {
		req := authed(t, "bob", testutil.NewJSONRequest(t, http.MethodPatch,
			"/collections/"+col.ID+"/records/"+slug, map[string]any{
				"status": map[string]string{"label": "Closed", "value": "closed"},
			}))
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		record := testutil.UnmarshalResponse[models.DataRecord](t, rr)
		assert.Equal(t, "rollup research", record.Values["title"], "untouched values survive")

		actReq := authed(t, "bob", testutil.NewRequest(t, http.MethodGet,
			"/collections/"+col.ID+"/records/"+slug+"/activities"))
		actRR := testutil.DoRequest(router, actReq)
		testutil.AssertStatus(t, actRR, http.StatusOK)
		activities := testutil.UnmarshalResponse[[]models.Activity](t, actRR)
		assert.NotEmpty(t, *activities)
	})

	t.Run("delete then fetch is not found", func(t *testing.T) {
		del := authed(t, "alice", testutil.NewRequest(t, http.MethodDelete,
			"/collections/"+col.ID+"/records/"+slug))
		testutil.AssertStatus(t, testutil.DoRequest(router, del), http.StatusNoContent)

		get := authed(t, "alice", testutil.NewRequest(t, http.MethodGet,
			"/collections/"+col.ID+"/records/"+slug))
		testutil.AssertStatusAndError(t, testutil.DoRequest(router, get),
			http.StatusNotFound, "not_found")
	})
}

func TestCollectionHandler_ListRequiresCircle(t *testing.T) {
	router := newTestRouter(t)

	req := authed(t, "alice", testutil.NewRequest(t, http.MethodGet, "/collections"))
	testutil.AssertStatusAndError(t, testutil.DoRequest(router, req),
		http.StatusBadRequest, "bad_request")

	createCollection(t, router, "one")
	list := authed(t, "alice", testutil.NewRequest(t, http.MethodGet, "/collections?circleId=circle-1"))
	rr := testutil.DoRequest(router, list)
	testutil.AssertStatus(t, rr, http.StatusOK)
	cols := testutil.UnmarshalResponse[[]*models.Collection](t, rr)
	assert.Len(t, *cols, 1)
}
