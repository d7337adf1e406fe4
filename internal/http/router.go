// Package httpapi assembles the HTTP surface: global middleware, the
// vertical handlers, session issuing, and operational endpoints.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"commune/internal/http/shared"
	"commune/internal/platform/metrics"
	"commune/internal/platform/middleware"
	dErrors "commune/pkg/domain-errors"
)

// Registrar is implemented by every vertical handler.
type Registrar interface {
	Register(r chi.Router)
}

// SessionIssuer mints session tokens for responders.
type SessionIssuer interface {
	IssueSessionToken(userID string) (string, error)
}

// Deps bundles what the router needs beyond the vertical handlers.
type Deps struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Sessions SessionIssuer
	Handlers []Registrar
}

// NewRouter wires global middleware and mounts every handler.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Latency(deps.Metrics))

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/auth/session", handleSession(deps.Sessions))

	for _, h := range deps.Handlers {
		h.Register(r)
	}
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type sessionRequest struct {
	UserID string `json:"userId"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

// handleSession issues a bearer token for a user id. Identity proofing
// sits in front of this service; the token only names the session.
func handleSession(sessions SessionIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
			return
		}
		token, err := sessions.IssueSessionToken(req.UserID)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		shared.WriteJSON(w, http.StatusCreated, sessionResponse{Token: token})
	}
}
