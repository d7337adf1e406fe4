// Package handler exposes the circle endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	circleModel "commune/internal/circle/models"
	"commune/internal/http/shared"
	"commune/internal/platform/middleware"
	dErrors "commune/pkg/domain-errors"
)

// Service defines the circle operations the handler needs.
type Service interface {
	Create(ctx context.Context, name, description, creatorID string) (*circleModel.Circle, error)
	Get(ctx context.Context, id string) (*circleModel.Circle, error)
	Join(ctx context.Context, circleID, userID string) (*circleModel.Circle, error)
	AssignRole(ctx context.Context, circleID, userID string, role circleModel.Role) (*circleModel.Circle, error)
	LinkWallet(ctx context.Context, circleID, userID, address string) (*circleModel.Circle, error)
}

// Handler handles circle endpoints.
type Handler struct {
	logger       *slog.Logger
	circles      Service
	jwtValidator middleware.JWTValidator
}

func New(circles Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		circles:      circles,
		jwtValidator: jwtValidator,
	}
}

// Register registers the circle routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/circles", func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/", h.handleCreate)
		r.Get("/{circleID}", h.handleGet)
		r.Post("/{circleID}/join", h.handleJoin)
		r.Post("/{circleID}/roles", h.handleAssignRole)
		r.Post("/{circleID}/wallet", h.handleLinkWallet)
	})
}

type createCircleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req createCircleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	circle, err := h.circles.Create(ctx, req.Name, req.Description, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to create circle",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, circle)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	circle, err := h.circles.Get(r.Context(), chi.URLParam(r, "circleID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, circle)
}

func (h *Handler) handleJoin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	circle, err := h.circles.Join(ctx, chi.URLParam(r, "circleID"), middleware.GetUserID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, circle)
}

type assignRoleRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

func (h *Handler) handleAssignRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req assignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	circle, err := h.circles.AssignRole(ctx, chi.URLParam(r, "circleID"), req.UserID, circleModel.Role(req.Role))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, circle)
}

type linkWalletRequest struct {
	Address string `json:"address"`
}

func (h *Handler) handleLinkWallet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req linkWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	circle, err := h.circles.LinkWallet(ctx, chi.URLParam(r, "circleID"), middleware.GetUserID(ctx), req.Address)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, circle)
}
