// Package handler exposes the collection schema and record endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	collectionModel "commune/internal/collection/models"
	"commune/internal/collection/validation"
	"commune/internal/http/shared"
	"commune/internal/platform/middleware"
	dErrors "commune/pkg/domain-errors"
)

// Service defines the collection operations the handler needs.
type Service interface {
	CreateCollection(ctx context.Context, circleID, name, description string) (*collectionModel.Collection, error)
	GetByID(ctx context.Context, id string) (*collectionModel.Collection, error)
	ListCollections(ctx context.Context, circleID string) ([]*collectionModel.Collection, error)
	UpdateForm(ctx context.Context, collectionID string, form collectionModel.FormMetadata) (*collectionModel.Collection, error)
	AddProperty(ctx context.Context, collectionID string, p collectionModel.Property, index int) (*collectionModel.Collection, error)
	RemoveProperty(ctx context.Context, collectionID, propertyID string) (*collectionModel.Collection, error)
	UpdateProperty(ctx context.Context, collectionID string, p collectionModel.Property) (*collectionModel.Collection, error)
	AddRecord(ctx context.Context, collectionID, actorID string, values map[string]any) (collectionModel.DataRecord, error)
	AddRecordWithRepair(ctx context.Context, collectionID, actorID string, values map[string]any) (collectionModel.DataRecord, []validation.InvalidField, error)
	UpdateRecord(ctx context.Context, collectionID, slug, actorID string, values map[string]any) (collectionModel.DataRecord, error)
	GetRecord(ctx context.Context, collectionID, slug string) (collectionModel.DataRecord, error)
	ListRecords(ctx context.Context, collectionID string) ([]collectionModel.DataRecord, error)
	DeleteRecord(ctx context.Context, collectionID, slug string) error
	ListActivities(ctx context.Context, collectionID, slug string) ([]collectionModel.Activity, error)
}

// Handler handles collection endpoints.
type Handler struct {
	logger       *slog.Logger
	collections  Service
	jwtValidator middleware.JWTValidator
}

func New(collections Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		collections:  collections,
		jwtValidator: jwtValidator,
	}
}

// Register registers the collection routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/collections", func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{collectionID}", h.handleGet)
		r.Put("/{collectionID}/form", h.handleUpdateForm)

		r.Post("/{collectionID}/properties", h.handleAddProperty)
		r.Put("/{collectionID}/properties/{propertyID}", h.handleUpdateProperty)
		r.Delete("/{collectionID}/properties/{propertyID}", h.handleRemoveProperty)

		r.Post("/{collectionID}/records", h.handleAddRecord)
		r.Get("/{collectionID}/records", h.handleListRecords)
		r.Get("/{collectionID}/records/{slug}", h.handleGetRecord)
		r.Patch("/{collectionID}/records/{slug}", h.handleUpdateRecord)
		r.Delete("/{collectionID}/records/{slug}", h.handleDeleteRecord)
		r.Get("/{collectionID}/records/{slug}/activities", h.handleListActivities)
	})
}

type createCollectionRequest struct {
	CircleID    string `json:"circleId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req createCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	col, err := h.collections.CreateCollection(ctx, req.CircleID, req.Name, req.Description)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, col)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	col, err := h.collections.GetByID(r.Context(), chi.URLParam(r, "collectionID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, col)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	circleID := r.URL.Query().Get("circleId")
	if circleID == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "circleId query parameter is required"))
		return
	}
	cols, err := h.collections.ListCollections(r.Context(), circleID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, cols)
}

func (h *Handler) handleUpdateForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var form collectionModel.FormMetadata
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	col, err := h.collections.UpdateForm(ctx, chi.URLParam(r, "collectionID"), form)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, col)
}

type addPropertyRequest struct {
	Property collectionModel.Property `json:"property"`
	Index    *int                     `json:"index"`
}

func (h *Handler) handleAddProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req addPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	index := -1
	if req.Index != nil {
		index = *req.Index
	}
	col, err := h.collections.AddProperty(ctx, chi.URLParam(r, "collectionID"), req.Property, index)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to add property",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, col)
}

func (h *Handler) handleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var p collectionModel.Property
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	p.ID = chi.URLParam(r, "propertyID")
	col, err := h.collections.UpdateProperty(ctx, chi.URLParam(r, "collectionID"), p)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, col)
}

func (h *Handler) handleRemoveProperty(w http.ResponseWriter, r *http.Request) {
	col, err := h.collections.RemoveProperty(r.Context(),
		chi.URLParam(r, "collectionID"), chi.URLParam(r, "propertyID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, col)
}

type addRecordResponse struct {
	Record  collectionModel.DataRecord `json:"record"`
	Dropped []validation.InvalidField  `json:"dropped,omitempty"`
}

func (h *Handler) handleAddRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actorID := middleware.GetUserID(ctx)

	var values map[string]any
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	collectionID := chi.URLParam(r, "collectionID")
	if r.URL.Query().Get("repair") == "true" {
		record, dropped, err := h.collections.AddRecordWithRepair(ctx, collectionID, actorID, values)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		shared.WriteJSON(w, http.StatusCreated, addRecordResponse{Record: record, Dropped: dropped})
		return
	}

	record, err := h.collections.AddRecord(ctx, collectionID, actorID, values)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to add record",
			"request_id", middleware.GetRequestID(ctx),
			"collection_id", collectionID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, addRecordResponse{Record: record})
}

func (h *Handler) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var values map[string]any
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	record, err := h.collections.UpdateRecord(ctx,
		chi.URLParam(r, "collectionID"), chi.URLParam(r, "slug"),
		middleware.GetUserID(ctx), values)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.collections.GetRecord(r.Context(),
		chi.URLParam(r, "collectionID"), chi.URLParam(r, "slug"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.collections.ListRecords(r.Context(), chi.URLParam(r, "collectionID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	err := h.collections.DeleteRecord(r.Context(),
		chi.URLParam(r, "collectionID"), chi.URLParam(r, "slug"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.collections.ListActivities(r.Context(),
		chi.URLParam(r, "collectionID"), chi.URLParam(r, "slug"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, activities)
}
