// Package handler exposes the draft session endpoints the chat channel
// drives: start a session, fetch the next step, submit one field at a
// time, and commit.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	collectionModel "commune/internal/collection/models"
	draftModel "commune/internal/draft/models"
	"commune/internal/http/shared"
	"commune/internal/platform/middleware"
	dErrors "commune/pkg/domain-errors"
)

// Service defines the draft traversal operations the handler needs.
type Service interface {
	Start(ctx context.Context, collectionID, responderID, userAgent string) (draftModel.Draft, error)
	NextStep(ctx context.Context, collectionID, responderID string) (draftModel.NextStep, error)
	SaveFieldValue(ctx context.Context, collectionID, responderID, propertyID string, value any) (draftModel.Draft, error)
	SkipField(ctx context.Context, collectionID, responderID, propertyID string) (draftModel.Draft, error)
	SubmitCaptcha(ctx context.Context, collectionID, responderID, token string) (draftModel.Draft, error)
	RecordPayment(ctx context.Context, collectionID, responderID string, payment collectionModel.PayWallValue) (draftModel.Draft, error)
	Commit(ctx context.Context, collectionID, responderID string) (collectionModel.DataRecord, error)
}

// WalletLinker links a responder's wallet for the connectWallet step.
type WalletLinker interface {
	Link(ctx context.Context, responderID, address string) error
}

// Handler handles draft session endpoints.
type Handler struct {
	logger       *slog.Logger
	drafts       Service
	wallets      WalletLinker
	jwtValidator middleware.JWTValidator
}

func New(drafts Service, wallets WalletLinker, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		drafts:       drafts,
		wallets:      wallets,
		jwtValidator: jwtValidator,
	}
}

// Register registers the draft routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/drafts/{collectionID}", func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/", h.handleStart)
		r.Get("/next-step", h.handleNextStep)
		r.Post("/fields/{propertyID}", h.handleSaveField)
		r.Post("/fields/{propertyID}/skip", h.handleSkipField)
		r.Post("/captcha", h.handleCaptcha)
		r.Post("/payment", h.handlePayment)
		r.Post("/wallet", h.handleLinkWallet)
		r.Post("/commit", h.handleCommit)
	})
}

// draftView is the draft response shape; the next step rides along so
// the channel can render the follow-up prompt without a second call.
type draftView struct {
	Draft    draftModel.Draft     `json:"draft"`
	NextStep *draftModel.NextStep `json:"nextStep,omitempty"`
}

func (h *Handler) respondWithNextStep(w http.ResponseWriter, r *http.Request, status int, draft draftModel.Draft) {
	ctx := r.Context()
	step, err := h.drafts.NextStep(ctx, draft.CollectionID, draft.ResponderID)
	if err != nil {
		// The mutation itself succeeded; return the draft without a step
		// rather than failing the whole request.
		h.logger.WarnContext(ctx, "failed to compute next step",
			"request_id", middleware.GetRequestID(ctx),
			"collection_id", draft.CollectionID,
			"error", err,
		)
		shared.WriteJSON(w, status, draftView{Draft: draft})
		return
	}
	shared.WriteJSON(w, status, draftView{Draft: draft, NextStep: &step})
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	draft, err := h.drafts.Start(ctx,
		chi.URLParam(r, "collectionID"), middleware.GetUserID(ctx), r.UserAgent())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	h.respondWithNextStep(w, r, http.StatusCreated, draft)
}

func (h *Handler) handleNextStep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	step, err := h.drafts.NextStep(ctx,
		chi.URLParam(r, "collectionID"), middleware.GetUserID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, step)
}

type saveFieldRequest struct {
	Value any `json:"value"`
}

func (h *Handler) handleSaveField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req saveFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	draft, err := h.drafts.SaveFieldValue(ctx,
		chi.URLParam(r, "collectionID"), middleware.GetUserID(ctx),
		chi.URLParam(r, "propertyID"), req.Value)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to save field value",
			"request_id", middleware.GetRequestID(ctx),
			"property_id", chi.URLParam(r, "propertyID"),
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}
	h.respondWithNextStep(w, r, http.StatusOK, draft)
}

func (h *Handler) handleSkipField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	draft, err := h.drafts.SkipField(ctx,
		chi.URLParam(r, "collectionID"), middleware.GetUserID(ctx),
		chi.URLParam(r, "propertyID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	h.respondWithNextStep(w, r, http.StatusOK, draft)
}

type captchaRequest struct {
	Token string `json:"token"`
}

func (h *Handler) handleCaptcha(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req captchaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	draft, err := h.drafts.SubmitCaptcha(ctx,
		chi.URLParam(r, "collectionID"), middleware.GetUserID(ctx), req.Token)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	h.respondWithNextStep(w, r, http.StatusOK, draft)
}

func (h *Handler) handlePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payment collectionModel.PayWallValue
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	draft, err := h.drafts.RecordPayment(ctx,
		chi.URLParam(r, "collectionID"), middleware.GetUserID(ctx), payment)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	h.respondWithNextStep(w, r, http.StatusOK, draft)
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
	if err := h.wallets.Link(ctx, middleware.GetUserID(ctx), req.Address); err != nil {
		shared.WriteError(w, err)
		return
	}
	step, err := h.drafts.NextStep(ctx,
		chi.URLParam(r, "collectionID"), middleware.GetUserID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, step)
}

func (h *Handler) handleCommit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	record, err := h.drafts.Commit(ctx,
		chi.URLParam(r, "collectionID"), middleware.GetUserID(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "failed to commit draft",
			"request_id", middleware.GetRequestID(ctx),
			"collection_id", chi.URLParam(r, "collectionID"),
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, record)
}
