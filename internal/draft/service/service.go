// Package service implements the draft traversal engine: given a schema
// and a partially filled draft, compute the single next thing the
// responder must do, interleaving ordinary fields with gating steps.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"commune/internal/collection/condition"
	collection "commune/internal/collection/models"
	"commune/internal/collection/validation"
	"commune/internal/draft/device"
	"commune/internal/draft/metrics"
	"commune/internal/draft/models"
	"commune/internal/draft/ports"
	dErrors "commune/pkg/domain-errors"
)

// Service orchestrates draft traversal. The decision list itself is pure
// (compute.go); this layer loads state, consults gating collaborators, and
// owns the explicit persistence of progress flags.
type Service struct {
	collections ports.CollectionSource
	drafts      ports.DraftStore
	wallet      ports.WalletService
	sybil       ports.SybilService
	roles       ports.RoleGateService
	captcha     ports.CaptchaVerifier
	claims      ports.ClaimService
	lookup      ports.LookupRegistry
	records     ports.RecordSink

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Deps bundles the collaborator ports of the traversal engine.
type Deps struct {
	Collections ports.CollectionSource
	Drafts      ports.DraftStore
	Wallet      ports.WalletService
	Sybil       ports.SybilService
	Roles       ports.RoleGateService
	Captcha     ports.CaptchaVerifier
	Claims      ports.ClaimService
	Lookup      ports.LookupRegistry
	Records     ports.RecordSink
}

func New(deps Deps, opts ...Option) *Service {
	s := &Service{
		collections: deps.Collections,
		drafts:      deps.Drafts,
		wallet:      deps.Wallet,
		sybil:       deps.Sybil,
		roles:       deps.Roles,
		captcha:     deps.Captcha,
		claims:      deps.Claims,
		lookup:      deps.Lookup,
		records:     deps.Records,
		logger:      slog.Default(),
		now:         time.Now,
		tracer:      otel.Tracer("commune/draft"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens (or resumes) a draft session for a responder. Resuming is
// idempotent: an existing draft is returned untouched.
func (s *Service) Start(ctx context.Context, collectionID, responderID, userAgent string) (models.Draft, error) {
	if responderID == "" {
		return models.Draft{}, dErrors.New(dErrors.CodeBadRequest, "responder id is required")
	}
	if _, err := s.collections.GetByID(ctx, collectionID); err != nil {
		return models.Draft{}, err
	}
	existing, err := s.drafts.Get(ctx, collectionID, responderID)
	if err == nil {
		return existing, nil
	}
	if !dErrors.HasCode(err, dErrors.CodeNotFound) {
		return models.Draft{}, err
	}

	now := s.now()
	draft := models.Draft{
		ID:                uuid.New().String(),
		CollectionID:      collectionID,
		ResponderID:       responderID,
		Values:            map[string]any{},
		SkippedFormFields: map[string]bool{},
		Client:            device.ParseUserAgent(userAgent),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.drafts.Put(ctx, draft); err != nil {
		return models.Draft{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store draft")
	}
	if s.metrics != nil {
		s.metrics.DraftsStarted.Inc()
	}
	return draft, nil
}

// NextStep computes the responder's next action. Newly passed gates are
// persisted back to the draft before returning, so re-evaluation never
// re-runs an external check; when nothing changed, nothing is written.
func (s *Service) NextStep(ctx context.Context, collectionID, responderID string) (models.NextStep, error) {
	ctx, span := s.tracer.Start(ctx, "draft.NextStep")
	defer span.End()

	col, err := s.collections.GetByID(ctx, collectionID)
	if err != nil {
		return models.NextStep{}, err
	}
	draft, err := s.drafts.Get(ctx, collectionID, responderID)
	if err != nil {
		return models.NextStep{}, err
	}

	gate, err := s.gatherGateStatus(ctx, col, draft)
	if err != nil {
		// An external check failing means "cannot currently proceed",
		// never silent advancement to the next state.
		s.logger.WarnContext(ctx, "gating check failed",
			"collection_id", collectionID,
			"draft_id", draft.ID,
			"error", err,
		)
		return models.NextStep{}, err
	}

	if updated, changed := applyProgress(draft, gate); changed {
		if err := s.drafts.Put(ctx, updated); err != nil {
			return models.NextStep{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist draft progress")
		}
		draft = updated
	}

	step := ComputeNextStep(col, draft, gate)
	if step.Kind == models.StepField {
		if err := s.registerShortIDs(ctx, col, &step); err != nil {
			s.logger.WarnContext(ctx, "short id registration failed",
				"collection_id", collectionID,
				"property_id", step.PropertyID,
				"error", err,
			)
		}
	}
	if s.metrics != nil {
		s.metrics.StepsComputed.WithLabelValues(string(step.Kind)).Inc()
	}
	return step, nil
}

// gatherGateStatus consults external services only for gates that are
// configured and not already marked passed on the draft. Claim statuses
// fan out concurrently; the gating checks run in traversal order.
func (s *Service) gatherGateStatus(ctx context.Context, col *collection.Collection, draft models.Draft) (GateStatus, error) {
	gate := GateStatus{Claims: map[ports.ClaimKind]ports.ClaimStatus{}}

	needsWallet := col.Form.WalletConnectionRequired ||
		(sybilEnabled(col) && !draft.Flags.HasPassedSybilCheck)
	if needsWallet {
		linked, err := s.wallet.HasLinkedWallet(ctx, draft.ResponderID)
		if err != nil {
			return gate, dErrors.Wrap(err, dErrors.CodeExternal, "wallet lookup failed")
		}
		gate.WalletLinked = linked
	}

	if sybilEnabled(col) && !draft.Flags.HasPassedSybilCheck && gate.WalletLinked {
		address, err := s.wallet.Address(ctx, draft.ResponderID)
		if err != nil {
			return gate, dErrors.Wrap(err, dErrors.CodeExternal, "wallet address lookup failed")
		}
		passed, err := s.sybil.PassesSybilCheck(ctx, address, *col.Form.Sybil)
		if err != nil {
			return gate, dErrors.Wrap(err, dErrors.CodeExternal, "sybil check failed")
		}
		gate.SybilPassed = passed
	}

	if len(col.Form.RoleGate) > 0 && !draft.Flags.HasPassedRoleGating {
		passed, err := s.roles.HasGatingRole(ctx, draft.ResponderID, col.CircleID, col.Form.RoleGate)
		if err != nil {
			return gate, dErrors.Wrap(err, dErrors.CodeExternal, "role gating check failed")
		}
		gate.RolePassed = passed
	}

	var pending []ports.ClaimKind
	for _, c := range claimOrder {
		if claimEnabled(col, c.kind) && !claimDone(draft.Flags, c.kind) {
			pending = append(pending, c.kind)
		}
	}
	results := make([]ports.ClaimStatus, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range pending {
		g.Go(func() error {
			status, err := s.claims.Status(gctx, kind, col.ID, draft.ResponderID)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeExternal, "claim status lookup failed: "+string(kind))
			}
			results[i] = status
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return gate, err
	}
	for i, kind := range pending {
		gate.Claims[kind] = results[i]
	}
	return gate, nil
}

// applyProgress folds newly passed gates into the draft flags. Reported
// change drives the single conditional write of the read path.
func applyProgress(draft models.Draft, gate GateStatus) (models.Draft, bool) {
	updated := draft
	changed := false
	if gate.SybilPassed && !updated.Flags.HasPassedSybilCheck {
		updated.Flags.HasPassedSybilCheck = true
		changed = true
	}
	if gate.RolePassed && !updated.Flags.HasPassedRoleGating {
		updated.Flags.HasPassedRoleGating = true
		changed = true
	}
	if gate.Claims[ports.ClaimPoap].HasClaimed && !updated.Flags.ClaimedPoap {
		updated.Flags.ClaimedPoap = true
		changed = true
	}
	if gate.Claims[ports.ClaimKudos].HasClaimed && !updated.Flags.ClaimedKudos {
		updated.Flags.ClaimedKudos = true
		changed = true
	}
	if gate.Claims[ports.ClaimErc20].HasClaimed && !updated.Flags.ClaimedErc20 {
		updated.Flags.ClaimedErc20 = true
		changed = true
	}
	return updated, changed
}

// registerShortIDs lazily registers the returned field and its options in
// the per-collection lookup registry so the channel can address them.
func (s *Service) registerShortIDs(ctx context.Context, col *collection.Collection, step *models.NextStep) error {
	shortID, err := s.lookup.Register(ctx, col.ID, step.PropertyID)
	if err != nil {
		return err
	}
	step.FieldShortID = shortID

	p := col.Properties[step.PropertyID]
	if len(p.Options) == 0 {
		return nil
	}
	step.OptionShortIDs = make(map[string]string, len(p.Options))
	for _, o := range p.Options {
		optID, err := s.lookup.Register(ctx, col.ID, step.PropertyID+"/"+o.Value)
		if err != nil {
			return err
		}
		step.OptionShortIDs[o.Value] = optID
	}
	return nil
}

// SaveFieldValue records one field submission on the draft. Draft
// semantics apply: a reward may be partial here.
func (s *Service) SaveFieldValue(ctx context.Context, collectionID, responderID, propertyID string, value any) (models.Draft, error) {
	ctx, span := s.tracer.Start(ctx, "draft.SaveFieldValue")
	defer span.End()

	col, err := s.collections.GetByID(ctx, collectionID)
	if err != nil {
		return models.Draft{}, err
	}
	p, ok := col.Properties[propertyID]
	if !ok {
		return models.Draft{}, dErrors.New(dErrors.CodeNotFound, "property not found: "+propertyID)
	}
	if !p.IsPartOfFormView {
		return models.Draft{}, dErrors.New(dErrors.CodeValidation, "property is not part of the form view: "+propertyID)
	}
	if err := validation.ValidateDraftValue(col, propertyID, value); err != nil {
		return models.Draft{}, err
	}

	draft, err := s.drafts.Get(ctx, collectionID, responderID)
	if err != nil {
		return models.Draft{}, err
	}
	updated := draft.Clone()
	if p.Immutable && !collection.IsEmptyValue(updated.Values[propertyID]) {
		return models.Draft{}, dErrors.New(dErrors.CodeConflict, "property is immutable: "+propertyID)
	}
	updated.Values[propertyID] = value
	// Saving a value un-skips the field.
	delete(updated.SkippedFormFields, propertyID)
	updated.UpdatedAt = s.now()
	if err := s.drafts.Put(ctx, updated); err != nil {
		return models.Draft{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store draft")
	}
	if s.metrics != nil {
		s.metrics.FieldsSaved.Inc()
	}
	return updated, nil
}

// SkipField marks an optional field as skipped for this session. The
// payment control key skips the paywall step the same way. Skipping
// discards anything already entered for the field, so a skipped field
// never reaches record validation half-filled.
func (s *Service) SkipField(ctx context.Context, collectionID, responderID, propertyID string) (models.Draft, error) {
	col, err := s.collections.GetByID(ctx, collectionID)
	if err != nil {
		return models.Draft{}, err
	}
	draft, err := s.drafts.Get(ctx, collectionID, responderID)
	if err != nil {
		return models.Draft{}, err
	}
	if propertyID == collection.ControlKeyPayment {
		if !col.Form.Paywall {
			return models.Draft{}, dErrors.New(dErrors.CodeNotFound, "no paywall configured to skip")
		}
		if draft.Flags.PaymentDone {
			return draft, nil
		}
	} else {
		p, ok := col.Properties[propertyID]
		if !ok {
			return models.Draft{}, dErrors.New(dErrors.CodeNotFound, "property not found: "+propertyID)
		}
		if p.Required && condition.Satisfied(col, draft.Values, p.ViewConditions) {
			return models.Draft{}, dErrors.New(dErrors.CodeValidation, "required field cannot be skipped: "+propertyID)
		}
	}
	updated := draft.Clone()
	updated.SkippedFormFields[propertyID] = true
	delete(updated.Values, propertyID)
	updated.UpdatedAt = s.now()
	if err := s.drafts.Put(ctx, updated); err != nil {
		return models.Draft{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store draft")
	}
	return updated, nil
}

// SubmitCaptcha verifies a captcha token and marks the gate passed.
func (s *Service) SubmitCaptcha(ctx context.Context, collectionID, responderID, token string) (models.Draft, error) {
	draft, err := s.drafts.Get(ctx, collectionID, responderID)
	if err != nil {
		return models.Draft{}, err
	}
	if draft.Flags.Captcha {
		return draft, nil
	}
	passed, err := s.captcha.Verify(ctx, token)
	if err != nil {
		return models.Draft{}, dErrors.Wrap(err, dErrors.CodeExternal, "captcha verification failed")
	}
	if !passed {
		return models.Draft{}, dErrors.New(dErrors.CodeValidation, "captcha verification rejected")
	}
	updated := draft.Clone()
	updated.Flags.Captcha = true
	updated.UpdatedAt = s.now()
	if err := s.drafts.Put(ctx, updated); err != nil {
		return models.Draft{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store draft")
	}
	return updated, nil
}

// RecordPayment stores the payment proof on the draft and marks the
// paywall gate passed. Settlement verification is the provider's concern.
func (s *Service) RecordPayment(ctx context.Context, collectionID, responderID string, payment collection.PayWallValue) (models.Draft, error) {
	draft, err := s.drafts.Get(ctx, collectionID, responderID)
	if err != nil {
		return models.Draft{}, err
	}
	updated := draft.Clone()
	updated.Values[collection.ControlKeyPayment] = payment
	updated.Flags.PaymentDone = true
	delete(updated.SkippedFormFields, collection.ControlKeyPayment)
	updated.UpdatedAt = s.now()
	if err := s.drafts.Put(ctx, updated); err != nil {
		return models.Draft{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store draft")
	}
	return updated, nil
}

// Commit converts a finished draft into a committed record and deletes
// the draft. Commit is legal once every field and the paywall are
// satisfied; pending credential claims do not block it.
func (s *Service) Commit(ctx context.Context, collectionID, responderID string) (collection.DataRecord, error) {
	ctx, span := s.tracer.Start(ctx, "draft.Commit")
	defer span.End()

	col, err := s.collections.GetByID(ctx, collectionID)
	if err != nil {
		return collection.DataRecord{}, err
	}
	draft, err := s.drafts.Get(ctx, collectionID, responderID)
	if err != nil {
		return collection.DataRecord{}, err
	}
	gate, err := s.gatherGateStatus(ctx, col, draft)
	if err != nil {
		return collection.DataRecord{}, err
	}
	step := ComputeNextStep(col, draft, gate)
	switch step.Kind {
	case models.StepReadonlyAtEnd, models.StepPoap, models.StepKudos, models.StepErc20:
	default:
		return collection.DataRecord{}, dErrors.New(dErrors.CodeValidation, "draft is not complete: next step is "+string(step.Kind))
	}

	record, err := s.records.AddRecord(ctx, collectionID, draft.ResponderID, draft.Values)
	if err != nil {
		return collection.DataRecord{}, err
	}
	if err := s.drafts.Delete(ctx, collectionID, responderID); err != nil {
		s.logger.WarnContext(ctx, "failed to delete committed draft",
			"collection_id", collectionID,
			"draft_id", draft.ID,
			"error", err,
		)
	}
	if s.metrics != nil {
		s.metrics.DraftsCommitted.Inc()
	}
	return record, nil
}
