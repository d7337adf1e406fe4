// Package service implements the collection use cases: schema edits with
// cascades over stored records, and validated record mutations with
// activity logging.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"commune/internal/collection/activity"
	"commune/internal/collection/metrics"
	"commune/internal/collection/models"
	"commune/internal/collection/store"
	"commune/internal/collection/validation"
	"commune/internal/platform/events"
	dErrors "commune/pkg/domain-errors"
)

// Service owns collection schemas and their records. It satisfies the
// draft engine's CollectionSource and RecordSink ports.
type Service struct {
	store     store.Store
	publisher events.Publisher

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

func New(st store.Store, publisher events.Publisher, opts ...Option) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	s := &Service{
		store:     st,
		publisher: publisher,
		logger:    slog.Default(),
		now:       time.Now,
		tracer:    otel.Tracer("commune/collection"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCollection registers a new, empty schema in a circle.
func (s *Service) CreateCollection(ctx context.Context, circleID, name, description string) (*models.Collection, error) {
	if circleID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "circle id is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "collection name is required")
	}
	now := s.now()
	col := &models.Collection{
		ID:            uuid.New().String(),
		Slug:          uuid.New().String(),
		CircleID:      circleID,
		Name:          name,
		Description:   description,
		Properties:    map[string]models.Property{},
		PropertyOrder: []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.SaveCollection(ctx, col); err != nil {
		return nil, err
	}
	return col, nil
}

// GetByID loads a collection. The method name matches the draft engine's
// CollectionSource port.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Collection, error) {
	return s.store.GetCollection(ctx, id)
}

func (s *Service) ListCollections(ctx context.Context, circleID string) ([]*models.Collection, error) {
	return s.store.ListCollections(ctx, circleID)
}

// UpdateForm replaces the collection's form configuration.
func (s *Service) UpdateForm(ctx context.Context, collectionID string, form models.FormMetadata) (*models.Collection, error) {
	col, err := s.store.GetCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	col.Form = form
	col.UpdatedAt = s.now()
	if err := s.store.SaveCollection(ctx, col); err != nil {
		return nil, err
	}
	return col, nil
}

// AddProperty inserts a property into the schema at the given index
// (append when index is out of range).
func (s *Service) AddProperty(ctx context.Context, collectionID string, p models.Property, index int) (*models.Collection, error) {
	col, err := s.store.GetCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if err := col.AddProperty(p, index); err != nil {
		return nil, err
	}
	col.UpdatedAt = s.now()
	if err := s.store.SaveCollection(ctx, col); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.SchemaMutations.WithLabelValues("add_property").Inc()
	}
	return col, nil
}

// RemoveProperty drops a property and cascades the removal over every
// stored record so no orphaned values survive.
func (s *Service) RemoveProperty(ctx context.Context, collectionID, propertyID string) (*models.Collection, error) {
	ctx, span := s.tracer.Start(ctx, "collection.RemoveProperty")
	defer span.End()

	col, err := s.store.GetCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if _, err := col.RemoveProperty(propertyID); err != nil {
		return nil, err
	}
	col.UpdatedAt = s.now()
	if err := s.store.SaveCollection(ctx, col); err != nil {
		return nil, err
	}

	records, err := s.store.ListRecords(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if _, ok := rec.Values[propertyID]; !ok {
			continue
		}
		delete(rec.Values, propertyID)
		if err := s.store.SaveRecord(ctx, collectionID, rec); err != nil {
			return nil, err
		}
	}
	if s.metrics != nil {
		s.metrics.SchemaMutations.WithLabelValues("remove_property").Inc()
	}
	return col, nil
}

// UpdateProperty replaces a property definition. When the type changes,
// stored values are coerced where a lossless conversion exists and
// dropped otherwise.
func (s *Service) UpdateProperty(ctx context.Context, collectionID string, p models.Property) (*models.Collection, error) {
	ctx, span := s.tracer.Start(ctx, "collection.UpdateProperty")
	defer span.End()

	col, err := s.store.GetCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	prev, err := col.UpdateProperty(p)
	if err != nil {
		return nil, err
	}
	col.UpdatedAt = s.now()
	if err := s.store.SaveCollection(ctx, col); err != nil {
		return nil, err
	}

	if prev.Type != p.Type {
		if err := s.coerceRecords(ctx, collectionID, prev.Type, p); err != nil {
			return nil, err
		}
	}
	if s.metrics != nil {
		s.metrics.SchemaMutations.WithLabelValues("update_property").Inc()
	}
	return col, nil
}

func (s *Service) coerceRecords(ctx context.Context, collectionID string, fromType models.PropertyType, p models.Property) error {
	records, err := s.store.ListRecords(ctx, collectionID)
	if err != nil {
		return err
	}
	for _, rec := range records {
		v, ok := rec.Values[p.ID]
		if !ok {
			continue
		}
		coerced, kept := models.CoerceValue(fromType, p.Type, v)
		if kept {
			rec.Values[p.ID] = coerced
		} else {
			delete(rec.Values, p.ID)
		}
		if err := s.store.SaveRecord(ctx, collectionID, rec); err != nil {
			return err
		}
	}
	return nil
}

// AddRecord validates and stores a new record. All-or-nothing: any
// validation failure leaves the store untouched.
func (s *Service) AddRecord(ctx context.Context, collectionID, actorID string, values map[string]any) (models.DataRecord, error) {
	ctx, span := s.tracer.Start(ctx, "collection.AddRecord")
	defer span.End()

	col, err := s.store.GetCollection(ctx, collectionID)
	if err != nil {
		return models.DataRecord{}, err
	}
	if err := validation.Validate(values, col); err != nil {
		s.rejected()
		return models.DataRecord{}, err
	}
	if err := validation.ValidateRequired(values, col, validation.OperationAdd, nil); err != nil {
		s.rejected()
		return models.DataRecord{}, err
	}

	record := models.DataRecord{Slug: uuid.New().String(), Values: values}
	return s.persistMutation(ctx, col, record, nil, actorID, false)
}

// AddRecordWithRepair is the best-effort ingest path: structurally
// fixable values are coerced (inventing select options as needed), the
// rest are dropped and reported. Invented options become part of the
// schema.
func (s *Service) AddRecordWithRepair(ctx context.Context, collectionID, actorID string, values map[string]any) (models.DataRecord, []validation.InvalidField, error) {
	ctx, span := s.tracer.Start(ctx, "collection.AddRecordWithRepair")
	defer span.End()

	col, err := s.store.GetCollection(ctx, collectionID)
	if err != nil {
		return models.DataRecord{}, nil, err
	}
	fixed, invented, dropped := validation.Repair(values, col)

	if len(invented) > 0 {
		for id, opts := range invented {
			p := col.Properties[id]
			p.Options = append(p.Options, opts...)
			col.Properties[id] = p
		}
		col.UpdatedAt = s.now()
		if err := s.store.SaveCollection(ctx, col); err != nil {
			return models.DataRecord{}, nil, err
		}
	}
	if err := validation.ValidateRequired(fixed, col, validation.OperationAdd, nil); err != nil {
		s.rejected()
		return models.DataRecord{}, dropped, err
	}

	record := models.DataRecord{Slug: uuid.New().String(), Values: fixed}
	record, err = s.persistMutation(ctx, col, record, nil, actorID, true)
	return record, dropped, err
}

// UpdateRecord applies a partial value set to an existing record.
// Omitted keys keep their stored values; immutable properties are
// write-once.
func (s *Service) UpdateRecord(ctx context.Context, collectionID, slug, actorID string, values map[string]any) (models.DataRecord, error) {
	ctx, span := s.tracer.Start(ctx, "collection.UpdateRecord")
	defer span.End()

	col, err := s.store.GetCollection(ctx, collectionID)
	if err != nil {
		return models.DataRecord{}, err
	}
	existing, err := s.store.GetRecord(ctx, collectionID, slug)
	if err != nil {
		return models.DataRecord{}, err
	}
	if err := validation.Validate(values, col); err != nil {
		s.rejected()
		return models.DataRecord{}, err
	}
	if err := validation.ValidateRequired(values, col, validation.OperationUpdate, existing.Values); err != nil {
		s.rejected()
		return models.DataRecord{}, err
	}
	for id, v := range values {
		p, ok := col.Properties[id]
		if !ok {
			continue
		}
		if p.Immutable && !models.IsEmptyValue(existing.Values[id]) && !models.IsEmptyValue(v) {
			return models.DataRecord{}, dErrors.New(dErrors.CodeConflict, "property is immutable: "+id)
		}
	}

	previous := existing.Values
	merged := make(map[string]any, len(previous)+len(values))
	for k, v := range previous {
		merged[k] = v
	}
	for k, v := range values {
		merged[k] = v
	}
	updated := models.DataRecord{Slug: slug, Values: merged}
	rec, err := s.persistUpdate(ctx, col, updated, values, previous, actorID)
	if err != nil {
		return models.DataRecord{}, err
	}
	if s.metrics != nil {
		s.metrics.RecordsUpdated.Inc()
	}
	return rec, nil
}

func (s *Service) persistMutation(ctx context.Context, col *models.Collection, record models.DataRecord, previous map[string]any, actorID string, repaired bool) (models.DataRecord, error) {
	rec, err := s.persistUpdate(ctx, col, record, record.Values, previous, actorID)
	if err != nil {
		return models.DataRecord{}, err
	}
	if s.metrics != nil {
		if repaired {
			s.metrics.RecordsRepaired.Inc()
		} else {
			s.metrics.RecordsAdded.Inc()
		}
	}
	return rec, nil
}

func (s *Service) persistUpdate(ctx context.Context, col *models.Collection, record models.DataRecord, payload, previous map[string]any, actorID string) (models.DataRecord, error) {
	if err := s.store.SaveRecord(ctx, col.ID, record); err != nil {
		return models.DataRecord{}, err
	}

	now := s.now()
	activities, _ := activity.Build(payload, col, previous, actorID, now)
	if len(activities) > 0 {
		if err := s.store.AppendActivities(ctx, col.ID, record.Slug, activities); err != nil {
			// The record write already succeeded; losing activity history
			// is preferable to a half-rolled-back mutation.
			s.logger.WarnContext(ctx, "failed to append activities",
				"collection_id", col.ID,
				"record_slug", record.Slug,
				"error", err,
			)
		} else if s.metrics != nil {
			s.metrics.ActivitiesBuilt.Add(float64(len(activities)))
		}
		s.publisher.Emit(ctx, events.ActivityEvent{
			CircleID:     col.CircleID,
			CollectionID: col.ID,
			RecordSlug:   record.Slug,
			ActorID:      actorID,
			Activities:   activities,
			Timestamp:    now,
		})
	}
	return record, nil
}

func (s *Service) GetRecord(ctx context.Context, collectionID, slug string) (models.DataRecord, error) {
	return s.store.GetRecord(ctx, collectionID, slug)
}

func (s *Service) ListRecords(ctx context.Context, collectionID string) ([]models.DataRecord, error) {
	return s.store.ListRecords(ctx, collectionID)
}

func (s *Service) DeleteRecord(ctx context.Context, collectionID, slug string) error {
	return s.store.DeleteRecord(ctx, collectionID, slug)
}

func (s *Service) ListActivities(ctx context.Context, collectionID, slug string) ([]models.Activity, error) {
	return s.store.ListActivities(ctx, collectionID, slug)
}

func (s *Service) rejected() {
	if s.metrics != nil {
		s.metrics.ValidationRejects.Inc()
	}
}
