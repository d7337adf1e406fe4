package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"commune/internal/collection/models"
	"commune/internal/collection/store"
	"commune/internal/platform/events"
	dErrors "commune/pkg/domain-errors"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []events.ActivityEvent
}

func (p *capturePublisher) Emit(_ context.Context, e events.ActivityEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *capturePublisher) all() []events.ActivityEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.ActivityEvent(nil), p.events...)
}

type CollectionServiceSuite struct {
	suite.Suite

	svc       *Service
	st        *store.InMemoryStore
	publisher *capturePublisher
	ctx       context.Context
}

func TestCollectionServiceSuite(t *testing.T) {
	suite.Run(t, new(CollectionServiceSuite))
}

func (s *CollectionServiceSuite) SetupTest() {
	s.st = store.NewInMemoryStore()
	s.publisher = &capturePublisher{}
	s.ctx = context.Background()
	s.svc = New(s.st, s.publisher,
		WithClock(func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }))
}

func (s *CollectionServiceSuite) seedCollection() *models.Collection {
	col, err := s.svc.CreateCollection(s.ctx, "circle-1", "Grants", "grant applications")
	s.Require().NoError(err)
	s.Require().NoError(s.svc.addProps(s.ctx, col.ID,
		models.Property{ID: "title", Name: "Title", Type: models.TypeShortText, IsPartOfFormView: true, Required: true},
		models.Property{ID: "amount", Name: "Amount", Type: models.TypeNumber, IsPartOfFormView: true},
		models.Property{ID: "status", Name: "Status", Type: models.TypeSingleSelect, IsPartOfFormView: true,
			Options: []models.Option{{Label: "Open", Value: "open"}, {Label: "Closed", Value: "closed"}}},
	))
	col, err = s.svc.GetByID(s.ctx, col.ID)
	s.Require().NoError(err)
	return col
}

func (s *Service) addProps(ctx context.Context, collectionID string, props ...models.Property) error {
	for _, p := range props {
		if _, err := s.AddProperty(ctx, collectionID, p, -1); err != nil {
			return err
		}
	}
	return nil
}

// ===========================================================================
// Schema edits
// ===========================================================================

func (s *CollectionServiceSuite) TestCreateCollection() {
	col, err := s.svc.CreateCollection(s.ctx, "circle-1", "Proposals", "")
	s.Require().NoError(err)
	s.NotEmpty(col.ID)
	s.True(col.OrderConsistent())

	s.Run("rejects a blank name", func() {
		_, err := s.svc.CreateCollection(s.ctx, "circle-1", "   ", "")
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *CollectionServiceSuite) TestAddProperty() {
	col := s.seedCollection()

	updated, err := s.svc.AddProperty(s.ctx, col.ID,
		models.Property{ID: "deadline", Name: "Deadline", Type: models.TypeDate}, 1)
	s.Require().NoError(err)
	s.True(updated.OrderConsistent())
	s.Equal("deadline", updated.PropertyOrder[1])

	s.Run("rejects a duplicate id", func() {
		_, err := s.svc.AddProperty(s.ctx, col.ID,
			models.Property{ID: "title", Name: "Title Again", Type: models.TypeShortText}, -1)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *CollectionServiceSuite) TestRemovePropertyCascades() {
	col := s.seedCollection()
	rec, err := s.svc.AddRecord(s.ctx, col.ID, "user-1", map[string]any{
		"title":  "Build a bridge",
		"amount": 1000,
	})
	s.Require().NoError(err)

	updated, err := s.svc.RemoveProperty(s.ctx, col.ID, "amount")
	s.Require().NoError(err)
	s.True(updated.OrderConsistent())
	s.NotContains(updated.Properties, "amount")

	got, err := s.svc.GetRecord(s.ctx, col.ID, rec.Slug)
	s.Require().NoError(err)
	s.NotContains(got.Values, "amount")
	s.Contains(got.Values, "title")
}

func (s *CollectionServiceSuite) TestUpdatePropertyTypeChangeCoercesValues() {
	col := s.seedCollection()
	rec, err := s.svc.AddRecord(s.ctx, col.ID, "user-1", map[string]any{
		"title":  "Build a bridge",
		"amount": 1000,
	})
	s.Require().NoError(err)

	s.Run("number to text stringifies stored values", func() {
		_, err := s.svc.UpdateProperty(s.ctx, col.ID,
			models.Property{ID: "amount", Name: "Amount", Type: models.TypeShortText, IsPartOfFormView: true})
		s.Require().NoError(err)

		got, err := s.svc.GetRecord(s.ctx, col.ID, rec.Slug)
		s.Require().NoError(err)
		s.Equal("1000", got.Values["amount"])
	})

	s.Run("text to date drops unconvertible values", func() {
		_, err := s.svc.UpdateProperty(s.ctx, col.ID,
			models.Property{ID: "amount", Name: "Amount", Type: models.TypeDate, IsPartOfFormView: true})
		s.Require().NoError(err)

		got, err := s.svc.GetRecord(s.ctx, col.ID, rec.Slug)
		s.Require().NoError(err)
		s.NotContains(got.Values, "amount")
	})
}

// ===========================================================================
// Record mutations
// ===========================================================================

func (s *CollectionServiceSuite) TestAddRecord() {
	col := s.seedCollection()

	s.Run("stores a valid record with activities", func() {
		rec, err := s.svc.AddRecord(s.ctx, col.ID, "user-1", map[string]any{
			"title":  "Build a bridge",
			"status": map[string]any{"label": "Open", "value": "open"},
		})
		s.Require().NoError(err)
		s.NotEmpty(rec.Slug)

		acts, err := s.svc.ListActivities(s.ctx, col.ID, rec.Slug)
		s.Require().NoError(err)
		s.Len(acts, 2)

		published := s.publisher.all()
		s.Require().Len(published, 1)
		s.Equal(col.ID, published[0].CollectionID)
		s.Equal("circle-1", published[0].CircleID)
		s.Equal("user-1", published[0].ActorID)
	})

	s.Run("rejects an unknown field without writing", func() {
		_, err := s.svc.AddRecord(s.ctx, col.ID, "user-1", map[string]any{
			"title": "ok",
			"ghost": "boo",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		records, listErr := s.svc.ListRecords(s.ctx, col.ID)
		s.Require().NoError(listErr)
		s.Len(records, 1)
	})

	s.Run("rejects a missing required field", func() {
		_, err := s.svc.AddRecord(s.ctx, col.ID, "user-1", map[string]any{
			"amount": 5,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("control keys bypass the schema", func() {
		rec, err := s.svc.AddRecord(s.ctx, col.ID, "user-1", map[string]any{
			"title":                     "With payment",
			models.ControlKeyCardStatus: "active",
		})
		s.Require().NoError(err)
		got, err := s.svc.GetRecord(s.ctx, col.ID, rec.Slug)
		s.Require().NoError(err)
		s.Equal("active", got.Values[models.ControlKeyCardStatus])
	})
}

func (s *CollectionServiceSuite) TestUpdateRecord() {
	col := s.seedCollection()
	rec, err := s.svc.AddRecord(s.ctx, col.ID, "user-1", map[string]any{
		"title":  "Build a bridge",
		"amount": 1000,
	})
	s.Require().NoError(err)

	s.Run("omitted keys survive", func() {
		updated, err := s.svc.UpdateRecord(s.ctx, col.ID, rec.Slug, "user-2", map[string]any{
			"amount": 2000,
		})
		s.Require().NoError(err)
		s.Equal("Build a bridge", updated.Values["title"])
		s.Equal(2000, mustInt(updated.Values["amount"]))
	})

	s.Run("update produces diff activities", func() {
		acts, err := s.svc.ListActivities(s.ctx, col.ID, rec.Slug)
		s.Require().NoError(err)
		s.NotEmpty(acts)
	})

	s.Run("unknown record is not found", func() {
		_, err := s.svc.UpdateRecord(s.ctx, col.ID, "ghost", "user-1", map[string]any{"title": "x"})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("immutable property is write-once", func() {
		_, err := s.svc.AddProperty(s.ctx, col.ID,
			models.Property{ID: "wallet", Name: "Wallet", Type: models.TypeShortText, Immutable: true}, -1)
		s.Require().NoError(err)

		_, err = s.svc.UpdateRecord(s.ctx, col.ID, rec.Slug, "user-1", map[string]any{"wallet": "first"})
		s.Require().NoError(err)
		_, err = s.svc.UpdateRecord(s.ctx, col.ID, rec.Slug, "user-1", map[string]any{"wallet": "second"})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *CollectionServiceSuite) TestAddRecordWithRepair() {
	col := s.seedCollection()

	rec, dropped, err := s.svc.AddRecordWithRepair(s.ctx, col.ID, "user-1", map[string]any{
		"title":  "Imported row",
		"amount": "250",
		"status": "in review",
	})
	s.Require().NoError(err)
	s.Empty(dropped)

	got, err := s.svc.GetRecord(s.ctx, col.ID, rec.Slug)
	s.Require().NoError(err)
	s.Equal(float64(250), got.Values["amount"])

	// "in review" did not match an option, so one was invented and added
	// to the schema.
	updated, err := s.svc.GetByID(s.ctx, col.ID)
	s.Require().NoError(err)
	opt, ok := updated.Properties["status"].OptionByValue("in review")
	s.Require().True(ok)
	s.Equal("in review", opt.Label)
}

func (s *CollectionServiceSuite) TestDeleteRecord() {
	col := s.seedCollection()
	rec, err := s.svc.AddRecord(s.ctx, col.ID, "user-1", map[string]any{"title": "t"})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.DeleteRecord(s.ctx, col.ID, rec.Slug))
	_, err = s.svc.GetRecord(s.ctx, col.ID, rec.Slug)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func mustInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	}
	return -1
}
