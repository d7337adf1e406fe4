package validation

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"commune/internal/collection/models"
	dErrors "commune/pkg/domain-errors"
)

type ValidationSuite struct {
	suite.Suite
	col *models.Collection
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationSuite))
}

func (s *ValidationSuite) SetupTest() {
	props := []models.Property{
		{ID: "title", Type: models.TypeShortText, Required: true, Name: "Title"},
		{ID: "notes", Type: models.TypeLongText},
		{ID: "amount", Type: models.TypeNumber},
		{ID: "contact", Type: models.TypeEmail},
		{ID: "site", Type: models.TypeSingleURL},
		{ID: "links", Type: models.TypeMultiURL},
		{ID: "wallet", Type: models.TypeEthAddress},
		{ID: "due", Type: models.TypeDate},
		{ID: "status", Type: models.TypeSingleSelect, Options: []models.Option{
			{Label: "Open", Value: "open"}, {Label: "Done", Value: "done"},
		}},
		{ID: "tags", Type: models.TypeMultiSelect},
		{ID: "owner", Type: models.TypeUser},
		{ID: "reviewers", Type: models.TypeUserArray},
		{ID: "bounty", Type: models.TypeReward},
		{ID: "phases", Type: models.TypeMilestone},
		{ID: "entryFee", Type: models.TypePayWall},
	}
	s.col = &models.Collection{Properties: map[string]models.Property{}}
	for _, p := range props {
		s.Require().NoError(s.col.AddProperty(p, -1))
	}
}

// =============================================================================
// Type pass: one generated valid value per type round-trips
// =============================================================================

func (s *ValidationSuite) TestValidValuesPerType() {
	values := map[string]any{
		"title":   "Treasury report",
		"notes":   "quarterly summary",
		"amount":  12.5,
		"contact": "ops@dao.example.org",
		"site":    "https://gov.example.org/proposal/12",
		"links":   []any{"https://a.example.com", "www.b.example.com"},
		"wallet":  "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"due":     "2026-04-01",
		"status":  map[string]any{"label": "Open", "value": "open"},
		"tags":    []any{map[string]any{"label": "Urgent", "value": "urgent"}},
		"owner":   map[string]any{"value": "user-1"},
		"reviewers": []any{
			map[string]any{"value": "user-2"},
			map[string]any{"value": "user-3"},
		},
		"bounty": map[string]any{
			"chain": map[string]any{"label": "Polygon", "value": "137"},
			"token": map[string]any{"label": "USDC", "value": "0xusdc"},
			"value": 250.0,
		},
		"phases": []any{
			map[string]any{"title": "Design"},
			map[string]any{"title": "Build", "reward": map[string]any{
				"chain": map[string]any{"label": "Polygon", "value": "137"},
				"token": map[string]any{"label": "USDC", "value": "0xusdc"},
				"value": 100.0,
			}},
		},
		"entryFee": map[string]any{
			"network": map[string]any{
				"chain": map[string]any{"label": "Polygon", "value": "137"},
				"token": map[string]any{"label": "USDC", "value": "0xusdc"},
			},
			"txnHash": "0xabc123",
			"paid":    true,
		},
	}
	s.NoError(Validate(values, s.col))
	s.Empty(ValidateAll(values, s.col))
}

func (s *ValidationSuite) TestInvalidValuesPerType() {
	cases := map[string]any{
		"title":     42,
		"amount":    "not numeric",
		"contact":   "not-an-email",
		"site":      "ftp://example.org",
		"links":     []any{"https://ok.example.com", "nope"},
		"wallet":    "0x123",
		"due":       "sometime soon",
		"status":    map[string]any{"label": "Open", "value": ""},
		"tags":      []any{map[string]any{"label": "", "value": "x"}},
		"owner":     map[string]any{"value": 17},
		"reviewers": []any{map[string]any{"value": ""}},
	}
	for id, v := range cases {
		s.Run(id, func() {
			err := Validate(map[string]any{id: v}, s.col)
			s.Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}

	s.Run("links with an empty element", func() {
		err := Validate(map[string]any{"links": []any{"https://ok.example.com", ""}}, s.col)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

// Mutating any required sub-key of a structured type fails.
func (s *ValidationSuite) TestStructuredSubKeys() {
	s.Run("partial reward rejected outside drafts", func() {
		partial := map[string]any{"bounty": map[string]any{
			"chain": map[string]any{"label": "Polygon", "value": "137"},
		}}
		s.Error(Validate(partial, s.col))
	})

	s.Run("partial reward permitted in draft mode", func() {
		v := map[string]any{"chain": map[string]any{"label": "Polygon", "value": "137"}}
		s.NoError(ValidateDraftValue(s.col, "bounty", v))
	})

	s.Run("empty reward is a valid cleared value", func() {
		s.NoError(Validate(map[string]any{"bounty": map[string]any{}}, s.col))
	})

	s.Run("milestone without title rejected", func() {
		v := map[string]any{"phases": []any{map[string]any{"reward": map[string]any{}}}}
		s.Error(Validate(v, s.col))
	})

	s.Run("milestone with partial reward rejected", func() {
		v := map[string]any{"phases": []any{map[string]any{
			"title":  "Build",
			"reward": map[string]any{"value": 10.0},
		}}}
		s.Error(Validate(v, s.col))
	})

	s.Run("paywall missing txn hash rejected", func() {
		v := map[string]any{"entryFee": map[string]any{
			"network": map[string]any{
				"chain": map[string]any{"label": "Polygon", "value": "137"},
				"token": map[string]any{"label": "USDC", "value": "0xusdc"},
			},
			"paid": true,
		}}
		s.Error(Validate(v, s.col))
	})
}

// =============================================================================
// Existence pass
// =============================================================================

func (s *ValidationSuite) TestUnknownProperties() {
	s.Run("unknown field is rejected not ignored", func() {
		err := Validate(map[string]any{"ghost": "boo"}, s.col)
		s.Error(err)
	})

	s.Run("control keys bypass typing", func() {
		s.NoError(Validate(map[string]any{
			models.ControlKeyPayment:    map[string]any{"anything": true},
			models.ControlKeyCardStatus: "in-progress",
		}, s.col))
	})
}

// =============================================================================
// Required pass
// =============================================================================

func (s *ValidationSuite) TestRequired() {
	s.Run("add without required field blocks", func() {
		err := ValidateRequired(map[string]any{"notes": "x"}, s.col, OperationAdd, nil)
		s.Error(err)
		s.Contains(err.Error(), "Title")
	})

	s.Run("add with required field passes", func() {
		s.NoError(ValidateRequired(map[string]any{"title": "x"}, s.col, OperationAdd, nil))
	})

	s.Run("update omitting required key is not forced", func() {
		prev := map[string]any{"title": "kept"}
		s.NoError(ValidateRequired(map[string]any{"notes": "y"}, s.col, OperationUpdate, prev))
	})

	s.Run("update clearing required key blocks", func() {
		prev := map[string]any{"title": "kept"}
		err := ValidateRequired(map[string]any{"title": ""}, s.col, OperationUpdate, prev)
		s.Error(err)
	})
}

// A required field whose view conditions evaluate false must not block an
// add even when absent; with conditions true it must.
func (s *ValidationSuite) TestConditionalRequiredExemption() {
	col := &models.Collection{Properties: map[string]models.Property{}}
	s.Require().NoError(col.AddProperty(models.Property{ID: "score", Type: models.TypeNumber}, -1))
	s.Require().NoError(col.AddProperty(models.Property{
		ID: "justification", Type: models.TypeLongText, Required: true,
		ViewConditions: []models.Condition{{
			PropertyID: "score", Comparator: models.ComparatorGreaterThanOrEqualTo, Value: 8,
		}},
	}, -1))

	s.Run("hidden required field does not block", func() {
		s.NoError(ValidateRequired(map[string]any{"score": 3.0}, col, OperationAdd, nil))
	})

	s.Run("visible required field blocks when absent", func() {
		err := ValidateRequired(map[string]any{"score": 9.0}, col, OperationAdd, nil)
		s.Error(err)
	})

	s.Run("visible required field passes when present", func() {
		s.NoError(ValidateRequired(map[string]any{"score": 9.0, "justification": "strong"}, col, OperationAdd, nil))
	})
}

// =============================================================================
// Repair mode
// =============================================================================

func (s *ValidationSuite) TestRepair() {
	s.Run("raw string becomes an invented select option", func() {
		fixed, invented, dropped := Repair(map[string]any{"status": "archived"}, s.col)
		s.Empty(dropped)
		s.Equal(models.Option{Label: "archived", Value: "archived"}, fixed["status"])
		s.Equal([]models.Option{{Label: "archived", Value: "archived"}}, invented["status"])
	})

	s.Run("raw string matching an existing option does not invent", func() {
		fixed, invented, dropped := Repair(map[string]any{"status": "open"}, s.col)
		s.Empty(dropped)
		s.Empty(invented)
		s.Equal(models.Option{Label: "Open", Value: "open"}, fixed["status"])
	})

	s.Run("numeric string parses", func() {
		fixed, _, dropped := Repair(map[string]any{"amount": "12"}, s.col)
		s.Empty(dropped)
		s.Equal(12.0, fixed["amount"])
	})

	s.Run("raw user id wraps", func() {
		fixed, _, dropped := Repair(map[string]any{"owner": "user-9", "reviewers": "user-9"}, s.col)
		s.Empty(dropped)
		s.Equal(models.UserValue{Value: "user-9"}, fixed["owner"])
		s.Equal([]models.UserValue{{Value: "user-9"}}, fixed["reviewers"])
	})

	s.Run("unfixable values are dropped not rejected", func() {
		fixed, _, dropped := Repair(map[string]any{"due": "whenever", "title": "ok"}, s.col)
		s.Len(dropped, 1)
		s.Equal("due", dropped[0].PropertyID)
		s.Equal("ok", fixed["title"])
		s.NotContains(fixed, "due")
	})

	s.Run("valid values pass through untouched", func() {
		fixed, invented, dropped := Repair(map[string]any{"notes": "fine"}, s.col)
		s.Empty(invented)
		s.Empty(dropped)
		s.Equal("fine", fixed["notes"])
	})
}
