package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"commune/internal/collection/models"
)

func schemaWithScore() *models.Collection {
	return &models.Collection{
		Properties: map[string]models.Property{
			"score":    {ID: "score", Type: models.TypeNumber},
			"deadline": {ID: "deadline", Type: models.TypeDate},
			"tier":     {ID: "tier", Type: models.TypeShortText},
		},
		PropertyOrder: []string{"score", "deadline", "tier"},
	}
}

func TestSatisfied(t *testing.T) {
	col := schemaWithScore()
	gte := func(prop string, v any) []models.Condition {
		return []models.Condition{{PropertyID: prop, Comparator: models.ComparatorGreaterThanOrEqualTo, Value: v}}
	}
	lte := func(prop string, v any) []models.Condition {
		return []models.Condition{{PropertyID: prop, Comparator: models.ComparatorLessThanOrEqualTo, Value: v}}
	}

	t.Run("numeric comparisons", func(t *testing.T) {
		rec := map[string]any{"score": 7.0}
		assert.True(t, Satisfied(col, rec, gte("score", 5)))
		assert.True(t, Satisfied(col, rec, gte("score", 7)))
		assert.False(t, Satisfied(col, rec, gte("score", 8)))
		assert.True(t, Satisfied(col, rec, lte("score", 10)))
		assert.False(t, Satisfied(col, rec, lte("score", 6)))
	})

	t.Run("date comparisons are chronological", func(t *testing.T) {
		rec := map[string]any{"deadline": "2026-03-01"}
		assert.True(t, Satisfied(col, rec, gte("deadline", "2026-01-01")))
		assert.False(t, Satisfied(col, rec, gte("deadline", "2026-06-01")))
	})

	t.Run("text equality via a gte and lte pair", func(t *testing.T) {
		rec := map[string]any{"tier": "gold"}
		conds := []models.Condition{
			{PropertyID: "tier", Comparator: models.ComparatorGreaterThanOrEqualTo, Value: "gold"},
			{PropertyID: "tier", Comparator: models.ComparatorLessThanOrEqualTo, Value: "gold"},
		}
		assert.True(t, Satisfied(col, rec, conds))
		rec["tier"] = "silver"
		assert.False(t, Satisfied(col, rec, conds))
	})

	t.Run("missing value fails closed", func(t *testing.T) {
		assert.False(t, Satisfied(col, map[string]any{}, gte("score", 1)))
		assert.False(t, Satisfied(col, map[string]any{"score": nil}, gte("score", 1)))
	})

	t.Run("unknown target property fails closed", func(t *testing.T) {
		assert.False(t, Satisfied(col, map[string]any{"ghost": 9}, gte("ghost", 1)))
	})

	t.Run("uncomparable input fails closed not errors", func(t *testing.T) {
		rec := map[string]any{"score": "not a number"}
		assert.False(t, Satisfied(col, rec, gte("score", 1)))
	})

	t.Run("empty condition list is satisfied", func(t *testing.T) {
		assert.True(t, Satisfied(col, map[string]any{}, nil))
	})
}
