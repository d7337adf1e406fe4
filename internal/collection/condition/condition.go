// Package condition evaluates view conditions against a partial record.
// Evaluation is a pure function of its inputs: no I/O, no clock, no
// mutation. A property whose conditions evaluate false is invisible to
// required-field checks and to draft traversal.
package condition

import (
	"strconv"
	"strings"

	"commune/internal/collection/models"
)

// Satisfied reports whether every condition holds against the current
// values of record. Missing targets, absent values, and uncomparable
// inputs all count as unmet: progression must never deadlock on data that
// is not there yet.
func Satisfied(col *models.Collection, record map[string]any, conds []models.Condition) bool {
	for _, c := range conds {
		if !satisfiedOne(col, record, c) {
			return false
		}
	}
	return true
}

func satisfiedOne(col *models.Collection, record map[string]any, c models.Condition) bool {
	target, ok := col.Properties[c.PropertyID]
	if !ok {
		return false
	}
	current, ok := record[c.PropertyID]
	if !ok || models.IsEmptyValue(current) {
		return false
	}

	cmp, comparable := compare(target.Type, current, c.Value)
	if !comparable {
		return false
	}
	switch c.Comparator {
	case models.ComparatorGreaterThanOrEqualTo:
		return cmp >= 0
	case models.ComparatorLessThanOrEqualTo:
		return cmp <= 0
	}
	return false
}

// compare orders current against reference for the given property type.
// Returns (sign, true) where sign is -1, 0, or 1, or (0, false) when the
// pair cannot be ordered.
func compare(t models.PropertyType, current, reference any) (int, bool) {
	switch t {
	case models.TypeDate:
		cs, ok1 := models.AsString(current)
		rs, ok2 := models.AsString(reference)
		if !ok1 || !ok2 {
			return 0, false
		}
		ct, ok1 := models.ParseDate(cs)
		rt, ok2 := models.ParseDate(rs)
		if !ok1 || !ok2 {
			return 0, false
		}
		return ct.Compare(rt), true
	default:
		cn, ok1 := asComparableNumber(current)
		rn, ok2 := asComparableNumber(reference)
		if ok1 && ok2 {
			switch {
			case cn < rn:
				return -1, true
			case cn > rn:
				return 1, true
			}
			return 0, true
		}
		// Text fields fall back to lexical ordering, which also gives
		// equality conditions via a >= / <= pair.
		cs, ok1 := models.AsString(current)
		rs, ok2 := models.AsString(reference)
		if !ok1 || !ok2 {
			return 0, false
		}
		return strings.Compare(cs, rs), true
	}
}

// asComparableNumber widens the numeric comparison to numeric strings so a
// number condition can reference either form.
func asComparableNumber(v any) (float64, bool) {
	if n, ok := models.AsNumber(v); ok {
		return n, true
	}
	if s, ok := models.AsString(v); ok {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
