// Package validation checks candidate record values against a collection
// schema. Three passes exist: existence (is this a schema property at
// all), type (does the value fit the property type's wire shape), and
// required (see required.go). A mutation either passes all of them or
// writes nothing.
package validation

import (
	"fmt"
	"sort"

	"commune/internal/collection/models"
	dErrors "commune/pkg/domain-errors"
)

// Operation distinguishes add from update semantics in the required pass.
type Operation string

const (
	OperationAdd    Operation = "add"
	OperationUpdate Operation = "update"
)

// InvalidField is one violation in collect-all mode.
type InvalidField struct {
	PropertyID string `json:"propertyId"`
	Reason     string `json:"reason"`
}

func (f InvalidField) String() string {
	return f.PropertyID + ": " + f.Reason
}

// Validate runs the existence and type passes, failing on the first
// violation. Used on the direct request path.
func Validate(values map[string]any, col *models.Collection) error {
	for _, id := range orderedKeys(values, col) {
		if reason, ok := checkField(col, id, values[id], false); !ok {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid value for %q: %s", id, reason))
		}
	}
	return nil
}

// ValidateAll runs the same passes but collects every violation. Used by
// the best-effort repair path.
func ValidateAll(values map[string]any, col *models.Collection) []InvalidField {
	var out []InvalidField
	for _, id := range orderedKeys(values, col) {
		if reason, ok := checkField(col, id, values[id], false); !ok {
			out = append(out, InvalidField{PropertyID: id, Reason: reason})
		}
	}
	return out
}

// ValidateDraftValue checks a single field submission against the schema
// with draft semantics: partial reward values are legal.
func ValidateDraftValue(col *models.Collection, propertyID string, value any) error {
	if reason, ok := checkField(col, propertyID, value, true); !ok {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid value for %q: %s", propertyID, reason))
	}
	return nil
}

// checkField runs existence plus type for one key.
func checkField(col *models.Collection, id string, value any, draft bool) (string, bool) {
	if models.IsControlKey(id) {
		return "", true
	}
	p, ok := col.Properties[id]
	if !ok {
		return "unknown property", false
	}
	return checkValue(p, value, draft)
}

// orderedKeys walks payload keys in schema order first so fail-fast errors
// are reported deterministically, then any remaining (unknown) keys.
func orderedKeys(values map[string]any, col *models.Collection) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, id := range col.PropertyOrder {
		if _, ok := values[id]; ok {
			out = append(out, id)
			seen[id] = true
		}
	}
	tail := make([]string, 0)
	for id := range values {
		if !seen[id] {
			tail = append(tail, id)
		}
	}
	sort.Strings(tail)
	return append(out, tail...)
}
