package validation

import (
	"fmt"

	"commune/internal/collection/condition"
	"commune/internal/collection/models"
	dErrors "commune/pkg/domain-errors"
)

// ValidateRequired is the separate required-field pass. View conditions
// are evaluated against the candidate record: a required field that is not
// currently visible does not block the mutation.
//
// Add enforces presence of every visible required field. Update only
// enforces non-emptiness of keys present in the payload: omitting a key
// never erases it, and clearing a visible required field is rejected.
func ValidateRequired(values map[string]any, col *models.Collection, op Operation, previous map[string]any) error {
	candidate := values
	if op == OperationUpdate {
		candidate = merge(previous, values)
	}

	for _, id := range col.PropertyOrder {
		p := col.Properties[id]
		if !p.Required {
			continue
		}
		if !condition.Satisfied(col, candidate, p.ViewConditions) {
			continue
		}
		switch op {
		case OperationAdd:
			if models.IsEmptyValue(values[id]) {
				return requiredErr(p)
			}
		case OperationUpdate:
			v, present := values[id]
			if present && models.IsEmptyValue(v) {
				return requiredErr(p)
			}
		}
	}
	return nil
}

func requiredErr(p models.Property) error {
	name := p.Name
	if name == "" {
		name = p.ID
	}
	return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("required field %q is missing", name))
}

func merge(previous, values map[string]any) map[string]any {
	out := make(map[string]any, len(previous)+len(values))
	for k, v := range previous {
		out[k] = v
	}
	for k, v := range values {
		out[k] = v
	}
	return out
}
