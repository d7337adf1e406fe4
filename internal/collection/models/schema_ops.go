package models

import (
	"strconv"

	dErrors "commune/pkg/domain-errors"
)

// Structural schema edits. Every operation keeps PropertyOrder a
// permutation of the Properties keys; value cascades across existing
// records are the caller's job (the service owns record storage).

// AddProperty inserts a property at index in the traversal order. A
// negative or out-of-range index appends.
func (c *Collection) AddProperty(p Property, index int) error {
	if p.ID == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "property id cannot be empty")
	}
	if !KnownType(p.Type) {
		return dErrors.New(dErrors.CodeInvariantViolation, "unknown property type: "+string(p.Type))
	}
	if _, exists := c.Properties[p.ID]; exists {
		return dErrors.New(dErrors.CodeConflict, "property already exists: "+p.ID)
	}
	if err := validateOptions(p); err != nil {
		return err
	}
	if c.Properties == nil {
		c.Properties = make(map[string]Property)
	}
	c.Properties[p.ID] = p
	if index < 0 || index > len(c.PropertyOrder) {
		c.PropertyOrder = append(c.PropertyOrder, p.ID)
		return nil
	}
	c.PropertyOrder = append(c.PropertyOrder, "")
	copy(c.PropertyOrder[index+1:], c.PropertyOrder[index:])
	c.PropertyOrder[index] = p.ID
	return nil
}

// RemoveProperty deletes a property from the schema and the order list,
// returning the removed definition so the caller can cascade value
// deletion across existing records.
func (c *Collection) RemoveProperty(id string) (Property, error) {
	p, ok := c.Properties[id]
	if !ok {
		return Property{}, dErrors.New(dErrors.CodeNotFound, "property not found: "+id)
	}
	delete(c.Properties, id)
	for i, orderedID := range c.PropertyOrder {
		if orderedID == id {
			c.PropertyOrder = append(c.PropertyOrder[:i], c.PropertyOrder[i+1:]...)
			break
		}
	}
	return p, nil
}

// UpdateProperty replaces an existing property definition in place. The
// previous definition is returned so the caller can detect type changes
// and coerce or drop stored values.
func (c *Collection) UpdateProperty(p Property) (Property, error) {
	prev, ok := c.Properties[p.ID]
	if !ok {
		return Property{}, dErrors.New(dErrors.CodeNotFound, "property not found: "+p.ID)
	}
	if !KnownType(p.Type) {
		return Property{}, dErrors.New(dErrors.CodeInvariantViolation, "unknown property type: "+string(p.Type))
	}
	if err := validateOptions(p); err != nil {
		return Property{}, err
	}
	c.Properties[p.ID] = p
	return prev, nil
}

func validateOptions(p Property) error {
	seen := make(map[string]bool, len(p.Options))
	for _, o := range p.Options {
		if seen[o.Value] {
			return dErrors.New(dErrors.CodeInvariantViolation, "duplicate option value: "+o.Value)
		}
		seen[o.Value] = true
	}
	return nil
}

func isTextType(t PropertyType) bool {
	return t == TypeShortText || t == TypeLongText
}

// CoerceValue converts a stored value between property types when a
// lossless coercion is defined. The second return is false when no
// coercion exists and the value must be dropped.
func CoerceValue(from, to PropertyType, v any) (any, bool) {
	if from == to {
		return v, true
	}
	switch {
	case isTextType(from) && isTextType(to):
		return v, true
	case from == TypeNumber && isTextType(to):
		if n, ok := AsNumber(v); ok {
			return strconv.FormatFloat(n, 'f', -1, 64), true
		}
		return nil, false
	case isTextType(from) && to == TypeNumber:
		s, ok := AsString(v)
		if !ok {
			return nil, false
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n, true
		}
		return nil, false
	case from == TypeSingleSelect && to == TypeMultiSelect:
		if o, ok := AsOption(v); ok {
			return []Option{o}, true
		}
		return nil, false
	case from == TypeUser && to == TypeUserArray:
		if u, ok := AsUser(v); ok {
			return []UserValue{u}, true
		}
		return nil, false
	}
	return nil, false
}
