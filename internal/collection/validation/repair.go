package validation

import (
	"strconv"

	"commune/internal/collection/models"
)

// Repair is the explicitly non-default, best-effort mode: structurally
// fixable values are coerced into shape and the rest are dropped, instead
// of rejecting the whole payload. Returns the repaired values, any options
// invented while coercing raw strings into select values (keyed by
// property id, so the caller can append them to the schema), and the
// fields that had to be dropped.
func Repair(values map[string]any, col *models.Collection) (map[string]any, map[string][]models.Option, []InvalidField) {
	fixed := make(map[string]any, len(values))
	invented := make(map[string][]models.Option)
	var dropped []InvalidField

	for _, id := range orderedKeys(values, col) {
		v := values[id]
		if models.IsControlKey(id) {
			fixed[id] = v
			continue
		}
		p, ok := col.Properties[id]
		if !ok {
			dropped = append(dropped, InvalidField{PropertyID: id, Reason: "unknown property"})
			continue
		}
		if reason, valid := checkValue(p, v, false); valid {
			fixed[id] = v
			continue
		} else if repaired, opts, ok := coerce(p, v); ok {
			fixed[id] = repaired
			if len(opts) > 0 {
				invented[id] = append(invented[id], opts...)
			}
		} else {
			dropped = append(dropped, InvalidField{PropertyID: id, Reason: reason})
		}
	}
	return fixed, invented, dropped
}

// coerce attempts the defined structural repairs for one value.
func coerce(p models.Property, v any) (any, []models.Option, bool) {
	switch p.Type {
	case models.TypeNumber:
		if s, ok := models.AsString(v); ok {
			if n, err := strconv.ParseFloat(s, 64); err == nil {
				return n, nil, true
			}
		}

	case models.TypeSingleSelect:
		if s, ok := models.AsString(v); ok && s != "" {
			o := orInventOption(p, s)
			return o, inventedIfNew(p, o), true
		}

	case models.TypeMultiSelect:
		if s, ok := models.AsString(v); ok && s != "" {
			o := orInventOption(p, s)
			return []models.Option{o}, inventedIfNew(p, o), true
		}
		if o, ok := models.AsOption(v); ok && o.Value != "" && o.Label != "" {
			return []models.Option{o}, nil, true
		}
		if raw, ok := models.AsStringList(v); ok {
			out := make([]models.Option, 0, len(raw))
			var inv []models.Option
			for _, s := range raw {
				if s == "" {
					continue
				}
				o := orInventOption(p, s)
				out = append(out, o)
				inv = append(inv, inventedIfNew(p, o)...)
			}
			return out, inv, true
		}

	case models.TypeUser:
		if s, ok := models.AsString(v); ok && s != "" {
			return models.UserValue{Value: s}, nil, true
		}

	case models.TypeUserArray:
		if u, ok := models.AsUser(v); ok && u.Value != "" {
			return []models.UserValue{u}, nil, true
		}
		if s, ok := models.AsString(v); ok && s != "" {
			return []models.UserValue{{Value: s}}, nil, true
		}
	}
	return nil, nil, false
}

// orInventOption resolves s against the property's options by value then
// by label, inventing a deterministic new option when neither matches.
func orInventOption(p models.Property, s string) models.Option {
	if o, ok := p.OptionByValue(s); ok {
		return o
	}
	for _, o := range p.Options {
		if o.Label == s {
			return o
		}
	}
	return models.Option{Label: s, Value: s}
}

func inventedIfNew(p models.Property, o models.Option) []models.Option {
	if _, exists := p.OptionByValue(o.Value); exists {
		return nil
	}
	return []models.Option{o}
}
