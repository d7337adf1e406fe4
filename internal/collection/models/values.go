package models

import (
	"encoding/json"
	"reflect"
)

// Stored values arrive as decoded JSON (map[string]any, []any, float64).
// The As* helpers normalize them into the typed shapes the validator,
// traversal engine, and activity builder work with. Each returns false when
// the value does not fit the requested shape.

// RewardValue is the value shape of a reward property. Pointers distinguish
// "absent" from "zero"; a partially populated reward is only legal inside a
// draft.
type RewardValue struct {
	Chain *Option  `json:"chain,omitempty"`
	Token *Option  `json:"token,omitempty"`
	Value *float64 `json:"value,omitempty"`
}

// Empty reports whether no sub-field is set at all.
func (r RewardValue) Empty() bool {
	return r.Chain == nil && r.Token == nil && r.Value == nil
}

// Complete reports whether chain, token, and amount are all populated.
func (r RewardValue) Complete() bool {
	return r.Chain != nil && r.Chain.Value != "" &&
		r.Token != nil && r.Token.Value != "" &&
		r.Value != nil
}

// MissingSubField returns the first unpopulated sub-field in the fixed
// chain, token, value order, or "" when the reward is complete.
func (r RewardValue) MissingSubField() string {
	if r.Chain == nil || r.Chain.Value == "" {
		return "chain"
	}
	if r.Token == nil || r.Token.Value == "" {
		return "token"
	}
	if r.Value == nil {
		return "value"
	}
	return ""
}

// MilestoneValue is one entry of a milestone property value.
type MilestoneValue struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Reward      *RewardValue `json:"reward,omitempty"`
	Completed   bool         `json:"completed,omitempty"`
}

// PayWallNetwork pins the chain and token a payment was made with.
type PayWallNetwork struct {
	Chain Option `json:"chain"`
	Token Option `json:"token"`
}

// PayWallValue is the value shape of a payWall property.
type PayWallValue struct {
	Network PayWallNetwork `json:"network"`
	TxnHash string         `json:"txnHash"`
	Paid    bool           `json:"paid"`
}

// UserValue is the value shape of user/user[] entries.
type UserValue struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// decodeLoose re-marshals v into dst, returning false when the shapes are
// incompatible. Values cross process boundaries as JSON anyway, so the
// round-trip is the authoritative shape check. Extra keys are tolerated.
func decodeLoose(v any, dst any) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsNumber accepts any numeric Go representation, including json.Number.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// AsOption decodes a {label, value} object. An empty object decodes to the
// zero Option, which callers treat as "cleared".
func AsOption(v any) (Option, bool) {
	if o, ok := v.(Option); ok {
		return o, true
	}
	var o Option
	if _, isMap := v.(map[string]any); !isMap {
		return Option{}, false
	}
	if !decodeLoose(v, &o) {
		return Option{}, false
	}
	return o, true
}

// AsOptionList decodes an array of {label, value} objects.
func AsOptionList(v any) ([]Option, bool) {
	if l, ok := v.([]Option); ok {
		return l, true
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]Option, 0, len(items))
	for _, item := range items {
		o, ok := AsOption(item)
		if !ok {
			return nil, false
		}
		out = append(out, o)
	}
	return out, true
}

// AsStringList decodes an array of strings.
func AsStringList(v any) ([]string, bool) {
	if l, ok := v.([]string); ok {
		return l, true
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// AsUser decodes a single {value} user reference.
func AsUser(v any) (UserValue, bool) {
	if u, ok := v.(UserValue); ok {
		return u, true
	}
	var u UserValue
	if _, isMap := v.(map[string]any); !isMap {
		return UserValue{}, false
	}
	if !decodeLoose(v, &u) {
		return UserValue{}, false
	}
	return u, true
}

// AsUserList decodes an array of {value} user references.
func AsUserList(v any) ([]UserValue, bool) {
	if l, ok := v.([]UserValue); ok {
		return l, true
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]UserValue, 0, len(items))
	for _, item := range items {
		u, ok := AsUser(item)
		if !ok {
			return nil, false
		}
		out = append(out, u)
	}
	return out, true
}

// AsReward decodes a reward value, tolerating missing sub-fields so drafts
// can hold partial rewards.
func AsReward(v any) (RewardValue, bool) {
	if r, ok := v.(RewardValue); ok {
		return r, true
	}
	var r RewardValue
	if _, isMap := v.(map[string]any); !isMap {
		return RewardValue{}, false
	}
	if !decodeLoose(v, &r) {
		return RewardValue{}, false
	}
	return r, true
}

// AsMilestones decodes a milestone array.
func AsMilestones(v any) ([]MilestoneValue, bool) {
	if l, ok := v.([]MilestoneValue); ok {
		return l, true
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]MilestoneValue, 0, len(items))
	for _, item := range items {
		var m MilestoneValue
		if _, isMap := item.(map[string]any); !isMap {
			return nil, false
		}
		if !decodeLoose(item, &m) {
			return nil, false
		}
		out = append(out, m)
	}
	return out, true
}

// AsPayWall decodes a payWall value.
func AsPayWall(v any) (PayWallValue, bool) {
	if p, ok := v.(PayWallValue); ok {
		return p, true
	}
	var p PayWallValue
	if _, isMap := v.(map[string]any); !isMap {
		return PayWallValue{}, false
	}
	if !decodeLoose(v, &p) {
		return PayWallValue{}, false
	}
	return p, true
}

// IsEmptyValue reports whether v should be treated as "not answered":
// nil, empty string, empty slice or map, a cleared option, or an empty
// reward.
func IsEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case Option:
		return t.Value == "" && t.Label == ""
	case RewardValue:
		return t.Empty()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		if rv.Len() == 0 {
			return true
		}
		if m, ok := v.(map[string]any); ok {
			// {"label": "", "value": ""} counts as cleared.
			if o, decoded := AsOption(m); decoded && o.Label == "" && o.Value == "" {
				return onlyOptionKeys(m)
			}
		}
		return false
	case reflect.Ptr:
		return rv.IsNil()
	}
	return false
}

func onlyOptionKeys(m map[string]any) bool {
	for k := range m {
		if k != "label" && k != "value" {
			return false
		}
	}
	return true
}
