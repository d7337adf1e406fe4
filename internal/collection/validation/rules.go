package validation

import (
	"regexp"

	"commune/internal/collection/models"
	"commune/pkg/eth"
)

// Per-type wire shapes. These rules define the stored contract of a
// record: loosening one silently changes what every existing consumer of
// the record store can rely on.

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)
	urlPattern   = regexp.MustCompile(`^(https?://[^\s]+|www\.[^\s]+\.[^\s]+)$`)
)

// checkValue validates one value against its property definition. An empty
// value always passes the type pass; emptiness is the required pass's
// concern. draft loosens the reward rule to permit partial sub-fields.
func checkValue(p models.Property, v any, draft bool) (string, bool) {
	if models.IsEmptyValue(v) {
		return "", true
	}

	switch p.Type {
	case models.TypeShortText, models.TypeLongText:
		if _, ok := models.AsString(v); !ok {
			return "expected a string", false
		}

	case models.TypeNumber:
		if _, ok := models.AsNumber(v); !ok {
			return "expected a number", false
		}

	case models.TypeEmail:
		s, ok := models.AsString(v)
		if !ok {
			return "expected a string", false
		}
		if !emailPattern.MatchString(s) {
			return "not a valid email address", false
		}

	case models.TypeSingleURL:
		s, ok := models.AsString(v)
		if !ok {
			return "expected a string", false
		}
		if !urlPattern.MatchString(s) {
			return "not a valid URL", false
		}

	case models.TypeMultiURL:
		urls, ok := models.AsStringList(v)
		if !ok {
			return "expected an array of strings", false
		}
		for _, u := range urls {
			if u == "" {
				return "empty URL in list", false
			}
			if !urlPattern.MatchString(u) {
				return "not a valid URL: " + u, false
			}
		}

	case models.TypeEthAddress:
		s, ok := models.AsString(v)
		if !ok {
			return "expected a string", false
		}
		if !eth.IsValidAddress(s) {
			return "not a valid ethereum address or ENS name", false
		}

	case models.TypeDate:
		s, ok := models.AsString(v)
		if !ok {
			return "expected a date string", false
		}
		if _, parsed := models.ParseDate(s); !parsed {
			return "not a parseable date", false
		}

	case models.TypeSingleSelect:
		o, ok := models.AsOption(v)
		if !ok {
			return "expected an option object", false
		}
		// Either fully populated or fully cleared; half-filled options
		// corrupt downstream label lookups.
		if (o.Value == "") != (o.Label == "") {
			return "option requires both label and value", false
		}

	case models.TypeMultiSelect:
		opts, ok := models.AsOptionList(v)
		if !ok {
			return "expected an array of options", false
		}
		for _, o := range opts {
			if o.Value == "" || o.Label == "" {
				return "option requires both label and value", false
			}
		}

	case models.TypeUser:
		u, ok := models.AsUser(v)
		if !ok {
			return "expected a user reference", false
		}
		if u.Value == "" {
			return "user reference requires a value", false
		}

	case models.TypeUserArray:
		users, ok := models.AsUserList(v)
		if !ok {
			return "expected an array of user references", false
		}
		for _, u := range users {
			if u.Value == "" {
				return "user reference requires a value", false
			}
		}

	case models.TypeReward:
		r, ok := models.AsReward(v)
		if !ok {
			return "expected a reward object", false
		}
		if !draft && !r.Empty() && !r.Complete() {
			return "reward requires chain, token, and value", false
		}

	case models.TypeMilestone:
		milestones, ok := models.AsMilestones(v)
		if !ok {
			return "expected an array of milestones", false
		}
		for _, m := range milestones {
			if m.Title == "" {
				return "milestone requires a title", false
			}
			if m.Reward != nil && !m.Reward.Empty() && !m.Reward.Complete() {
				return "milestone reward requires chain, token, and value", false
			}
		}

	case models.TypePayWall:
		pw, ok := models.AsPayWall(v)
		if !ok {
			return "expected a payment object", false
		}
		if pw.Network.Chain.Value == "" || pw.Network.Token.Value == "" {
			return "payment requires chain and token", false
		}
		if pw.TxnHash == "" {
			return "payment requires a transaction hash", false
		}

	default:
		return "unsupported property type: " + string(p.Type), false
	}
	return "", true
}
