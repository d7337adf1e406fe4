package activity

import (
	"fmt"
	"strconv"
	"strings"

	"commune/internal/collection/models"
)

// phrase dispatches to the per-type generator. Each generator handles the
// three transitions independently because the natural phrasing differs per
// type. The returned ref map carries one entry per {{userN}} token.
func phrase(p models.Property, tr transition, oldValue, newValue any) (string, map[string]models.ActorRef) {
	name := p.Name
	if name == "" {
		name = p.ID
	}

	switch p.Type {
	case models.TypeSingleSelect:
		return phraseSingleSelect(name, tr, oldValue, newValue), nil
	case models.TypeMultiSelect:
		return phraseMultiSelect(name, tr, newValue), nil
	case models.TypeUser:
		return phraseUser(name, tr, newValue)
	case models.TypeUserArray:
		return phraseUserArray(name, tr, oldValue, newValue)
	case models.TypeReward:
		return phraseReward(name, tr, newValue), nil
	case models.TypeMilestone:
		return phraseMilestone(name, tr, newValue), nil
	case models.TypePayWall:
		return phrasePayWall(name, tr, newValue), nil
	default:
		return phraseScalar(name, tr, newValue), nil
	}
}

func phraseScalar(name string, tr transition, newValue any) string {
	switch tr {
	case transitionAdded:
		return fmt.Sprintf("{{actor}} set %q to %s", name, formatScalar(newValue))
	case transitionCleared:
		return fmt.Sprintf("{{actor}} cleared %q", name)
	case transitionChanged:
		return fmt.Sprintf("{{actor}} updated %q to %s", name, formatScalar(newValue))
	}
	return ""
}

func phraseSingleSelect(name string, tr transition, oldValue, newValue any) string {
	switch tr {
	case transitionAdded:
		return fmt.Sprintf("{{actor}} set %q to %q", name, optionLabel(newValue))
	case transitionCleared:
		return fmt.Sprintf("{{actor}} cleared %q", name)
	case transitionChanged:
		return fmt.Sprintf("{{actor}} updated %q from %q to %q", name, optionLabel(oldValue), optionLabel(newValue))
	}
	return ""
}

func phraseMultiSelect(name string, tr transition, newValue any) string {
	switch tr {
	case transitionAdded:
		return fmt.Sprintf("{{actor}} set %q to %s", name, optionLabels(newValue))
	case transitionCleared:
		return fmt.Sprintf("{{actor}} cleared %q", name)
	case transitionChanged:
		return fmt.Sprintf("{{actor}} updated %q to %s", name, optionLabels(newValue))
	}
	return ""
}

func phraseUser(name string, tr transition, newValue any) (string, map[string]models.ActorRef) {
	switch tr {
	case transitionAdded, transitionChanged:
		u, ok := models.AsUser(newValue)
		if !ok {
			return "", nil
		}
		refs := map[string]models.ActorRef{
			"user0": {ID: u.Value, RefType: models.RefTypeUser},
		}
		if tr == transitionAdded {
			return fmt.Sprintf("{{actor}} assigned {{user0}} to %q", name), refs
		}
		return fmt.Sprintf("{{actor}} changed %q to {{user0}}", name), refs
	case transitionCleared:
		return fmt.Sprintf("{{actor}} removed the assignee of %q", name), nil
	}
	return "", nil
}

func phraseUserArray(name string, tr transition, oldValue, newValue any) (string, map[string]models.ActorRef) {
	switch tr {
	case transitionCleared:
		return fmt.Sprintf("{{actor}} removed everyone from %q", name), nil
	case transitionAdded:
		users, ok := models.AsUserList(newValue)
		if !ok {
			return "", nil
		}
		tokens, refs := userTokens(users, 0)
		return fmt.Sprintf("{{actor}} added %s to %q", tokens, name), refs
	case transitionChanged:
		oldUsers, _ := models.AsUserList(oldValue)
		newUsers, ok := models.AsUserList(newValue)
		if !ok {
			return "", nil
		}
		added := diffUsers(newUsers, oldUsers)
		removed := diffUsers(oldUsers, newUsers)
		refs := map[string]models.ActorRef{}
		var parts []string
		next := 0
		if len(added) > 0 {
			tokens, addedRefs := userTokens(added, next)
			next += len(added)
			for k, v := range addedRefs {
				refs[k] = v
			}
			parts = append(parts, fmt.Sprintf("added %s to", tokens))
		}
		if len(removed) > 0 {
			tokens, removedRefs := userTokens(removed, next)
			for k, v := range removedRefs {
				refs[k] = v
			}
			parts = append(parts, fmt.Sprintf("removed %s from", tokens))
		}
		if len(parts) == 0 {
			return "", nil
		}
		return fmt.Sprintf("{{actor}} %s %q", strings.Join(parts, " and "), name), refs
	}
	return "", nil
}

func phraseReward(name string, tr transition, newValue any) string {
	switch tr {
	case transitionCleared:
		return fmt.Sprintf("{{actor}} removed the reward on %q", name)
	case transitionAdded, transitionChanged:
		r, ok := models.AsReward(newValue)
		if !ok || !r.Complete() {
			return ""
		}
		verb := "set"
		if tr == transitionChanged {
			verb = "updated"
		}
		return fmt.Sprintf("{{actor}} %s the reward on %q to %s %s",
			verb, name, formatNumber(*r.Value), r.Token.Label)
	}
	return ""
}

func phraseMilestone(name string, tr transition, newValue any) string {
	switch tr {
	case transitionCleared:
		return fmt.Sprintf("{{actor}} removed the milestones of %q", name)
	case transitionAdded:
		milestones, ok := models.AsMilestones(newValue)
		if !ok {
			return ""
		}
		noun := "milestones"
		if len(milestones) == 1 {
			noun = "milestone"
		}
		return fmt.Sprintf("{{actor}} added %d %s to %q", len(milestones), noun, name)
	case transitionChanged:
		return fmt.Sprintf("{{actor}} updated the milestones of %q", name)
	}
	return ""
}

func phrasePayWall(name string, tr transition, newValue any) string {
	switch tr {
	case transitionCleared:
		return fmt.Sprintf("{{actor}} removed the payment on %q", name)
	case transitionAdded, transitionChanged:
		pw, ok := models.AsPayWall(newValue)
		if !ok {
			return ""
		}
		return fmt.Sprintf("{{actor}} recorded a payment of %s on %s for %q (txn %s)",
			pw.Network.Token.Label, pw.Network.Chain.Label, name, pw.TxnHash)
	}
	return ""
}

func userTokens(users []models.UserValue, start int) (string, map[string]models.ActorRef) {
	refs := make(map[string]models.ActorRef, len(users))
	tokens := make([]string, len(users))
	for i, u := range users {
		key := "user" + strconv.Itoa(start+i)
		refs[key] = models.ActorRef{ID: u.Value, RefType: models.RefTypeUser}
		tokens[i] = "{{" + key + "}}"
	}
	return strings.Join(tokens, ", "), refs
}

// diffUsers returns the members of a that are not in b, preserving order.
func diffUsers(a, b []models.UserValue) []models.UserValue {
	inB := make(map[string]bool, len(b))
	for _, u := range b {
		inB[u.Value] = true
	}
	var out []models.UserValue
	for _, u := range a {
		if !inB[u.Value] {
			out = append(out, u)
		}
	}
	return out
}

func optionLabel(v any) string {
	o, ok := models.AsOption(v)
	if !ok {
		return ""
	}
	return o.Label
}

func optionLabels(v any) string {
	opts, ok := models.AsOptionList(v)
	if !ok || len(opts) == 0 {
		return `""`
	}
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = strconv.Quote(o.Label)
	}
	return strings.Join(labels, ", ")
}

func formatScalar(v any) string {
	if n, ok := models.AsNumber(v); ok {
		return formatNumber(n)
	}
	if s, ok := models.AsString(v); ok {
		return strconv.Quote(s)
	}
	if l, ok := models.AsStringList(v); ok {
		quoted := make([]string, len(l))
		for i, s := range l {
			quoted[i] = strconv.Quote(s)
		}
		return strings.Join(quoted, ", ")
	}
	return fmt.Sprintf("%v", v)
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
