package service

import (
	"commune/internal/collection/condition"
	collection "commune/internal/collection/models"
	"commune/internal/draft/models"
	"commune/internal/draft/ports"
)

// GateStatus is the externally-checked state ComputeNextStep consumes. The
// orchestrating service fills it from the gating ports; keeping it a plain
// value keeps the decision list itself pure and directly testable.
type GateStatus struct {
	WalletLinked bool
	SybilPassed  bool
	RolePassed   bool
	Claims       map[ports.ClaimKind]ports.ClaimStatus
}

// claimOrder fixes the credential step sequence.
var claimOrder = []struct {
	kind ports.ClaimKind
	step models.StepKind
}{
	{ports.ClaimPoap, models.StepPoap},
	{ports.ClaimKudos, models.StepKudos},
	{ports.ClaimErc20, models.StepErc20},
}

// ComputeNextStep walks the ordered decision list and returns the single
// next action for the responder. Pure: no I/O and no mutation; flag
// persistence is the caller's job (see applyProgress).
func ComputeNextStep(col *collection.Collection, draft models.Draft, gate GateStatus) models.NextStep {
	if col.Form.Captcha && !draft.Flags.Captcha {
		return models.NextStep{Kind: models.StepCaptcha}
	}
	if col.Form.WalletConnectionRequired && !gate.WalletLinked {
		return models.NextStep{Kind: models.StepConnectWallet}
	}
	if sybilEnabled(col) && !draft.Flags.HasPassedSybilCheck && !gate.SybilPassed {
		return models.NextStep{Kind: models.StepSybilProtection}
	}
	if len(col.Form.RoleGate) > 0 && !draft.Flags.HasPassedRoleGating && !gate.RolePassed {
		return models.NextStep{Kind: models.StepRoleGating}
	}

	for _, id := range col.PropertyOrder {
		p := col.Properties[id]
		if !p.IsPartOfFormView || draft.Skipped(id) {
			continue
		}
		if !condition.Satisfied(col, draft.Values, p.ViewConditions) {
			// Hidden fields count as complete so progression never
			// deadlocks on them.
			continue
		}
		v, present := draft.Values[id]
		if !present || collection.IsEmptyValue(v) {
			step := models.NextStep{Kind: models.StepField, PropertyID: id}
			if p.Type == collection.TypeReward {
				step.SubField = "chain"
			}
			return step
		}
		if p.Type == collection.TypeReward {
			if r, ok := collection.AsReward(v); ok {
				if sub := r.MissingSubField(); sub != "" {
					return models.NextStep{Kind: models.StepField, PropertyID: id, SubField: sub}
				}
			}
		}
	}

	if col.Form.Paywall && !draft.Flags.PaymentDone && !draft.Skipped(collection.ControlKeyPayment) {
		return models.NextStep{Kind: models.StepPaywall}
	}

	for _, c := range claimOrder {
		if !claimEnabled(col, c.kind) {
			continue
		}
		if claimDone(draft.Flags, c.kind) {
			continue
		}
		status := gate.Claims[c.kind]
		if status.HasClaimed {
			continue
		}
		return models.NextStep{Kind: c.step}
	}

	return models.NextStep{Kind: models.StepReadonlyAtEnd, Message: col.Form.CompletionMessage}
}

func sybilEnabled(col *collection.Collection) bool {
	return col.Form.Sybil != nil && col.Form.Sybil.Enabled
}

func claimEnabled(col *collection.Collection, kind ports.ClaimKind) bool {
	switch kind {
	case ports.ClaimPoap:
		return col.Form.GrantPoap
	case ports.ClaimKudos:
		return col.Form.MintKudos
	case ports.ClaimErc20:
		return col.Form.AirdropErc20
	}
	return false
}

func claimDone(f models.Flags, kind ports.ClaimKind) bool {
	switch kind {
	case ports.ClaimPoap:
		return f.ClaimedPoap
	case ports.ClaimKudos:
		return f.ClaimedKudos
	case ports.ClaimErc20:
		return f.ClaimedErc20
	}
	return false
}
