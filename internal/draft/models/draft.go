package models

import "time"

// Flags are the boolean progress markers of a draft session. Gating steps
// persist their pass here so repeated traversal never re-runs an external
// check.
type Flags struct {
	Captcha             bool `json:"captcha"`
	HasPassedSybilCheck bool `json:"hasPassedSybilCheck"`
	HasPassedRoleGating bool `json:"hasPassedRoleGating"`
	PaymentDone         bool `json:"__payment__"`
	ClaimedPoap         bool `json:"claimedPoap"`
	ClaimedKudos        bool `json:"claimedKudos"`
	ClaimedErc20        bool `json:"claimedErc20"`
}

// Draft is an in-progress, not-yet-committed partial record tied to an
// external responder session. It is keyed by (collection, responder), not
// by record slug, and is treated as a value: services return updated
// copies and persist them explicitly.
type Draft struct {
	ID           string `json:"id"`
	CollectionID string `json:"collectionId"`
	ResponderID  string `json:"responderId"`

	Values            map[string]any  `json:"values"`
	SkippedFormFields map[string]bool `json:"skippedFormFields,omitempty"`
	Flags             Flags           `json:"flags"`

	// Client is a display name of the responder's channel client,
	// derived from the user agent when the session started.
	Client string `json:"client,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy so callers can mutate without aliasing the
// stored draft.
func (d Draft) Clone() Draft {
	out := d
	out.Values = make(map[string]any, len(d.Values))
	for k, v := range d.Values {
		out.Values[k] = v
	}
	out.SkippedFormFields = make(map[string]bool, len(d.SkippedFormFields))
	for k, v := range d.SkippedFormFields {
		out.SkippedFormFields[k] = v
	}
	return out
}

// Skipped reports whether the responder explicitly skipped a field.
func (d Draft) Skipped(propertyID string) bool {
	return d.SkippedFormFields[propertyID]
}
