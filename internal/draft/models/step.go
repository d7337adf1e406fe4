package models

// StepKind names one state of the draft traversal machine. The kinds are
// evaluated as an ordered decision list, first match wins; see the
// service's ComputeNextStep.
type StepKind string

const (
	StepCaptcha         StepKind = "captcha"
	StepConnectWallet   StepKind = "connectWallet"
	StepSybilProtection StepKind = "sybilProtection"
	StepRoleGating      StepKind = "roleGating"
	StepField           StepKind = "field"
	StepPaywall         StepKind = "paywall"
	StepPoap            StepKind = "poap"
	StepKudos           StepKind = "kudos"
	StepErc20           StepKind = "erc20"
	StepReadonlyAtEnd   StepKind = "readonlyAtEnd"
)

// NextStep is the single next action a responder must take. For field
// steps, SubField narrows a structured field to the missing piece (a
// reward's chain, token, or value) so the channel can ask a smaller
// question, and the short ids address the field and its options over the
// narrow channel.
type NextStep struct {
	Kind       StepKind `json:"kind"`
	PropertyID string   `json:"propertyId,omitempty"`
	SubField   string   `json:"subField,omitempty"`
	// Message carries the configured completion text on readonlyAtEnd.
	Message string `json:"message,omitempty"`

	FieldShortID   string            `json:"fieldShortId,omitempty"`
	OptionShortIDs map[string]string `json:"optionShortIds,omitempty"`
}
