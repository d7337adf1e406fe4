package models

import "time"

// SybilConfig enables score-based sybil resistance on a form. Scores maps a
// provider id to its weight; a responder passes when their weighted score
// reaches Threshold.
type SybilConfig struct {
	Enabled   bool               `json:"enabled"`
	Scores    map[string]float64 `json:"scores,omitempty"`
	Threshold float64            `json:"threshold,omitempty"`
}

// FormMetadata carries the non-field gates and messages of a form view.
type FormMetadata struct {
	Captcha                  bool         `json:"captcha"`
	WalletConnectionRequired bool         `json:"walletConnectionRequired"`
	Sybil                    *SybilConfig `json:"sybil,omitempty"`
	// RoleGate lists circle role ids; a responder must hold at least one.
	RoleGate []string `json:"roleGate,omitempty"`
	Paywall  bool     `json:"paywall"`

	// Credential grants claimable on completion.
	GrantPoap    bool `json:"grantPoap"`
	MintKudos    bool `json:"mintKudos"`
	AirdropErc20 bool `json:"airdropErc20"`

	CompletionMessage string `json:"completionMessage,omitempty"`
}

// Collection is a user-defined schema plus form configuration. Records and
// drafts are stored against it by slug.
type Collection struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	CircleID    string `json:"circleId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Properties map[string]Property `json:"properties"`
	// PropertyOrder defines traversal and display order. It must stay a
	// permutation of the Properties keys across every structural edit.
	PropertyOrder []string `json:"propertyOrder"`

	Form FormMetadata `json:"formMetadata"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderConsistent reports whether PropertyOrder is a permutation of the
// Properties keys.
func (c *Collection) OrderConsistent() bool {
	if len(c.PropertyOrder) != len(c.Properties) {
		return false
	}
	seen := make(map[string]bool, len(c.PropertyOrder))
	for _, id := range c.PropertyOrder {
		if seen[id] {
			return false
		}
		if _, ok := c.Properties[id]; !ok {
			return false
		}
		seen[id] = true
	}
	return true
}
