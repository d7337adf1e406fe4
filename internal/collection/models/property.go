package models

// PropertyType is the closed set of field types a collection schema may use.
// The type decides the wire shape of stored values, see values.go.
type PropertyType string

const (
	TypeShortText    PropertyType = "shortText"
	TypeLongText     PropertyType = "longText"
	TypeNumber       PropertyType = "number"
	TypeEmail        PropertyType = "email"
	TypeSingleURL    PropertyType = "singleURL"
	TypeMultiURL     PropertyType = "multiURL"
	TypeEthAddress   PropertyType = "ethAddress"
	TypeDate         PropertyType = "date"
	TypeSingleSelect PropertyType = "singleSelect"
	TypeMultiSelect  PropertyType = "multiSelect"
	TypeUser         PropertyType = "user"
	TypeUserArray    PropertyType = "user[]"
	TypeReward       PropertyType = "reward"
	TypeMilestone    PropertyType = "milestone"
	TypePayWall      PropertyType = "payWall"
)

// KnownType reports whether t is one of the supported property types.
func KnownType(t PropertyType) bool {
	switch t {
	case TypeShortText, TypeLongText, TypeNumber, TypeEmail, TypeSingleURL,
		TypeMultiURL, TypeEthAddress, TypeDate, TypeSingleSelect,
		TypeMultiSelect, TypeUser, TypeUserArray, TypeReward,
		TypeMilestone, TypePayWall:
		return true
	}
	return false
}

// Option is one selectable choice of a select or user property.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Comparator names a comparison usable in view conditions.
type Comparator string

const (
	ComparatorGreaterThanOrEqualTo Comparator = "greaterThanOrEqualTo"
	ComparatorLessThanOrEqualTo    Comparator = "lessThanOrEqualTo"
)

// Condition is a predicate over another property's current value. A field
// whose conditions are unmet is hidden: not required, not traversed.
type Condition struct {
	PropertyID string     `json:"propertyId"`
	Comparator Comparator `json:"comparator"`
	Value      any        `json:"value"`
}

// RewardOptions maps a chain id to the token options usable on that chain.
type RewardOptions map[string][]Option

// PayWallOptions configures the payment gate of a form.
type PayWallOptions struct {
	// Network maps chain id to accepted token options on that chain.
	Network  map[string][]Option `json:"network"`
	Receiver string              `json:"receiver"`
	Amount   float64             `json:"amount"`
}

// Property is one typed field definition within a collection schema.
// ID is stable and distinct from the display Name.
type Property struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Type             PropertyType `json:"type"`
	Description      string       `json:"description,omitempty"`
	IsPartOfFormView bool         `json:"isPartOfFormView"`
	Required         bool         `json:"required"`
	Immutable        bool         `json:"immutable"`

	Options         []Option        `json:"options,omitempty"`
	ViewConditions  []Condition     `json:"viewConditions,omitempty"`
	RewardOptions   RewardOptions   `json:"rewardOptions,omitempty"`
	MilestoneFields []string        `json:"milestoneFields,omitempty"`
	PayWallOptions  *PayWallOptions `json:"payWallOptions,omitempty"`
}

// OptionByValue returns the option with the given value.
func (p Property) OptionByValue(value string) (Option, bool) {
	for _, o := range p.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}
