package ddb

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Modifier types and subtype suffixes read by the engines.
const (
	ModifierTypeBonus            = "bonus"
	ModifierTypeSet              = "set"
	ModifierTypeProficiency      = "proficiency"
	ModifierTypeExpertise        = "expertise"
	ModifierTypeHalfProficiency  = "half-proficiency"
	ModifierTypeLanguage         = "language"
	ModifierTypeResistance       = "resistance"
	ModifierTypeImmunity         = "immunity"
	ModifierTypeVulnerability    = "vulnerability"
	ModifierTypeSense            = "sense"
	ModifierTypeCarryingCapacity = "carrying-capacity"
	ScoreSuffix                  = "-score"
	SavingThrowSuffix            = "-saving-throws"
)

// Modifier is a single grant from a race, class, background, feat or item.
type Modifier struct {
	Type                string    `json:"type"`
	SubType             string    `json:"subType"`
	FixedValue          FlexValue `json:"fixedValue"`
	Value               FlexValue `json:"value"`
	FriendlyTypeName    string    `json:"friendlyTypeName,omitempty"`
	FriendlySubtypeName string    `json:"friendlySubtypeName,omitempty"`
	ComponentID         int64     `json:"componentId"`
	ComponentTypeID     int64     `json:"componentTypeId"`
}

// Amount returns fixedValue, falling back to value.
func (m Modifier) Amount() int {
	if n, ok := m.FixedValue.Int(); ok {
		return n
	}
	n, _ := m.Value.Int()
	return n
}

// Modifiers groups modifiers by the source that granted them.
type Modifiers struct {
	Race       []Modifier `json:"race"`
	Class      []Modifier `json:"class"`
	Background []Modifier `json:"background"`
	Item       []Modifier `json:"item"`
	Feat       []Modifier `json:"feat"`
	Condition  []Modifier `json:"condition"`
}

// Source names used in Buckets.
const (
	SourceRace       = "race"
	SourceClass      = "class"
	SourceBackground = "background"
	SourceFeat       = "feat"
	SourceItem       = "item"
)

// Bucket is the modifier list of one source.
type Bucket struct {
	Source    string
	Modifiers []Modifier
}

// Buckets returns the sources that contribute to ability scores and
// proficiencies, in a stable order.
func (m Modifiers) Buckets() []Bucket {
	return []Bucket{
		{Source: SourceRace, Modifiers: m.Race},
		{Source: SourceClass, Modifiers: m.Class},
		{Source: SourceBackground, Modifiers: m.Background},
		{Source: SourceFeat, Modifiers: m.Feat},
		{Source: SourceItem, Modifiers: m.Item},
	}
}

// All flattens every bucket.
func (m Modifiers) All() []Modifier {
	var all []Modifier
	for _, b := range m.Buckets() {
		all = append(all, b.Modifiers...)
	}
	return all
}

// Find returns all modifiers matching type and subtype. An empty subType
// matches any subtype.
func (m Modifiers) Find(modType, subType string) []Modifier {
	var found []Modifier
	for _, mod := range m.All() {
		if mod.Type != modType {
			continue
		}
		if subType != "" && mod.SubType != subType {
			continue
		}
		found = append(found, mod)
	}
	return found
}

// Has reports whether any modifier matches type and subtype.
func (m Modifiers) Has(modType, subType string) bool {
	return len(m.Find(modType, subType)) > 0
}

// FlexValue keeps a raw JSON scalar that D&D Beyond may send as a number,
// a numeric string or null.
type FlexValue struct {
	raw json.RawMessage
}

// NewFlexValue builds a FlexValue from raw JSON, mostly for tests.
func NewFlexValue(raw string) FlexValue {
	return FlexValue{raw: json.RawMessage(raw)}
}

// UnmarshalJSON stores the raw bytes.
func (f *FlexValue) UnmarshalJSON(data []byte) error {
	f.raw = append(f.raw[:0], data...)
	return nil
}

// MarshalJSON writes the raw bytes back, or null.
func (f FlexValue) MarshalJSON() ([]byte, error) {
	if len(f.raw) == 0 {
		return []byte("null"), nil
	}
	return f.raw, nil
}

// IsNull reports whether the value is absent or null.
func (f FlexValue) IsNull() bool {
	trimmed := bytes.TrimSpace(f.raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Int parses the value as an integer, truncating fractions. ok is false for
// null, booleans, objects and strings that do not parse as numbers.
func (f FlexValue) Int() (int, bool) {
	if f.IsNull() {
		return 0, false
	}

	var num float64
	if err := json.Unmarshal(f.raw, &num); err == nil {
		return truncate(num)
	}

	var str string
	if err := json.Unmarshal(f.raw, &str); err != nil {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, false
	}
	return truncate(parsed)
}

func truncate(v float64) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return int(math.Trunc(v)), true
}
