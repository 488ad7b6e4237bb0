package spellslots

import "strings"

// CasterType determines the spell slot progression of a class.
type CasterType string

// Caster types
const (
	CasterFull  CasterType = "full"
	CasterHalf  CasterType = "half"
	CasterThird CasterType = "third"
	CasterPact  CasterType = "pact"
	CasterNone  CasterType = "none"
)

// divisor is the number of class levels per multiclass caster level, or 0
// for types that do not contribute.
func (t CasterType) divisor() int {
	switch t {
	case CasterFull:
		return 1
	case CasterHalf:
		return 2
	case CasterThird:
		return 3
	default:
		return 0
	}
}

var classCasterTypes = map[string]CasterType{
	"bard":      CasterFull,
	"cleric":    CasterFull,
	"druid":     CasterFull,
	"sorcerer":  CasterFull,
	"wizard":    CasterFull,
	"paladin":   CasterHalf,
	"ranger":    CasterHalf,
	"artificer": CasterThird,
	"warlock":   CasterPact,
}

// subclassCasters lists classes that only cast through one subclass.
var subclassCasters = map[string]string{
	"fighter": "eldritch knight",
	"rogue":   "arcane trickster",
}

// Classify returns the caster type for a class and subclass name. Matching
// is case-insensitive.
func Classify(className, subclassName string) CasterType {
	class := strings.ToLower(strings.TrimSpace(className))
	if t, ok := classCasterTypes[class]; ok {
		return t
	}
	if required, ok := subclassCasters[class]; ok {
		if strings.EqualFold(strings.TrimSpace(subclassName), required) {
			return CasterThird
		}
	}
	return CasterNone
}

// casterTable returns the single-class table for a caster type.
func casterTable(t CasterType) *[20]Slots {
	switch t {
	case CasterFull:
		return &fullCasterSlots
	case CasterHalf:
		return &halfCasterSlots
	case CasterThird:
		return &thirdCasterSlots
	default:
		return nil
	}
}
