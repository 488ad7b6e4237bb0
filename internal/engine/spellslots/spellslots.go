// Package spellslots computes 5e spell slots for single and multiclass
// characters, with Pact Magic tracked separately.
package spellslots

import (
	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
)

// Calculation paths reported in Debug.
const (
	PathNone        = "none"
	PathSingleClass = "single_class"
	PathMulticlass  = "multiclass"
)

const maxCasterLevel = 20

// Class is the caster-relevant view of one character class.
type Class struct {
	Name                string
	Subclass            string
	Level               int
	CasterType          CasterType
	SpellcastingAbility string
}

// Result holds both slot pools. Both are always present, possibly zero.
type Result struct {
	SpellSlots            Slots
	PactMagicSlots        Slots
	MulticlassCasterLevel int
	Debug                 Debug
}

// Debug explains how the result was reached.
type Debug struct {
	Path         string
	FullLevels   int
	HalfLevels   int
	ThirdLevels  int
	WarlockLevel int
	Contributing []string
}

// ClassesFrom converts character classes, classifying each one.
func ClassesFrom(classes []ddb.Class) []Class {
	out := make([]Class, 0, len(classes))
	for _, c := range classes {
		ability := ""
		if c.Definition.SpellCastingAbilityID != nil {
			ability, _ = ddb.AbilityForStatID(*c.Definition.SpellCastingAbilityID)
		}
		out = append(out, Class{
			Name:                c.Definition.Name,
			Subclass:            c.SubclassName(),
			Level:               c.Level,
			CasterType:          Classify(c.Definition.Name, c.SubclassName()),
			SpellcastingAbility: ability,
		})
	}
	return out
}

// Calculate computes shared spell slots and Pact Magic slots.
//
// Half and third caster levels are pooled before rounding down, so a
// paladin 3 / ranger 3 contributes floor(6/2) = 3 caster levels.
func Calculate(classes []Class) Result {
	var debug Debug
	var casters []Class

	for _, c := range classes {
		switch c.CasterType {
		case CasterFull:
			debug.FullLevels += c.Level
		case CasterHalf:
			debug.HalfLevels += c.Level
		case CasterThird:
			debug.ThirdLevels += c.Level
		case CasterPact:
			debug.WarlockLevel += c.Level
			continue
		default:
			continue
		}
		casters = append(casters, c)
		debug.Contributing = append(debug.Contributing, c.Name)
	}

	casterLevel := debug.FullLevels +
		debug.HalfLevels/CasterHalf.divisor() +
		debug.ThirdLevels/CasterThird.divisor()
	casterLevel = clamp(casterLevel, 0, maxCasterLevel)

	result := Result{
		MulticlassCasterLevel: casterLevel,
		PactMagicSlots:        pactSlots(debug.WarlockLevel),
	}

	switch len(casters) {
	case 0:
		debug.Path = PathNone
	case 1:
		debug.Path = PathSingleClass
		result.SpellSlots = lookup(casterTable(casters[0].CasterType), casters[0].Level)
	default:
		debug.Path = PathMulticlass
		result.SpellSlots = lookup(&fullCasterSlots, casterLevel)
	}

	result.Debug = debug
	return result
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
