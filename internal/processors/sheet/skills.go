package sheet

import (
	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
)

// Proficiency levels as FG stores them.
const (
	NotProficient   = 0
	Proficient      = 1
	Expertise       = 2
	HalfProficiency = 3
)

// SkillDef pairs a skill with its ability.
type SkillDef struct {
	Slug    string
	Name    string
	Ability string
}

// Skills lists the 18 skills in sheet order.
var Skills = []SkillDef{
	{"acrobatics", "Acrobatics", ddb.AbilityDexterity},
	{"animal-handling", "Animal Handling", ddb.AbilityWisdom},
	{"arcana", "Arcana", ddb.AbilityIntelligence},
	{"athletics", "Athletics", ddb.AbilityStrength},
	{"deception", "Deception", ddb.AbilityCharisma},
	{"history", "History", ddb.AbilityIntelligence},
	{"insight", "Insight", ddb.AbilityWisdom},
	{"intimidation", "Intimidation", ddb.AbilityCharisma},
	{"investigation", "Investigation", ddb.AbilityIntelligence},
	{"medicine", "Medicine", ddb.AbilityWisdom},
	{"nature", "Nature", ddb.AbilityIntelligence},
	{"perception", "Perception", ddb.AbilityWisdom},
	{"performance", "Performance", ddb.AbilityCharisma},
	{"persuasion", "Persuasion", ddb.AbilityCharisma},
	{"religion", "Religion", ddb.AbilityIntelligence},
	{"sleight-of-hand", "Sleight of Hand", ddb.AbilityDexterity},
	{"stealth", "Stealth", ddb.AbilityDexterity},
	{"survival", "Survival", ddb.AbilityWisdom},
}

var skillSlugs = func() map[string]bool {
	m := make(map[string]bool, len(Skills))
	for _, s := range Skills {
		m[s.Slug] = true
	}
	return m
}()

// jackOfAllTrades is the subtype D&D Beyond uses for half proficiency on
// every ability check.
const jackOfAllTrades = "ability-checks"

// Skill is a computed skill line.
type Skill struct {
	SkillDef
	Proficiency int
	Bonus       int
}

// skillProficiency picks the strongest grant: expertise, then proficiency,
// then half proficiency.
func skillProficiency(mods ddb.Modifiers, slug string) int {
	switch {
	case mods.Has(ddb.ModifierTypeExpertise, slug):
		return Expertise
	case mods.Has(ddb.ModifierTypeProficiency, slug):
		return Proficient
	case mods.Has(ddb.ModifierTypeHalfProficiency, slug),
		mods.Has(ddb.ModifierTypeHalfProficiency, jackOfAllTrades):
		return HalfProficiency
	default:
		return NotProficient
	}
}

// proficiencyBonusFor scales the proficiency bonus by level.
func proficiencyBonusFor(level, pb int) int {
	switch level {
	case Proficient:
		return pb
	case Expertise:
		return pb * 2
	case HalfProficiency:
		return pb / 2
	default:
		return 0
	}
}
