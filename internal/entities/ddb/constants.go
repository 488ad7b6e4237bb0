package ddb

// Ability names in stat id order. D&D Beyond numbers stats 1 (Strength)
// through 6 (Charisma).
const (
	AbilityStrength     = "strength"
	AbilityDexterity    = "dexterity"
	AbilityConstitution = "constitution"
	AbilityIntelligence = "intelligence"
	AbilityWisdom       = "wisdom"
	AbilityCharisma     = "charisma"
)

// Abilities lists the six abilities in stat id order.
var Abilities = []string{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// AbilityAbbreviations maps ability names to their three-letter form.
var AbilityAbbreviations = map[string]string{
	AbilityStrength:     "str",
	AbilityDexterity:    "dex",
	AbilityConstitution: "con",
	AbilityIntelligence: "int",
	AbilityWisdom:       "wis",
	AbilityCharisma:     "cha",
}

// AbilityForStatID returns the ability for a stat id.
func AbilityForStatID(id int) (string, bool) {
	if id < 1 || id > len(Abilities) {
		return "", false
	}
	return Abilities[id-1], true
}

// StatIDForAbility is the inverse of AbilityForStatID.
func StatIDForAbility(ability string) (int, bool) {
	for i, name := range Abilities {
		if name == ability {
			return i + 1, true
		}
	}
	return 0, false
}

// Alignments by alignmentId.
var Alignments = map[int]string{
	1: "Lawful Good",
	2: "Neutral Good",
	3: "Chaotic Good",
	4: "Lawful Neutral",
	5: "Neutral",
	6: "Chaotic Neutral",
	7: "Lawful Evil",
	8: "Neutral Evil",
	9: "Chaotic Evil",
}
