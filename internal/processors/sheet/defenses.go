package sheet

import (
	"strings"

	"github.com/KirkDiggler/ddb-converter/internal/engine/abilities"
	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
)

// Armor class sources.
const (
	ACSourceUnarmored        = "unarmored"
	ACSourceArmor            = "armor"
	ACSourceUnarmoredDefense = "unarmored defense"
)

func defenses(ch *ddb.Character, scores abilities.Results) Defenses {
	ac, source := armorClass(ch, scores)
	return Defenses{
		ArmorClass:      ac,
		ArmorSource:     source,
		Resistances:     names(ch.Modifiers.Find(ddb.ModifierTypeResistance, "")),
		Immunities:      names(ch.Modifiers.Find(ddb.ModifierTypeImmunity, "")),
		Vulnerabilities: names(ch.Modifiers.Find(ddb.ModifierTypeVulnerability, "")),
	}
}

// armorClass uses the best equipped body armor plus an equipped shield;
// without armor it falls back to 10 + Dex, or a class's Unarmored Defense.
func armorClass(ch *ddb.Character, scores abilities.Results) (int, string) {
	dex := scores.Mod(ddb.AbilityDexterity)

	var (
		body      *ddb.ItemDefinition
		shieldAC  int
		hasShield bool
	)
	for i := range ch.Inventory {
		it := &ch.Inventory[i]
		if !it.Equipped || it.Definition.FilterType != ddb.FilterTypeArmor {
			continue
		}
		def := &it.Definition
		switch def.ArmorTypeID {
		case ddb.ArmorTypeShield:
			hasShield = true
			if def.ArmorClass > shieldAC {
				shieldAC = def.ArmorClass
			}
		case ddb.ArmorTypeLight, ddb.ArmorTypeMedium, ddb.ArmorTypeHeavy:
			if body == nil || def.ArmorClass > body.ArmorClass {
				body = def
			}
		}
	}

	var ac int
	source := ACSourceUnarmored
	switch {
	case body != nil:
		source = ACSourceArmor
		ac = body.ArmorClass
		switch body.ArmorTypeID {
		case ddb.ArmorTypeLight:
			ac += dex
		case ddb.ArmorTypeMedium:
			ac += min(dex, mediumArmorDexCap)
		}
		ac += totalBonus(ch.Modifiers, "armored-armor-class")
	default:
		ac = baseArmorClass + dex
		if extra, ok := unarmoredDefense(ch, scores, hasShield); ok {
			ac += extra
			source = ACSourceUnarmoredDefense
		}
	}

	ac += shieldAC + totalBonus(ch.Modifiers, "armor-class")
	return ac, source
}

// totalBonus sums matching bonus modifiers from every bucket.
func totalBonus(mods ddb.Modifiers, subType string) int {
	total := 0
	for _, m := range mods.Find(ddb.ModifierTypeBonus, subType) {
		total += m.Amount()
	}
	return total
}

// unarmoredDefense returns the extra ability modifier granted by Barbarian
// (Constitution) or Monk (Wisdom, no shield).
func unarmoredDefense(ch *ddb.Character, scores abilities.Results, hasShield bool) (int, bool) {
	best, found := 0, false
	for _, class := range ch.Classes {
		var bonus int
		switch strings.ToLower(class.Definition.Name) {
		case "barbarian":
			bonus = scores.Mod(ddb.AbilityConstitution)
		case "monk":
			if hasShield {
				continue
			}
			bonus = scores.Mod(ddb.AbilityWisdom)
		default:
			continue
		}
		if !found || bonus > best {
			best, found = bonus, true
		}
	}
	return best, found
}
