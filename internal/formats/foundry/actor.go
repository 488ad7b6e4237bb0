// Package foundry renders a Foundry VTT dnd5e actor document.
package foundry

import (
	"strings"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/KirkDiggler/ddb-converter/internal/engine/abilities"
	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
	"github.com/KirkDiggler/ddb-converter/internal/errors"
	"github.com/KirkDiggler/ddb-converter/internal/processors/features"
	"github.com/KirkDiggler/ddb-converter/internal/processors/inventory"
	"github.com/KirkDiggler/ddb-converter/internal/processors/sheet"
	"github.com/KirkDiggler/ddb-converter/internal/xmlgen"
)

// ActorType is the Foundry document type for player characters.
const ActorType = "character"

// Input carries the computed character.
type Input struct {
	Character *ddb.Character
	Scores    abilities.Results
	Sheet     *sheet.Sheet
	Features  *features.Result
	Inventory *inventory.Result
}

var skillCodes = map[string]string{
	"acrobatics":      "acr",
	"animal-handling": "ani",
	"arcana":          "arc",
	"athletics":       "ath",
	"deception":       "dec",
	"history":         "his",
	"insight":         "ins",
	"intimidation":    "itm",
	"investigation":   "inv",
	"medicine":        "med",
	"nature":          "nat",
	"perception":      "prc",
	"performance":     "prf",
	"persuasion":      "per",
	"religion":        "rel",
	"sleight-of-hand": "slt",
	"stealth":         "ste",
	"survival":        "sur",
}

// skillValue maps sheet proficiency levels to Foundry multipliers.
func skillValue(prof int) float64 {
	switch prof {
	case sheet.Proficient:
		return 1
	case sheet.Expertise:
		return 2
	case sheet.HalfProficiency:
		return 0.5
	default:
		return 0
	}
}

// builder applies sjson sets and keeps the first error.
type builder struct {
	doc []byte
	err error
}

func (b *builder) set(path string, value any) {
	if b.err != nil {
		return
	}
	b.doc, b.err = sjson.SetBytes(b.doc, path, value)
}

// Render returns the actor as indented JSON.
func Render(in *Input) ([]byte, error) {
	if in == nil || in.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	ch := in.Character
	b := &builder{doc: []byte(`{}`)}

	b.set("name", ch.Name)
	b.set("type", ActorType)

	saves := make(map[string]bool)
	if in.Sheet != nil {
		for _, s := range in.Sheet.Saves {
			saves[s.Ability] = s.Proficient
		}
	}
	for _, ability := range ddb.Abilities {
		abbr := ddb.AbilityAbbreviations[ability]
		b.set("system.abilities."+abbr+".value", in.Scores.Score(ability))
		b.set("system.abilities."+abbr+".proficient", boolInt(saves[ability]))
	}

	b.set("system.details.race", ch.Race.DisplayName())
	b.set("system.details.background", ch.BackgroundName())
	if ch.AlignmentID != nil {
		b.set("system.details.alignment", ddb.Alignments[*ch.AlignmentID])
	}
	if ch.Traits != nil {
		b.set("system.details.trait", ch.Traits.PersonalityTraits)
		b.set("system.details.ideal", ch.Traits.Ideals)
		b.set("system.details.bond", ch.Traits.Bonds)
		b.set("system.details.flaw", ch.Traits.Flaws)
		b.set("system.details.appearance", ch.Traits.Appearance)
	}

	if sh := in.Sheet; sh != nil {
		setSheet(b, sh, in.Scores)
	}

	b.set("items", []any{})
	for _, item := range items(in) {
		b.set("items.-1", item)
	}

	if b.err != nil {
		return nil, errors.Wrap(b.err, "failed to build foundry actor")
	}
	return pretty.Pretty(b.doc), nil
}

func setSheet(b *builder, sh *sheet.Sheet, scores abilities.Results) {
	b.set("system.attributes.hp.value", sh.HitPoints.Current)
	b.set("system.attributes.hp.max", sh.HitPoints.Max)
	b.set("system.attributes.hp.temp", sh.HitPoints.Temporary)
	b.set("system.attributes.ac.calc", "flat")
	b.set("system.attributes.ac.flat", sh.Defenses.ArmorClass)
	b.set("system.attributes.init.bonus", sh.Initiative-scores.Mod(ddb.AbilityDexterity))
	b.set("system.attributes.prof", sh.ProficiencyBonus)

	b.set("system.attributes.movement.walk", sh.Speed.Walk)
	b.set("system.attributes.movement.fly", sh.Speed.Fly)
	b.set("system.attributes.movement.swim", sh.Speed.Swim)
	b.set("system.attributes.movement.climb", sh.Speed.Climb)
	b.set("system.attributes.movement.burrow", sh.Speed.Burrow)
	b.set("system.attributes.movement.units", "ft")

	for _, sense := range sh.Senses {
		b.set("system.attributes.senses."+senseKey(sense.Name), sense.Range)
	}

	for _, skill := range sh.Skills {
		if code, ok := skillCodes[skill.Slug]; ok {
			b.set("system.skills."+code+".value", skillValue(skill.Proficiency))
			b.set("system.skills."+code+".ability", ddb.AbilityAbbreviations[skill.Ability])
		}
	}

	langs, custom := LanguageCodes(sh.Languages)
	b.set("system.traits.languages.value", langs)
	b.set("system.traits.languages.custom", custom)

	for _, trait := range []struct {
		path  string
		names []string
	}{
		{"system.traits.dr", sh.Defenses.Resistances},
		{"system.traits.di", sh.Defenses.Immunities},
		{"system.traits.dv", sh.Defenses.Vulnerabilities},
	} {
		codes, other := DamageTypeCodes(trait.names)
		b.set(trait.path+".value", codes)
		b.set(trait.path+".custom", other)
	}

	b.set("system.currency.pp", sh.Coins.PP)
	b.set("system.currency.gp", sh.Coins.GP)
	b.set("system.currency.ep", sh.Coins.EP)
	b.set("system.currency.sp", sh.Coins.SP)
	b.set("system.currency.cp", sh.Coins.CP)
}

func senseKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func items(in *Input) []map[string]any {
	var out []map[string]any

	if in.Inventory != nil {
		for _, w := range in.Inventory.Weapons {
			if w.AttackType == inventory.AttackThrown {
				continue
			}
			out = append(out, map[string]any{
				"name": w.Name,
				"type": "weapon",
				"system": map[string]any{
					"equipped": w.Equipped,
					"damage": map[string]any{
						"parts": [][]any{{w.Damage.Dice + "+@mod", w.Damage.Type}},
					},
					"range": map[string]any{
						"value": w.Range,
						"long":  w.LongRange,
						"units": "ft",
					},
					"properties": w.Properties,
				},
			})
		}
	}

	if in.Features != nil {
		for _, f := range in.Features.Feats {
			out = append(out, featureItem(f.Name, "feat", f.Category, f.Description))
		}
		for _, f := range in.Features.ClassFeatures {
			out = append(out, featureItem(f.Name, "class", f.ClassName, f.Description))
		}
		for _, t := range in.Features.RacialTraits {
			out = append(out, featureItem(t.Name, "race", t.RaceName, t.Description))
		}
	}
	return out
}

func featureItem(name, kind, requirements, description string) map[string]any {
	return map[string]any{
		"name": name,
		"type": "feat",
		"system": map[string]any{
			"type":         map[string]any{"value": kind},
			"requirements": requirements,
			"description":  map[string]any{"value": xmlgen.PlainText(description)},
		},
	}
}
