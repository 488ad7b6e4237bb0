// Package sheet derives the remaining character sheet values: skills, saving
// throws, languages, proficiencies, defenses, hit points, speed and coins.
package sheet

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/ddb-converter/internal/engine/abilities"
	"github.com/KirkDiggler/ddb-converter/internal/engine/encumbrance"
	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
	"github.com/KirkDiggler/ddb-converter/internal/errors"
	"github.com/KirkDiggler/ddb-converter/internal/processors/features"
)

const (
	baseArmorClass     = 10
	defaultWalkSpeed   = 30
	passiveBase        = 10
	mediumArmorDexCap  = 2
	savingThrowsSuffix = ddb.SavingThrowSuffix
)

// Input to Build.
type Input struct {
	Character   *ddb.Character
	Scores      abilities.Results
	Feats       []features.Feat
	Encumbrance *encumbrance.Result
}

// Save is a saving throw line.
type Save struct {
	Ability    string
	Proficient bool
	Bonus      int
}

// Proficiency kinds.
const (
	KindArmor  = "armor"
	KindWeapon = "weapon"
	KindTool   = "tool"
	KindOther  = "other"
)

// Proficiency is an armor, weapon, tool or other proficiency.
type Proficiency struct {
	Name string
	Kind string
}

// Defenses are armor class and damage adjustments.
type Defenses struct {
	ArmorClass      int
	ArmorSource     string
	Resistances     []string
	Immunities      []string
	Vulnerabilities []string
}

// HitPoints of the character.
type HitPoints struct {
	Max       int
	Current   int
	Temporary int
	Wounds    int
}

// Coins held.
type Coins struct {
	PP, GP, EP, SP, CP int
}

// Speed in feet after encumbrance.
type Speed struct {
	Walk   int
	Fly    int
	Swim   int
	Climb  int
	Burrow int
	Base   int
}

// Sense such as darkvision.
type Sense struct {
	Name  string
	Range int
}

// Sheet is the derived sheet.
type Sheet struct {
	Level             int
	ProficiencyBonus  int
	Skills            []Skill
	Saves             []Save
	Languages         []string
	Proficiencies     []Proficiency
	Senses            []Sense
	Defenses          Defenses
	HitPoints         HitPoints
	Coins             Coins
	Speed             Speed
	Initiative        int
	PassivePerception int
	LuckPoints        int
}

// ProficiencyBonus is 2 at level 1, rising by one every four levels.
func ProficiencyBonus(level int) int {
	if level < 1 {
		level = 1
	}
	return 2 + (level-1)/4
}

// Build derives the sheet.
func Build(input *Input) (*Sheet, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	ch := input.Character
	scores := input.Scores
	mods := ch.Modifiers

	level := ch.TotalLevel()
	pb := ProficiencyBonus(level)
	out := &Sheet{
		Level:            level,
		ProficiencyBonus: pb,
	}

	for _, def := range Skills {
		prof := skillProficiency(mods, def.Slug)
		out.Skills = append(out.Skills, Skill{
			SkillDef:    def,
			Proficiency: prof,
			Bonus:       scores.Mod(def.Ability) + proficiencyBonusFor(prof, pb),
		})
	}

	for _, ability := range ddb.Abilities {
		proficient := mods.Has(ddb.ModifierTypeProficiency, ability+savingThrowsSuffix)
		bonus := scores.Mod(ability)
		if proficient {
			bonus += pb
		}
		out.Saves = append(out.Saves, Save{Ability: ability, Proficient: proficient, Bonus: bonus})
	}

	out.Languages = names(mods.Find(ddb.ModifierTypeLanguage, ""))
	out.Proficiencies = proficiencies(mods)
	out.Senses = senses(mods)
	out.Defenses = defenses(ch, scores)
	out.HitPoints = hitPoints(ch, scores, input.Feats, level)
	out.Coins = coins(ch.Currencies)
	out.Speed = speed(ch, input.Feats, input.Encumbrance)

	out.Initiative = scores.Mod(ddb.AbilityDexterity) +
		nonFeatBonus(mods, "initiative") +
		features.Total(input.Feats, features.EffectInitiative, level)

	perception := scores.Mod(ddb.AbilityWisdom)
	for _, s := range out.Skills {
		if s.Slug == "perception" {
			perception = s.Bonus
		}
	}
	out.PassivePerception = passiveBase + perception +
		nonFeatBonus(mods, "passive-perception") +
		features.Total(input.Feats, features.EffectPassivePerception, level)
	out.LuckPoints = features.Total(input.Feats, features.EffectLuckPoints, level)

	return out, nil
}

// nonFeatBonus sums bonus modifiers outside the feat bucket. Feat bonuses
// arrive through feature effects instead.
func nonFeatBonus(mods ddb.Modifiers, subType string) int {
	total := 0
	for _, bucket := range mods.Buckets() {
		if bucket.Source == ddb.SourceFeat {
			continue
		}
		for _, m := range bucket.Modifiers {
			if m.Type == ddb.ModifierTypeBonus && m.SubType == subType {
				total += m.Amount()
			}
		}
	}
	return total
}

// DisplayName returns the friendly subtype name or a title-cased slug.
func DisplayName(m ddb.Modifier) string {
	if m.FriendlySubtypeName != "" {
		return m.FriendlySubtypeName
	}
	return cases.Title(language.English).String(strings.ReplaceAll(m.SubType, "-", " "))
}

func names(mods []ddb.Modifier) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range mods {
		name := DisplayName(m)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

func proficiencies(mods ddb.Modifiers) []Proficiency {
	var out []Proficiency
	seen := make(map[string]bool)
	for _, m := range mods.Find(ddb.ModifierTypeProficiency, "") {
		if skillSlugs[m.SubType] || strings.HasSuffix(m.SubType, savingThrowsSuffix) {
			continue
		}
		name := DisplayName(m)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Proficiency{Name: name, Kind: proficiencyKind(m.SubType)})
	}
	return out
}

func proficiencyKind(slug string) string {
	switch {
	case strings.Contains(slug, "armor"), strings.Contains(slug, "shield"):
		return KindArmor
	case strings.Contains(slug, "weapon"):
		return KindWeapon
	case strings.Contains(slug, "tools"), strings.Contains(slug, "kit"),
		strings.Contains(slug, "supplies"), strings.Contains(slug, "instrument"),
		strings.HasSuffix(slug, "-set"):
		return KindTool
	default:
		return KindOther
	}
}

func senses(mods ddb.Modifiers) []Sense {
	var out []Sense
	best := make(map[string]int)
	order := []string{}
	for _, m := range mods.Find(ddb.ModifierTypeSense, "") {
		name := DisplayName(m)
		r := m.Amount()
		prev, ok := best[name]
		if !ok {
			order = append(order, name)
		}
		if !ok || r > prev {
			best[name] = r
		}
	}
	for _, name := range order {
		out = append(out, Sense{Name: name, Range: best[name]})
	}
	return out
}

func hitPoints(ch *ddb.Character, scores abilities.Results, feats []features.Feat, level int) HitPoints {
	var maxHP int
	if ch.OverrideHitPoints != nil {
		maxHP = *ch.OverrideHitPoints
	} else {
		maxHP = ch.BaseHitPoints + scores.Mod(ddb.AbilityConstitution)*level +
			features.Total(feats, features.EffectHitPoints, level) +
			nonFeatBonus(ch.Modifiers, "hit-points-per-level")*level
		if ch.BonusHitPoints != nil {
			maxHP += *ch.BonusHitPoints
		}
	}
	if maxHP < 1 {
		maxHP = 1
	}
	current := maxHP - ch.RemovedHitPoints
	if current < 0 {
		current = 0
	}
	return HitPoints{
		Max:       maxHP,
		Current:   current,
		Temporary: ch.TemporaryHitPoints,
		Wounds:    maxHP - current,
	}
}

func coins(c *ddb.Currencies) Coins {
	if c == nil {
		return Coins{}
	}
	return Coins{PP: c.PP, GP: c.GP, EP: c.EP, SP: c.SP, CP: c.CP}
}

func speed(ch *ddb.Character, feats []features.Feat, enc *encumbrance.Result) Speed {
	out := Speed{Walk: defaultWalkSpeed}
	if ch.Race != nil && ch.Race.WeightSpeeds != nil {
		n := ch.Race.WeightSpeeds.Normal
		if n.Walk > 0 {
			out.Walk = n.Walk
		}
		out.Fly, out.Swim, out.Climb, out.Burrow = n.Fly, n.Swim, n.Climb, n.Burrow
	}
	out.Walk += nonFeatBonus(ch.Modifiers, "speed") +
		features.Total(feats, features.EffectSpeed, ch.TotalLevel())
	out.Base = out.Walk

	if enc != nil {
		out.Walk -= enc.SpeedPenalty
		if enc.SpeedCap > 0 && out.Walk > enc.SpeedCap {
			out.Walk = enc.SpeedCap
		}
		if out.Walk < 0 {
			out.Walk = 0
		}
	}
	return out
}
