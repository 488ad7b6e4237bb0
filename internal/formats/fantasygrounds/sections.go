package fantasygrounds

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/ddb-converter/internal/engine/spellslots"
	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
	"github.com/KirkDiggler/ddb-converter/internal/processors/sheet"
	"github.com/KirkDiggler/ddb-converter/internal/xmlgen"
)

// FeatIDStart is the first id used in featlist.
const FeatIDStart = 2000

func renderHeader(w *xmlgen.Writer, in *Input) error {
	ch := in.Character
	w.String("name", ch.Name)
	w.String("race", ch.Race.DisplayName())
	w.String("background", ch.BackgroundName())
	if ch.AlignmentID != nil {
		w.String("alignment", ddb.Alignments[*ch.AlignmentID])
	}
	w.String("gender", ch.Gender)
	w.String("deity", ch.Faith)
	w.String("height", ch.Height)
	if ch.Age != nil {
		w.String("age", strconv.Itoa(*ch.Age))
	}
	if ch.Weight != nil {
		w.String("weight", strconv.Itoa(*ch.Weight))
	}
	w.Number("level", ch.TotalLevel())

	if in.Sheet == nil {
		return nil
	}
	sh := in.Sheet
	w.Number("profbonus", sh.ProficiencyBonus)
	w.Open("hp")
	w.Number("total", sh.HitPoints.Max)
	w.Number("wounds", sh.HitPoints.Wounds)
	w.Number("temporary", sh.HitPoints.Temporary)
	w.Close("hp")
	w.Open("initiative")
	w.Number("total", sh.Initiative)
	w.Close("initiative")
	w.Number("perception", sh.PassivePerception)
	w.Open("speed")
	w.Number("base", sh.Speed.Base)
	w.Number("total", sh.Speed.Walk)
	w.String("special", specialSpeeds(sh.Speed))
	w.Close("speed")
	w.String("senses", senses(sh.Senses))
	return nil
}

func specialSpeeds(s sheet.Speed) string {
	var parts []string
	add := func(name string, v int) {
		if v > 0 {
			parts = append(parts, fmt.Sprintf("%s %d ft.", name, v))
		}
	}
	add("Fly", s.Fly)
	add("Swim", s.Swim)
	add("Climb", s.Climb)
	add("Burrow", s.Burrow)
	return strings.Join(parts, ", ")
}

func senses(list []sheet.Sense) string {
	parts := make([]string, 0, len(list))
	for _, s := range list {
		parts = append(parts, fmt.Sprintf("%s %d", s.Name, s.Range))
	}
	return strings.Join(parts, ", ")
}

func renderAbilities(w *xmlgen.Writer, in *Input) error {
	if len(in.Scores) == 0 {
		return missing("ability scores")
	}
	saves := make(map[string]sheet.Save)
	if in.Sheet != nil {
		for _, s := range in.Sheet.Saves {
			saves[s.Ability] = s
		}
	}

	w.Open("abilities")
	for _, ability := range ddb.Abilities {
		res := in.Scores.Get(ability)
		w.Open(ability)
		w.Number("score", res.Total)
		w.Number("bonus", res.Modifier)
		if save, ok := saves[ability]; ok {
			w.Number("save", save.Bonus)
			w.Bool("saveprof", save.Proficient)
		}
		w.Close(ability)
	}
	w.Close("abilities")
	return nil
}

func renderClasses(w *xmlgen.Writer, in *Input) error {
	w.Open("classes")
	for i, class := range in.Character.Classes {
		id := i + 1
		w.OpenID(id)
		w.String("name", class.Definition.Name)
		w.Number("level", class.Level)
		if class.Definition.HitDice > 0 {
			w.Dice("hddie", "1d"+strconv.Itoa(class.Definition.HitDice))
		}
		if sub := class.SubclassName(); sub != "" {
			w.String("specialization", sub)
		}
		w.String("castertype", string(spellslots.Classify(class.Definition.Name, class.SubclassName())))
		w.CloseID(id)
	}
	w.Close("classes")
	return nil
}

func renderCoins(w *xmlgen.Writer, in *Input) error {
	if in.Sheet == nil {
		return missing("sheet")
	}
	c := in.Sheet.Coins
	coins := []struct {
		name   string
		amount int
	}{
		{"PP", c.PP}, {"GP", c.GP}, {"EP", c.EP}, {"SP", c.SP}, {"CP", c.CP},
	}

	w.Open("coins")
	for i, coin := range coins {
		id := i + 1
		w.OpenID(id)
		w.String("name", coin.name)
		w.Number("amount", coin.amount)
		w.CloseID(id)
	}
	w.Close("coins")
	return nil
}

func renderDefenses(w *xmlgen.Writer, in *Input) error {
	if in.Sheet == nil {
		return missing("sheet")
	}
	d := in.Sheet.Defenses

	w.Open("defenses")
	w.Open("ac")
	w.Number("total", d.ArmorClass)
	w.String("source", d.ArmorSource)
	w.Close("ac")
	w.String("resistances", strings.Join(d.Resistances, ", "))
	w.String("immunities", strings.Join(d.Immunities, ", "))
	w.String("vulnerabilities", strings.Join(d.Vulnerabilities, ", "))
	w.Close("defenses")
	return nil
}

func renderEncumbrance(w *xmlgen.Writer, in *Input) error {
	if in.Encumbrance == nil {
		return missing("encumbrance")
	}
	e := in.Encumbrance

	w.Open("encumbrance")
	w.Decimal("load", e.TotalWeight)
	w.Decimal("max", e.CarryingCapacity.Normal)
	w.Decimal("encumbered", e.EncumberedAt)
	w.Decimal("encumberedheavy", e.HeavilyEncumberedAt)
	w.Decimal("liftpushdrag", e.CarryingCapacity.Push)
	w.String("level", string(e.Level))
	w.Close("encumbrance")
	return nil
}

func renderFeats(w *xmlgen.Writer, in *Input) error {
	if in.Features == nil {
		return missing("features")
	}

	w.Open("featlist")
	for i, f := range in.Features.Feats {
		id := FeatIDStart + i
		w.OpenID(id)
		w.String("name", f.Name)
		w.String("source", f.Category)
		w.Description("text", f.Description)
		w.CloseID(id)
	}
	w.Close("featlist")
	return nil
}

func renderFeatures(w *xmlgen.Writer, in *Input) error {
	if in.Features == nil {
		return missing("features")
	}

	w.Open("featurelist")
	for i, f := range in.Features.ClassFeatures {
		id := i + 1
		w.OpenID(id)
		w.String("name", f.Name)
		w.String("source", f.ClassName)
		w.Number("level", f.Level)
		w.Description("text", f.Description)
		w.CloseID(id)
	}
	w.Close("featurelist")
	return nil
}

func renderInventory(w *xmlgen.Writer, in *Input) error {
	if in.Inventory == nil {
		return missing("inventory")
	}
	w.Raw(in.Inventory.XML.Inventory)
	return nil
}

func renderWeapons(w *xmlgen.Writer, in *Input) error {
	if in.Inventory == nil {
		return missing("inventory")
	}
	w.Raw(in.Inventory.XML.Weapons)
	return nil
}

func renderLanguages(w *xmlgen.Writer, in *Input) error {
	if in.Sheet == nil {
		return missing("sheet")
	}

	w.Open("languagelist")
	for i, lang := range in.Sheet.Languages {
		id := i + 1
		w.OpenID(id)
		w.String("name", lang)
		w.CloseID(id)
	}
	w.Close("languagelist")
	return nil
}

func renderPowers(w *xmlgen.Writer, in *Input) error {
	if in.Spells == nil {
		return missing("spell slots")
	}

	w.Open("powergrouplist")
	id := 0
	for _, class := range spellslots.ClassesFrom(in.Character.Classes) {
		if class.CasterType == spellslots.CasterNone {
			continue
		}
		id++
		w.OpenID(id)
		w.String("name", fmt.Sprintf("Spells (%s)", class.Name))
		w.String("stat", class.SpellcastingAbility)
		w.String("castertype", casterUsage(class.CasterType))
		w.CloseID(id)
	}
	w.Close("powergrouplist")

	w.Open("powermeta")
	for level := 1; level <= spellslots.MaxSlotLevel; level++ {
		name := "pactmagicslots" + strconv.Itoa(level)
		w.Open(name)
		w.Number("max", in.Spells.PactMagicSlots.At(level))
		w.Close(name)
	}
	for level := 1; level <= spellslots.MaxSlotLevel; level++ {
		name := "spellslots" + strconv.Itoa(level)
		w.Open(name)
		w.Number("max", in.Spells.SpellSlots.At(level))
		w.Close(name)
	}
	w.Close("powermeta")
	return nil
}

func casterUsage(t spellslots.CasterType) string {
	if t == spellslots.CasterPact {
		return "pactmagic"
	}
	return "memorization"
}

func renderSkills(w *xmlgen.Writer, in *Input) error {
	if in.Sheet == nil {
		return missing("sheet")
	}

	w.Open("skilllist")
	for i, s := range in.Sheet.Skills {
		id := i + 1
		w.OpenID(id)
		w.String("name", s.Name)
		w.String("stat", s.Ability)
		w.Number("prof", s.Proficiency)
		w.Number("total", s.Bonus)
		w.CloseID(id)
	}
	w.Close("skilllist")
	return nil
}

var proficiencyLabels = map[string]string{
	sheet.KindArmor:  "Armor",
	sheet.KindWeapon: "Weapons",
	sheet.KindTool:   "Tools",
}

func renderProficiencies(w *xmlgen.Writer, in *Input) error {
	if in.Sheet == nil {
		return missing("sheet")
	}

	w.Open("proficiencylist")
	for i, p := range in.Sheet.Proficiencies {
		id := i + 1
		name := p.Name
		if label, ok := proficiencyLabels[p.Kind]; ok {
			name = label + ": " + p.Name
		}
		w.OpenID(id)
		w.String("name", name)
		w.CloseID(id)
	}
	w.Close("proficiencylist")
	return nil
}

func renderTraits(w *xmlgen.Writer, in *Input) error {
	if in.Features == nil {
		return missing("features")
	}

	w.Open("traitlist")
	for i, t := range in.Features.RacialTraits {
		id := i + 1
		w.OpenID(id)
		w.String("name", t.Name)
		w.String("source", t.RaceName)
		w.String("type", "racial")
		w.Description("text", t.Description)
		w.CloseID(id)
	}
	w.Close("traitlist")
	return nil
}

func renderPersonality(w *xmlgen.Writer, in *Input) error {
	p := in.Character.Traits
	if p == nil {
		return nil
	}
	w.String("personalitytraits", p.PersonalityTraits)
	w.String("ideals", p.Ideals)
	w.String("bonds", p.Bonds)
	w.String("flaws", p.Flaws)
	w.String("appearance", p.Appearance)
	return nil
}
