// Package abilities aggregates ability scores from base stats, modifier
// bonuses and overrides.
package abilities

import (
	"strings"

	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
)

const defaultScore = 10

// Result is the computed score for one ability.
type Result struct {
	Ability  string
	Base     int
	Bonus    int
	Override *int
	Total    int
	Modifier int
	// Sources lists bonus contributions by modifier source, e.g. "race".
	Sources map[string]int
}

// Results indexes a full set of ability results.
type Results []Result

// Get returns the result for an ability. Unknown abilities yield a default
// score of 10.
func (r Results) Get(ability string) Result {
	for _, res := range r {
		if res.Ability == ability {
			return res
		}
	}
	return Result{Ability: ability, Base: defaultScore, Total: defaultScore}
}

// Score is shorthand for Get(ability).Total.
func (r Results) Score(ability string) int {
	return r.Get(ability).Total
}

// Mod is shorthand for Get(ability).Modifier.
func (r Results) Mod(ability string) int {
	return r.Get(ability).Modifier
}

// Modifier returns floor((score-10)/2), rounding toward negative infinity
// for odd scores below 10.
func Modifier(score int) int {
	diff := score - defaultScore
	if diff < 0 {
		return -((-diff + 1) / 2)
	}
	return diff / 2
}

// Compute returns the six ability results in stat id order.
//
// bonusStats is intentionally not read: D&D Beyond mirrors modifier bonuses
// into it on some characters and adding both would double count.
func Compute(character *ddb.Character) Results {
	base := statValues(character.Stats)
	overrides := statValues(character.OverrideStats)
	bonuses, sources := modifierBonuses(character.Modifiers)

	results := make(Results, 0, len(ddb.Abilities))
	for i, ability := range ddb.Abilities {
		statID := i + 1

		res := Result{
			Ability: ability,
			Base:    defaultScore,
			Bonus:   bonuses[ability],
			Sources: sources[ability],
		}
		if v, ok := base[statID]; ok {
			res.Base = v
		}
		if v, ok := overrides[statID]; ok {
			override := v
			res.Override = &override
			res.Total = override
		} else {
			res.Total = res.Base + res.Bonus
		}
		res.Modifier = Modifier(res.Total)

		results = append(results, res)
	}

	return results
}

// statValues maps stat id to value, skipping null values and ids outside 1..6.
func statValues(stats []ddb.Stat) map[int]int {
	values := make(map[int]int, len(stats))
	for _, stat := range stats {
		if stat.Value == nil {
			continue
		}
		if _, ok := ddb.AbilityForStatID(stat.ID); !ok {
			continue
		}
		values[stat.ID] = *stat.Value
	}
	return values
}

// modifierBonuses sums positive "<ability>-score" bonuses across sources.
func modifierBonuses(mods ddb.Modifiers) (map[string]int, map[string]map[string]int) {
	totals := make(map[string]int)
	sources := make(map[string]map[string]int)

	for _, bucket := range mods.Buckets() {
		for _, mod := range bucket.Modifiers {
			ability, ok := scoreAbility(mod)
			if !ok {
				continue
			}
			value, ok := mod.FixedValue.Int()
			if !ok || value <= 0 {
				continue
			}
			totals[ability] += value
			if sources[ability] == nil {
				sources[ability] = make(map[string]int)
			}
			sources[ability][bucket.Source] += value
		}
	}

	return totals, sources
}

func scoreAbility(mod ddb.Modifier) (string, bool) {
	if mod.Type != ddb.ModifierTypeBonus || !strings.HasSuffix(mod.SubType, ddb.ScoreSuffix) {
		return "", false
	}
	ability := strings.TrimSuffix(mod.SubType, ddb.ScoreSuffix)
	if _, ok := ddb.StatIDForAbility(ability); !ok {
		return "", false
	}
	return ability, true
}
