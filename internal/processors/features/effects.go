package features

import (
	"strings"

	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
)

// EffectKind names the statistic a feat changes.
type EffectKind string

// Effect kinds.
const (
	EffectInitiative        EffectKind = "initiative"
	EffectHitPoints         EffectKind = "hit_points"
	EffectSpeed             EffectKind = "speed"
	EffectPassivePerception EffectKind = "passive_perception"
	EffectLuckPoints        EffectKind = "luck_points"
	EffectAbilityScore      EffectKind = "ability_score"
	EffectOther             EffectKind = "other"
)

// EffectOrigin tells how an effect was derived.
type EffectOrigin string

// Effect origins.
const (
	OriginStructured EffectOrigin = "structured"
	OriginHeuristic  EffectOrigin = "heuristic"
)

// Effect is one mechanical change granted by a feat.
type Effect struct {
	Kind     EffectKind
	Value    int
	PerLevel bool
	// Target is the ability for EffectAbilityScore and the modifier subtype
	// for EffectOther.
	Target string
	Origin EffectOrigin
}

var subTypeKinds = map[string]EffectKind{
	"initiative":           EffectInitiative,
	"hit-points":           EffectHitPoints,
	"hit-points-per-level": EffectHitPoints,
	"speed":                EffectSpeed,
	"speed-walking":        EffectSpeed,
	"unarmored-movement":   EffectSpeed,
	"passive-perception":   EffectPassivePerception,
}

// StructuredEffects reads bonus modifiers owned by the feat.
func StructuredEffects(featID int64, modifiers []ddb.Modifier) []Effect {
	var out []Effect
	for _, m := range modifiers {
		if m.ComponentID != featID || m.Type != ddb.ModifierTypeBonus {
			continue
		}

		effect := Effect{
			Value:  m.Amount(),
			Origin: OriginStructured,
		}
		switch {
		case strings.HasSuffix(m.SubType, ddb.ScoreSuffix):
			effect.Kind = EffectAbilityScore
			effect.Target = strings.TrimSuffix(m.SubType, ddb.ScoreSuffix)
		default:
			kind, ok := subTypeKinds[m.SubType]
			if !ok {
				kind = EffectOther
				effect.Target = m.SubType
			}
			effect.Kind = kind
			effect.PerLevel = m.SubType == "hit-points-per-level"
		}
		out = append(out, effect)
	}
	return out
}

type heuristic struct {
	keyword string
	effect  Effect
}

// heuristics apply only when a feat has no structured effects. Matching is
// by feat name, so renamed or homebrew feats will not match.
var heuristics = []heuristic{
	{"alert", Effect{Kind: EffectInitiative, Value: 5}},
	{"tough", Effect{Kind: EffectHitPoints, Value: 2, PerLevel: true}},
	{"mobile", Effect{Kind: EffectSpeed, Value: 10}},
	{"observant", Effect{Kind: EffectPassivePerception, Value: 5}},
	{"lucky", Effect{Kind: EffectLuckPoints, Value: 3}},
}

// HeuristicEffects derives effects from well-known feat names.
func HeuristicEffects(name string) []Effect {
	key := normalizeName(name)
	for _, h := range heuristics {
		if key == h.keyword {
			effect := h.effect
			effect.Origin = OriginHeuristic
			return []Effect{effect}
		}
	}
	return nil
}

// Total sums effects of a kind, multiplying per-level effects by level.
func Total(feats []Feat, kind EffectKind, level int) int {
	total := 0
	for _, f := range feats {
		for _, e := range f.Effects {
			if e.Kind != kind {
				continue
			}
			if e.PerLevel {
				total += e.Value * level
			} else {
				total += e.Value
			}
		}
	}
	return total
}
