// Package encumbrance computes carrying capacity and encumbrance tiers.
//
// Every threshold is scaled by the Powerful Build multiplier. The capacity
// rule grades weight against the carrying capacity:
//
//	unencumbered        weight <= normal (15 x STR)
//	encumbered          weight <= push   (30 x STR)   speed -10
//	heavily_encumbered  weight <= lift   (30 x STR)   speed -20
//	overloaded          weight >  lift                speed capped at 5 ft
//
// Push and lift are equal in 5e, so the capacity rule never reports
// heavily_encumbered. The variant rule uses smaller steps:
//
//	unencumbered        weight <= 5 x STR
//	encumbered          weight <= 10 x STR   speed -10
//	heavily_encumbered  weight <= 15 x STR   speed -20
//	overloaded          weight >  15 x STR   speed capped at 5 ft
package encumbrance

import (
	"math"
	"strings"

	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
)

// Level is an encumbrance tier.
type Level string

// Encumbrance tiers
const (
	Unencumbered      Level = "unencumbered"
	Encumbered        Level = "encumbered"
	HeavilyEncumbered Level = "heavily_encumbered"
	Overloaded        Level = "overloaded"
)

const (
	normalFactor       = 15
	pushFactor         = 30
	powerfulBuildScale = 2

	variantEncumberedFactor = 5
	variantHeavyFactor      = 10

	encumberedPenalty = 10
	heavyPenalty      = 20
	overloadedSpeed   = 5
)

// Rule selects how weight maps to tiers.
type Rule string

// Encumbrance rules
const (
	RuleCapacity Rule = "capacity"
	RuleVariant  Rule = "variant"
)

// Strength is the input derived from the character's Strength score.
type Strength struct {
	Score         int
	PowerfulBuild bool
}

func (s Strength) scaled(factor int) float64 {
	v := s.Score * factor
	if s.PowerfulBuild {
		v *= powerfulBuildScale
	}
	return float64(v)
}

// Capacity holds carrying limits in pounds.
type Capacity struct {
	Normal float64
	Push   float64
	Lift   float64
}

// Item is one node of the containment tree as seen by the weight sum.
type Item struct {
	Name               string
	Weight             float64
	Quantity           int
	ContentsMultiplier float64
	Contents           []Item
}

// Result is the encumbrance outcome.
type Result struct {
	TotalWeight      float64
	CarryingCapacity Capacity
	Level            Level
	// SpeedPenalty is subtracted from walking speed.
	SpeedPenalty int
	// SpeedCap is the maximum walking speed, 0 when uncapped.
	SpeedCap int
	// EncumberedAt and HeavilyEncumberedAt are the upper bounds of the
	// unencumbered and encumbered tiers.
	EncumberedAt        float64
	HeavilyEncumberedAt float64
}

// Calculate sums the weight of the containment tree and classifies it with
// the capacity rule.
func Calculate(strength Strength, roots []Item) Result {
	return CalculateWithRule(RuleCapacity, strength, roots)
}

// CalculateWithRule sums the weight of the containment tree and classifies it
// with rule. Unknown rules fall back to the capacity rule.
func CalculateWithRule(rule Rule, strength Strength, roots []Item) Result {
	total := 0.0
	for _, item := range roots {
		total += itemWeight(item, 1)
	}
	total = math.Round(total*100) / 100

	res := Result{
		TotalWeight: total,
		CarryingCapacity: Capacity{
			Normal: strength.scaled(normalFactor),
			Push:   strength.scaled(pushFactor),
			Lift:   strength.scaled(pushFactor),
		},
	}

	overloadedAt := res.CarryingCapacity.Lift
	if rule == RuleVariant {
		res.EncumberedAt = strength.scaled(variantEncumberedFactor)
		res.HeavilyEncumberedAt = strength.scaled(variantHeavyFactor)
		overloadedAt = res.CarryingCapacity.Normal
	} else {
		res.EncumberedAt = res.CarryingCapacity.Normal
		res.HeavilyEncumberedAt = res.CarryingCapacity.Push
	}

	switch {
	case total <= res.EncumberedAt:
		res.Level = Unencumbered
	case total <= res.HeavilyEncumberedAt:
		res.Level = Encumbered
		res.SpeedPenalty = encumberedPenalty
	case total <= overloadedAt:
		res.Level = HeavilyEncumbered
		res.SpeedPenalty = heavyPenalty
	default:
		res.Level = Overloaded
		res.SpeedPenalty = heavyPenalty
		res.SpeedCap = overloadedSpeed
	}

	return res
}

// itemWeight applies factor to the item itself and factor times the
// container multiplier to its contents, so anything below a magic
// container weighs nothing.
func itemWeight(item Item, factor float64) float64 {
	qty := item.Quantity
	if qty <= 0 {
		qty = 1
	}
	weight := item.Weight * float64(qty) * factor

	childFactor := factor * item.ContentsMultiplier
	for _, child := range item.Contents {
		weight += itemWeight(child, childFactor)
	}
	return weight
}

// HasPowerfulBuild reports whether the race grants Powerful Build.
func HasPowerfulBuild(character *ddb.Character) bool {
	if character.Race == nil {
		return false
	}
	for _, trait := range character.Race.RacialTraits {
		if strings.EqualFold(strings.TrimSpace(trait.Definition.Name), "Powerful Build") {
			return true
		}
	}
	return false
}
