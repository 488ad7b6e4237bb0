package abilities_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ddb-converter/internal/engine/abilities"
	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
)

type AbilitiesTestSuite struct {
	suite.Suite
}

func TestAbilitiesSuite(t *testing.T) {
	suite.Run(t, new(AbilitiesTestSuite))
}

func intPtr(v int) *int { return &v }

func bonus(subType, raw string) ddb.Modifier {
	return ddb.Modifier{Type: ddb.ModifierTypeBonus, SubType: subType, FixedValue: ddb.NewFlexValue(raw)}
}

func (s *AbilitiesTestSuite) TestModifierMatchesFloorFormula() {
	for score := -10; score <= 40; score++ {
		want := int(math.Floor(float64(score-10) / 2))
		s.Equal(want, abilities.Modifier(score), "score %d", score)
	}
}

func (s *AbilitiesTestSuite) TestModifierKnownValues() {
	s.Equal(-1, abilities.Modifier(8))
	s.Equal(-1, abilities.Modifier(9))
	s.Equal(0, abilities.Modifier(10))
	s.Equal(0, abilities.Modifier(11))
	s.Equal(5, abilities.Modifier(20))
	s.Equal(-5, abilities.Modifier(1))
}

func (s *AbilitiesTestSuite) TestMissingStatsDefaultToTen() {
	results := abilities.Compute(&ddb.Character{})
	s.Require().Len(results, 6)
	for _, res := range results {
		s.Equal(10, res.Base)
		s.Equal(10, res.Total)
		s.Equal(0, res.Modifier)
	}
}

func (s *AbilitiesTestSuite) TestBonusesAggregateAcrossSources() {
	character := &ddb.Character{
		Stats: []ddb.Stat{
			{ID: 1, Value: intPtr(15)},
			{ID: 2, Value: intPtr(14)},
			{ID: 3, Value: intPtr(13)},
		},
		Modifiers: ddb.Modifiers{
			Race:  []ddb.Modifier{bonus("strength-score", "2"), bonus("constitution-score", "1")},
			Feat:  []ddb.Modifier{bonus("strength-score", "1")},
			Item:  []ddb.Modifier{bonus("dexterity-score", `"2"`)},
			Class: []ddb.Modifier{bonus("strength-score", "-2"), bonus("strength-score", "null"), bonus("strength-score", `"n/a"`)},
		},
	}

	results := abilities.Compute(character)

	str := results.Get(ddb.AbilityStrength)
	s.Equal(15, str.Base)
	s.Equal(3, str.Bonus)
	s.Equal(18, str.Total)
	s.Equal(4, str.Modifier)
	s.Equal(map[string]int{"race": 2, "feat": 1}, str.Sources)

	s.Equal(16, results.Score(ddb.AbilityDexterity))
	s.Equal(14, results.Score(ddb.AbilityConstitution))
	s.Equal(10, results.Score(ddb.AbilityWisdom))
}

func (s *AbilitiesTestSuite) TestLegacyBonusStatsIgnored() {
	character := &ddb.Character{
		Stats:      []ddb.Stat{{ID: 1, Value: intPtr(15)}},
		BonusStats: []ddb.Stat{{ID: 1, Value: intPtr(2)}},
		Modifiers: ddb.Modifiers{
			Race: []ddb.Modifier{bonus("strength-score", "2")},
		},
	}

	s.Equal(17, abilities.Compute(character).Score(ddb.AbilityStrength))
}

func (s *AbilitiesTestSuite) TestOverrideReplacesBaseAndBonus() {
	character := &ddb.Character{
		Stats:         []ddb.Stat{{ID: 1, Value: intPtr(8)}, {ID: 2, Value: intPtr(12)}},
		OverrideStats: []ddb.Stat{{ID: 1, Value: intPtr(19)}, {ID: 2, Value: nil}},
		Modifiers: ddb.Modifiers{
			Item: []ddb.Modifier{bonus("strength-score", "2")},
		},
	}

	results := abilities.Compute(character)
	str := results.Get(ddb.AbilityStrength)
	s.Require().NotNil(str.Override)
	s.Equal(19, *str.Override)
	s.Equal(19, str.Total)
	s.Equal(4, str.Modifier)

	dex := results.Get(ddb.AbilityDexterity)
	s.Nil(dex.Override)
	s.Equal(12, dex.Total)
}

func (s *AbilitiesTestSuite) TestOutOfRangeStatIDIgnored() {
	character := &ddb.Character{
		Stats: []ddb.Stat{{ID: 9, Value: intPtr(18)}, {ID: 0, Value: intPtr(3)}},
	}
	for _, res := range abilities.Compute(character) {
		s.Equal(10, res.Total)
	}
}

func (s *AbilitiesTestSuite) TestUnknownAbilityDefaults() {
	res := abilities.Results{}.Get("luck")
	s.Equal(10, res.Total)
}

func (s *AbilitiesTestSuite) TestNonBonusModifiersIgnored() {
	character := &ddb.Character{
		Modifiers: ddb.Modifiers{
			Race: []ddb.Modifier{
				{Type: ddb.ModifierTypeSet, SubType: "strength-score", FixedValue: ddb.NewFlexValue("19")},
				bonus("strength-saving-throws", "2"),
				bonus("luck-score", "2"),
			},
		},
	}
	s.Equal(10, abilities.Compute(character).Score(ddb.AbilityStrength))
}
