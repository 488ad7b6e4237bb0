package encumbrance_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ddb-converter/internal/engine/encumbrance"
	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
)

type EncumbranceTestSuite struct {
	suite.Suite
}

func TestEncumbranceSuite(t *testing.T) {
	suite.Run(t, new(EncumbranceTestSuite))
}

func gear(weight float64) encumbrance.Item {
	return encumbrance.Item{Weight: weight, Quantity: 1, ContentsMultiplier: 1}
}

func (s *EncumbranceTestSuite) TestCapacityFromStrength() {
	res := encumbrance.Calculate(encumbrance.Strength{Score: 15}, nil)
	s.Equal(225.0, res.CarryingCapacity.Normal)
	s.Equal(450.0, res.CarryingCapacity.Push)
	s.Equal(450.0, res.CarryingCapacity.Lift)
	s.Equal(encumbrance.Unencumbered, res.Level)
	s.Equal(0.0, res.TotalWeight)
}

func (s *EncumbranceTestSuite) TestPowerfulBuildDoublesCapacity() {
	res := encumbrance.Calculate(encumbrance.Strength{Score: 15, PowerfulBuild: true}, nil)
	s.Equal(450.0, res.CarryingCapacity.Normal)
	s.Equal(900.0, res.CarryingCapacity.Push)
	s.Equal(900.0, res.CarryingCapacity.Lift)
	s.Equal(450.0, res.EncumberedAt)

	variant := encumbrance.CalculateWithRule(encumbrance.RuleVariant, encumbrance.Strength{Score: 15, PowerfulBuild: true}, nil)
	s.Equal(150.0, variant.EncumberedAt)
	s.Equal(300.0, variant.HeavilyEncumberedAt)
}

type tierCase struct {
	name    string
	weight  float64
	level   encumbrance.Level
	penalty int
	cap     int
}

func (s *EncumbranceTestSuite) assertTiers(rule encumbrance.Rule, testCases []tierCase) {
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			res := encumbrance.CalculateWithRule(rule, encumbrance.Strength{Score: 10}, []encumbrance.Item{gear(tc.weight)})
			s.Equal(tc.level, res.Level)
			s.Equal(tc.penalty, res.SpeedPenalty)
			s.Equal(tc.cap, res.SpeedCap)
		})
	}
}

func (s *EncumbranceTestSuite) TestTierBoundaries() {
	// STR 10: normal 150, push and lift 300
	s.assertTiers(encumbrance.RuleCapacity, []tierCase{
		{"empty", 0, encumbrance.Unencumbered, 0, 0},
		{"ordinary load", 60, encumbrance.Unencumbered, 0, 0},
		{"at normal capacity", 150, encumbrance.Unencumbered, 0, 0},
		{"just over normal capacity", 150.5, encumbrance.Encumbered, 10, 0},
		{"at push limit", 300, encumbrance.Encumbered, 10, 0},
		{"over lift limit", 301, encumbrance.Overloaded, 20, 5},
	})
}

func (s *EncumbranceTestSuite) TestVariantTierBoundaries() {
	// STR 10: 50 / 100 / 150
	s.assertTiers(encumbrance.RuleVariant, []tierCase{
		{"empty", 0, encumbrance.Unencumbered, 0, 0},
		{"at encumbered threshold", 50, encumbrance.Unencumbered, 0, 0},
		{"just over encumbered threshold", 50.5, encumbrance.Encumbered, 10, 0},
		{"at heavy threshold", 100, encumbrance.Encumbered, 10, 0},
		{"just over heavy threshold", 100.5, encumbrance.HeavilyEncumbered, 20, 0},
		{"at normal capacity", 150, encumbrance.HeavilyEncumbered, 20, 0},
		{"over normal capacity", 151, encumbrance.Overloaded, 20, 5},
	})
}

func (s *EncumbranceTestSuite) TestCalculateUsesCapacityRule() {
	items := []encumbrance.Item{gear(60)}
	s.Equal(encumbrance.CalculateWithRule(encumbrance.RuleCapacity, encumbrance.Strength{Score: 10}, items),
		encumbrance.Calculate(encumbrance.Strength{Score: 10}, items))
}

func (s *EncumbranceTestSuite) TestQuantityAndContainers() {
	backpack := encumbrance.Item{
		Name:               "Backpack",
		Weight:             5,
		Quantity:           1,
		ContentsMultiplier: 1,
		Contents: []encumbrance.Item{
			{Name: "Rations", Weight: 2, Quantity: 10, ContentsMultiplier: 1},
			{Name: "Rope", Weight: 10, Quantity: 1, ContentsMultiplier: 1},
		},
	}

	res := encumbrance.Calculate(encumbrance.Strength{Score: 10}, []encumbrance.Item{backpack, gear(3)})
	s.Equal(38.0, res.TotalWeight)
}

func (s *EncumbranceTestSuite) TestMagicContainerContentsAreWeightless() {
	bag := encumbrance.Item{
		Name:               "Bag of Holding",
		Weight:             15,
		Quantity:           1,
		ContentsMultiplier: 0,
		Contents: []encumbrance.Item{
			{Name: "Plate Armor", Weight: 65, Quantity: 1, ContentsMultiplier: 1},
			{
				Name:               "Pouch",
				Weight:             1,
				Quantity:           1,
				ContentsMultiplier: 1,
				Contents:           []encumbrance.Item{{Name: "Gold Bars", Weight: 20, Quantity: 3, ContentsMultiplier: 1}},
			},
		},
	}

	res := encumbrance.Calculate(encumbrance.Strength{Score: 10}, []encumbrance.Item{bag})
	s.Equal(15.0, res.TotalWeight)
}

func (s *EncumbranceTestSuite) TestMissingQuantityCountsOnce() {
	res := encumbrance.Calculate(encumbrance.Strength{Score: 10}, []encumbrance.Item{{Weight: 4, ContentsMultiplier: 1}})
	s.Equal(4.0, res.TotalWeight)
}

func (s *EncumbranceTestSuite) TestHasPowerfulBuild() {
	s.False(encumbrance.HasPowerfulBuild(&ddb.Character{}))
	s.True(encumbrance.HasPowerfulBuild(&ddb.Character{
		Race: &ddb.Race{RacialTraits: []ddb.RacialTrait{{Definition: ddb.TraitDefinition{Name: "Powerful Build"}}}},
	}))
}
