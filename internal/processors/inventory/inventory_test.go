package inventory_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/ddb-converter/internal/clients/external"
	externalmock "github.com/KirkDiggler/ddb-converter/internal/clients/external/mock"
	"github.com/KirkDiggler/ddb-converter/internal/engine/encumbrance"
	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
	"github.com/KirkDiggler/ddb-converter/internal/errors"
	"github.com/KirkDiggler/ddb-converter/internal/flags"
	"github.com/KirkDiggler/ddb-converter/internal/processors/inventory"
)

const characterID int64 = 1000

type InventoryTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestInventorySuite(t *testing.T) {
	suite.Run(t, new(InventoryTestSuite))
}

func (s *InventoryTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func item(id int64, name string, weight float64, container int64) ddb.InventoryItem {
	return ddb.InventoryItem{
		ID:                id,
		Quantity:          1,
		ContainerEntityID: container,
		Definition:        ddb.ItemDefinition{ID: id, Name: name, Weight: weight, FilterType: ddb.FilterTypeOtherGear},
	}
}

func containerItem(id int64, name string, weight float64, container int64) ddb.InventoryItem {
	it := item(id, name, weight, container)
	it.Definition.IsContainer = true
	return it
}

func weaponItem(id int64, name string, container int64, props ...string) ddb.InventoryItem {
	it := item(id, name, 1, container)
	it.Definition.FilterType = ddb.FilterTypeWeapon
	it.Definition.AttackType = intPtr(ddb.AttackTypeMelee)
	for _, p := range props {
		it.Definition.Properties = append(it.Definition.Properties, ddb.Property{Name: p})
	}
	return it
}

func rangedWeapon(id int64, name string, container int64) ddb.InventoryItem {
	it := weaponItem(id, name, container, ddb.PropertyAmmunition)
	it.Definition.AttackType = intPtr(ddb.AttackTypeRanged)
	it.Definition.Range = 80
	it.Definition.LongRange = 320
	return it
}

func ammoItem(id int64, name string, qty int, container int64) ddb.InventoryItem {
	it := item(id, name, 0.05, container)
	it.Definition.SubType = ddb.SubTypeAmmunition
	it.Quantity = qty
	return it
}

func withDamage(it ddb.InventoryItem, diceExpr, kind string) ddb.InventoryItem {
	it.Definition.Damage = &ddb.Damage{DiceString: diceExpr}
	it.Definition.DamageType = kind
	return it
}

func (s *InventoryTestSuite) process(items []ddb.InventoryItem, opts inventory.Options) *inventory.Result {
	res, err := inventory.Process(s.ctx, items, characterID, opts)
	s.Require().NoError(err)
	return res
}

func (s *InventoryTestSuite) TestTreeBuilding() {
	items := []ddb.InventoryItem{
		containerItem(1, "Backpack", 5, characterID),
		item(2, "Rope", 10, 1),
		containerItem(3, "Pouch", 1, 1),
		item(4, "Gem", 0, 3),
		item(5, "Torch", 1, characterID),
		item(6, "Lost Item", 1, 9999),
	}

	res := s.process(items, inventory.Options{})

	s.Require().Len(res.Nested, 3)
	s.Equal("Backpack", res.Nested[0].Name())
	s.Equal("Torch", res.Nested[1].Name())
	s.Equal("Lost Item", res.Nested[2].Name())

	backpack := res.Nested[0]
	s.Require().Len(backpack.Children, 2)
	s.Equal("Rope", backpack.Children[0].Name())
	s.Equal("Pouch", backpack.Children[1].Name())
	s.Equal(2, backpack.Children[1].Children[0].Depth)
	s.Equal(inventory.EntityTypeContainer, backpack.GetType())
	s.Equal("1", backpack.GetID())
	s.Equal(inventory.EntityTypeItem, backpack.Children[0].GetType())

	s.Equal(inventory.Statistics{
		TotalItems:  6,
		Containers:  2,
		NestedItems: 3,
		MaxDepth:    2,
	}, res.Statistics)
}

func (s *InventoryTestSuite) TestCycleSafety() {
	s.Run("self containment", func() {
		res := s.process([]ddb.InventoryItem{containerItem(1, "Bag", 1, 1)}, inventory.Options{})
		s.Require().Len(res.Nested, 1)
		s.Empty(res.Nested[0].Children)
	})

	s.Run("two item cycle", func() {
		res := s.process([]ddb.InventoryItem{
			containerItem(1, "Bag A", 1, 2),
			containerItem(2, "Bag B", 1, 1),
		}, inventory.Options{})
		s.Len(res.Nested, 2)
		s.Equal(2, res.Statistics.TotalItems)
	})

	s.Run("item inside a cycle member", func() {
		res := s.process([]ddb.InventoryItem{
			item(3, "Coin", 0.02, 1),
			containerItem(1, "Bag A", 1, 2),
			containerItem(2, "Bag B", 1, 1),
		}, inventory.Options{})
		s.Len(res.Nested, 2)
		s.Equal(3, len(res.Flatten()))
	})
}

func (s *InventoryTestSuite) TestEncumbranceItems() {
	holding := containerItem(2, "Bag of Holding", 15, characterID)
	holding.Definition.WeightMultiplier = floatPtr(0)

	res := s.process([]ddb.InventoryItem{
		containerItem(1, "Backpack", 5, characterID),
		item(3, "Bedroll", 7, 1),
		holding,
		item(4, "Anvil", 500, 2),
	}, inventory.Options{})

	enc := encumbrance.Calculate(encumbrance.Strength{Score: 10}, res.EncumbranceItems())
	s.Equal(27.0, enc.TotalWeight)
	s.Equal(1, res.Statistics.WeightlessItems)
}

func (s *InventoryTestSuite) TestThrownWeaponSplit() {
	dagger := withDamage(weaponItem(1, "Dagger", characterID, ddb.PropertyFinesse, ddb.PropertyThrown), "1d4", "Piercing")
	dagger.Definition.Range = 20
	dagger.Definition.LongRange = 60

	s.Run("enabled by default", func() {
		res := s.process([]ddb.InventoryItem{dagger}, inventory.Options{})
		s.Require().Len(res.Weapons, 2)

		melee, thrown := res.Weapons[0], res.Weapons[1]
		s.Equal(inventory.AttackMelee, melee.AttackType)
		s.Equal(inventory.AttackThrown, thrown.AttackType)
		s.Equal(melee.ItemID, thrown.ItemID)
		s.Equal(0, melee.Range)
		s.Equal(20, thrown.Range)
		s.Equal(60, thrown.LongRange)
		s.Equal("1d4", thrown.Damage.Dice)
		s.Equal("piercing", thrown.Damage.Type)
		s.True(melee.Finesse)
		s.Equal(2, res.Statistics.Weapons)
	})

	s.Run("disabled by flag", func() {
		set, err := flags.New(map[flags.Name]bool{flags.WeaponThrownSplit: false})
		s.Require().NoError(err)
		res := s.process([]ddb.InventoryItem{dagger}, inventory.Options{Flags: set})
		s.Len(res.Weapons, 1)
	})
}

func (s *InventoryTestSuite) TestAmmunitionLinking() {
	s.Run("finds ammunition nested in a container", func() {
		res := s.process([]ddb.InventoryItem{
			rangedWeapon(1, "Longbow", characterID),
			containerItem(2, "Backpack", 5, characterID),
			containerItem(3, "Quiver", 1, 2),
			ammoItem(4, "Arrows", 20, 3),
		}, inventory.Options{})

		s.Require().Len(res.Weapons, 1)
		s.Require().NotNil(res.Weapons[0].Ammunition)
		s.Equal(int64(4), res.Weapons[0].Ammunition.ItemID)
		s.Equal(20, res.Weapons[0].Ammunition.Quantity)
		s.Equal(1, res.Statistics.LinkedAmmunition)
	})

	s.Run("crossbow prefers bolts over arrows", func() {
		res := s.process([]ddb.InventoryItem{
			ammoItem(4, "Arrows", 20, characterID),
			ammoItem(5, "Crossbow Bolts", 10, characterID),
			rangedWeapon(1, "Crossbow, Light", characterID),
		}, inventory.Options{})

		s.Require().NotNil(res.Weapons[0].Ammunition)
		s.Equal("Crossbow Bolts", res.Weapons[0].Ammunition.Name)
	})

	s.Run("first match wins", func() {
		res := s.process([]ddb.InventoryItem{
			rangedWeapon(1, "Sling", characterID),
			ammoItem(4, "Sling Bullets", 20, characterID),
			ammoItem(5, "Smooth Stones", 10, characterID),
		}, inventory.Options{})

		s.Equal(int64(4), res.Weapons[0].Ammunition.ItemID)
	})

	s.Run("no fallback", func() {
		res := s.process([]ddb.InventoryItem{
			rangedWeapon(1, "Longbow", characterID),
			ammoItem(5, "Crossbow Bolts", 10, characterID),
		}, inventory.Options{})

		s.Nil(res.Weapons[0].Ammunition)
		s.Equal(0, res.Statistics.LinkedAmmunition)
	})
}

func (s *InventoryTestSuite) TestDamageLayers() {
	s.Run("definition damage", func() {
		d, ok := inventory.DefinitionDamage(withDamage(weaponItem(1, "Longsword", 0), "1d8", "Slashing").Definition)
		s.True(ok)
		s.Equal(inventory.Damage{Dice: "1d8", Type: "slashing", Source: inventory.DamageFromDefinition}, d)
	})

	s.Run("definition dice from count and value", func() {
		def := weaponItem(1, "Odd Blade", 0).Definition
		def.Damage = &ddb.Damage{DiceCount: intPtr(2), DiceValue: intPtr(4), FixedValue: intPtr(1)}
		def.DamageType = "Slashing"
		d, ok := inventory.DefinitionDamage(def)
		s.True(ok)
		s.Equal("2d4", d.Dice)
		s.Equal(1, d.Bonus)
	})

	s.Run("invalid definition dice", func() {
		def := weaponItem(1, "Blowgun", 0).Definition
		def.Damage = &ddb.Damage{DiceString: "1"}
		_, ok := inventory.DefinitionDamage(def)
		s.False(ok)
	})

	s.Run("keyword table", func() {
		testCases := []struct {
			name string
			dice string
			kind string
		}{
			{"Dagger", "1d4", "piercing"},
			{"Longsword +1", "1d8", "slashing"},
			{"Greatclub", "1d8", "bludgeoning"},
			{"Club", "1d4", "bludgeoning"},
			{"Crossbow, Hand", "1d6", "piercing"},
			{"Crossbow, Heavy", "1d10", "piercing"},
			{"Crossbow, Light", "1d8", "piercing"},
			{"Hand Crossbow", "1d6", "piercing"},
			{"Heavy Crossbow", "1d10", "piercing"},
			{"Crossbow", "1d8", "piercing"},
			{"Darts", "1d4", "piercing"},
		}
		for _, tc := range testCases {
			d, ok := inventory.KeywordDamage(tc.name)
			s.True(ok, tc.name)
			s.Equal(tc.dice, d.Dice, tc.name)
			s.Equal(tc.kind, d.Type, tc.name)
		}

		_, ok := inventory.KeywordDamage("Frying Pan")
		s.False(ok)
	})

	s.Run("default damage", func() {
		res := s.process([]ddb.InventoryItem{weaponItem(1, "Frying Pan", characterID)}, inventory.Options{})
		s.Equal("1d6", res.Weapons[0].Damage.Dice)
		s.Equal("slashing", res.Weapons[0].Damage.Type)
		s.Equal(inventory.DamageFromDefault, res.Weapons[0].Damage.Source)
	})
}

func (s *InventoryTestSuite) TestSRDLookup() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	srd := externalmock.NewMockClient(ctrl)
	enabled, err := flags.New(map[flags.Name]bool{flags.SRDWeaponLookup: true})
	s.Require().NoError(err)

	s.Run("used when enabled and definition damage missing", func() {
		srd.EXPECT().GetWeapon(gomock.Any(), "Halberd").Return(&external.WeaponData{
			Name: "Halberd", DamageDice: "1d10", DamageType: "slashing",
		}, nil)

		res := s.process([]ddb.InventoryItem{weaponItem(1, "Halberd", characterID)},
			inventory.Options{Flags: enabled, SRD: srd})
		s.Equal(inventory.DamageFromSRD, res.Weapons[0].Damage.Source)
		s.Equal("1d10", res.Weapons[0].Damage.Dice)
	})

	s.Run("not found falls through to keywords", func() {
		srd.EXPECT().GetWeapon(gomock.Any(), "Dagger of Venom").Return(nil, errors.NotFound("weapon not in SRD"))

		res := s.process([]ddb.InventoryItem{weaponItem(1, "Dagger of Venom", characterID)},
			inventory.Options{Flags: enabled, SRD: srd})
		s.Equal(inventory.DamageFromKeyword, res.Weapons[0].Damage.Source)
		s.Equal("1d4", res.Weapons[0].Damage.Dice)
	})

	s.Run("not consulted when definition has damage", func() {
		res := s.process([]ddb.InventoryItem{withDamage(weaponItem(1, "Halberd", characterID), "1d10", "Slashing")},
			inventory.Options{Flags: enabled, SRD: srd})
		s.Equal(inventory.DamageFromDefinition, res.Weapons[0].Damage.Source)
	})

	s.Run("not consulted when flag is off", func() {
		res := s.process([]ddb.InventoryItem{weaponItem(1, "Halberd", characterID)},
			inventory.Options{SRD: srd})
		s.Equal(inventory.DamageFromKeyword, res.Weapons[0].Damage.Source)
	})
}

func (s *InventoryTestSuite) TestXML() {
	dagger := withDamage(weaponItem(2, "Dagger", 1, ddb.PropertyFinesse, ddb.PropertyThrown), "1d4", "Piercing")
	dagger.Definition.Range = 20
	dagger.Definition.LongRange = 60
	dagger.Equipped = true

	res := s.process([]ddb.InventoryItem{
		containerItem(1, "Backpack", 5, characterID),
		dagger,
	}, inventory.Options{})

	inv := res.XML.Inventory
	s.Contains(inv, "\t\t<inventorylist>\n")
	s.Contains(inv, `<name type="string">Backpack</name>`)
	s.Contains(inv, `<location type="string">Backpack</location>`)
	s.Contains(inv, `<carried type="number">2</carried>`)
	s.Contains(inv, "<id-00002>")

	weapons := res.XML.Weapons
	s.Contains(weapons, `<type type="number">0</type>`)
	s.Contains(weapons, `<type type="number">2</type>`)
	s.Contains(weapons, `<dice type="dice">d4</dice>`)
	s.Contains(weapons, `<type type="string">piercing</type>`)
	s.Contains(weapons, `<properties type="string">Finesse, Thrown, Range 20&#x2F;60</properties>`)
	s.Contains(weapons, `<recordname>....inventorylist.id-00002</recordname>`)
	s.Contains(weapons, `<shortcut type="windowreference">`)
}

func (s *InventoryTestSuite) TestChildrenOfZeroMultiplierItemAreWeightless() {
	quiver := item(1, "Enchanted Quiver", 1, characterID)
	quiver.Definition.WeightMultiplier = floatPtr(0)

	res := s.process([]ddb.InventoryItem{
		quiver,
		item(2, "Lead Weights", 10, 1),
	}, inventory.Options{})

	s.Require().Len(res.Nested, 1)
	parent := res.Nested[0]
	s.Require().Len(parent.Children, 1)
	s.True(parent.IsMagicContainer())
	s.True(parent.Children[0].Weightless())

	enc := encumbrance.Calculate(encumbrance.Strength{Score: 10}, res.EncumbranceItems())
	s.Equal(1.0, enc.TotalWeight)
	s.Equal(1, res.Statistics.WeightlessItems)
	s.Contains(res.XML.Inventory, `<carried type="number">0</carried>`)
}

func (s *InventoryTestSuite) TestWeaponShortcutsFollowRecordPositions() {
	res := s.process([]ddb.InventoryItem{
		containerItem(1, "Backpack", 5, characterID),
		item(3, "Rope", 10, 1),
		withDamage(weaponItem(2, "Longsword", 1), "1d8", "Slashing"),
	}, inventory.Options{})

	s.Require().Len(res.Weapons, 1)
	s.Equal(3, res.Weapons[0].InventoryIndex)
	s.Contains(res.XML.Weapons, `<recordname>....inventorylist.id-00003</recordname>`)

	flat := res.Flatten()
	for i, n := range flat {
		s.Equal(i+1, res.Records.Position(n), n.Name())
	}
}

func (s *InventoryTestSuite) TestRecordsFirstEntityWins() {
	first := withDamage(weaponItem(7, "Dagger", characterID), "1d4", "Piercing")
	second := withDamage(weaponItem(7, "Dagger", characterID), "1d4", "Piercing")

	res := s.process([]ddb.InventoryItem{first, second}, inventory.Options{})

	s.Require().Len(res.Nested, 2)
	s.Equal(1, res.Records.Position(res.Nested[0]))
	s.Equal(1, res.Records.Position(res.Nested[1]))
	s.Equal(0, res.Records.Position(nil))

	records := inventory.NewRecords([]core.Entity{res.Nested[0]})
	s.Equal(1, records.Position(res.Nested[0]))
}

func (s *InventoryTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := inventory.Process(ctx, nil, characterID, inventory.Options{})
	s.ErrorIs(err, context.Canceled)
}
