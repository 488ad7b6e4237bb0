package inventory

import (
	"context"
	"strings"

	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
	"github.com/KirkDiggler/ddb-converter/internal/flags"
)

// AttackType is the FG weapon type.
type AttackType int

// FG weapon type values.
const (
	AttackMelee  AttackType = 0
	AttackRanged AttackType = 1
	AttackThrown AttackType = 2
)

// String returns the lowercase attack type name.
func (a AttackType) String() string {
	switch a {
	case AttackRanged:
		return "ranged"
	case AttackThrown:
		return "thrown"
	default:
		return "melee"
	}
}

// Ammunition is the inventory item a ranged weapon draws from.
type Ammunition struct {
	ItemID   int64
	Name     string
	Quantity int
}

// Weapon is one weaponlist entry. A thrown melee weapon yields two entries
// with the same ItemID.
type Weapon struct {
	ItemID     int64
	Name       string
	AttackType AttackType
	Damage     Damage
	Properties []string
	Range      int
	LongRange  int
	Equipped   bool
	Magic      bool
	Finesse    bool
	Ammunition *Ammunition

	// InventoryIndex is the 1-based position of the source item in the
	// flattened inventorylist.
	InventoryIndex int
}

// ammoKeywords maps a weapon name keyword to the ammunition names it uses.
// crossbow must be checked before bow.
var ammoKeywords = []struct {
	weapon string
	ammo   []string
}{
	{"crossbow", []string{"bolt"}},
	{"blowgun", []string{"needle"}},
	{"sling", []string{"bullet", "stone"}},
	{"bow", []string{"arrow"}},
}

// AmmoKeywords returns the ammunition name keywords for a weapon, or nil.
func AmmoKeywords(weaponName string) []string {
	name := strings.ToLower(weaponName)
	for _, entry := range ammoKeywords {
		if strings.Contains(name, entry.weapon) {
			return entry.ammo
		}
	}
	return nil
}

// findAmmunition returns the first ammunition item, anywhere in the tree,
// whose name contains one of the weapon's keywords.
func findAmmunition(weaponName string, ammo []*Node) *Ammunition {
	keywords := AmmoKeywords(weaponName)
	if len(keywords) == 0 {
		return nil
	}
	for _, node := range ammo {
		name := strings.ToLower(node.Name())
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				return &Ammunition{
					ItemID:   node.Item.ID,
					Name:     node.Name(),
					Quantity: node.Item.Count(),
				}
			}
		}
	}
	return nil
}

func propertyNames(props []ddb.Property) []string {
	names := make([]string, 0, len(props))
	for _, p := range props {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return names
}

// buildWeapons derives weaponlist entries from every weapon in the tree.
func (p *processor) buildWeapons(ctx context.Context, ordered []*Node, ammo []*Node, records *Records) []Weapon {
	var weapons []Weapon
	for _, node := range ordered {
		def := node.Item.Definition
		if !def.IsWeapon() || def.IsAmmunition() {
			continue
		}

		base := Weapon{
			ItemID:         node.Item.ID,
			Name:           def.Name,
			AttackType:     AttackMelee,
			Damage:         p.resolveDamage(ctx, def),
			Properties:     propertyNames(def.Properties),
			Range:          def.Range,
			LongRange:      def.LongRange,
			Equipped:       node.Item.Equipped,
			Magic:          def.Magic,
			Finesse:        def.HasProperty(ddb.PropertyFinesse),
			InventoryIndex: records.Position(node),
		}
		if def.AttackType != nil && *def.AttackType == ddb.AttackTypeRanged {
			base.AttackType = AttackRanged
		}
		if base.AttackType == AttackRanged || def.HasProperty(ddb.PropertyAmmunition) {
			base.Ammunition = findAmmunition(def.Name, ammo)
		}

		if base.AttackType == AttackMelee {
			// Reach and range fields only describe thrown use.
			base.Range, base.LongRange = 0, 0
		}
		weapons = append(weapons, base)

		if base.AttackType == AttackMelee && def.HasProperty(ddb.PropertyThrown) && p.opts.Flags.Enabled(flags.WeaponThrownSplit) {
			thrown := base
			thrown.AttackType = AttackThrown
			thrown.Range = def.Range
			thrown.LongRange = def.LongRange
			thrown.Properties = append([]string(nil), base.Properties...)
			weapons = append(weapons, thrown)
		}
	}
	return weapons
}
