package inventory

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
	"github.com/KirkDiggler/ddb-converter/internal/xmlgen"
)

// FG carried states.
const (
	carriedNotCarried = 0
	carriedCarried    = 1
	carriedEquipped   = 2
)

func carriedState(n *Node) int {
	if n.Item.Equipped {
		return carriedEquipped
	}
	if n.Weightless() {
		return carriedNotCarried
	}
	return carriedCarried
}

func inventoryXML(ordered []*Node, depth int) string {
	w := xmlgen.NewWriter(depth)
	w.Open("inventorylist")
	for i, n := range ordered {
		def := n.Item.Definition
		id := i + 1

		w.OpenID(id)
		w.String("name", def.Name)
		w.Number("count", n.Item.Count())
		w.Decimal("weight", def.Weight)
		w.Number("carried", carriedState(n))
		w.Number("isidentified", 1)
		w.String("type", itemType(def))
		if def.SubType != "" {
			w.String("subtype", def.SubType)
		}
		if n.Parent != nil {
			w.String("location", n.Parent.Name())
		}
		if def.Rarity != "" {
			w.String("rarity", def.Rarity)
		}
		if props := propertyNames(def.Properties); len(props) > 0 {
			w.String("properties", strings.Join(props, ", "))
		}
		if def.FilterType == ddb.FilterTypeArmor {
			w.Number("ac", def.ArmorClass)
		}
		if n.Item.IsAttuned {
			w.Number("attune", 1)
		}
		if def.Description != "" {
			w.Description("description", def.Description)
		}
		w.CloseID(id)
	}
	w.Close("inventorylist")
	return w.XML()
}

func itemType(def ddb.ItemDefinition) string {
	switch {
	case def.FilterType != "":
		return def.FilterType
	case def.Type != "":
		return def.Type
	default:
		return "Adventuring Gear"
	}
}

func weaponXML(weapons []Weapon, depth int) string {
	w := xmlgen.NewWriter(depth)
	w.Open("weaponlist")
	for i, weapon := range weapons {
		id := i + 1

		w.OpenID(id)
		w.String("name", weapon.Name)
		w.Number("type", int(weapon.AttackType))
		w.String("properties", weaponProperties(weapon))
		w.Number("prof", 1)
		w.Number("carried", carriedFromEquipped(weapon.Equipped))
		if weapon.Finesse {
			w.String("attackstat", "dexterity")
		}
		if weapon.AttackType != AttackMelee && weapon.Range > 0 {
			w.Number("rangeincrement", weapon.Range)
		}
		if weapon.Ammunition != nil && weapon.AttackType != AttackThrown {
			w.Number("maxammo", weapon.Ammunition.Quantity)
			w.String("ammunition", weapon.Ammunition.Name)
		}

		w.Open("damagelist")
		w.OpenID(1)
		w.Dice("dice", weapon.Damage.Dice)
		w.Number("bonus", weapon.Damage.Bonus)
		w.String("stat", "base")
		w.String("type", weapon.Damage.Type)
		w.CloseID(1)
		w.Close("damagelist")

		w.OpenTyped("shortcut", xmlgen.TypeWindowRef)
		w.Element("class", "item")
		w.Element("recordname", "....inventorylist."+xmlgen.ID(weapon.InventoryIndex))
		w.Close("shortcut")

		w.CloseID(id)
	}
	w.Close("weaponlist")
	return w.XML()
}

func carriedFromEquipped(equipped bool) int {
	if equipped {
		return carriedEquipped
	}
	return carriedCarried
}

func weaponProperties(weapon Weapon) string {
	props := append([]string(nil), weapon.Properties...)
	if weapon.AttackType != AttackMelee && weapon.Range > 0 {
		rng := strconv.Itoa(weapon.Range)
		if weapon.LongRange > 0 {
			rng += "/" + strconv.Itoa(weapon.LongRange)
		}
		props = append(props, "Range "+rng)
	}
	return strings.Join(props, ", ")
}
