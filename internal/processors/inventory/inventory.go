// Package inventory turns the flat D&D Beyond inventory into a containment
// tree, weapon entries and the FG inventorylist and weaponlist fragments.
package inventory

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/ddb-converter/internal/clients/external"
	"github.com/KirkDiggler/ddb-converter/internal/engine/encumbrance"
	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
	"github.com/KirkDiggler/ddb-converter/internal/flags"
)

// DefaultXMLDepth is the indentation of list fragments inside
// <root><character>.
const DefaultXMLDepth = 2

// Options configure Process.
type Options struct {
	Flags flags.Set
	// SRD is consulted for weapons without definition damage when the
	// srd_weapon_lookup flag is on. Optional.
	SRD external.Client
	// XMLDepth overrides DefaultXMLDepth.
	XMLDepth int
}

// Statistics summarise the processed inventory.
type Statistics struct {
	TotalItems       int
	Containers       int
	NestedItems      int
	MaxDepth         int
	Weapons          int
	WeightlessItems  int
	LinkedAmmunition int
}

// XML holds the rendered fragments.
type XML struct {
	Inventory string
	Weapons   string
}

// Result is the output of Process.
type Result struct {
	Nested     []*Node
	Records    *Records
	Weapons    []Weapon
	XML        XML
	Statistics Statistics
}

// EncumbranceItems converts the root nodes for the encumbrance engine.
func (r *Result) EncumbranceItems() []encumbrance.Item {
	items := make([]encumbrance.Item, 0, len(r.Nested))
	for _, root := range r.Nested {
		items = append(items, root.EncumbranceItem())
	}
	return items
}

// Flatten returns every node in inventorylist order.
func (r *Result) Flatten() []*Node {
	var out []*Node
	for _, root := range r.Nested {
		root.Walk(func(n *Node) { out = append(out, n) })
	}
	return out
}

type processor struct {
	opts Options
}

func (p *processor) srdEnabled() bool {
	return p.opts.SRD != nil && p.opts.Flags.Enabled(flags.SRDWeaponLookup)
}

// Process builds the inventory result for a character. The only error is a
// cancelled context.
func Process(ctx context.Context, items []ddb.InventoryItem, characterID int64, opts Options) (*Result, error) {
	if opts.XMLDepth <= 0 {
		opts.XMLDepth = DefaultXMLDepth
	}
	p := &processor{opts: opts}

	result := &Result{Nested: buildTree(items, characterID)}
	ordered := result.Flatten()

	var ammo []*Node
	for _, node := range ordered {
		if node.Item.Definition.IsAmmunition() {
			ammo = append(ammo, node)
		}
	}

	result.Records = NewRecords(nodeEntities(ordered))
	result.Weapons = p.buildWeapons(ctx, ordered, ammo, result.Records)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Statistics = computeStatistics(ordered, result.Weapons)
	result.XML = XML{
		Inventory: inventoryXML(ordered, opts.XMLDepth),
		Weapons:   weaponXML(result.Weapons, opts.XMLDepth),
	}

	slog.DebugContext(ctx, "Processed inventory",
		"character_id", characterID,
		"items", result.Statistics.TotalItems,
		"containers", result.Statistics.Containers,
		"weapons", result.Statistics.Weapons,
		"max_depth", result.Statistics.MaxDepth)

	return result, nil
}

func computeStatistics(ordered []*Node, weapons []Weapon) Statistics {
	stats := Statistics{
		TotalItems: len(ordered),
		Weapons:    len(weapons),
	}
	for _, n := range ordered {
		if n.IsContainer() {
			stats.Containers++
		}
		if n.Parent != nil {
			stats.NestedItems++
		}
		if n.Depth > stats.MaxDepth {
			stats.MaxDepth = n.Depth
		}
		if n.Weightless() {
			stats.WeightlessItems++
		}
	}
	for _, w := range weapons {
		if w.Ammunition != nil && w.AttackType != AttackThrown {
			stats.LinkedAmmunition++
		}
	}
	return stats
}
