package inventory

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Records maps inventory entities to their 1-based inventorylist position.
// Entities are keyed by type and id; when two items share an id the first
// one in inventorylist order wins.
type Records struct {
	positions map[string]int
}

func recordKey(e core.Entity) string {
	return e.GetType() + ":" + e.GetID()
}

// NewRecords indexes entities in order.
func NewRecords(entities []core.Entity) *Records {
	r := &Records{positions: make(map[string]int, len(entities))}
	for i, e := range entities {
		key := recordKey(e)
		if _, seen := r.positions[key]; !seen {
			r.positions[key] = i + 1
		}
	}
	return r
}

// Position returns the inventorylist position of e, or 0 when e is not
// indexed.
func (r *Records) Position(e core.Entity) int {
	if r == nil || e == nil {
		return 0
	}
	return r.positions[recordKey(e)]
}

func nodeEntities(nodes []*Node) []core.Entity {
	out := make([]core.Entity, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}
