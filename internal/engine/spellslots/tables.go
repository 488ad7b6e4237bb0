package spellslots

// MaxSlotLevel is the highest spell slot level.
const MaxSlotLevel = 9

// Slots holds slot counts for spell levels 1..9 at index 0..8.
type Slots [MaxSlotLevel]int

// At returns the count for a 1-based spell level.
func (s Slots) At(level int) int {
	if level < 1 || level > MaxSlotLevel {
		return 0
	}
	return s[level-1]
}

// Total counts every slot.
func (s Slots) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// IsZero reports whether no slots are present.
func (s Slots) IsZero() bool {
	return s.Total() == 0
}

// Map returns the non-zero entries keyed by spell level.
func (s Slots) Map() map[int]int {
	out := make(map[int]int)
	for i, n := range s {
		if n > 0 {
			out[i+1] = n
		}
	}
	return out
}

// fullCasterSlots is indexed by caster level 1..20. It is also the shared
// multiclass table.
var fullCasterSlots = [20]Slots{
	{2},
	{3},
	{4, 2},
	{4, 3},
	{4, 3, 2},
	{4, 3, 3},
	{4, 3, 3, 1},
	{4, 3, 3, 2},
	{4, 3, 3, 3, 1},
	{4, 3, 3, 3, 2},
	{4, 3, 3, 3, 2, 1},
	{4, 3, 3, 3, 2, 1},
	{4, 3, 3, 3, 2, 1, 1},
	{4, 3, 3, 3, 2, 1, 1},
	{4, 3, 3, 3, 2, 1, 1, 1},
	{4, 3, 3, 3, 2, 1, 1, 1},
	{4, 3, 3, 3, 2, 1, 1, 1, 1},
	{4, 3, 3, 3, 3, 1, 1, 1, 1},
	{4, 3, 3, 3, 3, 2, 1, 1, 1},
	{4, 3, 3, 3, 3, 2, 2, 1, 1},
}

// halfCasterSlots is indexed by paladin or ranger class level.
var halfCasterSlots = [20]Slots{
	{},
	{2},
	{3},
	{3},
	{4, 2},
	{4, 2},
	{4, 3},
	{4, 3},
	{4, 3, 2},
	{4, 3, 2},
	{4, 3, 3},
	{4, 3, 3},
	{4, 3, 3, 1},
	{4, 3, 3, 1},
	{4, 3, 3, 2},
	{4, 3, 3, 2},
	{4, 3, 3, 3, 1},
	{4, 3, 3, 3, 1},
	{4, 3, 3, 3, 2},
	{4, 3, 3, 3, 2},
}

// thirdCasterSlots is indexed by class level for subclass casters.
var thirdCasterSlots = [20]Slots{
	{},
	{},
	{2},
	{3},
	{3},
	{3},
	{4, 2},
	{4, 2},
	{4, 2},
	{4, 3},
	{4, 3},
	{4, 3},
	{4, 3, 2},
	{4, 3, 2},
	{4, 3, 2},
	{4, 3, 3},
	{4, 3, 3},
	{4, 3, 3},
	{4, 3, 3, 1},
	{4, 3, 3, 1},
}

// pactSlot is the Pact Magic progression entry for one warlock level.
type pactSlot struct {
	count int
	level int
}

var pactMagicProgression = [20]pactSlot{
	{1, 1},
	{2, 1},
	{2, 2},
	{2, 2},
	{2, 3},
	{2, 3},
	{2, 4},
	{2, 4},
	{2, 5},
	{2, 5},
	{3, 5},
	{3, 5},
	{3, 5},
	{3, 5},
	{3, 5},
	{3, 5},
	{4, 5},
	{4, 5},
	{4, 5},
	{4, 5},
}

func lookup(table *[20]Slots, level int) Slots {
	if level < 1 {
		return Slots{}
	}
	if level > len(table) {
		level = len(table)
	}
	return table[level-1]
}

func pactSlots(warlockLevel int) Slots {
	var slots Slots
	if warlockLevel < 1 {
		return slots
	}
	if warlockLevel > len(pactMagicProgression) {
		warlockLevel = len(pactMagicProgression)
	}
	entry := pactMagicProgression[warlockLevel-1]
	slots[entry.level-1] = entry.count
	return slots
}
