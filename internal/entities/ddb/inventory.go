package ddb

// Filter types used by D&D Beyond item definitions.
const (
	FilterTypeWeapon     = "Weapon"
	FilterTypeArmor      = "Armor"
	FilterTypeOtherGear  = "Other Gear"
	SubTypeAmmunition    = "Ammunition"
	AttackTypeMelee      = 1
	AttackTypeRanged     = 2
	ArmorTypeLight       = 1
	ArmorTypeMedium      = 2
	ArmorTypeHeavy       = 3
	ArmorTypeShield      = 4
	PropertyThrown       = "Thrown"
	PropertyAmmunition   = "Ammunition"
	PropertyFinesse      = "Finesse"
	defaultItemQuantity  = 1
	defaultWeightFactor  = 1.0
	magicContainerFactor = 0.0
)

// InventoryItem is one entry of the flat inventory list. ContainerEntityID
// points at the character id for top-level items, or at the id of the
// container item holding it.
type InventoryItem struct {
	ID                    int64          `json:"id"`
	EntityTypeID          int64          `json:"entityTypeId"`
	Definition            ItemDefinition `json:"definition"`
	Quantity              int            `json:"quantity"`
	Equipped              bool           `json:"equipped"`
	IsAttuned             bool           `json:"isAttuned"`
	ContainerEntityID     int64          `json:"containerEntityId"`
	ContainerEntityTypeID int64          `json:"containerEntityTypeId"`
}

// Count returns the quantity, treating a missing quantity as one.
func (i InventoryItem) Count() int {
	if i.Quantity <= 0 {
		return defaultItemQuantity
	}
	return i.Quantity
}

// ItemDefinition is the catalog entry behind an inventory item.
type ItemDefinition struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description,omitempty"`
	Type             string           `json:"type,omitempty"`
	FilterType       string           `json:"filterType"`
	SubType          string           `json:"subType,omitempty"`
	Weight           float64          `json:"weight"`
	WeightMultiplier *float64         `json:"weightMultiplier,omitempty"`
	IsContainer      bool             `json:"isContainer"`
	CapacityWeight   float64          `json:"capacityWeight,omitempty"`
	Damage           *Damage          `json:"damage,omitempty"`
	DamageType       string           `json:"damageType,omitempty"`
	Properties       []Property       `json:"properties"`
	Range            int              `json:"range,omitempty"`
	LongRange        int              `json:"longRange,omitempty"`
	AttackType       *int             `json:"attackType,omitempty"`
	ArmorClass       int              `json:"armorClass,omitempty"`
	ArmorTypeID      int              `json:"armorTypeId,omitempty"`
	Magic            bool             `json:"magic"`
	Rarity           string           `json:"rarity,omitempty"`
	WeaponBehaviors  []WeaponBehavior `json:"weaponBehaviors,omitempty"`
}

// ContentsMultiplier is the factor applied to the weight of a container's
// contents. Zero marks a magic container such as a Bag of Holding.
func (d ItemDefinition) ContentsMultiplier() float64 {
	if d.WeightMultiplier == nil {
		return defaultWeightFactor
	}
	if *d.WeightMultiplier < magicContainerFactor {
		return defaultWeightFactor
	}
	return *d.WeightMultiplier
}

// HasProperty reports whether the definition lists the named property.
func (d ItemDefinition) HasProperty(name string) bool {
	for _, p := range d.Properties {
		if p.Name == name {
			return true
		}
	}
	return false
}

// IsWeapon reports whether the item is filtered as a weapon.
func (d ItemDefinition) IsWeapon() bool {
	return d.FilterType == FilterTypeWeapon
}

// IsAmmunition reports whether the item is ammunition.
func (d ItemDefinition) IsAmmunition() bool {
	return d.SubType == SubTypeAmmunition
}

// Damage is a dice expression attached to a weapon.
type Damage struct {
	DiceString string `json:"diceString"`
	DiceCount  *int   `json:"diceCount,omitempty"`
	DiceValue  *int   `json:"diceValue,omitempty"`
	FixedValue *int   `json:"fixedValue,omitempty"`
}

// Property is a weapon property such as Finesse or Thrown.
type Property struct {
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
}

// WeaponBehavior is an alternative weapon mode attached to a non-weapon item,
// for example a staff that can be wielded as a quarterstaff.
type WeaponBehavior struct {
	Name       string     `json:"name,omitempty"`
	Damage     *Damage    `json:"damage,omitempty"`
	DamageType string     `json:"damageType,omitempty"`
	Properties []Property `json:"properties"`
	Range      int        `json:"range,omitempty"`
	LongRange  int        `json:"longRange,omitempty"`
	AttackType *int       `json:"attackType,omitempty"`
}
