// Package ddb holds the boundary schema for D&D Beyond character documents.
//
// The upstream format is owned by D&D Beyond and most fields are optional.
// Optional scalars are pointers, optional collections are nil-safe slices,
// and Validate is called before anything reaches the rules engines.
package ddb

// Character is the subset of a D&D Beyond character document the converter
// reads.
type Character struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Gender             string          `json:"gender,omitempty"`
	Faith              string          `json:"faith,omitempty"`
	Age                *int            `json:"age,omitempty"`
	Height             string          `json:"height,omitempty"`
	Weight             *int            `json:"weight,omitempty"`
	AlignmentID        *int            `json:"alignmentId,omitempty"`
	Stats              []Stat          `json:"stats"`
	BonusStats         []Stat          `json:"bonusStats"`
	OverrideStats      []Stat          `json:"overrideStats"`
	Race               *Race           `json:"race,omitempty"`
	Classes            []Class         `json:"classes"`
	Background         *Background     `json:"background,omitempty"`
	Inventory          []InventoryItem `json:"inventory"`
	Modifiers          Modifiers       `json:"modifiers"`
	Feats              []Feat          `json:"feats"`
	Currencies         *Currencies     `json:"currencies,omitempty"`
	Traits             *Personality    `json:"traits,omitempty"`
	BaseHitPoints      int             `json:"baseHitPoints"`
	BonusHitPoints     *int            `json:"bonusHitPoints,omitempty"`
	OverrideHitPoints  *int            `json:"overrideHitPoints,omitempty"`
	RemovedHitPoints   int             `json:"removedHitPoints"`
	TemporaryHitPoints int             `json:"temporaryHitPoints"`
}

// Stat is one entry of stats, bonusStats or overrideStats. Value is null for
// unset bonus and override entries.
type Stat struct {
	ID    int  `json:"id"`
	Value *int `json:"value"`
}

// Race describes the character's species and its traits.
type Race struct {
	FullName         string        `json:"fullName"`
	BaseRaceName     string        `json:"baseRaceName"`
	BaseName         string        `json:"baseName"`
	IsSubRace        bool          `json:"isSubRace"`
	SubRaceShortName string        `json:"subRaceShortName,omitempty"`
	RacialTraits     []RacialTrait `json:"racialTraits"`
	WeightSpeeds     *WeightSpeeds `json:"weightSpeeds,omitempty"`
}

// DisplayName prefers the full race name.
func (r *Race) DisplayName() string {
	if r == nil {
		return ""
	}
	if r.FullName != "" {
		return r.FullName
	}
	if r.BaseRaceName != "" {
		return r.BaseRaceName
	}
	return r.BaseName
}

// RacialTrait wraps a trait definition.
type RacialTrait struct {
	Definition TraitDefinition `json:"definition"`
}

// TraitDefinition is the body of a racial trait.
type TraitDefinition struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Snippet        string `json:"snippet,omitempty"`
	DisplayOrder   int    `json:"displayOrder"`
	HideInSheet    bool   `json:"hideInSheet"`
	IsSubRaceTrait bool   `json:"isSubRaceTrait"`
}

// WeightSpeeds holds movement speeds keyed by encumbrance state.
type WeightSpeeds struct {
	Normal Speeds `json:"normal"`
}

// Speeds in feet.
type Speeds struct {
	Walk   int `json:"walk"`
	Fly    int `json:"fly"`
	Burrow int `json:"burrow"`
	Swim   int `json:"swim"`
	Climb  int `json:"climb"`
}

// Class is one class the character has levels in.
type Class struct {
	ID                 int64            `json:"id"`
	Level              int              `json:"level"`
	IsStartingClass    bool             `json:"isStartingClass"`
	Definition         ClassDefinition  `json:"definition"`
	SubclassDefinition *ClassDefinition `json:"subclassDefinition,omitempty"`
	ClassFeatures      []ClassFeature   `json:"classFeatures"`
}

// SubclassName returns the subclass name or "".
func (c Class) SubclassName() string {
	if c.SubclassDefinition == nil {
		return ""
	}
	return c.SubclassDefinition.Name
}

// ClassDefinition describes a class or subclass.
type ClassDefinition struct {
	ID                    int64               `json:"id"`
	Name                  string              `json:"name"`
	HitDice               int                 `json:"hitDice"`
	SpellCastingAbilityID *int                `json:"spellCastingAbilityId,omitempty"`
	CanCastSpells         bool                `json:"canCastSpells"`
	ClassFeatures         []FeatureDefinition `json:"classFeatures"`
}

// ClassFeature wraps a feature definition granted by a class.
type ClassFeature struct {
	Definition FeatureDefinition `json:"definition"`
}

// FeatureDefinition is the body of a class feature.
type FeatureDefinition struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Snippet       string `json:"snippet,omitempty"`
	RequiredLevel int    `json:"requiredLevel"`
	DisplayOrder  int    `json:"displayOrder"`
}

// Background is the character background.
type Background struct {
	Definition *BackgroundDefinition `json:"definition,omitempty"`
}

// BackgroundDefinition is the body of a background.
type BackgroundDefinition struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Feat is a feat the character has taken.
type Feat struct {
	ComponentTypeID int64          `json:"componentTypeId"`
	ComponentID     int64          `json:"componentId"`
	Definition      FeatDefinition `json:"definition"`
}

// FeatDefinition is the body of a feat.
type FeatDefinition struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Snippet     string         `json:"snippet,omitempty"`
	Categories  []FeatCategory `json:"categories"`
}

// FeatCategory is a source metadata tag such as "Origin" or "General".
type FeatCategory struct {
	TagName string `json:"tagName"`
}

// Currencies held by the character.
type Currencies struct {
	CP int `json:"cp"`
	SP int `json:"sp"`
	EP int `json:"ep"`
	GP int `json:"gp"`
	PP int `json:"pp"`
}

// Personality holds the free-text characteristics.
type Personality struct {
	PersonalityTraits string `json:"personalityTraits,omitempty"`
	Ideals            string `json:"ideals,omitempty"`
	Bonds             string `json:"bonds,omitempty"`
	Flaws             string `json:"flaws,omitempty"`
	Appearance        string `json:"appearance,omitempty"`
}

// TotalLevel sums class levels.
func (c *Character) TotalLevel() int {
	total := 0
	for _, class := range c.Classes {
		total += class.Level
	}
	return total
}

// BackgroundName returns the background name or "".
func (c *Character) BackgroundName() string {
	if c.Background == nil || c.Background.Definition == nil {
		return ""
	}
	return c.Background.Definition.Name
}
