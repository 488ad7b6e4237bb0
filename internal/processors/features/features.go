// Package features classifies class features, racial traits and feats and
// derives feat mechanics.
package features

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
	"github.com/KirkDiggler/ddb-converter/internal/flags"
)

// Sources tagged on features and traits.
const (
	SourceClass    = "class"
	SourceSubclass = "subclass"
	SourceRace     = "race"
	SourceSubrace  = "subrace"
	SourceFeat     = "feat"
)

// Options configure Process.
type Options struct {
	Flags flags.Set
}

// Feature is a class or subclass feature the character has reached.
type Feature struct {
	ID          int64
	Name        string
	Description string
	Snippet     string
	Source      string
	ClassName   string
	Level       int
}

// Trait is a racial trait shown on the sheet.
type Trait struct {
	ID          int64
	Name        string
	Description string
	Snippet     string
	Source      string
	RaceName    string
}

// Feat is a feat with its category and derived effects.
type Feat struct {
	ID          int64
	Name        string
	Description string
	Snippet     string
	Category    string
	Tags        []string
	Effects     []Effect
}

// Result holds everything Process produced.
type Result struct {
	ClassFeatures []Feature
	RacialTraits  []Trait
	Feats         []Feat
}

// ByClass groups class features by class name, keeping order.
func (r *Result) ByClass() map[string][]Feature {
	out := make(map[string][]Feature)
	for _, f := range r.ClassFeatures {
		out[f.ClassName] = append(out[f.ClassName], f)
	}
	return out
}

// ByCategory groups feats by category, keeping order.
func (r *Result) ByCategory() map[string][]Feat {
	out := make(map[string][]Feat)
	for _, f := range r.Feats {
		out[f.Category] = append(out[f.Category], f)
	}
	return out
}

// Process classifies the character's features. It never fails; anything it
// cannot classify is passed through with defaults.
func Process(character *ddb.Character, opts Options) *Result {
	if character == nil {
		return &Result{}
	}

	result := &Result{
		ClassFeatures: ClassFeatures(character.Classes),
		RacialTraits:  RacialTraits(character.Race, opts.Flags.Enabled(flags.StripHiddenTraits)),
		Feats:         Feats(character.Feats, character.Modifiers.Feat, opts.Flags.Enabled(flags.FeatEffectHeuristics)),
	}

	slog.Debug("Processed features",
		"character_id", character.ID,
		"class_features", len(result.ClassFeatures),
		"racial_traits", len(result.RacialTraits),
		"feats", len(result.Feats))

	return result
}

// bookkeepingFeatures are tracked elsewhere on the sheet.
var bookkeepingFeatures = map[string]bool{
	"hit points":                true,
	"proficiencies":             true,
	"equipment":                 true,
	"ability score improvement": true,
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ClassFeatures returns the reached features of every class, deduplicated by
// name within a class and ordered by level.
func ClassFeatures(classes []ddb.Class) []Feature {
	var out []Feature
	for _, class := range classes {
		className := class.Definition.Name
		seen := make(map[string]bool)
		var features []Feature

		add := func(def ddb.FeatureDefinition, source string) {
			key := normalizeName(def.Name)
			if key == "" || seen[key] || bookkeepingFeatures[key] {
				return
			}
			if def.RequiredLevel > class.Level {
				return
			}
			seen[key] = true
			features = append(features, Feature{
				ID:          def.ID,
				Name:        strings.TrimSpace(def.Name),
				Description: def.Description,
				Snippet:     def.Snippet,
				Source:      source,
				ClassName:   className,
				Level:       def.RequiredLevel,
			})
		}

		for _, cf := range class.ClassFeatures {
			add(cf.Definition, SourceClass)
		}
		for _, def := range class.Definition.ClassFeatures {
			add(def, SourceClass)
		}
		if class.SubclassDefinition != nil {
			for _, def := range class.SubclassDefinition.ClassFeatures {
				add(def, SourceSubclass)
			}
		}

		sort.SliceStable(features, func(i, j int) bool {
			return features[i].Level < features[j].Level
		})
		out = append(out, features...)
	}
	return out
}

// hiddenTraits are racial traits covered by other sheet sections.
var hiddenTraits = map[string]bool{
	"ability score increase":  true,
	"ability score increases": true,
	"darkvision":              true,
	"age":                     true,
	"alignment":               true,
	"size":                    true,
	"speed":                   true,
	"languages":               true,
	"creature type":           true,
}

// IsHiddenTrait reports whether a trait name is on the hidden list.
func IsHiddenTrait(name string) bool {
	return hiddenTraits[normalizeName(name)]
}

// RacialTraits returns the visible traits of a race. A subrace trait replaces
// a race trait of the same name at the race trait's position.
func RacialTraits(race *ddb.Race, stripHidden bool) []Trait {
	if race == nil {
		return nil
	}

	var out []Trait
	index := make(map[string]int)
	fromSubrace := make(map[string]bool)

	for _, rt := range race.RacialTraits {
		def := rt.Definition
		key := normalizeName(def.Name)
		if key == "" {
			continue
		}
		if stripHidden && IsHiddenTrait(key) {
			continue
		}

		trait := Trait{
			ID:          def.ID,
			Name:        strings.TrimSpace(def.Name),
			Description: def.Description,
			Snippet:     def.Snippet,
			Source:      SourceRace,
			RaceName:    race.DisplayName(),
		}
		if def.IsSubRaceTrait {
			trait.Source = SourceSubrace
		}

		pos, exists := index[key]
		switch {
		case !exists:
			index[key] = len(out)
			fromSubrace[key] = def.IsSubRaceTrait
			out = append(out, trait)
		case def.IsSubRaceTrait && !fromSubrace[key]:
			out[pos] = trait
			fromSubrace[key] = true
		}
	}
	return out
}
