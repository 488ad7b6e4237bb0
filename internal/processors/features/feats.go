package features

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
)

// DefaultCategory is used for feats without tags.
const DefaultCategory = "General"

// recognizedCategories in display form.
var recognizedCategories = []string{
	"Origin",
	"General",
	"Fighting Style",
	"Epic Boon",
	"Dragonmark",
}

// Category picks the first recognised tag, else the first tag, else
// DefaultCategory.
func Category(tags []string) string {
	for _, tag := range tags {
		for _, known := range recognizedCategories {
			if strings.EqualFold(strings.TrimSpace(tag), known) {
				return known
			}
		}
	}
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			return cases.Title(language.English).String(t)
		}
	}
	return DefaultCategory
}

// Feats converts the character's feats. featModifiers are matched to feats
// by component id.
func Feats(feats []ddb.Feat, featModifiers []ddb.Modifier, heuristics bool) []Feat {
	out := make([]Feat, 0, len(feats))
	seen := make(map[string]bool)
	for _, f := range feats {
		def := f.Definition
		key := normalizeName(def.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		tags := make([]string, 0, len(def.Categories))
		for _, c := range def.Categories {
			if c.TagName != "" {
				tags = append(tags, c.TagName)
			}
		}

		effects := StructuredEffects(def.ID, featModifiers)
		if len(effects) == 0 && heuristics {
			effects = HeuristicEffects(def.Name)
		}

		out = append(out, Feat{
			ID:          def.ID,
			Name:        strings.TrimSpace(def.Name),
			Description: def.Description,
			Snippet:     def.Snippet,
			Category:    Category(tags),
			Tags:        tags,
			Effects:     effects,
		})
	}
	return out
}
