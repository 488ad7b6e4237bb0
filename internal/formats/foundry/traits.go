package foundry

import (
	"strings"
)

// languageCodes maps display names to dnd5e system language keys.
var languageCodes = map[string]string{
	"common":        "common",
	"dwarvish":      "dwarvish",
	"elvish":        "elvish",
	"giant":         "giant",
	"gnomish":       "gnomish",
	"goblin":        "goblin",
	"halfling":      "halfling",
	"orc":           "orc",
	"abyssal":       "abyssal",
	"celestial":     "celestial",
	"draconic":      "draconic",
	"deep speech":   "deep",
	"infernal":      "infernal",
	"primordial":    "primordial",
	"aquan":         "aquan",
	"auran":         "auran",
	"ignan":         "ignan",
	"terran":        "terran",
	"sylvan":        "sylvan",
	"undercommon":   "undercommon",
	"druidic":       "druidic",
	"thieves' cant": "cant",
	"thieves cant":  "cant",
	"sign language": "sign",
}

// LanguageCodes splits language names into known codes and a
// semicolon-joined custom string for the rest.
func LanguageCodes(names []string) ([]string, string) {
	return split(names, func(name string) (string, bool) {
		code, ok := languageCodes[strings.ToLower(strings.TrimSpace(name))]
		return code, ok
	})
}

var damageTypes = map[string]bool{
	"acid": true, "bludgeoning": true, "cold": true, "fire": true, "force": true,
	"lightning": true, "necrotic": true, "piercing": true, "poison": true,
	"psychic": true, "radiant": true, "slashing": true, "thunder": true,
}

// DamageTypeCodes splits damage type names the same way as LanguageCodes.
func DamageTypeCodes(names []string) ([]string, string) {
	return split(names, func(name string) (string, bool) {
		key := strings.ToLower(strings.TrimSpace(name))
		return key, damageTypes[key]
	})
}

func split(names []string, lookup func(string) (string, bool)) ([]string, string) {
	codes := []string{}
	var custom []string
	seen := make(map[string]bool)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if code, ok := lookup(name); ok {
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
			continue
		}
		custom = append(custom, name)
	}
	return codes, strings.Join(custom, ";")
}
