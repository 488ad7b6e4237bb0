// Package flags holds the feature switches for a conversion. A Set is a plain
// value passed through processor options; there is no global state.
package flags

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/ddb-converter/internal/errors"
)

// Name identifies a feature flag
type Name string

const (
	// SRDWeaponLookup fills missing weapon damage from the SRD API.
	SRDWeaponLookup Name = "srd_weapon_lookup"
	// FoundryOutput enables the Foundry VTT actor document.
	FoundryOutput Name = "foundry_output"
	// FeatEffectHeuristics derives feat effects from feat names when no
	// structured modifier exists.
	FeatEffectHeuristics Name = "feat_effect_heuristics"
	// StripHiddenTraits drops bookkeeping racial traits such as Age and Size.
	StripHiddenTraits Name = "strip_hidden_traits"
	// WeaponThrownSplit emits a second thrown entry for thrown melee weapons.
	WeaponThrownSplit Name = "weapon_thrown_split"
	// VariantEncumbrance grades encumbrance in 5 x STR steps instead of
	// against carrying capacity.
	VariantEncumbrance Name = "variant_encumbrance"
)

var defaults = map[Name]bool{
	SRDWeaponLookup:      false,
	FoundryOutput:        true,
	FeatEffectHeuristics: true,
	StripHiddenTraits:    true,
	WeaponThrownSplit:    true,
	VariantEncumbrance:   false,
}

// Known returns every flag name in sorted order.
func Known() []Name {
	names := make([]Name, 0, len(defaults))
	for n := range defaults {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// IsKnown reports whether name is a defined flag.
func IsKnown(name Name) bool {
	_, ok := defaults[name]
	return ok
}

// Set is an immutable collection of flag values. The zero value reports the
// defaults.
type Set struct {
	values map[Name]bool
}

// Defaults returns a Set holding the default values.
func Defaults() Set {
	return Set{}
}

// New returns the defaults with overrides applied.
func New(overrides map[Name]bool) (Set, error) {
	return Defaults().With(overrides)
}

// With returns a copy of s with overrides applied. Overrides win over both
// defaults and earlier overrides.
func (s Set) With(overrides map[Name]bool) (Set, error) {
	vb := errors.NewValidationBuilder()
	for name := range overrides {
		if !IsKnown(name) {
			vb.Field(string(name), "unknown feature flag")
		}
	}
	if err := vb.Build(); err != nil {
		return s, err
	}

	merged := make(map[Name]bool, len(s.values)+len(overrides))
	for k, v := range s.values {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return Set{values: merged}, nil
}

// Enabled reports the value of a flag. Unknown flags are disabled.
func (s Set) Enabled(name Name) bool {
	if v, ok := s.values[name]; ok {
		return v
	}
	return defaults[name]
}

// Map returns every flag with its effective value.
func (s Set) Map() map[string]bool {
	out := make(map[string]bool, len(defaults))
	for name := range defaults {
		out[string(name)] = s.Enabled(name)
	}
	return out
}

// Parse reads a YAML mapping of flag name to boolean.
//
//	srd_weapon_lookup: true
//	weapon_thrown_split: false
func Parse(data []byte) (map[Name]bool, error) {
	raw := make(map[string]bool)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid feature flag file")
	}

	out := make(map[Name]bool, len(raw))
	for k, v := range raw {
		out[Name(k)] = v
	}
	return out, nil
}

// Load reads overrides from a YAML file and applies them to the defaults.
// An empty path returns the defaults.
func Load(path string) (Set, error) {
	if path == "" {
		return Defaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, errors.Wrapf(err, "failed to read feature flag file %s", path)
	}

	overrides, err := Parse(data)
	if err != nil {
		return Set{}, err
	}
	return New(overrides)
}
