package conversion

import (
	"github.com/KirkDiggler/ddb-converter/internal/flags"
	"github.com/KirkDiggler/ddb-converter/internal/formats/fantasygrounds"
)

// Format names an output document.
type Format string

const (
	// FormatFantasyGrounds is the Fantasy Grounds <character> XML.
	FormatFantasyGrounds Format = "fg"
	// FormatFoundry is the Foundry VTT dnd5e actor JSON.
	FormatFoundry Format = "foundry"
)

// ParseFormat accepts the short names and a few long aliases.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "fg", "fantasygrounds", "fantasy-grounds":
		return FormatFantasyGrounds, true
	case "foundry", "foundryvtt":
		return FormatFoundry, true
	default:
		return "", false
	}
}

// Source reports where the character document came from.
type Source string

const (
	SourceInput     Source = "input"
	SourceCache     Source = "cache"
	SourceDNDBeyond Source = "dndbeyond"
)

// ConvertInput defines the request for converting a character. Exactly one
// of CharacterID and RawJSON is set.
type ConvertInput struct {
	CharacterID string
	RawJSON     []byte
	// Formats defaults to Fantasy Grounds only
	Formats []Format
	// Flags override the orchestrator defaults for this conversion
	Flags map[flags.Name]bool
	// Refresh skips the cache read
	Refresh bool
}

// ConvertOutput defines the response for converting a character
type ConvertOutput struct {
	ConversionID  string
	CharacterID   int64
	CharacterName string
	Source        Source

	FantasyGroundsXML string
	FoundryJSON       []byte

	// Degraded lists Fantasy Grounds sections replaced by a comment
	Degraded []fantasygrounds.SectionError
	// Warnings are human readable notes about partial output
	Warnings []string
	Summary  Summary
}

// Summary gives the headline numbers of a conversion.
type Summary struct {
	Level            int
	Classes          []string
	Race             string
	InventoryItems   int
	Weapons          int
	TotalWeight      float64
	EncumbranceLevel string
	SpellSlots       map[int]int
	PactMagicSlots   map[int]int
	Flags            map[string]bool
}
