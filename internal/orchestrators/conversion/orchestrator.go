// Package conversion runs the character conversion pipeline: resolve the
// D&D Beyond document, compute the rules engines and render each requested
// output format.
package conversion

//go:generate mockgen -destination=mock/mock_service.go -package=conversionmock github.com/KirkDiggler/ddb-converter/internal/orchestrators/conversion Service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KirkDiggler/ddb-converter/internal/clients/dndbeyond"
	"github.com/KirkDiggler/ddb-converter/internal/clients/external"
	"github.com/KirkDiggler/ddb-converter/internal/engine/abilities"
	"github.com/KirkDiggler/ddb-converter/internal/engine/encumbrance"
	"github.com/KirkDiggler/ddb-converter/internal/engine/spellslots"
	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
	"github.com/KirkDiggler/ddb-converter/internal/errors"
	"github.com/KirkDiggler/ddb-converter/internal/flags"
	"github.com/KirkDiggler/ddb-converter/internal/formats/fantasygrounds"
	"github.com/KirkDiggler/ddb-converter/internal/formats/foundry"
	"github.com/KirkDiggler/ddb-converter/internal/pkg/idgen"
	"github.com/KirkDiggler/ddb-converter/internal/processors/features"
	"github.com/KirkDiggler/ddb-converter/internal/processors/inventory"
	"github.com/KirkDiggler/ddb-converter/internal/processors/sheet"
	charactercache "github.com/KirkDiggler/ddb-converter/internal/repositories/character_cache"
)

// Service defines the interface for character conversion
type Service interface {
	Convert(ctx context.Context, input *ConvertInput) (*ConvertOutput, error)
}

// Config holds the dependencies for the conversion orchestrator
type Config struct {
	// DNDBeyond fetches characters by id. Optional; without it only RawJSON
	// conversions are possible.
	DNDBeyond dndbeyond.Client
	// Cache stores fetched documents. Optional.
	Cache charactercache.Repository
	// SRD fills missing weapon damage. Optional.
	SRD         external.Client
	IDGenerator idgen.Generator
	// Flags are the defaults every conversion starts from
	Flags flags.Set
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	ddb   dndbeyond.Client
	cache charactercache.Repository
	srd   external.Client
	idGen idgen.Generator
	flags flags.Set
}

// NewOrchestrator creates a new conversion orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		ddb:   cfg.DNDBeyond,
		cache: cfg.Cache,
		srd:   cfg.SRD,
		idGen: cfg.IDGenerator,
		flags: cfg.Flags,
	}, nil
}

// computed holds every engine result; a nil part failed and its consumers
// degrade.
type computed struct {
	character   *ddb.Character
	scores      abilities.Results
	spells      *spellslots.Result
	encumbrance *encumbrance.Result
	inventory   *inventory.Result
	features    *features.Result
	sheet       *sheet.Sheet
}

func (o *orchestrator) Convert(ctx context.Context, input *ConvertInput) (*ConvertOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	formats, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	fl, err := o.flags.With(input.Flags)
	if err != nil {
		return nil, errors.Wrap(err, "invalid feature flags")
	}

	start := time.Now()
	output := &ConvertOutput{
		ConversionID: o.idGen.Generate(),
	}

	raw, source, err := o.resolve(ctx, input)
	if err != nil {
		return nil, err
	}
	output.Source = source

	character, err := ddb.Parse(raw)
	if err != nil {
		return nil, err
	}
	output.CharacterID = character.ID
	output.CharacterName = character.Name

	logger := slog.With(
		"conversion_id", output.ConversionID,
		"character_id", character.ID)
	logger.InfoContext(ctx, "Converting character",
		"source", source,
		"formats", formats)

	parts, warnings, err := o.compute(ctx, character, fl)
	if err != nil {
		return nil, err
	}
	output.Warnings = append(output.Warnings, warnings...)

	for _, format := range formats {
		switch format {
		case FormatFantasyGrounds:
			doc, err := fantasygrounds.Render(ctx, &fantasygrounds.Input{
				Character:   parts.character,
				Scores:      parts.scores,
				Spells:      parts.spells,
				Encumbrance: parts.encumbrance,
				Inventory:   parts.inventory,
				Features:    parts.features,
				Sheet:       parts.sheet,
			})
			if err != nil {
				return nil, errors.Wrap(err, "failed to render Fantasy Grounds document")
			}
			output.FantasyGroundsXML = doc.XML
			output.Degraded = doc.Degraded
			for _, d := range doc.Degraded {
				output.Warnings = append(output.Warnings, fmt.Sprintf("%s unavailable: %s", d.Section, d.Reason))
			}

		case FormatFoundry:
			if !fl.Enabled(flags.FoundryOutput) {
				output.Warnings = append(output.Warnings, "foundry output is disabled by feature flag")
				continue
			}
			doc, err := foundry.Render(&foundry.Input{
				Character: parts.character,
				Scores:    parts.scores,
				Sheet:     parts.sheet,
				Features:  parts.features,
				Inventory: parts.inventory,
			})
			if err != nil {
				logger.WarnContext(ctx, "Foundry output failed", "error", err)
				output.Warnings = append(output.Warnings, "foundry output unavailable: "+errors.GetMessage(err))
				continue
			}
			output.FoundryJSON = doc
		}
	}

	output.Summary = summarize(parts, fl)

	logger.InfoContext(ctx, "Converted character",
		"degraded_sections", len(output.Degraded),
		"warnings", len(output.Warnings),
		"duration_ms", time.Since(start).Milliseconds())

	return output, nil
}

func validateInput(input *ConvertInput) ([]Format, error) {
	vb := errors.NewValidationBuilder()

	switch {
	case input.CharacterID == "" && len(input.RawJSON) == 0:
		vb.Field("character_id", "either character_id or raw_json is required")
	case input.CharacterID != "" && len(input.RawJSON) != 0:
		vb.Field("character_id", "character_id and raw_json are mutually exclusive")
	}

	formats := input.Formats
	if len(formats) == 0 {
		formats = []Format{FormatFantasyGrounds}
	}
	seen := make(map[Format]bool)
	var unique []Format
	for _, f := range formats {
		if _, ok := ParseFormat(string(f)); !ok {
			vb.Fieldf("formats", "unknown format %q", f)
			continue
		}
		if !seen[f] {
			seen[f] = true
			unique = append(unique, f)
		}
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}
	return unique, nil
}

// resolve returns the raw document, reading through the cache.
func (o *orchestrator) resolve(ctx context.Context, input *ConvertInput) ([]byte, Source, error) {
	if len(input.RawJSON) > 0 {
		return input.RawJSON, SourceInput, nil
	}

	id, err := dndbeyond.ParseCharacterID(input.CharacterID)
	if err != nil {
		return nil, "", err
	}

	if o.cache != nil && !input.Refresh {
		out, err := o.cache.Get(ctx, charactercache.GetInput{CharacterID: id})
		switch {
		case err == nil:
			slog.DebugContext(ctx, "Character cache hit", "character_id", id)
			return out.Entry.Data, SourceCache, nil
		case !errors.IsNotFound(err):
			slog.WarnContext(ctx, "Character cache read failed", "character_id", id, "error", err)
		}
	}

	if o.ddb == nil {
		return nil, "", errors.FailedPrecondition("fetching characters by id is not configured")
	}

	raw, err := o.ddb.FetchCharacter(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if o.cache != nil {
		if _, err := o.cache.Put(ctx, charactercache.PutInput{CharacterID: id, Data: raw}); err != nil {
			slog.WarnContext(ctx, "Character cache write failed", "character_id", id, "error", err)
		}
	}

	return raw, SourceDNDBeyond, nil
}

// compute runs the engines. Ability scores feed everything else, so a
// failure there fails the conversion; any other failing part is dropped
// with a warning.
func (o *orchestrator) compute(ctx context.Context, ch *ddb.Character, fl flags.Set) (*computed, []string, error) {
	parts := &computed{character: ch}
	var warnings []string

	run := func(name string, fn func() error) bool {
		err := safely(name, fn)
		if err == nil {
			return true
		}
		slog.WarnContext(ctx, "Conversion step failed",
			"step", name,
			"character_id", ch.ID,
			"error", err)
		warnings = append(warnings, fmt.Sprintf("%s unavailable: %s", name, errors.GetMessage(err)))
		return false
	}

	if err := safely("ability scores", func() error {
		parts.scores = abilities.Compute(ch)
		return nil
	}); err != nil {
		return nil, nil, errors.Wrap(err, "failed to compute ability scores")
	}

	run("spell slots", func() error {
		res := spellslots.Calculate(spellslots.ClassesFrom(ch.Classes))
		parts.spells = &res
		return nil
	})

	run("inventory", func() error {
		opts := inventory.Options{Flags: fl}
		if fl.Enabled(flags.SRDWeaponLookup) {
			opts.SRD = o.srd
		}
		res, err := inventory.Process(ctx, ch.Inventory, ch.ID, opts)
		if err != nil {
			return err
		}
		parts.inventory = res
		return nil
	})
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if parts.inventory != nil {
		run("encumbrance", func() error {
			strength := encumbrance.Strength{
				Score:         parts.scores.Score(ddb.AbilityStrength),
				PowerfulBuild: encumbrance.HasPowerfulBuild(ch),
			}
			rule := encumbrance.RuleCapacity
			if fl.Enabled(flags.VariantEncumbrance) {
				rule = encumbrance.RuleVariant
			}
			res := encumbrance.CalculateWithRule(rule, strength, parts.inventory.EncumbranceItems())
			parts.encumbrance = &res
			return nil
		})
	}

	run("features", func() error {
		parts.features = features.Process(ch, features.Options{Flags: fl})
		return nil
	})

	run("sheet", func() error {
		in := &sheet.Input{
			Character:   ch,
			Scores:      parts.scores,
			Encumbrance: parts.encumbrance,
		}
		if parts.features != nil {
			in.Feats = parts.features.Feats
		}
		res, err := sheet.Build(in)
		if err != nil {
			return err
		}
		parts.sheet = res
		return nil
	})

	return parts, warnings, nil
}

// safely converts a panic in the named step into an Internal error.
func safely(step string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Recovered(r).InSection(step)
		}
	}()
	return fn()
}

func summarize(parts *computed, fl flags.Set) Summary {
	ch := parts.character
	summary := Summary{
		Level: ch.TotalLevel(),
		Race:  ch.Race.DisplayName(),
		Flags: fl.Map(),
	}
	for _, c := range ch.Classes {
		summary.Classes = append(summary.Classes, c.Definition.Name)
	}
	if parts.inventory != nil {
		summary.InventoryItems = parts.inventory.Statistics.TotalItems
		summary.Weapons = len(parts.inventory.Weapons)
	}
	if parts.encumbrance != nil {
		summary.TotalWeight = parts.encumbrance.TotalWeight
		summary.EncumbranceLevel = string(parts.encumbrance.Level)
	}
	if parts.spells != nil {
		summary.SpellSlots = parts.spells.SpellSlots.Map()
		summary.PactMagicSlots = parts.spells.PactMagicSlots.Map()
	}
	return summary
}
