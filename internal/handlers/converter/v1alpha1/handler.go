// Package v1alpha1 handles the ddbconverter.v1alpha1 gRPC service
package v1alpha1

import (
	"context"
	"log/slog"
	"strconv"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/ddb-converter/internal/errors"
	"github.com/KirkDiggler/ddb-converter/internal/flags"
	"github.com/KirkDiggler/ddb-converter/internal/orchestrators/conversion"
)

// Request and response field names.
const (
	FieldCharacterID    = "character_id"
	FieldCharacter      = "character"
	FieldRawJSON        = "raw_json"
	FieldFormats        = "formats"
	FieldFlags          = "flags"
	FieldRefresh        = "refresh"
	FieldConversionID   = "conversion_id"
	FieldCharacterName  = "character_name"
	FieldSource         = "source"
	FieldFantasyGrounds = "fantasy_grounds_xml"
	FieldFoundry        = "foundry_actor"
	FieldWarnings       = "warnings"
	FieldDegraded       = "degraded_sections"
	FieldSummary        = "summary"
)

// HandlerConfig holds dependencies for the converter handler
type HandlerConfig struct {
	ConversionService conversion.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.ConversionService == nil {
		return errors.InvalidArgument("conversion service is required")
	}
	return nil
}

// Handler implements ConverterServiceServer
type Handler struct {
	conversionService conversion.Service
}

var _ ConverterServiceServer = (*Handler)(nil)

// NewHandler creates a new converter handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		conversionService: cfg.ConversionService,
	}, nil
}

// Convert converts one character. The request carries either character_id,
// raw_json (a string) or character (the document as an object).
func (h *Handler) Convert(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := convertInputFromStruct(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.conversionService.Convert(ctx, input)
	if err != nil {
		level := slog.LevelError
		if errors.GetCode(err).CallerFault() {
			level = slog.LevelInfo
		}
		slog.Log(ctx, level, "Conversion failed",
			"character_id", input.CharacterID,
			"code", errors.GetCode(err).String(),
			"error", err)
		return nil, errors.ToGRPCError(err)
	}

	resp, err := convertOutputToStruct(output)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

func convertInputFromStruct(req *structpb.Struct) (*conversion.ConvertInput, error) {
	if req == nil {
		return nil, errors.InvalidArgument("request is required")
	}
	fields := req.GetFields()
	vb := errors.NewValidationBuilder()
	input := &conversion.ConvertInput{}

	if v, ok := fields[FieldCharacterID]; ok {
		switch kind := v.GetKind().(type) {
		case *structpb.Value_StringValue:
			input.CharacterID = kind.StringValue
		case *structpb.Value_NumberValue:
			input.CharacterID = strconv.FormatInt(int64(kind.NumberValue), 10)
		default:
			vb.Field(FieldCharacterID, "must be a string or number")
		}
	}

	if v, ok := fields[FieldRawJSON]; ok {
		if _, isString := v.GetKind().(*structpb.Value_StringValue); isString {
			input.RawJSON = []byte(v.GetStringValue())
		} else {
			vb.Field(FieldRawJSON, "must be a string")
		}
	}

	if v, ok := fields[FieldCharacter]; ok {
		if doc := v.GetStructValue(); doc != nil {
			raw, err := protojson.Marshal(doc)
			if err != nil {
				vb.Field(FieldCharacter, "could not be encoded")
			} else {
				input.RawJSON = raw
			}
		} else {
			vb.Field(FieldCharacter, "must be an object")
		}
	}

	if v, ok := fields[FieldFormats]; ok {
		list := v.GetListValue()
		if list == nil {
			vb.Field(FieldFormats, "must be a list")
		}
		for _, item := range list.GetValues() {
			format, ok := conversion.ParseFormat(item.GetStringValue())
			if !ok {
				vb.Fieldf(FieldFormats, "unknown format %q", item.GetStringValue())
				continue
			}
			input.Formats = append(input.Formats, format)
		}
	}

	if v, ok := fields[FieldFlags]; ok {
		overrides := v.GetStructValue()
		if overrides == nil {
			vb.Field(FieldFlags, "must be an object")
		}
		for name, value := range overrides.GetFields() {
			b, isBool := value.GetKind().(*structpb.Value_BoolValue)
			if !isBool {
				vb.Fieldf(FieldFlags+"."+name, "must be a boolean")
				continue
			}
			if input.Flags == nil {
				input.Flags = make(map[flags.Name]bool)
			}
			input.Flags[flags.Name(name)] = b.BoolValue
		}
	}

	if v, ok := fields[FieldRefresh]; ok {
		input.Refresh = v.GetBoolValue()
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}
	return input, nil
}

func convertOutputToStruct(out *conversion.ConvertOutput) (*structpb.Struct, error) {
	warnings := make([]any, 0, len(out.Warnings))
	for _, w := range out.Warnings {
		warnings = append(warnings, w)
	}
	degraded := make([]any, 0, len(out.Degraded))
	for _, d := range out.Degraded {
		degraded = append(degraded, map[string]any{"section": d.Section, "reason": d.Reason})
	}

	fields := map[string]any{
		FieldConversionID:  out.ConversionID,
		FieldCharacterID:   strconv.FormatInt(out.CharacterID, 10),
		FieldCharacterName: out.CharacterName,
		FieldSource:        string(out.Source),
		FieldWarnings:      warnings,
		FieldDegraded:      degraded,
		FieldSummary:       summaryMap(out.Summary),
	}
	if out.FantasyGroundsXML != "" {
		fields[FieldFantasyGrounds] = out.FantasyGroundsXML
	}

	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode conversion response")
	}

	if len(out.FoundryJSON) > 0 {
		actor := &structpb.Struct{}
		if err := protojson.Unmarshal(out.FoundryJSON, actor); err != nil {
			return nil, errors.Wrap(err, "failed to encode foundry actor")
		}
		resp.Fields[FieldFoundry] = structpb.NewStructValue(actor)
	}

	return resp, nil
}

func summaryMap(s conversion.Summary) map[string]any {
	classes := make([]any, 0, len(s.Classes))
	for _, c := range s.Classes {
		classes = append(classes, c)
	}
	flagValues := make(map[string]any, len(s.Flags))
	for k, v := range s.Flags {
		flagValues[k] = v
	}

	return map[string]any{
		"level":             s.Level,
		"classes":           classes,
		"race":              s.Race,
		"inventory_items":   s.InventoryItems,
		"weapons":           s.Weapons,
		"total_weight":      s.TotalWeight,
		"encumbrance_level": s.EncumbranceLevel,
		"spell_slots":       slotMap(s.SpellSlots),
		"pact_magic_slots":  slotMap(s.PactMagicSlots),
		"flags":             flagValues,
	}
}

// slotMap keys slot counts by spell level as strings.
func slotMap(slots map[int]int) map[string]any {
	out := make(map[string]any, len(slots))
	for level, count := range slots {
		out[strconv.Itoa(level)] = count
	}
	return out
}
