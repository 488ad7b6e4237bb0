package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/ddb-converter/internal/clients/external"
	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
	"github.com/KirkDiggler/ddb-converter/internal/errors"
)

// DamageSource records which layer produced a weapon's damage.
type DamageSource string

// Damage sources, most trusted first.
const (
	DamageFromDefinition DamageSource = "definition"
	DamageFromSRD        DamageSource = "srd"
	DamageFromKeyword    DamageSource = "keyword"
	DamageFromDefault    DamageSource = "default"
)

// Damage is a weapon's damage roll.
type Damage struct {
	Dice   string
	Bonus  int
	Type   string
	Source DamageSource
}

var defaultDamage = Damage{Dice: "1d6", Type: "slashing", Source: DamageFromDefault}

var diceNotationRegex = regexp.MustCompile(`^\s*(\d*)d(\d+)\s*(?:([+-])\s*(\d+))?\s*$`)

// parseDice splits notation like "2d6+1" and checks it with the dice roller.
func parseDice(notation string) (count, size, bonus int, err error) {
	matches := diceNotationRegex.FindStringSubmatch(strings.ToLower(notation))
	if matches == nil {
		return 0, 0, 0, errors.InvalidArgumentf("invalid dice notation: %s (expected format: XdY)", notation)
	}

	count = 1
	if matches[1] != "" {
		if count, err = strconv.Atoi(matches[1]); err != nil {
			return 0, 0, 0, errors.InvalidArgumentf("invalid dice count in notation: %s", notation)
		}
	}
	if size, err = strconv.Atoi(matches[2]); err != nil {
		return 0, 0, 0, errors.InvalidArgumentf("invalid die size in notation: %s", notation)
	}
	if matches[4] != "" {
		bonus, _ = strconv.Atoi(matches[4])
		if matches[3] == "-" {
			bonus = -bonus
		}
	}

	if _, err := dice.NewRoll(count, size); err != nil {
		return 0, 0, 0, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid dice notation: "+notation)
	}
	return count, size, bonus, nil
}

// normalizeDice returns "NdM" plus any flat bonus, or false when the
// notation cannot be rolled.
func normalizeDice(notation string) (string, int, bool) {
	count, size, bonus, err := parseDice(notation)
	if err != nil {
		return "", 0, false
	}
	return fmt.Sprintf("%dd%d", count, size), bonus, true
}

// DefinitionDamage reads damage from the item definition itself.
func DefinitionDamage(def ddb.ItemDefinition) (Damage, bool) {
	if def.Damage == nil {
		return Damage{}, false
	}

	notation := def.Damage.DiceString
	if notation == "" && def.Damage.DiceCount != nil && def.Damage.DiceValue != nil {
		notation = fmt.Sprintf("%dd%d", *def.Damage.DiceCount, *def.Damage.DiceValue)
	}
	diceExpr, bonus, ok := normalizeDice(notation)
	if !ok {
		return Damage{}, false
	}
	if def.Damage.FixedValue != nil {
		bonus += *def.Damage.FixedValue
	}

	return Damage{
		Dice:   diceExpr,
		Bonus:  bonus,
		Type:   strings.ToLower(def.DamageType),
		Source: DamageFromDefinition,
	}, true
}

// SRDDamage looks the weapon up in the SRD by name.
func SRDDamage(ctx context.Context, client external.Client, name string) (Damage, bool) {
	if client == nil {
		return Damage{}, false
	}

	weapon, err := client.GetWeapon(ctx, name)
	if err != nil {
		if !errors.IsNotFound(err) {
			slog.WarnContext(ctx, "SRD weapon lookup failed", "weapon", name, "error", err)
		}
		return Damage{}, false
	}

	diceExpr, bonus, ok := normalizeDice(weapon.DamageDice)
	if !ok {
		return Damage{}, false
	}
	return Damage{
		Dice:   diceExpr,
		Bonus:  bonus,
		Type:   weapon.DamageType,
		Source: DamageFromSRD,
	}, true
}

type keywordEntry struct {
	pattern *regexp.Regexp
	dice    string
	kind    string
}

func keyword(word, diceExpr, kind string) keywordEntry {
	return keywordEntry{
		pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `s?\b`),
		dice:    diceExpr,
		kind:    kind,
	}
}

// Longer names come before the shorter names they contain.
var keywordDamage = []keywordEntry{
	keyword("hand crossbow", "1d6", "piercing"),
	keyword("heavy crossbow", "1d10", "piercing"),
	keyword("light crossbow", "1d8", "piercing"),
	keyword("crossbow, hand", "1d6", "piercing"),
	keyword("crossbow, heavy", "1d10", "piercing"),
	keyword("crossbow, light", "1d8", "piercing"),
	keyword("crossbow", "1d8", "piercing"),
	keyword("longbow", "1d8", "piercing"),
	keyword("shortbow", "1d6", "piercing"),
	keyword("greatsword", "2d6", "slashing"),
	keyword("greataxe", "1d12", "slashing"),
	keyword("greatclub", "1d8", "bludgeoning"),
	keyword("longsword", "1d8", "slashing"),
	keyword("shortsword", "1d6", "piercing"),
	keyword("scimitar", "1d6", "slashing"),
	keyword("rapier", "1d8", "piercing"),
	keyword("dagger", "1d4", "piercing"),
	keyword("handaxe", "1d6", "slashing"),
	keyword("battleaxe", "1d8", "slashing"),
	keyword("light hammer", "1d4", "bludgeoning"),
	keyword("warhammer", "1d8", "bludgeoning"),
	keyword("war pick", "1d8", "piercing"),
	keyword("maul", "2d6", "bludgeoning"),
	keyword("mace", "1d6", "bludgeoning"),
	keyword("morningstar", "1d8", "piercing"),
	keyword("flail", "1d8", "bludgeoning"),
	keyword("glaive", "1d10", "slashing"),
	keyword("halberd", "1d10", "slashing"),
	keyword("lance", "1d12", "piercing"),
	keyword("pike", "1d10", "piercing"),
	keyword("trident", "1d6", "piercing"),
	keyword("javelin", "1d6", "piercing"),
	keyword("spear", "1d6", "piercing"),
	keyword("quarterstaff", "1d6", "bludgeoning"),
	keyword("club", "1d4", "bludgeoning"),
	keyword("sickle", "1d4", "slashing"),
	keyword("whip", "1d4", "slashing"),
	keyword("sling", "1d4", "bludgeoning"),
	keyword("dart", "1d4", "piercing"),
}

// KeywordDamage matches the weapon name against common weapon names.
func KeywordDamage(name string) (Damage, bool) {
	for _, entry := range keywordDamage {
		if entry.pattern.MatchString(name) {
			return Damage{Dice: entry.dice, Type: entry.kind, Source: DamageFromKeyword}, true
		}
	}
	return Damage{}, false
}

// resolveDamage tries each layer in order and falls back to 1d6 slashing.
// A damage type missing from an earlier layer is filled from a later one.
func (p *processor) resolveDamage(ctx context.Context, def ddb.ItemDefinition) Damage {
	if d, ok := DefinitionDamage(def); ok {
		if d.Type == "" {
			if k, found := KeywordDamage(def.Name); found {
				d.Type = k.Type
			} else {
				d.Type = defaultDamage.Type
			}
		}
		return d
	}

	if p.srdEnabled() {
		if d, ok := SRDDamage(ctx, p.opts.SRD, def.Name); ok {
			if d.Type == "" {
				d.Type = strings.ToLower(def.DamageType)
			}
			return d
		}
	}

	if d, ok := KeywordDamage(def.Name); ok {
		if def.DamageType != "" {
			d.Type = strings.ToLower(def.DamageType)
		}
		return d
	}

	d := defaultDamage
	if def.DamageType != "" {
		d.Type = strings.ToLower(def.DamageType)
	}
	return d
}
