// Package fantasygrounds assembles the Fantasy Grounds <character> document.
// Each section is rendered on its own; a failing section is replaced by a
// comment and the rest of the document is still produced.
package fantasygrounds

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/ddb-converter/internal/engine/abilities"
	"github.com/KirkDiggler/ddb-converter/internal/engine/encumbrance"
	"github.com/KirkDiggler/ddb-converter/internal/engine/spellslots"
	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
	"github.com/KirkDiggler/ddb-converter/internal/errors"
	"github.com/KirkDiggler/ddb-converter/internal/processors/features"
	"github.com/KirkDiggler/ddb-converter/internal/processors/inventory"
	"github.com/KirkDiggler/ddb-converter/internal/processors/sheet"
	"github.com/KirkDiggler/ddb-converter/internal/xmlgen"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="utf-8"?>`
	rootOpen  = `<root version="4.1" dataversion="20230911" release="8.1|CoreRPG:4.1">`
	rootClose = `</root>`
)

// sectionDepth is the indentation of sections inside <root><character>.
const sectionDepth = 2

// Input carries every computed part of the character. Nil parts make the
// sections that need them degrade.
type Input struct {
	Character   *ddb.Character
	Scores      abilities.Results
	Spells      *spellslots.Result
	Encumbrance *encumbrance.Result
	Inventory   *inventory.Result
	Features    *features.Result
	Sheet       *sheet.Sheet
}

// SectionError records a degraded section.
type SectionError struct {
	Section string
	Reason  string
}

// Document is the rendered XML.
type Document struct {
	XML      string
	Degraded []SectionError
}

type section struct {
	name   string
	render func(w *xmlgen.Writer, in *Input) error
}

// sections in document order.
var sections = []section{
	{"header", renderHeader},
	{"abilities", renderAbilities},
	{"classes", renderClasses},
	{"coins", renderCoins},
	{"defenses", renderDefenses},
	{"encumbrance", renderEncumbrance},
	{"featlist", renderFeats},
	{"featurelist", renderFeatures},
	{"inventorylist", renderInventory},
	{"languagelist", renderLanguages},
	{"powergrouplist", renderPowers},
	{"skilllist", renderSkills},
	{"proficiencylist", renderProficiencies},
	{"traitlist", renderTraits},
	{"weaponlist", renderWeapons},
	{"personality", renderPersonality},
}

// SectionNames lists the sections in document order.
func SectionNames() []string {
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.name
	}
	return names
}

// Render builds the document.
func Render(ctx context.Context, in *Input) (*Document, error) {
	if in == nil || in.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	doc := &Document{}
	var b strings.Builder
	b.WriteString(xmlHeader + "\n")
	b.WriteString(rootOpen + "\n")
	b.WriteString("\t<character>\n")

	for _, s := range sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fragment, err := renderSection(s, in)
		if err != nil {
			slog.WarnContext(ctx, "Section degraded",
				"section", s.name,
				"character_id", in.Character.ID,
				"error", err)
			reason := errors.GetMessage(err)
			doc.Degraded = append(doc.Degraded, SectionError{Section: s.name, Reason: reason})
			fragment = xmlgen.NewWriter(sectionDepth).
				Comment(fmt.Sprintf("%s unavailable: %s", s.name, reason)).
				XML()
		}
		b.WriteString(fragment)
	}

	b.WriteString("\t</character>\n")
	b.WriteString(rootClose + "\n")
	doc.XML = b.String()
	return doc, nil
}

// renderSection runs one section into its own buffer so a failure cannot
// leave half-written elements behind.
func renderSection(s section, in *Input) (fragment string, err error) {
	defer func() {
		if r := recover(); r != nil {
			fragment = ""
			err = errors.Recovered(r).InSection(s.name)
		}
	}()

	w := xmlgen.NewWriter(sectionDepth)
	if err := s.render(w, in); err != nil {
		return "", err
	}
	return w.XML(), nil
}

func missing(part string) error {
	return errors.FailedPrecondition(part + " not computed")
}
