package xmlgen

import (
	"fmt"
	"strconv"
	"strings"
)

// Attribute type values understood by Fantasy Grounds.
const (
	TypeString        = "string"
	TypeNumber        = "number"
	TypeDice          = "dice"
	TypeFormattedText = "formattedtext"
	TypeWindowRef     = "windowreference"
)

// ID formats the numbered child element name, e.g. id-00001.
func ID(n int) string {
	return fmt.Sprintf("id-%05d", n)
}

// Writer appends indented XML. Values passed to the typed helpers are
// sanitized; element names are trusted.
type Writer struct {
	sb    strings.Builder
	depth int
}

// NewWriter starts writing at the given indentation depth.
func NewWriter(depth int) *Writer {
	return &Writer{depth: depth}
}

func (w *Writer) line(s string) {
	w.sb.WriteString(strings.Repeat("\t", w.depth))
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

// Open writes <name> and indents.
func (w *Writer) Open(name string) *Writer {
	w.line("<" + name + ">")
	w.depth++
	return w
}

// OpenTyped writes <name type="typ"> and indents.
func (w *Writer) OpenTyped(name, typ string) *Writer {
	w.line(fmt.Sprintf(`<%s type="%s">`, name, typ))
	w.depth++
	return w
}

// Element writes <name>value</name> without a type attribute.
func (w *Writer) Element(name, value string) *Writer {
	w.line("<" + name + ">" + Sanitize(value) + "</" + name + ">")
	return w
}

// OpenID writes <id-NNNNN>.
func (w *Writer) OpenID(n int) *Writer {
	return w.Open(ID(n))
}

// Close writes </name> and dedents.
func (w *Writer) Close(name string) *Writer {
	if w.depth > 0 {
		w.depth--
	}
	w.line("</" + name + ">")
	return w
}

// CloseID writes </id-NNNNN>.
func (w *Writer) CloseID(n int) *Writer {
	return w.Close(ID(n))
}

// String writes a sanitized string element.
func (w *Writer) String(name, value string) *Writer {
	return w.typed(name, TypeString, Sanitize(value))
}

// Number writes an integer element.
func (w *Writer) Number(name string, value int) *Writer {
	return w.typed(name, TypeNumber, strconv.Itoa(value))
}

// Decimal writes a number element that may carry a fraction.
func (w *Writer) Decimal(name string, value float64) *Writer {
	return w.typed(name, TypeNumber, strconv.FormatFloat(value, 'f', -1, 64))
}

// Bool writes a number element holding 1 or 0.
func (w *Writer) Bool(name string, value bool) *Writer {
	if value {
		return w.Number(name, 1)
	}
	return w.Number(name, 0)
}

// Dice writes a dice element. Expressions like "2d6" are expanded to the
// comma-separated form "d6,d6"; modifiers are dropped.
func (w *Writer) Dice(name, expr string) *Writer {
	return w.typed(name, TypeDice, Sanitize(DiceList(expr)))
}

// FormattedText writes paragraphs as <p> children.
func (w *Writer) FormattedText(name string, paragraphs []string) *Writer {
	if len(paragraphs) == 0 {
		return w.typed(name, TypeFormattedText, "")
	}
	w.line(fmt.Sprintf(`<%s type="%s">`, name, TypeFormattedText))
	w.depth++
	for _, p := range paragraphs {
		w.line("<p>" + SanitizeWith(p, Options{MaxLength: DescriptionMaxLength}) + "</p>")
	}
	w.depth--
	w.line("</" + name + ">")
	return w
}

// Description converts HTML and writes it as formatted text.
func (w *Writer) Description(name, htmlText string) *Writer {
	return w.FormattedText(name, Paragraphs(htmlText))
}

// Comment writes an XML comment. "--" is not allowed inside comments and is
// replaced.
func (w *Writer) Comment(text string) *Writer {
	clean := strings.ReplaceAll(Sanitize(text), "--", "- ")
	w.line("<!-- " + clean + " -->")
	return w
}

// Raw appends an already formatted fragment verbatim.
func (w *Writer) Raw(fragment string) *Writer {
	w.sb.WriteString(fragment)
	return w
}

// Depth returns the current indentation depth.
func (w *Writer) Depth() int {
	return w.depth
}

// XML returns everything written so far.
func (w *Writer) XML() string {
	return w.sb.String()
}

func (w *Writer) typed(name, typ, value string) *Writer {
	if value == "" {
		w.line(fmt.Sprintf(`<%s type="%s" />`, name, typ))
		return w
	}
	w.line(fmt.Sprintf(`<%s type="%s">%s</%s>`, name, typ, value, name))
	return w
}
