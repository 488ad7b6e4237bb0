// Package xmlgen escapes untrusted text and writes the typed element
// fragments used by Fantasy Grounds character documents.
package xmlgen

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLength bounds sanitized plain fields.
const DefaultMaxLength = 1000

// DescriptionMaxLength bounds a single formatted-text paragraph.
const DescriptionMaxLength = 10000

// Options tune Sanitize.
type Options struct {
	// MaxLength in runes; zero means DefaultMaxLength.
	MaxLength int
	// AllowNewlines keeps line breaks and tabs instead of replacing them
	// with spaces.
	AllowNewlines bool
}

var (
	// Entities that may pass through unchanged. Anything else starting with
	// & is treated as text.
	knownEntity = regexp.MustCompile(`^&(?:amp|lt|gt|quot|apos|#([0-9]{1,7})|#[xX]([0-9a-fA-F]{1,6}));`)

	specialChars = strings.NewReplacer(
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
		"=", "&#x3D;",
		"/", "&#x2F;",
	)

	controlChars  = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	lineBreaks    = regexp.MustCompile(`[\r\n\t]+`)
	crlf          = regexp.MustCompile(`\r\n?`)
	protocols     = regexp.MustCompile(`(?i)(?:javascript|vbscript|\bdata)\s*:`)
	eventHandlers = regexp.MustCompile(`(?i)\bon\w+\s*(?:=|&#x3D;)`)
)

// Sanitize escapes input with default options.
func Sanitize(input string) string {
	return SanitizeWith(input, Options{})
}

// SanitizeWith escapes input for embedding in XML text.
//
// Ampersands are encoded first so the later replacements are not encoded
// twice; existing entities are left alone, which makes the function
// idempotent. Truncation happens after trimming and never splits an entity.
func SanitizeWith(input string, opts Options) string {
	if input == "" {
		return ""
	}
	maxLength := opts.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	out := encodeAmpersands(input)
	out = specialChars.Replace(out)
	out = controlChars.ReplaceAllString(out, "")
	if opts.AllowNewlines {
		out = crlf.ReplaceAllString(out, "\n")
	} else {
		out = lineBreaks.ReplaceAllString(out, " ")
	}
	out = stripActiveContent(out)
	out = strings.TrimSpace(out)

	return truncate(out, maxLength)
}

func encodeAmpersands(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); i++ {
		if s[i] == '&' && !isKnownEntity(s[i:]) {
			b.WriteString("&amp;")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// isKnownEntity reports whether s starts with a named entity or a character
// reference to a code point XML 1.0 allows.
func isKnownEntity(s string) bool {
	m := knownEntity.FindStringSubmatch(s)
	switch {
	case m == nil:
		return false
	case m[1] != "":
		return validCharRef(m[1], 10)
	case m[2] != "":
		return validCharRef(m[2], 16)
	default:
		return true
	}
}

func validCharRef(digits string, base int) bool {
	cp, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return false
	}
	r := rune(cp)
	switch {
	case r == 0x9 || r == 0xA || r == 0xD:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	default:
		return r >= 0x10000 && r <= 0x10FFFF
	}
}

// stripActiveContent removes protocol prefixes and inline handlers until
// nothing changes, so removals cannot splice a new match together.
func stripActiveContent(s string) string {
	for {
		next := protocols.ReplaceAllString(s, "")
		next = eventHandlers.ReplaceAllString(next, "")
		if next == s {
			return s
		}
		s = next
	}
}

func truncate(s string, maxLength int) string {
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}

	runes := []rune(s)
	cut := string(runes[:maxLength])

	// Drop a trailing partial entity such as "&am".
	if amp := strings.LastIndexByte(cut, '&'); amp >= 0 && !strings.Contains(cut[amp:], ";") {
		cut = cut[:amp]
	}
	return strings.TrimRightFunc(cut, isSpace)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}
