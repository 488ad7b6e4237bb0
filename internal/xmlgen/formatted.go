package xmlgen

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"table": true, "ul": true, "ol": true, "blockquote": true,
}

// Paragraphs converts an HTML description into plain text paragraphs.
// Entities are decoded and whitespace is collapsed; the result still needs
// sanitizing before it is written.
func Paragraphs(description string) []string {
	if strings.TrimSpace(description) == "" {
		return nil
	}

	var (
		paragraphs []string
		current    strings.Builder
	)
	flush := func() {
		text := strings.Join(strings.Fields(current.String()), " ")
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
		current.Reset()
	}

	tokenizer := html.NewTokenizer(strings.NewReader(description))
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			if tokenizer.Err() != io.EOF {
				current.WriteString(" ")
			}
			flush()
			return paragraphs
		case html.TextToken:
			current.Write(tokenizer.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			if blockElements[string(name)] {
				flush()
			} else {
				current.WriteString(" ")
			}
		}
	}
}

// PlainText joins Paragraphs with single spaces.
func PlainText(description string) string {
	return strings.Join(Paragraphs(description), " ")
}
