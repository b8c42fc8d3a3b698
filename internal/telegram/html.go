package telegram

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// allowedTags are the HTML tags Telegram's HTML parse mode accepts.
var allowedTags = map[string]bool{
	"b": true, "strong": true,
	"i": true, "em": true,
	"u": true, "s": true,
	"pre": true, "code": true,
	"a":          true,
	"blockquote": true,
}

var brReplacer = strings.NewReplacer("<br/>", "\n", "<br />", "\n", "<br>", "\n")

// SanitizeHTML reduces model output to Telegram-compatible HTML: <br>
// variants become newlines and unsupported tags are unwrapped, keeping
// their inner content. Input that fails to parse is returned unchanged;
// the plain-text send fallback covers it.
func SanitizeHTML(text string) string {
	text = brReplacer.Replace(text)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}

	body := doc.Find("body")

	// Unwrap from the inside out until only supported tags remain.
	for {
		stripped := false
		body.Find("*").Each(func(_ int, sel *goquery.Selection) {
			if allowedTags[goquery.NodeName(sel)] {
				return
			}
			if sel.Contents().Length() == 0 {
				sel.Remove()
			} else {
				sel.Contents().Unwrap()
			}
			stripped = true
		})
		if !stripped {
			break
		}
	}

	out, err := body.Html()
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}

// SplitMessage splits a message into chunks of maxLen runes, preferring
// to split at newlines when one sits past the midpoint.
func SplitMessage(text string, maxLen int) []string {
	if utf8.RuneCountInString(text) <= maxLen {
		return []string{text}
	}

	var parts []string
	for len(text) > 0 {
		if utf8.RuneCountInString(text) <= maxLen {
			parts = append(parts, text)
			break
		}

		runes := []rune(text)
		splitAt := maxLen

		chunk := string(runes[:maxLen])
		if idx := strings.LastIndex(chunk, "\n"); idx >= 0 {
			// idx is a byte offset; convert to runes before slicing.
			newlineAt := utf8.RuneCountInString(chunk[:idx])
			if newlineAt > maxLen/2 {
				splitAt = newlineAt + 1
			}
		}

		parts = append(parts, string(runes[:splitAt]))
		text = string(runes[splitAt:])
	}

	return parts
}
