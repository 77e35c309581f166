package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	linkRegex       = regexp.MustCompile(`(?:https?://|www\.)\S+`)
	mentionRegex    = regexp.MustCompile(`@\w+|#`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// CleanComment normalizes raw comment text for the dataset pipeline:
// lowercase, links/mentions/hashtags removed, punctuation and digits
// stripped, whitespace collapsed. The result may be empty.
func CleanComment(text string) string {
	text = strings.ToLower(text)
	text = linkRegex.ReplaceAllString(text, "")
	text = mentionRegex.ReplaceAllString(text, "")
	text = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsDigit(r) {
			return -1
		}
		return r
	}, text)
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
