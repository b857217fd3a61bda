// Package textnorm cleans article text scraped from wiki markup so that every
// downstream consumer sees the same punctuation, spacing and character set.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	citationPattern   = regexp.MustCompile(`\[\d+\]`)
	phoneticPattern   = regexp.MustCompile(`/[^/]*/`)
	editMarkerPattern = regexp.MustCompile(`\[edit\]`)
	entityRefPattern  = regexp.MustCompile(`&[a-zA-Z]+;`)
	caseSeamPattern   = regexp.MustCompile(`([a-z])([A-Z])`)
	disallowedPattern = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\s\-.,;:!?()"'–—°]`)

	repeatedSpaces    = regexp.MustCompile(` +`)
	spaceBeforeClose  = regexp.MustCompile(`\s+([,.;:!?)])`)
	spaceAfterOpen    = regexp.MustCompile(`\(\s+`)
	spaceBeforeParen  = regexp.MustCompile(`\s+\)`)
	repeatedBlankLine = regexp.MustCompile(`\n\s*\n+`)
	anyWhitespace     = regexp.MustCompile(`\s+`)
)

var punctuationFolder = strings.NewReplacer(
	"–", "-",
	"—", "-",
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

var entityLiterals = strings.NewReplacer(
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
)

// Normalize strips markup artifacts from text and unifies its punctuation and
// whitespace. It never fails and is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = foldUnicode(text)

	text = citationPattern.ReplaceAllString(text, "")
	text = phoneticPattern.ReplaceAllString(text, "")
	text = editMarkerPattern.ReplaceAllString(text, "")
	text = entityRefPattern.ReplaceAllString(text, "")

	text = caseSeamPattern.ReplaceAllString(text, "$1 $2")
	text = disallowedPattern.ReplaceAllString(text, "")
	// Dropping a symbol can join two letters into a fresh seam.
	text = caseSeamPattern.ReplaceAllString(text, "$1 $2")

	text = repeatedSpaces.ReplaceAllString(text, " ")
	text = spaceBeforeClose.ReplaceAllString(text, "$1")
	text = spaceAfterOpen.ReplaceAllString(text, "(")
	text = spaceBeforeParen.ReplaceAllString(text, ")")
	text = repeatedBlankLine.ReplaceAllString(text, "\n")

	return strings.TrimSpace(text)
}

// foldUnicode maps non-breaking and other Unicode spaces to ASCII space and
// typographic dashes and quotes to their ASCII forms.
func foldUnicode(text string) string {
	text = punctuationFolder.Replace(text)
	return strings.Map(func(r rune) rune {
		if r != ' ' && unicode.Is(unicode.Zs, r) {
			return ' '
		}
		return r
	}, text)
}

// CleanEntities replaces the common HTML entity literals and collapses all
// whitespace runs to a single space.
func CleanEntities(text string) string {
	text = entityLiterals.Replace(text)
	return strings.TrimSpace(anyWhitespace.ReplaceAllString(text, " "))
}

// Truncate returns at most n characters of text.
func Truncate(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n])
}

// Length reports the number of characters in text.
func Length(text string) int {
	return utf8.RuneCountInString(text)
}
