package search

import (
	"regexp"
	"strings"
)

// TagPrefix introduces an inline tag token in the search field
const TagPrefix = "tag:"

// A tag token only counts once its trailing space has been typed, so a
// half-typed "tag:alp" stays in the free text.
var tagToken = regexp.MustCompile(`tag:(\w+) `)

// Tokenize splits raw search text into its tag tokens and the remaining free
// text. Tags come back in first-seen order without duplicates.
func Tokenize(raw string) (tags []string, freeText string) {
	tags, rest := splitTags(raw)
	return tags, strings.TrimSpace(rest)
}

// StripTags removes completed tag tokens from raw and keeps the rest as typed,
// spaces included.
func StripTags(raw string) string {
	_, rest := splitTags(raw)
	return rest
}

func splitTags(raw string) (tags []string, rest string) {
	tags = []string{}
	seen := make(map[string]bool)

	text := raw
	for {
		matches := tagToken.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			break
		}
		for _, m := range matches {
			if !seen[m[1]] {
				seen[m[1]] = true
				tags = append(tags, m[1])
			}
		}
		// Removing a token can splice a new one together ("tag:tag:a b "),
		// so repeat until the text is clean.
		text = tagToken.ReplaceAllString(text, "")
	}

	return tags, text
}

// Compose rebuilds raw search text from tags and free text
func Compose(tags []string, freeText string) string {
	var b strings.Builder
	for _, t := range tags {
		b.WriteString(TagPrefix)
		b.WriteString(t)
		b.WriteByte(' ')
	}
	b.WriteString(freeText)
	return b.String()
}
