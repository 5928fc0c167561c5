package fallback

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"VoiceMart/app/assistant/catalog"
	"VoiceMart/app/assistant/intent"
)

const (
	RelevanceLimit = 20
	minKeywordLen  = 4
)

// RelevanceQuery derives the catalog predicate for a free-form utterance. A
// price ceiling applies when the text says "under" or "below" and contains a
// number; the first category named in the text wins over keyword matching.
func RelevanceQuery(utterance string, categories []catalog.Category) catalog.Predicate {
	text := intent.Normalize(utterance)
	p := catalog.Predicate{
		ActiveOnly: true,
		Sort:       []catalog.SortKey{catalog.SortRatingDesc},
		Limit:      RelevanceLimit,
	}

	if strings.Contains(text, "under") || strings.Contains(text, "below") {
		if nums := intent.Numbers(text, 1); len(nums) > 0 {
			p.MaxPrice = catalog.Price(float64(nums[0]))
		}
	}

	if c, ok := catalog.MentionedCategory(categories, text); ok {
		p.CategoryID = c.ID
		return p
	}

	if keywords := Keywords(text); len(keywords) > 0 {
		p.Keywords = keywords
		p.Fields = catalog.TextFields
	}
	return p
}

// Keywords returns the distinct words of text longer than three characters,
// stripped of surrounding punctuation.
func Keywords(text string) []string {
	var (
		out  []string
		seen = make(map[string]struct{})
	)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if utf8.RuneCountInString(word) < minKeywordLen {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	return out
}
