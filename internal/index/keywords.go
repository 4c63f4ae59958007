package index

import (
	"regexp"
	"strings"
)

// nonWord strips everything except word characters and whitespace before
// tokenisation. Underscores count as word characters, matching \w.
var nonWord = regexp.MustCompile(`[^\w\s]`)

// stopwords are common English function words and pronouns excluded from the
// keyword set. Tokens of length <= 2 are dropped before this check, so short
// entries would be redundant and are omitted.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "any": {}, "can": {}, "had": {}, "has": {},
	"have": {}, "her": {}, "him": {}, "his": {}, "how": {}, "its": {},
	"may": {}, "our": {}, "out": {}, "she": {}, "they": {}, "them": {},
	"their": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"was": {}, "were": {}, "will": {}, "with": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "who": {}, "why": {}, "would": {},
	"could": {}, "should": {}, "been": {}, "being": {}, "from": {},
	"into": {}, "about": {}, "there": {}, "then": {}, "than": {},
	"your": {}, "some": {}, "such": {}, "very": {}, "just": {},
}

// ExtractKeywords derives the deduplicated keyword set for a piece of text:
// case-folded, punctuation-stripped tokens longer than two characters with
// stopwords removed. Queries and chunks must go through this same function
// for overlap scoring to work at all.
func ExtractKeywords(text string) map[string]struct{} {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), "")

	keywords := make(map[string]struct{})
	for _, token := range strings.Fields(cleaned) {
		if len(token) <= 2 {
			continue
		}
		if _, stop := stopwords[token]; stop {
			continue
		}
		keywords[token] = struct{}{}
	}
	return keywords
}
