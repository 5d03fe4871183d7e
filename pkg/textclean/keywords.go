package textclean

import (
	"sort"
	"strings"
	"unicode"
)

var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "all": {}, "also": {}, "an": {},
	"and": {}, "any": {}, "are": {}, "as": {}, "at": {}, "be": {}, "because": {}, "been": {},
	"before": {}, "being": {}, "between": {}, "both": {}, "but": {}, "by": {}, "can": {},
	"could": {}, "did": {}, "do": {}, "does": {}, "each": {}, "for": {}, "from": {}, "has": {},
	"have": {}, "having": {}, "here": {}, "how": {}, "if": {}, "in": {}, "into": {}, "is": {},
	"it": {}, "its": {}, "just": {}, "may": {}, "more": {}, "most": {}, "must": {}, "no": {},
	"not": {}, "of": {}, "on": {}, "once": {}, "one": {}, "only": {}, "or": {}, "other": {},
	"our": {}, "out": {}, "over": {}, "same": {}, "should": {}, "so": {}, "some": {}, "such": {},
	"than": {}, "that": {}, "the": {}, "their": {}, "them": {}, "then": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "those": {}, "through": {}, "to": {}, "two": {},
	"under": {}, "until": {}, "up": {}, "use": {}, "used": {}, "using": {}, "very": {}, "was": {},
	"we": {}, "were": {}, "what": {}, "when": {}, "where": {}, "which": {}, "while": {},
	"who": {}, "why": {}, "will": {}, "with": {}, "would": {}, "you": {}, "your": {},
}

// ExtractKeywords returns up to limit most frequent non-stopword terms of a passage.
// Ties are broken by first occurrence.
func ExtractKeywords(text string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	type term struct {
		word  string
		count int
		first int
	}

	terms := make(map[string]*term)
	order := 0
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	for _, w := range words {
		if len([]rune(w)) < 3 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if isNumeric(w) {
			continue
		}
		if t, ok := terms[w]; ok {
			t.count++
			continue
		}
		terms[w] = &term{word: w, count: 1, first: order}
		order++
	}

	ranked := make([]*term, 0, len(terms))
	for _, t := range terms {
		ranked = append(ranked, t)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].first < ranked[j].first
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]string, len(ranked))
	for i, t := range ranked {
		out[i] = t.word
	}
	return out
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
