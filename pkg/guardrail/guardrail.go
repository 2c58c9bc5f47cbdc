// Package guardrail gates user input before any backend service is invoked.
//
// Classification is a deterministic keyword match against a fixed set of
// disallowed topic categories. The keyword lists are data: callers can
// replace the defaults wholesale (e.g., from a YAML file) without touching
// the matching logic.
package guardrail

import (
	"regexp"
	"strings"
)

// Category names for the disallowed topic groups.
const (
	CategoryAnimals       = "animals"
	CategoryEntertainment = "entertainment"
	CategoryAstrology     = "astrology"
	CategoryPolitics      = "politics"
)

// Verdict is the outcome of classifying a user message.
type Verdict struct {
	Allowed bool
	// Category names the matched disallowed topic group when Allowed is false.
	Category string
}

// DefaultKeywords returns the built-in disallowed keyword groups.
// Multi-word entries match as phrases; single words match on word boundaries.
func DefaultKeywords() map[string][]string {
	return map[string][]string{
		CategoryAnimals: {
			"pet", "pets", "dog", "dogs", "cat", "cats", "puppy", "kitten",
			"hamster", "parrot", "goldfish", "animal", "animals", "veterinarian",
		},
		// Company names (netflix, disney) stay out of this list so ticker
		// questions about them are not rejected.
		CategoryEntertainment: {
			"celebrity", "celebrities", "movie", "movies",
			"taylor swift", "kardashian", "actor", "actress", "singer",
			"concert", "grammy", "oscars", "tv show",
		},
		CategoryAstrology: {
			"horoscope", "astrology", "zodiac", "tarot", "aries", "taurus",
			"gemini", "scorpio", "sagittarius", "capricorn", "aquarius", "pisces",
			"star sign", "mercury retrograde",
		},
		CategoryPolitics: {
			"politics", "political", "election", "elections", "democrat",
			"republican", "congress", "senate", "religion", "religious",
			"church", "bible", "quran", "atheism",
		},
	}
}

// Classifier matches user messages against disallowed topic keyword groups.
type Classifier struct {
	// patterns holds one compiled matcher per category.
	patterns map[string]*regexp.Regexp
	// order fixes the category check order so verdicts are deterministic
	// when a message matches more than one group.
	order []string
}

// New creates a classifier from the given keyword groups. Pass
// DefaultKeywords() for the built-in lists.
func New(keywords map[string][]string) *Classifier {
	order := []string{CategoryAnimals, CategoryEntertainment, CategoryAstrology, CategoryPolitics}

	// Include any caller-defined categories not in the canonical order.
	for cat := range keywords {
		known := false
		for _, o := range order {
			if o == cat {
				known = true
				break
			}
		}
		if !known {
			order = append(order, cat)
		}
	}

	patterns := make(map[string]*regexp.Regexp, len(keywords))
	for cat, words := range keywords {
		if len(words) == 0 {
			continue
		}
		quoted := make([]string, 0, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			quoted = append(quoted, regexp.QuoteMeta(w))
		}
		patterns[cat] = regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
	}

	return &Classifier{patterns: patterns, order: order}
}

// Classify lower-cases the input and checks it against every disallowed
// keyword group. The first matching category (in fixed order) produces a
// rejection; otherwise the message is allowed. No side effects.
func (c *Classifier) Classify(text string) Verdict {
	lowered := strings.ToLower(text)

	for _, cat := range c.order {
		re, ok := c.patterns[cat]
		if !ok {
			continue
		}
		if re.MatchString(lowered) {
			return Verdict{Allowed: false, Category: cat}
		}
	}

	return Verdict{Allowed: true}
}
