package wordlist

import (
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns a language-specific filter for word lists.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(lang) {
	case "en", "english":
		return filterEnglishASCII
	case "hi", "hindi":
		return filterDevanagari
	default:
		return func(string) bool { return true }
	}
}

// Filter keeps the words accepted by keep.
func Filter(words []string, keep FilterFunc) []string {
	return lo.Filter(words, func(w string, _ int) bool {
		return keep(w)
	})
}

func filterEnglishASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if (ch < 'a' || ch > 'z') && (ch < 'A' || ch > 'Z') {
			return false
		}
	}
	return true
}

func filterDevanagari(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.Is(unicode.Devanagari, r) {
			return false
		}
	}
	return true
}
