// Package lesson provides the compiled-in practice lesson catalog.
package lesson

import "strings"

// Difficulty grades a lesson.
type Difficulty string

// Supported difficulties.
const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	default:
		return false
	}
}

// Label returns the capitalized difficulty name.
func (d Difficulty) Label() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// Language is the lesson set a lesson belongs to.
type Language string

// Supported languages.
const (
	English Language = "english"
	Hindi   Language = "hindi"
)

// Languages lists the supported languages in display order.
func Languages() []Language {
	return []Language{English, Hindi}
}

// Valid reports whether l is a known language.
func (l Language) Valid() bool {
	return l == English || l == Hindi
}

// Label returns the display name of the language.
func (l Language) Label() string {
	switch l {
	case English:
		return "English"
	case Hindi:
		return "Hindi"
	default:
		return string(l)
	}
}

// Toggle returns the other supported language.
func (l Language) Toggle() Language {
	if l == Hindi {
		return English
	}
	return Hindi
}

// ParseLanguage accepts full names and short codes (en, hi).
func ParseLanguage(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "english", "en":
		return English, true
	case "hindi", "hi":
		return Hindi, true
	default:
		return "", false
	}
}

// Lesson is an immutable unit of practice text.
type Lesson struct {
	ID         string
	Title      string
	Category   string
	Difficulty Difficulty
	Language   Language
	Content    string
}
