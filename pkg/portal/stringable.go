package portal

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Stringable struct {
	value string
}

func MakeStringable(value string) *Stringable {
	return &Stringable{
		value: strings.TrimSpace(value),
	}
}

func (s Stringable) ToLower() string {
	caser := cases.Lower(language.English)

	return strings.TrimSpace(caser.String(s.value))
}

// ToSlug derives a URL-safe identifier: lowercase, special characters
// stripped, runs of whitespace collapsed into single hyphens.
func (s Stringable) ToSlug() string {
	lowered := s.ToLower()

	var cleaned strings.Builder
	for _, r := range lowered {
		switch {
		case unicode.IsLower(r) || unicode.IsDigit(r):
			cleaned.WriteRune(r)
		case r == ' ' || r == '-':
			cleaned.WriteRune(r)
		}
	}

	fields := strings.FieldsFunc(cleaned.String(), func(r rune) bool {
		return r == ' ' || r == '-'
	})

	return strings.Join(fields, "-")
}

func (s Stringable) ToSnakeCase() string {
	var result strings.Builder

	for i, r := range s.value {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteByte('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}
