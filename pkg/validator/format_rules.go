package validator

import (
	"regexp"
	"strings"
)

var (
	// local@domain.tld with an alphabetic TLD of two or more letters
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// 10 or 11 digits once separators are removed
	phoneDigitsRegex = regexp.MustCompile(`^[0-9]{10,11}$`)

	// ASCII letters and whitespace only; accented letters are rejected
	personNameRegex = regexp.MustCompile(`^[a-zA-Z\s]+$`)

	phoneSeparators = strings.NewReplacer(" ", "", "\t", "", "\n", "", "\r", "", "-", "")
)

// ValidEmail validates the local@domain.tld shape.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return emailRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidPhone validates a local phone number: whitespace and dashes are
// stripped, then 10 or 11 digits must remain.
func ValidPhone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return phoneDigitsRegex.MatchString(StripPhoneSeparators(value))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid phone number",
			TranslationKey: "validation.phone",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidPersonName validates that a name contains only ASCII letters and whitespace.
func ValidPersonName(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return personNameRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "can only contain letters and spaces",
			TranslationKey: "validation.person_name",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// StripPhoneSeparators removes whitespace and dashes from a phone number.
func StripPhoneSeparators(value string) string {
	return phoneSeparators.Replace(value)
}
