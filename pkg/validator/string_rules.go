package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Required fails for a value that is empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{
			Field:             field,
			Message:           "is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// MinLen fails when value has fewer than min characters. Length is counted
// in runes so accented names are not penalised.
func MinLen(field, value string, min int) Rule {
	return lengthRule(field, "validation.min_length", "min", min,
		fmt.Sprintf("must be at least %d characters", min),
		func() bool { return utf8.RuneCountInString(value) >= min })
}

// MaxLen fails when value has more than max characters.
func MaxLen(field, value string, max int) Rule {
	return lengthRule(field, "validation.max_length", "max", max,
		fmt.Sprintf("cannot exceed %d characters", max),
		func() bool { return utf8.RuneCountInString(value) <= max })
}

func lengthRule(field, key, bound string, n int, message string, check func() bool) Rule {
	return Rule{
		Check: check,
		Error: ValidationError{
			Field:             field,
			Message:           message,
			TranslationKey:    key,
			TranslationValues: map[string]any{"field": field, bound: n},
		},
	}
}
