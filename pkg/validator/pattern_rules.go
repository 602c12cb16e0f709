package validator

import (
	"fmt"
	"regexp"
)

// MatchesPattern validates value against a precompiled pattern.
func MatchesPattern(field, value string, pattern *regexp.Regexp, description string) Rule {
	source := ""
	if pattern != nil {
		source = pattern.String()
	}
	return Rule{
		Check: func() bool {
			return pattern != nil && pattern.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must match %s pattern", description),
			TranslationKey: "validation.regex_pattern",
			TranslationValues: map[string]any{
				"field":       field,
				"pattern":     source,
				"description": description,
			},
		},
	}
}
