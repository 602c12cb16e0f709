package validator

// RequiredChoice validates that a select or radio group has a selection.
// The value is compared as-is: a choice is never trimmed.
func RequiredChoice(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return value != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "please make a selection",
			TranslationKey: "validation.required_choice",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// Checked validates that a checkbox is ticked.
func Checked(field string, checked bool) Rule {
	return Rule{
		Check: func() bool {
			return checked
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be accepted",
			TranslationKey: "validation.accepted",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
