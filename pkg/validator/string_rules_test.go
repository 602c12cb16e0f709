package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestRequired(t *testing.T) {
	t.Parallel()

	rule := validator.Required("email", "aisyah@example.com")
	assert.True(t, rule.Check())
	assert.Equal(t, "email", rule.Error.Field)
	assert.Equal(t, "is required", rule.Error.Message)
	assert.Equal(t, map[string]any{"field": "email"}, rule.Error.TranslationValues)

	assert.False(t, validator.Required("email", "").Check())
	assert.False(t, validator.Required("email", " \t\n ").Check())
	assert.True(t, validator.Required("name", "  Ali  ").Check())
}

func TestMinLen(t *testing.T) {
	t.Parallel()

	assert.False(t, validator.MinLen("name", "ab", 3).Check())
	assert.True(t, validator.MinLen("name", "abc", 3).Check())

	// Runes, not bytes.
	assert.False(t, validator.MinLen("name", "éé", 3).Check())
	assert.True(t, validator.MinLen("name", "ééé", 3).Check())

	rule := validator.MinLen("message", "short", 10)
	assert.Equal(t, "must be at least 10 characters", rule.Error.Message)
	assert.Equal(t, "validation.min_length", rule.Error.TranslationKey)
	assert.Equal(t, 10, rule.Error.TranslationValues["min"])
}

func TestMaxLen(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.MaxLen("message", "12345", 5).Check())
	assert.False(t, validator.MaxLen("message", "123456", 5).Check())
	assert.True(t, validator.MaxLen("message", "", 500).Check())

	rule := validator.MaxLen("message", "", 500)
	assert.Equal(t, "cannot exceed 500 characters", rule.Error.Message)
	assert.Equal(t, 500, rule.Error.TranslationValues["max"])
}
