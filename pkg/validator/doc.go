// Package validator provides small, declarative validation rules for form
// input values.
//
// A Rule pairs a lazy boolean Check with the ValidationError reported when the
// check fails. Rules are evaluated with one of two helpers:
//
//   - Apply runs every rule and aggregates all failures.
//   - First runs rules in order and stops at the first failure.
//
// Form fields use First: a field shows one message at a time, and the order of
// the rules (required, length bounds, format) decides which message wins.
// Because Check functions are closures, later rules are never evaluated once
// an earlier one fails, so a format rule never sees an empty value.
//
// # Usage
//
//	err := validator.First(
//	    validator.Required("email", value).WithMessage("Email is required"),
//	    validator.ValidEmail("email", value).WithMessage("Please enter a valid email address"),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    msg := verrs.Get("email")[0]
//	}
//
// # Error Handling
//
// ValidationErrors implements the error interface, so callers can use
// errors.As to recover field-level details. Every ValidationError also carries
// a translation key and values for callers that localise messages.
//
// Lengths are measured in characters (runes), not bytes.
package validator
