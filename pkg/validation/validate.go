// Package validation evaluates form values against a schema.Form. It is pure:
// the same form and values always yield the same Result and nothing outside
// the returned value is touched.
package validation

import (
	"sort"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// InvalidOptionMessage is reported for select values outside the option set.
const InvalidOptionMessage = "Please select a valid option."

// Result maps field names to the first failing rule's message. Valid fields
// are absent.
type Result struct {
	Errors map[string]string
}

// Valid reports whether every field passed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Error returns the message for a field, if any.
func (r Result) Error(field string) (string, bool) {
	msg, ok := r.Errors[field]
	return msg, ok
}

// Fields lists the failing field names in sorted order.
func (r Result) Fields() []string {
	names := make([]string, 0, len(r.Errors))
	for name := range r.Errors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every field of form against values. Missing keys are
// treated as empty input.
func Validate(form schema.Form, values map[string]string) Result {
	result := Result{Errors: make(map[string]string)}
	for _, field := range form.Fields {
		if msg, failed := ValidateField(field, values[field.Name]); failed {
			result.Errors[field.Name] = msg
		}
	}
	return result
}

// ValidateField applies the field's rules in declaration order and returns
// the first failure. Select fields that pass their rules but hold a value
// outside the option set fail with InvalidOptionMessage.
func ValidateField(field schema.Field, value string) (string, bool) {
	for _, rule := range field.Rules {
		if !rule.Check(value) {
			return rule.Text(), true
		}
	}
	if field.Kind == schema.KindSelect && value != "" && !field.HasOption(value) {
		return InvalidOptionMessage, true
	}
	return "", false
}
