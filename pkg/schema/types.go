package schema

import (
	"fmt"
	"strings"
)

// Kind enumerates the input widgets a field renders as.
type Kind string

const (
	KindText     Kind = "text"
	KindPassword Kind = "password"
	KindSelect   Kind = "select"
)

// Resolved maps the empty kind to text.
func (k Kind) Resolved() Kind {
	if k == "" {
		return KindText
	}
	return k
}

// Valid reports whether k is a known kind. The empty kind is text.
func (k Kind) Valid() bool {
	switch k.Resolved() {
	case KindText, KindPassword, KindSelect:
		return true
	}
	return false
}

// Option is a single entry of a select field. Value is the stored code, Label
// is what the user sees.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Field describes one named, independently validated unit of a form.
type Field struct {
	Name        string   `json:"name" yaml:"name"`
	Label       string   `json:"label,omitempty" yaml:"label,omitempty"`
	Kind        Kind     `json:"kind" yaml:"kind"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Default     string   `json:"default,omitempty" yaml:"default,omitempty"`
	Rules       []Rule   `json:"rules,omitempty" yaml:"rules,omitempty"`
	Options     []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// HasOptions reports whether the field is a select with a non-empty option set.
func (f Field) HasOptions() bool {
	return f.Kind == KindSelect && len(f.Options) > 0
}

// LabelFor resolves a stored option code to its display label.
func (f Field) LabelFor(value string) (string, bool) {
	for _, option := range f.Options {
		if option.Value == value {
			return option.Label, true
		}
	}
	return "", false
}

// ValueFor resolves a display label back to the stored option code.
func (f Field) ValueFor(label string) (string, bool) {
	for _, option := range f.Options {
		if option.Label == label {
			return option.Value, true
		}
	}
	return "", false
}

// HasOption reports whether value is one of the field's option codes.
func (f Field) HasOption(value string) bool {
	_, ok := f.LabelFor(value)
	return ok
}

// DisplayLabel falls back to the field name when no label was declared.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.Name
}

// Form is an ordered sequence of fields. Field names are unique.
type Form struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Submit      string  `json:"submit,omitempty" yaml:"submit,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`
}

// Field looks a field up by name.
func (f Form) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Names returns the field names in declaration order.
func (f Form) Names() []string {
	names := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Defaults returns the declared default values keyed by field name. Select
// defaults that do not match an option are dropped.
func (f Form) Defaults() map[string]string {
	out := make(map[string]string, len(f.Fields))
	for _, field := range f.Fields {
		if field.Default == "" {
			continue
		}
		if field.Kind == KindSelect && !field.HasOption(field.Default) {
			continue
		}
		out[field.Name] = field.Default
	}
	return out
}

// Check enforces the structural invariants of a form definition.
func (f Form) Check() error {
	seen := make(map[string]struct{}, len(f.Fields))
	for idx, field := range f.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("form %q field #%d: %w", f.ID, idx, ErrEmptyFieldName)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("form %q field %q: %w", f.ID, name, ErrDuplicateField)
		}
		seen[name] = struct{}{}

		if !field.Kind.Valid() {
			return fmt.Errorf("form %q field %q kind %q: %w", f.ID, name, field.Kind, ErrUnknownKind)
		}
		if len(field.Options) > 0 && field.Kind != KindSelect {
			return fmt.Errorf("form %q field %q: %w", f.ID, name, ErrUnexpectedOptions)
		}
		values := make(map[string]struct{}, len(field.Options))
		for _, option := range field.Options {
			if _, exists := values[option.Value]; exists {
				return fmt.Errorf("form %q field %q option %q: %w", f.ID, name, option.Value, ErrDuplicateOption)
			}
			values[option.Value] = struct{}{}
		}
		for _, rule := range field.Rules {
			if err := rule.check(); err != nil {
				return fmt.Errorf("form %q field %q: %w", f.ID, name, err)
			}
		}
	}
	return nil
}
