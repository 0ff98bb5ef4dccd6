package form

import (
	"fmt"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// Binding is what a widget needs to render one field: the raw value, the text
// to display, the current error and a change callback.
type Binding struct {
	Field   schema.Field
	Value   string
	Display string
	Error   string
	Touched bool

	OnChange func(value string) error
}

// Binding returns the render triple for a field. For selects Display is the
// label of the current option, or empty when unset.
func (c *Controller) Binding(name string) (Binding, error) {
	field, ok := c.form.Field(name)
	if !ok {
		return Binding{}, fmt.Errorf("%w %q", ErrUnknownField, name)
	}

	c.mu.Lock()
	value := c.state.Values[name]
	message := c.state.Errors[name]
	touched := c.state.Touched[name]
	c.mu.Unlock()

	display := value
	if field.Kind == schema.KindSelect {
		display, _ = field.LabelFor(value)
	}

	return Binding{
		Field:   field,
		Value:   value,
		Display: display,
		Error:   message,
		Touched: touched,
		OnChange: func(next string) error {
			return c.Change(name, next)
		},
	}, nil
}

// Bindings returns the bindings of every field in declaration order.
func (c *Controller) Bindings() []Binding {
	out := make([]Binding, 0, len(c.form.Fields))
	for _, field := range c.form.Fields {
		binding, err := c.Binding(field.Name)
		if err != nil {
			continue
		}
		out = append(out, binding)
	}
	return out
}
