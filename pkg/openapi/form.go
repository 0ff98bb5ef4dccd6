package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// Vendor extensions understood on operations and properties.
const (
	extSubmit      = "x-formflow-submit"
	extOrder       = "x-formflow-order"
	extPlaceholder = "x-formflow-placeholder"
	extLabels      = "x-formflow-labels"
	extMessages    = "x-formflow-messages"
)

func formFromSchema(id string, operation *openapi3.Operation, body *openapi3.Schema) (schema.Form, error) {
	form := schema.Form{
		ID:          id,
		Title:       operation.Summary,
		Description: operation.Description,
		Submit:      stringExtension(operation.Extensions, extSubmit),
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	for _, name := range propertyOrder(body.Properties) {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, err := fieldFromSchema(name, ref.Value, required[name])
		if err != nil {
			return schema.Form{}, err
		}
		form.Fields = append(form.Fields, field)
	}

	if err := form.Check(); err != nil {
		return schema.Form{}, err
	}
	return form, nil
}

func fieldFromSchema(name string, prop *openapi3.Schema, required bool) (schema.Field, error) {
	field := schema.Field{
		Name:        name,
		Label:       prop.Title,
		Kind:        schema.KindText,
		Placeholder: stringExtension(prop.Extensions, extPlaceholder),
	}
	if prop.Format == "password" {
		field.Kind = schema.KindPassword
	}
	if value, ok := prop.Default.(string); ok {
		field.Default = value
	}

	if len(prop.Enum) > 0 {
		field.Kind = schema.KindSelect
		labels := stringMapExtension(prop.Extensions, extLabels)
		for _, raw := range prop.Enum {
			value := fmt.Sprint(raw)
			label := labels[value]
			if label == "" {
				label = value
			}
			field.Options = append(field.Options, schema.Option{Label: label, Value: value})
		}
	}

	messages := stringMapExtension(prop.Extensions, extMessages)
	withMessage := func(rule schema.Rule) schema.Rule {
		if message := messages[string(rule.Type)]; message != "" {
			rule.Message = message
		}
		return rule
	}

	if required {
		field.Rules = append(field.Rules, withMessage(schema.Required("")))
	}
	if prop.MinLength > 0 {
		field.Rules = append(field.Rules, withMessage(schema.MinLength(int(prop.MinLength), "")))
	}
	if prop.MaxLength != nil {
		field.Rules = append(field.Rules, withMessage(schema.MaxLength(int(*prop.MaxLength), "")))
	}
	if prop.Pattern != "" {
		field.Rules = append(field.Rules, withMessage(schema.Pattern(prop.Pattern, "")))
	}
	return field, nil
}

// propertyOrder sorts by x-formflow-order, then by name. Properties without an
// order come last.
func propertyOrder(props openapi3.Schemas) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	order := func(name string) (float64, bool) {
		ref := props[name]
		if ref == nil || ref.Value == nil {
			return 0, false
		}
		return numberExtension(ref.Value.Extensions, extOrder)
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, iok := order(names[i])
		oj, jok := order(names[j])
		switch {
		case iok && jok && oi != oj:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return names[i] < names[j]
		}
	})
	return names
}

func stringExtension(ext map[string]any, key string) string {
	value, _ := ext[key].(string)
	return strings.TrimSpace(value)
}

func numberExtension(ext map[string]any, key string) (float64, bool) {
	switch v := ext[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func stringMapExtension(ext map[string]any, key string) map[string]string {
	raw, ok := ext[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
