package submit

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// ErrorMapping splits a server error payload into inline field messages and
// form-level messages.
type ErrorMapping struct {
	Fields map[string]string
	Form   []string
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapFieldErrors resolves server error paths ("classification",
// "/data/type", "#/properties/type", "body.items[0].type") to form fields.
// The first message per field is kept for inline display; unknown paths are
// kept as form-level errors so nothing is lost.
func MapFieldErrors(form schema.Form, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{}
	if len(payload) == 0 {
		return mapping
	}

	names := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		names[field.Name] = struct{}{}
	}

	paths := sortedKeys(payload)
	matched := make(map[string]bool, len(payload))
	for _, field := range form.Fields {
		for _, rawPath := range paths {
			messages := payload[rawPath]
			if resolveField(rawPath, names) != field.Name {
				continue
			}
			matched[rawPath] = true
			normalized := normalizeMessages(messages)
			if len(normalized) == 0 {
				continue
			}
			if mapping.Fields == nil {
				mapping.Fields = make(map[string]string)
			}
			if _, exists := mapping.Fields[field.Name]; !exists {
				mapping.Fields[field.Name] = normalized[0]
			}
		}
	}

	for _, rawPath := range paths {
		if matched[rawPath] {
			continue
		}
		mapping.Form = append(mapping.Form, payload[rawPath]...)
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func resolveField(raw string, names map[string]struct{}) string {
	if isFormLevelKey(raw) {
		return ""
	}
	segments := pathSegments(raw)
	for len(segments) > 0 {
		switch strings.ToLower(segments[0]) {
		case "body", "request", "payload", "data", "attributes", "properties":
			segments = segments[1:]
			continue
		}
		break
	}
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		if _, ok := names[segment]; ok {
			return segment
		}
	}
	return ""
}

func pathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sortedKeys(payload map[string][]string) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
