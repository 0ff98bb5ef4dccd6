package schema

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// RuleType tags the predicate a Rule evaluates.
type RuleType string

const (
	RuleRequired  RuleType = "required"
	RuleMinLength RuleType = "minLength"
	RuleMaxLength RuleType = "maxLength"
	RuleOneOf     RuleType = "oneOf"
	RulePattern   RuleType = "pattern"
	RuleCustom    RuleType = "custom"
)

// Rule pairs a predicate with the message surfaced when it fails. Lengths are
// counted in runes. Custom rules carry a Go predicate that is never serialised.
type Rule struct {
	Type    RuleType `json:"type" yaml:"type"`
	Length  int      `json:"length,omitempty" yaml:"length,omitempty"`
	Pattern string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Values  []string `json:"values,omitempty" yaml:"values,omitempty"`
	Message string   `json:"message,omitempty" yaml:"message,omitempty"`

	Predicate func(string) bool `json:"-" yaml:"-"`
}

// Required fails on empty input.
func Required(message string) Rule {
	return Rule{Type: RuleRequired, Message: message}
}

// MinLength fails when the input has fewer than n runes.
func MinLength(n int, message string) Rule {
	return Rule{Type: RuleMinLength, Length: n, Message: message}
}

// MaxLength fails when the input has more than n runes.
func MaxLength(n int, message string) Rule {
	return Rule{Type: RuleMaxLength, Length: n, Message: message}
}

// OneOf fails when the input is not one of values.
func OneOf(values []string, message string) Rule {
	return Rule{Type: RuleOneOf, Values: append([]string(nil), values...), Message: message}
}

// Pattern fails when the input does not match expr.
func Pattern(expr, message string) Rule {
	return Rule{Type: RulePattern, Pattern: expr, Message: message}
}

// Custom wraps an arbitrary predicate.
func Custom(predicate func(string) bool, message string) Rule {
	return Rule{Type: RuleCustom, Predicate: predicate, Message: message}
}

// Check reports whether value satisfies the rule. Malformed rules (bad
// pattern, custom without predicate) never pass; Form.Check rejects them up
// front.
func (r Rule) Check(value string) bool {
	switch r.Type {
	case RuleRequired:
		return value != ""
	case RuleMinLength:
		return utf8.RuneCountInString(value) >= r.Length
	case RuleMaxLength:
		return utf8.RuneCountInString(value) <= r.Length
	case RuleOneOf:
		for _, candidate := range r.Values {
			if candidate == value {
				return true
			}
		}
		return false
	case RulePattern:
		re, err := compilePattern(r.Pattern)
		if err != nil {
			return false
		}
		return re.MatchString(value)
	case RuleCustom:
		return r.Predicate != nil && r.Predicate(value)
	default:
		return false
	}
}

// Text returns the configured message or a default derived from the rule.
func (r Rule) Text() string {
	if msg := strings.TrimSpace(r.Message); msg != "" {
		return msg
	}
	switch r.Type {
	case RuleRequired:
		return "Required"
	case RuleMinLength:
		return fmt.Sprintf("String must contain at least %d character(s)", r.Length)
	case RuleMaxLength:
		return fmt.Sprintf("String must contain at most %d character(s)", r.Length)
	case RuleOneOf:
		return "Invalid option"
	default:
		return "Invalid"
	}
}

func (r Rule) check() error {
	switch r.Type {
	case RuleRequired, RuleOneOf:
		return nil
	case RuleMinLength, RuleMaxLength:
		if r.Length < 0 {
			return fmt.Errorf("schema: rule %s: negative length %d", r.Type, r.Length)
		}
		return nil
	case RulePattern:
		if _, err := compilePattern(r.Pattern); err != nil {
			return fmt.Errorf("schema: rule pattern: %w", err)
		}
		return nil
	case RuleCustom:
		if r.Predicate == nil {
			return fmt.Errorf("schema: rule custom: predicate is nil")
		}
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnknownRule, r.Type)
	}
}

var patternCache sync.Map

func compilePattern(expr string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(expr); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	patternCache.Store(expr, re)
	return re, nil
}
