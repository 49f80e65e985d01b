// Package form is a small rule engine for validating named string fields.
//
// Each field's Rule compiles to an ordered list of checks:
//
//	required → minLength → maxLength → pattern → custom
//
// The first failing check supplies the field's message and the rest are
// skipped. A blank (whitespace-only) value is only ever caught by required;
// every other check passes it.
package form

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Values maps field names to their raw input.
type Values map[string]string

// CustomFunc is a cross-field check. It returns a message, or "" when the
// value is acceptable.
type CustomFunc func(value string, all Values) string

// Rule describes the constraints on one field. Zero values disable a
// constraint. Message, when set, replaces the default text of the built-in
// checks; a CustomFunc always speaks for itself.
type Rule struct {
	Required  bool
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	Custom    CustomFunc
	Message   string
}

// Field pairs a name with its rule. Schemas are ordered so that validation
// and rendering walk fields in declaration order.
type Field struct {
	Name string
	Rule Rule
}

// Schema is an ordered list of fields.
type Schema []Field

// check returns a message when value fails, or "".
type check func(name, value string, all Values) string

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// checks compiles r into its ordered predicate list.
func (r Rule) checks() []check {
	var out []check

	if r.Required {
		out = append(out, func(name, value string, _ Values) string {
			if blank(value) {
				return r.message(fmt.Sprintf("%s is required", name))
			}
			return ""
		})
	}
	if r.MinLength > 0 {
		out = append(out, func(name, value string, _ Values) string {
			if !blank(value) && utf8.RuneCountInString(value) < r.MinLength {
				return r.message(fmt.Sprintf("%s must be at least %d characters", name, r.MinLength))
			}
			return ""
		})
	}
	if r.MaxLength > 0 {
		out = append(out, func(name, value string, _ Values) string {
			if !blank(value) && utf8.RuneCountInString(value) > r.MaxLength {
				return r.message(fmt.Sprintf("%s must be no more than %d characters", name, r.MaxLength))
			}
			return ""
		})
	}
	if r.Pattern != nil {
		out = append(out, func(name, value string, _ Values) string {
			if !blank(value) && !r.Pattern.MatchString(value) {
				return r.message(fmt.Sprintf("%s format is invalid", name))
			}
			return ""
		})
	}
	if r.Custom != nil {
		out = append(out, func(_, value string, all Values) string {
			if blank(value) {
				return ""
			}
			return r.Custom(value, all)
		})
	}
	return out
}

func (r Rule) message(fallback string) string {
	if r.Message != "" {
		return r.Message
	}
	return fallback
}

// run folds the checks, stopping at the first failure.
func run(checks []check, name, value string, all Values) string {
	for _, c := range checks {
		if msg := c(name, value, all); msg != "" {
			return msg
		}
	}
	return ""
}
