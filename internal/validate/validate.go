// Package validate provides declarative field-presence checks for request
// payloads. Rules are pure functions of the decoded payload; the package
// performs no I/O.
package validate

import "fmt"

// Rule pairs a field name with a presence predicate.
type Rule struct {
	Field   string
	Present func() bool
}

// Required builds a rule over a decoded optional field. The field counts as
// present when the key was supplied and the value is not null and not the
// empty string; request structs use pointer fields so an omitted key decodes
// to nil. Values like "0" are present, since only strings can be empty.
func Required(field string, value *string) Rule {
	return Rule{
		Field:   field,
		Present: func() bool { return value != nil && *value != "" },
	}
}

// Check evaluates the rules in declaration order and returns one violation
// message per missing field. An empty result means the payload passed.
func Check(rules ...Rule) []string {
	var violations []string
	for _, rule := range rules {
		if !rule.Present() {
			violations = append(violations, fmt.Sprintf("Please provide a value for %q", rule.Field))
		}
	}
	return violations
}
