// Package validate applies dialect-specific rule sets to candidate hunting
// queries. Validation is a total function: invalidity is reported as data in
// the ValidationResult, never as an error. Rule sets are pure functions with
// no external calls, so validating the same (query, dialect) pair twice
// yields identical results.
package validate

import (
	"fmt"
	"strings"

	"github.com/zero-day-ai/huntgen/dialect"
)

// ruleSet runs one dialect's rules over a non-empty, trimmed query.
type ruleSet func(c *collector, query string)

// Validator validates queries against per-dialect rule sets. Every dialect
// has exactly one rule set, checked at construction time.
type Validator struct {
	rules map[dialect.Dialect]ruleSet
}

// NewValidator constructs a Validator covering all dialects. It returns an
// error if any dialect lacks a rule set, which would indicate a dialect was
// added without its validation rules.
func NewValidator() (*Validator, error) {
	v := &Validator{
		rules: map[dialect.Dialect]ruleSet{
			dialect.SPL: validateSPL,
			dialect.KQL: validateKQL,
			dialect.DSL: validateDSL,
		},
	}

	for _, d := range dialect.All() {
		if _, ok := v.rules[d]; !ok {
			return nil, fmt.Errorf("no validation rule set for dialect %s", d)
		}
	}

	return v, nil
}

// Validate runs the dialect's rule set over the query and returns the
// findings. An empty or whitespace-only query short-circuits with a single
// error finding and no further rules run.
func (v *Validator) Validate(query string, d dialect.Dialect) ValidationResult {
	c := newCollector()

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		c.errorf("empty query")
		return c.result()
	}

	rules, ok := v.rules[d]
	if !ok {
		c.errorf("unsupported dialect: %s", d)
		return c.result()
	}

	rules(c, trimmed)
	return c.result()
}
