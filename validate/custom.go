package validate

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/zero-day-ai/huntgen/dialect"
)

// CustomRule is an operator-supplied validation rule expressed in CEL. The
// expression evaluates over two string variables, "query" and "dialect", and
// must yield a boolean: true means the rule passed, false produces a finding
// with the rule's severity and message.
type CustomRule struct {
	// Name identifies the rule in findings and logs.
	Name string `yaml:"name" json:"name"`

	// Expression is the CEL predicate, e.g.
	// `dialect != "spl" || query.contains("index=")`.
	Expression string `yaml:"expression" json:"expression"`

	// Message is the finding message emitted when the rule fails.
	Message string `yaml:"message" json:"message"`

	// Severity classifies the finding. Defaults to warning.
	Severity Severity `yaml:"severity" json:"severity"`
}

// compiledRule pairs a rule with its evaluable program.
type compiledRule struct {
	rule CustomRule
	prg  cel.Program
}

// RuleEngine evaluates custom CEL rules alongside the built-in rule sets.
// Compile once, evaluate per query; evaluation is pure and deterministic.
type RuleEngine struct {
	rules []compiledRule
}

// NewRuleEngine compiles the given rules. A rule that fails to compile, or
// whose expression does not yield a boolean, is rejected up front so bad
// rules surface at startup rather than per query.
func NewRuleEngine(rules []CustomRule) (*RuleEngine, error) {
	env, err := cel.NewEnv(
		cel.Variable("query", cel.StringType),
		cel.Variable("dialect", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("create rule environment: %w", err)
	}

	engine := &RuleEngine{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		if r.Name == "" {
			return nil, fmt.Errorf("custom rule missing name")
		}
		if r.Severity == "" {
			r.Severity = SeverityWarning
		}
		if !r.Severity.IsValid() {
			return nil, fmt.Errorf("rule %s: invalid severity %q", r.Name, r.Severity)
		}

		ast, iss := env.Compile(r.Expression)
		if iss.Err() != nil {
			return nil, fmt.Errorf("rule %s: compile: %w", r.Name, iss.Err())
		}
		if ast.OutputType() != cel.BoolType {
			return nil, fmt.Errorf("rule %s: expression must yield bool, got %s", r.Name, ast.OutputType())
		}

		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("rule %s: program: %w", r.Name, err)
		}
		engine.rules = append(engine.rules, compiledRule{rule: r, prg: prg})
	}

	return engine, nil
}

// Len returns the number of compiled rules.
func (e *RuleEngine) Len() int {
	return len(e.rules)
}

// Apply evaluates every rule against the query and folds failures into the
// result as additional findings, recomputing validity and the syntax score.
// A rule whose evaluation errors at runtime becomes a warning finding rather
// than failing validation outright.
func (e *RuleEngine) Apply(result ValidationResult, query string, d dialect.Dialect) ValidationResult {
	if len(e.rules) == 0 {
		return result
	}

	c := newCollector()
	for _, f := range result.Findings {
		c.add(f.Severity, "%s", f.Message)
	}
	for _, s := range result.OptimizationSuggestions {
		c.suggest(s)
	}

	vars := map[string]any{
		"query":   query,
		"dialect": d.String(),
	}

	for _, cr := range e.rules {
		out, _, err := cr.prg.Eval(vars)
		if err != nil {
			c.warnf("rule %s: evaluation failed: %v", cr.rule.Name, err)
			continue
		}
		passed, ok := out.Value().(bool)
		if !ok || passed {
			continue
		}

		switch cr.rule.Severity {
		case SeverityInfo:
			c.suggest(cr.rule.Message)
		default:
			c.add(cr.rule.Severity, "%s", cr.rule.Message)
		}
	}

	return c.result()
}
