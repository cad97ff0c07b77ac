package validate

import "fmt"

// Finding is a single validator observation about a query.
type Finding struct {
	// Severity classifies the finding.
	Severity Severity `json:"severity"`

	// Message describes the observation.
	Message string `json:"message"`
}

// ValidationResult is the outcome of validating one query against one
// dialect's rule set. It is derived deterministically: validating the same
// (query, dialect) pair twice yields identical results.
type ValidationResult struct {
	// IsValid is false if and only if at least one finding has
	// severity error.
	IsValid bool `json:"is_valid"`

	// Findings lists all error and warning observations in the order the
	// rules produced them.
	Findings []Finding `json:"findings"`

	// OptimizationSuggestions lists info-level suggestions that never
	// affect validity.
	OptimizationSuggestions []string `json:"optimization_suggestions"`

	// SyntaxScore is a 0-100 quality score derived from the error and
	// warning counts.
	SyntaxScore int `json:"syntax_score"`
}

// Errors returns only the error-severity findings.
func (r ValidationResult) Errors() []Finding {
	return r.findingsWith(SeverityError)
}

// Warnings returns only the warning-severity findings.
func (r ValidationResult) Warnings() []Finding {
	return r.findingsWith(SeverityWarning)
}

func (r ValidationResult) findingsWith(s Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

// collector accumulates findings and suggestions during a validation run,
// de-duplicating while preserving first-occurrence order.
type collector struct {
	findings    []Finding
	suggestions []string
	seenFinding map[Finding]struct{}
	seenSuggest map[string]struct{}
}

func newCollector() *collector {
	return &collector{
		seenFinding: make(map[Finding]struct{}),
		seenSuggest: make(map[string]struct{}),
	}
}

func (c *collector) errorf(format string, args ...any) {
	c.add(SeverityError, format, args...)
}

func (c *collector) warnf(format string, args ...any) {
	c.add(SeverityWarning, format, args...)
}

func (c *collector) add(severity Severity, format string, args ...any) {
	f := Finding{Severity: severity, Message: fmt.Sprintf(format, args...)}
	if _, dup := c.seenFinding[f]; dup {
		return
	}
	c.seenFinding[f] = struct{}{}
	c.findings = append(c.findings, f)
}

func (c *collector) suggest(message string) {
	if _, dup := c.seenSuggest[message]; dup {
		return
	}
	c.seenSuggest[message] = struct{}{}
	c.suggestions = append(c.suggestions, message)
}

// result finalizes the run into a ValidationResult, computing validity and
// the syntax score.
func (c *collector) result() ValidationResult {
	errorCount := 0
	warningCount := 0
	for _, f := range c.findings {
		switch f.Severity {
		case SeverityError:
			errorCount++
		case SeverityWarning:
			warningCount++
		}
	}

	return ValidationResult{
		IsValid:                 errorCount == 0,
		Findings:                c.findings,
		OptimizationSuggestions: c.suggestions,
		SyntaxScore:             syntaxScore(errorCount, warningCount),
	}
}

// syntaxScore computes a 0-100 quality score. Errors dominate: any error
// caps the score at 50 minus 10 per error; warnings alone deduct 5 each with
// a floor of 70.
func syntaxScore(errorCount, warningCount int) int {
	if errorCount > 0 {
		return maxInt(0, 50-errorCount*10)
	}
	if warningCount > 0 {
		return maxInt(70, 100-warningCount*5)
	}
	return 100
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
