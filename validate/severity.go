package validate

import "fmt"

// Severity represents the severity level of a validation finding.
type Severity string

const (
	// SeverityError indicates the query is syntactically broken and will
	// not run. Any error finding makes the result invalid.
	SeverityError Severity = "error"

	// SeverityWarning indicates a construct that is suspicious or
	// non-idiomatic but does not invalidate the query.
	SeverityWarning Severity = "warning"

	// SeverityInfo indicates an informational observation, such as an
	// optimization suggestion. Never affects validity.
	SeverityInfo Severity = "info"
)

// severityWeights maps severity levels to numeric weights for ordering.
var severityWeights = map[Severity]int{
	SeverityError:   3,
	SeverityWarning: 2,
	SeverityInfo:    1,
}

// IsValid returns true if the severity level is valid.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// Weight returns the numeric weight associated with the severity level.
// Returns 0 for invalid severity levels.
func (s Severity) Weight() int {
	return severityWeights[s]
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity parses a string into a Severity value.
// Returns an error if the string is not a valid severity level.
func ParseSeverity(s string) (Severity, error) {
	severity := Severity(s)
	if !severity.IsValid() {
		return "", fmt.Errorf("invalid severity: %s", s)
	}
	return severity, nil
}

// CompareSeverity compares two severity levels by weight.
// Returns negative if s1 < s2, zero if equal, positive if s1 > s2.
func CompareSeverity(s1, s2 Severity) int {
	return s1.Weight() - s2.Weight()
}

// AllSeverities returns all valid severity levels from error to info.
func AllSeverities() []Severity {
	return []Severity{SeverityError, SeverityWarning, SeverityInfo}
}
