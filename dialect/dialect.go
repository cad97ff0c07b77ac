package dialect

import "fmt"

// Dialect identifies a target query language for generated hunting queries.
// The set is closed: adding a dialect requires adding a prompt template and a
// validator rule set for it in the same change.
type Dialect string

const (
	// SPL is Splunk Search Processing Language.
	SPL Dialect = "spl"

	// KQL is Kusto Query Language, used by Microsoft Sentinel and
	// Azure Data Explorer.
	KQL Dialect = "kql"

	// DSL is the Elasticsearch query DSL (a JSON document).
	DSL Dialect = "dsl"
)

// String returns the string representation of the dialect.
func (d Dialect) String() string {
	return string(d)
}

// IsValid returns true if the dialect is a recognized value.
func (d Dialect) IsValid() bool {
	switch d {
	case SPL, KQL, DSL:
		return true
	default:
		return false
	}
}

// DisplayName returns a human-readable name for the dialect.
func (d Dialect) DisplayName() string {
	switch d {
	case SPL:
		return "Splunk SPL"
	case KQL:
		return "Kusto Query Language"
	case DSL:
		return "Elasticsearch DSL"
	default:
		return "Unknown"
	}
}

// All returns every supported dialect in a stable order.
// Construction-time exhaustiveness checks (prompt templates, validator rule
// sets) iterate this list.
func All() []Dialect {
	return []Dialect{SPL, KQL, DSL}
}

// Parse converts a string into a Dialect.
// Returns an error if the string is not a supported dialect.
func Parse(s string) (Dialect, error) {
	d := Dialect(s)
	if !d.IsValid() {
		return "", fmt.Errorf("unsupported query dialect: %q", s)
	}
	return d, nil
}
