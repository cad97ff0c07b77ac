package technique

import (
	"fmt"
	"regexp"
	"strings"
)

// idPattern matches stable ATT&CK technique identifiers (e.g., "T1110").
var idPattern = regexp.MustCompile(`^T\d{4}$`)

// tacticIDPattern matches ATT&CK tactic identifiers (e.g., "TA0006").
var tacticIDPattern = regexp.MustCompile(`^TA\d{4}$`)

// Tactic represents an ATT&CK tactic: the adversary's goal a technique
// serves (e.g., Credential Access).
type Tactic struct {
	// ID is the stable tactic identifier (pattern "TA####").
	ID string `json:"id" yaml:"id"`

	// Name is the tactic's display name.
	Name string `json:"name" yaml:"name"`

	// Description summarizes the adversary goal.
	Description string `json:"description" yaml:"description"`
}

// Technique represents a single ATT&CK technique in the catalog.
type Technique struct {
	// ID is the stable technique identifier (pattern "T####").
	ID string `json:"id" yaml:"id"`

	// Name is the technique's display name.
	Name string `json:"name" yaml:"name"`

	// TacticID references the tactic this technique belongs to.
	TacticID string `json:"tactic" yaml:"tactic"`

	// Description explains what the technique does.
	Description string `json:"description" yaml:"description"`

	// Detection is guidance on how to detect the technique in logs.
	Detection string `json:"detection" yaml:"detection"`

	// Keywords is the set of lowercase tokens used for description
	// matching. Stored as a sorted slice; treated as a set.
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Validate checks that the technique is well-formed for catalog use.
func (t *Technique) Validate() error {
	if !idPattern.MatchString(t.ID) {
		return fmt.Errorf("technique id %q does not match pattern T####", t.ID)
	}
	if t.Name == "" {
		return fmt.Errorf("technique %s: name is required", t.ID)
	}
	if t.TacticID != "" && !tacticIDPattern.MatchString(t.TacticID) {
		return fmt.Errorf("technique %s: tactic id %q does not match pattern TA####", t.ID, t.TacticID)
	}
	for _, kw := range t.Keywords {
		if kw != strings.ToLower(kw) {
			return fmt.Errorf("technique %s: keyword %q is not lowercase", t.ID, kw)
		}
		if strings.ContainsAny(kw, " \t") {
			return fmt.Errorf("technique %s: keyword %q is not a single token", t.ID, kw)
		}
	}
	return nil
}

// HasKeyword reports whether the technique's keyword set contains the token.
func (t *Technique) HasKeyword(token string) bool {
	for _, kw := range t.Keywords {
		if kw == token {
			return true
		}
	}
	return false
}
