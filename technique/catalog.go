package technique

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is an immutable, read-only table of attack techniques. It is built
// once at startup and never mutated afterwards, so concurrent readers need no
// synchronization.
type Catalog struct {
	techniques map[string]Technique
	tactics    map[string]Tactic
	ids        []string // sorted technique IDs, fixes iteration order
}

// NewCatalog builds a catalog from the given tactics and techniques.
// Technique IDs must be unique and well-formed; keywords are normalized to
// lowercase and de-duplicated.
func NewCatalog(tactics []Tactic, techniques []Technique) (*Catalog, error) {
	c := &Catalog{
		techniques: make(map[string]Technique, len(techniques)),
		tactics:    make(map[string]Tactic, len(tactics)),
	}

	for _, ta := range tactics {
		if !tacticIDPattern.MatchString(ta.ID) {
			return nil, fmt.Errorf("tactic id %q does not match pattern TA####", ta.ID)
		}
		if _, dup := c.tactics[ta.ID]; dup {
			return nil, fmt.Errorf("duplicate tactic id %s", ta.ID)
		}
		c.tactics[ta.ID] = ta
	}

	for _, te := range techniques {
		te.Keywords = normalizeKeywords(te.Keywords)
		if err := te.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.techniques[te.ID]; dup {
			return nil, fmt.Errorf("duplicate technique id %s", te.ID)
		}
		if te.TacticID != "" {
			if _, ok := c.tactics[te.TacticID]; !ok {
				return nil, fmt.Errorf("technique %s references unknown tactic %s", te.ID, te.TacticID)
			}
		}
		c.techniques[te.ID] = te
		c.ids = append(c.ids, te.ID)
	}

	sort.Strings(c.ids)
	return c, nil
}

// normalizeKeywords lowercases, de-duplicates, and sorts a keyword list.
func normalizeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// Technique returns the technique with the given ID.
func (c *Catalog) Technique(id string) (Technique, bool) {
	t, ok := c.techniques[id]
	return t, ok
}

// Tactic returns the tactic with the given ID.
func (c *Catalog) Tactic(id string) (Tactic, bool) {
	t, ok := c.tactics[id]
	return t, ok
}

// Techniques returns all techniques ordered by ID.
func (c *Catalog) Techniques() []Technique {
	out := make([]Technique, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.techniques[id])
	}
	return out
}

// Tactics returns all tactics ordered by ID.
func (c *Catalog) Tactics() []Tactic {
	ids := make([]string, 0, len(c.tactics))
	for id := range c.tactics {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Tactic, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.tactics[id])
	}
	return out
}

// TechniquesByTactic returns all techniques belonging to the given tactic,
// ordered by ID.
func (c *Catalog) TechniquesByTactic(tacticID string) []Technique {
	var out []Technique
	for _, id := range c.ids {
		if t := c.techniques[id]; t.TacticID == tacticID {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of techniques in the catalog.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// catalogFile is the YAML document layout accepted by LoadCatalog.
type catalogFile struct {
	Tactics    []Tactic    `yaml:"tactics"`
	Techniques []Technique `yaml:"techniques"`
}

// LoadCatalog reads a catalog from a YAML file. The file must contain
// `tactics` and `techniques` lists using the field names of the Tactic and
// Technique types.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return NewCatalog(doc.Tactics, doc.Techniques)
}

// DefaultCatalog returns the embedded ATT&CK catalog.
// It panics only if the embedded data set is malformed, which is a
// programming error caught by the package tests.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultTactics, defaultTechniques)
	if err != nil {
		panic(fmt.Sprintf("technique: embedded catalog invalid: %v", err))
	}
	return c
}
