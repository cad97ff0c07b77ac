package library

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zero-day-ai/huntgen/dialect"
)

// SavedQuery is a generated query persisted to the hunt library for reuse.
type SavedQuery struct {
	// ID uniquely identifies the saved query.
	ID string `json:"id"`

	// Name is a short caller-supplied label.
	Name string `json:"name"`

	// Description is the threat description the query was generated from.
	Description string `json:"description"`

	// Dialect is the target query language.
	Dialect dialect.Dialect `json:"dialect"`

	// QueryText is the query itself.
	QueryText string `json:"query_text"`

	// Explanation describes what the query looks for.
	Explanation string `json:"explanation,omitempty"`

	// TechniqueID is the mapped attack technique, when one was found.
	TechniqueID string `json:"technique_id,omitempty"`

	// SyntaxScore is the validator's score at save time.
	SyntaxScore int `json:"syntax_score"`

	// Tags are caller-supplied labels used for lookup.
	Tags []string `json:"tags,omitempty"`

	// CreatedAt is when the query was saved.
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the saved query has the fields the store requires.
func (q *SavedQuery) Validate() error {
	if q.Name == "" {
		return fmt.Errorf("saved query name is required")
	}
	if !q.Dialect.IsValid() {
		return fmt.Errorf("invalid dialect: %s", q.Dialect)
	}
	if q.QueryText == "" {
		return fmt.Errorf("saved query text is required")
	}
	return nil
}

// prepare assigns an ID and timestamp when missing.
func (q *SavedQuery) prepare(now time.Time) {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now.UTC()
	}
}
