package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/huntgen/dialect"
)

func TestNewRuleEngine(t *testing.T) {
	t.Run("compiles valid rules", func(t *testing.T) {
		engine, err := NewRuleEngine([]CustomRule{
			{
				Name:       "require-index",
				Expression: `dialect != "spl" || query.contains("index=")`,
				Message:    "SPL queries must scope an index",
				Severity:   SeverityError,
			},
			{
				Name:       "no-wildcard-search",
				Expression: `!query.startsWith("search *")`,
				Message:    "avoid unbounded wildcard searches",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, engine.Len())
	})

	t.Run("rejects rule without name", func(t *testing.T) {
		_, err := NewRuleEngine([]CustomRule{{Expression: "true", Message: "x"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing name")
	})

	t.Run("rejects expression that does not compile", func(t *testing.T) {
		_, err := NewRuleEngine([]CustomRule{
			{Name: "broken", Expression: "query ==", Message: "x"},
		})
		require.Error(t, err)
	})

	t.Run("rejects non-boolean expression", func(t *testing.T) {
		_, err := NewRuleEngine([]CustomRule{
			{Name: "not-bool", Expression: "query + dialect", Message: "x"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must yield bool")
	})

	t.Run("rejects invalid severity", func(t *testing.T) {
		_, err := NewRuleEngine([]CustomRule{
			{Name: "bad-sev", Expression: "true", Message: "x", Severity: "fatal"},
		})
		require.Error(t, err)
	})
}

func TestRuleEngineApply(t *testing.T) {
	v := newTestValidator(t)
	engine, err := NewRuleEngine([]CustomRule{
		{
			Name:       "require-index",
			Expression: `dialect != "spl" || query.contains("index=")`,
			Message:    "SPL queries must scope an index",
			Severity:   SeverityError,
		},
		{
			Name:       "suggest-head",
			Expression: `!dialect.startsWith("spl") || query.contains("head")`,
			Message:    "cap result count with head",
			Severity:   SeverityInfo,
		},
	})
	require.NoError(t, err)

	t.Run("failed error rule invalidates the result", func(t *testing.T) {
		query := "search EventCode=4625 earliest=-24h | head 10"
		base := v.Validate(query, dialect.SPL)
		res := engine.Apply(base, query, dialect.SPL)

		assert.False(t, res.IsValid)
		found := false
		for _, f := range res.Errors() {
			if f.Message == "SPL queries must scope an index" {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("passing rules leave the result unchanged", func(t *testing.T) {
		query := "index=security EventCode=4625 earliest=-24h | head 10"
		base := v.Validate(query, dialect.SPL)
		res := engine.Apply(base, query, dialect.SPL)
		assert.Equal(t, base, res)
	})

	t.Run("info rule becomes a suggestion", func(t *testing.T) {
		query := "index=security EventCode=4625 earliest=-24h | stats count"
		base := v.Validate(query, dialect.SPL)
		res := engine.Apply(base, query, dialect.SPL)

		assert.True(t, res.IsValid)
		assert.Contains(t, res.OptimizationSuggestions, "cap result count with head")
	})

	t.Run("rules do not apply to other dialects", func(t *testing.T) {
		query := "SecurityEvent | where TimeGenerated > ago(24h) | where EventID == 4625"
		base := v.Validate(query, dialect.KQL)
		res := engine.Apply(base, query, dialect.KQL)
		assert.Equal(t, base, res)
	})
}
