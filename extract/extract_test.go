package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/huntgen/dialect"
)

func TestExtractLabeledBlocks(t *testing.T) {
	t.Run("recovers delimited substrings exactly", func(t *testing.T) {
		raw := "QUERY:\nindex=security EventCode=4625 | stats count by user\nEXPLANATION:\nCounts failed logins by user."

		res := Extract(raw, dialect.SPL)
		assert.Equal(t, SourceLabels, res.Source)
		assert.Equal(t, "index=security EventCode=4625 | stats count by user", res.QueryText)
		assert.Equal(t, "Counts failed logins by user.", res.Explanation)
	})

	t.Run("labels in reverse order", func(t *testing.T) {
		raw := "EXPLANATION:\nLooks for beacons.\nQUERY:\nSecurityEvent | where EventID == 3"

		res := Extract(raw, dialect.KQL)
		assert.Equal(t, SourceLabels, res.Source)
		assert.Equal(t, "SecurityEvent | where EventID == 3", res.QueryText)
		assert.Equal(t, "Looks for beacons.", res.Explanation)
	})

	t.Run("case-insensitive labels", func(t *testing.T) {
		raw := "query:\nindex=main\nexplanation:\nEverything."

		res := Extract(raw, dialect.SPL)
		assert.Equal(t, SourceLabels, res.Source)
		assert.Equal(t, "index=main", res.QueryText)
	})

	t.Run("multi-byte text before the labels", func(t *testing.T) {
		// Some runes change byte length under case folding (ȿ U+023F is
		// 2 bytes, its upper case Ȿ U+2C7E is 3); label offsets must be
		// found on the raw text.
		raw := strings.Repeat("ȿ", 40) + " preamble\nQUERY:\nindex=main | head 5\nEXPLANATION:\nFirst five events."

		res := Extract(raw, dialect.SPL)
		assert.Equal(t, SourceLabels, res.Source)
		assert.Equal(t, "index=main | head 5", res.QueryText)
		assert.Equal(t, "First five events.", res.Explanation)
	})

	t.Run("multi-byte text between reversed labels", func(t *testing.T) {
		raw := "EXPLANATION:\nDétecte les connexions échouées ȿȿȿ.\nQUERY:\nindex=security EventCode=4625"

		res := Extract(raw, dialect.SPL)
		assert.Equal(t, SourceLabels, res.Source)
		assert.Equal(t, "index=security EventCode=4625", res.QueryText)
		assert.Equal(t, "Détecte les connexions échouées ȿȿȿ.", res.Explanation)
	})

	t.Run("query wrapped in a fence inside labels", func(t *testing.T) {
		raw := "QUERY:\n```spl\nindex=security | head 10\n```\nEXPLANATION:\nFirst ten events."

		res := Extract(raw, dialect.SPL)
		assert.Equal(t, "index=security | head 10", res.QueryText)
	})
}

func TestExtractFencedBlock(t *testing.T) {
	t.Run("first fence is the query", func(t *testing.T) {
		raw := "Here is your query:\n```kql\nSecurityEvent | where EventID == 4625\n```\nIt counts failures."

		res := Extract(raw, dialect.KQL)
		assert.Equal(t, SourceFence, res.Source)
		assert.Equal(t, "SecurityEvent | where EventID == 4625", res.QueryText)
		assert.Equal(t, "Here is your query: It counts failures.", res.Explanation)
	})

	t.Run("multiple fences use the first", func(t *testing.T) {
		raw := "```\nindex=a\n```\nor alternatively\n```\nindex=b\n```"

		res := Extract(raw, dialect.SPL)
		assert.Equal(t, "index=a", res.QueryText)
		assert.Equal(t, "or alternatively", res.Explanation)
	})
}

func TestExtractJSONObject(t *testing.T) {
	t.Run("wrapper object with string query", func(t *testing.T) {
		raw := `Sure! {"query": "index=security EventCode=4625", "explanation": "Failed logins."}`

		res := Extract(raw, dialect.SPL)
		assert.Equal(t, SourceJSON, res.Source)
		assert.Equal(t, "index=security EventCode=4625", res.QueryText)
		assert.Equal(t, "Failed logins.", res.Explanation)
	})

	t.Run("wrapper object with nested document query", func(t *testing.T) {
		raw := `{"query": {"query": {"match_all": {}}}, "explanation": "Matches everything."}`

		res := Extract(raw, dialect.DSL)
		assert.Equal(t, SourceJSON, res.Source)
		assert.JSONEq(t, `{"query": {"match_all": {}}}`, res.QueryText)
		assert.Equal(t, "Matches everything.", res.Explanation)
	})

	t.Run("bare DSL document is not mistaken for the wrapper", func(t *testing.T) {
		raw := `{"query": {"bool": {"must": []}}, "size": 10}`

		res := Extract(raw, dialect.DSL)
		assert.Equal(t, SourceWholeText, res.Source)
		assert.Equal(t, raw, res.QueryText)
	})
}

func TestExtractWholeTextFallback(t *testing.T) {
	t.Run("prose with no structure", func(t *testing.T) {
		raw := "  index=security failed login attempts  "

		res := Extract(raw, dialect.SPL)
		assert.Equal(t, SourceWholeText, res.Source)
		assert.Equal(t, "index=security failed login attempts", res.QueryText)
		assert.Equal(t, FallbackNote, res.Explanation)
	})

	t.Run("empty input yields empty query", func(t *testing.T) {
		res := Extract("", dialect.KQL)
		assert.Equal(t, SourceWholeText, res.Source)
		assert.Empty(t, res.QueryText)
		assert.Equal(t, FallbackNote, res.Explanation)
	})

	t.Run("stray backticks stripped", func(t *testing.T) {
		res := Extract("`index=main`", dialect.SPL)
		assert.Equal(t, "index=main", res.QueryText)
	})
}

func TestExtractDeterministic(t *testing.T) {
	raw := "QUERY: index=x | stats count\nEXPLANATION: Counts events."
	first := Extract(raw, dialect.SPL)
	second := Extract(raw, dialect.SPL)
	require.Equal(t, first, second)
}

func TestCleanArtifacts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "index=main", "index=main"},
		{"whitespace", "  index=main \n", "index=main"},
		{"fence with language", "```spl\nindex=main\n```", "index=main"},
		{"unterminated fence", "```\nindex=main", "index=main"},
		{"single backticks", "`index=main`", "index=main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanArtifacts(tt.input))
		})
	}
}
