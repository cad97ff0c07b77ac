package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityIsValid(t *testing.T) {
	for _, s := range AllSeverities() {
		assert.True(t, s.IsValid(), "severity %s should be valid", s)
	}
	assert.False(t, Severity("critical").IsValid())
	assert.False(t, Severity("").IsValid())
}

func TestSeverityWeight(t *testing.T) {
	tests := []struct {
		severity Severity
		weight   int
	}{
		{SeverityError, 3},
		{SeverityWarning, 2},
		{SeverityInfo, 1},
		{Severity("bogus"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.severity.String(), func(t *testing.T) {
			assert.Equal(t, tt.weight, tt.severity.Weight())
		})
	}
}

func TestCompareSeverity(t *testing.T) {
	assert.Positive(t, CompareSeverity(SeverityError, SeverityWarning))
	assert.Negative(t, CompareSeverity(SeverityInfo, SeverityWarning))
	assert.Zero(t, CompareSeverity(SeverityWarning, SeverityWarning))
}

func TestParseSeverity(t *testing.T) {
	t.Run("valid levels round-trip", func(t *testing.T) {
		for _, want := range AllSeverities() {
			got, err := ParseSeverity(want.String())
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := ParseSeverity("fatal")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid severity")
	})
}

func TestAllSeveritiesOrdering(t *testing.T) {
	all := AllSeverities()
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.Negative(t, CompareSeverity(all[i], all[i-1]),
			"severities should be ordered from highest to lowest weight")
	}
}
