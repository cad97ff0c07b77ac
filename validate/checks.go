package validate

import (
	"fmt"
	"strings"
)

// checkBalancedDelimiters verifies that parentheses, brackets, and braces
// pair up, reporting each mismatch as an error.
func checkBalancedDelimiters(c *collector, query string) {
	closers := map[rune]rune{'(': ')', '[': ']', '{': '}'}

	type open struct {
		char rune
		pos  int
	}
	var stack []open

	for i, ch := range query {
		switch ch {
		case '(', '[', '{':
			stack = append(stack, open{ch, i})
		case ')', ']', '}':
			if len(stack) == 0 {
				c.errorf("unmatched closing %q at position %d", string(ch), i)
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if closers[top.char] != ch {
				c.errorf("mismatched delimiters: %q at position %d and %q at position %d",
					string(top.char), top.pos, string(ch), i)
			}
		}
	}

	for _, o := range stack {
		c.errorf("unclosed %q at position %d", string(o.char), o.pos)
	}
}

// checkBalancedQuotes verifies double and single quote counts are even.
func checkBalancedQuotes(c *collector, query string) {
	if n := strings.Count(query, `"`); n%2 != 0 {
		c.errorf("unbalanced double quotes (found %d)", n)
	}
	if n := strings.Count(query, `'`); n%2 != 0 {
		c.errorf("unbalanced single quotes (found %d)", n)
	}
}

// splitPipeline splits a piped query into trimmed segments and reports empty
// clauses between pipes as errors. The returned slice omits empty segments.
func splitPipeline(c *collector, query string) []string {
	parts := strings.Split(query, "|")
	segments := make([]string, 0, len(parts))

	for i, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			// A leading bare pipe is a generating-command idiom in
			// SPL ("| tstats ..."), not an empty clause.
			if i == 0 {
				continue
			}
			c.errorf("empty clause at pipe segment %d", i)
			continue
		}
		segments = append(segments, trimmed)
	}

	return segments
}

// sensitiveFieldTokens are field names whose presence in a query may expose
// secrets in results.
var sensitiveFieldTokens = []string{"password", "passwd", "pwd", "secret", "token", "api_key", "apikey", "credential"}

// checkSensitiveFields warns when a query touches secret-bearing fields.
func checkSensitiveFields(c *collector, query string) {
	lower := strings.ToLower(query)
	for _, field := range sensitiveFieldTokens {
		if strings.Contains(lower, field) {
			c.warnf("query may expose sensitive field: %s", field)
		}
	}
}

// firstToken returns the first whitespace-delimited token of s, lowercased.
func firstToken(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// containsAny reports whether s contains any of the substrings.
func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// suggestTimeBound emits the shared "add a time bound" suggestion.
func suggestTimeBound(c *collector, hint string) {
	c.suggest(fmt.Sprintf("add a time bound (%s) to limit the search window", hint))
}
