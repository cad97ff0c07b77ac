// Package extract parses raw language-model completions into a structured
// query/explanation pair. Model output is adversarial input: extraction never
// fails, it degrades through an ordered chain of passes until the whole-text
// fallback. Absence of content becomes the empty string, never an error; the
// validator's findings are the authoritative quality signal downstream.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/zero-day-ai/huntgen/dialect"
)

// FallbackNote is the synthetic explanation used when the completion carried
// no recognizable explanation.
const FallbackNote = "no explanation returned"

// Source identifies which extraction pass produced a result.
type Source string

const (
	// SourceLabels means the labeled QUERY:/EXPLANATION: blocks were found.
	SourceLabels Source = "labels"

	// SourceFence means the query came from the first fenced code block.
	SourceFence Source = "fenced_block"

	// SourceJSON means the completion carried a {"query": ..., "explanation": ...} object.
	SourceJSON Source = "json_object"

	// SourceWholeText means no structure was found and the entire
	// completion was taken as the query.
	SourceWholeText Source = "whole_text"
)

// Result is the structured form of a completion. The caller fills in dialect
// and timing on the final GeneratedQuery.
type Result struct {
	// QueryText is the extracted query, whitespace-trimmed.
	QueryText string

	// Explanation describes the query, or FallbackNote when absent.
	Explanation string

	// Source records which pass matched, for logging and metrics.
	Source Source
}

// pass attempts one extraction strategy. ok is false when the strategy does
// not apply to the text; the next pass in the chain then runs.
type pass func(raw string, d dialect.Dialect) (Result, bool)

// passes is the ordered fallback chain. First match wins.
var passes = []pass{
	labeledPass,
	fencedPass,
	jsonObjectPass,
}

// Extract parses a raw completion into a Result. It is a total function:
// every input, including the empty string, yields a usable Result that must
// still be validated.
func Extract(raw string, d dialect.Dialect) Result {
	for _, p := range passes {
		if res, ok := p(raw, d); ok {
			return res
		}
	}
	return Result{
		QueryText:   cleanArtifacts(raw),
		Explanation: FallbackNote,
		Source:      SourceWholeText,
	}
}

// Label matching is case-insensitive but must index raw directly; case
// folding can change the byte length of surrounding text.
var (
	queryLabelRe       = regexp.MustCompile(`(?i)QUERY:`)
	explanationLabelRe = regexp.MustCompile(`(?i)EXPLANATION:`)
)

// labeledPass extracts the QUERY:/EXPLANATION: blocks the prompt asks for.
// Both labels must be present; the blocks may appear in either order.
func labeledPass(raw string, _ dialect.Dialect) (Result, bool) {
	q := queryLabelRe.FindStringIndex(raw)
	e := explanationLabelRe.FindStringIndex(raw)
	if q == nil || e == nil {
		return Result{}, false
	}

	var queryPart, explPart string
	if q[0] < e[0] {
		queryPart = raw[q[1]:e[0]]
		explPart = raw[e[1]:]
	} else {
		explPart = raw[e[1]:q[0]]
		queryPart = raw[q[1]:]
	}

	return Result{
		QueryText:   cleanArtifacts(queryPart),
		Explanation: strings.TrimSpace(explPart),
		Source:      SourceLabels,
	}, true
}

// fenceRe matches a fenced code block with an optional language tag.
var fenceRe = regexp.MustCompile("(?s)```[a-zA-Z0-9_-]*\n?(.*?)```")

// fencedPass treats the first fenced code block as the query and all text
// outside fences, whitespace-collapsed, as the explanation.
func fencedPass(raw string, _ dialect.Dialect) (Result, bool) {
	m := fenceRe.FindStringSubmatchIndex(raw)
	if m == nil {
		return Result{}, false
	}

	query := raw[m[2]:m[3]]
	outside := fenceRe.ReplaceAllString(raw, " ")
	explanation := strings.Join(strings.Fields(outside), " ")

	return Result{
		QueryText:   strings.TrimSpace(query),
		Explanation: explanation,
		Source:      SourceFence,
	}, true
}

// jsonCompletion is the {"query", "explanation"} object some models return
// regardless of formatting instructions.
type jsonCompletion struct {
	Query       json.RawMessage `json:"query"`
	Explanation *string         `json:"explanation"`
}

// jsonObjectPass slices the text between the first '{' and the last '}' and
// accepts it when it parses as an object carrying both fields. The
// explanation field must be present so that a bare DSL document (whose root
// key is also "query") is not mistaken for the wrapper format.
func jsonObjectPass(raw string, _ dialect.Dialect) (Result, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return Result{}, false
	}

	var obj jsonCompletion
	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil {
		return Result{}, false
	}
	if obj.Explanation == nil || len(obj.Query) == 0 {
		return Result{}, false
	}

	var query string
	if err := json.Unmarshal(obj.Query, &query); err != nil {
		// The query field is a nested document, not a string.
		query = string(obj.Query)
	}

	return Result{
		QueryText:   cleanArtifacts(query),
		Explanation: strings.TrimSpace(*obj.Explanation),
		Source:      SourceJSON,
	}, true
}

// cleanArtifacts strips the wrapping the model may add around a query:
// surrounding whitespace, a fenced-block shell, or stray backticks.
func cleanArtifacts(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		if m := fenceRe.FindStringSubmatch(s); m != nil {
			s = strings.TrimSpace(m[1])
		} else {
			// Unterminated fence: drop the opening line.
			if i := strings.IndexByte(s, '\n'); i >= 0 {
				s = strings.TrimSpace(s[i+1:])
			} else {
				s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
			}
		}
	}

	s = strings.Trim(s, "`")
	return strings.TrimSpace(s)
}
