package validate

import (
	"regexp"
	"strings"
)

// kqlOperators are the tabular operators accepted after a pipe.
var kqlOperators = map[string]struct{}{
	"where": {}, "project": {}, "extend": {}, "summarize": {}, "distinct": {},
	"top": {}, "sort": {}, "join": {}, "union": {}, "let": {}, "as": {},
	"parse": {}, "evaluate": {}, "invoke": {}, "render": {}, "take": {},
	"limit": {}, "sample": {}, "count": {}, "getschema": {}, "datatable": {},
	"print": {}, "search": {}, "find": {}, "mv-expand": {}, "mv-apply": {},
	"make-series": {}, "order": {}, "partition": {}, "scan": {}, "serialize": {},
	"facet": {},
}

// kqlFunctions are scalar and aggregation function names; an unrecognized
// operator is tolerated when its segment uses one of these.
var kqlFunctions = []string{
	"ago", "now", "startofday", "startofweek", "startofmonth", "startofyear",
	"endofday", "endofweek", "endofmonth", "endofyear", "datetime", "totimespan",
	"bin", "floor", "ceiling", "round", "abs", "exp", "log", "pow", "sqrt",
	"strlen", "substring", "tolower", "toupper", "strcat", "split", "replace",
	"trim", "countof", "extract", "parse_json", "parse_xml", "parse_csv",
	"todynamic", "tostring", "toint", "tolong", "todouble", "tobool",
	"todatetime", "isnull", "isnotnull", "isempty", "isnotempty", "count",
	"dcount", "sum", "avg", "min", "max", "make_list", "make_set", "percentile",
	"stdev", "variance", "arg_max", "arg_min", "contains", "has", "hasprefix",
	"hassuffix", "between",
}

var kqlTableRe = regexp.MustCompile(`^[A-Z][a-zA-Z0-9_]*$`)

// validateKQL runs the KQL rule set over a trimmed, non-empty query.
func validateKQL(c *collector, query string) {
	checkBalancedDelimiters(c, query)
	checkBalancedQuotes(c, query)

	segments := splitPipeline(c, query)
	if len(segments) == 0 {
		c.errorf("no operators found in query")
		return
	}

	if !isKQLTableStart(segments[0]) {
		c.warnf("query should start with a table name (e.g. SecurityEvent, Syslog)")
	}

	for i, seg := range segments {
		validateKQLOperator(c, seg, i)
	}

	lower := strings.ToLower(query)

	if !containsAny(query, "TimeGenerated", "Timestamp", "ago(", "startofday", "between") {
		suggestTimeBound(c, "where TimeGenerated > ago(24h)")
	}
	if strings.Contains(lower, "contains") {
		c.suggest("consider 'has' instead of 'contains' for faster word matches")
	}
	if strings.Count(lower, "join") > 1 {
		c.suggest("multiple joins may impact performance")
	}
	if !hasFieldFilter(query) {
		c.suggest("narrow the search with additional field filters")
	}

	checkSensitiveFields(c, query)
}

// isKQLTableStart reports whether the first pipeline segment looks like a
// table reference or a statement that can open a query.
func isKQLTableStart(seg string) bool {
	fields := strings.Fields(seg)
	if len(fields) == 0 {
		return false
	}
	if kqlTableRe.MatchString(fields[0]) {
		return true
	}
	lower := strings.ToLower(seg)
	return strings.HasPrefix(lower, "let ") ||
		strings.HasPrefix(lower, "print") ||
		strings.HasPrefix(lower, "search") ||
		strings.HasPrefix(lower, "find") ||
		strings.HasPrefix(lower, "union")
}

// validateKQLOperator validates one pipeline segment past the table name.
func validateKQLOperator(c *collector, seg string, position int) {
	if position == 0 {
		return
	}

	segLower := strings.ToLower(seg)
	name := firstToken(seg)
	words := strings.Fields(seg)

	if name != "" {
		if _, known := kqlOperators[name]; !known && !containsAny(segLower, kqlFunctions...) {
			c.errorf("unknown KQL operator: %q", name)
		}
	}

	switch name {
	case "where":
		if len(words) < 2 {
			c.errorf("where operator requires a condition")
		} else {
			condition := strings.Join(words[1:], " ")
			if !containsAny(condition, "==", "!=", ">", "<", ">=", "<=", "contains", "startswith", "has") {
				c.warnf("where condition should include comparison operators")
			}
			if strings.Contains(condition, " = ") && !strings.Contains(condition, " == ") {
				c.errorf("use '==' for equality comparison, not '='")
			}
		}
	case "project":
		if len(words) < 2 {
			c.errorf("project operator requires field names")
		}
	case "summarize":
		if !containsAny(segLower, "count(", "sum(", "avg(", "min(", "max(", "dcount(", "make_set(", "make_list(") {
			c.warnf("summarize should include aggregation functions")
		}
		if i := strings.Index(segLower, " by "); i >= 0 {
			if strings.TrimSpace(segLower[i+4:]) == "" {
				c.errorf("summarize 'by' clause is empty")
			}
		}
	case "extend":
		if !strings.Contains(seg, "=") {
			c.errorf("extend operator requires field assignment (field = expression)")
		}
	case "join":
		if !strings.Contains(segLower, "kind=") {
			c.suggest("specify a join kind (inner, leftouter, rightouter)")
		}
		if !strings.Contains(segLower, " on ") && !strings.Contains(segLower, "$left") {
			c.warnf("join should specify an 'on' condition")
		}
	case "parse":
		if !strings.Contains(segLower, "with") {
			c.warnf("parse operator should specify a 'with' pattern clause")
		}
	}
}
