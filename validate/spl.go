package validate

import (
	"regexp"
	"strings"
)

// splCommands are the SPL search commands accepted after a pipe.
var splCommands = map[string]struct{}{
	"search": {}, "where": {}, "eval": {}, "stats": {}, "table": {}, "fields": {},
	"rename": {}, "sort": {}, "dedup": {}, "head": {}, "tail": {}, "rex": {},
	"regex": {}, "transaction": {}, "streamstats": {}, "eventstats": {}, "join": {},
	"append": {}, "lookup": {}, "inputlookup": {}, "outputlookup": {}, "bucket": {},
	"chart": {}, "timechart": {}, "top": {}, "rare": {}, "contingency": {},
	"associate": {}, "bin": {}, "convert": {}, "fieldformat": {}, "foreach": {},
	"makemv": {}, "mvexpand": {}, "nomv": {}, "return": {}, "sendemail": {},
	"collect": {}, "sistats": {}, "tstats": {}, "mstats": {}, "metadata": {},
	"addtotals": {}, "makecontinuous": {}, "fillnull": {}, "filldown": {},
}

// splFunctions are the eval/stats functions accepted inside expressions.
var splFunctions = map[string]struct{}{
	"avg": {}, "count": {}, "dc": {}, "distinct_count": {}, "earliest": {},
	"earliest_time": {}, "latest": {}, "latest_time": {}, "max": {}, "median": {},
	"min": {}, "mode": {}, "perc": {}, "percentile": {}, "range": {}, "stdev": {},
	"stdevp": {}, "sum": {}, "sumsq": {}, "var": {}, "varp": {}, "values": {},
	"list": {}, "first": {}, "last": {}, "rate": {}, "abs": {}, "ceil": {},
	"floor": {}, "round": {}, "exp": {}, "ln": {}, "log": {}, "pow": {},
	"sqrt": {}, "if": {}, "case": {}, "coalesce": {}, "isnull": {}, "isnotnull": {},
	"len": {}, "lower": {}, "upper": {}, "substr": {}, "replace": {}, "trim": {},
	"ltrim": {}, "rtrim": {}, "split": {}, "mvcount": {}, "mvindex": {},
	"mvjoin": {}, "now": {}, "time": {}, "strftime": {}, "strptime": {},
	"relative_time": {}, "tostring": {}, "tonumber": {}, "match": {}, "like": {},
	"cidrmatch": {}, "searchmatch": {},
}

var splFuncCallRe = regexp.MustCompile(`(\w+)\s*\(`)

// validateSPL runs the SPL rule set over a trimmed, non-empty query.
func validateSPL(c *collector, query string) {
	checkBalancedDelimiters(c, query)
	checkBalancedQuotes(c, query)

	segments := splitPipeline(c, query)
	if len(segments) == 0 {
		c.errorf("no commands found in query")
		return
	}

	lower := strings.ToLower(query)

	first := strings.ToLower(segments[0])
	if !strings.HasPrefix(first, "search") &&
		!containsAny(first, "index=", "source=", "sourcetype=") &&
		!containsAny(first, "inputlookup", "metadata", "tstats", "datamodel") {
		c.warnf("query should start with 'search' or an index/source specification")
	}

	for i, seg := range segments {
		validateSPLCommand(c, seg, i)
	}

	if !containsAny(query, "earliest=", "latest=", "earliest:", "latest:") && !hasRelativeTimeToken(query) {
		suggestTimeBound(c, "earliest=/latest=")
	}
	if !strings.Contains(lower, "index=") {
		c.suggest("specify an index to narrow search scope")
	}
	if !hasFieldFilter(query) {
		c.suggest("narrow the search with additional field filters")
	}

	if query == "search *" || strings.HasPrefix(query, "* |") {
		c.warnf("overly broad search may expose sensitive data")
	}
	checkSensitiveFields(c, query)
}

// validateSPLCommand validates one pipe segment.
func validateSPLCommand(c *collector, seg string, position int) {
	segLower := strings.ToLower(seg)
	name := firstToken(seg)
	words := strings.Fields(seg)

	if position > 0 && name != "" {
		if _, known := splCommands[name]; !known {
			if !containsAny(seg, "=", ">", "<", "!=", "AND", "OR", "NOT") {
				c.errorf("unknown SPL command: %q", name)
			}
		}
	}

	switch name {
	case "stats":
		if !containsAny(segLower, "count", "avg", "sum", "min", "max", "dc", "values", "list") {
			c.warnf("stats command should include aggregation functions")
		}
		if i := strings.Index(segLower, " by "); i >= 0 {
			if strings.TrimSpace(segLower[i+4:]) == "" {
				c.errorf("stats 'by' clause is empty")
			}
		}
	case "eval":
		if !strings.Contains(seg, "=") {
			c.errorf("eval command requires field assignment (field=expression)")
		} else {
			expr := seg[strings.Index(seg, "=")+1:]
			validateSPLFunctions(c, expr)
		}
	case "where":
		if len(words) < 2 {
			c.errorf("where command requires a condition")
		} else if !containsAny(strings.Join(words[1:], " "), "=", ">", "<", "!=", "like", "match") {
			c.warnf("where condition should include comparison operators")
		}
	case "fields":
		if strings.Contains(seg, "+") && strings.Contains(seg, "-") {
			c.warnf("mixing field inclusion (+) and exclusion (-) can be confusing")
		}
		if len(words) < 2 {
			c.errorf("fields command requires field names")
		}
	case "table":
		if len(words) < 2 {
			c.warnf("table command should specify fields to display")
		}
	case "join":
		if !strings.Contains(seg, "[") || !strings.Contains(seg, "]") {
			c.errorf("join command requires a subsearch in square brackets")
		}
		if !containsAny(segLower, "type=", "left", "inner", "outer") {
			c.suggest("specify a join type (type=left, type=inner)")
		}
	case "rex":
		if position > 0 && !strings.Contains(segLower, "field=") {
			c.warnf("rex should specify a source field with field=")
		}
		if !strings.Contains(seg, "(?<") && !strings.Contains(seg, "(?P<") {
			c.warnf("rex should use named capture groups (?<name>pattern)")
		}
	}
}

// validateSPLFunctions checks function names used in an eval expression.
func validateSPLFunctions(c *collector, expr string) {
	for _, m := range splFuncCallRe.FindAllStringSubmatch(strings.ToLower(expr), -1) {
		if _, known := splFunctions[m[1]]; !known {
			c.errorf("unknown SPL function: %q", m[1])
		}
	}
}

var relativeTimeRe = regexp.MustCompile(`(?i)-?\d+[smhdw]\b|last\s+\d+|@[smhdw]\b`)

// hasRelativeTimeToken reports whether the query carries a relative time
// token such as -24h.
func hasRelativeTimeToken(query string) bool {
	return relativeTimeRe.MatchString(query)
}

var fieldFilterRe = regexp.MustCompile(`\w+\s*(=|!=|>=|<=|>|<)\s*\S`)

// hasFieldFilter reports whether the query filters on at least one field.
func hasFieldFilter(query string) bool {
	return fieldFilterRe.MatchString(query)
}
