package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// dslTopLevelKeys are the keys accepted at the root of a search body.
var dslTopLevelKeys = map[string]struct{}{
	"query": {}, "aggs": {}, "aggregations": {}, "size": {}, "from": {},
	"sort": {}, "_source": {}, "fields": {}, "script_fields": {},
	"docvalue_fields": {}, "post_filter": {}, "highlight": {}, "rescore": {},
	"search_after": {}, "collapse": {}, "timeout": {}, "terminate_after": {},
	"min_score": {}, "track_scores": {}, "track_total_hits": {},
	"indices_boost": {}, "search_type": {}, "scroll": {}, "pit": {},
	"runtime_mappings": {},
}

// dslQueryTypes are the query clauses accepted inside a "query" tree.
var dslQueryTypes = map[string]struct{}{
	"match": {}, "match_all": {}, "match_phrase": {}, "match_phrase_prefix": {},
	"multi_match": {}, "term": {}, "terms": {}, "terms_set": {}, "range": {},
	"exists": {}, "prefix": {}, "wildcard": {}, "regexp": {}, "fuzzy": {},
	"type": {}, "ids": {}, "bool": {}, "boosting": {}, "constant_score": {},
	"dis_max": {}, "function_score": {}, "nested": {}, "has_child": {},
	"has_parent": {}, "parent_id": {}, "geo_bounding_box": {},
	"geo_distance": {}, "geo_polygon": {}, "geo_shape": {},
	"more_like_this": {}, "percolate": {}, "rank_feature": {}, "script": {},
	"script_score": {}, "wrapper": {}, "pinned": {}, "span_term": {},
	"span_multi": {}, "span_first": {}, "span_near": {}, "span_or": {},
	"span_not": {}, "span_containing": {}, "span_within": {},
	"field_masking_span": {}, "distance_feature": {}, "query_string": {},
	"simple_query_string": {},
}

// dslAggregationTypes are the aggregation clauses accepted inside an
// "aggs"/"aggregations" tree.
var dslAggregationTypes = map[string]struct{}{
	"avg": {}, "weighted_avg": {}, "cardinality": {}, "extended_stats": {},
	"geo_bounds": {}, "geo_centroid": {}, "geo_line": {}, "max": {},
	"median_absolute_deviation": {}, "min": {}, "percentiles": {},
	"percentile_ranks": {}, "scripted_metric": {}, "stats": {},
	"string_stats": {}, "sum": {}, "top_hits": {}, "top_metrics": {},
	"value_count": {}, "boxplot": {}, "t_test": {}, "rate": {},
	"adjacency_matrix": {}, "auto_date_histogram": {}, "children": {},
	"composite": {}, "date_histogram": {}, "date_range": {},
	"diversified_sampler": {}, "filter": {}, "filters": {},
	"geo_distance": {}, "geo_hash_grid": {}, "geo_tile_grid": {},
	"global": {}, "histogram": {}, "ip_range": {}, "missing": {},
	"multi_terms": {}, "nested": {}, "parent": {}, "random_sampler": {},
	"range": {}, "rare_terms": {}, "reverse_nested": {}, "sampler": {},
	"significant_terms": {}, "significant_text": {}, "terms": {},
	"variable_width_histogram": {},
}

var dslBoolKeys = map[string]struct{}{
	"must": {}, "should": {}, "must_not": {}, "filter": {},
	"minimum_should_match": {}, "boost": {},
}

var dslRangeKeys = map[string]struct{}{
	"gt": {}, "gte": {}, "lt": {}, "lte": {}, "boost": {}, "format": {},
	"time_zone": {}, "relation": {},
}

// validateDSL runs the query DSL rule set over a trimmed, non-empty query.
// The query must parse as a JSON document; object keys are visited in sorted
// order so findings come out in a stable order.
func validateDSL(c *collector, query string) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(query), &parsed); err != nil {
		c.errorf("invalid JSON structure: %v", err)
		return
	}

	for _, key := range sortedKeys(parsed) {
		if _, ok := dslTopLevelKeys[key]; !ok {
			c.warnf("unusual top-level key: %q", key)
		}
	}

	if _, hasQuery := parsed["query"]; !hasQuery {
		if _, hasAggs := parsed["aggs"]; !hasAggs {
			if _, hasAggregations := parsed["aggregations"]; !hasAggregations {
				c.warnf("document should contain a 'query' or 'aggs' field")
			}
		}
	}

	if q, ok := parsed["query"]; ok {
		validateDSLQuery(c, q, "query")
	}
	for _, key := range []string{"aggs", "aggregations"} {
		if a, ok := parsed[key]; ok {
			validateDSLAggregations(c, a, key)
		}
	}

	checkDSLPerformance(c, query, parsed)

	if strings.Contains(query, "script") {
		c.warnf("inline scripts may pose security risks; prefer stored scripts")
	}
	checkSensitiveFields(c, query)
}

// validateDSLQuery recursively checks query clause names, descending into
// bool sub-clauses.
func validateDSLQuery(c *collector, node any, path string) {
	obj, ok := node.(map[string]any)
	if !ok {
		c.errorf("query at %q should be an object", path)
		return
	}

	for _, clause := range sortedKeys(obj) {
		content := obj[clause]

		if _, known := dslQueryTypes[clause]; !known {
			if _, boolClause := dslBoolKeys[clause]; !boolClause {
				c.errorf("unknown query type %q at %q", clause, path)
			}
		}

		switch clause {
		case "bool":
			boolObj, ok := content.(map[string]any)
			if !ok {
				c.errorf("bool query at %q should contain an object", path)
				continue
			}
			for _, key := range sortedKeys(boolObj) {
				if _, valid := dslBoolKeys[key]; !valid {
					c.errorf("invalid bool query key %q at %q", key, path+".bool")
				}
			}
			for _, sub := range []string{"filter", "must", "must_not", "should"} {
				child, ok := boolObj[sub]
				if !ok {
					continue
				}
				childPath := path + ".bool." + sub
				switch cv := child.(type) {
				case []any:
					for i, item := range cv {
						validateDSLQuery(c, item, fmt.Sprintf("%s[%d]", childPath, i))
					}
				case map[string]any:
					validateDSLQuery(c, cv, childPath)
				}
			}
		case "range":
			rangeObj, ok := content.(map[string]any)
			if !ok {
				continue
			}
			for _, field := range sortedKeys(rangeObj) {
				params, ok := rangeObj[field].(map[string]any)
				if !ok {
					continue
				}
				for _, key := range sortedKeys(params) {
					if _, valid := dslRangeKeys[key]; !valid {
						c.errorf("invalid range parameter %q at %q", key, path+".range."+field)
					}
				}
			}
		}
	}
}

// validateDSLAggregations recursively checks aggregation clause names.
func validateDSLAggregations(c *collector, node any, path string) {
	obj, ok := node.(map[string]any)
	if !ok {
		c.errorf("aggregations at %q should be an object", path)
		return
	}

	for _, name := range sortedKeys(obj) {
		content, ok := obj[name].(map[string]any)
		if !ok {
			c.errorf("aggregation %q should be an object", name)
			continue
		}

		hasType := false
		for key := range content {
			if _, known := dslAggregationTypes[key]; known {
				hasType = true
				break
			}
		}
		_, hasAggs := content["aggs"]
		_, hasAggregations := content["aggregations"]
		if !hasType && !hasAggs && !hasAggregations {
			c.errorf("unknown aggregation type in %q", name)
		}

		for _, sub := range []string{"aggs", "aggregations"} {
			if child, ok := content[sub]; ok {
				validateDSLAggregations(c, child, path+"."+name+"."+sub)
			}
		}
	}
}

// checkDSLPerformance emits optimization suggestions from the document shape.
func checkDSLPerformance(c *collector, query string, parsed map[string]any) {
	if !strings.Contains(query, "@timestamp") && !strings.Contains(strings.ToLower(query), "timestamp") {
		suggestTimeBound(c, "a range filter on @timestamp")
	}

	if size, ok := parsed["size"]; !ok {
		c.suggest("specify a 'size' parameter to limit results")
	} else if n, isNum := size.(float64); isNum && n > 10000 {
		c.suggest("large 'size' values may impact performance; consider search_after")
	}

	if containsAny(query, "wildcard", "prefix") {
		c.suggest("wildcard and prefix queries can be slow")
	}
	if strings.Contains(query, "script") {
		c.suggest("scripts can impact performance; ensure they are cached")
	}
	if strings.Contains(query, "nested") {
		c.suggest("nested queries can be expensive; ensure they are necessary")
	}
}

// sortedKeys returns the keys of m in ascending order for deterministic
// iteration.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
