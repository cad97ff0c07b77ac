// Package dialect defines the closed set of query languages that huntgen can
// generate and validate. Every dialect is paired with exactly one prompt
// template and one validator rule set; the pairing is checked at construction
// time by the packages that own those tables.
package dialect
