// Package query builds Cortellis query-language strings and request URLs
// from structured parameter bags. Everything here is pure: no I/O, no
// ambient state, same input always yields the same URL.
package query

import (
	"fmt"
	"net/url"
	"strings"
)

// Wildcard is the query emitted when no structured field is present.
const Wildcard = "*"

// Every search page is fixed at 100 hits; pagination is caller-driven via
// the offset parameter.
const pageSize = 100

// clauseList accumulates query clauses in the fixed per-intent field order.
type clauseList struct {
	clauses []string
}

// add appends a clause built from template and value when value is non-empty.
func (c *clauseList) add(value, template string) {
	if value == "" {
		return
	}
	c.clauses = append(c.clauses, fmt.Sprintf(template, value))
}

// addRaw appends an already rendered clause.
func (c *clauseList) addRaw(clause string) {
	if clause == "" {
		return
	}
	c.clauses = append(c.clauses, clause)
}

// String joins the accumulated clauses with AND, or yields the wildcard
// when nothing was added.
func (c *clauseList) String() string {
	if len(c.clauses) == 0 {
		return Wildcard
	}
	return strings.Join(c.clauses, " AND ")
}

// searchURL renders the final encoded search URL for a base endpoint.
func searchURL(base, query string, offset int) string {
	if offset < 0 {
		offset = 0
	}
	return fmt.Sprintf("%s/search?query=%s&offset=%d&hits=%d&fmt=json&filtersEnabled=false",
		base, url.QueryEscape(query), offset, pageSize)
}
