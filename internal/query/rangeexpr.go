package query

import (
	"fmt"
	"strconv"
	"strings"
)

// rangeClause parses a range expression of the form optional leading < or >
// followed by a number, and renders field:RANGE(<op><value>). The default
// operator with no prefix is >. A non-numeric remainder silently drops the
// clause. When scale is not 1 the numeric value is multiplied before
// emission (company_size is expressed in billions); otherwise the remainder
// passes through as written.
func rangeClause(field, expr string, scale float64) string {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return ""
	}

	op := ">"
	rest := expr
	switch expr[0] {
	case '<':
		op = "<"
		rest = strings.TrimSpace(expr[1:])
	case '>':
		rest = strings.TrimSpace(expr[1:])
	}

	value, err := strconv.ParseFloat(rest, 64)
	if err != nil {
		return ""
	}

	if scale == 1 {
		return fmt.Sprintf("%s:RANGE(%s%s)", field, op, rest)
	}
	return fmt.Sprintf("%s:RANGE(%s%s)", field, op,
		strconv.FormatFloat(value*scale, 'f', -1, 64))
}
