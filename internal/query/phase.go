package query

import (
	"fmt"
	"regexp"
	"strings"
)

// Phase tokens come in two flavors: short codes like C3 or DX, and
// descriptive strings like "Phase 3 Clinical". Short codes use the
// double-colon form (field::C3); descriptive tokens use the single-colon
// form and are quoted only for terminated-phase clauses.
var shortCodePattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// phaseTokenSplitter breaks a compound expression on the literal OR / AND
// operators. The operator itself is detected separately on the unsplit
// string so that the default applies when the split produced multiple
// tokens without a recognizable operator.
var phaseTokenSplitter = regexp.MustCompile(` OR | AND `)

// phaseClause expands a phase expression into a query clause for field.
// Multiple tokens are parenthesized and rejoined with the detected
// operator; OR is the default when the expression is ambiguous.
func phaseClause(field, expr string, quoteDescriptive bool) string {
	op := detectPhaseOperator(expr)

	tokens := phaseTokenSplitter.Split(expr, -1)
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		parts = append(parts, phaseToken(field, tok, quoteDescriptive))
	}

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return "(" + strings.Join(parts, " "+op+" ") + ")"
	}
}

// detectPhaseOperator scans the original unsplit expression for the literal
// operator forms. OR wins when both appear, and is the default when
// neither does.
func detectPhaseOperator(expr string) string {
	if strings.Contains(expr, " OR ") {
		return "OR"
	}
	if strings.Contains(expr, " AND ") {
		return "AND"
	}
	return "OR"
}

// phaseToken renders a single classified token.
func phaseToken(field, tok string, quoteDescriptive bool) string {
	if shortCodePattern.MatchString(tok) {
		return fmt.Sprintf("%s::%s", field, tok)
	}
	if quoteDescriptive {
		return fmt.Sprintf("%s:%q", field, tok)
	}
	return fmt.Sprintf("%s:%s", field, tok)
}
