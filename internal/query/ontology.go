package query

import (
	"fmt"
	"net/url"

	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

// categorySegments maps an ontology category to the taxonomy path segment
// the vendor exposes. drug_name is an alias for the drug taxonomy; the
// rest map onto themselves.
var categorySegments = map[string]string{
	"action":     "action",
	"indication": "indication",
	"company":    "company",
	"drug":       "drug",
	"drug_name":  "drug",
	"target":     "target",
	"technology": "technology",
}

// singlePurposeFields is the fixed priority order used to resolve a
// category/term pair when the caller did not supply both directly. The
// first non-empty field wins.
func singlePurposeFields(p types.OntologyParams) []struct{ category, term string } {
	return []struct{ category, term string }{
		{"action", p.Action},
		{"indication", p.Indication},
		{"company", p.Company},
		{"drug_name", p.DrugName},
		{"target", p.Target},
		{"technology", p.Technology},
	}
}

// ResolveOntology reduces an ambiguous parameter set to exactly one
// (category, term) pair, with the category already mapped to its taxonomy
// path segment. An unresolvable set or an unknown category is a
// ValidationError; no network call is ever attempted for one.
func ResolveOntology(p types.OntologyParams) (segment, term string, err error) {
	category := p.Category
	term = p.Term

	if category == "" || term == "" {
		for _, f := range singlePurposeFields(p) {
			if f.term != "" {
				category, term = f.category, f.term
				break
			}
		}
	}

	if category == "" || term == "" {
		return "", "", types.NewValidationError(
			"explore_ontology requires category and term, or one of: action, indication, company, drug_name, target, technology")
	}

	segment, ok := categorySegments[category]
	if !ok {
		return "", "", types.NewValidationError(
			fmt.Sprintf("unknown ontology category: %s", category))
	}

	return segment, term, nil
}

// OntologySearchURL builds the taxonomy search URL for a resolved pair.
func OntologySearchURL(base string, p types.OntologyParams) (string, error) {
	segment, term, err := ResolveOntology(p)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/search?query=%s&fmt=json", base, segment, url.QueryEscape(term)), nil
}
