package query

import (
	"fmt"

	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

// DrugSearchURL builds the drug search URL. A non-empty raw Query bypasses
// all structured fields. Country is a property of the drug's current
// development status and is correlated through a LINKED group; the
// remaining fields match independently anywhere in the record.
func DrugSearchURL(base string, p types.SearchDrugsParams) string {
	if p.Query != "" {
		return searchURL(base, p.Query, p.Offset)
	}

	var q clauseList
	q.add(p.Company, `companiesPrimary:"%s"`)
	q.add(p.Indication, "indicationsPrimary:%s")
	q.add(p.Action, "actionsPrimary:%s")
	if p.Phase != "" {
		q.addRaw(phaseClause("phaseHighest", p.Phase, false))
	}
	if p.PhaseTerminated != "" {
		q.addRaw(phaseClause("phaseTerminated", p.PhaseTerminated, true))
	}
	q.add(p.Technology, "technologies:%s")
	q.add(p.DrugName, "drugNamesAll:%s")
	if p.Country != "" {
		q.addRaw(fmt.Sprintf("LINKED(developmentStatusCountryId:%s)", p.Country))
	}

	return searchURL(base, q.String(), p.Offset)
}
