package query

import (
	"fmt"

	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

// companySizeScale converts a company_size value, expressed in billions of
// dollars, to the absolute figure the vendor indexes.
const companySizeScale = 1e9

// CompanySearchURL builds the company search URL. deals_count and
// company_size accept range expressions; status is correlated through a
// LINKED group.
func CompanySearchURL(base string, p types.SearchCompaniesParams) string {
	if p.Query != "" {
		return searchURL(base, p.Query, p.Offset)
	}

	var q clauseList
	q.add(p.CompanyName, "companyNamesAll:%s")
	q.add(p.HQCountry, "companyHQCountry:%s")
	if p.DealsCount != "" {
		q.addRaw(rangeClause("companyDealsCount", p.DealsCount, 1))
	}
	q.add(p.Indications, "indicationsPrimary:%s")
	q.add(p.Actions, "actionsPrimary:%s")
	q.add(p.Technologies, "technologies:%s")
	if p.CompanySize != "" {
		q.addRaw(rangeClause("companySize", p.CompanySize, companySizeScale))
	}
	if p.Status != "" {
		q.addRaw(fmt.Sprintf("LINKED(statusLinked:%s)", p.Status))
	}

	return searchURL(base, q.String(), p.Offset)
}
