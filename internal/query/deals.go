package query

import (
	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

// DealSearchURL builds the deal search URL. Every deal field maps 1:1 onto
// the identically named vendor query field, values passing through
// verbatim; there is no LINKED grouping and no range parsing here.
func DealSearchURL(base string, p types.SearchDealsParams) string {
	if p.Query != "" {
		return searchURL(base, p.Query, p.Offset)
	}

	fields := []struct {
		name  string
		value string
	}{
		{"dealDrugNamesAll", p.DealDrugNamesAll},
		{"dealIndicationsAll", p.DealIndicationsAll},
		{"dealDrugCompanyPrincipalNamesAll", p.DealDrugCompanyPrincipalNamesAll},
		{"dealDrugCompanyPartnerNamesAll", p.DealDrugCompanyPartnerNamesAll},
		{"dealPhaseHighestStart", p.DealPhaseHighestStart},
		{"dealPhaseHighestEnd", p.DealPhaseHighestEnd},
		{"dealDateStart", p.DealDateStart},
		{"dealDateEnd", p.DealDateEnd},
		{"dealStatus", p.DealStatus},
		{"dealSummary", p.DealSummary},
		{"dealTitle", p.DealTitle},
		{"dealTypes", p.DealTypes},
		{"dealDrugActionsPrimary", p.DealDrugActionsPrimary},
		{"dealDrugTechnologies", p.DealDrugTechnologies},
		{"dealTerritoriesIncluded", p.DealTerritoriesIncluded},
		{"dealTerritoriesExcluded", p.DealTerritoriesExcluded},
		{"dealTotalProjectedCurrentAmount", p.DealTotalProjectedCurrentAmount},
		{"dealTotalPaidCurrentAmount", p.DealTotalPaidCurrentAmount},
		{"dealUpfrontProjectedCurrentAmount", p.DealUpfrontProjectedCurrentAmount},
		{"dealUpfrontPaidCurrentAmount", p.DealUpfrontPaidCurrentAmount},
		{"dealRoyaltyRateHighPercent", p.DealRoyaltyRateHighPercent},
		{"dealRoyaltyRateLowPercent", p.DealRoyaltyRateLowPercent},
		{"dealDisclosureStatusTotalProjected", p.DealDisclosureStatusTotalProjected},
		{"dealDisclosureStatusTotalPaid", p.DealDisclosureStatusTotalPaid},
		{"dealDisclosureStatusUpfrontProjected", p.DealDisclosureStatusUpfrontProjected},
		{"dealDisclosureStatusUpfrontPaid", p.DealDisclosureStatusUpfrontPaid},
		{"dealDisclosureStatusRoyaltyRateHigh", p.DealDisclosureStatusRoyaltyRateHigh},
		{"dealDisclosureStatusRoyaltyRateLow", p.DealDisclosureStatusRoyaltyRateLow},
	}

	var q clauseList
	for _, f := range fields {
		q.add(f.value, f.name+":%s")
	}

	return searchURL(base, q.String(), p.Offset)
}
