package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

const testDealBase = "https://api.example.com/deals-v2/deal"

func TestDealSearchURLEmptyParams(t *testing.T) {
	u := DealSearchURL(testDealBase, types.SearchDealsParams{})
	assert.Equal(t, "*", queryParam(t, u, "query"))
}

func TestDealSearchURLRawQueryWins(t *testing.T) {
	p := types.SearchDealsParams{
		Query:            "dealTitle:collaboration",
		DealDrugNamesAll: "ignored",
	}
	u := DealSearchURL(testDealBase, p)
	assert.Equal(t, "dealTitle:collaboration", queryParam(t, u, "query"))
}

func TestDealSearchURLVerbatimPassthrough(t *testing.T) {
	// Deal fields get no range parsing: prefixed numbers pass through as
	// written.
	p := types.SearchDealsParams{DealTotalPaidCurrentAmount: ">1000000"}
	u := DealSearchURL(testDealBase, p)
	assert.Equal(t, "dealTotalPaidCurrentAmount:>1000000", queryParam(t, u, "query"))
}

func TestDealSearchURLFieldOrder(t *testing.T) {
	p := types.SearchDealsParams{
		DealDrugNamesAll:        "semaglutide",
		DealIndicationsAll:      "Obesity",
		DealStatus:              "Completed",
		DealTerritoriesIncluded: "Europe",
	}
	u := DealSearchURL(testDealBase, p)
	want := "dealDrugNamesAll:semaglutide AND dealIndicationsAll:Obesity AND dealStatus:Completed AND dealTerritoriesIncluded:Europe"
	assert.Equal(t, want, queryParam(t, u, "query"))
}

func TestDealSearchURLAllFieldsEmitted(t *testing.T) {
	p := types.SearchDealsParams{
		DealDrugNamesAll:                     "a",
		DealIndicationsAll:                   "a",
		DealDrugCompanyPrincipalNamesAll:     "a",
		DealDrugCompanyPartnerNamesAll:       "a",
		DealPhaseHighestStart:                "a",
		DealPhaseHighestEnd:                  "a",
		DealDateStart:                        "a",
		DealDateEnd:                          "a",
		DealStatus:                           "a",
		DealSummary:                          "a",
		DealTitle:                            "a",
		DealTypes:                            "a",
		DealDrugActionsPrimary:               "a",
		DealDrugTechnologies:                 "a",
		DealTerritoriesIncluded:              "a",
		DealTerritoriesExcluded:              "a",
		DealTotalProjectedCurrentAmount:      "a",
		DealTotalPaidCurrentAmount:           "a",
		DealUpfrontProjectedCurrentAmount:    "a",
		DealUpfrontPaidCurrentAmount:         "a",
		DealRoyaltyRateHighPercent:           "a",
		DealRoyaltyRateLowPercent:            "a",
		DealDisclosureStatusTotalProjected:   "a",
		DealDisclosureStatusTotalPaid:        "a",
		DealDisclosureStatusUpfrontProjected: "a",
		DealDisclosureStatusUpfrontPaid:      "a",
		DealDisclosureStatusRoyaltyRateHigh:  "a",
		DealDisclosureStatusRoyaltyRateLow:   "a",
	}
	got := queryParam(t, DealSearchURL(testDealBase, p), "query")

	for _, field := range []string{
		"dealDrugNamesAll", "dealIndicationsAll",
		"dealDisclosureStatusRoyaltyRateLow", "dealRoyaltyRateHighPercent",
	} {
		assert.Contains(t, got, field+":a")
	}
	// 28 clauses joined by 27 ANDs.
	assert.Equal(t, 27, strings.Count(got, " AND "))
}
