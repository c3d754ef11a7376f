package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SearchDrugsParams are the structured arguments for a drug search.
// When Query is set it takes precedence and all other fields are ignored.
type SearchDrugsParams struct {
	Query           string `json:"query,omitempty"`
	Company         string `json:"company,omitempty"`
	Indication      string `json:"indication,omitempty"`
	Action          string `json:"action,omitempty"`
	Phase           string `json:"phase,omitempty"`
	PhaseTerminated string `json:"phase_terminated,omitempty"`
	Technology      string `json:"technology,omitempty"`
	DrugName        string `json:"drug_name,omitempty"`
	Country         string `json:"country,omitempty"`
	Offset          int    `json:"offset,omitempty"`
}

// SearchCompaniesParams are the structured arguments for a company search.
type SearchCompaniesParams struct {
	Query        string `json:"query,omitempty"`
	CompanyName  string `json:"company_name,omitempty"`
	HQCountry    string `json:"hq_country,omitempty"`
	DealsCount   string `json:"deals_count,omitempty"`
	Indications  string `json:"indications,omitempty"`
	Actions      string `json:"actions,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	CompanySize  string `json:"company_size,omitempty"`
	Status       string `json:"status,omitempty"`
	Offset       int    `json:"offset,omitempty"`
}

// SearchDealsParams are the structured arguments for a deal search. Each
// field maps 1:1 onto the identically named vendor query field; values pass
// through verbatim.
type SearchDealsParams struct {
	Query string `json:"query,omitempty"`

	DealDrugNamesAll                     string `json:"dealDrugNamesAll,omitempty"`
	DealIndicationsAll                   string `json:"dealIndicationsAll,omitempty"`
	DealDrugCompanyPrincipalNamesAll     string `json:"dealDrugCompanyPrincipalNamesAll,omitempty"`
	DealDrugCompanyPartnerNamesAll       string `json:"dealDrugCompanyPartnerNamesAll,omitempty"`
	DealPhaseHighestStart                string `json:"dealPhaseHighestStart,omitempty"`
	DealPhaseHighestEnd                  string `json:"dealPhaseHighestEnd,omitempty"`
	DealDateStart                        string `json:"dealDateStart,omitempty"`
	DealDateEnd                          string `json:"dealDateEnd,omitempty"`
	DealStatus                           string `json:"dealStatus,omitempty"`
	DealSummary                          string `json:"dealSummary,omitempty"`
	DealTitle                            string `json:"dealTitle,omitempty"`
	DealTypes                            string `json:"dealTypes,omitempty"`
	DealDrugActionsPrimary               string `json:"dealDrugActionsPrimary,omitempty"`
	DealDrugTechnologies                 string `json:"dealDrugTechnologies,omitempty"`
	DealTerritoriesIncluded              string `json:"dealTerritoriesIncluded,omitempty"`
	DealTerritoriesExcluded              string `json:"dealTerritoriesExcluded,omitempty"`
	DealTotalProjectedCurrentAmount      string `json:"dealTotalProjectedCurrentAmount,omitempty"`
	DealTotalPaidCurrentAmount           string `json:"dealTotalPaidCurrentAmount,omitempty"`
	DealUpfrontProjectedCurrentAmount    string `json:"dealUpfrontProjectedCurrentAmount,omitempty"`
	DealUpfrontPaidCurrentAmount         string `json:"dealUpfrontPaidCurrentAmount,omitempty"`
	DealRoyaltyRateHighPercent           string `json:"dealRoyaltyRateHighPercent,omitempty"`
	DealRoyaltyRateLowPercent            string `json:"dealRoyaltyRateLowPercent,omitempty"`
	DealDisclosureStatusTotalProjected   string `json:"dealDisclosureStatusTotalProjected,omitempty"`
	DealDisclosureStatusTotalPaid        string `json:"dealDisclosureStatusTotalPaid,omitempty"`
	DealDisclosureStatusUpfrontProjected string `json:"dealDisclosureStatusUpfrontProjected,omitempty"`
	DealDisclosureStatusUpfrontPaid      string `json:"dealDisclosureStatusUpfrontPaid,omitempty"`
	DealDisclosureStatusRoyaltyRateHigh  string `json:"dealDisclosureStatusRoyaltyRateHigh,omitempty"`
	DealDisclosureStatusRoyaltyRateLow   string `json:"dealDisclosureStatusRoyaltyRateLow,omitempty"`

	Offset int `json:"offset,omitempty"`
}

// OntologyParams are the arguments for an ontology taxonomy lookup. Either
// Category and Term are both supplied, or exactly one of the single-purpose
// fields fixes the pair.
type OntologyParams struct {
	Category   string `json:"category,omitempty"`
	Term       string `json:"term,omitempty"`
	Action     string `json:"action,omitempty"`
	Indication string `json:"indication,omitempty"`
	Company    string `json:"company,omitempty"`
	DrugName   string `json:"drug_name,omitempty"`
	Target     string `json:"target,omitempty"`
	Technology string `json:"technology,omitempty"`
}

// RecordParams identifies a single record fetch.
type RecordParams struct {
	ID string `json:"id"`
}

// RecordKind selects which vendor record endpoint a lookup targets.
type RecordKind string

const (
	RecordDrug          RecordKind = "drug"
	RecordDrugSWOT      RecordKind = "drug_swot"
	RecordDrugFinancial RecordKind = "drug_financial"
	RecordCompany       RecordKind = "company"
)

// DecodeParams converts a loosely typed tool-argument map into one of the
// typed parameter bags above. Unknown keys are rejected so that a typo in a
// field name surfaces as a validation error instead of a silently dropped
// filter.
func DecodeParams(args map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return NewValidationError(fmt.Sprintf("invalid arguments: %v", err))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return NewValidationError(fmt.Sprintf("invalid arguments: %v", err))
	}
	return nil
}
