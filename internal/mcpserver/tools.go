package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/uh-joan/cortellis-mcp-server/internal/cortellis"
	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

// CortellisToolAdapter exposes the Cortellis client operations as MCP
// tools.
type CortellisToolAdapter struct {
	client *cortellis.Client
	logger *log.Logger
}

// NewCortellisToolAdapter creates the adapter over an API client.
func NewCortellisToolAdapter(client *cortellis.Client) *CortellisToolAdapter {
	return &CortellisToolAdapter{
		client: client,
		logger: log.New(os.Stderr, "[CortellisTools] ", log.LstdFlags),
	}
}

// RegisterAll registers every tool with the registry.
func (a *CortellisToolAdapter) RegisterAll(registry *ToolRegistry) error {
	tools := []struct {
		definition types.MCPToolDefinition
		handler    ToolHandler
	}{
		{a.searchDrugsDefinition(), a.handleSearchDrugs},
		{a.searchCompaniesDefinition(), a.handleSearchCompanies},
		{a.searchDealsDefinition(), a.handleSearchDeals},
		{a.exploreOntologyDefinition(), a.handleExploreOntology},
		{a.recordDefinition("get_drug", "Fetch a single drug record by Cortellis drug identifier."), a.recordHandler(types.RecordDrug)},
		{a.recordDefinition("get_drug_swot", "Fetch the SWOT analysis for a drug by Cortellis drug identifier."), a.recordHandler(types.RecordDrugSWOT)},
		{a.recordDefinition("get_drug_financial", "Fetch consensus financial forecasts for a drug by Cortellis drug identifier."), a.recordHandler(types.RecordDrugFinancial)},
		{a.recordDefinition("get_company", "Fetch a single company record by Cortellis company identifier."), a.recordHandler(types.RecordCompany)},
	}

	for _, t := range tools {
		if err := registry.RegisterTool(t.definition, t.handler); err != nil {
			return err
		}
	}
	return nil
}

// SetLogger replaces the adapter's logger.
func (a *CortellisToolAdapter) SetLogger(logger *log.Logger) {
	a.logger = logger
}

func (a *CortellisToolAdapter) searchDrugsDefinition() types.MCPToolDefinition {
	return types.MCPToolDefinition{
		Name:        "search_drugs",
		Description: "Search drugs in Cortellis. Either pass a raw Cortellis query string, or combine structured filters (company, indication, action, phase, technology, drug name, country); the raw query wins when both are given.",
		InputSchema: schemaFromMap(map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Raw Cortellis query string; overrides all structured filters",
				},
				"company": map[string]interface{}{
					"type":        "string",
					"description": "Primary company developing the drug",
				},
				"indication": map[string]interface{}{
					"type":        "string",
					"description": "Primary indication, e.g. Obesity",
				},
				"action": map[string]interface{}{
					"type":        "string",
					"description": "Primary mechanism of action, e.g. Glucagon-like peptide 1 receptor agonist",
				},
				"phase": map[string]interface{}{
					"type":        "string",
					"description": "Highest development phase: a short code (C3, DX), a descriptive string (Phase 3 Clinical), or several joined with OR/AND",
				},
				"phase_terminated": map[string]interface{}{
					"type":        "string",
					"description": "Phase at which development stopped; same syntax as phase",
				},
				"technology": map[string]interface{}{
					"type":        "string",
					"description": "Drug technology, e.g. Small molecule therapeutic",
				},
				"drug_name": map[string]interface{}{
					"type":        "string",
					"description": "Any known drug name or synonym",
				},
				"country": map[string]interface{}{
					"type":        "string",
					"description": "Development status country identifier",
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Pagination offset (page size is fixed at 100)",
					"minimum":     0,
					"default":     0,
				},
			},
		}),
	}
}

func (a *CortellisToolAdapter) handleSearchDrugs(ctx context.Context, params map[string]interface{}) (*types.MCPToolCallResult, error) {
	var p types.SearchDrugsParams
	if err := types.DecodeParams(params, &p); err != nil {
		return types.NewToolCallError(err.Error()), err
	}

	a.logger.Printf("search_drugs: %+v", p)

	raw, err := a.client.SearchDrugs(ctx, p)
	if err != nil {
		return types.NewToolCallError(fmt.Sprintf("drug search failed: %v", err)), err
	}
	return types.NewToolCallResult(raw), nil
}

func (a *CortellisToolAdapter) searchCompaniesDefinition() types.MCPToolDefinition {
	return types.MCPToolDefinition{
		Name:        "search_companies",
		Description: "Search companies in Cortellis by name, headquarters country, portfolio filters, deal count or company size ranges, or a raw query string.",
		InputSchema: schemaFromMap(map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Raw Cortellis query string; overrides all structured filters",
				},
				"company_name": map[string]interface{}{
					"type":        "string",
					"description": "Any known company name",
				},
				"hq_country": map[string]interface{}{
					"type":        "string",
					"description": "Headquarters country",
				},
				"deals_count": map[string]interface{}{
					"type":        "string",
					"description": "Deal count range: a number with optional < or > prefix (default >), e.g. \">50\"",
				},
				"indications": map[string]interface{}{
					"type":        "string",
					"description": "Primary indication in the company portfolio",
				},
				"actions": map[string]interface{}{
					"type":        "string",
					"description": "Primary mechanism of action in the company portfolio",
				},
				"technologies": map[string]interface{}{
					"type":        "string",
					"description": "Technology in the company portfolio",
				},
				"company_size": map[string]interface{}{
					"type":        "string",
					"description": "Company size in billions USD with optional < or > prefix (default >), e.g. \"<2\"",
				},
				"status": map[string]interface{}{
					"type":        "string",
					"description": "Company status, e.g. Active",
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Pagination offset (page size is fixed at 100)",
					"minimum":     0,
					"default":     0,
				},
			},
		}),
	}
}

func (a *CortellisToolAdapter) handleSearchCompanies(ctx context.Context, params map[string]interface{}) (*types.MCPToolCallResult, error) {
	var p types.SearchCompaniesParams
	if err := types.DecodeParams(params, &p); err != nil {
		return types.NewToolCallError(err.Error()), err
	}

	a.logger.Printf("search_companies: %+v", p)

	raw, err := a.client.SearchCompanies(ctx, p)
	if err != nil {
		return types.NewToolCallError(fmt.Sprintf("company search failed: %v", err)), err
	}
	return types.NewToolCallResult(raw), nil
}

// dealFields lists the deal query fields in emission order. Each maps 1:1
// onto the identically named vendor field.
var dealFields = []struct {
	name        string
	description string
}{
	{"dealDrugNamesAll", "Drug name involved in the deal"},
	{"dealIndicationsAll", "Indication covered by the deal"},
	{"dealDrugCompanyPrincipalNamesAll", "Principal (originator) company"},
	{"dealDrugCompanyPartnerNamesAll", "Partner company"},
	{"dealPhaseHighestStart", "Highest phase when the deal started"},
	{"dealPhaseHighestEnd", "Highest phase when the deal ended"},
	{"dealDateStart", "Deal start date"},
	{"dealDateEnd", "Deal end date"},
	{"dealStatus", "Deal status"},
	{"dealSummary", "Text matched against the deal summary"},
	{"dealTitle", "Text matched against the deal title"},
	{"dealTypes", "Deal type"},
	{"dealDrugActionsPrimary", "Primary action of the deal's drug"},
	{"dealDrugTechnologies", "Technology of the deal's drug"},
	{"dealTerritoriesIncluded", "Territory included in the deal"},
	{"dealTerritoriesExcluded", "Territory excluded from the deal"},
	{"dealTotalProjectedCurrentAmount", "Total projected amount"},
	{"dealTotalPaidCurrentAmount", "Total paid amount"},
	{"dealUpfrontProjectedCurrentAmount", "Upfront projected amount"},
	{"dealUpfrontPaidCurrentAmount", "Upfront paid amount"},
	{"dealRoyaltyRateHighPercent", "Highest royalty rate percent"},
	{"dealRoyaltyRateLowPercent", "Lowest royalty rate percent"},
	{"dealDisclosureStatusTotalProjected", "Disclosure status of the total projected amount"},
	{"dealDisclosureStatusTotalPaid", "Disclosure status of the total paid amount"},
	{"dealDisclosureStatusUpfrontProjected", "Disclosure status of the upfront projected amount"},
	{"dealDisclosureStatusUpfrontPaid", "Disclosure status of the upfront paid amount"},
	{"dealDisclosureStatusRoyaltyRateHigh", "Disclosure status of the highest royalty rate"},
	{"dealDisclosureStatusRoyaltyRateLow", "Disclosure status of the lowest royalty rate"},
}

func (a *CortellisToolAdapter) searchDealsDefinition() types.MCPToolDefinition {
	properties := map[string]interface{}{
		"query": map[string]interface{}{
			"type":        "string",
			"description": "Raw Cortellis query string; overrides all structured filters",
		},
		"offset": map[string]interface{}{
			"type":        "integer",
			"description": "Pagination offset (page size is fixed at 100)",
			"minimum":     0,
			"default":     0,
		},
	}
	for _, f := range dealFields {
		properties[f.name] = map[string]interface{}{
			"type":        "string",
			"description": f.description,
		}
	}

	return types.MCPToolDefinition{
		Name:        "search_deals",
		Description: "Search deals in Cortellis. Field values pass through verbatim to the identically named vendor query fields.",
		InputSchema: schemaFromMap(map[string]interface{}{
			"type":       "object",
			"properties": properties,
		}),
	}
}

func (a *CortellisToolAdapter) handleSearchDeals(ctx context.Context, params map[string]interface{}) (*types.MCPToolCallResult, error) {
	var p types.SearchDealsParams
	if err := types.DecodeParams(params, &p); err != nil {
		return types.NewToolCallError(err.Error()), err
	}

	a.logger.Printf("search_deals: %+v", p)

	raw, err := a.client.SearchDeals(ctx, p)
	if err != nil {
		return types.NewToolCallError(fmt.Sprintf("deal search failed: %v", err)), err
	}
	return types.NewToolCallResult(raw), nil
}

func (a *CortellisToolAdapter) exploreOntologyDefinition() types.MCPToolDefinition {
	return types.MCPToolDefinition{
		Name:        "explore_ontology",
		Description: "Look up a term in the Cortellis ontology taxonomies to normalize free text into database-recognized identifiers. Pass category and term, or exactly one of the single-purpose fields.",
		InputSchema: schemaFromMap(map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Taxonomy category",
					"enum":        []string{"action", "indication", "company", "drug", "drug_name", "target", "technology"},
				},
				"term": map[string]interface{}{
					"type":        "string",
					"description": "Term to look up in the chosen category",
				},
				"action": map[string]interface{}{
					"type":        "string",
					"description": "Look this up in the action taxonomy",
				},
				"indication": map[string]interface{}{
					"type":        "string",
					"description": "Look this up in the indication taxonomy",
				},
				"company": map[string]interface{}{
					"type":        "string",
					"description": "Look this up in the company taxonomy",
				},
				"drug_name": map[string]interface{}{
					"type":        "string",
					"description": "Look this up in the drug taxonomy",
				},
				"target": map[string]interface{}{
					"type":        "string",
					"description": "Look this up in the target taxonomy",
				},
				"technology": map[string]interface{}{
					"type":        "string",
					"description": "Look this up in the technology taxonomy",
				},
			},
		}),
	}
}

func (a *CortellisToolAdapter) handleExploreOntology(ctx context.Context, params map[string]interface{}) (*types.MCPToolCallResult, error) {
	var p types.OntologyParams
	if err := types.DecodeParams(params, &p); err != nil {
		return types.NewToolCallError(err.Error()), err
	}

	a.logger.Printf("explore_ontology: %+v", p)

	raw, err := a.client.ExploreOntology(ctx, p)
	if err != nil {
		return types.NewToolCallError(fmt.Sprintf("ontology lookup failed: %v", err)), err
	}
	return types.NewToolCallResult(raw), nil
}

func (a *CortellisToolAdapter) recordDefinition(name, description string) types.MCPToolDefinition {
	return types.MCPToolDefinition{
		Name:        name,
		Description: description,
		InputSchema: schemaFromMap(map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Record identifier",
				},
			},
			"required": []string{"id"},
		}),
	}
}

func (a *CortellisToolAdapter) recordHandler(kind types.RecordKind) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (*types.MCPToolCallResult, error) {
		var p types.RecordParams
		if err := types.DecodeParams(params, &p); err != nil {
			return types.NewToolCallError(err.Error()), err
		}

		a.logger.Printf("%s record fetch: id=%s", kind, p.ID)

		raw, err := a.client.GetRecord(ctx, kind, p.ID)
		if err != nil {
			return types.NewToolCallError(fmt.Sprintf("record fetch failed: %v", err)), err
		}
		return types.NewToolCallResult(raw), nil
	}
}

// schemaFromMap converts a schema map into a *jsonschema.Schema via a JSON
// round trip.
func schemaFromMap(schemaMap map[string]interface{}) *jsonschema.Schema {
	schemaBytes, err := json.Marshal(schemaMap)
	if err != nil {
		return nil
	}
	schema := &jsonschema.Schema{}
	if err := json.Unmarshal(schemaBytes, schema); err != nil {
		return nil
	}
	return schema
}
