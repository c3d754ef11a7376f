package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uh-joan/cortellis-mcp-server/internal/cortellis"
	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

type stubFetcher struct {
	lastURL  string
	response json.RawMessage
	err      error
	calls    int
}

func (f *stubFetcher) Fetch(ctx context.Context, method, url string) (json.RawMessage, error) {
	f.calls++
	f.lastURL = url
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func newTestAdapter(fetcher *stubFetcher) (*CortellisToolAdapter, *ToolRegistry) {
	client := cortellis.NewClientWithFetcher("https://api.example.com/rs", fetcher, nil)
	adapter := NewCortellisToolAdapter(client)

	registry := NewToolRegistry("")
	if err := adapter.RegisterAll(registry); err != nil {
		panic(err)
	}
	return adapter, registry
}

func TestRegisterAllToolNames(t *testing.T) {
	_, registry := newTestAdapter(&stubFetcher{})

	want := []string{
		"search_drugs", "search_companies", "search_deals", "explore_ontology",
		"get_drug", "get_drug_swot", "get_drug_financial", "get_company",
	}
	assert.Equal(t, len(want), registry.ToolCount())
	for _, name := range want {
		assert.True(t, registry.HasTool(name), "missing tool %s", name)
	}
}

func TestToolDefinitionsHaveSchemas(t *testing.T) {
	_, registry := newTestAdapter(&stubFetcher{})

	for _, def := range registry.ListTools() {
		assert.NotEmpty(t, def.Description, "tool %s has no description", def.Name)
		require.NotNil(t, def.InputSchema, "tool %s has no input schema", def.Name)
	}
}

func TestHandleSearchDrugsEnvelope(t *testing.T) {
	fetcher := &stubFetcher{response: json.RawMessage(`{"drugs": [{"id": 1}]}`)}
	_, registry := newTestAdapter(fetcher)

	result, err := registry.ExecuteTool(context.Background(), "search_drugs",
		map[string]interface{}{"drug_name": "semaglutide"})
	require.NoError(t, err)

	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)
	assert.JSONEq(t, `{"drugs": [{"id": 1}]}`, result.Content[0].Text)
	assert.False(t, result.IsError)
	assert.Contains(t, fetcher.lastURL, "drugNamesAll%3Asemaglutide")
}

func TestHandleSearchDrugsRejectsUnknownField(t *testing.T) {
	fetcher := &stubFetcher{}
	_, registry := newTestAdapter(fetcher)

	result, err := registry.ExecuteTool(context.Background(), "search_drugs",
		map[string]interface{}{"drugname": "typo"})
	require.Error(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Zero(t, fetcher.calls)
}

func TestHandleExploreOntologyValidation(t *testing.T) {
	fetcher := &stubFetcher{}
	_, registry := newTestAdapter(fetcher)

	result, err := registry.ExecuteTool(context.Background(), "explore_ontology",
		map[string]interface{}{})
	require.Error(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Zero(t, fetcher.calls)
}

func TestRecordToolFetchesByID(t *testing.T) {
	fetcher := &stubFetcher{response: json.RawMessage(`{"company": {}}`)}
	_, registry := newTestAdapter(fetcher)

	result, err := registry.ExecuteTool(context.Background(), "get_company",
		map[string]interface{}{"id": "4077"})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, fetcher.lastURL, "/company-v2/company/4077?fmt=json")
}

func TestRecordToolMissingID(t *testing.T) {
	fetcher := &stubFetcher{}
	_, registry := newTestAdapter(fetcher)

	result, err := registry.ExecuteTool(context.Background(), "get_drug",
		map[string]interface{}{})
	require.Error(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Zero(t, fetcher.calls)
}

func TestUpstreamErrorSurfacesInEnvelope(t *testing.T) {
	fetcher := &stubFetcher{err: &types.AuthError{
		Kind:    types.RequestFailed,
		Status:  500,
		Message: "API request failed with status 500",
	}}
	_, registry := newTestAdapter(fetcher)

	result, err := registry.ExecuteTool(context.Background(), "search_companies",
		map[string]interface{}{"company_name": "Pfizer"})
	require.Error(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "500")
}
