package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintToolDefinitions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printToolDefinitions(&buf))

	var payload struct {
		Tools []struct {
			Name        string          `json:"name"`
			Description string          `json:"description"`
			InputSchema json.RawMessage `json:"inputSchema"`
		} `json:"tools"`
		Names []string `json:"names"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))

	assert.Equal(t, []string{
		"search_drugs", "search_companies", "search_deals", "explore_ontology",
		"get_drug", "get_drug_swot", "get_drug_financial", "get_company",
	}, payload.Names)

	for _, tool := range payload.Tools {
		assert.NotEmpty(t, tool.Description, "tool %s has no description", tool.Name)
		assert.NotEmpty(t, tool.InputSchema, "tool %s has no input schema", tool.Name)
	}
}
