package mcpserver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

func noopHandler(result *types.MCPToolCallResult, err error) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (*types.MCPToolCallResult, error) {
		return result, err
	}
}

func TestRegisterTool(t *testing.T) {
	registry := NewToolRegistry("")

	err := registry.RegisterTool(types.MCPToolDefinition{Name: "search_drugs"}, noopHandler(nil, nil))
	require.NoError(t, err)
	assert.True(t, registry.HasTool("search_drugs"))
	assert.Equal(t, 1, registry.ToolCount())
}

func TestRegisterToolValidation(t *testing.T) {
	registry := NewToolRegistry("")

	assert.Error(t, registry.RegisterTool(types.MCPToolDefinition{}, noopHandler(nil, nil)))
	assert.Error(t, registry.RegisterTool(types.MCPToolDefinition{Name: "x"}, nil))

	require.NoError(t, registry.RegisterTool(types.MCPToolDefinition{Name: "x"}, noopHandler(nil, nil)))
	assert.Error(t, registry.RegisterTool(types.MCPToolDefinition{Name: "x"}, noopHandler(nil, nil)))
}

func TestRegisterToolPrefix(t *testing.T) {
	registry := NewToolRegistry("cortellis_")

	require.NoError(t, registry.RegisterTool(types.MCPToolDefinition{Name: "search_drugs"}, noopHandler(nil, nil)))
	assert.True(t, registry.HasTool("cortellis_search_drugs"))
	assert.False(t, registry.HasTool("search_drugs"))

	tools := registry.ListTools()
	require.Len(t, tools, 1)
	assert.Equal(t, "cortellis_search_drugs", tools[0].Name)
}

func TestListToolsPreservesRegistrationOrder(t *testing.T) {
	registry := NewToolRegistry("")
	names := []string{"search_drugs", "search_companies", "search_deals", "explore_ontology"}
	for _, name := range names {
		require.NoError(t, registry.RegisterTool(types.MCPToolDefinition{Name: name}, noopHandler(nil, nil)))
	}

	tools := registry.ListTools()
	require.Len(t, tools, len(names))
	for i, tool := range tools {
		assert.Equal(t, names[i], tool.Name)
	}
}

func TestExecuteTool(t *testing.T) {
	registry := NewToolRegistry("")
	want := types.NewToolCallResult([]byte(`{"ok": true}`))
	require.NoError(t, registry.RegisterTool(types.MCPToolDefinition{Name: "search_drugs"}, noopHandler(want, nil)))

	got, err := registry.ExecuteTool(context.Background(), "search_drugs", nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExecuteToolNotFound(t *testing.T) {
	registry := NewToolRegistry("")
	_, err := registry.ExecuteTool(context.Background(), "nope", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestExecuteToolCancellation(t *testing.T) {
	registry := NewToolRegistry("")
	blocker := func(ctx context.Context, params map[string]interface{}) (*types.MCPToolCallResult, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	require.NoError(t, registry.RegisterTool(types.MCPToolDefinition{Name: "slow"}, blocker))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	result, err := registry.ExecuteTool(ctx, "slow", nil)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
