package mcpserver

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/uh-joan/cortellis-mcp-server/internal/metrics"
	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

// ToolHandler represents a function that handles tool execution.
type ToolHandler func(ctx context.Context, params map[string]interface{}) (*types.MCPToolCallResult, error)

// ToolInfo contains metadata about a registered tool.
type ToolInfo struct {
	Definition types.MCPToolDefinition
	Handler    ToolHandler
}

// ToolRegistry manages the tool set and execution. Tool names can carry an
// optional configured prefix so several instances can register against the
// same client without colliding.
type ToolRegistry struct {
	tools  map[string]*ToolInfo
	order  []string
	prefix string
	mutex  sync.RWMutex
	logger *log.Logger
}

// NewToolRegistry creates a new tool registry. prefix, when non-empty, is
// prepended to every registered tool name.
func NewToolRegistry(prefix string) *ToolRegistry {
	return &ToolRegistry{
		tools:  make(map[string]*ToolInfo),
		prefix: prefix,
		logger: log.New(os.Stderr, "[ToolRegistry] ", log.LstdFlags),
	}
}

// RegisterTool registers a new tool in the registry.
func (tr *ToolRegistry) RegisterTool(definition types.MCPToolDefinition, handler ToolHandler) error {
	if definition.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("tool handler cannot be nil")
	}

	tr.mutex.Lock()
	defer tr.mutex.Unlock()

	name := tr.prefix + definition.Name
	definition.Name = name

	if _, exists := tr.tools[name]; exists {
		return fmt.Errorf("tool '%s' already registered", name)
	}

	tr.tools[name] = &ToolInfo{
		Definition: definition,
		Handler:    handler,
	}
	tr.order = append(tr.order, name)

	tr.logger.Printf("Registered tool: %s", name)
	return nil
}

// ExecuteTool executes a tool by name, honoring context cancellation.
func (tr *ToolRegistry) ExecuteTool(ctx context.Context, toolName string, params map[string]interface{}) (*types.MCPToolCallResult, error) {
	tr.mutex.RLock()
	toolInfo := tr.tools[toolName]
	tr.mutex.RUnlock()

	if toolInfo == nil {
		return nil, fmt.Errorf("tool '%s' not found", toolName)
	}

	metrics.RecordInvocation(metrics.ModeMCP)

	type execResult struct {
		result *types.MCPToolCallResult
		err    error
	}

	resultCh := make(chan execResult, 1)

	go func() {
		res, err := toolInfo.Handler(ctx, params)
		resultCh <- execResult{result: res, err: err}
	}()

	select {
	case <-ctx.Done():
		err := ctx.Err()
		tr.logger.Printf("Tool execution cancelled for %s: %v", toolName, err)
		return types.NewToolCallError(fmt.Sprintf("Tool execution cancelled: %v", err)), err
	case exec := <-resultCh:
		if exec.err != nil {
			tr.logger.Printf("Tool execution failed for %s: %v", toolName, exec.err)
			return types.NewToolCallError(fmt.Sprintf("Tool execution failed: %v", exec.err)), exec.err
		}
		return exec.result, nil
	}
}

// ListTools returns all registered tool definitions in registration order.
func (tr *ToolRegistry) ListTools() []types.MCPToolDefinition {
	tr.mutex.RLock()
	defer tr.mutex.RUnlock()

	tools := make([]types.MCPToolDefinition, 0, len(tr.order))
	for _, name := range tr.order {
		tools = append(tools, tr.tools[name].Definition)
	}
	return tools
}

// HasTool checks if a tool is registered.
func (tr *ToolRegistry) HasTool(toolName string) bool {
	tr.mutex.RLock()
	defer tr.mutex.RUnlock()

	_, ok := tr.tools[toolName]
	return ok
}

// ToolCount returns the number of registered tools.
func (tr *ToolRegistry) ToolCount() int {
	tr.mutex.RLock()
	defer tr.mutex.RUnlock()

	return len(tr.tools)
}

// SetLogger sets a custom logger for the registry.
func (tr *ToolRegistry) SetLogger(logger *log.Logger) {
	tr.mutex.Lock()
	defer tr.mutex.Unlock()
	tr.logger = logger
}
