package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/uh-joan/cortellis-mcp-server/internal/cortellis"
	"github.com/uh-joan/cortellis-mcp-server/internal/mcpserver"
	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool definitions as JSON and exit",
	Long: `
Print the full MCP tool definitions (names, descriptions, input schemas)
as a JSON array. No credentials are required and no network call is made.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printToolDefinitions(cmd.OutOrStdout())
	},
}

func printToolDefinitions(out io.Writer) error {
	// The adapter only needs a client to execute calls; definitions are
	// static, so an unconfigured client is fine here.
	registry := mcpserver.NewToolRegistry(os.Getenv("MCP_TOOL_PREFIX"))
	registry.SetLogger(discardLogger())

	adapter := mcpserver.NewCortellisToolAdapter(cortellis.NewClientWithFetcher("", nil, nil))
	if err := adapter.RegisterAll(registry); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	definitions := registry.ListTools()
	names := make([]string, 0, len(definitions))
	for _, def := range definitions {
		names = append(names, def.Name)
	}

	payload := struct {
		Tools []types.MCPToolDefinition `json:"tools"`
		Names []string                  `json:"names"`
	}{Tools: definitions, Names: names}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
