package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cortellis-mcp-server",
	Short: "MCP server for the Cortellis pharmaceutical intelligence API",
	Long: `cortellis-mcp-server exposes the Cortellis drug, company, deal and
ontology APIs as MCP tools, with an optional plain REST facade.

Every outbound call authenticates with HTTP Digest using the credentials
from CORTELLIS_USERNAME and CORTELLIS_PASSWORD (a .env file is honored).`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Missing .env is fine; the environment may carry everything.
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded configuration from .env")
	}

	rootCmd.AddCommand(mcpServerCmd)
	rootCmd.AddCommand(restServerCmd)
	rootCmd.AddCommand(toolsCmd)
}
