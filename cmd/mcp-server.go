package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	appcfg "github.com/uh-joan/cortellis-mcp-server/internal/config"
	"github.com/uh-joan/cortellis-mcp-server/internal/cortellis"
	"github.com/uh-joan/cortellis-mcp-server/internal/mcpserver"
	"github.com/uh-joan/cortellis-mcp-server/internal/metrics"
	"github.com/uh-joan/cortellis-mcp-server/internal/observability"
)

var (
	mcpServeHTTP    bool
	mcpServerHost   string
	mcpServerPort   int
	mcpAllowedIPs   []string
	mcpEnableIPAuth bool
)

var mcpServerCmd = &cobra.Command{
	Use:   "mcp-server",
	Short: "Start the MCP server (stdio by default, --http for the HTTP transport)",
	Long: `
Start an MCP server exposing the Cortellis search and record tools.

By default the server speaks the MCP protocol over stdio, which is what
desktop MCP clients expect. With --http it serves the streamable HTTP
transport (with an SSE fallback on /mcp) instead, optionally restricted
to an IP allowlist.

Examples:
  cortellis-mcp-server mcp-server                          # stdio transport
  cortellis-mcp-server mcp-server --http --port 9000       # HTTP transport
  cortellis-mcp-server mcp-server --http --allowed-ips "10.0.0.0/8"
`,
	RunE: runMCPServer,
}

func init() {
	mcpServerCmd.Flags().BoolVar(&mcpServeHTTP, "http", false, "Serve the HTTP transport instead of stdio")
	mcpServerCmd.Flags().StringVar(&mcpServerHost, "host", "localhost", "HTTP server host address")
	mcpServerCmd.Flags().IntVar(&mcpServerPort, "port", 8080, "HTTP server port")
	mcpServerCmd.Flags().StringSliceVar(&mcpAllowedIPs, "allowed-ips", nil, "Comma-separated list of allowed IP addresses/CIDR ranges")
	mcpServerCmd.Flags().BoolVar(&mcpEnableIPAuth, "enable-ip-auth", false, "Enable IP-based authentication on the HTTP transport")
}

func runMCPServer(cmd *cobra.Command, args []string) error {
	cfg, err := appcfg.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("host") {
		cfg.MCPServerHost = mcpServerHost
	}
	if cmd.Flags().Changed("port") {
		cfg.MCPServerPort = mcpServerPort
	}
	if cmd.Flags().Changed("allowed-ips") {
		cfg.MCPAllowedIPs = mcpAllowedIPs
	}
	if cmd.Flags().Changed("enable-ip-auth") {
		cfg.MCPIPAuthEnabled = mcpEnableIPAuth
	}

	// Logs go to stderr: stdout belongs to the stdio transport.
	logger := log.New(os.Stderr, "[MCPServer] ", log.LstdFlags)

	shutdownObservability, err := observability.Init(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		if err := shutdownObservability(context.Background()); err != nil {
			logger.Printf("observability shutdown: %v", err)
		}
	}()

	if err := metrics.Init(); err != nil {
		logger.Printf("invocation metrics disabled: %v", err)
	} else {
		defer func() { _ = metrics.Close() }()
		if err := metrics.InitOTelMetrics(); err != nil {
			logger.Printf("failed to register invocation gauge: %v", err)
		}
	}

	registry := mcpserver.NewToolRegistry(cfg.MCPToolPrefix)
	adapter := mcpserver.NewCortellisToolAdapter(cortellis.NewClient(cfg))
	if err := adapter.RegisterAll(registry); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	server := mcpserver.NewServer(registry, &mcpserver.ServerConfig{
		Host:            cfg.MCPServerHost,
		Port:            cfg.MCPServerPort,
		ReadTimeout:     cfg.MCPServerReadTimeout,
		WriteTimeout:    cfg.MCPServerWriteTimeout,
		IdleTimeout:     cfg.MCPServerIdleTimeout,
		MaxHeaderBytes:  cfg.MCPServerMaxHeaderBytes,
		ShutdownTimeout: cfg.MCPServerShutdownTimeout,
	})
	server.SetLogger(logger)

	if cfg.MCPIPAuthEnabled {
		middleware, err := mcpserver.NewIPAuthMiddleware(cfg.MCPAllowedIPs, cfg.MCPIPAuthEnableLogging)
		if err != nil {
			return fmt.Errorf("failed to create IP authentication middleware: %w", err)
		}
		server.SetIPAuthMiddleware(middleware)
		logger.Printf("IP authentication enabled for IPs: %v", cfg.MCPAllowedIPs)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !mcpServeHTTP {
		return server.Run(ctx)
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.StartHTTP()
	})
	group.Go(func() error {
		<-ctx.Done()
		return server.Stop()
	})

	if err := group.Wait(); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	logger.Printf("MCP server stopped")
	return nil
}
