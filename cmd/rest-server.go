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
	"github.com/uh-joan/cortellis-mcp-server/internal/metrics"
	"github.com/uh-joan/cortellis-mcp-server/internal/observability"
	"github.com/uh-joan/cortellis-mcp-server/internal/restapi"
)

var (
	restServerHost string
	restServerPort int
)

var restServerCmd = &cobra.Command{
	Use:   "rest-server",
	Short: "Start the REST facade for clients that do not speak MCP",
	Long: `
Start a plain JSON-over-HTTP facade exposing the same Cortellis intents as
the MCP tools: POST /search_drugs, /search_companies, /search_deals and
/explore_ontology, plus GET /drug/{id}, /drug/{id}/swot,
/drug/{id}/financial and /company/{id}.
`,
	RunE: runRESTServer,
}

func init() {
	restServerCmd.Flags().StringVar(&restServerHost, "host", "localhost", "Server host address")
	restServerCmd.Flags().IntVar(&restServerPort, "port", 3000, "Server port")
}

func runRESTServer(cmd *cobra.Command, args []string) error {
	cfg, err := appcfg.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("host") {
		cfg.RESTServerHost = restServerHost
	}
	if cmd.Flags().Changed("port") {
		cfg.RESTServerPort = restServerPort
	}

	logger := log.New(os.Stderr, "[RESTServer] ", log.LstdFlags)

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

	server := restapi.NewServer(cortellis.NewClient(cfg), &restapi.ServerConfig{
		Host:            cfg.RESTServerHost,
		Port:            cfg.RESTServerPort,
		ReadTimeout:     cfg.MCPServerReadTimeout,
		WriteTimeout:    cfg.MCPServerWriteTimeout,
		IdleTimeout:     cfg.MCPServerIdleTimeout,
		ShutdownTimeout: cfg.MCPServerShutdownTimeout,
	})
	server.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.Start()
	})
	group.Go(func() error {
		<-ctx.Done()
		return server.Stop()
	})

	if err := group.Wait(); err != nil {
		return fmt.Errorf("REST server failed: %w", err)
	}
	logger.Printf("REST server stopped")
	return nil
}
