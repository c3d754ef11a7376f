package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported in the MCP implementation info.
const Version = "1.0.0"

// ServerConfig contains the HTTP transport configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxHeaderBytes  int
	ShutdownTimeout time.Duration
}

// Server wraps the SDK server and drives it from the tool registry. The
// stdio and HTTP transports serve the same tool set.
type Server struct {
	sdkServer    *mcp.Server
	toolRegistry *ToolRegistry

	httpServer       *http.Server
	ipAuthMiddleware *IPAuthMiddleware
	config           *ServerConfig

	logger    *log.Logger
	mutex     sync.RWMutex
	wg        sync.WaitGroup
	isRunning bool
}

// NewServer creates a server over a populated tool registry.
func NewServer(registry *ToolRegistry, config *ServerConfig) *Server {
	s := &Server{
		toolRegistry: registry,
		config:       config,
		logger:       log.New(os.Stderr, "[MCPServer] ", log.LstdFlags),
	}

	impl := &mcp.Implementation{
		Name:    "cortellis-mcp-server",
		Version: Version,
	}
	s.sdkServer = mcp.NewServer(impl, nil)

	for _, def := range registry.ListTools() {
		tool := def
		s.sdkServer.AddTool(&tool, s.sdkHandler(tool.Name))
	}

	return s
}

// sdkHandler bridges an SDK tool call into the registry.
func (s *Server) sdkHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := make(map[string]interface{})
		if req.Params.Arguments != nil {
			if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
				return nil, fmt.Errorf("failed to unmarshal tool arguments: %w", err)
			}
		}

		result, err := s.toolRegistry.ExecuteTool(ctx, name, params)
		if result != nil {
			// Failures travel in the envelope with IsError set rather
			// than as protocol errors.
			return result.SDKResult(), nil
		}
		return nil, err
	}
}

// SetIPAuthMiddleware sets the IP authentication middleware for the HTTP
// transport.
func (s *Server) SetIPAuthMiddleware(middleware *IPAuthMiddleware) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.ipAuthMiddleware = middleware
}

// SetLogger sets a custom logger.
func (s *Server) SetLogger(logger *log.Logger) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.logger = logger
}

// GetToolRegistry returns the tool registry.
func (s *Server) GetToolRegistry() *ToolRegistry {
	return s.toolRegistry
}

// Run serves the MCP protocol over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Printf("Starting MCP server over stdio (%d tools)", s.toolRegistry.ToolCount())
	return s.sdkServer.Run(ctx, &mcp.StdioTransport{})
}

// StartHTTP starts the HTTP transport in the background.
func (s *Server) StartHTTP() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.isRunning {
		return fmt.Errorf("server is already running")
	}
	if s.config == nil {
		return fmt.Errorf("HTTP transport requires a server config")
	}

	getServer := func(r *http.Request) *mcp.Server { return s.sdkServer }

	mux := http.NewServeMux()
	mux.Handle("/", mcp.NewStreamableHTTPHandler(getServer, nil))
	mux.Handle("/mcp", NewDualTransportHandler(getServer))
	mux.HandleFunc("/health", s.handleHealthCheck)

	var handler http.Handler = mux
	if s.ipAuthMiddleware != nil {
		handler = s.ipAuthMiddleware.Middleware(handler)
		s.logger.Printf("IP authentication middleware enabled")
	}

	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler:        handler,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		IdleTimeout:    s.config.IdleTimeout,
		MaxHeaderBytes: s.config.MaxHeaderBytes,
	}

	s.logger.Printf("Starting MCP server over HTTP on %s", s.httpServer.Addr)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Printf("HTTP server error: %v", err)
		}
	}()

	s.isRunning = true
	return nil
}

// Stop gracefully stops the HTTP transport.
func (s *Server) Stop() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isRunning {
		return nil
	}

	s.logger.Printf("Stopping MCP server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Printf("Graceful shutdown failed: %v", err)
		if closeErr := s.httpServer.Close(); closeErr != nil {
			return closeErr
		}
	}

	s.wg.Wait()
	s.isRunning = false
	s.logger.Printf("MCP server stopped")
	return nil
}

// handleHealthCheck handles health check requests.
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   Version,
		"tools":     s.toolRegistry.ToolCount(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.logger.Printf("Failed to encode status response: %v", err)
	}
}
