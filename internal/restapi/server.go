package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/uh-joan/cortellis-mcp-server/internal/cortellis"
	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

// ServerConfig contains the REST listener configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Server exposes the Cortellis tools as a plain JSON-over-HTTP facade for
// clients that do not speak MCP.
type Server struct {
	client     *cortellis.Client
	config     *ServerConfig
	httpServer *http.Server

	logger    *log.Logger
	mutex     sync.RWMutex
	wg        sync.WaitGroup
	isRunning bool
}

// NewServer creates a REST server over a Cortellis client.
func NewServer(client *cortellis.Client, config *ServerConfig) *Server {
	return &Server{
		client: client,
		config: config,
		logger: log.New(os.Stderr, "[RESTServer] ", log.LstdFlags),
	}
}

// SetLogger sets a custom logger.
func (s *Server) SetLogger(logger *log.Logger) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.logger = logger
}

// Routes builds the request mux. Exposed for tests.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /search_drugs", s.handleSearchDrugs)
	mux.HandleFunc("POST /search_companies", s.handleSearchCompanies)
	mux.HandleFunc("POST /search_deals", s.handleSearchDeals)
	mux.HandleFunc("POST /explore_ontology", s.handleExploreOntology)

	mux.HandleFunc("GET /drug/{id}", s.recordHandler(types.RecordDrug))
	mux.HandleFunc("GET /drug/{id}/swot", s.recordHandler(types.RecordDrugSWOT))
	mux.HandleFunc("GET /drug/{id}/financial", s.recordHandler(types.RecordDrugFinancial))
	mux.HandleFunc("GET /company/{id}", s.recordHandler(types.RecordCompany))

	mux.HandleFunc("GET /health", s.handleHealthCheck)

	return s.accessLog(mux)
}

// Start starts the listener in the background.
func (s *Server) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.isRunning {
		return fmt.Errorf("server is already running")
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler:      s.Routes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	s.logger.Printf("Starting REST server on %s", s.httpServer.Addr)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Printf("REST server error: %v", err)
		}
	}()

	s.isRunning = true
	return nil
}

// Stop gracefully stops the listener.
func (s *Server) Stop() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isRunning {
		return nil
	}

	s.logger.Printf("Stopping REST server...")

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
	s.logger.Printf("REST server stopped")
	return nil
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("%s %s from %s (%v)", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	})
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
