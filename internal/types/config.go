package types

import "time"

// Config is the process-wide configuration, loaded once at startup from the
// environment and injected everywhere; core logic never reads the ambient
// environment itself.
type Config struct {
	// Cortellis API credentials (HTTP Digest)
	CortellisUsername string `json:"cortellis_username" env:"CORTELLIS_USERNAME"`
	CortellisPassword string `json:"-" env:"CORTELLIS_PASSWORD"`

	// Vendor API base URL, overridable for testing against a stub server
	CortellisBaseURL string `json:"cortellis_base_url" env:"CORTELLIS_BASE_URL,default=https://api.cortellis.com/api-ws/ws/rs"`

	// Outbound HTTP tuning
	RequestTimeout  time.Duration `json:"request_timeout" env:"CORTELLIS_REQUEST_TIMEOUT,default=60s"`
	MaxConnections  int           `json:"max_connections" env:"CORTELLIS_MAX_CONNECTIONS,default=20"`
	MaxIdleConns    int           `json:"max_idle_conns" env:"CORTELLIS_MAX_IDLE_CONNS,default=10"`
	IdleConnTimeout time.Duration `json:"idle_conn_timeout" env:"CORTELLIS_IDLE_CONN_TIMEOUT,default=90s"`
	RateLimit       float64       `json:"rate_limit" env:"CORTELLIS_RATE_LIMIT,default=5.0"`
	RateBurst       int           `json:"rate_burst" env:"CORTELLIS_RATE_BURST,default=10"`

	// MCP server (HTTP transport)
	MCPServerHost            string        `json:"mcp_server_host" env:"MCP_SERVER_HOST,default=localhost"`
	MCPServerPort            int           `json:"mcp_server_port" env:"MCP_SERVER_PORT,default=8080"`
	MCPServerReadTimeout     time.Duration `json:"mcp_server_read_timeout" env:"MCP_SERVER_READ_TIMEOUT,default=30s"`
	MCPServerWriteTimeout    time.Duration `json:"mcp_server_write_timeout" env:"MCP_SERVER_WRITE_TIMEOUT,default=30s"`
	MCPServerIdleTimeout     time.Duration `json:"mcp_server_idle_timeout" env:"MCP_SERVER_IDLE_TIMEOUT,default=120s"`
	MCPServerShutdownTimeout time.Duration `json:"mcp_server_shutdown_timeout" env:"MCP_SERVER_SHUTDOWN_TIMEOUT,default=30s"`
	MCPServerMaxHeaderBytes  int           `json:"mcp_server_max_header_bytes" env:"MCP_SERVER_MAX_HEADER_BYTES,default=1048576"`
	MCPIPAuthEnabled         bool          `json:"mcp_ip_auth_enabled" env:"MCP_IP_AUTH_ENABLED,default=false"`
	MCPIPAuthEnableLogging   bool          `json:"mcp_ip_auth_enable_logging" env:"MCP_IP_AUTH_ENABLE_LOGGING,default=true"`
	MCPAllowedIPsStr         string        `json:"-" env:"MCP_ALLOWED_IPS"`
	MCPAllowedIPs            []string      `json:"mcp_allowed_ips"`
	MCPToolPrefix            string        `json:"mcp_tool_prefix" env:"MCP_TOOL_PREFIX"`

	// REST facade
	RESTServerHost string `json:"rest_server_host" env:"REST_SERVER_HOST,default=localhost"`
	RESTServerPort int    `json:"rest_server_port" env:"REST_SERVER_PORT,default=3000"`

	// OpenTelemetry (disabled unless OTEL_ENABLED is set)
	OTelEnabled              bool          `json:"otel_enabled" env:"OTEL_ENABLED,default=false"`
	OTelServiceName          string        `json:"otel_service_name" env:"OTEL_SERVICE_NAME,default=cortellis-mcp-server"`
	OTelExporterOTLPEndpoint string        `json:"otel_exporter_otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelExporterOTLPProtocol string        `json:"otel_exporter_otlp_protocol" env:"OTEL_EXPORTER_OTLP_PROTOCOL,default=http/protobuf"`
	OTelResourceAttributes   string        `json:"otel_resource_attributes" env:"OTEL_RESOURCE_ATTRIBUTES"`
	OTelTracesSampler        string        `json:"otel_traces_sampler" env:"OTEL_TRACES_SAMPLER,default=always_on"`
	OTelTracesSamplerArg     float64       `json:"otel_traces_sampler_arg" env:"OTEL_TRACES_SAMPLER_ARG,default=1.0"`
	OTelMetricExportInterval time.Duration `json:"otel_metric_export_interval" env:"OTEL_METRIC_EXPORT_INTERVAL,default=60s"`
}
