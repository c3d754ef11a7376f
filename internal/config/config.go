package config

import (
	"fmt"
	"net"
	"strings"

	env "github.com/netflix/go-env"

	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

// Type alias for Config
type Config = types.Config

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var config Config

	_, err := env.UnmarshalFromEnviron(&config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	// Parse MCPAllowedIPs from comma-separated string
	if config.MCPAllowedIPsStr != "" {
		ips := strings.Split(config.MCPAllowedIPsStr, ",")
		config.MCPAllowedIPs = make([]string, 0, len(ips))
		for _, ip := range ips {
			if trimmed := strings.TrimSpace(ip); trimmed != "" {
				config.MCPAllowedIPs = append(config.MCPAllowedIPs, trimmed)
			}
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// validateConfig validates configuration values and adjusts them to safe ranges.
func validateConfig(config *Config) error {
	if err := validateCredentials(config); err != nil {
		return err
	}

	if !strings.HasPrefix(config.CortellisBaseURL, "http://") &&
		!strings.HasPrefix(config.CortellisBaseURL, "https://") {
		return fmt.Errorf("CORTELLIS_BASE_URL must include scheme (http:// or https://)")
	}
	config.CortellisBaseURL = strings.TrimRight(config.CortellisBaseURL, "/")

	if config.RateLimit <= 0 {
		config.RateLimit = 5.0
	}
	if config.RateBurst <= 0 {
		config.RateBurst = 10
	}
	if config.MaxConnections <= 0 {
		config.MaxConnections = 20
	}
	if config.MaxIdleConns > config.MaxConnections {
		config.MaxIdleConns = config.MaxConnections
	}

	if err := validateMCPConfig(config); err != nil {
		return fmt.Errorf("MCP server configuration validation failed: %w", err)
	}

	if err := validateRESTConfig(config); err != nil {
		return fmt.Errorf("REST server configuration validation failed: %w", err)
	}

	return nil
}

// validateCredentials enforces the presence of the digest credentials. A
// missing credential is fatal: the process must not start without it.
func validateCredentials(config *Config) error {
	if config.CortellisUsername == "" {
		return &types.ConfigurationError{Message: "CORTELLIS_USERNAME is required"}
	}
	if config.CortellisPassword == "" {
		return &types.ConfigurationError{Message: "CORTELLIS_PASSWORD is required"}
	}
	return nil
}

// validateMCPConfig validates MCP server-specific configuration.
func validateMCPConfig(config *Config) error {
	if config.MCPServerPort < 1 || config.MCPServerPort > 65535 {
		return fmt.Errorf("MCP_SERVER_PORT must be between 1 and 65535")
	}

	if config.MCPServerHost == "" {
		return fmt.Errorf("MCP_SERVER_HOST cannot be empty")
	}

	if config.MCPServerReadTimeout <= 0 {
		return fmt.Errorf("MCP_SERVER_READ_TIMEOUT must be greater than 0")
	}
	if config.MCPServerWriteTimeout <= 0 {
		return fmt.Errorf("MCP_SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if config.MCPServerIdleTimeout <= 0 {
		return fmt.Errorf("MCP_SERVER_IDLE_TIMEOUT must be greater than 0")
	}
	if config.MCPServerShutdownTimeout <= 0 {
		return fmt.Errorf("MCP_SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}

	if config.MCPServerMaxHeaderBytes <= 0 {
		return fmt.Errorf("MCP_SERVER_MAX_HEADER_BYTES must be greater than 0")
	}
	if config.MCPServerMaxHeaderBytes > 10<<20 { // 10MB limit
		return fmt.Errorf("MCP_SERVER_MAX_HEADER_BYTES cannot exceed 10MB")
	}

	if config.MCPIPAuthEnabled {
		if len(config.MCPAllowedIPs) == 0 {
			return fmt.Errorf("MCP_ALLOWED_IPS cannot be empty when IP authentication is enabled")
		}
		for i, ip := range config.MCPAllowedIPs {
			if strings.Contains(ip, "/") {
				if _, _, err := net.ParseCIDR(ip); err != nil {
					return fmt.Errorf("invalid CIDR block in MCP_ALLOWED_IPS at index %d: %s", i, ip)
				}
			} else if net.ParseIP(ip) == nil {
				return fmt.Errorf("invalid IP address in MCP_ALLOWED_IPS at index %d: %s", i, ip)
			}
		}
	}

	return nil
}

// validateRESTConfig validates the REST facade configuration.
func validateRESTConfig(config *Config) error {
	if config.RESTServerPort < 1 || config.RESTServerPort > 65535 {
		return fmt.Errorf("REST_SERVER_PORT must be between 1 and 65535")
	}
	if config.RESTServerHost == "" {
		return fmt.Errorf("REST_SERVER_HOST cannot be empty")
	}
	return nil
}
