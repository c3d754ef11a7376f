package mcpserver

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
)

// IPAuthMiddleware provides IP-based access control for the MCP HTTP
// transport.
type IPAuthMiddleware struct {
	allowedIPs    []string
	allowedNets   []*net.IPNet
	enableLogging bool
}

// NewIPAuthMiddleware creates a new IP authentication middleware from a
// list of IP addresses and CIDR blocks.
func NewIPAuthMiddleware(allowedIPs []string, enableLogging bool) (*IPAuthMiddleware, error) {
	if len(allowedIPs) == 0 {
		return nil, fmt.Errorf("no allowed IPs specified")
	}

	middleware := &IPAuthMiddleware{
		allowedIPs:    allowedIPs,
		allowedNets:   make([]*net.IPNet, 0, len(allowedIPs)),
		enableLogging: enableLogging,
	}

	for _, ipStr := range allowedIPs {
		ipStr = strings.TrimSpace(ipStr)
		if ipStr == "" {
			continue
		}
		network, err := parseCIDROrIP(ipStr)
		if err != nil {
			return nil, err
		}
		middleware.allowedNets = append(middleware.allowedNets, network)
	}

	if middleware.enableLogging {
		log.Printf("IP auth middleware initialized with %d allowed IP ranges", len(middleware.allowedNets))
	}

	return middleware, nil
}

// Middleware returns the HTTP middleware function.
func (m *IPAuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := extractClientIP(r)

		if !m.isIPAllowed(clientIP) {
			if m.enableLogging {
				log.Printf("Access denied for IP: %s (Path: %s, Method: %s)",
					clientIP, r.URL.Path, r.Method)
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			if _, err := w.Write([]byte(`{"error": {"code": -32603, "message": "Access denied: IP not authorized"}}`)); err != nil {
				log.Printf("Failed to write error response: %v", err)
			}
			return
		}

		if m.enableLogging {
			log.Printf("Access granted for IP: %s (Path: %s, Method: %s)",
				clientIP, r.URL.Path, r.Method)
		}

		next.ServeHTTP(w, r)
	})
}

// IsIPAllowed reports whether an IP is covered by the allowlist.
func (m *IPAuthMiddleware) IsIPAllowed(ipStr string) bool {
	return m.isIPAllowed(ipStr)
}

func (m *IPAuthMiddleware) isIPAllowed(ipStr string) bool {
	if ipStr == "" {
		return false
	}

	clientIP := net.ParseIP(ipStr)
	if clientIP == nil {
		if m.enableLogging {
			log.Printf("Failed to parse client IP: %s", ipStr)
		}
		return false
	}

	for _, network := range m.allowedNets {
		if network.Contains(clientIP) {
			return true
		}
	}

	return false
}

// extractClientIP extracts the real client IP, honoring forwarding headers
// set by proxies and load balancers.
func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// X-Forwarded-For can contain multiple IPs, use the first one
		ips := strings.Split(xff, ",")
		if clientIP := strings.TrimSpace(ips[0]); clientIP != "" {
			return clientIP
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If no port is present, use the whole string
		return r.RemoteAddr
	}
	return ip
}

// parseCIDROrIP parses a string as CIDR notation or as a single IP, which
// is widened to a /32 (or /128) network.
func parseCIDROrIP(s string) (*net.IPNet, error) {
	if strings.Contains(s, "/") {
		_, network, err := net.ParseCIDR(s)
		if err != nil {
			return nil, fmt.Errorf("invalid CIDR block %s: %v", s, err)
		}
		return network, nil
	}

	ip := net.ParseIP(s)
	if ip == nil {
		return nil, fmt.Errorf("invalid IP address: %s", s)
	}

	var cidr string
	if ip.To4() != nil {
		cidr = s + "/32"
	} else {
		cidr = s + "/128"
	}

	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, fmt.Errorf("failed to create CIDR for IP %s: %v", s, err)
	}
	return network, nil
}
