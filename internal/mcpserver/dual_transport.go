package mcpserver

import (
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DualTransportHandler serves both the Streamable HTTP transport and the
// legacy SSE transport on a single path, so clients speaking either
// protocol can connect without separate endpoints.
type DualTransportHandler struct {
	streamable *mcp.StreamableHTTPHandler
	sse        *mcp.SSEHandler
}

// NewDualTransportHandler creates a handler multiplexing both transports.
func NewDualTransportHandler(getServer func(*http.Request) *mcp.Server) *DualTransportHandler {
	return &DualTransportHandler{
		streamable: mcp.NewStreamableHTTPHandler(getServer, nil),
		sse:        mcp.NewSSEHandler(getServer, nil),
	}
}

// ServeHTTP inspects method, query, and Accept headers to pick a transport.
func (h *DualTransportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// SSE message POSTs carry the session id in the query string.
	if r.Method == http.MethodPost && r.URL.Query().Has("sessionid") {
		h.sse.ServeHTTP(w, r)
		return
	}

	// A GET that accepts an event stream opens an SSE session.
	if r.Method == http.MethodGet && acceptsEventStream(r) {
		h.sse.ServeHTTP(w, r)
		return
	}

	// Everything else belongs to the streamable transport, including
	// session DELETEs and JSON-RPC POSTs.
	h.streamable.ServeHTTP(w, r)
}

func acceptsEventStream(r *http.Request) bool {
	for _, header := range r.Header.Values("Accept") {
		for _, part := range strings.Split(header, ",") {
			media := strings.TrimSpace(part)
			if i := strings.IndexByte(media, ';'); i >= 0 {
				media = strings.TrimSpace(media[:i])
			}
			switch {
			case media == "text/event-stream", media == "*/*":
				return true
			case strings.HasPrefix(media, "text/"):
				return true
			}
		}
	}
	return false
}
