package digest

import (
	"bytes"
	"context"
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

// Every request answers the challenge with a fresh handshake, so the nonce
// count never advances past the first value.
const nonceCount = "00000001"

// Credentials are the process-wide digest credentials, supplied once at
// startup.
type Credentials struct {
	Username string
	Password string
}

// Client performs authenticated fetches against the vendor API. It holds
// no per-request state: concurrent calls run fully independent handshakes.
type Client struct {
	httpClient *http.Client
	creds      Credentials
	logger     *log.Logger

	// cnonce generates the client nonce; replaced in tests for
	// deterministic response hashes.
	cnonce func() (string, error)
}

// NewClient creates a digest client over the given transport.
func NewClient(httpClient *http.Client, creds Credentials) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		creds:      creds,
		logger:     log.New(os.Stderr, "[DigestClient] ", log.LstdFlags),
		cnonce:     randomCnonce,
	}
}

// SetLogger replaces the client's logger.
func (c *Client) SetLogger(logger *log.Logger) {
	c.logger = logger
}

// Fetch performs one authenticated request: an unauthenticated probe to
// collect the challenge, then a single credential-bearing retry. The
// parsed JSON body is returned; any failure aborts the whole operation.
func (c *Client) Fetch(ctx context.Context, method, rawURL string) (json.RawMessage, error) {
	challenge, err := c.fetchChallenge(ctx, method, rawURL)
	if err != nil {
		return nil, err
	}

	header, err := c.authorization(method, rawURL, challenge)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build authenticated request: %w", err)
	}
	req.Header.Set("Authorization", header)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("authenticated request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Printf("failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &types.AuthError{
			Kind:    types.RequestFailed,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("API request failed with status %d", resp.StatusCode),
		}
	}

	return parseJSONBody(body)
}

// fetchChallenge issues the first, credential-free request and parses the
// WWW-Authenticate header. Credentials are never sent on this call.
func (c *Client) fetchChallenge(ctx context.Context, method, rawURL string) (*Challenge, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build challenge request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("challenge request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Printf("failed to close challenge body: %v", err)
		}
	}()
	// Drain so the connection can be reused for the retry.
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		c.logger.Printf("failed to drain challenge body: %v", err)
	}

	header := resp.Header.Get("WWW-Authenticate")
	if header == "" {
		return nil, &types.AuthError{
			Kind:    types.ChallengeMissing,
			Message: "response carried no WWW-Authenticate header",
		}
	}

	return ParseChallenge(header)
}

// authorization derives the Authorization header for the retry. With a qop
// the RFC 2617 form is used (fresh cnonce, fixed nonce count); without one
// the RFC 2069 legacy form applies.
func (c *Client) authorization(method, uri string, ch *Challenge) (string, error) {
	ha1 := md5Hex(c.creds.Username + ":" + ch.Realm + ":" + c.creds.Password)
	ha2 := md5Hex(method + ":" + uri)

	if ch.QOP == "" {
		response := md5Hex(strings.Join([]string{ha1, ch.Nonce, ha2}, ":"))
		return fmt.Sprintf(`Digest username=%q, realm=%q, nonce=%q, uri=%q, response=%q`,
			c.creds.Username, ch.Realm, ch.Nonce, uri, response), nil
	}

	cnonce, err := c.cnonce()
	if err != nil {
		return "", fmt.Errorf("failed to generate client nonce: %w", err)
	}

	response := md5Hex(strings.Join([]string{ha1, ch.Nonce, nonceCount, cnonce, ch.QOP, ha2}, ":"))
	return fmt.Sprintf(`Digest username=%q, realm=%q, nonce=%q, uri=%q, qop=%s, nc=%s, cnonce=%q, response=%q`,
		c.creds.Username, ch.Realm, ch.Nonce, uri, ch.QOP, nonceCount, cnonce, response), nil
}

// parseJSONBody validates the authenticated response body. A body that is
// not JSON, or that parses to an empty value (null, false, zero, empty
// string), is a failure.
func parseJSONBody(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &types.AuthError{
			Kind:    types.ResponseNotJSON,
			Message: "response body is empty",
		}
	}

	var value interface{}
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return nil, &types.AuthError{
			Kind:    types.ResponseNotJSON,
			Message: fmt.Sprintf("response body is not valid JSON: %v", err),
		}
	}

	switch v := value.(type) {
	case nil:
		return nil, emptyBodyError()
	case bool:
		if !v {
			return nil, emptyBodyError()
		}
	case float64:
		if v == 0 {
			return nil, emptyBodyError()
		}
	case string:
		if v == "" {
			return nil, emptyBodyError()
		}
	}

	return json.RawMessage(trimmed), nil
}

func emptyBodyError() error {
	return &types.AuthError{
		Kind:    types.ResponseNotJSON,
		Message: "response body parsed to an empty value",
	}
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// randomCnonce returns a fresh 16-hex-character client nonce.
func randomCnonce() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
