// Package digest performs RFC 2617/2069 HTTP Digest authentication against
// the Cortellis API. Every call runs the full two-phase handshake; nothing
// is cached between calls, trading request volume for statelessness.
package digest

import (
	"regexp"
	"strings"

	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

// Challenge is the parsed WWW-Authenticate header from the first,
// unauthenticated response. It lives for a single request and is discarded
// after the authenticated retry.
type Challenge struct {
	Realm string
	Nonce string
	QOP   string
	Stale bool
}

var (
	realmPattern = regexp.MustCompile(`realm="([^"]*)"`)
	noncePattern = regexp.MustCompile(`nonce="([^"]*)"`)
	qopPattern   = regexp.MustCompile(`qop="([^"]*)"`)
	stalePattern = regexp.MustCompile(`(?i)stale="?true"?`)
)

// ParseChallenge extracts the digest parameters from a WWW-Authenticate
// header value. Realm and nonce are mandatory; a header without them is a
// malformed challenge.
func ParseChallenge(header string) (*Challenge, error) {
	realm := firstGroup(realmPattern, header)
	nonce := firstGroup(noncePattern, header)
	if realm == "" || nonce == "" {
		return nil, &types.AuthError{
			Kind:    types.ChallengeMalformed,
			Message: "WWW-Authenticate header is missing realm or nonce",
		}
	}

	return &Challenge{
		Realm: realm,
		Nonce: nonce,
		QOP:   selectQOP(firstGroup(qopPattern, header)),
		Stale: stalePattern.MatchString(header),
	}, nil
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// selectQOP picks the quality-of-protection token to answer with. The
// server may list several ("auth,auth-int"); auth is preferred, otherwise
// the first listed token is used.
func selectQOP(qop string) string {
	if qop == "" {
		return ""
	}
	tokens := strings.Split(qop, ",")
	for _, t := range tokens {
		if strings.TrimSpace(t) == "auth" {
			return "auth"
		}
	}
	return strings.TrimSpace(tokens[0])
}
