package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

func TestParseChallenge(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    Challenge
		wantErr bool
	}{
		{
			name:   "realm and nonce only",
			header: `Digest realm="cortellis", nonce="abc123"`,
			want:   Challenge{Realm: "cortellis", Nonce: "abc123"},
		},
		{
			name:   "with qop",
			header: `Digest realm="cortellis", qop="auth", nonce="abc123"`,
			want:   Challenge{Realm: "cortellis", Nonce: "abc123", QOP: "auth"},
		},
		{
			name:   "qop list prefers auth",
			header: `Digest realm="cortellis", qop="auth-int,auth", nonce="abc123"`,
			want:   Challenge{Realm: "cortellis", Nonce: "abc123", QOP: "auth"},
		},
		{
			name:   "qop list without auth uses first",
			header: `Digest realm="cortellis", qop="auth-int", nonce="abc123"`,
			want:   Challenge{Realm: "cortellis", Nonce: "abc123", QOP: "auth-int"},
		},
		{
			name:   "stale flag",
			header: `Digest realm="cortellis", nonce="abc123", stale=TRUE`,
			want:   Challenge{Realm: "cortellis", Nonce: "abc123", Stale: true},
		},
		{
			name:    "missing nonce",
			header:  `Digest realm="cortellis"`,
			wantErr: true,
		},
		{
			name:    "missing realm",
			header:  `Digest nonce="abc123"`,
			wantErr: true,
		},
		{
			name:    "garbage",
			header:  `Bearer token`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, err := ParseChallenge(tt.header)
			if tt.wantErr {
				require.Error(t, err)
				var aerr *types.AuthError
				require.ErrorAs(t, err, &aerr)
				assert.Equal(t, types.ChallengeMalformed, aerr.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *ch)
		})
	}
}
