package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

func TestRecordURL(t *testing.T) {
	u, err := RecordURL(testDrugBase, "12345")
	require.NoError(t, err)
	assert.Equal(t, testDrugBase+"/12345?fmt=json", u)
}

func TestRecordURLEscapesID(t *testing.T) {
	u, err := RecordURL(testDrugBase, "a/b c")
	require.NoError(t, err)
	assert.Equal(t, testDrugBase+"/a%2Fb%20c?fmt=json", u)
}

func TestRecordURLMissingID(t *testing.T) {
	_, err := RecordURL(testDrugBase, "")
	require.Error(t, err)
	var verr *types.ValidationError
	assert.ErrorAs(t, err, &verr)
}
