package query

import (
	"fmt"
	"net/url"

	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

// RecordURL builds a single-record fetch URL. Record lookups share the
// authenticated fetch path with searches but involve no query
// construction.
func RecordURL(base, id string) (string, error) {
	if id == "" {
		return "", types.NewValidationError("id is required")
	}
	return fmt.Sprintf("%s/%s?fmt=json", base, url.PathEscape(id)), nil
}
