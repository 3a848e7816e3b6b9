// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"github.com/bgruening/nextclade/pkg/api"
)

// WriteJSON writes a single indented JSON array of v1 reports.
func WriteJSON(w io.Writer, reports []api.ReportV1) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
