package output

import (
	"context"
	"fmt"

	"github.com/manifest-network/ledgerdash/internal/models"
)

const (
	FormatTSV  = "tsv"
	FormatJSON = "json"
)

// OutputHandler exports journaled transfers.
type OutputHandler interface {
	WriteTransfer(ctx context.Context, t *models.Transfer) error
	Close() error
}

// NewOutputHandler returns the handler for format writing under outDir.
func NewOutputHandler(format, outDir string) (OutputHandler, error) {
	switch format {
	case FormatTSV:
		return NewTSVOutputHandler(outDir)
	case FormatJSON:
		return NewJSONOutputHandler(outDir)
	default:
		return nil, fmt.Errorf("unsupported export format %q: expected %s or %s", format, FormatTSV, FormatJSON)
	}
}
