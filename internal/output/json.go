package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifest-network/ledgerdash/internal/models"
)

type JSONOutputHandler struct {
	transferDir string
}

func NewJSONOutputHandler(outDir string) (*JSONOutputHandler, error) {
	transferDir := filepath.Join(outDir, "transfers")

	err := os.MkdirAll(transferDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create transfers directory: %w", err)
	}

	return &JSONOutputHandler{
		transferDir: transferDir,
	}, nil
}

func (h *JSONOutputHandler) WriteTransfer(_ context.Context, t *models.Transfer) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode transfer: %w", err)
	}

	fileName := fmt.Sprintf("transfer_%s.json", t.ID)
	filePath := filepath.Join(h.transferDir, fileName)
	return os.WriteFile(filePath, data, 0644)
}

func (h *JSONOutputHandler) Close() error {
	return nil
}
