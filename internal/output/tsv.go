package output

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/manifest-network/ledgerdash/internal/models"
)

type TSVOutputHandler struct {
	file   *os.File
	writer *bufio.Writer
}

const (
	TransfersTSV = "transfers.tsv"
	tsvHeader    = "id\tsubmitted_at\tfrom_peer\tpayee\tamount\tstatus\tok\turl\tresponse\n"
)

func NewTSVOutputHandler(outDir string) (*TSVOutputHandler, error) {
	err := os.MkdirAll(outDir, 0755)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create output directory")
	}

	file, err := os.Create(filepath.Join(outDir, TransfersTSV))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create transfers TSV file")
	}

	h := &TSVOutputHandler{
		file:   file,
		writer: bufio.NewWriter(file),
	}
	if _, err := h.writer.WriteString(tsvHeader); err != nil {
		file.Close()
		return nil, errors.WithMessage(err, "failed to write TSV header")
	}
	return h, nil
}

func (h *TSVOutputHandler) WriteTransfer(_ context.Context, t *models.Transfer) error {
	line := fmt.Sprintf("%s\t%s\t%d\t%s\t%s\t%d\t%t\t%s\t%s\n",
		t.ID, t.SubmittedAt.UTC().Format(time.RFC3339Nano), t.From, tsvField(t.Payee), tsvField(t.Amount),
		t.Status, t.OK, tsvField(t.URL), tsvField(t.Response))
	_, err := h.writer.WriteString(line)
	return err
}

func (h *TSVOutputHandler) Close() error {
	if err := h.writer.Flush(); err != nil {
		slog.Error("failed to flush transfer writer", "errors", err)
		return err
	}
	if err := h.file.Close(); err != nil {
		slog.Error("failed to close transfer file", "errors", err)
		return err
	}
	return nil
}

var tsvEscaper = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// tsvField keeps free text on a single TSV cell.
func tsvField(s string) string {
	return tsvEscaper.Replace(s)
}
