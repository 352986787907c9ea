package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jesses-code-adventures/ndis-invoice/internal/form"
	"github.com/jesses-code-adventures/ndis-invoice/internal/invoice"
	"github.com/jesses-code-adventures/ndis-invoice/internal/render"
	"github.com/jesses-code-adventures/ndis-invoice/internal/utils"
)

var ErrNotReady = errors.New("invoice is not ready to export")

const DefaultFileName = "invoice"

type NotReadyError struct {
	Missing []string
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("%s, missing: %s", ErrNotReady, strings.Join(e.Missing, ", "))
}

func (e *NotReadyError) Is(target error) bool {
	return target == ErrNotReady
}

// Export renders snap in the given format and writes it to dir. Each call
// renders into its own buffer, so exports of different snapshots may overlap.
func (s *InvoiceService) Export(ctx context.Context, snap form.Snapshot, format, dir string) (string, error) {
	if !snap.Ready {
		return "", &NotReadyError{Missing: snap.Missing}
	}

	r, err := render.ForFormat(format)
	if err != nil {
		return "", err
	}

	doc, err := s.BuildDocument(snap)
	if err != nil {
		return "", fmt.Errorf("failed to build invoice: %w", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if dir == "" {
		dir = s.cfg.OutputDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, FileName(snap.Meta.InvoiceNumber, r.Extension()))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write invoice: %w", err)
	}

	s.logger.Info("exported invoice",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("line_items", len(doc.Items)),
		zap.String("total", doc.Total.StringFixed(2)))

	return path, nil
}

// Preview renders snap without the readiness gate. An empty day list renders
// the placeholder.
func (s *InvoiceService) Preview(ctx context.Context, snap form.Snapshot, format string, w io.Writer) error {
	r, err := render.ForFormat(format)
	if err != nil {
		return err
	}

	doc, err := s.BuildDocument(snap)
	if err != nil && !errors.Is(err, invoice.ErrNoContent) {
		return fmt.Errorf("failed to build invoice: %w", err)
	}

	return r.Render(w, doc)
}

// PreviewToFile rewrites path with a fresh preview of snap.
func (s *InvoiceService) PreviewToFile(ctx context.Context, snap form.Snapshot, format, path string) error {
	var buf bytes.Buffer
	if err := s.Preview(ctx, snap, format, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	s.logger.Debug("refreshed preview", zap.String("path", path))
	return nil
}

// FileName derives the download name from the invoice number, falling back to
// "invoice" when it is blank.
func FileName(invoiceNumber, ext string) string {
	name := utils.SanitizeFileName(strings.TrimSpace(invoiceNumber))
	if strings.Trim(name, "._") == "" {
		name = DefaultFileName
	}
	return name + "." + ext
}
