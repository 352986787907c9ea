package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/ndis-invoice/internal/form"
	"github.com/jesses-code-adventures/ndis-invoice/internal/invoice"
	"github.com/jesses-code-adventures/ndis-invoice/internal/render"
	"github.com/jesses-code-adventures/ndis-invoice/internal/service"
)

func newExportCmd(app *application) *cobra.Command {
	var draftPath, output, format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a draft's line items to CSV or XLSX",
		Long:  "Export the service and travel line items of a draft to CSV or an Excel workbook, with a total row.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadDraft(cmd, app, draftPath)
			if err != nil {
				return err
			}

			return exportLineItems(cmd.Context(), app.svc, c.Snapshot(), format, output)
		},
	}

	addDraftFlag(cmd, &draftPath)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or xlsx")

	return cmd
}

func exportLineItems(ctx context.Context, svc *service.InvoiceService, snap form.Snapshot, format, output string) error {
	if format != "csv" && format != "xlsx" {
		return fmt.Errorf("unsupported export format %q, expected csv or xlsx", format)
	}
	r, err := render.ForFormat(format)
	if err != nil {
		return err
	}

	doc, err := svc.BuildDocument(snap)
	if errors.Is(err, invoice.ErrNoContent) {
		fmt.Println("No days found to export.")
		return nil
	}
	if err != nil {
		return err
	}

	var w io.Writer
	if output == "" || output == "-" {
		w = os.Stdout
	} else {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		w = file
	}

	if err := r.Render(w, doc); err != nil {
		return fmt.Errorf("failed to write %s: %w", format, err)
	}

	if output != "" && output != "-" {
		fmt.Printf("Exported %d line items to %s\n", len(doc.Items), output)
	}

	return ctx.Err()
}
