package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGenerateCmd(app *application) *cobra.Command {
	var draftPath, outputDir, format string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the invoice document from a draft",
		Long: `Generate the invoice from a draft file. The file is named after the invoice number
and written to --output (default OUTPUT_DIR). Refused until every seller field, the
client name and NDIS number and at least one day are filled in.`,
		Example: `  ndis-invoice generate -f invoice.yaml
  ndis-invoice generate -f invoice.yaml -o ./invoices --format html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadDraft(cmd, app, draftPath)
			if err != nil {
				return err
			}

			path, err := app.svc.Export(cmd.Context(), c.Snapshot(), format, outputDir)
			if err != nil {
				return err
			}

			fmt.Printf("Generated invoice: %s\n", path)
			fmt.Println(app.svc.FormatTotals(c.Totals()))
			return nil
		},
	}

	addDraftFlag(cmd, &draftPath)
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default: OUTPUT_DIR)")
	cmd.Flags().StringVar(&format, "format", "pdf", "Output format: pdf, html, csv or xlsx")

	return cmd
}
