package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jesses-code-adventures/ndis-invoice/internal/invoice"
)

var lineItemHeader = []string{"No", "Date", "Kind", "Description", "Quantity", "Rate", "Amount"}

// CSVRenderer writes one row per line item followed by a total row.
type CSVRenderer struct{}

func (CSVRenderer) Extension() string {
	return "csv"
}

func (CSVRenderer) Render(w io.Writer, doc *invoice.Document) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(lineItemHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if doc != nil {
		for _, item := range doc.Items {
			record := []string{
				strconv.Itoa(item.No),
				item.Date,
				string(item.Kind),
				item.Description,
				invoice.FormatQuantity(item.Quantity),
				invoice.FormatQuantity(item.Rate),
				item.Amount.StringFixed(2),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		if err := writer.Write([]string{"", "", "", "Total", "", "", doc.Total.StringFixed(2)}); err != nil {
			return fmt.Errorf("failed to write CSV total: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
