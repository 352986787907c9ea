package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jesses-code-adventures/ndis-invoice/internal/invoice"
)

const sheetName = "Invoice"

// XLSXRenderer writes the line items to a single-sheet workbook with numeric
// amount cells.
type XLSXRenderer struct{}

func (XLSXRenderer) Extension() string {
	return "xlsx"
}

func (XLSXRenderer) Render(w io.Writer, doc *invoice.Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if doc == nil {
		if err := f.SetCellValue(sheetName, "A1", NoContentText); err != nil {
			return fmt.Errorf("failed to set cell: %w", err)
		}
		return write(f, w)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	header := [][2]any{
		{"Invoice #", doc.Meta.InvoiceNumber},
		{"Invoice Date", invoice.FormatHeaderDate(doc.Meta.InvoiceDate)},
		{"Due Date", invoice.FormatHeaderDate(doc.Meta.DueDate)},
		{"Client", clientLine(doc)},
		{"Seller", doc.Seller.Name},
	}
	for i, kv := range header {
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", i+1), &[]any{kv[0], kv[1]}); err != nil {
			return fmt.Errorf("failed to write header row: %w", err)
		}
	}

	tableRow := len(header) + 2
	cols := make([]any, len(lineItemHeader))
	for i, h := range lineItemHeader {
		cols[i] = h
	}
	if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", tableRow), &cols); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", tableRow), fmt.Sprintf("G%d", tableRow), bold); err != nil {
		return fmt.Errorf("failed to style table header: %w", err)
	}

	row := tableRow + 1
	for _, item := range doc.Items {
		qty, _ := item.Quantity.Float64()
		rate, _ := item.Rate.Float64()
		amount, _ := item.Amount.Float64()
		values := []any{item.No, item.Date, string(item.Kind), item.Description, qty, rate, amount}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return fmt.Errorf("failed to write line item %d: %w", item.No, err)
		}
		row++
	}

	total, _ := doc.Total.Round(2).Float64()
	if err := f.SetSheetRow(sheetName, fmt.Sprintf("F%d", row), &[]any{"Total", total}); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("E%d", tableRow+1), fmt.Sprintf("G%d", row), money); err != nil {
		return fmt.Errorf("failed to style amounts: %w", err)
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("F%d", row), fmt.Sprintf("F%d", row), bold); err != nil {
		return fmt.Errorf("failed to style total: %w", err)
	}
	if err := f.SetColWidth(sheetName, "D", "D", 48); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	return write(f, w)
}

func write(f *excelize.File, w io.Writer) error {
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}
