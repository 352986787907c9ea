package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/jesses-code-adventures/ndis-invoice/internal/invoice"
	"github.com/jesses-code-adventures/ndis-invoice/internal/utils"
)

const (
	pageMargin   = 12.0
	contentWidth = 210 - 2*pageMargin
	rightColX    = 122.0
	rightColW    = 210 - pageMargin - rightColX
	lineH        = 5.5
	rowH         = 6.0
	descChars    = 52

	// Title, three bank lines and the inner padding of the bordered box.
	paymentBlockHeight = 4*lineH + 6
)

// Table column widths, summing to contentWidth.
var colWidths = [5]float64{14, 98, 22, 26, 26}

type PDFRenderer struct{}

func (PDFRenderer) Extension() string {
	return "pdf"
}

func (PDFRenderer) Render(w io.Writer, doc *invoice.Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetCreator("ndis-invoice", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	if doc == nil {
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(contentWidth, 10, NoContentText)
		return output(pdf, w)
	}

	pdf.SetTitle("Tax Invoice "+doc.Meta.InvoiceNumber, true)
	pdf.SetAuthor(doc.Seller.Name, true)

	top := pdf.GetY()

	// Seller identity on the left
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(100, 9, "Tax Invoice")
	pdf.Ln(11)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		doc.Seller.Name,
		doc.Seller.Address1,
		doc.Seller.Address2,
		doc.Seller.Country,
		"ABN " + doc.Seller.ABN,
		doc.Seller.Email,
	} {
		pdf.Cell(100, lineH, tr(line))
		pdf.Ln(lineH)
	}
	leftBottom := pdf.GetY()

	// Invoice info card on the right
	y := top
	cardTop := y
	y += 2
	for _, row := range [][2]string{
		{"#", doc.Meta.InvoiceNumber},
		{"Invoice Date", invoice.FormatHeaderDate(doc.Meta.InvoiceDate)},
		{"Terms", doc.Meta.Terms},
		{"Due Date", invoice.FormatHeaderDate(doc.Meta.DueDate)},
	} {
		style := ""
		if row[0] == "#" {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.SetXY(rightColX+3, y)
		pdf.CellFormat(rightColW/2-3, rowH, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(rightColW/2-3, rowH, tr(row[1]), "", 0, "R", false, 0, "")
		y += rowH
	}
	y += 2
	pdf.SetDrawColor(221, 221, 221)
	pdf.Rect(rightColX, cardTop, rightColW, y-cardTop, "D")

	// Balance due card
	y += 3
	pdf.Rect(rightColX, y, rightColW, rowH+4, "D")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(rightColX+3, y+2)
	pdf.CellFormat(rightColW/2-3, rowH, "Balance Due", "", 0, "L", false, 0, "")
	pdf.CellFormat(rightColW/2-3, rowH, invoice.FormatMoney(doc.BalanceDue), "", 0, "R", false, 0, "")
	rightBottom := y + rowH + 4

	pdf.SetXY(pageMargin, max(leftBottom, rightBottom)+6)

	// Client and subject
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(contentWidth, lineH, tr(clientLine(doc)))
	pdf.Ln(lineH + 5)
	pdf.Cell(contentWidth, lineH, "Subject :")
	pdf.Ln(lineH)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(contentWidth, lineH, tr(doc.Meta.Subject))
	pdf.Ln(lineH + 6)

	// Line items
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"#", "Description", "Qty", "Rate", "Amount"} {
		align := "R"
		if i < 2 {
			align = "L"
		}
		pdf.CellFormat(colWidths[i], 8, h, "B", 0, align, false, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetDrawColor(238, 238, 238)
	for _, item := range doc.Items {
		lines := utils.WrapText(item.Description, descChars)
		height := float64(len(lines)) * rowH
		if height < rowH {
			height = rowH
		}
		ensureSpace(pdf, height)

		x, rowY := pdf.GetX(), pdf.GetY()
		pdf.CellFormat(colWidths[0], height, fmt.Sprintf("%d", item.No), "B", 0, "L", false, 0, "")

		descX := pdf.GetX()
		for i, line := range lines {
			pdf.SetXY(descX, rowY+float64(i)*rowH)
			pdf.CellFormat(colWidths[1], rowH, tr(line), "", 0, "L", false, 0, "")
		}
		pdf.Line(descX, rowY+height, descX+colWidths[1], rowY+height)

		pdf.SetXY(descX+colWidths[1], rowY)
		pdf.CellFormat(colWidths[2], height, invoice.FormatQuantity(item.Quantity), "B", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], height, invoice.FormatQuantity(item.Rate), "B", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], height, invoice.FormatMoney(item.Amount), "B", 0, "R", false, 0, "")
		pdf.SetXY(x, rowY+height)
	}

	// Totals
	pdf.Ln(6)
	for _, row := range []struct {
		label string
		value string
		style string
	}{
		{"Sub Total", invoice.FormatMoney(doc.Subtotal), ""},
		{"Total", invoice.FormatMoney(doc.Total), "B"},
		{"Balance Due", invoice.FormatMoney(doc.BalanceDue), ""},
	} {
		pdf.SetFont("Helvetica", row.style, 11)
		pdf.SetX(rightColX)
		pdf.CellFormat(rightColW/2, rowH, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(rightColW/2, rowH, row.value, "", 1, "R", false, 0, "")
	}

	// Payment details, kept on one page so the border encloses every line
	pdf.Ln(6)
	ensureSpace(pdf, paymentBlockHeight)
	payTop := pdf.GetY()
	pdf.SetXY(pageMargin+3, payTop+3)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(contentWidth-6, lineH, "Please make payment to:")
	pdf.Ln(lineH)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		doc.Seller.BankName,
		"BSB " + doc.Seller.BankBSB,
		"Account " + doc.Seller.BankAccount,
	} {
		pdf.SetX(pageMargin + 3)
		pdf.Cell(contentWidth-6, lineH, tr(line))
		pdf.Ln(lineH)
	}
	pdf.SetDrawColor(221, 221, 221)
	pdf.Rect(pageMargin, payTop, contentWidth, pdf.GetY()-payTop+3, "D")

	return output(pdf, w)
}

// ensureSpace starts a new page when h millimetres don't fit above the
// bottom margin.
func ensureSpace(pdf *gofpdf.Fpdf, h float64) {
	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+h > pageH-pageMargin {
		pdf.AddPage()
	}
}

func output(pdf *gofpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
