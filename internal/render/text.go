package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jesses-code-adventures/ndis-invoice/internal/invoice"
)

// TextRenderer is the terminal preview.
type TextRenderer struct{}

func (TextRenderer) Extension() string {
	return "txt"
}

func (TextRenderer) Render(w io.Writer, doc *invoice.Document) error {
	if doc == nil {
		_, err := fmt.Fprintln(w, NoContentText)
		return err
	}

	ew := &errWriter{w: w}
	s := doc.Seller
	ew.printf("Tax Invoice %s\n", doc.Meta.InvoiceNumber)
	ew.printf("%s\n%s\n%s\n%s\nABN %s\n%s\n\n", s.Name, s.Address1, s.Address2, s.Country, s.ABN, s.Email)
	ew.printf("Invoice Date: %s | Terms: %s | Due Date: %s\n",
		invoice.FormatHeaderDate(doc.Meta.InvoiceDate), doc.Meta.Terms, invoice.FormatHeaderDate(doc.Meta.DueDate))
	ew.printf("Balance Due: %s\n\n", invoice.FormatMoney(doc.BalanceDue))
	ew.printf("%s\nSubject : %s\n\n", clientLine(doc), doc.Meta.Subject)

	tw := tabwriter.NewWriter(ew, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDescription\tQty\tRate\tAmount\t")
	for _, item := range doc.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", item.No, item.Description,
			invoice.FormatQuantity(item.Quantity), invoice.FormatQuantity(item.Rate), invoice.FormatMoney(item.Amount))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	ew.printf("\nSub Total: %s\nTotal: %s\nBalance Due: %s\n\n",
		invoice.FormatMoney(doc.Subtotal), invoice.FormatMoney(doc.Total), invoice.FormatMoney(doc.BalanceDue))
	ew.printf("Please make payment to:\n%s\nBSB %s\nAccount %s\n", s.BankName, s.BankBSB, s.BankAccount)
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(e, format, args...)
}
