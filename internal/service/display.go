package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/jesses-code-adventures/ndis-invoice/internal/form"
	"github.com/jesses-code-adventures/ndis-invoice/internal/invoice"
)

// DisplayDays writes one line per day entry with its service and travel amounts.
func (s *InvoiceService) DisplayDays(w io.Writer, snap form.Snapshot) {
	if len(snap.Days) == 0 {
		fmt.Fprintln(w, "No days to display")
		return
	}
	for i, d := range snap.Days {
		fmt.Fprintf(w, "%d. %s | %s | %sh @ %s = %s | %skm @ %s = %s\n",
			i+1,
			d.ID,
			invoice.FormatHeaderDate(d.Date),
			invoice.FormatQuantity(invoice.AsDecimal(d.Hours)),
			invoice.FormatMoney(invoice.AsDecimal(d.HourlyRate)),
			invoice.FormatMoney(invoice.ServiceAmount(d)),
			invoice.FormatQuantity(invoice.AsDecimal(d.Km)),
			invoice.FormatMoney(invoice.AsDecimal(d.KmRate)),
			invoice.FormatMoney(invoice.TravelAmount(d)))
	}
}

// DisplayStatus writes the invoice header, its days, the running totals and
// what is still missing before export.
func (s *InvoiceService) DisplayStatus(w io.Writer, snap form.Snapshot) {
	fmt.Fprintf(w, "Invoice %s | %s | %s\n",
		snap.Meta.InvoiceNumber,
		invoice.FormatHeaderDate(snap.Meta.InvoiceDate),
		snap.Meta.Terms)
	if snap.Meta.ClientName != "" {
		fmt.Fprintf(w, "  → %s, NDIS#: %s\n", snap.Meta.ClientName, snap.Meta.ClientNDIS)
	}
	fmt.Fprintln(w)

	s.DisplayDays(w, snap)
	fmt.Fprintln(w)

	fmt.Fprintln(w, s.FormatTotals(snap.Totals))
	if snap.Ready {
		fmt.Fprintln(w, "Ready to export.")
	} else {
		fmt.Fprintf(w, "Not ready, missing: %s\n", strings.Join(snap.Missing, ", "))
	}
}
