package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/jesses-code-adventures/ndis-invoice/internal/invoice"
	"github.com/jesses-code-adventures/ndis-invoice/internal/models"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en-AU">
<head>
  <meta charset="utf-8" />
  <title>Tax Invoice {{.Number}}</title>
  <style>
    * { box-sizing: border-box; }
    body { margin: 0; padding: 32px; font-family: Helvetica, Arial, sans-serif; font-size: 14px; color: #111; }
    .invoice { max-width: 820px; margin: 0 auto; }
    .row { display: flex; justify-content: space-between; align-items: flex-start; }
    h1 { font-size: 24px; margin: 0 0 8px; }
    .card { padding: 10px; border: 1px solid #ddd; border-radius: 4px; }
    .card + .card { margin-top: 8px; }
    .card .row { gap: 24px; }
    .section { margin-top: 16px; }
    .bold { font-weight: 700; }
    table { width: 100%; border-collapse: collapse; margin-top: 10px; }
    th { text-align: left; border-bottom: 1px solid #ddd; padding: 6px 0; }
    td { border-bottom: 1px solid #eee; padding: 6px 0; }
    .num { text-align: right; }
    .totals { margin-left: auto; width: 40%; }
  </style>
</head>
<body>
  <div class="invoice">
{{- if .Empty}}
    <p>{{.NoContent}}</p>
{{- else}}
    <div class="row">
      <div style="width: 55%">
        <h1>Tax Invoice</h1>
        <div>{{.Seller.Name}}</div>
        <div>{{.Seller.Address1}}</div>
        <div>{{.Seller.Address2}}</div>
        <div>{{.Seller.Country}}</div>
        <div>ABN {{.Seller.ABN}}</div>
        <div>{{.Seller.Email}}</div>
      </div>
      <div style="width: 40%">
        <div class="card">
          <div class="row"><span class="bold">#</span><span>{{.Number}}</span></div>
          <div class="row"><span>Invoice Date</span><span>{{.InvoiceDate}}</span></div>
          <div class="row"><span>Terms</span><span>{{.Terms}}</span></div>
          <div class="row"><span>Due Date</span><span>{{.DueDate}}</span></div>
        </div>
        <div class="card">
          <div class="row bold"><span>Balance Due</span><span>{{.BalanceDue}}</span></div>
        </div>
      </div>
    </div>

    <div class="section bold">{{.Client}}</div>
    <div class="section">
      <div class="bold">Subject :</div>
      <div>{{.Subject}}</div>
    </div>

    <table class="section">
      <thead>
        <tr><th>#</th><th>Description</th><th class="num">Qty</th><th class="num">Rate</th><th class="num">Amount</th></tr>
      </thead>
      <tbody>
{{- range .Items}}
        <tr><td>{{.No}}</td><td>{{.Description}}</td><td class="num">{{.Qty}}</td><td class="num">{{.Rate}}</td><td class="num">{{.Amount}}</td></tr>
{{- end}}
      </tbody>
    </table>

    <div class="section totals">
      <div class="row"><span>Sub Total</span><span>{{.Subtotal}}</span></div>
      <div class="row bold"><span>Total</span><span>{{.Total}}</span></div>
      <div class="row"><span>Balance Due</span><span>{{.BalanceDue}}</span></div>
    </div>

    <div class="section card">
      <div class="bold">Please make payment to:</div>
      <div>{{.Seller.BankName}}</div>
      <div>BSB {{.Seller.BankBSB}}</div>
      <div>Account {{.Seller.BankAccount}}</div>
    </div>
{{- end}}
  </div>
</body>
</html>
`

var invoiceHTML = template.Must(template.New("invoice").Parse(invoiceHTMLTemplate))

type htmlItem struct {
	No          int
	Description string
	Qty         string
	Rate        string
	Amount      string
}

type htmlView struct {
	Empty       bool
	NoContent   string
	Number      string
	InvoiceDate string
	DueDate     string
	Terms       string
	Subject     string
	Client      string
	Seller      models.Seller
	Items       []htmlItem
	Subtotal    string
	Total       string
	BalanceDue  string
}

type HTMLRenderer struct{}

func (HTMLRenderer) Extension() string {
	return "html"
}

func (HTMLRenderer) Render(w io.Writer, doc *invoice.Document) error {
	view := htmlView{Empty: doc == nil, NoContent: NoContentText}
	if doc != nil {
		view.Number = doc.Meta.InvoiceNumber
		view.InvoiceDate = invoice.FormatHeaderDate(doc.Meta.InvoiceDate)
		view.DueDate = invoice.FormatHeaderDate(doc.Meta.DueDate)
		view.Terms = doc.Meta.Terms
		view.Subject = doc.Meta.Subject
		view.Client = clientLine(doc)
		view.Seller = doc.Seller
		view.Subtotal = invoice.FormatMoney(doc.Subtotal)
		view.Total = invoice.FormatMoney(doc.Total)
		view.BalanceDue = invoice.FormatMoney(doc.BalanceDue)
		for _, item := range doc.Items {
			view.Items = append(view.Items, htmlItem{
				No:          item.No,
				Description: item.Description,
				Qty:         invoice.FormatQuantity(item.Quantity),
				Rate:        invoice.FormatQuantity(item.Rate),
				Amount:      invoice.FormatMoney(item.Amount),
			})
		}
	}

	if err := invoiceHTML.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	return nil
}
