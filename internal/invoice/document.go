package invoice

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jesses-code-adventures/ndis-invoice/internal/models"
)

// ErrNoContent is returned by Build when there are no day entries.
var ErrNoContent = errors.New("no days to display")

const (
	DefaultServiceDescription = "Access community res and social"
	DefaultTravelDescription  = "Transport (KM traveled)"
)

type MalformedPolicy int

const (
	// MalformedSkip omits both line items of a day with a non-finite field.
	MalformedSkip MalformedPolicy = iota
	// MalformedZeroFill keeps the day and treats non-finite fields as zero.
	MalformedZeroFill
)

func ParseMalformedPolicy(s string) (MalformedPolicy, error) {
	switch s {
	case "", "skip":
		return MalformedSkip, nil
	case "zero", "zero-fill":
		return MalformedZeroFill, nil
	default:
		return MalformedSkip, fmt.Errorf("invalid malformed day policy %q, expected skip or zero", s)
	}
}

type ItemKind string

const (
	ItemService ItemKind = "service"
	ItemTravel  ItemKind = "travel"
)

type LineItem struct {
	No          int
	Kind        ItemKind
	DayID       string
	Date        string
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// Document is the printable description of one tax invoice.
type Document struct {
	Meta       models.InvoiceMeta
	Seller     models.Seller
	Items      []LineItem
	Subtotal   decimal.Decimal
	Total      decimal.Decimal
	BalanceDue decimal.Decimal
	// Skipped holds the IDs of days dropped under MalformedSkip.
	Skipped []string
}

type BuildOptions struct {
	Malformed          MalformedPolicy
	ServiceDescription string
	TravelDescription  string
}

// Build expands each day into a service item and a travel item, numbered
// sequentially from 1.
func Build(meta models.InvoiceMeta, seller models.Seller, days []models.DayEntry, opts BuildOptions) (*Document, error) {
	if len(days) == 0 {
		return nil, ErrNoContent
	}

	serviceDesc := opts.ServiceDescription
	if serviceDesc == "" {
		serviceDesc = DefaultServiceDescription
	}
	travelDesc := opts.TravelDescription
	if travelDesc == "" {
		travelDesc = DefaultTravelDescription
	}

	doc := &Document{
		Meta:     meta,
		Seller:   seller,
		Items:    make([]LineItem, 0, 2*len(days)),
		Subtotal: decimal.Zero,
	}

	no := 1
	for _, d := range days {
		if !WellFormed(d) && opts.Malformed == MalformedSkip {
			doc.Skipped = append(doc.Skipped, d.ID)
			continue
		}

		service := ServiceAmount(d)
		travel := TravelAmount(d)
		day := FormatDescDate(d.Date)

		doc.Items = append(doc.Items,
			LineItem{
				No:          no,
				Kind:        ItemService,
				DayID:       d.ID,
				Date:        d.Date,
				Description: fmt.Sprintf("%s (%s)", serviceDesc, day),
				Quantity:    finite(d.Hours),
				Rate:        finite(d.HourlyRate),
				Amount:      service,
			},
			LineItem{
				No:          no + 1,
				Kind:        ItemTravel,
				DayID:       d.ID,
				Date:        d.Date,
				Description: fmt.Sprintf("%s %s", travelDesc, day),
				Quantity:    finite(d.Km),
				Rate:        finite(d.KmRate),
				Amount:      travel,
			},
		)
		no += 2
		doc.Subtotal = doc.Subtotal.Add(service).Add(travel)
	}

	doc.Total = doc.Subtotal
	doc.BalanceDue = doc.Total
	return doc, nil
}
