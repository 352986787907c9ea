// Package form holds the editable invoice state and tells observers about
// every change.
package form

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jesses-code-adventures/ndis-invoice/internal/invoice"
	"github.com/jesses-code-adventures/ndis-invoice/internal/models"
)

var (
	ErrDayNotFound   = errors.New("day entry not found")
	ErrLastDay       = errors.New("cannot remove the only remaining day entry")
	ErrNegativeValue = errors.New("value must not be negative")
)

const (
	DefaultInvoiceNumber = "INV-000001"
	DefaultTerms         = "Due on Receipt"
	DefaultSubject       = "NDIS Support Work"
)

type Options struct {
	KeepLastDay       bool
	NextDayDates      bool
	DefaultHourlyRate float64
	DefaultKmRate     float64

	Now   func() time.Time
	NewID func() string
}

// Snapshot is an immutable copy of the form state.
type Snapshot struct {
	Meta   models.InvoiceMeta
	Seller models.Seller
	Days   []models.DayEntry
	Totals invoice.Totals
	Ready  bool
	// Missing is empty exactly when Ready is true.
	Missing []string
}

type Observer func(Snapshot)

// DayPatch carries the fields to change on a day entry; nil fields are left
// alone.
type DayPatch struct {
	Date       *string
	Hours      *float64
	HourlyRate *float64
	Km         *float64
	KmRate     *float64
}

// Coordinator is not safe for concurrent use. Hand Snapshots to other
// goroutines instead.
type Coordinator struct {
	meta      models.InvoiceMeta
	seller    models.Seller
	days      []models.DayEntry
	totals    invoice.Totals
	opts      Options
	observers []Observer
}

func New(meta models.InvoiceMeta, seller models.Seller, opts Options) *Coordinator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = models.NewUUID
	}
	return &Coordinator{
		meta:   meta,
		seller: seller,
		opts:   opts,
		totals: invoice.CalculateTotals(nil),
	}
}

// DefaultMeta returns the metadata a fresh invoice starts with.
func DefaultMeta(now time.Time) models.InvoiceMeta {
	today := invoice.FormatISODate(now)
	return models.InvoiceMeta{
		InvoiceNumber: DefaultInvoiceNumber,
		InvoiceDate:   today,
		DueDate:       today,
		Terms:         DefaultTerms,
		Subject:       DefaultSubject,
	}
}

// Subscribe registers o and immediately sends it the current state.
func (c *Coordinator) Subscribe(o Observer) {
	c.observers = append(c.observers, o)
	o(c.Snapshot())
}

func (c *Coordinator) Meta() models.InvoiceMeta {
	return c.meta
}

func (c *Coordinator) Seller() models.Seller {
	return c.seller
}

func (c *Coordinator) Days() []models.DayEntry {
	return append([]models.DayEntry(nil), c.days...)
}

func (c *Coordinator) Totals() invoice.Totals {
	return c.totals
}

func (c *Coordinator) SetMetaField(field, value string) error {
	if err := c.meta.Set(field, value); err != nil {
		return err
	}
	c.notify()
	return nil
}

func (c *Coordinator) SetSellerField(field, value string) error {
	if err := c.seller.Set(field, value); err != nil {
		return err
	}
	c.notify()
	return nil
}

func (c *Coordinator) SetMeta(meta models.InvoiceMeta) {
	c.meta = meta
	c.notify()
}

func (c *Coordinator) SetSeller(seller models.Seller) {
	c.seller = seller
	c.notify()
}

// AddDay appends a day entry with default hours and rates.
func (c *Coordinator) AddDay() models.DayEntry {
	date := invoice.FormatISODate(c.opts.Now())
	if c.opts.NextDayDates && len(c.days) > 0 {
		if prev, err := invoice.ParseDate(c.days[len(c.days)-1].Date); err == nil {
			date = invoice.FormatISODate(prev.AddDate(0, 0, 1))
		}
	}

	d := models.DayEntry{
		ID:         c.opts.NewID(),
		Date:       date,
		HourlyRate: c.opts.DefaultHourlyRate,
		KmRate:     c.opts.DefaultKmRate,
	}
	c.days = append(c.days, d)
	c.daysChanged()
	return d
}

// AppendDay adds d as given. An empty or already used ID is replaced.
func (c *Coordinator) AppendDay(d models.DayEntry) (models.DayEntry, error) {
	for _, v := range []float64{d.Hours, d.HourlyRate, d.Km, d.KmRate} {
		if v < 0 {
			return models.DayEntry{}, ErrNegativeValue
		}
	}
	if d.ID == "" || c.indexOf(d.ID) >= 0 {
		d.ID = c.opts.NewID()
	}
	c.days = append(c.days, d)
	c.daysChanged()
	return d, nil
}

func (c *Coordinator) RemoveDay(id string) error {
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrDayNotFound, id)
	}
	if c.opts.KeepLastDay && len(c.days) == 1 {
		return ErrLastDay
	}
	c.days = append(c.days[:i:i], c.days[i+1:]...)
	c.daysChanged()
	return nil
}

func (c *Coordinator) PatchDay(id string, patch DayPatch) (models.DayEntry, error) {
	i := c.indexOf(id)
	if i < 0 {
		return models.DayEntry{}, fmt.Errorf("%w: %s", ErrDayNotFound, id)
	}
	for _, v := range []*float64{patch.Hours, patch.HourlyRate, patch.Km, patch.KmRate} {
		if v != nil && *v < 0 {
			return models.DayEntry{}, ErrNegativeValue
		}
	}

	d := c.days[i]
	if patch.Date != nil {
		d.Date = *patch.Date
	}
	if patch.Hours != nil {
		d.Hours = *patch.Hours
	}
	if patch.HourlyRate != nil {
		d.HourlyRate = *patch.HourlyRate
	}
	if patch.Km != nil {
		d.Km = *patch.Km
	}
	if patch.KmRate != nil {
		d.KmRate = *patch.KmRate
	}
	c.days[i] = d
	c.daysChanged()
	return d, nil
}

// Ready reports whether the invoice can be exported. Numeric day fields are
// not checked.
func (c *Coordinator) Ready() bool {
	return len(c.Missing()) == 0
}

// Missing lists the blank required fields by the names SetSellerField and
// SetMetaField accept.
func (c *Coordinator) Missing() []string {
	var missing []string
	for _, f := range c.seller.Fields() {
		if blank(f.Value()) {
			missing = append(missing, "seller."+f.Name)
		}
	}
	if blank(c.meta.ClientName) {
		missing = append(missing, "meta.client_name")
	}
	if blank(c.meta.ClientNDIS) {
		missing = append(missing, "meta.client_ndis")
	}
	if len(c.days) == 0 {
		missing = append(missing, "days")
	}
	return missing
}

func (c *Coordinator) Snapshot() Snapshot {
	missing := c.Missing()
	return Snapshot{
		Meta:    c.meta,
		Seller:  c.seller,
		Days:    c.Days(),
		Totals:  c.totals,
		Ready:   len(missing) == 0,
		Missing: missing,
	}
}

func (c *Coordinator) indexOf(id string) int {
	for i, d := range c.days {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func (c *Coordinator) daysChanged() {
	c.totals = invoice.CalculateTotals(c.days)
	c.notify()
}

func (c *Coordinator) notify() {
	if len(c.observers) == 0 {
		return
	}
	snap := c.Snapshot()
	for _, o := range c.observers {
		o(snap)
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
