package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrUnknownField = errors.New("unknown field")

type Seller struct {
	Name        string `json:"name" yaml:"name"`
	Address1    string `json:"address1" yaml:"address1"`
	Address2    string `json:"address2" yaml:"address2"`
	Country     string `json:"country" yaml:"country"`
	ABN         string `json:"abn" yaml:"abn"`
	Email       string `json:"email" yaml:"email"`
	BankName    string `json:"bankName" yaml:"bank_name"`
	BankBSB     string `json:"bankBsb" yaml:"bank_bsb"`
	BankAccount string `json:"bankAccount" yaml:"bank_account"`
}

type InvoiceMeta struct {
	InvoiceNumber string `json:"invoiceNumber" yaml:"invoice_number"`
	InvoiceDate   string `json:"invoiceDate" yaml:"invoice_date"`
	DueDate       string `json:"dueDate" yaml:"due_date"`
	Terms         string `json:"terms" yaml:"terms"`
	Subject       string `json:"subject" yaml:"subject"`
	ClientName    string `json:"clientName" yaml:"client_name"`
	ClientNDIS    string `json:"clientNDIS" yaml:"client_ndis"`
}

type DayEntry struct {
	ID         string  `json:"id" yaml:"id,omitempty"`
	Date       string  `json:"date" yaml:"date"`
	Hours      float64 `json:"hours" yaml:"hours"`
	HourlyRate float64 `json:"hourlyRate" yaml:"hourly_rate"`
	Km         float64 `json:"km" yaml:"km"`
	KmRate     float64 `json:"kmRate" yaml:"km_rate"`
}

// Profile is the persisted seller record.
type Profile struct {
	Seller Seller `json:"seller"`
}

// Field is a named, settable text field on Seller or InvoiceMeta.
type Field struct {
	Name  string
	Label string
	ptr   func() *string
}

func (f Field) Value() string {
	return *f.ptr()
}

// Fields returns the seller fields in display order.
func (s *Seller) Fields() []Field {
	return []Field{
		{Name: "name", Label: "Name", ptr: func() *string { return &s.Name }},
		{Name: "address1", Label: "Address 1", ptr: func() *string { return &s.Address1 }},
		{Name: "address2", Label: "Address 2", ptr: func() *string { return &s.Address2 }},
		{Name: "country", Label: "Country", ptr: func() *string { return &s.Country }},
		{Name: "abn", Label: "ABN", ptr: func() *string { return &s.ABN }},
		{Name: "email", Label: "Email", ptr: func() *string { return &s.Email }},
		{Name: "bank_name", Label: "Bank name", ptr: func() *string { return &s.BankName }},
		{Name: "bank_bsb", Label: "BSB", ptr: func() *string { return &s.BankBSB }},
		{Name: "bank_account", Label: "Account", ptr: func() *string { return &s.BankAccount }},
	}
}

func (s *Seller) Set(field, value string) error {
	return setField(s.Fields(), field, value)
}

// Fields returns the invoice metadata fields in display order.
func (m *InvoiceMeta) Fields() []Field {
	return []Field{
		{Name: "invoice_number", Label: "Invoice #", ptr: func() *string { return &m.InvoiceNumber }},
		{Name: "invoice_date", Label: "Invoice date", ptr: func() *string { return &m.InvoiceDate }},
		{Name: "due_date", Label: "Due date", ptr: func() *string { return &m.DueDate }},
		{Name: "terms", Label: "Terms", ptr: func() *string { return &m.Terms }},
		{Name: "subject", Label: "Subject", ptr: func() *string { return &m.Subject }},
		{Name: "client_name", Label: "Client name", ptr: func() *string { return &m.ClientName }},
		{Name: "client_ndis", Label: "Client NDIS #", ptr: func() *string { return &m.ClientNDIS }},
	}
}

func (m *InvoiceMeta) Set(field, value string) error {
	return setField(m.Fields(), field, value)
}

func setField(fields []Field, name, value string) error {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for _, f := range fields {
		if f.Name == key {
			*f.ptr() = value
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownField, name)
}

func NewUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}
