package service

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jesses-code-adventures/ndis-invoice/internal/form"
	"github.com/jesses-code-adventures/ndis-invoice/internal/invoice"
	"github.com/jesses-code-adventures/ndis-invoice/internal/models"
)

// Draft is the on-disk YAML form of an invoice in progress.
type Draft struct {
	Meta   models.InvoiceMeta `yaml:"meta"`
	Seller *models.Seller     `yaml:"seller,omitempty"`
	Days   []DraftDay         `yaml:"days"`
}

// DraftDay leaves rates optional so omitted ones take the configured defaults.
type DraftDay struct {
	ID         string   `yaml:"id,omitempty"`
	Date       string   `yaml:"date"`
	Hours      float64  `yaml:"hours"`
	HourlyRate *float64 `yaml:"hourly_rate,omitempty"`
	Km         float64  `yaml:"km"`
	KmRate     *float64 `yaml:"km_rate,omitempty"`
}

// LoadDraft reads a draft file into a new coordinator. Blank metadata falls
// back to the defaults and a missing seller block to the saved profile.
func (s *InvoiceService) LoadDraft(ctx context.Context, path string) (*form.Coordinator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	var d Draft
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse draft %s: %w", path, err)
	}

	meta := mergeMeta(d.Meta, form.DefaultMeta(s.now()))
	seller := s.CurrentSeller(ctx)
	if d.Seller != nil {
		seller = *d.Seller
	}

	c := s.NewCoordinator(meta, seller)
	for i, day := range d.Days {
		entry := models.DayEntry{
			ID:         day.ID,
			Date:       day.Date,
			Hours:      day.Hours,
			HourlyRate: s.cfg.DefaultHourlyRate,
			Km:         day.Km,
			KmRate:     s.cfg.DefaultKmRate,
		}
		if day.HourlyRate != nil {
			entry.HourlyRate = *day.HourlyRate
		}
		if day.KmRate != nil {
			entry.KmRate = *day.KmRate
		}
		if entry.Date == "" {
			entry.Date = invoice.FormatISODate(s.now())
		}
		if _, err := c.AppendDay(entry); err != nil {
			return nil, fmt.Errorf("failed to load day %d: %w", i+1, err)
		}
	}
	return c, nil
}

// SaveDraft writes snap to path. The seller block is always written.
func (s *InvoiceService) SaveDraft(snap form.Snapshot, path string) error {
	seller := snap.Seller
	d := Draft{Meta: snap.Meta, Seller: &seller}
	for _, day := range snap.Days {
		hr, kr := day.HourlyRate, day.KmRate
		d.Days = append(d.Days, DraftDay{
			ID:         day.ID,
			Date:       day.Date,
			Hours:      day.Hours,
			HourlyRate: &hr,
			Km:         day.Km,
			KmRate:     &kr,
		})
	}
	return writeYAML(path, d)
}

// WriteDraftTemplate writes a starter draft with default metadata, an empty
// client and one default day. The seller block is left out so the saved
// profile is used.
func (s *InvoiceService) WriteDraftTemplate(path string) error {
	now := s.now()
	hr, kr := s.cfg.DefaultHourlyRate, s.cfg.DefaultKmRate
	d := Draft{
		Meta: form.DefaultMeta(now),
		Days: []DraftDay{{Date: invoice.FormatISODate(now), HourlyRate: &hr, KmRate: &kr}},
	}
	return writeYAML(path, d)
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}
	return nil
}

func mergeMeta(m, defaults models.InvoiceMeta) models.InvoiceMeta {
	fields := m.Fields()
	for i, f := range defaults.Fields() {
		if fields[i].Value() == "" && f.Value() != "" {
			_ = m.Set(f.Name, f.Value())
		}
	}
	return m
}
