package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jesses-code-adventures/ndis-invoice/internal/config"
	"github.com/jesses-code-adventures/ndis-invoice/internal/database"
	"github.com/jesses-code-adventures/ndis-invoice/internal/form"
	"github.com/jesses-code-adventures/ndis-invoice/internal/invoice"
	"github.com/jesses-code-adventures/ndis-invoice/internal/models"
	"github.com/jesses-code-adventures/ndis-invoice/internal/profile"
)

type InvoiceService struct {
	cfg      *config.Config
	profiles *profile.Store
	logger   *zap.Logger
	build    invoice.BuildOptions
	now      func() time.Time
}

func NewInvoiceService(kv database.KV, cfg *config.Config, logger *zap.Logger) (*InvoiceService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	policy, err := invoice.ParseMalformedPolicy(cfg.MalformedDays)
	if err != nil {
		return nil, err
	}
	return &InvoiceService{
		cfg:      cfg,
		profiles: profile.NewStore(kv, logger),
		logger:   logger,
		build: invoice.BuildOptions{
			Malformed:          policy,
			ServiceDescription: cfg.ServiceDescription,
			TravelDescription:  cfg.TravelDescription,
		},
		now: time.Now,
	}, nil
}

func (s *InvoiceService) Config() *config.Config {
	return s.cfg
}

func (s *InvoiceService) Logger() *zap.Logger {
	return s.logger
}

func (s *InvoiceService) SaveProfile(ctx context.Context, seller models.Seller) error {
	if err := s.profiles.Save(ctx, models.Profile{Seller: seller}); err != nil {
		return err
	}
	s.logger.Info("saved seller profile", zap.String("key", profile.Key))
	return nil
}

func (s *InvoiceService) LoadProfile(ctx context.Context) (models.Profile, bool) {
	return s.profiles.Load(ctx)
}

func (s *InvoiceService) ClearProfile(ctx context.Context) error {
	if err := s.profiles.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("cleared seller profile", zap.String("key", profile.Key))
	return nil
}

// CurrentSeller returns the saved seller, or the empty profile's seller when
// nothing usable is stored.
func (s *InvoiceService) CurrentSeller(ctx context.Context) models.Seller {
	if p, ok := s.profiles.Load(ctx); ok {
		return p.Seller
	}
	return profile.Empty().Seller
}

// NewCoordinator returns a form configured from the service settings.
func (s *InvoiceService) NewCoordinator(meta models.InvoiceMeta, seller models.Seller) *form.Coordinator {
	return form.New(meta, seller, form.Options{
		KeepLastDay:       s.cfg.KeepLastDay,
		NextDayDates:      s.cfg.NextDayDates,
		DefaultHourlyRate: s.cfg.DefaultHourlyRate,
		DefaultKmRate:     s.cfg.DefaultKmRate,
		Now:               s.now,
	})
}

// NewInvoice starts a form with default metadata, the saved seller and one
// default day.
func (s *InvoiceService) NewInvoice(ctx context.Context) *form.Coordinator {
	c := s.NewCoordinator(form.DefaultMeta(s.now()), s.CurrentSeller(ctx))
	c.AddDay()
	return c
}

func (s *InvoiceService) BuildDocument(snap form.Snapshot) (*invoice.Document, error) {
	doc, err := invoice.Build(snap.Meta, snap.Seller, snap.Days, s.build)
	if err != nil {
		return nil, err
	}
	if len(doc.Skipped) > 0 {
		s.logger.Warn("skipped days with non-numeric values", zap.Strings("day_ids", doc.Skipped))
	}
	return doc, nil
}

func (s *InvoiceService) FormatTotals(t invoice.Totals) string {
	return fmt.Sprintf("Services: %s | Travel: %s | Total: %s",
		invoice.FormatMoney(t.Service), invoice.FormatMoney(t.Travel), invoice.FormatMoney(t.Total))
}
