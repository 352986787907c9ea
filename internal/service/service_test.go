package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jesses-code-adventures/ndis-invoice/internal/config"
	"github.com/jesses-code-adventures/ndis-invoice/internal/database"
	"github.com/jesses-code-adventures/ndis-invoice/internal/form"
	"github.com/jesses-code-adventures/ndis-invoice/internal/models"
	"github.com/jesses-code-adventures/ndis-invoice/internal/render"
)

var fixedNow = time.Date(2025, 9, 2, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *InvoiceService {
	t.Helper()
	cfg := &config.Config{
		DatabaseDriver:    config.DriverMemory,
		OutputDir:         t.TempDir(),
		DefaultHourlyRate: 60,
		DefaultKmRate:     1,
		KeepLastDay:       true,
		NextDayDates:      true,
		MalformedDays:     "skip",
	}
	s, err := NewInvoiceService(database.NewMemoryDB(), cfg, zap.NewNop())
	require.NoError(t, err)
	s.now = func() time.Time { return fixedNow }
	return s
}

func testSeller() models.Seller {
	return models.Seller{
		Name:        "Jane Carer",
		Address1:    "1 Main St",
		Address2:    "Springfield NSW 2000",
		Country:     "Australia",
		ABN:         "12 345 678 901",
		Email:       "jane@example.com",
		BankName:    "Example Bank",
		BankBSB:     "062-000",
		BankAccount: "12345678",
	}
}

func readySnapshot(t *testing.T, s *InvoiceService, number string) form.Snapshot {
	t.Helper()
	meta := form.DefaultMeta(fixedNow)
	meta.InvoiceNumber = number
	meta.ClientName = "Sam Client"
	meta.ClientNDIS = "430000000"
	c := s.NewCoordinator(meta, testSeller())
	_, err := c.AppendDay(models.DayEntry{Date: "2025-09-02", Hours: 2, HourlyRate: 60, Km: 10, KmRate: 1})
	require.NoError(t, err)
	snap := c.Snapshot()
	require.True(t, snap.Ready, "missing: %v", snap.Missing)
	return snap
}

func TestNewInvoiceServiceRejectsUnknownPolicy(t *testing.T) {
	_, err := NewInvoiceService(database.NewMemoryDB(), &config.Config{MalformedDays: "drop"}, nil)
	assert.Error(t, err)
}

func TestProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	_, ok := s.LoadProfile(ctx)
	assert.False(t, ok)
	assert.Equal(t, "Australia", s.CurrentSeller(ctx).Country)
	assert.Empty(t, s.CurrentSeller(ctx).Name)

	require.NoError(t, s.SaveProfile(ctx, testSeller()))
	p, ok := s.LoadProfile(ctx)
	require.True(t, ok)
	assert.Equal(t, testSeller(), p.Seller)
	assert.Equal(t, testSeller(), s.CurrentSeller(ctx))

	require.NoError(t, s.ClearProfile(ctx))
	_, ok = s.LoadProfile(ctx)
	assert.False(t, ok)
}

func TestNewInvoiceStartsWithOneDefaultDay(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	require.NoError(t, s.SaveProfile(ctx, testSeller()))

	c := s.NewInvoice(ctx)
	snap := c.Snapshot()
	require.Len(t, snap.Days, 1)
	assert.Equal(t, "2025-09-02", snap.Days[0].Date)
	assert.Equal(t, 60.0, snap.Days[0].HourlyRate)
	assert.Equal(t, 1.0, snap.Days[0].KmRate)
	assert.Equal(t, testSeller(), snap.Seller)
	assert.Equal(t, "INV-000001", snap.Meta.InvoiceNumber)
	assert.False(t, snap.Ready)
}

func TestExportRefusesWhenNotReady(t *testing.T) {
	s := newTestService(t)
	c := s.NewCoordinator(form.DefaultMeta(fixedNow), testSeller())
	c.AddDay()

	_, err := s.Export(context.Background(), c.Snapshot(), "pdf", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotReady))

	var nr *NotReadyError
	require.True(t, errors.As(err, &nr))
	assert.Equal(t, []string{"meta.client_name", "meta.client_ndis"}, nr.Missing)
	assert.Contains(t, err.Error(), "meta.client_name")
}

func TestExportWritesEveryFormat(t *testing.T) {
	s := newTestService(t)
	snap := readySnapshot(t, s, "INV-000042")

	for _, format := range render.Formats() {
		t.Run(format, func(t *testing.T) {
			r, err := render.ForFormat(format)
			require.NoError(t, err)

			path, err := s.Export(context.Background(), snap, format, "")
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(s.cfg.OutputDir, "INV-000042."+r.Extension()), path)

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestExportFileNameFallback(t *testing.T) {
	s := newTestService(t)
	snap := readySnapshot(t, s, "  ")
	dir := filepath.Join(t.TempDir(), "nested")

	path, err := s.Export(context.Background(), snap, "pdf", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "invoice.pdf"), path)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		number, ext, want string
	}{
		{"INV-000001", "pdf", "INV-000001.pdf"},
		{"", "pdf", "invoice.pdf"},
		{"INV 7/2025", "html", "INV_72025.html"},
		{"///", "csv", "invoice.csv"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileName(tt.number, tt.ext), tt.number)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	s := newTestService(t)
	_, err := s.Export(context.Background(), readySnapshot(t, s, "INV-1"), "doc", "")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestConcurrentExportsAreIndependent(t *testing.T) {
	s := newTestService(t)
	const n = 8

	snaps := make([]form.Snapshot, n)
	for i := range snaps {
		snaps[i] = readySnapshot(t, s, fmt.Sprintf("INV-%06d", i+1))
	}

	var wg sync.WaitGroup
	paths := make([]string, n)
	errs := make([]error, n)
	for i := range snaps {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			paths[i], errs[i] = s.Export(context.Background(), snaps[i], "pdf", "")
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i := range paths {
		require.NoError(t, errs[i])
		assert.False(t, seen[paths[i]])
		seen[paths[i]] = true
		_, err := os.Stat(paths[i])
		assert.NoError(t, err)
	}
}

func TestPreviewEmptyShowsPlaceholder(t *testing.T) {
	s := newTestService(t)
	c := s.NewCoordinator(form.DefaultMeta(fixedNow), testSeller())

	var buf bytes.Buffer
	require.NoError(t, s.Preview(context.Background(), c.Snapshot(), "text", &buf))
	assert.Contains(t, buf.String(), render.NoContentText)

	buf.Reset()
	require.NoError(t, s.Preview(context.Background(), c.Snapshot(), "html", &buf))
	assert.Contains(t, buf.String(), render.NoContentText)
}

func TestPreviewDoesNotRequireReadiness(t *testing.T) {
	s := newTestService(t)
	c := s.NewCoordinator(form.DefaultMeta(fixedNow), models.Seller{})
	c.AddDay()

	var buf bytes.Buffer
	require.NoError(t, s.Preview(context.Background(), c.Snapshot(), "text", &buf))
	assert.Contains(t, buf.String(), "Access community res and social (02 Sep 2025)")
}

func TestPreviewToFile(t *testing.T) {
	s := newTestService(t)
	path := filepath.Join(t.TempDir(), "preview.html")

	require.NoError(t, s.PreviewToFile(context.Background(), readySnapshot(t, s, "INV-1"), "html", path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Sam Client")
}

func TestDraftTemplateLoadsWithProfileSeller(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	require.NoError(t, s.SaveProfile(ctx, testSeller()))

	path := filepath.Join(t.TempDir(), "draft.yaml")
	require.NoError(t, s.WriteDraftTemplate(path))

	c, err := s.LoadDraft(ctx, path)
	require.NoError(t, err)
	snap := c.Snapshot()
	assert.Equal(t, testSeller(), snap.Seller)
	assert.Equal(t, "INV-000001", snap.Meta.InvoiceNumber)
	require.Len(t, snap.Days, 1)
	assert.Equal(t, 60.0, snap.Days[0].HourlyRate)
	assert.NotEmpty(t, snap.Days[0].ID)
	assert.Equal(t, []string{"meta.client_name", "meta.client_ndis"}, snap.Missing)
}

func TestLoadDraftAppliesDefaults(t *testing.T) {
	s := newTestService(t)
	path := filepath.Join(t.TempDir(), "draft.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
meta:
  invoice_number: INV-000009
  client_name: Sam Client
  client_ndis: "430000000"
seller:
  name: Inline Seller
days:
  - date: "2025-09-02"
    hours: 3
  - date: "2025-09-03"
    hours: 1.5
    hourly_rate: 70
    km: 12
    km_rate: 0.85
`), 0644))

	c, err := s.LoadDraft(context.Background(), path)
	require.NoError(t, err)
	snap := c.Snapshot()

	assert.Equal(t, "INV-000009", snap.Meta.InvoiceNumber)
	assert.Equal(t, "Due on Receipt", snap.Meta.Terms)
	assert.Equal(t, "2025-09-02", snap.Meta.InvoiceDate)
	assert.Equal(t, "Inline Seller", snap.Seller.Name)
	require.Len(t, snap.Days, 2)
	assert.Equal(t, 60.0, snap.Days[0].HourlyRate)
	assert.Equal(t, 1.0, snap.Days[0].KmRate)
	assert.Equal(t, 70.0, snap.Days[1].HourlyRate)
	assert.Equal(t, "295.20", snap.Totals.Total.StringFixed(2))
}

func TestLoadDraftRejectsNegativeValues(t *testing.T) {
	s := newTestService(t)
	path := filepath.Join(t.TempDir(), "draft.yaml")
	require.NoError(t, os.WriteFile(path, []byte("days:\n  - date: \"2025-09-02\"\n    hours: -1\n"), 0644))

	_, err := s.LoadDraft(context.Background(), path)
	assert.ErrorIs(t, err, form.ErrNegativeValue)
}

func TestSaveDraftRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	snap := readySnapshot(t, s, "INV-000003")
	path := filepath.Join(t.TempDir(), "draft.yaml")

	require.NoError(t, s.SaveDraft(snap, path))
	c, err := s.LoadDraft(ctx, path)
	require.NoError(t, err)

	got := c.Snapshot()
	assert.Equal(t, snap.Meta, got.Meta)
	assert.Equal(t, snap.Seller, got.Seller)
	assert.Equal(t, snap.Days, got.Days)
	assert.True(t, got.Ready)
}

func TestDisplayStatus(t *testing.T) {
	s := newTestService(t)
	c := s.NewCoordinator(form.DefaultMeta(fixedNow), testSeller())
	c.AddDay()

	var buf bytes.Buffer
	s.DisplayStatus(&buf, c.Snapshot())
	out := buf.String()
	assert.Contains(t, out, "Invoice INV-000001 | 02/09/2025 | Due on Receipt")
	assert.Contains(t, out, "Total: $0.00")
	assert.Contains(t, out, "Not ready, missing: meta.client_name, meta.client_ndis")
}

func TestDisplayDaysNonFiniteValues(t *testing.T) {
	s := newTestService(t)
	c := s.NewCoordinator(form.DefaultMeta(fixedNow), testSeller())
	_, err := c.AppendDay(models.DayEntry{Date: "2025-09-02", Hours: math.NaN(), HourlyRate: 60, Km: math.Inf(1), KmRate: 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	s.DisplayDays(&buf, c.Snapshot())
	out := buf.String()
	assert.Contains(t, out, "0.00h @ $60.00 = $0.00")
	assert.Contains(t, out, "0.00km @ $1.00 = $0.00")
	assert.NotContains(t, out, "NaN")
	assert.NotContains(t, out, "Inf")
}
