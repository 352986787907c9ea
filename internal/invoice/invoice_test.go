package invoice

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jesses-code-adventures/ndis-invoice/internal/models"
)

func day(id, date string, hours, rate, km, kmRate float64) models.DayEntry {
	return models.DayEntry{ID: id, Date: date, Hours: hours, HourlyRate: rate, Km: km, KmRate: kmRate}
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name    string
		days    []models.DayEntry
		service string
		travel  string
		total   string
	}{
		{
			name:    "empty",
			service: "0.00", travel: "0.00", total: "0.00",
		},
		{
			name:    "single day",
			days:    []models.DayEntry{day("a", "2025-09-02", 3, 60, 26, 1)},
			service: "180.00", travel: "26.00", total: "206.00",
		},
		{
			name: "several days with cents",
			days: []models.DayEntry{
				day("a", "2025-09-02", 2.5, 65.47, 12.3, 0.99),
				day("b", "2025-09-03", 0.25, 65.47, 0, 0.99),
			},
			// 163.675 + 16.3675 = 180.0425 ; 12.177
			service: "180.04", travel: "12.18", total: "192.22",
		},
		{
			name: "non-finite fields count as zero per field",
			days: []models.DayEntry{
				day("a", "2025-09-02", math.NaN(), 60, 10, 1),
				day("b", "2025-09-03", 1, 60, math.Inf(1), 1),
			},
			service: "60.00", travel: "10.00", total: "70.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotals(tt.days)
			assert.Equal(t, tt.service, got.Service.StringFixed(2))
			assert.Equal(t, tt.travel, got.Travel.StringFixed(2))
			assert.Equal(t, tt.total, got.Total.StringFixed(2))
		})
	}
}

func TestCalculateTotalsRoundsOnlyAtFormatting(t *testing.T) {
	days := []models.DayEntry{
		day("a", "", 1, 0.005, 0, 0),
		day("b", "", 1, 0.005, 0, 0),
	}
	got := CalculateTotals(days)
	assert.True(t, got.Service.Equal(decimal.RequireFromString("0.01")))
	assert.Equal(t, "$0.01", FormatMoney(got.Service))
}

func TestBuildSingleDay(t *testing.T) {
	doc, err := Build(models.InvoiceMeta{InvoiceNumber: "INV-1"}, models.Seller{Name: "Jane"},
		[]models.DayEntry{day("a", "2025-09-02", 3, 60, 26, 1)}, BuildOptions{})
	require.NoError(t, err)
	require.Len(t, doc.Items, 2)

	service, travel := doc.Items[0], doc.Items[1]
	assert.Equal(t, 1, service.No)
	assert.Equal(t, ItemService, service.Kind)
	assert.Equal(t, "Access community res and social (02 Sep 2025)", service.Description)
	assert.Equal(t, "3.00", FormatQuantity(service.Quantity))
	assert.Equal(t, "60.00", FormatQuantity(service.Rate))
	assert.Equal(t, "$180.00", FormatMoney(service.Amount))

	assert.Equal(t, 2, travel.No)
	assert.Equal(t, ItemTravel, travel.Kind)
	assert.Equal(t, "Transport (KM traveled) 02 Sep 2025", travel.Description)
	assert.Equal(t, "$26.00", FormatMoney(travel.Amount))

	assert.Equal(t, "$206.00", FormatMoney(doc.Subtotal))
	assert.Equal(t, "$206.00", FormatMoney(doc.Total))
	assert.Equal(t, "$206.00", FormatMoney(doc.BalanceDue))
}

func TestBuildNumbersItemsAcrossDays(t *testing.T) {
	days := []models.DayEntry{
		day("a", "2025-09-01", 1, 60, 1, 1),
		day("b", "2025-09-02", 2, 60, 2, 1),
		day("c", "2025-09-03", 3, 60, 3, 1),
	}
	doc, err := Build(models.InvoiceMeta{}, models.Seller{}, days, BuildOptions{})
	require.NoError(t, err)
	require.Len(t, doc.Items, 2*len(days))

	for i, item := range doc.Items {
		assert.Equal(t, i+1, item.No)
		assert.Equal(t, days[i/2].ID, item.DayID)
		if i%2 == 0 {
			assert.Equal(t, ItemService, item.Kind)
		} else {
			assert.Equal(t, ItemTravel, item.Kind)
		}
	}

	sum := decimal.Zero
	for _, item := range doc.Items {
		sum = sum.Add(item.Amount)
	}
	assert.True(t, sum.Equal(doc.Total))
	assert.True(t, CalculateTotals(days).Total.Equal(doc.Total))
}

func TestBuildEmpty(t *testing.T) {
	doc, err := Build(models.InvoiceMeta{}, models.Seller{}, nil, BuildOptions{})
	assert.ErrorIs(t, err, ErrNoContent)
	assert.Nil(t, doc)
}

func TestBuildMalformedDayExcluded(t *testing.T) {
	days := []models.DayEntry{
		day("a", "2025-09-01", 1, 60, 1, 1),
		day("bad", "2025-09-02", math.NaN(), 60, 5, 1),
		day("c", "2025-09-03", 2, 60, 0, 1),
	}
	doc, err := Build(models.InvoiceMeta{}, models.Seller{}, days, BuildOptions{Malformed: MalformedSkip})
	require.NoError(t, err)

	require.Len(t, doc.Items, 4)
	assert.Equal(t, []string{"bad"}, doc.Skipped)
	assert.Equal(t, "c", doc.Items[2].DayID)
	assert.Equal(t, 3, doc.Items[2].No)
	assert.Equal(t, "$181.00", FormatMoney(doc.Total))

	// The form totals still count the travel part of the malformed day.
	assert.Equal(t, "$186.00", FormatMoney(CalculateTotals(days).Total))
}

func TestBuildMalformedDayZeroFilled(t *testing.T) {
	days := []models.DayEntry{
		day("a", "2025-09-01", 1, 60, 1, 1),
		day("bad", "2025-09-02", math.NaN(), 60, 5, 1),
	}
	doc, err := Build(models.InvoiceMeta{}, models.Seller{}, days, BuildOptions{Malformed: MalformedZeroFill})
	require.NoError(t, err)

	require.Len(t, doc.Items, 4)
	assert.Empty(t, doc.Skipped)
	assert.Equal(t, "0.00", FormatQuantity(doc.Items[2].Quantity))
	assert.Equal(t, "$0.00", FormatMoney(doc.Items[2].Amount))
	assert.Equal(t, "$5.00", FormatMoney(doc.Items[3].Amount))
	assert.True(t, CalculateTotals(days).Total.Equal(doc.Total))
}

func TestBuildCustomDescriptions(t *testing.T) {
	doc, err := Build(models.InvoiceMeta{}, models.Seller{},
		[]models.DayEntry{day("a", "2025-12-25", 1, 1, 1, 1)},
		BuildOptions{ServiceDescription: "Daily living support", TravelDescription: "Travel"})
	require.NoError(t, err)
	assert.Equal(t, "Daily living support (25 Dec 2025)", doc.Items[0].Description)
	assert.Equal(t, "Travel 25 Dec 2025", doc.Items[1].Description)
}

func TestParseMalformedPolicy(t *testing.T) {
	p, err := ParseMalformedPolicy("")
	require.NoError(t, err)
	assert.Equal(t, MalformedSkip, p)

	p, err = ParseMalformedPolicy("zero")
	require.NoError(t, err)
	assert.Equal(t, MalformedZeroFill, p)

	_, err = ParseMalformedPolicy("drop")
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":          "$0.00",
		"180":        "$180.00",
		"26":         "$26.00",
		"206":        "$206.00",
		"1234.5":     "$1,234.50",
		"999.999":    "$1,000.00",
		"1234567.89": "$1,234,567.89",
		"-12.3":      "-$12.30",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestFormatDates(t *testing.T) {
	assert.Equal(t, "02/09/2025", FormatHeaderDate("2025-09-02"))
	assert.Equal(t, "02 Sep 2025", FormatDescDate("2025-09-02"))
	assert.Equal(t, "next tuesday", FormatHeaderDate("next tuesday"))
	assert.Equal(t, "", FormatDescDate(""))
}
