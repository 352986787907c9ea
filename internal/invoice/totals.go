package invoice

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/jesses-code-adventures/ndis-invoice/internal/models"
)

type Totals struct {
	Service decimal.Decimal
	Travel  decimal.Decimal
	Total   decimal.Decimal
}

// CalculateTotals sums service and travel amounts. A non-finite field counts
// as zero for that entry only.
func CalculateTotals(days []models.DayEntry) Totals {
	service := decimal.Zero
	travel := decimal.Zero
	for _, d := range days {
		service = service.Add(ServiceAmount(d))
		travel = travel.Add(TravelAmount(d))
	}
	return Totals{
		Service: service,
		Travel:  travel,
		Total:   service.Add(travel),
	}
}

func ServiceAmount(d models.DayEntry) decimal.Decimal {
	return finite(d.Hours).Mul(finite(d.HourlyRate))
}

func TravelAmount(d models.DayEntry) decimal.Decimal {
	return finite(d.Km).Mul(finite(d.KmRate))
}

// WellFormed reports whether every numeric field of d is a finite number.
func WellFormed(d models.DayEntry) bool {
	for _, f := range []float64{d.Hours, d.HourlyRate, d.Km, d.KmRate} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func finite(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// AsDecimal converts f for display. NaN and infinities become zero.
func AsDecimal(f float64) decimal.Decimal {
	return finite(f)
}
