package invoice

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	isoDate    = "2006-01-02"
	headerDate = "02/01/2006"
	descDate   = "02 Jan 2006"
)

// FormatMoney renders an amount as Australian dollars, e.g. $1,234.50.
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

// FormatQuantity renders a quantity or rate with two decimals and no symbol.
func FormatQuantity(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatHeaderDate renders an ISO date as 02/09/2025. Unparseable input is
// returned unchanged.
func FormatHeaderDate(iso string) string {
	return reformat(iso, headerDate)
}

// FormatDescDate renders an ISO date as 02 Sep 2025. Unparseable input is
// returned unchanged.
func FormatDescDate(iso string) string {
	return reformat(iso, descDate)
}

func ParseDate(iso string) (time.Time, error) {
	return time.Parse(isoDate, strings.TrimSpace(iso))
}

func FormatISODate(t time.Time) string {
	return t.Format(isoDate)
}

func reformat(iso, layout string) string {
	t, err := ParseDate(iso)
	if err != nil {
		return iso
	}
	return t.Format(layout)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
