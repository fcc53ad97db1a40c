package dashboard

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
)

// NotAvailable is shown for KPIs that cannot be computed.
const NotAvailable = "N/A"

var printer = message.NewPrinter(language.English)

// LocaleNumber formats v with thousands separators and at most three
// fractional digits, e.g. 2350 -> "2,350" and 1234.5 -> "1,234.5".
func LocaleNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	fixed := strconv.FormatFloat(math.Abs(v), 'f', 3, 64)
	whole, frac, _ := strings.Cut(fixed, ".")
	var s string
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		s = printer.Sprintf("%d", n)
	} else {
		s = groupDigits(whole)
	}
	if frac = strings.TrimRight(frac, "0"); frac != "" {
		s += "." + frac
	}
	if v < 0 && s != "0" {
		s = "-" + s
	}
	return s
}

// groupDigits inserts thousands separators into a run of decimal digits too
// long for an int64.
func groupDigits(digits string) string {
	var sb strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(d)
	}
	return sb.String()
}

// Percentages returns the renewable and non-renewable shares of total usage.
// ok is false when the total is zero or not a finite number.
func Percentages(m domain.InternalMetrics) (renewable, nonRenewable float64, ok bool) {
	total := m.TotalResourceUsage
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, 0, false
	}
	return m.RenewableUsage / total * 100, m.NonRenewableUsage / total * 100, true
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// plain renders a number the way it appears in the payload: 350 -> "350".
func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
