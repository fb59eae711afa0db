package caseform

import (
	"math"
	"strconv"
	"strings"

	"case-collector/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Metric names a derived, display-only ratio of a monthly record.
type Metric string

const (
	MetricAverageTicket  Metric = "ticket_medio"
	MetricAttendanceRate Metric = "taxa_comparecimento"
	MetricROI            Metric = "roi"
)

// MonthMetrics holds the derived values of one monthly record. They are
// never written back into the document.
type MonthMetrics struct {
	AverageTicket  float64 `json:"ticket_medio"`
	AttendanceRate float64 `json:"taxa_comparecimento"`
	ROI            float64 `json:"roi"`
}

// MetricsDisplay is MonthMetrics rendered for pt-BR.
type MetricsDisplay struct {
	AverageTicket  string `json:"ticket_medio"`
	AttendanceRate string `json:"taxa_comparecimento"`
	ROI            string `json:"roi"`
}

// ParseCurrency reads a free-form BRL amount such as "R$ 10.000,00".
// Everything except digits, ',', '.' and '-' is dropped. A comma is the
// decimal separator and any periods are thousands separators; without a
// comma, periods are thousands separators when there are several of them or
// when a single one is followed by exactly three digits. Unparseable input
// yields 0.
func ParseCurrency(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	switch {
	case strings.Contains(cleaned, ","):
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case strings.Count(cleaned, ".") > 1, isThousandsGroup(cleaned):
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// isThousandsGroup matches "5.000" and "-12.500" but not "0.125" or "1.50".
func isThousandsGroup(s string) bool {
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return false
	}
	intPart := strings.TrimPrefix(s[:i], "-")
	frac := s[i+1:]
	return len(frac) == 3 && len(intPart) >= 1 && len(intPart) <= 3 && intPart[0] != '0'
}

// AverageTicket is revenue divided by closed sales, to 2 decimals.
func AverageTicket(revenue string, closedSales int) float64 {
	if closedSales == 0 {
		return 0
	}
	return roundTo(ParseCurrency(revenue)/float64(closedSales), 2)
}

// AttendanceRate is attendances over bookings as a percentage, to 1 decimal.
func AttendanceRate(bookings, attendances int) float64 {
	if bookings == 0 {
		return 0
	}
	return roundTo(float64(attendances)/float64(bookings)*100, 1)
}

// ROI is (revenue - ad spend) / ad spend as a percentage, to 1 decimal.
func ROI(revenue, adSpend string) float64 {
	spend := ParseCurrency(adSpend)
	if spend == 0 {
		return 0
	}
	return roundTo((ParseCurrency(revenue)-spend)/spend*100, 1)
}

// ComputeMonth derives all metrics of a record; unset counts read as 0.
func ComputeMonth(m models.MonthRecord) MonthMetrics {
	return MonthMetrics{
		AverageTicket:  AverageTicket(m.Revenue, models.IntValue(m.ClosedSales)),
		AttendanceRate: AttendanceRate(models.IntValue(m.Bookings), models.IntValue(m.Attendances)),
		ROI:            ROI(m.Revenue, m.AdSpend),
	}
}

// AffectedMetrics lists the metrics that depend on a monthly record field.
func AffectedMetrics(f MonthField) []Metric {
	switch f {
	case MonthRevenue:
		return []Metric{MetricAverageTicket, MetricROI}
	case MonthClosedSales:
		return []Metric{MetricAverageTicket}
	case MonthBookings, MonthAttendances:
		return []Metric{MetricAttendanceRate}
	case MonthAdSpend:
		return []Metric{MetricROI}
	default:
		return nil
	}
}

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// Format renders the metrics the way the form displays them.
func (m MonthMetrics) Format() MetricsDisplay {
	return MetricsDisplay{
		AverageTicket:  ptBR.Sprintf("R$ %.2f", m.AverageTicket),
		AttendanceRate: ptBR.Sprintf("%.1f%%", m.AttendanceRate),
		ROI:            ptBR.Sprintf("%.1f%%", m.ROI),
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
