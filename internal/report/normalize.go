// Package report derives normalized metrics from raw rollup values and turns
// them into the published HTML document.
package report

import (
	"fmt"
	"math"
	"time"
)

// RawMetrics are the five rollup values as fetched, before rounding.
type RawMetrics struct {
	Cost        float64
	PhoneClicks float64
	SMSClicks   float64
	QuoteStarts float64
	Conversions float64
}

// Metrics is the normalized, pipeline-internal form. All values are
// non-negative integers.
type Metrics struct {
	Cost        int    `json:"cost"`
	PhoneClicks int    `json:"phoneClicks"`
	SMSClicks   int    `json:"smsClicks"`
	QuoteStarts int    `json:"quoteStarts"`
	Conversions int    `json:"conversions"`
	TotalLeads  int    `json:"totalLeads"`
	CostPerLead int    `json:"costPerLead"`
	PeriodLabel string `json:"reportPeriodLabel"`
}

const dateLayout = "2006-01-02"

// Normalize rounds each raw value up to a whole unit and derives the
// composite metrics. Rounding is deliberately ceiling, not nearest: reported
// volume and spend are never understated. Start and end are kept as raw
// strings so an unparseable date can still fall back to the literal period.
func Normalize(raw RawMetrics, dateStart, dateEnd string) Metrics {
	m := Metrics{
		Cost:        ceil(raw.Cost),
		PhoneClicks: ceil(raw.PhoneClicks),
		SMSClicks:   ceil(raw.SMSClicks),
		QuoteStarts: ceil(raw.QuoteStarts),
		Conversions: ceil(raw.Conversions),
	}
	m.TotalLeads = m.QuoteStarts + m.PhoneClicks + m.SMSClicks + m.Conversions
	if m.TotalLeads > 0 {
		m.CostPerLead = ceil(float64(m.Cost) / float64(m.TotalLeads))
	}
	m.PeriodLabel = PeriodLabel(dateStart, dateEnd)
	return m
}

// PeriodLabel names the reporting range. A range that covers exactly one
// calendar month reads as "June 2025"; anything else as
// MM-DD-YYYY-MM-DD-YYYY. Unparseable dates fall back to the raw literals.
func PeriodLabel(dateStart, dateEnd string) string {
	start, errS := time.Parse(dateLayout, dateStart)
	end, errE := time.Parse(dateLayout, dateEnd)
	if errS != nil || errE != nil {
		return dateStart + "-" + dateEnd
	}

	firstOfMonth := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the next month is the last day of this one; time.Date
	// normalizes, so leap Februaries come out right.
	lastOfMonth := time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, time.UTC)

	if start.Equal(firstOfMonth) && end.Equal(lastOfMonth) {
		return fmt.Sprintf("%s %d", start.Month().String(), start.Year())
	}
	return start.Format("01-02-2006") + "-" + end.Format("01-02-2006")
}

func ceil(f float64) int {
	if f < 0 {
		return 0
	}
	return int(math.Ceil(f))
}
