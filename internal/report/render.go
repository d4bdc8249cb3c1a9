package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

//go:embed template.html
var reportTemplate string

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// Context carries the identifying information rendered in the report header.
type Context struct {
	ClientName  string
	AccountID   string
	Carrier     string
	GeneratedAt time.Time
}

type card struct {
	Label string
	Value string
}

type templateData struct {
	ClientName  string
	AccountID   string
	Carrier     string
	Period      string
	GeneratedAt string
	Cards       []card
	Insights    []string
}

// Render produces the complete, self-contained HTML report. It is
// deterministic for a given metrics/context pair; the only varying output is
// the generated-at timestamp taken from ctx.
func Render(m Metrics, ctx Context) (string, error) {
	convRate := conversionRate(m)

	data := templateData{
		ClientName:  ctx.ClientName,
		AccountID:   ctx.AccountID,
		Carrier:     ctx.Carrier,
		Period:      m.PeriodLabel,
		GeneratedAt: ctx.GeneratedAt.Format("January 2, 2006 15:04 MST"),
		Cards: []card{
			{"Total Leads", formatCount(m.TotalLeads)},
			{"Conversions", formatCount(m.Conversions)},
			{"Conversion Rate", formatPercent(convRate)},
			{"Cost", formatCurrency(m.Cost)},
			{"Cost Per Lead", formatCurrency(m.CostPerLead)},
			{"Quote Starts", formatCount(m.QuoteStarts)},
			{"Phone Clicks", formatCount(m.PhoneClicks)},
			{"SMS Clicks", formatCount(m.SMSClicks)},
		},
		Insights: insights(m, convRate),
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return b.String(), nil
}

func conversionRate(m Metrics) float64 {
	if m.TotalLeads == 0 {
		return 0
	}
	return float64(m.Conversions) / float64(m.TotalLeads) * 100
}

// formatCurrency renders whole-dollar amounts with thousands separators and
// two decimals, e.g. 1234 -> "$1,234.00".
func formatCurrency(v int) string {
	return "$" + humanize.FormatFloat("#,###.##", float64(v))
}

func formatCount(v int) string {
	return humanize.Comma(int64(v))
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// insights builds the qualitative commentary below the metrics grid. Tiers
// are intentionally coarse; the report is read by account owners, not
// analysts.
func insights(m Metrics, convRate float64) []string {
	var out []string

	switch {
	case m.TotalLeads == 0:
		out = append(out, "No lead activity was recorded for this period.")
	case convRate >= 10:
		out = append(out, fmt.Sprintf("Excellent conversion performance: %s of leads converted.", formatPercent(convRate)))
	case convRate >= 5:
		out = append(out, fmt.Sprintf("Strong conversion performance: %s of leads converted.", formatPercent(convRate)))
	case convRate > 0:
		out = append(out, fmt.Sprintf("Steady conversion activity: %s of leads converted.", formatPercent(convRate)))
	default:
		out = append(out, "Leads were generated this period but none converted yet.")
	}

	if m.TotalLeads > 0 {
		out = append(out, fmt.Sprintf("Each lead cost %s on average against total spend of %s.",
			formatCurrency(m.CostPerLead), formatCurrency(m.Cost)))

		calls := m.PhoneClicks + m.SMSClicks
		if calls > m.QuoteStarts {
			out = append(out, "Direct contact (phone and SMS) is the dominant lead channel this period.")
		} else if m.QuoteStarts > 0 {
			out = append(out, "Quote starts are the dominant lead channel this period.")
		}
	}

	return out
}
