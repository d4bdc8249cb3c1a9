package report

import "testing"

func TestNormalizeDerivesCompositeMetrics(t *testing.T) {
	raw := RawMetrics{Cost: 100, QuoteStarts: 2, PhoneClicks: 10, SMSClicks: 5, Conversions: 1}
	m := Normalize(raw, "2025-06-01", "2025-06-30")

	if m.TotalLeads != 18 {
		t.Errorf("TotalLeads = %d, want 18", m.TotalLeads)
	}
	if m.CostPerLead != 6 { // ceil(100/18)
		t.Errorf("CostPerLead = %d, want 6", m.CostPerLead)
	}
	if m.PeriodLabel != "June 2025" {
		t.Errorf("PeriodLabel = %q, want %q", m.PeriodLabel, "June 2025")
	}
}

func TestNormalizeCeilingRounding(t *testing.T) {
	raw := RawMetrics{Cost: 99.01, PhoneClicks: 0.2, SMSClicks: 1.5, QuoteStarts: 0, Conversions: 0.0001}
	m := Normalize(raw, "2025-06-01", "2025-06-30")

	if m.Cost != 100 || m.PhoneClicks != 1 || m.SMSClicks != 2 || m.Conversions != 1 {
		t.Fatalf("ceiling rounding wrong: %+v", m)
	}
	if m.TotalLeads != 4 {
		t.Fatalf("TotalLeads = %d, want 4 (sum of post-rounding values)", m.TotalLeads)
	}
}

func TestNormalizeZeroLeadsGuardsDivision(t *testing.T) {
	m := Normalize(RawMetrics{Cost: 500}, "2025-06-01", "2025-06-30")
	if m.TotalLeads != 0 || m.CostPerLead != 0 {
		t.Fatalf("expected zero cost-per-lead with no leads, got %+v", m)
	}
}

func TestNormalizeNegativeInputClampedToZero(t *testing.T) {
	m := Normalize(RawMetrics{Cost: -10, Conversions: -1}, "2025-06-01", "2025-06-30")
	if m.Cost != 0 || m.Conversions != 0 {
		t.Fatalf("negative raw values must clamp to 0, got %+v", m)
	}
}

func TestPeriodLabel(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"full month", "2025-06-01", "2025-06-30", "June 2025"},
		{"partial month", "2025-06-01", "2025-06-15", "06-01-2025-06-15-2025"},
		{"february non-leap", "2025-02-01", "2025-02-28", "February 2025"},
		{"february leap", "2024-02-01", "2024-02-29", "February 2024"},
		{"leap day short of full month", "2024-02-01", "2024-02-28", "02-01-2024-02-28-2024"},
		{"cross-month range", "2025-06-01", "2025-07-31", "06-01-2025-07-31-2025"},
		{"start mid-month", "2025-06-02", "2025-06-30", "06-02-2025-06-30-2025"},
		{"december full month", "2025-12-01", "2025-12-31", "December 2025"},
		{"unparseable start", "junk", "2025-06-30", "junk-2025-06-30"},
		{"unparseable end", "2025-06-01", "junk", "2025-06-01-junk"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PeriodLabel(tc.start, tc.end); got != tc.want {
				t.Fatalf("PeriodLabel(%q, %q) = %q, want %q", tc.start, tc.end, got, tc.want)
			}
		})
	}
}
