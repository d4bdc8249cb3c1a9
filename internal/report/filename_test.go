package report

import "testing"

func TestDeriveFilename(t *testing.T) {
	cases := []struct {
		name   string
		client []string
		label  string
		want   string
	}{
		{"surname from full name", []string{"Jane Doe"}, "June 2025", "Doe_June-2025.html"},
		{"multi-element lookup", []string{"Jane", "van Doe"}, "June 2025", "Doe_June-2025.html"},
		{"single token name", []string{"Acme"}, "June 2025", "Acme_June-2025.html"},
		{"empty list defaults", nil, "June 2025", "Client_June-2025.html"},
		{"blank elements filtered", []string{"  ", ""}, "June 2025", "Client_June-2025.html"},
		{"partial-month label untouched", []string{"Jane Doe"}, "06-01-2025-06-15-2025", "Doe_06-01-2025-06-15-2025.html"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveFilename(tc.client, tc.label); got != tc.want {
				t.Fatalf("DeriveFilename(%v, %q) = %q, want %q", tc.client, tc.label, got, tc.want)
			}
		})
	}
}
