package filehost

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already safe", "Doe_June-2025.html", "Doe_June-2025.html"},
		{"spaces replaced", "Jane Doe June 2025.html", "Jane_Doe_June_2025.html"},
		{"unsafe chars replaced", `a/b\c:d*e?f"g<h>i|j.html`, "a_b_c_d_e_f_g_h_i_j.html"},
		{"missing suffix added", "report", "report.html"},
		{"trailing dots stripped", "report...", "report.html"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeFilename(tc.in); got != tc.want {
				t.Fatalf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeFilenameCapsLength(t *testing.T) {
	long := strings.Repeat("x", 200) + ".html"
	got := SanitizeFilename(long)
	if len(got) != 100 {
		t.Fatalf("len = %d, want 100", len(got))
	}
	if !strings.HasSuffix(got, ".html") {
		t.Fatalf("truncation must keep the suffix, got %q", got)
	}
}

// fakeHost records calls and simulates revision bookkeeping.
type fakeHost struct {
	revisions map[string]string
	puts      []struct {
		path     string
		revision string
	}
	revErr error
	putErr error
}

func newFakeHost() *fakeHost {
	return &fakeHost{revisions: map[string]string{}}
}

func (f *fakeHost) Revision(_ context.Context, path string) (string, error) {
	if f.revErr != nil {
		return "", f.revErr
	}
	return f.revisions[path], nil
}

func (f *fakeHost) Put(_ context.Context, path string, content []byte, revision string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.puts = append(f.puts, struct {
		path     string
		revision string
	}{path, revision})
	f.revisions[path] = "rev-" + string(rune('1'+len(f.puts)-1))
	return nil
}

func TestPublishComputesPathAndURL(t *testing.T) {
	host := newFakeHost()
	p := NewPublisher(host, "reports", "https://app.agentinsider.co", discardLogger())

	art, err := p.Publish(context.Background(), []byte("<html></html>"), "Doe_June 2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if art.Path != "reports/Doe_June_2025.html" {
		t.Fatalf("path = %q", art.Path)
	}
	if art.PublicURL != "https://app.agentinsider.co/reports/Doe_June_2025.html" {
		t.Fatalf("url = %q", art.PublicURL)
	}
}

func TestPublishTwiceCarriesRevisionToken(t *testing.T) {
	host := newFakeHost()
	p := NewPublisher(host, "reports", "https://app.agentinsider.co", discardLogger())
	content := []byte("<html>same bytes</html>")

	first, err := p.Publish(context.Background(), content, "Doe_June-2025.html")
	if err != nil {
		t.Fatalf("first publish: %v", err)
	}
	if first.Revision != "" {
		t.Fatalf("first publish should be a create, got revision %q", first.Revision)
	}

	second, err := p.Publish(context.Background(), content, "Doe_June-2025.html")
	if err != nil {
		t.Fatalf("second publish: %v", err)
	}
	if second.Revision != "rev-1" {
		t.Fatalf("second publish revision = %q, want rev-1", second.Revision)
	}

	if len(host.puts) != 2 {
		t.Fatalf("expected 2 puts, got %d", len(host.puts))
	}
	if host.puts[0].revision != "" || host.puts[1].revision != "rev-1" {
		t.Fatalf("revision handoff wrong: %+v", host.puts)
	}
	if second.PublicURL != first.PublicURL {
		t.Fatalf("republish changed the URL: %q vs %q", first.PublicURL, second.PublicURL)
	}
}

func TestPublishSurfacesPutError(t *testing.T) {
	host := newFakeHost()
	host.putErr = &PublishError{Path: "reports/x.html", Status: 422, Body: "rejected"}
	p := NewPublisher(host, "reports", "https://app.agentinsider.co", discardLogger())

	_, err := p.Publish(context.Background(), []byte("x"), "x.html")
	if err == nil || !strings.Contains(err.Error(), "status=422") {
		t.Fatalf("expected publish error with status, got %v", err)
	}
}
