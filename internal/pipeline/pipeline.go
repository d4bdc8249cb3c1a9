// Package pipeline sequences one webhook delivery through validation, record
// fetch, metric normalization, rendering, publish and back-write. Each run is
// sequential and self-contained; the external record store and file host are
// the only state shared between runs.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agentinsider/sfreports/internal/filehost"
	"github.com/agentinsider/sfreports/internal/records"
	"github.com/agentinsider/sfreports/internal/report"
	"github.com/agentinsider/sfreports/internal/webhook"
)

// Rollup field names as the record store reports them.
const (
	fieldCost        = "Cost (from Keyword Performance)"
	fieldPhoneClicks = "Phone Clicks (from Keyword Performance)"
	fieldSMSClicks   = "SMS Clicks (from Keyword Performance)"
	fieldQuoteStarts = "Quote Starts (from Keyword Performance)"
	fieldConversions = "Conversions (from Keyword Performance)"
	fieldClientName  = "Client Name"
)

// Result is the structured outcome of a successful run.
type Result struct {
	ReportURL   string         `json:"reportUrl"`
	RecordID    string         `json:"recordId"`
	Metrics     report.Metrics `json:"metrics"`
	ProcessedAt time.Time      `json:"processedAt"`
}

// Orchestrator owns the pipeline sequence and the translation of step
// failures into the typed errors the transport layer maps to responses.
type Orchestrator struct {
	store records.Store
	pub   *filehost.Publisher
	log   *slog.Logger
	now   func() time.Time
}

func New(store records.Store, pub *filehost.Publisher, log *slog.Logger) *Orchestrator {
	return &Orchestrator{store: store, pub: pub, log: log, now: time.Now}
}

// WithClock pins the timestamp source. Used by tests.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Process runs one delivery through the full pipeline. Any step failure
// aborts the remaining steps. A failed back-write after a successful publish
// returns both the Result and a BackWriteError: the artifact stays published
// and a redelivery will simply overwrite it with identical content.
func (o *Orchestrator) Process(ctx context.Context, body map[string]any) (*Result, error) {
	if errs := webhook.Validate(body); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	ev := webhook.ParseEvent(body)
	log := o.log.With(slog.String("recordId", ev.RecordID))
	log.Info("processing report request",
		slog.String("dateStart", ev.DateStart), slog.String("dateEnd", ev.DateEnd))

	rec, err := o.store.Get(ctx, ev.RecordID)
	if err != nil {
		return nil, err
	}

	raw := report.RawMetrics{
		Cost:        rec.Fields.Number(fieldCost, log),
		PhoneClicks: rec.Fields.Number(fieldPhoneClicks, log),
		SMSClicks:   rec.Fields.Number(fieldSMSClicks, log),
		QuoteStarts: rec.Fields.Number(fieldQuoteStarts, log),
		Conversions: rec.Fields.Number(fieldConversions, log),
	}
	m := report.Normalize(raw, ev.DateStart, ev.DateEnd)
	log.Info("metrics normalized",
		slog.Int("totalLeads", m.TotalLeads),
		slog.Int("costPerLead", m.CostPerLead),
		slog.String("period", m.PeriodLabel))

	html, err := report.Render(m, report.Context{
		ClientName:  rec.Fields.Text(fieldClientName, "Client"),
		AccountID:   ev.AccountID,
		Carrier:     ev.Carrier,
		GeneratedAt: o.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering report for %s: %w", ev.RecordID, err)
	}

	filename := report.DeriveFilename(rec.Fields.TextList(fieldClientName), m.PeriodLabel)

	art, err := o.pub.Publish(ctx, []byte(html), filename)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ReportURL:   art.PublicURL,
		RecordID:    ev.RecordID,
		Metrics:     m,
		ProcessedAt: o.now(),
	}

	if err := o.store.UpdateReportURL(ctx, ev.RecordID, art.PublicURL); err != nil {
		log.Error("back-write failed after publish", slog.String("url", art.PublicURL), slog.String("err", err.Error()))
		return result, &BackWriteError{RecordID: ev.RecordID, ReportURL: art.PublicURL, Err: err}
	}

	log.Info("report processing complete", slog.String("url", art.PublicURL))
	return result, nil
}
