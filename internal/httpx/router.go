package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agentinsider/sfreports/internal/filehost"
	"github.com/agentinsider/sfreports/internal/metrics"
	"github.com/agentinsider/sfreports/internal/pipeline"
	"github.com/agentinsider/sfreports/internal/records"
	"github.com/agentinsider/sfreports/internal/utils"
)

func NewRouter(log *slog.Logger, orch *pipeline.Orchestrator, rec *metrics.Recorder) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "healthy", "service": "sf-domain-reports"})
	})

	mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "SF Domain Reports Webhook Handler",
			"version": "1.0.0",
			"endpoints": map[string]string{
				"webhook": "/webhook",
				"health":  "/health",
				"metrics": "/metrics",
			},
		})
	})

	mux.Method(http.MethodGet, "/metrics", promhttp.Handler())

	mux.Post("/webhook", func(w http.ResponseWriter, r *http.Request) {
		body, ok := unwrapEnvelope(r)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid payload format"})
			return
		}

		start := time.Now()
		result, err := orch.Process(r.Context(), body)
		outcome := respond(w, log, result, err, rec)
		rec.ObserveRequest(outcome, time.Since(start))
	})

	return mux
}

// unwrapEnvelope peels the transport wrapping off the delivery: the payload
// may arrive as a single-element JSON array, and the event object lives under
// a "body" key. A missing "body" yields an empty body that fails validation
// with the usual field errors.
func unwrapEnvelope(r *http.Request) (map[string]any, bool) {
	var raw any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, false
	}
	if list, ok := raw.([]any); ok {
		if len(list) == 0 {
			return nil, false
		}
		raw = list[0]
	}
	payload, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	body, ok := payload["body"].(map[string]any)
	if !ok {
		body = map[string]any{}
	}
	return body, true
}

// respond maps pipeline outcomes onto the external response contract and
// returns the metrics outcome label.
func respond(w http.ResponseWriter, log *slog.Logger, result *pipeline.Result, err error, rec *metrics.Recorder) string {
	if err == nil {
		rec.CountPublish(true)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": result})
		return metrics.OutcomeSuccess
	}

	var ve *pipeline.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "errors": ve.Errors})
		return metrics.OutcomeInvalid
	}

	var nf *records.NotFoundError
	if errors.As(err, &nf) {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": nf.Error()})
		return metrics.OutcomeNotFound
	}

	var pe *filehost.PublishError
	if errors.As(err, &pe) {
		rec.CountPublish(false)
		log.Error("publish rejected", slog.Int("status", pe.Status), slog.String("path", pe.Path))
		writeJSON(w, http.StatusBadGateway, map[string]any{"success": false, "error": pe.Error()})
		return metrics.OutcomePublishErr
	}

	var bw *pipeline.BackWriteError
	if errors.As(err, &bw) {
		// Partial success: the artifact is live, only the record link is
		// missing. Surface the URL so the caller can retry the back-write
		// without republishing.
		rec.CountPublish(true)
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"success":   false,
			"error":     bw.Error(),
			"reportUrl": bw.ReportURL,
			"recordId":  bw.RecordID,
		})
		return metrics.OutcomeBackWrite
	}

	log.Error("webhook processing error", slog.String("err", err.Error()))
	writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
	return metrics.OutcomeInternal
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
