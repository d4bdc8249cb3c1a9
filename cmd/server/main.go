package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/agentinsider/sfreports/internal/config"
	"github.com/agentinsider/sfreports/internal/filehost"
	"github.com/agentinsider/sfreports/internal/httpx"
	"github.com/agentinsider/sfreports/internal/metrics"
	"github.com/agentinsider/sfreports/internal/pipeline"
	"github.com/agentinsider/sfreports/internal/records"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if errs := cfg.Validate(); len(errs) > 0 {
		logger.Error("invalid configuration", slog.String("errors", strings.Join(errs, ", ")))
		os.Exit(1)
	}

	httpc := &http.Client{Timeout: cfg.HTTPTimeout}
	store := records.NewClient(httpc, cfg.AirtableAPIKey, cfg.AirtableBaseID, cfg.ReportsTable)

	host, err := newHost(cfg, httpc)
	if err != nil {
		logger.Error("file host init failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	pub := filehost.NewPublisher(host, cfg.ReportsPath, cfg.PublicBaseURL, logger)
	orch := pipeline.New(store, pub, logger)
	rec := metrics.NewRecorder()

	r := httpx.NewRouter(logger, orch, rec)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port), slog.String("fileHost", cfg.FileHost))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

func newHost(cfg config.Config, httpc *http.Client) (filehost.Host, error) {
	switch cfg.FileHost {
	case "s3":
		return filehost.NewS3Host(context.Background(), cfg.S3Bucket, cfg.S3Region)
	case "local":
		return filehost.NewLocalHost(cfg.LocalDir)
	default:
		return filehost.NewGitHubHost(httpc, cfg.GitHubToken, cfg.GitHubRepo, cfg.GitHubBranch), nil
	}
}
