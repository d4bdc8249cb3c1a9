package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	AirtableAPIKey string
	AirtableBaseID string
	ReportsTable   string

	// File host selection: "github" (default), "s3" or "local".
	FileHost string

	GitHubToken  string
	GitHubRepo   string // "owner/repo"
	GitHubBranch string

	S3Bucket string
	S3Region string

	LocalDir string

	ReportsPath   string
	PublicBaseURL string

	Port        string
	HTTPTimeout time.Duration
	LogLevel    slog.Level
}

func FromEnv() Config {
	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	return Config{
		AirtableAPIKey: os.Getenv("AIRTABLE_API_KEY"),
		AirtableBaseID: os.Getenv("AIRTABLE_BASE_ID"),
		ReportsTable:   envOr("AIRTABLE_REPORTS_TABLE", "My SF Domain Reports"),
		FileHost:       envOr("FILE_HOST", "github"),
		GitHubToken:    os.Getenv("GITHUB_TOKEN"),
		GitHubRepo:     os.Getenv("GITHUB_REPO"),
		GitHubBranch:   envOr("GITHUB_BRANCH", "main"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       os.Getenv("S3_REGION"),
		LocalDir:       envOr("LOCAL_REPORTS_DIR", "reports-out"),
		ReportsPath:    envOr("REPORTS_PATH", "reports"),
		PublicBaseURL:  envOr("PUBLIC_BASE_URL", "https://app.agentinsider.co"),
		Port:           envOr("PORT", "8080"),
		HTTPTimeout:    to,
		LogLevel:       lvl,
	}
}

// Validate collects configuration problems instead of failing on the first,
// so a misconfigured deploy reports everything at once.
func (c Config) Validate() []string {
	var errs []string
	if c.AirtableAPIKey == "" {
		errs = append(errs, "AIRTABLE_API_KEY is required")
	}
	if c.AirtableBaseID == "" {
		errs = append(errs, "AIRTABLE_BASE_ID is required")
	}
	switch c.FileHost {
	case "github":
		if c.GitHubToken == "" {
			errs = append(errs, "GITHUB_TOKEN is required")
		}
		if c.GitHubRepo == "" {
			errs = append(errs, "GITHUB_REPO is required")
		} else if !strings.Contains(c.GitHubRepo, "/") {
			errs = append(errs, "GITHUB_REPO must be in format 'username/repo'")
		}
	case "s3":
		if c.S3Bucket == "" {
			errs = append(errs, "S3_BUCKET is required")
		}
	case "local":
	default:
		errs = append(errs, "FILE_HOST must be one of: github, s3, local")
	}
	return errs
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
