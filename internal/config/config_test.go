package config

import (
	"strings"
	"testing"
)

func baseConfig() Config {
	return Config{
		AirtableAPIKey: "key",
		AirtableBaseID: "base",
		FileHost:       "github",
		GitHubToken:    "tok",
		GitHubRepo:     "owner/repo",
	}
}

func TestValidateOK(t *testing.T) {
	if errs := baseConfig().Validate(); len(errs) != 0 {
		t.Fatalf("expected valid config, got %v", errs)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	c := Config{FileHost: "github"}
	errs := c.Validate()
	if len(errs) != 4 {
		t.Fatalf("expected 4 errors, got %v", errs)
	}
}

func TestValidateRepoFormat(t *testing.T) {
	c := baseConfig()
	c.GitHubRepo = "no-slash"
	errs := c.Validate()
	found := false
	for _, e := range errs {
		if strings.Contains(e, "username/repo") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected repo format error, got %v", errs)
	}
}

func TestValidateS3Host(t *testing.T) {
	c := baseConfig()
	c.FileHost = "s3"
	c.GitHubToken, c.GitHubRepo = "", ""
	errs := c.Validate()
	if len(errs) != 1 || !strings.Contains(errs[0], "S3_BUCKET") {
		t.Fatalf("expected S3_BUCKET error, got %v", errs)
	}
	c.S3Bucket = "reports"
	if errs := c.Validate(); len(errs) != 0 {
		t.Fatalf("expected valid s3 config, got %v", errs)
	}
}

func TestValidateUnknownHost(t *testing.T) {
	c := baseConfig()
	c.FileHost = "ftp"
	errs := c.Validate()
	if len(errs) != 1 || !strings.Contains(errs[0], "FILE_HOST") {
		t.Fatalf("expected FILE_HOST error, got %v", errs)
	}
}
