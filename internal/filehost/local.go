package filehost

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// LocalHost writes artifacts under a base directory. Meant for development;
// the revision token is the sha256 of the current file content.
type LocalHost struct {
	basePath string
}

func NewLocalHost(basePath string) (*LocalHost, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("creating base directory: %w", err)
	}
	return &LocalHost{basePath: basePath}, nil
}

func (h *LocalHost) Revision(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(h.basePath, path))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func (h *LocalHost) Put(_ context.Context, path string, content []byte, revision string) error {
	fullPath := filepath.Join(h.basePath, path)

	// Honor the check-and-write contract: refuse to replace a version the
	// caller has not seen.
	current, err := h.Revision(context.Background(), path)
	if err != nil {
		return err
	}
	if revision != current {
		return &PublishError{Path: path, Status: http.StatusConflict, Body: "revision mismatch"}
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
