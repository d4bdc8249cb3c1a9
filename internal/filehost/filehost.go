// Package filehost publishes report artifacts to a static file host with
// optimistic-concurrency overwrite protection via opaque revision tokens.
package filehost

import (
	"context"
	"fmt"
	"strings"
)

// Host is a content-addressed file host. Revision returns the current
// revision token for a path, or "" when no file exists there (absence is not
// an error). Put writes content at a path; a non-empty revision asks the host
// to replace that exact version, an empty one to create a new file.
type Host interface {
	Revision(ctx context.Context, path string) (string, error)
	Put(ctx context.Context, path string, content []byte, revision string) error
}

// PublishError reports a rejected write, carrying whatever status detail the
// host provided.
type PublishError struct {
	Path   string
	Status int
	Body   string
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish failed for %s: status=%d body=%s", e.Path, e.Status, e.Body)
}

const maxFilenameLen = 100

var unsafeChars = []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", " "}

// SanitizeFilename makes a name safe to use as a single path segment:
// unsafe characters become underscores, leading/trailing spaces and dots are
// stripped, the .html suffix is enforced, and the total length is capped at
// 100 characters. Truncation shortens the stem so the suffix survives.
func SanitizeFilename(name string) string {
	safe := name
	for _, c := range unsafeChars {
		safe = strings.ReplaceAll(safe, c, "_")
	}
	safe = strings.Trim(safe, " .")

	const suffix = ".html"
	safe = strings.TrimSuffix(safe, suffix)
	if max := maxFilenameLen - len(suffix); len(safe) > max {
		safe = safe[:max]
	}
	return safe + suffix
}
