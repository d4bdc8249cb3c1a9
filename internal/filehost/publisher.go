package filehost

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Artifact describes a successfully published report.
type Artifact struct {
	Path      string
	PublicURL string
	// Revision of the previous version that was replaced, "" for a create.
	Revision string
}

// Publisher writes artifacts to a Host under a fixed directory and maps them
// to URLs on the public base origin. Publishing the same content to the same
// path twice is a no-op from the caller's perspective: the second call reads
// the first call's revision token and replaces the file with identical bytes.
type Publisher struct {
	host    Host
	dir     string
	baseURL string
	log     *slog.Logger
}

func NewPublisher(host Host, dir, baseURL string, log *slog.Logger) *Publisher {
	return &Publisher{host: host, dir: dir, baseURL: strings.TrimSuffix(baseURL, "/"), log: log}
}

// Publish sanitizes the filename, probes the host for an existing revision of
// the target path, writes the content, and returns the artifact with its
// public URL. The revision probe and conditional write are the only guard
// against racing double deliveries; it is best-effort optimistic concurrency,
// not a lock.
func (p *Publisher) Publish(ctx context.Context, content []byte, filename string) (*Artifact, error) {
	safe := SanitizeFilename(filename)
	fullPath := p.dir + "/" + safe

	revision, err := p.host.Revision(ctx, fullPath)
	if err != nil {
		return nil, fmt.Errorf("checking existing revision for %s: %w", fullPath, err)
	}
	if revision != "" {
		p.log.Info("replacing existing artifact", slog.String("path", fullPath), slog.String("revision", revision))
	}

	if err := p.host.Put(ctx, fullPath, content, revision); err != nil {
		return nil, err
	}

	url := p.baseURL + "/" + fullPath
	p.log.Info("artifact published", slog.String("path", fullPath), slog.String("url", url))
	return &Artifact{Path: fullPath, PublicURL: url, Revision: revision}, nil
}
