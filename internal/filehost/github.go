package filehost

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
)

// HTTPClient lets tests substitute the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// GitHubHost publishes files through the repository contents API; the
// repository backs a static page site served from a custom domain. The blob
// sha doubles as the revision token.
type GitHubHost struct {
	httpc   HTTPClient
	apiBase string
	token   string
	repo    string // "owner/repo"
	branch  string
}

func NewGitHubHost(httpc HTTPClient, token, repo, branch string) *GitHubHost {
	return &GitHubHost{
		httpc:   httpc,
		apiBase: "https://api.github.com",
		token:   token,
		repo:    repo,
		branch:  branch,
	}
}

// WithAPIBase overrides the API origin. Used by tests.
func (g *GitHubHost) WithAPIBase(u string) *GitHubHost {
	g.apiBase = u
	return g
}

func (g *GitHubHost) contentsURL(filePath string) string {
	return fmt.Sprintf("%s/repos/%s/contents/%s", g.apiBase, g.repo, filePath)
}

// Revision fetches the blob sha of an existing file. A 404 means the file
// does not exist yet and reports "" without error.
func (g *GitHubHost) Revision(ctx context.Context, filePath string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.contentsURL(filePath), nil)
	if err != nil {
		return "", err
	}
	g.setHeaders(req)
	resp, err := g.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("contents lookup non-200: %d body=%s", resp.StatusCode, string(b))
	}

	var meta struct {
		SHA string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return "", err
	}
	return meta.SHA, nil
}

// Put writes the file via the contents API. When revision is set the request
// carries the sha, turning the write into a guarded update of that exact
// version.
func (g *GitHubHost) Put(ctx context.Context, filePath string, content []byte, revision string) error {
	name := path.Base(filePath)
	payload := map[string]any{
		"message": "Add report: " + name,
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  g.branch,
	}
	if revision != "" {
		payload["sha"] = revision
		payload["message"] = "Update report: " + name
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, g.contentsURL(filePath), bytes.NewReader(body))
	if err != nil {
		return err
	}
	g.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &PublishError{Path: filePath, Status: resp.StatusCode, Body: string(b)}
	}
	return nil
}

func (g *GitHubHost) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "token "+g.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
}
