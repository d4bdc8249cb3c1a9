// Package records talks to the external record store that owns report
// records and their rollup metrics.
package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Record is a read-only snapshot of a report record.
type Record struct {
	ID     string `json:"id"`
	Fields Fields `json:"fields"`
}

// NotFoundError reports a record id with no matching record.
type NotFoundError struct {
	RecordID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record not found: %s", e.RecordID)
}

// Store is the narrow surface the pipeline needs from the record store.
type Store interface {
	Get(ctx context.Context, recordID string) (*Record, error)
	UpdateReportURL(ctx context.Context, recordID, reportURL string) error
}

// HTTPClient lets tests substitute the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements Store against an Airtable-style REST API.
type Client struct {
	httpc   HTTPClient
	baseURL string
	apiKey  string
	baseID  string
	table   string
	backoff Backoff
}

const defaultBaseURL = "https://api.airtable.com/v0"

func NewClient(httpc HTTPClient, apiKey, baseID, table string) *Client {
	return &Client{
		httpc:   httpc,
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		baseID:  baseID,
		table:   table,
		backoff: NewBackoff(100*time.Millisecond, 2),
	}
}

// WithBaseURL overrides the API origin. Used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

func (c *Client) recordURL(recordID string) string {
	return fmt.Sprintf("%s/%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(c.table), recordID)
}

// Get fetches one record by id. Reads are idempotent, so transient failures
// are retried with exponential backoff; writes never are.
func (c *Client) Get(ctx context.Context, recordID string) (*Record, error) {
	var rec Record
	err := c.backoff.Do(func(int) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.recordURL(recordID), nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		resp, err := c.httpc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return stop(&NotFoundError{RecordID: recordID})
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return fmt.Errorf("record store non-2xx: %d body=%s", resp.StatusCode, string(b))
		}
		return json.NewDecoder(resp.Body).Decode(&rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateReportURL writes the published report URL back to the record. This is
// the only field the service ever mutates.
func (c *Client) UpdateReportURL(ctx context.Context, recordID, reportURL string) error {
	payload := map[string]any{
		"fields": map[string]any{
			"Monthly Performance Report URL": reportURL,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.recordURL(recordID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("record update non-2xx: %d body=%s", resp.StatusCode, string(b))
	}
	return nil
}
