package pipeline

import (
	"fmt"
	"strings"
)

// ValidationError carries every rule violation found in the inbound payload.
// The pipeline never starts when it is returned.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid payload: " + strings.Join(e.Errors, "; ")
}

// BackWriteError reports a failed record update after a successful publish.
// The artifact exists at ReportURL but the record does not link to it; the
// caller can retry just the back-write without republishing.
type BackWriteError struct {
	RecordID  string
	ReportURL string
	Err       error
}

func (e *BackWriteError) Error() string {
	return fmt.Sprintf("report published at %s but record %s not updated: %v", e.ReportURL, e.RecordID, e.Err)
}

func (e *BackWriteError) Unwrap() error { return e.Err }
