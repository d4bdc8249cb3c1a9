// Package webhook validates and extracts the inbound report-ready event.
package webhook

import (
	"fmt"
	"strings"
	"time"
)

const (
	fieldRecordID = "MySFDomainReportRecordID"
	fieldStart    = "DateStart"
	fieldEnd      = "DateEnd"
	fieldAccount  = "AccountID"
	fieldCarrier  = "CarrierCompany"

	// Record ids from the upstream store always carry this prefix.
	recordIDPrefix = "rec"

	dateLayout = "2006-01-02"
)

// Event is the validated payload the pipeline runs on. DateStart and DateEnd
// keep their raw string form: the period-label rules need the original
// literals when a date fails to parse downstream.
type Event struct {
	RecordID  string
	DateStart string
	DateEnd   string
	AccountID string
	Carrier   string
}

// Validate checks the event body against all rules and returns every
// violation found, not just the first. An empty slice means valid. It never
// panics regardless of the shapes JSON decoding produced.
func Validate(body map[string]any) []string {
	var errs []string

	for _, f := range []string{fieldRecordID, fieldStart, fieldEnd} {
		if _, ok := body[f]; !ok {
			errs = append(errs, "Missing required field: "+f)
		}
	}

	if v, ok := body[fieldRecordID]; ok {
		s, isStr := v.(string)
		if !isStr || !strings.HasPrefix(s, recordIDPrefix) {
			errs = append(errs, "Invalid "+fieldRecordID+" format")
		}
	}

	parsed := map[string]time.Time{}
	for _, f := range []string{fieldStart, fieldEnd} {
		v, ok := body[f]
		if !ok {
			continue
		}
		s, isStr := v.(string)
		if !isStr {
			errs = append(errs, fmt.Sprintf("Invalid date format for %s. Expected: YYYY-MM-DD", f))
			continue
		}
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Invalid date format for %s. Expected: YYYY-MM-DD", f))
			continue
		}
		parsed[f] = t
	}

	start, okS := parsed[fieldStart]
	end, okE := parsed[fieldEnd]
	if okS && okE && start.After(end) {
		errs = append(errs, "DateStart must be before or equal to DateEnd")
	}

	for _, f := range []string{fieldAccount, fieldCarrier} {
		v, ok := body[f]
		if !ok {
			continue
		}
		list, isList := v.([]any)
		if !isList {
			errs = append(errs, f+" must be an array")
		} else if len(list) == 0 {
			errs = append(errs, f+" array cannot be empty")
		}
	}

	return errs
}

// ParseEvent extracts a validated body into an Event. Call only after
// Validate returned no errors; lookup-style list fields collapse to their
// first element with "Unknown" as the sentinel for absent values.
func ParseEvent(body map[string]any) Event {
	return Event{
		RecordID:  str(body[fieldRecordID]),
		DateStart: str(body[fieldStart]),
		DateEnd:   str(body[fieldEnd]),
		AccountID: firstOr(body[fieldAccount], "Unknown"),
		Carrier:   firstOr(body[fieldCarrier], "Unknown"),
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func firstOr(v any, def string) string {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return def
	}
	if s, ok := list[0].(string); ok && s != "" {
		return s
	}
	return def
}
