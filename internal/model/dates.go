package model

import (
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	DateLayout,
}

func parseTimestamp(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if tm, err := time.Parse(layout, trimmed); err == nil {
			return tm, true
		}
	}
	return time.Time{}, false
}

// DateOnly truncates a date or date-time string to YYYY-MM-DD.
// It returns "" when the value is empty or not a date.
func DateOnly(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < len(DateLayout) {
		return ""
	}
	head := trimmed[:len(DateLayout)]
	if _, err := time.Parse(DateLayout, head); err != nil {
		return ""
	}
	return head
}

// DisplayDate formats a date or date-time string as "January 02, 2006".
func DisplayDate(raw string) string {
	day := DateOnly(raw)
	if day == "" {
		return ""
	}
	tm, err := time.Parse(DateLayout, day)
	if err != nil {
		return ""
	}
	return tm.Format(DisplayDateLayout)
}
