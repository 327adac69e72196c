package view

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders an ISO date for tables. Empty means "N/A"; anything
// unparsable is shown as sent.
func FormatDate(s string) string {
	return FormatDateOr(s, "N/A")
}

func FormatDateOr(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	t, ok := parseDate(s)
	if !ok {
		return s
	}
	return t.Format("Jan 2, 2006")
}

// FormatDateTime is FormatDate with the time of day.
func FormatDateTime(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	t, ok := parseDate(s)
	if !ok {
		return s
	}
	if len(s) <= len("2006-01-02") {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("Jan 2, 2006 15:04")
}

// InputDate converts a backend date to the value an <input type="date"> takes.
func InputDate(s string) string {
	t, ok := parseDate(strings.TrimSpace(s))
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

func Hours(h float64) string {
	return fmt.Sprintf("%.1f", h)
}

// Percent scales v against top for chart bar widths, 0-100.
func Percent(v, top float64) float64 {
	if top <= 0 || v <= 0 {
		return 0
	}
	p := v / top * 100
	if p > 100 {
		return 100
	}
	return p
}
