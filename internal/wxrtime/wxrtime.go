// Package wxrtime normalizes the date representations used by the two
// export formats: naive WXR timestamps, RFC-822 pubDates, and the canonical
// ISO-8601 millisecond form.
package wxrtime

import (
	"regexp"
	"strconv"
	"time"
)

const (
	// LayoutWXR is the zero-padded naive timestamp emitted into WXR fields.
	LayoutWXR = "2006-01-02 15:04:05"
	// LayoutISO is the canonical export timestamp: UTC, millisecond precision.
	LayoutISO = "2006-01-02T15:04:05.000Z"
	// LayoutPubDate is the RFC-822 style form used by RSS pubDate elements.
	LayoutPubDate = "Mon, 02 Jan 2006 15:04:05 -0700"
)

// wxrPattern tolerates unpadded month/day/time fields; real-world exports
// are not consistent about zero padding.
var wxrPattern = regexp.MustCompile(`(\d{4})-(\d+)-(\d+) (\d+):(\d+):(\d+)`)

// pubDateLayouts covers the RFC-822 variants seen in the wild: numeric or
// named zones, with or without the weekday prefix.
var pubDateLayouts = []string{
	LayoutPubDate,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 02 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700",
	time.RFC3339,
}

// ParseWXR interprets a WXR post-date string as a UTC instant. Timezone
// markers elsewhere in the document are deliberately ignored: the naive
// string is taken verbatim as UTC.
func ParseWXR(value string) (time.Time, bool) {
	m := wxrPattern.FindStringSubmatch(value)
	if m == nil {
		return ParsePubDate(value)
	}
	year := atoi(m[1])
	month := atoi(m[2])
	day := atoi(m[3])
	hour := atoi(m[4])
	minute := atoi(m[5])
	second := atoi(m[6])
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC), true
}

// ParsePubDate parses an RFC-822 style date, normalizing to UTC.
func ParsePubDate(value string) (time.Time, bool) {
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatWXR renders t in the naive WXR convention, zero padded, no zone.
func FormatWXR(t time.Time) string {
	return t.UTC().Format(LayoutWXR)
}

// FormatISO renders t in the canonical millisecond ISO-8601 form.
func FormatISO(t time.Time) string {
	return t.UTC().Format(LayoutISO)
}

// FormatPubDate renders t as an RSS pubDate.
func FormatPubDate(t time.Time) string {
	return t.UTC().Format(LayoutPubDate)
}

// EpochMillis converts t to the millisecond epoch used by export metadata.
func EpochMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

// ParseISO parses the canonical ISO-8601 form, tolerating second precision.
func ParseISO(value string) (time.Time, bool) {
	if t, err := time.Parse(LayoutISO, value); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

func atoi(value string) int {
	n, _ := strconv.Atoi(value)
	return n
}
