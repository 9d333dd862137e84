package utils

import "time"

const dateLayout = "2006-01-02"

func NowUnixSeconds() int64 { return time.Now().Unix() }

// ParseDate parses a YYYY-MM-DD request date. Returns zero time on empty input
// so callers can fall back to their own defaults.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// ExportFilename builds the timestamped download name for session exports,
// e.g. travel_match_20260830_1512.json
func ExportFilename(t time.Time, ext string) string {
	return "travel_match_" + t.Format("20060102_1504") + "." + ext
}
