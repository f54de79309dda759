// Package timex provides time helpers shared by the store layer:
// a fixed textual timestamp format and a JSON-friendly Duration.
package timex

import "time"

// StampLayout is the textual format used for created_at/updated_at columns:
// UTC, second resolution.
const StampLayout = "2006-01-02 15:04:05"

// Stamp formats t in UTC using StampLayout.
func Stamp(t time.Time) string {
	return t.UTC().Format(StampLayout)
}

// Now returns the current time formatted with Stamp.
func Now() string {
	return Stamp(time.Now())
}

// ParseStamp parses a StampLayout timestamp back into a UTC time.Time.
func ParseStamp(s string) (time.Time, error) {
	return time.ParseInLocation(StampLayout, s, time.UTC)
}
