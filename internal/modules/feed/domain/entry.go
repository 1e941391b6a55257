package domain

import "time"

// ISODateLayout renders timestamps the way the novelty cache stores them:
// UTC with millisecond precision and a literal Z suffix.
const ISODateLayout = "2006-01-02T15:04:05.000Z"

// Entry is the most recent item of the watched feed
type Entry struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	ISODate string `json:"isoDate"`
	Summary string `json:"summary"`
}

// FormatISODate formats t with ISODateLayout after converting it to UTC.
func FormatISODate(t time.Time) string {
	return t.UTC().Format(ISODateLayout)
}
