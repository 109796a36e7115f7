package repository

import (
	"fmt"
	"time"
)

// ParseTime parses a date string in "2006-01-02", SQLite datetime, or
// RFC3339 format. SQLite stores DATE and TIMESTAMP columns as text; all
// three shapes show up depending on how the row was written.
func ParseTime(str string) (time.Time, error) {
	layouts := []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}
	for _, layout := range layouts {
		if returnTime, err := time.Parse(layout, str); err == nil {
			return returnTime.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}
