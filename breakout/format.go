package breakout

import (
	"fmt"
	"time"
)

// FormatTime renders t in local time as 2006-01-02 15:04:05.
func FormatTime(t time.Time) string {
	return t.Local().Format(time.DateTime)
}

// FormatDuration renders d as HH:MM:SS.mmm. Hours are not wrapped at 24 and
// negative durations format as zero.
func FormatDuration(d time.Duration) string {
	d = max(d, 0).Truncate(time.Millisecond)

	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	millis := d / time.Millisecond

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}
