package console

import (
	"fmt"
	"time"
)

// FormatBytes converts a byte count to a short human-readable size.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %s", float64(n)/float64(div), []string{"KB", "MB", "GB", "TB", "PB", "EB"}[exp])
}

// FormatAge describes how long ago t was, e.g. "3 hours ago".
func FormatAge(t, now time.Time) string {
	d := now.Sub(t)
	plural := func(n int, word string) string {
		if n == 1 {
			return "1 " + word + " ago"
		}
		return fmt.Sprintf("%d %ss ago", n, word)
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	default:
		return plural(int(d.Hours()/24), "day")
	}
}
