package timefmt

import (
	"strings"
	"time"
)

// ShortDur shortens the string form of a time.Duration, dropping zero-valued
// trailing units ("1m0s" -> "1m"). Used for step durations in logs and reports.
func ShortDur(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	s := d.String()
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return s
}
