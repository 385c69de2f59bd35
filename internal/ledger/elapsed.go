package ledger

import (
	"fmt"
	"time"
)

const (
	UnknownElapsed = "unknown"
	dateLayout     = "02.01.2006"
)

// FormatElapsed describes how long ago ts (epoch milliseconds) was, relative to now.
// Within a day it is relative ("5 minutes ago"); older timestamps render as DD.MM.YYYY.
func FormatElapsed(ts *int64, now time.Time) string {
	if ts == nil {
		return UnknownElapsed
	}

	at := time.UnixMilli(*ts)
	diff := now.Sub(at)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff/time.Hour))
	default:
		return at.In(now.Location()).Format(dateLayout)
	}
}
