package assistant

import "time"

// RefreshInterval is how often relative timestamps are redrawn.
const RefreshInterval = 30 * time.Second

// FormatTime renders a message timestamp relative to now.
func FormatTime(sent, now time.Time) string {
	if now.Sub(sent) < time.Minute {
		return "Just now"
	}
	return sent.Local().Format("03:04 PM")
}
