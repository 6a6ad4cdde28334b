package assistant

import (
	"strings"

	"portfolio-backend/internal/services"
)

// Rendered is a message ready for display.
type Rendered struct {
	Text string
	// Download is set when the reply asked for the CV download button.
	Download bool
}

// Render strips the download control token from assistant messages. User
// messages are shown verbatim.
func Render(m Message) Rendered {
	if m.Role != RoleAssistant || !strings.Contains(m.Content, services.DownloadCVToken) {
		return Rendered{Text: m.Content}
	}
	return Rendered{
		Text:     strings.ReplaceAll(m.Content, services.DownloadCVToken, ""),
		Download: true,
	}
}
