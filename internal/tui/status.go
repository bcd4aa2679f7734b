package tui

import (
	"fmt"
	"strings"
)

// Canonical short status messages used across the app.
const (
	MsgLoading       = "Loading your messages..."
	MsgRefreshing    = "Refreshing…"
	MsgLoadingSlack  = "Loading Slack messages…"
	MsgLoggingOut    = "Logging out…"
	MsgRendering     = "Rendering summaries…"
	MsgNoChannels    = "No Slack channels available"
	MsgSelectChannel = "Select a channel with c"
)

// Placeholders for absent fields and empty lists.
const (
	PlaceholderSubject      = "No Subject"
	PlaceholderEmailSummary = "No summary available"
	PlaceholderMsgSummary   = "No Summary"
	PlaceholderDailySummary = "No summary available."
	PlaceholderNoUrgent     = "No urgent emails."
	PlaceholderNoMid        = "No mid-priority emails."
	PlaceholderNoLow        = "No low-priority emails."
	PlaceholderNoSlack      = "No Slack messages found."
	PlaceholderNoTelegram   = "No Telegram messages found."
)

func MsgThemeSwitched(name string) string {
	return fmt.Sprintf("Theme: %s", name)
}

func MsgDismissed(subject string) string {
	return fmt.Sprintf("Dismissed '%s'", strings.TrimSpace(subject))
}

func MsgChannelSelected(name string) string {
	return fmt.Sprintf("Channel: #%s", strings.TrimPrefix(strings.TrimSpace(name), "#"))
}

func MsgLoadedCounts(emails, slack, telegram int) string {
	return fmt.Sprintf("Loaded: %d emails • %d slack • %d telegram", emails, slack, telegram)
}

func MsgResultsCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}
