package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/pders01/brief/internal/api"
)

func TestRenderEmailCard(t *testing.T) {
	card := renderEmailCard(api.Message{ID: "1"}, 60, false, 0)
	assert.Contains(t, card, PlaceholderSubject)
	assert.Contains(t, card, PlaceholderEmailSummary)
	assert.NotContains(t, card, "Quick Reply")

	card = renderEmailCard(api.Message{ID: "1", Subject: str("Invoice"), QuickReply: str("Paid, thanks")}, 60, false, 0)
	assert.Contains(t, card, "Invoice")
	assert.Contains(t, card, "Quick Reply: Paid, thanks")

	empty := renderEmailCard(api.Message{ID: "1", QuickReply: str("")}, 60, false, 0)
	assert.NotContains(t, empty, "Quick Reply")

	blank := renderEmailCard(api.Message{ID: "1", QuickReply: str("   ")}, 60, false, 0)
	assert.Contains(t, blank, "Quick Reply:")
}

func TestRenderEmailCard_OffsetKeepsWidth(t *testing.T) {
	m := api.Message{ID: "1", Subject: str("Outage")}
	plain := renderEmailCard(m, 50, false, 0)
	shifted := renderEmailCard(m, 50, true, 6)

	assert.Equal(t, 50, lipgloss.Width(plain))
	assert.Equal(t, 50, lipgloss.Width(shifted))
	assert.True(t, strings.HasPrefix(strings.Split(shifted, "\n")[0], "      "))
}

func TestRenderMessageCard(t *testing.T) {
	card := renderMessageCard(api.Message{ID: "m"}, 60)
	assert.Contains(t, card, PlaceholderMsgSummary)
	assert.NotContains(t, card, "Sender:")
	assert.NotContains(t, card, "Original:")

	card = renderMessageCard(api.Message{ID: "m", Sender: str("ana"), Summary: str("moved"), Text: str("standup at 10")}, 60)
	assert.Contains(t, card, "Sender: ")
	assert.Contains(t, card, "ana")
	assert.Contains(t, card, "moved")
	assert.Contains(t, card, "Original: standup at 10")
}

func TestRenderCardList_Placeholder(t *testing.T) {
	assert.Contains(t, renderMessageList(nil, PlaceholderNoSlack, 40), PlaceholderNoSlack)
	assert.Contains(t, renderEmailTier("Urgent", UrgentHeaderStyle, []api.Message{}, PlaceholderNoUrgent, 40), PlaceholderNoUrgent)
}

func TestRenderSummaryStrip(t *testing.T) {
	assert.Contains(t, renderSummaryStrip("Telegram Daily Summary", "  ", 80), PlaceholderDailySummary)
	assert.Contains(t, renderSummaryStrip("Telegram Daily Summary", "line one\nline two", 80), "line one line two")
}

func TestClipLines(t *testing.T) {
	content := "a\nb\nc\nd\ne"

	got, off := clipLines(content, 0, 2)
	assert.Equal(t, "a\nb", got)
	assert.Equal(t, 0, off)

	got, off = clipLines(content, 10, 2)
	assert.Equal(t, "d\ne", got, "offset past the end shows the last page")
	assert.Equal(t, 3, off)

	got, off = clipLines(content, -4, 10)
	assert.Equal(t, content, got)
	assert.Equal(t, 0, off)
}
