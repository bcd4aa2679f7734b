package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/brief/internal/api"
)

// renderInputFrame draws a rounded bordered container around a rendered input view.
func renderInputFrame(inputView string, focused bool, contentWidth int) string {
	borderColor := MutedColor
	if focused {
		borderColor = AccentColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(contentWidth + 4).
		Render(inputView)
}

// renderCentered centers the provided content within the given width/height box.
func renderCentered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// renderMuted renders text in muted color (utility wrapper).
func renderMuted(text string) string {
	return lipgloss.NewStyle().Foreground(MutedColor).Render(text)
}

// renderHelp renders help/instructional text consistently.
func renderHelp(text string) string {
	return HelpStyle.Render(text)
}

func present(field *string) bool {
	return field != nil && *field != ""
}

// cardStyle sizes a card so that, border included, it spans width cells
// after being shifted offset cells to the right.
func cardStyle(width int, selected bool, offset int) lipgloss.Style {
	style := CardStyle
	if selected {
		style = SelectedCardStyle
	}
	inner := width - 2 - offset
	if inner < 8 {
		inner = 8
	}
	return style.Width(inner).MarginLeft(offset)
}

// renderEmailCard shows subject, summary and the optional quick reply.
func renderEmailCard(m api.Message, width int, selected bool, offset int) string {
	lines := []string{
		CardTitleStyle.Render(m.SubjectOr(PlaceholderSubject)),
		m.SummaryOr(PlaceholderEmailSummary),
	}
	if present(m.QuickReply) {
		lines = append(lines, CardMetaStyle.Render("Quick Reply: "+*m.QuickReply))
	}
	return cardStyle(width, selected, offset).Render(strings.Join(lines, "\n"))
}

// renderMessageCard shows a Slack or Telegram message.
func renderMessageCard(m api.Message, width int) string {
	var lines []string
	if present(m.Sender) {
		lines = append(lines, CardMetaStyle.Render("Sender: ")+*m.Sender)
	}
	lines = append(lines, CardTitleStyle.Render(m.SummaryOr(PlaceholderMsgSummary)))
	if present(m.Text) {
		lines = append(lines, CardMetaStyle.Render("Original: "+*m.Text))
	}
	return cardStyle(width, false, 0).Render(strings.Join(lines, "\n"))
}

// renderCardList renders each card or, for an empty list, the placeholder.
func renderCardList(cards []string, placeholder string) string {
	if len(cards) == 0 {
		return renderMuted(placeholder)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderEmailTier(title string, style lipgloss.Style, list []api.Message, placeholder string, width int) string {
	cards := make([]string, 0, len(list))
	for _, m := range list {
		cards = append(cards, renderEmailCard(m, width, false, 0))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		style.Render(truncateEnd(title, width)),
		renderCardList(cards, placeholder),
	)
}

func renderMessageList(list []api.Message, placeholder string, width int) string {
	cards := make([]string, 0, len(list))
	for _, m := range list {
		cards = append(cards, renderMessageCard(m, width))
	}
	return renderCardList(cards, placeholder)
}

// renderSummaryStrip is the one-line daily summary shown under the panes.
func renderSummaryStrip(title, summary string, width int) string {
	if strings.TrimSpace(summary) == "" {
		summary = PlaceholderDailySummary
	}
	label := HeaderStyle.Render(title + ": ")
	rest := width - lipgloss.Width(label) - 2
	line := strings.Join(strings.Fields(summary), " ")
	return label + lipgloss.NewStyle().Foreground(TextColor).Render(truncateEnd(line, rest))
}

// clipLines returns at most height lines of content starting at offset. The
// offset is clamped so the last page stays full.
func clipLines(content string, offset, height int) (string, int) {
	lines := strings.Split(content, "\n")
	if height <= 0 {
		return "", 0
	}
	maxOffset := len(lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[offset:end], "\n"), offset
}
