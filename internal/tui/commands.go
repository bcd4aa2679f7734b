package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/pders01/brief/internal/dashboard"
	"github.com/pders01/brief/internal/validation"
)

type initialLoadedMsg struct {
	seq uint64
	res dashboard.InitialResult
}

type slackLoadedMsg struct {
	res dashboard.SlackResult
}

type logoutDoneMsg struct {
	notice dashboard.Notice
}

type summaryRenderedMsg struct {
	content string
}

type errorMsg struct {
	err error
}

// loadInitial starts a full load for the selected channel. A load already in
// flight is cancelled and its result ignored.
func (a *App) loadInitial() tea.Cmd {
	a.store.BeginInitialLoad()
	if a.loadCancel != nil {
		a.loadCancel()
	}
	ctx, cancel := context.WithCancel(a.ctx)
	a.loadCancel = cancel
	a.loadSeq++
	seq := a.loadSeq

	store := a.store
	channelID := store.State().Slack.Selected
	return func() tea.Msg {
		return initialLoadedMsg{seq: seq, res: store.LoadInitial(ctx, channelID)}
	}
}

// selectChannel switches the Slack pane to id and loads it. Unchanged or
// empty selections return a nil command.
func (a *App) selectChannel(id string) tea.Cmd {
	id, err := validation.SanitizeChannelID(id)
	if err != nil {
		return func() tea.Msg { return errorMsg{err: wrapErr("select channel", err)} }
	}

	gen, changed := a.store.SelectChannel(id)
	if !changed {
		return nil
	}
	if a.slackCancel != nil {
		a.slackCancel()
	}
	ctx, cancel := context.WithCancel(a.ctx)
	a.slackCancel = cancel

	store := a.store
	return func() tea.Msg {
		return slackLoadedMsg{res: store.LoadSlack(ctx, id, gen)}
	}
}

func (a *App) logout() tea.Cmd {
	store := a.store
	ctx := a.ctx
	return func() tea.Msg {
		return logoutDoneMsg{notice: store.Logout(ctx)}
	}
}

// summaryMarkdown builds the daily summaries document.
func summaryMarkdown(state dashboard.State) string {
	orPlaceholder := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return PlaceholderDailySummary
		}
		return s
	}

	var b strings.Builder
	b.WriteString("# Daily summaries\n\n")
	b.WriteString("## Telegram\n\n")
	b.WriteString(orPlaceholder(state.Telegram.DailySummary))
	b.WriteString("\n\n")

	if state.Slack.Selected == "" {
		b.WriteString("## Slack\n\n")
		b.WriteString(MsgSelectChannel)
	} else {
		fmt.Fprintf(&b, "## Slack #%s\n\n", strings.TrimPrefix(state.SelectedChannelName(), "#"))
		b.WriteString(orPlaceholder(state.Slack.DailySummary))
	}
	b.WriteString("\n")
	return b.String()
}

func (a *App) renderSummaries() tea.Cmd {
	r, err := a.getRenderer()
	markdown := summaryMarkdown(a.store.State())
	return func() tea.Msg {
		if err != nil {
			return summaryRenderedMsg{content: "Error initializing renderer: " + err.Error() + "\n\n" + markdown}
		}
		rendered, err := r.Render(markdown)
		if err != nil {
			return summaryRenderedMsg{content: markdown}
		}
		return summaryRenderedMsg{content: rendered}
	}
}

// getRenderer returns a glamour renderer for the current width and theme,
// building a new one only when either changed noticeably.
func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	maxWidth := a.config.UI.Summary.WordWrapMaxWidth
	minWidth := a.config.UI.Summary.WordWrapMinWidth

	wordWrapWidth := (a.width * 9) / 10
	if maxWidth > 0 && wordWrapWidth > maxWidth {
		wordWrapWidth = maxWidth
	}
	if wordWrapWidth < minWidth {
		wordWrapWidth = minWidth
	}
	if a.width < 50 {
		wordWrapWidth = a.width - 4
		if wordWrapWidth < 20 {
			wordWrapWidth = 20
		}
	}

	style := a.themes.Palette().Glamour
	if a.renderer == nil || a.rendererStyle != style || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.renderer = r
		a.rendererWidth = wordWrapWidth
		a.rendererStyle = style
	}
	return a.renderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
