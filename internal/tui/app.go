package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/brief/internal/api"
	"github.com/pders01/brief/internal/config"
	"github.com/pders01/brief/internal/dashboard"
	"github.com/pders01/brief/internal/theme"
)

// wideLayoutWidth is the terminal width from which the three panes are shown
// side by side.
const wideLayoutWidth = 100

const (
	defaultWidth  = 80
	defaultHeight = 24
)

type App struct {
	config       *config.Config
	store        *dashboard.Store
	themes       *theme.Manager
	keyHandler   *KeyHandler
	channelList  list.Model
	searchInput  textinput.Model
	viewport     viewport.Model
	spinner      spinner.Model
	view         View
	previousView View
	pane         Pane
	scroll       [paneCount]int
	swipe        swipeState
	triageCursor int
	triageScroll int
	triageHits   []cardHit
	width        int
	height       int
	loaded       bool // first load applied
	rendering    bool // summaries render in flight
	err          error
	status       string
	statusKind   StatusKind

	renderer      *glamour.TermRenderer
	rendererWidth int
	rendererStyle string

	ctx         context.Context
	cancel      context.CancelFunc
	loadCancel  context.CancelFunc
	slackCancel context.CancelFunc
	loadSeq     uint64
}

func NewApp(store *dashboard.Store, themes *theme.Manager, cfg *config.Config) *App {
	channelList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	channelList.Title = "› slack channels"
	channelList.SetShowStatusBar(false)
	channelList.SetFilteringEnabled(true)
	channelList.SetShowHelp(true)

	si := textinput.New()
	si.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		config:       cfg,
		store:        store,
		themes:       themes,
		channelList:  channelList,
		searchInput:  si,
		viewport:     viewport.New(0, 0),
		spinner:      sp,
		view:         ViewDashboard,
		previousView: ViewDashboard,
		pane:         PaneEmail,
		ctx:          ctx,
		cancel:       cancel,
	}

	app.keyHandler = NewKeyHandler(app, cfg)

	themes.SetApply(func(_ theme.Theme, p theme.Palette) {
		ApplyPalette(p)
		app.channelList.Styles.Title = TitleStyle
		app.spinner.Style = lipgloss.NewStyle().Foreground(AccentColor)
		app.renderer = nil
	})

	return app
}

// Shutdown cancels every request still in flight.
func (a *App) Shutdown() {
	a.cancel()
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		a.loadInitial(),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.channelList.SetSize(msg.Width, msg.Height-3)
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - 3

		inputWidth := msg.Width - 8
		if inputWidth < 10 {
			inputWidth = msg.Width
		}
		a.searchInput.Width = inputWidth
		if a.view == ViewSummary {
			return a, a.renderSummaries()
		}

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case initialLoadedMsg:
		if msg.seq != a.loadSeq {
			return a, nil
		}
		if a.loadCancel != nil {
			a.loadCancel()
			a.loadCancel = nil
		}
		a.loaded = true
		notice := a.store.ApplyInitial(msg.res)
		a.setChannelItems()
		if n := triageLen(a.store.State().Triage); a.triageCursor >= n {
			a.triageCursor = max(0, n-1)
		}
		if notice.IsZero() {
			state := a.store.State()
			emails := len(state.Emails.Urgent) + len(state.Emails.Mid) + len(state.Emails.Low)
			a.setStatus(MsgLoadedCounts(emails, len(state.Slack.Messages), len(state.Telegram.Messages)), StatusSuccess)
		} else {
			a.setStatus(notice.Text, statusKindFor(notice.Severity))
		}
		if a.view == ViewSummary {
			return a, a.renderSummaries()
		}

	case slackLoadedMsg:
		if a.store.ApplySlack(msg.res) {
			a.scroll[PaneSlack] = 0
			if a.view == ViewSummary {
				return a, a.renderSummaries()
			}
		}

	case logoutDoneMsg:
		a.setStatus(msg.notice.Text, statusKindFor(msg.notice.Severity))

	case summaryRenderedMsg:
		if a.view == ViewSummary {
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
		}
		a.rendering = false
		if a.status == MsgRendering {
			a.setStatus("", StatusInfo)
		}

	case errorMsg:
		a.err = msg.err
	}

	return a, nil
}

func (a *App) setStatus(text string, kind StatusKind) {
	a.status = text
	a.statusKind = kind
	a.err = nil
}

func (a *App) openView(v View) {
	a.previousView = a.view
	a.view = v
}

func (a *App) scrollBy(delta int) {
	a.scroll[a.pane] = max(0, a.scroll[a.pane]+delta)
}

func (a *App) setChannelItems() {
	channels := a.store.State().Slack.Channels
	items := make([]list.Item, len(channels))
	for i, ch := range channels {
		items[i] = channelItem{channel: ch}
	}
	a.channelList.SetItems(items)
}

func (a *App) searchQuery() string {
	state := a.store.State()
	switch a.pane {
	case PaneSlack:
		return state.Slack.Search
	case PaneTelegram:
		return state.Telegram.Search
	default:
		return state.Emails.Search
	}
}

func (a *App) focusSearch() {
	a.searchInput.Placeholder = "Search " + a.pane.Section().String() + "..."
	a.searchInput.SetValue(a.searchQuery())
	a.searchInput.CursorEnd()
	a.searchInput.Focus()
}

// applySearch stores q for the active pane and reports the match count.
func (a *App) applySearch(q string) {
	stored := a.store.SetSearch(a.pane.Section(), q)
	a.scroll[a.pane] = 0
	if stored == "" {
		a.setStatus("", StatusInfo)
		return
	}
	a.setStatus(MsgResultsCount(a.resultCount()), StatusInfo)
}

func (a *App) resultCount() int {
	state := a.store.State()
	switch a.pane {
	case PaneSlack:
		return len(state.FilteredSlack())
	case PaneTelegram:
		return len(state.FilteredTelegram())
	default:
		urgent, mid, low := state.FilteredEmails()
		return len(urgent) + len(mid) + len(low)
	}
}

func (a *App) size() (int, int) {
	w, h := a.width, a.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (a *App) View() string {
	w, h := a.size()
	contentHeight := h - 2
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch a.view {
	case ViewDashboard:
		if !a.loaded {
			content = renderCentered(w, contentHeight, GetLoadingMessage(a.spinner.View()))
		} else {
			content = a.renderDashboard(w, contentHeight)
		}
	case ViewChannels:
		content = a.channelList.View()
	case ViewTriage:
		content = a.renderTriage(w, contentHeight)
	case ViewSummary:
		if a.rendering {
			content = renderCentered(w, contentHeight, renderMuted(a.spinner.View()+" "+MsgRendering))
		} else {
			content = a.viewport.View()
		}
	}
	content = ContentWrapper(w, contentHeight).Render(content)

	customStatus := a.getCustomStatusBar(w)
	if customStatus != "" {
		separatorWidth := w - 2
		if separatorWidth < 0 {
			separatorWidth = 0
		}
		separator := SeparatorStyle.Render("─" + strings.Repeat("─", separatorWidth))

		return lipgloss.JoinVertical(lipgloss.Top, content, separator, customStatus)
	}

	return content
}

func (a *App) renderTabs(width int) string {
	tabs := []string{LogoStyle.Render(CompactLogo)}
	for p := PaneEmail; p < paneCount; p++ {
		label := padRight(" "+p.Section().String(), 10)
		if p == a.pane {
			tabs = append(tabs, ActiveHeaderStyle.Render(label))
		} else {
			tabs = append(tabs, renderMuted(label))
		}
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(tabs, "  "))
}

func (a *App) renderDashboard(w, h int) string {
	state := a.store.State()
	rows := []string{a.renderTabs(w)}

	if a.searchInput.Focused() {
		rows = append(rows, renderInputFrame(a.searchInput.View(), true, w-8))
	} else if q := a.searchQuery(); q != "" {
		rows = append(rows, renderMuted(truncateEnd(fmt.Sprintf("search: %s • %s", q, MsgResultsCount(a.resultCount())), w)))
	}

	slackTitle := "Slack Daily Summary"
	slackSummary := state.Slack.DailySummary
	if state.Slack.Selected == "" {
		slackSummary = MsgSelectChannel
	} else {
		slackTitle += " (#" + strings.TrimPrefix(state.SelectedChannelName(), "#") + ")"
	}
	strip := []string{
		renderSummaryStrip("Telegram Daily Summary", state.Telegram.DailySummary, w),
		renderSummaryStrip(slackTitle, slackSummary, w),
	}

	chrome := lipgloss.Height(strings.Join(rows, "\n")) + len(strip)
	paneHeight := h - chrome
	if paneHeight < 3 {
		paneHeight = 3
	}

	var panes string
	if w >= wideLayoutWidth {
		colWidth := w / int(paneCount)
		cols := make([]string, 0, paneCount)
		for p := PaneEmail; p < paneCount; p++ {
			cols = append(cols, a.renderPane(state, p, colWidth, paneHeight))
		}
		panes = lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	} else {
		panes = a.renderPane(state, a.pane, w, paneHeight)
	}

	rows = append(rows, panes)
	rows = append(rows, strip...)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) renderPane(state dashboard.State, p Pane, w, h int) string {
	var title, body string
	inner := w - 1

	switch p {
	case PaneEmail:
		title = "Emails (Last 24 hours)"
		urgent, mid, low := state.FilteredEmails()
		body = lipgloss.JoinVertical(lipgloss.Left,
			renderEmailTier("🚨 Urgent Emails", UrgentHeaderStyle, urgent, PlaceholderNoUrgent, inner),
			renderEmailTier("⚠️ Mid Priority Emails", MidHeaderStyle, mid, PlaceholderNoMid, inner),
			renderEmailTier("📩 Low Priority Emails", LowHeaderStyle, low, PlaceholderNoLow, inner),
		)
	case PaneSlack:
		switch {
		case state.Slack.Selected == "":
			title = "Slack"
			body = renderMuted("Select a Channel...") + "\n" + renderHelp(MsgSelectChannel)
		case state.Slack.Loading:
			title = "Slack #" + strings.TrimPrefix(state.SelectedChannelName(), "#")
			body = renderMuted(a.spinner.View() + " " + MsgLoadingSlack)
		default:
			title = "Slack #" + strings.TrimPrefix(state.SelectedChannelName(), "#")
			body = renderMessageList(state.FilteredSlack(), PlaceholderNoSlack, inner)
		}
	case PaneTelegram:
		title = "Telegram (Business Group)"
		body = renderMessageList(state.FilteredTelegram(), PlaceholderNoTelegram, inner)
	}

	headerStyle := HeaderStyle
	if p == a.pane {
		headerStyle = ActiveHeaderStyle
	}
	header := headerStyle.Render(truncateMiddle(title, inner-2))

	clipped, offset := clipLines(body, a.scroll[p], h-1)
	a.scroll[p] = offset
	return ContentWrapper(w, h).Render(lipgloss.JoinVertical(lipgloss.Left, header, clipped))
}

// renderTriage lays out both triage tiers, keeps the selected card on
// screen and records where each card landed for mouse hit tests.
func (a *App) renderTriage(w, h int) string {
	tr := a.store.State().Triage
	var blocks []string
	var hits []cardHit
	y := 0

	add := func(block string) {
		blocks = append(blocks, block)
		y += lipgloss.Height(block)
	}
	tier := func(t dashboard.Tier, title string, style lipgloss.Style, msgs []api.Message, base int, placeholder string) {
		add(style.Render(truncateEnd(title, w)))
		if len(msgs) == 0 {
			add(renderMuted(placeholder))
			return
		}
		for i, m := range msgs {
			offset := 0
			if a.swipe.on(t, m.ID) {
				offset = min(a.swipe.offset, w/2)
			}
			card := renderEmailCard(m, w, base+i == a.triageCursor, offset)
			height := lipgloss.Height(card)
			hits = append(hits, cardHit{tier: t, id: m.ID, index: base + i, top: y, bottom: y + height - 1})
			add(card)
		}
	}

	tier(dashboard.TierUrgent, "Urgent Emails (Swipe right to remove)", UrgentHeaderStyle, tr.Urgent, 0, PlaceholderNoUrgent)
	tier(dashboard.TierMid, "Mid Priority Emails (Swipe right to remove)", MidHeaderStyle, tr.Mid, len(tr.Urgent), PlaceholderNoMid)

	offset := a.triageScroll
	for _, hit := range hits {
		if hit.index != a.triageCursor {
			continue
		}
		if hit.top < offset {
			offset = hit.top
		}
		if hit.bottom >= offset+h {
			offset = hit.bottom - h + 1
		}
	}

	clipped, offset := clipLines(lipgloss.JoinVertical(lipgloss.Left, blocks...), offset, h)
	a.triageScroll = offset
	for i := range hits {
		hits[i].top -= offset
		hits[i].bottom -= offset
	}
	a.triageHits = hits
	return clipped
}

func (a *App) getCustomStatusBar(width int) string {
	commands := a.keyHandler.GetHelpForCurrentView()

	if len(commands) == 0 {
		return ""
	}

	if a.err != nil {
		errorMsg := StatusErrorStyle.Render(truncateEnd(fmt.Sprintf("✗ %v", a.err), width-2))

		return StatusBarStyle.Width(width).Render(errorMsg)
	}

	commandText := strings.Join(commands, " • ")
	line := renderMuted(truncateEnd(commandText, width-2))
	if a.status != "" {
		status := truncateEnd(a.status, width-2)
		rest := width - 2 - lipgloss.Width(status) - 3
		line = StatusStyle(a.statusKind).Render(status)
		if rest > 10 {
			line += renderMuted(" • " + truncateEnd(commandText, rest))
		}
	}

	return StatusBarStyle.Width(width).Render(line)
}

type channelItem struct {
	channel api.Channel
}

func (i channelItem) Title() string       { return "#" + strings.TrimPrefix(i.channel.Name, "#") }
func (i channelItem) Description() string { return i.channel.ID }
func (i channelItem) FilterValue() string { return i.channel.Name }
