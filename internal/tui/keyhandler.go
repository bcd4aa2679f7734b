package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/brief/internal/config"
	"github.com/pders01/brief/internal/debuglog"
)

type KeyHandler struct {
	app         *App
	config      *config.Config
	bind        config.KeyBindings
	modifierKey string
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	modifierKey := cfg.Keys.Modifier + "+"
	return &KeyHandler{app: app, config: cfg, bind: cfg.Keys.Bindings, modifierKey: modifierKey}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	if model, cmd, handled := kh.handleCustomKeys(key); handled {
		return model, cmd
	}

	return kh.delegateToCharm(msg)
}

func (kh *KeyHandler) isInTextInputMode() bool {
	switch kh.app.view {
	case ViewDashboard:
		return kh.app.searchInput.Focused()
	case ViewChannels:
		return kh.app.channelList.FilterState() == list.Filtering
	default:
		return false
	}
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if kh.app.view == ViewChannels {
		// The list owns its filter prompt, including esc and enter.
		var cmd tea.Cmd
		kh.app.channelList, cmd = kh.app.channelList.Update(msg)
		return kh.app, cmd
	}

	switch msg.String() {
	case "ctrl+c":
		return kh.app, tea.Quit
	case "esc":
		kh.app.searchInput.Reset()
		kh.app.searchInput.Blur()
		kh.app.applySearch("")
		return kh.app, nil
	case "enter":
		kh.app.searchInput.Blur()
		return kh.app, nil
	default:
		return kh.delegateToTextInput(msg)
	}
}

// delegateToTextInput passes the key to the search input and applies the
// new query to the active pane.
func (kh *KeyHandler) delegateToTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prev := kh.app.searchInput.Value()
	newSearchInput, cmd := kh.app.searchInput.Update(msg)
	kh.app.searchInput = newSearchInput

	if kh.app.searchInput.Value() != prev {
		kh.app.applySearch(kh.app.searchInput.Value())
	}
	return kh.app, cmd
}

// handleCustomKeys handles only our custom action keys
func (kh *KeyHandler) handleCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	// Global custom keys
	switch key {
	case "ctrl+c", kh.bind.Quit:
		return kh.app, tea.Quit, true
	case kh.bind.Back:
		model, cmd := kh.navigateBack()
		return model, cmd, true
	case kh.modifierKey + kh.bind.Refresh:
		kh.app.setStatus(MsgRefreshing, StatusInfo)
		return kh.app, kh.app.loadInitial(), true
	case kh.modifierKey + kh.bind.Logout:
		kh.app.setStatus(MsgLoggingOut, StatusInfo)
		return kh.app, kh.app.logout(), true
	case kh.modifierKey + kh.bind.ToggleTheme:
		kh.toggleTheme()
		return kh.app, nil, true
	}

	// View-specific custom keys
	switch kh.app.view {
	case ViewDashboard:
		return kh.handleDashboardCustomKeys(key)
	case ViewChannels:
		return kh.handleChannelsCustomKeys(key)
	case ViewTriage:
		return kh.handleTriageCustomKeys(key)
	default:
		return kh.app, nil, false
	}
}

func (kh *KeyHandler) handleDashboardCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "tab":
		kh.app.pane = kh.app.pane.next()
		return kh.app, nil, true
	case "shift+tab":
		kh.app.pane = kh.app.pane.prev()
		return kh.app, nil, true
	case "up", "k":
		kh.app.scrollBy(-1)
		return kh.app, nil, true
	case "down", "j":
		kh.app.scrollBy(1)
		return kh.app, nil, true
	case kh.bind.Search:
		kh.app.focusSearch()
		return kh.app, nil, true
	case kh.bind.Channels:
		if len(kh.app.store.State().Slack.Channels) == 0 {
			kh.app.setStatus(MsgNoChannels, StatusWarn)
			return kh.app, nil, true
		}
		kh.app.openView(ViewChannels)
		return kh.app, nil, true
	case kh.bind.Triage:
		kh.app.triageCursor = 0
		kh.app.resetSwipe()
		kh.app.openView(ViewTriage)
		return kh.app, nil, true
	case kh.bind.Summaries:
		kh.app.openView(ViewSummary)
		kh.app.rendering = true
		kh.app.setStatus(MsgRendering, StatusInfo)
		return kh.app, kh.app.renderSummaries(), true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleChannelsCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	if key != "enter" {
		return kh.app, nil, false
	}
	item, ok := kh.app.channelList.SelectedItem().(channelItem)
	if !ok {
		return kh.app, nil, true
	}
	kh.app.view = ViewDashboard
	kh.app.pane = PaneSlack
	kh.app.scroll[PaneSlack] = 0
	cmd := kh.app.selectChannel(item.channel.ID)
	if cmd != nil {
		kh.app.setStatus(MsgChannelSelected(item.channel.Name), StatusInfo)
	}
	return kh.app, cmd, true
}

func (kh *KeyHandler) handleTriageCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "up", "k":
		if kh.app.triageCursor > 0 {
			kh.app.triageCursor--
		}
		kh.app.resetSwipe()
		return kh.app, nil, true
	case "down", "j":
		if kh.app.triageCursor < triageLen(kh.app.store.State().Triage)-1 {
			kh.app.triageCursor++
		}
		kh.app.resetSwipe()
		return kh.app, nil, true
	case "right", "l":
		kh.app.nudgeSelected()
		return kh.app, nil, true
	case "left", "h":
		kh.app.resetSwipe()
		return kh.app, nil, true
	}
	return kh.app, nil, false
}

// toggleTheme switches palettes right away. A failed save only costs the
// persisted choice.
func (kh *KeyHandler) toggleTheme() {
	next, err := kh.app.themes.Toggle()
	if err != nil {
		debuglog.WithFields(map[string]interface{}{
			"component": "tui",
			"theme":     next.String(),
			"error":     err.Error(),
		}).Warnf("theme preference not saved")
		kh.app.setStatus(MsgThemeSwitched(next.String())+" (not saved)", StatusWarn)
		return
	}
	kh.app.setStatus(MsgThemeSwitched(next.String()), StatusInfo)
}

// delegateToCharm lets Charm handle all keys we don't intercept
func (kh *KeyHandler) delegateToCharm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch kh.app.view {
	case ViewChannels:
		kh.app.channelList, cmd = kh.app.channelList.Update(msg)
		return kh.app, cmd

	case ViewSummary:
		kh.app.viewport, cmd = kh.app.viewport.Update(msg)
		return kh.app, cmd

	default:
		return kh.app, nil
	}
}

// navigateBack returns to the dashboard from any overlay view. On the
// dashboard it clears the active pane's search.
func (kh *KeyHandler) navigateBack() (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewChannels, ViewTriage, ViewSummary:
		kh.app.resetSwipe()
		kh.app.view = kh.app.previousView
		return kh.app, nil

	default:
		if kh.app.searchQuery() != "" {
			kh.app.searchInput.Reset()
			kh.app.applySearch("")
		}
		return kh.app, nil
	}
}

// GetHelpForCurrentView returns only our custom help text (Charm handles the rest)
func (kh *KeyHandler) GetHelpForCurrentView() []string {
	global := []string{
		kh.modifierKey + kh.bind.Refresh + ": refresh",
		kh.modifierKey + kh.bind.Logout + ": logout",
		kh.modifierKey + kh.bind.ToggleTheme + ": theme",
	}

	switch kh.app.view {
	case ViewDashboard:
		if kh.app.searchInput.Focused() {
			return []string{"enter: keep", "esc: clear"}
		}
		help := []string{
			"tab: pane",
			kh.bind.Search + ": search",
			kh.bind.Channels + ": channel",
			kh.bind.Triage + ": triage",
			kh.bind.Summaries + ": summaries",
		}
		return append(append(help, global...), kh.bind.Quit+": quit")

	case ViewChannels:
		return []string{"enter: select", kh.bind.Back + ": back"}

	case ViewTriage:
		return []string{"→/l: swipe", "←/h: reset", kh.bind.Back + ": back"}

	case ViewSummary:
		return []string{"↑↓: scroll", kh.bind.Back + ": back"}

	default:
		return []string{}
	}
}
