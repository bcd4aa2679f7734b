package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/brief/internal/config"
	"github.com/pders01/brief/internal/dashboard"
	"github.com/pders01/brief/internal/theme"
)

func TestKeyHandler_ModifierKey(t *testing.T) {
	app, _ := newTestApp(t, &fakeFetcher{})

	assert.NotNil(t, app.keyHandler)
	assert.Equal(t, "ctrl+", app.keyHandler.modifierKey)
}

func TestKeyHandler_CustomModifier(t *testing.T) {
	cfg := config.TestConfig()
	cfg.Keys.Modifier = "alt"

	palettes, err := theme.LoadPalettes(config.ThemeColors{})
	require.NoError(t, err)
	themes := theme.NewManager(nil, palettes, theme.WithDetector(func() bool { return true }))
	app := NewApp(dashboard.NewStore(&fakeFetcher{}), themes, cfg)
	t.Cleanup(app.Shutdown)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Nil(t, cmd, "ctrl+r is not bound when the modifier is alt")
	assert.Zero(t, app.loadSeq)

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r"), Alt: true})
	assert.NotNil(t, cmd)
	assert.Equal(t, uint64(1), app.loadSeq)
	assert.Equal(t, MsgRefreshing, app.status)
}

func TestKeyHandler_Quit(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		app, _ := newTestApp(t, &fakeFetcher{})
		_, cmd := app.Update(key)
		require.NotNil(t, cmd, key.String())
		assert.Equal(t, tea.Quit(), cmd(), key.String())
	}
}

func TestKeyHandler_QuitIsTextWhileSearching(t *testing.T) {
	app, _ := newTestApp(t, &fakeFetcher{})
	load(t, app)

	press(app, "/")
	press(app, "q")
	assert.Equal(t, "q", app.store.State().Emails.Search)
}

func TestKeyHandler_PaneCycling(t *testing.T) {
	app, _ := newTestApp(t, &fakeFetcher{})

	press(app, "tab")
	assert.Equal(t, PaneSlack, app.pane)
	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, PaneTelegram, app.pane)
}

func TestKeyHandler_EscClearsDashboardSearch(t *testing.T) {
	app, _ := newTestApp(t, &fakeFetcher{})
	load(t, app)

	press(app, "/")
	press(app, "urgent")
	press(app, "enter")
	require.Equal(t, "urgent", app.store.State().Emails.Search)

	press(app, "esc")
	assert.Equal(t, ViewDashboard, app.view)
	assert.Empty(t, app.store.State().Emails.Search)
}

func TestKeyHandler_TriageCursor(t *testing.T) {
	app := triageApp(t)

	press(app, "j")
	press(app, "j")
	press(app, "j")
	assert.Equal(t, 2, app.triageCursor, "cursor stops at the last card")

	press(app, "right")
	assert.True(t, app.swipe.on(dashboard.TierMid, "3"))
	press(app, "k")
	assert.Equal(t, 1, app.triageCursor)
	assert.False(t, app.swipe.active, "moving the cursor drops a partial swipe")
}

func TestKeyHandler_GetHelpForCurrentView(t *testing.T) {
	app, _ := newTestApp(t, &fakeFetcher{})

	tests := []struct {
		view View
		want []string
	}{
		{ViewDashboard, []string{"/: search", "c: channel", "t: triage", "d: summaries", "ctrl+r: refresh", "ctrl+l: logout", "ctrl+t: theme", "q: quit"}},
		{ViewChannels, []string{"enter: select", "esc: back"}},
		{ViewTriage, []string{"→/l: swipe", "←/h: reset", "esc: back"}},
		{ViewSummary, []string{"↑↓: scroll", "esc: back"}},
	}

	for _, tt := range tests {
		app.view = tt.view
		help := app.keyHandler.GetHelpForCurrentView()
		for _, want := range tt.want {
			assert.Contains(t, help, want)
		}
	}

	app.view = ViewDashboard
	app.searchInput.Focus()
	assert.Equal(t, []string{"enter: keep", "esc: clear"}, app.keyHandler.GetHelpForCurrentView())
}
