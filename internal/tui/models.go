package tui

import "github.com/pders01/brief/internal/dashboard"

type View int

const (
	ViewDashboard View = iota
	ViewChannels
	ViewTriage
	ViewSummary
)

// Pane is one of the three dashboard columns.
type Pane int

const (
	PaneEmail Pane = iota
	PaneSlack
	PaneTelegram
	paneCount
)

func (p Pane) Section() dashboard.Section {
	switch p {
	case PaneSlack:
		return dashboard.SectionSlack
	case PaneTelegram:
		return dashboard.SectionTelegram
	default:
		return dashboard.SectionEmail
	}
}

func (p Pane) next() Pane {
	return (p + 1) % paneCount
}

func (p Pane) prev() Pane {
	return (p + paneCount - 1) % paneCount
}
