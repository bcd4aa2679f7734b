package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/brief/internal/api"
	"github.com/pders01/brief/internal/dashboard"
)

// swipeState tracks one card being dragged or nudged to the right.
type swipeState struct {
	active bool
	tier   dashboard.Tier
	id     api.ID
	startX int
	offset int
}

func (s swipeState) on(tier dashboard.Tier, id api.ID) bool {
	return s.active && s.tier == tier && s.id == id
}

// cardHit is the screen rows a rendered triage card occupies.
type cardHit struct {
	tier   dashboard.Tier
	id     api.ID
	index  int
	top    int
	bottom int
}

// triageItem resolves the flat triage cursor to a tier and message.
func triageItem(tr dashboard.Triage, index int) (dashboard.Tier, api.Message, bool) {
	if index < 0 {
		return 0, api.Message{}, false
	}
	if index < len(tr.Urgent) {
		return dashboard.TierUrgent, tr.Urgent[index], true
	}
	index -= len(tr.Urgent)
	if index < len(tr.Mid) {
		return dashboard.TierMid, tr.Mid[index], true
	}
	return 0, api.Message{}, false
}

func triageLen(tr dashboard.Triage) int {
	return len(tr.Urgent) + len(tr.Mid)
}

func (a *App) hitTest(y int) (cardHit, bool) {
	for _, h := range a.triageHits {
		if y >= h.top && y <= h.bottom {
			return h, true
		}
	}
	return cardHit{}, false
}

// handleMouse drives the triage swipe with press, drag and release. In the
// dashboard the wheel scrolls the active pane.
func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.view == ViewDashboard {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scrollBy(-1)
		case tea.MouseButtonWheelDown:
			a.scrollBy(1)
		}
		return nil
	}
	if a.view != ViewTriage {
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		hit, ok := a.hitTest(msg.Y)
		if !ok {
			return nil
		}
		a.triageCursor = hit.index
		a.swipe = swipeState{active: true, tier: hit.tier, id: hit.id, startX: msg.X}

	case tea.MouseActionMotion:
		if !a.swipe.active {
			return nil
		}
		a.swipe.offset = max(0, msg.X-a.swipe.startX)

	case tea.MouseActionRelease:
		if !a.swipe.active {
			return nil
		}
		s := a.swipe
		s.offset = max(0, msg.X-s.startX)
		a.swipe = swipeState{}
		if s.offset > a.config.UI.SwipeThreshold {
			a.dismiss(s.tier, s.id)
		}
	}
	return nil
}

// nudgeSelected moves the selected card one step right and dismisses it
// once it passes the threshold.
func (a *App) nudgeSelected() {
	tier, m, ok := triageItem(a.store.State().Triage, a.triageCursor)
	if !ok {
		return
	}
	if !a.swipe.on(tier, m.ID) {
		a.swipe = swipeState{active: true, tier: tier, id: m.ID}
	}
	a.swipe.offset += a.config.UI.SwipeStep
	if a.swipe.offset > a.config.UI.SwipeThreshold {
		a.swipe = swipeState{}
		a.dismiss(tier, m.ID)
	}
}

func (a *App) resetSwipe() {
	a.swipe = swipeState{}
}

func (a *App) dismiss(tier dashboard.Tier, id api.ID) {
	var subject string
	for _, m := range a.store.State().Triage.Urgent {
		if tier == dashboard.TierUrgent && m.ID == id {
			subject = m.SubjectOr(PlaceholderSubject)
			break
		}
	}
	for _, m := range a.store.State().Triage.Mid {
		if tier == dashboard.TierMid && m.ID == id {
			subject = m.SubjectOr(PlaceholderSubject)
			break
		}
	}

	if !a.store.Dismiss(tier, id) {
		return
	}
	a.setStatus(MsgDismissed(subject), StatusSuccess)
	if n := triageLen(a.store.State().Triage); a.triageCursor >= n {
		a.triageCursor = max(0, n-1)
	}
}
