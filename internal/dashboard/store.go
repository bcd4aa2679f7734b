package dashboard

import (
	"context"

	"github.com/pders01/brief/internal/api"
	"github.com/pders01/brief/internal/debuglog"
)

// Fetcher is the subset of the backend client the dashboard needs.
type Fetcher interface {
	FetchSlackChannels(ctx context.Context) []api.Channel
	FetchAllData(ctx context.Context, channelID string) (api.AllData, error)
	FetchSlackFromChannel(ctx context.Context, channelID string) []api.Message
	FetchSlackDailySummary(ctx context.Context, channelID string) string
	FetchTelegramDailySummary(ctx context.Context) string
	Logout(ctx context.Context) api.LogoutResult
}

// InitialResult is everything a full load produced.
type InitialResult struct {
	ChannelID       string
	Channels        []api.Channel
	Data            api.AllData
	TelegramSummary string
	SlackSummary    string
	Err             error
}

// SlackResult is the outcome of one channel load, tagged with the
// generation that requested it.
type SlackResult struct {
	Gen       uint64
	ChannelID string
	Messages  []api.Message
	Summary   string
}

// Store owns the dashboard view state. Load methods only use the fetcher and
// may run on any goroutine; every other method mutates state and belongs to
// the UI goroutine.
type Store struct {
	fetcher   Fetcher
	state     State
	slackGen  uint64
	dismissed dismissedSet
}

func NewStore(fetcher Fetcher) *Store {
	return &Store{
		fetcher:   fetcher,
		state:     emptyState(),
		dismissed: make(dismissedSet),
	}
}

func emptyState() State {
	return State{
		Emails: EmailSection{Urgent: []api.Message{}, Mid: []api.Message{}, Low: []api.Message{}},
		Slack: SlackSection{
			Channels: []api.Channel{},
			Messages: []api.Message{},
		},
		Telegram: TelegramSection{Messages: []api.Message{}},
		Triage:   Triage{Urgent: []api.Message{}, Mid: []api.Message{}},
	}
}

// State returns a snapshot of the current view state.
func (s *Store) State() State {
	return s.state
}

func (s *Store) BeginInitialLoad() {
	s.state.Loading = true
}

// LoadInitial fetches channels, then all message data, then the two daily
// summaries. When the aggregate fetch fails the summaries are skipped.
func (s *Store) LoadInitial(ctx context.Context, channelID string) InitialResult {
	res := InitialResult{ChannelID: channelID}
	res.Channels = s.fetcher.FetchSlackChannels(ctx)

	data, err := s.fetcher.FetchAllData(ctx, channelID)
	if err != nil {
		res.Err = err
		return res
	}
	res.Data = data

	res.TelegramSummary = s.fetcher.FetchTelegramDailySummary(ctx)
	if channelID != "" {
		res.SlackSummary = s.fetcher.FetchSlackDailySummary(ctx, channelID)
	}
	return res
}

// ApplyInitial folds a full load into state. It returns the generic load
// failure notice when the load failed, and the zero Notice otherwise.
func (s *Store) ApplyInitial(res InitialResult) Notice {
	s.state.Loading = false

	channels := res.Channels
	if channels == nil {
		channels = []api.Channel{}
	}
	s.state.Slack.Channels = channels

	if res.Err != nil {
		debuglog.WithFields(map[string]interface{}{
			"component": "dashboard",
			"error":     res.Err.Error(),
		}).Errorf("initial load failed")

		empty := emptyState()
		s.state.Emails.Urgent, s.state.Emails.Mid, s.state.Emails.Low = empty.Emails.Urgent, empty.Emails.Mid, empty.Emails.Low
		s.state.Slack.Messages = empty.Slack.Messages
		s.state.Slack.DailySummary = ""
		s.state.Telegram.Messages = empty.Telegram.Messages
		s.state.Telegram.DailySummary = ""
		s.state.Triage = empty.Triage
		return Notice{Text: MsgLoadFailed, Severity: SeverityError}
	}

	s.state.Emails.Urgent = res.Data.Emails.Urgent
	s.state.Emails.Mid = res.Data.Emails.Mid
	s.state.Emails.Low = res.Data.Emails.Low
	// A channel picked while the load was running owns the Slack pane.
	if res.ChannelID == s.state.Slack.Selected {
		s.state.Slack.Messages = res.Data.Slack
		s.state.Slack.DailySummary = res.SlackSummary
	}
	s.state.Telegram.Messages = res.Data.Telegram
	s.state.Telegram.DailySummary = res.TelegramSummary
	s.state.Triage = Triage{
		Urgent: s.dismissed.without(TierUrgent, res.Data.Emails.Urgent),
		Mid:    s.dismissed.without(TierMid, res.Data.Emails.Mid),
	}

	debuglog.WithFields(map[string]interface{}{
		"component": "dashboard",
		"urgent":    len(s.state.Emails.Urgent),
		"mid":       len(s.state.Emails.Mid),
		"low":       len(s.state.Emails.Low),
		"slack":     len(s.state.Slack.Messages),
		"telegram":  len(s.state.Telegram.Messages),
	}).Infof("dashboard loaded")
	return Notice{}
}

// SelectChannel records a new Slack channel. Selecting the current channel
// or "" changes nothing. Otherwise a new request generation starts and gen
// identifies the load that should follow.
func (s *Store) SelectChannel(id string) (gen uint64, changed bool) {
	if id == "" || id == s.state.Slack.Selected {
		return s.slackGen, false
	}

	s.slackGen++
	s.state.Slack.Selected = id
	s.state.Slack.Loading = true
	return s.slackGen, true
}

func (s *Store) LoadSlack(ctx context.Context, id string, gen uint64) SlackResult {
	return SlackResult{
		Gen:       gen,
		ChannelID: id,
		Messages:  s.fetcher.FetchSlackFromChannel(ctx, id),
		Summary:   s.fetcher.FetchSlackDailySummary(ctx, id),
	}
}

// ApplySlack applies a channel load unless a newer selection superseded it.
func (s *Store) ApplySlack(res SlackResult) bool {
	if res.Gen != s.slackGen {
		debuglog.WithFields(map[string]interface{}{
			"component": "dashboard",
			"channel":   res.ChannelID,
			"gen":       res.Gen,
			"current":   s.slackGen,
		}).Debugf("discarding stale slack result")
		return false
	}

	messages := res.Messages
	if messages == nil {
		messages = []api.Message{}
	}
	s.state.Slack.Messages = messages
	s.state.Slack.DailySummary = res.Summary
	s.state.Slack.Loading = false
	return true
}

func (s *Store) Logout(ctx context.Context) Notice {
	res := s.fetcher.Logout(ctx)
	if res.Error != "" {
		return Notice{Text: "Logout failed: " + res.Error, Severity: SeverityError}
	}
	return Notice{Text: MsgLoggedOut, Severity: SeveritySuccess}
}

// SetSearch stores the sanitized search string of one section and returns
// the value stored.
func (s *Store) SetSearch(section Section, q string) string {
	q = SanitizeSearch(q)
	switch section {
	case SectionEmail:
		s.state.Emails.Search = q
	case SectionSlack:
		s.state.Slack.Search = q
	case SectionTelegram:
		s.state.Telegram.Search = q
	}
	return q
}

// Dismiss removes the first triage item with id from tier and keeps it
// dismissed across refreshes for the rest of the session. Items without an
// id cannot be told apart, so dismissing one only lasts until the next load.
func (s *Store) Dismiss(tier Tier, id api.ID) bool {
	if !remove(s.state.Triage.list(tier), id) {
		return false
	}
	if id != "" {
		s.dismissed.add(tier, id)
	}
	return true
}
