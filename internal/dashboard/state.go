package dashboard

import "github.com/pders01/brief/internal/api"

// Section names one of the searchable dashboard panes.
type Section int

const (
	SectionEmail Section = iota
	SectionSlack
	SectionTelegram
)

func (s Section) String() string {
	switch s {
	case SectionEmail:
		return "Email"
	case SectionSlack:
		return "Slack"
	case SectionTelegram:
		return "Telegram"
	default:
		return "Unknown"
	}
}

type EmailSection struct {
	Urgent []api.Message
	Mid    []api.Message
	Low    []api.Message
	Search string
}

type SlackSection struct {
	Channels     []api.Channel
	Selected     string
	Messages     []api.Message
	Search       string
	Loading      bool
	DailySummary string
}

type TelegramSection struct {
	Messages     []api.Message
	Search       string
	DailySummary string
}

// Triage holds the swipe-dismiss copies of the urgent and mid lists.
type Triage struct {
	Urgent []api.Message
	Mid    []api.Message
}

type State struct {
	Emails   EmailSection
	Slack    SlackSection
	Telegram TelegramSection
	Triage   Triage
	Loading  bool
}

// FilteredEmails returns the email tiers narrowed by the email search.
func (s State) FilteredEmails() (urgent, mid, low []api.Message) {
	q := s.Emails.Search
	return FilterEmails(s.Emails.Urgent, q), FilterEmails(s.Emails.Mid, q), FilterEmails(s.Emails.Low, q)
}

func (s State) FilteredSlack() []api.Message {
	return FilterMessages(s.Slack.Messages, s.Slack.Search)
}

func (s State) FilteredTelegram() []api.Message {
	return FilterMessages(s.Telegram.Messages, s.Telegram.Search)
}

// SelectedChannelName returns the display name of the selected channel, or
// the id when the channel list does not know it.
func (s State) SelectedChannelName() string {
	for _, ch := range s.Slack.Channels {
		if ch.ID == s.Slack.Selected {
			return ch.Name
		}
	}
	return s.Slack.Selected
}
