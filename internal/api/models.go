package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID identifies a message. The backend sends it as either a JSON string or a
// JSON number depending on the source.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Message is one summarized email or chat message. Every field but ID is
// optional; nil means the backend omitted it.
type Message struct {
	ID         ID      `json:"id"`
	Sender     *string `json:"sender,omitempty"`
	Subject    *string `json:"subject,omitempty"`
	Summary    *string `json:"summary,omitempty"`
	Text       *string `json:"text,omitempty"`
	QuickReply *string `json:"quick_reply,omitempty"`
}

// fieldOr returns fallback for an absent or empty field. Whitespace-only
// values are content and come back as sent.
func fieldOr(field *string, fallback string) string {
	if field == nil || *field == "" {
		return fallback
	}
	return *field
}

func (m Message) SenderOr(fallback string) string     { return fieldOr(m.Sender, fallback) }
func (m Message) SubjectOr(fallback string) string    { return fieldOr(m.Subject, fallback) }
func (m Message) SummaryOr(fallback string) string    { return fieldOr(m.Summary, fallback) }
func (m Message) TextOr(fallback string) string       { return fieldOr(m.Text, fallback) }
func (m Message) QuickReplyOr(fallback string) string { return fieldOr(m.QuickReply, fallback) }

type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Emails groups the categorized inbox. The slices are never nil.
type Emails struct {
	Urgent []Message
	Mid    []Message
	Low    []Message
}

func emptyEmails() Emails {
	return Emails{Urgent: []Message{}, Mid: []Message{}, Low: []Message{}}
}

type AllData struct {
	Emails   Emails
	Slack    []Message
	Telegram []Message
}

func emptyAllData() AllData {
	return AllData{Emails: emptyEmails(), Slack: []Message{}, Telegram: []Message{}}
}

// LogoutResult carries the backend's logout payload, or Error when the call
// failed.
type LogoutResult struct {
	Data  map[string]any
	Error string
}

type emailsPayload struct {
	Urgent []Message `json:"urgent_emails"`
	Mid    []Message `json:"mid_priority_emails"`
	Low    []Message `json:"low_priority_emails"`
}

type channelsPayload struct {
	Channels []Channel `json:"channels"`
}

type slackPayload struct {
	Messages []Message `json:"summarized_slack_messages"`
}

type telegramPayload struct {
	Messages []Message `json:"summarized_telegram_messages"`
}

type slackDailyPayload struct {
	AllSummary string     `json:"all_summary"`
	Messages   *[]Message `json:"summarized_slack_messages"`
}

type telegramDailyPayload struct {
	DailySummary string `json:"daily_summary"`
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
