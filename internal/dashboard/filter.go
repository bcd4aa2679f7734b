package dashboard

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pders01/brief/internal/api"
)

const maxSearchLength = 256

// FilterEmails keeps the emails whose subject or summary contains q,
// ignoring case. An empty q returns list unchanged.
func FilterEmails(list []api.Message, q string) []api.Message {
	return filter(list, q, func(m api.Message) []*string {
		return []*string{m.Subject, m.Summary}
	})
}

// FilterMessages keeps the chat messages whose sender, summary or text
// contains q, ignoring case. An empty q returns list unchanged.
func FilterMessages(list []api.Message, q string) []api.Message {
	return filter(list, q, func(m api.Message) []*string {
		return []*string{m.Sender, m.Summary, m.Text}
	})
}

func filter(list []api.Message, q string, fields func(api.Message) []*string) []api.Message {
	if q == "" {
		return list
	}

	needle := strings.ToLower(q)
	out := make([]api.Message, 0, len(list))
	for _, m := range list {
		for _, f := range fields(m) {
			if f != nil && strings.Contains(strings.ToLower(*f), needle) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// SanitizeSearch turns line breaks, tabs and other control characters into
// spaces and caps the length without splitting a rune. Ordinary spaces are
// part of the query and stay as typed; a query of only whitespace becomes "".
func SanitizeSearch(input string) string {
	input = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, input)

	if len(input) > maxSearchLength {
		cut := maxSearchLength
		for cut > 0 && !utf8.RuneStart(input[cut]) {
			cut--
		}
		input = input[:cut]
	}

	if strings.TrimSpace(input) == "" {
		return ""
	}
	return input
}
