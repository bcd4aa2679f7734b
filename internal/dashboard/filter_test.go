package dashboard

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/pders01/brief/internal/api"
)

func sampleEmails() []api.Message {
	return []api.Message{
		{ID: "1", Subject: strPtr("Invoice overdue"), Summary: strPtr("Pay by Friday")},
		{ID: "2", Subject: strPtr("Lunch"), Summary: strPtr("Team lunch at noon")},
		{ID: "3", Summary: strPtr("Server INVOICE attached")},
		{ID: "4"},
	}
}

func sampleMessages() []api.Message {
	return []api.Message{
		{ID: "a", Sender: strPtr("Ana"), Summary: strPtr("deploy finished"), Text: strPtr("the full deploy log")},
		{ID: "b", Sender: strPtr("Bob"), Text: strPtr("ÜBER wichtig")},
		{ID: "c", Subject: strPtr("deploy"), Summary: nil},
	}
}

func TestFilterEmails(t *testing.T) {
	tests := []struct {
		name string
		q    string
		want []api.ID
	}{
		{"subject match", "lunch", []api.ID{"2"}},
		{"summary match ignoring case", "invoice", []api.ID{"1", "3"}},
		{"upper-case query", "FRIDAY", []api.ID{"1"}},
		{"no match", "zebra", []api.ID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterEmails(sampleEmails(), tt.q)))
		})
	}
}

func TestFilterMessages(t *testing.T) {
	tests := []struct {
		name string
		q    string
		want []api.ID
	}{
		{"sender", "ana", []api.ID{"a"}},
		{"text", "log", []api.ID{"a"}},
		{"unicode folding", "über", []api.ID{"b"}},
		{"subject is not searched for chat", "deploy", []api.ID{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterMessages(sampleMessages(), tt.q)))
		})
	}
}

func TestFilter_EmptyQueryReturnsInput(t *testing.T) {
	list := sampleEmails()
	assert.Equal(t, list, FilterEmails(list, ""))
	assert.Equal(t, sampleMessages(), FilterMessages(sampleMessages(), ""))
	assert.Nil(t, FilterEmails(nil, ""))
}

func TestFilter_Idempotent(t *testing.T) {
	for _, q := range []string{"invoice", "LUNCH", "a", ""} {
		once := FilterEmails(sampleEmails(), q)
		assert.Equal(t, once, FilterEmails(once, q), "query %q", q)
	}
	for _, q := range []string{"deploy", "BOB"} {
		once := FilterMessages(sampleMessages(), q)
		assert.Equal(t, once, FilterMessages(once, q), "query %q", q)
	}
}

func TestFilter_AbsentFieldsNeverMatch(t *testing.T) {
	list := []api.Message{{ID: "x"}}
	assert.Empty(t, FilterEmails(list, "x"))
	assert.Empty(t, FilterMessages(list, "x"))
}

func TestSanitizeSearch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"newlines and tabs", "a\nb\tc\rd", "a b c d"},
		{"other control characters", "a\x00b\x1bc", "a b c"},
		{"internal double spaces kept", "stand  up", "stand  up"},
		{"trailing space kept", "foo ", "foo "},
		{"leading space kept", " foo", " foo"},
		{"only whitespace", " \t\n ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeSearch(tt.input))
		})
	}

	long := SanitizeSearch(strings.Repeat("a", 255) + "é" + "zzz")
	assert.LessOrEqual(t, len(long), 256)
	assert.True(t, utf8.ValidString(long), "cap must not split a rune")
}

func TestFilterEmails_QueryKeepsItsSpaces(t *testing.T) {
	list := []api.Message{
		{ID: "1", Subject: strPtr("stand  up meeting")},
		{ID: "2", Subject: strPtr("stand up meeting")},
		{ID: "3", Subject: strPtr("foobar")},
		{ID: "4", Subject: strPtr("foo fighters")},
	}

	got := FilterEmails(list, SanitizeSearch("stand  up"))
	if assert.Len(t, got, 1) {
		assert.Equal(t, api.ID("1"), got[0].ID)
	}

	got = FilterEmails(list, SanitizeSearch("foo "))
	if assert.Len(t, got, 1) {
		assert.Equal(t, api.ID("4"), got[0].ID, "a trailing space must not match foobar")
	}
}
