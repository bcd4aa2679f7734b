package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/brief/internal/api"
)

func ids(list []api.Message) []api.ID {
	out := make([]api.ID, 0, len(list))
	for _, m := range list {
		out = append(out, m.ID)
	}
	return out
}

func TestDismiss_RemovesExactlyOne(t *testing.T) {
	s := loadedStore(t, newFakeFetcher())
	before := s.State()

	require.True(t, s.Dismiss(TierUrgent, "1"))

	after := s.State()
	assert.Equal(t, []api.ID{"2"}, ids(after.Triage.Urgent))
	assert.Equal(t, ids(before.Triage.Mid), ids(after.Triage.Mid))
	assert.Equal(t, before.Emails, after.Emails, "dismissing does not touch the email section")
	assert.Equal(t, before.Telegram, after.Telegram)
	assert.Equal(t, before.Slack, after.Slack)
}

func TestDismiss_FirstMatchOnly(t *testing.T) {
	f := newFakeFetcher()
	f.data.Emails.Mid = []api.Message{{ID: "7"}, {ID: "7"}, {ID: "8"}}
	s := loadedStore(t, f)

	require.True(t, s.Dismiss(TierMid, "7"))
	assert.Equal(t, []api.ID{"7", "8"}, ids(s.State().Triage.Mid))
}

func TestDismiss_Unknown(t *testing.T) {
	s := loadedStore(t, newFakeFetcher())

	assert.False(t, s.Dismiss(TierUrgent, "nope"))
	assert.False(t, s.Dismiss(TierMid, "1"), "id 1 is in the urgent tier")
	assert.Len(t, s.State().Triage.Urgent, 2)
}

func TestDismiss_SurvivesRefresh(t *testing.T) {
	s := loadedStore(t, newFakeFetcher())
	require.True(t, s.Dismiss(TierUrgent, "2"))

	s.BeginInitialLoad()
	s.ApplyInitial(s.LoadInitial(context.Background(), ""))

	st := s.State()
	assert.Equal(t, []api.ID{"1"}, ids(st.Triage.Urgent))
	assert.Len(t, st.Emails.Urgent, 2)
}

func TestDismiss_EmptyIDNotRemembered(t *testing.T) {
	f := newFakeFetcher()
	f.data.Emails.Urgent = []api.Message{{Subject: strPtr("a")}, {Subject: strPtr("b")}}
	s := loadedStore(t, f)

	require.True(t, s.Dismiss(TierUrgent, ""))
	assert.Len(t, s.State().Triage.Urgent, 1)

	s.BeginInitialLoad()
	s.ApplyInitial(s.LoadInitial(context.Background(), ""))
	assert.Len(t, s.State().Triage.Urgent, 2, "id-less items come back after a refresh")
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "urgent", TierUrgent.String())
	assert.Equal(t, "mid", TierMid.String())
}
