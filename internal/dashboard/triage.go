package dashboard

import "github.com/pders01/brief/internal/api"

// Tier selects one of the two triage lists.
type Tier int

const (
	TierUrgent Tier = iota
	TierMid
)

func (t Tier) String() string {
	if t == TierMid {
		return "mid"
	}
	return "urgent"
}

// list returns a pointer to the triage slice for tier.
func (tr *Triage) list(tier Tier) *[]api.Message {
	if tier == TierMid {
		return &tr.Mid
	}
	return &tr.Urgent
}

// remove drops the first message with id and reports whether one matched.
func remove(list *[]api.Message, id api.ID) bool {
	for i, m := range *list {
		if m.ID == id {
			next := make([]api.Message, 0, len(*list)-1)
			next = append(next, (*list)[:i]...)
			next = append(next, (*list)[i+1:]...)
			*list = next
			return true
		}
	}
	return false
}

type dismissedSet map[Tier]map[api.ID]struct{}

func (d dismissedSet) add(tier Tier, id api.ID) {
	if d[tier] == nil {
		d[tier] = make(map[api.ID]struct{})
	}
	d[tier][id] = struct{}{}
}

func (d dismissedSet) without(tier Tier, list []api.Message) []api.Message {
	out := make([]api.Message, 0, len(list))
	for _, m := range list {
		if _, gone := d[tier][m.ID]; gone {
			continue
		}
		out = append(out, m)
	}
	return out
}
