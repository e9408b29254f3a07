package poller

import (
	"time"

	"github.com/rickgao/redditor/internal/model"
)

// State is the poller lifecycle phase. The only transition is
// Seeding -> Steady, after the first successful cycle.
type State int

const (
	StateSeeding State = iota // First cycle: everything is shown, nothing is "new"
	StateSteady               // Later cycles: seen items are suppressed
)

func (s State) String() string {
	switch s {
	case StateSeeding:
		return "seeding"
	case StateSteady:
		return "steady"
	default:
		return "unknown"
	}
}

// MarshalText renders the state name in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Identity selects the key used to decide whether an item was seen.
type Identity string

const (
	// IdentityTitle keys items by title text. Distinct posts sharing a
	// title are treated as the same item.
	IdentityTitle Identity = "title"

	// IdentityID keys items by upstream fullname, falling back to the
	// title when the source provides no ID.
	IdentityID Identity = "id"
)

// Key returns the identity of it.
func (i Identity) Key(it model.Item) string {
	if i == IdentityID && it.ID != "" {
		return it.ID
	}
	return it.Title
}

// Stats are point-in-time poller counters.
type Stats struct {
	State       State     `json:"state"`
	Cycles      int64     `json:"cycles"`
	Emitted     int64     `json:"emitted"`
	New         int64     `json:"new"`
	Seen        int       `json:"seen"`
	LastCycleAt time.Time `json:"last_cycle_at"`
	LastCycleID string    `json:"last_cycle_id"`
}
