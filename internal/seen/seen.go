package seen

// Set is a collection of item identities.
type Set interface {
	Contains(key string) bool
	Add(key string)
	Len() int
}

// Unbounded is a Set that never evicts.
type Unbounded struct {
	keys map[string]struct{}
}

// NewUnbounded creates an empty Unbounded set.
func NewUnbounded() *Unbounded {
	return &Unbounded{keys: make(map[string]struct{})}
}

func (u *Unbounded) Contains(key string) bool {
	_, ok := u.keys[key]
	return ok
}

func (u *Unbounded) Add(key string) {
	u.keys[key] = struct{}{}
}

func (u *Unbounded) Len() int {
	return len(u.keys)
}

// New returns a Window of the given capacity, or an Unbounded set when
// capacity is zero or negative.
func New(capacity int) Set {
	if capacity <= 0 {
		return NewUnbounded()
	}
	return NewWindow(capacity)
}
