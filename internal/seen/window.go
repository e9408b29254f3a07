package seen

// Window is a Set holding at most capacity identities. When full, adding a
// new identity evicts the oldest one.
type Window struct {
	buf      []string // ring of keys in insertion order
	head     int      // oldest entry
	count    int
	capacity int
	index    map[string]struct{}

	evictions int64
}

// NewWindow creates a Window with the given capacity (minimum 1).
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{
		buf:      make([]string, capacity),
		capacity: capacity,
		index:    make(map[string]struct{}, capacity),
	}
}

func (w *Window) Contains(key string) bool {
	_, ok := w.index[key]
	return ok
}

// Add records key. Adding a key already present does not refresh its age.
func (w *Window) Add(key string) {
	if w.Contains(key) {
		return
	}

	if w.count == w.capacity {
		oldest := w.buf[w.head]
		delete(w.index, oldest)
		w.buf[w.head] = ""
		w.head = (w.head + 1) % w.capacity
		w.count--
		w.evictions++
	}

	tail := (w.head + w.count) % w.capacity
	w.buf[tail] = key
	w.count++
	w.index[key] = struct{}{}
}

func (w *Window) Len() int {
	return w.count
}

// Cap returns the window capacity.
func (w *Window) Cap() int {
	return w.capacity
}

// Evictions returns how many identities have been forgotten.
func (w *Window) Evictions() int64 {
	return w.evictions
}

// Keys returns the retained identities, oldest first.
func (w *Window) Keys() []string {
	keys := make([]string, w.count)
	for i := 0; i < w.count; i++ {
		keys[i] = w.buf[(w.head+i)%w.capacity]
	}
	return keys
}
