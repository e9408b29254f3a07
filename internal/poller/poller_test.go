package poller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rickgao/redditor/internal/display"
	"github.com/rickgao/redditor/internal/model"
	"github.com/rickgao/redditor/internal/seen"
)

// scriptedFetcher returns one snapshot per call, then repeats the last one.
type scriptedFetcher struct {
	snapshots []model.Snapshot
	errAt     int // 1-based call that fails, 0 = never
	err       error
	calls     int
}

func (f *scriptedFetcher) Fetch(ctx context.Context, q model.FeedQuery) (model.Snapshot, error) {
	f.calls++
	if f.errAt != 0 && f.calls == f.errAt {
		return nil, f.err
	}
	i := f.calls - 1
	if i >= len(f.snapshots) {
		i = len(f.snapshots) - 1
	}
	return f.snapshots[i], nil
}

// recordingDisplay captures what the poller reports.
type recordingDisplay struct {
	headers  int
	items    []string
	started  int
	statuses []bool
}

func (d *recordingDisplay) Header(model.FeedQuery) error { d.headers++; return nil }

func (d *recordingDisplay) Item(it model.Item) error {
	d.items = append(d.items, it.Title)
	return nil
}

func (d *recordingDisplay) Started(time.Duration) error { d.started++; return nil }

func (d *recordingDisplay) Status(foundNew bool, _ time.Duration) error {
	d.statuses = append(d.statuses, foundNew)
	return nil
}

func (d *recordingDisplay) reset() {
	d.items = nil
	d.statuses = nil
}

func item(title string) model.Item {
	return model.Item{
		ID:        "t3_" + strings.ToLower(strings.ReplaceAll(title, " ", "_")),
		Title:     title,
		Permalink: "/r/testsub/comments/" + title + "/",
		CreatedAt: time.Unix(1700000000, 0),
	}
}

func snap(titles ...string) model.Snapshot {
	s := make(model.Snapshot, len(titles))
	for i, t := range titles {
		s[i] = item(t)
	}
	return s
}

func newTestPoller(cfg Config, f Fetcher, d Display) *Poller {
	return New(cfg, model.NewFeedQuery("testsub", model.SortNew), f, d, nil)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPoller_SeedingShowsEverything(t *testing.T) {
	f := &scriptedFetcher{snapshots: []model.Snapshot{snap("A", "B", "C")}}
	d := &recordingDisplay{}
	p := newTestPoller(DefaultConfig(), f, d)

	if err := p.cycle(context.Background()); err != nil {
		t.Fatalf("cycle: %v", err)
	}

	if !equalStrings(d.items, []string{"A", "B", "C"}) {
		t.Errorf("items = %v, want [A B C]", d.items)
	}
	if d.started != 1 {
		t.Errorf("started = %d, want 1", d.started)
	}
	if len(d.statuses) != 0 {
		t.Errorf("statuses = %v, want none on the first cycle", d.statuses)
	}
	if p.seen.Len() != 3 {
		t.Errorf("seen.Len() = %d, want 3", p.seen.Len())
	}
	for _, k := range []string{"A", "B", "C"} {
		if !p.seen.Contains(k) {
			t.Errorf("seen should contain %q", k)
		}
	}
	if p.state != StateSteady {
		t.Errorf("state = %v, want %v", p.state, StateSteady)
	}
	if st := p.Stats(); st.New != 0 || st.Emitted != 3 {
		t.Errorf("stats = %+v, want New=0 Emitted=3", st)
	}
}

func TestPoller_SeedingKeepsDuplicateTitles(t *testing.T) {
	f := &scriptedFetcher{snapshots: []model.Snapshot{snap("A", "A")}}
	d := &recordingDisplay{}
	p := newTestPoller(DefaultConfig(), f, d)

	if err := p.cycle(context.Background()); err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if !equalStrings(d.items, []string{"A", "A"}) {
		t.Errorf("items = %v, want [A A]", d.items)
	}
	if p.seen.Len() != 1 {
		t.Errorf("seen.Len() = %d, want 1", p.seen.Len())
	}
}

func TestPoller_SuppressesSeen(t *testing.T) {
	f := &scriptedFetcher{snapshots: []model.Snapshot{snap("T"), snap("T")}}
	d := &recordingDisplay{}
	p := newTestPoller(DefaultConfig(), f, d)
	ctx := context.Background()

	if err := p.cycle(ctx); err != nil {
		t.Fatalf("cycle 1: %v", err)
	}
	d.reset()

	if err := p.cycle(ctx); err != nil {
		t.Fatalf("cycle 2: %v", err)
	}
	if len(d.items) != 0 {
		t.Errorf("items = %v, want none", d.items)
	}
	if len(d.statuses) != 1 || d.statuses[0] {
		t.Errorf("statuses = %v, want [false]", d.statuses)
	}
}

func TestPoller_DetectsNewItems(t *testing.T) {
	f := &scriptedFetcher{snapshots: []model.Snapshot{snap("A"), snap("B", "A")}}
	d := &recordingDisplay{}
	p := newTestPoller(DefaultConfig(), f, d)
	ctx := context.Background()

	if err := p.cycle(ctx); err != nil {
		t.Fatalf("cycle 1: %v", err)
	}
	d.reset()

	if err := p.cycle(ctx); err != nil {
		t.Fatalf("cycle 2: %v", err)
	}
	if !equalStrings(d.items, []string{"B"}) {
		t.Errorf("items = %v, want [B]", d.items)
	}
	if len(d.statuses) != 1 || !d.statuses[0] {
		t.Errorf("statuses = %v, want [true]", d.statuses)
	}
	if p.seen.Len() != 2 || !p.seen.Contains("A") || !p.seen.Contains("B") {
		t.Errorf("seen should be {A, B}, len = %d", p.seen.Len())
	}
	if st := p.Stats(); st.New != 1 || st.Cycles != 2 {
		t.Errorf("stats = %+v, want New=1 Cycles=2", st)
	}
}

func TestPoller_PreservesUpstreamOrder(t *testing.T) {
	f := &scriptedFetcher{snapshots: []model.Snapshot{
		snap("A", "B"),
		snap("Z", "A", "M", "B", "C"),
	}}
	d := &recordingDisplay{}
	p := newTestPoller(DefaultConfig(), f, d)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if i == 1 {
			d.reset()
		}
		if err := p.cycle(ctx); err != nil {
			t.Fatalf("cycle %d: %v", i+1, err)
		}
	}

	if !equalStrings(d.items, []string{"Z", "M", "C"}) {
		t.Errorf("items = %v, want [Z M C]", d.items)
	}
}

func TestPoller_TitleIdentityCollapsesSameTitle(t *testing.T) {
	first := item("Daily thread")
	second := item("Daily thread")
	second.ID = "t3_other"

	f := &scriptedFetcher{snapshots: []model.Snapshot{{first}, {second}}}
	d := &recordingDisplay{}
	p := newTestPoller(DefaultConfig(), f, d)
	ctx := context.Background()

	p.cycle(ctx)
	d.reset()
	if err := p.cycle(ctx); err != nil {
		t.Fatalf("cycle 2: %v", err)
	}
	if len(d.items) != 0 {
		t.Errorf("items = %v, want none with title identity", d.items)
	}
}

func TestPoller_IDIdentity(t *testing.T) {
	first := item("Daily thread")
	second := item("Daily thread")
	second.ID = "t3_other"

	cfg := DefaultConfig()
	cfg.Identity = IdentityID
	f := &scriptedFetcher{snapshots: []model.Snapshot{{first}, {second}}}
	d := &recordingDisplay{}
	p := newTestPoller(cfg, f, d)
	ctx := context.Background()

	p.cycle(ctx)
	d.reset()
	if err := p.cycle(ctx); err != nil {
		t.Fatalf("cycle 2: %v", err)
	}
	if !equalStrings(d.items, []string{"Daily thread"}) {
		t.Errorf("items = %v, want [Daily thread] with id identity", d.items)
	}
}

func TestIdentityKey(t *testing.T) {
	withID := model.Item{ID: "t3_a", Title: "A"}
	withoutID := model.Item{Title: "B"}

	tests := []struct {
		name string
		id   Identity
		it   model.Item
		want string
	}{
		{"title", IdentityTitle, withID, "A"},
		{"id", IdentityID, withID, "t3_a"},
		{"id falls back to title", IdentityID, withoutID, "B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.Key(tt.it); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPoller_WindowForgetsOldItems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeenCapacity = 2

	f := &scriptedFetcher{snapshots: []model.Snapshot{
		snap("A", "B"),
		snap("C"),
		snap("A"),
	}}
	d := &recordingDisplay{}
	p := newTestPoller(cfg, f, d)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := p.cycle(ctx); err != nil {
			t.Fatalf("cycle %d: %v", i+1, err)
		}
	}

	// A was evicted by C, so it is reported again.
	if !equalStrings(d.items, []string{"A", "B", "C", "A"}) {
		t.Errorf("items = %v, want [A B C A]", d.items)
	}
	if _, ok := p.seen.(*seen.Window); !ok {
		t.Errorf("seen = %T, want *seen.Window", p.seen)
	}
}

func TestPoller_FetchErrorStopsRun(t *testing.T) {
	fetchErr := errors.New("connection reset")
	f := &scriptedFetcher{snapshots: []model.Snapshot{snap("A")}, errAt: 2, err: fetchErr}
	d := &recordingDisplay{}

	var sleeps int
	p := New(DefaultConfig(), model.NewFeedQuery("testsub", model.SortNew), f, d, nil,
		WithSleeper(func(ctx context.Context, _ time.Duration) error {
			sleeps++
			return nil
		}),
	)

	err := p.Run(context.Background())
	if !errors.Is(err, fetchErr) {
		t.Fatalf("Run() error = %v, want %v", err, fetchErr)
	}
	if !strings.Contains(err.Error(), "r/testsub/new") {
		t.Errorf("error should name the listing, got %v", err)
	}
	if f.calls != 2 {
		t.Errorf("fetch calls = %d, want 2 (no retry)", f.calls)
	}
	if sleeps != 1 {
		t.Errorf("sleeps = %d, want 1", sleeps)
	}
	if !equalStrings(d.items, []string{"A"}) {
		t.Errorf("items = %v, want [A]", d.items)
	}
}

func TestPoller_FailedCycleLeavesStateUntouched(t *testing.T) {
	f := &scriptedFetcher{snapshots: []model.Snapshot{snap("A")}, errAt: 1, err: errors.New("boom")}
	d := &recordingDisplay{}
	p := newTestPoller(DefaultConfig(), f, d)

	if err := p.cycle(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
	if p.state != StateSeeding {
		t.Errorf("state = %v, want %v", p.state, StateSeeding)
	}
	if p.seen.Len() != 0 {
		t.Errorf("seen.Len() = %d, want 0", p.seen.Len())
	}
	if d.started != 0 || len(d.items) != 0 {
		t.Error("nothing should be displayed for a failed cycle")
	}
}

func TestPoller_Scenario(t *testing.T) {
	p1 := model.Item{Title: "P1", Permalink: "/r/testsub/comments/p1/", CreatedAt: time.Unix(1700000000, 0)}
	p2 := model.Item{Title: "P2", Permalink: "/r/testsub/comments/p2/", CreatedAt: time.Unix(1700000060, 0)}
	p3 := model.Item{Title: "P3", Permalink: "/r/testsub/comments/p3/", CreatedAt: time.Unix(1700000120, 0)}

	f := &scriptedFetcher{snapshots: []model.Snapshot{{p1, p2}, {p3, p1}}}

	var out bytes.Buffer
	printer := display.New(&out, display.WithLocation(time.UTC), display.WithColor(display.ColorNever))

	cfg := DefaultConfig()
	cfg.Interval = 5 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var slept []time.Duration
	p := New(cfg, model.NewFeedQuery("testsub", model.SortNew), f, printer, nil,
		WithSleeper(func(ctx context.Context, d time.Duration) error {
			slept = append(slept, d)
			if len(slept) == 2 {
				cancel()
				return ctx.Err()
			}
			return nil
		}),
	)

	err := p.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}

	want := "Showing posts from r/testsub sorted by new ...\n\n" +
		"P1\nhttps://www.reddit.com/r/testsub/comments/p1/\n14 November, 2023 22:13:20\n\n" +
		"P2\nhttps://www.reddit.com/r/testsub/comments/p2/\n14 November, 2023 22:14:20\n\n" +
		"Checking for new posts every 5 seconds...\n\n" +
		"P3\nhttps://www.reddit.com/r/testsub/comments/p3/\n14 November, 2023 22:15:20\n\n" +
		"Found the above new posts, checking again in 5 seconds...\n"
	if out.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", out.String(), want)
	}

	for _, d := range slept {
		if d != 5*time.Second {
			t.Errorf("slept %v, want 5s", d)
		}
	}

	st := p.Stats()
	if st.State != StateSteady || st.Cycles != 2 || st.Seen != 3 || st.New != 1 || st.Emitted != 3 {
		t.Errorf("stats = %+v", st)
	}
	if st.LastCycleID == "" {
		t.Error("LastCycleID should be set")
	}
}

func TestPoller_NoNewPostsStatus(t *testing.T) {
	f := &scriptedFetcher{snapshots: []model.Snapshot{snap("A", "B")}}

	var out bytes.Buffer
	printer := display.New(&out, display.WithColor(display.ColorNever))
	p := newTestPoller(DefaultConfig(), f, printer)
	ctx := context.Background()

	p.cycle(ctx)
	out.Reset()
	if err := p.cycle(ctx); err != nil {
		t.Fatalf("cycle: %v", err)
	}

	want := "No new posts found, checking again in 10 seconds...\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestPoller_StatsClock(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	f := &scriptedFetcher{snapshots: []model.Snapshot{snap("A")}}
	p := New(DefaultConfig(), model.NewFeedQuery("testsub", model.SortHot), f, &recordingDisplay{}, nil,
		WithClock(func() time.Time { return at }),
	)

	if st := p.Stats(); st.State != StateSeeding || st.Cycles != 0 {
		t.Errorf("initial stats = %+v", st)
	}
	if err := p.cycle(context.Background()); err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if st := p.Stats(); !st.LastCycleAt.Equal(at) {
		t.Errorf("LastCycleAt = %v, want %v", st.LastCycleAt, at)
	}
}

func TestPoller_RunWithDefaultSleeper(t *testing.T) {
	var calls atomic.Int32
	f := FetcherFunc(func(ctx context.Context, q model.FeedQuery) (model.Snapshot, error) {
		calls.Add(1)
		return snap("A"), nil
	})

	cfg := DefaultConfig()
	cfg.Interval = 20 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	p := newTestPoller(cfg, f, &recordingDisplay{})
	err := p.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() error = %v, want context.DeadlineExceeded", err)
	}
	if got := calls.Load(); got < 2 {
		t.Errorf("fetch calls = %d, want at least 2", got)
	}
}

func TestSleepContext(t *testing.T) {
	if err := SleepContext(context.Background(), time.Millisecond); err != nil {
		t.Errorf("SleepContext() = %v, want nil", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if err := SleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("SleepContext() = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("SleepContext should return immediately on a cancelled context")
	}
}

func TestStateString(t *testing.T) {
	if StateSeeding.String() != "seeding" || StateSteady.String() != "steady" {
		t.Errorf("unexpected state names: %q %q", StateSeeding, StateSteady)
	}
	b, _ := StateSteady.MarshalText()
	if string(b) != "steady" {
		t.Errorf("MarshalText() = %q, want %q", b, "steady")
	}
}
